// Package doc is the structured document model: a serializable node tree
// that is the durable source of truth, distinct from its rendering. All
// mutations go through Document.Change so they are atomic, undoable, and
// observable as a single notification per transaction.
package doc

// Node kinds.
const (
	KindRoot      = "root"
	KindParagraph = "paragraph"
	KindText      = "text"
	KindTable     = "table"
	KindRow       = "row"
	KindCell      = "cell"
)

// Node is a single document-model node.
type Node struct {
	kind     string
	text     string
	attrs    map[string]string
	children []*Node
	parent   *Node
}

// NewNode creates a detached node of the given kind.
func NewNode(kind string) *Node {
	return &Node{kind: kind}
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{kind: KindText, text: text}
}

// Kind returns the node kind.
func (n *Node) Kind() string { return n.kind }

// Text returns the text content of a text node.
func (n *Node) Text() string { return n.text }

// Parent returns the node's parent, nil for a detached or root node.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children in document order.
func (n *Node) Children() []*Node { return n.children }

// Attr returns the named attribute and whether it is set.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// Append attaches child as the last child of n. Intended for initial
// document construction; edits to a live document go through Change.
func (n *Node) Append(child *Node) *Node {
	child.parent = n
	n.children = append(n.children, child)
	return n
}

// SetInitialAttr sets an attribute during document construction (e.g.
// while loading persisted markup), bypassing transactions, undo, and
// notification. Never call it on a node attached to a live document.
func (n *Node) SetInitialAttr(name, value string) {
	n.setAttr(name, value)
}

// setAttr writes an attribute directly. Only the Writer calls this.
func (n *Node) setAttr(name, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
}

// removeAttr deletes an attribute directly. Only the Writer calls this.
func (n *Node) removeAttr(name string) {
	delete(n.attrs, name)
}

// insertChild splices child in at index. Only the Writer calls this.
func (n *Node) insertChild(child *Node, index int) {
	if index < 0 || index > len(n.children) {
		index = len(n.children)
	}
	child.parent = n
	n.children = append(n.children[:index], append([]*Node{child}, n.children[index:]...)...)
}

// removeChild detaches the child at index. Only the Writer calls this.
func (n *Node) removeChild(index int) *Node {
	if index < 0 || index >= len(n.children) {
		return nil
	}
	child := n.children[index]
	n.children = append(n.children[:index], n.children[index+1:]...)
	child.parent = nil
	return child
}

// childIndex returns the index of child within n, or -1.
func (n *Node) childIndex(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Walk visits n and every descendant in document order. Returning false
// from fn stops the walk.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Document owns a set of root nodes plus the transaction, undo, and
// notification machinery around them.
type Document struct {
	roots []*Node
	subs  []func(Change)
	undo  [][]patch
	redo  [][]patch
	depth int
}

// New creates an empty document.
func New() *Document {
	return &Document{}
}

// AddRoot attaches a root node. Roots are the editing surfaces the
// renderer materializes; most documents have exactly one.
func (d *Document) AddRoot(root *Node) {
	d.roots = append(d.roots, root)
}

// Roots returns the document roots in order.
func (d *Document) Roots() []*Node { return d.roots }

// Subscribe registers fn to be called once per committed transaction.
func (d *Document) Subscribe(fn func(Change)) {
	d.subs = append(d.subs, fn)
}

// TablesIn returns all table nodes under root in document order.
func TablesIn(root *Node) []*Node {
	var tables []*Node
	root.Walk(func(n *Node) bool {
		if n.kind == KindTable {
			tables = append(tables, n)
		}
		return true
	})
	return tables
}

// RootOf returns the root ancestor of n, or n itself if detached.
func RootOf(n *Node) *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}
