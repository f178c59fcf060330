package doc

import "fmt"

// Change summarizes one committed transaction for subscribers.
type Change struct {
	// Structural is true when children were inserted or removed, as
	// opposed to attribute-only writes.
	Structural bool
	// Nodes are the nodes touched by the transaction, deduplicated,
	// in first-touch order.
	Nodes []*Node
}

// patch is a single reversible mutation step.
type patch struct {
	op    patchOp
	node  *Node
	name  string
	value string
	had   bool
	old   string
	child *Node
	index int
}

type patchOp int

const (
	opSetAttr patchOp = iota
	opRemoveAttr
	opInsert
	opRemove
)

// Writer applies mutations inside a transaction and records their
// inverses for undo.
type Writer struct {
	doc     *Document
	patches []patch
	touched map[*Node]bool
	order   []*Node
}

// SetAttr sets an attribute on a node.
func (w *Writer) SetAttr(n *Node, name, value string) {
	old, had := n.Attr(name)
	if had && old == value {
		return
	}
	n.setAttr(name, value)
	w.patches = append(w.patches, patch{op: opSetAttr, node: n, name: name, value: value, had: had, old: old})
	w.touch(n)
}

// RemoveAttr removes an attribute from a node.
func (w *Writer) RemoveAttr(n *Node, name string) {
	old, had := n.Attr(name)
	if !had {
		return
	}
	n.removeAttr(name)
	w.patches = append(w.patches, patch{op: opRemoveAttr, node: n, name: name, had: true, old: old})
	w.touch(n)
}

// InsertChild splices child into parent at index.
func (w *Writer) InsertChild(parent, child *Node, index int) {
	parent.insertChild(child, index)
	w.patches = append(w.patches, patch{op: opInsert, node: parent, child: child, index: parent.childIndex(child)})
	w.touch(parent)
}

// RemoveChild detaches child from parent.
func (w *Writer) RemoveChild(parent, child *Node) {
	idx := parent.childIndex(child)
	if idx < 0 {
		return
	}
	parent.removeChild(idx)
	w.patches = append(w.patches, patch{op: opRemove, node: parent, child: child, index: idx})
	w.touch(parent)
}

func (w *Writer) touch(n *Node) {
	if w.touched == nil {
		w.touched = make(map[*Node]bool)
	}
	if !w.touched[n] {
		w.touched[n] = true
		w.order = append(w.order, n)
	}
}

// Change runs fn inside a transaction. All steps commit together, a
// single undo entry is recorded, and subscribers are notified once.
// Nested calls join the outer transaction.
func (d *Document) Change(fn func(*Writer)) error {
	if d.depth > 0 {
		return fmt.Errorf("doc: nested Change is not supported")
	}
	d.depth++
	w := &Writer{doc: d}
	fn(w)
	d.depth--

	if len(w.patches) == 0 {
		return nil
	}
	d.undo = append(d.undo, w.patches)
	d.redo = nil
	d.notify(changeOf(w.patches, w.order))
	return nil
}

func changeOf(patches []patch, nodes []*Node) Change {
	ch := Change{Nodes: nodes}
	for _, p := range patches {
		if p.op == opInsert || p.op == opRemove {
			ch.Structural = true
			break
		}
	}
	return ch
}

func (d *Document) notify(ch Change) {
	for _, fn := range d.subs {
		fn(ch)
	}
}

// CanUndo reports whether an undo entry exists.
func (d *Document) CanUndo() bool { return len(d.undo) > 0 }

// CanRedo reports whether a redo entry exists.
func (d *Document) CanRedo() bool { return len(d.redo) > 0 }

// Undo reverts the most recent transaction and notifies subscribers.
func (d *Document) Undo() bool {
	if len(d.undo) == 0 {
		return false
	}
	patches := d.undo[len(d.undo)-1]
	d.undo = d.undo[:len(d.undo)-1]

	nodes := revert(patches)
	d.redo = append(d.redo, patches)
	d.notify(changeOf(patches, nodes))
	return true
}

// Redo re-applies the most recently undone transaction.
func (d *Document) Redo() bool {
	if len(d.redo) == 0 {
		return false
	}
	patches := d.redo[len(d.redo)-1]
	d.redo = d.redo[:len(d.redo)-1]

	nodes := reapply(patches)
	d.undo = append(d.undo, patches)
	d.notify(changeOf(patches, nodes))
	return true
}

// revert applies the inverse of each patch in reverse order.
func revert(patches []patch) []*Node {
	var nodes []*Node
	for i := len(patches) - 1; i >= 0; i-- {
		p := patches[i]
		switch p.op {
		case opSetAttr:
			if p.had {
				p.node.setAttr(p.name, p.old)
			} else {
				p.node.removeAttr(p.name)
			}
		case opRemoveAttr:
			p.node.setAttr(p.name, p.old)
		case opInsert:
			if idx := p.node.childIndex(p.child); idx >= 0 {
				p.node.removeChild(idx)
			}
		case opRemove:
			p.node.insertChild(p.child, p.index)
		}
		nodes = append(nodes, p.node)
	}
	return nodes
}

// reapply applies each patch forward again.
func reapply(patches []patch) []*Node {
	var nodes []*Node
	for _, p := range patches {
		switch p.op {
		case opSetAttr:
			p.node.setAttr(p.name, p.value)
		case opRemoveAttr:
			p.node.removeAttr(p.name)
		case opInsert:
			p.node.insertChild(p.child, p.index)
		case opRemove:
			if idx := p.node.childIndex(p.child); idx >= 0 {
				p.node.removeChild(idx)
			}
		}
		nodes = append(nodes, p.node)
	}
	return nodes
}
