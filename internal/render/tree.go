package render

import "image"

// Tree owns the element tree for one viewport, its layout pass, and
// the markup-mutation notification stream.
type Tree struct {
	Root *Element

	viewport image.Rectangle
	subs     []func()
}

// NewTree creates a tree with an empty body root.
func NewTree() *Tree {
	return &Tree{Root: NewElement("body")}
}

// Viewport returns the current viewport rectangle.
func (t *Tree) Viewport() image.Rectangle { return t.viewport }

// SetViewport records the viewport and re-runs layout.
func (t *Tree) SetViewport(r image.Rectangle) {
	t.viewport = r
	t.Layout()
}

// Subscribe registers fn to be called on every markup mutation.
func (t *Tree) Subscribe(fn func()) {
	t.subs = append(t.subs, fn)
}

// NotifyMutated fires the mutation stream. Callers invoke it after a
// batch of imperative element mutations.
func (t *Tree) NotifyMutated() {
	for _, fn := range t.subs {
		fn()
	}
}
