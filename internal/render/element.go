// Package render is the rendering tree: a DOM-equivalent element tree
// with computed terminal-cell geometry. It mirrors the document's
// structure but is managed separately; the two are correlated only
// through the converter and the binder. This package has no knowledge
// of the document model.
package render

import (
	"image"
	"strings"
)

// Element is a single rendering-tree node.
type Element struct {
	Tag      string
	text     string
	attrs    map[string]string
	styles   map[string]string
	children []*Element
	parent   *Element
	bounds   image.Rectangle
}

// NewElement creates a detached element with the given tag.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// NewText creates a text element.
func NewText(text string) *Element {
	return &Element{Tag: "#text", text: text}
}

// Text returns the element's own text, or the concatenated text of its
// descendants for non-text elements.
func (e *Element) Text() string {
	if e.Tag == "#text" {
		return e.text
	}
	var b strings.Builder
	for _, c := range e.children {
		b.WriteString(c.Text())
	}
	return b.String()
}

// Attr returns the named attribute and whether it is set.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// SetAttr sets an attribute.
func (e *Element) SetAttr(name, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
}

// Style returns the named inline-style property.
func (e *Element) Style(name string) (string, bool) {
	v, ok := e.styles[name]
	return v, ok
}

// SetStyle sets an inline-style property.
func (e *Element) SetStyle(name, value string) {
	if e.styles == nil {
		e.styles = make(map[string]string)
	}
	e.styles[name] = value
}

// HasClass reports whether the class attribute contains name.
func (e *Element) HasClass(name string) bool {
	cls, _ := e.attrs["class"]
	for _, c := range strings.Fields(cls) {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass appends name to the class attribute if absent.
func (e *Element) AddClass(name string) {
	if e.HasClass(name) {
		return
	}
	cls, _ := e.attrs["class"]
	e.SetAttr("class", strings.TrimSpace(cls+" "+name))
}

// Parent returns the parent element, nil when detached.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the child elements in order.
func (e *Element) Children() []*Element { return e.children }

// Append attaches child as the last child.
func (e *Element) Append(child *Element) *Element {
	child.parent = e
	e.children = append(e.children, child)
	return e
}

// InsertAt splices child in at index, clamping out-of-range indexes.
func (e *Element) InsertAt(child *Element, index int) {
	if index < 0 || index > len(e.children) {
		index = len(e.children)
	}
	child.parent = e
	e.children = append(e.children[:index], append([]*Element{child}, e.children[index:]...)...)
}

// Remove detaches e from its parent. No-op when already detached.
func (e *Element) Remove() {
	p := e.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// RemoveChildren detaches every direct child with the given tag and
// returns how many were removed.
func (e *Element) RemoveChildren(tag string) int {
	kept := e.children[:0]
	removed := 0
	for _, c := range e.children {
		if c.Tag == tag {
			c.parent = nil
			removed++
			continue
		}
		kept = append(kept, c)
	}
	e.children = kept
	return removed
}

// FindAll returns e's descendants with the given tag in document order.
func (e *Element) FindAll(tag string) []*Element {
	var out []*Element
	e.walk(func(el *Element) bool {
		if el != e && el.Tag == tag {
			out = append(out, el)
		}
		return true
	})
	return out
}

// First returns the first descendant with the given tag, or nil.
func (e *Element) First(tag string) *Element {
	var found *Element
	e.walk(func(el *Element) bool {
		if el != e && el.Tag == tag {
			found = el
			return false
		}
		return true
	})
	return found
}

// Closest returns the nearest ancestor (including e) with the given tag.
func (e *Element) Closest(tag string) *Element {
	for el := e; el != nil; el = el.parent {
		if el.Tag == tag {
			return el
		}
	}
	return nil
}

func (e *Element) walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// Bounds returns the element's computed geometry from the last layout
// pass, in absolute viewport coordinates.
func (e *Element) Bounds() image.Rectangle { return e.bounds }
