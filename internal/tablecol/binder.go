package tablecol

import (
	"errors"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/tabulon/internal/doc"
	"github.com/xonecas/tabulon/internal/render"
)

// WidthsAttr is the document-model attribute holding a table's
// serialized width list.
const WidthsAttr = "colwidths"

// RootIndexAttr correlates a rendered editing surface with its document
// root. The converter sets it on every surface it materializes.
const RootIndexAttr = "data-root"

// ErrUnresolved means no resolution strategy could map the rendered
// table to a model table. The commit is abandoned, never made partial.
var ErrUnresolved = errors.New("tablecol: rendered table has no model counterpart")

// Resolver is one strategy for mapping a rendered table to its model
// node. Strategies are ranked; the first success wins.
type Resolver func(*render.Element) (*doc.Node, bool)

// ModelBinder resolves a table observed in the rendering tree to its
// document-model counterpart and commits finished width lists to it.
type ModelBinder struct {
	document  *doc.Document
	tree      *render.Tree
	mapper    *doc.Mapper
	resolvers []Resolver
}

// NewModelBinder builds a binder with the default strategy chain:
// direct mapper lookup first, then positional correlation through the
// containing editing surface.
func NewModelBinder(document *doc.Document, tree *render.Tree, mapper *doc.Mapper) *ModelBinder {
	b := &ModelBinder{document: document, tree: tree, mapper: mapper}
	b.resolvers = []Resolver{b.resolveMapped, b.resolvePositional}
	return b
}

// Resolve runs the strategy chain.
func (b *ModelBinder) Resolve(table *render.Element) (*doc.Node, bool) {
	for _, r := range b.resolvers {
		if n, ok := r(table); ok {
			return n, true
		}
	}
	return nil, false
}

// resolveMapped is the direct view-to-model mapping lookup.
func (b *ModelBinder) resolveMapped(table *render.Element) (*doc.Node, bool) {
	n, ok := b.mapper.ToModel(table)
	if !ok || n.Kind() != doc.KindTable {
		return nil, false
	}
	return n, true
}

// resolvePositional walks each document root, locates its rendered
// surface and confirms it visually contains the table, then correlates
// by position: the nth rendered table within the surface maps to the
// nth model table within the root.
func (b *ModelBinder) resolvePositional(table *render.Element) (*doc.Node, bool) {
	for i, root := range b.document.Roots() {
		surface, ok := b.surfaceFor(i)
		if !ok {
			continue
		}
		if !table.Bounds().In(surface.Bounds()) {
			continue
		}
		rendered := surface.FindAll("table")
		idx := -1
		for j, el := range rendered {
			if el == table {
				idx = j
				break
			}
		}
		if idx < 0 {
			continue
		}
		modelTables := doc.TablesIn(root)
		if idx >= len(modelTables) {
			continue
		}
		return modelTables[idx], true
	}
	return nil, false
}

// surfaceFor finds the rendered editing surface for root index i.
func (b *ModelBinder) surfaceFor(i int) (*render.Element, bool) {
	want := strconv.Itoa(i)
	for _, el := range b.tree.Root.Children() {
		if got, ok := el.Attr(RootIndexAttr); ok && got == want {
			return el, true
		}
	}
	return nil, false
}

// Commit writes the serialized width list as a single attribute on the
// resolved model table, inside one atomic model transaction. On
// resolution failure the commit is abandoned entirely and ErrUnresolved
// returned; the caller decides whether that is worth more than a log line.
func (b *ModelBinder) Commit(table *render.Element, widths WidthList) error {
	node, ok := b.Resolve(table)
	if !ok {
		return ErrUnresolved
	}
	serialized := widths.String()
	log.Debug().Str("widths", serialized).Msg("committing column widths")
	return b.document.Change(func(w *doc.Writer) {
		w.SetAttr(node, WidthsAttr, serialized)
	})
}
