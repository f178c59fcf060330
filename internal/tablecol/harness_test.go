package tablecol

import (
	"fmt"
	"image"
	"testing"

	"github.com/xonecas/tabulon/internal/doc"
	"github.com/xonecas/tabulon/internal/render"
)

// fixture assembles a one-root document, its rendered surface, and the
// resize engine the way the editor glue wires them at runtime.
type fixture struct {
	document *doc.Document
	tree     *render.Tree
	mapper   *doc.Mapper
	binder   *ModelBinder
	overlay  *OverlayManager
	drag     *DragController
	gated    map[string]bool
}

// tableDims is rows × cols for one table in the fixture document.
type tableDims struct{ rows, cols int }

func newFixture(t *testing.T, width int, tables ...tableDims) *fixture {
	t.Helper()

	document := doc.New()
	root := doc.NewNode(doc.KindRoot)
	section := render.NewElement("section")
	section.SetAttr(RootIndexAttr, "0")

	mapper := doc.NewMapper()
	for ti, dims := range tables {
		node := doc.NewNode(doc.KindTable)
		table := render.NewElement("table")
		for r := 0; r < dims.rows; r++ {
			rowNode := doc.NewNode(doc.KindRow)
			tr := render.NewElement("tr")
			for c := 0; c < dims.cols; c++ {
				cellNode := doc.NewNode(doc.KindCell)
				cellNode.Append(doc.NewText(fmt.Sprintf("t%dr%dc%d", ti, r, c)))
				rowNode.Append(cellNode)
				td := render.NewElement("td")
				td.Append(render.NewText(fmt.Sprintf("t%dr%dc%d", ti, r, c)))
				tr.Append(td)
			}
			node.Append(rowNode)
			table.Append(tr)
		}
		root.Append(node)
		section.Append(table)
		mapper.Bind(table, node)
	}
	document.AddRoot(root)

	tree := render.NewTree()
	tree.Root.Append(section)
	tree.SetViewport(image.Rect(0, 0, width, 60))

	f := &fixture{
		document: document,
		tree:     tree,
		mapper:   mapper,
		gated:    make(map[string]bool),
	}
	f.binder = NewModelBinder(document, tree, mapper)
	f.overlay = NewOverlayManager(tree, func(id string) bool { return f.gated[id] })
	f.drag = NewDragController(tree, f.overlay, f.binder)
	return f
}

func (f *fixture) renderedTable(i int) *render.Element {
	tables := f.tree.Root.FindAll("table")
	return tables[i]
}

func (f *fixture) modelTable(i int) *doc.Node {
	return doc.TablesIn(f.document.Roots()[0])[i]
}
