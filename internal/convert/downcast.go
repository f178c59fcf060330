// Package convert moves documents between their three representations:
// the document model, the rendering tree, and the persisted HTML
// markup. The model is the source of truth; the rendering tree is
// always regenerated from it, never the other way around.
package convert

import (
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/tabulon/internal/doc"
	"github.com/xonecas/tabulon/internal/render"
	"github.com/xonecas/tabulon/internal/tablecol"
)

// BuildTree regenerates the rendering tree from the document model and
// repopulates the view↔model mapper. The rebuild is total and
// idempotent: prior surfaces are dropped, one section per document root
// is materialized, and every table's column-definition block is derived
// fresh from its width attribute.
func BuildTree(document *doc.Document, tree *render.Tree, mapper *doc.Mapper) {
	tree.Root.RemoveChildren("section")
	mapper.Clear()

	for i, root := range document.Roots() {
		section := render.NewElement("section")
		section.SetAttr(tablecol.RootIndexAttr, strconv.Itoa(i))
		for _, block := range root.Children() {
			switch block.Kind() {
			case doc.KindParagraph:
				p := render.NewElement("p")
				p.Append(render.NewText(textOf(block)))
				section.Append(p)
			case doc.KindTable:
				section.Append(buildTable(block, mapper))
			}
		}
		tree.Root.Append(section)
	}
	tree.Layout()
	tree.NotifyMutated()
}

// RefreshWidths re-derives the column-definition block of every mapped
// table in place. Attribute-only commits leave the tree's structure
// intact, so the full rebuild is skipped and bindings survive.
func RefreshWidths(tree *render.Tree, mapper *doc.Mapper) {
	for _, table := range tree.Root.FindAll("table") {
		node, ok := mapper.ToModel(table)
		if !ok {
			continue
		}
		ApplyWidths(table, node)
	}
	tree.Layout()
	tree.NotifyMutated()
}

// buildTable materializes one table element and binds it to its model
// node so the binder's direct resolution strategy works.
func buildTable(node *doc.Node, mapper *doc.Mapper) *render.Element {
	table := render.NewElement("table")
	for _, rowNode := range node.Children() {
		if rowNode.Kind() != doc.KindRow {
			continue
		}
		tr := render.NewElement("tr")
		for _, cellNode := range rowNode.Children() {
			if cellNode.Kind() != doc.KindCell {
				continue
			}
			td := render.NewElement("td")
			td.Append(render.NewText(textOf(cellNode)))
			tr.Append(td)
		}
		table.Append(tr)
	}
	ApplyWidths(table, node)
	mapper.Bind(table, node)
	return table
}

// ApplyWidths regenerates a table element's column-definition block from
// the model's width attribute: any pre-existing colgroups are removed
// (duplicates collapsed), exactly one is rebuilt with one entry per
// stored width, and the resized marker class plus fixed-layout hint are
// ensured. A stored list whose cardinality no longer matches the
// table's column count is stale data, resolved by regenerating an even
// split from the current column structure rather than remapping.
func ApplyWidths(table *render.Element, node *doc.Node) {
	raw, ok := node.Attr(tablecol.WidthsAttr)
	if !ok {
		table.RemoveChildren("colgroup")
		return
	}
	cols := modelColumnCount(node)
	if cols == 0 {
		return
	}

	widths, err := tablecol.ParseWidths(raw)
	if err != nil || len(widths) != cols {
		log.Debug().
			Str("attr", raw).
			Int("columns", cols).
			Msg("stale column widths, regenerating")
		widths = evenSplit(cols)
	}
	tablecol.SetColgroup(table, widths, 2)
}

// modelColumnCount is the cell count of the model table's first row.
func modelColumnCount(node *doc.Node) int {
	for _, row := range node.Children() {
		if row.Kind() == doc.KindRow {
			return len(row.Children())
		}
	}
	return 0
}

func evenSplit(cols int) tablecol.WidthList {
	cells := make([]int, cols)
	for i := range cells {
		cells[i] = 1
	}
	return tablecol.FromGeometry(cells)
}

// textOf flattens a block's text children.
func textOf(n *doc.Node) string {
	out := ""
	for _, c := range n.Children() {
		if c.Kind() == doc.KindText {
			out += c.Text()
		}
	}
	return out
}
