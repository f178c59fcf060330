package tablecol

import (
	"strconv"
	"strings"

	"github.com/xonecas/tabulon/internal/render"
)

// ResizedClass marks a table whose column widths are user-controlled.
// Together with the fixed-layout style hint it makes the renderer honor
// percentage widths instead of content-driven sizing.
const ResizedClass = "table-resized"

// SetColgroup removes every existing column-definition block from the
// table (collapsing duplicates defensively) and builds exactly one,
// with one col per width carrying the percentage as both inline style
// and mirrored width attribute. The marker class and fixed-layout hint
// are applied as a side effect.
func SetColgroup(table *render.Element, widths WidthList, decimals int) {
	table.RemoveChildren("colgroup")

	cg := render.NewElement("colgroup")
	for _, w := range widths {
		col := render.NewElement("col")
		pct := strconv.FormatFloat(w, 'f', decimals, 64) + "%"
		col.SetStyle("width", pct)
		col.SetAttr("width", pct)
		cg.Append(col)
	}
	table.InsertAt(cg, 0)

	table.AddClass(ResizedClass)
	table.SetStyle("table-layout", "fixed")
}

// ColWidths reads the table's column-definition block back into a width
// list. Returns false when no colgroup exists or an entry is unparsable.
func ColWidths(table *render.Element) (WidthList, bool) {
	cg := table.First("colgroup")
	if cg == nil || len(cg.Children()) == 0 {
		return nil, false
	}
	widths := make(WidthList, 0, len(cg.Children()))
	for _, col := range cg.Children() {
		raw, ok := col.Style("width")
		if !ok {
			raw, ok = col.Attr("width")
		}
		if !ok {
			return nil, false
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(raw), "%"), 64)
		if err != nil {
			return nil, false
		}
		widths = append(widths, v)
	}
	return widths, true
}

// WriteColWidth updates a single col entry in place, at drag precision
// (one decimal). Returns false for an out-of-range index.
func WriteColWidth(table *render.Element, index int, pct float64) bool {
	cg := table.First("colgroup")
	if cg == nil || index < 0 || index >= len(cg.Children()) {
		return false
	}
	col := cg.Children()[index]
	s := strconv.FormatFloat(pct, 'f', 1, 64) + "%"
	col.SetStyle("width", s)
	col.SetAttr("width", s)
	return true
}

// EnsureColgroup returns the table's current widths, synthesizing a
// column-definition block from the first row's cell geometry when none
// exists yet, so a drag always operates on a stable baseline.
func EnsureColgroup(table *render.Element) (WidthList, bool) {
	if w, ok := ColWidths(table); ok {
		return w, true
	}
	rows := table.FindAll("tr")
	if len(rows) == 0 {
		return nil, false
	}
	cells := rows[0].Children()
	if len(cells) <= 1 {
		return nil, false
	}
	sizes := make([]int, len(cells))
	for i, cell := range cells {
		sizes[i] = cell.Bounds().Dx()
	}
	widths := FromGeometry(sizes)
	if widths == nil {
		return nil, false
	}
	SetColgroup(table, widths, 2)
	return widths, true
}
