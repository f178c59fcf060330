package render

import (
	"image"
	"strconv"
	"strings"
)

// Layout computes absolute viewport-coordinate bounds for every element.
// Sections stack vertically; paragraphs take one row; tables take one
// row per table row plus a top and bottom border. Table column widths
// come from the colgroup's percentages when one is present with the
// right cardinality (fixed layout), otherwise columns split the table
// width evenly (content-driven sizing stand-in).
func (t *Tree) Layout() {
	vp := t.viewport
	t.Root.bounds = vp
	y := vp.Min.Y
	for _, section := range t.Root.children {
		top := y
		for _, block := range section.children {
			switch block.Tag {
			case "table":
				y = layoutTable(block, vp.Min.X, y, vp.Dx())
			default:
				block.bounds = image.Rect(vp.Min.X, y, vp.Max.X, y+1)
				y++
			}
			y++ // blank row between blocks
		}
		section.bounds = image.Rect(vp.Min.X, top, vp.Max.X, y)
	}
}

// layoutTable assigns bounds to a table and its colgroup, rows, and
// cells. Returns the y coordinate just below the table.
func layoutTable(table *Element, x, y, width int) int {
	rows := table.FindAll("tr")
	cols := columnCount(table)
	if cols == 0 || width <= 0 {
		table.bounds = image.Rect(x, y, x, y)
		return y
	}

	// One cell per vertical border, the rest split among columns.
	interior := width - (cols + 1)
	if interior < cols {
		interior = cols
		width = interior + cols + 1
	}

	pcts := colgroupPercents(table, cols)
	borders := borderPositions(x, interior, pcts)

	height := len(rows) + 2
	table.bounds = image.Rect(x, y, x+width, y+height)

	if cg := table.First("colgroup"); cg != nil {
		cg.bounds = table.bounds
		for i, col := range cg.children {
			if i < cols {
				col.bounds = image.Rect(borders[i]+1, y, borders[i+1], y+height)
			}
		}
	}

	for j, row := range rows {
		rowY := y + 1 + j
		row.bounds = image.Rect(x, rowY, x+width, rowY+1)
		for i, cell := range row.children {
			if i >= cols {
				break
			}
			cell.bounds = image.Rect(borders[i]+1, rowY, borders[i+1], rowY+1)
		}
	}
	return y + height
}

// columnCount is the number of cells in the first row.
func columnCount(table *Element) int {
	rows := table.FindAll("tr")
	if len(rows) == 0 {
		return 0
	}
	return len(rows[0].children)
}

// colgroupPercents reads the colgroup's width percentages, or an even
// split when the colgroup is missing or its cardinality is stale.
func colgroupPercents(table *Element, cols int) []float64 {
	even := func() []float64 {
		pcts := make([]float64, cols)
		for i := range pcts {
			pcts[i] = 100.0 / float64(cols)
		}
		return pcts
	}
	cg := table.First("colgroup")
	if cg == nil || len(cg.children) != cols {
		return even()
	}
	pcts := make([]float64, cols)
	for i, col := range cg.children {
		v, ok := colPercent(col)
		if !ok {
			return even()
		}
		pcts[i] = v
	}
	return pcts
}

// colPercent parses a col element's width from its inline style, falling
// back to the mirrored width attribute.
func colPercent(col *Element) (float64, bool) {
	raw, ok := col.Style("width")
	if !ok {
		raw, ok = col.Attr("width")
	}
	if !ok {
		return 0, false
	}
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "%")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// borderPositions places the cols+1 vertical border columns. Interior
// borders land at cumulative-percentage offsets so column boundaries
// track the colgroup exactly; rounding drift accumulates into the last
// column rather than shifting earlier boundaries.
func borderPositions(x, interior int, pcts []float64) []int {
	borders := make([]int, len(pcts)+1)
	borders[0] = x
	cum := 0.0
	total := 0.0
	for _, p := range pcts {
		total += p
	}
	if total <= 0 {
		total = 100
	}
	for i, p := range pcts {
		cum += p
		cells := int(cum/total*float64(interior) + 0.5)
		borders[i+1] = x + 1 + i + cells
	}
	return borders
}
