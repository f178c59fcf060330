package render

import (
	"fmt"
	"image"
	"testing"
)

// newTable builds a table element with rows×cols cells and, when pcts is
// non-nil, a colgroup carrying those percentages as inline styles.
func newTable(rows, cols int, pcts []float64) *Element {
	table := NewElement("table")
	if pcts != nil {
		cg := NewElement("colgroup")
		for _, p := range pcts {
			col := NewElement("col")
			col.SetStyle("width", fmt.Sprintf("%.2f%%", p))
			cg.Append(col)
		}
		table.Append(cg)
	}
	for r := 0; r < rows; r++ {
		tr := NewElement("tr")
		for c := 0; c < cols; c++ {
			td := NewElement("td")
			td.Append(NewText("x"))
			tr.Append(td)
		}
		table.Append(tr)
	}
	return table
}

func newTree(blocks ...*Element) *Tree {
	t := NewTree()
	section := NewElement("section")
	section.SetAttr("data-root", "0")
	for _, b := range blocks {
		section.Append(b)
	}
	t.Root.Append(section)
	return t
}

func TestLayoutTableGeometry(t *testing.T) {
	table := newTable(2, 4, nil)
	tr := newTree(table)
	tr.SetViewport(image.Rect(0, 0, 45, 20))

	b := table.Bounds()
	if b.Dx() != 45 {
		t.Errorf("table width = %d, want 45", b.Dx())
	}
	if b.Dy() != 4 { // 2 rows + top and bottom borders
		t.Errorf("table height = %d, want 4", b.Dy())
	}

	// Even split of interior 40 over 4 columns: borders at 0,11,22,33,44.
	rows := table.FindAll("tr")
	want := []image.Rectangle{
		image.Rect(1, 1, 11, 2),
		image.Rect(12, 1, 22, 2),
		image.Rect(23, 1, 33, 2),
		image.Rect(34, 1, 44, 2),
	}
	for i, cell := range rows[0].Children() {
		if cell.Bounds() != want[i] {
			t.Errorf("cell %d bounds = %v, want %v", i, cell.Bounds(), want[i])
		}
	}
}

func TestLayoutColgroupBoundaries(t *testing.T) {
	table := newTable(1, 2, []float64{75, 25})
	tr := newTree(table)
	tr.SetViewport(image.Rect(0, 0, 43, 10))

	cg := table.First("colgroup")
	cols := cg.Children()
	// Interior = 40; boundary after col 0 at cumulative 75% = 30 cells.
	if got := cols[0].Bounds().Max.X; got != 31 {
		t.Errorf("first boundary at %d, want 31", got)
	}
	if got := cols[1].Bounds().Max.X; got != 42 {
		t.Errorf("right border at %d, want 42", got)
	}
}

func TestLayoutStaleColgroupFallsBackToEvenSplit(t *testing.T) {
	// Colgroup ends up with 2 entries while the table has 3 columns.
	table := newTable(1, 3, []float64{60, 20, 20})
	table.First("colgroup").Children()[0].Remove()

	tr := newTree(table)
	tr.SetViewport(image.Rect(0, 0, 34, 10))

	rows := table.FindAll("tr")
	cells := rows[0].Children()
	// Interior 30 split evenly: 10 cells each.
	for i, cell := range cells {
		if got := cell.Bounds().Dx(); got != 10 {
			t.Errorf("cell %d width = %d, want 10", i, got)
		}
	}
}

func TestLayoutZeroWidthViewport(t *testing.T) {
	table := newTable(2, 3, nil)
	tr := newTree(table)
	tr.SetViewport(image.Rect(0, 0, 0, 10))

	if table.Bounds().Dx() != 0 {
		t.Errorf("zero viewport produced table width %d", table.Bounds().Dx())
	}
}

func TestLayoutNonHundredSumStretches(t *testing.T) {
	// Sum 120: the renderer normalizes, stretching columns to full width.
	table := newTable(1, 4, []float64{30, 30, 30, 30})
	tr := newTree(table)
	tr.SetViewport(image.Rect(0, 0, 45, 10))

	cg := table.First("colgroup")
	cols := cg.Children()
	if got := cols[3].Bounds().Max.X; got != 44 {
		t.Errorf("last boundary at %d, want 44 (full stretch)", got)
	}
}

func TestFindAllDocumentOrder(t *testing.T) {
	t1 := newTable(1, 2, nil)
	t2 := newTable(1, 2, nil)
	tr := newTree(NewElement("p"), t1, t2)

	tables := tr.Root.FindAll("table")
	if len(tables) != 2 || tables[0] != t1 || tables[1] != t2 {
		t.Fatalf("FindAll returned %d tables in wrong order", len(tables))
	}
}

func TestRemoveChildrenCollapsesDuplicates(t *testing.T) {
	table := newTable(1, 2, []float64{50, 50})
	dup := NewElement("colgroup")
	table.InsertAt(dup, 1)

	if got := table.RemoveChildren("colgroup"); got != 2 {
		t.Fatalf("removed %d colgroups, want 2", got)
	}
	if table.First("colgroup") != nil {
		t.Fatal("colgroup still present after RemoveChildren")
	}
}

func TestMutationNotification(t *testing.T) {
	tr := newTree(newTable(1, 2, nil))
	fired := 0
	tr.Subscribe(func() { fired++ })
	tr.NotifyMutated()
	tr.NotifyMutated()
	if fired != 2 {
		t.Errorf("fired %d times, want 2", fired)
	}
}

func TestClosest(t *testing.T) {
	table := newTable(1, 2, nil)
	tr := newTree(table)
	_ = tr
	cell := table.FindAll("td")[0]
	if cell.Closest("table") != table {
		t.Fatal("Closest(table) from cell failed")
	}
	if cell.Closest("colgroup") != nil {
		t.Fatal("Closest found a colgroup that is not an ancestor")
	}
}
