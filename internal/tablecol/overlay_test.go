package tablecol

import (
	"image"
	"testing"
)

func TestRefreshBuildsHandlesFromCellGeometry(t *testing.T) {
	f := newFixture(t, 45, tableDims{rows: 2, cols: 4})
	f.overlay.Refresh()

	handles := f.overlay.Handles()
	if len(handles) != 3 {
		t.Fatalf("got %d handles, want 3", len(handles))
	}
	// Interior 40 split evenly: boundaries at 11, 22, 33.
	wantX := []int{11, 22, 33}
	for i, h := range handles {
		if h.X != wantX[i] {
			t.Errorf("handle %d at x=%d, want %d", i, h.X, wantX[i])
		}
		if h.Boundary != i {
			t.Errorf("handle %d boundary = %d", i, h.Boundary)
		}
		if h.Top != 0 || h.Bottom != 4 {
			t.Errorf("handle %d spans [%d,%d), want [0,4)", i, h.Top, h.Bottom)
		}
	}
}

func TestRefreshUsesColgroupBoundaries(t *testing.T) {
	f := newFixture(t, 43, tableDims{rows: 1, cols: 2})
	SetColgroup(f.renderedTable(0), WidthList{75, 25}, 2)
	f.tree.Layout()
	f.overlay.Refresh()

	handles := f.overlay.Handles()
	if len(handles) != 1 {
		t.Fatalf("got %d handles, want 1", len(handles))
	}
	// Interior 40, cumulative 75% = 30 cells: boundary at x=31.
	if handles[0].X != 31 {
		t.Errorf("handle at x=%d, want 31", handles[0].X)
	}
}

func TestRefreshSkipsDegenerateTables(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T) *fixture
	}{
		{"single column", func(t *testing.T) *fixture {
			return newFixture(t, 45, tableDims{rows: 2, cols: 1})
		}},
		{"zero rows", func(t *testing.T) *fixture {
			f := newFixture(t, 45, tableDims{rows: 1, cols: 3})
			for _, tr := range f.renderedTable(0).FindAll("tr") {
				tr.Remove()
			}
			f.tree.Layout()
			return f
		}},
		{"zero width", func(t *testing.T) *fixture {
			f := newFixture(t, 45, tableDims{rows: 2, cols: 3})
			f.tree.SetViewport(image.Rect(0, 0, 0, 60))
			return f
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.build(t)
			f.overlay.Refresh()
			if got := len(f.overlay.Handles()); got != 0 {
				t.Errorf("got %d handles, want 0", got)
			}
		})
	}
}

func TestRefreshAssignsStableResizeIdentifiers(t *testing.T) {
	f := newFixture(t, 45, tableDims{rows: 1, cols: 3}, tableDims{rows: 1, cols: 2})
	f.overlay.Refresh()

	id0, ok := f.renderedTable(0).Attr(ResizeIDAttr)
	if !ok || id0 == "" {
		t.Fatal("first table has no resize identifier")
	}
	id1, _ := f.renderedTable(1).Attr(ResizeIDAttr)
	if id0 == id1 {
		t.Fatal("both tables share a resize identifier")
	}

	f.overlay.Refresh()
	again, _ := f.renderedTable(0).Attr(ResizeIDAttr)
	if again != id0 {
		t.Errorf("identifier changed across refreshes: %q → %q", id0, again)
	}
}

func TestRefreshGateKeepsHandlesUntouched(t *testing.T) {
	f := newFixture(t, 45, tableDims{rows: 2, cols: 4})
	f.overlay.Refresh()
	before := append([]Handle(nil), f.overlay.Handles()...)

	id, _ := f.renderedTable(0).Attr(ResizeIDAttr)
	f.gated[id] = true

	// Geometry changes under the gate; handles must not move.
	SetColgroup(f.renderedTable(0), WidthList{70, 10, 10, 10}, 2)
	f.tree.Layout()
	f.overlay.Refresh()

	after := f.overlay.Handles()
	if len(after) != len(before) {
		t.Fatalf("handle count changed under gate: %d → %d", len(before), len(after))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("handle %d moved under gate: %+v → %+v", i, before[i], after[i])
		}
	}

	// Gate released: next refresh repositions.
	f.gated[id] = false
	f.overlay.Refresh()
	if f.overlay.Handles()[0].X == before[0].X {
		t.Error("handles did not reposition after gate release")
	}
}

func TestHandleAt(t *testing.T) {
	f := newFixture(t, 45, tableDims{rows: 2, cols: 4})
	f.overlay.Refresh()

	if h, ok := f.overlay.HandleAt(11, 2); !ok || h.Boundary != 0 {
		t.Errorf("HandleAt(11,2) = %+v, %v", h, ok)
	}
	if _, ok := f.overlay.HandleAt(11, 4); ok {
		t.Error("hit below the table")
	}
	if _, ok := f.overlay.HandleAt(12, 2); ok {
		t.Error("hit one cell off the boundary")
	}
}

func TestTableByID(t *testing.T) {
	f := newFixture(t, 45, tableDims{rows: 1, cols: 2})
	id := EnsureResizeID(f.renderedTable(0))

	got, ok := f.overlay.TableByID(id)
	if !ok || got != f.renderedTable(0) {
		t.Fatal("TableByID failed for a known identifier")
	}
	if _, ok := f.overlay.TableByID("nope"); ok {
		t.Fatal("TableByID found an unknown identifier")
	}
}
