package tablecol

import (
	"errors"
	"math"
	"testing"
)

func TestDragSynthesizesColgroupOnStart(t *testing.T) {
	f := newFixture(t, 45, tableDims{rows: 2, cols: 4})
	f.overlay.Refresh()

	h := f.overlay.Handles()[0]
	if err := f.drag.Start(h, h.X); err != nil {
		t.Fatal(err)
	}

	widths, ok := ColWidths(f.renderedTable(0))
	if !ok {
		t.Fatal("no colgroup after drag start")
	}
	if widths.String() != "25.00,25.00,25.00,25.00" {
		t.Errorf("synthesized widths = %q", widths.String())
	}
	if !f.drag.Active() || f.drag.ActiveTable() != h.TableID {
		t.Error("session not recorded")
	}
}

func TestDragMoveAndCommit(t *testing.T) {
	f := newFixture(t, 45, tableDims{rows: 2, cols: 4})
	f.overlay.Refresh()

	h := f.overlay.Handles()[0] // boundary between columns 0 and 1
	if err := f.drag.Start(h, h.X); err != nil {
		t.Fatal(err)
	}

	// +9 cells over a 45-cell table = +20%.
	widths, ok := f.drag.Move(h.X + 9)
	if !ok {
		t.Fatal("Move while active returned false")
	}
	if widths.String() != "45.00,5.00,25.00,25.00" {
		t.Errorf("live widths = %q", widths.String())
	}

	if err := f.drag.End(h.X + 9); err != nil {
		t.Fatal(err)
	}
	if f.drag.Active() {
		t.Error("session alive after End")
	}

	got, ok := f.modelTable(0).Attr(WidthsAttr)
	if !ok || got != "45.00,5.00,25.00,25.00" {
		t.Errorf("committed attribute = %q, %v", got, ok)
	}
}

func TestDragReleasedAtStartCommitsNothing(t *testing.T) {
	f := newFixture(t, 45, tableDims{rows: 2, cols: 4})
	f.overlay.Refresh()

	h := f.overlay.Handles()[0]
	if err := f.drag.Start(h, h.X); err != nil {
		t.Fatal(err)
	}
	if err := f.drag.End(h.X); err != nil {
		t.Fatal(err)
	}

	if _, ok := f.modelTable(0).Attr(WidthsAttr); ok {
		t.Error("no-op drag wrote the synthesized widths into the model")
	}
	if f.document.CanUndo() {
		t.Error("no-op drag recorded an undo entry")
	}
}

func TestDragFloorClampAbsorbsIntoPartner(t *testing.T) {
	f := newFixture(t, 45, tableDims{rows: 1, cols: 4})
	f.overlay.Refresh()

	h := f.overlay.Handles()[0]
	if err := f.drag.Start(h, h.X); err != nil {
		t.Fatal(err)
	}
	// -12 cells = -26.7%: column 0 would go to -1.7, clamps to the
	// floor with column 1 absorbing the rest of the pair.
	if err := f.drag.End(h.X - 12); err != nil {
		t.Fatal(err)
	}

	got, _ := f.modelTable(0).Attr(WidthsAttr)
	if got != "0.50,49.50,25.00,25.00" {
		t.Errorf("committed attribute = %q", got)
	}
}

func TestDragPairSumInvariantAcrossMoves(t *testing.T) {
	f := newFixture(t, 45, tableDims{rows: 2, cols: 4})
	f.overlay.Refresh()

	h := f.overlay.Handles()[1] // columns 1 and 2
	if err := f.drag.Start(h, h.X); err != nil {
		t.Fatal(err)
	}
	var widths WidthList
	for _, dx := range []int{2, -5, 9, -30, 14, 1} {
		widths, _ = f.drag.Move(h.X + dx)
	}
	if err := f.drag.End(h.X + 1); err != nil {
		t.Fatal(err)
	}

	if got := widths[1] + widths[2]; math.Abs(got-50) > 0.1 {
		t.Errorf("pair sum = %v, want 50 ± 0.1", got)
	}
	// Columns outside the pair are untouched.
	if widths[0] != 25 || widths[3] != 25 {
		t.Errorf("outer columns moved: %v", widths)
	}
}

func TestDragSecondStartRejected(t *testing.T) {
	f := newFixture(t, 45, tableDims{rows: 1, cols: 4})
	f.overlay.Refresh()

	h := f.overlay.Handles()[0]
	if err := f.drag.Start(h, h.X); err != nil {
		t.Fatal(err)
	}
	if err := f.drag.Start(f.overlay.Handles()[1], 0); err == nil {
		t.Fatal("second concurrent session allowed")
	}
}

func TestDragEndWhileIdleIsNoOp(t *testing.T) {
	f := newFixture(t, 45, tableDims{rows: 1, cols: 4})
	if err := f.drag.End(10); err != nil {
		t.Fatalf("End while idle: %v", err)
	}
}

func TestDragCommitUnresolvedLeavesVisualState(t *testing.T) {
	f := newFixture(t, 45, tableDims{rows: 1, cols: 4})
	f.overlay.Refresh()

	// Break both resolution strategies.
	f.mapper.Clear()
	section := f.tree.Root.Children()[0]
	section.SetAttr(RootIndexAttr, "")

	h := f.overlay.Handles()[0]
	if err := f.drag.Start(h, h.X); err != nil {
		t.Fatal(err)
	}
	f.drag.Move(h.X + 9)
	err := f.drag.End(h.X + 9)
	if !errors.Is(err, ErrUnresolved) {
		t.Fatalf("End error = %v, want ErrUnresolved", err)
	}

	// The rendering tree keeps the dragged widths; the model was never
	// written.
	widths, _ := ColWidths(f.renderedTable(0))
	if widths.String() != "45.00,5.00,25.00,25.00" {
		t.Errorf("visual widths = %q", widths.String())
	}
	if _, ok := f.modelTable(0).Attr(WidthsAttr); ok {
		t.Error("model written despite resolution failure")
	}

	// The overlay keeps functioning.
	f.overlay.Refresh()
	if len(f.overlay.Handles()) == 0 {
		t.Error("overlay stopped producing handles")
	}
}

func TestDragTeardown(t *testing.T) {
	f := newFixture(t, 45, tableDims{rows: 1, cols: 4})
	f.overlay.Refresh()
	h := f.overlay.Handles()[0]
	if err := f.drag.Start(h, h.X); err != nil {
		t.Fatal(err)
	}
	f.drag.Teardown()
	if f.drag.Active() {
		t.Error("session survived teardown")
	}
}
