package tablecol

import (
	"strconv"
	"strings"
)

// Tooltip is the ephemeral numeric readout shown while a drag is in
// progress. It lists every column's current width, with the pair
// adjacent to the dragged boundary bracketed.
type Tooltip struct {
	Visible  bool
	X, Y     int
	Widths   WidthList
	Boundary int
}

// Show positions the tooltip and records the live widths. The list is
// copied so later writes through the caller's slice cannot skew the
// readout.
func (t *Tooltip) Show(x, y int, widths WidthList, boundary int) {
	t.Visible = true
	t.X, t.Y = x, y
	t.Widths = widths.Clone()
	t.Boundary = boundary
}

// Hide clears the tooltip.
func (t *Tooltip) Hide() {
	*t = Tooltip{}
}

// Label renders the readout, e.g. "25.0 · [40.0 · 10.0] · 25.0 %".
func (t Tooltip) Label() string {
	if len(t.Widths) == 0 {
		return ""
	}
	parts := make([]string, 0, len(t.Widths))
	for i, w := range t.Widths {
		s := strconv.FormatFloat(w, 'f', 1, 64)
		switch i {
		case t.Boundary:
			s = "[" + s
		case t.Boundary + 1:
			s = s + "]"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " · ") + " %"
}
