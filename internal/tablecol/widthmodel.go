// Package tablecol is the interactive table column-width resize engine:
// the overlay of boundary handles, the pointer-drag state machine, the
// canonical width model, and the binder that commits finished widths
// back to the document model.
package tablecol

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinColumnPercent is the floor clamp: no drag or exact-value apply may
// push a column below this width.
const MinColumnPercent = 0.5

// sumTolerance is the deviation from 100% above which the exact-value
// editor shows a warning. Commits are never blocked on it.
const sumTolerance = 0.1

// WidthList is a table's ordered per-column widths in percent. It is
// the canonical width representation; everything else (colgroup styles,
// the persisted attribute) derives from it.
type WidthList []float64

// ParseWidths deserializes a comma-joined width attribute.
func ParseWidths(s string) (WidthList, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("widths: empty value")
	}
	parts := strings.Split(s, ",")
	w := make(WidthList, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(p), "%"), 64)
		if err != nil {
			return nil, fmt.Errorf("widths: entry %d: %w", i, err)
		}
		w[i] = v
	}
	return w, nil
}

// String serializes the list comma-joined with two-decimal formatting.
func (w WidthList) String() string {
	parts := make([]string, len(w))
	for i, v := range w {
		parts[i] = strconv.FormatFloat(round2(v), 'f', 2, 64)
	}
	return strings.Join(parts, ",")
}

// Sum returns the total width.
func (w WidthList) Sum() float64 {
	var s float64
	for _, v := range w {
		s += v
	}
	return s
}

// Clone returns an independent copy.
func (w WidthList) Clone() WidthList {
	out := make(WidthList, len(w))
	copy(out, w)
	return out
}

// SumWarning reports whether the total deviates from 100% by more than
// the display tolerance. Informational only; never blocks a commit.
func (w WidthList) SumWarning() bool {
	return math.Abs(w.Sum()-100) > sumTolerance
}

// FromGeometry synthesizes a width list from observed cell widths, used
// the first time a table without a colgroup is resized. Entries are
// normalized to two decimals; drift from rounding is corrected on the
// last column so the list sums to exactly 100.
func FromGeometry(cells []int) WidthList {
	total := 0
	for _, c := range cells {
		total += c
	}
	if len(cells) == 0 || total <= 0 {
		return nil
	}
	w := make(WidthList, len(cells))
	sum := 0.0
	for i, c := range cells[:len(cells)-1] {
		w[i] = round2(float64(c) / float64(total) * 100)
		sum += w[i]
	}
	last := round2(100 - sum)
	if last < MinColumnPercent {
		last = MinColumnPercent
	}
	w[len(cells)-1] = last
	return w
}

// ResizePair redistributes deltaPercent from the right column of an
// adjacent pair to the left one, at 0.1% granularity, clamped so neither
// column falls below MinColumnPercent. The pair's combined width is
// invariant: whatever the clamp takes from one side the other absorbs.
func ResizePair(left, right, deltaPercent float64) (newLeft, newRight float64) {
	pair := left + right
	newLeft = round1(left + deltaPercent)
	newRight = round1(right - deltaPercent)

	switch {
	case newLeft < MinColumnPercent:
		newLeft = MinColumnPercent
		newRight = round2(pair - newLeft)
	case newRight < MinColumnPercent:
		newRight = MinColumnPercent
		newLeft = round2(pair - newRight)
	default:
		// One-decimal rounding of both sides can shave up to 0.05 off
		// the pair; give the residue to the right column.
		if d := round2(pair - newLeft - newRight); d != 0 {
			newRight = round2(newRight + d)
		}
	}
	return newLeft, newRight
}

// ClampFloor returns a copy with every entry rounded to two decimals and
// raised to MinColumnPercent where below it. This is the exact-value
// apply path: arbitrary simultaneous changes, floors enforced per
// column, the sum left alone.
func (w WidthList) ClampFloor() WidthList {
	out := make(WidthList, len(w))
	for i, v := range w {
		v = round2(v)
		if v < MinColumnPercent {
			v = MinColumnPercent
		}
		out[i] = v
	}
	return out
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
