package tablecol

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWidthListRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"even", "25.00,25.00,25.00,25.00", "25.00,25.00,25.00,25.00"},
		{"uneven", "40.00,10.00,25.00,25.00", "40.00,10.00,25.00,25.00"},
		{"normalizes precision", "33.333,33.333,33.334", "33.33,33.33,33.33"},
		{"tolerates percent signs", "50%,50%", "50.00,50.00"},
		{"tolerates spaces", " 70.5 , 29.5 ", "70.50,29.50"},
		{"non-100 sum kept", "30.00,30.00,30.00,30.00", "30.00,30.00,30.00,30.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ParseWidths(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got := w.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			// Round-trip law: parse→serialize→parse is stable.
			again, err := ParseWidths(w.String())
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(w.String(), again.String()); diff != "" {
				t.Errorf("round trip unstable (-first +second):\n%s", diff)
			}
		})
	}
}

func TestParseWidthsErrors(t *testing.T) {
	for _, in := range []string{"", "  ", "12,abc", "12,,13"} {
		if _, err := ParseWidths(in); err == nil {
			t.Errorf("ParseWidths(%q) succeeded", in)
		}
	}
}

func TestResizePair(t *testing.T) {
	tests := []struct {
		name        string
		left, right float64
		delta       float64
		wantLeft    float64
		wantRight   float64
	}{
		{"grow left", 25, 25, 15, 40, 10},
		{"shrink left", 25, 25, -15, 10, 40},
		{"no move", 25, 25, 0, 25, 25},
		{"rounded to tenth", 25, 25, 3.14, 28.1, 21.9},
		{"left clamped to floor", 10, 25, -15, 0.5, 34.5},
		{"right clamped to floor", 25, 10, 15, 34.5, 0.5},
		{"clamp exactly at floor", 10, 25, -9.5, 0.5, 34.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotL, gotR := ResizePair(tt.left, tt.right, tt.delta)
			if gotL != tt.wantLeft || gotR != tt.wantRight {
				t.Errorf("ResizePair(%v, %v, %v) = (%v, %v), want (%v, %v)",
					tt.left, tt.right, tt.delta, gotL, gotR, tt.wantLeft, tt.wantRight)
			}
		})
	}
}

func TestResizePairSumInvariant(t *testing.T) {
	// The pair's combined width never changes during a drag, no matter
	// how many intermediate moves occur or how hard the clamp bites.
	left, right := 33.33, 41.67
	pair := left + right
	for _, delta := range []float64{0.07, -3, 12.5, -41, 60, -0.049, 5.55} {
		nl, nr := ResizePair(left, right, delta)
		if got := nl + nr; math.Abs(got-pair) > 0.1 {
			t.Errorf("delta %v: pair sum %v drifted from %v", delta, got, pair)
		}
		if nl < MinColumnPercent || nr < MinColumnPercent {
			t.Errorf("delta %v: width below floor: %v, %v", delta, nl, nr)
		}
	}
}

func TestFromGeometry(t *testing.T) {
	tests := []struct {
		name  string
		cells []int
		want  string
	}{
		{"even quarters", []int{10, 10, 10, 10}, "25.00,25.00,25.00,25.00"},
		{"halves", []int{20, 20}, "50.00,50.00"},
		{"thirds drift to last", []int{10, 10, 10}, "33.33,33.33,33.34"},
		{"uneven", []int{30, 10}, "75.00,25.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromGeometry(tt.cells)
			if got.String() != tt.want {
				t.Errorf("FromGeometry(%v) = %q, want %q", tt.cells, got.String(), tt.want)
			}
			if math.Abs(got.Sum()-100) > 0.005 {
				t.Errorf("sum = %v, want 100", got.Sum())
			}
		})
	}

	if FromGeometry(nil) != nil {
		t.Error("FromGeometry(nil) != nil")
	}
	if FromGeometry([]int{0, 0}) != nil {
		t.Error("FromGeometry of zero-width cells != nil")
	}
}

func TestClampFloor(t *testing.T) {
	in := WidthList{0.1, -4, 50.006, 49.9}
	got := in.ClampFloor()
	want := WidthList{0.5, 0.5, 50.01, 49.9}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ClampFloor mismatch (-want +got):\n%s", diff)
	}
	// Input untouched.
	if in[0] != 0.1 {
		t.Error("ClampFloor mutated its receiver")
	}
}

func TestSumWarning(t *testing.T) {
	tests := []struct {
		w    WidthList
		want bool
	}{
		{WidthList{50, 50}, false},
		{WidthList{50, 50.05}, false},
		{WidthList{50, 50.2}, true},
		{WidthList{30, 30, 30, 30}, true},
		{WidthList{25, 25, 25, 24.8}, true},
	}
	for _, tt := range tests {
		if got := tt.w.SumWarning(); got != tt.want {
			t.Errorf("SumWarning(%v) = %v, want %v", tt.w, got, tt.want)
		}
	}
}

func TestTooltipLabel(t *testing.T) {
	var tip Tooltip
	tip.Show(5, 3, WidthList{25, 40, 10, 25}, 1)
	want := "25.0 · [40.0 · 10.0] · 25.0 %"
	if got := tip.Label(); got != want {
		t.Errorf("Label() = %q, want %q", got, want)
	}
	tip.Hide()
	if tip.Visible || tip.Label() != "" {
		t.Error("Hide did not clear the tooltip")
	}
}

func TestTooltipShowCopiesWidths(t *testing.T) {
	var tip Tooltip
	live := WidthList{40, 10, 25, 25}
	tip.Show(5, 3, live, 0)
	live[0] = 99

	want := "[40.0 · 10.0] · 25.0 · 25.0 %"
	if got := tip.Label(); got != want {
		t.Errorf("Label() = %q, want %q", got, want)
	}
}
