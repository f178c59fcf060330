package highlight

import (
	"strings"
	"testing"
)

func TestMarkup_InjectsBackground(t *testing.T) {
	out := Markup("<p>hello</p>", "vulcan", "#15141b")
	if !strings.HasPrefix(out, "\x1b[48;2;21;20;27m") {
		t.Errorf("missing leading bg sequence: %q", out)
	}
	if !strings.Contains(out, "hello") {
		t.Error("text content lost")
	}
}

func TestMarkup_ResetReappliesBackground(t *testing.T) {
	out := Markup("<table><tr><td>x</td></tr></table>", "vulcan", "#15141b")
	if strings.Contains(strings.ReplaceAll(out, "\x1b[0m\x1b[48;2;21;20;27m", ""), "\x1b[0m") {
		t.Error("found reset not followed by bg sequence")
	}
}

func TestSplitLines_PropagatesStyle(t *testing.T) {
	block := "\x1b[38;2;255;0;0mred\nstill red\x1b[0m\nplain"
	lines := SplitLines(block)
	if len(lines) != 3 {
		t.Fatalf("got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "\x1b[38;2;255;0;0m") {
		t.Errorf("line 1 lost active style: %q", lines[1])
	}
	if strings.HasPrefix(lines[2], "\x1b[") {
		t.Errorf("line 2 should start plain after reset: %q", lines[2])
	}
}

func TestThemePalette_Deterministic(t *testing.T) {
	a := ThemePalette("vulcan")
	b := ThemePalette("vulcan")
	if a != b {
		t.Errorf("palette not deterministic: %+v vs %+v", a, b)
	}
	if a.Bg == "" || a.Fg == "" || a.Accent == "" {
		t.Errorf("palette has empty entries: %+v", a)
	}
}

func TestThemePalette_UnknownThemeFallsBack(t *testing.T) {
	// Chroma resolves unknown names to its fallback style, so this must
	// still yield a usable palette rather than zero values.
	p := ThemePalette("no-such-theme")
	if p.Bg == "" || p.Fg == "" {
		t.Errorf("fallback palette incomplete: %+v", p)
	}
}

func TestLerpHex(t *testing.T) {
	if got := lerpHex("#000000", "#ffffff", 0.5); got != "#808080" {
		t.Errorf("got %s, want #808080", got)
	}
	if got := lerpHex("#000000", "#ffffff", 0); got != "#000000" {
		t.Errorf("got %s, want #000000", got)
	}
}
