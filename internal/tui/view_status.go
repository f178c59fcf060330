package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// renderStatusBar writes the status separator and bar.
func (m Model) renderStatusBar(b *strings.Builder) {
	b.WriteString(m.styles.Border.Render(strings.Repeat("─", m.width)))
	b.WriteByte('\n')

	// -- Left: document path, dirty marker, drag readout --
	var leftParts []string
	path := m.docPath
	if path == "" {
		path = "untitled"
	}
	if m.dirty {
		path += "*"
	}
	leftParts = append(leftParts, m.styles.StatusText.Render(" "+path))
	if m.tooltip.Visible {
		leftParts = append(leftParts, m.styles.HandleHot.Render(m.tooltip.Label()))
	}
	left := strings.Join(leftParts, m.styles.StatusText.Render("  "))

	// -- Right: error, view mode, save spinner --
	var rightParts []string
	if m.statusErr != "" {
		errText := m.statusErr
		if len(errText) > 40 {
			errText = errText[:40] + "…"
		}
		rightParts = append(rightParts, m.styles.Error.Render("✗ "+errText))
	}
	mode := "document"
	if m.sourceView {
		mode = "source"
	}
	rightParts = append(rightParts, m.styles.Dim.Render(mode))
	if m.saving {
		rightParts = append(rightParts, m.styles.HandleHot.Render(strings.TrimSpace(m.spinner.View())))
	}
	right := strings.Join(rightParts, m.styles.StatusText.Render(" "))

	// -- Compose: left + gap + right + trailing space --
	leftW := lipgloss.Width(left)
	rightW := lipgloss.Width(right)
	gap := m.width - leftW - rightW - 1
	if gap < 0 {
		gap = 0
	}
	b.WriteString(left)
	b.WriteString(m.styles.BgFill.Render(strings.Repeat(" ", gap)))
	b.WriteString(right)
	b.WriteString(m.styles.BgFill.Render(" "))
}
