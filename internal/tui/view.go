package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/xonecas/tabulon/internal/convert"
	"github.com/xonecas/tabulon/internal/highlight"
	"github.com/xonecas/tabulon/internal/render"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() tea.View {
	content := m.renderContent()
	switch {
	case m.widthsModal != nil:
		content = m.widthsModal.View(m.width, m.height)
	case m.docModal != nil:
		content = m.docModal.View(m.width, m.height)
	}
	v := tea.NewView(content)
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}

// renderContent produces the string content for the view.
func (m Model) renderContent() string {
	if m.width == 0 {
		return ""
	}

	var lines []string
	if m.sourceView {
		lines = m.sourceLines()
	} else {
		lines = m.documentLines()
	}

	contentH := m.layout.canvas.Dy()
	var b strings.Builder
	for row := 0; row < contentH; row++ {
		idx := m.scrollOffset + row
		if idx < len(lines) {
			line := lines[idx]
			pad := m.width - ansi.StringWidth(line)
			b.WriteString(line)
			if pad > 0 {
				b.WriteString(m.styles.BgFill.Render(strings.Repeat(" ", pad)))
			}
		} else {
			b.WriteString(m.styles.BgFill.Render(strings.Repeat(" ", m.width)))
		}
		b.WriteByte('\n')
	}

	m.renderStatusBar(&b)
	return b.String()
}

// contentHeight is the scrollable extent of the current view mode.
func (m Model) contentHeight() int {
	if m.sourceView {
		return len(m.sourceLines())
	}
	return m.docExtent()
}

// docExtent is the canvas row just below the last laid-out section.
func (m Model) docExtent() int {
	max := 1
	for _, section := range m.tree.Root.Children() {
		if y := section.Bounds().Max.Y; y > max {
			max = y
		}
	}
	return max
}

// sourceLines renders the serialized markup through the highlighter.
func (m Model) sourceLines() []string {
	markup, err := convert.Serialize(m.document)
	if err != nil {
		return []string{m.styles.Error.Render("serialize failed: " + err.Error())}
	}
	theme := m.cfg.UI.SyntaxThemeOrDefault()
	block := highlight.Markup(markup, theme, m.styles.Palette.Bg)
	return highlight.SplitLines(block)
}

// Cell marks drive styling of the painted canvas.
const (
	markText byte = iota
	markBorder
	markHandle
	markHandleHot
	markTooltip
)

// documentLines paints the laid-out document into a rune grid and
// converts each row into a styled string.
func (m Model) documentLines() []string {
	height := m.docExtent()
	width := m.width
	grid := make([][]rune, height)
	marks := make([][]byte, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		marks[i] = make([]byte, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for _, section := range m.tree.Root.Children() {
		for _, block := range section.Children() {
			switch block.Tag {
			case "table":
				m.paintTable(grid, marks, block)
			default:
				paintText(grid, block.Bounds().Min.X, block.Bounds().Min.Y, block.Text(), block.Bounds().Dx())
			}
		}
	}

	m.paintHandles(grid, marks)
	m.paintTooltip(grid, marks)

	lines := make([]string, height)
	for i := range grid {
		lines[i] = m.styleRow(grid[i], marks[i])
	}
	return lines
}

// paintTable draws the table frame and cell text. Border columns come
// from the first row's cell bounds so they match the overlay exactly.
func (m Model) paintTable(grid [][]rune, marks [][]byte, table *render.Element) {
	b := table.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	rows := table.FindAll("tr")
	if len(rows) == 0 {
		return
	}

	xs := []int{b.Min.X}
	for _, cell := range rows[0].Children() {
		xs = append(xs, cell.Bounds().Max.X)
	}

	paintBorderRow(grid, marks, b.Min.Y, xs, '┌', '┬', '┐')
	paintBorderRow(grid, marks, b.Max.Y-1, xs, '└', '┴', '┘')

	for _, row := range rows {
		y := row.Bounds().Min.Y
		for _, x := range xs {
			setCell(grid, marks, x, y, '│', markBorder)
		}
		for _, cell := range row.Children() {
			cb := cell.Bounds()
			paintText(grid, cb.Min.X, cb.Min.Y, cell.Text(), cb.Dx())
		}
	}
}

func paintBorderRow(grid [][]rune, marks [][]byte, y int, xs []int, left, mid, right rune) {
	if y < 0 || y >= len(grid) || len(xs) == 0 {
		return
	}
	for x := xs[0]; x <= xs[len(xs)-1]; x++ {
		setCell(grid, marks, x, y, '─', markBorder)
	}
	setCell(grid, marks, xs[0], y, left, markBorder)
	for _, x := range xs[1 : len(xs)-1] {
		setCell(grid, marks, x, y, mid, markBorder)
	}
	setCell(grid, marks, xs[len(xs)-1], y, right, markBorder)
}

// paintHandles overlays the resize handle columns on top of the borders.
func (m Model) paintHandles(grid [][]rune, marks [][]byte) {
	active := m.drag.Session()
	for _, h := range m.overlay.Handles() {
		mark := markHandle
		if active != nil && active.TableID == h.TableID && active.Boundary == h.Boundary {
			mark = markHandleHot
		}
		for y := h.Top; y < h.Bottom; y++ {
			setCell(grid, marks, h.X, y, '║', mark)
		}
	}
}

// paintTooltip writes the width readout one row above the pointer.
func (m Model) paintTooltip(grid [][]rune, marks [][]byte) {
	if !m.tooltip.Visible {
		return
	}
	y := m.tooltip.Y + m.scrollOffset - 1
	if y < 0 {
		y = 0
	}
	label := []rune(" " + m.tooltip.Label() + " ")
	x := m.tooltip.X
	if x+len(label) > m.width {
		x = m.width - len(label)
	}
	if x < 0 {
		x = 0
	}
	for i, r := range label {
		setCell(grid, marks, x+i, y, r, markTooltip)
	}
}

func paintText(grid [][]rune, x, y int, text string, maxWidth int) {
	if y < 0 || y >= len(grid) || maxWidth <= 0 {
		return
	}
	text = ansi.Truncate(text, maxWidth, "…")
	for i, r := range []rune(text) {
		col := x + i
		if col < 0 || col >= len(grid[y]) {
			break
		}
		grid[y][col] = r
	}
}

func setCell(grid [][]rune, marks [][]byte, x, y int, r rune, mark byte) {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return
	}
	grid[y][x] = r
	marks[y][x] = mark
}

// styleRow converts one grid row to a string, styling runs of cells that
// share a mark.
func (m Model) styleRow(row []rune, rowMarks []byte) string {
	styleFor := func(mark byte) lipgloss.Style {
		switch mark {
		case markBorder:
			return m.styles.Border
		case markHandle:
			return m.styles.Handle
		case markHandleHot:
			return m.styles.HandleHot
		case markTooltip:
			return m.styles.Tooltip
		default:
			return m.styles.Text
		}
	}

	var b strings.Builder
	start := 0
	for i := 1; i <= len(row); i++ {
		if i == len(row) || rowMarks[i] != rowMarks[start] {
			b.WriteString(styleFor(rowMarks[start]).Render(string(row[start:i])))
			start = i
		}
	}
	return b.String()
}
