// Package modal provides centered overlay dialogs: a filterable picker
// list and a column-width form.
package modal

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Action is the result of handling a message. nil means no action.
type Action any

// ActionClose signals the modal should be dismissed.
type ActionClose struct{}

// ActionSelect signals a picker item was chosen.
type ActionSelect struct{ Item Item }

// ActionApply signals the widths form was submitted.
type ActionApply struct{ Widths []float64 }

// Item is a single entry in a picker list.
type Item struct {
	Name string
	Desc string
}

// Colors holds the theme colors for a modal.
type Colors struct {
	Fg     string
	Bg     string
	Dim    string
	SelFg  string
	SelBg  string
	Border string
	Error  string
}

// Picker is a filterable input+list modal.
type Picker struct {
	input    []rune
	cursor   int
	all      []Item
	items    []Item
	selected int
	inList   bool // true = list focused, false = input focused

	colors Colors

	// Prompt shown before the input text.
	Prompt string
	// WidthPct is the modal width as a percentage of the app width.
	WidthPct int
}

// NewPicker creates a picker over a fixed item list. Typing filters the
// list by substring match on name and description.
func NewPicker(items []Item, prompt string, colors Colors) Picker {
	return Picker{
		all:      items,
		items:    items,
		Prompt:   prompt,
		WidthPct: 60,
		colors:   colors,
	}
}

// HandleMsg processes a tea.Msg and returns an optional Action.
func (m *Picker) HandleMsg(msg tea.Msg) (Action, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil, nil
	}
	switch key.Keystroke() {
	case "esc":
		return ActionClose{}, nil
	case "enter":
		if len(m.items) == 0 {
			return nil, nil
		}
		idx := m.selected
		if idx >= len(m.items) {
			idx = 0
		}
		return ActionSelect{Item: m.items[idx]}, nil
	case "up", "down":
		m.handleNav(key.Keystroke())
		return nil, nil
	case "backspace":
		if m.cursor > 0 {
			m.input = append(m.input[:m.cursor-1], m.input[m.cursor:]...)
			m.cursor--
			m.refilter()
		}
		return nil, nil
	case "delete":
		if m.cursor < len(m.input) {
			m.input = append(m.input[:m.cursor], m.input[m.cursor+1:]...)
			m.refilter()
		}
		return nil, nil
	case "ctrl+u":
		m.input = m.input[m.cursor:]
		m.cursor = 0
		m.refilter()
		return nil, nil
	case "left", "right", "home", "end", "ctrl+a", "ctrl+e":
		m.handleCursor(key.Keystroke())
		return nil, nil
	}

	if !m.inList && key.Text != "" {
		for _, r := range key.Text {
			m.input = append(m.input[:m.cursor], append([]rune{r}, m.input[m.cursor:]...)...)
			m.cursor++
		}
		m.refilter()
	}
	return nil, nil
}

// refilter recomputes the visible items from the current query.
func (m *Picker) refilter() {
	q := strings.ToLower(string(m.input))
	if q == "" {
		m.items = m.all
	} else {
		var filtered []Item
		for _, item := range m.all {
			if strings.Contains(strings.ToLower(item.Name), q) ||
				strings.Contains(strings.ToLower(item.Desc), q) {
				filtered = append(filtered, item)
			}
		}
		m.items = filtered
	}
	m.selected = 0
	m.inList = false
}

func (m *Picker) handleNav(key string) {
	switch key {
	case "up":
		if m.inList {
			if m.selected > 0 {
				m.selected--
			} else {
				m.inList = false
			}
		}
	case "down":
		if !m.inList {
			if len(m.items) > 0 {
				m.inList = true
				m.selected = 0
			}
		} else if m.selected < len(m.items)-1 {
			m.selected++
		}
	}
}

func (m *Picker) handleCursor(key string) {
	if m.inList {
		return
	}
	switch key {
	case "left":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right":
		if m.cursor < len(m.input) {
			m.cursor++
		}
	case "home", "ctrl+a":
		m.cursor = 0
	case "end", "ctrl+e":
		m.cursor = len(m.input)
	}
}

// View renders the picker at the given app width and height.
func (m *Picker) View(appWidth, appHeight int) string {
	pct := m.WidthPct
	if pct <= 0 {
		pct = 60
	}
	w := appWidth * pct / 100
	h := appHeight * 80 / 100
	if w < 30 {
		w = 30
	}
	if h < 8 {
		h = 8
	}

	innerW := w - 6 // border + padding
	if innerW < 10 {
		innerW = 10
	}

	prompt := m.Prompt
	if prompt == "" {
		prompt = "> "
	}

	inputLine := m.renderInput(prompt)
	listHeight := h - 4 // border top/bottom + input + divider
	if listHeight < 1 {
		listHeight = 1
	}

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Dim))
	divider := dimStyle.Render(strings.Repeat("─", innerW))
	listLines := m.renderList(innerW, listHeight)

	content := inputLine + "\n" + divider
	for _, l := range listLines {
		content += "\n" + l
	}

	return frame(content, w, appWidth, appHeight, m.colors)
}

func (m *Picker) renderInput(prompt string) string {
	if m.inList {
		return prompt + string(m.input)
	}
	before := string(m.input[:m.cursor])
	cursorStyle := lipgloss.NewStyle().Reverse(true)
	cursorChar := " "
	after := ""
	if m.cursor < len(m.input) {
		cursorChar = string(m.input[m.cursor])
		after = string(m.input[m.cursor+1:])
	}
	return prompt + before + cursorStyle.Render(cursorChar) + after
}

func (m *Picker) renderList(innerW, listHeight int) []string {
	scrollOff := 0
	if m.selected >= listHeight {
		scrollOff = m.selected - listHeight + 1
	}

	bg := lipgloss.Color(m.colors.Bg)
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.colors.Dim)).
		Background(bg)
	selStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.colors.SelFg)).
		Background(lipgloss.Color(m.colors.SelBg))

	var lines []string
	for i := scrollOff; i < len(m.items) && len(lines) < listHeight; i++ {
		item := m.items[i]
		if i == m.selected && m.inList {
			lines = append(lines, selStyle.Render(padRight(item.Name, innerW)))
		} else {
			line := item.Name
			if item.Desc != "" {
				line += dimStyle.Render("  " + item.Desc)
			}
			lines = append(lines, padRight(line, innerW))
		}
	}

	for len(lines) < listHeight {
		lines = append(lines, strings.Repeat(" ", innerW))
	}
	return lines
}

// frame wraps modal content in a rounded border and centers it.
func frame(content string, w, appWidth, appHeight int, colors Colors) string {
	bg := lipgloss.Color(colors.Bg)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Border)).
		BorderBackground(bg).
		Foreground(lipgloss.Color(colors.Fg)).
		Background(bg).
		Padding(0, 1).
		Width(w - 2).
		Render(content)

	return lipgloss.Place(appWidth, appHeight, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceStyle(lipgloss.NewStyle().Background(bg)))
}

func padRight(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

func truncate(s string, w int) string {
	if len(s) <= w {
		return s
	}
	if w <= 1 {
		return s[:w]
	}
	return s[:w-1] + "…"
}
