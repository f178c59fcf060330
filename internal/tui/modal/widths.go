package modal

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Widths is a form modal for editing a table's column width percentages.
// One numeric field per column; enter submits all of them together.
type Widths struct {
	title  string
	fields [][]rune
	cursor int
	row    int
	colors Colors
}

// NewWidths creates a widths form seeded with the current percentages.
func NewWidths(title string, widths []float64, colors Colors) Widths {
	fields := make([][]rune, len(widths))
	for i, w := range widths {
		fields[i] = []rune(strconv.FormatFloat(w, 'f', 1, 64))
	}
	m := Widths{title: title, fields: fields, colors: colors}
	m.cursor = len(m.fields[0])
	return m
}

// Values parses every field. The bool is false if any field is not a
// positive number.
func (m *Widths) Values() ([]float64, bool) {
	out := make([]float64, len(m.fields))
	for i, f := range m.fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(string(f)), 64)
		if err != nil || v <= 0 {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// Sum is the running total of all parseable fields.
func (m *Widths) Sum() float64 {
	total := 0.0
	for _, f := range m.fields {
		if v, err := strconv.ParseFloat(strings.TrimSpace(string(f)), 64); err == nil {
			total += v
		}
	}
	return total
}

// HandleMsg processes key events. Returns ActionApply on submit.
func (m *Widths) HandleMsg(msg tea.Msg) (Action, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil, nil
	}
	field := m.fields[m.row]
	switch key.Keystroke() {
	case "esc":
		return ActionClose{}, nil
	case "enter":
		if values, ok := m.Values(); ok {
			return ActionApply{Widths: values}, nil
		}
		return nil, nil
	case "up", "shift+tab":
		if m.row > 0 {
			m.row--
			m.cursor = len(m.fields[m.row])
		}
	case "down", "tab":
		if m.row < len(m.fields)-1 {
			m.row++
			m.cursor = len(m.fields[m.row])
		}
	case "left":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right":
		if m.cursor < len(field) {
			m.cursor++
		}
	case "home", "ctrl+a":
		m.cursor = 0
	case "end", "ctrl+e":
		m.cursor = len(field)
	case "backspace":
		if m.cursor > 0 {
			m.fields[m.row] = append(field[:m.cursor-1], field[m.cursor:]...)
			m.cursor--
		}
	case "delete":
		if m.cursor < len(field) {
			m.fields[m.row] = append(field[:m.cursor], field[m.cursor+1:]...)
		}
	case "ctrl+u":
		m.fields[m.row] = nil
		m.cursor = 0
	default:
		for _, r := range key.Text {
			if (r < '0' || r > '9') && r != '.' {
				continue
			}
			field = append(field[:m.cursor], append([]rune{r}, field[m.cursor:]...)...)
			m.fields[m.row] = field
			m.cursor++
		}
	}
	return nil, nil
}

// View renders the form centered in the terminal.
func (m *Widths) View(appWidth, appHeight int) string {
	w := appWidth * 40 / 100
	if w < 30 {
		w = 30
	}
	innerW := w - 6

	bg := lipgloss.Color(m.colors.Bg)
	fgStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Fg)).Background(bg)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Dim)).Background(bg)
	cursorStyle := lipgloss.NewStyle().Reverse(true)

	var sb strings.Builder
	sb.WriteString(fgStyle.Bold(true).Render(truncate(m.title, innerW)))
	sb.WriteByte('\n')
	sb.WriteString(dimStyle.Render(strings.Repeat("─", innerW)))

	for i, field := range m.fields {
		label := fmt.Sprintf("col %d  ", i+1)
		line := dimStyle.Render(label)
		if i == m.row {
			before := string(field[:m.cursor])
			cursorChar := " "
			after := ""
			if m.cursor < len(field) {
				cursorChar = string(field[m.cursor])
				after = string(field[m.cursor+1:])
			}
			line += fgStyle.Render(before) + cursorStyle.Render(cursorChar) + fgStyle.Render(after+" %")
		} else {
			line += fgStyle.Render(string(field) + " %")
		}
		sb.WriteByte('\n')
		sb.WriteString(line)
	}

	sb.WriteByte('\n')
	sb.WriteString(dimStyle.Render(strings.Repeat("─", innerW)))
	sb.WriteByte('\n')

	sum := m.Sum()
	total := fmt.Sprintf("total %.1f %%", sum)
	if sum < 99.9 || sum > 100.1 {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Error)).Background(bg)
		sb.WriteString(errStyle.Render(total + "  does not fill the table"))
	} else {
		sb.WriteString(dimStyle.Render(total))
	}

	return frame(sb.String(), w, appWidth, appHeight, m.colors)
}
