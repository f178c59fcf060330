package tui

import (
	"image"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/tabulon/internal/convert"
)

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Modal-first: an open dialog swallows keys and mouse events.
	if mdl, cmd, handled := m.updateWidthsModal(msg); handled {
		return mdl, cmd
	}
	if mdl, cmd, handled := m.updateDocModal(msg); handled {
		return mdl, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyPressMsg:
		if mdl, cmd, handled := m.handleKeyPress(msg); handled {
			return mdl, cmd
		}

	case docChangedMsg:
		return m.handleDocChanged(msg)

	case refreshMsg:
		if msg.seq == m.refreshSeq {
			m.overlay.Refresh()
		}
		return m, nil

	case saveDoneMsg:
		m.saving = false
		if msg.err != nil {
			m.statusErr = "save failed: " + msg.err.Error()
			log.Warn().Err(msg.err).Str("path", m.docPath).Msg("document save failed")
		} else {
			m.dirty = false
			m.statusErr = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// handleResize applies a window size change, reflows the document, and
// rebuilds the overlay against the new geometry.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.layout = generateLayout(m.width, m.height)
	m.tree.SetViewport(image.Rect(0, 0, m.width, m.canvasHeight()))
	convert.BuildTree(m.document, m.tree, m.mapper)
	m.overlay.Refresh()
	m.clampScroll()
}

// canvasHeight is the layout viewport height: tall enough that any
// reasonable document lays out fully and scrolls within it.
func (m *Model) canvasHeight() int {
	h := m.height * 8
	if h < 256 {
		h = 256
	}
	return h
}

// handleDocChanged re-derives presentation state after a model commit,
// undo, or redo, then re-arms the refresh debounce. Attribute-only
// changes re-derive colgroups in place; structural ones rebuild the
// tree and the mapper.
func (m Model) handleDocChanged(msg docChangedMsg) (tea.Model, tea.Cmd) {
	if msg.structural {
		convert.BuildTree(m.document, m.tree, m.mapper)
	} else {
		convert.RefreshWidths(m.tree, m.mapper)
	}
	m.dirty = true
	m.refreshSeq++

	cmds := []tea.Cmd{m.scheduleRefresh(), m.waitForUpdate()}
	if m.store != nil {
		if markup, err := convert.Serialize(m.document); err == nil {
			m.store.QueueSave(m.docPath, markup)
		}
	}
	return m, tea.Batch(cmds...)
}

// handleKeyPress processes key events. Returns (model, cmd, true) if handled.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (Model, tea.Cmd, bool) {
	switch msg.Keystroke() {
	case "ctrl+c", "q":
		return *m, tea.Quit, true
	case "ctrl+s":
		if m.store == nil {
			return *m, nil, true
		}
		m.saving = true
		return *m, m.saveCmd(), true
	case "ctrl+z":
		m.document.Undo()
		return *m, nil, true
	case "ctrl+shift+z", "ctrl+y":
		m.document.Redo()
		return *m, nil, true
	case "ctrl+e":
		m.sourceView = !m.sourceView
		m.scrollOffset = 0
		return *m, nil, true
	case "ctrl+o":
		m.openDocModal()
		return *m, nil, true
	case "up":
		m.scrollBy(-1)
		return *m, nil, true
	case "down":
		m.scrollBy(1)
		return *m, nil, true
	case "pgup":
		m.scrollBy(-m.layout.canvas.Dy())
		return *m, nil, true
	case "pgdown":
		m.scrollBy(m.layout.canvas.Dy())
		return *m, nil, true
	case "home":
		m.scrollOffset = 0
		return *m, nil, true
	}
	return Model{}, nil, false
}

// scrollBy moves the viewport and clamps to the content extent.
func (m *Model) scrollBy(delta int) {
	m.scrollOffset += delta
	m.clampScroll()
}

func (m *Model) clampScroll() {
	maxScroll := m.contentHeight() - m.layout.canvas.Dy()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scrollOffset > maxScroll {
		m.scrollOffset = maxScroll
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}
