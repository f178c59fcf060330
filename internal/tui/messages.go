package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/tabulon/internal/convert"
)

// ---------------------------------------------------------------------------
// ELM messages
// ---------------------------------------------------------------------------

// docChangedMsg is emitted by the document subscription after a committed
// transaction, an undo, or a redo.
type docChangedMsg struct {
	structural bool
}

// refreshMsg is the trailing edge of the overlay refresh debounce. Only
// the message matching the latest sequence number is acted on.
type refreshMsg struct{ seq int }

// saveDoneMsg reports the outcome of a document save.
type saveDoneMsg struct{ err error }

// ---------------------------------------------------------------------------
// ELM commands
// ---------------------------------------------------------------------------

// waitForUpdate blocks until the document subscription produces a message.
func (m Model) waitForUpdate() tea.Cmd {
	ch := m.updateChan
	return func() tea.Msg {
		return <-ch
	}
}

// scheduleRefresh arms the overlay refresh debounce. Callers must bump
// refreshSeq first so earlier pending ticks cancel themselves.
func (m Model) scheduleRefresh() tea.Cmd {
	seq := m.refreshSeq
	return tea.Tick(m.cfg.Editor.RefreshDebounceOrDefault(), func(time.Time) tea.Msg {
		return refreshMsg{seq: seq}
	})
}

// saveCmd serializes the document and writes it to the store.
func (m Model) saveCmd() tea.Cmd {
	document := m.document
	st := m.store
	path := m.docPath
	return func() tea.Msg {
		markup, err := convert.Serialize(document)
		if err != nil {
			return saveDoneMsg{err: err}
		}
		return saveDoneMsg{err: st.SaveDocument(path, markup)}
	}
}
