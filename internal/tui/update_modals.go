package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/tabulon/internal/convert"
	"github.com/xonecas/tabulon/internal/tablecol"
	"github.com/xonecas/tabulon/internal/tui/modal"
)

// ---------------------------------------------------------------------------
// Document picker
// ---------------------------------------------------------------------------

func (m *Model) openDocModal() {
	docs := m.store.ListDocuments()
	items := make([]modal.Item, len(docs))
	for i, d := range docs {
		items[i] = modal.Item{
			Name: d.Path,
			Desc: d.Updated.Format("2006-01-02 15:04"),
		}
	}
	md := modal.NewPicker(items, "Open: ", m.styles.modalColors())
	md.WidthPct = 70
	m.docModal = &md
}

func (m *Model) updateDocModal(msg tea.Msg) (Model, tea.Cmd, bool) {
	if m.docModal == nil {
		return *m, nil, false
	}
	action, cmd := m.docModal.HandleMsg(msg)
	switch a := action.(type) {
	case modal.ActionClose:
		m.docModal = nil
		return *m, nil, true
	case modal.ActionSelect:
		m.docModal = nil
		return m.loadDocument(a.Item.Name)
	}
	if cmd != nil {
		return *m, cmd, true
	}
	switch msg.(type) {
	case tea.KeyPressMsg, tea.MouseMsg:
		return *m, nil, true
	}
	return *m, nil, false
}

// loadDocument swaps in a stored document, rebuilding the engine wiring
// around the new model.
func (m *Model) loadDocument(path string) (Model, tea.Cmd, bool) {
	markup, ok := m.store.LoadDocument(path)
	if !ok {
		m.statusErr = "document not found: " + path
		return *m, nil, true
	}
	document, err := convert.Parse(strings.NewReader(markup))
	if err != nil {
		m.statusErr = "cannot open " + path
		log.Warn().Err(err).Str("path", path).Msg("document parse failed")
		return *m, nil, true
	}

	fresh := New(m.cfg, document, m.store, path)
	fresh.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	return fresh, fresh.Init(), true
}

// ---------------------------------------------------------------------------
// Column widths form
// ---------------------------------------------------------------------------

func (m *Model) openWidthsModal(tableID string) {
	table, ok := m.overlay.TableByID(tableID)
	if !ok {
		return
	}
	widths, ok := tablecol.EnsureColgroup(table)
	if !ok {
		return
	}
	md := modal.NewWidths("column widths", widths, m.styles.modalColors())
	m.widthsModal = &md
	m.state.editingTable = tableID
}

func (m *Model) updateWidthsModal(msg tea.Msg) (Model, tea.Cmd, bool) {
	if m.widthsModal == nil {
		return *m, nil, false
	}
	action, cmd := m.widthsModal.HandleMsg(msg)
	switch a := action.(type) {
	case modal.ActionClose:
		return m.closeWidthsModal(), nil, true
	case modal.ActionApply:
		mdl := m.applyWidthsForm(tablecol.WidthList(a.Widths))
		mdl.refreshSeq++
		return mdl, mdl.scheduleRefresh(), true
	}
	if cmd != nil {
		return *m, cmd, true
	}
	switch msg.(type) {
	case tea.KeyPressMsg, tea.MouseMsg:
		return *m, nil, true
	}
	return *m, nil, false
}

func (m *Model) closeWidthsModal() Model {
	m.widthsModal = nil
	m.state.editingTable = ""
	return *m
}

// applyWidthsForm pushes the form's values through the same visual and
// commit path a drag uses.
func (m *Model) applyWidthsForm(widths tablecol.WidthList) Model {
	tableID := m.state.editingTable
	mdl := m.closeWidthsModal()

	table, ok := mdl.overlay.TableByID(tableID)
	if !ok {
		return mdl
	}
	clamped := widths.ClampFloor()
	tablecol.SetColgroup(table, clamped, 2)
	mdl.tree.Layout()
	if err := mdl.binder.Commit(table, clamped); err != nil {
		mdl.statusErr = "width change not saved"
	}
	return mdl
}
