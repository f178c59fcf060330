// Package tui is the terminal front end: it paints the rendered document
// tree, routes mouse events into column drags, and keeps the overlay,
// model, and store in sync with edits.
package tui

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/tabulon/internal/config"
	"github.com/xonecas/tabulon/internal/doc"
	"github.com/xonecas/tabulon/internal/highlight"
	"github.com/xonecas/tabulon/internal/render"
	"github.com/xonecas/tabulon/internal/store"
	"github.com/xonecas/tabulon/internal/tablecol"
	"github.com/xonecas/tabulon/internal/tui/modal"
)

// uiState is shared mutable state read by the overlay gate. The gate
// outlives any single Model value, so this lives behind a pointer.
type uiState struct {
	editingTable string // resize ID of the table open in the widths modal
}

// Model is the application model.
type Model struct {
	width  int
	height int
	layout layout
	styles Styles

	cfg      *config.Config
	document *doc.Document
	tree     *render.Tree
	mapper   *doc.Mapper
	overlay  *tablecol.OverlayManager
	drag     *tablecol.DragController
	binder   *tablecol.ModelBinder
	tooltip  tablecol.Tooltip
	state    *uiState

	store   *store.Store
	docPath string
	dirty   bool

	scrollOffset int
	sourceView   bool
	statusErr    string

	refreshSeq int
	saving     bool
	spinner    spinner.Model

	docModal    *modal.Picker
	widthsModal *modal.Widths

	updateChan chan tea.Msg

	// double click detection
	lastClickAt int64 // unix milliseconds
	lastClickX  int
	lastClickY  int
}

// New wires the resize engine around a document and returns the model.
func New(cfg *config.Config, document *doc.Document, st *store.Store, docPath string) Model {
	tree := render.NewTree()
	mapper := doc.NewMapper()
	binder := tablecol.NewModelBinder(document, tree, mapper)

	state := &uiState{}
	var drag *tablecol.DragController
	overlay := tablecol.NewOverlayManager(tree, func(tableID string) bool {
		if drag != nil && drag.ActiveTable() == tableID {
			return true
		}
		return state.editingTable == tableID
	})
	drag = tablecol.NewDragController(tree, overlay, binder)

	palette := highlight.ThemePalette(cfg.UI.SyntaxThemeOrDefault())
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	updateChan := make(chan tea.Msg, 64)
	document.Subscribe(func(ch doc.Change) {
		select {
		case updateChan <- docChangedMsg{structural: ch.Structural}:
		default:
		}
	})

	return Model{
		styles:     newStyles(palette),
		cfg:        cfg,
		document:   document,
		tree:       tree,
		mapper:     mapper,
		overlay:    overlay,
		drag:       drag,
		binder:     binder,
		state:      state,
		store:      st,
		docPath:    docPath,
		spinner:    sp,
		updateChan: updateChan,
	}
}

// Init starts the spinner and the document event listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForUpdate())
}
