package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/tabulon/internal/tablecol"
)

// ---------------------------------------------------------------------------
// Mouse filter — throttle high-frequency events at program level.
// ---------------------------------------------------------------------------

var lastMouseEvent time.Time

// MouseEventFilter rate-limits wheel and motion events (15 ms).
// Pass to tea.WithFilter. Never drops clicks or releases.
func MouseEventFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	switch msg.(type) {
	case tea.MouseWheelMsg, tea.MouseMotionMsg:
		now := time.Now()
		if now.Sub(lastMouseEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseEvent = now
	}
	return msg
}

const doubleClickWindow = 400 * time.Millisecond

// mouseXY extracts X, Y from any mouse message via the MouseMsg interface.
func mouseXY(msg tea.MouseMsg) (int, int) {
	ev := msg.Mouse()
	return ev.X, ev.Y
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y := mouseXY(msg)

	switch ev := msg.(type) {
	case tea.MouseWheelMsg:
		m.handleWheel(ev)
		return m, nil

	case tea.MouseClickMsg:
		if ev.Button != tea.MouseLeft || m.sourceView || !inRect(x, y, m.layout.canvas) {
			return m, nil
		}
		return m.handleCanvasClick(x, y)

	case tea.MouseMotionMsg:
		if m.drag.Active() {
			m.handleDragMotion(x, y)
		}
		return m, nil

	case tea.MouseReleaseMsg:
		if m.drag.Active() {
			return m.handleDragRelease(x)
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleWheel(ev tea.MouseWheelMsg) {
	if m.drag.Active() {
		return
	}
	switch ev.Button {
	case tea.MouseWheelUp:
		m.scrollBy(-3)
	case tea.MouseWheelDown:
		m.scrollBy(3)
	}
}

// handleCanvasClick hit-tests the resize handle overlay. A double click
// on a handle opens the widths form; a single click starts a drag.
func (m Model) handleCanvasClick(x, y int) (tea.Model, tea.Cmd) {
	cx, cy := x, y+m.scrollOffset
	h, ok := m.overlay.HandleAt(cx, cy)
	if !ok {
		return m, nil
	}

	now := time.Now().UnixMilli()
	isDouble := now-m.lastClickAt < doubleClickWindow.Milliseconds() &&
		absInt(x-m.lastClickX) <= 1 && absInt(y-m.lastClickY) <= 1
	m.lastClickAt = now
	m.lastClickX, m.lastClickY = x, y

	if isDouble {
		m.drag.Teardown()
		m.openWidthsModal(h.TableID)
		return m, nil
	}

	if err := m.drag.Start(h, cx); err != nil {
		log.Debug().Err(err).Str("table", h.TableID).Msg("drag not started")
		return m, nil
	}
	if table, ok := m.overlay.TableByID(h.TableID); ok {
		if widths, ok := tablecol.ColWidths(table); ok {
			m.tooltip.Show(x, y, widths, h.Boundary)
		}
	}
	return m, nil
}

// handleDragMotion applies pointer movement to the active drag and
// refreshes the tooltip readout.
func (m *Model) handleDragMotion(x, y int) {
	widths, moved := m.drag.Move(x)
	if !moved {
		return
	}
	session := m.drag.Session()
	if session != nil {
		m.tooltip.Show(x, y, widths, session.Boundary)
	}
}

// handleDragRelease commits the drag. Pointer-up always commits; there
// is no cancel path.
func (m Model) handleDragRelease(x int) (tea.Model, tea.Cmd) {
	if err := m.drag.End(x); err != nil {
		m.statusErr = "width change not saved"
	}
	m.tooltip.Hide()
	m.refreshSeq++
	return m, m.scheduleRefresh()
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
