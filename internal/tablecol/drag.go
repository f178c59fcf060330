package tablecol

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/tabulon/internal/render"
)

// DragSession is the transient state of one in-progress boundary drag.
// At most one exists process-wide; the controller owns its lifecycle
// (created on pointer-down over a handle, destroyed on pointer-up).
type DragSession struct {
	TableID    string
	Boundary   int
	StartX     int
	LeftStart  float64
	RightStart float64
	TableCells int // table's rendered width at drag start
}

// DragController is the Idle → Dragging → Idle state machine that
// redistributes width between the two columns adjacent to a dragged
// boundary. While dragging it reads and writes only the rendering
// tree; the document model is touched once, on commit.
type DragController struct {
	tree    *render.Tree
	overlay *OverlayManager
	binder  *ModelBinder
	session *DragSession
}

// NewDragController wires the controller to its collaborators.
func NewDragController(tree *render.Tree, overlay *OverlayManager, binder *ModelBinder) *DragController {
	return &DragController{tree: tree, overlay: overlay, binder: binder}
}

// Active reports whether a drag session is alive.
func (c *DragController) Active() bool { return c.session != nil }

// ActiveTable returns the resize-identifier of the table being dragged,
// or "" when idle.
func (c *DragController) ActiveTable() string {
	if c.session == nil {
		return ""
	}
	return c.session.TableID
}

// Session returns the live session, nil when idle.
func (c *DragController) Session() *DragSession { return c.session }

// Start transitions Idle→Dragging on pointer-down over a handle. A
// colgroup is synthesized first when the table has none, so the drag
// operates on a stable baseline rather than raw cell geometry.
func (c *DragController) Start(h Handle, pointerX int) error {
	if c.session != nil {
		return fmt.Errorf("drag: session already active for table %s", c.session.TableID)
	}
	table, ok := c.overlay.TableByID(h.TableID)
	if !ok {
		return fmt.Errorf("drag: no rendered table %s", h.TableID)
	}
	widths, ok := EnsureColgroup(table)
	if !ok {
		return fmt.Errorf("drag: table %s has no resizable geometry", h.TableID)
	}
	if h.Boundary < 0 || h.Boundary+1 >= len(widths) {
		return fmt.Errorf("drag: boundary %d out of range for %d columns", h.Boundary, len(widths))
	}
	cells := table.Bounds().Dx()
	if cells == 0 {
		return fmt.Errorf("drag: table %s has zero rendered width", h.TableID)
	}

	c.session = &DragSession{
		TableID:    h.TableID,
		Boundary:   h.Boundary,
		StartX:     pointerX,
		LeftStart:  widths[h.Boundary],
		RightStart: widths[h.Boundary+1],
		TableCells: cells,
	}
	return nil
}

// Move handles pointer motion during a drag: converts the pointer delta
// to a percentage delta, redistributes it across the boundary pair with
// the floor clamp, and applies both new widths to the rendering tree's
// column-definition nodes. Returns the table's full current width list
// for the feedback tooltip. Only the dragged boundary moves; all other
// columns are untouched.
func (c *DragController) Move(pointerX int) (WidthList, bool) {
	s := c.session
	if s == nil {
		return nil, false
	}
	table, ok := c.overlay.TableByID(s.TableID)
	if !ok {
		return nil, false
	}

	delta := float64(pointerX-s.StartX) / float64(s.TableCells) * 100
	newLeft, newRight := ResizePair(s.LeftStart, s.RightStart, delta)

	WriteColWidth(table, s.Boundary, newLeft)
	WriteColWidth(table, s.Boundary+1, newRight)
	c.tree.Layout()

	widths, _ := ColWidths(table)
	return widths, true
}

// End transitions Dragging→Idle on pointer-up: the final widths are
// read back from the rendering tree's column-definition nodes for the
// whole table and handed to the binder for commit. Releasing the
// pointer always commits; there is no cancel path. The one exception
// is a drag released at its starting widths, which has nothing to
// commit and leaves the model untouched.
func (c *DragController) End(pointerX int) error {
	s := c.session
	if s == nil {
		return nil
	}
	c.Move(pointerX)
	c.session = nil

	table, ok := c.overlay.TableByID(s.TableID)
	if !ok {
		return fmt.Errorf("drag: table %s disappeared before commit", s.TableID)
	}
	widths, ok := ColWidths(table)
	if !ok {
		return fmt.Errorf("drag: table %s lost its colgroup before commit", s.TableID)
	}
	if widths[s.Boundary] == s.LeftStart && widths[s.Boundary+1] == s.RightStart {
		// The boundary never moved. Committing now would write the
		// synthesized baseline into the model and dirty the document.
		return nil
	}
	if err := c.binder.Commit(table, widths); err != nil {
		// Recoverable: the rendering tree already shows the dragged
		// widths, the persisted state just lags.
		log.Warn().Err(err).Str("table", s.TableID).Msg("width commit abandoned")
		return err
	}
	return nil
}

// Teardown discards any live session, e.g. when the view is torn down.
func (c *DragController) Teardown() {
	c.session = nil
}
