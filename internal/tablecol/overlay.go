package tablecol

import (
	"github.com/google/uuid"

	"github.com/xonecas/tabulon/internal/render"
)

// ResizeIDAttr carries the opaque resize-identifier on a rendered table.
// It is assigned lazily, lives only in the rendering tree, and is never
// persisted; its sole job is correlating a table with its handles
// across refreshes.
const ResizeIDAttr = "data-resize-id"

// Handle is one floating grab target over an interior column boundary.
// Coordinates are absolute viewport cells: the overlay layer is rendered
// outside the normal content flow, not relative to any ancestor.
type Handle struct {
	TableID  string
	Boundary int // index of the column left of the boundary
	X        int
	Top      int
	Bottom   int // exclusive
}

// Gate reports whether rebuilding handles for a table must be skipped,
// because a drag session or exact-value editor is active on it.
type Gate func(tableID string) bool

// OverlayManager keeps one set of handles positioned over every visible
// table's interior column boundaries. Handles are purely derivative of
// the current geometry: each refresh is a full rebuild, never a diff.
type OverlayManager struct {
	tree    *render.Tree
	gate    Gate
	handles []Handle
}

// NewOverlayManager creates a manager over the given tree. gate may be
// nil when no interaction sessions exist yet.
func NewOverlayManager(tree *render.Tree, gate Gate) *OverlayManager {
	if gate == nil {
		gate = func(string) bool { return false }
	}
	return &OverlayManager{tree: tree, gate: gate}
}

// Handles returns the current handle set.
func (o *OverlayManager) Handles() []Handle { return o.handles }

// HandleAt hit-tests the handle set against a viewport coordinate.
func (o *OverlayManager) HandleAt(x, y int) (Handle, bool) {
	for _, h := range o.handles {
		if x == h.X && y >= h.Top && y < h.Bottom {
			return h, true
		}
	}
	return Handle{}, false
}

// TableByID finds the rendered table carrying the given resize-identifier.
func (o *OverlayManager) TableByID(id string) (*render.Element, bool) {
	for _, table := range o.tree.Root.FindAll("table") {
		if got, ok := table.Attr(ResizeIDAttr); ok && got == id {
			return table, true
		}
	}
	return nil, false
}

// Refresh rebuilds the handle set from the current rendering tree.
// Tables whose gate is closed keep their previous handles untouched so
// an in-progress gesture never sees its grab target move. Tables with
// zero rows, zero rendered width, or a single first-row cell are
// silently skipped.
func (o *OverlayManager) Refresh() {
	var next []Handle
	for _, h := range o.handles {
		if o.gate(h.TableID) {
			next = append(next, h)
		}
	}

	for _, table := range o.tree.Root.FindAll("table") {
		id := EnsureResizeID(table)
		if o.gate(id) {
			continue // previous handles kept above
		}
		next = append(next, buildHandles(table, id)...)
	}
	o.handles = next
}

// EnsureResizeID returns the table's resize-identifier, assigning a
// fresh one if the table lacks it.
func EnsureResizeID(table *render.Element) string {
	if id, ok := table.Attr(ResizeIDAttr); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	table.SetAttr(ResizeIDAttr, id)
	return id
}

// buildHandles produces one handle per interior boundary of a table,
// positioned from the colgroup when present, else from the first row's
// cell geometry.
func buildHandles(table *render.Element, id string) []Handle {
	bounds := table.Bounds()
	if bounds.Dx() == 0 {
		return nil
	}
	rows := table.FindAll("tr")
	if len(rows) == 0 {
		return nil
	}

	var edges []int
	if cg := table.First("colgroup"); cg != nil && len(cg.Children()) > 1 {
		cols := cg.Children()
		for _, col := range cols[:len(cols)-1] {
			edges = append(edges, col.Bounds().Max.X)
		}
	} else {
		cells := rows[0].Children()
		if len(cells) <= 1 {
			return nil
		}
		for _, cell := range cells[:len(cells)-1] {
			edges = append(edges, cell.Bounds().Max.X)
		}
	}

	handles := make([]Handle, 0, len(edges))
	for i, x := range edges {
		handles = append(handles, Handle{
			TableID:  id,
			Boundary: i,
			X:        x,
			Top:      bounds.Min.Y,
			Bottom:   bounds.Max.Y,
		})
	}
	return handles
}
