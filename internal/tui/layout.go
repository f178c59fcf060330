package tui

import "image"

const statusRows = 2 // separator + status bar

// layout holds the screen regions derived from the window size.
type layout struct {
	canvas image.Rectangle // document area
	status image.Rectangle // bottom status bar (incl. separator)
}

// generateLayout derives screen regions from the window dimensions.
func generateLayout(width, height int) layout {
	contentH := height - statusRows
	if contentH < 0 {
		contentH = 0
	}
	return layout{
		canvas: image.Rect(0, 0, width, contentH),
		status: image.Rect(0, contentH, width, height),
	}
}

// inRect reports whether screen coordinates fall inside a region.
func inRect(x, y int, r image.Rectangle) bool {
	return x >= r.Min.X && x < r.Max.X && y >= r.Min.Y && y < r.Max.Y
}
