package renderer

import (
	"github.com/OpenTraceLab/trace/pkg/kicad/sexp"
)

// Camera maps schematic coordinates (mm, Y down) onto an image.
type Camera struct {
	// Center position in world coordinates (mm)
	CenterX float64
	CenterY float64

	// Zoom level (pixels per mm)
	Zoom float64

	// Image dimensions (pixels)
	ScreenWidth  int
	ScreenHeight int
}

// NewCamera creates a camera for an image of the given size.
func NewCamera(screenWidth, screenHeight int) *Camera {
	return &Camera{
		Zoom:         10.0, // 10 pixels per mm is a reasonable default
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// WorldToScreen converts world coordinates (mm) to image coordinates (pixels)
func (c *Camera) WorldToScreen(pos sexp.Position) (float64, float64) {
	x := (pos.X-c.CenterX)*c.Zoom + float64(c.ScreenWidth)/2.0
	y := (pos.Y-c.CenterY)*c.Zoom + float64(c.ScreenHeight)/2.0
	return x, y
}

// ScreenToWorld converts image coordinates (pixels) to world coordinates (mm)
func (c *Camera) ScreenToWorld(screenX, screenY float64) sexp.Position {
	return sexp.Position{
		X: (screenX-float64(c.ScreenWidth)/2.0)/c.Zoom + c.CenterX,
		Y: (screenY-float64(c.ScreenHeight)/2.0)/c.Zoom + c.CenterY,
	}
}

// Fit centers the camera on bbox and zooms so that it fills the given
// fraction of the image.
func (c *Camera) Fit(bbox sexp.BoundingBox, fill float64) {
	if bbox.IsEmpty() {
		return
	}

	c.CenterX = (bbox.Min.X + bbox.Max.X) / 2.0
	c.CenterY = (bbox.Min.Y + bbox.Max.Y) / 2.0

	width := bbox.Width()
	height := bbox.Height()
	if width <= 0 && height <= 0 {
		return
	}

	zoomX := float64(c.ScreenWidth) * fill / width
	zoomY := float64(c.ScreenHeight) * fill / height

	// a zero extent gives +Inf and the other axis decides
	if zoomX < zoomY {
		c.Zoom = zoomX
	} else {
		c.Zoom = zoomY
	}
}
