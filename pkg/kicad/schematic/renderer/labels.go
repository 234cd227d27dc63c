package renderer

import (
	"image/color"

	"github.com/OpenTraceLab/trace/pkg/kicad/schematic"
	"github.com/OpenTraceLab/trace/pkg/kicad/sexp"
)

// Label box metrics in pixels, sized for the 7x13 face
const (
	labelAscent  = 10
	labelDescent = 3
	labelPadding = 3
)

// renderLabels draws label text at each anchor. Labels with a shape
// (global and hierarchical) get a frame around the text.
func renderLabels(c *canvas, labels []schematic.Label, col color.NRGBA) {
	for _, label := range labels {
		renderLabel(c, label, col)
	}
}

func renderLabel(c *canvas, label schematic.Label, col color.NRGBA) {
	if label.Text == "" {
		return
	}

	// Text runs left for labels pointing left; rotation is otherwise ignored.
	dx := labelPadding
	if label.Angle == 180 {
		dx = -labelPadding - c.textWidth(label.Text)
	}
	c.text(label.Position, dx, -labelDescent, label.Text, col)

	if label.Shape == "" {
		return
	}
	x, y := c.camera.WorldToScreen(label.Position)
	x0 := x + float64(dx-labelPadding)
	x1 := x0 + float64(c.textWidth(label.Text)+2*labelPadding)
	y0 := y - float64(labelAscent+labelDescent+labelPadding)
	y1 := y + float64(labelPadding)

	frame := sexp.BoundingBox{Min: c.camera.ScreenToWorld(x0, y0), Max: c.camera.ScreenToWorld(x1, y1)}
	c.rect(frame, color.NRGBA{}, col, 1)
}
