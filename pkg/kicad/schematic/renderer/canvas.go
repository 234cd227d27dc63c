package renderer

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/OpenTraceLab/trace/pkg/kicad/sexp"
)

// circle control point distance for a quarter arc
const kappa = 0.5522847498

// canvas draws world-space shapes onto an RGBA image.
type canvas struct {
	img    *image.RGBA
	camera *Camera
	z      *vector.Rasterizer
	face   font.Face
}

func newCanvas(img *image.RGBA, camera *Camera) *canvas {
	b := img.Bounds()
	return &canvas{
		img:    img,
		camera: camera,
		z:      vector.NewRasterizer(b.Dx(), b.Dy()),
		face:   basicfont.Face7x13,
	}
}

func (c *canvas) clear(col color.NRGBA) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *canvas) screen(p sexp.Position) (float32, float32) {
	x, y := c.camera.WorldToScreen(p)
	return float32(x), float32(y)
}

// fill rasterizes the path built by build and composites it in col.
func (c *canvas) fill(col color.NRGBA, build func(z *vector.Rasterizer)) {
	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
	build(c.z)
	c.z.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

// line strokes a segment with the given width in pixels.
func (c *canvas) line(a, b sexp.Position, width float64, col color.NRGBA) {
	x0, y0 := c.camera.WorldToScreen(a)
	x1, y1 := c.camera.WorldToScreen(b)
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		c.dot(a, width/2, col)
		return
	}

	// offset perpendicular to the segment, extended by half a width at both ends
	h := width / 2
	nx, ny := -dy/length*h, dx/length*h
	ex, ey := dx/length*h, dy/length*h
	c.fill(col, func(z *vector.Rasterizer) {
		z.MoveTo(float32(x0-ex+nx), float32(y0-ey+ny))
		z.LineTo(float32(x1+ex+nx), float32(y1+ey+ny))
		z.LineTo(float32(x1+ex-nx), float32(y1+ey-ny))
		z.LineTo(float32(x0-ex-nx), float32(y0-ey-ny))
		z.ClosePath()
	})
}

// polyline strokes consecutive segments through points.
func (c *canvas) polyline(points []sexp.Position, width float64, col color.NRGBA) {
	for i := 0; i+1 < len(points); i++ {
		c.line(points[i], points[i+1], width, col)
	}
}

// dot fills a circle of radius r pixels centered on p.
func (c *canvas) dot(p sexp.Position, r float64, col color.NRGBA) {
	cx, cy := c.screen(p)
	radius := float32(r)
	kr := float32(kappa) * radius
	c.fill(col, func(z *vector.Rasterizer) {
		z.MoveTo(cx, cy-radius)
		z.CubeTo(cx+kr, cy-radius, cx+radius, cy-kr, cx+radius, cy)
		z.CubeTo(cx+radius, cy+kr, cx+kr, cy+radius, cx, cy+radius)
		z.CubeTo(cx-kr, cy+radius, cx-radius, cy+kr, cx-radius, cy)
		z.CubeTo(cx-radius, cy-kr, cx-kr, cy-radius, cx, cy-radius)
		z.ClosePath()
	})
}

// rect fills the box and outlines it.
func (c *canvas) rect(bb sexp.BoundingBox, fill, stroke color.NRGBA, width float64) {
	x0, y0 := c.screen(bb.Min)
	x1, y1 := c.screen(bb.Max)
	if fill.A > 0 {
		c.fill(fill, func(z *vector.Rasterizer) {
			z.MoveTo(x0, y0)
			z.LineTo(x1, y0)
			z.LineTo(x1, y1)
			z.LineTo(x0, y1)
			z.ClosePath()
		})
	}
	corners := []sexp.Position{
		bb.Min,
		{X: bb.Max.X, Y: bb.Min.Y},
		bb.Max,
		{X: bb.Min.X, Y: bb.Max.Y},
		bb.Min,
	}
	c.polyline(corners, width, stroke)
}

// text draws s with its baseline starting at p, offset by dx, dy pixels.
func (c *canvas) text(p sexp.Position, dx, dy int, s string, col color.NRGBA) {
	x, y := c.camera.WorldToScreen(p)
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.P(int(x)+dx, int(y)+dy),
	}
	d.DrawString(s)
}

// textWidth returns the advance of s in pixels.
func (c *canvas) textWidth(s string) int {
	return font.MeasureString(c.face, s).Ceil()
}
