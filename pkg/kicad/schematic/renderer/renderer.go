// Package renderer draws a schematic into a raster image, mainly to
// preview the result of autorouting.
package renderer

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/OpenTraceLab/trace/pkg/kicad/schematic"
	"github.com/OpenTraceLab/trace/pkg/kicad/sexp"
)

// RenderOptions controls the image size and what elements are rendered
type RenderOptions struct {
	Width  int
	Height int
	Fill   float64 // fraction of the image the content spans (default: 0.9)
	Theme  Theme

	// Routed lists wires drawn in the routed color.
	Routed map[schematic.UUID]bool

	ShowWires      bool
	ShowJunctions  bool
	ShowNoConnects bool
	ShowLabels     bool
	ShowSymbols    bool
	ShowSheets     bool
}

// DefaultRenderOptions returns default rendering options (all enabled)
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Width:          1600,
		Height:         1200,
		Fill:           0.9,
		Theme:          ThemeLight,
		ShowWires:      true,
		ShowJunctions:  true,
		ShowNoConnects: true,
		ShowLabels:     true,
		ShowSymbols:    true,
		ShowSheets:     true,
	}
}

// RenderSchematic renders the schematic fitted to an image of the
// configured size.
func RenderSchematic(sch *schematic.Schematic, opts RenderOptions) (*image.RGBA, error) {
	if sch == nil {
		return nil, fmt.Errorf("render: nil schematic")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("render: invalid image size %dx%d", opts.Width, opts.Height)
	}
	if opts.Fill <= 0 || opts.Fill > 1 {
		opts.Fill = 0.9
	}

	camera := NewCamera(opts.Width, opts.Height)
	camera.Fit(contentBounds(sch), opts.Fill)

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	c := newCanvas(img, camera)
	colors := GetSchematicColors(opts.Theme)
	c.clear(colors.Background)

	// Back to front
	if opts.ShowSheets {
		renderSheets(c, sch.Sheets, colors)
	}
	if opts.ShowSymbols {
		renderSymbols(c, sch, colors)
	}
	if opts.ShowWires {
		renderWires(c, sch.Wires, opts.Routed, colors)
	}
	if opts.ShowJunctions {
		renderJunctions(c, sch.Junctions, colors)
	}
	if opts.ShowNoConnects {
		renderNoConnects(c, sch.NoConnects, colors)
	}
	if opts.ShowLabels {
		renderLabels(c, sch.Labels, colors.LocalLabel)
		renderLabels(c, sch.GlobalLabels, colors.GlobalLabel)
		renderLabels(c, sch.HierLabels, colors.HierLabel)
	}

	return img, nil
}

// contentBounds returns the drawn extent, padded so that symbol outlines
// and label text at the edge stay inside the image.
func contentBounds(sch *schematic.Schematic) sexp.BoundingBox {
	bbox := sch.GetBoundingBox()
	if bbox.IsEmpty() {
		return bbox
	}
	const pad = 5.08
	bbox.Min.X -= pad
	bbox.Min.Y -= pad
	bbox.Max.X += pad
	bbox.Max.Y += pad
	return bbox
}

// WritePNG renders the schematic and encodes it as PNG.
func WritePNG(w io.Writer, sch *schematic.Schematic, opts RenderOptions) error {
	img, err := RenderSchematic(sch, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// WritePNGFile renders the schematic into a PNG file.
func WritePNGFile(filename string, sch *schematic.Schematic, opts RenderOptions) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := WritePNG(f, sch, opts); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return f.Close()
}
