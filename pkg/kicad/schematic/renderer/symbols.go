package renderer

import (
	"github.com/OpenTraceLab/trace/pkg/kicad/schematic"
	"github.com/OpenTraceLab/trace/pkg/kicad/sexp"
)

// bodyMargin pads a symbol outline beyond its pins (mm)
const bodyMargin = 1.27

const (
	outlineWidth = 1.5
	pinRadius    = 2.5
)

// renderSymbols draws every placed symbol as its pin envelope with the
// reference next to it. Only pins are read from the library; symbols
// without a library definition are skipped.
func renderSymbols(c *canvas, sch *schematic.Schematic, colors *SchematicColors) {
	for i := range sch.Symbols {
		symbol := &sch.Symbols[i]
		pins := sch.SymbolPins(symbol)
		if pins == nil {
			continue
		}

		bbox := sexp.NewBoundingBox()
		bbox.Expand(symbol.Position)
		for _, pin := range pins {
			bbox.Expand(pin.At)
		}
		bbox.Min.X -= bodyMargin
		bbox.Min.Y -= bodyMargin
		bbox.Max.X += bodyMargin
		bbox.Max.Y += bodyMargin

		c.rect(bbox, colors.SymbolFill, colors.SymbolBody, outlineWidth)
		for _, pin := range pins {
			c.dot(pin.At, pinRadius, colors.SymbolPin)
		}

		// Reference right of the outline, level with its top
		ref := symbol.Reference()
		if ref != "" {
			c.text(sexp.Position{X: bbox.Max.X, Y: bbox.Min.Y}, 3, 11, ref, colors.SymbolText)
		}
	}
}

// renderSheets draws hierarchical sheet frames and their pins.
func renderSheets(c *canvas, sheets []schematic.Sheet, colors *SchematicColors) {
	for _, sheet := range sheets {
		bbox := sheet.Bounds()
		c.rect(bbox, colors.SheetFill, colors.Sheet, outlineWidth)
		if sheet.Name != "" {
			c.text(bbox.Min, 0, -4, sheet.Name, colors.SheetText)
		}
		for _, pin := range sheet.Pins {
			c.dot(pin.Position, pinRadius, colors.Sheet)
		}
	}
}
