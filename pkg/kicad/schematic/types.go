// Package schematic provides parsing, pin geometry and in-place editing for
// KiCad schematic files (.kicad_sch).
package schematic

import (
	"github.com/OpenTraceLab/trace/pkg/kicad/sexp"
	"github.com/OpenTraceLab/trace/pkg/kicad/sexp/kicadsexp"
)

// Re-export shared types from sexp package for convenience
type Position = sexp.Position
type Angle = sexp.Angle
type PositionAngle = sexp.PositionAngle
type Size = sexp.Size
type UUID = sexp.UUID
type Property = sexp.Property

// Schematic represents a complete KiCad schematic file
type Schematic struct {
	Version        int             // File format version
	Generator      string          // Generator info (e.g., "eeschema")
	GeneratorVer   string          // Generator version
	UUID           UUID            // Schematic UUID
	Paper          string          // Paper size (e.g., "A4")
	TitleBlock     TitleBlock      // Title block information
	LibSymbols     []LibSymbol     // Embedded library symbols
	Symbols        []Symbol        // Symbol instances on the schematic
	Wires          []Wire          // Wire connections
	Junctions      []Junction      // Wire junctions
	NoConnects     []NoConnect     // No-connect markers
	Labels         []Label         // Local labels
	GlobalLabels   []Label         // Global labels
	HierLabels     []Label         // Hierarchical labels
	Sheets         []Sheet         // Hierarchical sheet references
	SheetInstances []SheetInstance // Sheet instance paths

	// Root is the parse tree the typed fields were read from. Edits are
	// applied to both so the file can be written back losslessly.
	Root *kicadsexp.List
}

// TitleBlock contains schematic title block information
type TitleBlock struct {
	Title    string
	Date     string
	Revision string
	Company  string
}

// LibSymbol represents an embedded library symbol definition
type LibSymbol struct {
	Name       string       // Symbol name (e.g., "Device:R")
	Power      bool         // Declared with (power)
	InBom      bool         // Include in BOM
	OnBoard    bool         // Place on board
	Properties []Property   // Symbol properties
	Units      []SymbolUnit // Symbol units (for multi-unit symbols)
}

// SymbolUnit represents one (symbol "Name_U_B" ...) sub-definition.
// Unit and BodyStyle are 0 when the unit is shared by all units/styles.
type SymbolUnit struct {
	Name      string
	Unit      int
	BodyStyle int
	Pins      []Pin
}

// Pin represents a symbol pin. Position is the connection point in
// library coordinates (Y up).
type Pin struct {
	Type     string   // Pin type (input, output, bidirectional, etc.)
	Style    string   // Pin style (line, inverted, clock, etc.)
	Position Position // Pin position
	Angle    Angle    // Pin angle (0, 90, 180, 270)
	Length   float64  // Pin length
	Name     string   // Pin name
	Number   string   // Pin number
	Hide     bool     // Hidden pin
}

// Symbol represents a symbol instance placed on the schematic
type Symbol struct {
	LibID      string     // Library identifier (e.g., "Device:R")
	Position   Position   // Position on schematic
	Angle      Angle      // Rotation angle
	Mirror     string     // Mirror mode (x, y, or empty)
	Unit       int        // Unit number (for multi-unit symbols)
	BodyStyle  int        // Body style (De Morgan alternate)
	InBom      bool       // Include in BOM
	OnBoard    bool       // Place on board
	UUID       UUID       // Instance UUID
	Properties []Property // Instance properties (Reference, Value, etc.)
}

// Wire represents a wire connection
type Wire struct {
	Points []Position // Wire points (at least 2)
	UUID   UUID       // Wire UUID
}

// Junction represents a wire junction
type Junction struct {
	Position Position // Junction position
	Diameter float64  // Junction diameter
	UUID     UUID     // Junction UUID
}

// NoConnect represents a no-connect marker
type NoConnect struct {
	Position Position // Marker position
	UUID     UUID     // Marker UUID
}

// Label represents a local, global or hierarchical label
type Label struct {
	Text     string   // Label text
	Shape    string   // Label shape (global and hierarchical only)
	Position Position // Label position
	Angle    Angle    // Label rotation
	UUID     UUID     // Label UUID
}

// Sheet represents a hierarchical sheet reference
type Sheet struct {
	Position Position   // Sheet position
	Size     Size       // Sheet size
	UUID     UUID       // Sheet UUID
	Name     string     // Sheetname property
	FileName string     // Sheetfile property
	Pins     []SheetPin // Hierarchical pins
}

// SheetPin represents a hierarchical pin on a sheet
type SheetPin struct {
	Name     string   // Pin name
	Shape    string   // Pin shape
	Position Position // Pin position
	UUID     UUID     // Pin UUID
}

// SheetInstance represents a sheet instance path
type SheetInstance struct {
	Path string // Instance path
	Page string // Page number
}

// Reference returns the symbol's Reference property.
func (s *Symbol) Reference() string {
	return s.property("Reference")
}

// Value returns the symbol's Value property.
func (s *Symbol) Value() string {
	return s.property("Value")
}

func (s *Symbol) property(key string) string {
	for _, prop := range s.Properties {
		if prop.Key == key {
			return prop.Value
		}
	}
	return ""
}

// GetSymbol returns the first symbol with the given reference designator
func (s *Schematic) GetSymbol(ref string) *Symbol {
	for i := range s.Symbols {
		if s.Symbols[i].Reference() == ref {
			return &s.Symbols[i]
		}
	}
	return nil
}

// GetAllReferences returns all reference designators, once each
func (s *Schematic) GetAllReferences() []string {
	seen := make(map[string]bool)
	var refs []string
	for i := range s.Symbols {
		ref := s.Symbols[i].Reference()
		if ref != "" && !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
	}
	return refs
}

// GetLabels returns all label names (local + global + hierarchical)
func (s *Schematic) GetLabels() []string {
	seen := make(map[string]bool)
	var labels []string

	for _, group := range [][]Label{s.Labels, s.GlobalLabels, s.HierLabels} {
		for _, l := range group {
			if !seen[l.Text] {
				seen[l.Text] = true
				labels = append(labels, l.Text)
			}
		}
	}

	return labels
}

// GetBoundingBox calculates the bounding box of all placed elements,
// including every placed symbol pin.
func (s *Schematic) GetBoundingBox() sexp.BoundingBox {
	bbox := sexp.NewBoundingBox()

	for _, wire := range s.Wires {
		for _, pt := range wire.Points {
			bbox.Expand(pt)
		}
	}

	for i := range s.Symbols {
		bbox.Expand(s.Symbols[i].Position)
		for _, p := range s.SymbolPins(&s.Symbols[i]) {
			bbox.Expand(p.At)
		}
	}

	for _, group := range [][]Label{s.Labels, s.GlobalLabels, s.HierLabels} {
		for _, l := range group {
			bbox.Expand(l.Position)
		}
	}

	for _, sheet := range s.Sheets {
		bbox.ExpandBox(sheet.Bounds())
	}

	for _, junc := range s.Junctions {
		bbox.Expand(junc.Position)
	}

	for _, nc := range s.NoConnects {
		bbox.Expand(nc.Position)
	}

	return bbox
}

// Default sheet size used when a sheet carries no (size ...) node.
const (
	DefaultSheetWidth  = 76.2
	DefaultSheetHeight = 50.8
)

// Bounds returns the sheet rectangle.
func (sh Sheet) Bounds() sexp.BoundingBox {
	size := sh.Size
	if size.Width == 0 && size.Height == 0 {
		size = Size{Width: DefaultSheetWidth, Height: DefaultSheetHeight}
	}
	bbox := sexp.NewBoundingBox()
	bbox.Expand(sh.Position)
	bbox.Expand(Position{X: sh.Position.X + size.Width, Y: sh.Position.Y + size.Height})
	return bbox
}
