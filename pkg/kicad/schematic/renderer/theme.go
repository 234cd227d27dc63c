package renderer

import "image/color"

// Theme represents a color scheme for schematic rendering
type Theme int

const (
	// ThemeLight is a light background theme (white/light gray background)
	ThemeLight Theme = iota
	// ThemeDark is a dark background theme (dark gray/black background)
	ThemeDark
)

// SchematicColors defines the color scheme for rendering schematic elements
type SchematicColors struct {
	Background color.NRGBA
	Grid       color.NRGBA

	// Wires and connections
	Wire      color.NRGBA
	Routed    color.NRGBA // wires added by the autorouter
	Junction  color.NRGBA
	NoConnect color.NRGBA

	// Labels
	LocalLabel  color.NRGBA
	GlobalLabel color.NRGBA
	HierLabel   color.NRGBA

	// Symbols
	SymbolBody color.NRGBA
	SymbolFill color.NRGBA
	SymbolPin  color.NRGBA
	SymbolText color.NRGBA

	// Hierarchical sheets
	Sheet     color.NRGBA
	SheetFill color.NRGBA
	SheetText color.NRGBA
}

// GetSchematicColors returns the color scheme for the given theme
func GetSchematicColors(theme Theme) *SchematicColors {
	switch theme {
	case ThemeDark:
		return getDarkTheme()
	default:
		return getLightTheme()
	}
}

// getLightTheme returns KiCad-style light theme colors
func getLightTheme() *SchematicColors {
	return &SchematicColors{
		Background: color.NRGBA{R: 255, G: 255, B: 255, A: 255}, // White
		Grid:       color.NRGBA{R: 220, G: 220, B: 220, A: 255}, // Light gray

		// KiCad green
		Wire:      color.NRGBA{R: 0, G: 132, B: 0, A: 255},
		Routed:    color.NRGBA{R: 0, G: 90, B: 220, A: 255},
		Junction:  color.NRGBA{R: 0, G: 132, B: 0, A: 255},
		NoConnect: color.NRGBA{R: 0, G: 0, B: 132, A: 255},

		LocalLabel:  color.NRGBA{R: 0, G: 0, B: 0, A: 255},    // Black
		GlobalLabel: color.NRGBA{R: 132, G: 0, B: 0, A: 255},  // Dark red
		HierLabel:   color.NRGBA{R: 132, G: 66, B: 0, A: 255}, // Brown

		SymbolBody: color.NRGBA{R: 132, G: 0, B: 0, A: 255},
		SymbolFill: color.NRGBA{R: 255, G: 255, B: 194, A: 128}, // Light yellow (translucent)
		SymbolPin:  color.NRGBA{R: 132, G: 0, B: 0, A: 255},
		SymbolText: color.NRGBA{R: 0, G: 100, B: 100, A: 255}, // Teal

		Sheet:     color.NRGBA{R: 132, G: 0, B: 132, A: 255}, // Purple
		SheetFill: color.NRGBA{R: 255, G: 255, B: 255, A: 64},
		SheetText: color.NRGBA{R: 0, G: 0, B: 0, A: 255},
	}
}

// getDarkTheme returns KiCad-style dark theme colors
func getDarkTheme() *SchematicColors {
	return &SchematicColors{
		Background: color.NRGBA{R: 30, G: 30, B: 30, A: 255},
		Grid:       color.NRGBA{R: 60, G: 60, B: 60, A: 255},

		Wire:      color.NRGBA{R: 0, G: 255, B: 0, A: 255},
		Routed:    color.NRGBA{R: 80, G: 200, B: 255, A: 255},
		Junction:  color.NRGBA{R: 0, G: 255, B: 0, A: 255},
		NoConnect: color.NRGBA{R: 0, G: 150, B: 255, A: 255},

		LocalLabel:  color.NRGBA{R: 255, G: 255, B: 0, A: 255},   // Yellow
		GlobalLabel: color.NRGBA{R: 255, G: 100, B: 100, A: 255}, // Light red
		HierLabel:   color.NRGBA{R: 255, G: 150, B: 0, A: 255},   // Orange

		SymbolBody: color.NRGBA{R: 255, G: 100, B: 100, A: 255},
		SymbolFill: color.NRGBA{R: 60, G: 60, B: 0, A: 128},
		SymbolPin:  color.NRGBA{R: 255, G: 100, B: 100, A: 255},
		SymbolText: color.NRGBA{R: 100, G: 255, B: 255, A: 255}, // Cyan

		Sheet:     color.NRGBA{R: 255, G: 100, B: 255, A: 255},
		SheetFill: color.NRGBA{R: 50, G: 40, B: 50, A: 64},
		SheetText: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// ParseTheme returns the theme with the given name.
func ParseTheme(name string) (Theme, bool) {
	switch name {
	case "light", "Light":
		return ThemeLight, true
	case "dark", "Dark":
		return ThemeDark, true
	}
	return ThemeLight, false
}

// String returns the theme name as a string
func (t Theme) String() string {
	switch t {
	case ThemeLight:
		return "Light"
	case ThemeDark:
		return "Dark"
	default:
		return "Unknown"
	}
}
