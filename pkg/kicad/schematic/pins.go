package schematic

import (
	"fmt"
	"math"
	"strings"

	"seehuhn.de/go/geom/matrix"
)

// PlacedPin is a library pin moved to its sheet position.
type PlacedPin struct {
	Number string
	Name   string
	At     Position
}

// LibSymbol returns the embedded library symbol with the given id.
func (s *Schematic) LibSymbol(libID string) *LibSymbol {
	for i := range s.LibSymbols {
		if s.LibSymbols[i].Name == libID {
			return &s.LibSymbols[i]
		}
	}
	return nil
}

// PinsFor returns the pins drawn for one unit and body style. Units and
// styles numbered 0 are common to all.
func (ls *LibSymbol) PinsFor(unit, bodyStyle int) []Pin {
	var pins []Pin
	for _, u := range ls.Units {
		if u.Unit != 0 && u.Unit != unit {
			continue
		}
		if u.BodyStyle != 0 && u.BodyStyle != bodyStyle {
			continue
		}
		pins = append(pins, u.Pins...)
	}
	return pins
}

// IsPower reports whether the symbol defines a power net: either it is
// declared with (power) or it comes from a library named like "power".
func (ls *LibSymbol) IsPower() bool {
	if ls.Power {
		return true
	}
	lib, _, found := strings.Cut(ls.Name, ":")
	return found && strings.Contains(strings.ToLower(lib), "power")
}

// TransformPin maps a library pin offset to sheet coordinates for a
// symbol placed at `at` with rotation rot and the given mirror axis.
// Library coordinates are Y up, sheet coordinates Y down.
func TransformPin(offset, at Position, rot Angle, mirror string) Position {
	x, y := offset.X, -offset.Y

	r := math.Mod(float64(rot), 360)
	if r < 0 {
		r += 360
	}
	switch r {
	case 0:
	case 90:
		x, y = y, -x
	case 180:
		x, y = -x, -y
	case 270:
		x, y = -y, x
	default:
		// Rotation is counter-clockwise on screen, i.e. clockwise in Y-up terms.
		m := matrix.RotateDeg(-r)
		x, y = m[0]*x+m[2]*y, m[1]*x+m[3]*y
	}

	switch mirror {
	case "x":
		y = -y
	case "y":
		x = -x
	}

	return Position{X: at.X + x, Y: at.Y + y}
}

// SymbolPins places every pin of sym's unit and body style. It returns
// nil if the library definition is missing.
func (s *Schematic) SymbolPins(sym *Symbol) []PlacedPin {
	lib := s.LibSymbol(sym.LibID)
	if lib == nil {
		return nil
	}
	pins := lib.PinsFor(sym.Unit, sym.BodyStyle)
	placed := make([]PlacedPin, 0, len(pins))
	for _, p := range pins {
		placed = append(placed, PlacedPin{
			Number: p.Number,
			Name:   p.Name,
			At:     TransformPin(p.Position, sym.Position, sym.Angle, sym.Mirror),
		})
	}
	return placed
}

// PinPosition finds pin number on the symbol with reference ref. All units
// sharing the reference are searched.
func (s *Schematic) PinPosition(ref, number string) (Position, error) {
	found := false
	for i := range s.Symbols {
		sym := &s.Symbols[i]
		if sym.Reference() != ref {
			continue
		}
		found = true
		for _, p := range s.SymbolPins(sym) {
			if p.Number == number {
				return p.At, nil
			}
		}
	}
	if !found {
		return Position{}, fmt.Errorf("no symbol with reference %s", ref)
	}
	return Position{}, fmt.Errorf("symbol %s has no pin %s", ref, number)
}
