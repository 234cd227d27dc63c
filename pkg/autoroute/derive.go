package autoroute

import (
	"github.com/OpenTraceLab/trace/pkg/cwire"
	"github.com/OpenTraceLab/trace/pkg/kicad/schematic"
	"github.com/OpenTraceLab/trace/pkg/kicad/sexp"
	"github.com/OpenTraceLab/trace/pkg/route"
)

// LabelTolerance is how far a label or pin may sit from a point it names.
const LabelTolerance = 0.1

func point(p schematic.Position) route.Point {
	return route.Point{X: p.X, Y: p.Y}
}

func position(p route.Point) schematic.Position {
	return schematic.Position{X: p.X, Y: p.Y}
}

func box(bb sexp.BoundingBox) route.Box {
	return route.Box{LLx: bb.Min.X, LLy: bb.Min.Y, URx: bb.Max.X, URy: bb.Max.Y}
}

func labelAt(labels []schematic.Label, p route.Point) string {
	for _, l := range labels {
		if route.Distance(point(l.Position), p) <= LabelTolerance {
			return l.Text
		}
	}
	return ""
}

// labelNet returns the net named by a local, global or hierarchical label
// at p, in that order of precedence.
func labelNet(sch *schematic.Schematic, p route.Point) string {
	for _, labels := range [][]schematic.Label{sch.Labels, sch.GlobalLabels, sch.HierLabels} {
		if net := labelAt(labels, p); net != "" {
			return net
		}
	}
	return ""
}

// Derive builds the routing board for a schematic: obstacle boxes for
// symbols and sheets, the pin map with inferred nets, and the existing
// wires tagged with their nets. explicit holds pin nets assigned by the
// cwire file; they take precedence over anything inferred.
func Derive(sch *schematic.Schematic, explicit map[cwire.PinKey]string) route.Board {
	var board route.Board

	index := make(map[node]int)
	for i := range sch.Symbols {
		sym := &sch.Symbols[i]
		lib := sch.LibSymbol(sym.LibID)
		if lib == nil {
			continue
		}
		placed := sch.SymbolPins(sym)

		bb := sexp.NewBoundingBox()
		bb.Expand(sym.Position)
		for _, pp := range placed {
			bb.Expand(pp.At)
		}
		board.Obstacles = append(board.Obstacles, box(bb))

		for _, pp := range placed {
			at := point(pp.At)
			net, ok := explicit[cwire.PinKey{Ref: sym.Reference(), Pin: pp.Number}]
			if !ok {
				net = labelNet(sch, at)
				if net == "" && lib.IsPower() {
					net = sym.Value()
				}
			}
			if cwire.NoNet(net) {
				net = ""
			}

			// One entry per position; a later net replaces an earlier one.
			if j, seen := index[nodeAt(at)]; seen {
				if net != "" {
					board.Pins[j].Net = net
				}
				continue
			}
			index[nodeAt(at)] = len(board.Pins)
			board.Pins = append(board.Pins, route.Pin{At: at, Net: net})
		}
	}

	for _, sh := range sch.Sheets {
		board.Obstacles = append(board.Obstacles, box(sh.Bounds()))
	}

	board.Wires = deriveWires(sch, board.Pins)
	return board
}

// deriveWires splits schematic wires into 2-point records and tags each
// with a net. A wire takes the net of a label or netted pin at one of its
// ends; otherwise it inherits the net of the wires it connects to.
func deriveWires(sch *schematic.Schematic, pins []route.Pin) []route.Wire {
	var wires []route.Wire
	for _, w := range sch.Wires {
		var id string
		if len(w.Points) == 2 {
			id = string(w.UUID)
		}
		for i := 0; i+1 < len(w.Points); i++ {
			wires = append(wires, route.Wire{
				ID:    id,
				Start: point(w.Points[i]),
				End:   point(w.Points[i+1]),
			})
		}
	}

	pinNet := func(p route.Point) string {
		for _, pin := range pins {
			if pin.Net != "" && route.Distance(pin.At, p) <= LabelTolerance {
				return pin.Net
			}
		}
		return ""
	}

	direct := make([]string, len(wires))
	for i, w := range wires {
		net := labelNet(sch, w.Start)
		if net == "" {
			net = labelNet(sch, w.End)
		}
		if net == "" {
			net = pinNet(w.Start)
		}
		if net == "" {
			net = pinNet(w.End)
		}
		direct[i] = net
	}

	nl := NewNetlist()
	for _, w := range wires {
		nl.Connect(w.Start, w.End)
	}
	// An end landing on another wire joins it.
	for _, w := range wires {
		for _, o := range wires {
			for _, p := range []route.Point{w.Start, w.End} {
				if route.PointOnSegment(p, o.Start, o.End, LabelTolerance) {
					nl.Connect(p, o.Start)
				}
			}
		}
	}
	for i, w := range wires {
		nl.Name(w.Start, direct[i])
	}

	for i := range wires {
		if direct[i] != "" {
			wires[i].Net = direct[i]
		} else {
			wires[i].Net = nl.NetAt(wires[i].Start)
		}
	}
	return wires
}

// PinNetFunc returns a lookup of the net of the board pin at a position.
func PinNetFunc(board route.Board) cwire.NetFunc {
	return func(at schematic.Position) string {
		p := point(at)
		for _, pin := range board.Pins {
			if route.Distance(pin.At, p) <= LabelTolerance {
				return pin.Net
			}
		}
		return ""
	}
}
