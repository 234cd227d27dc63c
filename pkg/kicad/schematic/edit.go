package schematic

import (
	"fmt"
	"io"
	"os"

	"github.com/OpenTraceLab/trace/pkg/kicad/sexp/kicadsexp"
)

// trailer nodes KiCad writes after all drawn items
var trailerNodes = map[string]bool{
	"sheet_instances":  true,
	"symbol_instances": true,
	"embedded_fonts":   true,
}

// insertAt returns the index in Root where new drawn items belong.
func (s *Schematic) insertAt() int {
	for i, item := range s.Root.Items() {
		if l, ok := item.(*kicadsexp.List); ok && trailerNodes[l.Name()] {
			return i
		}
	}
	return s.Root.Len()
}

// AddWire appends a two-point wire with KiCad's default stroke.
func (s *Schematic) AddWire(start, end Position, id UUID) {
	node := kicadsexp.Node("wire",
		kicadsexp.Node("pts", xyNode(start), xyNode(end)),
		kicadsexp.Node("stroke",
			kicadsexp.Node("width", kicadsexp.Num(0)),
			kicadsexp.Node("type", kicadsexp.Sym("default")),
		),
		uuidNode(id),
	)
	s.Root.Insert(s.insertAt(), node)
	s.Wires = append(s.Wires, Wire{Points: []Position{start, end}, UUID: id})
}

// AddJunction appends a junction dot.
func (s *Schematic) AddJunction(at Position, id UUID) {
	node := kicadsexp.Node("junction",
		kicadsexp.Node("at", kicadsexp.Num(at.X), kicadsexp.Num(at.Y)),
		kicadsexp.Node("diameter", kicadsexp.Num(0)),
		kicadsexp.Node("color", kicadsexp.Num(0), kicadsexp.Num(0), kicadsexp.Num(0), kicadsexp.Num(0)),
		uuidNode(id),
	)
	s.Root.Insert(s.insertAt(), node)
	s.Junctions = append(s.Junctions, Junction{Position: at, UUID: id})
}

// RemoveWires deletes the wires with the given uuids and reports how many
// were removed.
func (s *Schematic) RemoveWires(ids ...UUID) int {
	if len(ids) == 0 {
		return 0
	}
	drop := make(map[UUID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	removed := s.Root.Filter(func(item kicadsexp.Sexp) bool {
		l, ok := item.(*kicadsexp.List)
		if !ok || l.Name() != "wire" {
			return true
		}
		return !drop[uuidOf(l)]
	})

	kept := s.Wires[:0]
	for _, w := range s.Wires {
		if !drop[w.UUID] {
			kept = append(kept, w)
		}
	}
	s.Wires = kept

	return removed
}

// WriteTo writes the schematic in KiCad's file layout.
func (s *Schematic) WriteTo(w io.Writer) (int64, error) {
	if s.Root == nil {
		return 0, fmt.Errorf("schematic has no parse tree")
	}
	n, err := io.WriteString(w, kicadsexp.Format(s.Root))
	return int64(n), err
}

// WriteFile writes the schematic to filename.
func (s *Schematic) WriteFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := s.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return f.Close()
}
