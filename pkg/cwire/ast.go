// Package cwire parses the compact connection language used to request
// autorouted wires, and resolves it against a schematic.
//
//	# comment
//	pins     R2 2=VOUT 1=MID
//	cwire    CW1 R1.2 -> R2.1 net MID
//	cwire    CW2 R2.2 -> JUNC1
//	junction JUNC1 @ 114.3,60.96
//	cwiredef CW2 114.3,54.61 -> 114.3,60.96
//
// The CW and JUNC references may be left out of cwire and junction
// statements; missing ones are numbered after the highest reference in
// the file. Names may contain "-", so an arrow must be separated from a
// preceding name by whitespace.
package cwire

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// File represents a complete .trc file
type File struct {
	Statements []*Statement `( @@? EOL )*`
}

// Statement is one line of a file
type Statement struct {
	CWire    *CWire    `  @@`
	Def      *CWireDef `| @@`
	Junction *Junction `| @@`
	Pins     *PinNets  `| @@`
}

// CWire requests a connection between two endpoints
// Example: cwire CW1 R1.2 -> R2.1 net MID
type CWire struct {
	Pos  lexer.Position
	Ref  string    `"cwire" ( @Ident (?= Ident) )?`
	From *Endpoint `@@ Arrow`
	To   *Endpoint `@@`
	Net  string    `( "net" @( Ident | String | Number ) )?`
}

// Endpoint is either a component pin (Ref.Pin) or a junction (Ref only).
// The lexer reads R1.2 as one identifier; split separates the pin.
type Endpoint struct {
	Pos lexer.Position
	Ref string `@Ident`
	Pin string
}

func (e *Endpoint) split() {
	if i := strings.IndexByte(e.Ref, '.'); i > 0 && i < len(e.Ref)-1 {
		e.Ref, e.Pin = e.Ref[:i], e.Ref[i+1:]
	}
}

// IsJunction reports whether the endpoint names a junction.
func (e *Endpoint) IsJunction() bool {
	return e.Pin == ""
}

func (e *Endpoint) String() string {
	if e.IsJunction() {
		return e.Ref
	}
	return e.Ref + "." + e.Pin
}

// CWireDef gives the explicit polyline of a cwire, bypassing the router
// Example: cwiredef CW1 10,20 -> 30,20 -> 30,40
type CWireDef struct {
	Pos    lexer.Position
	Ref    string   `"cwiredef" @Ident`
	Points []*Coord `@@ ( Arrow @@ )*`
}

// Coord is an x,y pair in schematic millimeters
type Coord struct {
	X float64 `@Number ","`
	Y float64 `@Number`
}

// Junction names a point that cwires can connect to
// Example: junction JUNC1 @ 114.3,60.96
type Junction struct {
	Pos lexer.Position
	Ref string `"junction" @Ident? "@"`
	At  *Coord `@@`
}

// PinNets assigns nets to pins of one component
// Example: pins U1 1=VCC 2=GND
type PinNets struct {
	Pos  lexer.Position
	Ref  string    `"pins" @Ident`
	Nets []*PinNet `@@+`
}

// PinNet is a single pin=net assignment
type PinNet struct {
	Pin string `@( Ident | Number ) "="`
	Net string `@( Ident | String | Number )`
}

// CWires returns all cwire statements in file order
func (f *File) CWires() []*CWire {
	var out []*CWire
	for _, s := range f.Statements {
		if s.CWire != nil {
			out = append(out, s.CWire)
		}
	}
	return out
}

// Defs returns all cwiredef statements in file order
func (f *File) Defs() []*CWireDef {
	var out []*CWireDef
	for _, s := range f.Statements {
		if s.Def != nil {
			out = append(out, s.Def)
		}
	}
	return out
}

// Junctions returns all junction statements in file order
func (f *File) Junctions() []*Junction {
	var out []*Junction
	for _, s := range f.Statements {
		if s.Junction != nil {
			out = append(out, s.Junction)
		}
	}
	return out
}

// PinKey identifies a pin of a placed component
type PinKey struct {
	Ref string
	Pin string
}

// PinNets collects every pin=net assignment. A later assignment of the
// same pin wins.
func (f *File) PinNets() map[PinKey]string {
	nets := make(map[PinKey]string)
	for _, s := range f.Statements {
		if s.Pins == nil {
			continue
		}
		for _, pn := range s.Pins.Nets {
			nets[PinKey{Ref: s.Pins.Ref, Pin: pn.Pin}] = pn.Net
		}
	}
	return nets
}

// assignRefs splits pin endpoints and numbers the cwires and junctions
// that were written without a reference.
func (f *File) assignRefs() {
	cws := f.CWires()
	next := nextRef(RefPrefix, len(cws), func(i int) string { return cws[i].Ref })
	for _, cw := range cws {
		cw.From.split()
		cw.To.split()
		if cw.Ref == "" {
			cw.Ref = next()
		}
	}

	js := f.Junctions()
	next = nextRef(JunctionPrefix, len(js), func(i int) string { return js[i].Ref })
	for _, j := range js {
		if j.Ref == "" {
			j.Ref = next()
		}
	}
}

// nextRef returns a generator of prefix<n> references numbered after the
// highest prefix<n> among the n existing refs.
func nextRef(prefix string, n int, ref func(int) string) func() string {
	highest := 0
	for i := 0; i < n; i++ {
		num, ok := strings.CutPrefix(ref(i), prefix)
		if !ok {
			continue
		}
		if v, err := strconv.Atoi(num); err == nil && v > highest {
			highest = v
		}
	}
	return func() string {
		highest++
		return fmt.Sprintf("%s%d", prefix, highest)
	}
}
