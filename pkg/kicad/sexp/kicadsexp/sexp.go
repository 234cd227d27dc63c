// Package kicadsexp provides a lightweight streaming S-expression reader and
// writer for KiCad files. Atoms remember whether they were quoted so that a
// parsed tree can be edited and written back in KiCad's layout.
package kicadsexp

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Sexp represents an S-expression node.
// It can be either a leaf (atom) or a list.
type Sexp interface {
	// IsLeaf returns true if this is an atom (not a list)
	IsLeaf() bool

	// LeafCount returns the number of elements in a list (1 for atoms)
	LeafCount() int

	// Head returns the first element of a list (the atom itself for atoms)
	Head() Sexp

	// Tail returns the rest of the list after the first element (nil for atoms)
	Tail() Sexp

	// String returns the atom text, or the single-line form of a list
	String() string
}

// Symbol is a bare atom: keyword, number or identifier.
type Symbol string

func (s Symbol) IsLeaf() bool   { return true }
func (s Symbol) LeafCount() int { return 1 }
func (s Symbol) Head() Sexp     { return s }
func (s Symbol) Tail() Sexp     { return nil }
func (s Symbol) String() string { return string(s) }

// Quoted is an atom that was written between double quotes.
// The value holds the unescaped text.
type Quoted string

func (q Quoted) IsLeaf() bool   { return true }
func (q Quoted) LeafCount() int { return 1 }
func (q Quoted) Head() Sexp     { return q }
func (q Quoted) Tail() Sexp     { return nil }
func (q Quoted) String() string { return string(q) }

// List represents a list of S-expressions
type List struct {
	elements []Sexp
}

// NewList creates a list holding items.
func NewList(items ...Sexp) *List {
	return &List{elements: items}
}

func (l *List) IsLeaf() bool { return false }

func (l *List) LeafCount() int {
	return len(l.elements)
}

func (l *List) Head() Sexp {
	if len(l.elements) == 0 {
		return nil
	}
	return l.elements[0]
}

func (l *List) Tail() Sexp {
	if len(l.elements) <= 1 {
		return nil
	}
	return &List{elements: l.elements[1:]}
}

func (l *List) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, elem := range l.elements {
		if i > 0 {
			sb.WriteByte(' ')
		}
		writeInline(&sb, elem)
	}
	sb.WriteByte(')')
	return sb.String()
}

// Get returns the element at the given index
func (l *List) Get(index int) Sexp {
	if index < 0 || index >= len(l.elements) {
		return nil
	}
	return l.elements[index]
}

// Len returns the number of elements in the list
func (l *List) Len() int {
	return len(l.elements)
}

// Items returns the list elements. The slice must not be modified.
func (l *List) Items() []Sexp {
	return l.elements
}

// Append adds items to the end of the list.
func (l *List) Append(items ...Sexp) {
	l.elements = append(l.elements, items...)
}

// Insert places items before index i. An index past the end appends.
func (l *List) Insert(i int, items ...Sexp) {
	if i < 0 {
		i = 0
	}
	if i >= len(l.elements) {
		l.Append(items...)
		return
	}
	l.elements = append(l.elements[:i], append(append([]Sexp(nil), items...), l.elements[i:]...)...)
}

// Filter keeps only the elements for which keep returns true and reports
// how many were removed.
func (l *List) Filter(keep func(Sexp) bool) int {
	kept := l.elements[:0]
	for _, e := range l.elements {
		if keep(e) {
			kept = append(kept, e)
		}
	}
	removed := len(l.elements) - len(kept)
	for i := len(kept); i < len(l.elements); i++ {
		l.elements[i] = nil
	}
	l.elements = kept
	return removed
}

// Name returns the head symbol of the list, or "" if it has none.
func (l *List) Name() string {
	if sym, ok := l.Head().(Symbol); ok {
		return string(sym)
	}
	return ""
}

// Sym creates a bare atom.
func Sym(s string) Symbol { return Symbol(s) }

// Str creates a quoted atom.
func Str(s string) Quoted { return Quoted(s) }

// Num creates a numeric atom with at most four decimals, the precision
// KiCad writes schematic coordinates with.
func Num(f float64) Symbol {
	f = math.Round(f*1e4) / 1e4
	if f == 0 {
		f = 0 // drop negative zero
	}
	return Symbol(strconv.FormatFloat(f, 'f', -1, 64))
}

// Node builds a list whose head is the symbol name.
func Node(name string, items ...Sexp) *List {
	return &List{elements: append([]Sexp{Symbol(name)}, items...)}
}

// Parse parses S-expressions from an io.Reader.
func Parse(r io.Reader) ([]Sexp, error) {
	parser := NewParser(r)
	return parser.ParseAll()
}

// ParseString parses S-expressions from a string (convenience function)
func ParseString(s string) ([]Sexp, error) {
	return Parse(strings.NewReader(s))
}
