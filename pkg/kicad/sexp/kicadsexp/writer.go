package kicadsexp

import (
	"bufio"
	"io"
	"strings"
)

// Write serializes s in KiCad's layout: a list holding only atoms stays on
// one line, any other list puts each nested element on its own line indented
// by one tab, with the closing parenthesis on a line of its own. The points
// of a (pts ...) list are kept together on one line.
func Write(w io.Writer, s Sexp) error {
	bw := bufio.NewWriter(w)
	writeIndented(bw, s, 0)
	bw.WriteByte('\n')
	return bw.Flush()
}

// Format returns the text Write would produce.
func Format(s Sexp) string {
	var sb strings.Builder
	Write(&sb, s)
	return sb.String()
}

type byteWriter interface {
	io.Writer
	io.ByteWriter
	io.StringWriter
}

func writeIndented(w byteWriter, s Sexp, depth int) {
	l, ok := s.(*List)
	if !ok || allAtoms(l) {
		writeInline(w, s)
		return
	}

	w.WriteByte('(')
	i := 0
	// leading atoms share the opening line
	for ; i < len(l.elements) && l.elements[i].IsLeaf(); i++ {
		if i > 0 {
			w.WriteByte(' ')
		}
		writeAtom(w, l.elements[i])
	}
	if l.Name() == "pts" {
		// point lists share a single line
		w.WriteByte('\n')
		writeTabs(w, depth+1)
		for j := i; j < len(l.elements); j++ {
			if j > i {
				w.WriteByte(' ')
			}
			writeInline(w, l.elements[j])
		}
		i = len(l.elements)
	}
	for ; i < len(l.elements); i++ {
		w.WriteByte('\n')
		writeTabs(w, depth+1)
		writeIndented(w, l.elements[i], depth+1)
	}
	w.WriteByte('\n')
	writeTabs(w, depth)
	w.WriteByte(')')
}

func writeInline(w byteWriter, s Sexp) {
	l, ok := s.(*List)
	if !ok {
		writeAtom(w, s)
		return
	}
	w.WriteByte('(')
	for i, e := range l.elements {
		if i > 0 {
			w.WriteByte(' ')
		}
		writeInline(w, e)
	}
	w.WriteByte(')')
}

func writeAtom(w byteWriter, s Sexp) {
	switch a := s.(type) {
	case Quoted:
		w.WriteString(quote(string(a)))
	case Symbol:
		w.WriteString(string(a))
	default:
		w.WriteString(s.String())
	}
}

func writeTabs(w byteWriter, n int) {
	for i := 0; i < n; i++ {
		w.WriteByte('\t')
	}
}

func allAtoms(l *List) bool {
	for _, e := range l.elements {
		if !e.IsLeaf() {
			return false
		}
	}
	return true
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`)

func quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}
