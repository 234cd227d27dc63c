package cwire

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// CWireLexer defines the lexical structure of .trc cwire files. Statements
// are line oriented, so newlines are tokens rather than whitespace.
var CWireLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Identifiers come first so "#PWR01" is a reference, not a comment, and
	// "3V3" is a name rather than a number. An identifier needs a non-digit
	// somewhere before its first non-name character, which leaves 114.3 and
	// -60.96 to Number.
	// References, pins and nets: R1.2, +5V, ~RESET, #PWR01, 3V3, -12V, V-, VCC_3.3
	{Name: "Ident", Pattern: `(?:#[A-Za-z0-9_+]|-?[0-9.]*[A-Za-z_+~/!:])[A-Za-z0-9_+~#/!:.\-]*`},

	// Comments (# followed by anything else to end of line)
	{Name: "Comment", Pattern: `#[^\n]*`},

	// Quoted net names with escape sequences
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},

	{Name: "Arrow", Pattern: `->`},
	{Name: "Number", Pattern: `-?[0-9]+(?:\.[0-9]+)?`},
	{Name: "Punct", Pattern: `[,=@]`},

	{Name: "EOL", Pattern: `\n`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
})
