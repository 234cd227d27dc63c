package cwire

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Parser represents a cwire file parser
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser creates a new cwire parser instance
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(CWireLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// Parse parses a cwire file from a reader. filename is used in error
// positions only.
func (p *Parser) Parse(filename string, r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return p.parse(filename, string(data))
}

// ParseString parses a cwire file from a string
func (p *Parser) ParseString(input string) (*File, error) {
	return p.parse("", input)
}

// ParseFile parses a cwire file from a file path
func (p *Parser) ParseFile(filename string) (*File, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(filename, file)
}

func (p *Parser) parse(filename, input string) (*File, error) {
	// every statement is terminated by EOL, including the last one
	f, err := p.parser.ParseString(filename, input+"\n")
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	f.assignRefs()
	return f, nil
}
