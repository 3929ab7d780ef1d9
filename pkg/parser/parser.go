// Package parser reads IntCode program text using Participle v2.
// A program is a single line of signed decimal integers separated by
// commas; surrounding whitespace and a trailing newline are tolerated.
package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Tape is the parsed program: the flat cell list loaded into memory
// starting at address 0.
type Tape struct {
	Cells []int64 `parser:"@Int ( ',' @Int )*"`
}

var tapeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Int", Pattern: `-?[0-9]+`},
	{Name: "Comma", Pattern: `,`},
})

// Parser is the IntCode tape parser.
var Parser = participle.MustBuild[Tape](
	participle.Lexer(tapeLexer),
	participle.Elide("Whitespace"),
)

// Parse parses program text into the cell values. Values that do not fit
// int64 are a parse error; whether the tape fits in memory is decided by
// the machine constructor.
func Parse(source string) ([]int64, error) {
	tape, err := Parser.ParseString("", source)
	if err != nil {
		return nil, err
	}
	return tape.Cells, nil
}
