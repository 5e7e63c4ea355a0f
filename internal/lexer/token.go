package lexer

import "fmt"

// Position identifies a location in Pulsar source text. Offset is the byte
// offset into the source string; Line and Column are 1-based and counted in
// runes, matching the teacher lexer's Unicode-aware column counting.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String renders the position as "line:column", the form used in parser and
// runtime error messages.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit together with its decoded literal value and
// source position. Only one of IntegerVal/DoubleVal/Literal is meaningful,
// depending on Type; see NewToken.
type Token struct {
	Type       TokenType
	Literal    string
	IntegerVal int64
	DoubleVal  float64
	Pos        Position
}

// NewToken constructs a Token, decoding a FLOAT literal into its numeric
// value. STRING tokens carry their already-escape-decoded text in Literal
// (decoding happens in the lexer's readString, which has access to error
// reporting for malformed escapes). INT tokens are not decoded here: the
// lexer builds those directly so an out-of-range literal can be reported
// through its error accumulator, which this free function has no access
// to.
func NewToken(tokType TokenType, literal string, pos Position) Token {
	tok := Token{Type: tokType, Literal: literal, Pos: pos}
	if tokType == FLOAT {
		tok.DoubleVal = parseFloatLiteral(literal)
	}
	return tok
}

// Length returns the number of runes the token's literal spans, used by
// error carets to underline the right width.
func (t Token) Length() int {
	return len([]rune(t.Literal))
}

// String renders the token for debug/trace output.
func (t Token) String() string {
	switch t.Type {
	case INT:
		return fmt.Sprintf("INT(%d)", t.IntegerVal)
	case FLOAT:
		return fmt.Sprintf("FLOAT(%g)", t.DoubleVal)
	case STRING:
		return fmt.Sprintf("STRING(%q)", t.Literal)
	case IDENT:
		return fmt.Sprintf("IDENT(%s)", t.Literal)
	default:
		return t.Type.String()
	}
}
