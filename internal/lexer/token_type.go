package lexer

// TokenType represents the type of a token in Pulsar source code.
type TokenType int

// Token type constants. Pulsar's grammar is small: a handful of punctuation
// tokens, three keywords, and the literal/identifier classes.
const (
	ILLEGAL TokenType = iota // unexpected character
	EOF                      // end of file

	literalStart
	IDENT  // identifiers: foo, print!, list?, my_var
	INT    // integer literals: 123, 0x1F, 0b1010
	FLOAT  // double literals: 123.45
	STRING // string literals: "hello"
	literalEnd

	keywordStart
	KW_IF   // if
	KW_ELSE // else
	KW_END  // end
	keywordEnd

	// Punctuation
	LPAREN      // (
	RPAREN      // )
	PLUS        // +
	MINUS       // -
	ASTERISK    // *
	DOT         // .
	COLON       // :
	RIGHT_ARROW // ->
	BANG        // !
	EQ          // =
	NOT_EQ      // !=
	LESS        // <
	LESS_EQ     // <=
	MORE        // >
	MORE_EQ     // >=
)

var tokenTypeNames = [...]string{
	ILLEGAL:     "ILLEGAL",
	EOF:         "EOF",
	IDENT:       "IDENT",
	INT:         "INT",
	FLOAT:       "FLOAT",
	STRING:      "STRING",
	KW_IF:       "if",
	KW_ELSE:     "else",
	KW_END:      "end",
	LPAREN:      "(",
	RPAREN:      ")",
	PLUS:        "+",
	MINUS:       "-",
	ASTERISK:    "*",
	DOT:         ".",
	COLON:       ":",
	RIGHT_ARROW: "->",
	BANG:        "!",
	EQ:          "=",
	NOT_EQ:      "!=",
	LESS:        "<",
	LESS_EQ:     "<=",
	MORE:        ">",
	MORE_EQ:     ">=",
}

// String returns the canonical textual form of the token type, used both for
// debug output and for parser error messages ("expected 'end', got ...").
func (t TokenType) String() string {
	if int(t) >= 0 && int(t) < len(tokenTypeNames) && tokenTypeNames[t] != "" {
		return tokenTypeNames[t]
	}
	return "UNKNOWN"
}

// IsLiteral reports whether the token type is a literal value class.
func (t TokenType) IsLiteral() bool { return t > literalStart && t < literalEnd }

// IsKeyword reports whether the token type is a reserved keyword.
func (t TokenType) IsKeyword() bool { return t > keywordStart && t < keywordEnd }

// keywords maps the reserved identifier spellings to their keyword token type.
var keywords = map[string]TokenType{
	"if":   KW_IF,
	"else": KW_ELSE,
	"end":  KW_END,
}

// LookupIdent classifies a scanned identifier as a keyword or a plain IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
