package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `(add a b)
1.5 + 2
"hi\n" != end`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{LPAREN, "("},
		{IDENT, "add"},
		{IDENT, "a"},
		{IDENT, "b"},
		{RPAREN, ")"},
		{FLOAT, "1.5"},
		{PLUS, "+"},
		{INT, "2"},
		{STRING, "hi\n"},
		{NOT_EQ, "!="},
		{KW_END, "end"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestBangVsNotEqual(t *testing.T) {
	// A bare '!' is BANG; '!=' is one token, not BANG followed by EQ.
	l := New(`! != a!`)

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{BANG, "!"},
		{NOT_EQ, "!="},
		{IDENT, "a!"},
		{EOF, ""},
	}
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType || tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - expected %q %q, got %q %q", i, tt.expectedType, tt.expectedLiteral, tok.Type, tok.Literal)
		}
	}
}

func TestIdentifierPunctuationSuffixes(t *testing.T) {
	for _, lit := range []string{"empty?", "println!", "my_var", "_private"} {
		l := New(lit)
		tok := l.NextToken()
		if tok.Type != IDENT {
			t.Fatalf("%q: expected IDENT, got %q", lit, tok.Type)
		}
		if tok.Literal != lit {
			t.Fatalf("%q: expected literal %q, got %q", lit, lit, tok.Literal)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input      string
		typ        TokenType
		intVal     int64
		doubleVal  float64
		isDoubleOK bool
	}{
		{"123", INT, 123, 0, false},
		{"0x1F", INT, 31, 0, false},
		{"0b1010", INT, 10, 0, false},
		{"1_000", INT, 1000, 0, false},
		{"3.14", FLOAT, 0, 3.14, true},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.typ {
			t.Fatalf("%q: expected %q, got %q", tt.input, tt.typ, tok.Type)
		}
		if tt.typ == INT && tok.IntegerVal != tt.intVal {
			t.Fatalf("%q: expected int %d, got %d", tt.input, tt.intVal, tok.IntegerVal)
		}
		if tt.isDoubleOK && tok.DoubleVal != tt.doubleVal {
			t.Fatalf("%q: expected double %v, got %v", tt.input, tt.doubleVal, tok.DoubleVal)
		}
	}
}

func TestIntegerLiteralOverflowReportsLexError(t *testing.T) {
	tests := []string{
		"9223372036854775808",  // 2^63, one past math.MaxInt64
		"99999999999999999999", // doesn't even fit a uint64
		"0xFFFFFFFFFFFFFFFF",   // fits uint64, not int64
	}
	for _, input := range tests {
		l := New(input)
		tok := l.NextToken()
		if tok.Type != INT {
			t.Fatalf("%q: expected INT, got %q", input, tok.Type)
		}
		if len(l.Errors()) != 1 {
			t.Fatalf("%q: expected 1 overflow error, got %d: %v", input, len(l.Errors()), l.Errors())
		}
	}
}

func TestIntegerLiteralAtBoundaryDoesNotOverflow(t *testing.T) {
	l := New("9223372036854775807") // math.MaxInt64
	tok := l.NextToken()
	if tok.Type != INT || tok.IntegerVal != 9223372036854775807 {
		t.Fatalf("expected INT(9223372036854775807), got %q(%d)", tok.Type, tok.IntegerVal)
	}
	if len(l.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", l.Errors())
	}
}

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"a\nb"`, "a\nb"},
		{`"a\tb"`, "a\tb"},
		{`"quote\"inside"`, `quote"inside`},
		{`"\x41;"`, "A"},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != STRING {
			t.Fatalf("%q: expected STRING, got %q", tt.input, tok.Type)
		}
		if tok.Literal != tt.expected {
			t.Fatalf("%q: expected %q, got %q", tt.input, tt.expected, tok.Literal)
		}
		if len(l.Errors()) != 0 {
			t.Fatalf("%q: unexpected errors: %v", tt.input, l.Errors())
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"abc`)
	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("expected STRING, got %q", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(l.Errors()))
	}
}

func TestToStringLiteralRoundTrip(t *testing.T) {
	for _, s := range []string{"hello", "with \"quotes\"", "line\nbreak", "tab\there"} {
		lit := ToStringLiteral(s)
		l := New(lit)
		tok := l.NextToken()
		if tok.Type != STRING {
			t.Fatalf("%q: rendered literal %q did not lex as STRING", s, lit)
		}
		if tok.Literal != s {
			t.Fatalf("round trip failed: %q -> %q -> %q", s, lit, tok.Literal)
		}
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	input := "a\nbb"
	l := New(input)
	tok := l.NextToken()
	if tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Fatalf("expected 1:1, got %s", tok.Pos)
	}
	tok = l.NextToken()
	if tok.Pos.Line != 2 || tok.Pos.Column != 1 {
		t.Fatalf("expected 2:1, got %s", tok.Pos)
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New(`@`)
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %q", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(l.Errors()))
	}
}

func TestComments(t *testing.T) {
	l := New("1 // a comment\n2")
	first := l.NextToken()
	second := l.NextToken()
	if first.Literal != "1" || second.Literal != "2" {
		t.Fatalf("comment not skipped: got %q, %q", first.Literal, second.Literal)
	}
}

func TestBOMStripped(t *testing.T) {
	l := New("\xEF\xBB\xBFok")
	tok := l.NextToken()
	if tok.Type != IDENT || tok.Literal != "ok" {
		t.Fatalf("expected IDENT(ok), got %q(%q)", tok.Type, tok.Literal)
	}
}
