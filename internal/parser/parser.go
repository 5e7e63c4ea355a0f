package parser

import (
	"fmt"

	"github.com/pulsar-lang/pulsar/internal/lexer"
	"github.com/pulsar-lang/pulsar/internal/module"
)

// Parser lowers Pulsar source text into a module.Module. A Parser is
// single-use: construct one per source document with New, then call
// ParseIntoModule once.
type Parser struct {
	tokens []lexer.Token
	pos    int

	lastErr *parseError

	// declarations collected in pass 1, consumed by pass 2.
	functionHeaders []functionHeader
	nativeHeaders   []nativeHeader
	constants       map[string]lexer.Token
}

type functionHeader struct {
	name       string
	params     []string
	returns    int
	hasReturns bool
	bodyStart  int // token index of the first body token
	bodyEnd    int // token index of the matching 'end'
}

type nativeHeader struct {
	name       string
	params     []string
	returns    int
	hasReturns bool
}

// New buffers every token out of source (via a Lexer) up front, so both
// compiler passes can index into the same slice.
func New(source string) *Parser {
	lx := lexer.New(source)
	var tokens []lexer.Token
	for {
		tok := lx.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == lexer.EOF {
			break
		}
	}
	return &Parser{tokens: tokens, constants: make(map[string]lexer.Token)}
}

// ParseIntoModule runs both compiler passes, populating mod with every
// function, native declaration, and constant found in the source. It
// returns the first ParseResult encountered; on anything but OK, mod may
// be partially populated and should be discarded.
func (p *Parser) ParseIntoModule(mod *module.Module) ParseResult {
	if err := p.collectDeclarations(); err != nil {
		p.lastErr = err
		return err.result
	}
	for _, nh := range p.nativeHeaders {
		if nh.hasReturns && nh.returns < 0 {
			err := p.setError(NegativeResultCount, p.at(0), "negative result count in native declaration: "+nh.name)
			p.lastErr = err
			return err.result
		}
		sig := module.FunctionSignature{
			Name:       nh.name,
			Arity:      len(nh.params),
			StackArity: len(nh.params),
			Returns:    nh.returns,
		}
		mod.DeclareNativeFunction(sig)
	}
	for _, fh := range p.functionHeaders {
		if fh.hasReturns && fh.returns < 0 {
			err := p.setError(NegativeResultCount, p.at(fh.bodyStart), "negative result count in function: "+fh.name)
			p.lastErr = err
			return err.result
		}
		mod.AddFunction(&module.FunctionDefinition{
			Signature: module.FunctionSignature{
				Name:       fh.name,
				Arity:      len(fh.params),
				StackArity: len(fh.params),
				Returns:    fh.returns,
			},
			LocalCount: len(fh.params),
		})
	}

	for i, fh := range p.functionHeaders {
		def := mod.Functions[i]
		c := newFuncCompiler(p, mod, fh)
		if err := c.compile(); err != nil {
			p.lastErr = err
			return err.result
		}
		def.Code = c.code
		def.Debug = c.debug
		def.LocalCount = len(c.locals.names)

		// A declared "-> N" must match the body's actual net stack delta;
		// an absent one takes that delta as the inferred Returns count.
		// Note this only sees Returns already settled for callees compiled
		// earlier in functionHeaders order: a forward call to a later,
		// not-yet-inferred function still reads that callee's pre-compile
		// placeholder (0 unless annotated).
		if fh.hasReturns {
			if c.depth != def.Signature.Returns {
				err := p.setError(NegativeResultCount, p.at(fh.bodyStart),
					fmt.Sprintf("function %s declares -> %d but its body leaves %d value(s) on the stack", fh.name, def.Signature.Returns, c.depth))
				p.lastErr = err
				return err.result
			}
		} else {
			def.Signature.Returns = c.depth
		}
	}

	return OK
}

// GetLastError returns the ParseResult of the last failed parse, or OK if
// ParseIntoModule has not failed.
func (p *Parser) GetLastError() ParseResult {
	if p.lastErr == nil {
		return OK
	}
	return p.lastErr.result
}

// GetLastErrorToken returns the token that triggered the last parse
// error.
func (p *Parser) GetLastErrorToken() lexer.Token {
	if p.lastErr == nil {
		return lexer.Token{}
	}
	return p.lastErr.token
}

// GetLastErrorMessage returns the human-readable message for the last
// parse error.
func (p *Parser) GetLastErrorMessage() string {
	if p.lastErr == nil {
		return ""
	}
	return p.lastErr.message
}

func (p *Parser) at(i int) lexer.Token {
	if i < 0 || i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[i]
}

func (p *Parser) setError(result ParseResult, tok lexer.Token, message string) *parseError {
	return &parseError{result: result, token: tok, message: message}
}
