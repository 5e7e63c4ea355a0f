package parser

import "github.com/pulsar-lang/pulsar/internal/lexer"

// collectDeclarations is pass 1: it walks the whole token stream once,
// recording every function header, native declaration, and constant
// binding without compiling any bodies. Bodies are skipped by tracking
// if/end nesting depth, which is enough to find the matching top-level
// 'end' without understanding the body's contents. Pass 2 re-walks the
// same range to actually compile it, now that every name in the file has
// been seen.
func (p *Parser) collectDeclarations() *parseError {
	i := 0
	for p.at(i).Type != lexer.EOF {
		tok := p.at(i)
		switch tok.Type {
		case lexer.ASTERISK:
			nh, next, err := p.parseNativeHeader(i)
			if err != nil {
				return err
			}
			p.nativeHeaders = append(p.nativeHeaders, nh)
			i = next
		case lexer.LPAREN:
			fh, next, err := p.parseFunctionHeader(i)
			if err != nil {
				return err
			}
			p.functionHeaders = append(p.functionHeaders, fh)
			i = next
		case lexer.IDENT:
			next, err := p.parseConstDecl(i)
			if err != nil {
				return err
			}
			i = next
		default:
			return p.setError(UnexpectedToken, tok, "expected a function, native, or constant declaration")
		}
	}
	return nil
}

// parseConstDecl recognizes `name = literal` at the top level, binding a
// named literal constant usable from any function body alongside locals
// and declared calls.
func (p *Parser) parseConstDecl(i int) (int, *parseError) {
	nameTok := p.at(i)
	if p.at(i+1).Type != lexer.EQ {
		return i, p.setError(UnexpectedToken, nameTok, "unexpected identifier at top level")
	}
	valTok := p.at(i + 2)
	if valTok.Type != lexer.INT && valTok.Type != lexer.FLOAT && valTok.Type != lexer.STRING {
		return i, p.setError(UnexpectedToken, valTok, "expected a literal constant value")
	}
	p.constants[nameTok.Literal] = valTok
	return i + 3, nil
}

// parseNameAndParams consumes `name` followed by an optional parenthesized
// identifier list, starting at the name token.
func (p *Parser) parseNameAndParams(i int) (string, []string, int, *parseError) {
	nameTok := p.at(i)
	if nameTok.Type != lexer.IDENT {
		return "", nil, i, p.setError(UnexpectedToken, nameTok, "expected an identifier")
	}
	i++

	var params []string
	if p.at(i).Type == lexer.LPAREN {
		i++
		for p.at(i).Type == lexer.IDENT {
			params = append(params, p.at(i).Literal)
			i++
		}
		if p.at(i).Type != lexer.RPAREN {
			return "", nil, i, p.setError(UnexpectedToken, p.at(i), "expected ')' to close parameter list")
		}
		i++
	}
	return nameTok.Literal, params, i, nil
}

// parseReturns consumes an optional `-> N` result-count annotation,
// accepting a leading '-' so that a negative count can be expressed and
// rejected later as NegativeResultCount rather than failing to parse.
func (p *Parser) parseReturns(i int) (int, bool, int, *parseError) {
	if p.at(i).Type != lexer.RIGHT_ARROW {
		return 0, false, i, nil
	}
	i++
	neg := false
	if p.at(i).Type == lexer.MINUS {
		neg = true
		i++
	}
	tok := p.at(i)
	if tok.Type != lexer.INT {
		return 0, false, i, p.setError(UnexpectedToken, tok, "expected an integer result count after '->'")
	}
	val := int(tok.IntegerVal)
	if neg {
		val = -val
	}
	return val, true, i + 1, nil
}

func (p *Parser) parseFunctionHeader(i int) (functionHeader, int, *parseError) {
	i++ // consume '('
	name, params, i, err := p.parseNameAndParams(i)
	if err != nil {
		return functionHeader{}, 0, err
	}
	if p.at(i).Type != lexer.RPAREN {
		return functionHeader{}, 0, p.setError(UnexpectedToken, p.at(i), "expected ')' to close function header")
	}
	i++
	returns, has, i, err := p.parseReturns(i)
	if err != nil {
		return functionHeader{}, 0, err
	}

	bodyStart := i
	depth := 0
	for {
		tok := p.at(i)
		if tok.Type == lexer.EOF {
			return functionHeader{}, 0, p.setError(UnexpectedToken, tok, "unexpected end of file inside function body")
		}
		if tok.Type == lexer.KW_IF {
			depth++
		} else if tok.Type == lexer.KW_END {
			if depth == 0 {
				break
			}
			depth--
		}
		i++
	}
	bodyEnd := i
	i++ // consume the function's own 'end'

	return functionHeader{
		name: name, params: params, returns: returns, hasReturns: has,
		bodyStart: bodyStart, bodyEnd: bodyEnd,
	}, i, nil
}

func (p *Parser) parseNativeHeader(i int) (nativeHeader, int, *parseError) {
	i++ // consume '*'
	if p.at(i).Type != lexer.LPAREN {
		return nativeHeader{}, 0, p.setError(UnexpectedToken, p.at(i), "expected '(' after '*'")
	}
	i++
	name, params, i, err := p.parseNameAndParams(i)
	if err != nil {
		return nativeHeader{}, 0, err
	}
	if p.at(i).Type != lexer.RPAREN {
		return nativeHeader{}, 0, p.setError(UnexpectedToken, p.at(i), "expected ')' to close native declaration")
	}
	i++
	returns, has, i, err := p.parseReturns(i)
	if err != nil {
		return nativeHeader{}, 0, err
	}
	return nativeHeader{name: name, params: params, returns: returns, hasReturns: has}, i, nil
}
