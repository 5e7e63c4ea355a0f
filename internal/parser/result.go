// Package parser lowers a Pulsar token stream into a module.Module. It
// runs in two passes over the buffered token stream: the first collects
// every function, native, and constant declaration (so forward references
// resolve without a patch list), the second compiles function bodies into
// bytecode now that every name in the file is known.
package parser

import "github.com/pulsar-lang/pulsar/internal/lexer"

// ParseResult is the parser's per-invocation status code, kept distinct
// from Go's error so a host can switch over it exhaustively the same way
// it would over the execution engine's RuntimeState.
type ParseResult int

const (
	OK ParseResult = iota
	Error
	UnexpectedToken
	NegativeResultCount
	UsageOfUndeclaredLocal
	UsageOfUndeclaredFunction
	UsageOfUndeclaredNativeFunction
)

var parseResultNames = [...]string{
	OK:                              "OK",
	Error:                           "Error",
	UnexpectedToken:                 "UnexpectedToken",
	NegativeResultCount:             "NegativeResultCount",
	UsageOfUndeclaredLocal:          "UsageOfUndeclaredLocal",
	UsageOfUndeclaredFunction:       "UsageOfUndeclaredFunction",
	UsageOfUndeclaredNativeFunction: "UsageOfUndeclaredNativeFunction",
}

func (r ParseResult) String() string {
	if int(r) < len(parseResultNames) {
		return parseResultNames[r]
	}
	return "Unknown"
}

// parseError is the last-error triplet the parser retains: the result
// kind, the token that triggered it, and a human-readable message. Only
// the first error of a parse is kept; the parser stops at the first
// failure rather than attempting recovery.
type parseError struct {
	result  ParseResult
	token   lexer.Token
	message string
}
