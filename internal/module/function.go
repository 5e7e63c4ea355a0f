// Package module defines Module, the compiled-program container produced
// by the parser and consumed by the execution engine: function bodies,
// native function bindings, the constant pool, and custom type
// registrations.
package module

import "github.com/pulsar-lang/pulsar/internal/runtime"

// FunctionSignature identifies a callable by name and calling shape.
// Native functions are matched against a Module's declared bindings by
// signature rather than by name alone, since a host may bind several
// overloads of the same name under different arities.
type FunctionSignature struct {
	Name       string
	Arity      int // number of named/local parameters
	StackArity int // number of values the caller leaves on the stack for the callee
	Returns    int // number of result values the callee leaves on the stack
}

// Matches reports whether sig describes the same calling shape as other.
func (sig FunctionSignature) Matches(other FunctionSignature) bool {
	return sig.Name == other.Name &&
		sig.Arity == other.Arity &&
		sig.StackArity == other.StackArity &&
		sig.Returns == other.Returns
}

// FunctionDefinition is a compiled Pulsar function body: its own bytecode,
// and how many local slots its frame needs.
type FunctionDefinition struct {
	Signature  FunctionSignature
	Entry      int // not set by the parser nor read by the engine, which starts every frame at Code[0]
	LocalCount int
	Code       []Instruction
	Debug      []BlockDebugSymbol
}

// BlockDebugSymbol associates a compiled statement block with the source
// position it was lowered from, for error reporting and the debug
// adapter's step events.
type BlockDebugSymbol struct {
	InstructionOffset int
	Line              int
	Column            int
}

// NativeContext is the view a NativeHandler gets of the calling frame: its
// arguments and a place to leave a result, without the native package
// needing to import the execution engine (and vice versa).
type NativeContext interface {
	ArgCount() int
	Arg(i int) runtime.Value
	Return(v runtime.Value)
}

// NativeHandler is a host function bound into a Module under a declared
// FunctionSignature. It runs to completion; Pulsar natives are not
// interruptible mid-call.
type NativeHandler func(ctx NativeContext) error
