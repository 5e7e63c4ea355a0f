package vm

import (
	"github.com/pulsar-lang/pulsar/internal/errors"
	"github.com/pulsar-lang/pulsar/internal/lexer"
	"github.com/pulsar-lang/pulsar/internal/module"
	"github.com/pulsar-lang/pulsar/internal/runtime"
)

// ExecutionContext drives one independent run of a Module: its call
// stack, an optional global value stack, and the last RuntimeState
// observed. The Module is borrowed read-only for bytecode but mutable for
// on-demand custom-type global data creation; the context itself is not
// safe for concurrent use (spec: single-threaded cooperative scheduling).
type ExecutionContext struct {
	Module      *module.Module
	CallStack   []*Frame
	GlobalStack []runtime.Value
	LastError   RuntimeState
}

// NewExecutionContext constructs a context over mod with no frames
// pushed yet.
func NewExecutionContext(mod *module.Module) *ExecutionContext {
	return &ExecutionContext{Module: mod}
}

// CurrentFrame returns the top of the call stack, the "current" frame
// instructions execute against. Returns nil if the call stack is empty.
func (ctx *ExecutionContext) CurrentFrame() *Frame {
	if len(ctx.CallStack) == 0 {
		return nil
	}
	return ctx.CallStack[len(ctx.CallStack)-1]
}

// PushEntryFrame prepares the call stack to run functionIndex as the
// entry point, with args supplying its first len(args) locals (the rest
// default to Void). Each arg is retained, since it now has an additional
// holder (the new frame's locals) beyond whatever the caller held it in.
func (ctx *ExecutionContext) PushEntryFrame(functionIndex int, args []runtime.Value) RuntimeState {
	if functionIndex < 0 || functionIndex >= len(ctx.Module.Functions) {
		return Error
	}
	def := ctx.Module.Functions[functionIndex]
	locals := make([]runtime.Value, def.LocalCount)
	for i := range locals {
		locals[i] = runtime.NewVoid()
	}
	for i, a := range args {
		if i >= len(locals) {
			break
		}
		a.Retain()
		locals[i] = a
	}
	ctx.CallStack = append(ctx.CallStack, newFrame(functionIndex, locals))
	return OK
}

// IsDone reports whether the call stack has fully unwound.
func (ctx *ExecutionContext) IsDone() bool {
	return len(ctx.CallStack) == 0
}

// Result returns the values left on the outermost remaining operand
// stack once the call stack is empty: the entry function's return
// values, moved onto GlobalStack by the final Return.
func (ctx *ExecutionContext) Result() []runtime.Value {
	return ctx.GlobalStack
}

// CaptureStackTrace snapshots the current call stack as an errors.StackTrace,
// oldest frame first, for reporting a RuntimeState failure with call
// context (a host's "uncaught panic!" message, a debugger's pause event).
// The debug symbol used for each frame's position is the one covering its
// current IP, found by scanning backward for the last BlockDebugSymbol
// whose InstructionOffset does not exceed it.
func (ctx *ExecutionContext) CaptureStackTrace() errors.StackTrace {
	trace := make(errors.StackTrace, 0, len(ctx.CallStack))
	for _, frame := range ctx.CallStack {
		def := ctx.Module.Functions[frame.FunctionIndex]
		var pos *lexer.Position
		for i := len(def.Debug) - 1; i >= 0; i-- {
			if def.Debug[i].InstructionOffset <= frame.IP {
				pos = &lexer.Position{Line: def.Debug[i].Line, Column: def.Debug[i].Column}
				break
			}
		}
		trace = append(trace, errors.NewStackFrame(def.Signature.Name, "", pos))
	}
	return trace
}
