package vm

import (
	"github.com/pulsar-lang/pulsar/internal/module"
	"github.com/pulsar-lang/pulsar/internal/runtime"
)

// Run drives ctx's call stack to completion (or the first error), executing
// one instruction at a time in the current frame. Call/Return transitions
// push and pop frames on ctx.CallStack; Run returns as soon as the stack
// empties or a handler reports anything but OK.
func (ctx *ExecutionContext) Run() RuntimeState {
	for !ctx.IsDone() {
		if state := ctx.Step(); state != OK {
			ctx.LastError = state
			return state
		}
	}
	return OK
}

// Step executes exactly one instruction in the current frame, or performs
// the implicit return when the frame's code has run out.
func (ctx *ExecutionContext) Step() RuntimeState {
	frame := ctx.CurrentFrame()
	if frame == nil {
		return OK
	}
	def := ctx.Module.Functions[frame.FunctionIndex]

	if frame.IP >= len(def.Code) {
		return ctx.doReturn(frame, def)
	}

	inst := def.Code[frame.IP]
	frame.IP++

	switch inst.OpCode() {
	case module.OpPushConst:
		v := ctx.Module.Constant(int(inst.B()))
		v.Retain()
		return frame.push(v)

	case module.OpLoadLocal:
		idx := int(inst.A())
		if idx < 0 || idx >= len(frame.Locals) {
			return OutOfBoundsLocalIndex
		}
		v := frame.Locals[idx]
		v.Retain()
		return frame.push(v)

	case module.OpStoreLocal:
		idx := int(inst.A())
		if idx < 0 || idx >= len(frame.Locals) {
			return OutOfBoundsLocalIndex
		}
		v, state := frame.pop()
		if state != OK {
			return state
		}
		frame.Locals[idx].Release()
		frame.Locals[idx] = v
		return OK

	case module.OpAdd:
		return ctx.binaryNumeric(frame, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b })
	case module.OpSub:
		return ctx.binaryNumeric(frame, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
	case module.OpMul:
		return ctx.binaryNumeric(frame, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })

	case module.OpNeg:
		a, state := frame.pop()
		if state != OK {
			return state
		}
		defer a.Release()
		switch a.Kind() {
		case runtime.Integer:
			return frame.push(runtime.NewInteger(-a.AsInteger()))
		case runtime.Double:
			return frame.push(runtime.NewDouble(-a.AsDouble()))
		default:
			return TypeError
		}

	case module.OpEq, module.OpNeq:
		b, state := frame.pop()
		if state != OK {
			return state
		}
		a, state := frame.pop()
		if state != OK {
			b.Release()
			return state
		}
		eq := a.Equals(b)
		a.Release()
		b.Release()
		if inst.OpCode() == module.OpNeq {
			eq = !eq
		}
		return frame.push(boolValue(eq))

	case module.OpLt, module.OpLe, module.OpGt, module.OpGe:
		return ctx.compare(frame, inst.OpCode())

	case module.OpConcat:
		return ctx.concat(frame)

	case module.OpJump:
		frame.IP += int(inst.SignedB())
		return OK

	case module.OpJumpIfFalse:
		v, state := frame.pop()
		if state != OK {
			return state
		}
		falsy := isFalsy(v)
		v.Release()
		if falsy {
			frame.IP += int(inst.SignedB())
		}
		return OK

	case module.OpCall:
		return ctx.doCall(frame, int(inst.B()))

	case module.OpCallNative:
		return ctx.doCallNative(frame, int(inst.B()))

	case module.OpReturn:
		frame.IP = len(def.Code)
		return ctx.doReturn(frame, def)

	default:
		return Error
	}
}

// binaryNumeric pops b, a (in that order, since b was pushed last) and
// pushes the result of the promoted arithmetic operation.
func (ctx *ExecutionContext) binaryNumeric(frame *Frame, onInt func(a, b int64) int64, onDouble func(a, b float64) float64) RuntimeState {
	b, state := frame.pop()
	if state != OK {
		return state
	}
	a, state := frame.pop()
	if state != OK {
		b.Release()
		return state
	}
	result, state := numericBinary(a, b, onInt, onDouble)
	a.Release()
	b.Release()
	if state != OK {
		return state
	}
	return frame.push(result)
}

func (ctx *ExecutionContext) compare(frame *Frame, op module.OpCode) RuntimeState {
	b, state := frame.pop()
	if state != OK {
		return state
	}
	a, state := frame.pop()
	if state != OK {
		b.Release()
		return state
	}
	cmp, state := compareOrdered(a, b)
	a.Release()
	b.Release()
	if state != OK {
		return state
	}
	var result bool
	switch op {
	case module.OpLt:
		result = cmp < 0
	case module.OpLe:
		result = cmp <= 0
	case module.OpGt:
		result = cmp > 0
	case module.OpGe:
		result = cmp >= 0
	}
	return frame.push(boolValue(result))
}

// concat pops b, a (both String) and pushes their concatenation as a new
// heap String value.
func (ctx *ExecutionContext) concat(frame *Frame) RuntimeState {
	b, state := frame.pop()
	if state != OK {
		return state
	}
	a, state := frame.pop()
	if state != OK {
		b.Release()
		return state
	}
	defer a.Release()
	defer b.Release()
	if a.Kind() != runtime.String || b.Kind() != runtime.String {
		return TypeError
	}
	return frame.push(runtime.NewString(a.AsString() + b.AsString()))
}

// doCall pops the Arity values the callee expects off the caller's stack
// (deepest-pushed argument first, since we pop in reverse) and pushes a
// new Frame for funcIndex with those values as its first locals.
func (ctx *ExecutionContext) doCall(caller *Frame, funcIndex int) RuntimeState {
	if funcIndex < 0 || funcIndex >= len(ctx.Module.Functions) {
		return Error
	}
	if len(ctx.CallStack) >= maxCallDepth {
		return CallstackOverflow
	}
	def := ctx.Module.Functions[funcIndex]
	args := make([]runtime.Value, def.Signature.Arity)
	for i := def.Signature.Arity - 1; i >= 0; i-- {
		v, state := caller.pop()
		if state != OK {
			return state
		}
		args[i] = v
	}
	locals := make([]runtime.Value, def.LocalCount)
	for i := range locals {
		locals[i] = runtime.NewVoid()
	}
	copy(locals, args)
	ctx.CallStack = append(ctx.CallStack, newFrame(funcIndex, locals))
	return OK
}

// doCallNative pops the native's declared StackArity arguments off the
// caller's stack, invokes its bound handler synchronously, and pushes any
// result value it produced back onto the caller's stack.
func (ctx *ExecutionContext) doCallNative(caller *Frame, nativeIndex int) RuntimeState {
	sig, ok := ctx.Module.NativeSignatureAt(nativeIndex)
	if !ok {
		return Error
	}
	handler := ctx.Module.NativeHandlerAt(nativeIndex)
	if handler == nil {
		return NoNativeBoundFunction
	}
	args := make([]runtime.Value, sig.StackArity)
	for i := sig.StackArity - 1; i >= 0; i-- {
		v, state := caller.pop()
		if state != OK {
			return state
		}
		args[i] = v
	}
	nctx := &nativeContext{args: args}
	err := handler(nctx)
	for _, a := range args {
		a.Release()
	}
	if err != nil {
		return Error
	}
	if sig.Returns > 0 {
		return caller.push(nctx.result)
	}
	return OK
}

// doReturn pops the current frame, copying its Signature.Returns topmost
// stack values down into the new current frame (or GlobalStack, if the
// call stack is about to empty), then releases everything the frame still
// owns.
func (ctx *ExecutionContext) doReturn(frame *Frame, def *module.FunctionDefinition) RuntimeState {
	results := make([]runtime.Value, 0, def.Signature.Returns)
	for i := 0; i < def.Signature.Returns; i++ {
		v, state := frame.pop()
		if state != OK {
			for _, r := range results {
				r.Release()
			}
			return state
		}
		results = append(results, v)
	}
	// results were popped last-to-first; reverse to restore source order.
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}

	ctx.CallStack = ctx.CallStack[:len(ctx.CallStack)-1]
	frame.release()

	if len(ctx.CallStack) == 0 {
		ctx.GlobalStack = append(ctx.GlobalStack, results...)
		return OK
	}
	caller := ctx.CurrentFrame()
	for _, r := range results {
		if state := caller.push(r); state != OK {
			return state
		}
	}
	return OK
}

func boolValue(b bool) runtime.Value {
	if b {
		return runtime.NewInteger(1)
	}
	return runtime.NewInteger(0)
}
