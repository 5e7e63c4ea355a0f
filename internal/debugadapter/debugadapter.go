// Package debugadapter is the wire-protocol glue a host-side debugger
// front end speaks to the engine in internal/vm: JSON step requests in,
// JSON stack-frame/stop events out. It mirrors pulsar-debugger/helpers.h's
// role (turning an ExecutionContext/Value into a front-end-displayable
// form) without pulling a UI into this module; spec.md scopes a full
// debugger UI out, but this protocol-side glue is exactly the host-facing
// surface its ABI section asks the core to define.
package debugadapter

import (
	"fmt"

	"github.com/pulsar-lang/pulsar/internal/module"
	"github.com/pulsar-lang/pulsar/internal/runtime"
	"github.com/pulsar-lang/pulsar/internal/vm"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// StepRequest is an inbound command from the debugger front end. Only the
// fields a request actually set are meaningful; Command distinguishes
// which.
type StepRequest struct {
	Command string // "step", "continue", "stackTrace"
}

// DecodeStepRequest reads an inbound request, e.g. {"command":"step"}. Using
// gjson rather than encoding/json avoids allocating a struct for what is,
// on the hot path, a single field lookup per request.
func DecodeStepRequest(raw string) (StepRequest, error) {
	if !gjson.Valid(raw) {
		return StepRequest{}, fmt.Errorf("invalid step request JSON")
	}
	cmd := gjson.Get(raw, "command")
	if !cmd.Exists() {
		return StepRequest{}, fmt.Errorf("step request missing \"command\"")
	}
	return StepRequest{Command: cmd.String()}, nil
}

// EncodeStoppedEvent renders ctx's current call stack as a "stopped" event,
// one JSON object per frame with its function name, instruction pointer,
// and operand stack rendered as strings. sjson lets each frame be appended
// as a raw JSON fragment without round-tripping the whole event through a
// Go struct first.
func EncodeStoppedEvent(ctx *vm.ExecutionContext, reason string) (string, error) {
	out, err := sjson.Set("{}", "type", "stopped")
	if err != nil {
		return "", err
	}
	out, err = sjson.Set(out, "reason", reason)
	if err != nil {
		return "", err
	}
	out, err = sjson.SetRaw(out, "frames", "[]")
	if err != nil {
		return "", err
	}
	for i, frame := range ctx.CallStack {
		def := ctx.Module.Functions[frame.FunctionIndex]
		out, err = sjson.Set(out, fmt.Sprintf("frames.%d.function", i), def.Signature.Name)
		if err != nil {
			return "", err
		}
		out, err = sjson.Set(out, fmt.Sprintf("frames.%d.ip", i), frame.IP)
		if err != nil {
			return "", err
		}
		out, err = sjson.Set(out, fmt.Sprintf("frames.%d.stack", i), stackStrings(frame, def))
		if err != nil {
			return "", err
		}
	}
	return out, nil
}

func stackStrings(frame *vm.Frame, def *module.FunctionDefinition) []string {
	_ = def
	rendered := make([]string, len(frame.Stack))
	for i, v := range frame.Stack {
		rendered[i] = renderDebugValue(v)
	}
	return rendered
}

// renderDebugValue is the Go analog of PulsarDebugger::ValueToString: a
// non-recursive, front-end-friendly rendering of a single Value.
func renderDebugValue(v runtime.Value) string {
	switch v.Kind() {
	case runtime.Void:
		return "void"
	case runtime.FunctionReference:
		return fmt.Sprintf("<&(@%d)>", v.AsFunctionReference())
	case runtime.NativeFunctionReference:
		return fmt.Sprintf("<&(*@%d)>", v.AsNativeFunctionReference())
	case runtime.List:
		if v.ListLen() == 0 {
			return "[]"
		}
		return "[...]"
	default:
		return v.String()
	}
}
