package natives

import (
	"fmt"

	"github.com/pulsar-lang/pulsar/internal/module"
	"github.com/pulsar-lang/pulsar/internal/runtime"
)

// registerPrintNatives binds print! and println!, the two output natives
// every Pulsar script can reach for without a host-specific ABI. Binding is
// a no-op for whichever of the two a given script never declared.
func registerPrintNatives(mod *module.Module) {
	bindIfDeclared(mod,
		module.FunctionSignature{Name: "print!", Arity: 1, StackArity: 1, Returns: 0},
		func(ctx module.NativeContext) error {
			fmt.Print(renderValue(ctx.Arg(0)))
			return nil
		},
	)
	bindIfDeclared(mod,
		module.FunctionSignature{Name: "println!", Arity: 1, StackArity: 1, Returns: 0},
		func(ctx module.NativeContext) error {
			fmt.Println(renderValue(ctx.Arg(0)))
			return nil
		},
	)
}

// renderValue formats a value for print!/println! without the quoting
// Value.String applies to String kind, since printed output should be the
// raw text, not a debug repr.
func renderValue(v runtime.Value) string {
	if v.Kind() == runtime.String {
		return v.AsString()
	}
	return v.String()
}
