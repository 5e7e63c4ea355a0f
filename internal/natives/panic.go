package natives

import (
	"errors"

	"github.com/pulsar-lang/pulsar/internal/module"
)

// registerPanicNative binds panic!, the native a Pulsar script uses to abort
// execution with a message. The handler's returned error propagates out of
// vm.ExecutionContext.Step as vm.Error, ending the run.
func registerPanicNative(mod *module.Module) {
	bindIfDeclared(mod,
		module.FunctionSignature{Name: "panic!", Arity: 1, StackArity: 1, Returns: 0},
		func(ctx module.NativeContext) error {
			return errors.New(ctx.Arg(0).AsString())
		},
	)
}
