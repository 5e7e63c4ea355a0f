package natives

import (
	"os"

	"github.com/pulsar-lang/pulsar/internal/module"
	"github.com/pulsar-lang/pulsar/internal/runtime"
	"github.com/tidwall/match"
)

// registerStdioNatives binds the minimal filesystem surface named in
// pulsar-tools/bindings/{filesystem,stdio}.h: readfile!/writefile! for
// whole-file text I/O, and glob! for the pattern matching a real
// filesystem native needs, so cmd/pulsar is a runnable host and not just a
// library with print! wired up.
func registerStdioNatives(mod *module.Module) {
	bindIfDeclared(mod,
		module.FunctionSignature{Name: "readfile!", Arity: 1, StackArity: 1, Returns: 1},
		func(ctx module.NativeContext) error {
			path := ctx.Arg(0).AsString()
			data, err := os.ReadFile(path)
			if err != nil {
				ctx.Return(runtime.NewString(""))
				return nil
			}
			ctx.Return(runtime.NewString(string(data)))
			return nil
		},
	)
	bindIfDeclared(mod,
		module.FunctionSignature{Name: "writefile!", Arity: 2, StackArity: 2, Returns: 0},
		func(ctx module.NativeContext) error {
			path := ctx.Arg(0).AsString()
			content := ctx.Arg(1).AsString()
			return os.WriteFile(path, []byte(content), 0o644)
		},
	)
	bindIfDeclared(mod,
		module.FunctionSignature{Name: "glob!", Arity: 2, StackArity: 2, Returns: 1},
		func(ctx module.NativeContext) error {
			pattern := ctx.Arg(0).AsString()
			name := ctx.Arg(1).AsString()
			if match.Match(name, pattern) {
				ctx.Return(runtime.NewInteger(1))
			} else {
				ctx.Return(runtime.NewInteger(0))
			}
			return nil
		},
	)
}
