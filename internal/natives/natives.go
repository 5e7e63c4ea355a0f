// Package natives provides the reference set of native function bindings
// pulsar, the CLI, wires into every Module it runs: print/stdio, a minimal
// filesystem surface, and panic!. These are the "implementations" spec.md
// scopes out of the core engine, given a concrete, runnable home here so
// cmd/pulsar is a usable host rather than a bare library.
//
// A script declares the natives it calls itself, with a "*(name params) ->
// N" header; parsing resolves call sites against those declarations before
// Install ever runs. So Install does not declare anything new — it binds a
// handler to a declaration only when the full signature (name, arity and
// result count) matches, and silently skips natives the script never
// mentioned or declared with a different shape.
package natives

import "github.com/pulsar-lang/pulsar/internal/module"

// Install binds pulsar's reference native functions to the matching
// declarations already in mod.
// It is split across print.go, stdio.go, and panic.go for the same reason
// the teacher splits its builtins across vm_builtins_*.go files.
func Install(mod *module.Module) {
	registerPrintNatives(mod)
	registerStdioNatives(mod)
	registerPanicNative(mod)
}

// bindIfDeclared attaches handler to sig if, and only if, the module already
// carries a native declaration matching it. A script that never declares
// e.g. glob! simply never gets a handler bound for it, rather than the host
// injecting a function the source never asked for.
func bindIfDeclared(mod *module.Module, sig module.FunctionSignature, handler module.NativeHandler) {
	_, _ = mod.BindNativeFunctionBySignature(sig, handler)
}
