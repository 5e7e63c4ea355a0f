package vm

import "github.com/pulsar-lang/pulsar/internal/runtime"

// nativeContext adapts a slice of popped call arguments to the
// module.NativeContext interface a NativeHandler sees. It never touches a
// Frame directly so the module package stays independent of vm.
type nativeContext struct {
	args   []runtime.Value
	result runtime.Value
}

func (c *nativeContext) ArgCount() int { return len(c.args) }

func (c *nativeContext) Arg(i int) runtime.Value {
	if i < 0 || i >= len(c.args) {
		return runtime.NewVoid()
	}
	return c.args[i]
}

func (c *nativeContext) Return(v runtime.Value) {
	v.Retain()
	c.result = v
}
