package module

import (
	"fmt"

	"github.com/pulsar-lang/pulsar/internal/runtime"
)

// nativeBinding pairs a declared signature with its (possibly still
// unattached) handler.
type nativeBinding struct {
	signature FunctionSignature
	handler   NativeHandler
}

// Module is a compiled Pulsar program: function bodies, native bindings,
// the constant pool, and custom type registrations. It is produced by the
// parser and consumed by the execution engine; both packages depend on
// it, never on each other.
type Module struct {
	Functions  []*FunctionDefinition
	natives    []nativeBinding
	Constants  []runtime.Value
	CustomTypes map[uint64]*CustomType
	LastTypeID  uint64

	funcByName   map[string]int
	nativeByName map[string]int
}

// New returns an empty Module ready for declarations.
func New() *Module {
	return &Module{
		CustomTypes:  make(map[uint64]*CustomType),
		funcByName:   make(map[string]int),
		nativeByName: make(map[string]int),
	}
}

// AddFunction registers a compiled function body and returns its index,
// used as the operand of OpCall when the callee is resolved at compile
// time.
func (m *Module) AddFunction(def *FunctionDefinition) int {
	index := len(m.Functions)
	m.Functions = append(m.Functions, def)
	m.funcByName[def.Signature.Name] = index
	return index
}

// FindFunctionByName looks up a compiled function by name. The parser
// uses this to resolve calls in its second pass, after every declaration
// has been collected in the first.
func (m *Module) FindFunctionByName(name string) (int, bool) {
	index, ok := m.funcByName[name]
	return index, ok
}

// DeclareNativeFunction registers a native function signature without a
// handler attached yet, returning its index within NativeBindings. Used
// when a host wants the parser to see the signature (so calls compile)
// before the handler itself is wired up, e.g. while bootstrapping a set
// of mutually-referencing bindings.
func (m *Module) DeclareNativeFunction(sig FunctionSignature) int {
	index := len(m.natives)
	m.natives = append(m.natives, nativeBinding{signature: sig})
	m.nativeByName[sig.Name] = index
	return index
}

// FindNativeByName looks up the most recently declared native binding
// with the given name, regardless of signature. Call-site lowering in the
// parser resolves bare identifiers this way; a host that needs to
// disambiguate overloads of the same name uses FindFunctionBySignature
// directly.
func (m *Module) FindNativeByName(name string) (int, bool) {
	index, ok := m.nativeByName[name]
	return index, ok
}

// DeclareAndBindNativeFunction registers a native function signature and
// attaches its handler in a single step, returning its index within
// NativeBindings.
func (m *Module) DeclareAndBindNativeFunction(sig FunctionSignature, handler NativeHandler) int {
	index := len(m.natives)
	m.natives = append(m.natives, nativeBinding{signature: sig, handler: handler})
	m.nativeByName[sig.Name] = index
	return index
}

// BindNativeFunctionByIndex attaches handler to an already-declared
// native binding at the given index.
func (m *Module) BindNativeFunctionByIndex(index int, handler NativeHandler) error {
	if index < 0 || index >= len(m.natives) {
		return fmt.Errorf("native binding index %d out of range", index)
	}
	m.natives[index].handler = handler
	return nil
}

// BindNativeFunctionBySignature attaches handler to every declared binding
// matching sig, not just the newest, and returns how many bindings it
// attached. A script that declares the same native signature more than
// once (e.g. two overload-free forward references to the same extern)
// gets handler wired into all of them. A host that wants exactly one
// specific overload bound, ignoring siblings with the same signature,
// uses BindNativeFunctionByIndex instead.
func (m *Module) BindNativeFunctionBySignature(sig FunctionSignature, handler NativeHandler) (int, error) {
	count := 0
	for i := range m.natives {
		if m.natives[i].signature.Matches(sig) {
			m.natives[i].handler = handler
			count++
		}
	}
	if count == 0 {
		return 0, fmt.Errorf("no declared native function matches signature %+v", sig)
	}
	return count, nil
}

// FindFunctionBySignature searches declared native bindings for one
// matching sig, scanning newest-first (highest index to lowest) and
// returning the first match. Newest-first, rather than declaration order,
// means a later DeclareNativeFunction call for the same signature shadows
// an earlier one for resolution purposes without needing to remove it.
func (m *Module) FindFunctionBySignature(sig FunctionSignature) (int, bool) {
	for i := len(m.natives) - 1; i >= 0; i-- {
		if m.natives[i].signature.Matches(sig) {
			return i, true
		}
	}
	return 0, false
}

// NativeSignatureAt returns the declared signature at a NativeBindings
// index.
func (m *Module) NativeSignatureAt(index int) (FunctionSignature, bool) {
	if index < 0 || index >= len(m.natives) {
		return FunctionSignature{}, false
	}
	return m.natives[index].signature, true
}

// NativeHandlerAt returns the handler bound at a NativeBindings index, or
// nil if the binding is declared but not yet bound.
func (m *Module) NativeHandlerAt(index int) NativeHandler {
	if index < 0 || index >= len(m.natives) {
		return nil
	}
	return m.natives[index].handler
}

// NativeCount returns the number of declared native bindings.
func (m *Module) NativeCount() int {
	return len(m.natives)
}

// AddConstant interns a scalar value into the constant pool, returning
// its index. Scalar kinds are deduplicated; heap kinds (String, List,
// Custom) are never deduplicated since two textually-identical string
// literals still get distinct refcounted payloads.
func (m *Module) AddConstant(v runtime.Value) int {
	if !v.Kind().IsHeap() {
		for i, existing := range m.Constants {
			if existing.Kind() == v.Kind() && existing.Equals(v) {
				return i
			}
		}
	}
	index := len(m.Constants)
	m.Constants = append(m.Constants, v)
	return index
}

// Constant returns the constant at index, or a Void value if out of
// range.
func (m *Module) Constant(index int) runtime.Value {
	if index < 0 || index >= len(m.Constants) {
		return runtime.NewVoid()
	}
	return m.Constants[index]
}

// BindCustomType registers a new custom type, running factory once to
// produce its Module-wide GlobalData, and returns the allocated type.
func (m *Module) BindCustomType(name string, factory CustomTypeFactory) *CustomType {
	m.LastTypeID++
	var global any
	if factory != nil {
		global = factory()
	}
	ct := &CustomType{ID: m.LastTypeID, Name: name, GlobalData: global}
	m.CustomTypes[ct.ID] = ct
	return ct
}

// CustomTypeByID looks up a previously bound custom type.
func (m *Module) CustomTypeByID(id uint64) (*CustomType, bool) {
	ct, ok := m.CustomTypes[id]
	return ct, ok
}
