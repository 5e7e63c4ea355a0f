// Package runtime implements Pulsar's runtime value model: a tagged union
// of scalar kinds plus three reference-counted heap kinds (String, List,
// Custom). Reference counting is explicit and independent of Go's garbage
// collector: the host ABI's testable contract is that a Custom value's
// deleter runs exactly once, at the moment its last reference disappears,
// not "eventually, when the Go GC gets around to it."
package runtime

import "fmt"

// Kind tags the variant a Value currently holds.
type Kind byte

const (
	Void Kind = iota
	Integer
	Double
	FunctionReference
	NativeFunctionReference
	String
	List
	Custom
)

var kindNames = [...]string{
	Void:                    "void",
	Integer:                 "integer",
	Double:                  "double",
	FunctionReference:       "function",
	NativeFunctionReference: "native-function",
	String:                  "string",
	List:                    "list",
	Custom:                  "custom",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsHeap reports whether values of this kind carry a refcounted payload
// that must be Retained/Released.
func (k Kind) IsHeap() bool {
	return k == String || k == List || k == Custom
}

// payload is the refcounted box shared by every heap-backed Value. Value
// itself stays a small, copyable struct; all sharing happens through the
// pointer to payload.
type payload struct {
	refcount int64
	str      string
	list     []Value
	custom   CustomInstance
}

// CustomInstance is the per-value data a Custom kind carries: a type id
// registered on the owning Module, plus an opaque handle to the host data
// and the deleter that releases it. Deleter is invoked exactly once, when
// the last reference to the owning Value disappears.
type CustomInstance struct {
	TypeID  uint64
	Data    uintptr
	Deleter func(data uintptr)
}

// Value is Pulsar's tagged-union runtime value. Scalar kinds (Void,
// Integer, Double, FunctionReference, NativeFunctionReference) are stored
// inline and copy freely. Heap kinds (String, List, Custom) share a
// payload through p; Retain/Release must bracket every copy that outlives
// the original binding (stack push/pop, local store, list element write).
type Value struct {
	kind   Kind
	intVal int64
	dblVal float64
	p      *payload
}

// Kind returns the value's tag.
func (v Value) Kind() Kind { return v.kind }

// NewVoid returns the single Void value.
func NewVoid() Value { return Value{kind: Void} }

// NewInteger wraps a signed 64-bit integer.
func NewInteger(i int64) Value { return Value{kind: Integer, intVal: i} }

// NewDouble wraps a 64-bit float.
func NewDouble(f float64) Value { return Value{kind: Double, dblVal: f} }

// NewFunctionReference wraps the index of a compiled function within its
// owning Module.
func NewFunctionReference(index int64) Value {
	return Value{kind: FunctionReference, intVal: index}
}

// NewNativeFunctionReference wraps the index of a bound native function
// within its owning Module.
func NewNativeFunctionReference(index int64) Value {
	return Value{kind: NativeFunctionReference, intVal: index}
}

// NewString allocates a fresh, refcount-1 String value.
func NewString(s string) Value {
	return Value{kind: String, p: &payload{refcount: 1, str: s}}
}

// NewList allocates a fresh, refcount-1 List value. elems is copied so the
// caller's slice and the Value's payload never alias.
func NewList(elems []Value) Value {
	buf := make([]Value, len(elems))
	copy(buf, elems)
	for i := range buf {
		buf[i].Retain()
	}
	return Value{kind: List, p: &payload{refcount: 1, list: buf}}
}

// NewCustom allocates a fresh, refcount-1 Custom value over the given
// instance data.
func NewCustom(instance CustomInstance) Value {
	return Value{kind: Custom, p: &payload{refcount: 1, custom: instance}}
}

// AsInteger returns the wrapped integer, or 0 if the Value is not Integer.
func (v Value) AsInteger() int64 {
	if v.kind != Integer {
		return 0
	}
	return v.intVal
}

// AsDouble returns the wrapped double, or 0 if the Value is not Double.
func (v Value) AsDouble() float64 {
	if v.kind != Double {
		return 0
	}
	return v.dblVal
}

// AsFunctionReference returns the wrapped function index, or -1 if the
// Value is not a FunctionReference.
func (v Value) AsFunctionReference() int64 {
	if v.kind != FunctionReference {
		return -1
	}
	return v.intVal
}

// AsNativeFunctionReference returns the wrapped native function index, or
// -1 if the Value is not a NativeFunctionReference.
func (v Value) AsNativeFunctionReference() int64 {
	if v.kind != NativeFunctionReference {
		return -1
	}
	return v.intVal
}

// AsString returns the wrapped string, or "" if the Value is not String.
func (v Value) AsString() string {
	if v.kind != String || v.p == nil {
		return ""
	}
	return v.p.str
}

// ListLen returns the number of elements in a List value, or 0 otherwise.
func (v Value) ListLen() int {
	if v.kind != List || v.p == nil {
		return 0
	}
	return len(v.p.list)
}

// ListAt returns the element at index i of a List value. The bool result
// reports whether i was in range.
func (v Value) ListAt(i int) (Value, bool) {
	if v.kind != List || v.p == nil || i < 0 || i >= len(v.p.list) {
		return Value{}, false
	}
	return v.p.list[i], true
}

// ListSet replaces the element at index i of a List value, retaining the
// incoming value and releasing the one it displaces. Returns false if i
// was out of range.
func (v Value) ListSet(i int, elem Value) bool {
	if v.kind != List || v.p == nil || i < 0 || i >= len(v.p.list) {
		return false
	}
	elem.Retain()
	v.p.list[i].Release()
	v.p.list[i] = elem
	return true
}

// AsCustom returns the wrapped custom instance, or the zero CustomInstance
// if the Value is not Custom.
func (v Value) AsCustom() CustomInstance {
	if v.kind != Custom || v.p == nil {
		return CustomInstance{}
	}
	return v.p.custom
}

// Retain increments a heap value's refcount. It is a no-op for scalar
// kinds, so callers may call it unconditionally on every Value they copy
// into a longer-lived slot (stack, local, list element).
func (v Value) Retain() {
	if v.kind.IsHeap() && v.p != nil {
		v.p.refcount++
	}
}

// Release decrements a heap value's refcount, invoking the payload's
// teardown exactly once when the count reaches zero. For List values this
// recursively releases every element; for Custom values it invokes the
// registered Deleter. It is a no-op for scalar kinds.
func (v Value) Release() {
	if !v.kind.IsHeap() || v.p == nil || v.p.refcount <= 0 {
		return
	}
	v.p.refcount--
	if v.p.refcount > 0 {
		return
	}
	switch v.kind {
	case List:
		for _, elem := range v.p.list {
			elem.Release()
		}
		v.p.list = nil
	case Custom:
		if v.p.custom.Deleter != nil {
			v.p.custom.Deleter(v.p.custom.Data)
		}
	}
}

// RefCount reports the current refcount of a heap value, or 0 for scalar
// kinds. Exposed for diagnostics and tests that verify deleter-once
// behavior.
func (v Value) RefCount() int64 {
	if !v.kind.IsHeap() || v.p == nil {
		return 0
	}
	return v.p.refcount
}

// String renders the value for debug/trace output.
func (v Value) String() string {
	switch v.kind {
	case Void:
		return "void"
	case Integer:
		return fmt.Sprintf("%d", v.intVal)
	case Double:
		return fmt.Sprintf("%g", v.dblVal)
	case FunctionReference:
		return fmt.Sprintf("<function #%d>", v.intVal)
	case NativeFunctionReference:
		return fmt.Sprintf("<native-function #%d>", v.intVal)
	case String:
		return fmt.Sprintf("%q", v.AsString())
	case List:
		if v.p == nil {
			return "[]"
		}
		s := "["
		for i, elem := range v.p.list {
			if i > 0 {
				s += ", "
			}
			s += elem.String()
		}
		return s + "]"
	case Custom:
		return fmt.Sprintf("<custom type=%d>", v.AsCustom().TypeID)
	default:
		return "<invalid>"
	}
}
