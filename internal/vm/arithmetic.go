package vm

import "github.com/pulsar-lang/pulsar/internal/runtime"

// numericBinary implements the promotion rule shared by Add/Sub/Mul:
// Integer op Integer stays Integer; any Double operand promotes the whole
// operation to Double; anything else is a TypeError.
func numericBinary(a, b runtime.Value, onInt func(a, b int64) int64, onDouble func(a, b float64) float64) (runtime.Value, RuntimeState) {
	switch {
	case a.Kind() == runtime.Integer && b.Kind() == runtime.Integer:
		return runtime.NewInteger(onInt(a.AsInteger(), b.AsInteger())), OK
	case isNumeric(a) && isNumeric(b):
		return runtime.NewDouble(onDouble(asFloat(a), asFloat(b))), OK
	default:
		return runtime.Value{}, TypeError
	}
}

func isNumeric(v runtime.Value) bool {
	return v.Kind() == runtime.Integer || v.Kind() == runtime.Double
}

func asFloat(v runtime.Value) float64 {
	if v.Kind() == runtime.Integer {
		return float64(v.AsInteger())
	}
	return v.AsDouble()
}

// compareOrdered implements Lt/Le/Gt/Ge: numeric kinds compare by value,
// strings compare lexicographically, anything else is a TypeError.
func compareOrdered(a, b runtime.Value) (int, RuntimeState) {
	switch {
	case isNumeric(a) && isNumeric(b):
		af, bf := asFloat(a), asFloat(b)
		switch {
		case af < bf:
			return -1, OK
		case af > bf:
			return 1, OK
		default:
			return 0, OK
		}
	case a.Kind() == runtime.String && b.Kind() == runtime.String:
		as, bs := a.AsString(), b.AsString()
		switch {
		case as < bs:
			return -1, OK
		case as > bs:
			return 1, OK
		default:
			return 0, OK
		}
	default:
		return 0, TypeError
	}
}

// isFalsy implements the language's truthiness rule for JumpIfFalse:
// Integer(0), Double(0), empty String, empty List, and Void are falsy;
// everything else (including FunctionReference/NativeFunctionReference
// and Custom) is truthy.
func isFalsy(v runtime.Value) bool {
	switch v.Kind() {
	case runtime.Void:
		return true
	case runtime.Integer:
		return v.AsInteger() == 0
	case runtime.Double:
		return v.AsDouble() == 0
	case runtime.String:
		return v.AsString() == ""
	case runtime.List:
		return v.ListLen() == 0
	default:
		return false
	}
}
