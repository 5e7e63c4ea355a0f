package runtime

// Equals implements Pulsar's value equality used by the Eq/Neq opcodes.
// Values of different kinds are never equal. List equality is structural
// (element-wise, same length); Custom equality compares the instance's
// type id and data handle, not content, since the VM has no visibility
// into host-owned data.
func (v Value) Equals(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case Void:
		return true
	case Integer:
		return v.intVal == other.intVal
	case Double:
		return v.dblVal == other.dblVal
	case FunctionReference, NativeFunctionReference:
		return v.intVal == other.intVal
	case String:
		return v.AsString() == other.AsString()
	case List:
		a, b := v.ListLen(), other.ListLen()
		if a != b {
			return false
		}
		for i := 0; i < a; i++ {
			av, _ := v.ListAt(i)
			bv, _ := other.ListAt(i)
			if !av.Equals(bv) {
				return false
			}
		}
		return true
	case Custom:
		ac, bc := v.AsCustom(), other.AsCustom()
		return ac.TypeID == bc.TypeID && ac.Data == bc.Data
	default:
		return false
	}
}
