package runtime

import "testing"

func TestScalarConstructorsAndAccessors(t *testing.T) {
	if v := NewVoid(); v.Kind() != Void {
		t.Fatalf("expected Void kind, got %s", v.Kind())
	}
	if v := NewInteger(42); v.Kind() != Integer || v.AsInteger() != 42 {
		t.Fatalf("NewInteger(42) = %+v", v)
	}
	if v := NewDouble(3.5); v.Kind() != Double || v.AsDouble() != 3.5 {
		t.Fatalf("NewDouble(3.5) = %+v", v)
	}
	if v := NewFunctionReference(7); v.Kind() != FunctionReference || v.AsFunctionReference() != 7 {
		t.Fatalf("NewFunctionReference(7) = %+v", v)
	}
	if v := NewNativeFunctionReference(3); v.Kind() != NativeFunctionReference || v.AsNativeFunctionReference() != 3 {
		t.Fatalf("NewNativeFunctionReference(3) = %+v", v)
	}
}

func TestAsAccessorsWrongKindReturnZeroValue(t *testing.T) {
	v := NewInteger(1)
	if v.AsDouble() != 0 {
		t.Fatalf("AsDouble on Integer should be 0, got %v", v.AsDouble())
	}
	if v.AsString() != "" {
		t.Fatalf("AsString on Integer should be empty, got %q", v.AsString())
	}
	if v.AsFunctionReference() != -1 {
		t.Fatalf("AsFunctionReference on Integer should be -1, got %d", v.AsFunctionReference())
	}
	if v.ListLen() != 0 {
		t.Fatalf("ListLen on Integer should be 0, got %d", v.ListLen())
	}
}

func TestStringValue(t *testing.T) {
	v := NewString("hello")
	if v.Kind() != String || v.AsString() != "hello" {
		t.Fatalf("NewString(\"hello\") = %+v", v)
	}
	if v.RefCount() != 1 {
		t.Fatalf("expected refcount 1, got %d", v.RefCount())
	}
}

func TestRetainReleaseScalarIsNoop(t *testing.T) {
	v := NewInteger(1)
	v.Retain()
	v.Release()
	if v.RefCount() != 0 {
		t.Fatalf("scalar RefCount should stay 0, got %d", v.RefCount())
	}
}

func TestRetainReleaseHeapRefcount(t *testing.T) {
	v := NewString("x")
	v.Retain()
	if v.RefCount() != 2 {
		t.Fatalf("expected refcount 2 after Retain, got %d", v.RefCount())
	}
	v.Release()
	if v.RefCount() != 1 {
		t.Fatalf("expected refcount 1 after one Release, got %d", v.RefCount())
	}
}

func TestCustomDeleterRunsExactlyOnce(t *testing.T) {
	calls := 0
	v := NewCustom(CustomInstance{
		TypeID: 1,
		Data:   0,
		Deleter: func(uintptr) {
			calls++
		},
	})
	v.Retain()
	v.Release()
	if calls != 0 {
		t.Fatalf("deleter ran before last release: %d calls", calls)
	}
	v.Release()
	if calls != 1 {
		t.Fatalf("expected deleter to run exactly once, ran %d times", calls)
	}
	// A further release past zero must not invoke the deleter again.
	v.Release()
	if calls != 1 {
		t.Fatalf("deleter ran again after refcount reached zero: %d calls", calls)
	}
}

func TestListRetainReleaseCascades(t *testing.T) {
	calls := 0
	elem := NewCustom(CustomInstance{Deleter: func(uintptr) { calls++ }})
	list := NewList([]Value{elem})
	// NewList retains its own copy; the caller's original elem is still live.
	elem.Release()
	if calls != 0 {
		t.Fatalf("list element released too early")
	}
	list.Release()
	if calls != 1 {
		t.Fatalf("expected list release to cascade to element deleter, got %d calls", calls)
	}
}

func TestListAtAndSet(t *testing.T) {
	list := NewList([]Value{NewInteger(1), NewInteger(2)})
	if n := list.ListLen(); n != 2 {
		t.Fatalf("expected length 2, got %d", n)
	}
	v, ok := list.ListAt(1)
	if !ok || v.AsInteger() != 2 {
		t.Fatalf("ListAt(1) = %+v, %v", v, ok)
	}
	if !list.ListSet(0, NewInteger(9)) {
		t.Fatalf("ListSet(0, ...) reported failure")
	}
	v, _ = list.ListAt(0)
	if v.AsInteger() != 9 {
		t.Fatalf("expected 9 after ListSet, got %d", v.AsInteger())
	}
	if _, ok := list.ListAt(5); ok {
		t.Fatalf("ListAt(5) should report out of range")
	}
}

func TestEquals(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Value
		expected bool
	}{
		{"same integers", NewInteger(1), NewInteger(1), true},
		{"different integers", NewInteger(1), NewInteger(2), false},
		{"different kinds", NewInteger(1), NewDouble(1), false},
		{"same strings", NewString("a"), NewString("a"), true},
		{"different strings", NewString("a"), NewString("b"), false},
		{"equal lists", NewList([]Value{NewInteger(1)}), NewList([]Value{NewInteger(1)}), true},
		{"different length lists", NewList([]Value{NewInteger(1)}), NewList(nil), false},
		{"void equals void", NewVoid(), NewVoid(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equals(tt.b); got != tt.expected {
				t.Fatalf("%s.Equals(%s) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v        Value
		expected string
	}{
		{NewVoid(), "void"},
		{NewInteger(5), "5"},
		{NewDouble(2.5), "2.5"},
		{NewString("hi"), `"hi"`},
		{NewList([]Value{NewInteger(1), NewInteger(2)}), "[1, 2]"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.expected {
			t.Fatalf("String() = %q, want %q", got, tt.expected)
		}
	}
}
