package module

import (
	"testing"

	"github.com/pulsar-lang/pulsar/internal/runtime"
)

func TestAddFunctionAndFindByName(t *testing.T) {
	m := New()
	idx := m.AddFunction(&FunctionDefinition{Signature: FunctionSignature{Name: "main"}})
	if idx != 0 {
		t.Fatalf("expected index 0, got %d", idx)
	}
	got, ok := m.FindFunctionByName("main")
	if !ok || got != 0 {
		t.Fatalf("FindFunctionByName(main) = %d, %v", got, ok)
	}
	if _, ok := m.FindFunctionByName("missing"); ok {
		t.Fatalf("FindFunctionByName(missing) should report not found")
	}
}

func TestDeclareNativeFunctionThenBindByIndex(t *testing.T) {
	m := New()
	sig := FunctionSignature{Name: "double", Arity: 1, StackArity: 1, Returns: 1}
	idx := m.DeclareNativeFunction(sig)

	if m.NativeHandlerAt(idx) != nil {
		t.Fatalf("expected nil handler before binding")
	}
	called := false
	if err := m.BindNativeFunctionByIndex(idx, func(ctx NativeContext) error {
		called = true
		return nil
	}); err != nil {
		t.Fatalf("BindNativeFunctionByIndex failed: %v", err)
	}
	m.NativeHandlerAt(idx)(nil)
	if !called {
		t.Fatalf("bound handler was not invoked")
	}
}

func TestBindNativeFunctionByIndexOutOfRange(t *testing.T) {
	m := New()
	if err := m.BindNativeFunctionByIndex(0, func(NativeContext) error { return nil }); err == nil {
		t.Fatalf("expected error binding an undeclared index")
	}
}

func TestFindFunctionBySignatureNewestFirst(t *testing.T) {
	m := New()
	sig := FunctionSignature{Name: "add", Arity: 2, StackArity: 2, Returns: 1}
	first := m.DeclareNativeFunction(sig)
	second := m.DeclareNativeFunction(sig)

	idx, ok := m.FindFunctionBySignature(sig)
	if !ok || idx != second {
		t.Fatalf("expected newest declaration (%d), got %d", second, idx)
	}
	if idx == first {
		t.Fatalf("should not have resolved to the first declaration")
	}
}

func TestBindNativeFunctionBySignatureRequiresDeclaration(t *testing.T) {
	m := New()
	sig := FunctionSignature{Name: "print!", Arity: 1, StackArity: 1, Returns: 0}
	if _, err := m.BindNativeFunctionBySignature(sig, func(NativeContext) error { return nil }); err == nil {
		t.Fatalf("expected error binding a never-declared signature")
	}

	m.DeclareNativeFunction(sig)
	count, err := m.BindNativeFunctionBySignature(sig, func(NativeContext) error { return nil })
	if err != nil {
		t.Fatalf("unexpected error binding a declared signature: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1 for a single declaration, got %d", count)
	}
}

func TestBindNativeFunctionBySignatureBindsAllMatchingDeclarations(t *testing.T) {
	m := New()
	sig := FunctionSignature{Name: "f", Arity: 1, StackArity: 1, Returns: 0}
	first := m.DeclareNativeFunction(sig)
	second := m.DeclareNativeFunction(sig)

	count, err := m.BindNativeFunctionBySignature(sig, func(NativeContext) error { return nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2 binding two identical declarations, got %d", count)
	}
	if m.NativeHandlerAt(first) == nil {
		t.Fatalf("expected the first declaration to receive the handler")
	}
	if m.NativeHandlerAt(second) == nil {
		t.Fatalf("expected the second declaration to receive the handler")
	}
}

func TestFindNativeByNameReturnsMostRecent(t *testing.T) {
	m := New()
	m.DeclareNativeFunction(FunctionSignature{Name: "f", Arity: 1, StackArity: 1})
	second := m.DeclareNativeFunction(FunctionSignature{Name: "f", Arity: 2, StackArity: 2})

	idx, ok := m.FindNativeByName("f")
	if !ok || idx != second {
		t.Fatalf("expected most recent declaration %d, got %d", second, idx)
	}
}

func TestAddConstantDedupesScalarsNotHeap(t *testing.T) {
	m := New()
	i1 := m.AddConstant(runtime.NewInteger(5))
	i2 := m.AddConstant(runtime.NewInteger(5))
	if i1 != i2 {
		t.Fatalf("expected scalar constants to dedupe: %d != %d", i1, i2)
	}

	s1 := m.AddConstant(runtime.NewString("x"))
	s2 := m.AddConstant(runtime.NewString("x"))
	if s1 == s2 {
		t.Fatalf("expected heap constants to NOT dedupe, both got index %d", s1)
	}
}

func TestConstantOutOfRangeReturnsVoid(t *testing.T) {
	m := New()
	if v := m.Constant(99); v.Kind() != runtime.Void {
		t.Fatalf("expected Void for out-of-range constant, got %s", v.Kind())
	}
}

func TestBindCustomType(t *testing.T) {
	m := New()
	ct := m.BindCustomType("Point", func() any { return "global-data" })
	if ct.ID != 1 {
		t.Fatalf("expected first custom type to get ID 1, got %d", ct.ID)
	}
	if ct.GlobalData != "global-data" {
		t.Fatalf("expected factory result stored as GlobalData, got %v", ct.GlobalData)
	}
	got, ok := m.CustomTypeByID(1)
	if !ok || got != ct {
		t.Fatalf("CustomTypeByID(1) = %v, %v", got, ok)
	}
	if _, ok := m.CustomTypeByID(99); ok {
		t.Fatalf("CustomTypeByID(99) should report not found")
	}
}

func TestFunctionSignatureMatches(t *testing.T) {
	a := FunctionSignature{Name: "f", Arity: 1, StackArity: 1, Returns: 1}
	b := FunctionSignature{Name: "f", Arity: 1, StackArity: 1, Returns: 1}
	c := FunctionSignature{Name: "f", Arity: 2, StackArity: 2, Returns: 1}
	if !a.Matches(b) {
		t.Fatalf("expected identical signatures to match")
	}
	if a.Matches(c) {
		t.Fatalf("expected differing arity to not match")
	}
}
