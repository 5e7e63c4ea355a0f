package module

import (
	"strings"
	"testing"
)

func TestDumpManifestIncludesFunctionsAndNatives(t *testing.T) {
	m := New()
	m.AddFunction(&FunctionDefinition{Signature: FunctionSignature{Name: "main", Arity: 0, Returns: 0}})
	m.DeclareNativeFunction(FunctionSignature{Name: "println!", Arity: 1, StackArity: 1, Returns: 0})

	out, err := m.DumpManifest()
	if err != nil {
		t.Fatalf("DumpManifest failed: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "main") {
		t.Fatalf("expected manifest to mention function \"main\":\n%s", text)
	}
	if !strings.Contains(text, "println!") {
		t.Fatalf("expected manifest to mention native \"println!\":\n%s", text)
	}
}

func TestDumpManifestEmptyModule(t *testing.T) {
	m := New()
	out, err := m.DumpManifest()
	if err != nil {
		t.Fatalf("DumpManifest failed on empty module: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("expected non-empty YAML even for an empty module")
	}
}
