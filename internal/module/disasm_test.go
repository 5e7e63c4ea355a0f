package module

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/pulsar-lang/pulsar/internal/runtime"
)

func TestDisassembleAnnotatesOperands(t *testing.T) {
	m := New()
	constIdx := m.AddConstant(runtime.NewInteger(41))
	m.AddFunction(&FunctionDefinition{
		Signature: FunctionSignature{Name: "main", Returns: 0},
		Code: []Instruction{
			MakeInstruction(OpPushConst, 0, uint16(constIdx)),
			MakeInstruction(OpLoadLocal, 0, 0),
			MakeSimpleInstruction(OpReturn),
		},
	})

	var buf bytes.Buffer
	if err := m.Disassemble(&buf, 0); err != nil {
		t.Fatalf("Disassemble failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "== main ==") {
		t.Fatalf("expected function header, got:\n%s", out)
	}
	if !strings.Contains(out, "PUSH_CONST") || !strings.Contains(out, "41") {
		t.Fatalf("expected PUSH_CONST annotated with constant value, got:\n%s", out)
	}
	if !strings.Contains(out, "RETURN") {
		t.Fatalf("expected RETURN line, got:\n%s", out)
	}
}

func TestDisassembleOutOfRangeIndex(t *testing.T) {
	m := New()
	var buf bytes.Buffer
	if err := m.Disassemble(&buf, 0); err == nil {
		t.Fatalf("expected error disassembling an out-of-range function index")
	}
}

// TestDisassembleSnapshot pins the full textual rendering of a small but
// representative function (constant, local, jump) so a future change
// to the disassembly format shows up as an explicit snapshot diff rather
// than a hand-maintained string comparison.
func TestDisassembleSnapshot(t *testing.T) {
	m := New()
	constIdx := m.AddConstant(runtime.NewInteger(7))
	m.AddFunction(&FunctionDefinition{
		Signature:  FunctionSignature{Name: "classify", Arity: 1, Returns: 1},
		LocalCount: 1,
		Code: []Instruction{
			MakeInstruction(OpLoadLocal, 0, 0),
			MakeInstruction(OpPushConst, 0, uint16(constIdx)),
			MakeSimpleInstruction(OpLt),
			MakeInstruction(OpJumpIfFalse, 0, 2),
			MakeInstruction(OpJump, 0, 1),
			MakeSimpleInstruction(OpReturn),
		},
	})

	var buf bytes.Buffer
	if err := m.Disassemble(&buf, 0); err != nil {
		t.Fatalf("Disassemble failed: %v", err)
	}
	snaps.MatchSnapshot(t, "classify_disassembly", buf.String())
}
