package module

import (
	"fmt"
	"io"
)

// Disassemble writes a human-readable dump of a compiled function's
// bytecode to w: one line per instruction, annotated with its operand
// meaning where the opcode carries one.
func (m *Module) Disassemble(w io.Writer, funcIndex int) error {
	if funcIndex < 0 || funcIndex >= len(m.Functions) {
		return fmt.Errorf("function index %d out of range", funcIndex)
	}
	def := m.Functions[funcIndex]
	fmt.Fprintf(w, "== %s ==\n", def.Signature.Name)
	for offset, inst := range def.Code {
		m.disassembleInstruction(w, offset, inst)
	}
	return nil
}

func (m *Module) disassembleInstruction(w io.Writer, offset int, inst Instruction) {
	op := inst.OpCode()
	switch op {
	case OpPushConst:
		fmt.Fprintf(w, "%04d %-14s %d (%s)\n", offset, op, inst.B(), m.Constant(int(inst.B())))
	case OpLoadLocal, OpStoreLocal:
		fmt.Fprintf(w, "%04d %-14s %d\n", offset, op, inst.A())
	case OpJump, OpJumpIfFalse:
		fmt.Fprintf(w, "%04d %-14s -> %04d\n", offset, op, offset+1+int(inst.SignedB()))
	case OpCall:
		fmt.Fprintf(w, "%04d %-14s func=%d\n", offset, op, inst.B())
	case OpCallNative:
		sig, _ := m.NativeSignatureAt(int(inst.B()))
		fmt.Fprintf(w, "%04d %-14s native=%d (%s)\n", offset, op, inst.B(), sig.Name)
	default:
		fmt.Fprintf(w, "%04d %-14s\n", offset, op)
	}
}
