package parser

import (
	"strings"

	"github.com/pulsar-lang/pulsar/internal/lexer"
	"github.com/pulsar-lang/pulsar/internal/module"
	"github.com/pulsar-lang/pulsar/internal/runtime"
)

// funcCompiler lowers one function body (pass 2) into bytecode. It walks
// the same token slice the Parser buffered for pass 1, now resolving
// every identifier against the declarations pass 1 collected.
//
// depth tracks the net number of values the emitted code so far leaves on
// the operand stack relative to the start of the function body. Every
// emit call updates it via instructionDelta, so by the time compile
// returns, depth holds the function's actual stack arity: used both to
// validate a declared "-> N" and to infer one when absent.
type funcCompiler struct {
	p      *Parser
	mod    *module.Module
	header functionHeader
	pos    int
	end    int
	locals localsTable
	code   []module.Instruction
	debug  []module.BlockDebugSymbol
	depth  int
}

func newFuncCompiler(p *Parser, mod *module.Module, fh functionHeader) *funcCompiler {
	c := &funcCompiler{p: p, mod: mod, header: fh, pos: fh.bodyStart, end: fh.bodyEnd}
	for _, name := range fh.params {
		c.locals.declare(name)
	}
	return c
}

// compile lowers the function's body and appends the implicit return.
func (c *funcCompiler) compile() *parseError {
	if err := c.compileBlock(); err != nil {
		return err
	}
	endTok := c.p.at(c.pos)
	if endTok.Type != lexer.KW_END {
		return c.p.setError(UnexpectedToken, endTok, "expected 'end' to close function body")
	}
	c.pos++
	c.emit(module.MakeSimpleInstruction(module.OpReturn))
	return nil
}

// compileBlock compiles statements until it reaches a token that ends the
// current block (KW_END, KW_ELSE, or the body boundary) without consuming
// that terminator, so the caller (compile, or a nested compileIf) decides
// what it means.
func (c *funcCompiler) compileBlock() *parseError {
	for c.pos < c.end {
		tok := c.p.at(c.pos)
		switch tok.Type {
		case lexer.KW_END, lexer.KW_ELSE:
			return nil
		case lexer.KW_IF:
			if err := c.compileIf(); err != nil {
				return err
			}
		default:
			c.debug = append(c.debug, module.BlockDebugSymbol{
				InstructionOffset: len(c.code),
				Line:              tok.Pos.Line,
				Column:            tok.Pos.Column,
			})
			if err := c.compileToken(tok); err != nil {
				return err
			}
			c.pos++
		}
	}
	return nil
}

// compileIf lowers `if <then> [else <else>] end`. The condition value is
// not parsed as a separate sub-grammar: in this stack-oriented language
// it is whatever the statements immediately before 'if' left on top of
// the operand stack, so 'if' itself only needs to emit the conditional
// jump and recurse into the two branch bodies.
//
// Only one branch ever runs, so both must leave the stack at the same
// depth relative to where 'if' found it: an implicit empty else (the
// no-else form) counts as a zero-delta branch, and an explicit else
// must match the then-branch's delta exactly or the function's stack
// arity is undecidable at compile time.
func (c *funcCompiler) compileIf() *parseError {
	c.pos++ // consume 'if'

	jumpIfFalse := len(c.code)
	c.emit(module.MakeInstruction(module.OpJumpIfFalse, 0, 0xFFFF))

	startDepth := c.depth
	if err := c.compileBlock(); err != nil {
		return err
	}
	thenDelta := c.depth - startDepth

	tok := c.p.at(c.pos)
	switch tok.Type {
	case lexer.KW_ELSE:
		c.pos++
		jumpEnd := len(c.code)
		c.emit(module.MakeInstruction(module.OpJump, 0, 0xFFFF))
		c.patchJump(jumpIfFalse)

		c.depth = startDepth
		if err := c.compileBlock(); err != nil {
			return err
		}
		elseDelta := c.depth - startDepth
		endTok := c.p.at(c.pos)
		if endTok.Type != lexer.KW_END {
			return c.p.setError(UnexpectedToken, endTok, "expected 'end' to close if")
		}
		c.pos++
		c.patchJump(jumpEnd)
		if thenDelta != elseDelta {
			return c.p.setError(NegativeResultCount, tok, "if/else branches leave mismatched stack depth")
		}
		c.depth = startDepth + thenDelta
	case lexer.KW_END:
		c.pos++
		c.patchJump(jumpIfFalse)
		if thenDelta != 0 {
			return c.p.setError(NegativeResultCount, tok, "if without else must leave stack depth unchanged")
		}
	default:
		return c.p.setError(UnexpectedToken, tok, "expected 'else' or 'end'")
	}
	return nil
}

// patchJump rewrites the jump instruction at instrIdx so its offset lands
// on the instruction about to be emitted next.
func (c *funcCompiler) patchJump(instrIdx int) {
	target := len(c.code)
	offset := target - instrIdx - 1
	inst := c.code[instrIdx]
	c.code[instrIdx] = module.MakeInstruction(inst.OpCode(), inst.A(), uint16(int16(offset)))
}

func (c *funcCompiler) emitConst(idx int) {
	c.emit(module.MakeInstruction(module.OpPushConst, 0, uint16(idx)))
}

func (c *funcCompiler) emitSimple(op module.OpCode) {
	c.emit(module.MakeSimpleInstruction(op))
}

// emit appends inst to the compiled body and updates depth by its net
// stack effect, so every instruction contributes to the running total
// compile() and compileIf() rely on for arity inference and checking.
func (c *funcCompiler) emit(inst module.Instruction) {
	c.code = append(c.code, inst)
	c.depth += c.instructionDelta(inst)
}

// instructionDelta returns the net number of values inst leaves on the
// operand stack: positive for instructions that push more than they pop,
// negative for the reverse, zero for instructions that leave the depth
// unchanged (including OpJump; OpJumpIfFalse pops its condition, so it
// counts -1). OpCall and OpCallNative look up the callee's signature to
// compute pushed results minus consumed arguments; OpCall reads Arity
// rather than StackArity because that is what the execution engine's
// doCall actually pops for a user-defined call.
func (c *funcCompiler) instructionDelta(inst module.Instruction) int {
	switch inst.OpCode() {
	case module.OpPushConst, module.OpLoadLocal:
		return 1
	case module.OpStoreLocal:
		return -1
	case module.OpAdd, module.OpSub, module.OpMul,
		module.OpEq, module.OpNeq, module.OpLt, module.OpLe, module.OpGt, module.OpGe,
		module.OpConcat:
		return -1
	case module.OpNeg:
		return 0
	case module.OpJump:
		return 0
	case module.OpJumpIfFalse:
		return -1
	case module.OpCall:
		idx := int(inst.B())
		if idx >= 0 && idx < len(c.mod.Functions) {
			sig := c.mod.Functions[idx].Signature
			return sig.Returns - sig.Arity
		}
		return 0
	case module.OpCallNative:
		if sig, ok := c.mod.NativeSignatureAt(int(inst.B())); ok {
			return sig.Returns - sig.StackArity
		}
		return 0
	default:
		return 0
	}
}

func (c *funcCompiler) compileToken(tok lexer.Token) *parseError {
	switch tok.Type {
	case lexer.INT:
		c.emitConst(c.mod.AddConstant(runtime.NewInteger(tok.IntegerVal)))
	case lexer.FLOAT:
		c.emitConst(c.mod.AddConstant(runtime.NewDouble(tok.DoubleVal)))
	case lexer.STRING:
		c.emitConst(c.mod.AddConstant(runtime.NewString(tok.Literal)))
	case lexer.IDENT:
		return c.compileIdentifier(tok)
	case lexer.PLUS:
		c.emitSimple(module.OpAdd)
	case lexer.MINUS:
		c.emitSimple(module.OpSub)
	case lexer.ASTERISK:
		c.emitSimple(module.OpMul)
	case lexer.DOT:
		c.emitSimple(module.OpConcat)
	case lexer.EQ:
		c.emitSimple(module.OpEq)
	case lexer.NOT_EQ:
		c.emitSimple(module.OpNeq)
	case lexer.LESS:
		c.emitSimple(module.OpLt)
	case lexer.LESS_EQ:
		c.emitSimple(module.OpLe)
	case lexer.MORE:
		c.emitSimple(module.OpGt)
	case lexer.MORE_EQ:
		c.emitSimple(module.OpGe)
	default:
		return c.p.setError(UnexpectedToken, tok, "unexpected token in function body: "+tok.String())
	}
	return nil
}

// compileIdentifier resolves a bare name, in order: local binding, a
// compiled function, a declared native, then a named top-level constant.
// Every case compiles to a single instruction, consistent with this
// language's one-token-one-operation model.
//
// Locals never reach the undeclared path: the only way a name becomes a
// local binding is as a function parameter, already recorded in c.locals
// before the body compiles, so a name can't be "used as a local" without
// having been declared as one. An unresolved name conventionally ending
// in '!' (pulsar's native-call naming convention, e.g. print!, panic!) is
// reported as an undeclared native rather than an undeclared function,
// since that suffix is the only signal the grammar gives for what the
// caller intended.
func (c *funcCompiler) compileIdentifier(tok lexer.Token) *parseError {
	if idx, ok := c.locals.lookup(tok.Literal); ok {
		c.emit(module.MakeInstruction(module.OpLoadLocal, byte(idx), 0))
		return nil
	}
	if idx, ok := c.mod.FindFunctionByName(tok.Literal); ok {
		c.emit(module.MakeInstruction(module.OpCall, 0, uint16(idx)))
		return nil
	}
	if idx, ok := c.mod.FindNativeByName(tok.Literal); ok {
		c.emit(module.MakeInstruction(module.OpCallNative, 0, uint16(idx)))
		return nil
	}
	if valTok, ok := c.p.constants[tok.Literal]; ok {
		c.emitConst(c.constIndexFor(valTok))
		return nil
	}
	if strings.HasSuffix(tok.Literal, "!") {
		return c.p.setError(UsageOfUndeclaredNativeFunction, tok, "undeclared native function: "+tok.Literal)
	}
	return c.p.setError(UsageOfUndeclaredFunction, tok, "undeclared identifier: "+tok.Literal)
}

func (c *funcCompiler) constIndexFor(tok lexer.Token) int {
	switch tok.Type {
	case lexer.INT:
		return c.mod.AddConstant(runtime.NewInteger(tok.IntegerVal))
	case lexer.FLOAT:
		return c.mod.AddConstant(runtime.NewDouble(tok.DoubleVal))
	case lexer.STRING:
		return c.mod.AddConstant(runtime.NewString(tok.Literal))
	default:
		return c.mod.AddConstant(runtime.NewVoid())
	}
}
