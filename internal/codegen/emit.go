// Package codegen implements the IFJcode24 text emitter: a small set
// of primitive instruction writers plus named wrapper methods, in the
// same shape as a classic stack-machine assembly emitter — a buffered
// writer, a monotonic label counter, and two control-flow label
// stacks for `if` and `while`.
package codegen

import (
	"bufio"
	"fmt"
	"io"
)

// Emitter writes IFJcode24 instructions to an underlying writer.
type Emitter struct {
	out        *bufio.Writer
	labelCount int
	ifStack    []int
	whileStack []int
}

// New creates an Emitter writing to w.
func New(w io.Writer) *Emitter {
	return &Emitter{out: bufio.NewWriter(w)}
}

// NewLabel allocates a fresh monotonic label id.
func (e *Emitter) NewLabel() int {
	id := e.labelCount
	e.labelCount++
	return id
}

// Flush flushes the underlying writer.
func (e *Emitter) Flush() {
	e.out.Flush()
}

// Raw emits one already-formatted instruction line.
func (e *Emitter) Raw(line string) {
	fmt.Fprintln(e.out, line)
}

// Instr0 emits a zero-operand instruction.
func (e *Emitter) Instr0(op string) {
	fmt.Fprintf(e.out, "%s\n", op)
}

// Instr1 emits a one-operand instruction.
func (e *Emitter) Instr1(op, a1 string) {
	fmt.Fprintf(e.out, "%s %s\n", op, a1)
}

// Instr2 emits a two-operand instruction.
func (e *Emitter) Instr2(op, a1, a2 string) {
	fmt.Fprintf(e.out, "%s %s %s\n", op, a1, a2)
}

// Instr3 emits a three-operand instruction.
func (e *Emitter) Instr3(op, a1, a2, a3 string) {
	fmt.Fprintf(e.out, "%s %s %s %s\n", op, a1, a2, a3)
}

// Label emits a LABEL directive.
func (e *Emitter) Label(name string) {
	fmt.Fprintf(e.out, "LABEL %s\n", name)
}

// BlankLine emits an empty line, matching the built-in prelude's
// visual separation between function bodies.
func (e *Emitter) BlankLine() {
	fmt.Fprintln(e.out)
}

// --- Operand formatting helpers ---

// LF formats a local-frame variable operand.
func LF(name string) string { return "LF@" + name }

// GF formats a global-frame variable operand.
func GF(name string) string { return "GF@" + name }

// IntLit formats an integer literal operand.
func IntLit(v int64) string { return fmt.Sprintf("int@%d", v) }

// FloatLit formats a float literal operand in C99 hex-float form.
func FloatLit(v float64) string { return fmt.Sprintf("float@%s", hexFloat(v)) }

func hexFloat(v float64) string {
	return fmt.Sprintf("%x", v)
}

// StrLit formats a string literal operand from already-canonicalised
// text (see internal/lexer.Canonicalize).
func StrLit(canonical string) string { return "string@" + canonical }

// BoolLit formats a boolean literal operand.
func BoolLit(v bool) string {
	if v {
		return "bool@true"
	}
	return "bool@false"
}

// NilLit is the nil@nil operand.
const NilLit = "nil@nil"

// --- Header and prelude ---

// Header emits the fixed program header and built-in prelude.
func (e *Emitter) Header() {
	e.Raw(".IFJcode24")
	e.Instr1("DEFVAR", GF("return"))
	e.Instr1("DEFVAR", GF("_discard"))
	e.Instr1("DEFVAR", GF("temp"))
	e.Instr1("JUMP", "$main")
	e.builtins()
}

// --- Function framing ---

// FuncStart emits a function's entry label and frame setup.
func (e *Emitter) FuncStart(name string) {
	e.BlankLine()
	e.Label("$" + name)
	e.Instr0("CREATEFRAME")
	e.Instr0("PUSHFRAME")
}

// FuncEnd emits the epilogue for a function with no explicit return
// statement (falls off the end of a void function).
func (e *Emitter) FuncEnd() {
	e.Instr0("POPFRAME")
	e.Instr0("RETURN")
}

// DefVar emits a local variable declaration.
func (e *Emitter) DefVar(name string) {
	e.Instr1("DEFVAR", LF(name))
}

// Return emits a return-with-value sequence.
func (e *Emitter) Return() {
	e.Instr1("POPS", GF("return"))
	e.Instr0("POPFRAME")
	e.Instr0("RETURN")
}

// ReturnVoid emits a return-without-value sequence.
func (e *Emitter) ReturnVoid() {
	e.Instr0("POPFRAME")
	e.Instr0("RETURN")
}

// Call emits a call to a user function or, for ifj.* names, the
// matching built-in label.
func (e *Emitter) Call(funcName string) {
	if label, ok := builtinLabel[funcName]; ok {
		e.Instr1("CALL", label)
		return
	}
	e.Instr1("CALL", "$"+funcName)
}

// PushOperand pushes a local variable's value.
func (e *Emitter) PushOperand(name string) {
	e.Instr1("PUSHS", LF(name))
}

// PopOperand pops into a local variable, or discards if name is "".
func (e *Emitter) PopOperand(name string) {
	if name == "" {
		e.Instr1("POPS", GF("_discard"))
		return
	}
	e.Instr1("POPS", LF(name))
}

// --- Control flow ---

// IfStart emits the condition pop and false-branch jump, pushing a
// fresh label id onto the if stack.
func (e *Emitter) IfStart() int {
	label := e.NewLabel()
	cond := fmt.Sprintf("if_cond_%d", label)
	e.DefVar(cond)
	e.Instr1("POPS", LF(cond))
	e.Instr3("JUMPIFEQ", fmt.Sprintf("$if_else_%d", label), LF(cond), BoolLit(false))
	e.ifStack = append(e.ifStack, label)
	return label
}

// IfElse emits the jump-to-end and else label for the current if.
func (e *Emitter) IfElse() {
	label := e.ifStack[len(e.ifStack)-1]
	e.Instr1("JUMP", fmt.Sprintf("$if_end_%d", label))
	e.Label(fmt.Sprintf("$if_else_%d", label))
}

// IfEnd emits the end label and pops the if stack.
func (e *Emitter) IfEnd() {
	label := e.ifStack[len(e.ifStack)-1]
	e.ifStack = e.ifStack[:len(e.ifStack)-1]
	e.Label(fmt.Sprintf("$if_end_%d", label))
}

// IfNullableStart emits the nullable-unwrap condition check and binds
// nonNullName to the unwrapped value.
func (e *Emitter) IfNullableStart(nonNullName string) int {
	label := e.NewLabel()
	cond := fmt.Sprintf("nullable_check_%d", label)
	e.DefVar(cond)
	e.Instr1("POPS", LF(cond))
	e.Instr3("JUMPIFEQ", fmt.Sprintf("$if_nullable_else_%d", label), LF(cond), NilLit)
	e.DefVar(nonNullName)
	e.Instr2("MOVE", LF(nonNullName), LF(cond))
	e.ifStack = append(e.ifStack, label)
	return label
}

// IfNullableElse emits the jump-to-end and else label for a nullable if.
func (e *Emitter) IfNullableElse() {
	label := e.ifStack[len(e.ifStack)-1]
	e.Instr1("JUMP", fmt.Sprintf("$if_nullable_end_%d", label))
	e.Label(fmt.Sprintf("$if_nullable_else_%d", label))
}

// IfNullableEnd emits the end label for a nullable if and pops the stack.
func (e *Emitter) IfNullableEnd() {
	label := e.ifStack[len(e.ifStack)-1]
	e.ifStack = e.ifStack[:len(e.ifStack)-1]
	e.Label(fmt.Sprintf("$if_nullable_end_%d", label))
}

// WhileStart emits the loop-start label, pushing a fresh label id.
func (e *Emitter) WhileStart() int {
	label := e.NewLabel()
	e.DefVar(fmt.Sprintf("while_cond_%d", label))
	e.Label(fmt.Sprintf("$while_start_%d", label))
	e.whileStack = append(e.whileStack, label)
	return label
}

// WhileCond emits the condition check for the current while loop.
func (e *Emitter) WhileCond() {
	label := e.whileStack[len(e.whileStack)-1]
	cond := fmt.Sprintf("while_cond_%d", label)
	e.Instr1("POPS", LF(cond))
	e.Instr3("JUMPIFEQ", fmt.Sprintf("$while_end_%d", label), LF(cond), BoolLit(false))
}

// WhileEnd emits the back-edge jump and end label, popping the stack.
func (e *Emitter) WhileEnd() {
	label := e.whileStack[len(e.whileStack)-1]
	e.whileStack = e.whileStack[:len(e.whileStack)-1]
	e.Instr1("JUMP", fmt.Sprintf("$while_start_%d", label))
	e.Label(fmt.Sprintf("$while_end_%d", label))
}

// WhileNullableCond emits the nullable-unwrap condition for a while
// loop and binds nonNullName in the loop body.
func (e *Emitter) WhileNullableCond(nonNullName string) {
	label := e.whileStack[len(e.whileStack)-1]
	cond := fmt.Sprintf("while_cond_%d", label)
	e.Instr1("POPS", LF(cond))
	e.Instr3("JUMPIFEQ", fmt.Sprintf("$while_nullable_end_%d", label), LF(cond), NilLit)
	e.DefVar(nonNullName)
	e.Instr2("MOVE", LF(nonNullName), LF(cond))
}

// WhileNullableEnd emits the back-edge and nullable end label.
func (e *Emitter) WhileNullableEnd() {
	label := e.whileStack[len(e.whileStack)-1]
	e.whileStack = e.whileStack[:len(e.whileStack)-1]
	e.Instr1("JUMP", fmt.Sprintf("$while_start_%d", label))
	e.Label(fmt.Sprintf("$while_nullable_end_%d", label))
}
