package parser

import (
	"github.com/gmofishsauce/ifj24c/internal/codegen"
	"github.com/gmofishsauce/ifj24c/internal/errs"
	"github.com/gmofishsauce/ifj24c/internal/precedence"
	"github.com/gmofishsauce/ifj24c/internal/symtab"
	"github.com/gmofishsauce/ifj24c/internal/token"
	"github.com/gmofishsauce/ifj24c/internal/types"
)

// stackEntry is one precedence-stack cell: a terminal category or the
// synthetic non-terminal Exp, carrying the type and literal-ness
// needed by the reduction rules' type-checking logic.
type stackEntry struct {
	sym       precedence.Symbol
	typ       types.Type
	isLiteral bool
	tok       token.Token
}

// parseExpr parses one expression starting at the current token,
// emitting IFJcode24 stack instructions as it reduces, and returns the
// expression's resulting type. The caller is responsible for
// positioning the cursor at the first token of the expression and for
// consuming whatever terminates it (';', ')', ',' or '{').
func (d *Driver) parseExpr() (types.Type, bool) {
	bracketCount := 0
	stack := []stackEntry{{sym: precedence.Dollar}}

	forceDollar := func(e stackEntry) stackEntry {
		if bracketCount < 0 {
			return stackEntry{sym: precedence.Dollar}
		}
		return e
	}

	cur, consumed := d.classify(&bracketCount)
	cur = forceDollar(cur)
	if d.ctx.HasError() {
		return types.Invalid, false
	}

	for {
		if cur.sym == precedence.Dollar && correctEnd(stack) {
			break
		}

		topTerm := topTerminal(stack)
		action := precedence.Table[topTerm.sym][cur.sym]

		switch action {
		case precedence.Shift, precedence.Equal:
			stack = append(stack, cur)
			if !consumed && cur.sym != precedence.Dollar {
				d.advance()
			}
			cur, consumed = d.classify(&bracketCount)
			cur = forceDollar(cur)
		case precedence.Reduce:
			ok := d.reduce(&stack)
			if !ok {
				return types.Invalid, false
			}
		default:
			d.fail(errs.SyntaxAnalysis, "invalid expression")
			return types.Invalid, false
		}
		if d.ctx.HasError() {
			return types.Invalid, false
		}
	}
	top := stack[len(stack)-1]
	return top.typ, true
}

func topTerminal(stack []stackEntry) stackEntry {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].sym != precedence.Exp {
			return stack[i]
		}
	}
	return stackEntry{sym: precedence.Dollar}
}

func correctEnd(stack []stackEntry) bool {
	return len(stack) == 2 && stack[0].sym == precedence.Dollar && stack[1].sym == precedence.Exp
}

// classify inspects the current token and returns its precedence-table
// stack entry. For a function-call identifier it also performs the
// entire call — arguments and CALL emission — in place, mirroring the
// reference implementation's token_to_prec_symb/parse_function_call_expr
// split; consumed reports whether classify already advanced past the
// token(s) it examined (true only for a completed call).
func (d *Driver) classify(bracketCount *int) (stackEntry, bool) {
	t := d.cur()
	mk := func(s precedence.Symbol) stackEntry { return stackEntry{sym: s, typ: types.Invalid, tok: t} }

	switch t.Kind {
	case token.Add:
		return mk(precedence.Add), false
	case token.Sub:
		return mk(precedence.Sub), false
	case token.Mul:
		return mk(precedence.Mul), false
	case token.Div:
		return mk(precedence.Div), false
	case token.Eq:
		return mk(precedence.Eq), false
	case token.Neq:
		return mk(precedence.Neq), false
	case token.Not:
		return mk(precedence.Not), false
	case token.Lt:
		return mk(precedence.Lt), false
	case token.Gt:
		return mk(precedence.Gt), false
	case token.Le:
		return mk(precedence.Le), false
	case token.Ge:
		return mk(precedence.Ge), false
	case token.LogicalAnd:
		return mk(precedence.And), false
	case token.LogicalOr:
		return mk(precedence.Or), false
	case token.LParen:
		*bracketCount++
		return mk(precedence.LParen), false
	case token.RParen:
		*bracketCount--
		return mk(precedence.RParen), false
	case token.StringLit:
		return stackEntry{sym: precedence.Ident, typ: types.String, isLiteral: true, tok: t}, false
	case token.IntLit:
		return stackEntry{sym: precedence.Ident, typ: types.Int, isLiteral: true, tok: t}, false
	case token.FloatLit:
		return stackEntry{sym: precedence.Ident, typ: types.Float, isLiteral: true, tok: t}, false
	case token.KwNull:
		return stackEntry{sym: precedence.Ident, typ: types.Null, isLiteral: true, tok: t}, false
	case token.Ident:
		s := d.sym.Find(t.StrVal)
		if s == nil {
			d.fail(errs.UndefinedFunctionOrVar, "undefined identifier "+t.StrVal)
			return stackEntry{}, false
		}
		if s.Kind == symtab.KindFunc {
			return d.classifyCall(s, t), true
		}
		s.Var.Used = true
		return stackEntry{sym: precedence.Ident, typ: s.Var.Type, isLiteral: false, tok: t}, false
	case token.LBrace, token.Semicolon, token.Comma, token.EOF:
		return stackEntry{sym: precedence.Dollar}, false
	default:
		d.fail(errs.SyntaxAnalysis, "unexpected token in expression: "+t.Kind.String())
		return stackEntry{}, false
	}
}

// classifyCall consumes `name(args)` in full: each argument is parsed
// as its own nested expression (so its value ends up pushed on the
// operand stack in argument order), checked against the callee's
// parameter types, and the call itself is emitted last.
func (d *Driver) classifyCall(sym *symtab.Symbol, nameTok token.Token) stackEntry {
	d.advance() // identifier
	d.expect(token.LParen, "'(' after function name")
	if d.ctx.HasError() {
		return stackEntry{}
	}
	fd := sym.Func
	argIdx := 0
	for d.cur().Kind != token.RParen && !d.ctx.HasError() {
		if argIdx >= len(fd.Params) {
			d.fail(errs.BadCallParamsOrReturn, "too many arguments in call to "+nameTok.StrVal)
			return stackEntry{}
		}
		argType, ok := d.parseExpr()
		if !ok {
			return stackEntry{}
		}
		want := fd.Params[argIdx]
		if want == symtab.AnyNonNull {
			if argType == types.Null {
				d.fail(errs.BadCallParamsOrReturn, "argument to "+nameTok.StrVal+" must not be null")
				return stackEntry{}
			}
		} else if argType != want {
			d.fail(errs.BadCallParamsOrReturn, "argument type mismatch in call to "+nameTok.StrVal)
			return stackEntry{}
		}
		argIdx++
		if d.cur().Kind == token.Comma {
			d.advance()
		}
	}
	if d.ctx.HasError() {
		return stackEntry{}
	}
	if argIdx != len(fd.Params) {
		d.fail(errs.BadCallParamsOrReturn, "wrong number of arguments in call to "+nameTok.StrVal)
		return stackEntry{}
	}
	d.expect(token.RParen, "')'")
	d.emit.Call(nameTok.StrVal)
	return stackEntry{sym: precedence.Ident, typ: fd.ReturnType, isLiteral: false, tok: nameTok}
}

// reduce applies whichever of the four reduction schemas matches the
// stack top, emitting instructions and type-checking as it goes.
func (d *Driver) reduce(stackp *[]stackEntry) bool {
	stack := *stackp
	if len(stack) == 0 {
		d.fail(errs.SyntaxAnalysis, "stack underflow while reducing expression")
		return false
	}
	top := stack[len(stack)-1]

	// E -> id (literal)
	if top.sym == precedence.Ident && top.isLiteral {
		switch top.typ {
		case types.Int:
			d.emit.Instr1("PUSHS", codegen.IntLit(top.tok.IntVal))
		case types.Float:
			d.emit.Instr1("PUSHS", codegen.FloatLit(top.tok.FloatVal))
		case types.String:
			d.emit.Instr1("PUSHS", codegen.StrLit(top.tok.StrVal))
		case types.Null:
			d.emit.Instr1("PUSHS", codegen.NilLit)
		default:
			d.fail(errs.TypeIncompatibility, "unsupported literal type in expression")
			return false
		}
		stack = stack[:len(stack)-1]
		stack = append(stack, stackEntry{sym: precedence.Exp, typ: top.typ, isLiteral: true})
		*stackp = stack
		return true
	}

	// E -> id (identifier: variable, constant, or function-call result)
	if top.sym == precedence.Ident {
		s := d.sym.Find(top.tok.StrVal)
		if s == nil {
			d.fail(errs.UndefinedFunctionOrVar, "undefined identifier "+top.tok.StrVal)
			return false
		}
		var resultType types.Type
		if s.Kind == symtab.KindFunc {
			d.emit.Instr1("PUSHS", codegen.GF("return"))
			resultType = s.Func.ReturnType
		} else {
			d.emit.PushOperand(top.tok.StrVal)
			resultType = s.Var.Type
		}
		stack = stack[:len(stack)-1]
		stack = append(stack, stackEntry{sym: precedence.Exp, typ: resultType, isLiteral: false})
		*stackp = stack
		return true
	}

	// E -> ( E )
	if len(stack) >= 3 {
		rpar := stack[len(stack)-1]
		inner := stack[len(stack)-2]
		lpar := stack[len(stack)-3]
		if rpar.sym == precedence.RParen && inner.sym == precedence.Exp && lpar.sym == precedence.LParen {
			stack = stack[:len(stack)-3]
			stack = append(stack, stackEntry{sym: precedence.Exp, typ: inner.typ, isLiteral: inner.isLiteral})
			*stackp = stack
			return true
		}
	}

	// E -> E op E
	if len(stack) >= 3 {
		rhs := stack[len(stack)-1]
		op := stack[len(stack)-2]
		lhs := stack[len(stack)-3]
		if lhs.sym == precedence.Exp && rhs.sym == precedence.Exp {
			resultType, ok := d.applyBinaryOp(op, lhs, rhs)
			if !ok {
				return false
			}
			stack = stack[:len(stack)-3]
			stack = append(stack, stackEntry{sym: precedence.Exp, typ: resultType, isLiteral: lhs.isLiteral && rhs.isLiteral})
			*stackp = stack
			return true
		}
	}

	// E -> ! E
	if len(stack) >= 2 {
		exp := stack[len(stack)-1]
		not := stack[len(stack)-2]
		if not.sym == precedence.Not && exp.sym == precedence.Exp {
			d.emit.Instr0("NOTS")
			stack = stack[:len(stack)-2]
			stack = append(stack, stackEntry{sym: precedence.Exp, typ: types.Bool, isLiteral: exp.isLiteral})
			*stackp = stack
			return true
		}
	}

	d.fail(errs.SyntaxAnalysis, "no applicable reduction rule")
	return false
}

// emitWiden converts the int-typed operand of a mixed int/float pair to
// float in place on the operand stack. When the operand needing
// conversion is the one underneath (widenLHS), the top one is parked in
// a temp var first since INT2FLOATS only ever converts the stack top.
func (d *Driver) emitWiden(widenLHS bool) {
	if widenLHS {
		d.emit.Instr1("POPS", codegen.GF("temp"))
		d.emit.Instr0("INT2FLOATS")
		d.emit.Instr1("PUSHS", codegen.GF("temp"))
	} else {
		d.emit.Instr0("INT2FLOATS")
	}
}

func (d *Driver) applyBinaryOp(op, lhs, rhs stackEntry) (types.Type, bool) {
	switch op.sym {
	case precedence.Add, precedence.Sub, precedence.Mul, precedence.Div:
		result, widen, widenLHS, ok := types.Arithmetic(lhs.typ, rhs.typ, lhs.isLiteral, rhs.isLiteral)
		if !ok {
			d.fail(errs.TypeIncompatibility, "incompatible types for arithmetic operation")
			return types.Invalid, false
		}
		if widen {
			d.emitWiden(widenLHS)
		}
		switch op.sym {
		case precedence.Add:
			d.emit.Instr0("ADDS")
		case precedence.Sub:
			d.emit.Instr0("SUBS")
		case precedence.Mul:
			d.emit.Instr0("MULS")
		case precedence.Div:
			d.emit.Instr0("DIVS")
		}
		return result, true
	case precedence.And:
		d.emit.Instr0("ANDS")
		return types.Bool, true
	case precedence.Or:
		d.emit.Instr0("ORS")
		return types.Bool, true
	case precedence.Eq, precedence.Neq:
		result, widen, widenLHS, ok := types.Equality(lhs.typ, rhs.typ, lhs.isLiteral, rhs.isLiteral)
		if !ok {
			d.fail(errs.TypeIncompatibility, "incompatible types for equality operation")
			return types.Invalid, false
		}
		if widen {
			d.emitWiden(widenLHS)
		}
		if op.sym == precedence.Eq {
			d.emit.Instr0("EQS")
		} else {
			d.emit.Instr0("EQS")
			d.emit.Instr0("NOTS")
		}
		return result, true
	case precedence.Lt, precedence.Gt, precedence.Le, precedence.Ge:
		result, widen, widenLHS, ok := types.Relational(lhs.typ, rhs.typ, lhs.isLiteral, rhs.isLiteral)
		if !ok {
			d.fail(errs.TypeIncompatibility, "incompatible types for relational operation")
			return types.Invalid, false
		}
		if widen {
			d.emitWiden(widenLHS)
		}
		switch op.sym {
		case precedence.Lt:
			d.emit.Instr0("LTS")
		case precedence.Gt:
			d.emit.Instr0("GTS")
		case precedence.Ge:
			d.emit.Instr0("LTS")
			d.emit.Instr0("NOTS")
		case precedence.Le:
			d.emit.Instr0("GTS")
			d.emit.Instr0("NOTS")
		}
		return result, true
	}
	d.fail(errs.Internal, "unhandled binary operator")
	return types.Invalid, false
}
