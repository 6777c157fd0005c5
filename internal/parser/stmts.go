package parser

import (
	"github.com/gmofishsauce/ifj24c/internal/errs"
	"github.com/gmofishsauce/ifj24c/internal/symtab"
	"github.com/gmofishsauce/ifj24c/internal/token"
	"github.com/gmofishsauce/ifj24c/internal/types"
)

// compileBodies is pass 2: re-read the prologue, then walk every
// top-level function definition emitting its body.
func (d *Driver) compileBodies() {
	d.expectPrologue()
	for !d.ctx.HasError() && d.cur().Kind != token.EOF {
		d.compileOneFunction()
	}
}

// compileOneFunction parses `pub fn name(params) returnType { stmts }`,
// this time emitting code for the body instead of skipping it.
func (d *Driver) compileOneFunction() {
	d.expect(token.KwPub, "'pub'")
	d.expect(token.KwFn, "'fn'")
	name := d.expect(token.Ident, "function name")
	if d.ctx.HasError() {
		return
	}
	sym := d.sym.Find(name.StrVal)
	fd := sym.Func

	d.emit.FuncStart(name.StrVal)
	d.expect(token.LParen, "'('")

	var paramNames []string
	for d.cur().Kind != token.RParen && !d.ctx.HasError() {
		p := d.expect(token.Ident, "parameter name")
		d.expect(token.Colon, "':'")
		d.parseType()
		paramNames = append(paramNames, p.StrVal)
		if d.cur().Kind == token.Comma {
			d.advance()
		}
	}
	d.expect(token.RParen, "')'")
	d.parseReturnType()
	if d.ctx.HasError() {
		return
	}

	d.funcName = name.StrVal
	d.funcReturn = fd.ReturnType
	d.hasReturn = false

	d.sym.EnterScope()
	for i, pname := range paramNames {
		d.emit.DefVar(pname)
		d.emit.PopOperand(pname)
		d.sym.InsertVariable(pname, &symtab.VarData{Type: fd.Params[i], Used: false}, false)
	}
	d.compileBlockBody()
	if !d.ctx.HasError() {
		if unused := d.sym.CheckUnusedInScope(); unused != "" {
			d.fail(errs.UnusedVariable, "unused variable "+unused)
		}
	}
	d.sym.ExitScope()

	if !d.ctx.HasError() && d.funcReturn != types.Void && !d.hasReturn {
		d.fail(errs.MissingOrUnexpectedReturn, "function "+d.funcName+" must return a value on every path")
	}

	if !d.ctx.HasError() {
		d.emit.FuncEnd()
	}
}

// compileBlockBody parses the `{ stmt* }` that follows a function's
// signature, without opening a further nested scope (the caller already
// entered one to hold the parameters).
func (d *Driver) compileBlockBody() {
	d.expect(token.LBrace, "'{'")
	for d.cur().Kind != token.RBrace && !d.ctx.HasError() {
		d.compileStatement()
	}
	d.expect(token.RBrace, "'}'")
}

// compileScopedBlock parses a nested `{ stmt* }`, opening and closing
// its own scope with the unused-variable check on exit.
func (d *Driver) compileScopedBlock() {
	d.sym.EnterScope()
	d.compileBlockBody()
	if !d.ctx.HasError() {
		if unused := d.sym.CheckUnusedInScope(); unused != "" {
			d.fail(errs.UnusedVariable, "unused variable "+unused)
		}
	}
	d.sym.ExitScope()
}

func (d *Driver) compileStatement() {
	switch d.cur().Kind {
	case token.KwVar:
		d.compileVarDecl(false)
	case token.KwConst:
		d.compileVarDecl(true)
	case token.KwIf:
		d.compileIf()
	case token.KwWhile:
		d.compileWhile()
	case token.KwReturn:
		d.compileReturn()
	case token.Underscore:
		d.compileDiscard()
	case token.Ident:
		d.compileIdentStatement()
	default:
		d.fail(errs.SyntaxAnalysis, "unexpected token at start of statement: "+d.cur().Kind.String())
	}
}

// compileVarDecl parses `var name [: type] = expr;` or, when isConst,
// `const name [: type] = expr;`.
func (d *Driver) compileVarDecl(isConst bool) {
	d.advance() // 'var' or 'const'
	name := d.expect(token.Ident, "variable name")
	if d.ctx.HasError() {
		return
	}
	declared := types.Invalid
	hasDeclared := false
	if d.cur().Kind == token.Colon {
		d.advance()
		declared = d.parseType()
		hasDeclared = true
	}
	d.expect(token.Assign, "'='")
	if d.ctx.HasError() {
		return
	}

	exprType, ok := d.parseExpr()
	if !ok {
		return
	}

	var finalType types.Type
	if hasDeclared {
		if !types.AssignableTo(declared, exprType) {
			d.fail(errs.TypeIncompatibility, "cannot assign "+exprType.String()+" to "+declared.String())
			return
		}
		finalType = declared
	} else {
		if exprType == types.Null {
			d.fail(errs.TypeInferenceFailure, "cannot infer type of "+name.StrVal+" from null without an explicit type")
			return
		}
		if exprType == types.Void {
			d.fail(errs.TypeIncompatibility, "cannot initialize "+name.StrVal+" from a void-returning call")
			return
		}
		finalType = exprType
	}

	if d.sym.FindInScope(name.StrVal, d.sym.CurrentScope()) != nil {
		d.fail(errs.Redefinition, "redefinition of "+name.StrVal)
		return
	}

	d.emit.DefVar(name.StrVal)
	d.emit.PopOperand(name.StrVal)
	d.sym.InsertVariable(name.StrVal, &symtab.VarData{Type: finalType}, isConst)
	d.expect(token.Semicolon, "';'")
}

// compileIdentStatement dispatches on what follows a leading
// identifier: assignment or a bare function-call statement.
// Assignment to a constant is rejected.
func (d *Driver) compileIdentStatement() {
	name := d.cur()
	sym := d.sym.Find(name.StrVal)
	if sym == nil {
		d.fail(errs.UndefinedFunctionOrVar, "undefined identifier "+name.StrVal)
		return
	}
	if sym.Kind == symtab.KindFunc {
		d.compileCallStatement(sym, name)
		return
	}
	if sym.Var.Locked {
		d.fail(errs.Redefinition, "cannot assign to constant "+name.StrVal)
		return
	}
	d.advance()
	d.expect(token.Assign, "'='")
	if d.ctx.HasError() {
		return
	}
	exprType, ok := d.parseExpr()
	if !ok {
		return
	}
	if !types.AssignableTo(sym.Var.Type, exprType) {
		d.fail(errs.TypeIncompatibility, "cannot assign "+exprType.String()+" to "+sym.Var.Type.String())
		return
	}
	d.emit.PopOperand(name.StrVal)
	d.expect(token.Semicolon, "';'")
}

// compileDiscard parses `_ = expr;`, evaluating and discarding expr's
// value — the one place a function call may appear as a full statement
// regardless of its return type.
func (d *Driver) compileDiscard() {
	d.advance() // '_'
	d.expect(token.Assign, "'='")
	if d.ctx.HasError() {
		return
	}
	_, ok := d.parseExpr()
	if !ok {
		return
	}
	d.emit.PopOperand("")
	d.expect(token.Semicolon, "';'")
}

// compileCallStatement parses a bare `name(args);` statement, legal
// only when name names a void function.
func (d *Driver) compileCallStatement(sym *symtab.Symbol, nameTok token.Token) {
	if sym.Func.ReturnType != types.Void {
		d.fail(errs.BadCallParamsOrReturn, "result of "+nameTok.StrVal+" must be used")
		return
	}
	d.classifyCall(sym, nameTok)
	d.expect(token.Semicolon, "';'")
}

// compileIf parses both `if (expr) { } else { }` and the
// nullable-unwrap form `if (expr) |bind| { } else { }`.
func (d *Driver) compileIf() {
	d.advance() // 'if'
	d.expect(token.LParen, "'('")
	exprType, ok := d.parseExpr()
	d.expect(token.RParen, "')'")
	if !ok {
		return
	}

	if d.cur().Kind == token.Pipe {
		if !exprType.IsNullable() {
			d.fail(errs.TypeIncompatibility, "nullable-unwrap if requires a nullable condition")
			return
		}
		d.advance()
		bind := d.expect(token.Ident, "bound variable name")
		d.expect(token.Pipe, "'|'")
		if d.ctx.HasError() {
			return
		}
		d.emit.IfNullableStart(bind.StrVal)
		d.sym.EnterScope()
		d.sym.InsertVariable(bind.StrVal, &symtab.VarData{Type: exprType.Underlying()}, false)
		d.compileScopedInnerBlock()
		d.emit.IfNullableElse()
		d.expect(token.KwElse, "'else'")
		d.compileScopedBlock()
		d.emit.IfNullableEnd()
		return
	}

	if exprType != types.Bool {
		d.fail(errs.TypeIncompatibility, "if condition must be bool")
		return
	}
	d.emit.IfStart()
	d.compileScopedBlock()
	d.emit.IfElse()
	d.expect(token.KwElse, "'else'")
	d.compileScopedBlock()
	d.emit.IfEnd()
}

// compileScopedInnerBlock closes the scope opened by the caller for a
// nullable-bind variable, after the block body runs in it.
func (d *Driver) compileScopedInnerBlock() {
	d.compileBlockBody()
	if !d.ctx.HasError() {
		if unused := d.sym.CheckUnusedInScope(); unused != "" {
			d.fail(errs.UnusedVariable, "unused variable "+unused)
		}
	}
	d.sym.ExitScope()
}

// compileWhile parses both `while (expr) { }` and the nullable-unwrap
// form `while (expr) |bind| { }`.
func (d *Driver) compileWhile() {
	d.advance() // 'while'
	d.emit.WhileStart()
	d.expect(token.LParen, "'('")
	exprType, ok := d.parseExpr()
	d.expect(token.RParen, "')'")
	if !ok {
		return
	}

	if d.cur().Kind == token.Pipe {
		if !exprType.IsNullable() {
			d.fail(errs.TypeIncompatibility, "nullable-unwrap while requires a nullable condition")
			return
		}
		d.advance()
		bind := d.expect(token.Ident, "bound variable name")
		d.expect(token.Pipe, "'|'")
		if d.ctx.HasError() {
			return
		}
		d.emit.WhileNullableCond(bind.StrVal)
		d.sym.EnterScope()
		d.sym.InsertVariable(bind.StrVal, &symtab.VarData{Type: exprType.Underlying()}, false)
		d.compileScopedInnerBlock()
		d.emit.WhileNullableEnd()
		return
	}

	if exprType != types.Bool {
		d.fail(errs.TypeIncompatibility, "while condition must be bool")
		return
	}
	d.emit.WhileCond()
	d.compileScopedBlock()
	d.emit.WhileEnd()
}

// compileReturn parses `return [expr];`, validating its presence or
// absence against the enclosing function's declared return type.
func (d *Driver) compileReturn() {
	d.advance() // 'return'
	if d.funcReturn == types.Void {
		if d.cur().Kind != token.Semicolon {
			d.fail(errs.MissingOrUnexpectedReturn, "function "+d.funcName+" must not return a value")
			return
		}
		d.advance()
		d.emit.ReturnVoid()
		return
	}
	if d.cur().Kind == token.Semicolon {
		d.fail(errs.MissingOrUnexpectedReturn, "function "+d.funcName+" must return a value")
		return
	}
	exprType, ok := d.parseExpr()
	if !ok {
		return
	}
	if !types.AssignableTo(d.funcReturn, exprType) {
		d.fail(errs.TypeIncompatibility, "return type mismatch in function "+d.funcName)
		return
	}
	d.hasReturn = true
	d.emit.Return()
	d.expect(token.Semicolon, "';'")
}
