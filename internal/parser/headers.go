package parser

import (
	"github.com/gmofishsauce/ifj24c/internal/errs"
	"github.com/gmofishsauce/ifj24c/internal/symtab"
	"github.com/gmofishsauce/ifj24c/internal/token"
	"github.com/gmofishsauce/ifj24c/internal/types"
)

// collectHeaders is pass 1: validate the prologue, then register every
// top-level function's signature without analysing its body.
func (d *Driver) collectHeaders() {
	d.expectPrologue()
	for !d.ctx.HasError() && d.cur().Kind != token.EOF {
		d.collectOneHeader()
	}
	if d.ctx.HasError() {
		return
	}
	main := d.sym.Find("main")
	if main == nil || main.Kind != symtab.KindFunc || len(main.Func.Params) != 0 || main.Func.ReturnType != types.Void {
		d.ctx.SetError(errs.UndefinedFunctionOrVar, "missing required 'main' function with signature fn main() void", 0, 0)
	}
}

// expectPrologue validates `const ifj = @import("ifj24.zig");` exactly.
func (d *Driver) expectPrologue() {
	d.expect(token.KwConst, "'const'")
	id := d.expect(token.Ident, "identifier 'ifj'")
	if id.StrVal != "ifj" && !d.ctx.HasError() {
		d.fail(errs.SyntaxAnalysis, "expected prologue identifier 'ifj'")
	}
	d.expect(token.Assign, "'='")
	d.expect(token.Import, "'@import'")
	d.expect(token.LParen, "'('")
	lit := d.expect(token.StringLit, "module string literal")
	if lit.StrVal != "ifj24.zig" && !d.ctx.HasError() {
		d.fail(errs.SyntaxAnalysis, "expected @import(\"ifj24.zig\")")
	}
	d.expect(token.RParen, "')'")
	d.expect(token.Semicolon, "';'")
}

// collectOneHeader parses `pub fn name(params) returnType { ... }`,
// registering the function symbol and skipping the body via brace
// balance without interpreting it.
func (d *Driver) collectOneHeader() {
	d.expect(token.KwPub, "'pub'")
	d.expect(token.KwFn, "'fn'")
	name := d.expect(token.Ident, "function name")
	if d.ctx.HasError() {
		return
	}
	if d.sym.FindInScope(name.StrVal, 0) != nil {
		d.fail(errs.Redefinition, "redefinition of function "+name.StrVal)
		return
	}
	d.expect(token.LParen, "'('")
	var params []types.Type
	for d.cur().Kind != token.RParen && !d.ctx.HasError() {
		d.expect(token.Ident, "parameter name")
		d.expect(token.Colon, "':'")
		params = append(params, d.parseType())
		if d.cur().Kind == token.Comma {
			d.advance()
		}
	}
	d.expect(token.RParen, "')'")
	ret := d.parseReturnType()
	if d.ctx.HasError() {
		return
	}
	d.sym.InsertFunction(name.StrVal, &symtab.FuncData{Params: params, ReturnType: ret, Defined: true})
	d.skipBalancedBlock()
}

// skipBalancedBlock consumes a `{ ... }` block without interpretation,
// tracking brace nesting.
func (d *Driver) skipBalancedBlock() {
	d.expect(token.LBrace, "'{'")
	depth := 1
	for depth > 0 && !d.ctx.HasError() {
		switch d.cur().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
		case token.EOF:
			d.fail(errs.SyntaxAnalysis, "unterminated function body")
			return
		}
		d.advance()
	}
}

// parseType parses a value type: i32, f64, []u8, or a nullable form.
func (d *Driver) parseType() types.Type {
	t := d.advance()
	switch t.Kind {
	case token.KwIntType:
		return types.Int
	case token.KwFloatType:
		return types.Float
	case token.KwStringType:
		return types.String
	case token.IntNullType:
		return types.NullableInt
	case token.FloatNullType:
		return types.NullableFloat
	case token.StringNullType:
		return types.NullableString
	default:
		if !d.ctx.HasError() {
			d.fail(errs.SyntaxAnalysis, "expected a type")
		}
		return types.Invalid
	}
}

// parseReturnType parses a return type: any value type, or void.
func (d *Driver) parseReturnType() types.Type {
	if d.cur().Kind == token.KwVoid {
		d.advance()
		return types.Void
	}
	return d.parseType()
}
