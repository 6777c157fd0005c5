// Package parser implements the two-pass recursive-descent driver for
// declarations and statements, combined with a table-driven
// operator-precedence parser for expressions (see expr.go).
package parser

import (
	"io"

	"github.com/gmofishsauce/ifj24c/internal/codegen"
	"github.com/gmofishsauce/ifj24c/internal/errs"
	"github.com/gmofishsauce/ifj24c/internal/lexer"
	"github.com/gmofishsauce/ifj24c/internal/symtab"
	"github.com/gmofishsauce/ifj24c/internal/token"
	"github.com/gmofishsauce/ifj24c/internal/types"
)

// Driver walks a fully-buffered token slice twice: once to collect
// function headers, once to compile bodies. This replaces the
// temp-file rewind the original implementation needed, since the
// whole token stream already lives in memory.
type Driver struct {
	toks []token.Token
	pos  int

	ctx  *errs.Context
	sym  *symtab.Table
	emit *codegen.Emitter

	funcName   string
	funcReturn types.Type
	hasReturn  bool
}

// Compile runs the full pipeline: scan src, then two passes over the
// resulting token slice, emitting IFJcode24 to out. It returns the
// process exit code (errs.OK on success).
func Compile(src io.Reader, out io.Writer, ctx *errs.Context) int {
	lx := lexer.New(src, ctx)
	toks := lx.ScanAll()
	if ctx.HasError() {
		return ctx.Code()
	}

	d := &Driver{toks: toks, ctx: ctx, sym: symtab.New()}
	d.collectHeaders()
	if ctx.HasError() {
		return ctx.Code()
	}

	d.pos = 0
	d.emit = codegen.New(out)
	d.emit.Header()
	d.compileBodies()
	d.emit.Flush()
	if ctx.HasError() {
		return ctx.Code()
	}
	return errs.OK
}

func (d *Driver) cur() token.Token {
	if d.pos >= len(d.toks) {
		return token.Token{Kind: token.EOF}
	}
	return d.toks[d.pos]
}

func (d *Driver) advance() token.Token {
	t := d.cur()
	if d.pos < len(d.toks) {
		d.pos++
	}
	return t
}

func (d *Driver) fail(code int, msg string) {
	t := d.cur()
	d.ctx.SetError(code, msg, t.Line, t.Column)
}

// expect consumes the current token if it has kind k, otherwise raises
// a syntax error. Returns the consumed token.
func (d *Driver) expect(k token.Kind, what string) token.Token {
	if d.ctx.HasError() {
		return token.Token{}
	}
	t := d.cur()
	if t.Kind != k {
		d.fail(errs.SyntaxAnalysis, "expected "+what+", got "+t.Kind.String())
		return t
	}
	return d.advance()
}
