package codegen

// builtinLabel maps an ifj.* source name to its emitted label, used by
// Call to resolve built-in call sites distinctly from user functions.
var builtinLabel = map[string]string{
	"ifj.readstr":   "$ifj_readstr",
	"ifj.readi32":   "$ifj_readi32",
	"ifj.readf64":   "$ifj_readf64",
	"ifj.write":     "$ifj_write",
	"ifj.i2f":       "$ifj_i2f",
	"ifj.f2i":       "$ifj_f2i",
	"ifj.string":    "$ifj_string",
	"ifj.concat":    "$ifj_concat",
	"ifj.length":    "$ifj_length",
	"ifj.chr":       "$ifj_chr",
	"ifj.ord":       "$ifj_ord",
	"ifj.substring": "$ifj_substring",
	"ifj.strcmp":    "$ifj_strcmp",
}

// builtins emits every built-in function body verbatim as part of the
// program prelude, immediately after the header.
func (e *Emitter) builtins() {
	e.simpleReader("ifj_readstr", "string")
	e.simpleReader("ifj_readi32", "int")
	e.simpleReader("ifj_readf64", "float")

	e.unaryPassthrough("ifj_write", func(p string) { e.Instr1("WRITE", LF(p)) })
	e.unaryPassthrough("ifj_i2f", func(p string) { e.Instr2("INT2FLOAT", GF("return"), LF(p)) })
	e.unaryPassthrough("ifj_f2i", func(p string) { e.Instr2("FLOAT2INT", GF("return"), LF(p)) })
	e.unaryPassthrough("ifj_string", func(p string) { e.Instr2("MOVE", GF("return"), LF(p)) })
	e.unaryPassthrough("ifj_length", func(p string) { e.Instr2("STRLEN", GF("return"), LF(p)) })
	e.unaryPassthrough("ifj_chr", func(p string) { e.Instr2("INT2CHAR", GF("return"), LF(p)) })

	e.concatBuiltin()
	e.ordBuiltin()
	e.substringBuiltin()
	e.strcmpBuiltin()
}

func (e *Emitter) simpleReader(label, readType string) {
	e.BlankLine()
	e.Label("$" + label)
	e.Instr0("CREATEFRAME")
	e.Instr0("PUSHFRAME")
	e.Instr2("READ", GF("return"), readType)
	e.Instr0("POPFRAME")
	e.Instr0("RETURN")
}

func (e *Emitter) unaryPassthrough(label string, body func(param string)) {
	e.BlankLine()
	e.Label("$" + label)
	e.Instr0("CREATEFRAME")
	e.Instr0("PUSHFRAME")
	e.DefVar("param1")
	e.Instr1("POPS", LF("param1"))
	body("param1")
	e.Instr0("POPFRAME")
	e.Instr0("RETURN")
}

func (e *Emitter) concatBuiltin() {
	e.BlankLine()
	e.Label("$ifj_concat")
	e.Instr0("CREATEFRAME")
	e.Instr0("PUSHFRAME")
	e.DefVar("param1")
	e.DefVar("param2")
	e.Instr1("POPS", LF("param1"))
	e.Instr1("POPS", LF("param2"))
	e.Instr3("CONCAT", GF("return"), LF("param1"), LF("param2"))
	e.Instr0("POPFRAME")
	e.Instr0("RETURN")
}

func (e *Emitter) ordBuiltin() {
	e.BlankLine()
	e.Label("$ifj_ord")
	e.Instr0("CREATEFRAME")
	e.Instr0("PUSHFRAME")
	for _, v := range []string{"param1", "param2", "length", "char", "result", "type_check"} {
		e.DefVar(v)
	}
	e.Instr1("POPS", LF("param1"))
	e.Instr1("POPS", LF("param2"))
	e.Instr2("TYPE", LF("type_check"), LF("param1"))
	e.Instr3("JUMPIFNEQ", "$ord_error", LF("type_check"), "string@string")
	e.Instr2("STRLEN", LF("length"), LF("param1"))
	e.Instr3("LT", GF("temp"), LF("param2"), IntLit(0))
	e.Instr3("JUMPIFEQ", "$ord_error", GF("temp"), BoolLit(true))
	e.Instr3("LT", GF("temp"), LF("param2"), LF("length"))
	e.Instr3("JUMPIFEQ", "$ord_inbounds", GF("temp"), BoolLit(true))
	e.Label("$ord_error")
	e.Instr2("MOVE", GF("return"), IntLit(0))
	e.Instr0("POPFRAME")
	e.Instr0("RETURN")
	e.Label("$ord_inbounds")
	e.Instr3("STRI2INT", LF("result"), LF("param1"), LF("param2"))
	e.Instr2("MOVE", GF("return"), LF("result"))
	e.Instr0("POPFRAME")
	e.Instr0("RETURN")
}

func (e *Emitter) substringBuiltin() {
	e.BlankLine()
	e.Label("$ifj_substring")
	e.Instr0("CREATEFRAME")
	e.Instr0("PUSHFRAME")
	for _, v := range []string{"param1", "param2", "param3", "result", "char", "index", "end", "type_check"} {
		e.DefVar(v)
	}
	e.Instr2("MOVE", LF("result"), "string@")
	e.Instr1("POPS", LF("param1"))
	e.Instr1("POPS", LF("param2"))
	e.Instr1("POPS", LF("param3"))
	e.Instr2("TYPE", LF("type_check"), LF("param2"))
	e.Instr3("JUMPIFNEQ", "$substr_error", LF("type_check"), "string@int")
	e.Instr2("TYPE", LF("type_check"), LF("param3"))
	e.Instr3("JUMPIFNEQ", "$substr_error", LF("type_check"), "string@int")
	e.Instr3("LT", GF("temp"), LF("param2"), IntLit(0))
	e.Instr3("JUMPIFEQ", "$substr_error", GF("temp"), BoolLit(true))
	e.Instr3("LT", GF("temp"), LF("param3"), IntLit(0))
	e.Instr3("JUMPIFEQ", "$substr_error", GF("temp"), BoolLit(true))
	e.Instr3("ADD", LF("end"), LF("param2"), LF("param3"))
	e.Instr2("MOVE", LF("index"), LF("param2"))
	e.Label("$substr_loop")
	e.Instr3("LT", GF("temp"), LF("index"), LF("end"))
	e.Instr3("JUMPIFEQ", "$substr_end", GF("temp"), BoolLit(false))
	e.Instr2("STRLEN", GF("temp"), LF("param1"))
	e.Instr3("LT", GF("temp"), LF("index"), GF("temp"))
	e.Instr3("JUMPIFEQ", "$substr_error", GF("temp"), BoolLit(false))
	e.Instr3("STRI2INT", LF("char"), LF("param1"), LF("index"))
	e.Instr2("INT2CHAR", LF("char"), LF("char"))
	e.Instr3("CONCAT", LF("result"), LF("result"), LF("char"))
	e.Instr3("ADD", LF("index"), LF("index"), IntLit(1))
	e.Instr1("JUMP", "$substr_loop")
	e.Label("$substr_end")
	e.Instr2("MOVE", GF("return"), LF("result"))
	e.Instr0("POPFRAME")
	e.Instr0("RETURN")
	e.Label("$substr_error")
	e.Instr2("MOVE", GF("return"), NilLit)
	e.Instr0("POPFRAME")
	e.Instr0("RETURN")
}

func (e *Emitter) strcmpBuiltin() {
	e.BlankLine()
	e.Label("$ifj_strcmp")
	e.Instr0("CREATEFRAME")
	e.Instr0("PUSHFRAME")
	for _, v := range []string{"result", "param1", "param2"} {
		e.DefVar(v)
	}
	e.Instr1("POPS", LF("param1"))
	e.Instr1("POPS", LF("param2"))
	e.Instr3("GT", LF("result"), LF("param1"), LF("param2"))
	e.Instr3("JUMPIFEQ", "$strcmp_greater", LF("result"), BoolLit(true))
	e.Instr3("LT", GF("return"), LF("param1"), LF("param2"))
	e.Instr3("JUMPIFEQ", "$strcmp_less", GF("return"), BoolLit(true))
	e.Instr2("MOVE", GF("return"), IntLit(0))
	e.Instr0("POPFRAME")
	e.Instr0("RETURN")
	e.Label("$strcmp_greater")
	e.Instr2("MOVE", GF("return"), IntLit(1))
	e.Instr0("POPFRAME")
	e.Instr0("RETURN")
	e.Label("$strcmp_less")
	e.Instr2("MOVE", GF("return"), IntLit(-1))
	e.Instr0("POPFRAME")
	e.Instr0("RETURN")
}
