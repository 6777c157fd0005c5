// Package symtab implements the scoped symbol table: a chaining hash
// table keyed by identifier, parameterised by scope level, enforcing
// redefinition and unused-variable rules on scope exit.
package symtab

import "github.com/gmofishsauce/ifj24c/internal/types"

// Kind distinguishes what a Symbol denotes.
type Kind int

const (
	KindVar Kind = iota
	KindConst
	KindFunc
)

// FuncData holds a function symbol's signature.
type FuncData struct {
	Params     []types.Type
	ReturnType types.Type
	Defined    bool
}

// VarData holds a variable or constant symbol's state.
type VarData struct {
	Type   types.Type
	Used   bool
	Locked bool // true for constants: reassignment is rejected
}

// Symbol is one entry in the table.
type Symbol struct {
	Name       string
	Kind       Kind
	Func       *FuncData
	Var        *VarData
	ScopeLevel int
}

// entry is a single bucket-chain node, most-recent-insertion-first.
type entry struct {
	key  string
	sym  *Symbol
	next *entry
}

// Table is a chaining hash table over a scope-level stack. Entering a
// scope just bumps the level counter; every insertion records its
// level so exiting can find and remove exactly the entries introduced
// since the matching enter, after checking they were all used.
type Table struct {
	buckets    map[string]*entry
	scopeLevel int
}

const anyNonNull = types.Type(-1) // sentinel parameter type: accepts anything but null

// AnyNonNull is the pseudo-type used for ifj.write/ifj.string's sole
// parameter: it matches every type except the literal null.
const AnyNonNull = anyNonNull

// New returns a Table with the 13 fixed built-ins installed at scope 0.
func New() *Table {
	t := &Table{buckets: make(map[string]*entry), scopeLevel: 0}
	t.installBuiltins()
	return t
}

func (t *Table) installBuiltins() {
	def := func(name string, params []types.Type, ret types.Type) {
		t.InsertFunction(name, &FuncData{Params: params, ReturnType: ret, Defined: true})
	}
	def("ifj.readstr", nil, types.NullableString)
	def("ifj.readi32", nil, types.NullableInt)
	def("ifj.readf64", nil, types.NullableFloat)
	def("ifj.write", []types.Type{anyNonNull}, types.Void)
	def("ifj.i2f", []types.Type{types.Int}, types.Float)
	def("ifj.f2i", []types.Type{types.Float}, types.Int)
	def("ifj.string", []types.Type{anyNonNull}, types.String)
	def("ifj.length", []types.Type{types.String}, types.Int)
	def("ifj.concat", []types.Type{types.String, types.String}, types.String)
	def("ifj.substring", []types.Type{types.String, types.Int, types.Int}, types.NullableString)
	def("ifj.strcmp", []types.Type{types.String, types.String}, types.Int)
	def("ifj.ord", []types.Type{types.String, types.Int}, types.Int)
	def("ifj.chr", []types.Type{types.Int}, types.String)
}

// InsertFunction prepends a new function symbol at the current scope.
func (t *Table) InsertFunction(name string, data *FuncData) {
	t.prepend(name, &Symbol{Name: name, Kind: KindFunc, Func: data, ScopeLevel: t.scopeLevel})
}

// InsertVariable prepends a new variable/constant symbol at the
// current scope.
func (t *Table) InsertVariable(name string, data *VarData, isConst bool) {
	k := KindVar
	if isConst {
		k = KindConst
		data.Locked = true
	}
	t.prepend(name, &Symbol{Name: name, Kind: k, Var: data, ScopeLevel: t.scopeLevel})
}

func (t *Table) prepend(name string, sym *Symbol) {
	t.buckets[name] = &entry{key: name, sym: sym, next: t.buckets[name]}
}

// Find returns the most recently inserted symbol for name across all
// scopes, or nil if undefined.
func (t *Table) Find(name string) *Symbol {
	e := t.buckets[name]
	if e == nil {
		return nil
	}
	return e.sym
}

// FindInScope returns the symbol for name only if it was introduced at
// exactly the given scope level, used to detect redefinition.
func (t *Table) FindInScope(name string, level int) *Symbol {
	for e := t.buckets[name]; e != nil; e = e.next {
		if e.sym.ScopeLevel == level {
			return e.sym
		}
		if e.sym.ScopeLevel < level {
			break
		}
	}
	return nil
}

// EnterScope pushes a new scope level.
func (t *Table) EnterScope() {
	t.scopeLevel++
}

// CurrentScope returns the active scope level.
func (t *Table) CurrentScope() int {
	return t.scopeLevel
}

// CheckUnusedInScope reports the name of the first variable/constant
// at the current scope level that was never used, or "" if all were
// used. Call before ExitScope, per the "first check then delete" order.
func (t *Table) CheckUnusedInScope() string {
	for name, e := range t.buckets {
		for cur := e; cur != nil; cur = cur.next {
			if cur.sym.ScopeLevel != t.scopeLevel {
				break
			}
			if (cur.sym.Kind == KindVar || cur.sym.Kind == KindConst) && !cur.sym.Var.Used {
				return name
			}
		}
	}
	return ""
}

// ExitScope removes every entry introduced at the current scope level
// and decrements the level. Callers must call CheckUnusedInScope first.
func (t *Table) ExitScope() {
	for name, e := range t.buckets {
		for e != nil && e.sym.ScopeLevel == t.scopeLevel {
			e = e.next
		}
		if e == nil {
			delete(t.buckets, name)
		} else {
			t.buckets[name] = e
		}
	}
	t.scopeLevel--
}
