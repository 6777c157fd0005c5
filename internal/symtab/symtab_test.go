package symtab

import (
	"testing"

	"github.com/gmofishsauce/ifj24c/internal/types"
)

func TestBuiltinsInstalled(t *testing.T) {
	tab := New()
	sym := tab.Find("ifj.write")
	if sym == nil || sym.Kind != KindFunc {
		t.Fatalf("ifj.write not registered as a function")
	}
	if len(sym.Func.Params) != 1 || sym.Func.Params[0] != AnyNonNull {
		t.Errorf("ifj.write params = %v, want [AnyNonNull]", sym.Func.Params)
	}
	if sym.Func.ReturnType != types.Void {
		t.Errorf("ifj.write return = %v, want void", sym.Func.ReturnType)
	}
}

func TestScopeShadowing(t *testing.T) {
	tab := New()
	tab.InsertVariable("x", &VarData{Type: types.Int}, false)
	tab.EnterScope()
	tab.InsertVariable("x", &VarData{Type: types.String}, false)

	sym := tab.Find("x")
	if sym.Var.Type != types.String {
		t.Errorf("inner x type = %v, want string", sym.Var.Type)
	}

	tab.Find("x").Var.Used = true
	if unused := tab.CheckUnusedInScope(); unused != "" {
		t.Errorf("expected no unused vars, got %q", unused)
	}
	tab.ExitScope()

	sym = tab.Find("x")
	if sym.Var.Type != types.Int {
		t.Errorf("outer x type after exit = %v, want int", sym.Var.Type)
	}
}

func TestUnusedVariableDetected(t *testing.T) {
	tab := New()
	tab.EnterScope()
	tab.InsertVariable("unused", &VarData{Type: types.Int}, false)
	if unused := tab.CheckUnusedInScope(); unused != "unused" {
		t.Errorf("CheckUnusedInScope() = %q, want \"unused\"", unused)
	}
}

func TestRedefinitionInSameScope(t *testing.T) {
	tab := New()
	tab.InsertFunction("f", &FuncData{ReturnType: types.Void})
	if tab.FindInScope("f", 0) == nil {
		t.Error("expected to find f at scope 0")
	}
	if tab.FindInScope("g", 0) != nil {
		t.Error("did not expect to find undeclared g")
	}
}

func TestConstIsLocked(t *testing.T) {
	tab := New()
	tab.InsertVariable("c", &VarData{Type: types.Int}, true)
	sym := tab.Find("c")
	if sym.Kind != KindConst || !sym.Var.Locked {
		t.Errorf("const symbol not locked: kind=%v locked=%v", sym.Kind, sym.Var.Locked)
	}
}
