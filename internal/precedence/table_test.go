package precedence

import "testing"

func TestParenthesesEqualAction(t *testing.T) {
	if Table[LParen][RParen] != Equal {
		t.Errorf("Table[(][)] = %v, want Equal", Table[LParen][RParen])
	}
}

func TestMultiplicationBindsTighterThanAddition(t *testing.T) {
	if Table[Add][Mul] != Shift {
		t.Errorf("Table[+][*] = %v, want Shift (higher precedence shifts)", Table[Add][Mul])
	}
	if Table[Mul][Add] != Reduce {
		t.Errorf("Table[*][+] = %v, want Reduce", Table[Mul][Add])
	}
}

func TestDollarBottomNeverShiftsIntoItself(t *testing.T) {
	if Table[Dollar][Dollar] != Undefined {
		t.Errorf("Table[$][$] = %v, want Undefined (caller must stop before this cell)", Table[Dollar][Dollar])
	}
}

func TestUnmatchedOpenParenIsUndefinedAtEnd(t *testing.T) {
	if Table[LParen][Dollar] != Undefined {
		t.Errorf("Table[(][$] = %v, want Undefined", Table[LParen][Dollar])
	}
}

func TestIdentFollowedByIdentIsUndefined(t *testing.T) {
	if Table[Ident][Ident] != Undefined {
		t.Errorf("Table[i][i] = %v, want Undefined (two operands in a row is a syntax error)", Table[Ident][Ident])
	}
}
