package types

import "testing"

func TestArithmeticSameType(t *testing.T) {
	if r, widen, _, ok := Arithmetic(Int, Int, false, false); !ok || widen || r != Int {
		t.Errorf("int+int: got (%v,%v,ok=%v), want (int,false,true)", r, widen, ok)
	}
	if r, widen, _, ok := Arithmetic(Float, Float, false, false); !ok || widen || r != Float {
		t.Errorf("float+float: got (%v,%v,ok=%v), want (float,false,true)", r, widen, ok)
	}
}

func TestArithmeticLiteralWidening(t *testing.T) {
	r, widen, widenLHS, ok := Arithmetic(Int, Float, true, false)
	if !ok || !widen || !widenLHS || r != Float {
		t.Errorf("literal int + float: got (%v,%v,%v,ok=%v), want (float,true,true,true)", r, widen, widenLHS, ok)
	}
	r, widen, widenLHS, ok = Arithmetic(Float, Int, false, true)
	if !ok || !widen || widenLHS || r != Float {
		t.Errorf("float + literal int: got (%v,%v,%v,ok=%v), want (float,true,false,true)", r, widen, widenLHS, ok)
	}
}

func TestArithmeticRejectsNonLiteralMix(t *testing.T) {
	if _, _, _, ok := Arithmetic(Int, Float, false, false); ok {
		t.Error("non-literal int + float should be incompatible")
	}
	if _, _, _, ok := Arithmetic(String, Int, false, false); ok {
		t.Error("string + int should be incompatible")
	}
}

func TestEqualityNullable(t *testing.T) {
	if _, _, _, ok := Equality(NullableInt, Int, false, false); !ok {
		t.Error("?i32 == i32 should be allowed")
	}
	if _, _, _, ok := Equality(Null, String, false, false); !ok {
		t.Error("null == []u8 should be allowed")
	}
	if _, _, _, ok := Equality(String, Int, false, false); ok {
		t.Error("[]u8 == i32 should not be allowed")
	}
}

func TestEqualityMixedWidensIntSide(t *testing.T) {
	_, widen, widenLHS, ok := Equality(Int, Float, true, false)
	if !ok || !widen || !widenLHS {
		t.Errorf("literal int == float: got (widen=%v,widenLHS=%v,ok=%v), want (true,true,true)", widen, widenLHS, ok)
	}
	_, widen, widenLHS, ok = Equality(Float, Int, false, true)
	if !ok || !widen || widenLHS {
		t.Errorf("float == literal int: got (widen=%v,widenLHS=%v,ok=%v), want (true,false,true)", widen, widenLHS, ok)
	}
}

func TestRelationalRejectsNull(t *testing.T) {
	if _, _, _, ok := Relational(Null, Int, false, false); ok {
		t.Error("relational comparison against null should be rejected")
	}
}

func TestRelationalMixedRequiresLiteralInt(t *testing.T) {
	if _, _, _, ok := Relational(Int, Float, false, true); ok {
		t.Error("non-literal int vs literal float should not satisfy relational compatibility")
	}
	if _, _, _, ok := Relational(Int, Float, false, false); ok {
		t.Error("non-literal int vs non-literal float should be rejected relationally")
	}
}

func TestAssignableToNullable(t *testing.T) {
	cases := []struct {
		dst, src Type
		want     bool
	}{
		{NullableInt, Int, true},
		{NullableInt, Null, true},
		{NullableInt, Float, false},
		{Int, Null, false},
		{String, String, true},
	}
	for _, c := range cases {
		if got := AssignableTo(c.dst, c.src); got != c.want {
			t.Errorf("AssignableTo(%v, %v) = %v, want %v", c.dst, c.src, got, c.want)
		}
	}
}
