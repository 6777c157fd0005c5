// Package types defines the IFJ24 data-type lattice and the
// compatibility rules used by the expression parser and statement
// checker.
package types

// Type enumerates every data type the language recognises, including
// the nullable variants and the internal invalid/none sentinel used
// before a type is known.
type Type int

const (
	Int Type = iota
	Float
	String
	Bool
	NullableInt
	NullableFloat
	NullableString
	Null // the literal null value's type
	Void
	Invalid // unresolved / not-yet-known
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Bool:
		return "bool"
	case NullableInt:
		return "?i32"
	case NullableFloat:
		return "?f64"
	case NullableString:
		return "?[]u8"
	case Null:
		return "null"
	case Void:
		return "void"
	default:
		return "invalid"
	}
}

// IsNullable reports whether t is one of the three nullable variants.
func (t Type) IsNullable() bool {
	return t == NullableInt || t == NullableFloat || t == NullableString
}

// Underlying returns the non-nullable base of a nullable type, or t
// unchanged if t is not nullable.
func (t Type) Underlying() Type {
	switch t {
	case NullableInt:
		return Int
	case NullableFloat:
		return Float
	case NullableString:
		return String
	default:
		return t
	}
}

// Arithmetic checks +, -, *, / compatibility, mirroring
// check_arithmetic_compatibility: same-type int/int and float/float
// pairs are always fine; a mixed int/float pair is only allowed when
// the int side is a literal, in which case it implicitly widens to
// float. needsWiden reports whether the caller must emit an
// INT2FLOATS conversion, and widenLHS reports which side needs it.
func Arithmetic(lhs, rhs Type, lhsLiteral, rhsLiteral bool) (result Type, needsWiden bool, widenLHS bool, ok bool) {
	switch {
	case lhs == Int && rhs == Int:
		return Int, false, false, true
	case lhs == Float && rhs == Float:
		return Float, false, false, true
	case lhs == Int && rhs == Float:
		if lhsLiteral {
			return Float, true, true, true
		}
		return Invalid, false, false, false
	case lhs == Float && rhs == Int:
		if rhsLiteral {
			return Float, true, false, true
		}
		return Invalid, false, false, false
	default:
		return Invalid, false, false, false
	}
}

// Equality checks ==, != compatibility, mirroring
// check_equality_compatibility. A mixed int/float pair needs the int
// side widened to float at runtime before EQS, same as Arithmetic.
func Equality(lhs, rhs Type, lhsLiteral, rhsLiteral bool) (result Type, needsWiden bool, widenLHS bool, ok bool) {
	if lhs == rhs {
		return Bool, false, false, true
	}
	if lhs == Int && rhs == Float {
		if lhsLiteral {
			return Bool, true, true, true
		}
		return Invalid, false, false, false
	}
	if lhs == Float && rhs == Int {
		if rhsLiteral {
			return Bool, true, false, true
		}
		return Invalid, false, false, false
	}
	if lhs == Null || rhs == Null ||
		(lhs == NullableInt && rhs == Int) || (lhs == Int && rhs == NullableInt) ||
		(lhs == NullableFloat && rhs == Float) || (lhs == Float && rhs == NullableFloat) {
		return Bool, false, false, true
	}
	return Invalid, false, false, false
}

// Relational checks <, >, <=, >= compatibility, mirroring
// check_relational_compatibility. null operands are never allowed. A
// mixed int/float pair needs the int side widened to float at runtime
// before LTS/GTS, same as Arithmetic.
func Relational(lhs, rhs Type, lhsLiteral, rhsLiteral bool) (result Type, needsWiden bool, widenLHS bool, ok bool) {
	if lhs == Null || rhs == Null {
		return Invalid, false, false, false
	}
	if lhs == rhs {
		return Bool, false, false, true
	}
	if lhs == Int && rhs == Float {
		if lhsLiteral {
			return Bool, true, true, true
		}
		return Invalid, false, false, false
	}
	if lhs == Float && rhs == Int {
		if rhsLiteral {
			return Bool, true, false, true
		}
		return Invalid, false, false, false
	}
	return Invalid, false, false, false
}

// AssignableTo reports whether a value of type src may be stored into
// a variable declared dst (used for var/const initializers and plain
// assignment, not for the nullable-unwrap forms which have their own
// rule in the parser).
func AssignableTo(dst, src Type) bool {
	if dst == src {
		return true
	}
	switch dst {
	case NullableInt:
		return src == Int || src == Null
	case NullableFloat:
		return src == Float || src == Null
	case NullableString:
		return src == String || src == Null
	}
	return false
}
