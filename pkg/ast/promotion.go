package ast

import (
	"mercator-hq/astral/pkg/asterrors"
)

// Operator result types are resolved at construction from the tables below.
// The rules, derived from the widening semantics of the original model and
// the Python target of the bundled generator:
//
//   - "+", "-", "*", "//", "%", "^": two integers of the same signedness
//     widen to the larger width; mixed signedness widens to the signed type
//     of the larger width; an integer with a float yields the float of the
//     larger width; two floats widen; any complex operand yields the complex
//     of the larger width.
//   - "/": true division; integer operands always yield Float64. Float and
//     complex operands follow the widening rules above.
//   - "+" on UTF8String/UTF8Char operands concatenates to UTF8String.
//   - AnyType on either side yields AnyType.
//
// Every other (operator, lhs, rhs) combination is absent from the table and
// fails with a type-kind error, which is what keeps ill-typed trees from
// being built.

var arithmeticOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true,
	"//": true, "%": true, "^": true,
}

var compareOps = map[string]bool{
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
}

var boolOps = map[string]bool{
	"and": true, "or": true, "xor": true,
	"nand": true, "nor": true, "xnor": true,
}

// augAssignOps maps augmented-assignment operators to the underlying binary
// operator used for result-type resolution.
var augAssignOps = map[string]string{
	"+=": "+", "-=": "-", "*=": "*", "/=": "/",
	"//=": "//", "%=": "%", "^=": "^",
}

func signedIntOfWidth(nbytes int) DataType {
	switch {
	case nbytes <= 1:
		return Int8()
	case nbytes <= 2:
		return Int16()
	case nbytes <= 4:
		return Int32()
	case nbytes <= 8:
		return Int64()
	default:
		return Int128()
	}
}

func unsignedIntOfWidth(nbytes int) DataType {
	switch {
	case nbytes <= 1:
		return UInt8()
	case nbytes <= 2:
		return UInt16()
	case nbytes <= 4:
		return UInt32()
	case nbytes <= 8:
		return UInt64()
	default:
		return UInt128()
	}
}

func floatOfWidth(nbytes int) DataType {
	switch {
	case nbytes <= 2:
		return Float16()
	case nbytes <= 4:
		return Float32()
	default:
		return Float64()
	}
}

func complexOfWidth(nbytes int) DataType {
	if nbytes <= 8 {
		return Complex32()
	}
	return Complex64()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// resolveBinary returns the result type for a binary operator applied to the
// given operand types, or a type-kind error when the combination is not in
// the promotion table.
func resolveBinary(op string, lhs, rhs DataType) (DataType, error) {
	if !arithmeticOps[op] {
		return nil, asterrors.Newf(asterrors.KindType, "unknown binary operator %q", op)
	}

	lf, rf := lhs.family(), rhs.family()
	if lf == familyAny || rf == familyAny {
		return AnyType(), nil
	}

	if isTextFamily(lf) && isTextFamily(rf) {
		if op == "+" {
			return UTF8String(), nil
		}
		return nil, asterrors.Newf(asterrors.KindType,
			"operator %q is not defined for %s and %s", op, lhs.TypeName(), rhs.TypeName())
	}

	if !isNumericFamily(lf) || !isNumericFamily(rf) {
		return nil, asterrors.Newf(asterrors.KindType,
			"operator %q is not defined for %s and %s", op, lhs.TypeName(), rhs.TypeName())
	}

	width := maxInt(lhs.NBytes(), rhs.NBytes())

	if lf == familyComplex || rf == familyComplex {
		return complexOfWidth(width), nil
	}
	if lf == familyFloat || rf == familyFloat {
		return floatOfWidth(width), nil
	}

	// both integers
	if op == "/" {
		return Float64(), nil
	}
	if lf == familySignedInt || rf == familySignedInt {
		return signedIntOfWidth(width), nil
	}
	return unsignedIntOfWidth(width), nil
}

// resolveUnary returns the result type for a unary operator applied to the
// given operand type.
func resolveUnary(op string, operand DataType) (DataType, error) {
	f := operand.family()
	switch op {
	case "+", "-":
		if f == familyAny {
			return AnyType(), nil
		}
		if !isNumericFamily(f) {
			return nil, asterrors.Newf(asterrors.KindType,
				"operator %q is not defined for %s", op, operand.TypeName())
		}
		// negating an unsigned value leaves the unsigned domain
		if op == "-" && f == familyUnsignedInt {
			return signedIntOfWidth(operand.NBytes()), nil
		}
		return operand, nil
	default:
		return nil, asterrors.Newf(asterrors.KindType, "unknown unary operator %q", op)
	}
}

// requireBooleanOperand verifies that an operand of a boolean operator is
// compatible with Boolean.
func requireBooleanOperand(side string, e Expr) error {
	t := exprType(e)
	if !IsCompatible(t, Boolean()) {
		return asterrors.Newf(asterrors.KindType,
			"%s operand of a boolean operator must be Boolean-compatible, got %s",
			side, t.TypeName())
	}
	return nil
}
