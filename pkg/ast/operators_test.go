package ast

import (
	"testing"

	"mercator-hq/astral/pkg/asterrors"
)

func TestBinaryOpPromotion(t *testing.T) {
	tests := []struct {
		name string
		op   string
		lhs  DataType
		rhs  DataType
		want string
	}{
		{"same width signed", "+", Int32(), Int32(), "Int32"},
		{"widening signed", "+", Int8(), Int32(), "Int32"},
		{"widening unsigned", "*", UInt8(), UInt16(), "UInt16"},
		{"mixed signedness", "+", Int16(), UInt32(), "Int32"},
		{"int and float", "*", Int64(), Float32(), "Float64"},
		{"float widening", "-", Float16(), Float32(), "Float32"},
		{"complex dominates", "*", Float64(), Complex32(), "Complex32"},
		{"complex widening", "+", Complex32(), Complex64(), "Complex64"},
		{"true division of ints", "/", Int8(), Int8(), "Float64"},
		{"floor division of ints", "//", Int16(), Int16(), "Int16"},
		{"string concatenation", "+", UTF8String(), UTF8String(), "UTF8String"},
		{"char concatenation", "+", UTF8Char(), UTF8String(), "UTF8String"},
		{"any absorbs", "+", AnyType(), Int32(), "Any"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveBinary(tt.op, tt.lhs, tt.rhs)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.TypeName() != tt.want {
				t.Errorf("resolveBinary(%q, %s, %s) = %s, want %s",
					tt.op, tt.lhs.TypeName(), tt.rhs.TypeName(), got.TypeName(), tt.want)
			}
		})
	}
}

func TestBinaryOpRejectsIllTypedOperands(t *testing.T) {
	tests := []struct {
		name string
		op   string
		lhs  DataType
		rhs  DataType
	}{
		{"string minus string", "-", UTF8String(), UTF8String()},
		{"string plus int", "+", UTF8String(), Int32()},
		{"bool plus bool", "+", Boolean(), Boolean()},
		{"date plus date", "+", Date(), Date()},
		{"unknown operator", "@", Int32(), Int32()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveBinary(tt.op, tt.lhs, tt.rhs)
			if !asterrors.IsKind(err, asterrors.KindType) {
				t.Errorf("expected type-kind error, got %v", err)
			}
		})
	}
}

func TestNewBinaryOpResolvesType(t *testing.T) {
	lhs, _ := NewLiteralInt8(1)
	rhs, _ := NewLiteralInt32(2)
	op, err := NewBinaryOp("+", lhs, rhs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := op.Type().TypeName(); got != "Int32" {
		t.Errorf("result type = %s, want Int32", got)
	}
	if lhs.Parent() != op || rhs.Parent() != op {
		t.Error("operand parents not set")
	}
	if got := op.String(); got != "BinaryOp[+]" {
		t.Errorf("String() = %q", got)
	}
}

func TestUnaryOp(t *testing.T) {
	v, _ := NewLiteralUInt16(5)
	neg, err := NewUnaryOp("-", v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := neg.Type().TypeName(); got != "Int16" {
		t.Errorf("negated unsigned type = %s, want Int16", got)
	}

	s, _ := NewLiteralUTF8String("x")
	if _, err := NewUnaryOp("-", s); !asterrors.IsKind(err, asterrors.KindType) {
		t.Errorf("expected type-kind error for -string, got %v", err)
	}
}

func TestCompareOp(t *testing.T) {
	a, _ := NewLiteralInt32(1)
	b, _ := NewLiteralInt64(2)
	c, _ := NewLiteralFloat64(3)

	chain, err := NewCompareOp(a, []string{"<", "<="}, []Expr{b, c})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := chain.Type().TypeName(); got != "Boolean" {
		t.Errorf("comparison type = %s, want Boolean", got)
	}

	a2, _ := NewLiteralInt32(1)
	s, _ := NewLiteralUTF8String("x")
	if _, err := NewCompareOp(a2, []string{"=="}, []Expr{s}); !asterrors.IsKind(err, asterrors.KindType) {
		t.Errorf("int vs string: expected type-kind error, got %v", err)
	}

	a3, _ := NewLiteralInt32(1)
	if _, err := NewCompareOp(a3, []string{"<", "<"}, []Expr{a3}); !asterrors.IsKind(err, asterrors.KindSyntax) {
		t.Errorf("length mismatch: expected syntax-kind error, got %v", err)
	}
}

func TestBoolOpRequiresBooleanOperands(t *testing.T) {
	yes := NewLiteralBoolean(true)
	no := NewLiteralBoolean(false)
	if _, err := NewAndOp(yes, no); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	one, _ := NewLiteralInt32(1)
	if _, err := NewOrOp(NewLiteralBoolean(true), one); !asterrors.IsKind(err, asterrors.KindType) {
		t.Errorf("expected type-kind error, got %v", err)
	}
	if _, err := NewBoolOp("nandor", yes, no); !asterrors.IsKind(err, asterrors.KindType) {
		t.Errorf("unknown operator: expected type-kind error, got %v", err)
	}
	if _, err := NewNotOp(one); !asterrors.IsKind(err, asterrors.KindType) {
		t.Errorf("not on int: expected type-kind error, got %v", err)
	}
}

func TestAugAssign(t *testing.T) {
	target := NewTypedVariable("x", Int32())
	one, _ := NewLiteralInt32(1)
	n, err := NewAugAssign("+=", target, one)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := n.Type().TypeName(); got != "Int32" {
		t.Errorf("result type = %s, want Int32", got)
	}

	lit, _ := NewLiteralInt32(2)
	two, _ := NewLiteralInt32(2)
	if _, err := NewAugAssign("+=", lit, two); !asterrors.IsKind(err, asterrors.KindSyntax) {
		t.Errorf("literal target: expected syntax-kind error, got %v", err)
	}

	target2 := NewTypedVariable("y", Int32())
	three, _ := NewLiteralInt32(3)
	if _, err := NewAugAssign("**=", target2, three); !asterrors.IsKind(err, asterrors.KindSyntax) {
		t.Errorf("unknown operator: expected syntax-kind error, got %v", err)
	}
}

func TestWalrusOpTarget(t *testing.T) {
	value, _ := NewLiteralInt32(10)
	n, err := NewWalrusOp(NewVariable("x"), value)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := n.Type().TypeName(); got != "Int32" {
		t.Errorf("walrus type = %s, want Int32", got)
	}

	lit, _ := NewLiteralInt32(1)
	other, _ := NewLiteralInt32(2)
	if _, err := NewWalrusOp(lit, other); !asterrors.IsKind(err, asterrors.KindSyntax) {
		t.Errorf("literal target: expected syntax-kind error, got %v", err)
	}
}

func TestTypeCastExpr(t *testing.T) {
	one, _ := NewLiteralInt32(1)
	cast, err := NewTypeCastExpr(Float64(), one)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cast.Type().TypeName(); got != "Float64" {
		t.Errorf("cast type = %s, want Float64", got)
	}

	s, _ := NewLiteralUTF8String("x")
	if _, err := NewTypeCastExpr(Int32(), s); !asterrors.IsKind(err, asterrors.KindType) {
		t.Errorf("string to int: expected type-kind error, got %v", err)
	}
}
