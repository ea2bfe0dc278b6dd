package ast

import (
	"math"
	"strings"
	"testing"

	"mercator-hq/astral/pkg/asterrors"
)

func TestFromJSONRoundTrip(t *testing.T) {
	tree := sampleTree(t)
	out, err := ToJSON(tree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := FromJSON([]byte(out))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(tree, back) {
		t.Fatal("JSON round trip changed the tree")
	}
	again, err := ToJSON(back)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != out {
		t.Error("JSON round trip is not byte-stable")
	}
}

func TestFromJSONRestoresIdentity(t *testing.T) {
	lit := mustInt32(t, 42)
	lit.SetComment("answer")
	out, err := ToJSON(lit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := FromJSON([]byte(out))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.Ref() != lit.Ref() {
		t.Errorf("ref not restored: %q vs %q", back.Ref(), lit.Ref())
	}
	if back.Comment() != "answer" {
		t.Errorf("comment not restored: %q", back.Comment())
	}
	if back.Kind() != KindLiteral {
		t.Errorf("kind = %s, want %s", back.Kind(), KindLiteral)
	}
}

func TestFromJSONWideUnsignedLiteral(t *testing.T) {
	lit, err := NewLiteralUInt64(math.MaxUint64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := ToJSON(lit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"value": 18446744073709551615`) {
		t.Fatalf("value lost precision:\n%s", out)
	}
	back, err := FromJSON([]byte(out))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	backLit, ok := back.(*Literal)
	if !ok {
		t.Fatalf("expected *Literal, got %T", back)
	}
	if v, ok := backLit.Value().(uint64); !ok || v != math.MaxUint64 {
		t.Errorf("Value() = %T %v, want uint64 %d", backLit.Value(), backLit.Value(), uint64(math.MaxUint64))
	}
	if !Equal(lit, back) {
		t.Error("round trip changed the literal")
	}
	again, err := ToJSON(back)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != out {
		t.Error("round trip is not byte-stable")
	}
}

func TestFromJSONRevalidatesValues(t *testing.T) {
	lit, err := NewLiteralInt8(100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := ToJSON(lit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tampered := strings.Replace(out, `"value": 100`, `"value": 200`, 1)
	if tampered == out {
		t.Fatal("tampering failed to change the document")
	}
	if _, err := FromJSON([]byte(tampered)); !asterrors.IsKind(err, asterrors.KindValue) {
		t.Errorf("tampered literal: expected value-kind error, got %v", err)
	}
}

func TestFromJSONVariousNodes(t *testing.T) {
	clause := NewComprehensionClause(NewVariable("x"), NewVariable("xs"), []Expr{boolCondition(t)})
	comp, err := NewListComprehension(NewTypedVariable("x", Int32()), []*ComprehensionClause{clause})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	key, _ := NewLiteralUTF8String("k")
	val, _ := NewLiteralComplex64(1, -2)
	proto, err := NewFunctionPrototype("f",
		NewArguments(NewArgument("n", Int32(), mustInt32(t, 0))), NewListType(Float64()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tryBody := NewBlock("try")
	tryBody.Append(NewThrowStmt(NewVariable("err")))
	try := NewExceptionHandlerStmt(
		tryBody,
		[]*CatchHandlerStmt{NewCatchHandlerStmt([]Expr{NewIdentifier("Error")}, "e", NewBlock("catch"))},
		NewFinallyHandlerStmt(NewBlock("finally")),
	)

	fnBody := NewBlock("f")
	fnBody.Append(NewFunctionReturn(nil))
	nodes := []AST{
		comp,
		NewLiteralMap([]MapEntry{{Key: key, Value: val}}),
		NewFunctionDef(proto, fnBody),
		try,
		NewSliceExpr(NewVariable("xs"), mustInt32(t, 1), mustInt32(t, 5), nil),
		NewTarget("e-m:e-i64:64", "x86_64-unknown-linux-gnu"),
	}
	for _, node := range nodes {
		out, err := ToJSON(node)
		if err != nil {
			t.Fatalf("%s: serialize: %v", node.Kind(), err)
		}
		back, err := FromJSON([]byte(out))
		if err != nil {
			t.Fatalf("%s: rebuild: %v", node.Kind(), err)
		}
		if !Equal(node, back) {
			t.Errorf("%s: round trip changed the tree", node.Kind())
		}
	}
}

func TestFromJSONMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind asterrors.Kind
	}{
		{"not json", "{", asterrors.KindSyntax},
		{"no metadata", `{"X": {"content": 1}}`, asterrors.KindKey},
		{"no kind", `{"X": {"content": 1, "metadata": {"ref": "r"}}}`, asterrors.KindKey},
		{"unknown kind", `{"X": {"content": 1, "metadata": {"kind": "Bogus"}}}`, asterrors.KindValue},
		{"two keys", `{"a": 1, "b": 2}`, asterrors.KindValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromJSON([]byte(tt.in))
			if !asterrors.IsKind(err, tt.kind) {
				t.Errorf("expected %s-kind error, got %v", tt.kind, err)
			}
		})
	}
}
