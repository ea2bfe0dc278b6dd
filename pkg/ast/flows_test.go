package ast

import (
	"testing"

	"mercator-hq/astral/pkg/asterrors"
)

func TestBlockAppendAndIndex(t *testing.T) {
	b := NewBlock("main")
	const n = 5
	for i := 0; i < n; i++ {
		lit, err := NewLiteralInt32(int64(i))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := b.Append(lit); got != i+1 {
			t.Fatalf("Append returned %d, want updated length %d", got, i+1)
		}
	}
	if b.Len() != n {
		t.Fatalf("Len() = %d, want %d", b.Len(), n)
	}
	for i := 0; i < n; i++ {
		node, err := b.At(i)
		if err != nil {
			t.Fatalf("At(%d): unexpected error: %v", i, err)
		}
		lit, ok := node.(*Literal)
		if !ok {
			t.Fatalf("At(%d) returned %T", i, node)
		}
		if lit.Value() != int64(i) {
			t.Errorf("At(%d) = %v, insertion order not preserved", i, lit.Value())
		}
		if node.Parent() != b {
			t.Errorf("At(%d) parent not set to block", i)
		}
	}
	if _, err := b.At(n); !asterrors.IsKind(err, asterrors.KindIndex) {
		t.Errorf("At(Len()): expected index-kind error, got %v", err)
	}
	if _, err := b.At(-1); !asterrors.IsKind(err, asterrors.KindIndex) {
		t.Errorf("At(-1): expected index-kind error, got %v", err)
	}
}

func newCountVar(t *testing.T) *InlineVariableDeclaration {
	t.Helper()
	zero, err := NewLiteralInt32(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewInlineVariableDeclaration("i", Int32(), zero)
}

func TestForRangeLoopStepValidation(t *testing.T) {
	start, _ := NewLiteralInt32(0)
	end, _ := NewLiteralInt32(10)

	zero, _ := NewLiteralInt32(0)
	_, err := NewForRangeLoopStmt(newCountVar(t), start, end, zero, NewBlock("body"))
	if !asterrors.IsKind(err, asterrors.KindValue) {
		t.Fatalf("zero step: expected value-kind error, got %v", err)
	}

	start2, _ := NewLiteralInt32(0)
	end2, _ := NewLiteralInt32(10)
	negative, _ := NewLiteralInt32(-2)
	if _, err := NewForRangeLoopStmt(newCountVar(t), start2, end2, negative, NewBlock("body")); err != nil {
		t.Errorf("negative step: unexpected error %v", err)
	}

	start3, _ := NewLiteralInt32(0)
	end3, _ := NewLiteralInt32(10)
	zeroF, _ := NewLiteralFloat64(0)
	if _, err := NewForRangeLoopExpr(newCountVar(t), start3, end3, zeroF, NewBlock("body")); !asterrors.IsKind(err, asterrors.KindValue) {
		t.Errorf("zero float step in expr loop: expected value-kind error, got %v", err)
	}

	// a non-literal step cannot be checked at construction
	start4, _ := NewLiteralInt32(0)
	end4, _ := NewLiteralInt32(10)
	if _, err := NewForRangeLoopStmt(newCountVar(t), start4, end4, NewTypedVariable("step", Int32()), NewBlock("body")); err != nil {
		t.Errorf("variable step: unexpected error %v", err)
	}
}

func TestIfStmtConditionMustBeBoolean(t *testing.T) {
	cond := boolCondition(t)
	stmt, err := NewIfStmt(cond, NewBlock("then"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stmt.Else != nil {
		t.Error("else branch should be nil")
	}

	one, _ := NewLiteralInt32(1)
	if _, err := NewIfStmt(one, NewBlock("then"), nil); !asterrors.IsKind(err, asterrors.KindType) {
		t.Errorf("int condition: expected type-kind error, got %v", err)
	}
}

// boolCondition builds a small boolean condition for control-flow tests.
func boolCondition(t *testing.T) Expr {
	t.Helper()
	a, _ := NewLiteralInt32(1)
	b, _ := NewLiteralInt32(2)
	cond, err := NewCompareOp(a, []string{"<"}, []Expr{b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return cond
}

func TestSwitchStmtDefaultArms(t *testing.T) {
	subject := NewTypedVariable("x", Int32())

	one, _ := NewLiteralInt32(1)
	armOne := NewCaseStmt(one, NewBlock("one"))
	armDefault := NewCaseStmt(nil, NewBlock("fallback"))

	sw, err := NewSwitchStmt(subject, []*CaseStmt{armOne, armDefault})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sw.Cases[1].IsDefault() {
		t.Error("nil-condition arm should report IsDefault")
	}

	secondDefault := NewCaseStmt(nil, NewBlock("another"))
	subject2 := NewTypedVariable("x", Int32())
	_, err = NewSwitchStmt(subject2, []*CaseStmt{armDefault, secondDefault})
	if !asterrors.IsKind(err, asterrors.KindSyntax) {
		t.Errorf("two defaults: expected syntax-kind error, got %v", err)
	}
}

func TestWhileAndDoWhile(t *testing.T) {
	cond := boolCondition(t)
	if _, err := NewWhileStmt(cond, NewBlock("body")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	one, _ := NewLiteralInt32(1)
	if _, err := NewDoWhileStmt(NewBlock("body"), one); !asterrors.IsKind(err, asterrors.KindType) {
		t.Errorf("int condition: expected type-kind error, got %v", err)
	}
}

func TestComprehensionRequiresClause(t *testing.T) {
	elem := NewTypedVariable("x", Int32())
	if _, err := NewListComprehension(elem, nil); !asterrors.IsKind(err, asterrors.KindSyntax) {
		t.Fatalf("no clauses: expected syntax-kind error, got %v", err)
	}

	clause := NewComprehensionClause(NewVariable("x"), NewVariable("xs"), nil)
	lc, err := NewListComprehension(NewTypedVariable("x", Int32()), []*ComprehensionClause{clause})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := lc.Type().TypeName(); got != "List[Int32]" {
		t.Errorf("comprehension type = %s, want List[Int32]", got)
	}
}

func TestFunctionPrototypeRejectsDuplicateParams(t *testing.T) {
	args := NewArguments(
		NewArgument("a", Int32(), nil),
		NewArgument("a", Float64(), nil),
	)
	if _, err := NewFunctionPrototype("f", args, NoneType()); !asterrors.IsKind(err, asterrors.KindSyntax) {
		t.Fatalf("duplicate params: expected syntax-kind error, got %v", err)
	}

	ok := NewArguments(
		NewArgument("a", Int32(), nil),
		NewArgument("b", Float64(), nil),
	)
	p, err := NewFunctionPrototype("f", ok, Int32())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := NewFunctionDef(p, NewBlock("f"))
	if got := def.Type().TypeName(); got != "Function[(Int32, Float64) -> Int32]" {
		t.Errorf("function type = %q", got)
	}
	if _, err := ok.At(2); !asterrors.IsKind(err, asterrors.KindIndex) {
		t.Errorf("At past end: expected index-kind error, got %v", err)
	}
}

func TestClassDefRejectsDuplicateMembers(t *testing.T) {
	attr := NewVariableDeclaration("count", Int32(), nil)
	proto, err := NewFunctionPrototype("count", NewArguments(), NoneType())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	method := NewFunctionDef(proto, NewBlock("count"))

	_, err = NewClassDefStmt("Counter", nil, []*VariableDeclaration{attr}, []*FunctionDef{method})
	if !asterrors.IsKind(err, asterrors.KindSyntax) {
		t.Fatalf("duplicate members: expected syntax-kind error, got %v", err)
	}
}
