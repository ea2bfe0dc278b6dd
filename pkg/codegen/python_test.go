package codegen

import (
	"testing"

	"mercator-hq/astral/pkg/ast"
	"mercator-hq/astral/pkg/asterrors"
)

func gen(t *testing.T, node ast.AST) string {
	t.Helper()
	out, err := NewPythonGenerator().Generate(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

func intLit(t *testing.T, v int64) *ast.Literal {
	t.Helper()
	lit, err := ast.NewLiteralInt32(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return lit
}

func TestGenerateLiterals(t *testing.T) {
	str, err := ast.NewLiteralUTF8String("it's")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, err := ast.NewLiteralFloat64(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, err := ast.NewLiteralComplex64(1, -2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, err := ast.NewLiteralDate("2020-01-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		node ast.AST
		want string
	}{
		{"int", intLit(t, 7), "7"},
		{"float keeps fraction", f, "1.0"},
		{"bool", ast.NewLiteralBoolean(true), "True"},
		{"string escapes quote", str, `'it\'s'`},
		{"complex", c, "complex(1.0, -2.0)"},
		{"none", ast.NewLiteralNone(), "None"},
		{"date", d, "datetime.strptime('2020-01-02', '%Y-%m-%d').date()"},
		{"list", ast.NewLiteralList([]ast.Expr{intLit(t, 1), intLit(t, 2)}), "[1, 2]"},
		{"single tuple", ast.NewLiteralTuple([]ast.Expr{intLit(t, 1)}), "(1,)"},
		{"map", ast.NewLiteralMap([]ast.MapEntry{{Key: intLit(t, 1), Value: intLit(t, 2)}}), "{1: 2}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gen(t, tt.node); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateOperators(t *testing.T) {
	sum, err := ast.NewBinaryOp("+", intLit(t, 1), intLit(t, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := gen(t, sum); got != "(1 + 2)" {
		t.Errorf("binary: got %q", got)
	}

	pow, err := ast.NewBinaryOp("^", intLit(t, 2), intLit(t, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := gen(t, pow); got != "(2 ** 3)" {
		t.Errorf("power: got %q", got)
	}

	neg, err := ast.NewUnaryOp("-", intLit(t, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := gen(t, neg); got != "(-5)" {
		t.Errorf("unary: got %q", got)
	}

	cmp, err := ast.NewCompareOp(ast.NewTypedVariable("x", ast.Int32()),
		[]string{">", "<"}, []ast.Expr{intLit(t, 0), intLit(t, 10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := gen(t, cmp); got != "(x > 0 < 10)" {
		t.Errorf("compare chain: got %q", got)
	}
}

func TestGenerateBoolOps(t *testing.T) {
	lhs := ast.NewLiteralBoolean(true)
	rhs := ast.NewLiteralBoolean(false)
	tests := []struct {
		op   string
		want string
	}{
		{"and", "True and False"},
		{"or", "True or False"},
		{"xor", "True ^ False"},
		{"nand", "not (True and False)"},
		{"nor", "not (True or False)"},
		{"xnor", "not (True ^ False)"},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			op, err := ast.NewBoolOp(tt.op, lhs, rhs)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := gen(t, op); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateFunctionDef(t *testing.T) {
	proto, err := ast.NewFunctionPrototype("add",
		ast.NewArguments(
			ast.NewArgument("a", ast.Int32(), nil),
			ast.NewArgument("b", ast.Int32(), intLit(t, 0)),
		), ast.Int32())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sum, err := ast.NewBinaryOp("+",
		ast.NewTypedVariable("a", ast.Int32()), ast.NewTypedVariable("b", ast.Int32()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := ast.NewBlock("add")
	body.Append(ast.NewFunctionReturn(sum))
	def := ast.NewFunctionDef(proto, body)

	want := "def add(a: int, b: int = 0) -> int:\n    return (a + b)"
	if got := gen(t, def); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	async := ast.NewFunctionAsyncDef(proto, ast.NewBlock("empty"))
	want = "async def add(a: int, b: int = 0) -> int:\n    pass"
	if got := gen(t, async); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateForRangeLoop(t *testing.T) {
	body := ast.NewBlock("body")
	body.Append(ast.NewVariableAssignment("x", ast.NewVariable("i")))
	loop, err := ast.NewForRangeLoopStmt(
		ast.NewInlineVariableDeclaration("i", ast.Int32(), nil),
		intLit(t, 0), intLit(t, 10), intLit(t, 1), body,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "for i in range(0, 10, 1):\n    x = i"
	if got := gen(t, loop); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateIfStmt(t *testing.T) {
	cond, err := ast.NewCompareOp(ast.NewTypedVariable("x", ast.Int32()),
		[]string{">"}, []ast.Expr{intLit(t, 0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	then := ast.NewBlock("then")
	then.Append(ast.NewBreakStmt())
	els := ast.NewBlock("else")
	els.Append(ast.NewContinueStmt())
	stmt, err := ast.NewIfStmt(cond, then, els)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "if (x > 0):\n    break\nelse:\n    continue"
	if got := gen(t, stmt); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateDoWhile(t *testing.T) {
	cond, err := ast.NewCompareOp(ast.NewTypedVariable("x", ast.Int32()),
		[]string{">"}, []ast.Expr{intLit(t, 0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := ast.NewBlock("body")
	body.Append(ast.NewVariableAssignment("x", intLit(t, 1)))
	stmt, err := ast.NewDoWhileStmt(body, cond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "while True:\n    x = 1\n    if not (x > 0):\n        break"
	if got := gen(t, stmt); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateSwitchStmt(t *testing.T) {
	one := ast.NewBlock("one")
	one.Append(ast.NewBreakStmt())
	stmt, err := ast.NewSwitchStmt(ast.NewVariable("x"), []*ast.CaseStmt{
		ast.NewCaseStmt(intLit(t, 1), one),
		ast.NewCaseStmt(nil, ast.NewBlock("rest")),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "match x:\n    case 1:\n        break\n    case _:\n        pass"
	if got := gen(t, stmt); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateComprehension(t *testing.T) {
	clause := ast.NewComprehensionClause(ast.NewVariable("x"), ast.NewVariable("xs"), nil)
	comp, err := ast.NewListComprehension(ast.NewVariable("x"), []*ast.ComprehensionClause{clause})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := gen(t, comp); got != "[x for x in xs]" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateImportsAndClasses(t *testing.T) {
	imp, err := ast.NewImportFromStmt("models", []*ast.AliasExpr{
		ast.NewAliasExpr("User", "U"),
	}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := gen(t, imp); got != "from .models import User as U" {
		t.Errorf("import: got %q", got)
	}

	enum, err := ast.NewEnumDeclStmt("Color", []*ast.VariableDeclaration{
		ast.NewVariableDeclaration("RED", ast.Int32(), intLit(t, 1)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "class Color(Enum):\n    RED: int = 1"
	if got := gen(t, enum); got != want {
		t.Errorf("enum: got:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateModule(t *testing.T) {
	m := ast.NewModule("main")
	m.Append(
		ast.NewVariableDeclaration("total", ast.Int32(), intLit(t, 0)),
		ast.NewVariableAssignment("total", intLit(t, 3)),
	)
	want := "total: int = 0\ntotal = 3"
	if got := gen(t, m); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateUnsupportedVariant(t *testing.T) {
	target := ast.NewTarget("e-m:e-i64:64", "x86_64-unknown-linux-gnu")
	_, err := NewPythonGenerator().Generate(target)
	if !asterrors.IsKind(err, asterrors.KindNotImplemented) {
		t.Fatalf("expected not-implemented-kind error, got %v", err)
	}
}
