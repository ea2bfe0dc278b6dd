package symtab

import (
	"testing"

	"mercator-hq/astral/pkg/ast"
	"mercator-hq/astral/pkg/asterrors"
)

func TestDefineAndResolve(t *testing.T) {
	table := NewTable()
	decl := ast.NewVariableDeclaration("x", ast.Int32(), nil)

	if _, err := table.Define("x", decl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sym, err := table.Resolve("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sym.Node != decl {
		t.Error("resolved symbol does not carry the declaring node")
	}

	if _, err := table.Resolve("y"); !asterrors.IsKind(err, asterrors.KindKey) {
		t.Errorf("undefined name: expected key-kind error, got %v", err)
	}
}

func TestSameScopeRedefinitionFails(t *testing.T) {
	table := NewTable()
	decl := ast.NewVariableDeclaration("x", ast.Int32(), nil)

	if _, err := table.Define("x", decl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := table.Define("x", decl); !asterrors.IsKind(err, asterrors.KindKey) {
		t.Fatalf("redefinition: expected key-kind error, got %v", err)
	}
}

func TestInnerScopeShadowsOuter(t *testing.T) {
	table := NewTable()
	outer := ast.NewVariableDeclaration("x", ast.Int32(), nil)
	inner := ast.NewVariableDeclaration("x", ast.Float64(), nil)

	if _, err := table.Define("x", outer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	table.Push("f")
	if _, err := table.Define("x", inner); err != nil {
		t.Fatalf("shadowing must be allowed: %v", err)
	}

	sym, err := table.Resolve("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sym.Node != inner {
		t.Error("inner binding must shadow the outer one")
	}

	if err := table.Pop(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sym, err = table.Resolve("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sym.Node != outer {
		t.Error("outer binding must be visible again after pop")
	}
}

func TestLookupWalksOutward(t *testing.T) {
	table := NewTable()
	decl := ast.NewVariableDeclaration("g", ast.Boolean(), nil)
	if _, err := table.Define("g", decl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	table.Push("outer")
	table.Push("inner")
	sym, err := table.Resolve("g")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sym.Node != decl {
		t.Error("lookup must reach the global scope")
	}
	if table.Current().Local("g") {
		t.Error("Local must not consult enclosing scopes")
	}
}

func TestPopGlobalScopeFails(t *testing.T) {
	table := NewTable()
	if err := table.Pop(); !asterrors.IsKind(err, asterrors.KindIndex) {
		t.Fatalf("expected index-kind error, got %v", err)
	}
}
