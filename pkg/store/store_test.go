package store

import (
	"context"
	"path/filepath"
	"testing"

	"mercator-hq/astral/pkg/ast"
	"mercator-hq/astral/pkg/asterrors"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Path = filepath.Join(t.TempDir(), "trees.db")
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleModule(t *testing.T) *ast.Module {
	t.Helper()
	one, err := ast.NewLiteralInt32(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := ast.NewModule("main")
	m.Append(ast.NewVariableDeclaration("x", ast.Int32(), one))
	return m
}

func TestSaveAndLoad(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	m := sampleModule(t)

	if err := s.Save(ctx, "main", m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := s.Load(ctx, "main")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ast.Equal(m, back) {
		t.Error("loaded tree differs from the saved one")
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "t", sampleModule(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lit, err := ast.NewLiteralInt32(9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Save(ctx, "t", lit); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	back, err := s.Load(ctx, "t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ast.Equal(lit, back) {
		t.Error("second save did not replace the document")
	}

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0].Kind != ast.KindLiteral {
		t.Errorf("entry kind = %s, want %s", entries[0].Kind, ast.KindLiteral)
	}
}

func TestListOrdersByName(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	for _, name := range []string{"b", "a", "c"} {
		if err := s.Save(ctx, name, sampleModule(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a", "b", "c"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, e := range entries {
		if e.Name != want[i] {
			t.Errorf("entry %d = %q, want %q", i, e.Name, want[i])
		}
	}
}

func TestLoadMissing(t *testing.T) {
	s := openStore(t)
	if _, err := s.Load(context.Background(), "nope"); !asterrors.IsKind(err, asterrors.KindKey) {
		t.Fatalf("expected key-kind error, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "t", sampleModule(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Delete(ctx, "t"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Load(ctx, "t"); !asterrors.IsKind(err, asterrors.KindKey) {
		t.Fatalf("expected key-kind error after delete, got %v", err)
	}
	if err := s.Delete(ctx, "t"); !asterrors.IsKind(err, asterrors.KindKey) {
		t.Fatalf("deleting a missing tree: expected key-kind error, got %v", err)
	}
}
