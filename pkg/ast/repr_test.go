package ast

import (
	"strings"
	"testing"
)

func sampleTree(t *testing.T) AST {
	t.Helper()
	one, _ := NewLiteralInt32(1)
	two, _ := NewLiteralInt32(2)
	sum, err := NewBinaryOp("+", one, two)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decl := NewVariableDeclaration("total", Int32(), sum)
	decl.SetComment("running total")

	cond, err := NewCompareOp(NewTypedVariable("total", Int32()), []string{">"}, []Expr{mustInt32(t, 0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	then := NewBlock("then")
	then.Append(NewBreakStmt())
	ifStmt, err := NewIfStmt(cond, then, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := NewModule("main")
	m.Append(decl, ifStmt)
	return m
}

func mustInt32(t *testing.T, v int64) *Literal {
	t.Helper()
	lit, err := NewLiteralInt32(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return lit
}

func TestToJSONByteStable(t *testing.T) {
	tree := sampleTree(t)
	first, err := ToJSON(tree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := ToJSON(tree)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("serialization %d differs from the first", i+1)
		}
	}
}

func TestToJSONKeyOrder(t *testing.T) {
	lit := mustInt32(t, 7)
	out, err := ToJSON(lit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := strings.Index(out, `"content"`)
	metadata := strings.Index(out, `"metadata"`)
	if content < 0 || metadata < 0 || content > metadata {
		t.Errorf("content must precede metadata:\n%s", out)
	}
	typePos := strings.Index(out, `"type"`)
	valuePos := strings.Index(out, `"value"`)
	if typePos < 0 || valuePos < 0 || typePos > valuePos {
		t.Errorf("type must precede value:\n%s", out)
	}
	if !strings.Contains(out, `"value": 7`) {
		t.Errorf("integer value must serialize without a fraction:\n%s", out)
	}
}

func TestSimplifiedKeysUniqueAmongIdenticalSiblings(t *testing.T) {
	a := mustInt32(t, 1)
	b := mustInt32(t, 1)
	list := NewLiteralList([]Expr{a, b})

	s := list.GetStruct(true)
	d, ok := s.(*Dict)
	if !ok || d.Len() != 1 {
		t.Fatalf("unexpected shape %T", s)
	}
	elems, ok := d.Pairs()[0].Value.([]ReprStruct)
	if !ok || len(elems) != 2 {
		t.Fatalf("expected two elements, got %v", d.Pairs()[0].Value)
	}
	keys := make(map[string]bool)
	for _, e := range elems {
		ed, ok := e.(*Dict)
		if !ok || ed.Len() != 1 {
			t.Fatalf("unexpected element shape %T", e)
		}
		key := ed.Pairs()[0].Key
		if !strings.Contains(key, "#") {
			t.Errorf("simplified key %q lacks a ref suffix", key)
		}
		if keys[key] {
			t.Errorf("duplicate simplified key %q among identical siblings", key)
		}
		keys[key] = true
	}
}

func TestEqualIgnoresIdentity(t *testing.T) {
	a := mustInt32(t, 5)
	b := mustInt32(t, 5)
	if a.Ref() == b.Ref() {
		t.Fatal("distinct nodes share a ref")
	}
	if !Equal(a, b) {
		t.Error("structurally identical literals must compare equal")
	}

	c := mustInt32(t, 6)
	if Equal(a, c) {
		t.Error("different values must not compare equal")
	}

	d := mustInt32(t, 5)
	d.SetComment("note")
	if Equal(a, d) {
		t.Error("differing comments must not compare equal")
	}
}

func TestEqualKeepsDisplayNamesVerbatim(t *testing.T) {
	a := NewBlock("body#1")
	b := NewBlock("body#2")
	if Equal(a, b) {
		t.Error("blocks named body#1 and body#2 must not compare equal")
	}

	c := NewBlock("body#1")
	if !Equal(a, c) {
		t.Error("blocks with the same name must compare equal")
	}
}

func TestToYAMLRoundTrip(t *testing.T) {
	tree := sampleTree(t)
	out, err := ToYAML(tree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := FromYAML([]byte(out))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(tree, back) {
		t.Error("YAML round trip changed the tree")
	}
	again, err := ToYAML(back)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != out {
		t.Error("YAML round trip is not byte-stable")
	}
}

func TestStructFromJSONPreservesOrderAndNumbers(t *testing.T) {
	in := `{"b": 1, "a": 2.5, "nested": {"z": true, "y": null}, "list": [1, 2]}`
	s, err := StructFromJSON([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, ok := s.(*Dict)
	if !ok {
		t.Fatalf("expected *Dict, got %T", s)
	}
	wantKeys := []string{"b", "a", "nested", "list"}
	for i, k := range d.Keys() {
		if k != wantKeys[i] {
			t.Fatalf("key order = %v, want %v", d.Keys(), wantKeys)
		}
	}
	if v, _ := d.Get("b"); v != 1 {
		t.Errorf("integral number decoded as %T %v, want int 1", v, v)
	}
	if v, _ := d.Get("a"); v != 2.5 {
		t.Errorf("fractional number decoded as %T %v, want float64 2.5", v, v)
	}
}
