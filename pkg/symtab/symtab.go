// Package symtab implements a lexically scoped symbol table over AST
// declarations. Scopes form a parent-linked chain; lookups walk outward from
// the innermost scope, and a name defined in an inner scope shadows the same
// name in any enclosing scope.
package symtab

import (
	"mercator-hq/astral/pkg/ast"
	"mercator-hq/astral/pkg/asterrors"
)

// Symbol is one named entry: the declaration node that introduced it.
type Symbol struct {
	Name string
	Node ast.AST
}

// Scope holds the symbols of one lexical region. The parent link is nil for
// the global scope.
type Scope struct {
	Name    string
	parent  *Scope
	symbols map[string]*Symbol
}

// NewScope creates a detached scope. Most callers should use Table.Push
// instead.
func NewScope(name string, parent *Scope) *Scope {
	return &Scope{
		Name:    name,
		parent:  parent,
		symbols: make(map[string]*Symbol),
	}
}

// Parent returns the enclosing scope, or nil for the global scope.
func (s *Scope) Parent() *Scope { return s.parent }

// Define binds a name in this scope. Redefining a name already bound in the
// same scope fails with a key-kind error; shadowing an outer binding is
// allowed.
func (s *Scope) Define(name string, node ast.AST) (*Symbol, error) {
	if _, ok := s.symbols[name]; ok {
		return nil, asterrors.Newf(asterrors.KindKey,
			"%q is already defined in scope %s", name, s.Name)
	}
	sym := &Symbol{Name: name, Node: node}
	s.symbols[name] = sym
	return sym, nil
}

// Resolve finds a name in this scope or any enclosing scope, innermost
// first.
func (s *Scope) Resolve(name string) (*Symbol, error) {
	for scope := s; scope != nil; scope = scope.parent {
		if sym, ok := scope.symbols[name]; ok {
			return sym, nil
		}
	}
	return nil, asterrors.Newf(asterrors.KindKey, "undefined name %q", name)
}

// Local reports whether the name is bound directly in this scope, ignoring
// enclosing scopes.
func (s *Scope) Local(name string) bool {
	_, ok := s.symbols[name]
	return ok
}

// Names returns the names bound directly in this scope.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.symbols))
	for name := range s.symbols {
		names = append(names, name)
	}
	return names
}

// Table tracks the current scope chain during a tree walk.
type Table struct {
	current *Scope
}

// NewTable creates a table with a single global scope.
func NewTable() *Table {
	return &Table{current: NewScope("global", nil)}
}

// Current returns the innermost open scope.
func (t *Table) Current() *Scope { return t.current }

// Push opens a nested scope and makes it current.
func (t *Table) Push(name string) *Scope {
	t.current = NewScope(name, t.current)
	return t.current
}

// Pop closes the current scope, discarding its bindings. Popping the global
// scope fails with an index-kind error.
func (t *Table) Pop() error {
	if t.current.parent == nil {
		return asterrors.New(asterrors.KindIndex, "cannot pop the global scope")
	}
	t.current = t.current.parent
	return nil
}

// Define binds a name in the current scope.
func (t *Table) Define(name string, node ast.AST) (*Symbol, error) {
	return t.current.Define(name, node)
}

// Resolve finds a name starting at the current scope.
func (t *Table) Resolve(name string) (*Symbol, error) {
	return t.current.Resolve(name)
}
