package ast

import (
	"mercator-hq/astral/pkg/asterrors"
)

// ComprehensionClause is one "for target in iterable" clause with optional
// filter conditions.
type ComprehensionClause struct {
	BaseNode
	exprMarker
	Target   Expr
	Iterable Expr
	Filters  []Expr
	IsAsync  bool
}

// NewComprehensionClause creates a comprehension clause.
func NewComprehensionClause(target, iterable Expr, filters []Expr, loc ...SourceLocation) *ComprehensionClause {
	n := &ComprehensionClause{
		BaseNode: newBase(KindComprehensionClause, optLoc(loc)),
		Target:   target,
		Iterable: iterable,
		Filters:  filters,
	}
	target.SetParent(n)
	iterable.SetParent(n)
	for _, f := range filters {
		f.SetParent(n)
	}
	return n
}

func (n *ComprehensionClause) String() string { return "ComprehensionClause" }

// GetStruct returns the structural representation of the node.
func (n *ComprehensionClause) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("target", n.Target.GetStruct(simplified)).
		Set("iterable", n.Iterable.GetStruct(simplified))
	if len(n.Filters) > 0 {
		filters := make([]ReprStruct, 0, len(n.Filters))
		for _, f := range n.Filters {
			filters = append(filters, f.GetStruct(simplified))
		}
		value.Set("filters", filters)
	}
	if n.IsAsync {
		value.Set("async", true)
	}
	return n.prepareStruct("COMPREHENSION-CLAUSE", value, simplified)
}

func (n *ComprehensionClause) accept(v Visitor) (string, error) {
	return v.VisitComprehensionClause(n)
}

func requireClauses(clauses []*ComprehensionClause) error {
	if len(clauses) == 0 {
		return asterrors.New(asterrors.KindSyntax,
			"comprehension requires at least one clause")
	}
	return nil
}

func clauseStructs(clauses []*ComprehensionClause, simplified bool) []ReprStruct {
	out := make([]ReprStruct, 0, len(clauses))
	for _, c := range clauses {
		out = append(out, c.GetStruct(simplified))
	}
	return out
}

// ListComprehension builds a list from an element expression and one or more
// clauses.
type ListComprehension struct {
	BaseNode
	exprMarker
	Element Expr
	Clauses []*ComprehensionClause
}

// NewListComprehension creates a list comprehension.
func NewListComprehension(element Expr, clauses []*ComprehensionClause, loc ...SourceLocation) (*ListComprehension, error) {
	if err := requireClauses(clauses); err != nil {
		return nil, err
	}
	n := &ListComprehension{
		BaseNode: newBase(KindListComprehension, optLoc(loc)),
		Element:  element,
		Clauses:  clauses,
	}
	element.SetParent(n)
	for _, c := range clauses {
		c.SetParent(n)
	}
	return n, nil
}

// Type returns the list type of the element expression.
func (n *ListComprehension) Type() DataType { return NewListType(exprType(n.Element)) }

func (n *ListComprehension) String() string { return "ListComprehension" }

// GetStruct returns the structural representation of the node.
func (n *ListComprehension) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("element", n.Element.GetStruct(simplified)).
		Set("clauses", clauseStructs(n.Clauses, simplified))
	return n.prepareStruct("LIST-COMPREHENSION", value, simplified)
}

func (n *ListComprehension) accept(v Visitor) (string, error) {
	return v.VisitListComprehension(n)
}

// SetComprehension builds a set from an element expression and one or more
// clauses.
type SetComprehension struct {
	BaseNode
	exprMarker
	Element Expr
	Clauses []*ComprehensionClause
}

// NewSetComprehension creates a set comprehension.
func NewSetComprehension(element Expr, clauses []*ComprehensionClause, loc ...SourceLocation) (*SetComprehension, error) {
	if err := requireClauses(clauses); err != nil {
		return nil, err
	}
	n := &SetComprehension{
		BaseNode: newBase(KindSetComprehension, optLoc(loc)),
		Element:  element,
		Clauses:  clauses,
	}
	element.SetParent(n)
	for _, c := range clauses {
		c.SetParent(n)
	}
	return n, nil
}

// Type returns the set type of the element expression.
func (n *SetComprehension) Type() DataType { return NewSetType(exprType(n.Element)) }

func (n *SetComprehension) String() string { return "SetComprehension" }

// GetStruct returns the structural representation of the node.
func (n *SetComprehension) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("element", n.Element.GetStruct(simplified)).
		Set("clauses", clauseStructs(n.Clauses, simplified))
	return n.prepareStruct("SET-COMPREHENSION", value, simplified)
}

func (n *SetComprehension) accept(v Visitor) (string, error) {
	return v.VisitSetComprehension(n)
}

// DictComprehension builds a map from key and value expressions and one or
// more clauses.
type DictComprehension struct {
	BaseNode
	exprMarker
	Key     Expr
	Value   Expr
	Clauses []*ComprehensionClause
}

// NewDictComprehension creates a dict comprehension.
func NewDictComprehension(key, value Expr, clauses []*ComprehensionClause, loc ...SourceLocation) (*DictComprehension, error) {
	if err := requireClauses(clauses); err != nil {
		return nil, err
	}
	n := &DictComprehension{
		BaseNode: newBase(KindDictComprehension, optLoc(loc)),
		Key:      key,
		Value:    value,
		Clauses:  clauses,
	}
	key.SetParent(n)
	value.SetParent(n)
	for _, c := range clauses {
		c.SetParent(n)
	}
	return n, nil
}

// Type returns the map type of the key and value expressions.
func (n *DictComprehension) Type() DataType {
	return NewMapType(exprType(n.Key), exprType(n.Value))
}

func (n *DictComprehension) String() string { return "DictComprehension" }

// GetStruct returns the structural representation of the node.
func (n *DictComprehension) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("key", n.Key.GetStruct(simplified)).
		Set("value", n.Value.GetStruct(simplified)).
		Set("clauses", clauseStructs(n.Clauses, simplified))
	return n.prepareStruct("DICT-COMPREHENSION", value, simplified)
}

func (n *DictComprehension) accept(v Visitor) (string, error) {
	return v.VisitDictComprehension(n)
}

// GeneratorExpr is a lazily evaluated comprehension.
type GeneratorExpr struct {
	BaseNode
	exprMarker
	Element Expr
	Clauses []*ComprehensionClause
}

// NewGeneratorExpr creates a generator expression.
func NewGeneratorExpr(element Expr, clauses []*ComprehensionClause, loc ...SourceLocation) (*GeneratorExpr, error) {
	if err := requireClauses(clauses); err != nil {
		return nil, err
	}
	n := &GeneratorExpr{
		BaseNode: newBase(KindGeneratorExpr, optLoc(loc)),
		Element:  element,
		Clauses:  clauses,
	}
	element.SetParent(n)
	for _, c := range clauses {
		c.SetParent(n)
	}
	return n, nil
}

func (n *GeneratorExpr) String() string { return "GeneratorExpr" }

// GetStruct returns the structural representation of the node.
func (n *GeneratorExpr) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("element", n.Element.GetStruct(simplified)).
		Set("clauses", clauseStructs(n.Clauses, simplified))
	return n.prepareStruct("GENERATOR-EXPR", value, simplified)
}

func (n *GeneratorExpr) accept(v Visitor) (string, error) {
	return v.VisitGeneratorExpr(n)
}
