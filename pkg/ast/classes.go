package ast

import (
	"fmt"

	"mercator-hq/astral/pkg/asterrors"
)

func checkDuplicateMembers(owner string, attributes []*VariableDeclaration, methods []*FunctionDef) error {
	seen := make(map[string]bool, len(attributes)+len(methods))
	for _, a := range attributes {
		if seen[a.Name] {
			return asterrors.Newf(asterrors.KindSyntax,
				"duplicate member name %q in %s", a.Name, owner)
		}
		seen[a.Name] = true
	}
	for _, m := range methods {
		if seen[m.Name()] {
			return asterrors.Newf(asterrors.KindSyntax,
				"duplicate member name %q in %s", m.Name(), owner)
		}
		seen[m.Name()] = true
	}
	return nil
}

func memberStructs(attributes []*VariableDeclaration, methods []*FunctionDef, simplified bool) (attrs, meths []ReprStruct) {
	attrs = make([]ReprStruct, 0, len(attributes))
	for _, a := range attributes {
		attrs = append(attrs, a.GetStruct(simplified))
	}
	meths = make([]ReprStruct, 0, len(methods))
	for _, m := range methods {
		meths = append(meths, m.GetStruct(simplified))
	}
	return attrs, meths
}

// ClassDeclStmt declares a class without a body: name, bases and modifiers.
type ClassDeclStmt struct {
	BaseNode
	stmtMarker
	Name       string
	Bases      []Expr
	Decorators []Expr
	Visibility VisibilityKind
	IsAbstract bool
}

// NewClassDeclStmt creates a class declaration.
func NewClassDeclStmt(name string, bases []Expr, loc ...SourceLocation) *ClassDeclStmt {
	n := &ClassDeclStmt{
		BaseNode:   newBase(KindClassDeclStmt, optLoc(loc)),
		Name:       name,
		Bases:      bases,
		Visibility: VisibilityPublic,
	}
	for _, b := range bases {
		b.SetParent(n)
	}
	return n
}

func (n *ClassDeclStmt) String() string { return fmt.Sprintf("ClassDeclStmt[%s]", n.Name) }

// GetStruct returns the structural representation of the node.
func (n *ClassDeclStmt) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("name", n.Name).
		Set("visibility", n.Visibility.String()).
		Set("abstract", n.IsAbstract)
	if len(n.Bases) > 0 {
		bases := make([]ReprStruct, 0, len(n.Bases))
		for _, b := range n.Bases {
			bases = append(bases, b.GetStruct(simplified))
		}
		value.Set("bases", bases)
	}
	if len(n.Decorators) > 0 {
		decorators := make([]ReprStruct, 0, len(n.Decorators))
		for _, d := range n.Decorators {
			decorators = append(decorators, d.GetStruct(simplified))
		}
		value.Set("decorators", decorators)
	}
	return n.prepareStruct(fmt.Sprintf("CLASS-DECL[%s]", n.Name), value, simplified)
}

func (n *ClassDeclStmt) accept(v Visitor) (string, error) { return v.VisitClassDeclStmt(n) }

// ClassDefStmt defines a class with attributes and methods. Member names
// must be unique within the class.
type ClassDefStmt struct {
	BaseNode
	stmtMarker
	Name       string
	Bases      []Expr
	Attributes []*VariableDeclaration
	Methods    []*FunctionDef
	Visibility VisibilityKind
	IsAbstract bool
}

// NewClassDefStmt creates a class definition. Duplicate member names are
// rejected.
func NewClassDefStmt(name string, bases []Expr, attributes []*VariableDeclaration, methods []*FunctionDef, loc ...SourceLocation) (*ClassDefStmt, error) {
	if err := checkDuplicateMembers("class "+name, attributes, methods); err != nil {
		return nil, err
	}
	n := &ClassDefStmt{
		BaseNode:   newBase(KindClassDefStmt, optLoc(loc)),
		Name:       name,
		Bases:      bases,
		Attributes: attributes,
		Methods:    methods,
		Visibility: VisibilityPublic,
	}
	for _, b := range bases {
		b.SetParent(n)
	}
	for _, a := range attributes {
		a.SetParent(n)
	}
	for _, m := range methods {
		m.SetParent(n)
	}
	return n, nil
}

func (n *ClassDefStmt) String() string { return fmt.Sprintf("ClassDefStmt[%s]", n.Name) }

// GetStruct returns the structural representation of the node.
func (n *ClassDefStmt) GetStruct(simplified bool) ReprStruct {
	attrs, meths := memberStructs(n.Attributes, n.Methods, simplified)
	value := NewDict().
		Set("name", n.Name).
		Set("visibility", n.Visibility.String()).
		Set("abstract", n.IsAbstract)
	if len(n.Bases) > 0 {
		bases := make([]ReprStruct, 0, len(n.Bases))
		for _, b := range n.Bases {
			bases = append(bases, b.GetStruct(simplified))
		}
		value.Set("bases", bases)
	}
	value.Set("attributes", attrs).
		Set("methods", meths)
	return n.prepareStruct(fmt.Sprintf("CLASS-DEF[%s]", n.Name), value, simplified)
}

func (n *ClassDefStmt) accept(v Visitor) (string, error) { return v.VisitClassDefStmt(n) }

// StructDeclStmt declares a struct without a body.
type StructDeclStmt struct {
	BaseNode
	stmtMarker
	Name       string
	Visibility VisibilityKind
}

// NewStructDeclStmt creates a struct declaration.
func NewStructDeclStmt(name string, loc ...SourceLocation) *StructDeclStmt {
	return &StructDeclStmt{
		BaseNode:   newBase(KindStructDeclStmt, optLoc(loc)),
		Name:       name,
		Visibility: VisibilityPublic,
	}
}

func (n *StructDeclStmt) String() string { return fmt.Sprintf("StructDeclStmt[%s]", n.Name) }

// GetStruct returns the structural representation of the node.
func (n *StructDeclStmt) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("name", n.Name).
		Set("visibility", n.Visibility.String())
	return n.prepareStruct(fmt.Sprintf("STRUCT-DECL[%s]", n.Name), value, simplified)
}

func (n *StructDeclStmt) accept(v Visitor) (string, error) {
	return v.VisitStructDeclStmt(n)
}

// StructDefStmt defines a struct with attributes. Attribute names must be
// unique.
type StructDefStmt struct {
	BaseNode
	stmtMarker
	Name       string
	Attributes []*VariableDeclaration
	Visibility VisibilityKind
}

// NewStructDefStmt creates a struct definition. Duplicate attribute names
// are rejected.
func NewStructDefStmt(name string, attributes []*VariableDeclaration, loc ...SourceLocation) (*StructDefStmt, error) {
	if err := checkDuplicateMembers("struct "+name, attributes, nil); err != nil {
		return nil, err
	}
	n := &StructDefStmt{
		BaseNode:   newBase(KindStructDefStmt, optLoc(loc)),
		Name:       name,
		Attributes: attributes,
		Visibility: VisibilityPublic,
	}
	for _, a := range attributes {
		a.SetParent(n)
	}
	return n, nil
}

func (n *StructDefStmt) String() string { return fmt.Sprintf("StructDefStmt[%s]", n.Name) }

// GetStruct returns the structural representation of the node.
func (n *StructDefStmt) GetStruct(simplified bool) ReprStruct {
	attrs, _ := memberStructs(n.Attributes, nil, simplified)
	value := NewDict().
		Set("name", n.Name).
		Set("visibility", n.Visibility.String()).
		Set("attributes", attrs)
	return n.prepareStruct(fmt.Sprintf("STRUCT-DEF[%s]", n.Name), value, simplified)
}

func (n *StructDefStmt) accept(v Visitor) (string, error) { return v.VisitStructDefStmt(n) }

// EnumDeclStmt declares an enumeration with named member values.
type EnumDeclStmt struct {
	BaseNode
	stmtMarker
	Name       string
	Attributes []*VariableDeclaration
	Visibility VisibilityKind
}

// NewEnumDeclStmt creates an enum declaration. Duplicate member names are
// rejected.
func NewEnumDeclStmt(name string, attributes []*VariableDeclaration, loc ...SourceLocation) (*EnumDeclStmt, error) {
	if err := checkDuplicateMembers("enum "+name, attributes, nil); err != nil {
		return nil, err
	}
	n := &EnumDeclStmt{
		BaseNode:   newBase(KindEnumDeclStmt, optLoc(loc)),
		Name:       name,
		Attributes: attributes,
		Visibility: VisibilityPublic,
	}
	for _, a := range attributes {
		a.SetParent(n)
	}
	return n, nil
}

func (n *EnumDeclStmt) String() string { return fmt.Sprintf("EnumDeclStmt[%s]", n.Name) }

// GetStruct returns the structural representation of the node.
func (n *EnumDeclStmt) GetStruct(simplified bool) ReprStruct {
	attrs, _ := memberStructs(n.Attributes, nil, simplified)
	value := NewDict().
		Set("name", n.Name).
		Set("visibility", n.Visibility.String()).
		Set("attributes", attrs)
	return n.prepareStruct(fmt.Sprintf("ENUM-DECL[%s]", n.Name), value, simplified)
}

func (n *EnumDeclStmt) accept(v Visitor) (string, error) { return v.VisitEnumDeclStmt(n) }
