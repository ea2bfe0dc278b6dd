package ast

import "fmt"

// Identifier is a bare name expression.
type Identifier struct {
	BaseNode
	exprMarker
	Name string
}

// NewIdentifier creates an identifier node.
func NewIdentifier(name string, loc ...SourceLocation) *Identifier {
	return &Identifier{BaseNode: newBase(KindIdentifier, optLoc(loc)), Name: name}
}

func (n *Identifier) String() string { return fmt.Sprintf("Identifier[%s]", n.Name) }

// GetStruct returns the structural representation of the node.
func (n *Identifier) GetStruct(simplified bool) ReprStruct {
	return n.prepareStruct(fmt.Sprintf("IDENTIFIER[%s]", n.Name), n.Name, simplified)
}

func (n *Identifier) accept(v Visitor) (string, error) { return v.VisitIdentifier(n) }

// Variable is a use of a declared name. It carries the declared type so
// operator construction can resolve result types; AnyType when unknown.
type Variable struct {
	BaseNode
	exprMarker
	Name string
	typ  DataType
}

// NewVariable creates a variable-use node with AnyType.
func NewVariable(name string, loc ...SourceLocation) *Variable {
	return NewTypedVariable(name, AnyType(), loc...)
}

// NewTypedVariable creates a variable-use node with a declared type.
func NewTypedVariable(name string, typ DataType, loc ...SourceLocation) *Variable {
	return &Variable{
		BaseNode: newBase(KindVariable, optLoc(loc)),
		Name:     name,
		typ:      typ,
	}
}

// Type returns the declared type of the variable.
func (n *Variable) Type() DataType { return n.typ }

func (n *Variable) String() string { return fmt.Sprintf("Variable[%s]", n.Name) }

// GetStruct returns the structural representation of the node.
func (n *Variable) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("name", n.Name).
		Set("type", n.typ.GetStruct(simplified))
	return n.prepareStruct(fmt.Sprintf("Variable[%s]", n.Name), value, simplified)
}

func (n *Variable) accept(v Visitor) (string, error) { return v.VisitVariable(n) }

// VariableDeclaration declares a named, typed variable with an optional
// initial value.
type VariableDeclaration struct {
	BaseNode
	stmtMarker
	Name       string
	VarType    DataType
	Mutability MutabilityKind
	Visibility VisibilityKind
	Scope      ScopeKind
	Value      Expr
}

// NewVariableDeclaration creates a variable declaration. Value may be nil
// for a declaration without an initializer.
func NewVariableDeclaration(name string, typ DataType, value Expr, loc ...SourceLocation) *VariableDeclaration {
	n := &VariableDeclaration{
		BaseNode:   newBase(KindVariableDeclaration, optLoc(loc)),
		Name:       name,
		VarType:    typ,
		Mutability: MutabilityConstant,
		Visibility: VisibilityPublic,
		Scope:      ScopeLocal,
		Value:      value,
	}
	if value != nil {
		value.SetParent(n)
	}
	return n
}

func (n *VariableDeclaration) String() string {
	return fmt.Sprintf("VariableDeclaration[%s, %s]", n.Name, n.VarType.TypeName())
}

// GetStruct returns the structural representation of the node.
func (n *VariableDeclaration) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("name", n.Name).
		Set("type", n.VarType.GetStruct(simplified)).
		Set("mutability", n.Mutability.String()).
		Set("visibility", n.Visibility.String()).
		Set("scope", n.Scope.String())
	if n.Value != nil {
		value.Set("value", n.Value.GetStruct(simplified))
	}
	return n.prepareStruct(n.String(), value, simplified)
}

func (n *VariableDeclaration) accept(v Visitor) (string, error) {
	return v.VisitVariableDeclaration(n)
}

// InlineVariableDeclaration declares a variable inside an expression
// position, such as a loop header.
type InlineVariableDeclaration struct {
	BaseNode
	exprMarker
	Name       string
	VarType    DataType
	Mutability MutabilityKind
	Value      Expr
}

// NewInlineVariableDeclaration creates an inline declaration. Value may be
// nil.
func NewInlineVariableDeclaration(name string, typ DataType, value Expr, loc ...SourceLocation) *InlineVariableDeclaration {
	n := &InlineVariableDeclaration{
		BaseNode:   newBase(KindInlineVariableDeclaration, optLoc(loc)),
		Name:       name,
		VarType:    typ,
		Mutability: MutabilityMutable,
		Value:      value,
	}
	if value != nil {
		value.SetParent(n)
	}
	return n
}

// Type returns the declared type of the variable.
func (n *InlineVariableDeclaration) Type() DataType { return n.VarType }

func (n *InlineVariableDeclaration) String() string {
	return fmt.Sprintf("InlineVariableDeclaration[%s, %s]", n.Name, n.VarType.TypeName())
}

// GetStruct returns the structural representation of the node.
func (n *InlineVariableDeclaration) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("name", n.Name).
		Set("type", n.VarType.GetStruct(simplified)).
		Set("mutability", n.Mutability.String())
	if n.Value != nil {
		value.Set("value", n.Value.GetStruct(simplified))
	}
	return n.prepareStruct(n.String(), value, simplified)
}

func (n *InlineVariableDeclaration) accept(v Visitor) (string, error) {
	return v.VisitInlineVariableDeclaration(n)
}

// VariableAssignment assigns a value to an existing name.
type VariableAssignment struct {
	BaseNode
	stmtMarker
	Name  string
	Value Expr
}

// NewVariableAssignment creates an assignment statement.
func NewVariableAssignment(name string, value Expr, loc ...SourceLocation) *VariableAssignment {
	n := &VariableAssignment{
		BaseNode: newBase(KindVariableAssignment, optLoc(loc)),
		Name:     name,
		Value:    value,
	}
	value.SetParent(n)
	return n
}

func (n *VariableAssignment) String() string {
	return fmt.Sprintf("VariableAssignment[%s]", n.Name)
}

// GetStruct returns the structural representation of the node.
func (n *VariableAssignment) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("name", n.Name).
		Set("value", n.Value.GetStruct(simplified))
	return n.prepareStruct(n.String(), value, simplified)
}

func (n *VariableAssignment) accept(v Visitor) (string, error) {
	return v.VisitVariableAssignment(n)
}
