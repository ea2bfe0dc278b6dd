package ast

import (
	"fmt"

	"mercator-hq/astral/pkg/asterrors"
)

// UnaryOp applies a unary operator to a single owned operand. The result
// type is resolved at construction.
type UnaryOp struct {
	BaseNode
	exprMarker
	Op      string
	Operand Expr
	typ     DataType
}

// NewUnaryOp creates a unary operator node, failing with a type-kind error
// when the operator is not defined for the operand type.
func NewUnaryOp(op string, operand Expr, loc ...SourceLocation) (*UnaryOp, error) {
	typ, err := resolveUnary(op, exprType(operand))
	if err != nil {
		return nil, err
	}
	n := &UnaryOp{
		BaseNode: newBase(KindUnaryOp, optLoc(loc)),
		Op:       op,
		Operand:  operand,
		typ:      typ,
	}
	operand.SetParent(n)
	return n, nil
}

// Type returns the resolved result type.
func (n *UnaryOp) Type() DataType { return n.typ }

func (n *UnaryOp) String() string { return fmt.Sprintf("UnaryOp[%s]", n.Op) }

// GetStruct returns the structural representation of the node.
func (n *UnaryOp) GetStruct(simplified bool) ReprStruct {
	key := fmt.Sprintf("UNARY[%s]", n.Op)
	value := NewDict().
		Set("op", n.Op).
		Set("operand", n.Operand.GetStruct(simplified))
	return n.prepareStruct(key, value, simplified)
}

func (n *UnaryOp) accept(v Visitor) (string, error) { return v.VisitUnaryOp(n) }

// BinaryOp applies a binary operator to two owned operand subtrees. The
// result type is resolved from the promotion table at construction;
// combinations outside the table fail with a type-kind error.
type BinaryOp struct {
	BaseNode
	exprMarker
	Op  string
	Lhs Expr
	Rhs Expr
	typ DataType
}

// NewBinaryOp creates a binary operator node.
func NewBinaryOp(op string, lhs, rhs Expr, loc ...SourceLocation) (*BinaryOp, error) {
	typ, err := resolveBinary(op, exprType(lhs), exprType(rhs))
	if err != nil {
		return nil, err
	}
	n := &BinaryOp{
		BaseNode: newBase(KindBinaryOp, optLoc(loc)),
		Op:       op,
		Lhs:      lhs,
		Rhs:      rhs,
		typ:      typ,
	}
	lhs.SetParent(n)
	rhs.SetParent(n)
	return n, nil
}

// Type returns the resolved result type.
func (n *BinaryOp) Type() DataType { return n.typ }

func (n *BinaryOp) String() string { return fmt.Sprintf("BinaryOp[%s]", n.Op) }

// GetStruct returns the structural representation of the node.
func (n *BinaryOp) GetStruct(simplified bool) ReprStruct {
	key := fmt.Sprintf("BINARY[%s]", n.Op)
	value := NewDict().
		Set("op", n.Op).
		Set("lhs", n.Lhs.GetStruct(simplified)).
		Set("rhs", n.Rhs.GetStruct(simplified))
	return n.prepareStruct(key, value, simplified)
}

func (n *BinaryOp) accept(v Visitor) (string, error) { return v.VisitBinaryOp(n) }

// CompareOp chains one or more comparisons over a left operand, as in
// a < b <= c. It always yields Boolean; operands must be pairwise
// compatible.
type CompareOp struct {
	BaseNode
	exprMarker
	Left        Expr
	Ops         []string
	Comparators []Expr
}

// NewCompareOp creates a comparison chain node.
func NewCompareOp(left Expr, ops []string, comparators []Expr, loc ...SourceLocation) (*CompareOp, error) {
	if len(ops) == 0 || len(ops) != len(comparators) {
		return nil, asterrors.New(asterrors.KindSyntax,
			"comparison requires one comparator per operator")
	}
	prev := left
	for i, op := range ops {
		if !compareOps[op] {
			return nil, asterrors.Newf(asterrors.KindType, "unknown comparison operator %q", op)
		}
		if !IsCompatible(exprType(prev), exprType(comparators[i])) {
			return nil, asterrors.Newf(asterrors.KindType,
				"operands of %q are not compatible: %s vs %s",
				op, exprType(prev).TypeName(), exprType(comparators[i]).TypeName())
		}
		prev = comparators[i]
	}
	n := &CompareOp{
		BaseNode:    newBase(KindCompareOp, optLoc(loc)),
		Left:        left,
		Ops:         ops,
		Comparators: comparators,
	}
	left.SetParent(n)
	for _, c := range comparators {
		c.SetParent(n)
	}
	return n, nil
}

// Type returns Boolean: comparisons always yield Boolean.
func (n *CompareOp) Type() DataType { return Boolean() }

func (n *CompareOp) String() string { return fmt.Sprintf("CompareOp[%s]", n.Ops[0]) }

// GetStruct returns the structural representation of the node.
func (n *CompareOp) GetStruct(simplified bool) ReprStruct {
	ops := make([]ReprStruct, len(n.Ops))
	comparators := make([]ReprStruct, len(n.Comparators))
	for i, op := range n.Ops {
		ops[i] = op
	}
	for i, c := range n.Comparators {
		comparators[i] = c.GetStruct(simplified)
	}
	key := "COMPARE"
	value := NewDict().
		Set("left", n.Left.GetStruct(simplified)).
		Set("ops", ops).
		Set("comparators", comparators)
	return n.prepareStruct(key, value, simplified)
}

func (n *CompareOp) accept(v Visitor) (string, error) { return v.VisitCompareOp(n) }

// BoolOp applies a binary boolean operator (and, or, xor, nand, nor, xnor).
// Both operands must be Boolean-compatible.
type BoolOp struct {
	BaseNode
	exprMarker
	Op  string
	Lhs Expr
	Rhs Expr
}

// NewBoolOp creates a boolean operator node.
func NewBoolOp(op string, lhs, rhs Expr, loc ...SourceLocation) (*BoolOp, error) {
	if !boolOps[op] {
		return nil, asterrors.Newf(asterrors.KindType, "unknown boolean operator %q", op)
	}
	if err := requireBooleanOperand("left", lhs); err != nil {
		return nil, err
	}
	if err := requireBooleanOperand("right", rhs); err != nil {
		return nil, err
	}
	n := &BoolOp{
		BaseNode: newBase(KindBoolOp, optLoc(loc)),
		Op:       op,
		Lhs:      lhs,
		Rhs:      rhs,
	}
	lhs.SetParent(n)
	rhs.SetParent(n)
	return n, nil
}

// NewAndOp creates an "and" boolean operator node.
func NewAndOp(lhs, rhs Expr, loc ...SourceLocation) (*BoolOp, error) {
	return NewBoolOp("and", lhs, rhs, loc...)
}

// NewOrOp creates an "or" boolean operator node.
func NewOrOp(lhs, rhs Expr, loc ...SourceLocation) (*BoolOp, error) {
	return NewBoolOp("or", lhs, rhs, loc...)
}

// NewXorOp creates a "xor" boolean operator node.
func NewXorOp(lhs, rhs Expr, loc ...SourceLocation) (*BoolOp, error) {
	return NewBoolOp("xor", lhs, rhs, loc...)
}

// Type returns Boolean.
func (n *BoolOp) Type() DataType { return Boolean() }

func (n *BoolOp) String() string { return fmt.Sprintf("BoolOp[%s]", n.Op) }

// GetStruct returns the structural representation of the node.
func (n *BoolOp) GetStruct(simplified bool) ReprStruct {
	key := fmt.Sprintf("BOOL[%s]", n.Op)
	value := NewDict().
		Set("op", n.Op).
		Set("lhs", n.Lhs.GetStruct(simplified)).
		Set("rhs", n.Rhs.GetStruct(simplified))
	return n.prepareStruct(key, value, simplified)
}

func (n *BoolOp) accept(v Visitor) (string, error) { return v.VisitBoolOp(n) }

// NotOp is the unary boolean negation.
type NotOp struct {
	BaseNode
	exprMarker
	Operand Expr
}

// NewNotOp creates a boolean negation node. The operand must be
// Boolean-compatible.
func NewNotOp(operand Expr, loc ...SourceLocation) (*NotOp, error) {
	if err := requireBooleanOperand("single", operand); err != nil {
		return nil, err
	}
	n := &NotOp{BaseNode: newBase(KindNotOp, optLoc(loc)), Operand: operand}
	operand.SetParent(n)
	return n, nil
}

// Type returns Boolean.
func (n *NotOp) Type() DataType { return Boolean() }

func (n *NotOp) String() string { return "BoolOp[not]" }

// GetStruct returns the structural representation of the node.
func (n *NotOp) GetStruct(simplified bool) ReprStruct {
	value := NewDict().Set("operand", n.Operand.GetStruct(simplified))
	return n.prepareStruct("BOOL[not]", value, simplified)
}

func (n *NotOp) accept(v Visitor) (string, error) { return v.VisitNotOp(n) }

// AugAssign is an augmented assignment such as "x += 1". The target must be
// an addressable reference (a Variable), and the underlying binary operator
// must be defined for the target and value types.
type AugAssign struct {
	BaseNode
	stmtMarker
	Op     string
	Target *Variable
	Value  Expr
	typ    DataType
}

// NewAugAssign creates an augmented-assignment node. A non-variable target
// fails with a syntax-kind error.
func NewAugAssign(op string, target Expr, value Expr, loc ...SourceLocation) (*AugAssign, error) {
	baseOp, ok := augAssignOps[op]
	if !ok {
		return nil, asterrors.Newf(asterrors.KindSyntax,
			"unknown augmented assignment operator %q", op)
	}
	variable, ok := target.(*Variable)
	if !ok {
		return nil, asterrors.Newf(asterrors.KindSyntax,
			"augmented assignment target must be a variable, got %s", target.Kind())
	}
	typ, err := resolveBinary(baseOp, exprType(target), exprType(value))
	if err != nil {
		return nil, err
	}
	n := &AugAssign{
		BaseNode: newBase(KindAugAssign, optLoc(loc)),
		Op:       op,
		Target:   variable,
		Value:    value,
		typ:      typ,
	}
	variable.SetParent(n)
	value.SetParent(n)
	return n, nil
}

// Type returns the resolved result type of the underlying operator.
func (n *AugAssign) Type() DataType { return n.typ }

func (n *AugAssign) String() string { return fmt.Sprintf("AugAssign[%s]", n.Op) }

// GetStruct returns the structural representation of the node.
func (n *AugAssign) GetStruct(simplified bool) ReprStruct {
	key := fmt.Sprintf("AUG-ASSIGN[%s]", n.Op)
	value := NewDict().
		Set("op", n.Op).
		Set("target", n.Target.GetStruct(simplified)).
		Set("value", n.Value.GetStruct(simplified))
	return n.prepareStruct(key, value, simplified)
}

func (n *AugAssign) accept(v Visitor) (string, error) { return v.VisitAugAssign(n) }

// WalrusOp is the assignment expression "x := value": it assigns and yields
// the assigned value. The target must be a Variable.
type WalrusOp struct {
	BaseNode
	exprMarker
	Target *Variable
	Value  Expr
}

// NewWalrusOp creates an assignment-expression node. A non-variable target
// fails with a syntax-kind error.
func NewWalrusOp(target Expr, value Expr, loc ...SourceLocation) (*WalrusOp, error) {
	variable, ok := target.(*Variable)
	if !ok {
		return nil, asterrors.Newf(asterrors.KindSyntax,
			"assignment expression target must be a variable, got %s", target.Kind())
	}
	n := &WalrusOp{
		BaseNode: newBase(KindWalrusOp, optLoc(loc)),
		Target:   variable,
		Value:    value,
	}
	variable.SetParent(n)
	value.SetParent(n)
	return n, nil
}

// Type returns the type of the assigned value.
func (n *WalrusOp) Type() DataType { return exprType(n.Value) }

func (n *WalrusOp) String() string { return "WalrusOp[:=]" }

// GetStruct returns the structural representation of the node.
func (n *WalrusOp) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("lhs", n.Target.GetStruct(simplified)).
		Set("rhs", n.Value.GetStruct(simplified))
	return n.prepareStruct("WALRUS[:=]", value, simplified)
}

func (n *WalrusOp) accept(v Visitor) (string, error) { return v.VisitWalrusOp(n) }

// Starred marks an iterable-unpacking expression, as in "*rest".
type Starred struct {
	BaseNode
	exprMarker
	Value Expr
}

// NewStarred creates an unpacking marker node.
func NewStarred(value Expr, loc ...SourceLocation) *Starred {
	n := &Starred{BaseNode: newBase(KindStarred, optLoc(loc)), Value: value}
	value.SetParent(n)
	return n
}

func (n *Starred) String() string { return "Starred[*]" }

// GetStruct returns the structural representation of the node.
func (n *Starred) GetStruct(simplified bool) ReprStruct {
	value := NewDict().Set("value", n.Value.GetStruct(simplified))
	return n.prepareStruct("STARRED[*]", value, simplified)
}

func (n *Starred) accept(v Visitor) (string, error) { return v.VisitStarred(n) }

// TypeCastExpr converts a value to a declared target type. The operand type
// must be compatible with the target.
type TypeCastExpr struct {
	BaseNode
	exprMarker
	Target DataType
	Value  Expr
}

// NewTypeCastExpr creates a cast node, failing with a type-kind error for
// incompatible source and target types.
func NewTypeCastExpr(target DataType, value Expr, loc ...SourceLocation) (*TypeCastExpr, error) {
	if !IsCompatible(target, exprType(value)) {
		return nil, asterrors.Newf(asterrors.KindType,
			"cannot cast %s to %s", exprType(value).TypeName(), target.TypeName())
	}
	n := &TypeCastExpr{
		BaseNode: newBase(KindTypeCastExpr, optLoc(loc)),
		Target:   target,
		Value:    value,
	}
	value.SetParent(n)
	return n, nil
}

// Type returns the declared target type.
func (n *TypeCastExpr) Type() DataType { return n.Target }

func (n *TypeCastExpr) String() string { return fmt.Sprintf("TypeCastExpr[%s]", n.Target.TypeName()) }

// GetStruct returns the structural representation of the node.
func (n *TypeCastExpr) GetStruct(simplified bool) ReprStruct {
	key := fmt.Sprintf("TYPE-CAST[%s]", n.Target.TypeName())
	value := NewDict().
		Set("target-type", n.Target.GetStruct(simplified)).
		Set("value", n.Value.GetStruct(simplified))
	return n.prepareStruct(key, value, simplified)
}

func (n *TypeCastExpr) accept(v Visitor) (string, error) { return v.VisitTypeCastExpr(n) }

// SubscriptExpr indexes or slices a value. Index is set for plain
// subscripts; Lower/Upper/Step describe a slice and may be nil.
type SubscriptExpr struct {
	BaseNode
	exprMarker
	Value Expr
	Index Expr
	Lower Expr
	Upper Expr
	Step  Expr
}

// NewSubscriptExpr creates a plain index subscript.
func NewSubscriptExpr(value, index Expr, loc ...SourceLocation) *SubscriptExpr {
	n := &SubscriptExpr{
		BaseNode: newBase(KindSubscriptExpr, optLoc(loc)),
		Value:    value,
		Index:    index,
	}
	value.SetParent(n)
	index.SetParent(n)
	return n
}

// NewSliceExpr creates a slice subscript; any bound may be nil.
func NewSliceExpr(value, lower, upper, step Expr, loc ...SourceLocation) *SubscriptExpr {
	n := &SubscriptExpr{
		BaseNode: newBase(KindSubscriptExpr, optLoc(loc)),
		Value:    value,
		Lower:    lower,
		Upper:    upper,
		Step:     step,
	}
	value.SetParent(n)
	for _, e := range []Expr{lower, upper, step} {
		if e != nil {
			e.SetParent(n)
		}
	}
	return n
}

func (n *SubscriptExpr) String() string { return "SubscriptExpr" }

// GetStruct returns the structural representation of the node.
func (n *SubscriptExpr) GetStruct(simplified bool) ReprStruct {
	value := NewDict().Set("value", n.Value.GetStruct(simplified))
	if n.Index != nil {
		value.Set("index", n.Index.GetStruct(simplified))
	}
	if n.Lower != nil {
		value.Set("lower", n.Lower.GetStruct(simplified))
	}
	if n.Upper != nil {
		value.Set("upper", n.Upper.GetStruct(simplified))
	}
	if n.Step != nil {
		value.Set("step", n.Step.GetStruct(simplified))
	}
	return n.prepareStruct("SUBSCRIPT", value, simplified)
}

func (n *SubscriptExpr) accept(v Visitor) (string, error) { return v.VisitSubscriptExpr(n) }
