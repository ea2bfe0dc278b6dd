package ast

import (
	"fmt"
	"strings"

	"mercator-hq/astral/pkg/asterrors"
)

// Argument is a named, typed formal parameter with an optional default.
type Argument struct {
	BaseNode
	exprMarker
	Name    string
	ArgType DataType
	Default Expr
}

// NewArgument creates a formal parameter. Default may be nil.
func NewArgument(name string, typ DataType, def Expr, loc ...SourceLocation) *Argument {
	n := &Argument{
		BaseNode: newBase(KindArgument, optLoc(loc)),
		Name:     name,
		ArgType:  typ,
		Default:  def,
	}
	if def != nil {
		def.SetParent(n)
	}
	return n
}

func (n *Argument) String() string {
	return fmt.Sprintf("Argument[%s, %s]", n.Name, n.ArgType.TypeName())
}

// GetStruct returns the structural representation of the node.
func (n *Argument) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("name", n.Name).
		Set("type", n.ArgType.GetStruct(simplified))
	if n.Default != nil {
		value.Set("default", n.Default.GetStruct(simplified))
	}
	return n.prepareStruct(n.String(), value, simplified)
}

func (n *Argument) accept(v Visitor) (string, error) { return v.VisitArgument(n) }

// Arguments is the ordered formal parameter list of a callable.
type Arguments struct {
	BaseNode
	exprMarker
	Args []*Argument
}

// NewArguments creates a parameter list.
func NewArguments(args ...*Argument) *Arguments {
	n := &Arguments{BaseNode: newBase(KindArguments, NoSourceLocation), Args: args}
	for _, a := range args {
		a.SetParent(n)
	}
	return n
}

// Append adds parameters to the end of the list and returns the updated
// length.
func (n *Arguments) Append(args ...*Argument) int {
	for _, a := range args {
		a.SetParent(n)
		n.Args = append(n.Args, a)
	}
	return len(n.Args)
}

// Len returns the number of parameters.
func (n *Arguments) Len() int { return len(n.Args) }

// At returns the parameter at index i. The index must be in [0, Len).
func (n *Arguments) At(i int) (*Argument, error) {
	if i < 0 || i >= len(n.Args) {
		return nil, asterrors.Newf(asterrors.KindIndex,
			"argument index %d out of range [0, %d)", i, len(n.Args))
	}
	return n.Args[i], nil
}

func (n *Arguments) String() string {
	names := make([]string, 0, len(n.Args))
	for _, a := range n.Args {
		names = append(names, a.Name)
	}
	return fmt.Sprintf("Arguments(%s)", strings.Join(names, ", "))
}

// GetStruct returns the structural representation of the node.
func (n *Arguments) GetStruct(simplified bool) ReprStruct {
	value := make([]ReprStruct, 0, len(n.Args))
	for _, a := range n.Args {
		value = append(value, a.GetStruct(simplified))
	}
	return n.prepareStruct("ARGUMENTS", value, simplified)
}

func (n *Arguments) accept(v Visitor) (string, error) { return v.VisitArguments(n) }

// FunctionPrototype is a callable signature: name, parameters and return
// type.
type FunctionPrototype struct {
	BaseNode
	stmtMarker
	Name       string
	Args       *Arguments
	ReturnType DataType
	Visibility VisibilityKind
	Scope      ScopeKind
}

// NewFunctionPrototype creates a signature. Duplicate parameter names are
// rejected.
func NewFunctionPrototype(name string, args *Arguments, returnType DataType, loc ...SourceLocation) (*FunctionPrototype, error) {
	if args == nil {
		args = NewArguments()
	}
	seen := make(map[string]bool, len(args.Args))
	for _, a := range args.Args {
		if seen[a.Name] {
			return nil, asterrors.Newf(asterrors.KindSyntax,
				"duplicate parameter name %q in prototype of %s", a.Name, name)
		}
		seen[a.Name] = true
	}
	n := &FunctionPrototype{
		BaseNode:   newBase(KindFunctionPrototype, optLoc(loc)),
		Name:       name,
		Args:       args,
		ReturnType: returnType,
		Visibility: VisibilityPublic,
		Scope:      ScopeGlobal,
	}
	args.SetParent(n)
	return n, nil
}

func (n *FunctionPrototype) String() string {
	return fmt.Sprintf("FunctionPrototype[%s]", n.Name)
}

// GetStruct returns the structural representation of the node.
func (n *FunctionPrototype) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("name", n.Name).
		Set("args", n.Args.GetStruct(simplified)).
		Set("return-type", n.ReturnType.GetStruct(simplified)).
		Set("visibility", n.Visibility.String()).
		Set("scope", n.Scope.String())
	return n.prepareStruct("PROTOTYPE", value, simplified)
}

func (n *FunctionPrototype) accept(v Visitor) (string, error) {
	return v.VisitFunctionPrototype(n)
}

// FunctionDef is a function definition: a prototype plus a body.
type FunctionDef struct {
	BaseNode
	stmtMarker
	Prototype *FunctionPrototype
	Body      *Block
}

// NewFunctionDef creates a function definition.
func NewFunctionDef(prototype *FunctionPrototype, body *Block, loc ...SourceLocation) *FunctionDef {
	n := &FunctionDef{
		BaseNode:  newBase(KindFunctionDef, optLoc(loc)),
		Prototype: prototype,
		Body:      body,
	}
	prototype.SetParent(n)
	body.SetParent(n)
	return n
}

// Name returns the function name from the prototype.
func (n *FunctionDef) Name() string { return n.Prototype.Name }

// Type returns the function type of the prototype.
func (n *FunctionDef) Type() DataType {
	params := make([]DataType, 0, n.Prototype.Args.Len())
	for _, a := range n.Prototype.Args.Args {
		params = append(params, a.ArgType)
	}
	return NewFunctionType(params, n.Prototype.ReturnType)
}

func (n *FunctionDef) String() string {
	return fmt.Sprintf("FunctionDef[%s]", n.Prototype.Name)
}

// GetStruct returns the structural representation of the node.
func (n *FunctionDef) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("prototype", n.Prototype.GetStruct(simplified)).
		Set("body", n.Body.GetStruct(simplified))
	return n.prepareStruct(fmt.Sprintf("FUNCTION[%s]", n.Prototype.Name), value, simplified)
}

func (n *FunctionDef) accept(v Visitor) (string, error) { return v.VisitFunctionDef(n) }

// FunctionAsyncDef is an asynchronous function definition.
type FunctionAsyncDef struct {
	BaseNode
	stmtMarker
	Prototype *FunctionPrototype
	Body      *Block
}

// NewFunctionAsyncDef creates an async function definition.
func NewFunctionAsyncDef(prototype *FunctionPrototype, body *Block, loc ...SourceLocation) *FunctionAsyncDef {
	n := &FunctionAsyncDef{
		BaseNode:  newBase(KindFunctionAsyncDef, optLoc(loc)),
		Prototype: prototype,
		Body:      body,
	}
	prototype.SetParent(n)
	body.SetParent(n)
	return n
}

// Name returns the function name from the prototype.
func (n *FunctionAsyncDef) Name() string { return n.Prototype.Name }

func (n *FunctionAsyncDef) String() string {
	return fmt.Sprintf("FunctionAsyncDef[%s]", n.Prototype.Name)
}

// GetStruct returns the structural representation of the node.
func (n *FunctionAsyncDef) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("prototype", n.Prototype.GetStruct(simplified)).
		Set("body", n.Body.GetStruct(simplified))
	return n.prepareStruct(fmt.Sprintf("ASYNC-FUNCTION[%s]", n.Prototype.Name), value, simplified)
}

func (n *FunctionAsyncDef) accept(v Visitor) (string, error) {
	return v.VisitFunctionAsyncDef(n)
}

// FunctionReturn returns a value from the enclosing function. Value may be
// nil for a bare return.
type FunctionReturn struct {
	BaseNode
	stmtMarker
	Value Expr
}

// NewFunctionReturn creates a return statement.
func NewFunctionReturn(value Expr, loc ...SourceLocation) *FunctionReturn {
	n := &FunctionReturn{BaseNode: newBase(KindFunctionReturn, optLoc(loc)), Value: value}
	if value != nil {
		value.SetParent(n)
	}
	return n
}

func (n *FunctionReturn) String() string { return "FunctionReturn" }

// GetStruct returns the structural representation of the node.
func (n *FunctionReturn) GetStruct(simplified bool) ReprStruct {
	var value ReprStruct = "return"
	if n.Value != nil {
		value = NewDict().Set("value", n.Value.GetStruct(simplified))
	}
	return n.prepareStruct("RETURN-STMT", value, simplified)
}

func (n *FunctionReturn) accept(v Visitor) (string, error) {
	return v.VisitFunctionReturn(n)
}

// FunctionCall invokes a callee with positional arguments.
type FunctionCall struct {
	BaseNode
	exprMarker
	Callee string
	Args   []Expr
}

// NewFunctionCall creates a call expression.
func NewFunctionCall(callee string, args []Expr, loc ...SourceLocation) *FunctionCall {
	n := &FunctionCall{
		BaseNode: newBase(KindFunctionCall, optLoc(loc)),
		Callee:   callee,
		Args:     args,
	}
	for _, a := range args {
		a.SetParent(n)
	}
	return n
}

func (n *FunctionCall) String() string {
	return fmt.Sprintf("FunctionCall[%s]", n.Callee)
}

// GetStruct returns the structural representation of the node.
func (n *FunctionCall) GetStruct(simplified bool) ReprStruct {
	args := make([]ReprStruct, 0, len(n.Args))
	for _, a := range n.Args {
		args = append(args, a.GetStruct(simplified))
	}
	value := NewDict().
		Set("callee", n.Callee).
		Set("args", args)
	return n.prepareStruct(fmt.Sprintf("FUNCTION-CALL[%s]", n.Callee), value, simplified)
}

func (n *FunctionCall) accept(v Visitor) (string, error) { return v.VisitFunctionCall(n) }

// LambdaExpr is an anonymous single-expression function.
type LambdaExpr struct {
	BaseNode
	exprMarker
	Params []string
	Body   Expr
}

// NewLambdaExpr creates a lambda expression. Duplicate parameter names are
// rejected.
func NewLambdaExpr(params []string, body Expr, loc ...SourceLocation) (*LambdaExpr, error) {
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if seen[p] {
			return nil, asterrors.Newf(asterrors.KindSyntax,
				"duplicate lambda parameter name %q", p)
		}
		seen[p] = true
	}
	n := &LambdaExpr{
		BaseNode: newBase(KindLambdaExpr, optLoc(loc)),
		Params:   params,
		Body:     body,
	}
	body.SetParent(n)
	return n, nil
}

func (n *LambdaExpr) String() string { return "LambdaExpr" }

// GetStruct returns the structural representation of the node.
func (n *LambdaExpr) GetStruct(simplified bool) ReprStruct {
	params := make([]ReprStruct, 0, len(n.Params))
	for _, p := range n.Params {
		params = append(params, p)
	}
	value := NewDict().
		Set("params", params).
		Set("body", n.Body.GetStruct(simplified))
	return n.prepareStruct("LAMBDA-EXPR", value, simplified)
}

func (n *LambdaExpr) accept(v Visitor) (string, error) { return v.VisitLambdaExpr(n) }

// YieldExpr produces a value from a generator. Value may be nil.
type YieldExpr struct {
	BaseNode
	exprMarker
	Value Expr
}

// NewYieldExpr creates a yield expression.
func NewYieldExpr(value Expr, loc ...SourceLocation) *YieldExpr {
	n := &YieldExpr{BaseNode: newBase(KindYieldExpr, optLoc(loc)), Value: value}
	if value != nil {
		value.SetParent(n)
	}
	return n
}

func (n *YieldExpr) String() string { return "YieldExpr" }

// GetStruct returns the structural representation of the node.
func (n *YieldExpr) GetStruct(simplified bool) ReprStruct {
	var value ReprStruct = "yield"
	if n.Value != nil {
		value = NewDict().Set("value", n.Value.GetStruct(simplified))
	}
	return n.prepareStruct("YIELD-EXPR", value, simplified)
}

func (n *YieldExpr) accept(v Visitor) (string, error) { return v.VisitYieldExpr(n) }

// AwaitExpr suspends until an awaitable value resolves.
type AwaitExpr struct {
	BaseNode
	exprMarker
	Value Expr
}

// NewAwaitExpr creates an await expression.
func NewAwaitExpr(value Expr, loc ...SourceLocation) *AwaitExpr {
	n := &AwaitExpr{BaseNode: newBase(KindAwaitExpr, optLoc(loc)), Value: value}
	value.SetParent(n)
	return n
}

func (n *AwaitExpr) String() string { return "AwaitExpr" }

// GetStruct returns the structural representation of the node.
func (n *AwaitExpr) GetStruct(simplified bool) ReprStruct {
	value := NewDict().Set("value", n.Value.GetStruct(simplified))
	return n.prepareStruct("AWAIT-EXPR", value, simplified)
}

func (n *AwaitExpr) accept(v Visitor) (string, error) { return v.VisitAwaitExpr(n) }
