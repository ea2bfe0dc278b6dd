package ast

import (
	"mercator-hq/astral/pkg/asterrors"
)

// IfStmt is a conditional statement with an optional else branch.
type IfStmt struct {
	BaseNode
	stmtMarker
	Condition Expr
	Then      *Block
	Else      *Block
}

// NewIfStmt creates a conditional statement. Else may be nil.
func NewIfStmt(condition Expr, then, els *Block, loc ...SourceLocation) (*IfStmt, error) {
	if err := requireBooleanOperand("condition", condition); err != nil {
		return nil, err
	}
	n := &IfStmt{
		BaseNode:  newBase(KindIfStmt, optLoc(loc)),
		Condition: condition,
		Then:      then,
		Else:      els,
	}
	condition.SetParent(n)
	then.SetParent(n)
	if els != nil {
		els.SetParent(n)
	}
	return n, nil
}

func (n *IfStmt) String() string { return "IfStmt" }

// GetStruct returns the structural representation of the node.
func (n *IfStmt) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("condition", n.Condition.GetStruct(simplified)).
		Set("then-block", n.Then.GetStruct(simplified))
	if n.Else != nil {
		value.Set("else-block", n.Else.GetStruct(simplified))
	}
	return n.prepareStruct("IF-STMT", value, simplified)
}

func (n *IfStmt) accept(v Visitor) (string, error) { return v.VisitIfStmt(n) }

// IfExpr is a conditional in expression position. Both branches are
// required.
type IfExpr struct {
	BaseNode
	exprMarker
	Condition Expr
	Then      Expr
	Else      Expr
}

// NewIfExpr creates a conditional expression.
func NewIfExpr(condition, then, els Expr, loc ...SourceLocation) (*IfExpr, error) {
	if err := requireBooleanOperand("condition", condition); err != nil {
		return nil, err
	}
	if then == nil || els == nil {
		return nil, asterrors.New(asterrors.KindSyntax,
			"conditional expression requires both branches")
	}
	n := &IfExpr{
		BaseNode:  newBase(KindIfExpr, optLoc(loc)),
		Condition: condition,
		Then:      then,
		Else:      els,
	}
	condition.SetParent(n)
	then.SetParent(n)
	els.SetParent(n)
	return n, nil
}

// Type returns the common type of the branches, AnyType when they differ.
func (n *IfExpr) Type() DataType {
	tt, et := exprType(n.Then), exprType(n.Else)
	if SameType(tt, et) {
		return tt
	}
	return AnyType()
}

func (n *IfExpr) String() string { return "IfExpr" }

// GetStruct returns the structural representation of the node.
func (n *IfExpr) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("condition", n.Condition.GetStruct(simplified)).
		Set("then-expr", n.Then.GetStruct(simplified)).
		Set("else-expr", n.Else.GetStruct(simplified))
	return n.prepareStruct("IF-EXPR", value, simplified)
}

func (n *IfExpr) accept(v Visitor) (string, error) { return v.VisitIfExpr(n) }

// checkRangeStep rejects a loop step that is a literal zero, which would
// never advance.
func checkRangeStep(step Expr) error {
	lit, ok := step.(*Literal)
	if !ok {
		return nil
	}
	switch v := lit.value.(type) {
	case int64:
		if v == 0 {
			return asterrors.New(asterrors.KindValue, "range loop step must not be zero")
		}
	case uint64:
		if v == 0 {
			return asterrors.New(asterrors.KindValue, "range loop step must not be zero")
		}
	case float64:
		if v == 0 {
			return asterrors.New(asterrors.KindValue, "range loop step must not be zero")
		}
	}
	return nil
}

// ForRangeLoopStmt iterates a variable over [start, end) with a step.
type ForRangeLoopStmt struct {
	BaseNode
	stmtMarker
	Variable *InlineVariableDeclaration
	Start    Expr
	End      Expr
	Step     Expr
	Body     *Block
}

// NewForRangeLoopStmt creates a range loop statement. A literal zero step is
// rejected.
func NewForRangeLoopStmt(variable *InlineVariableDeclaration, start, end, step Expr, body *Block, loc ...SourceLocation) (*ForRangeLoopStmt, error) {
	if err := checkRangeStep(step); err != nil {
		return nil, err
	}
	n := &ForRangeLoopStmt{
		BaseNode: newBase(KindForRangeLoopStmt, optLoc(loc)),
		Variable: variable,
		Start:    start,
		End:      end,
		Step:     step,
		Body:     body,
	}
	variable.SetParent(n)
	start.SetParent(n)
	end.SetParent(n)
	step.SetParent(n)
	body.SetParent(n)
	return n, nil
}

func (n *ForRangeLoopStmt) String() string { return "ForRangeLoopStmt" }

// GetStruct returns the structural representation of the node.
func (n *ForRangeLoopStmt) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("variable", n.Variable.GetStruct(simplified)).
		Set("start", n.Start.GetStruct(simplified)).
		Set("end", n.End.GetStruct(simplified)).
		Set("step", n.Step.GetStruct(simplified)).
		Set("body", n.Body.GetStruct(simplified))
	return n.prepareStruct("FOR-RANGE-LOOP-STMT", value, simplified)
}

func (n *ForRangeLoopStmt) accept(v Visitor) (string, error) {
	return v.VisitForRangeLoopStmt(n)
}

// ForRangeLoopExpr is a range loop in expression position, yielding the
// value of its body per iteration.
type ForRangeLoopExpr struct {
	BaseNode
	exprMarker
	Variable *InlineVariableDeclaration
	Start    Expr
	End      Expr
	Step     Expr
	Body     *Block
}

// NewForRangeLoopExpr creates a range loop expression. A literal zero step
// is rejected.
func NewForRangeLoopExpr(variable *InlineVariableDeclaration, start, end, step Expr, body *Block, loc ...SourceLocation) (*ForRangeLoopExpr, error) {
	if err := checkRangeStep(step); err != nil {
		return nil, err
	}
	n := &ForRangeLoopExpr{
		BaseNode: newBase(KindForRangeLoopExpr, optLoc(loc)),
		Variable: variable,
		Start:    start,
		End:      end,
		Step:     step,
		Body:     body,
	}
	variable.SetParent(n)
	start.SetParent(n)
	end.SetParent(n)
	step.SetParent(n)
	body.SetParent(n)
	return n, nil
}

func (n *ForRangeLoopExpr) String() string { return "ForRangeLoopExpr" }

// GetStruct returns the structural representation of the node.
func (n *ForRangeLoopExpr) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("variable", n.Variable.GetStruct(simplified)).
		Set("start", n.Start.GetStruct(simplified)).
		Set("end", n.End.GetStruct(simplified)).
		Set("step", n.Step.GetStruct(simplified)).
		Set("body", n.Body.GetStruct(simplified))
	return n.prepareStruct("FOR-RANGE-LOOP-EXPR", value, simplified)
}

func (n *ForRangeLoopExpr) accept(v Visitor) (string, error) {
	return v.VisitForRangeLoopExpr(n)
}

// ForCountLoopStmt is a C-style counted loop with initializer, condition and
// update clauses.
type ForCountLoopStmt struct {
	BaseNode
	stmtMarker
	Initializer *InlineVariableDeclaration
	Condition   Expr
	Update      Expr
	Body        *Block
}

// NewForCountLoopStmt creates a counted loop statement.
func NewForCountLoopStmt(initializer *InlineVariableDeclaration, condition, update Expr, body *Block, loc ...SourceLocation) (*ForCountLoopStmt, error) {
	if err := requireBooleanOperand("condition", condition); err != nil {
		return nil, err
	}
	n := &ForCountLoopStmt{
		BaseNode:    newBase(KindForCountLoopStmt, optLoc(loc)),
		Initializer: initializer,
		Condition:   condition,
		Update:      update,
		Body:        body,
	}
	initializer.SetParent(n)
	condition.SetParent(n)
	update.SetParent(n)
	body.SetParent(n)
	return n, nil
}

func (n *ForCountLoopStmt) String() string { return "ForCountLoopStmt" }

// GetStruct returns the structural representation of the node.
func (n *ForCountLoopStmt) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("initializer", n.Initializer.GetStruct(simplified)).
		Set("condition", n.Condition.GetStruct(simplified)).
		Set("update", n.Update.GetStruct(simplified)).
		Set("body", n.Body.GetStruct(simplified))
	return n.prepareStruct("FOR-COUNT-LOOP-STMT", value, simplified)
}

func (n *ForCountLoopStmt) accept(v Visitor) (string, error) {
	return v.VisitForCountLoopStmt(n)
}

// ForCountLoopExpr is a counted loop in expression position.
type ForCountLoopExpr struct {
	BaseNode
	exprMarker
	Initializer *InlineVariableDeclaration
	Condition   Expr
	Update      Expr
	Body        *Block
}

// NewForCountLoopExpr creates a counted loop expression.
func NewForCountLoopExpr(initializer *InlineVariableDeclaration, condition, update Expr, body *Block, loc ...SourceLocation) (*ForCountLoopExpr, error) {
	if err := requireBooleanOperand("condition", condition); err != nil {
		return nil, err
	}
	n := &ForCountLoopExpr{
		BaseNode:    newBase(KindForCountLoopExpr, optLoc(loc)),
		Initializer: initializer,
		Condition:   condition,
		Update:      update,
		Body:        body,
	}
	initializer.SetParent(n)
	condition.SetParent(n)
	update.SetParent(n)
	body.SetParent(n)
	return n, nil
}

func (n *ForCountLoopExpr) String() string { return "ForCountLoopExpr" }

// GetStruct returns the structural representation of the node.
func (n *ForCountLoopExpr) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("initializer", n.Initializer.GetStruct(simplified)).
		Set("condition", n.Condition.GetStruct(simplified)).
		Set("update", n.Update.GetStruct(simplified)).
		Set("body", n.Body.GetStruct(simplified))
	return n.prepareStruct("FOR-COUNT-LOOP-EXPR", value, simplified)
}

func (n *ForCountLoopExpr) accept(v Visitor) (string, error) {
	return v.VisitForCountLoopExpr(n)
}

// WhileStmt repeats its body while the condition holds.
type WhileStmt struct {
	BaseNode
	stmtMarker
	Condition Expr
	Body      *Block
}

// NewWhileStmt creates a while statement.
func NewWhileStmt(condition Expr, body *Block, loc ...SourceLocation) (*WhileStmt, error) {
	if err := requireBooleanOperand("condition", condition); err != nil {
		return nil, err
	}
	n := &WhileStmt{
		BaseNode:  newBase(KindWhileStmt, optLoc(loc)),
		Condition: condition,
		Body:      body,
	}
	condition.SetParent(n)
	body.SetParent(n)
	return n, nil
}

func (n *WhileStmt) String() string { return "WhileStmt" }

// GetStruct returns the structural representation of the node.
func (n *WhileStmt) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("condition", n.Condition.GetStruct(simplified)).
		Set("body", n.Body.GetStruct(simplified))
	return n.prepareStruct("WHILE-STMT", value, simplified)
}

func (n *WhileStmt) accept(v Visitor) (string, error) { return v.VisitWhileStmt(n) }

// WhileExpr is a while loop in expression position.
type WhileExpr struct {
	BaseNode
	exprMarker
	Condition Expr
	Body      *Block
}

// NewWhileExpr creates a while expression.
func NewWhileExpr(condition Expr, body *Block, loc ...SourceLocation) (*WhileExpr, error) {
	if err := requireBooleanOperand("condition", condition); err != nil {
		return nil, err
	}
	n := &WhileExpr{
		BaseNode:  newBase(KindWhileExpr, optLoc(loc)),
		Condition: condition,
		Body:      body,
	}
	condition.SetParent(n)
	body.SetParent(n)
	return n, nil
}

func (n *WhileExpr) String() string { return "WhileExpr" }

// GetStruct returns the structural representation of the node.
func (n *WhileExpr) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("condition", n.Condition.GetStruct(simplified)).
		Set("body", n.Body.GetStruct(simplified))
	return n.prepareStruct("WHILE-EXPR", value, simplified)
}

func (n *WhileExpr) accept(v Visitor) (string, error) { return v.VisitWhileExpr(n) }

// DoWhileStmt runs its body once and repeats while the condition holds.
type DoWhileStmt struct {
	BaseNode
	stmtMarker
	Body      *Block
	Condition Expr
}

// NewDoWhileStmt creates a do-while statement.
func NewDoWhileStmt(body *Block, condition Expr, loc ...SourceLocation) (*DoWhileStmt, error) {
	if err := requireBooleanOperand("condition", condition); err != nil {
		return nil, err
	}
	n := &DoWhileStmt{
		BaseNode:  newBase(KindDoWhileStmt, optLoc(loc)),
		Body:      body,
		Condition: condition,
	}
	body.SetParent(n)
	condition.SetParent(n)
	return n, nil
}

func (n *DoWhileStmt) String() string { return "DoWhileStmt" }

// GetStruct returns the structural representation of the node.
func (n *DoWhileStmt) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("body", n.Body.GetStruct(simplified)).
		Set("condition", n.Condition.GetStruct(simplified))
	return n.prepareStruct("DO-WHILE-STMT", value, simplified)
}

func (n *DoWhileStmt) accept(v Visitor) (string, error) { return v.VisitDoWhileStmt(n) }

// CaseStmt is a single arm of a switch. A nil condition marks the default
// arm.
type CaseStmt struct {
	BaseNode
	stmtMarker
	Condition Expr
	Body      *Block
}

// NewCaseStmt creates a switch arm. Condition nil means default.
func NewCaseStmt(condition Expr, body *Block, loc ...SourceLocation) *CaseStmt {
	n := &CaseStmt{
		BaseNode:  newBase(KindCaseStmt, optLoc(loc)),
		Condition: condition,
		Body:      body,
	}
	if condition != nil {
		condition.SetParent(n)
	}
	body.SetParent(n)
	return n
}

// IsDefault reports whether this arm is the default arm.
func (n *CaseStmt) IsDefault() bool { return n.Condition == nil }

func (n *CaseStmt) String() string { return "CaseStmt" }

// GetStruct returns the structural representation of the node.
func (n *CaseStmt) GetStruct(simplified bool) ReprStruct {
	value := NewDict()
	if n.Condition != nil {
		value.Set("condition", n.Condition.GetStruct(simplified))
	} else {
		value.Set("default", true)
	}
	value.Set("body", n.Body.GetStruct(simplified))
	return n.prepareStruct("CASE-STMT", value, simplified)
}

func (n *CaseStmt) accept(v Visitor) (string, error) { return v.VisitCaseStmt(n) }

// SwitchStmt selects among case arms on a subject value. At most one arm
// may be the default.
type SwitchStmt struct {
	BaseNode
	stmtMarker
	Subject Expr
	Cases   []*CaseStmt
}

// NewSwitchStmt creates a switch statement. A second default arm is
// rejected.
func NewSwitchStmt(subject Expr, cases []*CaseStmt, loc ...SourceLocation) (*SwitchStmt, error) {
	defaults := 0
	for _, c := range cases {
		if c.IsDefault() {
			defaults++
		}
	}
	if defaults > 1 {
		return nil, asterrors.New(asterrors.KindSyntax,
			"switch statement allows at most one default case")
	}
	n := &SwitchStmt{
		BaseNode: newBase(KindSwitchStmt, optLoc(loc)),
		Subject:  subject,
		Cases:    cases,
	}
	subject.SetParent(n)
	for _, c := range cases {
		c.SetParent(n)
	}
	return n, nil
}

func (n *SwitchStmt) String() string { return "SwitchStmt" }

// GetStruct returns the structural representation of the node.
func (n *SwitchStmt) GetStruct(simplified bool) ReprStruct {
	cases := make([]ReprStruct, 0, len(n.Cases))
	for _, c := range n.Cases {
		cases = append(cases, c.GetStruct(simplified))
	}
	value := NewDict().
		Set("subject", n.Subject.GetStruct(simplified)).
		Set("cases", cases)
	return n.prepareStruct("SWITCH-STMT", value, simplified)
}

func (n *SwitchStmt) accept(v Visitor) (string, error) { return v.VisitSwitchStmt(n) }

// BreakStmt exits the innermost enclosing loop.
type BreakStmt struct {
	BaseNode
	stmtMarker
}

// NewBreakStmt creates a break statement.
func NewBreakStmt(loc ...SourceLocation) *BreakStmt {
	return &BreakStmt{BaseNode: newBase(KindBreakStmt, optLoc(loc))}
}

func (n *BreakStmt) String() string { return "BreakStmt" }

// GetStruct returns the structural representation of the node.
func (n *BreakStmt) GetStruct(simplified bool) ReprStruct {
	return n.prepareStruct("BREAK-STMT", "break", simplified)
}

func (n *BreakStmt) accept(v Visitor) (string, error) { return v.VisitBreakStmt(n) }

// ContinueStmt advances the innermost enclosing loop to its next iteration.
type ContinueStmt struct {
	BaseNode
	stmtMarker
}

// NewContinueStmt creates a continue statement.
func NewContinueStmt(loc ...SourceLocation) *ContinueStmt {
	return &ContinueStmt{BaseNode: newBase(KindContinueStmt, optLoc(loc))}
}

func (n *ContinueStmt) String() string { return "ContinueStmt" }

// GetStruct returns the structural representation of the node.
func (n *ContinueStmt) GetStruct(simplified bool) ReprStruct {
	return n.prepareStruct("CONTINUE-STMT", "continue", simplified)
}

func (n *ContinueStmt) accept(v Visitor) (string, error) { return v.VisitContinueStmt(n) }
