package ast

// ThrowStmt raises an exception. Exception may be nil for a bare re-raise
// inside a handler.
type ThrowStmt struct {
	BaseNode
	stmtMarker
	Exception Expr
}

// NewThrowStmt creates a throw statement.
func NewThrowStmt(exception Expr, loc ...SourceLocation) *ThrowStmt {
	n := &ThrowStmt{BaseNode: newBase(KindThrowStmt, optLoc(loc)), Exception: exception}
	if exception != nil {
		exception.SetParent(n)
	}
	return n
}

func (n *ThrowStmt) String() string { return "ThrowStmt" }

// GetStruct returns the structural representation of the node.
func (n *ThrowStmt) GetStruct(simplified bool) ReprStruct {
	var value ReprStruct = "throw"
	if n.Exception != nil {
		value = NewDict().Set("exception", n.Exception.GetStruct(simplified))
	}
	return n.prepareStruct("THROW-STMT", value, simplified)
}

func (n *ThrowStmt) accept(v Visitor) (string, error) { return v.VisitThrowStmt(n) }

// CatchHandlerStmt handles a set of exception types. Types nil catches
// everything; Name may be empty when the caught value is unused.
type CatchHandlerStmt struct {
	BaseNode
	stmtMarker
	Types []Expr
	Name  string
	Body  *Block
}

// NewCatchHandlerStmt creates a catch handler.
func NewCatchHandlerStmt(types []Expr, name string, body *Block, loc ...SourceLocation) *CatchHandlerStmt {
	n := &CatchHandlerStmt{
		BaseNode: newBase(KindCatchHandlerStmt, optLoc(loc)),
		Types:    types,
		Name:     name,
		Body:     body,
	}
	for _, t := range types {
		t.SetParent(n)
	}
	body.SetParent(n)
	return n
}

func (n *CatchHandlerStmt) String() string { return "CatchHandlerStmt" }

// GetStruct returns the structural representation of the node.
func (n *CatchHandlerStmt) GetStruct(simplified bool) ReprStruct {
	value := NewDict()
	if len(n.Types) > 0 {
		types := make([]ReprStruct, 0, len(n.Types))
		for _, t := range n.Types {
			types = append(types, t.GetStruct(simplified))
		}
		value.Set("types", types)
	}
	if n.Name != "" {
		value.Set("name", n.Name)
	}
	value.Set("body", n.Body.GetStruct(simplified))
	return n.prepareStruct("CATCH-HANDLER-STMT", value, simplified)
}

func (n *CatchHandlerStmt) accept(v Visitor) (string, error) {
	return v.VisitCatchHandlerStmt(n)
}

// FinallyHandlerStmt is the block that always runs after a protected body.
type FinallyHandlerStmt struct {
	BaseNode
	stmtMarker
	Body *Block
}

// NewFinallyHandlerStmt creates a finally handler.
func NewFinallyHandlerStmt(body *Block, loc ...SourceLocation) *FinallyHandlerStmt {
	n := &FinallyHandlerStmt{BaseNode: newBase(KindFinallyHandlerStmt, optLoc(loc)), Body: body}
	body.SetParent(n)
	return n
}

func (n *FinallyHandlerStmt) String() string { return "FinallyHandlerStmt" }

// GetStruct returns the structural representation of the node.
func (n *FinallyHandlerStmt) GetStruct(simplified bool) ReprStruct {
	value := NewDict().Set("body", n.Body.GetStruct(simplified))
	return n.prepareStruct("FINALLY-STMT", value, simplified)
}

func (n *FinallyHandlerStmt) accept(v Visitor) (string, error) {
	return v.VisitFinallyHandlerStmt(n)
}

// ExceptionHandlerStmt is a protected body with catch handlers and an
// optional finally handler.
type ExceptionHandlerStmt struct {
	BaseNode
	stmtMarker
	Body     *Block
	Handlers []*CatchHandlerStmt
	Finally  *FinallyHandlerStmt
}

// NewExceptionHandlerStmt creates a try statement. Finally may be nil.
func NewExceptionHandlerStmt(body *Block, handlers []*CatchHandlerStmt, finally *FinallyHandlerStmt, loc ...SourceLocation) *ExceptionHandlerStmt {
	n := &ExceptionHandlerStmt{
		BaseNode: newBase(KindExceptionHandlerStmt, optLoc(loc)),
		Body:     body,
		Handlers: handlers,
		Finally:  finally,
	}
	body.SetParent(n)
	for _, h := range handlers {
		h.SetParent(n)
	}
	if finally != nil {
		finally.SetParent(n)
	}
	return n
}

func (n *ExceptionHandlerStmt) String() string { return "ExceptionHandlerStmt" }

// GetStruct returns the structural representation of the node.
func (n *ExceptionHandlerStmt) GetStruct(simplified bool) ReprStruct {
	value := NewDict().Set("body", n.Body.GetStruct(simplified))
	if len(n.Handlers) > 0 {
		handlers := make([]ReprStruct, 0, len(n.Handlers))
		for _, h := range n.Handlers {
			handlers = append(handlers, h.GetStruct(simplified))
		}
		value.Set("handlers", handlers)
	}
	if n.Finally != nil {
		value.Set("finally", n.Finally.GetStruct(simplified))
	}
	return n.prepareStruct("EXCEPTION-HANDLER-STMT", value, simplified)
}

func (n *ExceptionHandlerStmt) accept(v Visitor) (string, error) {
	return v.VisitExceptionHandlerStmt(n)
}
