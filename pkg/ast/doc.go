// Package ast provides the typed Abstract Syntax Tree (AST) node model:
// literals, operators, control flow, callables, class and struct
// declarations, and package containers.
//
// Nodes are built through constructors that validate their inputs, so an
// ill-formed tree cannot exist: a LiteralInt8 out of range, a binary
// operator applied to incompatible types, or a loop with a literal zero
// step all fail at construction with a typed error from pkg/asterrors.
//
// # Identity and structure
//
// Every node carries an identity token (Ref) assigned once at construction,
// a source location, an optional comment, and a weak parent link. The
// canonical structural representation is produced by GetStruct: an
// insertion-ordered mapping (Dict) wrapping each node's content and
// metadata. ToJSON and ToYAML serialize that representation byte-stably,
// and FromJSON/FromYAML rebuild an equivalent tree, re-validating every
// value on the way in.
//
//	lit, _ := ast.NewLiteralInt32(42)
//	out, _ := ast.ToJSON(lit)
//	back, _ := ast.FromJSON([]byte(out))
//	ast.Equal(lit, back) // true
//
// The simplified form of GetStruct appends "#<ref>" to every mapping key,
// keeping keys unique among structurally identical siblings.
//
// # Traversal
//
// The variant set is closed: only this package defines node types. Code
// generators and other consumers implement Visitor and dispatch through
// Visit; embedding BaseVisitor supplies a not-implemented default for every
// variant.
//
//	type printer struct{ ast.BaseVisitor }
//
//	func (printer) VisitLiteral(n *ast.Literal) (string, error) {
//	    return n.String(), nil
//	}
//
//	text, err := ast.Visit(printer{}, node)
//
// # Types and promotion
//
// Value-producing nodes expose their result type through TypedExpr.
// Operator constructors resolve result types from a fixed promotion table;
// combinations outside the table are rejected. Type descriptors themselves
// are nodes, so a tree serializes together with its type annotations.
package ast
