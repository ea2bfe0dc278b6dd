// Package asterrors provides the typed error taxonomy used across astral.
//
// Every failure the tree model reports carries a Kind describing which
// contract was violated:
//
// KindValue: a value outside its declared type's domain (literal overflow,
// zero loop step, malformed date string)
//
// KindType: an operator/operand combination absent from the promotion table
//
// KindSyntax: a structurally invalid construct (augmented-assignment target
// that is not a variable, duplicate default case, duplicate argument name)
//
// KindKey: symbol table redefinition or lookup miss
//
// KindIndex: out-of-range access on an ordered container
//
// KindNotImplemented: a visitor invoked on a variant it does not handle
//
// Errors are created where the violation is detected, eagerly at node
// construction wherever possible, and propagate unchanged to the caller.
// Use IsKind to branch on the category:
//
//	if _, err := ast.NewLiteralInt8(200); asterrors.IsKind(err, asterrors.KindValue) {
//	    // out of range
//	}
package asterrors
