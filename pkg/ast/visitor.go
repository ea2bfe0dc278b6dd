package ast

import (
	"mercator-hq/astral/pkg/asterrors"
)

// Visitor dispatches over every node variant. The variant set is closed:
// only types in this package satisfy AST, so a generator implementing
// Visitor covers every tree it can be handed. Each method returns the
// rendered text for the node.
//
// Embed BaseVisitor to get a not-implemented default for every variant and
// override only the ones a generator supports.
type Visitor interface {
	VisitScalarType(n *ScalarType) (string, error)
	VisitListType(n *ListType) (string, error)
	VisitSetType(n *SetType) (string, error)
	VisitMapType(n *MapType) (string, error)
	VisitTupleType(n *TupleType) (string, error)
	VisitStructType(n *StructType) (string, error)
	VisitEnumType(n *EnumType) (string, error)
	VisitFunctionType(n *FunctionType) (string, error)

	VisitLiteral(n *Literal) (string, error)
	VisitLiteralNone(n *LiteralNone) (string, error)
	VisitLiteralList(n *LiteralList) (string, error)
	VisitLiteralSet(n *LiteralSet) (string, error)
	VisitLiteralTuple(n *LiteralTuple) (string, error)
	VisitLiteralMap(n *LiteralMap) (string, error)

	VisitUnaryOp(n *UnaryOp) (string, error)
	VisitBinaryOp(n *BinaryOp) (string, error)
	VisitCompareOp(n *CompareOp) (string, error)
	VisitBoolOp(n *BoolOp) (string, error)
	VisitNotOp(n *NotOp) (string, error)
	VisitAugAssign(n *AugAssign) (string, error)
	VisitWalrusOp(n *WalrusOp) (string, error)
	VisitStarred(n *Starred) (string, error)
	VisitTypeCastExpr(n *TypeCastExpr) (string, error)
	VisitSubscriptExpr(n *SubscriptExpr) (string, error)

	VisitIdentifier(n *Identifier) (string, error)
	VisitVariable(n *Variable) (string, error)
	VisitVariableDeclaration(n *VariableDeclaration) (string, error)
	VisitInlineVariableDeclaration(n *InlineVariableDeclaration) (string, error)
	VisitVariableAssignment(n *VariableAssignment) (string, error)

	VisitBlock(n *Block) (string, error)
	VisitIfStmt(n *IfStmt) (string, error)
	VisitIfExpr(n *IfExpr) (string, error)
	VisitForRangeLoopStmt(n *ForRangeLoopStmt) (string, error)
	VisitForRangeLoopExpr(n *ForRangeLoopExpr) (string, error)
	VisitForCountLoopStmt(n *ForCountLoopStmt) (string, error)
	VisitForCountLoopExpr(n *ForCountLoopExpr) (string, error)
	VisitWhileStmt(n *WhileStmt) (string, error)
	VisitWhileExpr(n *WhileExpr) (string, error)
	VisitDoWhileStmt(n *DoWhileStmt) (string, error)
	VisitSwitchStmt(n *SwitchStmt) (string, error)
	VisitCaseStmt(n *CaseStmt) (string, error)
	VisitBreakStmt(n *BreakStmt) (string, error)
	VisitContinueStmt(n *ContinueStmt) (string, error)

	VisitComprehensionClause(n *ComprehensionClause) (string, error)
	VisitListComprehension(n *ListComprehension) (string, error)
	VisitSetComprehension(n *SetComprehension) (string, error)
	VisitDictComprehension(n *DictComprehension) (string, error)
	VisitGeneratorExpr(n *GeneratorExpr) (string, error)

	VisitThrowStmt(n *ThrowStmt) (string, error)
	VisitCatchHandlerStmt(n *CatchHandlerStmt) (string, error)
	VisitExceptionHandlerStmt(n *ExceptionHandlerStmt) (string, error)
	VisitFinallyHandlerStmt(n *FinallyHandlerStmt) (string, error)

	VisitArgument(n *Argument) (string, error)
	VisitArguments(n *Arguments) (string, error)
	VisitFunctionPrototype(n *FunctionPrototype) (string, error)
	VisitFunctionDef(n *FunctionDef) (string, error)
	VisitFunctionAsyncDef(n *FunctionAsyncDef) (string, error)
	VisitFunctionReturn(n *FunctionReturn) (string, error)
	VisitFunctionCall(n *FunctionCall) (string, error)
	VisitLambdaExpr(n *LambdaExpr) (string, error)
	VisitYieldExpr(n *YieldExpr) (string, error)
	VisitAwaitExpr(n *AwaitExpr) (string, error)

	VisitClassDeclStmt(n *ClassDeclStmt) (string, error)
	VisitClassDefStmt(n *ClassDefStmt) (string, error)
	VisitStructDeclStmt(n *StructDeclStmt) (string, error)
	VisitStructDefStmt(n *StructDefStmt) (string, error)
	VisitEnumDeclStmt(n *EnumDeclStmt) (string, error)

	VisitAliasExpr(n *AliasExpr) (string, error)
	VisitImportStmt(n *ImportStmt) (string, error)
	VisitImportFromStmt(n *ImportFromStmt) (string, error)
	VisitModule(n *Module) (string, error)
	VisitPackage(n *Package) (string, error)
	VisitTarget(n *Target) (string, error)
	VisitProgram(n *Program) (string, error)
}

// Visit dispatches node to the matching method of v.
func Visit(v Visitor, node AST) (string, error) {
	return node.accept(v)
}

func notImplemented(node AST) (string, error) {
	return "", asterrors.Newf(asterrors.KindNotImplemented,
		"no visit method implemented for %s", node.Kind())
}

// BaseVisitor implements Visitor with a not-implemented error for every
// variant.
type BaseVisitor struct{}

var _ Visitor = BaseVisitor{}

func (BaseVisitor) VisitScalarType(n *ScalarType) (string, error)     { return notImplemented(n) }
func (BaseVisitor) VisitListType(n *ListType) (string, error)         { return notImplemented(n) }
func (BaseVisitor) VisitSetType(n *SetType) (string, error)           { return notImplemented(n) }
func (BaseVisitor) VisitMapType(n *MapType) (string, error)           { return notImplemented(n) }
func (BaseVisitor) VisitTupleType(n *TupleType) (string, error)       { return notImplemented(n) }
func (BaseVisitor) VisitStructType(n *StructType) (string, error)     { return notImplemented(n) }
func (BaseVisitor) VisitEnumType(n *EnumType) (string, error)         { return notImplemented(n) }
func (BaseVisitor) VisitFunctionType(n *FunctionType) (string, error) { return notImplemented(n) }

func (BaseVisitor) VisitLiteral(n *Literal) (string, error)           { return notImplemented(n) }
func (BaseVisitor) VisitLiteralNone(n *LiteralNone) (string, error)   { return notImplemented(n) }
func (BaseVisitor) VisitLiteralList(n *LiteralList) (string, error)   { return notImplemented(n) }
func (BaseVisitor) VisitLiteralSet(n *LiteralSet) (string, error)     { return notImplemented(n) }
func (BaseVisitor) VisitLiteralTuple(n *LiteralTuple) (string, error) { return notImplemented(n) }
func (BaseVisitor) VisitLiteralMap(n *LiteralMap) (string, error)     { return notImplemented(n) }

func (BaseVisitor) VisitUnaryOp(n *UnaryOp) (string, error)             { return notImplemented(n) }
func (BaseVisitor) VisitBinaryOp(n *BinaryOp) (string, error)           { return notImplemented(n) }
func (BaseVisitor) VisitCompareOp(n *CompareOp) (string, error)         { return notImplemented(n) }
func (BaseVisitor) VisitBoolOp(n *BoolOp) (string, error)               { return notImplemented(n) }
func (BaseVisitor) VisitNotOp(n *NotOp) (string, error)                 { return notImplemented(n) }
func (BaseVisitor) VisitAugAssign(n *AugAssign) (string, error)         { return notImplemented(n) }
func (BaseVisitor) VisitWalrusOp(n *WalrusOp) (string, error)           { return notImplemented(n) }
func (BaseVisitor) VisitStarred(n *Starred) (string, error)             { return notImplemented(n) }
func (BaseVisitor) VisitTypeCastExpr(n *TypeCastExpr) (string, error)   { return notImplemented(n) }
func (BaseVisitor) VisitSubscriptExpr(n *SubscriptExpr) (string, error) { return notImplemented(n) }

func (BaseVisitor) VisitIdentifier(n *Identifier) (string, error) { return notImplemented(n) }
func (BaseVisitor) VisitVariable(n *Variable) (string, error)     { return notImplemented(n) }
func (BaseVisitor) VisitVariableDeclaration(n *VariableDeclaration) (string, error) {
	return notImplemented(n)
}
func (BaseVisitor) VisitInlineVariableDeclaration(n *InlineVariableDeclaration) (string, error) {
	return notImplemented(n)
}
func (BaseVisitor) VisitVariableAssignment(n *VariableAssignment) (string, error) {
	return notImplemented(n)
}

func (BaseVisitor) VisitBlock(n *Block) (string, error)   { return notImplemented(n) }
func (BaseVisitor) VisitIfStmt(n *IfStmt) (string, error) { return notImplemented(n) }
func (BaseVisitor) VisitIfExpr(n *IfExpr) (string, error) { return notImplemented(n) }
func (BaseVisitor) VisitForRangeLoopStmt(n *ForRangeLoopStmt) (string, error) {
	return notImplemented(n)
}
func (BaseVisitor) VisitForRangeLoopExpr(n *ForRangeLoopExpr) (string, error) {
	return notImplemented(n)
}
func (BaseVisitor) VisitForCountLoopStmt(n *ForCountLoopStmt) (string, error) {
	return notImplemented(n)
}
func (BaseVisitor) VisitForCountLoopExpr(n *ForCountLoopExpr) (string, error) {
	return notImplemented(n)
}
func (BaseVisitor) VisitWhileStmt(n *WhileStmt) (string, error)       { return notImplemented(n) }
func (BaseVisitor) VisitWhileExpr(n *WhileExpr) (string, error)       { return notImplemented(n) }
func (BaseVisitor) VisitDoWhileStmt(n *DoWhileStmt) (string, error)   { return notImplemented(n) }
func (BaseVisitor) VisitSwitchStmt(n *SwitchStmt) (string, error)     { return notImplemented(n) }
func (BaseVisitor) VisitCaseStmt(n *CaseStmt) (string, error)         { return notImplemented(n) }
func (BaseVisitor) VisitBreakStmt(n *BreakStmt) (string, error)       { return notImplemented(n) }
func (BaseVisitor) VisitContinueStmt(n *ContinueStmt) (string, error) { return notImplemented(n) }

func (BaseVisitor) VisitComprehensionClause(n *ComprehensionClause) (string, error) {
	return notImplemented(n)
}
func (BaseVisitor) VisitListComprehension(n *ListComprehension) (string, error) {
	return notImplemented(n)
}
func (BaseVisitor) VisitSetComprehension(n *SetComprehension) (string, error) {
	return notImplemented(n)
}
func (BaseVisitor) VisitDictComprehension(n *DictComprehension) (string, error) {
	return notImplemented(n)
}
func (BaseVisitor) VisitGeneratorExpr(n *GeneratorExpr) (string, error) { return notImplemented(n) }

func (BaseVisitor) VisitThrowStmt(n *ThrowStmt) (string, error) { return notImplemented(n) }
func (BaseVisitor) VisitCatchHandlerStmt(n *CatchHandlerStmt) (string, error) {
	return notImplemented(n)
}
func (BaseVisitor) VisitExceptionHandlerStmt(n *ExceptionHandlerStmt) (string, error) {
	return notImplemented(n)
}
func (BaseVisitor) VisitFinallyHandlerStmt(n *FinallyHandlerStmt) (string, error) {
	return notImplemented(n)
}

func (BaseVisitor) VisitArgument(n *Argument) (string, error)   { return notImplemented(n) }
func (BaseVisitor) VisitArguments(n *Arguments) (string, error) { return notImplemented(n) }
func (BaseVisitor) VisitFunctionPrototype(n *FunctionPrototype) (string, error) {
	return notImplemented(n)
}
func (BaseVisitor) VisitFunctionDef(n *FunctionDef) (string, error) { return notImplemented(n) }
func (BaseVisitor) VisitFunctionAsyncDef(n *FunctionAsyncDef) (string, error) {
	return notImplemented(n)
}
func (BaseVisitor) VisitFunctionReturn(n *FunctionReturn) (string, error) {
	return notImplemented(n)
}
func (BaseVisitor) VisitFunctionCall(n *FunctionCall) (string, error) { return notImplemented(n) }
func (BaseVisitor) VisitLambdaExpr(n *LambdaExpr) (string, error)     { return notImplemented(n) }
func (BaseVisitor) VisitYieldExpr(n *YieldExpr) (string, error)       { return notImplemented(n) }
func (BaseVisitor) VisitAwaitExpr(n *AwaitExpr) (string, error)       { return notImplemented(n) }

func (BaseVisitor) VisitClassDeclStmt(n *ClassDeclStmt) (string, error) { return notImplemented(n) }
func (BaseVisitor) VisitClassDefStmt(n *ClassDefStmt) (string, error)   { return notImplemented(n) }
func (BaseVisitor) VisitStructDeclStmt(n *StructDeclStmt) (string, error) {
	return notImplemented(n)
}
func (BaseVisitor) VisitStructDefStmt(n *StructDefStmt) (string, error) { return notImplemented(n) }
func (BaseVisitor) VisitEnumDeclStmt(n *EnumDeclStmt) (string, error)   { return notImplemented(n) }

func (BaseVisitor) VisitAliasExpr(n *AliasExpr) (string, error)   { return notImplemented(n) }
func (BaseVisitor) VisitImportStmt(n *ImportStmt) (string, error) { return notImplemented(n) }
func (BaseVisitor) VisitImportFromStmt(n *ImportFromStmt) (string, error) {
	return notImplemented(n)
}
func (BaseVisitor) VisitModule(n *Module) (string, error)   { return notImplemented(n) }
func (BaseVisitor) VisitPackage(n *Package) (string, error) { return notImplemented(n) }
func (BaseVisitor) VisitTarget(n *Target) (string, error)   { return notImplemented(n) }
func (BaseVisitor) VisitProgram(n *Program) (string, error) { return notImplemented(n) }
