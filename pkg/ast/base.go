package ast

import (
	"fmt"

	"github.com/google/uuid"
)

// SourceLocation records where a node came from in the original source.
// Line and column are 1-based; NoSourceLocation marks synthetic nodes.
type SourceLocation struct {
	Line int
	Col  int
}

// NoSourceLocation is the location of nodes built without source text.
var NoSourceLocation = SourceLocation{Line: -1, Col: -1}

// String returns a human-readable representation of the location.
func (l SourceLocation) String() string {
	return fmt.Sprintf("{line: %d, col: %d}", l.Line, l.Col)
}

// IsValid returns true if the location carries real line information.
func (l SourceLocation) IsValid() bool {
	return l.Line > 0
}

// ASTKind identifies the concrete variant of a node. It is stored in the
// serialized metadata and drives reconstruction in FromJSON/FromYAML.
type ASTKind string

const (
	// data types
	KindScalarType   ASTKind = "ScalarType"
	KindListType     ASTKind = "ListType"
	KindSetType      ASTKind = "SetType"
	KindMapType      ASTKind = "MapType"
	KindTupleType    ASTKind = "TupleType"
	KindFunctionType ASTKind = "FunctionType"
	KindStructType   ASTKind = "StructType"
	KindEnumType     ASTKind = "EnumType"

	// literals
	KindLiteral      ASTKind = "Literal"
	KindLiteralList  ASTKind = "LiteralList"
	KindLiteralSet   ASTKind = "LiteralSet"
	KindLiteralMap   ASTKind = "LiteralMap"
	KindLiteralTuple ASTKind = "LiteralTuple"
	KindLiteralNone  ASTKind = "LiteralNone"

	// operators
	KindUnaryOp       ASTKind = "UnaryOp"
	KindBinaryOp      ASTKind = "BinaryOp"
	KindCompareOp     ASTKind = "CompareOp"
	KindBoolOp        ASTKind = "BoolOp"
	KindNotOp         ASTKind = "NotOp"
	KindAugAssign     ASTKind = "AugAssign"
	KindWalrusOp      ASTKind = "WalrusOp"
	KindStarred       ASTKind = "Starred"
	KindTypeCastExpr  ASTKind = "TypeCastExpr"
	KindSubscriptExpr ASTKind = "SubscriptExpr"

	// variables
	KindIdentifier                ASTKind = "Identifier"
	KindVariable                  ASTKind = "Variable"
	KindVariableDeclaration       ASTKind = "VariableDeclaration"
	KindInlineVariableDeclaration ASTKind = "InlineVariableDeclaration"
	KindVariableAssignment        ASTKind = "VariableAssignment"

	// control flow
	KindBlock            ASTKind = "Block"
	KindIfStmt           ASTKind = "IfStmt"
	KindIfExpr           ASTKind = "IfExpr"
	KindForRangeLoopStmt ASTKind = "ForRangeLoopStmt"
	KindForRangeLoopExpr ASTKind = "ForRangeLoopExpr"
	KindForCountLoopStmt ASTKind = "ForCountLoopStmt"
	KindForCountLoopExpr ASTKind = "ForCountLoopExpr"
	KindWhileStmt        ASTKind = "WhileStmt"
	KindWhileExpr        ASTKind = "WhileExpr"
	KindDoWhileStmt      ASTKind = "DoWhileStmt"
	KindSwitchStmt       ASTKind = "SwitchStmt"
	KindCaseStmt         ASTKind = "CaseStmt"
	KindBreakStmt        ASTKind = "BreakStmt"
	KindContinueStmt     ASTKind = "ContinueStmt"

	// comprehensions
	KindComprehensionClause ASTKind = "ComprehensionClause"
	KindListComprehension   ASTKind = "ListComprehension"
	KindSetComprehension    ASTKind = "SetComprehension"
	KindDictComprehension   ASTKind = "DictComprehension"
	KindGeneratorExpr       ASTKind = "GeneratorExpr"

	// exception handling
	KindThrowStmt            ASTKind = "ThrowStmt"
	KindCatchHandlerStmt     ASTKind = "CatchHandlerStmt"
	KindExceptionHandlerStmt ASTKind = "ExceptionHandlerStmt"
	KindFinallyHandlerStmt   ASTKind = "FinallyHandlerStmt"

	// callables
	KindArgument          ASTKind = "Argument"
	KindArguments         ASTKind = "Arguments"
	KindFunctionPrototype ASTKind = "FunctionPrototype"
	KindFunctionDef       ASTKind = "FunctionDef"
	KindFunctionAsyncDef  ASTKind = "FunctionAsyncDef"
	KindFunctionReturn    ASTKind = "FunctionReturn"
	KindFunctionCall      ASTKind = "FunctionCall"
	KindLambdaExpr        ASTKind = "LambdaExpr"
	KindYieldExpr         ASTKind = "YieldExpr"
	KindAwaitExpr         ASTKind = "AwaitExpr"

	// classes and structs
	KindClassDeclStmt  ASTKind = "ClassDeclStmt"
	KindClassDefStmt   ASTKind = "ClassDefStmt"
	KindStructDeclStmt ASTKind = "StructDeclStmt"
	KindStructDefStmt  ASTKind = "StructDefStmt"
	KindEnumDeclStmt   ASTKind = "EnumDeclStmt"

	// packages and imports
	KindModule         ASTKind = "Module"
	KindPackage        ASTKind = "Package"
	KindProgram        ASTKind = "Program"
	KindTarget         ASTKind = "Target"
	KindAliasExpr      ASTKind = "AliasExpr"
	KindImportStmt     ASTKind = "ImportStmt"
	KindImportFromStmt ASTKind = "ImportFromStmt"
)

// AST is the contract every node satisfies. Nodes are identified by a ref
// token assigned once at construction; structural equality ignores it.
//
// The accept method is unexported on purpose: the variant set is closed, so
// external packages extend behavior through Visitor, never by adding node
// types.
type AST interface {
	Kind() ASTKind
	Loc() SourceLocation
	Ref() string
	Parent() AST
	SetParent(p AST)
	Comment() string
	SetComment(c string)

	// String returns the human-readable tag for the node, e.g.
	// "LiteralInt32[1]" or "BinaryOp[+]".
	String() string

	// GetStruct returns the canonical structural representation. The
	// simplified form appends "#<ref>" to every mapping key and drops
	// metadata, guaranteeing key uniqueness among structurally identical
	// siblings.
	GetStruct(simplified bool) ReprStruct

	accept(v Visitor) (string, error)
}

// Expr is implemented by value-producing nodes.
type Expr interface {
	AST
	exprNode()
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	AST
	stmtNode()
}

// BaseNode carries the attributes shared by every node. The parent link is a
// weak back-reference: it never owns the parent and dropping the parent does
// not invalidate the child.
type BaseNode struct {
	kind    ASTKind
	loc     SourceLocation
	ref     string
	comment string
	parent  AST
}

func newBase(kind ASTKind, loc SourceLocation) BaseNode {
	return BaseNode{
		kind: kind,
		loc:  loc,
		ref:  uuid.NewString(),
	}
}

// Kind returns the variant tag of the node.
func (b *BaseNode) Kind() ASTKind { return b.kind }

// Loc returns the source location of the node.
func (b *BaseNode) Loc() SourceLocation { return b.loc }

// Ref returns the identity token assigned at construction.
func (b *BaseNode) Ref() string { return b.ref }

// Parent returns the enclosing node, or nil.
func (b *BaseNode) Parent() AST { return b.parent }

// SetParent records the enclosing node. The link is informational only.
func (b *BaseNode) SetParent(p AST) { b.parent = p }

// Comment returns the free-form comment attached to the node.
func (b *BaseNode) Comment() string { return b.comment }

// SetComment attaches a free-form comment to the node.
func (b *BaseNode) SetComment(c string) { b.comment = c }

// setRef overwrites the identity token. Only the decoder uses it, to keep
// round-tripped trees byte-stable.
func (b *BaseNode) setRef(ref string) {
	if ref != "" {
		b.ref = ref
	}
}

func (b *BaseNode) metadata() *Dict {
	loc := NewDict().
		Set("line", b.loc.Line).
		Set("col", b.loc.Col)
	return NewDict().
		Set("loc", loc).
		Set("comment", b.comment).
		Set("ref", b.ref).
		Set("kind", string(b.kind))
}

// prepareStruct wraps a node's content under its display key. The full form
// nests content and metadata; the simplified form maps "key#ref" directly to
// the content.
func (b *BaseNode) prepareStruct(key string, value ReprStruct, simplified bool) ReprStruct {
	if simplified {
		return NewDict().Set(key+"#"+b.ref, value)
	}
	return NewDict().Set(key, NewDict().
		Set("content", value).
		Set("metadata", b.metadata()))
}

// Equal reports structural equality between two trees. All semantic
// attributes are compared; identity tokens and source locations are ignored.
func Equal(a, b AST) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	sa := stripIdentity(a.GetStruct(false))
	sb := stripIdentity(b.GetStruct(false))
	return reprEqual(sa, sb)
}

// stripIdentity removes refs and locations from a structural representation,
// leaving only the semantic content. Keys are kept verbatim: the full form
// never appends "#ref" suffixes, and display keys may legitimately contain
// '#' (a block named "body#1", say).
func stripIdentity(s ReprStruct) ReprStruct {
	switch v := s.(type) {
	case *Dict:
		out := NewDict()
		for _, p := range v.pairs {
			key := p.Key
			if key == "metadata" {
				if md, ok := p.Value.(*Dict); ok {
					clean := NewDict()
					for _, mp := range md.pairs {
						if mp.Key == "ref" || mp.Key == "loc" {
							continue
						}
						clean.Set(mp.Key, stripIdentity(mp.Value))
					}
					out.Set(key, clean)
					continue
				}
			}
			out.Set(key, stripIdentity(p.Value))
		}
		return out
	case []ReprStruct:
		out := make([]ReprStruct, 0, len(v))
		for _, item := range v {
			out = append(out, stripIdentity(item))
		}
		return out
	default:
		return s
	}
}

func reprEqual(a, b ReprStruct) bool {
	switch av := a.(type) {
	case *Dict:
		bv, ok := b.(*Dict)
		if !ok || len(av.pairs) != len(bv.pairs) {
			return false
		}
		for i, p := range av.pairs {
			q := bv.pairs[i]
			if p.Key != q.Key || !reprEqual(p.Value, q.Value) {
				return false
			}
		}
		return true
	case []ReprStruct:
		bv, ok := b.([]ReprStruct)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !reprEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
