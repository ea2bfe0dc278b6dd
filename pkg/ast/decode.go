package ast

import (
	"strings"

	"mercator-hq/astral/pkg/asterrors"
)

// FromJSON rebuilds a tree from the full serialized form produced by ToJSON.
// Values are re-validated through the node constructors, so a tampered
// document fails the same way invalid construction does. Identity tokens and
// comments are restored from the metadata, keeping a serialize/rebuild round
// trip byte-stable.
func FromJSON(data []byte) (AST, error) {
	s, err := StructFromJSON(data)
	if err != nil {
		return nil, asterrors.Newf(asterrors.KindSyntax, "malformed JSON: %v", err)
	}
	return NodeFromStruct(s)
}

// FromYAML rebuilds a tree from the full serialized form produced by ToYAML.
func FromYAML(data []byte) (AST, error) {
	s, err := StructFromYAML(data)
	if err != nil {
		return nil, asterrors.Newf(asterrors.KindSyntax, "malformed YAML: %v", err)
	}
	return NodeFromStruct(s)
}

// envelope is the decoded wrapper around one node: the display key, the
// content under it, and the metadata identifying the variant.
type envelope struct {
	key     string
	content ReprStruct
	kind    ASTKind
	ref     string
	comment string
	loc     SourceLocation
}

func parseEnvelope(s ReprStruct) (*envelope, error) {
	d, ok := s.(*Dict)
	if !ok || d.Len() != 1 {
		return nil, asterrors.New(asterrors.KindValue,
			"node representation must be a single-key mapping")
	}
	p := d.Pairs()[0]
	body, ok := p.Value.(*Dict)
	if !ok {
		return nil, asterrors.Newf(asterrors.KindValue,
			"node %q has no content/metadata mapping", p.Key)
	}
	content, ok := body.Get("content")
	if !ok {
		return nil, asterrors.Newf(asterrors.KindKey, "node %q is missing content", p.Key)
	}
	mdv, ok := body.Get("metadata")
	if !ok {
		return nil, asterrors.Newf(asterrors.KindKey, "node %q is missing metadata", p.Key)
	}
	md, ok := mdv.(*Dict)
	if !ok {
		return nil, asterrors.Newf(asterrors.KindValue, "node %q metadata is not a mapping", p.Key)
	}

	env := &envelope{key: p.Key, content: content, loc: NoSourceLocation}
	if kind, ok := md.Get("kind"); ok {
		if s, ok := kind.(string); ok {
			env.kind = ASTKind(s)
		}
	}
	if env.kind == "" {
		return nil, asterrors.Newf(asterrors.KindKey, "node %q metadata has no kind", p.Key)
	}
	if ref, ok := md.Get("ref"); ok {
		env.ref, _ = ref.(string)
	}
	if comment, ok := md.Get("comment"); ok {
		env.comment, _ = comment.(string)
	}
	if locv, ok := md.Get("loc"); ok {
		if loc, ok := locv.(*Dict); ok {
			if line, ok := loc.Get("line"); ok {
				if l, ok := line.(int); ok {
					env.loc.Line = l
				}
			}
			if col, ok := loc.Get("col"); ok {
				if c, ok := col.(int); ok {
					env.loc.Col = c
				}
			}
		}
	}
	return env, nil
}

type refSetter interface {
	setRef(ref string)
}

func (e *envelope) apply(node AST) AST {
	if rs, ok := node.(refSetter); ok {
		rs.setRef(e.ref)
	}
	if e.comment != "" {
		node.SetComment(e.comment)
	}
	return node
}

// keyParam extracts the bracketed parameter of a display key, e.g. the name
// from "BLOCK[main]".
func keyParam(key, prefix string) string {
	if strings.HasPrefix(key, prefix+"[") && strings.HasSuffix(key, "]") {
		return key[len(prefix)+1 : len(key)-1]
	}
	return ""
}

func (e *envelope) dict() (*Dict, error) {
	d, ok := e.content.(*Dict)
	if !ok {
		return nil, asterrors.Newf(asterrors.KindValue,
			"%s content must be a mapping", e.kind)
	}
	return d, nil
}

func (e *envelope) list() ([]ReprStruct, error) {
	items, ok := e.content.([]ReprStruct)
	if !ok {
		return nil, asterrors.Newf(asterrors.KindValue,
			"%s content must be a list", e.kind)
	}
	return items, nil
}

func dictString(d *Dict, kind ASTKind, key string) (string, error) {
	v, ok := d.Get(key)
	if !ok {
		return "", asterrors.Newf(asterrors.KindKey, "%s content is missing %q", kind, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", asterrors.Newf(asterrors.KindValue, "%s %q must be a string", kind, key)
	}
	return s, nil
}

func dictInt(d *Dict, kind ASTKind, key string) (int, error) {
	v, ok := d.Get(key)
	if !ok {
		return 0, asterrors.Newf(asterrors.KindKey, "%s content is missing %q", kind, key)
	}
	i, ok := v.(int)
	if !ok {
		return 0, asterrors.Newf(asterrors.KindValue, "%s %q must be an integer", kind, key)
	}
	return i, nil
}

func dictUint(d *Dict, kind ASTKind, key string) (uint64, error) {
	v, ok := d.Get(key)
	if !ok {
		return 0, asterrors.Newf(asterrors.KindKey, "%s content is missing %q", kind, key)
	}
	switch n := v.(type) {
	case int:
		if n < 0 {
			return 0, asterrors.Newf(asterrors.KindValue, "%s %q must be non-negative", kind, key)
		}
		return uint64(n), nil
	case uint64:
		return n, nil
	}
	return 0, asterrors.Newf(asterrors.KindValue, "%s %q must be an integer", kind, key)
}

func dictFloat(d *Dict, kind ASTKind, key string) (float64, error) {
	v, ok := d.Get(key)
	if !ok {
		return 0, asterrors.Newf(asterrors.KindKey, "%s content is missing %q", kind, key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	}
	return 0, asterrors.Newf(asterrors.KindValue, "%s %q must be a number", kind, key)
}

func dictList(d *Dict, kind ASTKind, key string) ([]ReprStruct, error) {
	v, ok := d.Get(key)
	if !ok {
		return nil, asterrors.Newf(asterrors.KindKey, "%s content is missing %q", kind, key)
	}
	items, ok := v.([]ReprStruct)
	if !ok {
		return nil, asterrors.Newf(asterrors.KindValue, "%s %q must be a list", kind, key)
	}
	return items, nil
}

// NodeFromStruct rebuilds a node from its full structural representation.
func NodeFromStruct(s ReprStruct) (AST, error) {
	env, err := parseEnvelope(s)
	if err != nil {
		return nil, err
	}
	node, err := nodeFromEnvelope(env)
	if err != nil {
		return nil, err
	}
	return env.apply(node), nil
}

func exprFromStruct(s ReprStruct) (Expr, error) {
	node, err := NodeFromStruct(s)
	if err != nil {
		return nil, err
	}
	e, ok := node.(Expr)
	if !ok {
		return nil, asterrors.Newf(asterrors.KindValue,
			"expected an expression, got %s", node.Kind())
	}
	return e, nil
}

func exprsFromStructs(items []ReprStruct) ([]Expr, error) {
	out := make([]Expr, 0, len(items))
	for _, item := range items {
		e, err := exprFromStruct(item)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func typeFromStruct(s ReprStruct) (DataType, error) {
	node, err := NodeFromStruct(s)
	if err != nil {
		return nil, err
	}
	t, ok := node.(DataType)
	if !ok {
		return nil, asterrors.Newf(asterrors.KindValue,
			"expected a data type, got %s", node.Kind())
	}
	return t, nil
}

func blockFromStruct(s ReprStruct) (*Block, error) {
	node, err := NodeFromStruct(s)
	if err != nil {
		return nil, err
	}
	b, ok := node.(*Block)
	if !ok {
		return nil, asterrors.Newf(asterrors.KindValue,
			"expected a block, got %s", node.Kind())
	}
	return b, nil
}

func childExpr(d *Dict, kind ASTKind, key string) (Expr, error) {
	v, ok := d.Get(key)
	if !ok {
		return nil, asterrors.Newf(asterrors.KindKey, "%s content is missing %q", kind, key)
	}
	return exprFromStruct(v)
}

func optChildExpr(d *Dict, key string) (Expr, error) {
	v, ok := d.Get(key)
	if !ok {
		return nil, nil
	}
	return exprFromStruct(v)
}

func childBlock(d *Dict, kind ASTKind, key string) (*Block, error) {
	v, ok := d.Get(key)
	if !ok {
		return nil, asterrors.Newf(asterrors.KindKey, "%s content is missing %q", kind, key)
	}
	return blockFromStruct(v)
}

func childType(d *Dict, kind ASTKind, key string) (DataType, error) {
	v, ok := d.Get(key)
	if !ok {
		return nil, asterrors.Newf(asterrors.KindKey, "%s content is missing %q", kind, key)
	}
	return typeFromStruct(v)
}

var scalarFactories = map[string]func() *ScalarType{
	"Int8": Int8, "Int16": Int16, "Int32": Int32, "Int64": Int64, "Int128": Int128,
	"UInt8": UInt8, "UInt16": UInt16, "UInt32": UInt32, "UInt64": UInt64, "UInt128": UInt128,
	"Float16": Float16, "Float32": Float32, "Float64": Float64,
	"Complex32": Complex32, "Complex64": Complex64,
	"Boolean": Boolean, "UTF8Char": UTF8Char, "UTF8String": UTF8String,
	"Date": Date, "Time": Time, "DateTime": DateTime, "Timestamp": Timestamp,
	"Any": AnyType, "None": NoneType,
}

func nodeFromEnvelope(env *envelope) (AST, error) {
	switch env.kind {
	case KindScalarType:
		name, ok := env.content.(string)
		if !ok {
			return nil, asterrors.New(asterrors.KindValue, "scalar type content must be its name")
		}
		factory, ok := scalarFactories[name]
		if !ok {
			return nil, asterrors.Newf(asterrors.KindValue, "unknown scalar type %q", name)
		}
		return factory(), nil

	case KindListType:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		elem, err := childType(d, env.kind, "element-type")
		if err != nil {
			return nil, err
		}
		return NewListType(elem), nil

	case KindSetType:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		elem, err := childType(d, env.kind, "element-type")
		if err != nil {
			return nil, err
		}
		return NewSetType(elem), nil

	case KindMapType:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		key, err := childType(d, env.kind, "key-type")
		if err != nil {
			return nil, err
		}
		value, err := childType(d, env.kind, "value-type")
		if err != nil {
			return nil, err
		}
		return NewMapType(key, value), nil

	case KindTupleType:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		items, err := dictList(d, env.kind, "element-types")
		if err != nil {
			return nil, err
		}
		elems := make([]DataType, 0, len(items))
		for _, item := range items {
			t, err := typeFromStruct(item)
			if err != nil {
				return nil, err
			}
			elems = append(elems, t)
		}
		return NewTupleType(elems...), nil

	case KindStructType:
		name, ok := env.content.(string)
		if !ok {
			return nil, asterrors.New(asterrors.KindValue, "struct type content must be its name")
		}
		return NewStructType(name), nil

	case KindEnumType:
		name, ok := env.content.(string)
		if !ok {
			return nil, asterrors.New(asterrors.KindValue, "enum type content must be its name")
		}
		return NewEnumType(name), nil

	case KindFunctionType:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		items, err := dictList(d, env.kind, "param-types")
		if err != nil {
			return nil, err
		}
		params := make([]DataType, 0, len(items))
		for _, item := range items {
			t, err := typeFromStruct(item)
			if err != nil {
				return nil, err
			}
			params = append(params, t)
		}
		ret, err := childType(d, env.kind, "return-type")
		if err != nil {
			return nil, err
		}
		return NewFunctionType(params, ret), nil

	case KindLiteral:
		return literalFromEnvelope(env)

	case KindLiteralNone:
		return NewLiteralNone(env.loc), nil

	case KindLiteralList:
		items, err := env.list()
		if err != nil {
			return nil, err
		}
		elems, err := exprsFromStructs(items)
		if err != nil {
			return nil, err
		}
		return NewLiteralList(elems, env.loc), nil

	case KindLiteralSet:
		items, err := env.list()
		if err != nil {
			return nil, err
		}
		elems, err := exprsFromStructs(items)
		if err != nil {
			return nil, err
		}
		return NewLiteralSet(elems, env.loc), nil

	case KindLiteralTuple:
		items, err := env.list()
		if err != nil {
			return nil, err
		}
		elems, err := exprsFromStructs(items)
		if err != nil {
			return nil, err
		}
		return NewLiteralTuple(elems, env.loc), nil

	case KindLiteralMap:
		items, err := env.list()
		if err != nil {
			return nil, err
		}
		entries := make([]MapEntry, 0, len(items))
		for _, item := range items {
			d, ok := item.(*Dict)
			if !ok {
				return nil, asterrors.New(asterrors.KindValue, "map literal entry must be a mapping")
			}
			key, err := childExpr(d, env.kind, "key")
			if err != nil {
				return nil, err
			}
			value, err := childExpr(d, env.kind, "value")
			if err != nil {
				return nil, err
			}
			entries = append(entries, MapEntry{Key: key, Value: value})
		}
		return NewLiteralMap(entries, env.loc), nil

	case KindUnaryOp:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		op, err := dictString(d, env.kind, "op")
		if err != nil {
			return nil, err
		}
		operand, err := childExpr(d, env.kind, "operand")
		if err != nil {
			return nil, err
		}
		return NewUnaryOp(op, operand, env.loc)

	case KindBinaryOp:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		op, err := dictString(d, env.kind, "op")
		if err != nil {
			return nil, err
		}
		lhs, err := childExpr(d, env.kind, "lhs")
		if err != nil {
			return nil, err
		}
		rhs, err := childExpr(d, env.kind, "rhs")
		if err != nil {
			return nil, err
		}
		return NewBinaryOp(op, lhs, rhs, env.loc)

	case KindCompareOp:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		left, err := childExpr(d, env.kind, "left")
		if err != nil {
			return nil, err
		}
		opItems, err := dictList(d, env.kind, "ops")
		if err != nil {
			return nil, err
		}
		ops := make([]string, 0, len(opItems))
		for _, item := range opItems {
			op, ok := item.(string)
			if !ok {
				return nil, asterrors.New(asterrors.KindValue, "comparison op must be a string")
			}
			ops = append(ops, op)
		}
		compItems, err := dictList(d, env.kind, "comparators")
		if err != nil {
			return nil, err
		}
		comparators, err := exprsFromStructs(compItems)
		if err != nil {
			return nil, err
		}
		return NewCompareOp(left, ops, comparators, env.loc)

	case KindBoolOp:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		op, err := dictString(d, env.kind, "op")
		if err != nil {
			return nil, err
		}
		lhs, err := childExpr(d, env.kind, "lhs")
		if err != nil {
			return nil, err
		}
		rhs, err := childExpr(d, env.kind, "rhs")
		if err != nil {
			return nil, err
		}
		return NewBoolOp(op, lhs, rhs, env.loc)

	case KindNotOp:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		operand, err := childExpr(d, env.kind, "operand")
		if err != nil {
			return nil, err
		}
		return NewNotOp(operand, env.loc)

	case KindAugAssign:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		op, err := dictString(d, env.kind, "op")
		if err != nil {
			return nil, err
		}
		target, err := childExpr(d, env.kind, "target")
		if err != nil {
			return nil, err
		}
		value, err := childExpr(d, env.kind, "value")
		if err != nil {
			return nil, err
		}
		return NewAugAssign(op, target, value, env.loc)

	case KindWalrusOp:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		lhs, err := childExpr(d, env.kind, "lhs")
		if err != nil {
			return nil, err
		}
		rhs, err := childExpr(d, env.kind, "rhs")
		if err != nil {
			return nil, err
		}
		return NewWalrusOp(lhs, rhs, env.loc)

	case KindStarred:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		value, err := childExpr(d, env.kind, "value")
		if err != nil {
			return nil, err
		}
		return NewStarred(value, env.loc), nil

	case KindTypeCastExpr:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		target, err := childType(d, env.kind, "target-type")
		if err != nil {
			return nil, err
		}
		value, err := childExpr(d, env.kind, "value")
		if err != nil {
			return nil, err
		}
		return NewTypeCastExpr(target, value, env.loc)

	case KindSubscriptExpr:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		value, err := childExpr(d, env.kind, "value")
		if err != nil {
			return nil, err
		}
		if _, ok := d.Get("index"); ok {
			index, err := childExpr(d, env.kind, "index")
			if err != nil {
				return nil, err
			}
			return NewSubscriptExpr(value, index, env.loc), nil
		}
		lower, err := optChildExpr(d, "lower")
		if err != nil {
			return nil, err
		}
		upper, err := optChildExpr(d, "upper")
		if err != nil {
			return nil, err
		}
		step, err := optChildExpr(d, "step")
		if err != nil {
			return nil, err
		}
		return NewSliceExpr(value, lower, upper, step, env.loc), nil

	case KindIdentifier:
		name, ok := env.content.(string)
		if !ok {
			return nil, asterrors.New(asterrors.KindValue, "identifier content must be its name")
		}
		return NewIdentifier(name, env.loc), nil

	case KindVariable:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		name, err := dictString(d, env.kind, "name")
		if err != nil {
			return nil, err
		}
		typ, err := childType(d, env.kind, "type")
		if err != nil {
			return nil, err
		}
		return NewTypedVariable(name, typ, env.loc), nil

	case KindVariableDeclaration:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		name, err := dictString(d, env.kind, "name")
		if err != nil {
			return nil, err
		}
		typ, err := childType(d, env.kind, "type")
		if err != nil {
			return nil, err
		}
		value, err := optChildExpr(d, "value")
		if err != nil {
			return nil, err
		}
		n := NewVariableDeclaration(name, typ, value, env.loc)
		if s, err := dictString(d, env.kind, "mutability"); err == nil {
			n.Mutability = mutabilityFromString(s)
		}
		if s, err := dictString(d, env.kind, "visibility"); err == nil {
			n.Visibility = visibilityFromString(s)
		}
		if s, err := dictString(d, env.kind, "scope"); err == nil {
			n.Scope = scopeFromString(s)
		}
		return n, nil

	case KindInlineVariableDeclaration:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		name, err := dictString(d, env.kind, "name")
		if err != nil {
			return nil, err
		}
		typ, err := childType(d, env.kind, "type")
		if err != nil {
			return nil, err
		}
		value, err := optChildExpr(d, "value")
		if err != nil {
			return nil, err
		}
		n := NewInlineVariableDeclaration(name, typ, value, env.loc)
		if s, err := dictString(d, env.kind, "mutability"); err == nil {
			n.Mutability = mutabilityFromString(s)
		}
		return n, nil

	case KindVariableAssignment:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		name, err := dictString(d, env.kind, "name")
		if err != nil {
			return nil, err
		}
		value, err := childExpr(d, env.kind, "value")
		if err != nil {
			return nil, err
		}
		return NewVariableAssignment(name, value, env.loc), nil

	case KindBlock:
		items, err := env.list()
		if err != nil {
			return nil, err
		}
		b := NewBlock(keyParam(env.key, "BLOCK"), env.loc)
		for _, item := range items {
			node, err := NodeFromStruct(item)
			if err != nil {
				return nil, err
			}
			b.Append(node)
		}
		return b, nil

	case KindIfStmt, KindIfExpr, KindForRangeLoopStmt, KindForRangeLoopExpr,
		KindForCountLoopStmt, KindForCountLoopExpr, KindWhileStmt, KindWhileExpr,
		KindDoWhileStmt, KindSwitchStmt, KindCaseStmt:
		return flowFromEnvelope(env)

	case KindBreakStmt:
		return NewBreakStmt(env.loc), nil

	case KindContinueStmt:
		return NewContinueStmt(env.loc), nil

	case KindComprehensionClause, KindListComprehension, KindSetComprehension,
		KindDictComprehension, KindGeneratorExpr:
		return comprehensionFromEnvelope(env)

	case KindThrowStmt:
		if d, ok := env.content.(*Dict); ok {
			exception, err := childExpr(d, env.kind, "exception")
			if err != nil {
				return nil, err
			}
			return NewThrowStmt(exception, env.loc), nil
		}
		return NewThrowStmt(nil, env.loc), nil

	case KindCatchHandlerStmt:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		var types []Expr
		if items, ok := d.Get("types"); ok {
			list, ok := items.([]ReprStruct)
			if !ok {
				return nil, asterrors.New(asterrors.KindValue, "catch handler types must be a list")
			}
			types, err = exprsFromStructs(list)
			if err != nil {
				return nil, err
			}
		}
		name := ""
		if v, ok := d.Get("name"); ok {
			name, _ = v.(string)
		}
		body, err := childBlock(d, env.kind, "body")
		if err != nil {
			return nil, err
		}
		return NewCatchHandlerStmt(types, name, body, env.loc), nil

	case KindFinallyHandlerStmt:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		body, err := childBlock(d, env.kind, "body")
		if err != nil {
			return nil, err
		}
		return NewFinallyHandlerStmt(body, env.loc), nil

	case KindExceptionHandlerStmt:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		body, err := childBlock(d, env.kind, "body")
		if err != nil {
			return nil, err
		}
		var handlers []*CatchHandlerStmt
		if items, ok := d.Get("handlers"); ok {
			list, ok := items.([]ReprStruct)
			if !ok {
				return nil, asterrors.New(asterrors.KindValue, "exception handlers must be a list")
			}
			for _, item := range list {
				node, err := NodeFromStruct(item)
				if err != nil {
					return nil, err
				}
				h, ok := node.(*CatchHandlerStmt)
				if !ok {
					return nil, asterrors.Newf(asterrors.KindValue,
						"expected a catch handler, got %s", node.Kind())
				}
				handlers = append(handlers, h)
			}
		}
		var finally *FinallyHandlerStmt
		if v, ok := d.Get("finally"); ok {
			node, err := NodeFromStruct(v)
			if err != nil {
				return nil, err
			}
			f, ok := node.(*FinallyHandlerStmt)
			if !ok {
				return nil, asterrors.Newf(asterrors.KindValue,
					"expected a finally handler, got %s", node.Kind())
			}
			finally = f
		}
		return NewExceptionHandlerStmt(body, handlers, finally, env.loc), nil

	case KindArgument, KindArguments, KindFunctionPrototype, KindFunctionDef,
		KindFunctionAsyncDef, KindFunctionReturn, KindFunctionCall,
		KindLambdaExpr, KindYieldExpr, KindAwaitExpr:
		return callableFromEnvelope(env)

	case KindClassDeclStmt, KindClassDefStmt, KindStructDeclStmt,
		KindStructDefStmt, KindEnumDeclStmt:
		return definitionFromEnvelope(env)

	case KindAliasExpr, KindImportStmt, KindImportFromStmt, KindModule,
		KindPackage, KindTarget, KindProgram:
		return packageFromEnvelope(env)
	}

	return nil, asterrors.Newf(asterrors.KindValue, "unknown node kind %q", env.kind)
}

var intLiteralFactories = map[string]func(int64, ...SourceLocation) (*Literal, error){
	"Int8": NewLiteralInt8, "Int16": NewLiteralInt16, "Int32": NewLiteralInt32,
	"Int64": NewLiteralInt64, "Int128": NewLiteralInt128,
	"UInt8": NewLiteralUInt8, "UInt16": NewLiteralUInt16, "UInt32": NewLiteralUInt32,
}

var uintLiteralFactories = map[string]func(uint64, ...SourceLocation) (*Literal, error){
	"UInt64": NewLiteralUInt64, "UInt128": NewLiteralUInt128,
}

var floatLiteralFactories = map[string]func(float64, ...SourceLocation) (*Literal, error){
	"Float16": NewLiteralFloat16, "Float32": NewLiteralFloat32, "Float64": NewLiteralFloat64,
}

var stringLiteralFactories = map[string]func(string, ...SourceLocation) (*Literal, error){
	"UTF8Char": NewLiteralUTF8Char, "UTF8String": NewLiteralUTF8String,
	"Date": NewLiteralDate, "Time": NewLiteralTime,
	"DateTime": NewLiteralDateTime, "Timestamp": NewLiteralTimestamp,
}

func literalFromEnvelope(env *envelope) (AST, error) {
	d, err := env.dict()
	if err != nil {
		return nil, err
	}
	typeName, err := dictString(d, env.kind, "type")
	if err != nil {
		return nil, err
	}
	if factory, ok := intLiteralFactories[typeName]; ok {
		v, err := dictInt(d, env.kind, "value")
		if err != nil {
			return nil, err
		}
		return factory(int64(v), env.loc)
	}
	if factory, ok := uintLiteralFactories[typeName]; ok {
		v, err := dictUint(d, env.kind, "value")
		if err != nil {
			return nil, err
		}
		return factory(v, env.loc)
	}
	if factory, ok := floatLiteralFactories[typeName]; ok {
		v, err := dictFloat(d, env.kind, "value")
		if err != nil {
			return nil, err
		}
		return factory(v, env.loc)
	}
	if factory, ok := stringLiteralFactories[typeName]; ok {
		v, err := dictString(d, env.kind, "value")
		if err != nil {
			return nil, err
		}
		return factory(v, env.loc)
	}
	switch typeName {
	case "Boolean":
		v, ok := d.Get("value")
		if !ok {
			return nil, asterrors.Newf(asterrors.KindKey, "%s content is missing %q", env.kind, "value")
		}
		b, ok := v.(bool)
		if !ok {
			return nil, asterrors.New(asterrors.KindValue, "boolean literal value must be a bool")
		}
		return NewLiteralBoolean(b, env.loc), nil
	case "Complex32", "Complex64":
		real, err := dictFloat(d, env.kind, "real")
		if err != nil {
			return nil, err
		}
		imag, err := dictFloat(d, env.kind, "imag")
		if err != nil {
			return nil, err
		}
		if typeName == "Complex32" {
			return NewLiteralComplex32(real, imag, env.loc)
		}
		return NewLiteralComplex64(real, imag, env.loc)
	}
	return nil, asterrors.Newf(asterrors.KindValue, "unknown literal type %q", typeName)
}

func inlineDeclFromStruct(s ReprStruct) (*InlineVariableDeclaration, error) {
	node, err := NodeFromStruct(s)
	if err != nil {
		return nil, err
	}
	decl, ok := node.(*InlineVariableDeclaration)
	if !ok {
		return nil, asterrors.Newf(asterrors.KindValue,
			"expected an inline declaration, got %s", node.Kind())
	}
	return decl, nil
}

func flowFromEnvelope(env *envelope) (AST, error) {
	d, err := env.dict()
	if err != nil {
		return nil, err
	}
	switch env.kind {
	case KindIfStmt:
		condition, err := childExpr(d, env.kind, "condition")
		if err != nil {
			return nil, err
		}
		then, err := childBlock(d, env.kind, "then-block")
		if err != nil {
			return nil, err
		}
		var els *Block
		if v, ok := d.Get("else-block"); ok {
			els, err = blockFromStruct(v)
			if err != nil {
				return nil, err
			}
		}
		return NewIfStmt(condition, then, els, env.loc)

	case KindIfExpr:
		condition, err := childExpr(d, env.kind, "condition")
		if err != nil {
			return nil, err
		}
		then, err := childExpr(d, env.kind, "then-expr")
		if err != nil {
			return nil, err
		}
		els, err := childExpr(d, env.kind, "else-expr")
		if err != nil {
			return nil, err
		}
		return NewIfExpr(condition, then, els, env.loc)

	case KindForRangeLoopStmt, KindForRangeLoopExpr:
		v, ok := d.Get("variable")
		if !ok {
			return nil, asterrors.Newf(asterrors.KindKey, "%s content is missing %q", env.kind, "variable")
		}
		variable, err := inlineDeclFromStruct(v)
		if err != nil {
			return nil, err
		}
		start, err := childExpr(d, env.kind, "start")
		if err != nil {
			return nil, err
		}
		end, err := childExpr(d, env.kind, "end")
		if err != nil {
			return nil, err
		}
		step, err := childExpr(d, env.kind, "step")
		if err != nil {
			return nil, err
		}
		body, err := childBlock(d, env.kind, "body")
		if err != nil {
			return nil, err
		}
		if env.kind == KindForRangeLoopStmt {
			return NewForRangeLoopStmt(variable, start, end, step, body, env.loc)
		}
		return NewForRangeLoopExpr(variable, start, end, step, body, env.loc)

	case KindForCountLoopStmt, KindForCountLoopExpr:
		v, ok := d.Get("initializer")
		if !ok {
			return nil, asterrors.Newf(asterrors.KindKey, "%s content is missing %q", env.kind, "initializer")
		}
		initializer, err := inlineDeclFromStruct(v)
		if err != nil {
			return nil, err
		}
		condition, err := childExpr(d, env.kind, "condition")
		if err != nil {
			return nil, err
		}
		update, err := childExpr(d, env.kind, "update")
		if err != nil {
			return nil, err
		}
		body, err := childBlock(d, env.kind, "body")
		if err != nil {
			return nil, err
		}
		if env.kind == KindForCountLoopStmt {
			return NewForCountLoopStmt(initializer, condition, update, body, env.loc)
		}
		return NewForCountLoopExpr(initializer, condition, update, body, env.loc)

	case KindWhileStmt, KindWhileExpr:
		condition, err := childExpr(d, env.kind, "condition")
		if err != nil {
			return nil, err
		}
		body, err := childBlock(d, env.kind, "body")
		if err != nil {
			return nil, err
		}
		if env.kind == KindWhileStmt {
			return NewWhileStmt(condition, body, env.loc)
		}
		return NewWhileExpr(condition, body, env.loc)

	case KindDoWhileStmt:
		body, err := childBlock(d, env.kind, "body")
		if err != nil {
			return nil, err
		}
		condition, err := childExpr(d, env.kind, "condition")
		if err != nil {
			return nil, err
		}
		return NewDoWhileStmt(body, condition, env.loc)

	case KindCaseStmt:
		condition, err := optChildExpr(d, "condition")
		if err != nil {
			return nil, err
		}
		body, err := childBlock(d, env.kind, "body")
		if err != nil {
			return nil, err
		}
		return NewCaseStmt(condition, body, env.loc), nil

	case KindSwitchStmt:
		subject, err := childExpr(d, env.kind, "subject")
		if err != nil {
			return nil, err
		}
		items, err := dictList(d, env.kind, "cases")
		if err != nil {
			return nil, err
		}
		cases := make([]*CaseStmt, 0, len(items))
		for _, item := range items {
			node, err := NodeFromStruct(item)
			if err != nil {
				return nil, err
			}
			c, ok := node.(*CaseStmt)
			if !ok {
				return nil, asterrors.Newf(asterrors.KindValue,
					"expected a case statement, got %s", node.Kind())
			}
			cases = append(cases, c)
		}
		return NewSwitchStmt(subject, cases, env.loc)
	}
	return nil, asterrors.Newf(asterrors.KindValue, "unknown node kind %q", env.kind)
}

func clausesFromStructs(items []ReprStruct) ([]*ComprehensionClause, error) {
	out := make([]*ComprehensionClause, 0, len(items))
	for _, item := range items {
		node, err := NodeFromStruct(item)
		if err != nil {
			return nil, err
		}
		c, ok := node.(*ComprehensionClause)
		if !ok {
			return nil, asterrors.Newf(asterrors.KindValue,
				"expected a comprehension clause, got %s", node.Kind())
		}
		out = append(out, c)
	}
	return out, nil
}

func comprehensionFromEnvelope(env *envelope) (AST, error) {
	d, err := env.dict()
	if err != nil {
		return nil, err
	}
	switch env.kind {
	case KindComprehensionClause:
		target, err := childExpr(d, env.kind, "target")
		if err != nil {
			return nil, err
		}
		iterable, err := childExpr(d, env.kind, "iterable")
		if err != nil {
			return nil, err
		}
		var filters []Expr
		if items, ok := d.Get("filters"); ok {
			list, ok := items.([]ReprStruct)
			if !ok {
				return nil, asterrors.New(asterrors.KindValue, "clause filters must be a list")
			}
			filters, err = exprsFromStructs(list)
			if err != nil {
				return nil, err
			}
		}
		c := NewComprehensionClause(target, iterable, filters, env.loc)
		if v, ok := d.Get("async"); ok {
			c.IsAsync, _ = v.(bool)
		}
		return c, nil

	case KindDictComprehension:
		key, err := childExpr(d, env.kind, "key")
		if err != nil {
			return nil, err
		}
		value, err := childExpr(d, env.kind, "value")
		if err != nil {
			return nil, err
		}
		items, err := dictList(d, env.kind, "clauses")
		if err != nil {
			return nil, err
		}
		clauses, err := clausesFromStructs(items)
		if err != nil {
			return nil, err
		}
		return NewDictComprehension(key, value, clauses, env.loc)
	}

	element, err := childExpr(d, env.kind, "element")
	if err != nil {
		return nil, err
	}
	items, err := dictList(d, env.kind, "clauses")
	if err != nil {
		return nil, err
	}
	clauses, err := clausesFromStructs(items)
	if err != nil {
		return nil, err
	}
	switch env.kind {
	case KindListComprehension:
		return NewListComprehension(element, clauses, env.loc)
	case KindSetComprehension:
		return NewSetComprehension(element, clauses, env.loc)
	case KindGeneratorExpr:
		return NewGeneratorExpr(element, clauses, env.loc)
	}
	return nil, asterrors.Newf(asterrors.KindValue, "unknown node kind %q", env.kind)
}

func callableFromEnvelope(env *envelope) (AST, error) {
	switch env.kind {
	case KindArgument:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		name, err := dictString(d, env.kind, "name")
		if err != nil {
			return nil, err
		}
		typ, err := childType(d, env.kind, "type")
		if err != nil {
			return nil, err
		}
		def, err := optChildExpr(d, "default")
		if err != nil {
			return nil, err
		}
		return NewArgument(name, typ, def, env.loc), nil

	case KindArguments:
		items, err := env.list()
		if err != nil {
			return nil, err
		}
		args := NewArguments()
		for _, item := range items {
			node, err := NodeFromStruct(item)
			if err != nil {
				return nil, err
			}
			a, ok := node.(*Argument)
			if !ok {
				return nil, asterrors.Newf(asterrors.KindValue,
					"expected an argument, got %s", node.Kind())
			}
			args.Append(a)
		}
		return args, nil

	case KindFunctionPrototype:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		name, err := dictString(d, env.kind, "name")
		if err != nil {
			return nil, err
		}
		argsVal, ok := d.Get("args")
		if !ok {
			return nil, asterrors.Newf(asterrors.KindKey, "%s content is missing %q", env.kind, "args")
		}
		argsNode, err := NodeFromStruct(argsVal)
		if err != nil {
			return nil, err
		}
		args, ok := argsNode.(*Arguments)
		if !ok {
			return nil, asterrors.Newf(asterrors.KindValue,
				"expected an argument list, got %s", argsNode.Kind())
		}
		ret, err := childType(d, env.kind, "return-type")
		if err != nil {
			return nil, err
		}
		p, err := NewFunctionPrototype(name, args, ret, env.loc)
		if err != nil {
			return nil, err
		}
		if s, err := dictString(d, env.kind, "visibility"); err == nil {
			p.Visibility = visibilityFromString(s)
		}
		if s, err := dictString(d, env.kind, "scope"); err == nil {
			p.Scope = scopeFromString(s)
		}
		return p, nil

	case KindFunctionDef, KindFunctionAsyncDef:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		v, ok := d.Get("prototype")
		if !ok {
			return nil, asterrors.Newf(asterrors.KindKey, "%s content is missing %q", env.kind, "prototype")
		}
		node, err := NodeFromStruct(v)
		if err != nil {
			return nil, err
		}
		prototype, ok := node.(*FunctionPrototype)
		if !ok {
			return nil, asterrors.Newf(asterrors.KindValue,
				"expected a prototype, got %s", node.Kind())
		}
		body, err := childBlock(d, env.kind, "body")
		if err != nil {
			return nil, err
		}
		if env.kind == KindFunctionDef {
			return NewFunctionDef(prototype, body, env.loc), nil
		}
		return NewFunctionAsyncDef(prototype, body, env.loc), nil

	case KindFunctionReturn:
		if d, ok := env.content.(*Dict); ok {
			value, err := childExpr(d, env.kind, "value")
			if err != nil {
				return nil, err
			}
			return NewFunctionReturn(value, env.loc), nil
		}
		return NewFunctionReturn(nil, env.loc), nil

	case KindFunctionCall:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		callee, err := dictString(d, env.kind, "callee")
		if err != nil {
			return nil, err
		}
		items, err := dictList(d, env.kind, "args")
		if err != nil {
			return nil, err
		}
		args, err := exprsFromStructs(items)
		if err != nil {
			return nil, err
		}
		return NewFunctionCall(callee, args, env.loc), nil

	case KindLambdaExpr:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		items, err := dictList(d, env.kind, "params")
		if err != nil {
			return nil, err
		}
		params := make([]string, 0, len(items))
		for _, item := range items {
			p, ok := item.(string)
			if !ok {
				return nil, asterrors.New(asterrors.KindValue, "lambda parameter must be a string")
			}
			params = append(params, p)
		}
		body, err := childExpr(d, env.kind, "body")
		if err != nil {
			return nil, err
		}
		return NewLambdaExpr(params, body, env.loc)

	case KindYieldExpr:
		if d, ok := env.content.(*Dict); ok {
			value, err := childExpr(d, env.kind, "value")
			if err != nil {
				return nil, err
			}
			return NewYieldExpr(value, env.loc), nil
		}
		return NewYieldExpr(nil, env.loc), nil

	case KindAwaitExpr:
		d, err := env.dict()
		if err != nil {
			return nil, err
		}
		value, err := childExpr(d, env.kind, "value")
		if err != nil {
			return nil, err
		}
		return NewAwaitExpr(value, env.loc), nil
	}
	return nil, asterrors.Newf(asterrors.KindValue, "unknown node kind %q", env.kind)
}

func declsFromStructs(items []ReprStruct) ([]*VariableDeclaration, error) {
	out := make([]*VariableDeclaration, 0, len(items))
	for _, item := range items {
		node, err := NodeFromStruct(item)
		if err != nil {
			return nil, err
		}
		decl, ok := node.(*VariableDeclaration)
		if !ok {
			return nil, asterrors.Newf(asterrors.KindValue,
				"expected a variable declaration, got %s", node.Kind())
		}
		out = append(out, decl)
	}
	return out, nil
}

func definitionFromEnvelope(env *envelope) (AST, error) {
	d, err := env.dict()
	if err != nil {
		return nil, err
	}
	name, err := dictString(d, env.kind, "name")
	if err != nil {
		return nil, err
	}
	visibility := VisibilityPublic
	if s, err := dictString(d, env.kind, "visibility"); err == nil {
		visibility = visibilityFromString(s)
	}

	var bases []Expr
	if items, ok := d.Get("bases"); ok {
		list, ok := items.([]ReprStruct)
		if !ok {
			return nil, asterrors.New(asterrors.KindValue, "bases must be a list")
		}
		bases, err = exprsFromStructs(list)
		if err != nil {
			return nil, err
		}
	}

	switch env.kind {
	case KindClassDeclStmt:
		n := NewClassDeclStmt(name, bases, env.loc)
		n.Visibility = visibility
		if v, ok := d.Get("abstract"); ok {
			n.IsAbstract, _ = v.(bool)
		}
		if items, ok := d.Get("decorators"); ok {
			list, ok := items.([]ReprStruct)
			if !ok {
				return nil, asterrors.New(asterrors.KindValue, "decorators must be a list")
			}
			n.Decorators, err = exprsFromStructs(list)
			if err != nil {
				return nil, err
			}
		}
		return n, nil

	case KindClassDefStmt:
		items, err := dictList(d, env.kind, "attributes")
		if err != nil {
			return nil, err
		}
		attributes, err := declsFromStructs(items)
		if err != nil {
			return nil, err
		}
		methItems, err := dictList(d, env.kind, "methods")
		if err != nil {
			return nil, err
		}
		methods := make([]*FunctionDef, 0, len(methItems))
		for _, item := range methItems {
			node, err := NodeFromStruct(item)
			if err != nil {
				return nil, err
			}
			m, ok := node.(*FunctionDef)
			if !ok {
				return nil, asterrors.Newf(asterrors.KindValue,
					"expected a function definition, got %s", node.Kind())
			}
			methods = append(methods, m)
		}
		n, err := NewClassDefStmt(name, bases, attributes, methods, env.loc)
		if err != nil {
			return nil, err
		}
		n.Visibility = visibility
		if v, ok := d.Get("abstract"); ok {
			n.IsAbstract, _ = v.(bool)
		}
		return n, nil

	case KindStructDeclStmt:
		n := NewStructDeclStmt(name, env.loc)
		n.Visibility = visibility
		return n, nil

	case KindStructDefStmt:
		items, err := dictList(d, env.kind, "attributes")
		if err != nil {
			return nil, err
		}
		attributes, err := declsFromStructs(items)
		if err != nil {
			return nil, err
		}
		n, err := NewStructDefStmt(name, attributes, env.loc)
		if err != nil {
			return nil, err
		}
		n.Visibility = visibility
		return n, nil

	case KindEnumDeclStmt:
		items, err := dictList(d, env.kind, "attributes")
		if err != nil {
			return nil, err
		}
		attributes, err := declsFromStructs(items)
		if err != nil {
			return nil, err
		}
		n, err := NewEnumDeclStmt(name, attributes, env.loc)
		if err != nil {
			return nil, err
		}
		n.Visibility = visibility
		return n, nil
	}
	return nil, asterrors.Newf(asterrors.KindValue, "unknown node kind %q", env.kind)
}

func aliasesFromStructs(items []ReprStruct) ([]*AliasExpr, error) {
	out := make([]*AliasExpr, 0, len(items))
	for _, item := range items {
		node, err := NodeFromStruct(item)
		if err != nil {
			return nil, err
		}
		a, ok := node.(*AliasExpr)
		if !ok {
			return nil, asterrors.Newf(asterrors.KindValue,
				"expected an import alias, got %s", node.Kind())
		}
		out = append(out, a)
	}
	return out, nil
}

func packageFromEnvelope(env *envelope) (AST, error) {
	d, err := env.dict()
	if err != nil {
		return nil, err
	}
	switch env.kind {
	case KindAliasExpr:
		name, err := dictString(d, env.kind, "name")
		if err != nil {
			return nil, err
		}
		asname := ""
		if v, ok := d.Get("asname"); ok {
			asname, _ = v.(string)
		}
		return NewAliasExpr(name, asname, env.loc), nil

	case KindImportStmt:
		items, err := dictList(d, env.kind, "names")
		if err != nil {
			return nil, err
		}
		names, err := aliasesFromStructs(items)
		if err != nil {
			return nil, err
		}
		return NewImportStmt(names, env.loc)

	case KindImportFromStmt:
		module, err := dictString(d, env.kind, "module")
		if err != nil {
			return nil, err
		}
		items, err := dictList(d, env.kind, "names")
		if err != nil {
			return nil, err
		}
		names, err := aliasesFromStructs(items)
		if err != nil {
			return nil, err
		}
		level, err := dictInt(d, env.kind, "level")
		if err != nil {
			return nil, err
		}
		return NewImportFromStmt(module, names, level, env.loc)

	case KindModule:
		name, err := dictString(d, env.kind, "name")
		if err != nil {
			return nil, err
		}
		body, err := childBlock(d, env.kind, "body")
		if err != nil {
			return nil, err
		}
		m := NewModule(name, env.loc)
		m.Body = body
		body.SetParent(m)
		return m, nil

	case KindPackage:
		name, err := dictString(d, env.kind, "name")
		if err != nil {
			return nil, err
		}
		p := NewPackage(name, env.loc)
		items, err := dictList(d, env.kind, "modules")
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			node, err := NodeFromStruct(item)
			if err != nil {
				return nil, err
			}
			m, ok := node.(*Module)
			if !ok {
				return nil, asterrors.Newf(asterrors.KindValue,
					"expected a module, got %s", node.Kind())
			}
			p.AddModule(m)
		}
		items, err = dictList(d, env.kind, "packages")
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			node, err := NodeFromStruct(item)
			if err != nil {
				return nil, err
			}
			sub, ok := node.(*Package)
			if !ok {
				return nil, asterrors.Newf(asterrors.KindValue,
					"expected a package, got %s", node.Kind())
			}
			p.AddPackage(sub)
		}
		return p, nil

	case KindTarget:
		datalayout, err := dictString(d, env.kind, "datalayout")
		if err != nil {
			return nil, err
		}
		triple, err := dictString(d, env.kind, "triple")
		if err != nil {
			return nil, err
		}
		return NewTarget(datalayout, triple, env.loc), nil

	case KindProgram:
		name, err := dictString(d, env.kind, "name")
		if err != nil {
			return nil, err
		}
		var target *Target
		if v, ok := d.Get("target"); ok {
			node, err := NodeFromStruct(v)
			if err != nil {
				return nil, err
			}
			t, ok := node.(*Target)
			if !ok {
				return nil, asterrors.Newf(asterrors.KindValue,
					"expected a target, got %s", node.Kind())
			}
			target = t
		}
		prog := NewProgram(name, target, env.loc)
		items, err := dictList(d, env.kind, "packages")
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			node, err := NodeFromStruct(item)
			if err != nil {
				return nil, err
			}
			p, ok := node.(*Package)
			if !ok {
				return nil, asterrors.Newf(asterrors.KindValue,
					"expected a package, got %s", node.Kind())
			}
			prog.AddPackage(p)
		}
		body, err := childBlock(d, env.kind, "body")
		if err != nil {
			return nil, err
		}
		prog.Body = body
		body.SetParent(prog)
		return prog, nil
	}
	return nil, asterrors.Newf(asterrors.KindValue, "unknown node kind %q", env.kind)
}
