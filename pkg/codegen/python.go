// Package codegen renders trees as source text. Generators implement
// ast.Visitor and compose child output through ast.Visit; a variant a
// generator does not support reports a not-implemented error through the
// embedded ast.BaseVisitor.
package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"mercator-hq/astral/pkg/ast"
	"mercator-hq/astral/pkg/asterrors"
)

const indentUnit = "    "

// PythonGenerator renders a tree as Python source text.
type PythonGenerator struct {
	ast.BaseVisitor
	indent int
}

// NewPythonGenerator creates a generator with zero indentation.
func NewPythonGenerator() *PythonGenerator {
	return &PythonGenerator{}
}

// Generate renders a node and its subtree as Python source.
func (g *PythonGenerator) Generate(node ast.AST) (string, error) {
	return ast.Visit(g, node)
}

func (g *PythonGenerator) emit(node ast.AST) (string, error) {
	return ast.Visit(g, node)
}

func (g *PythonGenerator) pad() string {
	return strings.Repeat(indentUnit, g.indent)
}

// renderBlock renders the statements of a block one level deeper than the
// current indentation. An empty block renders as "pass".
func (g *PythonGenerator) renderBlock(b *ast.Block) (string, error) {
	g.indent++
	defer func() { g.indent-- }()
	if len(b.Nodes) == 0 {
		return g.pad() + "pass", nil
	}
	lines := make([]string, 0, len(b.Nodes))
	for _, node := range b.Nodes {
		s, err := g.emit(node)
		if err != nil {
			return "", err
		}
		lines = append(lines, g.pad()+s)
	}
	return strings.Join(lines, "\n"), nil
}

// singleExprBlock renders the only node of a block, for expression-position
// loops that Python can express as a comprehension.
func (g *PythonGenerator) singleExprBlock(b *ast.Block, owner string) (string, error) {
	if len(b.Nodes) != 1 {
		return "", asterrors.Newf(asterrors.KindValue,
			"%s accepts exactly one node in its body, got %d", owner, len(b.Nodes))
	}
	return g.emit(b.Nodes[0])
}

// pyRepr renders a string the way Python's repr does: single-quoted with
// backslash escapes.
func pyRepr(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// pyFloat renders a float the way Python's str does, keeping a trailing
// ".0" on integral values.
func pyFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

var scalarPyNames = map[string]string{
	"Int8": "int", "Int16": "int", "Int32": "int", "Int64": "int", "Int128": "int",
	"UInt8": "int", "UInt16": "int", "UInt32": "int", "UInt64": "int", "UInt128": "int",
	"Float16": "float", "Float32": "float", "Float64": "float",
	"Complex32": "complex", "Complex64": "complex",
	"Boolean": "bool", "UTF8Char": "str", "UTF8String": "str",
	"Date": "date", "Time": "time", "DateTime": "datetime", "Timestamp": "timestamp",
	"Any": "Any", "None": "None",
}

// VisitScalarType renders the Python spelling of a scalar type annotation.
func (g *PythonGenerator) VisitScalarType(n *ast.ScalarType) (string, error) {
	if name, ok := scalarPyNames[n.TypeName()]; ok {
		return name, nil
	}
	return "", asterrors.Newf(asterrors.KindNotImplemented,
		"no Python spelling for type %s", n.TypeName())
}

func (g *PythonGenerator) VisitListType(n *ast.ListType) (string, error) { return "list", nil }

func (g *PythonGenerator) VisitSetType(n *ast.SetType) (string, error) { return "set", nil }

func (g *PythonGenerator) VisitMapType(n *ast.MapType) (string, error) { return "dict", nil }

func (g *PythonGenerator) VisitTupleType(n *ast.TupleType) (string, error) { return "tuple", nil }

func (g *PythonGenerator) VisitStructType(n *ast.StructType) (string, error) { return n.Name, nil }

func (g *PythonGenerator) VisitEnumType(n *ast.EnumType) (string, error) { return n.Name, nil }

func (g *PythonGenerator) VisitFunctionType(n *ast.FunctionType) (string, error) {
	return "Callable", nil
}

// VisitLiteral renders a scalar literal by its declared type.
func (g *PythonGenerator) VisitLiteral(n *ast.Literal) (string, error) {
	typeName := n.Type().TypeName()
	switch v := n.Value().(type) {
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return pyFloat(v), nil
	case bool:
		if v {
			return "True", nil
		}
		return "False", nil
	case string:
		switch typeName {
		case "Date":
			return fmt.Sprintf("datetime.strptime(%s, '%%Y-%%m-%%d').date()", pyRepr(v)), nil
		case "Time":
			return fmt.Sprintf("datetime.strptime(%s, '%%H:%%M:%%S').time()", pyRepr(v)), nil
		case "DateTime":
			return fmt.Sprintf("datetime.strptime(%s, '%%Y-%%m-%%dT%%H:%%M:%%S')", pyRepr(v)), nil
		case "Timestamp":
			return fmt.Sprintf("datetime.strptime(%s, '%%Y-%%m-%%d %%H:%%M:%%S')", pyRepr(v)), nil
		}
		return pyRepr(v), nil
	}
	if re, im, ok := n.ComplexValue(); ok {
		return fmt.Sprintf("complex(%s, %s)", pyFloat(re), pyFloat(im)), nil
	}
	return "", asterrors.Newf(asterrors.KindNotImplemented,
		"no Python rendering for literal of type %s", typeName)
}

func (g *PythonGenerator) VisitLiteralNone(n *ast.LiteralNone) (string, error) {
	return "None", nil
}

func (g *PythonGenerator) joinExprs(elems []ast.Expr) (string, error) {
	parts := make([]string, 0, len(elems))
	for _, e := range elems {
		s, err := g.emit(e)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", "), nil
}

func (g *PythonGenerator) VisitLiteralList(n *ast.LiteralList) (string, error) {
	elems, err := g.joinExprs(n.Elems)
	if err != nil {
		return "", err
	}
	return "[" + elems + "]", nil
}

func (g *PythonGenerator) VisitLiteralSet(n *ast.LiteralSet) (string, error) {
	elems, err := g.joinExprs(n.Elems)
	if err != nil {
		return "", err
	}
	return "{" + elems + "}", nil
}

func (g *PythonGenerator) VisitLiteralTuple(n *ast.LiteralTuple) (string, error) {
	elems, err := g.joinExprs(n.Elems)
	if err != nil {
		return "", err
	}
	if len(n.Elems) == 1 {
		return "(" + elems + ",)", nil
	}
	return "(" + elems + ")", nil
}

func (g *PythonGenerator) VisitLiteralMap(n *ast.LiteralMap) (string, error) {
	parts := make([]string, 0, len(n.Entries))
	for _, e := range n.Entries {
		key, err := g.emit(e.Key)
		if err != nil {
			return "", err
		}
		value, err := g.emit(e.Value)
		if err != nil {
			return "", err
		}
		parts = append(parts, key+": "+value)
	}
	return "{" + strings.Join(parts, ", ") + "}", nil
}

func (g *PythonGenerator) VisitUnaryOp(n *ast.UnaryOp) (string, error) {
	operand, err := g.emit(n.Operand)
	if err != nil {
		return "", err
	}
	return "(" + n.Op + operand + ")", nil
}

// binaryPyOps maps operators whose Python spelling differs from the tree's.
var binaryPyOps = map[string]string{"^": "**"}

func (g *PythonGenerator) VisitBinaryOp(n *ast.BinaryOp) (string, error) {
	lhs, err := g.emit(n.Lhs)
	if err != nil {
		return "", err
	}
	rhs, err := g.emit(n.Rhs)
	if err != nil {
		return "", err
	}
	op := n.Op
	if mapped, ok := binaryPyOps[op]; ok {
		op = mapped
	}
	return fmt.Sprintf("(%s %s %s)", lhs, op, rhs), nil
}

func (g *PythonGenerator) VisitCompareOp(n *ast.CompareOp) (string, error) {
	left, err := g.emit(n.Left)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(n.Ops))
	for i, op := range n.Ops {
		c, err := g.emit(n.Comparators[i])
		if err != nil {
			return "", err
		}
		parts = append(parts, op+" "+c)
	}
	return fmt.Sprintf("(%s %s)", left, strings.Join(parts, " ")), nil
}

func (g *PythonGenerator) VisitBoolOp(n *ast.BoolOp) (string, error) {
	lhs, err := g.emit(n.Lhs)
	if err != nil {
		return "", err
	}
	rhs, err := g.emit(n.Rhs)
	if err != nil {
		return "", err
	}
	switch n.Op {
	case "and", "or":
		return fmt.Sprintf("%s %s %s", lhs, n.Op, rhs), nil
	case "xor":
		return fmt.Sprintf("%s ^ %s", lhs, rhs), nil
	case "nand":
		return fmt.Sprintf("not (%s and %s)", lhs, rhs), nil
	case "nor":
		return fmt.Sprintf("not (%s or %s)", lhs, rhs), nil
	case "xnor":
		return fmt.Sprintf("not (%s ^ %s)", lhs, rhs), nil
	}
	return "", asterrors.Newf(asterrors.KindNotImplemented,
		"no Python rendering for boolean operator %q", n.Op)
}

func (g *PythonGenerator) VisitNotOp(n *ast.NotOp) (string, error) {
	operand, err := g.emit(n.Operand)
	if err != nil {
		return "", err
	}
	return "not " + operand, nil
}

func (g *PythonGenerator) VisitAugAssign(n *ast.AugAssign) (string, error) {
	target, err := g.emit(n.Target)
	if err != nil {
		return "", err
	}
	value, err := g.emit(n.Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s %s", target, n.Op, value), nil
}

func (g *PythonGenerator) VisitWalrusOp(n *ast.WalrusOp) (string, error) {
	lhs, err := g.emit(n.Target)
	if err != nil {
		return "", err
	}
	rhs, err := g.emit(n.Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s := %s)", lhs, rhs), nil
}

func (g *PythonGenerator) VisitStarred(n *ast.Starred) (string, error) {
	value, err := g.emit(n.Value)
	if err != nil {
		return "", err
	}
	return "*" + value, nil
}

func (g *PythonGenerator) VisitTypeCastExpr(n *ast.TypeCastExpr) (string, error) {
	target, err := g.emit(n.Target)
	if err != nil {
		return "", err
	}
	value, err := g.emit(n.Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("cast(%s, %s)", target, value), nil
}

func (g *PythonGenerator) VisitSubscriptExpr(n *ast.SubscriptExpr) (string, error) {
	value, err := g.emit(n.Value)
	if err != nil {
		return "", err
	}
	if n.Index != nil {
		index, err := g.emit(n.Index)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s[%s]", value, index), nil
	}
	part := func(e ast.Expr) (string, error) {
		if e == nil {
			return "", nil
		}
		return g.emit(e)
	}
	lower, err := part(n.Lower)
	if err != nil {
		return "", err
	}
	upper, err := part(n.Upper)
	if err != nil {
		return "", err
	}
	slice := fmt.Sprintf("%s[%s:%s", value, lower, upper)
	if n.Step != nil {
		step, err := g.emit(n.Step)
		if err != nil {
			return "", err
		}
		slice += ":" + step
	}
	return slice + "]", nil
}

func (g *PythonGenerator) VisitIdentifier(n *ast.Identifier) (string, error) {
	return n.Name, nil
}

func (g *PythonGenerator) VisitVariable(n *ast.Variable) (string, error) {
	return n.Name, nil
}

func (g *PythonGenerator) VisitVariableDeclaration(n *ast.VariableDeclaration) (string, error) {
	typ, err := g.emit(n.VarType)
	if err != nil {
		return "", err
	}
	if n.Value == nil {
		return fmt.Sprintf("%s: %s", n.Name, typ), nil
	}
	value, err := g.emit(n.Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: %s = %s", n.Name, typ, value), nil
}

func (g *PythonGenerator) VisitInlineVariableDeclaration(n *ast.InlineVariableDeclaration) (string, error) {
	if n.Value == nil {
		return n.Name, nil
	}
	value, err := g.emit(n.Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s = %s", n.Name, value), nil
}

func (g *PythonGenerator) VisitVariableAssignment(n *ast.VariableAssignment) (string, error) {
	value, err := g.emit(n.Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s = %s", n.Name, value), nil
}

func (g *PythonGenerator) VisitBlock(n *ast.Block) (string, error) {
	return g.renderBlock(n)
}

func (g *PythonGenerator) VisitIfStmt(n *ast.IfStmt) (string, error) {
	condition, err := g.emit(n.Condition)
	if err != nil {
		return "", err
	}
	then, err := g.renderBlock(n.Then)
	if err != nil {
		return "", err
	}
	out := fmt.Sprintf("if %s:\n%s", condition, then)
	if n.Else != nil {
		els, err := g.renderBlock(n.Else)
		if err != nil {
			return "", err
		}
		out += fmt.Sprintf("\n%selse:\n%s", g.pad(), els)
	}
	return out, nil
}

func (g *PythonGenerator) VisitIfExpr(n *ast.IfExpr) (string, error) {
	condition, err := g.emit(n.Condition)
	if err != nil {
		return "", err
	}
	then, err := g.emit(n.Then)
	if err != nil {
		return "", err
	}
	els, err := g.emit(n.Else)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s if %s else %s", then, condition, els), nil
}

func (g *PythonGenerator) rangeHeader(variable *ast.InlineVariableDeclaration, start, end, step ast.Expr) (string, error) {
	s, err := g.emit(start)
	if err != nil {
		return "", err
	}
	e, err := g.emit(end)
	if err != nil {
		return "", err
	}
	st, err := g.emit(step)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s in range(%s, %s, %s)", variable.Name, s, e, st), nil
}

func (g *PythonGenerator) VisitForRangeLoopStmt(n *ast.ForRangeLoopStmt) (string, error) {
	header, err := g.rangeHeader(n.Variable, n.Start, n.End, n.Step)
	if err != nil {
		return "", err
	}
	body, err := g.renderBlock(n.Body)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("for %s:\n%s", header, body), nil
}

func (g *PythonGenerator) VisitForRangeLoopExpr(n *ast.ForRangeLoopExpr) (string, error) {
	header, err := g.rangeHeader(n.Variable, n.Start, n.End, n.Step)
	if err != nil {
		return "", err
	}
	body, err := g.singleExprBlock(n.Body, "a range loop expression")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("result = [%s for %s]", body, header), nil
}

func (g *PythonGenerator) VisitForCountLoopStmt(n *ast.ForCountLoopStmt) (string, error) {
	init, err := g.emit(n.Initializer)
	if err != nil {
		return "", err
	}
	condition, err := g.emit(n.Condition)
	if err != nil {
		return "", err
	}
	update, err := g.emit(n.Update)
	if err != nil {
		return "", err
	}
	body, err := g.renderBlock(n.Body)
	if err != nil {
		return "", err
	}
	inner := g.pad() + indentUnit
	return fmt.Sprintf("%s\n%swhile %s:\n%s\n%s%s",
		init, g.pad(), condition, body, inner, update), nil
}

func (g *PythonGenerator) VisitForCountLoopExpr(n *ast.ForCountLoopExpr) (string, error) {
	body, err := g.singleExprBlock(n.Body, "a counted loop expression")
	if err != nil {
		return "", err
	}
	condition, err := g.emit(n.Condition)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("[%s for %s in iter(lambda: %s, False)]",
		body, n.Initializer.Name, condition), nil
}

func (g *PythonGenerator) VisitWhileStmt(n *ast.WhileStmt) (string, error) {
	condition, err := g.emit(n.Condition)
	if err != nil {
		return "", err
	}
	body, err := g.renderBlock(n.Body)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("while %s:\n%s", condition, body), nil
}

func (g *PythonGenerator) VisitWhileExpr(n *ast.WhileExpr) (string, error) {
	condition, err := g.emit(n.Condition)
	if err != nil {
		return "", err
	}
	body, err := g.singleExprBlock(n.Body, "a while expression")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("[%s for _ in iter(lambda: %s, False)]", body, condition), nil
}

func (g *PythonGenerator) VisitDoWhileStmt(n *ast.DoWhileStmt) (string, error) {
	body, err := g.renderBlock(n.Body)
	if err != nil {
		return "", err
	}
	condition, err := g.emit(n.Condition)
	if err != nil {
		return "", err
	}
	inner := g.pad() + indentUnit
	return fmt.Sprintf("while True:\n%s\n%sif not %s:\n%s%sbreak",
		body, inner, condition, inner, indentUnit), nil
}

func (g *PythonGenerator) VisitSwitchStmt(n *ast.SwitchStmt) (string, error) {
	subject, err := g.emit(n.Subject)
	if err != nil {
		return "", err
	}
	g.indent++
	cases := make([]string, 0, len(n.Cases))
	for _, c := range n.Cases {
		s, err := g.emit(c)
		if err != nil {
			g.indent--
			return "", err
		}
		cases = append(cases, g.pad()+s)
	}
	g.indent--
	return fmt.Sprintf("match %s:\n%s", subject, strings.Join(cases, "\n")), nil
}

func (g *PythonGenerator) VisitCaseStmt(n *ast.CaseStmt) (string, error) {
	pattern := "_"
	if n.Condition != nil {
		s, err := g.emit(n.Condition)
		if err != nil {
			return "", err
		}
		pattern = s
	}
	body, err := g.renderBlock(n.Body)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("case %s:\n%s", pattern, body), nil
}

func (g *PythonGenerator) VisitBreakStmt(n *ast.BreakStmt) (string, error) {
	return "break", nil
}

func (g *PythonGenerator) VisitContinueStmt(n *ast.ContinueStmt) (string, error) {
	return "continue", nil
}

func (g *PythonGenerator) VisitComprehensionClause(n *ast.ComprehensionClause) (string, error) {
	target, err := g.emit(n.Target)
	if err != nil {
		return "", err
	}
	iterable, err := g.emit(n.Iterable)
	if err != nil {
		return "", err
	}
	out := fmt.Sprintf("for %s in %s", target, iterable)
	if n.IsAsync {
		out = "async " + out
	}
	for _, f := range n.Filters {
		s, err := g.emit(f)
		if err != nil {
			return "", err
		}
		out += " if " + s
	}
	return out, nil
}

func (g *PythonGenerator) renderClauses(clauses []*ast.ComprehensionClause) (string, error) {
	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		s, err := g.emit(c)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " "), nil
}

func (g *PythonGenerator) VisitListComprehension(n *ast.ListComprehension) (string, error) {
	element, err := g.emit(n.Element)
	if err != nil {
		return "", err
	}
	clauses, err := g.renderClauses(n.Clauses)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("[%s %s]", element, clauses), nil
}

func (g *PythonGenerator) VisitSetComprehension(n *ast.SetComprehension) (string, error) {
	element, err := g.emit(n.Element)
	if err != nil {
		return "", err
	}
	clauses, err := g.renderClauses(n.Clauses)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("{%s %s}", element, clauses), nil
}

func (g *PythonGenerator) VisitDictComprehension(n *ast.DictComprehension) (string, error) {
	key, err := g.emit(n.Key)
	if err != nil {
		return "", err
	}
	value, err := g.emit(n.Value)
	if err != nil {
		return "", err
	}
	clauses, err := g.renderClauses(n.Clauses)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("{%s: %s %s}", key, value, clauses), nil
}

func (g *PythonGenerator) VisitGeneratorExpr(n *ast.GeneratorExpr) (string, error) {
	element, err := g.emit(n.Element)
	if err != nil {
		return "", err
	}
	clauses, err := g.renderClauses(n.Clauses)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s %s)", element, clauses), nil
}

func (g *PythonGenerator) VisitThrowStmt(n *ast.ThrowStmt) (string, error) {
	if n.Exception == nil {
		return "raise", nil
	}
	exception, err := g.emit(n.Exception)
	if err != nil {
		return "", err
	}
	return "raise " + exception, nil
}

func (g *PythonGenerator) VisitCatchHandlerStmt(n *ast.CatchHandlerStmt) (string, error) {
	out := "except"
	if len(n.Types) > 0 {
		parts := make([]string, 0, len(n.Types))
		for _, t := range n.Types {
			s, err := g.emit(t)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		out += " (" + strings.Join(parts, ", ") + ")"
	}
	if n.Name != "" {
		out += " as " + n.Name
	}
	body, err := g.renderBlock(n.Body)
	if err != nil {
		return "", err
	}
	return out + ":\n" + body, nil
}

func (g *PythonGenerator) VisitExceptionHandlerStmt(n *ast.ExceptionHandlerStmt) (string, error) {
	body, err := g.renderBlock(n.Body)
	if err != nil {
		return "", err
	}
	out := "try:\n" + body
	for _, h := range n.Handlers {
		s, err := g.emit(h)
		if err != nil {
			return "", err
		}
		out += "\n" + g.pad() + s
	}
	if n.Finally != nil {
		s, err := g.emit(n.Finally)
		if err != nil {
			return "", err
		}
		out += "\n" + g.pad() + s
	}
	return out, nil
}

func (g *PythonGenerator) VisitFinallyHandlerStmt(n *ast.FinallyHandlerStmt) (string, error) {
	body, err := g.renderBlock(n.Body)
	if err != nil {
		return "", err
	}
	return "finally:\n" + body, nil
}

func (g *PythonGenerator) VisitArgument(n *ast.Argument) (string, error) {
	typ, err := g.emit(n.ArgType)
	if err != nil {
		return "", err
	}
	out := fmt.Sprintf("%s: %s", n.Name, typ)
	if n.Default != nil {
		def, err := g.emit(n.Default)
		if err != nil {
			return "", err
		}
		out += " = " + def
	}
	return out, nil
}

func (g *PythonGenerator) VisitArguments(n *ast.Arguments) (string, error) {
	parts := make([]string, 0, len(n.Args))
	for _, a := range n.Args {
		s, err := g.emit(a)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", "), nil
}

func (g *PythonGenerator) functionHeader(keyword string, prototype *ast.FunctionPrototype) (string, error) {
	args, err := g.emit(prototype.Args)
	if err != nil {
		return "", err
	}
	returns, err := g.emit(prototype.ReturnType)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s(%s) -> %s:", keyword, prototype.Name, args, returns), nil
}

func (g *PythonGenerator) VisitFunctionDef(n *ast.FunctionDef) (string, error) {
	header, err := g.functionHeader("def", n.Prototype)
	if err != nil {
		return "", err
	}
	body, err := g.renderBlock(n.Body)
	if err != nil {
		return "", err
	}
	return header + "\n" + body, nil
}

func (g *PythonGenerator) VisitFunctionAsyncDef(n *ast.FunctionAsyncDef) (string, error) {
	header, err := g.functionHeader("async def", n.Prototype)
	if err != nil {
		return "", err
	}
	body, err := g.renderBlock(n.Body)
	if err != nil {
		return "", err
	}
	return header + "\n" + body, nil
}

func (g *PythonGenerator) VisitFunctionReturn(n *ast.FunctionReturn) (string, error) {
	if n.Value == nil {
		return "return", nil
	}
	value, err := g.emit(n.Value)
	if err != nil {
		return "", err
	}
	return "return " + value, nil
}

func (g *PythonGenerator) VisitFunctionCall(n *ast.FunctionCall) (string, error) {
	args, err := g.joinExprs(n.Args)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s)", n.Callee, args), nil
}

func (g *PythonGenerator) VisitLambdaExpr(n *ast.LambdaExpr) (string, error) {
	body, err := g.emit(n.Body)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("lambda %s: %s", strings.Join(n.Params, ", "), body), nil
}

func (g *PythonGenerator) VisitYieldExpr(n *ast.YieldExpr) (string, error) {
	if n.Value == nil {
		return "yield", nil
	}
	value, err := g.emit(n.Value)
	if err != nil {
		return "", err
	}
	return "yield " + value, nil
}

func (g *PythonGenerator) VisitAwaitExpr(n *ast.AwaitExpr) (string, error) {
	value, err := g.emit(n.Value)
	if err != nil {
		return "", err
	}
	return "await " + value, nil
}

func (g *PythonGenerator) classHeader(name string, bases []ast.Expr, abstract bool) (string, error) {
	parents := make([]string, 0, len(bases)+1)
	for _, b := range bases {
		s, err := g.emit(b)
		if err != nil {
			return "", err
		}
		parents = append(parents, s)
	}
	if abstract {
		parents = append(parents, "ABC")
	}
	if len(parents) == 0 {
		return fmt.Sprintf("class %s:", name), nil
	}
	return fmt.Sprintf("class %s(%s):", name, strings.Join(parents, ", ")), nil
}

func (g *PythonGenerator) VisitClassDeclStmt(n *ast.ClassDeclStmt) (string, error) {
	header, err := g.classHeader(n.Name, n.Bases, n.IsAbstract)
	if err != nil {
		return "", err
	}
	return header + "\n" + g.pad() + indentUnit + "pass", nil
}

func (g *PythonGenerator) VisitClassDefStmt(n *ast.ClassDefStmt) (string, error) {
	header, err := g.classHeader(n.Name, n.Bases, n.IsAbstract)
	if err != nil {
		return "", err
	}
	g.indent++
	lines := make([]string, 0, len(n.Attributes)+len(n.Methods))
	for _, a := range n.Attributes {
		s, err := g.emit(a)
		if err != nil {
			g.indent--
			return "", err
		}
		lines = append(lines, g.pad()+s)
	}
	for _, m := range n.Methods {
		s, err := g.emit(m)
		if err != nil {
			g.indent--
			return "", err
		}
		lines = append(lines, g.pad()+s)
	}
	if len(lines) == 0 {
		lines = append(lines, g.pad()+"pass")
	}
	g.indent--
	return header + "\n" + strings.Join(lines, "\n"), nil
}

func (g *PythonGenerator) structBody(name string, attributes []*ast.VariableDeclaration) (string, error) {
	g.indent++
	lines := make([]string, 0, len(attributes))
	for _, a := range attributes {
		s, err := g.emit(a)
		if err != nil {
			g.indent--
			return "", err
		}
		lines = append(lines, g.pad()+s)
	}
	if len(lines) == 0 {
		lines = append(lines, g.pad()+"pass")
	}
	g.indent--
	return fmt.Sprintf("@dataclass\nclass %s:\n%s", name, strings.Join(lines, "\n")), nil
}

func (g *PythonGenerator) VisitStructDeclStmt(n *ast.StructDeclStmt) (string, error) {
	return g.structBody(n.Name, nil)
}

func (g *PythonGenerator) VisitStructDefStmt(n *ast.StructDefStmt) (string, error) {
	return g.structBody(n.Name, n.Attributes)
}

func (g *PythonGenerator) VisitEnumDeclStmt(n *ast.EnumDeclStmt) (string, error) {
	g.indent++
	lines := make([]string, 0, len(n.Attributes))
	for _, a := range n.Attributes {
		s, err := g.emit(a)
		if err != nil {
			g.indent--
			return "", err
		}
		lines = append(lines, g.pad()+s)
	}
	if len(lines) == 0 {
		lines = append(lines, g.pad()+"pass")
	}
	g.indent--
	return fmt.Sprintf("class %s(Enum):\n%s", n.Name, strings.Join(lines, "\n")), nil
}

func (g *PythonGenerator) VisitAliasExpr(n *ast.AliasExpr) (string, error) {
	if n.Asname != "" {
		return fmt.Sprintf("%s as %s", n.Name, n.Asname), nil
	}
	return n.Name, nil
}

func (g *PythonGenerator) renderAliases(names []*ast.AliasExpr) (string, error) {
	parts := make([]string, 0, len(names))
	for _, a := range names {
		s, err := g.emit(a)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", "), nil
}

func (g *PythonGenerator) VisitImportStmt(n *ast.ImportStmt) (string, error) {
	names, err := g.renderAliases(n.Names)
	if err != nil {
		return "", err
	}
	return "import " + names, nil
}

func (g *PythonGenerator) VisitImportFromStmt(n *ast.ImportFromStmt) (string, error) {
	names, err := g.renderAliases(n.Names)
	if err != nil {
		return "", err
	}
	module := strings.Repeat(".", n.Level) + n.Module
	return fmt.Sprintf("from %s import %s", module, names), nil
}

// renderTopLevel renders the statements of a module or program body without
// extra indentation.
func (g *PythonGenerator) renderTopLevel(b *ast.Block) (string, error) {
	lines := make([]string, 0, len(b.Nodes))
	for _, node := range b.Nodes {
		s, err := g.emit(node)
		if err != nil {
			return "", err
		}
		lines = append(lines, g.pad()+s)
	}
	return strings.Join(lines, "\n"), nil
}

func (g *PythonGenerator) VisitModule(n *ast.Module) (string, error) {
	return g.renderTopLevel(n.Body)
}

func (g *PythonGenerator) VisitPackage(n *ast.Package) (string, error) {
	parts := make([]string, 0, len(n.Modules))
	for _, m := range n.Modules {
		s, err := g.emit(m)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	for _, p := range n.Packages {
		s, err := g.emit(p)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n\n"), nil
}

func (g *PythonGenerator) VisitProgram(n *ast.Program) (string, error) {
	parts := make([]string, 0, len(n.Packages)+1)
	for _, p := range n.Packages {
		s, err := g.emit(p)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	body, err := g.renderTopLevel(n.Body)
	if err != nil {
		return "", err
	}
	if body != "" {
		parts = append(parts, body)
	}
	return strings.Join(parts, "\n\n"), nil
}
