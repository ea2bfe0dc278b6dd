package ast

import (
	"fmt"
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	"mercator-hq/astral/pkg/asterrors"
)

// complexValue holds the parts of a complex literal. JSON has no complex
// scalar, so the parts are kept separate.
type complexValue struct {
	Real float64
	Imag float64
}

// Literal is a leaf node holding a concrete value of a declared scalar type.
// Construction validates the value against the type's domain; an
// unrepresentable value fails with a value-kind error.
type Literal struct {
	BaseNode
	exprMarker
	typ   DataType
	value any
}

func newLiteral(typ DataType, value any, loc SourceLocation) *Literal {
	return &Literal{
		BaseNode: newBase(KindLiteral, loc),
		typ:      typ,
		value:    value,
	}
}

// Type returns the declared type of the literal.
func (l *Literal) Type() DataType { return l.typ }

// Value returns the held value: int64 (uint64 for the unsigned 64/128-bit
// widths), float64, bool, string, or a real/imaginary pair for complex
// literals.
func (l *Literal) Value() any { return l.value }

// ComplexValue returns the parts of a complex literal. ok is false for any
// other literal.
func (l *Literal) ComplexValue() (re, im float64, ok bool) {
	c, ok := l.value.(complexValue)
	return c.Real, c.Imag, ok
}

// String returns the tag form, e.g. "LiteralInt8[100]".
func (l *Literal) String() string {
	return fmt.Sprintf("Literal%s[%s]", l.typ.TypeName(), l.formatValue())
}

func (l *Literal) formatValue() string {
	switch v := l.value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	case complexValue:
		return fmt.Sprintf("%g+%gi", v.Real, v.Imag)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// GetStruct returns the structural representation of the literal.
func (l *Literal) GetStruct(simplified bool) ReprStruct {
	value := NewDict().Set("type", l.typ.TypeName())
	switch v := l.value.(type) {
	case int64:
		value.Set("value", int(v))
	case uint64:
		value.Set("value", v)
	case complexValue:
		value.Set("real", v.Real).Set("imag", v.Imag)
	default:
		value.Set("value", v)
	}
	return l.prepareStruct(l.String(), value, simplified)
}

func (l *Literal) accept(v Visitor) (string, error) { return v.VisitLiteral(l) }

func intLiteral(typ DataType, value, min, max int64, loc []SourceLocation) (*Literal, error) {
	if value < min || value > max {
		return nil, asterrors.Newf(asterrors.KindValue,
			"value %d out of range for %s [%d, %d]", value, typ.TypeName(), min, max)
	}
	return newLiteral(typ, value, optLoc(loc)), nil
}

func optLoc(loc []SourceLocation) SourceLocation {
	if len(loc) > 0 {
		return loc[0]
	}
	return NoSourceLocation
}

// NewLiteralInt8 creates a signed 8-bit integer literal.
func NewLiteralInt8(value int64, loc ...SourceLocation) (*Literal, error) {
	return intLiteral(Int8(), value, math.MinInt8, math.MaxInt8, loc)
}

// NewLiteralInt16 creates a signed 16-bit integer literal.
func NewLiteralInt16(value int64, loc ...SourceLocation) (*Literal, error) {
	return intLiteral(Int16(), value, math.MinInt16, math.MaxInt16, loc)
}

// NewLiteralInt32 creates a signed 32-bit integer literal.
func NewLiteralInt32(value int64, loc ...SourceLocation) (*Literal, error) {
	return intLiteral(Int32(), value, math.MinInt32, math.MaxInt32, loc)
}

// NewLiteralInt64 creates a signed 64-bit integer literal.
func NewLiteralInt64(value int64, loc ...SourceLocation) (*Literal, error) {
	return newLiteral(Int64(), value, optLoc(loc)), nil
}

// NewLiteralInt128 creates a signed 128-bit integer literal. Values are
// accepted up to the signed 64-bit range; the interchange form carries
// plain JSON numbers, which cannot express wider integers.
func NewLiteralInt128(value int64, loc ...SourceLocation) (*Literal, error) {
	return newLiteral(Int128(), value, optLoc(loc)), nil
}

// NewLiteralUInt8 creates an unsigned 8-bit integer literal.
func NewLiteralUInt8(value int64, loc ...SourceLocation) (*Literal, error) {
	return intLiteral(UInt8(), value, 0, math.MaxUint8, loc)
}

// NewLiteralUInt16 creates an unsigned 16-bit integer literal.
func NewLiteralUInt16(value int64, loc ...SourceLocation) (*Literal, error) {
	return intLiteral(UInt16(), value, 0, math.MaxUint16, loc)
}

// NewLiteralUInt32 creates an unsigned 32-bit integer literal.
func NewLiteralUInt32(value int64, loc ...SourceLocation) (*Literal, error) {
	return intLiteral(UInt32(), value, 0, math.MaxUint32, loc)
}

// NewLiteralUInt64 creates an unsigned 64-bit integer literal.
func NewLiteralUInt64(value uint64, loc ...SourceLocation) (*Literal, error) {
	return newLiteral(UInt64(), value, optLoc(loc)), nil
}

// NewLiteralUInt128 creates an unsigned 128-bit integer literal. Values are
// accepted up to the unsigned 64-bit range; the interchange form carries
// plain JSON numbers, which cannot express wider integers.
func NewLiteralUInt128(value uint64, loc ...SourceLocation) (*Literal, error) {
	return newLiteral(UInt128(), value, optLoc(loc)), nil
}

// NewLiteralFloat16 creates a 16-bit float literal.
func NewLiteralFloat16(value float64, loc ...SourceLocation) (*Literal, error) {
	// largest finite float16
	const maxFloat16 = 65504.0
	if math.Abs(value) > maxFloat16 {
		return nil, asterrors.Newf(asterrors.KindValue,
			"value %g out of range for Float16", value)
	}
	return newLiteral(Float16(), value, optLoc(loc)), nil
}

// NewLiteralFloat32 creates a 32-bit float literal.
func NewLiteralFloat32(value float64, loc ...SourceLocation) (*Literal, error) {
	if math.Abs(value) > math.MaxFloat32 {
		return nil, asterrors.Newf(asterrors.KindValue,
			"value %g out of range for Float32", value)
	}
	return newLiteral(Float32(), value, optLoc(loc)), nil
}

// NewLiteralFloat64 creates a 64-bit float literal.
func NewLiteralFloat64(value float64, loc ...SourceLocation) (*Literal, error) {
	return newLiteral(Float64(), value, optLoc(loc)), nil
}

// NewLiteralBoolean creates a boolean literal.
func NewLiteralBoolean(value bool, loc ...SourceLocation) *Literal {
	return newLiteral(Boolean(), value, optLoc(loc))
}

// NewLiteralComplex32 creates a 32-bit complex literal.
func NewLiteralComplex32(real, imag float64, loc ...SourceLocation) (*Literal, error) {
	if math.Abs(real) > math.MaxFloat32 || math.Abs(imag) > math.MaxFloat32 {
		return nil, asterrors.New(asterrors.KindValue,
			"complex part out of range for Complex32")
	}
	return newLiteral(Complex32(), complexValue{Real: real, Imag: imag}, optLoc(loc)), nil
}

// NewLiteralComplex64 creates a 64-bit complex literal.
func NewLiteralComplex64(real, imag float64, loc ...SourceLocation) (*Literal, error) {
	return newLiteral(Complex64(), complexValue{Real: real, Imag: imag}, optLoc(loc)), nil
}

// NewLiteralUTF8Char creates a single-character literal. The value must be
// exactly one valid rune.
func NewLiteralUTF8Char(value string, loc ...SourceLocation) (*Literal, error) {
	if !utf8.ValidString(value) {
		return nil, asterrors.New(asterrors.KindValue, "invalid UTF-8 sequence")
	}
	if utf8.RuneCountInString(value) != 1 {
		return nil, asterrors.Newf(asterrors.KindValue,
			"expected a single UTF-8 character, got %q", value)
	}
	return newLiteral(UTF8Char(), value, optLoc(loc)), nil
}

// NewLiteralUTF8String creates a string literal.
func NewLiteralUTF8String(value string, loc ...SourceLocation) (*Literal, error) {
	if !utf8.ValidString(value) {
		return nil, asterrors.New(asterrors.KindValue, "invalid UTF-8 sequence")
	}
	return newLiteral(UTF8String(), value, optLoc(loc)), nil
}

const (
	dateLayout      = "2006-01-02"
	timeLayout      = "15:04:05"
	dateTimeLayout  = "2006-01-02T15:04:05"
	timestampLayout = "2006-01-02 15:04:05"
)

func temporalLiteral(typ DataType, value, layout string, loc []SourceLocation) (*Literal, error) {
	if _, err := time.Parse(layout, value); err != nil {
		return nil, asterrors.Newf(asterrors.KindValue,
			"%q is not a valid %s (expected layout %s)", value, typ.TypeName(), layout)
	}
	return newLiteral(typ, value, optLoc(loc)), nil
}

// NewLiteralDate creates a date literal from "YYYY-MM-DD" text.
func NewLiteralDate(value string, loc ...SourceLocation) (*Literal, error) {
	return temporalLiteral(Date(), value, dateLayout, loc)
}

// NewLiteralTime creates a time literal from "HH:MM:SS" text.
func NewLiteralTime(value string, loc ...SourceLocation) (*Literal, error) {
	return temporalLiteral(Time(), value, timeLayout, loc)
}

// NewLiteralDateTime creates a datetime literal from "YYYY-MM-DDTHH:MM:SS"
// text.
func NewLiteralDateTime(value string, loc ...SourceLocation) (*Literal, error) {
	return temporalLiteral(DateTime(), value, dateTimeLayout, loc)
}

// NewLiteralTimestamp creates a timestamp literal from
// "YYYY-MM-DD HH:MM:SS" text.
func NewLiteralTimestamp(value string, loc ...SourceLocation) (*Literal, error) {
	return temporalLiteral(Timestamp(), value, timestampLayout, loc)
}

// LiteralNone is the "no value" literal.
type LiteralNone struct {
	BaseNode
	exprMarker
}

// NewLiteralNone creates a none literal.
func NewLiteralNone(loc ...SourceLocation) *LiteralNone {
	return &LiteralNone{BaseNode: newBase(KindLiteralNone, optLoc(loc))}
}

// Type returns NoneType.
func (l *LiteralNone) Type() DataType { return NoneType() }

func (l *LiteralNone) String() string { return "LiteralNone" }

// GetStruct returns the structural representation of the literal.
func (l *LiteralNone) GetStruct(simplified bool) ReprStruct {
	return l.prepareStruct("LiteralNone", "None", simplified)
}

func (l *LiteralNone) accept(v Visitor) (string, error) { return v.VisitLiteralNone(l) }

// LiteralList is an ordered collection literal; it owns its element
// subtrees.
type LiteralList struct {
	BaseNode
	exprMarker
	Elems []Expr
}

// NewLiteralList creates a list literal from element expressions.
func NewLiteralList(elems []Expr, loc ...SourceLocation) *LiteralList {
	l := &LiteralList{BaseNode: newBase(KindLiteralList, optLoc(loc)), Elems: elems}
	for _, e := range elems {
		e.SetParent(l)
	}
	return l
}

// Type returns a ListType parameterized by the common element type, or
// List[Any] for heterogeneous elements.
func (l *LiteralList) Type() DataType { return NewListType(commonElemType(l.Elems)) }

func (l *LiteralList) String() string { return fmt.Sprintf("LiteralList(%d)", len(l.Elems)) }

// GetStruct returns the structural representation of the literal.
func (l *LiteralList) GetStruct(simplified bool) ReprStruct {
	return l.prepareStruct("LITERAL-LIST", elemStructs(l.Elems, simplified), simplified)
}

func (l *LiteralList) accept(v Visitor) (string, error) { return v.VisitLiteralList(l) }

// LiteralSet is an unordered collection literal. Element order is preserved
// for serialization stability.
type LiteralSet struct {
	BaseNode
	exprMarker
	Elems []Expr
}

// NewLiteralSet creates a set literal from element expressions.
func NewLiteralSet(elems []Expr, loc ...SourceLocation) *LiteralSet {
	l := &LiteralSet{BaseNode: newBase(KindLiteralSet, optLoc(loc)), Elems: elems}
	for _, e := range elems {
		e.SetParent(l)
	}
	return l
}

// Type returns a SetType parameterized by the common element type.
func (l *LiteralSet) Type() DataType { return NewSetType(commonElemType(l.Elems)) }

func (l *LiteralSet) String() string { return fmt.Sprintf("LiteralSet(%d)", len(l.Elems)) }

// GetStruct returns the structural representation of the literal.
func (l *LiteralSet) GetStruct(simplified bool) ReprStruct {
	return l.prepareStruct("LITERAL-SET", elemStructs(l.Elems, simplified), simplified)
}

func (l *LiteralSet) accept(v Visitor) (string, error) { return v.VisitLiteralSet(l) }

// LiteralTuple is a fixed-arity collection literal.
type LiteralTuple struct {
	BaseNode
	exprMarker
	Elems []Expr
}

// NewLiteralTuple creates a tuple literal from element expressions.
func NewLiteralTuple(elems []Expr, loc ...SourceLocation) *LiteralTuple {
	l := &LiteralTuple{BaseNode: newBase(KindLiteralTuple, optLoc(loc)), Elems: elems}
	for _, e := range elems {
		e.SetParent(l)
	}
	return l
}

// Type returns a TupleType with one parameter per element.
func (l *LiteralTuple) Type() DataType {
	elems := make([]DataType, len(l.Elems))
	for i, e := range l.Elems {
		elems[i] = exprType(e)
	}
	return NewTupleType(elems...)
}

func (l *LiteralTuple) String() string { return fmt.Sprintf("LiteralTuple(%d)", len(l.Elems)) }

// GetStruct returns the structural representation of the literal.
func (l *LiteralTuple) GetStruct(simplified bool) ReprStruct {
	return l.prepareStruct("LITERAL-TUPLE", elemStructs(l.Elems, simplified), simplified)
}

func (l *LiteralTuple) accept(v Visitor) (string, error) { return v.VisitLiteralTuple(l) }

// MapEntry is one key/value pair of a LiteralMap.
type MapEntry struct {
	Key   Expr
	Value Expr
}

// LiteralMap is a key/value collection literal with insertion-ordered
// entries.
type LiteralMap struct {
	BaseNode
	exprMarker
	Entries []MapEntry
}

// NewLiteralMap creates a map literal from ordered entries.
func NewLiteralMap(entries []MapEntry, loc ...SourceLocation) *LiteralMap {
	l := &LiteralMap{BaseNode: newBase(KindLiteralMap, optLoc(loc)), Entries: entries}
	for _, e := range entries {
		e.Key.SetParent(l)
		e.Value.SetParent(l)
	}
	return l
}

// Type returns a MapType parameterized by the common key and value types.
func (l *LiteralMap) Type() DataType {
	keys := make([]Expr, len(l.Entries))
	values := make([]Expr, len(l.Entries))
	for i, e := range l.Entries {
		keys[i] = e.Key
		values[i] = e.Value
	}
	return NewMapType(commonElemType(keys), commonElemType(values))
}

func (l *LiteralMap) String() string { return fmt.Sprintf("LiteralMap(%d)", len(l.Entries)) }

// GetStruct returns the structural representation of the literal.
func (l *LiteralMap) GetStruct(simplified bool) ReprStruct {
	entries := make([]ReprStruct, len(l.Entries))
	for i, e := range l.Entries {
		entries[i] = NewDict().
			Set("key", e.Key.GetStruct(simplified)).
			Set("value", e.Value.GetStruct(simplified))
	}
	return l.prepareStruct("LITERAL-MAP", entries, simplified)
}

func (l *LiteralMap) accept(v Visitor) (string, error) { return v.VisitLiteralMap(l) }

func elemStructs(elems []Expr, simplified bool) []ReprStruct {
	out := make([]ReprStruct, len(elems))
	for i, e := range elems {
		out[i] = e.GetStruct(simplified)
	}
	return out
}

func commonElemType(elems []Expr) DataType {
	if len(elems) == 0 {
		return AnyType()
	}
	first := exprType(elems[0])
	for _, e := range elems[1:] {
		if !SameType(first, exprType(e)) {
			return AnyType()
		}
	}
	return first
}
