package ast

import (
	"fmt"
	"strings"
)

// typeFamily groups data types for compatibility and promotion decisions.
type typeFamily int

const (
	familyAny typeFamily = iota
	familyNone
	familyBoolean
	familySignedInt
	familyUnsignedInt
	familyFloat
	familyComplex
	familyChar
	familyString
	familyTemporal
	familyCollection
	familyStruct
	familyEnum
	familyFunction
)

// DataType describes the type of a value-producing node. Type nodes are
// immutable after construction.
type DataType interface {
	Expr

	// TypeName is the canonical spelling of the type, including element
	// type parameters (e.g. "Int32", "List[Int32]").
	TypeName() string

	// NBytes is the storage width of the type; 0 for variable-width and
	// non-numeric types.
	NBytes() int

	family() typeFamily
}

type exprMarker struct{}

func (exprMarker) exprNode() {}

type stmtMarker struct{}

func (stmtMarker) stmtNode() {}

// ScalarType is a leaf data type: fixed-width numerics, boolean, character,
// string, and temporal types. Variants are distinguished by name.
type ScalarType struct {
	BaseNode
	exprMarker
	name   string
	nbytes int
	fam    typeFamily
}

func newScalar(name string, nbytes int, fam typeFamily) *ScalarType {
	return &ScalarType{
		BaseNode: newBase(KindScalarType, NoSourceLocation),
		name:     name,
		nbytes:   nbytes,
		fam:      fam,
	}
}

// Signed integers of fixed widths.
func Int8() *ScalarType   { return newScalar("Int8", 1, familySignedInt) }
func Int16() *ScalarType  { return newScalar("Int16", 2, familySignedInt) }
func Int32() *ScalarType  { return newScalar("Int32", 4, familySignedInt) }
func Int64() *ScalarType  { return newScalar("Int64", 8, familySignedInt) }
func Int128() *ScalarType { return newScalar("Int128", 16, familySignedInt) }

// Unsigned integers of fixed widths.
func UInt8() *ScalarType   { return newScalar("UInt8", 1, familyUnsignedInt) }
func UInt16() *ScalarType  { return newScalar("UInt16", 2, familyUnsignedInt) }
func UInt32() *ScalarType  { return newScalar("UInt32", 4, familyUnsignedInt) }
func UInt64() *ScalarType  { return newScalar("UInt64", 8, familyUnsignedInt) }
func UInt128() *ScalarType { return newScalar("UInt128", 16, familyUnsignedInt) }

// Floating point types.
func Float16() *ScalarType { return newScalar("Float16", 2, familyFloat) }
func Float32() *ScalarType { return newScalar("Float32", 4, familyFloat) }
func Float64() *ScalarType { return newScalar("Float64", 8, familyFloat) }

// Complex types.
func Complex32() *ScalarType { return newScalar("Complex32", 8, familyComplex) }
func Complex64() *ScalarType { return newScalar("Complex64", 16, familyComplex) }

// Boolean, character and string types.
func Boolean() *ScalarType    { return newScalar("Boolean", 1, familyBoolean) }
func UTF8Char() *ScalarType   { return newScalar("UTF8Char", 0, familyChar) }
func UTF8String() *ScalarType { return newScalar("UTF8String", 0, familyString) }

// Temporal types.
func Date() *ScalarType      { return newScalar("Date", 4, familyTemporal) }
func Time() *ScalarType      { return newScalar("Time", 4, familyTemporal) }
func DateTime() *ScalarType  { return newScalar("DateTime", 8, familyTemporal) }
func Timestamp() *ScalarType { return newScalar("Timestamp", 8, familyTemporal) }

// AnyType is the unconstrained sentinel type.
func AnyType() *ScalarType { return newScalar("Any", 0, familyAny) }

// NoneType is the "no value" sentinel type.
func NoneType() *ScalarType { return newScalar("None", 0, familyNone) }

func (t *ScalarType) TypeName() string   { return t.name }
func (t *ScalarType) NBytes() int        { return t.nbytes }
func (t *ScalarType) family() typeFamily { return t.fam }
func (t *ScalarType) String() string     { return t.name }

// GetStruct returns the structural representation of the type.
func (t *ScalarType) GetStruct(simplified bool) ReprStruct {
	key := fmt.Sprintf("DATA-TYPE[%s]", t.name)
	return t.prepareStruct(key, t.name, simplified)
}

func (t *ScalarType) accept(v Visitor) (string, error) { return v.VisitScalarType(t) }

// ListType is an ordered homogeneous collection type. Declare AnyType as the
// element type for heterogeneous lists.
type ListType struct {
	BaseNode
	exprMarker
	Elem DataType
}

// NewListType creates a list type with the given element type.
func NewListType(elem DataType) *ListType {
	return &ListType{BaseNode: newBase(KindListType, NoSourceLocation), Elem: elem}
}

func (t *ListType) TypeName() string   { return fmt.Sprintf("List[%s]", t.Elem.TypeName()) }
func (t *ListType) NBytes() int        { return 0 }
func (t *ListType) family() typeFamily { return familyCollection }
func (t *ListType) String() string     { return t.TypeName() }

func (t *ListType) GetStruct(simplified bool) ReprStruct {
	key := fmt.Sprintf("DATA-TYPE[%s]", t.TypeName())
	value := NewDict().Set("element-type", t.Elem.GetStruct(simplified))
	return t.prepareStruct(key, value, simplified)
}

func (t *ListType) accept(v Visitor) (string, error) { return v.VisitListType(t) }

// SetType is an unordered homogeneous collection type.
type SetType struct {
	BaseNode
	exprMarker
	Elem DataType
}

// NewSetType creates a set type with the given element type.
func NewSetType(elem DataType) *SetType {
	return &SetType{BaseNode: newBase(KindSetType, NoSourceLocation), Elem: elem}
}

func (t *SetType) TypeName() string   { return fmt.Sprintf("Set[%s]", t.Elem.TypeName()) }
func (t *SetType) NBytes() int        { return 0 }
func (t *SetType) family() typeFamily { return familyCollection }
func (t *SetType) String() string     { return t.TypeName() }

func (t *SetType) GetStruct(simplified bool) ReprStruct {
	key := fmt.Sprintf("DATA-TYPE[%s]", t.TypeName())
	value := NewDict().Set("element-type", t.Elem.GetStruct(simplified))
	return t.prepareStruct(key, value, simplified)
}

func (t *SetType) accept(v Visitor) (string, error) { return v.VisitSetType(t) }

// MapType is a key/value collection type.
type MapType struct {
	BaseNode
	exprMarker
	Key   DataType
	Value DataType
}

// NewMapType creates a map type with the given key and value types.
func NewMapType(key, value DataType) *MapType {
	return &MapType{BaseNode: newBase(KindMapType, NoSourceLocation), Key: key, Value: value}
}

func (t *MapType) TypeName() string {
	return fmt.Sprintf("Map[%s, %s]", t.Key.TypeName(), t.Value.TypeName())
}
func (t *MapType) NBytes() int        { return 0 }
func (t *MapType) family() typeFamily { return familyCollection }
func (t *MapType) String() string     { return t.TypeName() }

func (t *MapType) GetStruct(simplified bool) ReprStruct {
	key := fmt.Sprintf("DATA-TYPE[%s]", t.TypeName())
	value := NewDict().
		Set("key-type", t.Key.GetStruct(simplified)).
		Set("value-type", t.Value.GetStruct(simplified))
	return t.prepareStruct(key, value, simplified)
}

func (t *MapType) accept(v Visitor) (string, error) { return v.VisitMapType(t) }

// TupleType is a fixed-arity heterogeneous collection type.
type TupleType struct {
	BaseNode
	exprMarker
	Elems []DataType
}

// NewTupleType creates a tuple type with the given element types.
func NewTupleType(elems ...DataType) *TupleType {
	return &TupleType{BaseNode: newBase(KindTupleType, NoSourceLocation), Elems: elems}
}

func (t *TupleType) TypeName() string {
	names := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		names[i] = e.TypeName()
	}
	return fmt.Sprintf("Tuple[%s]", strings.Join(names, ", "))
}
func (t *TupleType) NBytes() int        { return 0 }
func (t *TupleType) family() typeFamily { return familyCollection }
func (t *TupleType) String() string     { return t.TypeName() }

func (t *TupleType) GetStruct(simplified bool) ReprStruct {
	key := fmt.Sprintf("DATA-TYPE[%s]", t.TypeName())
	elems := make([]ReprStruct, len(t.Elems))
	for i, e := range t.Elems {
		elems[i] = e.GetStruct(simplified)
	}
	value := NewDict().Set("element-types", elems)
	return t.prepareStruct(key, value, simplified)
}

func (t *TupleType) accept(v Visitor) (string, error) { return v.VisitTupleType(t) }

// StructType names a struct declared elsewhere.
type StructType struct {
	BaseNode
	exprMarker
	Name string
}

// NewStructType creates a named struct type.
func NewStructType(name string) *StructType {
	return &StructType{BaseNode: newBase(KindStructType, NoSourceLocation), Name: name}
}

func (t *StructType) TypeName() string   { return t.Name }
func (t *StructType) NBytes() int        { return 0 }
func (t *StructType) family() typeFamily { return familyStruct }
func (t *StructType) String() string     { return fmt.Sprintf("StructType[%s]", t.Name) }

func (t *StructType) GetStruct(simplified bool) ReprStruct {
	key := fmt.Sprintf("STRUCT-TYPE[%s]", t.Name)
	return t.prepareStruct(key, t.Name, simplified)
}

func (t *StructType) accept(v Visitor) (string, error) { return v.VisitStructType(t) }

// EnumType names an enum declared elsewhere.
type EnumType struct {
	BaseNode
	exprMarker
	Name string
}

// NewEnumType creates a named enum type.
func NewEnumType(name string) *EnumType {
	return &EnumType{BaseNode: newBase(KindEnumType, NoSourceLocation), Name: name}
}

func (t *EnumType) TypeName() string   { return t.Name }
func (t *EnumType) NBytes() int        { return 0 }
func (t *EnumType) family() typeFamily { return familyEnum }
func (t *EnumType) String() string     { return fmt.Sprintf("EnumType[%s]", t.Name) }

func (t *EnumType) GetStruct(simplified bool) ReprStruct {
	key := fmt.Sprintf("ENUM-TYPE[%s]", t.Name)
	return t.prepareStruct(key, t.Name, simplified)
}

func (t *EnumType) accept(v Visitor) (string, error) { return v.VisitEnumType(t) }

// FunctionType describes a callable signature.
type FunctionType struct {
	BaseNode
	exprMarker
	Params []DataType
	Return DataType
}

// NewFunctionType creates a function type from parameter types and a return
// type.
func NewFunctionType(params []DataType, ret DataType) *FunctionType {
	return &FunctionType{
		BaseNode: newBase(KindFunctionType, NoSourceLocation),
		Params:   params,
		Return:   ret,
	}
}

func (t *FunctionType) TypeName() string {
	names := make([]string, len(t.Params))
	for i, p := range t.Params {
		names[i] = p.TypeName()
	}
	return fmt.Sprintf("Function[(%s) -> %s]", strings.Join(names, ", "), t.Return.TypeName())
}
func (t *FunctionType) NBytes() int        { return 0 }
func (t *FunctionType) family() typeFamily { return familyFunction }
func (t *FunctionType) String() string     { return t.TypeName() }

func (t *FunctionType) GetStruct(simplified bool) ReprStruct {
	params := make([]ReprStruct, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.GetStruct(simplified)
	}
	key := "FUNCTION-TYPE"
	value := NewDict().
		Set("param-types", params).
		Set("return-type", t.Return.GetStruct(simplified))
	return t.prepareStruct(key, value, simplified)
}

func (t *FunctionType) accept(v Visitor) (string, error) { return v.VisitFunctionType(t) }

// SameType reports whether two type descriptors denote the same type,
// including element type parameters.
func SameType(a, b DataType) bool {
	return a.TypeName() == b.TypeName()
}

// IsCompatible reports whether two types may meet in an operator or
// comparison. Compatibility is reflexive and symmetric: all numeric types
// are mutually compatible, characters and strings are mutually compatible,
// and AnyType is compatible with everything. It is not transitive across
// unrelated families; string and int are never compatible.
func IsCompatible(a, b DataType) bool {
	fa, fb := a.family(), b.family()
	if fa == familyAny || fb == familyAny {
		return true
	}
	if isNumericFamily(fa) && isNumericFamily(fb) {
		return true
	}
	if isTextFamily(fa) && isTextFamily(fb) {
		return true
	}
	switch fa {
	case familyBoolean, familyTemporal, familyStruct, familyEnum, familyFunction:
		return fa == fb && (fa == familyBoolean || SameType(a, b))
	case familyCollection:
		return fb == familyCollection && collectionCompatible(a, b)
	case familyNone:
		return fb == familyNone
	}
	return false
}

func isNumericFamily(f typeFamily) bool {
	switch f {
	case familySignedInt, familyUnsignedInt, familyFloat, familyComplex:
		return true
	}
	return false
}

func isTextFamily(f typeFamily) bool {
	return f == familyChar || f == familyString
}

func collectionCompatible(a, b DataType) bool {
	switch at := a.(type) {
	case *ListType:
		bt, ok := b.(*ListType)
		return ok && IsCompatible(at.Elem, bt.Elem)
	case *SetType:
		bt, ok := b.(*SetType)
		return ok && IsCompatible(at.Elem, bt.Elem)
	case *MapType:
		bt, ok := b.(*MapType)
		return ok && IsCompatible(at.Key, bt.Key) && IsCompatible(at.Value, bt.Value)
	case *TupleType:
		bt, ok := b.(*TupleType)
		if !ok || len(at.Elems) != len(bt.Elems) {
			return false
		}
		for i := range at.Elems {
			if !IsCompatible(at.Elems[i], bt.Elems[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// TypedExpr is implemented by expressions whose result type is known at
// construction.
type TypedExpr interface {
	Expr
	Type() DataType
}

// exprType returns the declared result type of an expression, or AnyType
// when the expression carries no type information.
func exprType(e Expr) DataType {
	if te, ok := e.(TypedExpr); ok {
		return te.Type()
	}
	return AnyType()
}
