package ast

import (
	"math"
	"testing"

	"mercator-hq/astral/pkg/asterrors"
)

func TestLiteralIntRanges(t *testing.T) {
	tests := []struct {
		name    string
		build   func() (*Literal, error)
		wantErr bool
	}{
		{"int8 in range", func() (*Literal, error) { return NewLiteralInt8(100) }, false},
		{"int8 max", func() (*Literal, error) { return NewLiteralInt8(127) }, false},
		{"int8 overflow", func() (*Literal, error) { return NewLiteralInt8(200) }, true},
		{"int8 underflow", func() (*Literal, error) { return NewLiteralInt8(-129) }, true},
		{"int16 overflow", func() (*Literal, error) { return NewLiteralInt16(40000) }, true},
		{"int32 in range", func() (*Literal, error) { return NewLiteralInt32(1 << 30) }, false},
		{"uint8 negative", func() (*Literal, error) { return NewLiteralUInt8(-1) }, true},
		{"uint8 max", func() (*Literal, error) { return NewLiteralUInt8(255) }, false},
		{"uint16 overflow", func() (*Literal, error) { return NewLiteralUInt16(70000) }, true},
		{"uint32 in range", func() (*Literal, error) { return NewLiteralUInt32(1 << 32 - 1) }, false},
		{"float16 overflow", func() (*Literal, error) { return NewLiteralFloat16(70000) }, true},
		{"float16 in range", func() (*Literal, error) { return NewLiteralFloat16(1.5) }, false},
		{"float32 overflow", func() (*Literal, error) { return NewLiteralFloat32(4e38) }, true},
		{"float64 large", func() (*Literal, error) { return NewLiteralFloat64(4e38) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lit, err := tt.build()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", lit)
				}
				if !asterrors.IsKind(err, asterrors.KindValue) {
					t.Errorf("expected value-kind error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLiteralUnsignedWideValues(t *testing.T) {
	lit, err := NewLiteralUInt64(math.MaxUint64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := lit.Value().(uint64); !ok || v != math.MaxUint64 {
		t.Errorf("Value() = %T %v, want uint64 %d", lit.Value(), lit.Value(), uint64(math.MaxUint64))
	}
	if got := lit.String(); got != "LiteralUInt64[18446744073709551615]" {
		t.Errorf("String() = %q", got)
	}

	wide, err := NewLiteralUInt128(math.MaxUint64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := wide.Value().(uint64); !ok || v != math.MaxUint64 {
		t.Errorf("Value() = %T %v, want uint64 %d", wide.Value(), wide.Value(), uint64(math.MaxUint64))
	}
}

func TestLiteralString(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*Literal, error)
		want  string
	}{
		{"int8", func() (*Literal, error) { return NewLiteralInt8(100) }, "LiteralInt8[100]"},
		{"int32 negative", func() (*Literal, error) { return NewLiteralInt32(-7) }, "LiteralInt32[-7]"},
		{"float64", func() (*Literal, error) { return NewLiteralFloat64(2.5) }, "LiteralFloat64[2.5]"},
		{"string", func() (*Literal, error) { return NewLiteralUTF8String("hi") }, "LiteralUTF8String[hi]"},
		{"char", func() (*Literal, error) { return NewLiteralUTF8Char("a") }, "LiteralUTF8Char[a]"},
		{"date", func() (*Literal, error) { return NewLiteralDate("2024-01-31") }, "LiteralDate[2024-01-31]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lit, err := tt.build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := lit.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLiteralTextValidation(t *testing.T) {
	if _, err := NewLiteralUTF8Char("ab"); !asterrors.IsKind(err, asterrors.KindValue) {
		t.Errorf("two-rune char: expected value-kind error, got %v", err)
	}
	if _, err := NewLiteralUTF8Char("\xff"); !asterrors.IsKind(err, asterrors.KindValue) {
		t.Errorf("invalid utf-8 char: expected value-kind error, got %v", err)
	}
	if _, err := NewLiteralUTF8String("\xff\xfe"); !asterrors.IsKind(err, asterrors.KindValue) {
		t.Errorf("invalid utf-8 string: expected value-kind error, got %v", err)
	}
	if _, err := NewLiteralUTF8Char("é"); err != nil {
		t.Errorf("multibyte rune: unexpected error %v", err)
	}
}

func TestLiteralTemporalValidation(t *testing.T) {
	tests := []struct {
		name    string
		build   func() (*Literal, error)
		wantErr bool
	}{
		{"valid date", func() (*Literal, error) { return NewLiteralDate("2024-02-29") }, false},
		{"invalid date", func() (*Literal, error) { return NewLiteralDate("2023-02-29") }, true},
		{"wrong date layout", func() (*Literal, error) { return NewLiteralDate("01/02/2024") }, true},
		{"valid time", func() (*Literal, error) { return NewLiteralTime("23:59:59") }, false},
		{"invalid time", func() (*Literal, error) { return NewLiteralTime("25:00:00") }, true},
		{"valid datetime", func() (*Literal, error) { return NewLiteralDateTime("2024-01-02T03:04:05") }, false},
		{"valid timestamp", func() (*Literal, error) { return NewLiteralTimestamp("2024-01-02 03:04:05") }, false},
		{"timestamp with T", func() (*Literal, error) { return NewLiteralTimestamp("2024-01-02T03:04:05") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			if tt.wantErr && !asterrors.IsKind(err, asterrors.KindValue) {
				t.Errorf("expected value-kind error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCollectionLiteralTypes(t *testing.T) {
	one, _ := NewLiteralInt32(1)
	two, _ := NewLiteralInt32(2)
	pi, _ := NewLiteralFloat64(3.14)

	homogeneous := NewLiteralList([]Expr{one, two})
	if got := homogeneous.Type().TypeName(); got != "List[Int32]" {
		t.Errorf("homogeneous list type = %q, want List[Int32]", got)
	}

	three, _ := NewLiteralInt32(3)
	mixed := NewLiteralList([]Expr{three, pi})
	if got := mixed.Type().TypeName(); got != "List[Any]" {
		t.Errorf("mixed list type = %q, want List[Any]", got)
	}

	key, _ := NewLiteralUTF8String("k")
	val, _ := NewLiteralInt64(9)
	m := NewLiteralMap([]MapEntry{{Key: key, Value: val}})
	if got := m.Type().TypeName(); got != "Map[UTF8String, Int64]" {
		t.Errorf("map type = %q, want Map[UTF8String, Int64]", got)
	}
}

func TestLiteralParentLinks(t *testing.T) {
	one, _ := NewLiteralInt32(1)
	list := NewLiteralList([]Expr{one})
	if one.Parent() != list {
		t.Error("element parent not set to enclosing list")
	}
	if list.Parent() != nil {
		t.Error("root node should have nil parent")
	}
}
