package engine

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ============================================================================
// CROSSTAB ENGINE TYPES — Scalars, Fields, Render-Ready Tables
// ============================================================================
// A Value is one cell of a Dataset. Values are comparable so they can key
// the grouping maps used by CrossTabulate.
//
// Comparability classes:
//   numeric — KindInt, KindFloat (1 == 1.0)
//   string  — KindString
//   bool    — KindBool
// Ordering across classes is refused with a TypeMismatchError.
// ============================================================================

// Kind is the scalar type of a Value or a Column.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return "invalid"
	}
}

// IsNumeric reports whether k is KindInt or KindFloat.
func (k Kind) IsNumeric() bool { return k == KindInt || k == KindFloat }

// ComparableWith reports whether values of kind k and o share a class.
func (k Kind) ComparableWith(o Kind) bool {
	if k == KindInvalid || o == KindInvalid {
		return false
	}
	if k.IsNumeric() && o.IsNumeric() {
		return true
	}
	return k == o
}

// MarshalJSON writes the kind name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// ============================================================================
// VALUE
// ============================================================================

// Value is an immutable scalar cell.
type Value struct {
	kind Kind
	i    int64 // KindInt, KindBool (0/1)
	f    float64
	s    string
}

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating point Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Bool returns a boolean Value.
func Bool(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.i = 1
	}
	return v
}

// ValueOf converts a Go scalar into a Value.
// Every int/uint width maps to KindInt, float32/float64 to KindFloat.
// Unsigned values above math.MaxInt64 are an InvalidValueError.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case float32, float64:
		f, err := cast.ToFloat64E(t)
		if err != nil {
			return Value{}, fmt.Errorf("convert %T: %w", x, err)
		}
		return Float(f), nil
	case uint, uint64:
		u, err := cast.ToUint64E(t)
		if err != nil {
			return Value{}, fmt.Errorf("convert %T: %w", x, err)
		}
		if u > math.MaxInt64 {
			return Value{}, &InvalidValueError{Row: -1, Reason: fmt.Sprintf("%T %d overflows int64", x, u)}
		}
		return Int(int64(u)), nil
	case int, int8, int16, int32, int64, uint8, uint16, uint32:
		i, err := cast.ToInt64E(t)
		if err != nil {
			return Value{}, fmt.Errorf("convert %T: %w", x, err)
		}
		return Int(i), nil
	case json.Number:
		if i, err := cast.ToInt64E(t); err == nil {
			return Int(i), nil
		}
		f, err := cast.ToFloat64E(t)
		if err != nil {
			return Value{}, fmt.Errorf("convert json number %q: %w", t.String(), err)
		}
		return Float(f), nil
	default:
		return Value{}, &TypeMismatchError{GoType: fmt.Sprintf("%T", x)}
	}
}

// Kind returns the scalar type of v.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds a scalar. The zero Value is invalid.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// Int returns v as int64. Floats are truncated, bools are 0/1.
func (v Value) Int() int64 {
	if v.kind == KindFloat {
		return int64(v.f)
	}
	return v.i
}

// Float returns v as float64.
func (v Value) Float() float64 {
	if v.kind == KindFloat {
		return v.f
	}
	return float64(v.i)
}

// Bool returns the boolean held by v.
func (v Value) Bool() bool { return v.kind == KindBool && v.i == 1 }

// String formats v for labels and table cells.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.i == 1)
	default:
		return ""
	}
}

// Interface returns v as a plain Go value (int64, float64, string, bool or nil).
func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindBool:
		return v.i == 1
	default:
		return nil
	}
}

// MarshalJSON writes v as its plain JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// isNaN reports whether v is a float NaN. NaN never equals itself and
// would split into one group per row, so datasets refuse it.
func (v Value) isNaN() bool { return v.kind == KindFloat && math.IsNaN(v.f) }

// Equal reports value equality. Numbers compare numerically across
// KindInt and KindFloat; other kinds must match exactly.
func (v Value) Equal(o Value) bool {
	if v.kind == KindFloat || o.kind == KindFloat {
		if !v.kind.IsNumeric() || !o.kind.IsNumeric() {
			return false
		}
		return compareNumeric(v, o) == 0 && !v.isNaN() && !o.isNaN()
	}
	return v == o
}

// Compare orders v against o: -1, 0 or +1.
// Values from different classes return a TypeMismatchError.
func (v Value) Compare(o Value) (int, error) {
	if !v.kind.ComparableWith(o.kind) {
		return 0, &TypeMismatchError{Want: v.kind, Got: o.kind}
	}
	switch {
	case v.kind.IsNumeric():
		return compareNumeric(v, o), nil
	case v.kind == KindString:
		return strings.Compare(v.s, o.s), nil
	default:
		return cmp.Compare(v.i, o.i), nil
	}
}

// compareNumeric orders two numeric values. Int against Float is exact:
// the int is never rounded through float64.
func compareNumeric(a, b Value) int {
	switch {
	case a.kind == KindInt && b.kind == KindInt:
		return cmp.Compare(a.i, b.i)
	case a.kind == KindFloat && b.kind == KindFloat:
		return cmp.Compare(a.f, b.f)
	case a.kind == KindInt:
		return compareIntFloat(a.i, b.f)
	default:
		return -compareIntFloat(b.i, a.f)
	}
}

// compareIntFloat orders i against f without losing int64 precision.
// NaN sorts before every number, matching cmp.Compare.
func compareIntFloat(i int64, f float64) int {
	switch {
	case math.IsNaN(f):
		return 1
	case f >= 1<<63:
		return -1
	case f < -(1 << 63):
		return 1
	}
	t := math.Trunc(f)
	if c := cmp.Compare(i, int64(t)); c != 0 {
		return c
	}
	// i equals the integral part; the fraction decides.
	return cmp.Compare(t, f)
}

// floatToInt returns f as an int64 when f is integral and in range.
func floatToInt(f float64) (int64, bool) {
	if f != math.Trunc(f) || f >= 1<<63 || f < -(1<<63) {
		return 0, false
	}
	return int64(f), true
}

// compareValues orders values already known to share a class,
// e.g. the values of one Column.
func compareValues(a, b Value) int {
	c, err := a.Compare(b)
	if err != nil {
		return cmp.Compare(a.kind, b.kind)
	}
	return c
}

// ============================================================================
// FIELDS & ROWS
// ============================================================================

// Field is one entry of a Dataset schema.
type Field struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Row is a single dataset row addressed by column name.
type Row map[string]Value

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string        `json:"title"`
	Columns []TableColumn `json:"columns"`
	Rows    [][]string    `json:"rows"`
	Summary *Summary      `json:"summary,omitempty"`
}

// TableColumn defines a table column.
type TableColumn struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}
