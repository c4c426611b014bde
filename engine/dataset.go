package engine

import (
	"fmt"
)

// ============================================================================
// DATASET — Fixed-Schema Tabular Data
// ============================================================================
// A Dataset is an ordered set of rows addressed by column name. Storage is
// column-oriented: one homogeneous Column per field, all of equal length.
//
// The schema is fixed when the Dataset is built. The only mutation is
// appending whole, validated columns (see ApplyIndicators), so existing
// columns and row order never change.
//
// Callers own the Dataset. The engine adds no locking; serialize access to a
// Dataset shared between goroutines.
// ============================================================================

// Column is one named, homogeneous column of values.
type Column struct {
	name   string
	kind   Kind
	values []Value
}

// IntColumn creates a KindInt column.
func IntColumn(name string, vals ...int64) Column {
	values := make([]Value, len(vals))
	for i, v := range vals {
		values[i] = Int(v)
	}
	return Column{name: name, kind: KindInt, values: values}
}

// FloatColumn creates a KindFloat column.
func FloatColumn(name string, vals ...float64) Column {
	values := make([]Value, len(vals))
	for i, v := range vals {
		values[i] = Float(v)
	}
	return Column{name: name, kind: KindFloat, values: values}
}

// StringColumn creates a KindString column.
func StringColumn(name string, vals ...string) Column {
	values := make([]Value, len(vals))
	for i, v := range vals {
		values[i] = String(v)
	}
	return Column{name: name, kind: KindString, values: values}
}

// BoolColumn creates a KindBool column.
func BoolColumn(name string, vals ...bool) Column {
	values := make([]Value, len(vals))
	for i, v := range vals {
		values[i] = Bool(v)
	}
	return Column{name: name, kind: KindBool, values: values}
}

// NewColumn creates a column of the declared kind. Int values in a float
// column are promoted; any other kind outside the declared one is a
// TypeMismatchError.
func NewColumn(name string, kind Kind, values []Value) (Column, error) {
	if kind == KindInvalid {
		return Column{}, &TypeMismatchError{Column: name, Want: kind, Got: kind}
	}
	out := make([]Value, len(values))
	for i, v := range values {
		switch {
		case !v.IsValid():
			return Column{}, &InvalidValueError{Column: name, Row: i, Reason: "zero value"}
		case v.kind == kind:
			out[i] = v
		case kind == KindFloat && v.kind == KindInt:
			out[i] = Float(v.Float())
		default:
			return Column{}, &TypeMismatchError{Column: name, Want: kind, Got: v.kind}
		}
	}
	return Column{name: name, kind: kind, values: out}, nil
}

// InferColumn creates a column whose kind is taken from its values.
// A mix of ints and floats becomes a float column; any other mix is
// rejected rather than guessing an order. An empty slice yields an
// untyped column (KindInvalid) that only ever holds zero rows.
func InferColumn(name string, values []Value) (Column, error) {
	kind := KindInvalid
	for i, v := range values {
		if !v.IsValid() {
			return Column{}, &InvalidValueError{Column: name, Row: i, Reason: "zero value"}
		}
		switch {
		case kind == KindInvalid:
			kind = v.kind
		case kind == v.kind:
		case kind.IsNumeric() && v.kind.IsNumeric():
			kind = KindFloat
		default:
			return Column{}, &TypeMismatchError{Column: name, Want: kind, Got: v.kind}
		}
	}
	if kind == KindInvalid {
		return Column{name: name}, nil
	}
	return NewColumn(name, kind, values)
}

// Name returns the column name.
func (c Column) Name() string { return c.name }

// Kind returns the column kind.
func (c Column) Kind() Kind { return c.kind }

// Len returns the number of values.
func (c Column) Len() int { return len(c.values) }

// At returns the value at row i.
func (c Column) At(i int) Value { return c.values[i] }

// Values returns a copy of the column values.
func (c Column) Values() []Value {
	out := make([]Value, len(c.values))
	copy(out, c.values)
	return out
}

// validate checks a column before it joins a dataset.
func (c Column) validate() error {
	if c.name == "" {
		return &InvalidValueError{Row: -1, Reason: "column name must not be empty"}
	}
	for i, v := range c.values {
		if v.kind != c.kind {
			return &TypeMismatchError{Column: c.name, Want: c.kind, Got: v.kind}
		}
		if v.isNaN() {
			return &InvalidValueError{Column: c.name, Row: i, Reason: "NaN is not a groupable value"}
		}
	}
	return nil
}

// ============================================================================
// DATASET
// ============================================================================

// Dataset is a fixed-schema table of equal-length columns.
type Dataset struct {
	columns []Column
	index   map[string]int
	rows    int
}

// NewDataset creates a Dataset from columns, in the given order.
func NewDataset(cols ...Column) (*Dataset, error) {
	d := &Dataset{index: make(map[string]int, len(cols))}
	if err := d.checkColumns(cols); err != nil {
		return nil, err
	}
	if len(cols) > 0 {
		d.rows = cols[0].Len()
	}
	d.appendColumns(cols)
	return d, nil
}

// checkColumns validates cols against the existing schema without
// changing the dataset.
func (d *Dataset) checkColumns(cols []Column) error {
	rows := d.rows
	if len(d.columns) == 0 && len(cols) > 0 {
		rows = cols[0].Len()
	}
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if err := c.validate(); err != nil {
			return err
		}
		if _, exists := d.index[c.name]; exists || seen[c.name] {
			return &DuplicateColumnError{Column: c.name}
		}
		seen[c.name] = true
		if c.Len() != rows {
			return &LengthMismatchError{Column: c.name, Want: rows, Got: c.Len()}
		}
	}
	return nil
}

// appendColumns adds already-validated columns.
func (d *Dataset) appendColumns(cols []Column) {
	for _, c := range cols {
		d.index[c.name] = len(d.columns)
		d.columns = append(d.columns, c)
	}
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return d.rows }

// Width returns the number of columns.
func (d *Dataset) Width() int { return len(d.columns) }

// Names returns column names in schema order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.name
	}
	return names
}

// Schema returns the ordered field list.
func (d *Dataset) Schema() []Field {
	fields := make([]Field, len(d.columns))
	for i, c := range d.columns {
		fields[i] = Field{Name: c.name, Kind: c.kind}
	}
	return fields
}

// Has reports whether the dataset has a column called name.
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Column returns the named column.
func (d *Dataset) Column(name string) (Column, error) {
	c, err := d.lookup(name)
	if err != nil {
		return Column{}, err
	}
	return *c, nil
}

func (d *Dataset) lookup(name string) (*Column, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, &ColumnNotFoundError{Column: name, Available: d.Names()}
	}
	return &d.columns[i], nil
}

// Value returns the cell at row i of the named column.
func (d *Dataset) Value(i int, name string) (Value, error) {
	c, err := d.lookup(name)
	if err != nil {
		return Value{}, err
	}
	if i < 0 || i >= d.rows {
		return Value{}, fmt.Errorf("row %d out of range [0,%d)", i, d.rows)
	}
	return c.values[i], nil
}

// Row returns row i as a name → value map. Out-of-range rows are nil.
func (d *Dataset) Row(i int) Row {
	if i < 0 || i >= d.rows {
		return nil
	}
	row := make(Row, len(d.columns))
	for _, c := range d.columns {
		row[c.name] = c.values[i]
	}
	return row
}

// Rows returns every row in order.
func (d *Dataset) Rows() []Row {
	rows := make([]Row, d.rows)
	for i := range rows {
		rows[i] = d.Row(i)
	}
	return rows
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		columns: make([]Column, len(d.columns)),
		index:   make(map[string]int, len(d.index)),
		rows:    d.rows,
	}
	for i, c := range d.columns {
		out.columns[i] = Column{name: c.name, kind: c.kind, values: c.Values()}
		out.index[c.name] = i
	}
	return out
}

// ============================================================================
// DOMAIN ADAPTER — Typed structs into a Dataset
// ============================================================================
//
// Usage:
//
//	adapter := engine.NewDomainAdapter[Respondent]().
//	    String("region", func(r Respondent) string { return r.Region }).
//	    Int("age_band", func(r Respondent) int64 { return r.AgeBand })
//
//	ds, err := adapter.Bind(respondents)
//	ct, err := engine.CrossTabulate(ds, "region", "age_band")
//
// ============================================================================

// DomainAdapter builds a Dataset from typed structs.
// Declare once, bind many times.
type DomainAdapter[T any] struct {
	order  []string
	fields map[string]domainField[T]
}

type domainField[T any] struct {
	kind Kind
	get  func(T) Value
}

// NewDomainAdapter creates a new adapter for type T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{fields: make(map[string]domainField[T])}
}

func (a *DomainAdapter[T]) register(key string, kind Kind, get func(T) Value) *DomainAdapter[T] {
	if _, exists := a.fields[key]; !exists {
		a.order = append(a.order, key)
	}
	a.fields[key] = domainField[T]{kind: kind, get: get}
	return a
}

// Int registers an integer accessor.
func (a *DomainAdapter[T]) Int(key string, fn func(T) int64) *DomainAdapter[T] {
	return a.register(key, KindInt, func(t T) Value { return Int(fn(t)) })
}

// Float registers a float accessor.
func (a *DomainAdapter[T]) Float(key string, fn func(T) float64) *DomainAdapter[T] {
	return a.register(key, KindFloat, func(t T) Value { return Float(fn(t)) })
}

// String registers a string accessor.
func (a *DomainAdapter[T]) String(key string, fn func(T) string) *DomainAdapter[T] {
	return a.register(key, KindString, func(t T) Value { return String(fn(t)) })
}

// Bool registers a boolean accessor.
func (a *DomainAdapter[T]) Bool(key string, fn func(T) bool) *DomainAdapter[T] {
	return a.register(key, KindBool, func(t T) Value { return Bool(fn(t)) })
}

// Bind reads every registered field of data into a new Dataset.
// Values are copied; later changes to data are not reflected.
func (a *DomainAdapter[T]) Bind(data []T) (*Dataset, error) {
	cols := make([]Column, 0, len(a.order))
	for _, key := range a.order {
		f := a.fields[key]
		values := make([]Value, len(data))
		for i, item := range data {
			values[i] = f.get(item)
		}
		cols = append(cols, Column{name: key, kind: f.kind, values: values})
	}
	return NewDataset(cols...)
}
