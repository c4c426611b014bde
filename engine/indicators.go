package engine

import (
	"sort"
)

// ============================================================================
// INDICATORS — Binary columns from column/value comparisons
// ============================================================================
// Each entry name → (source, value) yields a KindInt column holding 1 where
// source equals value and 0 elsewhere.
//
// The output schema is declared before any row is read: existing fields
// followed by the new indicator fields in ascending name order. Every entry
// is validated first; nothing is appended unless all columns were built.
// ============================================================================

// Indicator compares one source column against a value.
type Indicator struct {
	Source string `json:"source"`
	Value  Value  `json:"value"`
}

// IndicatorSpec maps new column names to their comparisons.
type IndicatorSpec map[string]Indicator

// Names returns the indicator names in ascending order.
func (s IndicatorSpec) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyIndicators adds one indicator column per spec entry to ds, in place.
// On error ds is left unchanged.
func ApplyIndicators(ds *Dataset, spec IndicatorSpec, opts ...Option) error {
	cols, err := Indicators(ds, spec, opts...)
	if err != nil {
		return err
	}
	ds.appendColumns(cols)
	return nil
}

// Indicators builds the indicator columns for spec without modifying ds.
func Indicators(ds *Dataset, spec IndicatorSpec, opts ...Option) ([]Column, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	cfg := applyOptions(opts)

	names := spec.Names()
	sources := make([]*Column, len(names))
	for i, name := range names {
		ind := spec[name]
		src, err := ds.lookup(ind.Source)
		if err != nil {
			return nil, err
		}
		if !ind.Value.IsValid() || ind.Value.isNaN() {
			return nil, &InvalidValueError{Column: name, Row: -1, Reason: "indicator value must be a non-NaN scalar"}
		}
		if src.kind != KindInvalid && !src.kind.ComparableWith(ind.Value.kind) {
			return nil, &TypeMismatchError{Column: ind.Source, Want: src.kind, Got: ind.Value.kind}
		}
		sources[i] = src
	}

	cols := make([]Column, len(names))
	for i, name := range names {
		cols[i] = buildIndicator(name, sources[i], spec[name].Value, ds.rows)
	}
	if err := ds.checkColumns(cols); err != nil {
		return nil, err
	}

	cfg.Logger.Printf("🔧 Crosstab: Built %d indicator columns over %d rows", len(cols), ds.rows)
	return cols, nil
}

// buildIndicator makes a single pass over src.
func buildIndicator(name string, src *Column, target Value, rows int) Column {
	values := make([]Value, rows)
	one, zero := Int(1), Int(0)
	for i := 0; i < rows; i++ {
		if src.values[i].Equal(target) {
			values[i] = one
		} else {
			values[i] = zero
		}
	}
	return Column{name: name, kind: KindInt, values: values}
}
