package helpers

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/spektr-org/crosstab/engine"
)

// ============================================================================
// DATAFRAME HELPER — gota DataFrame ⇄ engine.Dataset
// ============================================================================
// gota series types map one-to-one onto engine kinds:
//   series.Int → KindInt, series.Float → KindFloat,
//   series.String → KindString, series.Bool → KindBool
// Missing (NA) elements are refused; the engine has no missing-value model.
// ============================================================================

// FromDataFrame converts a gota DataFrame into a Dataset.
func FromDataFrame(df dataframe.DataFrame) (*engine.Dataset, error) {
	if df.Err != nil {
		return nil, fmt.Errorf("dataframe: %w", df.Err)
	}

	names := df.Names()
	cols := make([]engine.Column, 0, len(names))
	for _, name := range names {
		col, err := columnFromSeries(df.Col(name))
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return engine.NewDataset(cols...)
}

func columnFromSeries(s series.Series) (engine.Column, error) {
	if s.Err != nil {
		return engine.Column{}, fmt.Errorf("series %q: %w", s.Name, s.Err)
	}
	for i := 0; i < s.Len(); i++ {
		if s.Elem(i).IsNA() {
			return engine.Column{}, &engine.InvalidValueError{Column: s.Name, Row: i, Reason: "missing value"}
		}
	}

	switch s.Type() {
	case series.Int:
		ints, err := s.Int()
		if err != nil {
			return engine.Column{}, fmt.Errorf("series %q: %w", s.Name, err)
		}
		vals := make([]int64, len(ints))
		for i, v := range ints {
			vals[i] = int64(v)
		}
		return engine.IntColumn(s.Name, vals...), nil

	case series.Float:
		return engine.FloatColumn(s.Name, s.Float()...), nil

	case series.String:
		return engine.StringColumn(s.Name, s.Records()...), nil

	case series.Bool:
		bools, err := s.Bool()
		if err != nil {
			return engine.Column{}, fmt.Errorf("series %q: %w", s.Name, err)
		}
		return engine.BoolColumn(s.Name, bools...), nil

	default:
		return engine.Column{}, &engine.TypeMismatchError{Column: s.Name, GoType: string(s.Type())}
	}
}

// ToDataFrame converts a Dataset into a gota DataFrame, one series per column.
// A dataset without columns yields a DataFrame carrying gota's empty error.
func ToDataFrame(ds *engine.Dataset) dataframe.DataFrame {
	ss := make([]series.Series, 0, ds.Width())
	for _, field := range ds.Schema() {
		col, err := ds.Column(field.Name)
		if err != nil {
			continue
		}
		ss = append(ss, seriesFromValues(field.Name, col.Kind(), col.Values()))
	}
	return dataframe.New(ss...)
}

// CrossTabFrame lays a cross-tabulation out as a DataFrame: the first series
// holds the row labels (named after the row column), followed by one int
// series of counts per column label.
//
// gota renames clashing or empty series names, which would hide counts
// behind names like "X0" or "g_1". A column label that is empty is an
// InvalidValueError; one that repeats the row column name or another
// label's text is a DuplicateColumnError.
func CrossTabFrame(ct *engine.CrossTab[engine.Value, engine.Value]) (dataframe.DataFrame, error) {
	rowKey := ct.RowKey
	if rowKey == "" {
		rowKey = "row"
	}

	names := map[string]bool{rowKey: true}
	for j, label := range ct.ColLabels {
		name := label.String()
		if name == "" {
			return dataframe.DataFrame{}, &engine.InvalidValueError{
				Column: ct.ColKey, Row: j, Reason: "empty label cannot name a series",
			}
		}
		if names[name] {
			return dataframe.DataFrame{}, &engine.DuplicateColumnError{Column: name}
		}
		names[name] = true
	}

	rowKind := engine.KindString
	if len(ct.RowLabels) > 0 {
		rowKind = ct.RowLabels[0].Kind()
	}

	ss := make([]series.Series, 0, len(ct.ColLabels)+1)
	ss = append(ss, seriesFromValues(rowKey, rowKind, ct.RowLabels))
	for j, label := range ct.ColLabels {
		counts := make([]int, len(ct.RowLabels))
		for i := range ct.RowLabels {
			counts[i] = ct.Counts[i][j]
		}
		ss = append(ss, series.New(counts, series.Int, label.String()))
	}

	df := dataframe.New(ss...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("crosstab frame: %w", df.Err)
	}
	return df, nil
}

func seriesFromValues(name string, kind engine.Kind, values []engine.Value) series.Series {
	switch kind {
	case engine.KindInt:
		ints := make([]int, len(values))
		for i, v := range values {
			ints[i] = int(v.Int())
		}
		return series.New(ints, series.Int, name)

	case engine.KindFloat:
		floats := make([]float64, len(values))
		for i, v := range values {
			floats[i] = v.Float()
		}
		return series.New(floats, series.Float, name)

	case engine.KindBool:
		bools := make([]bool, len(values))
		for i, v := range values {
			bools[i] = v.Bool()
		}
		return series.New(bools, series.Bool, name)

	default:
		strs := make([]string, len(values))
		for i, v := range values {
			strs[i] = v.String()
		}
		return series.New(strs, series.String, name)
	}
}
