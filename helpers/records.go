package helpers

import (
	"fmt"
	"sort"

	"github.com/spektr-org/crosstab/engine"
)

// ============================================================================
// RECORDS HELPER — Converts in-memory row maps into an engine.Dataset
// ============================================================================
// Consumers decode their rows from wherever they live (JSON body, ORM scan,
// test fixture). This helper turns []map[string]any into a fixed-schema
// Dataset, inferring one kind per column.
// ============================================================================

// FromMaps builds a Dataset from row maps.
// Column order is columns when given, otherwise the sorted keys of the
// first row. Keys outside that schema are skipped; a schema key missing
// from any row is a ColumnNotFoundError.
func FromMaps(rows []map[string]any, columns ...string) (*engine.Dataset, error) {
	keys := columns
	if len(keys) == 0 && len(rows) > 0 {
		keys = make([]string, 0, len(rows[0]))
		for k := range rows[0] {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}

	values := make([][]engine.Value, len(keys))
	for c := range values {
		values[c] = make([]engine.Value, 0, len(rows))
	}

	for r, row := range rows {
		for c, key := range keys {
			raw, ok := row[key]
			if !ok {
				return nil, fmt.Errorf("row %d: %w", r, &engine.ColumnNotFoundError{Column: key})
			}
			v, err := engine.ValueOf(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", r, key, err)
			}
			values[c] = append(values[c], v)
		}
	}

	cols := make([]engine.Column, len(keys))
	for c, key := range keys {
		col, err := engine.InferColumn(key, values[c])
		if err != nil {
			return nil, err
		}
		cols[c] = col
	}
	return engine.NewDataset(cols...)
}

// ToMaps returns the rows of ds as plain Go maps (int64, float64, string, bool).
func ToMaps(ds *engine.Dataset) []map[string]any {
	out := make([]map[string]any, 0, ds.Len())
	for _, row := range ds.Rows() {
		m := make(map[string]any, len(row))
		for k, v := range row {
			m[k] = v.Interface()
		}
		out = append(out, m)
	}
	return out
}
