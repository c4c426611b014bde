package engine

import "sort"

// ============================================================================
// FILTERS — Row subsets by column value
// ============================================================================
// Single pass: checks ALL column constraints per row in one loop and copies
// the surviving rows into a new Dataset. Used to stratify a table, e.g.
// cross-tabulate sex × smoker only where region = "north".
// ============================================================================

// Filters maps a column name to its allowed values.
// Columns are AND-combined; values within a column are OR-combined.
type Filters map[string][]Value

// IsEmpty reports whether f places no restriction on rows.
func (f Filters) IsEmpty() bool {
	for _, allowed := range f {
		if len(allowed) > 0 {
			return false
		}
	}
	return true
}

// Where returns a new Dataset holding the rows of ds that match filters.
// Empty filters return a clone. ds is not modified.
func Where(ds *Dataset, filters Filters, opts ...Option) (*Dataset, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	cfg := applyOptions(opts)

	// Validate every constraint before touching rows. Map iteration order is
	// random, so columns are checked in name order for stable errors.
	names := make([]string, 0, len(filters))
	for name, allowed := range filters {
		if len(allowed) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	type constraint struct {
		col *Column
		set map[Value]bool
	}
	constraints := make([]constraint, 0, len(names))
	for _, name := range names {
		col, err := ds.lookup(name)
		if err != nil {
			return nil, err
		}
		set, err := allowedSet(col, filters[name])
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, constraint{col: col, set: set})
	}

	if len(constraints) == 0 {
		return ds.Clone(), nil
	}

	indices := make([]int, 0, ds.rows)
	for i := 0; i < ds.rows; i++ {
		pass := true
		for _, c := range constraints {
			if !c.set[c.col.values[i]] {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}

	out := &Dataset{index: make(map[string]int, len(ds.columns)), rows: len(indices)}
	for _, c := range ds.columns {
		vals := make([]Value, len(indices))
		for j, i := range indices {
			vals[j] = c.values[i]
		}
		out.appendColumns([]Column{{name: c.name, kind: c.kind, values: vals}})
	}

	cfg.Logger.Printf("🔍 Crosstab: %d rows after filtering (from %d)", out.rows, ds.rows)
	return out, nil
}

// allowedSet normalises allowed values to the column's kind so that set
// lookups match stored cells.
func allowedSet(col *Column, allowed []Value) (map[Value]bool, error) {
	set := make(map[Value]bool, len(allowed))
	for _, v := range allowed {
		if !v.IsValid() {
			return nil, &InvalidValueError{Column: col.name, Row: -1, Reason: "zero value in filter"}
		}
		if !col.kind.ComparableWith(v.kind) {
			return nil, &TypeMismatchError{Column: col.name, Want: col.kind, Got: v.kind}
		}
		switch {
		case col.kind == KindFloat && v.kind == KindInt:
			v = Float(v.Float())
		case col.kind == KindInt && v.kind == KindFloat:
			i, ok := floatToInt(v.Float())
			if !ok {
				continue // no int cell can equal it
			}
			v = Int(i)
		}
		set[v] = true
	}
	return set, nil
}
