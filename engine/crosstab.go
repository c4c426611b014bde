package engine

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// ============================================================================
// CROSS-TABULATION — Two-way frequency tables
// ============================================================================
// Pipeline: group → sort labels → materialize.
//   1. One pass over the rows counts each (row value, column value) pair.
//   2. Distinct values of each column are sorted in their natural order.
//   3. The dense R×C matrix is filled from the pair counts; absent pairs
//      are explicit zeros.
//
// Cost is O(N + R×C). The result never aliases the input dataset.
// ============================================================================

// CrossTab is a dense matrix of co-occurrence counts.
// Counts[i][j] is the number of rows where the row column equals
// RowLabels[i] and the column column equals ColLabels[j].
type CrossTab[A, B comparable] struct {
	RowKey    string  `json:"rowKey,omitempty"`
	ColKey    string  `json:"colKey,omitempty"`
	RowLabels []A     `json:"rowLabels"`
	ColLabels []B     `json:"colLabels"`
	Counts    [][]int `json:"counts"`

	rowIndex map[A]int
	colIndex map[B]int
}

// cell keys the grouping accumulator.
type cell[A, B comparable] struct {
	row A
	col B
}

// CrossTabulate counts co-occurrences of the distinct values of rowKey and
// colKey in ds. rowKey and colKey may name the same column, which yields a
// diagonal table. ds is not modified.
func CrossTabulate(ds *Dataset, rowKey, colKey string, opts ...Option) (*CrossTab[Value, Value], error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	cfg := applyOptions(opts)

	rowCol, err := ds.lookup(rowKey)
	if err != nil {
		return nil, err
	}
	colCol, err := ds.lookup(colKey)
	if err != nil {
		return nil, err
	}

	ct := tabulate(rowCol.values, colCol.values, compareValues, compareValues)
	ct.RowKey = rowKey
	ct.ColKey = colKey

	cfg.Logger.Printf("📊 Crosstab: %s × %s → %d×%d table from %d rows",
		rowKey, colKey, len(ct.RowLabels), len(ct.ColLabels), ds.rows)
	return ct, nil
}

// Tabulate cross-tabulates two equal-length slices of ordered values.
// NaN values are rejected since they never compare equal to themselves.
func Tabulate[A, B cmp.Ordered](rows []A, cols []B) (*CrossTab[A, B], error) {
	if len(rows) != len(cols) {
		return nil, &LengthMismatchError{Want: len(rows), Got: len(cols)}
	}
	for i := range rows {
		if rows[i] != rows[i] || cols[i] != cols[i] {
			return nil, &InvalidValueError{Row: i, Reason: "NaN is not a groupable value"}
		}
	}
	return tabulate(rows, cols, cmp.Compare[A], cmp.Compare[B]), nil
}

func tabulate[A, B comparable](rows []A, cols []B, cmpA func(A, A) int, cmpB func(B, B) int) *CrossTab[A, B] {
	// 1. Group
	counts := make(map[cell[A, B]]int)
	rowSeen := make(map[A]struct{})
	colSeen := make(map[B]struct{})
	for i := range rows {
		counts[cell[A, B]{row: rows[i], col: cols[i]}]++
		rowSeen[rows[i]] = struct{}{}
		colSeen[cols[i]] = struct{}{}
	}

	// 2. Sort labels
	rowLabels := sortedKeys(rowSeen, cmpA)
	colLabels := sortedKeys(colSeen, cmpB)

	ct := &CrossTab[A, B]{
		RowLabels: rowLabels,
		ColLabels: colLabels,
		Counts:    make([][]int, len(rowLabels)),
		rowIndex:  make(map[A]int, len(rowLabels)),
		colIndex:  make(map[B]int, len(colLabels)),
	}
	for j, b := range colLabels {
		ct.colIndex[b] = j
	}

	// 3. Materialize
	for i, a := range rowLabels {
		ct.rowIndex[a] = i
		row := make([]int, len(colLabels))
		for j, b := range colLabels {
			row[j] = counts[cell[A, B]{row: a, col: b}]
		}
		ct.Counts[i] = row
	}
	return ct
}

func sortedKeys[K comparable](set map[K]struct{}, cmpFn func(K, K) int) []K {
	keys := make([]K, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, cmpFn)
	return keys
}

// ============================================================================
// ACCESSORS
// ============================================================================

// Shape returns the number of row and column labels.
func (ct *CrossTab[A, B]) Shape() (rows, cols int) {
	return len(ct.RowLabels), len(ct.ColLabels)
}

// Count returns the count for a label pair, 0 for labels not in the table.
func (ct *CrossTab[A, B]) Count(row A, col B) int {
	i, ok := ct.rowIndex[row]
	if !ok {
		return 0
	}
	j, ok := ct.colIndex[col]
	if !ok {
		return 0
	}
	return ct.Counts[i][j]
}

// Total returns the sum of all cells, i.e. the number of rows tabulated.
func (ct *CrossTab[A, B]) Total() int {
	total := 0
	for _, n := range ct.RowTotals() {
		total += n
	}
	return total
}

// RowTotals returns the margin over columns for each row label.
func (ct *CrossTab[A, B]) RowTotals() []int {
	totals := make([]int, len(ct.RowLabels))
	for i, row := range ct.Counts {
		for _, n := range row {
			totals[i] += n
		}
	}
	return totals
}

// ColTotals returns the margin over rows for each column label.
func (ct *CrossTab[A, B]) ColTotals() []int {
	totals := make([]int, len(ct.ColLabels))
	for _, row := range ct.Counts {
		for j, n := range row {
			totals[j] += n
		}
	}
	return totals
}

// Dense returns the counts as a gonum matrix, or nil for an empty table.
func (ct *CrossTab[A, B]) Dense() *mat.Dense {
	r, c := ct.Shape()
	if r == 0 || c == 0 {
		return nil
	}
	data := make([]float64, 0, r*c)
	for _, row := range ct.Counts {
		for _, n := range row {
			data = append(data, float64(n))
		}
	}
	return mat.NewDense(r, c, data)
}

// Proportions returns each cell divided by the grand total, or nil for an
// empty table.
func (ct *CrossTab[A, B]) Proportions() *mat.Dense {
	d := ct.Dense()
	if d == nil {
		return nil
	}
	d.Scale(1/float64(ct.Total()), d)
	return d
}
