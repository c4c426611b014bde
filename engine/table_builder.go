package engine

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from a CrossTab
// ============================================================================
// Layout: one row per row label, a leading text column holding the label,
// then one numeric column per column label. WithMargins appends a totals
// column and a Summary row of column totals.
// ============================================================================

const marginKey = "__margin__"

// BuildTable renders a cross-tabulation as TableData.
func BuildTable(ct *CrossTab[Value, Value], opts ...Option) *TableData {
	cfg := applyOptions(opts)

	title := cfg.Title
	if title == "" && ct != nil {
		title = fmt.Sprintf("%s by %s", LabelForColumn(ct.RowKey), LabelForColumn(ct.ColKey))
	}

	if ct == nil || len(ct.RowLabels) == 0 {
		return &TableData{
			Title:   title,
			Columns: []TableColumn{},
			Rows:    [][]string{},
		}
	}

	rowKey := ct.RowKey
	if rowKey == "" {
		rowKey = "row"
	}

	columns := make([]TableColumn, 0, len(ct.ColLabels)+2)
	columns = append(columns, TableColumn{
		Key:   rowKey,
		Label: LabelForColumn(rowKey),
		Type:  "text",
		Align: "left",
	})
	keys := countKeys(rowKey, ct.ColLabels)
	for j, label := range ct.ColLabels {
		columns = append(columns, TableColumn{
			Key:   keys[j],
			Label: label.String(),
			Type:  "number",
			Align: "right",
		})
	}
	if cfg.Margins {
		columns = append(columns, TableColumn{
			Key:   marginKey,
			Label: cfg.MarginLabel,
			Type:  "number",
			Align: "right",
		})
	}

	rowTotals := ct.RowTotals()
	rows := make([][]string, 0, len(ct.RowLabels))
	for i, label := range ct.RowLabels {
		row := make([]string, 0, len(columns))
		row = append(row, label.String())
		for _, n := range ct.Counts[i] {
			row = append(row, FormatInt(n))
		}
		if cfg.Margins {
			row = append(row, FormatInt(rowTotals[i]))
		}
		rows = append(rows, row)
	}

	table := &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
	}

	if cfg.Margins {
		values := make(map[string]string, len(ct.ColLabels)+1)
		for j, n := range ct.ColTotals() {
			values[keys[j]] = FormatInt(n)
		}
		values[marginKey] = FormatInt(ct.Total())
		table.Summary = &Summary{
			Label:  cfg.MarginLabel,
			Values: values,
		}
	}

	return table
}

// countKeys derives one key per column label. Keys are the label text unless
// that is empty or already taken by the row column, the margin column or an
// earlier label; those get a numeric suffix.
func countKeys(rowKey string, labels []Value) []string {
	taken := map[string]bool{rowKey: true, marginKey: true}
	keys := make([]string, len(labels))
	for j, label := range labels {
		base := label.String()
		if base == "" {
			base = "col"
		}
		key := base
		for n := 1; taken[key]; n++ {
			key = fmt.Sprintf("%s_%d", base, n)
		}
		taken[key] = true
		keys[j] = key
	}
	return keys
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		// -(n+1)+1 keeps math.MinInt from overflowing back to itself.
		return "-" + formatUint(uint64(-(n+1))+1)
	}
	return formatUint(uint64(n))
}

func formatUint(u uint64) string {
	if u < 1000 {
		return fmt.Sprintf("%d", u)
	}
	return fmt.Sprintf("%s,%03d", formatUint(u/1000), u%1000)
}

// LabelForColumn returns a display label for a column key.
// "ind_1" → "Ind 1", "region" → "Region".
func LabelForColumn(key string) string {
	if key == "" {
		return ""
	}
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(key))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
