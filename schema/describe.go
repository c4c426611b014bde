package schema

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/spektr-org/crosstab/engine"
)

// ============================================================================
// DESCRIBE — Heuristic column classification
// ============================================================================
// Inspects an engine.Dataset and reports which columns make sensible
// cross-tabulation axes.
//
// Classification pipeline per column:
//   1. Scan values → distinct count, numeric range, fractional parts
//   2. Kind + cardinality → classify role (dimension, measure, skip)
//   3. Cardinality hint (low ≤ 10, medium ≤ 100, high)
// ============================================================================

// DescribeOptions controls description behavior.
type DescribeOptions struct {
	SampleSize     int      // Max rows to inspect (0 = all). Default: 1000
	MaxSamples     int      // Sample values kept per dimension. Default: 10
	RecoverColumns []string // Force-include columns that were skipped
	Name           string   // Dataset name override
}

// DefaultDescribeOptions returns sensible defaults.
func DefaultDescribeOptions() DescribeOptions {
	return DescribeOptions{
		SampleSize: 1000,
		MaxSamples: 10,
	}
}

// Describe classifies every column of ds.
func Describe(ds *engine.Dataset, opts ...DescribeOptions) *Config {
	opt := DefaultDescribeOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.MaxSamples <= 0 {
		opt.MaxSamples = 10
	}

	config := &Config{
		Name:        opt.Name,
		DescribedAt: time.Now().Format(time.RFC3339),
	}
	if config.Name == "" {
		config.Name = "Described Dataset"
	}
	if ds == nil {
		return config
	}
	config.Rows = ds.Len()

	limit := ds.Len()
	if opt.SampleSize > 0 && opt.SampleSize < limit {
		limit = opt.SampleSize
	}

	recoverSet := make(map[string]bool)
	for _, col := range opt.RecoverColumns {
		recoverSet[strings.ToLower(col)] = true
	}

	for _, field := range ds.Schema() {
		col, err := ds.Column(field.Name)
		if err != nil {
			continue
		}
		a := analyzeColumn(col, limit, opt.MaxSamples)

		switch a.role {
		case roleDimension:
			config.Dimensions = append(config.Dimensions, a.toDimension())

		case roleMeasure:
			config.Measures = append(config.Measures, a.toMeasure())

		case roleSkipped:
			if recoverSet[strings.ToLower(a.key)] {
				config.Dimensions = append(config.Dimensions, a.toDimension())
			} else {
				config.SkippedColumns = append(config.SkippedColumns, SkippedColumn{
					Column:      a.key,
					Reason:      a.skipReason,
					Recoverable: a.recoverable,
				})
			}
		}
	}

	return config
}

// ============================================================================
// COLUMN ANALYSIS
// ============================================================================

type columnRole int

const (
	roleDimension columnRole = iota
	roleMeasure
	roleSkipped
)

type columnAnalysis struct {
	key         string
	kind        engine.Kind
	role        columnRole
	skipReason  string
	recoverable bool

	// Stats
	uniqueCount int
	totalCount  int
	sampleVals  []string
	min, max    float64
	hasFraction bool

	cardinalityHint string
}

// analyzeColumn inspects the first limit values of col and classifies it.
func analyzeColumn(col engine.Column, limit, maxSamples int) columnAnalysis {
	a := columnAnalysis{
		key:        col.Name(),
		kind:       col.Kind(),
		totalCount: limit,
		min:        math.Inf(1),
		max:        math.Inf(-1),
	}

	if limit == 0 {
		a.role = roleSkipped
		a.skipReason = "No rows to inspect"
		return a
	}

	unique := make(map[engine.Value]struct{})
	for i := 0; i < limit; i++ {
		v := col.At(i)
		unique[v] = struct{}{}
		if a.kind.IsNumeric() {
			f := v.Float()
			a.min = math.Min(a.min, f)
			a.max = math.Max(a.max, f)
			if f != math.Trunc(f) {
				a.hasFraction = true
			}
		}
	}
	a.uniqueCount = len(unique)
	a.sampleVals = collectSamples(unique, maxSamples)

	a.classifyRole()

	switch {
	case a.uniqueCount <= 10:
		a.cardinalityHint = "low"
	case a.uniqueCount <= 100:
		a.cardinalityHint = "medium"
	default:
		a.cardinalityHint = "high"
	}

	return a
}

// classifyRole determines dimension vs measure vs skip.
func (a *columnAnalysis) classifyRole() {
	switch a.kind {

	case engine.KindInt, engine.KindFloat:
		if a.uniqueCount == a.totalCount && a.totalCount > 10 {
			// Every value unique → likely an ID
			a.role = roleSkipped
			a.skipReason = "Unique per row — likely an ID column"
			return
		}
		// Fractional values are continuous data → always a measure
		if a.hasFraction {
			a.role = roleMeasure
			return
		}
		// Few codes relative to row count → coded dimension (e.g., age band 1-5).
		// Small datasets get the absolute test alone.
		uniqueRatio := float64(a.uniqueCount) / float64(a.totalCount)
		if a.uniqueCount < 20 && (uniqueRatio < 0.3 || a.totalCount <= 20) {
			a.role = roleDimension
			return
		}
		a.role = roleMeasure

	case engine.KindBool:
		a.role = roleDimension

	case engine.KindString:
		if a.uniqueCount == a.totalCount && a.totalCount > 10 {
			// Every value unique → likely an ID or free text
			a.role = roleSkipped
			a.skipReason = "Unique per row — likely an identifier"
			return
		}
		if a.uniqueCount > a.totalCount/2 && a.uniqueCount > 50 {
			a.role = roleSkipped
			a.skipReason = fmt.Sprintf("High cardinality (%d unique values) — not useful for grouping", a.uniqueCount)
			a.recoverable = true
			return
		}
		a.role = roleDimension

	default:
		a.role = roleSkipped
		a.skipReason = "Untyped column"
	}
}

// ============================================================================
// CONVERSION HELPERS
// ============================================================================

func (a *columnAnalysis) toDimension() DimensionMeta {
	return DimensionMeta{
		Key:             a.key,
		DisplayName:     toDisplayName(a.key),
		Kind:            a.kind.String(),
		UniqueCount:     a.uniqueCount,
		SampleValues:    a.sampleVals,
		CardinalityHint: a.cardinalityHint,
	}
}

func (a *columnAnalysis) toMeasure() MeasureMeta {
	return MeasureMeta{
		Key:         a.key,
		DisplayName: toDisplayName(a.key),
		Kind:        a.kind.String(),
		UniqueCount: a.uniqueCount,
		Min:         a.min,
		Max:         a.max,
	}
}

// ============================================================================
// STRING UTILITIES
// ============================================================================

// toDisplayName cleans a key for human display.
// "story_points" → "Story Points", "assignee" → "Assignee"
func toDisplayName(s string) string {
	// If already has spaces/mixed case, just trim
	if strings.Contains(s, " ") {
		return strings.TrimSpace(s)
	}

	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
		}
	}
	return strings.Join(words, " ")
}

// collectSamples picks up to maxSamples values in natural order.
func collectSamples(unique map[engine.Value]struct{}, maxSamples int) []string {
	vals := make([]engine.Value, 0, len(unique))
	for v := range unique {
		vals = append(vals, v)
	}
	slices.SortFunc(vals, func(x, y engine.Value) int {
		c, _ := x.Compare(y)
		return c
	})

	if len(vals) > maxSamples {
		vals = vals[:maxSamples]
	}
	samples := make([]string, len(vals))
	for i, v := range vals {
		samples[i] = v.String()
	}
	return samples
}
