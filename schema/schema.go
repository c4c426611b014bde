package schema

// ============================================================================
// SCHEMA — Describes the shape of a dataset for cross-tabulation
// ============================================================================
// Built by Describe from an engine.Dataset. Dimensions are the columns worth
// grouping on; measures are continuous or high-cardinality numeric columns;
// skipped columns carry the reason they were left out.
// ============================================================================

// Config describes the complete shape of a dataset.
type Config struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`

	Dimensions []DimensionMeta `json:"dimensions"`
	Measures   []MeasureMeta   `json:"measures"`

	// Columns skipped during description
	SkippedColumns []SkippedColumn `json:"skippedColumns,omitempty"`

	DescribedAt string `json:"describedAt,omitempty"`
}

// DimensionMeta describes a column used for grouping.
type DimensionMeta struct {
	Key             string   `json:"key"`
	DisplayName     string   `json:"displayName"`
	Kind            string   `json:"kind"`
	UniqueCount     int      `json:"uniqueCount"`
	SampleValues    []string `json:"sampleValues"`
	CardinalityHint string   `json:"cardinalityHint,omitempty"` // "low", "medium", "high"
}

// MeasureMeta describes a numeric column that is not a useful grouping key.
type MeasureMeta struct {
	Key         string  `json:"key"`
	DisplayName string  `json:"displayName"`
	Kind        string  `json:"kind"`
	UniqueCount int     `json:"uniqueCount"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
}

// SkippedColumn records why a column was excluded.
type SkippedColumn struct {
	Column      string `json:"column"`
	Reason      string `json:"reason"`
	Recoverable bool   `json:"recoverable"` // Can be restored via DescribeOptions.RecoverColumns
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = m.Key
	}
	return keys
}

// CrossTabCandidates returns dimension keys with low or medium cardinality,
// in schema order. These make readable cross-tabulation axes.
func (c Config) CrossTabCandidates() []string {
	var keys []string
	for _, d := range c.Dimensions {
		if d.CardinalityHint == "low" || d.CardinalityHint == "medium" {
			keys = append(keys, d.Key)
		}
	}
	return keys
}
