// Package crosstab builds two-way frequency tables over in-memory datasets.
//
// Usage:
//
//	import "github.com/spektr-org/crosstab/engine"
//
//	ds, _ := engine.NewDataset(
//	    engine.StringColumn("sex", "f", "m", "f"),
//	    engine.IntColumn("smoker", 1, 0, 0),
//	)
//	ct, err := engine.CrossTabulate(ds, "sex", "smoker")
//	table := engine.BuildTable(ct, engine.WithMargins())
//
// Indicator columns (1 where a source column equals a value, 0 otherwise)
// are added with engine.ApplyIndicators. The schema package suggests
// which columns make sensible axes; helpers converts row maps and gota
// DataFrames into datasets.
//
// Everything is computed in memory. No files are read and nothing leaves
// the process.
package crosstab
