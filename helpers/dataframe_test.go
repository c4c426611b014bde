package helpers

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/crosstab/engine"
)

// ============================================================================
// DATAFRAME TESTS
// ============================================================================

func patientsFrame() dataframe.DataFrame {
	return dataframe.New(
		series.New([]string{"f", "m", "f", "m"}, series.String, "sex"),
		series.New([]int{31, 45, 52, 28}, series.Int, "age"),
		series.New([]float64{61.5, 80.25, 70, 77.5}, series.Float, "weight"),
		series.New([]bool{true, false, false, true}, series.Bool, "smoker"),
	)
}

func TestFromDataFrame(t *testing.T) {
	ds, err := FromDataFrame(patientsFrame())
	require.NoError(t, err)

	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, []engine.Field{
		{Name: "sex", Kind: engine.KindString},
		{Name: "age", Kind: engine.KindInt},
		{Name: "weight", Kind: engine.KindFloat},
		{Name: "smoker", Kind: engine.KindBool},
	}, ds.Schema())

	v, err := ds.Value(2, "weight")
	require.NoError(t, err)
	assert.Equal(t, engine.Float(70), v)

	ct, err := engine.CrossTabulate(ds, "sex", "smoker", engine.WithQuiet())
	require.NoError(t, err)
	assert.Equal(t, 1, ct.Count(engine.String("f"), engine.Bool(true)))
	assert.Equal(t, 1, ct.Count(engine.String("m"), engine.Bool(false)))
}

func TestFromDataFrameMissingValue(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"1.5", "NaN"}, series.Float, "weight"),
	)

	_, err := FromDataFrame(df)
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInvalidValue)

	var invalid *engine.InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "weight", invalid.Column)
	assert.Equal(t, 1, invalid.Row)
}

func TestFromDataFrameErr(t *testing.T) {
	_, err := FromDataFrame(dataframe.New())
	assert.Error(t, err)
}

func TestToDataFrameRoundTrip(t *testing.T) {
	ds, err := FromDataFrame(patientsFrame())
	require.NoError(t, err)

	df := ToDataFrame(ds)
	require.NoError(t, df.Err)
	assert.Equal(t, []string{"sex", "age", "weight", "smoker"}, df.Names())
	assert.Equal(t, []series.Type{series.String, series.Int, series.Float, series.Bool}, df.Types())

	back, err := FromDataFrame(df)
	require.NoError(t, err)
	assert.Equal(t, ds.Rows(), back.Rows())
}

func TestCrossTabFrame(t *testing.T) {
	ds, err := engine.NewDataset(
		engine.StringColumn("sex", "f", "m", "f", "m", "f"),
		engine.IntColumn("smoker", 1, 0, 0, 1, 1),
	)
	require.NoError(t, err)

	ct, err := engine.CrossTabulate(ds, "sex", "smoker", engine.WithQuiet())
	require.NoError(t, err)

	df, err := CrossTabFrame(ct)
	require.NoError(t, err)
	assert.Equal(t, []string{"sex", "0", "1"}, df.Names())
	assert.Equal(t, []string{"f", "m"}, df.Col("sex").Records())

	zeros, err := df.Col("0").Int()
	require.NoError(t, err)
	ones, err := df.Col("1").Int()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1}, zeros)
	assert.Equal(t, []int{2, 1}, ones)
}

func TestCrossTabFrameUnnamedRows(t *testing.T) {
	ct, err := engine.CrossTabulate(mustDataset(t), "x", "x", engine.WithQuiet())
	require.NoError(t, err)
	ct.RowKey = ""

	df, err := CrossTabFrame(ct)
	require.NoError(t, err)
	assert.Equal(t, "row", df.Names()[0])
	assert.Equal(t, series.Int, df.Col("row").Type())
}

func TestCrossTabFrameNameCollisions(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		cols    []string
		wantErr error
	}{
		{name: "label equals row column", rows: []string{"g", "h"}, cols: []string{"g", "k"}, wantErr: engine.ErrDuplicateColumn},
		{name: "empty label", rows: []string{"g", "h"}, cols: []string{"k", ""}, wantErr: engine.ErrInvalidValue},
		{name: "both", rows: []string{"g", "h"}, cols: []string{"g", ""}, wantErr: engine.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := engine.NewDataset(
				engine.StringColumn("g", tt.rows...),
				engine.StringColumn("x", tt.cols...),
			)
			require.NoError(t, err)
			ct, err := engine.CrossTabulate(ds, "g", "x", engine.WithQuiet())
			require.NoError(t, err)

			_, err = CrossTabFrame(ct)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCrossTabFrameLabelsStringifyAlike(t *testing.T) {
	ct := &engine.CrossTab[engine.Value, engine.Value]{
		RowKey:    "g",
		RowLabels: []engine.Value{engine.String("a")},
		ColLabels: []engine.Value{engine.Int(1), engine.String("1")},
		Counts:    [][]int{{1, 1}},
	}

	_, err := CrossTabFrame(ct)
	var dup *engine.DuplicateColumnError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "1", dup.Column)
}

func mustDataset(t *testing.T) *engine.Dataset {
	t.Helper()
	ds, err := engine.NewDataset(engine.IntColumn("x", 3, 1, 2))
	require.NoError(t, err)
	return ds
}
