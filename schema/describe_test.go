package schema

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/crosstab/engine"
)

// ============================================================================
// DESCRIBE TESTS
// ============================================================================

// surveyDataset has 30 respondents: a unique id, a region, a smoker flag,
// an age band code, a fractional weight and a free-text comment.
func surveyDataset(t *testing.T) *engine.Dataset {
	t.Helper()
	regions := []string{"north", "south", "east"}

	n := 30
	ids := make([]int64, n)
	region := make([]string, n)
	smoker := make([]bool, n)
	band := make([]int64, n)
	weight := make([]float64, n)
	comment := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = int64(1000 + i)
		region[i] = regions[i%3]
		smoker[i] = i%4 == 0
		band[i] = int64(i % 5)
		weight[i] = 60.5 + float64(i%15)
		comment[i] = fmt.Sprintf("comment %d", i)
	}

	ds, err := engine.NewDataset(
		engine.IntColumn("respondent_id", ids...),
		engine.StringColumn("region", region...),
		engine.BoolColumn("smoker", smoker...),
		engine.IntColumn("age_band", band...),
		engine.FloatColumn("weight", weight...),
		engine.StringColumn("comment", comment...),
	)
	require.NoError(t, err)
	return ds
}

func TestDescribeSurvey(t *testing.T) {
	config := Describe(surveyDataset(t), DescribeOptions{Name: "Survey"})

	assert.Equal(t, "Survey", config.Name)
	assert.Equal(t, 30, config.Rows)
	assert.Equal(t, []string{"region", "smoker", "age_band"}, config.DimensionKeys())
	assert.Equal(t, []string{"weight"}, config.MeasureKeys())

	require.Len(t, config.SkippedColumns, 2)
	assert.Equal(t, "respondent_id", config.SkippedColumns[0].Column)
	assert.Contains(t, config.SkippedColumns[0].Reason, "ID")
	assert.Equal(t, "comment", config.SkippedColumns[1].Column)

	region := config.Dimensions[0]
	assert.Equal(t, "Region", region.DisplayName)
	assert.Equal(t, "string", region.Kind)
	assert.Equal(t, 3, region.UniqueCount)
	assert.Equal(t, []string{"east", "north", "south"}, region.SampleValues)
	assert.Equal(t, "low", region.CardinalityHint)

	band := config.Dimensions[2]
	assert.Equal(t, "Age Band", band.DisplayName)
	assert.Equal(t, []string{"0", "1", "2", "3", "4"}, band.SampleValues)

	weight := config.Measures[0]
	assert.Equal(t, 60.5, weight.Min)
	assert.Equal(t, 74.5, weight.Max)

	assert.Equal(t, []string{"region", "smoker", "age_band"}, config.CrossTabCandidates())
}

func TestDescribeRecoverColumns(t *testing.T) {
	config := Describe(surveyDataset(t), DescribeOptions{RecoverColumns: []string{"Respondent_ID"}})

	assert.Contains(t, config.DimensionKeys(), "respondent_id")
	for _, d := range config.Dimensions {
		if d.Key == "respondent_id" {
			assert.Equal(t, "medium", d.CardinalityHint)
			assert.Len(t, d.SampleValues, 10)
		}
	}
	require.Len(t, config.SkippedColumns, 1)
	assert.Equal(t, "comment", config.SkippedColumns[0].Column)
}

func TestDescribeSmallDataset(t *testing.T) {
	ds, err := engine.NewDataset(
		engine.IntColumn("col1", 1, 2, 3, 3, 2, 1),
		engine.IntColumn("col2", 1, 1, 2, 2, 2, 2),
	)
	require.NoError(t, err)

	config := Describe(ds)
	assert.Equal(t, "Described Dataset", config.Name)
	assert.Equal(t, []string{"col1", "col2"}, config.CrossTabCandidates())
}

func TestDescribeSampleSize(t *testing.T) {
	config := Describe(surveyDataset(t), DescribeOptions{SampleSize: 6, MaxSamples: 2})

	for _, d := range config.Dimensions {
		if d.Key == "region" {
			assert.Equal(t, 3, d.UniqueCount)
			assert.Equal(t, []string{"east", "north"}, d.SampleValues)
		}
	}
}

func TestDescribeEmptyAndNil(t *testing.T) {
	ds, err := engine.NewDataset(engine.IntColumn("a"))
	require.NoError(t, err)

	config := Describe(ds)
	assert.Empty(t, config.Dimensions)
	require.Len(t, config.SkippedColumns, 1)
	assert.Equal(t, "No rows to inspect", config.SkippedColumns[0].Reason)

	assert.Empty(t, Describe(nil).Dimensions)
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"story_points": "Story Points",
		"assignee":     "Assignee",
		"age-band":     "Age Band",
		"Already Nice": "Already Nice",
	}
	for in, want := range tests {
		assert.Equal(t, want, toDisplayName(in), in)
	}
}
