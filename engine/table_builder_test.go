package engine

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTable(t *testing.T) {
	ct, err := CrossTabulate(scenarioDataset(t), "col1", "col2", WithQuiet())
	require.NoError(t, err)

	table := BuildTable(ct)

	assert.Equal(t, "Col1 by Col2", table.Title)
	require.Len(t, table.Columns, 3)
	assert.Equal(t, TableColumn{Key: "col1", Label: "Col1", Type: "text", Align: "left"}, table.Columns[0])
	assert.Equal(t, "1", table.Columns[1].Key)
	assert.Equal(t, "number", table.Columns[2].Type)
	assert.Equal(t, [][]string{
		{"1", "1", "1"},
		{"2", "1", "1"},
		{"3", "0", "2"},
	}, table.Rows)
	assert.Nil(t, table.Summary)
}

func TestBuildTableWithMargins(t *testing.T) {
	ct, err := CrossTabulate(scenarioDataset(t), "col1", "col2", WithQuiet())
	require.NoError(t, err)

	table := BuildTable(ct, WithMargins(), WithMarginLabel("Total"), WithTitle("Scenario"))

	assert.Equal(t, "Scenario", table.Title)
	require.Len(t, table.Columns, 4)
	assert.Equal(t, "Total", table.Columns[3].Label)
	assert.Equal(t, [][]string{
		{"1", "1", "1", "2"},
		{"2", "1", "1", "2"},
		{"3", "0", "2", "2"},
	}, table.Rows)

	require.NotNil(t, table.Summary)
	assert.Equal(t, "Total", table.Summary.Label)
	assert.Equal(t, map[string]string{"1": "2", "2": "4", marginKey: "6"}, table.Summary.Values)
}

func TestBuildTableKeyCollisions(t *testing.T) {
	ds, err := NewDataset(
		StringColumn("g", "a", "a", "b", "b", "b"),
		StringColumn("x", "g", "__margin__", "", "col", "g"),
	)
	require.NoError(t, err)
	ct, err := CrossTabulate(ds, "g", "x", WithQuiet())
	require.NoError(t, err)
	require.Equal(t, []Value{String(""), String("__margin__"), String("col"), String("g")}, ct.ColLabels)

	table := BuildTable(ct, WithMargins())

	keys := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		keys[i] = c.Key
	}
	assert.Equal(t, []string{"g", "col", "__margin___1", "col_1", "g_1", marginKey}, keys)
	assert.Equal(t, "__margin__", table.Columns[2].Label)

	assert.Equal(t, map[string]string{
		"col":          "1",
		"__margin___1": "1",
		"col_1":        "1",
		"g_1":          "2",
		marginKey:      "5",
	}, table.Summary.Values)
}

func TestBuildTableEmpty(t *testing.T) {
	ds, err := NewDataset(StringColumn("a"), StringColumn("b"))
	require.NoError(t, err)
	ct, err := CrossTabulate(ds, "a", "b", WithQuiet())
	require.NoError(t, err)

	table := BuildTable(ct)
	assert.Equal(t, "A by B", table.Title)
	assert.Empty(t, table.Columns)
	assert.Empty(t, table.Rows)

	assert.Empty(t, BuildTable(nil).Rows)
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "0", FormatInt(0))
	assert.Equal(t, "999", FormatInt(999))
	assert.Equal(t, "1,000", FormatInt(1000))
	assert.Equal(t, "1,234,567", FormatInt(1234567))
	assert.Equal(t, "-12,000", FormatInt(-12000))
	assert.Equal(t, "-1", FormatInt(-1))
	if strconv.IntSize == 64 {
		assert.Equal(t, "-9,223,372,036,854,775,808", FormatInt(math.MinInt))
		assert.Equal(t, "9,223,372,036,854,775,807", FormatInt(math.MaxInt))
	}
}

func TestLabelForColumn(t *testing.T) {
	assert.Equal(t, "Region", LabelForColumn("region"))
	assert.Equal(t, "Is North", LabelForColumn("is_north"))
	assert.Equal(t, "Age Band", LabelForColumn("age-band"))
	assert.Equal(t, "", LabelForColumn(""))
}
