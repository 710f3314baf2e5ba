package processing

import (
	"math"
	"testing"

	"defectpred/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeData(t *testing.T, rows [][]float64, labels []float64) *dataset.Dataset {
	t.Helper()
	features := make([]string, len(rows[0]))
	for i := range features {
		features[i] = "f"
	}
	d := dataset.New("test", features)
	for i := range rows {
		require.NoError(t, d.AddRow(rows[i], labels[i]))
	}
	return d
}

func TestNormalizationZeroMean(t *testing.T) {
	test := makeData(t, [][]float64{{1, 10}, {2, 20}, {3, 30}}, []float64{0, 1, 0})
	train := test.Copy()

	normTest, normTrain, err := Normalization{}.Apply(test, train)
	require.NoError(t, err)

	for _, d := range []*dataset.Dataset{normTest, normTrain} {
		for j := 0; j < d.NumFeatures(); j++ {
			sum := 0.0
			for _, row := range d.Rows {
				sum += row[j]
			}
			assert.InDelta(t, 0, sum/float64(d.NumRows()), 1e-12)
		}
	}

	// inputs are untouched
	assert.Equal(t, 1.0, test.Rows[0][0])
	assert.Equal(t, []float64{0, 1, 0}, normTest.Labels)
}

func TestNormalizationConstantColumn(t *testing.T) {
	test := makeData(t, [][]float64{{5}, {5}}, []float64{0, 1})

	normTest, _, err := Normalization{}.Apply(test, test.Copy())
	require.NoError(t, err)
	for _, row := range normTest.Rows {
		assert.False(t, math.IsNaN(row[0]))
		assert.Equal(t, 0.0, row[0])
	}
}

func TestUndersamplingBalances(t *testing.T) {
	train := makeData(t,
		[][]float64{{1}, {2}, {3}, {4}, {5}, {6}},
		[]float64{1, 0, 0, 0, 0, 1})

	selected, err := Undersampling{Seed: 7}.Apply(train.Copy(), train)
	require.NoError(t, err)

	bugs, nonBugs := selected.LabelCounts()
	assert.Equal(t, 2, bugs)
	assert.Equal(t, 2, nonBugs)
	assert.LessOrEqual(t, selected.NumRows(), train.NumRows())

	// deterministic for a fixed seed
	again, err := Undersampling{Seed: 7}.Apply(train.Copy(), train)
	require.NoError(t, err)
	assert.Equal(t, selected.Rows, again.Rows)
}

func TestUndersamplingSingleClass(t *testing.T) {
	train := makeData(t, [][]float64{{1}, {2}}, []float64{0, 0})

	selected, err := Undersampling{Seed: 1}.Apply(train.Copy(), train)
	require.NoError(t, err)
	assert.Equal(t, 0, selected.NumRows())
}

func TestLabelFilterKeepsBinaryLabels(t *testing.T) {
	train := makeData(t, [][]float64{{1}, {2}}, []float64{0, 1})

	selected, err := LabelFilter{}.Apply(train.Copy(), train)
	require.NoError(t, err)
	assert.Equal(t, train.Rows, selected.Rows)
	assert.Equal(t, train.Labels, selected.Labels)
}
