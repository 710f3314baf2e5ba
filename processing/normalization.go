package processing

import (
	"math"

	"defectpred/dataset"

	"gonum.org/v1/gonum/stat"
)

// Normalization standardizes every feature column to zero mean and unit
// variance. Test and train data are standardized independently.
type Normalization struct{}

func (Normalization) Name() string { return "normalization" }

func (n Normalization) Apply(test, train *dataset.Dataset) (*dataset.Dataset, *dataset.Dataset, error) {
	return standardize(test), standardize(train), nil
}

func standardize(d *dataset.Dataset) *dataset.Dataset {
	out := d.Copy()
	if out.NumRows() == 0 {
		return out
	}
	column := make([]float64, out.NumRows())
	for j := 0; j < out.NumFeatures(); j++ {
		for i, row := range out.Rows {
			column[i] = row[j]
		}
		mean, std := stat.MeanStdDev(column, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		for _, row := range out.Rows {
			row[j] = (row[j] - mean) / std
		}
	}
	return out
}
