package processing

import "defectpred/dataset"

// Processor transforms a test/train dataset pair. Implementations are pure
// functions: they return replacement values and never modify their inputs.
type Processor interface {
	Name() string
	Apply(test, train *dataset.Dataset) (*dataset.Dataset, *dataset.Dataset, error)
}

// PointwiseSelector performs row-level filtering or resampling of the
// training data. The returned dataset replaces the training data; its size
// is arbitrary and may be empty.
type PointwiseSelector interface {
	Name() string
	Apply(test, train *dataset.Dataset) (*dataset.Dataset, error)
}
