package training

import "defectpred/dataset"

// Trainer is a named model-fitting unit. One instance is reused across a
// whole experiment run and refit per version.
type Trainer interface {
	Name() string
	Apply(train *dataset.Dataset) error
}

// Predictor is a trainer whose fitted model can classify feature vectors.
type Predictor interface {
	Trainer
	// Predict returns the predicted class, 0 or 1.
	Predict(features []float64) float64
	// Score returns a continuous confidence for class 1, used for ranking
	// metrics such as AUC.
	Score(features []float64) float64
}

// ModelProvider is implemented by trainers whose fitted model can be
// serialized.
type ModelProvider interface {
	Model() (any, error)
}
