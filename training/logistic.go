package training

import (
	"encoding/gob"
	"math"

	"defectpred/dataset"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

func init() {
	gob.Register(LogisticModel{})
}

// LogisticModel is the serialized form of a fitted LogisticTrainer.
type LogisticModel struct {
	Weights []float64
	Bias    float64
}

// LogisticTrainer fits a logistic regression classifier by batch gradient
// descent. The decision threshold for Predict is 0.5.
type LogisticTrainer struct {
	Iterations int
	LearnRate  float64

	model  LogisticModel
	fitted bool
}

func NewLogisticTrainer() *LogisticTrainer {
	return &LogisticTrainer{
		Iterations: 500,
		LearnRate:  0.1,
	}
}

func (t *LogisticTrainer) Name() string { return "logistic" }

func (t *LogisticTrainer) Apply(train *dataset.Dataset) error {
	n := train.NumRows()
	k := train.NumFeatures()
	t.model = LogisticModel{Weights: make([]float64, k)}
	t.fitted = true
	if n == 0 {
		return nil
	}

	grad := make([]float64, k)
	for iter := 0; iter < t.Iterations; iter++ {
		for j := range grad {
			grad[j] = 0
		}
		gradBias := 0.0
		for i, row := range train.Rows {
			residual := sigmoid(floats.Dot(t.model.Weights, row)+t.model.Bias) - train.Labels[i]
			floats.AddScaled(grad, residual, row)
			gradBias += residual
		}
		floats.AddScaled(t.model.Weights, -t.LearnRate/float64(n), grad)
		t.model.Bias -= t.LearnRate / float64(n) * gradBias
	}
	return nil
}

func (t *LogisticTrainer) Predict(features []float64) float64 {
	if t.Score(features) >= 0.5 {
		return 1
	}
	return 0
}

func (t *LogisticTrainer) Score(features []float64) float64 {
	return sigmoid(floats.Dot(t.model.Weights, features) + t.model.Bias)
}

func (t *LogisticTrainer) Model() (any, error) {
	if !t.fitted {
		return nil, errors.New("logistic trainer has not been fitted")
	}
	return t.model, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
