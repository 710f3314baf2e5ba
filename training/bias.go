package training

import (
	"encoding/gob"

	"defectpred/dataset"

	"github.com/pkg/errors"
)

func init() {
	gob.Register(BiasModel{})
}

// BiasModel is the serialized form of a fitted BiasTrainer.
type BiasModel struct {
	Majority float64
}

// BiasTrainer predicts the majority class of its training data. It serves
// as the baseline classifier.
type BiasTrainer struct {
	model  BiasModel
	fitted bool
}

func NewBiasTrainer() *BiasTrainer {
	return &BiasTrainer{}
}

func (t *BiasTrainer) Name() string { return "bias" }

func (t *BiasTrainer) Apply(train *dataset.Dataset) error {
	bugs, nonBugs := train.LabelCounts()
	t.model.Majority = 0
	if bugs > nonBugs {
		t.model.Majority = 1
	}
	t.fitted = true
	return nil
}

func (t *BiasTrainer) Predict(features []float64) float64 {
	return t.model.Majority
}

func (t *BiasTrainer) Score(features []float64) float64 {
	return t.model.Majority
}

func (t *BiasTrainer) Model() (any, error) {
	if !t.fitted {
		return nil, errors.New("bias trainer has not been fitted")
	}
	return t.model, nil
}
