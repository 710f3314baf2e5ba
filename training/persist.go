package training

import (
	"encoding/gob"
	"os"

	"github.com/pkg/errors"
)

// SaveModel serializes the fitted model of a trainer to path. It fails if
// the trainer does not expose a model.
func SaveModel(path string, t Trainer) error {
	provider, ok := t.(ModelProvider)
	if !ok {
		return errors.Errorf("trainer %s does not expose a serializable model", t.Name())
	}
	model, err := provider.Model()
	if err != nil {
		return errors.Wrapf(err, "trainer %s has no model to save", t.Name())
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create model file %s", path)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(&model); err != nil {
		return errors.Wrapf(err, "failed to serialize model to %s", path)
	}
	return nil
}

// LoadModel reads a model previously written by SaveModel.
func LoadModel(path string) (any, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open model file %s", path)
	}
	defer file.Close()

	var model any
	if err := gob.NewDecoder(file).Decode(&model); err != nil {
		return nil, errors.Wrapf(err, "failed to deserialize model from %s", path)
	}
	return model, nil
}
