package experiment

import (
	"context"
	"os"
	"path/filepath"

	"defectpred/dataset"
	"defectpred/eval"
	"defectpred/processing"
	"defectpred/training"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Config enumerates the components of one experiment run. All component
// lists are ordered; the driver applies them in the order given here.
type Config struct {
	Name           string
	ResultsPath    string
	SaveClassifier bool

	Loaders        []dataset.VersionLoader
	Preprocessors  []processing.Processor
	Selectors      []processing.PointwiseSelector
	Postprocessors []processing.Processor
	Trainers       []training.Trainer
	Evaluators     []eval.Evaluator
}

// Experiment trains and evaluates the configured classifiers on every
// software version, one version at a time.
type Experiment struct {
	cfg Config
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Run executes the full pipeline: load all versions, ensure the results
// directory exists, then per version run preprocessing, pointwise
// selection, postprocessing, training with optional model persistence, and
// evaluation. The result file header is written exactly once per run.
func (e *Experiment) Run(ctx context.Context) error {
	var versions []dataset.SoftwareVersion
	for _, loader := range e.cfg.Loaders {
		loaded, err := loader.Load()
		if err != nil {
			return errors.Wrap(err, "failed to load versions")
		}
		versions = append(versions, loaded...)
	}

	if err := os.MkdirAll(e.cfg.ResultsPath, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create results directory %s", e.cfg.ResultsPath)
	}

	writeHeader := true
	for count, version := range versions {
		logger := log.With().
			Str("experiment", e.cfg.Name).
			Int("version", count+1).
			Int("total", len(versions)).
			Str("project", version.Project).
			Logger()

		// trainData starts as a full copy of testData so pointwise
		// selection always sees the whole population.
		testData := version.Data.Copy()
		testData.Rename(version.Project)
		trainData := testData.Copy()

		var err error
		for _, processor := range e.cfg.Preprocessors {
			logger.Debug().Str("processor", processor.Name()).Msg("applying preprocessor")
			testData, trainData, err = processor.Apply(testData, trainData)
			if err != nil {
				return errors.Wrapf(err, "preprocessor %s failed on %s", processor.Name(), version.Project)
			}
		}

		for _, selector := range e.cfg.Selectors {
			logger.Debug().Str("selector", selector.Name()).Msg("applying pointwise selection")
			trainData, err = selector.Apply(testData, trainData)
			if err != nil {
				return errors.Wrapf(err, "selector %s failed on %s", selector.Name(), version.Project)
			}
		}

		for _, processor := range e.cfg.Postprocessors {
			logger.Debug().Str("processor", processor.Name()).Msg("applying postprocessor")
			testData, trainData, err = processor.Apply(testData, trainData)
			if err != nil {
				return errors.Wrapf(err, "postprocessor %s failed on %s", processor.Name(), version.Project)
			}
		}

		trainBugs, trainNonBugs := trainData.LabelCounts()
		testBugs, testNonBugs := testData.LabelCounts()
		logger.Info().
			Int("trainBugs", trainBugs).Int("trainNonBugs", trainNonBugs).
			Int("testBugs", testBugs).Int("testNonBugs", testNonBugs).
			Msg("label distribution")

		allTrainers := make([]training.Trainer, 0, len(e.cfg.Trainers))
		for _, trainer := range e.cfg.Trainers {
			allTrainers = append(allTrainers, trainer)

			if err := trainer.Apply(trainData); err != nil {
				return errors.Wrapf(err, "trainer %s failed on %s", trainer.Name(), version.Project)
			}

			if e.cfg.SaveClassifier {
				path := filepath.Join(e.cfg.ResultsPath, trainer.Name()+"-"+version.Project)
				if err := training.SaveModel(path, trainer); err != nil {
					// a failed save never aborts the run
					logger.Error().Err(err).Str("trainer", trainer.Name()).Msg("failed to save classifier")
				}
			}
		}

		for _, evaluator := range e.cfg.Evaluators {
			if writeHeader {
				evaluator.Setup(filepath.Join(e.cfg.ResultsPath, e.cfg.Name+".csv"))
			}
			if err := evaluator.Apply(ctx, testData, trainData, allTrainers, writeHeader); err != nil {
				return errors.Wrapf(err, "evaluation failed on %s", version.Project)
			}
			writeHeader = false
		}

		logger.Info().Msg("finished")
	}
	return nil
}
