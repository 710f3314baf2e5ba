package main

import (
	"context"

	"defectpred/config"
	"defectpred/dataset"
	"defectpred/eval"
	"defectpred/experiment"
	"defectpred/processing"
	"defectpred/training"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// buildExperiment resolves the component names of the configuration into
// concrete implementations. The returned cleanup closes the result storage
// connection, if any.
func buildExperiment(ctx context.Context, cfg config.Config) (experiment.Config, func(), error) {
	cleanup := func() {}

	expCfg := experiment.Config{
		Name:           cfg.ExperimentName,
		ResultsPath:    cfg.ResultsPath,
		SaveClassifier: cfg.SaveClassifier,
	}

	var storage eval.ResultStorage
	if cfg.Storage.Enabled {
		sqlStorage, err := eval.Open(ctx, cfg.Storage)
		if err != nil {
			return experiment.Config{}, cleanup, err
		}
		storage = sqlStorage
		cleanup = func() { sqlStorage.Close() }
	}

	for _, name := range cfg.Loaders {
		switch name {
		case "csv":
			expCfg.Loaders = append(expCfg.Loaders, dataset.DirectoryLoader{
				Dir:        cfg.DataPath,
				FileLoader: dataset.CSVLoader{},
			})
		default:
			return experiment.Config{}, cleanup, errors.Errorf("unknown loader %q", name)
		}
	}

	var err error
	if expCfg.Preprocessors, err = buildProcessors(cfg.Preprocessors); err != nil {
		return experiment.Config{}, cleanup, err
	}
	if expCfg.Postprocessors, err = buildProcessors(cfg.Postprocessors); err != nil {
		return experiment.Config{}, cleanup, err
	}

	for _, name := range cfg.Selectors {
		switch name {
		case "undersampling":
			expCfg.Selectors = append(expCfg.Selectors, processing.Undersampling{Seed: 1})
		case "labelfilter":
			expCfg.Selectors = append(expCfg.Selectors, processing.LabelFilter{})
		default:
			return experiment.Config{}, cleanup, errors.Errorf("unknown pointwise selector %q", name)
		}
	}

	for _, name := range cfg.Trainers {
		switch name {
		case "bias":
			expCfg.Trainers = append(expCfg.Trainers, training.NewBiasTrainer())
		case "logistic":
			expCfg.Trainers = append(expCfg.Trainers, training.NewLogisticTrainer())
		default:
			return experiment.Config{}, cleanup, errors.Errorf("unknown trainer %q", name)
		}
	}

	for _, name := range cfg.Evaluators {
		switch name {
		case "csv":
			expCfg.Evaluators = append(expCfg.Evaluators, &eval.CSVEvaluator{
				ConfigurationName: cfg.ExperimentName,
				Storage:           storage,
			})
		default:
			return experiment.Config{}, cleanup, errors.Errorf("unknown evaluator %q", name)
		}
	}

	return expCfg, cleanup, nil
}

func buildProcessors(names []string) ([]processing.Processor, error) {
	var processors []processing.Processor
	for _, name := range names {
		switch name {
		case "normalization":
			processors = append(processors, processing.Normalization{})
		default:
			return nil, errors.Errorf("unknown processor %q", name)
		}
	}
	return processors, nil
}
