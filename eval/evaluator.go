package eval

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"

	"defectpred/dataset"
	"defectpred/training"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Evaluator scores fitted trainers against a test dataset and persists the
// results. Side effects (file and DB writes) belong to the evaluator, not
// the driver.
type Evaluator interface {
	// Setup configures the output target. The driver calls it exactly once
	// per run, before the first Apply.
	Setup(outputPath string)
	Apply(ctx context.Context, test, train *dataset.Dataset, trainers []training.Trainer, writeHeader bool) error
}

// CSVEvaluator appends one result row per fitted trainer to a CSV file and
// optionally mirrors each row into a ResultStorage. Trainers that cannot
// predict are skipped.
type CSVEvaluator struct {
	ConfigurationName string
	Storage           ResultStorage

	outputPath string
}

func (e *CSVEvaluator) Setup(outputPath string) {
	e.outputPath = outputPath
}

func (e *CSVEvaluator) Apply(ctx context.Context, test, train *dataset.Dataset, trainers []training.Trainer, writeHeader bool) error {
	file, err := os.OpenFile(e.outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "failed to open result file %s", e.outputPath)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if writeHeader {
		if err := w.Write(metricColumns); err != nil {
			return errors.Wrap(err, "failed to write result header")
		}
	}

	for _, t := range trainers {
		predictor, ok := t.(training.Predictor)
		if !ok {
			log.Warn().Str("trainer", t.Name()).Msg("trainer cannot predict, skipping evaluation")
			continue
		}
		result := Compute(e.ConfigurationName, test, train, predictor)
		if err := w.Write(resultRecord(result)); err != nil {
			return errors.Wrap(err, "failed to write result row")
		}
		if e.Storage != nil {
			e.store(ctx, result)
		}
	}

	w.Flush()
	return errors.Wrap(w.Error(), "failed to flush result file")
}

func (e *CSVEvaluator) store(ctx context.Context, result ExperimentResult) {
	existing := e.Storage.ContainsResult(ctx, result.ConfigurationName, result.ProductName, result.Classifier)
	if existing > 0 {
		log.Info().
			Str("product", result.ProductName).
			Str("classifier", result.Classifier).
			Msg("result already stored, skipping insert")
		return
	}
	e.Storage.AddResult(ctx, result)
}

func resultRecord(r ExperimentResult) []string {
	record := []string{
		r.ConfigurationName,
		r.ProductName,
		r.Classifier,
		strconv.Itoa(r.SizeTestData),
		strconv.Itoa(r.SizeTrainData),
	}
	for _, v := range r.metrics() {
		record = append(record, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return record
}
