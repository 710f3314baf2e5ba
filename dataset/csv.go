package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CSVLoader parses metric files in the text format used by defect datasets:
// a header line, two leading identifier columns that are dropped, numeric
// metric columns and a trailing label column. Any label value other than
// the literal "0" marks the module as defective.
type CSVLoader struct{}

func (CSVLoader) Accepts(filename string) bool {
	return strings.HasSuffix(filename, ".csv")
}

func (CSVLoader) Load(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read CSV %s", path)
	}
	if len(records) == 0 {
		return nil, errors.Errorf("CSV %s has no header line", path)
	}

	header := records[0]
	// columns 0 and 1 are identifiers, the last column is the label
	if len(header) < 3 {
		return nil, errors.Errorf("CSV %s has %d columns, need at least 3", path, len(header))
	}
	features := make([]string, 0, len(header)-3)
	for _, name := range header[2 : len(header)-1] {
		features = append(features, strings.TrimSpace(name))
	}

	data := New(strings.TrimSuffix(filepath.Base(path), ".csv"), features)

	for i, record := range records[1:] {
		if len(record) != len(header) {
			return nil, errors.Errorf("CSV %s line %d has %d fields, header has %d", path, i+2, len(record), len(header))
		}
		row := make([]float64, 0, len(features))
		for j, field := range record[2 : len(record)-1] {
			value, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "CSV %s line %d: invalid value for %s", path, i+2, features[j])
			}
			row = append(row, value)
		}
		label := 1.0
		if strings.TrimSpace(record[len(record)-1]) == "0" {
			label = 0.0
		}
		if err := data.AddRow(row, label); err != nil {
			return nil, errors.Wrapf(err, "CSV %s line %d", path, i+2)
		}
	}
	return data, nil
}
