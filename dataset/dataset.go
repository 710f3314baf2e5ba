package dataset

import "github.com/pkg/errors"

// Dataset is a labeled feature table: one float64 row per software module
// plus a binary defect label per row. Labels are always exactly 0 or 1.
type Dataset struct {
	Name     string
	Features []string
	Rows     [][]float64
	Labels   []float64
}

// New creates an empty dataset with the given feature columns.
func New(name string, features []string) *Dataset {
	return &Dataset{
		Name:     name,
		Features: append([]string(nil), features...),
	}
}

func (d *Dataset) NumRows() int {
	return len(d.Rows)
}

func (d *Dataset) NumFeatures() int {
	return len(d.Features)
}

// Rename sets the human-readable dataset name.
func (d *Dataset) Rename(name string) {
	d.Name = name
}

// AddRow appends one labeled feature vector. The label must be 0 or 1.
func (d *Dataset) AddRow(features []float64, label float64) error {
	if len(features) != len(d.Features) {
		return errors.Errorf("row has %d values, dataset has %d features", len(features), len(d.Features))
	}
	if label != 0 && label != 1 {
		return errors.Errorf("label must be 0 or 1, got %v", label)
	}
	d.Rows = append(d.Rows, append([]float64(nil), features...))
	d.Labels = append(d.Labels, label)
	return nil
}

// Copy returns a deep duplicate sharing no memory with the receiver.
func (d *Dataset) Copy() *Dataset {
	c := &Dataset{
		Name:     d.Name,
		Features: append([]string(nil), d.Features...),
		Labels:   append([]float64(nil), d.Labels...),
	}
	if d.Rows != nil {
		c.Rows = make([][]float64, len(d.Rows))
		for i, row := range d.Rows {
			c.Rows[i] = append([]float64(nil), row...)
		}
	}
	return c
}

// LabelCounts returns the number of defective (label 1) and clean (label 0)
// rows.
func (d *Dataset) LabelCounts() (bugs, nonBugs int) {
	for _, l := range d.Labels {
		if l == 1 {
			bugs++
		} else {
			nonBugs++
		}
	}
	return bugs, nonBugs
}

// SoftwareVersion is one snapshot of one project's metrics and defect
// labels. It is created by a VersionLoader and read-only afterwards.
type SoftwareVersion struct {
	Project string
	Version string
	Data    *Dataset
}
