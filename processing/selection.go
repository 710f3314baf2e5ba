package processing

import (
	"math/rand"

	"defectpred/dataset"
)

// Undersampling balances the training data by randomly dropping rows of the
// majority class until both classes have equal size. The selection is
// deterministic for a fixed Seed.
type Undersampling struct {
	Seed int64
}

func (Undersampling) Name() string { return "undersampling" }

func (u Undersampling) Apply(test, train *dataset.Dataset) (*dataset.Dataset, error) {
	bugs, nonBugs := train.LabelCounts()
	majority, keep := 0.0, bugs
	if bugs > nonBugs {
		majority, keep = 1.0, nonBugs
	}

	var majorityIdx []int
	rng := rand.New(rand.NewSource(u.Seed))
	out := dataset.New(train.Name, train.Features)
	for i, label := range train.Labels {
		if label == majority {
			majorityIdx = append(majorityIdx, i)
			continue
		}
		if err := out.AddRow(train.Rows[i], label); err != nil {
			return nil, err
		}
	}

	rng.Shuffle(len(majorityIdx), func(i, j int) {
		majorityIdx[i], majorityIdx[j] = majorityIdx[j], majorityIdx[i]
	})
	if keep > len(majorityIdx) {
		keep = len(majorityIdx)
	}
	for _, i := range majorityIdx[:keep] {
		if err := out.AddRow(train.Rows[i], train.Labels[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// LabelFilter drops rows whose label is outside {0,1}. CSV input can never
// produce such rows, so this is only relevant for programmatic loaders.
type LabelFilter struct{}

func (LabelFilter) Name() string { return "labelfilter" }

func (LabelFilter) Apply(test, train *dataset.Dataset) (*dataset.Dataset, error) {
	out := dataset.New(train.Name, train.Features)
	for i, label := range train.Labels {
		if label != 0 && label != 1 {
			continue
		}
		if err := out.AddRow(train.Rows[i], label); err != nil {
			return nil, err
		}
	}
	return out, nil
}
