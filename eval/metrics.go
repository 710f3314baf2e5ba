package eval

import (
	"math"
	"sort"

	"defectpred/dataset"
	"defectpred/training"
)

// Compute evaluates one fitted classifier against the test data and derives
// the full metric set of an ExperimentResult. Effort-based metrics treat
// every module as unit inspection cost.
func Compute(configurationName string, test, train *dataset.Dataset, p training.Predictor) ExperimentResult {
	r := ExperimentResult{
		ConfigurationName: configurationName,
		ProductName:       test.Name,
		Classifier:        p.Name(),
		SizeTestData:      test.NumRows(),
		SizeTrainData:     train.NumRows(),
	}

	scores := make([]float64, test.NumRows())
	for i, row := range test.Rows {
		scores[i] = p.Score(row)
		predicted := p.Predict(row)
		actual := test.Labels[i]
		switch {
		case actual == 1 && predicted == 1:
			r.Tp++
		case actual == 1 && predicted == 0:
			r.Fn++
		case actual == 0 && predicted == 0:
			r.Tn++
		default:
			r.Fp++
		}
	}

	n := r.Tp + r.Fn + r.Tn + r.Fp
	r.Error = safeDiv(r.Fp+r.Fn, n)
	r.Recall = safeDiv(r.Tp, r.Tp+r.Fn)
	r.Precision = safeDiv(r.Tp, r.Tp+r.Fp)
	r.Fscore = safeDiv(2*r.Recall*r.Precision, r.Recall+r.Precision)
	r.Tpr = r.Recall
	r.Tnr = safeDiv(r.Tn, r.Tn+r.Fp)
	r.Fpr = safeDiv(r.Fp, r.Fp+r.Tn)
	r.Fnr = safeDiv(r.Fn, r.Fn+r.Tp)
	r.Gscore = safeDiv(2*r.Recall*r.Tnr, r.Recall+r.Tnr)
	r.Mcc = safeDiv(r.Tp*r.Tn-r.Fp*r.Fn,
		math.Sqrt((r.Tp+r.Fp)*(r.Tp+r.Fn)*(r.Tn+r.Fp)*(r.Tn+r.Fn)))
	r.Balance = 1 - math.Sqrt(r.Fpr*r.Fpr+(1-r.Tpr)*(1-r.Tpr))/math.Sqrt2
	r.Necm15 = safeDiv(r.Fp+15*r.Fn, n)
	r.Necm20 = safeDiv(r.Fp+20*r.Fn, n)
	r.Necm25 = safeDiv(r.Fp+25*r.Fn, n)
	r.Auc = rankAuc(scores, test.Labels)

	effort(&r, scores, test.Labels)
	return r
}

// rankAuc computes the area under the ROC curve via the Mann-Whitney U
// rank statistic, with midranks for tied scores.
func rankAuc(scores, labels []float64) float64 {
	n := len(scores)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return scores[idx[a]] < scores[idx[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j < n && scores[idx[j]] == scores[idx[i]] {
			j++
		}
		// midrank for the tie group [i,j)
		rank := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[idx[k]] = rank
		}
		i = j
	}

	var pos, rankSum float64
	for i, label := range labels {
		if label == 1 {
			pos++
			rankSum += ranks[i]
		}
	}
	neg := float64(n) - pos
	if pos == 0 || neg == 0 {
		return 0
	}
	return (rankSum - pos*(pos+1)/2) / (pos * neg)
}

// effort fills the cost-effectiveness metrics: modules are inspected in
// descending score order and every module costs one unit of effort.
func effort(r *ExperimentResult, scores, labels []float64) {
	n := len(scores)
	if n == 0 {
		return
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })

	totalBugs := 0.0
	for _, l := range labels {
		totalBugs += l
	}

	budget20 := int(math.Ceil(0.2 * float64(n)))
	var found, area float64
	nofi80 := 0.0
	for rank, i := range idx {
		found += labels[i]
		if rank < budget20 {
			r.Nofb20 = found
		}
		if nofi80 == 0 && totalBugs > 0 && found >= 0.8*totalBugs {
			nofi80 = float64(rank + 1)
		}
		// trapezoid strip of the cost-effectiveness curve
		area += (found - labels[i]/2) / float64(n)
	}
	if totalBugs > 0 {
		area /= totalBugs
	}
	r.Aucec = area
	r.Relb20 = safeDiv(r.Nofb20, totalBugs)
	r.Nofi80 = nofi80
	r.Reli80 = safeDiv(nofi80, float64(n))
	r.Rele80 = r.Reli80
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
