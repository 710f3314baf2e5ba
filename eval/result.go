package eval

// ExperimentResult is one classifier's evaluation on one version. It is
// created by an evaluator and never mutated afterwards. The triple
// (ConfigurationName, ProductName, Classifier) is the natural key used for
// duplicate detection.
type ExperimentResult struct {
	ConfigurationName string
	ProductName       string
	Classifier        string
	SizeTestData      int
	SizeTrainData     int

	Error     float64
	Recall    float64
	Precision float64
	Fscore    float64
	Gscore    float64
	Mcc       float64
	Auc       float64
	Balance   float64
	Aucec     float64
	Nofb20    float64
	Relb20    float64
	Nofi80    float64
	Reli80    float64
	Rele80    float64
	Necm15    float64
	Necm20    float64
	Necm25    float64
	Tpr       float64
	Tnr       float64
	Fpr       float64
	Fnr       float64
	Tp        float64
	Fn        float64
	Tn        float64
	Fp        float64
}

// metricColumns is the persisted column order, shared by the CSV output and
// the relational store.
var metricColumns = []string{
	"configurationName", "productName", "classifier", "testsize", "trainsize",
	"error", "recall", "precision", "fscore", "gscore", "mcc", "balance",
	"auc", "aucec", "nofb20", "relb20", "nofi80", "reli80", "rele80",
	"necm15", "necm20", "necm25", "tpr", "tnr", "fpr", "fnr",
	"tp", "fn", "tn", "fp",
}

// metrics returns the numeric metric values in metricColumns order,
// starting after the trainsize column.
func (r ExperimentResult) metrics() []float64 {
	return []float64{
		r.Error, r.Recall, r.Precision, r.Fscore, r.Gscore, r.Mcc, r.Balance,
		r.Auc, r.Aucec, r.Nofb20, r.Relb20, r.Nofi80, r.Reli80, r.Rele80,
		r.Necm15, r.Necm20, r.Necm25, r.Tpr, r.Tnr, r.Fpr, r.Fnr,
		r.Tp, r.Fn, r.Tn, r.Fp,
	}
}
