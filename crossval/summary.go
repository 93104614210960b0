package crossval

// FoldScore holds the held-out metrics of one model on one fold.
type FoldScore struct {
	Fold         int     `json:"fold"`
	Accuracy     float64 `json:"accuracy"`
	AUC          float64 `json:"roc_auc"`
	FitSeconds   float64 `json:"fit_seconds"`
	ScoreSeconds float64 `json:"score_seconds"`
}

// ModelSummary aggregates one model's per-fold metrics. Std is the
// population standard deviation over the fold scores: the folds are the
// whole population of interest, not a sample from a larger one.
//
// A model that failed on any fold carries Err instead of metrics; the
// failure never contaminates other models' rows.
type ModelSummary struct {
	Model        string      `json:"model"`
	AccuracyMean float64     `json:"accuracy_mean"`
	AccuracyStd  float64     `json:"accuracy_std"`
	AUCMean      float64     `json:"roc_auc_mean"`
	AUCStd       float64     `json:"roc_auc_std"`
	Folds        []FoldScore `json:"folds,omitempty"`
	Error        string      `json:"error,omitempty"`

	Err error `json:"-"`
}

// Available reports whether the model produced metrics on every fold.
func (m *ModelSummary) Available() bool {
	return m.Err == nil
}

// Summary is the result of one harness run: one entry per registered
// model, in registration order.
type Summary struct {
	FoldCount int            `json:"fold_count"`
	Seed      int64          `json:"seed"`
	Models    []ModelSummary `json:"models"`
}

// Model returns the summary entry for the named model.
func (s *Summary) Model(name string) (*ModelSummary, bool) {
	for i := range s.Models {
		if s.Models[i].Model == name {
			return &s.Models[i], true
		}
	}
	return nil, false
}
