package crossval

import (
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/tabeval/tabeval/dataset"
	"github.com/tabeval/tabeval/feature"
	"github.com/tabeval/tabeval/metrics"
	"github.com/tabeval/tabeval/pkg/errors"
	"github.com/tabeval/tabeval/pkg/log"
)

// Config holds the run parameters of a cross-validation harness.
type Config struct {
	// FoldCount is the number of stratified folds, at least 2.
	FoldCount int
	// Seed derives the fold partition. Equal seeds give equal partitions.
	Seed int64
	// RetentionFraction is the fraction of feature columns the default
	// pipeline keeps, in (0, 1].
	RetentionFraction float64
	// Parallel evaluates folds concurrently, one goroutine per fold.
	Parallel bool
}

// Validate checks the configuration before any data is touched.
func (c Config) Validate() error {
	if c.FoldCount < 2 {
		return errors.NewConfigurationError("fold_count", "must be at least 2", c.FoldCount)
	}
	if c.RetentionFraction <= 0 || c.RetentionFraction > 1 {
		return errors.NewConfigurationError("retention_fraction",
			"must be in (0, 1]", c.RetentionFraction)
	}
	return nil
}

// PipelineFactory builds a fresh, unfitted preprocessing pipeline. The
// harness calls it once per fold so fitted statistics never cross fold
// boundaries.
type PipelineFactory func() *feature.Pipeline

// Option configures a Harness.
type Option func(*Harness)

// WithPipelineFactory replaces the default selection/imputation/scaling
// pipeline.
func WithPipelineFactory(fn PipelineFactory) Option {
	return func(h *Harness) {
		h.newPipeline = fn
	}
}

// WithLogger sets the structured logger for run progress and failures.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// Harness runs every registered model through the same stratified
// cross-validation protocol: per fold, fit the preprocessing pipeline on
// the training partition, replay it on the held-out partition, then fit
// and score a fresh instance of each model. All models see identical
// partitions and identical transformed features, so their summary rows
// are directly comparable.
type Harness struct {
	cfg         Config
	registry    *Registry
	newPipeline PipelineFactory
	logger      *slog.Logger
}

// NewHarness creates a Harness for the given configuration and model
// registry. The registry must hold at least one model.
func NewHarness(cfg Config, registry *Registry, opts ...Option) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if registry == nil || registry.Len() == 0 {
		return nil, errors.NewConfigurationError("registry",
			"at least one model must be registered", registry)
	}

	h := &Harness{
		cfg:      cfg,
		registry: registry,
		newPipeline: func() *feature.Pipeline {
			return feature.Default(cfg.RetentionFraction)
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// foldOutcome is one model's result on one fold: metrics on success, a
// ModelTrainingError on failure.
type foldOutcome struct {
	score FoldScore
	err   error
}

// Run cross-validates every registered model on the dataset and returns
// the aggregated summary.
//
// A pipeline or split failure aborts the whole run: it would invalidate
// every model equally. A single model's fit or predict failure is scoped
// to that model's summary row; the remaining models still produce
// metrics.
func (h *Harness) Run(ds *dataset.Dataset) (*Summary, error) {
	if ds == nil || ds.NumRows() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "Harness.Run")
	}

	splitter := NewStratifiedKFold(h.cfg.FoldCount, h.cfg.Seed)
	folds, err := splitter.Split(ds.Labels())
	if err != nil {
		return nil, err
	}
	h.logger.Info("dataset partitioned",
		slog.String(log.ComponentKey, "crossval"),
		slog.String(log.OperationKey, log.OperationSplit),
		slog.Int(log.FoldsKey, len(folds)),
		slog.Int64(log.SeedKey, h.cfg.Seed),
		slog.Int(log.SamplesKey, ds.NumRows()),
		slog.Int(log.FeaturesKey, ds.NumFeatures()),
	)

	names := h.registry.Names()
	outcomes := make([][]foldOutcome, len(folds))

	if h.cfg.Parallel {
		var g errgroup.Group
		for i := range folds {
			g.Go(func() error {
				out, err := h.evalFold(ds, folds[i], i, names)
				if err != nil {
					return err
				}
				outcomes[i] = out
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range folds {
			out, err := h.evalFold(ds, folds[i], i, names)
			if err != nil {
				return nil, err
			}
			outcomes[i] = out
		}
	}

	return h.aggregate(names, outcomes), nil
}

// evalFold fits the pipeline on the fold's training partition and scores
// every model on the held-out partition. The returned error covers
// fold-level failures only; model-level failures travel in the outcomes.
func (h *Harness) evalFold(ds *dataset.Dataset, fold Fold, foldIdx int, names []string) ([]foldOutcome, error) {
	train, err := ds.Subset(fold.TrainIndices)
	if err != nil {
		return nil, err
	}
	test, err := ds.Subset(fold.TestIndices)
	if err != nil {
		return nil, err
	}

	pipe := h.newPipeline()
	trainX, err := pipe.FitTransform(train.Frame(), train.Labels())
	if err != nil {
		return nil, err
	}
	testX, err := pipe.Transform(test.Frame())
	if err != nil {
		return nil, err
	}
	h.logger.Debug("pipeline fitted",
		slog.String(log.ComponentKey, "crossval"),
		slog.String(log.OperationKey, log.OperationTransform),
		slog.Int(log.FoldKey, foldIdx),
		slog.Int(log.SamplesKey, train.NumRows()),
		slog.Int(log.SelectedFeaturesKey, trainX.NumCols()),
	)

	trainY := train.LabelMatrix()
	testY := test.LabelMatrix()

	out := make([]foldOutcome, len(names))
	for mi, name := range names {
		out[mi] = h.evalModel(name, foldIdx, trainX.Matrix(), trainY, testX.Matrix(), testY)
	}
	return out, nil
}

// evalModel fits and scores one fresh model instance on one fold. Any
// failure, panics included, comes back as a ModelTrainingError naming
// the model and fold.
func (h *Harness) evalModel(name string, foldIdx int, trainX mat.Matrix, trainY *mat.Dense, testX mat.Matrix, testY *mat.Dense) foldOutcome {
	clf, err := h.registry.New(name)
	if err != nil {
		return foldOutcome{err: errors.NewModelTrainingError(name, foldIdx, err)}
	}

	fitStart := time.Now()
	err = errors.SafeExecute(name+".Fit", func() error {
		return clf.Fit(trainX, trainY)
	})
	if err != nil {
		return foldOutcome{err: errors.NewModelTrainingError(name, foldIdx, err)}
	}
	fitSeconds := time.Since(fitStart).Seconds()

	scoreStart := time.Now()
	var pred, proba mat.Matrix
	err = errors.SafeExecute(name+".Predict", func() error {
		var inner error
		if pred, inner = clf.Predict(testX); inner != nil {
			return inner
		}
		proba, inner = clf.PredictProba(testX)
		return inner
	})
	if err != nil {
		return foldOutcome{err: errors.NewModelTrainingError(name, foldIdx, err)}
	}

	acc, err := metrics.AccuracyMatrix(testY, pred)
	if err != nil {
		return foldOutcome{err: errors.NewModelTrainingError(name, foldIdx, err)}
	}
	auc, err := metrics.AUC(firstColumnVec(testY), positiveScores(proba))
	if err != nil {
		return foldOutcome{err: errors.NewModelTrainingError(name, foldIdx, err)}
	}
	scoreSeconds := time.Since(scoreStart).Seconds()

	h.logger.Debug("fold scored",
		slog.String(log.ComponentKey, "crossval"),
		slog.String(log.ModelNameKey, name),
		slog.Int(log.FoldKey, foldIdx),
		slog.Float64(log.AccuracyKey, acc),
		slog.Float64(log.AUCKey, auc),
		slog.Float64(log.DurationMsKey, (fitSeconds+scoreSeconds)*1000),
	)

	return foldOutcome{score: FoldScore{
		Fold:         foldIdx,
		Accuracy:     acc,
		AUC:          auc,
		FitSeconds:   fitSeconds,
		ScoreSeconds: scoreSeconds,
	}}
}

// aggregate collapses per-fold outcomes into one summary row per model.
func (h *Harness) aggregate(names []string, outcomes [][]foldOutcome) *Summary {
	summary := &Summary{
		FoldCount: h.cfg.FoldCount,
		Seed:      h.cfg.Seed,
		Models:    make([]ModelSummary, len(names)),
	}

	for mi, name := range names {
		ms := ModelSummary{Model: name}
		var accs, aucs []float64
		for fi := range outcomes {
			oc := outcomes[fi][mi]
			if oc.err != nil {
				if ms.Err == nil {
					ms.Err = oc.err
					ms.Error = oc.err.Error()
				}
				h.logger.Error("model failed",
					log.ErrAttr(oc.err),
					slog.String(log.ComponentKey, "crossval"),
					slog.String(log.ModelNameKey, name),
					slog.Int(log.FoldKey, fi),
				)
				continue
			}
			accs = append(accs, oc.score.Accuracy)
			aucs = append(aucs, oc.score.AUC)
			ms.Folds = append(ms.Folds, oc.score)
		}

		if ms.Err != nil {
			// Partial metrics would not be comparable with full ones.
			ms.Folds = nil
		} else {
			ms.AccuracyMean = stat.Mean(accs, nil)
			ms.AccuracyStd = stat.PopStdDev(accs, nil)
			ms.AUCMean = stat.Mean(aucs, nil)
			ms.AUCStd = stat.PopStdDev(aucs, nil)
			h.logger.Info("model aggregated",
				slog.String(log.ComponentKey, "crossval"),
				slog.String(log.OperationKey, log.OperationAggregate),
				slog.String(log.ModelNameKey, name),
				slog.Float64(log.AccuracyKey, ms.AccuracyMean),
				slog.Float64(log.AUCKey, ms.AUCMean),
			)
		}
		summary.Models[mi] = ms
	}
	return summary
}

// positiveScores extracts the positive-class column from an n×2
// probability matrix. Single-column outputs are used as-is.
func positiveScores(proba mat.Matrix) *mat.VecDense {
	r, c := proba.Dims()
	col := c - 1
	if col < 0 {
		col = 0
	}
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, proba.At(i, col))
	}
	return v
}

func firstColumnVec(m *mat.Dense) *mat.VecDense {
	r, _ := m.Dims()
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v
}
