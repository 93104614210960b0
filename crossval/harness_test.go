package crossval

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/tabeval/tabeval/baseline"
	"github.com/tabeval/tabeval/bayes"
	"github.com/tabeval/tabeval/core/model"
	"github.com/tabeval/tabeval/dataset"
	"github.com/tabeval/tabeval/linear"
	"github.com/tabeval/tabeval/pkg/errors"
)

// evalDataset builds a deterministic 100-row dataset with 60 positives and
// 40 negatives. Two columns track the label closely, two are noise, so a
// 0.5 retention fraction keeps exactly the informative pair.
func evalDataset(t *testing.T) *dataset.Dataset {
	t.Helper()

	const n = 100
	labels := make([]float64, n)
	for i := 0; i < 60; i++ {
		labels[i] = 1
	}

	data := mat.NewDense(n, 4, nil)
	for i := 0; i < n; i++ {
		y := labels[i]
		data.Set(i, 0, y+0.01*float64(i%7))
		data.Set(i, 1, 2*y-0.05*float64(i%5))
		data.Set(i, 2, float64(i%13))
		data.Set(i, 3, float64((i*7)%11))
	}

	frame, err := dataset.NewFrame([]string{"signal", "signal2", "noise1", "noise2"}, data)
	require.NoError(t, err)
	ds, err := dataset.New(frame, labels)
	require.NoError(t, err)
	return ds
}

func fullRegistry(t *testing.T) *Registry {
	t.Helper()

	r := NewRegistry()
	require.NoError(t, r.Register("logistic", func() model.Classifier {
		return linear.NewLogisticRegression()
	}))
	require.NoError(t, r.Register("gaussian_nb", func() model.Classifier {
		return bayes.NewGaussianNB()
	}))
	require.NoError(t, r.Register("majority", func() model.Classifier {
		return baseline.NewMajorityClassifier()
	}))
	return r
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultConfig() Config {
	return Config{
		FoldCount:         5,
		Seed:              42,
		RetentionFraction: 0.5,
	}
}

func TestHarnessRunSummary(t *testing.T) {
	ds := evalDataset(t)

	h, err := NewHarness(defaultConfig(), fullRegistry(t), WithLogger(quietLogger()))
	require.NoError(t, err)
	summary, err := h.Run(ds)
	require.NoError(t, err)

	assert.Equal(t, 5, summary.FoldCount)
	assert.Equal(t, int64(42), summary.Seed)
	require.Len(t, summary.Models, 3)
	assert.Equal(t, "logistic", summary.Models[0].Model)
	assert.Equal(t, "gaussian_nb", summary.Models[1].Model)
	assert.Equal(t, "majority", summary.Models[2].Model)

	for _, ms := range summary.Models {
		require.True(t, ms.Available(), "model %s: %v", ms.Model, ms.Err)
		require.Len(t, ms.Folds, 5, "model %s", ms.Model)
		assert.GreaterOrEqual(t, ms.AccuracyMean, 0.0)
		assert.LessOrEqual(t, ms.AccuracyMean, 1.0)
		assert.GreaterOrEqual(t, ms.AccuracyStd, 0.0)
		assert.GreaterOrEqual(t, ms.AUCStd, 0.0)
		for _, fs := range ms.Folds {
			assert.GreaterOrEqual(t, fs.FitSeconds, 0.0)
			assert.GreaterOrEqual(t, fs.ScoreSeconds, 0.0)
		}
	}

	// The separable columns survive selection, so the real models must
	// clearly beat the majority baseline.
	logistic, ok := summary.Model("logistic")
	require.True(t, ok)
	nb, ok := summary.Model("gaussian_nb")
	require.True(t, ok)
	assert.Greater(t, logistic.AccuracyMean, 0.9)
	assert.Greater(t, logistic.AUCMean, 0.9)
	assert.Greater(t, nb.AccuracyMean, 0.9)
}

func TestHarnessMajorityBaseline(t *testing.T) {
	ds := evalDataset(t)

	r := NewRegistry()
	require.NoError(t, r.Register("majority", func() model.Classifier {
		return baseline.NewMajorityClassifier()
	}))

	h, err := NewHarness(defaultConfig(), r, WithLogger(quietLogger()))
	require.NoError(t, err)
	summary, err := h.Run(ds)
	require.NoError(t, err)

	ms, ok := summary.Model("majority")
	require.True(t, ok)
	require.True(t, ms.Available())

	// 60/40 split over 5 stratified folds: every held-out partition has 12
	// positives and 8 negatives, so the majority class scores exactly 0.6
	// on each fold and the constant score ties every pair at AUC 0.5.
	assert.InDelta(t, 0.6, ms.AccuracyMean, 1e-12)
	assert.InDelta(t, 0.0, ms.AccuracyStd, 1e-12)
	assert.InDelta(t, 0.5, ms.AUCMean, 1e-12)
	assert.InDelta(t, 0.0, ms.AUCStd, 1e-12)
}

// brokenModel fails every Fit; it stands in for a model that cannot train.
type brokenModel struct{}

func (brokenModel) Fit(X, y mat.Matrix) error {
	return errors.New("synthetic training failure")
}

func (brokenModel) Predict(X mat.Matrix) (mat.Matrix, error) {
	return nil, errors.New("not fitted")
}

func (brokenModel) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	return nil, errors.New("not fitted")
}

// panickyModel panics during Fit; the harness must convert the panic into
// a scoped failure rather than crash the run.
type panickyModel struct{}

func (panickyModel) Fit(X, y mat.Matrix) error {
	panic("numerical explosion")
}

func (panickyModel) Predict(X mat.Matrix) (mat.Matrix, error) {
	return nil, errors.New("not fitted")
}

func (panickyModel) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	return nil, errors.New("not fitted")
}

func TestHarnessScopesModelFailures(t *testing.T) {
	ds := evalDataset(t)

	r := NewRegistry()
	require.NoError(t, r.Register("broken", func() model.Classifier {
		return brokenModel{}
	}))
	require.NoError(t, r.Register("panicky", func() model.Classifier {
		return panickyModel{}
	}))
	require.NoError(t, r.Register("majority", func() model.Classifier {
		return baseline.NewMajorityClassifier()
	}))

	h, err := NewHarness(defaultConfig(), r, WithLogger(quietLogger()))
	require.NoError(t, err)
	summary, err := h.Run(ds)
	require.NoError(t, err, "one model's failure must not abort the run")

	broken, ok := summary.Model("broken")
	require.True(t, ok)
	require.False(t, broken.Available())
	var trainErr *errors.ModelTrainingError
	require.ErrorAs(t, broken.Err, &trainErr)
	assert.Equal(t, "broken", trainErr.Model)
	assert.Empty(t, broken.Folds)

	panicky, ok := summary.Model("panicky")
	require.True(t, ok)
	require.False(t, panicky.Available())
	require.ErrorAs(t, panicky.Err, &trainErr)
	assert.Equal(t, "panicky", trainErr.Model)

	majority, ok := summary.Model("majority")
	require.True(t, ok)
	require.True(t, majority.Available())
	assert.Len(t, majority.Folds, 5)
	assert.InDelta(t, 0.6, majority.AccuracyMean, 1e-12)
}

// metricsOnly strips the timing fields so runs can be compared exactly.
func metricsOnly(s *Summary) []ModelSummary {
	out := make([]ModelSummary, len(s.Models))
	for i, ms := range s.Models {
		copied := ms
		copied.Folds = make([]FoldScore, len(ms.Folds))
		for k, fs := range ms.Folds {
			fs.FitSeconds = 0
			fs.ScoreSeconds = 0
			copied.Folds[k] = fs
		}
		out[i] = copied
	}
	return out
}

func TestHarnessReproducibility(t *testing.T) {
	ds := evalDataset(t)

	run := func() *Summary {
		h, err := NewHarness(defaultConfig(), fullRegistry(t), WithLogger(quietLogger()))
		require.NoError(t, err)
		summary, err := h.Run(ds)
		require.NoError(t, err)
		return summary
	}

	first := run()
	second := run()
	assert.Equal(t, metricsOnly(first), metricsOnly(second))
}

func TestHarnessParallelMatchesSequential(t *testing.T) {
	ds := evalDataset(t)

	sequential, err := NewHarness(defaultConfig(), fullRegistry(t), WithLogger(quietLogger()))
	require.NoError(t, err)
	seqSummary, err := sequential.Run(ds)
	require.NoError(t, err)

	cfg := defaultConfig()
	cfg.Parallel = true
	parallel, err := NewHarness(cfg, fullRegistry(t), WithLogger(quietLogger()))
	require.NoError(t, err)
	parSummary, err := parallel.Run(ds)
	require.NoError(t, err)

	assert.Equal(t, metricsOnly(seqSummary), metricsOnly(parSummary))
}

func TestHarnessConfigValidation(t *testing.T) {
	registry := fullRegistry(t)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"fold count below 2", Config{FoldCount: 1, RetentionFraction: 0.5}},
		{"zero retention", Config{FoldCount: 5, RetentionFraction: 0}},
		{"retention above 1", Config{FoldCount: 5, RetentionFraction: 1.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHarness(tt.cfg, registry)
			var cfgErr *errors.ConfigurationError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}

	t.Run("empty registry", func(t *testing.T) {
		_, err := NewHarness(defaultConfig(), NewRegistry())
		assert.Error(t, err)
	})
}

func TestHarnessFoldCountExceedsMinority(t *testing.T) {
	// 3 positives cannot stratify into 5 folds.
	data := mat.NewDense(10, 1, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	frame, err := dataset.NewFrame([]string{"x"}, data)
	require.NoError(t, err)
	ds, err := dataset.New(frame, []float64{0, 0, 0, 0, 0, 0, 0, 1, 1, 1})
	require.NoError(t, err)

	cfg := defaultConfig()
	cfg.RetentionFraction = 1.0
	h, err := NewHarness(cfg, fullRegistry(t), WithLogger(quietLogger()))
	require.NoError(t, err)

	_, err = h.Run(ds)
	var cfgErr *errors.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}
