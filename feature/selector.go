package feature

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/tabeval/tabeval/core/model"
	"github.com/tabeval/tabeval/dataset"
	"github.com/tabeval/tabeval/pkg/errors"
)

// ScoreFunc computes a scalar relevance score for one feature column
// against the label vector. Higher means more relevant. Implementations
// must not mutate their inputs.
type ScoreFunc func(column, labels []float64) float64

// AbsCorrelation is the default relevance scorer: the absolute Pearson
// correlation between a column and the label. Rows with a missing feature
// value are skipped; columns with fewer than two complete pairs or zero
// variance score 0.
func AbsCorrelation(column, labels []float64) float64 {
	xs := make([]float64, 0, len(column))
	ys := make([]float64, 0, len(column))
	for i, v := range column {
		if dataset.IsMissing(v) {
			continue
		}
		xs = append(xs, v)
		ys = append(ys, labels[i])
	}
	if len(xs) < 2 {
		return 0
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return 0
	}
	return math.Abs(r)
}

// Selector ranks feature columns by relevance against the label and
// retains the top fraction. Ties resolve to schema order, so selection is
// deterministic for identical input.
type Selector struct {
	state    *model.StateManager
	fraction float64
	score    ScoreFunc

	selected []string
	scores   map[string]float64
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithScoreFunc replaces the default AbsCorrelation scorer.
func WithScoreFunc(fn ScoreFunc) SelectorOption {
	return func(s *Selector) {
		s.score = fn
	}
}

// NewSelector creates a Selector retaining floor(n×fraction) columns, with
// a minimum of one. The fraction is validated at Fit time.
func NewSelector(fraction float64, opts ...SelectorOption) *Selector {
	s := &Selector{
		state:    model.NewStateManager(),
		fraction: fraction,
		score:    AbsCorrelation,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fit scores every column against the labels and fixes the selected set.
// Calling Fit again discards the previous selection.
func (s *Selector) Fit(f *dataset.Frame, labels []float64) error {
	if s.fraction <= 0 || s.fraction > 1 {
		return errors.NewConfigurationError("retention_fraction", "must be in (0, 1]", s.fraction)
	}
	if f == nil || f.NumCols() == 0 || f.NumRows() == 0 {
		return errors.Wrap(errors.ErrEmptyData, "Selector.Fit")
	}
	if f.NumRows() != len(labels) {
		return errors.NewDimensionError("Selector.Fit", f.NumRows(), len(labels), 0)
	}

	names := f.Names()
	scores := make(map[string]float64, len(names))
	order := make([]int, len(names))
	for j, name := range names {
		col, err := f.Column(name)
		if err != nil {
			return err
		}
		scores[name] = s.score(col, labels)
		order[j] = j
	}

	// Stable sort keeps schema order for equal scores.
	sort.SliceStable(order, func(a, b int) bool {
		return scores[names[order[a]]] > scores[names[order[b]]]
	})

	keep := int(math.Floor(float64(len(names)) * s.fraction))
	if keep < 1 {
		keep = 1
	}

	selected := make([]string, keep)
	for k := 0; k < keep; k++ {
		selected[k] = names[order[k]]
	}

	s.selected = selected
	s.scores = scores
	s.state.SetDimensions(len(names), f.NumRows())
	s.state.SetFitted()
	return nil
}

// Transform restricts a frame to the fitted selection. Any selected column
// absent from the input is a schema mismatch.
func (s *Selector) Transform(f *dataset.Frame) (*dataset.Frame, error) {
	if !s.state.IsFitted() {
		return nil, errors.NewNotFittedError("Selector", "Transform")
	}
	for _, name := range s.selected {
		if !f.Has(name) {
			return nil, errors.NewSchemaMismatchError("Selector.Transform", name)
		}
	}
	return f.Select(s.selected)
}

// SelectedFeatures returns the fitted selection in descending score order.
func (s *Selector) SelectedFeatures() []string {
	return append([]string(nil), s.selected...)
}

// Scores returns the relevance score computed for every column at fit time.
func (s *Selector) Scores() map[string]float64 {
	out := make(map[string]float64, len(s.scores))
	for k, v := range s.scores {
		out[k] = v
	}
	return out
}
