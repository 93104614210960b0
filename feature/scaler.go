package feature

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/tabeval/tabeval/core/model"
	"github.com/tabeval/tabeval/dataset"
	"github.com/tabeval/tabeval/pkg/errors"
)

// MinMaxScaler rescales each column to [0, 1] using the minimum and range
// observed at fit time. Applying the same fitted statistics to a held-out
// partition is what keeps fold evaluation leak-free, so Transform never
// recomputes them. Values outside the fitted range map outside [0, 1].
type MinMaxScaler struct {
	state *model.StateManager

	cols  []string
	min   map[string]float64
	scale map[string]float64
}

// NewMinMaxScaler creates a MinMaxScaler.
func NewMinMaxScaler() *MinMaxScaler {
	return &MinMaxScaler{
		state: model.NewStateManager(),
	}
}

// Fit computes the per-column minimum and range, skipping missing values.
// A constant column gets scale 1 so it transforms to all zeros instead of
// dividing by zero.
func (m *MinMaxScaler) Fit(f *dataset.Frame) error {
	if f == nil || f.NumRows() == 0 || f.NumCols() == 0 {
		return errors.Wrap(errors.ErrEmptyData, "MinMaxScaler.Fit")
	}

	cols := f.Names()
	mins := make(map[string]float64, len(cols))
	scales := make(map[string]float64, len(cols))
	for _, name := range cols {
		col, err := f.Column(name)
		if err != nil {
			return err
		}
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, v := range col {
			if dataset.IsMissing(v) {
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if math.IsInf(lo, 1) {
			// Entirely missing column: identity transform.
			lo, hi = 0, 0
		}
		mins[name] = lo
		if hi-lo < 1e-8 {
			scales[name] = 1.0
		} else {
			scales[name] = hi - lo
		}
	}

	m.cols = cols
	m.min = mins
	m.scale = scales
	m.state.SetDimensions(len(cols), f.NumRows())
	m.state.SetFitted()
	return nil
}

// Transform rescales using the fitted statistics. Missing values pass
// through unchanged. Any fitted column absent from the input is a schema
// mismatch.
func (m *MinMaxScaler) Transform(f *dataset.Frame) (*dataset.Frame, error) {
	if !m.state.IsFitted() {
		return nil, errors.NewNotFittedError("MinMaxScaler", "Transform")
	}

	out := mat.NewDense(f.NumRows(), len(m.cols), nil)
	for j, name := range m.cols {
		if !f.Has(name) {
			return nil, errors.NewSchemaMismatchError("MinMaxScaler.Transform", name)
		}
		col, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		lo, scale := m.min[name], m.scale[name]
		for i, v := range col {
			if !dataset.IsMissing(v) {
				v = (v - lo) / scale
			}
			out.Set(i, j, v)
		}
	}
	return dataset.NewFrame(m.cols, out)
}
