package feature

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tabeval/tabeval/core/model"
	"github.com/tabeval/tabeval/dataset"
	"github.com/tabeval/tabeval/pkg/errors"
)

// MeanImputer replaces missing values in each column with that column's
// training-partition mean. A column that is entirely missing at fit time
// imputes to 0.
type MeanImputer struct {
	state *model.StateManager

	cols  []string
	means map[string]float64
}

// NewMeanImputer creates a MeanImputer.
func NewMeanImputer() *MeanImputer {
	return &MeanImputer{
		state: model.NewStateManager(),
	}
}

// Fit computes the per-column mean of the present values.
func (m *MeanImputer) Fit(f *dataset.Frame) error {
	if f == nil || f.NumRows() == 0 || f.NumCols() == 0 {
		return errors.Wrap(errors.ErrEmptyData, "MeanImputer.Fit")
	}

	cols := f.Names()
	means := make(map[string]float64, len(cols))
	for _, name := range cols {
		col, err := f.Column(name)
		if err != nil {
			return err
		}
		sum, n := 0.0, 0
		for _, v := range col {
			if dataset.IsMissing(v) {
				continue
			}
			sum += v
			n++
		}
		if n == 0 {
			means[name] = 0
		} else {
			means[name] = sum / float64(n)
		}
	}

	m.cols = cols
	m.means = means
	m.state.SetDimensions(len(cols), f.NumRows())
	m.state.SetFitted()
	return nil
}

// Transform replaces missing values using the fitted means. The output
// frame carries the fit-time schema in fit-time order; any fitted column
// absent from the input is a schema mismatch.
func (m *MeanImputer) Transform(f *dataset.Frame) (*dataset.Frame, error) {
	if !m.state.IsFitted() {
		return nil, errors.NewNotFittedError("MeanImputer", "Transform")
	}

	out := mat.NewDense(f.NumRows(), len(m.cols), nil)
	for j, name := range m.cols {
		if !f.Has(name) {
			return nil, errors.NewSchemaMismatchError("MeanImputer.Transform", name)
		}
		col, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		mean := m.means[name]
		for i, v := range col {
			if dataset.IsMissing(v) {
				v = mean
			}
			out.Set(i, j, v)
		}
	}
	return dataset.NewFrame(m.cols, out)
}

// Means returns the fitted per-column means.
func (m *MeanImputer) Means() map[string]float64 {
	out := make(map[string]float64, len(m.means))
	for k, v := range m.means {
		out[k] = v
	}
	return out
}
