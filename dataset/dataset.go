package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tabeval/tabeval/pkg/errors"
)

// Dataset pairs a feature Frame with a parallel binary label per row.
// Row order matters only as index correspondence between features and
// labels. The dataset is immutable once constructed and safe to share
// across concurrent fold evaluations.
type Dataset struct {
	frame  *Frame
	labels []float64
}

// New creates a Dataset from a frame and 0/1 labels. The label count must
// match the frame's row count and every label must be exactly 0 or 1.
func New(frame *Frame, labels []float64) (*Dataset, error) {
	if frame == nil || len(labels) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset.New")
	}
	if frame.NumRows() != len(labels) {
		return nil, errors.NewDimensionError("dataset.New", frame.NumRows(), len(labels), 0)
	}
	for _, y := range labels {
		if y != 0 && y != 1 {
			return nil, errors.NewValueError("dataset.New", "labels must be binary (0 or 1)")
		}
	}
	return &Dataset{
		frame:  frame,
		labels: append([]float64(nil), labels...),
	}, nil
}

// Frame returns the feature frame.
func (d *Dataset) Frame() *Frame {
	return d.frame
}

// Labels returns the label vector. Callers must treat it as read-only.
func (d *Dataset) Labels() []float64 {
	return d.labels
}

// LabelMatrix returns the labels as an n×1 matrix for the model boundary.
func (d *Dataset) LabelMatrix() *mat.Dense {
	return mat.NewDense(len(d.labels), 1, append([]float64(nil), d.labels...))
}

// NumRows returns the number of rows.
func (d *Dataset) NumRows() int {
	return len(d.labels)
}

// NumFeatures returns the number of feature columns.
func (d *Dataset) NumFeatures() int {
	return d.frame.NumCols()
}

// PositiveFraction returns the fraction of rows with label 1.
func (d *Dataset) PositiveFraction() float64 {
	pos := 0
	for _, y := range d.labels {
		if y == 1 {
			pos++
		}
	}
	return float64(pos) / float64(len(d.labels))
}

// Subset returns a new Dataset restricted to the given rows, in the given
// order.
func (d *Dataset) Subset(indices []int) (*Dataset, error) {
	frame, err := d.frame.RowSubset(indices)
	if err != nil {
		return nil, err
	}
	labels := make([]float64, len(indices))
	for k, idx := range indices {
		labels[k] = d.labels[idx]
	}
	return New(frame, labels)
}

// Source is the external collaborator that supplies a Dataset. File format,
// sampling and filtering are the source's concern; the harness only needs
// the loaded result.
type Source interface {
	LoadRows() (*Dataset, error)
}
