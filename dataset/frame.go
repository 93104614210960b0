// Package dataset provides the in-memory tabular data model: an ordered
// feature frame with missing-value support, and a labeled dataset built on
// top of it. Missing values are represented as NaN.
package dataset

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/tabeval/tabeval/pkg/errors"
)

// Missing returns the sentinel used for absent feature values.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether v is the missing-value sentinel.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Frame is an ordered collection of named feature columns backed by a dense
// matrix. Column order is the schema order and is significant: it defines
// the deterministic tie-break for feature selection. A Frame never mutates
// its backing data after construction.
type Frame struct {
	names []string
	index map[string]int
	data  *mat.Dense
}

// NewFrame creates a Frame from column names and an n×len(names) matrix.
func NewFrame(names []string, data *mat.Dense) (*Frame, error) {
	if data == nil || len(names) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "NewFrame")
	}
	_, c := data.Dims()
	if c != len(names) {
		return nil, errors.NewDimensionError("NewFrame", len(names), c, 1)
	}

	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, errors.NewValueError("NewFrame", "empty column name")
		}
		if _, ok := index[name]; ok {
			return nil, errors.NewValueError("NewFrame", "duplicate column name '"+name+"'")
		}
		index[name] = i
	}

	return &Frame{
		names: append([]string(nil), names...),
		index: index,
		data:  data,
	}, nil
}

// Names returns the column names in schema order.
func (f *Frame) Names() []string {
	return append([]string(nil), f.names...)
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int {
	r, _ := f.data.Dims()
	return r
}

// NumCols returns the number of columns.
func (f *Frame) NumCols() int {
	return len(f.names)
}

// Has reports whether the frame contains the named column.
func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Column returns a copy of the named column.
func (f *Frame) Column(name string) ([]float64, error) {
	j, ok := f.index[name]
	if !ok {
		return nil, errors.NewSchemaMismatchError("Frame.Column", name)
	}
	r := f.NumRows()
	col := make([]float64, r)
	for i := 0; i < r; i++ {
		col[i] = f.data.At(i, j)
	}
	return col, nil
}

// Matrix returns the backing matrix. Callers must treat it as read-only.
func (f *Frame) Matrix() mat.Matrix {
	return f.data
}

// Select returns a new Frame restricted to the given columns, in the given
// order. A requested column absent from the frame is a schema mismatch.
func (f *Frame) Select(names []string) (*Frame, error) {
	if len(names) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "Frame.Select")
	}
	r := f.NumRows()
	out := mat.NewDense(r, len(names), nil)
	for k, name := range names {
		j, ok := f.index[name]
		if !ok {
			return nil, errors.NewSchemaMismatchError("Frame.Select", name)
		}
		for i := 0; i < r; i++ {
			out.Set(i, k, f.data.At(i, j))
		}
	}
	return NewFrame(names, out)
}

// RowSubset returns a new Frame containing the given rows, in the given
// order.
func (f *Frame) RowSubset(indices []int) (*Frame, error) {
	if len(indices) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "Frame.RowSubset")
	}
	r, c := f.data.Dims()
	out := mat.NewDense(len(indices), c, nil)
	for k, idx := range indices {
		if idx < 0 || idx >= r {
			return nil, errors.NewValueError("Frame.RowSubset", "row index out of range")
		}
		for j := 0; j < c; j++ {
			out.Set(k, j, f.data.At(idx, j))
		}
	}
	return NewFrame(f.names, out)
}
