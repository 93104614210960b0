package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tabeval/tabeval/pkg/errors"
)

// CheckFitInputs validates the shared Fit contract for binary classifiers:
// non-empty X, an n×1 label matrix with matching row count, and labels that
// are exactly 0 or 1. It returns the input dimensions for convenience.
func CheckFitInputs(op string, X, y mat.Matrix) (nSamples, nFeatures int, err error) {
	if X == nil || y == nil {
		return 0, 0, errors.Wrap(errors.ErrEmptyData, op)
	}
	nSamples, nFeatures = X.Dims()
	yRows, yCols := y.Dims()
	if nSamples == 0 || nFeatures == 0 {
		return 0, 0, errors.Wrap(errors.ErrEmptyData, op)
	}
	if yCols != 1 {
		return 0, 0, errors.NewDimensionError(op, 1, yCols, 1)
	}
	if yRows != nSamples {
		return 0, 0, errors.NewDimensionError(op, nSamples, yRows, 0)
	}
	for i := 0; i < nSamples; i++ {
		if v := y.At(i, 0); v != 0 && v != 1 {
			return 0, 0, errors.NewValueError(op, "labels must be binary (0 or 1)")
		}
	}
	return nSamples, nFeatures, nil
}
