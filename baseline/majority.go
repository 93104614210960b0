// Package baseline implements trivial reference classifiers. They anchor
// harness output: a real model should beat the majority baseline, and the
// baseline's AUC pins the undiscriminating score of 0.5.
package baseline

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tabeval/tabeval/core/model"
	"github.com/tabeval/tabeval/pkg/errors"
)

// MajorityClassifier always predicts the majority class of its training
// labels. PredictProba returns the constant training-set positive fraction,
// so its ranking carries no information.
type MajorityClassifier struct {
	state *model.StateManager

	majority  float64
	posPrior  float64
	nFeatures int
}

// NewMajorityClassifier creates a MajorityClassifier.
func NewMajorityClassifier() *MajorityClassifier {
	return &MajorityClassifier{
		state: model.NewStateManager(),
	}
}

// Fit records the majority class and the positive-class prior. Ties go to
// the positive class.
func (m *MajorityClassifier) Fit(X, y mat.Matrix) error {
	nSamples, nFeatures, err := model.CheckFitInputs("MajorityClassifier.Fit", X, y)
	if err != nil {
		return err
	}

	pos := 0
	for i := 0; i < nSamples; i++ {
		if y.At(i, 0) == 1 {
			pos++
		}
	}
	m.posPrior = float64(pos) / float64(nSamples)
	if m.posPrior >= 0.5 {
		m.majority = 1
	} else {
		m.majority = 0
	}
	m.nFeatures = nFeatures
	m.state.SetDimensions(nFeatures, nSamples)
	m.state.SetFitted()
	return nil
}

// Predict returns the majority class for every row.
func (m *MajorityClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !m.state.IsFitted() {
		return nil, errors.NewNotFittedError("MajorityClassifier", "Predict")
	}
	n, _ := X.Dims()
	out := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		out.Set(i, 0, m.majority)
	}
	return out, nil
}

// PredictProba returns the constant training prior for every row.
func (m *MajorityClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !m.state.IsFitted() {
		return nil, errors.NewNotFittedError("MajorityClassifier", "PredictProba")
	}
	n, _ := X.Dims()
	out := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		out.Set(i, 0, 1-m.posPrior)
		out.Set(i, 1, m.posPrior)
	}
	return out, nil
}
