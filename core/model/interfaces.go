// Package model defines the capability interfaces shared by every trainable
// component in tabeval, plus the fitted-state management they compose.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Fitter is the interface for trainable models.
type Fitter interface {
	// Fit trains the model on feature matrix X and n×1 label matrix y.
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for models that predict labels.
type Predictor interface {
	// Predict returns an n×1 matrix of predicted class labels.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// ProbabilityPredictor is the interface for models that estimate class
// membership probabilities.
type ProbabilityPredictor interface {
	// PredictProba returns an n×2 matrix of class probabilities, column 0
	// for the negative class and column 1 for the positive class.
	PredictProba(X mat.Matrix) (mat.Matrix, error)
}

// Classifier is the capability set every registered model must satisfy.
// The evaluation harness has no knowledge of any concrete family beyond
// these three operations.
type Classifier interface {
	Fitter
	Predictor
	ProbabilityPredictor
}
