// Package linear implements linear model families for binary
// classification.
package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/tabeval/tabeval/core/model"
	"github.com/tabeval/tabeval/pkg/errors"
)

// LogisticRegression is a binary logistic regression classifier trained by
// full-batch gradient descent with an adaptive learning-rate schedule and
// optional L2 regularization. Weights initialize to zero, so training is
// deterministic for identical input.
type LogisticRegression struct {
	state *model.StateManager

	// Hyperparameters
	c            float64 // inverse L2 regularization strength; <=0 disables
	fitIntercept bool
	maxIter      int
	tol          float64
	learningRate float64

	// Fitted parameters
	coef      []float64
	intercept float64
	nFeatures int
	nIter     int
}

// LogisticRegressionOption is a functional option for LogisticRegression.
type LogisticRegressionOption func(*LogisticRegression)

// WithC sets the inverse L2 regularization strength. Zero or negative
// disables regularization.
func WithC(c float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.c = c
	}
}

// WithFitIntercept sets whether to fit an intercept term.
func WithFitIntercept(fit bool) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.fitIntercept = fit
	}
}

// WithMaxIter sets the maximum number of gradient descent iterations.
func WithMaxIter(maxIter int) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.maxIter = maxIter
	}
}

// WithTol sets the gradient-norm tolerance for early stopping.
func WithTol(tol float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.tol = tol
	}
}

// WithLearningRate sets the base learning rate.
func WithLearningRate(rate float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.learningRate = rate
	}
}

// NewLogisticRegression creates a LogisticRegression classifier.
func NewLogisticRegression(opts ...LogisticRegressionOption) *LogisticRegression {
	lr := &LogisticRegression{
		state:        model.NewStateManager(),
		c:            1.0,
		fitIntercept: true,
		maxIter:      200,
		tol:          1e-4,
		learningRate: 1.0,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Fit trains the model on X and an n×1 matrix of 0/1 labels. Refitting
// starts from zero weights, never from a previous solution.
func (lr *LogisticRegression) Fit(X, y mat.Matrix) error {
	nSamples, nFeatures, err := model.CheckFitInputs("LogisticRegression.Fit", X, y)
	if err != nil {
		return err
	}

	lr.nFeatures = nFeatures
	lr.coef = make([]float64, nFeatures)
	lr.intercept = 0
	lr.nIter = 0

	for iter := 0; iter < lr.maxIter; iter++ {
		gradW := make([]float64, nFeatures)
		gradB := 0.0

		for i := 0; i < nSamples; i++ {
			z := lr.intercept
			for j := 0; j < nFeatures; j++ {
				z += X.At(i, j) * lr.coef[j]
			}
			residual := sigmoid(z) - y.At(i, 0)
			gradB += residual
			for j := 0; j < nFeatures; j++ {
				gradW[j] += residual * X.At(i, j)
			}
		}

		for j := range gradW {
			gradW[j] /= float64(nSamples)
		}
		gradB /= float64(nSamples)

		if lr.c > 0 {
			lambda := 1.0 / lr.c
			for j := range lr.coef {
				gradW[j] += lambda * lr.coef[j] / float64(nSamples)
			}
		}

		rate := lr.learningRate / (1.0 + 0.1*float64(iter))
		for j := range lr.coef {
			lr.coef[j] -= rate * gradW[j]
		}
		if lr.fitIntercept {
			lr.intercept -= rate * gradB
		}
		lr.nIter = iter + 1

		maxGrad := math.Abs(gradB)
		for _, g := range gradW {
			if math.Abs(g) > maxGrad {
				maxGrad = math.Abs(g)
			}
		}
		if maxGrad < lr.tol {
			break
		}
	}

	lr.state.SetDimensions(nFeatures, nSamples)
	lr.state.SetFitted()
	return nil
}

// Predict returns the 0/1 label with the higher estimated probability.
func (lr *LogisticRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	proba, err := lr.PredictProba(X)
	if err != nil {
		return nil, err
	}
	n, _ := proba.Dims()
	out := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		if proba.At(i, 1) >= 0.5 {
			out.Set(i, 0, 1)
		}
	}
	return out, nil
}

// PredictProba returns an n×2 matrix of class probabilities.
func (lr *LogisticRegression) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !lr.state.IsFitted() {
		return nil, errors.NewNotFittedError("LogisticRegression", "PredictProba")
	}
	n, c := X.Dims()
	if c != lr.nFeatures {
		return nil, errors.NewDimensionError("LogisticRegression.PredictProba", lr.nFeatures, c, 1)
	}

	out := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		z := lr.intercept
		for j := 0; j < lr.nFeatures; j++ {
			z += X.At(i, j) * lr.coef[j]
		}
		p := sigmoid(z)
		out.Set(i, 0, 1-p)
		out.Set(i, 1, p)
	}
	return out, nil
}

// Coef returns the fitted weights.
func (lr *LogisticRegression) Coef() []float64 {
	return append([]float64(nil), lr.coef...)
}

// Intercept returns the fitted intercept.
func (lr *LogisticRegression) Intercept() float64 {
	return lr.intercept
}

// NIter returns the number of gradient descent iterations performed.
func (lr *LogisticRegression) NIter() int {
	return lr.nIter
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
