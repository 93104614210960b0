// Package bayes implements naive Bayes classifier families.
package bayes

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/tabeval/tabeval/core/model"
	"github.com/tabeval/tabeval/pkg/errors"
)

// GaussianNB is a Gaussian naive Bayes classifier for binary labels. Fit
// estimates a per-class prior and per-feature mean and variance; prediction
// scores each class by its joint log-likelihood under the independence
// assumption.
type GaussianNB struct {
	state *model.StateManager

	// varSmoothing is the fraction of the largest feature variance added
	// to every variance for numerical stability.
	varSmoothing float64

	nFeatures int
	logPrior  [2]float64
	mean      [2][]float64
	variance  [2][]float64
}

// GaussianNBOption is a functional option for GaussianNB.
type GaussianNBOption func(*GaussianNB)

// WithVarSmoothing sets the variance smoothing fraction.
func WithVarSmoothing(smoothing float64) GaussianNBOption {
	return func(nb *GaussianNB) {
		nb.varSmoothing = smoothing
	}
}

// NewGaussianNB creates a GaussianNB classifier.
func NewGaussianNB(opts ...GaussianNBOption) *GaussianNB {
	nb := &GaussianNB{
		state:        model.NewStateManager(),
		varSmoothing: 1e-9,
	}
	for _, opt := range opts {
		opt(nb)
	}
	return nb
}

// Fit estimates class priors and per-feature Gaussian parameters. Both
// classes must be present in the training labels.
func (nb *GaussianNB) Fit(X, y mat.Matrix) error {
	nSamples, nFeatures, err := model.CheckFitInputs("GaussianNB.Fit", X, y)
	if err != nil {
		return err
	}

	var counts [2]int
	for i := 0; i < nSamples; i++ {
		counts[int(y.At(i, 0))]++
	}
	if counts[0] == 0 || counts[1] == 0 {
		return errors.NewValueError("GaussianNB.Fit", "training data must contain both classes")
	}

	var mean, variance [2][]float64
	for c := 0; c < 2; c++ {
		mean[c] = make([]float64, nFeatures)
		variance[c] = make([]float64, nFeatures)
	}

	for i := 0; i < nSamples; i++ {
		c := int(y.At(i, 0))
		for j := 0; j < nFeatures; j++ {
			mean[c][j] += X.At(i, j)
		}
	}
	for c := 0; c < 2; c++ {
		for j := 0; j < nFeatures; j++ {
			mean[c][j] /= float64(counts[c])
		}
	}
	for i := 0; i < nSamples; i++ {
		c := int(y.At(i, 0))
		for j := 0; j < nFeatures; j++ {
			d := X.At(i, j) - mean[c][j]
			variance[c][j] += d * d
		}
	}

	maxVar := 0.0
	for c := 0; c < 2; c++ {
		for j := 0; j < nFeatures; j++ {
			variance[c][j] /= float64(counts[c])
			if variance[c][j] > maxVar {
				maxVar = variance[c][j]
			}
		}
	}
	epsilon := nb.varSmoothing * maxVar
	if epsilon <= 0 {
		epsilon = nb.varSmoothing
	}
	for c := 0; c < 2; c++ {
		for j := 0; j < nFeatures; j++ {
			variance[c][j] += epsilon
		}
	}

	nb.nFeatures = nFeatures
	nb.mean = mean
	nb.variance = variance
	nb.logPrior = [2]float64{
		math.Log(float64(counts[0]) / float64(nSamples)),
		math.Log(float64(counts[1]) / float64(nSamples)),
	}
	nb.state.SetDimensions(nFeatures, nSamples)
	nb.state.SetFitted()
	return nil
}

// Predict returns the class with the higher posterior probability.
func (nb *GaussianNB) Predict(X mat.Matrix) (mat.Matrix, error) {
	proba, err := nb.PredictProba(X)
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

// PredictProba returns an n×2 matrix of posterior class probabilities.
func (nb *GaussianNB) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !nb.state.IsFitted() {
		return nil, errors.NewNotFittedError("GaussianNB", "PredictProba")
	}
	n, c := X.Dims()
	if c != nb.nFeatures {
		return nil, errors.NewDimensionError("GaussianNB.PredictProba", nb.nFeatures, c, 1)
	}

	out := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		var logLik [2]float64
		for cls := 0; cls < 2; cls++ {
			ll := nb.logPrior[cls]
			for j := 0; j < nb.nFeatures; j++ {
				v := nb.variance[cls][j]
				d := X.At(i, j) - nb.mean[cls][j]
				ll += -0.5*math.Log(2*math.Pi*v) - d*d/(2*v)
			}
			logLik[cls] = ll
		}
		// Normalize in log space to avoid underflow.
		maxLL := math.Max(logLik[0], logLik[1])
		p0 := math.Exp(logLik[0] - maxLL)
		p1 := math.Exp(logLik[1] - maxLL)
		out.Set(i, 0, p0/(p0+p1))
		out.Set(i, 1, p1/(p0+p1))
	}
	return out, nil
}
