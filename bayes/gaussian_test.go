package bayes

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/tabeval/tabeval/pkg/errors"
)

func clusteredData() (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(8, 2, []float64{
		0.0, 0.2,
		0.1, 0.1,
		0.2, 0.0,
		0.1, 0.3,
		3.0, 3.2,
		3.1, 3.1,
		3.2, 3.0,
		3.1, 3.3,
	})
	y := mat.NewDense(8, 1, []float64{0, 0, 0, 0, 1, 1, 1, 1})
	return X, y
}

func TestGaussianNBFitPredict(t *testing.T) {
	X, y := clusteredData()

	nb := NewGaussianNB()
	if err := nb.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	pred, err := nb.Predict(X)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	for i := 0; i < 8; i++ {
		if pred.At(i, 0) != y.At(i, 0) {
			t.Errorf("sample %d: predicted %v, want %v", i, pred.At(i, 0), y.At(i, 0))
		}
	}

	// Points near each cluster center classify with it.
	probe := mat.NewDense(2, 2, []float64{0.15, 0.15, 3.05, 3.05})
	pred, err = nb.Predict(probe)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if pred.At(0, 0) != 0 || pred.At(1, 0) != 1 {
		t.Errorf("probe predictions = [%v %v], want [0 1]", pred.At(0, 0), pred.At(1, 0))
	}
}

func TestGaussianNBPredictProba(t *testing.T) {
	X, y := clusteredData()

	nb := NewGaussianNB()
	if err := nb.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	proba, err := nb.PredictProba(X)
	if err != nil {
		t.Fatalf("PredictProba failed: %v", err)
	}
	for i := 0; i < 8; i++ {
		sum := proba.At(i, 0) + proba.At(i, 1)
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("sample %d: probabilities sum to %v", i, sum)
		}
	}
	if proba.At(0, 0) < 0.9 {
		t.Errorf("far negative sample should be confident, got p0=%v", proba.At(0, 0))
	}
}

func TestGaussianNBRequiresBothClasses(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{1, 1, 1})

	if err := NewGaussianNB().Fit(X, y); err == nil {
		t.Error("expected error for single-class training data")
	}
}

func TestGaussianNBNotFitted(t *testing.T) {
	X := mat.NewDense(1, 1, []float64{1})
	_, err := NewGaussianNB().PredictProba(X)
	var notFitted *errors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Errorf("expected NotFittedError, got %v", err)
	}
}

func TestGaussianNBConstantFeature(t *testing.T) {
	// Zero-variance features must not blow up thanks to smoothing.
	X := mat.NewDense(4, 2, []float64{
		5, 0,
		5, 1,
		5, 10,
		5, 11,
	})
	y := mat.NewDense(4, 1, []float64{0, 0, 1, 1})

	nb := NewGaussianNB()
	if err := nb.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	pred, err := nb.Predict(X)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	for i := 0; i < 4; i++ {
		if v := pred.At(i, 0); math.IsNaN(v) {
			t.Fatalf("sample %d: NaN prediction", i)
		}
	}
}
