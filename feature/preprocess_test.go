package feature

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/tabeval/tabeval/dataset"
	"github.com/tabeval/tabeval/pkg/errors"
)

func TestMeanImputerFillsMissing(t *testing.T) {
	train, err := dataset.NewFrame([]string{"x", "y"}, mat.NewDense(4, 2, []float64{
		1, 10,
		3, math.NaN(),
		math.NaN(), 30,
		5, 20,
	}))
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}

	imp := NewMeanImputer()
	if err := imp.Fit(train); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	means := imp.Means()
	if math.Abs(means["x"]-3.0) > 1e-12 {
		t.Errorf("mean of x = %v, want 3", means["x"])
	}
	if math.Abs(means["y"]-20.0) > 1e-12 {
		t.Errorf("mean of y = %v, want 20", means["y"])
	}

	out, err := imp.Transform(train)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if v := out.Matrix().At(2, 0); math.Abs(v-3.0) > 1e-12 {
		t.Errorf("imputed x[2] = %v, want 3", v)
	}
	if v := out.Matrix().At(1, 1); math.Abs(v-20.0) > 1e-12 {
		t.Errorf("imputed y[1] = %v, want 20", v)
	}
}

func TestMeanImputerUsesTrainingStatsOnHeldOut(t *testing.T) {
	train, _ := dataset.NewFrame([]string{"x"}, mat.NewDense(2, 1, []float64{2, 4}))
	test, _ := dataset.NewFrame([]string{"x"}, mat.NewDense(2, 1, []float64{100, math.NaN()}))

	imp := NewMeanImputer()
	if err := imp.Fit(train); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	out, err := imp.Transform(test)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	// The held-out missing value gets the *training* mean, not the
	// held-out mean.
	if v := out.Matrix().At(1, 0); math.Abs(v-3.0) > 1e-12 {
		t.Errorf("imputed value = %v, want training mean 3", v)
	}
}

func TestMeanImputerAllMissingColumn(t *testing.T) {
	train, _ := dataset.NewFrame([]string{"x"}, mat.NewDense(2, 1, []float64{math.NaN(), math.NaN()}))

	imp := NewMeanImputer()
	if err := imp.Fit(train); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	out, err := imp.Transform(train)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if v := out.Matrix().At(0, 0); v != 0 {
		t.Errorf("all-missing column should impute to 0, got %v", v)
	}
}

func TestMinMaxScalerRange(t *testing.T) {
	train, _ := dataset.NewFrame([]string{"x", "const"}, mat.NewDense(3, 2, []float64{
		0, 7,
		5, 7,
		10, 7,
	}))

	sc := NewMinMaxScaler()
	if err := sc.Fit(train); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	out, err := sc.Transform(train)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	wants := [][]float64{{0, 0}, {0.5, 0}, {1, 0}}
	for i, row := range wants {
		for j, want := range row {
			if got := out.Matrix().At(i, j); math.Abs(got-want) > 1e-12 {
				t.Errorf("scaled[%d,%d] = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestMinMaxScalerReplaysTrainingStats(t *testing.T) {
	train, _ := dataset.NewFrame([]string{"x"}, mat.NewDense(2, 1, []float64{0, 10}))
	test, _ := dataset.NewFrame([]string{"x"}, mat.NewDense(2, 1, []float64{5, 20}))

	sc := NewMinMaxScaler()
	if err := sc.Fit(train); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	out, err := sc.Transform(test)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	// Held-out values use the training min/range; out-of-range input maps
	// outside [0, 1] rather than being re-normalized.
	if v := out.Matrix().At(0, 0); math.Abs(v-0.5) > 1e-12 {
		t.Errorf("scaled[0] = %v, want 0.5", v)
	}
	if v := out.Matrix().At(1, 0); math.Abs(v-2.0) > 1e-12 {
		t.Errorf("scaled[1] = %v, want 2.0", v)
	}
}

func TestTransformIdempotentGivenSameStats(t *testing.T) {
	train, _ := dataset.NewFrame([]string{"x", "y"}, mat.NewDense(3, 2, []float64{
		1, 2,
		3, math.NaN(),
		5, 6,
	}))

	imp := NewMeanImputer()
	if err := imp.Fit(train); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	first, err := imp.Transform(train)
	if err != nil {
		t.Fatalf("first Transform failed: %v", err)
	}
	second, err := imp.Transform(train)
	if err != nil {
		t.Fatalf("second Transform failed: %v", err)
	}

	if !mat.Equal(first.Matrix(), second.Matrix()) {
		t.Error("repeated Transform with identical stats should yield identical output")
	}
}

func TestStageTransformBeforeFit(t *testing.T) {
	f, _ := dataset.NewFrame([]string{"x"}, mat.NewDense(1, 1, []float64{1}))

	stages := []Stage{NewMeanImputer(), NewMinMaxScaler()}
	for _, st := range stages {
		_, err := st.Transform(f)
		var notFitted *errors.NotFittedError
		if !errors.As(err, &notFitted) {
			t.Errorf("%T: expected NotFittedError, got %v", st, err)
		}
	}
}

func TestStageSchemaMismatch(t *testing.T) {
	train, _ := dataset.NewFrame([]string{"x", "y"}, mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	other, _ := dataset.NewFrame([]string{"x"}, mat.NewDense(2, 1, []float64{1, 2}))

	stages := []Stage{NewMeanImputer(), NewMinMaxScaler()}
	for _, st := range stages {
		if err := st.Fit(train); err != nil {
			t.Fatalf("%T: Fit failed: %v", st, err)
		}
		_, err := st.Transform(other)
		var schemaErr *errors.SchemaMismatchError
		if !errors.As(err, &schemaErr) {
			t.Errorf("%T: expected SchemaMismatchError, got %v", st, err)
			continue
		}
		if schemaErr.Column != "y" {
			t.Errorf("%T: blamed column = %q, want %q", st, schemaErr.Column, "y")
		}
	}
}
