// Package feature implements the feature-selection and preprocessing
// pipeline: a ranking-based column selector, mean imputation, min-max
// scaling, and the fit-then-replay composition that ties them together.
//
// Every stage follows the same two-phase contract: Fit computes state from
// training data only, Transform replays that state on any compatible frame.
// This is the leakage-prevention boundary the cross-validation harness
// relies on.
package feature

import (
	"github.com/tabeval/tabeval/dataset"
)

// Stage is a fit-then-replay transform over a Frame. Stages appended to a
// Pipeline run in order after feature selection.
type Stage interface {
	// Fit computes the stage's replayable state from training data.
	Fit(f *dataset.Frame) error

	// Transform applies the fitted state to a compatible frame. It must
	// not recompute any statistic from its input.
	Transform(f *dataset.Frame) (*dataset.Frame, error)
}
