package feature

import (
	"github.com/tabeval/tabeval/core/model"
	"github.com/tabeval/tabeval/dataset"
	"github.com/tabeval/tabeval/pkg/errors"
)

// Pipeline composes the feature selector with an ordered sequence of
// preprocessing stages into a single fit/transform unit with one fitted
// state. Fit computes every statistic from the training partition only;
// Transform replays the fitted state on any compatible frame.
//
// Fit overwrites any prior fitted state — pipelines are not incrementally
// updatable.
type Pipeline struct {
	state    *model.StateManager
	selector *Selector
	stages   []Stage
}

// NewPipeline creates a Pipeline from a selector and preprocessing stages,
// applied in order after selection.
func NewPipeline(selector *Selector, stages ...Stage) *Pipeline {
	return &Pipeline{
		state:    model.NewStateManager(),
		selector: selector,
		stages:   stages,
	}
}

// Default builds the reference pipeline: correlation-ranked selection at
// the given retention fraction, mean imputation, then min-max scaling.
func Default(retentionFraction float64) *Pipeline {
	return NewPipeline(
		NewSelector(retentionFraction),
		NewMeanImputer(),
		NewMinMaxScaler(),
	)
}

// Append adds a stage after the existing ones. Appending invalidates any
// prior fitted state; Fit must be called again before Transform.
func (p *Pipeline) Append(st Stage) {
	p.stages = append(p.stages, st)
	p.state.Reset()
}

// Fit runs the selector and every stage on the training partition,
// threading each stage's transformed output into the next stage's fit.
func (p *Pipeline) Fit(f *dataset.Frame, labels []float64) error {
	p.state.Reset()

	if err := p.selector.Fit(f, labels); err != nil {
		return err
	}
	cur, err := p.selector.Transform(f)
	if err != nil {
		return err
	}
	for _, st := range p.stages {
		if err := st.Fit(cur); err != nil {
			return err
		}
		cur, err = st.Transform(cur)
		if err != nil {
			return err
		}
	}

	p.state.SetDimensions(f.NumCols(), f.NumRows())
	p.state.SetFitted()
	return nil
}

// Transform replays the fitted selection and stage statistics on f.
func (p *Pipeline) Transform(f *dataset.Frame) (*dataset.Frame, error) {
	if !p.state.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "Transform")
	}

	cur, err := p.selector.Transform(f)
	if err != nil {
		return nil, err
	}
	for _, st := range p.stages {
		cur, err = st.Transform(cur)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// FitTransform fits on f and returns the transformed training partition.
func (p *Pipeline) FitTransform(f *dataset.Frame, labels []float64) (*dataset.Frame, error) {
	if err := p.Fit(f, labels); err != nil {
		return nil, err
	}
	return p.Transform(f)
}

// SelectedFeatures returns the fitted feature selection.
func (p *Pipeline) SelectedFeatures() []string {
	return p.selector.SelectedFeatures()
}

// IsFitted reports whether Fit has completed on this instance.
func (p *Pipeline) IsFitted() bool {
	return p.state.IsFitted()
}
