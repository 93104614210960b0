package crossval

import (
	"github.com/tabeval/tabeval/core/model"
	"github.com/tabeval/tabeval/pkg/errors"
)

// Factory constructs a fresh, unfitted classifier. The harness calls the
// factory once per model per fold, so no fitted state ever leaks between
// folds or between models.
type Factory func() model.Classifier

// Registry holds named model factories in registration order. Summary rows
// come out in the same order the models went in.
type Registry struct {
	names     []string
	factories map[string]Factory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a named factory. Names must be unique and non-empty.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return errors.NewConfigurationError("model", "name must not be empty", name)
	}
	if factory == nil {
		return errors.NewConfigurationError("model", "factory must not be nil", name)
	}
	if _, ok := r.factories[name]; ok {
		return errors.NewConfigurationError("model", "already registered", name)
	}
	r.names = append(r.names, name)
	r.factories[name] = factory
	return nil
}

// Names returns the registered model names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Len returns the number of registered models.
func (r *Registry) Len() int {
	return len(r.names)
}

// New instantiates a fresh classifier for the named model.
func (r *Registry) New(name string) (model.Classifier, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, errors.NewConfigurationError("model", "not registered", name)
	}
	return factory(), nil
}
