// Package config loads harness run configuration from YAML files and
// merges command-line overrides on top.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tabeval/tabeval/pkg/errors"
)

// DefaultModels is the model line-up used when the config names none.
var DefaultModels = []string{"logistic", "gaussian_nb", "majority"}

// RunConfig describes one cross-validation run end to end: where the data
// lives, how to partition it, and which models to drive.
type RunConfig struct {
	// Data points at the labelled CSV input.
	Data struct {
		Path        string `yaml:"path"`
		LabelColumn string `yaml:"label_column"`
	} `yaml:"data"`

	// Evaluation controls the cross-validation protocol.
	Evaluation struct {
		Folds             int     `yaml:"folds"`
		Seed              int64   `yaml:"seed"`
		RetentionFraction float64 `yaml:"retention_fraction"`
		Parallel          bool    `yaml:"parallel"`
	} `yaml:"evaluation"`

	// Models lists registered model names to evaluate, in order.
	Models []string `yaml:"models"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns a RunConfig with the reference protocol filled in.
func Default() RunConfig {
	var cfg RunConfig
	cfg.Data.LabelColumn = "label"
	cfg.Evaluation.Folds = 5
	cfg.Evaluation.Seed = 42
	cfg.Evaluation.RetentionFraction = 0.5
	cfg.Models = append([]string(nil), DefaultModels...)
	cfg.LogLevel = "info"
	return cfg
}

// LoadFromYAML reads a RunConfig from a YAML file, starting from the
// defaults so omitted keys keep their reference values.
func LoadFromYAML(path string) (RunConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "config: read %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "config: parse %s", path)
	}
	return cfg, nil
}

// Validate checks the fields the harness cannot check itself.
func (c RunConfig) Validate() error {
	if c.Data.Path == "" {
		return errors.NewConfigurationError("data.path", "must not be empty", c.Data.Path)
	}
	if c.Data.LabelColumn == "" {
		return errors.NewConfigurationError("data.label_column", "must not be empty", c.Data.LabelColumn)
	}
	if len(c.Models) == 0 {
		return errors.NewConfigurationError("models", "at least one model is required", c.Models)
	}
	return nil
}
