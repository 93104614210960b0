// Command tabeval cross-validates a line-up of binary classifiers on a
// labelled CSV dataset and prints the aggregated accuracy and ROC AUC per
// model.
//
// Usage:
//
//	tabeval -data heart.csv -label target
//	tabeval -config run.yaml -json
//
// Flags override the corresponding YAML keys.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/tabeval/tabeval/baseline"
	"github.com/tabeval/tabeval/bayes"
	"github.com/tabeval/tabeval/config"
	"github.com/tabeval/tabeval/core/model"
	"github.com/tabeval/tabeval/crossval"
	"github.com/tabeval/tabeval/dataset"
	"github.com/tabeval/tabeval/linear"
	"github.com/tabeval/tabeval/pkg/errors"
	"github.com/tabeval/tabeval/pkg/log"
)

// builders maps registered model names to their factories.
var builders = map[string]crossval.Factory{
	"logistic": func() model.Classifier {
		return linear.NewLogisticRegression()
	},
	"gaussian_nb": func() model.Classifier {
		return bayes.NewGaussianNB()
	},
	"majority": func() model.Classifier {
		return baseline.NewMajorityClassifier()
	},
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "tabeval: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("tabeval", flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "YAML run configuration")
		dataPath   = fs.String("data", "", "labelled CSV input")
		labelCol   = fs.String("label", "", "label column name")
		folds      = fs.Int("folds", 0, "number of stratified folds")
		seed       = fs.Int64("seed", -1, "fold partition seed")
		retention  = fs.Float64("retention", 0, "feature retention fraction in (0, 1]")
		parallel   = fs.Bool("parallel", false, "evaluate folds concurrently")
		logLevel   = fs.String("log-level", "", "debug, info, warn or error")
		asJSON     = fs.Bool("json", false, "emit the summary as JSON")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadFromYAML(*configPath)
		if err != nil {
			return err
		}
	}
	if *dataPath != "" {
		cfg.Data.Path = *dataPath
	}
	if *labelCol != "" {
		cfg.Data.LabelColumn = *labelCol
	}
	if *folds > 0 {
		cfg.Evaluation.Folds = *folds
	}
	if *seed >= 0 {
		cfg.Evaluation.Seed = *seed
	}
	if *retention > 0 {
		cfg.Evaluation.RetentionFraction = *retention
	}
	if *parallel {
		cfg.Evaluation.Parallel = true
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log.SetupLogger(cfg.LogLevel)

	registry := crossval.NewRegistry()
	for _, name := range cfg.Models {
		factory, ok := builders[name]
		if !ok {
			return errors.NewConfigurationError("models", "unknown model", name)
		}
		if err := registry.Register(name, factory); err != nil {
			return err
		}
	}

	source := dataset.NewCSVSource(cfg.Data.Path, cfg.Data.LabelColumn)
	ds, err := source.LoadRows()
	if err != nil {
		return err
	}
	slog.Info("dataset loaded",
		slog.String("path", cfg.Data.Path),
		slog.Int(log.SamplesKey, ds.NumRows()),
		slog.Int(log.FeaturesKey, ds.NumFeatures()),
	)

	harness, err := crossval.NewHarness(crossval.Config{
		FoldCount:         cfg.Evaluation.Folds,
		Seed:              cfg.Evaluation.Seed,
		RetentionFraction: cfg.Evaluation.RetentionFraction,
		Parallel:          cfg.Evaluation.Parallel,
	}, registry)
	if err != nil {
		return err
	}
	summary, err := harness.Run(ds)
	if err != nil {
		return err
	}

	if *asJSON {
		return writeJSON(os.Stdout, summary)
	}
	return writeTable(os.Stdout, summary)
}

func writeJSON(w *os.File, summary *crossval.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

func writeTable(w *os.File, summary *crossval.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tACCURACY\tROC AUC")
	for _, ms := range summary.Models {
		if !ms.Available() {
			fmt.Fprintf(tw, "%s\tfailed: %v\t\n", ms.Model, ms.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%.4f ± %.4f\t%.4f ± %.4f\n",
			ms.Model, ms.AccuracyMean, ms.AccuracyStd, ms.AUCMean, ms.AUCStd)
	}
	return tw.Flush()
}
