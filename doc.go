// Package tabeval provides a reusable training-and-evaluation harness for
// binary classification on tabular data.
//
// The harness drives a line-up of interchangeable models through one
// shared protocol: stratified k-fold cross-validation with a per-fold
// preprocessing pipeline of correlation-ranked feature selection, mean
// imputation and min-max scaling. Every pipeline statistic is fitted on
// the training partition only and replayed on the held-out partition, so
// no evaluation leaks held-out information into training.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/tabeval/tabeval/baseline"
//	    "github.com/tabeval/tabeval/core/model"
//	    "github.com/tabeval/tabeval/crossval"
//	    "github.com/tabeval/tabeval/dataset"
//	    "github.com/tabeval/tabeval/linear"
//	)
//
//	func main() {
//	    source := dataset.NewCSVSource("heart.csv", "target")
//	    ds, err := source.LoadRows()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    registry := crossval.NewRegistry()
//	    registry.Register("logistic", func() model.Classifier {
//	        return linear.NewLogisticRegression()
//	    })
//	    registry.Register("majority", func() model.Classifier {
//	        return baseline.NewMajorityClassifier()
//	    })
//
//	    harness, err := crossval.NewHarness(crossval.Config{
//	        FoldCount:         5,
//	        Seed:              42,
//	        RetentionFraction: 0.5,
//	    }, registry)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    summary, err := harness.Run(ds)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for _, ms := range summary.Models {
//	        fmt.Printf("%s: accuracy %.3f auc %.3f\n", ms.Model, ms.AccuracyMean, ms.AUCMean)
//	    }
//	}
//
// # Packages
//
//   - dataset: frames, labelled datasets and the CSV source
//   - feature: selection, imputation, scaling and the fitted pipeline
//   - linear, bayes, baseline: the built-in model families
//   - metrics: accuracy and ROC AUC
//   - crossval: the stratified cross-validation harness and model registry
//   - config: YAML run configuration for the command-line tool
//
// Runs are deterministic: the same dataset, configuration and seed always
// produce the same fold partition and the same summary metrics.
package tabeval
