// Standard attribute keys for cross-validation and model operations.
// Using these keys keeps log records filterable across the codebase.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the registered model being driven.
	// Examples: "logistic", "gaussian_nb", "majority"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "split", "aggregate"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "feature", "crossval", "metrics"
	ComponentKey = "ml.component"
)

// Cross-validation context.
const (
	// FoldKey is the zero-based index of the fold being evaluated.
	FoldKey = "cv.fold"

	// FoldsKey is the total number of folds in the run.
	FoldsKey = "cv.folds"

	// SeedKey is the random seed the fold partition was derived from.
	SeedKey = "cv.seed"
)

// Data shape.
const (
	// SamplesKey is the number of rows in the partition being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns before selection.
	FeaturesKey = "data.features"

	// SelectedFeaturesKey is the number of columns retained by selection.
	SelectedFeaturesKey = "data.selected_features"
)

// Metric values.
const (
	// AccuracyKey records per-fold or aggregate accuracy.
	AccuracyKey = "metrics.accuracy"

	// AUCKey records per-fold or aggregate ROC AUC.
	AUCKey = "metrics.roc_auc"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Standard operation values.
const (
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationTransform = "transform"
	OperationSplit     = "split"
	OperationAggregate = "aggregate"
)
