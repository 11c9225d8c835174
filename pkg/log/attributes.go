package log

// Standard attribute keys. Using these across packages keeps log output
// filterable by operation and data shape.
const (
	// ComponentKey identifies the package performing the operation,
	// e.g. "transform", "optimize", "cluster".
	ComponentKey = "ml.component"

	// OperationKey names the lifecycle operation:
	// "fit", "transform", "fit_transform", "predict", "score", "run".
	OperationKey = "ml.operation"

	// ModelNameKey identifies the estimator or transformation type,
	// e.g. "KMeans", "CorrelationFilter".
	ModelNameKey = "model.name"

	// SamplesKey is the number of rows being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns being processed.
	FeaturesKey = "data.features"

	// TargetsKey is the number of target columns.
	TargetsKey = "data.targets"

	// GridSizeKey is the number of points in a parameter grid.
	GridSizeKey = "grid.size"

	// GridIndexKey is the index of a grid point within its sweep.
	GridIndexKey = "grid.index"

	// WorkersKey is the number of parallel workers used by a sweep.
	WorkersKey = "grid.workers"

	// DurationMsKey is the elapsed wall time of an operation in
	// milliseconds.
	DurationMsKey = "duration.ms"
)
