// Package tabgo is a toolkit for exploratory analysis of labeled tabular
// data: ingest a table, clean and transform it, cluster it, and sweep
// model parameters over a grid.
//
// The dataset package holds the central Dataset container, a labeled
// feature table X with an optional target Y and a raw snapshot. The
// transform package provides fit/transform stages over datasets
// (scaling, PCA embedding, feature selection, correlation filtering),
// backed by the matrix-level estimators in preprocessing and
// decomposition. The cluster package wraps KMeans with quality scoring
// and a seed-stability analysis, and optimize drives parameter-grid
// sweeps, sequentially or across workers, assembling per-point scores
// into a single results table.
//
// A minimal end-to-end run:
//
//	ds, err := dataset.FromCSV("samples.csv",
//	    dataset.WithIndexColumn("id"),
//	    dataset.WithRaw(),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := ds.DropNA(0); err != nil {
//	    log.Fatal(err)
//	}
//
//	scaler := transform.NewScaler(preprocessing.NewStandardScalerDefault())
//	if _, err := scaler.FitTransform(ds); err != nil {
//	    log.Fatal(err)
//	}
//
//	opt, err := optimize.New(func(params map[string]interface{}) (optimize.Task, error) {
//	    return cluster.NewClusterer(cluster.KMeansSpec{}, params)
//	}, optimize.Axis{Name: "n_clusters", Values: []interface{}{2, 3, 4, 5}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	results, err := opt.Run(ds, optimize.WithNJobs(4))
//	if err != nil {
//	    log.Println(err)
//	}
//	fmt.Println(results)
//
// Recoverable conditions surface as structured error types in
// pkg/errors; non-fatal ones (dropped parameters, silent data
// conversions) are routed through its warning mechanism and logged via
// pkg/log.
package tabgo
