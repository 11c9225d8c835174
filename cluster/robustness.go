package cluster

import (
	"github.com/tabgo-ml/tabgo/dataset"
	"github.com/tabgo-ml/tabgo/optimize"
	"github.com/tabgo-ml/tabgo/pkg/errors"
)

// Robustness measures how stable a clustering is against its random
// initialization. It refits the same clusterer configuration once per
// seed, records the per-sample labels of every run, and Stability then
// reports, for each sample, the fraction of runs in which it landed in
// the same cluster as at least one reference sample.
type Robustness struct {
	sweep *optimize.Optimization
	index []string
	err   error
}

// DefaultSeeds is the seed range used when none are given.
var DefaultSeeds = []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

// NewRobustness builds a seed sweep for the clusterer's configuration.
// The clusterer's own random state, if any, is replaced by the swept
// seeds; all other parameters are carried over unchanged.
func NewRobustness(c *Clusterer, seeds ...int) (*Robustness, error) {
	if len(seeds) == 0 {
		seeds = DefaultSeeds
	}

	base := make(map[string]interface{})
	for k, v := range c.Params() {
		if k == "model" || k == "random_state" {
			continue
		}
		base[k] = v
	}
	spec := c.Spec()

	values := make([]interface{}, len(seeds))
	for i, s := range seeds {
		values[i] = s
	}

	factory := func(params map[string]interface{}) (optimize.Task, error) {
		merged := make(map[string]interface{}, len(base)+1)
		for k, v := range base {
			merged[k] = v
		}
		merged["random_state"] = params["random_state"]
		cl, err := NewClusterer(spec, merged)
		if err != nil {
			return nil, err
		}
		return &robustnessTask{clusterer: cl}, nil
	}

	sweep, err := optimize.New(factory, optimize.Axis{Name: "random_state", Values: values})
	if err != nil {
		return nil, err
	}
	return &Robustness{sweep: sweep}, nil
}

// robustnessTask scores a fitted clustering as its per-sample labels,
// keyed by row label, so the sweep's results table holds one label
// column per sample and one row per seed.
type robustnessTask struct {
	clusterer *Clusterer
	index     []string
}

func (t *robustnessTask) Fit(ds *dataset.Dataset) error {
	t.index = ds.X.Index()
	return t.clusterer.Fit(ds)
}

func (t *robustnessTask) Score(ds *dataset.Dataset) (map[string]float64, error) {
	labels, err := t.clusterer.PredictLabels(ds)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(labels))
	for i, label := range labels {
		out[t.index[i]] = float64(label)
	}
	return out, nil
}

func (t *robustnessTask) Params() map[string]interface{} {
	params := t.clusterer.Params()
	return map[string]interface{}{"random_state": params["random_state"]}
}

// Run executes the seed sweep. Failing seeds are skipped by Stability;
// their errors are returned here.
func (r *Robustness) Run(ds *dataset.Dataset, opts ...optimize.RunOption) (*optimize.Results, error) {
	r.index = ds.X.Index()
	results, err := r.sweep.Run(ds, opts...)
	r.err = err
	return results, err
}

// Results returns the raw sweep table: one row per seed, one label
// column per sample plus the random_state column.
func (r *Robustness) Results() *optimize.Results {
	return r.sweep.Results()
}

// Stability reports, per sample, the fraction of successful runs in
// which the sample shared a cluster with at least one of the reference
// samples. The result is a single-column frame indexed like the swept
// dataset. References must be row labels of that dataset.
func (r *Robustness) Stability(refs ...string) (*dataset.Frame, error) {
	results := r.sweep.Results()
	if results == nil {
		return nil, errors.NewNotFittedError("Robustness", "Run")
	}
	if len(refs) == 0 {
		return nil, errors.NewValueError("Robustness.Stability", "at least one reference sample is required")
	}

	known := make(map[string]bool, len(r.index))
	for _, label := range r.index {
		known[label] = true
	}
	for _, ref := range refs {
		if !known[ref] {
			return nil, errors.NewKeyNotFoundError("row", ref)
		}
	}

	counts := make(map[string]int, len(r.index))
	runs := 0
	for i := 0; i < results.Len(); i++ {
		refClusters := make(map[float64]bool, len(refs))
		ok := true
		for _, ref := range refs {
			label, found := results.Float(i, ref)
			if !found {
				ok = false
				break
			}
			refClusters[label] = true
		}
		if !ok {
			// Failed seed, no label columns.
			continue
		}
		runs++
		for _, sample := range r.index {
			label, found := results.Float(i, sample)
			if found && refClusters[label] {
				counts[sample]++
			}
		}
	}
	if runs == 0 {
		return nil, errors.NewValueError("Robustness.Stability", "no successful runs to evaluate")
	}

	values := make([]float64, len(r.index))
	for i, sample := range r.index {
		values[i] = float64(counts[sample]) / float64(runs)
	}
	return dataset.NewFrame([]string{"Stability"}, r.index, values)
}
