// Package optimize provides the parameter-grid sweep engine. A grid is
// the Cartesian product of named axes; every grid point instantiates one
// task (a model or transformation) which is fitted and scored against a
// dataset, and the per-point outputs are reassembled into a single
// results table in grid-enumeration order.
package optimize

import (
	"time"

	"github.com/tabgo-ml/tabgo/core/parallel"
	"github.com/tabgo-ml/tabgo/dataset"
	"github.com/tabgo-ml/tabgo/pkg/errors"
	"github.com/tabgo-ml/tabgo/pkg/log"
)

// Axis is one grid dimension: a parameter name and its candidate values.
// Axis order is significant; it fixes both grid enumeration order and
// the parameter column order of the results table.
type Axis struct {
	Name   string
	Values []interface{}
}

// Task is the uniform execution contract the engine drives: fit against
// a dataset, score into named metrics, and report the configuration for
// the results table. Both models and transformations can participate.
type Task interface {
	Fit(ds *dataset.Dataset) error
	Score(ds *dataset.Dataset) (map[string]float64, error)
	Params() map[string]interface{}
}

// Factory builds a Task from one grid point's parameter record. It is
// called once per point at grid construction, and again inside workers
// during parallel runs, so it must be safe for concurrent use.
type Factory func(params map[string]interface{}) (Task, error)

// Optimization sweeps a parameter grid over a dataset.
type Optimization struct {
	factory Factory
	axes    []Axis
	combos  []map[string]interface{}
	grid    []Task
	results *Results
	logger  log.Logger
}

// New expands the axes into a grid and instantiates one Task per point.
// Enumeration is lexicographic with the first axis varying slowest, so
// for axes a=[1,2], b=[10,20] the grid order is (1,10), (1,20), (2,10),
// (2,20). The grid length is the product of the axis lengths.
func New(factory Factory, axes ...Axis) (*Optimization, error) {
	if len(axes) == 0 {
		return nil, errors.NewValueError("optimize.New", "at least one axis is required")
	}
	for _, axis := range axes {
		if len(axis.Values) == 0 {
			return nil, errors.NewValueError("optimize.New", "axis "+axis.Name+" has no values")
		}
	}

	combos := expand(axes)
	grid := make([]Task, len(combos))
	for i, combo := range combos {
		task, err := factory(combo)
		if err != nil {
			return nil, errors.Wrapf(err, "tabgo: building grid point %d", i)
		}
		grid[i] = task
	}

	return &Optimization{
		factory: factory,
		axes:    axes,
		combos:  combos,
		grid:    grid,
		logger:  log.GetLoggerWithName("optimize"),
	}, nil
}

// expand produces every axis-value combination in enumeration order.
func expand(axes []Axis) []map[string]interface{} {
	total := 1
	for _, axis := range axes {
		total *= len(axis.Values)
	}

	combos := make([]map[string]interface{}, total)
	for i := 0; i < total; i++ {
		combo := make(map[string]interface{}, len(axes))
		rem := i
		for k := len(axes) - 1; k >= 0; k-- {
			axis := axes[k]
			combo[axis.Name] = axis.Values[rem%len(axis.Values)]
			rem /= len(axis.Values)
		}
		combos[i] = combo
	}
	return combos
}

// Grid returns the instantiated grid tasks in enumeration order.
func (o *Optimization) Grid() []Task {
	return o.grid
}

// Results returns the table produced by the last Run, or nil before any
// Run.
func (o *Optimization) Results() *Results {
	return o.results
}

type runConfig struct {
	njobs int
}

// RunOption configures a Run.
type RunOption func(*runConfig)

// WithNJobs sets the number of parallel workers. Values below 2 select
// sequential execution.
func WithNJobs(n int) RunOption {
	return func(c *runConfig) { c.njobs = n }
}

// Run fits and scores every grid point against the dataset and returns
// the assembled results table, one row per point in grid-enumeration
// order regardless of worker count. The dataset is read-only for tasks;
// no task may mutate it.
//
// Sequential runs (the default) execute the grid tasks in place, so
// fitted side artifacts remain inspectable on Grid() afterwards.
// Parallel runs execute each point on a fresh instance built from the
// point's parameter record inside a worker: outputs are identical, but
// side artifacts are not observable on the original grid objects.
//
// A failing point does not stop the sweep. Its row keeps the parameter
// columns and carries no scores, and Run returns, alongside the full
// table, an error joining every per-point failure tagged with its grid
// index.
func (o *Optimization) Run(ds *dataset.Dataset, opts ...RunOption) (*Results, error) {
	cfg := &runConfig{njobs: 1}
	for _, opt := range opts {
		opt(cfg)
	}

	start := time.Now()
	o.logger.Debug("starting grid sweep",
		log.OperationKey, "run",
		log.GridSizeKey, len(o.grid),
		log.WorkersKey, cfg.njobs,
		log.SamplesKey, ds.X.Rows(),
		log.FeaturesKey, ds.X.Cols(),
	)

	scores := make([]map[string]float64, len(o.grid))
	taskErrs := make([]error, len(o.grid))

	if cfg.njobs <= 1 {
		for i, task := range o.grid {
			scores[i], taskErrs[i] = executeTask(task, ds)
		}
	} else {
		parallel.ForEach(len(o.grid), cfg.njobs, func(i int) {
			task, err := o.factory(o.combos[i])
			if err != nil {
				taskErrs[i] = err
				return
			}
			scores[i], taskErrs[i] = executeTask(task, ds)
		})
	}

	rows := make([]map[string]interface{}, len(o.grid))
	var failures []error
	for i := range o.grid {
		row := make(map[string]interface{})
		for k, v := range o.grid[i].Params() {
			row[k] = v
		}
		if taskErrs[i] != nil {
			err := errors.Wrapf(taskErrs[i], "tabgo: grid point %d", i)
			failures = append(failures, err)
			o.logger.Warn("grid point failed",
				err,
				log.GridIndexKey, i,
			)
		} else {
			for k, v := range scores[i] {
				row[k] = v
			}
		}
		rows[i] = row
	}

	o.results = newResults(o.axes, rows)

	o.logger.Debug("grid sweep finished",
		log.OperationKey, "run",
		log.GridSizeKey, len(o.grid),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	if len(failures) > 0 {
		return o.results, errors.Join(failures...)
	}
	return o.results, nil
}

// executeTask runs one grid point to completion, converting panics in
// backend code into reported failures.
func executeTask(task Task, ds *dataset.Dataset) (map[string]float64, error) {
	var score map[string]float64
	err := errors.SafeExecute("optimize task", func() error {
		if err := task.Fit(ds); err != nil {
			return err
		}
		s, err := task.Score(ds)
		if err != nil {
			return err
		}
		score = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return score, nil
}
