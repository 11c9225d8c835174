// Package estimator provides the Model driver that wraps a backend
// estimator for use on Datasets: parameter validation against the
// backend's accepted names, fit/predict delegation, and the scoring hook
// implemented by specializations such as cluster.Clusterer.
package estimator

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/tabgo-ml/tabgo/core/model"
	"github.com/tabgo-ml/tabgo/dataset"
	"github.com/tabgo-ml/tabgo/pkg/errors"
)

// Spec describes how to build a backend estimator from a parameter
// record: its reporting name, the parameter names its constructor
// accepts, and the construction itself.
type Spec interface {
	Name() string
	ParamNames() []string
	New(params map[string]interface{}) (model.Estimator, error)
}

// Scorer is the per-specialization scoring hook. Score reports named
// metrics for a fitted model on a dataset.
type Scorer interface {
	Score(ds *dataset.Dataset) (map[string]float64, error)
}

// Model wraps a backend estimator built from a Spec.
//
// Construction filters the supplied parameters to the names the Spec
// accepts. Unknown parameters are dropped and reported through a
// non-fatal DroppedParamsWarning rather than failing the call: parameter
// sweeps may mix keys that only apply to some configurations. Nil-valued
// parameters are dropped silently.
type Model struct {
	params map[string]interface{}
	est    model.Estimator
	spec   Spec
}

// New builds a Model from spec and params.
func New(spec Spec, params map[string]interface{}) (*Model, error) {
	accepted := make(map[string]bool, len(spec.ParamNames()))
	for _, name := range spec.ParamNames() {
		accepted[name] = true
	}

	valid := make(map[string]interface{})
	var dropped []string
	for k, v := range params {
		switch {
		case v == nil:
		case accepted[k]:
			valid[k] = v
		default:
			dropped = append(dropped, k)
		}
	}
	if len(dropped) > 0 {
		sort.Strings(dropped)
		errors.Warn(errors.NewDroppedParamsWarning(spec.Name(), dropped))
	}

	est, err := spec.New(valid)
	if err != nil {
		return nil, err
	}

	reported := make(map[string]interface{}, len(valid)+1)
	for k, v := range valid {
		reported[k] = v
	}
	reported["model"] = spec.Name()

	return &Model{params: reported, est: est, spec: spec}, nil
}

// Fit fits the backend estimator with the dataset's features and target.
func (m *Model) Fit(ds *dataset.Dataset) error {
	return m.est.Fit(ds.X.Matrix(), ds.YMatrix())
}

// Predict delegates to the backend estimator with the dataset's features.
func (m *Model) Predict(ds *dataset.Dataset) (mat.Matrix, error) {
	return m.est.Predict(ds.X.Matrix())
}

// Params returns the retained configuration merged with the backend's
// identifying name under the "model" key.
func (m *Model) Params() map[string]interface{} {
	out := make(map[string]interface{}, len(m.params))
	for k, v := range m.params {
		out[k] = v
	}
	return out
}

// Estimator exposes the wrapped backend for fitted-attribute access.
func (m *Model) Estimator() model.Estimator {
	return m.est
}

// Spec returns the Spec the model was built from.
func (m *Model) Spec() Spec {
	return m.spec
}

// IntParam reads an integer parameter, tolerating the numeric types a
// grid sweep may carry.
func IntParam(params map[string]interface{}, name string, def int) (int, error) {
	v, ok := params[name]
	if !ok {
		return def, nil
	}
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		return int(x), nil
	}
	return 0, errors.NewValueError("IntParam", "parameter "+name+" is not numeric")
}

// Int64Param reads an int64 parameter, tolerating the numeric types a
// grid sweep may carry.
func Int64Param(params map[string]interface{}, name string, def int64) (int64, error) {
	v, ok := params[name]
	if !ok {
		return def, nil
	}
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case float64:
		return int64(x), nil
	}
	return 0, errors.NewValueError("Int64Param", "parameter "+name+" is not numeric")
}

// FloatParam reads a float parameter, tolerating the numeric types a
// grid sweep may carry.
func FloatParam(params map[string]interface{}, name string, def float64) (float64, error) {
	v, ok := params[name]
	if !ok {
		return def, nil
	}
	switch x := v.(type) {
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case float64:
		return x, nil
	}
	return 0, errors.NewValueError("FloatParam", "parameter "+name+" is not numeric")
}
