// Package transform provides dataset-level transformation stages with a
// shared fit/transform lifecycle. A stage binds its working columns at
// fit time and applies its effect either to the dataset itself or, for
// copy-on-write stages, to a copy of it.
package transform

import (
	"github.com/tabgo-ml/tabgo/dataset"
	"github.com/tabgo-ml/tabgo/pkg/errors"
)

// Transformer is the lifecycle every stage implements. Fit binds the
// working columns and learns any state the stage needs; Transform
// applies the learned state. Calling Transform before Fit returns a
// NotFittedError.
type Transformer interface {
	Fit(ds *dataset.Dataset, columns ...string) error
	Transform(ds *dataset.Dataset) (*dataset.Dataset, error)
	FitTransform(ds *dataset.Dataset, columns ...string) (*dataset.Dataset, error)
	Params() map[string]interface{}
}

var (
	_ Transformer = (*Scaler)(nil)
	_ Transformer = (*Decomposition)(nil)
	_ Transformer = (*PCA)(nil)
	_ Transformer = (*FeatureSeparation)(nil)
	_ Transformer = (*CorrelationFilter)(nil)
)

// stage carries the state shared by every transformation: the columns
// bound at fit time, the in-place policy fixed at construction, and the
// reported configuration.
type stage struct {
	columns []string
	inplace bool
	params  map[string]interface{}
}

func newStage(inplace bool) stage {
	return stage{inplace: inplace, params: make(map[string]interface{})}
}

// bindColumns resolves the column selection against the dataset. An
// empty selection snapshots every current X column; explicit names must
// all exist in X.
func (s *stage) bindColumns(ds *dataset.Dataset, columns []string) error {
	if len(columns) == 0 {
		s.columns = ds.X.Columns()
		return nil
	}
	for _, name := range columns {
		if !ds.X.HasColumn(name) {
			return errors.NewInvalidColumnSpecError(name)
		}
	}
	s.columns = append([]string(nil), columns...)
	return nil
}

func (s *stage) isFitted() bool {
	return s.columns != nil
}

// target applies the in-place policy: the dataset itself for in-place
// stages, a deep copy otherwise.
func (s *stage) target(ds *dataset.Dataset) *dataset.Dataset {
	if s.inplace {
		return ds
	}
	return ds.Copy()
}

// Columns returns the column names bound at fit time, or nil before
// fitting.
func (s *stage) Columns() []string {
	if s.columns == nil {
		return nil
	}
	return append([]string(nil), s.columns...)
}

// Params returns a copy of the stage configuration.
func (s *stage) Params() map[string]interface{} {
	out := make(map[string]interface{}, len(s.params))
	for k, v := range s.params {
		out[k] = v
	}
	return out
}
