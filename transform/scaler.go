package transform

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/tabgo-ml/tabgo/core/model"
	"github.com/tabgo-ml/tabgo/dataset"
	"github.com/tabgo-ml/tabgo/pkg/errors"
)

// Scaler applies a matrix scaler backend to the selected columns of X,
// writing the scaled values back in place of the originals. Other
// columns and the column order are untouched. In-place by default.
type Scaler struct {
	stage
	backend model.Transformer
}

// ScalerOption configures a Scaler.
type ScalerOption func(*Scaler)

// WithScalerInPlace controls whether Transform mutates the dataset or a
// copy of it.
func WithScalerInPlace(v bool) ScalerOption {
	return func(s *Scaler) { s.inplace = v }
}

// NewScaler wraps a scaler backend such as preprocessing.StandardScaler.
func NewScaler(backend model.Transformer, opts ...ScalerOption) *Scaler {
	s := &Scaler{stage: newStage(true), backend: backend}
	s.params["scaler"] = scalerName(backend)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func scalerName(backend model.Transformer) string {
	if str, ok := backend.(fmt.Stringer); ok {
		return str.String()
	}
	return fmt.Sprintf("%T", backend)
}

// Fit binds the working columns and fits the backend on their values.
func (s *Scaler) Fit(ds *dataset.Dataset, columns ...string) error {
	if err := s.bindColumns(ds, columns); err != nil {
		return err
	}
	sel, err := ds.X.Select(s.columns...)
	if err != nil {
		return err
	}
	return s.backend.Fit(sel.Matrix())
}

// Transform scales the bound columns.
func (s *Scaler) Transform(ds *dataset.Dataset) (*dataset.Dataset, error) {
	if !s.isFitted() {
		return nil, errors.NewNotFittedError("Scaler", "Transform")
	}

	out := s.target(ds)
	sel, err := out.X.Select(s.columns...)
	if err != nil {
		return nil, err
	}
	scaled, err := s.backend.Transform(sel.Matrix())
	if err != nil {
		return nil, err
	}

	col := make([]float64, out.X.Rows())
	for j, name := range s.columns {
		mat.Col(col, j, scaled)
		if err := out.X.SetColumn(name, col); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FitTransform fits on the dataset and then transforms it.
func (s *Scaler) FitTransform(ds *dataset.Dataset, columns ...string) (*dataset.Dataset, error) {
	if err := s.Fit(ds, columns...); err != nil {
		return nil, err
	}
	return s.Transform(ds)
}
