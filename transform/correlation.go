package transform

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/tabgo-ml/tabgo/dataset"
	"github.com/tabgo-ml/tabgo/metrics"
	"github.com/tabgo-ml/tabgo/pkg/errors"
	"github.com/tabgo-ml/tabgo/pkg/log"
)

// CorrelationFilter drops redundant features by pairwise Pearson
// correlation. Fit computes the correlation matrix of the selected
// columns; Transform drops every column whose strict upper triangle
// holds at least one entry with absolute value at or above the
// threshold, keeping the first of each correlated group. In-place by
// default.
type CorrelationFilter struct {
	stage
	threshold float64
	sorted    bool

	fitted      []string
	matrix      *dataset.Frame
	matrixAfter *dataset.Frame
}

// FilterOption configures a CorrelationFilter.
type FilterOption func(*CorrelationFilter)

// WithFilterInPlace controls whether Transform mutates the dataset or a
// copy of it.
func WithFilterInPlace(v bool) FilterOption {
	return func(c *CorrelationFilter) { c.inplace = v }
}

// WithFilterSort controls whether the selected columns are sorted
// lexicographically before computing the correlation matrix, making the
// drop decision independent of the incoming column order. Enabled by
// default.
func WithFilterSort(v bool) FilterOption {
	return func(c *CorrelationFilter) { c.sorted = v }
}

// NewCorrelationFilter builds a filter with the given absolute
// correlation threshold.
func NewCorrelationFilter(threshold float64, opts ...FilterOption) *CorrelationFilter {
	c := &CorrelationFilter{stage: newStage(true), threshold: threshold, sorted: true}
	for _, opt := range opts {
		opt(c)
	}
	c.params["method"] = "pearson"
	c.params["threshold"] = c.threshold
	c.params["sort"] = c.sorted
	return c
}

// Fit computes the correlation matrix over the selected columns.
func (c *CorrelationFilter) Fit(ds *dataset.Dataset, columns ...string) error {
	if err := c.bindColumns(ds, columns); err != nil {
		return err
	}

	fitted := append([]string(nil), c.columns...)
	if c.sorted {
		sort.Strings(fitted)
	}

	sel, err := ds.X.Select(fitted...)
	if err != nil {
		return err
	}
	corr, err := metrics.CorrelationMatrix(sel.Matrix())
	if err != nil {
		return err
	}

	matrix, err := dataset.FrameFromMatrix(corr, fitted, fitted)
	if err != nil {
		return err
	}
	c.fitted = fitted
	c.matrix = matrix
	return nil
}

// Transform drops the columns flagged by the fitted correlation matrix
// and records the post-drop matrix over the survivors.
func (c *CorrelationFilter) Transform(ds *dataset.Dataset) (*dataset.Dataset, error) {
	if !c.isFitted() || c.matrix == nil {
		return nil, errors.NewNotFittedError("CorrelationFilter", "Transform")
	}

	var drop []string
	var keep []string
	for j, name := range c.fitted {
		flagged := false
		for i := 0; i < j; i++ {
			if math.Abs(c.matrix.At(i, j)) >= c.threshold {
				flagged = true
				break
			}
		}
		if flagged {
			drop = append(drop, name)
		} else {
			keep = append(keep, name)
		}
	}

	out := c.target(ds)
	if len(drop) > 0 {
		if _, err := out.Drop(nil, drop); err != nil {
			return nil, err
		}
		log.GetLoggerWithName("transform").Debug("dropped correlated columns",
			log.ModelNameKey, "CorrelationFilter",
			log.OperationKey, "transform",
			"columns", drop,
		)
	}

	after, err := c.submatrix(keep)
	if err != nil {
		return nil, err
	}
	c.matrixAfter = after
	return out, nil
}

func (c *CorrelationFilter) submatrix(columns []string) (*dataset.Frame, error) {
	n := len(columns)
	values := make([]float64, 0, n*n)
	for _, row := range columns {
		for _, col := range columns {
			v, err := c.matrix.AtLabel(row, col)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
	}
	return dataset.NewFrame(columns, columns, values)
}

// FitTransform fits on the dataset and then transforms it.
func (c *CorrelationFilter) FitTransform(ds *dataset.Dataset, columns ...string) (*dataset.Dataset, error) {
	if err := c.Fit(ds, columns...); err != nil {
		return nil, err
	}
	return c.Transform(ds)
}

// Matrix returns the fitted correlation matrix.
func (c *CorrelationFilter) Matrix() (*dataset.Frame, error) {
	if c.matrix == nil {
		return nil, errors.NewNotFittedError("CorrelationFilter", "Matrix")
	}
	return c.matrix, nil
}

// MatrixAfter returns the correlation matrix restricted to the columns
// surviving the last Transform.
func (c *CorrelationFilter) MatrixAfter() (*dataset.Frame, error) {
	if c.matrixAfter == nil {
		return nil, errors.NewNotFittedError("CorrelationFilter", "MatrixAfter")
	}
	return c.matrixAfter, nil
}

// UMatrix returns the strict upper triangle of the fitted correlation
// matrix, with every other entry set to NaN.
func (c *CorrelationFilter) UMatrix() (*dataset.Frame, error) {
	if c.matrix == nil {
		return nil, errors.NewNotFittedError("CorrelationFilter", "UMatrix")
	}
	n := len(c.fitted)
	upper := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j > i {
				upper.Set(i, j, c.matrix.At(i, j))
			} else {
				upper.Set(i, j, math.NaN())
			}
		}
	}
	return dataset.FrameFromMatrix(upper, c.fitted, c.fitted)
}
