package transform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabgo-ml/tabgo/preprocessing"
)

func TestScalerScalesOnlySelectedColumns(t *testing.T) {
	ds := testDataset(t,
		[]string{"a", "b", "keep"}, []string{"r1", "r2", "r3", "r4"},
		[]float64{
			1, 10, 100,
			2, 20, 200,
			3, 30, 300,
			4, 40, 400,
		},
	)

	s := NewScaler(preprocessing.NewStandardScalerDefault())
	out, err := s.FitTransform(ds, "a", "b")
	require.NoError(t, err)
	assert.Same(t, ds, out, "in-place by default")

	assert.Equal(t, []string{"a", "b", "keep"}, ds.X.Columns(), "column order untouched")

	a, err := ds.X.Column("a")
	require.NoError(t, err)
	mean := 0.0
	for _, v := range a {
		mean += v
	}
	mean /= float64(len(a))
	assert.InDelta(t, 0.0, mean, 1e-12, "standardized column is centered")

	keep, err := ds.X.Column("keep")
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 200, 300, 400}, keep, "unselected column untouched")
}

func TestScalerCopyOnWrite(t *testing.T) {
	ds := testDataset(t,
		[]string{"a"}, []string{"r1", "r2"},
		[]float64{1, 3},
	)

	s := NewScaler(preprocessing.NewMinMaxScalerDefault(), WithScalerInPlace(false))
	out, err := s.FitTransform(ds)
	require.NoError(t, err)
	assert.NotSame(t, ds, out)

	orig, err := ds.X.Column("a")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3}, orig, "original untouched")

	scaled, err := out.X.Column("a")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, scaled)
}

func TestScalerFitThenTransformNewData(t *testing.T) {
	train := testDataset(t,
		[]string{"a"}, []string{"r1", "r2"},
		[]float64{0, 10},
	)
	test := testDataset(t,
		[]string{"a"}, []string{"t1"},
		[]float64{5},
	)

	s := NewScaler(preprocessing.NewMinMaxScalerDefault())
	require.NoError(t, s.Fit(train))

	out, err := s.Transform(test)
	require.NoError(t, err)
	v, err := out.X.AtLabel("t1", "a")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-12, "transform uses the fitted statistics")
	assert.False(t, math.IsNaN(v))
}
