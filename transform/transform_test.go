package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tabgo-ml/tabgo/dataset"
	"github.com/tabgo-ml/tabgo/pkg/errors"
	"github.com/tabgo-ml/tabgo/preprocessing"
)

func testDataset(t *testing.T, columns, index []string, values []float64) *dataset.Dataset {
	t.Helper()
	f, err := dataset.NewFrame(columns, index, values)
	require.NoError(t, err)
	ds, err := dataset.New(f)
	require.NoError(t, err)
	return ds
}

func TestBindColumnsSnapshotsAll(t *testing.T) {
	ds := testDataset(t,
		[]string{"a", "b"}, []string{"r1", "r2"},
		[]float64{1, 2, 3, 4},
	)

	s := NewScaler(preprocessing.NewStandardScalerDefault())
	require.NoError(t, s.Fit(ds))
	require.Equal(t, []string{"a", "b"}, s.Columns())
}

func TestBindColumnsRejectsUnknown(t *testing.T) {
	ds := testDataset(t,
		[]string{"a"}, []string{"r1", "r2"},
		[]float64{1, 2},
	)

	s := NewScaler(preprocessing.NewStandardScalerDefault())
	err := s.Fit(ds, "missing")

	var colErr *errors.InvalidColumnSpecError
	require.True(t, errors.As(err, &colErr))
}

func TestTransformBeforeFit(t *testing.T) {
	ds := testDataset(t,
		[]string{"a"}, []string{"r1", "r2"},
		[]float64{1, 2},
	)

	stages := []Transformer{
		NewScaler(preprocessing.NewStandardScalerDefault()),
		NewPCA(1),
		NewFeatureSeparation("r1", "r2", WithSeparationBest(1)),
		NewCorrelationFilter(0.8),
	}
	for _, stage := range stages {
		_, err := stage.Transform(ds)
		var notFitted *errors.NotFittedError
		require.True(t, errors.As(err, &notFitted), "%T must refuse to transform unfitted", stage)
	}
}
