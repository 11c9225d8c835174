package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabgo-ml/tabgo/pkg/errors"
)

func TestPCAReplacesXWithComponents(t *testing.T) {
	ds := testDataset(t,
		[]string{"a", "b", "c"}, []string{"r1", "r2", "r3", "r4"},
		[]float64{
			1, 2, 0.5,
			2, 4, 0.1,
			3, 6, 0.9,
			4, 8, 0.3,
		},
	)

	p := NewPCA(2)
	out, err := p.FitTransform(ds)
	require.NoError(t, err)

	assert.NotSame(t, ds, out, "copy-on-write by default")
	assert.Equal(t, []string{"a", "b", "c"}, ds.X.Columns(), "original untouched")

	assert.Equal(t, []string{"PC1", "PC2"}, out.X.Columns())
	assert.Equal(t, []string{"r1", "r2", "r3", "r4"}, out.X.Index(), "row index preserved")
}

func TestPCASelectedColumnsOnly(t *testing.T) {
	ds := testDataset(t,
		[]string{"a", "b", "ignored"}, []string{"r1", "r2", "r3"},
		[]float64{
			1, 2, 100,
			2, 3, 200,
			3, 5, 300,
		},
	)

	p := NewPCA(1, WithDecompositionInPlace(true))
	out, err := p.FitTransform(ds, "a", "b")
	require.NoError(t, err)

	assert.Same(t, ds, out)
	assert.Equal(t, []string{"PC1"}, ds.X.Columns(), "embedding replaces the whole X")
}

func TestPCALoadingsAndSummary(t *testing.T) {
	ds := testDataset(t,
		[]string{"a", "b"}, []string{"r1", "r2", "r3", "r4"},
		[]float64{
			1, 1,
			2, 2.1,
			3, 2.9,
			4, 4.2,
		},
	)

	p := NewPCA(2)
	_, err := p.FitTransform(ds)
	require.NoError(t, err)

	loadings, err := p.Loadings()
	require.NoError(t, err)
	assert.Equal(t, []string{"PC1", "PC2"}, loadings.Columns())
	assert.Equal(t, []string{"a", "b"}, loadings.Index(), "rows are the fitted input columns")

	summary, err := p.Summary()
	require.NoError(t, err)
	assert.Equal(t, []string{"Variance %", "Cum. Variance %", "Singular Value"}, summary.Columns())
	assert.Equal(t, []string{"PC1", "PC2"}, summary.Index())

	cum, err := summary.AtLabel("PC2", "Cum. Variance %")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, cum, 1e-9, "ratios sum to one over all components")

	pc1, err := summary.AtLabel("PC1", "Variance %")
	require.NoError(t, err)
	assert.Greater(t, pc1, 0.9, "nearly collinear features load on the first component")
}

type opaqueBackend struct{}

func TestNewDecompositionRejectsIncapableBackend(t *testing.T) {
	_, err := NewDecomposition(opaqueBackend{}, "Z")

	var unsupported *errors.UnsupportedTransformerError
	require.True(t, errors.As(err, &unsupported))
}
