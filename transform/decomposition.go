package transform

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/tabgo-ml/tabgo/core/model"
	"github.com/tabgo-ml/tabgo/dataset"
	"github.com/tabgo-ml/tabgo/decomposition"
	"github.com/tabgo-ml/tabgo/pkg/errors"
	"github.com/tabgo-ml/tabgo/pkg/log"
)

// Decomposition projects the selected columns into a new feature space
// and replaces the entire X with the embedding, one ordinally named
// column per output dimension, preserving the row index. Copy-on-write
// by default so the original dataset survives the projection.
//
// The backend must implement model.Transformer or, failing that,
// model.FitTransformer; the two are tried in that order at transform
// time.
type Decomposition struct {
	stage
	prefix         string
	transformer    model.Transformer
	fitTransformer model.FitTransformer
}

// DecompositionOption configures a Decomposition or PCA stage.
type DecompositionOption func(*Decomposition)

// WithDecompositionInPlace controls whether Transform mutates the
// dataset or a copy of it.
func WithDecompositionInPlace(v bool) DecompositionOption {
	return func(d *Decomposition) { d.inplace = v }
}

// NewDecomposition wraps a decomposition backend. The prefix names the
// embedding columns, e.g. "PC" yields PC1..PCk.
func NewDecomposition(backend interface{}, prefix string, opts ...DecompositionOption) (*Decomposition, error) {
	d := &Decomposition{stage: newStage(false), prefix: prefix}
	switch b := backend.(type) {
	case model.Transformer:
		d.transformer = b
	case model.FitTransformer:
		d.fitTransformer = b
	default:
		return nil, errors.NewUnsupportedTransformerError(fmt.Sprintf("%T", backend))
	}
	d.params["model"] = fmt.Sprintf("%T", backend)
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Fit binds the working columns and fits the backend on their values.
// Backends without a separate fit step are fitted during Transform.
func (d *Decomposition) Fit(ds *dataset.Dataset, columns ...string) error {
	if err := d.bindColumns(ds, columns); err != nil {
		return err
	}
	if d.transformer == nil {
		return nil
	}
	sel, err := ds.X.Select(d.columns...)
	if err != nil {
		return err
	}
	return d.transformer.Fit(sel.Matrix())
}

// Transform replaces X with the embedding of the bound columns.
func (d *Decomposition) Transform(ds *dataset.Dataset) (*dataset.Dataset, error) {
	if !d.isFitted() {
		return nil, errors.NewNotFittedError("Decomposition", "Transform")
	}

	out := d.target(ds)
	sel, err := out.X.Select(d.columns...)
	if err != nil {
		return nil, err
	}

	var embedding mat.Matrix
	if d.transformer != nil {
		embedding, err = d.transformer.Transform(sel.Matrix())
	} else {
		embedding, err = d.fitTransformer.FitTransform(sel.Matrix())
	}
	if err != nil {
		return nil, err
	}

	n, k := embedding.Dims()
	newX, err := dataset.FrameFromMatrix(embedding, d.componentNames(k), out.X.Index())
	if err != nil {
		return nil, err
	}
	out.X = newX

	log.GetLoggerWithName("transform").Debug("replaced features with embedding",
		log.ModelNameKey, d.params["model"],
		log.OperationKey, "transform",
		log.SamplesKey, n,
		log.FeaturesKey, k,
	)
	return out, nil
}

// FitTransform fits on the dataset and then transforms it.
func (d *Decomposition) FitTransform(ds *dataset.Dataset, columns ...string) (*dataset.Dataset, error) {
	if err := d.Fit(ds, columns...); err != nil {
		return nil, err
	}
	return d.Transform(ds)
}

func (d *Decomposition) componentNames(k int) []string {
	names := make([]string, k)
	for i := range names {
		names[i] = d.prefix + strconv.Itoa(i+1)
	}
	return names
}

// PCA is a Decomposition stage backed by the principal component
// estimator, with labeled access to the fitted loadings and variance
// summary.
type PCA struct {
	*Decomposition
	backend *decomposition.PCA
}

// NewPCA builds a PCA stage projecting onto nComponents components.
func NewPCA(nComponents int, opts ...DecompositionOption) *PCA {
	backend := decomposition.NewPCA(nComponents)
	d, _ := NewDecomposition(backend, "PC", opts...)
	d.params["n_components"] = nComponents
	return &PCA{Decomposition: d, backend: backend}
}

// Loadings returns the fitted eigenvectors as a frame, one row per
// fitted input column and one column per component.
func (p *PCA) Loadings() (*dataset.Frame, error) {
	components, err := p.backend.Components()
	if err != nil {
		return nil, err
	}
	k, _ := components.Dims()
	var loadings mat.Dense
	loadings.CloneFrom(components.T())
	return dataset.FrameFromMatrix(&loadings, p.componentNames(k), p.columns)
}

// Summary returns, per component, the explained variance ratio, its
// cumulative sum, and the singular value.
func (p *PCA) Summary() (*dataset.Frame, error) {
	ratios, err := p.backend.ExplainedVarianceRatio()
	if err != nil {
		return nil, err
	}
	singular, err := p.backend.SingularValues()
	if err != nil {
		return nil, err
	}

	values := make([]float64, 0, len(ratios)*3)
	cum := 0.0
	for i, r := range ratios {
		cum += r
		values = append(values, r, cum, singular[i])
	}
	columns := []string{"Variance %", "Cum. Variance %", "Singular Value"}
	return dataset.NewFrame(columns, p.componentNames(len(ratios)), values)
}
