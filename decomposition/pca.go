// Package decomposition provides dimensionality reduction backends
// satisfying the core/model Transformer contract.
package decomposition

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/tabgo-ml/tabgo/core/model"
	"github.com/tabgo-ml/tabgo/pkg/errors"
)

// PCA projects data onto its leading principal components. The
// decomposition is computed by singular value decomposition of the
// column-centered data, so results are deterministic.
type PCA struct {
	model.BaseEstimator

	// NComponents is the number of components to keep.
	NComponents int

	mean           []float64  // per-feature mean, subtracted before projection
	components     *mat.Dense // NComponents × n_features, rows are components
	singularValues []float64
	explainedVar   []float64
	explainedRatio []float64
	nFeatures      int
	nSamples       int
}

// NewPCA creates a PCA keeping nComponents components.
func NewPCA(nComponents int) *PCA {
	return &PCA{NComponents: nComponents}
}

// Fit computes the principal components of X.
func (p *PCA) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("PCA.Fit", "empty data", errors.ErrEmptyData)
	}
	if p.NComponents < 1 {
		return errors.NewValueError("PCA.Fit", "n_components must be >= 1")
	}
	rank := min(r, c)
	if p.NComponents > rank {
		return errors.NewDimensionError("PCA.Fit", rank, p.NComponents, 1)
	}
	if err := errors.CheckMatrix("PCA.Fit", X, r, c); err != nil {
		return err
	}

	// Center the data.
	p.mean = make([]float64, c)
	for j := 0; j < c; j++ {
		var sum float64
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		p.mean[j] = sum / float64(r)
	}
	centered := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			centered.Set(i, j, X.At(i, j)-p.mean[j])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThin); !ok {
		return errors.NewModelError("PCA.Fit", "SVD failed to converge", nil)
	}

	var v mat.Dense
	svd.VTo(&v) // c × rank
	sigma := svd.Values(nil)

	// Total variance over every component, for the explained ratio.
	var total float64
	for _, s := range sigma {
		total += s * s / float64(r-1)
	}

	p.components = mat.NewDense(p.NComponents, c, nil)
	p.singularValues = make([]float64, p.NComponents)
	p.explainedVar = make([]float64, p.NComponents)
	p.explainedRatio = make([]float64, p.NComponents)
	for k := 0; k < p.NComponents; k++ {
		for j := 0; j < c; j++ {
			p.components.Set(k, j, v.At(j, k))
		}
		p.singularValues[k] = sigma[k]
		p.explainedVar[k] = sigma[k] * sigma[k] / float64(r-1)
		p.explainedRatio[k] = errors.SafeDivide(p.explainedVar[k], total)
	}

	p.nFeatures = c
	p.nSamples = r
	p.SetFitted()
	return nil
}

// Transform projects X onto the fitted components, producing an
// n_samples × n_components matrix.
func (p *PCA) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("PCA", "Transform")
	}

	r, c := X.Dims()
	if c != p.nFeatures {
		return nil, errors.NewDimensionError("PCA.Transform", p.nFeatures, c, 1)
	}

	centered := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			centered.Set(i, j, X.At(i, j)-p.mean[j])
		}
	}

	var out mat.Dense
	out.Mul(centered, p.components.T())
	return &out, nil
}

// FitTransform fits on X and returns its projection.
func (p *PCA) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := p.Fit(X); err != nil {
		return nil, err
	}
	return p.Transform(X)
}

// Components returns the fitted components as an
// n_components × n_features matrix whose rows are eigenvectors.
func (p *PCA) Components() (*mat.Dense, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("PCA", "Components")
	}
	return mat.DenseCopyOf(p.components), nil
}

// SingularValues returns the singular values of the kept components.
func (p *PCA) SingularValues() ([]float64, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("PCA", "SingularValues")
	}
	return append([]float64(nil), p.singularValues...), nil
}

// ExplainedVarianceRatio returns the fraction of total variance captured
// by each kept component.
func (p *PCA) ExplainedVarianceRatio() ([]float64, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("PCA", "ExplainedVarianceRatio")
	}
	return append([]float64(nil), p.explainedRatio...), nil
}

// ExplainedVariance returns the variance captured by each kept component.
func (p *PCA) ExplainedVariance() ([]float64, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("PCA", "ExplainedVariance")
	}
	return append([]float64(nil), p.explainedVar...), nil
}

// GetParams returns the PCA configuration.
func (p *PCA) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_components": p.NComponents,
	}
}

// String returns a short description of the PCA.
func (p *PCA) String() string {
	if !p.IsFitted() {
		return fmt.Sprintf("PCA(n_components=%d)", p.NComponents)
	}
	return fmt.Sprintf("PCA(n_components=%d, n_features=%d)", p.NComponents, p.nFeatures)
}
