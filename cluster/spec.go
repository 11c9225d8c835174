package cluster

import (
	"github.com/tabgo-ml/tabgo/core/model"
	"github.com/tabgo-ml/tabgo/estimator"
)

// KMeansSpec builds KMeans backends for the model and optimization
// layers from plain parameter records.
type KMeansSpec struct{}

var _ estimator.Spec = KMeansSpec{}

// Name implements estimator.Spec.
func (KMeansSpec) Name() string { return "KMeans" }

// ParamNames implements estimator.Spec. Parameters outside this list are
// dropped (with a warning) by the Model driver before New is called.
func (KMeansSpec) ParamNames() []string {
	return []string{"n_clusters", "max_iter", "tol", "n_init", "random_state"}
}

// New implements estimator.Spec.
func (KMeansSpec) New(params map[string]interface{}) (model.Estimator, error) {
	nClusters, err := estimator.IntParam(params, "n_clusters", 8)
	if err != nil {
		return nil, err
	}
	maxIter, err := estimator.IntParam(params, "max_iter", 300)
	if err != nil {
		return nil, err
	}
	tol, err := estimator.FloatParam(params, "tol", 1e-4)
	if err != nil {
		return nil, err
	}
	nInit, err := estimator.IntParam(params, "n_init", 10)
	if err != nil {
		return nil, err
	}
	seed, err := estimator.Int64Param(params, "random_state", 0)
	if err != nil {
		return nil, err
	}

	return NewKMeans(
		WithNClusters(nClusters),
		WithMaxIter(maxIter),
		WithTol(tol),
		WithNInit(nInit),
		WithRandomState(seed),
	), nil
}
