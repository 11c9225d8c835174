package cluster

import (
	"github.com/tabgo-ml/tabgo/core/model"
	"github.com/tabgo-ml/tabgo/dataset"
	"github.com/tabgo-ml/tabgo/estimator"
	"github.com/tabgo-ml/tabgo/metrics"
	"github.com/tabgo-ml/tabgo/optimize"
	"github.com/tabgo-ml/tabgo/pkg/errors"
)

var _ optimize.Task = (*Clusterer)(nil)

// Clusterer wraps a clustering backend as a scorable model. Score
// reports the standard clustering quality metrics and retains the
// per-sample silhouette coefficients for later inspection. After a
// parallel optimization run the silhouettes live on the worker's copy,
// not the original (see optimize.Run).
type Clusterer struct {
	*estimator.Model

	// Silhouettes holds the per-sample silhouette coefficients of the
	// last Score call.
	Silhouettes []float64
}

// NewClusterer builds a Clusterer from a spec whose backend implements
// model.ClusterEstimator.
func NewClusterer(spec estimator.Spec, params map[string]interface{}) (*Clusterer, error) {
	m, err := estimator.New(spec, params)
	if err != nil {
		return nil, err
	}
	if _, ok := m.Estimator().(model.ClusterEstimator); !ok {
		return nil, errors.NewValueError("NewClusterer", spec.Name()+" backend is not a cluster estimator")
	}
	return &Clusterer{Model: m}, nil
}

// Score computes Inertia, Distortion, Silhouette Score, Davies-Bouldin
// Score and Calinski-Harabasz Score for the fitted clustering on the
// dataset, storing per-sample silhouettes as a side artifact.
func (c *Clusterer) Score(ds *dataset.Dataset) (map[string]float64, error) {
	labels, err := c.PredictLabels(ds)
	if err != nil {
		return nil, err
	}

	backend := c.Estimator().(model.ClusterEstimator)
	X := ds.X.Matrix()

	distortion, err := metrics.Distortion(X, backend.ClusterCenters())
	if err != nil {
		return nil, err
	}
	silhouette, err := metrics.SilhouetteScore(X, labels)
	if err != nil {
		return nil, err
	}
	db, err := metrics.DaviesBouldinScore(X, labels)
	if err != nil {
		return nil, err
	}
	ch, err := metrics.CalinskiHarabaszScore(X, labels)
	if err != nil {
		return nil, err
	}

	samples, err := metrics.SilhouetteSamples(X, labels)
	if err != nil {
		return nil, err
	}
	c.Silhouettes = samples

	return map[string]float64{
		"Inertia":                 backend.Inertia(),
		"Distortion":              distortion,
		"Silhouette Score":        silhouette,
		"Davies-Bouldin Score":    db,
		"Calinski-Harabasz Score": ch,
	}, nil
}

// PredictLabels predicts and returns integer cluster labels for the
// dataset's rows.
func (c *Clusterer) PredictLabels(ds *dataset.Dataset) ([]int, error) {
	pred, err := c.Predict(ds)
	if err != nil {
		return nil, err
	}
	r, _ := pred.Dims()
	labels := make([]int, r)
	for i := range labels {
		labels[i] = int(pred.At(i, 0))
	}
	return labels, nil
}
