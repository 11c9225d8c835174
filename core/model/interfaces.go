// Package model defines the capability contracts consumed by the dataset
// pipeline: what it means to be fittable, to predict, and to transform.
//
// The transformation driver never probes for methods at runtime; it
// selects capabilities through these interfaces in a fixed preference
// order (Transformer first, FitTransformer as the fallback).
package model

import "gonum.org/v1/gonum/mat"

// Fitter is a supervised or unsupervised estimator that can be fitted.
// y may be nil for unsupervised estimators.
type Fitter interface {
	Fit(X, y mat.Matrix) error
}

// Predictor produces predictions for new data. For clusterers the result
// is an n×1 matrix of cluster labels.
type Predictor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Estimator combines fitting and prediction.
type Estimator interface {
	Fitter
	Predictor
}

// Transformer learns parameters from data and applies a transformation.
type Transformer interface {
	Fit(X mat.Matrix) error
	Transform(X mat.Matrix) (mat.Matrix, error)
}

// FitTransformer fits and transforms in one pass. Backends whose
// transform has no meaning separate from fitting (e.g. some embeddings)
// implement only this.
type FitTransformer interface {
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// InverseTransformer maps transformed data back to the original space.
type InverseTransformer interface {
	InverseTransform(X mat.Matrix) (mat.Matrix, error)
}

// ClusterEstimator is implemented by clustering backends. Labels and
// Inertia are only valid after Fit.
type ClusterEstimator interface {
	Estimator
	Labels() []int
	Inertia() float64
	ClusterCenters() mat.Matrix
	NClusters() int
}

// ParameterGetter exposes an estimator's configuration for reporting.
type ParameterGetter interface {
	GetParams() map[string]interface{}
}
