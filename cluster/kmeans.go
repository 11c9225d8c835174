// Package cluster provides the KMeans estimator, the Clusterer model
// wrapper with its quality scoring, and the seed robustness analysis.
package cluster

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/tabgo-ml/tabgo/core/model"
	"github.com/tabgo-ml/tabgo/pkg/errors"
)

var _ model.ClusterEstimator = (*KMeans)(nil)

// KMeans is a full-batch k-means clusterer with k-means++ initialization.
// The random seed is explicit: two KMeans with the same configuration and
// seed produce identical clusterings on the same data.
type KMeans struct {
	model.BaseEstimator

	nClusters   int
	maxIter     int
	tol         float64
	nInit       int
	randomState int64

	clusterCenters [][]float64 // nClusters × nFeatures
	labels         []int
	inertia        float64
	nIter          int
	nFeatures      int
}

// KMeansOption configures a KMeans.
type KMeansOption func(*KMeans)

// WithNClusters sets the number of clusters.
func WithNClusters(n int) KMeansOption {
	return func(km *KMeans) { km.nClusters = n }
}

// WithMaxIter sets the maximum number of Lloyd iterations per init.
func WithMaxIter(n int) KMeansOption {
	return func(km *KMeans) { km.maxIter = n }
}

// WithTol sets the center-shift tolerance used to declare convergence.
func WithTol(tol float64) KMeansOption {
	return func(km *KMeans) { km.tol = tol }
}

// WithNInit sets how many times the algorithm restarts with fresh
// centers, keeping the run with the lowest inertia.
func WithNInit(n int) KMeansOption {
	return func(km *KMeans) { km.nInit = n }
}

// WithRandomState sets the seed for center initialization.
func WithRandomState(seed int64) KMeansOption {
	return func(km *KMeans) { km.randomState = seed }
}

// NewKMeans creates a KMeans with the given options. Defaults: 8
// clusters, 300 iterations, tolerance 1e-4, 10 inits, seed 0.
func NewKMeans(options ...KMeansOption) *KMeans {
	km := &KMeans{
		nClusters:   8,
		maxIter:     300,
		tol:         1e-4,
		nInit:       10,
		randomState: 0,
	}
	for _, opt := range options {
		opt(km)
	}
	return km
}

// Fit clusters X. The y argument is ignored; it exists to satisfy the
// Fitter contract shared with supervised estimators.
func (km *KMeans) Fit(X, _ mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("KMeans.Fit", "empty data", errors.ErrEmptyData)
	}
	if km.nClusters < 1 {
		return errors.NewValueError("KMeans.Fit", "n_clusters must be >= 1")
	}
	if km.nClusters > r {
		return errors.NewDimensionError("KMeans.Fit", km.nClusters, r, 0)
	}
	if err := errors.CheckMatrix("KMeans.Fit", X, r, c); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(km.randomState))

	bestInertia := math.Inf(1)
	var bestCenters [][]float64
	var bestLabels []int
	bestIter := 0
	converged := false

	for init := 0; init < km.nInit; init++ {
		centers := km.initCenters(X, r, c, rng)
		labels := make([]int, r)
		var inertia float64
		iter := 0

		for ; iter < km.maxIter; iter++ {
			inertia = assign(X, centers, labels)
			shift := recompute(X, centers, labels, c)
			if shift <= km.tol {
				break
			}
		}
		if iter < km.maxIter {
			converged = true
		}

		if inertia < bestInertia {
			bestInertia = inertia
			bestCenters = centers
			bestLabels = labels
			bestIter = iter
		}
	}

	if !converged {
		errors.Warn(errors.NewConvergenceWarning("KMeans", km.maxIter, ""))
	}

	km.clusterCenters = bestCenters
	km.labels = bestLabels
	km.inertia = bestInertia
	km.nIter = bestIter
	km.nFeatures = c
	km.SetFitted()
	return nil
}

// initCenters picks initial centers with k-means++ seeding.
func (km *KMeans) initCenters(X mat.Matrix, r, c int, rng *rand.Rand) [][]float64 {
	centers := make([][]float64, km.nClusters)

	first := rng.Intn(r)
	centers[0] = rowOf(X, first, c)

	minDistSq := make([]float64, r)
	for i := range minDistSq {
		minDistSq[i] = sqDistToPoint(X, i, centers[0])
	}

	for k := 1; k < km.nClusters; k++ {
		var total float64
		for _, d := range minDistSq {
			total += d
		}

		var next int
		if total == 0 {
			// All remaining mass on duplicate points; pick uniformly.
			next = rng.Intn(r)
		} else {
			target := rng.Float64() * total
			var cum float64
			for i, d := range minDistSq {
				cum += d
				if cum >= target {
					next = i
					break
				}
			}
		}
		centers[k] = rowOf(X, next, c)

		for i := range minDistSq {
			if d := sqDistToPoint(X, i, centers[k]); d < minDistSq[i] {
				minDistSq[i] = d
			}
		}
	}
	return centers
}

// assign labels every sample with its nearest center and returns the
// resulting inertia (within-cluster sum of squared distances).
func assign(X mat.Matrix, centers [][]float64, labels []int) float64 {
	r, _ := X.Dims()
	var inertia float64
	for i := 0; i < r; i++ {
		best := math.Inf(1)
		bestK := 0
		for k, center := range centers {
			if d := sqDistToPoint(X, i, center); d < best {
				best = d
				bestK = k
			}
		}
		labels[i] = bestK
		inertia += best
	}
	return inertia
}

// recompute moves every center to the mean of its members and returns
// the total squared center shift. Empty clusters keep their position.
func recompute(X mat.Matrix, centers [][]float64, labels []int, c int) float64 {
	counts := make([]int, len(centers))
	sums := make([][]float64, len(centers))
	for k := range sums {
		sums[k] = make([]float64, c)
	}
	for i, k := range labels {
		counts[k]++
		for j := 0; j < c; j++ {
			sums[k][j] += X.At(i, j)
		}
	}

	var shift float64
	for k, center := range centers {
		if counts[k] == 0 {
			continue
		}
		for j := 0; j < c; j++ {
			mean := sums[k][j] / float64(counts[k])
			d := mean - center[j]
			shift += d * d
			center[j] = mean
		}
	}
	return shift
}

func rowOf(X mat.Matrix, i, c int) []float64 {
	out := make([]float64, c)
	for j := 0; j < c; j++ {
		out[j] = X.At(i, j)
	}
	return out
}

func sqDistToPoint(X mat.Matrix, i int, point []float64) float64 {
	var sum float64
	for j, p := range point {
		d := X.At(i, j) - p
		sum += d * d
	}
	return sum
}

// Predict assigns every row of X to its nearest fitted center, returned
// as an n×1 matrix of labels.
func (km *KMeans) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !km.IsFitted() {
		return nil, errors.NewNotFittedError("KMeans", "Predict")
	}
	r, c := X.Dims()
	if c != km.nFeatures {
		return nil, errors.NewDimensionError("KMeans.Predict", km.nFeatures, c, 1)
	}

	labels := make([]int, r)
	assign(X, km.clusterCenters, labels)
	out := mat.NewDense(r, 1, nil)
	for i, l := range labels {
		out.Set(i, 0, float64(l))
	}
	return out, nil
}

// Labels returns the cluster label of every training sample.
func (km *KMeans) Labels() []int {
	return append([]int(nil), km.labels...)
}

// Inertia returns the within-cluster sum of squared distances of the
// best init.
func (km *KMeans) Inertia() float64 {
	return km.inertia
}

// ClusterCenters returns the fitted centers as an
// n_clusters × n_features matrix.
func (km *KMeans) ClusterCenters() mat.Matrix {
	out := mat.NewDense(len(km.clusterCenters), km.nFeatures, nil)
	for k, center := range km.clusterCenters {
		for j, v := range center {
			out.Set(k, j, v)
		}
	}
	return out
}

// NClusters returns the configured number of clusters.
func (km *KMeans) NClusters() int {
	return km.nClusters
}

// NIter returns the Lloyd iteration count of the best init.
func (km *KMeans) NIter() int {
	return km.nIter
}

// GetParams returns the KMeans configuration.
func (km *KMeans) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_clusters":   km.nClusters,
		"max_iter":     km.maxIter,
		"tol":          km.tol,
		"n_init":       km.nInit,
		"random_state": km.randomState,
	}
}
