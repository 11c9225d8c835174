// Package metrics provides clustering quality metrics and correlation
// computations as pure functions on gonum types.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/tabgo-ml/tabgo/core/parallel"
	"github.com/tabgo-ml/tabgo/pkg/errors"
)

// parallelThreshold is the sample count above which pairwise distance
// computation fans out across cores.
const parallelThreshold = 512

// euclidean returns the distance between rows i and j of X.
func euclidean(X mat.Matrix, i, j, cols int) float64 {
	var sum float64
	for k := 0; k < cols; k++ {
		d := X.At(i, k) - X.At(j, k)
		sum += d * d
	}
	return math.Sqrt(sum)
}

// pairwiseDistances computes the full symmetric distance matrix of X.
func pairwiseDistances(X mat.Matrix) *mat.SymDense {
	r, c := X.Dims()
	dist := mat.NewSymDense(r, nil)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := i + 1; j < r; j++ {
				dist.SetSym(i, j, euclidean(X, i, j, c))
			}
		}
	})
	return dist
}

// validateLabels checks X against labels and returns the sample count,
// the number of clusters, and the per-cluster sizes (indexed by label).
func validateLabels(op string, X mat.Matrix, labels []int) (n, k int, sizes []int, err error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return 0, 0, nil, errors.NewValueError(op, "empty matrix")
	}
	if len(labels) != r {
		return 0, 0, nil, errors.NewDimensionError(op, r, len(labels), 0)
	}

	maxLabel := 0
	for _, l := range labels {
		if l < 0 {
			return 0, 0, nil, errors.NewValueError(op, "negative cluster label")
		}
		if l > maxLabel {
			maxLabel = l
		}
	}
	sizes = make([]int, maxLabel+1)
	for _, l := range labels {
		sizes[l]++
	}
	for _, s := range sizes {
		if s > 0 {
			k++
		}
	}
	if k < 2 {
		return 0, 0, nil, errors.NewValueError(op, "at least 2 clusters are required")
	}
	return r, k, sizes, nil
}

// SilhouetteSamples computes the silhouette coefficient of every sample.
// Samples in singleton clusters get a coefficient of 0.
func SilhouetteSamples(X mat.Matrix, labels []int) ([]float64, error) {
	n, _, sizes, err := validateLabels("SilhouetteSamples", X, labels)
	if err != nil {
		return nil, err
	}

	dist := pairwiseDistances(X)
	out := make([]float64, n)

	parallel.ParallelizeWithThreshold(n, parallelThreshold, func(start, end int) {
		sums := make([]float64, len(sizes))
		for i := start; i < end; i++ {
			own := labels[i]
			if sizes[own] == 1 {
				out[i] = 0
				continue
			}

			for c := range sums {
				sums[c] = 0
			}
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				sums[labels[j]] += dist.At(i, j)
			}

			a := sums[own] / float64(sizes[own]-1)
			b := math.Inf(1)
			for c, size := range sizes {
				if c == own || size == 0 {
					continue
				}
				if m := sums[c] / float64(size); m < b {
					b = m
				}
			}

			out[i] = errors.SafeDivide(b-a, math.Max(a, b))
		}
	})

	return out, nil
}

// SilhouetteScore returns the mean silhouette coefficient over all samples.
func SilhouetteScore(X mat.Matrix, labels []int) (float64, error) {
	samples, err := SilhouetteSamples(X, labels)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples)), nil
}

// centroids returns the per-cluster mean vectors, indexed by label.
func centroids(X mat.Matrix, labels []int, sizes []int) [][]float64 {
	_, c := X.Dims()
	mu := make([][]float64, len(sizes))
	for l, size := range sizes {
		if size > 0 {
			mu[l] = make([]float64, c)
		}
	}
	for i, l := range labels {
		for j := 0; j < c; j++ {
			mu[l][j] += X.At(i, j)
		}
	}
	for l, size := range sizes {
		if size > 0 {
			for j := range mu[l] {
				mu[l][j] /= float64(size)
			}
		}
	}
	return mu
}

func distTo(X mat.Matrix, i int, point []float64) float64 {
	var sum float64
	for j, p := range point {
		d := X.At(i, j) - p
		sum += d * d
	}
	return math.Sqrt(sum)
}

// DaviesBouldinScore computes the Davies-Bouldin index; lower is better.
func DaviesBouldinScore(X mat.Matrix, labels []int) (float64, error) {
	_, k, sizes, err := validateLabels("DaviesBouldinScore", X, labels)
	if err != nil {
		return 0, err
	}

	mu := centroids(X, labels, sizes)

	// Mean intra-cluster distance to the centroid.
	scatter := make([]float64, len(sizes))
	for i, l := range labels {
		scatter[l] += distTo(X, i, mu[l])
	}
	for l, size := range sizes {
		if size > 0 {
			scatter[l] /= float64(size)
		}
	}

	var sum float64
	for a, sizeA := range sizes {
		if sizeA == 0 {
			continue
		}
		worst := 0.0
		for b, sizeB := range sizes {
			if b == a || sizeB == 0 {
				continue
			}
			var sep float64
			for j := range mu[a] {
				d := mu[a][j] - mu[b][j]
				sep += d * d
			}
			ratio := errors.SafeDivide(scatter[a]+scatter[b], math.Sqrt(sep))
			if ratio > worst {
				worst = ratio
			}
		}
		sum += worst
	}
	return sum / float64(k), nil
}

// CalinskiHarabaszScore computes the Calinski-Harabasz index (variance
// ratio criterion); higher is better.
func CalinskiHarabaszScore(X mat.Matrix, labels []int) (float64, error) {
	n, k, sizes, err := validateLabels("CalinskiHarabaszScore", X, labels)
	if err != nil {
		return 0, err
	}

	_, c := X.Dims()
	mu := centroids(X, labels, sizes)

	grand := make([]float64, c)
	for i := 0; i < n; i++ {
		for j := 0; j < c; j++ {
			grand[j] += X.At(i, j)
		}
	}
	for j := range grand {
		grand[j] /= float64(n)
	}

	var between float64
	for l, size := range sizes {
		if size == 0 {
			continue
		}
		var sq float64
		for j := range grand {
			d := mu[l][j] - grand[j]
			sq += d * d
		}
		between += float64(size) * sq
	}

	var within float64
	for i, l := range labels {
		for j := 0; j < c; j++ {
			d := X.At(i, j) - mu[l][j]
			within += d * d
		}
	}

	return errors.SafeDivide(between*float64(n-k), within*float64(k-1)), nil
}

// Distortion is the mean distance of every sample to its nearest cluster
// center.
func Distortion(X, centers mat.Matrix) (float64, error) {
	r, c := X.Dims()
	kr, kc := centers.Dims()
	if r == 0 || c == 0 {
		return 0, errors.NewValueError("Distortion", "empty matrix")
	}
	if kc != c {
		return 0, errors.NewDimensionError("Distortion", c, kc, 1)
	}

	var sum float64
	for i := 0; i < r; i++ {
		best := math.Inf(1)
		for k := 0; k < kr; k++ {
			var sq float64
			for j := 0; j < c; j++ {
				d := X.At(i, j) - centers.At(k, j)
				sq += d * d
			}
			if dist := math.Sqrt(sq); dist < best {
				best = dist
			}
		}
		sum += best
	}
	return sum / float64(r), nil
}
