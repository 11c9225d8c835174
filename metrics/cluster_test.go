package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// fourPoints holds two pairs of near-identical points far from each
// other, so the expected metric values are easy to derive by hand.
func fourPoints() (*mat.Dense, []int) {
	X := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 1,
		10, 10,
		10, 11,
	})
	return X, []int{0, 0, 1, 1}
}

func TestSilhouetteScore(t *testing.T) {
	tests := []struct {
		name    string
		X       *mat.Dense
		labels  []int
		want    float64
		wantErr bool
	}{
		{
			name: "well separated pairs",
			X: mat.NewDense(4, 2, []float64{
				0, 0,
				0, 1,
				10, 10,
				10, 11,
			}),
			labels: []int{0, 0, 1, 1},
			// a = 1 for every point; b is the mean distance to the other
			// pair, far larger, so each coefficient is close to 1.
			want:    0.93,
			wantErr: false,
		},
		{
			name: "single cluster",
			X: mat.NewDense(3, 1, []float64{
				1, 2, 3,
			}),
			labels:  []int{0, 0, 0},
			wantErr: true,
		},
		{
			name: "label count mismatch",
			X: mat.NewDense(2, 1, []float64{
				1, 2,
			}),
			labels:  []int{0},
			wantErr: true,
		},
		{
			name: "negative label",
			X: mat.NewDense(2, 1, []float64{
				1, 2,
			}),
			labels:  []int{0, -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SilhouetteScore(tt.X, tt.labels)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SilhouetteScore() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 0.05 {
				t.Errorf("SilhouetteScore() = %v, want about %v", got, tt.want)
			}
		})
	}
}

func TestSilhouetteSamplesSingleton(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{0, 1, 10})
	labels := []int{0, 0, 1}

	samples, err := SilhouetteSamples(X, labels)
	if err != nil {
		t.Fatalf("SilhouetteSamples() error = %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("SilhouetteSamples() returned %d values, want 3", len(samples))
	}
	if samples[2] != 0 {
		t.Errorf("singleton cluster coefficient = %v, want 0", samples[2])
	}
}

func TestDaviesBouldinScore(t *testing.T) {
	X, labels := fourPoints()

	got, err := DaviesBouldinScore(X, labels)
	if err != nil {
		t.Fatalf("DaviesBouldinScore() error = %v", err)
	}
	// Within-cluster mean distance to centroid is 0.5 for each pair and
	// the centroids are sqrt(200) apart, so the single pairwise ratio is
	// (0.5+0.5)/sqrt(200).
	want := 1.0 / math.Sqrt(200)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("DaviesBouldinScore() = %v, want about %v", got, want)
	}
}

func TestCalinskiHarabaszScore(t *testing.T) {
	X, labels := fourPoints()

	got, err := CalinskiHarabaszScore(X, labels)
	if err != nil {
		t.Fatalf("CalinskiHarabaszScore() error = %v", err)
	}
	if got < 100 {
		t.Errorf("CalinskiHarabaszScore() = %v, want a large value for separated clusters", got)
	}
}

func TestDistortion(t *testing.T) {
	X, _ := fourPoints()
	centers := mat.NewDense(2, 2, []float64{
		0, 0.5,
		10, 10.5,
	})

	got, err := Distortion(X, centers)
	if err != nil {
		t.Fatalf("Distortion() error = %v", err)
	}
	// Every point sits 0.5 from its nearest center.
	if math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Distortion() = %v, want 0.5", got)
	}
}

func TestDistortionDimensionMismatch(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{0, 0, 1, 1})
	centers := mat.NewDense(1, 3, []float64{0, 0, 0})

	if _, err := Distortion(X, centers); err == nil {
		t.Error("Distortion() expected a dimension error")
	}
}
