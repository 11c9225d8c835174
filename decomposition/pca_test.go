package decomposition

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestPCAFitTransform(t *testing.T) {
	// Points along the y = x line with small orthogonal noise: nearly
	// all variance lives on the first component.
	X := mat.NewDense(6, 2, []float64{
		-2, -2.1,
		-1, -0.9,
		0, 0.1,
		1, 0.9,
		2, 2.1,
		3, 2.9,
	})

	p := NewPCA(2)
	out, err := p.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	r, c := out.Dims()
	if r != 6 || c != 2 {
		t.Fatalf("FitTransform() shape = (%d, %d), want (6, 2)", r, c)
	}

	ratios, err := p.ExplainedVarianceRatio()
	if err != nil {
		t.Fatalf("ExplainedVarianceRatio() error = %v", err)
	}
	if ratios[0] < 0.99 {
		t.Errorf("first component ratio = %v, want nearly 1", ratios[0])
	}
	total := ratios[0] + ratios[1]
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("ratios sum to %v, want 1", total)
	}

	// Projections are centered.
	for j := 0; j < c; j++ {
		var mean float64
		for i := 0; i < r; i++ {
			mean += out.At(i, j)
		}
		if math.Abs(mean/float64(r)) > 1e-9 {
			t.Errorf("component %d projection mean = %v, want 0", j, mean)
		}
	}
}

func TestPCATransformNewData(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		0, 0,
		1, 1,
		2, 2,
		3, 3,
	})

	p := NewPCA(1)
	if err := p.Fit(X); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	probe := mat.NewDense(1, 2, []float64{1.5, 1.5})
	out, err := p.Transform(probe)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	// The probe sits at the data mean, so it projects to the origin.
	if math.Abs(out.At(0, 0)) > 1e-9 {
		t.Errorf("projection of the mean = %v, want 0", out.At(0, 0))
	}
}

func TestPCAComponentsOrthonormal(t *testing.T) {
	X := mat.NewDense(5, 3, []float64{
		1, 0, 2,
		2, 1, 1,
		3, 3, 5,
		4, 2, 2,
		5, 5, 8,
	})

	p := NewPCA(2)
	if err := p.Fit(X); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	components, err := p.Components()
	if err != nil {
		t.Fatalf("Components() error = %v", err)
	}

	k, _ := components.Dims()
	for a := 0; a < k; a++ {
		for b := 0; b < k; b++ {
			var dot float64
			for j := 0; j < 3; j++ {
				dot += components.At(a, j) * components.At(b, j)
			}
			want := 0.0
			if a == b {
				want = 1.0
			}
			if math.Abs(dot-want) > 1e-9 {
				t.Errorf("components %d . %d = %v, want %v", a, b, dot, want)
			}
		}
	}
}

func TestPCAValidation(t *testing.T) {
	p := NewPCA(5)
	err := p.Fit(mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6}))
	if err == nil {
		t.Error("Fit() expected an error for n_components > min(n, features)")
	}

	q := NewPCA(1)
	if _, err := q.Transform(mat.NewDense(1, 1, []float64{1})); err == nil {
		t.Error("Transform() before Fit() expected an error")
	}
}

func TestPCATransformDimensionCheck(t *testing.T) {
	p := NewPCA(1)
	if err := p.Fit(mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := p.Transform(mat.NewDense(1, 3, nil)); err == nil {
		t.Error("Transform() expected a dimension error")
	}
}
