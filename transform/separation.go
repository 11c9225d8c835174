package transform

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/tabgo-ml/tabgo/dataset"
	"github.com/tabgo-ml/tabgo/pkg/errors"
)

// Ranked is one entry of a feature ranking.
type Ranked struct {
	Column string
	Score  float64
}

// FeatureSeparation ranks features by how strongly they separate two
// named reference rows, relative to each feature's dispersion over the
// whole column. The score is |delta| / |dispersion|, where delta is the
// signed difference between the reference rows and dispersion is the
// quantile span of the column (or its full range when quantiles are
// disabled). Zero dispersion scores 0.
//
// Transform keeps the selected features and drops every other X column.
// Exactly one selection criterion, a score threshold or a best-n count,
// must be set.
type FeatureSeparation struct {
	stage
	refA, refB string
	lo, hi     float64
	fullRange  bool
	threshold  *float64
	nBest      *int
	ranking    []Ranked
}

// SeparationOption configures a FeatureSeparation.
type SeparationOption func(*FeatureSeparation)

// WithSeparationInPlace controls whether Transform mutates the dataset
// or a copy of it.
func WithSeparationInPlace(v bool) SeparationOption {
	return func(f *FeatureSeparation) { f.inplace = v }
}

// WithSeparationQuantiles sets the quantile pair defining each feature's
// dispersion. The default is (0.01, 0.99).
func WithSeparationQuantiles(lo, hi float64) SeparationOption {
	return func(f *FeatureSeparation) {
		f.lo, f.hi = lo, hi
		f.fullRange = false
	}
}

// WithSeparationFullRange uses each feature's full max-min span as its
// dispersion instead of a quantile span.
func WithSeparationFullRange() SeparationOption {
	return func(f *FeatureSeparation) { f.fullRange = true }
}

// WithSeparationThreshold keeps features scoring at or above t.
func WithSeparationThreshold(t float64) SeparationOption {
	return func(f *FeatureSeparation) { f.threshold = &t }
}

// WithSeparationBest keeps only the n highest scoring features.
func WithSeparationBest(n int) SeparationOption {
	return func(f *FeatureSeparation) { f.nBest = &n }
}

// NewFeatureSeparation builds a selector separating the rows labeled
// refA and refB.
func NewFeatureSeparation(refA, refB string, opts ...SeparationOption) *FeatureSeparation {
	f := &FeatureSeparation{
		stage: newStage(true),
		refA:  refA,
		refB:  refB,
		lo:    0.01,
		hi:    0.99,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.params["refs"] = []string{refA, refB}
	if f.fullRange {
		f.params["quantiles"] = nil
	} else {
		f.params["quantiles"] = [2]float64{f.lo, f.hi}
	}
	if f.threshold != nil {
		f.params["threshold"] = *f.threshold
	}
	if f.nBest != nil {
		f.params["n_best"] = *f.nBest
	}
	return f
}

// Fit computes the separation ranking over the selected columns. Both
// reference rows must exist in the dataset's X.
func (f *FeatureSeparation) Fit(ds *dataset.Dataset, columns ...string) error {
	if err := f.bindColumns(ds, columns); err != nil {
		return err
	}
	if !ds.X.HasRow(f.refA) {
		return errors.NewKeyNotFoundError("row", f.refA)
	}
	if !ds.X.HasRow(f.refB) {
		return errors.NewKeyNotFoundError("row", f.refB)
	}

	ranking := make([]Ranked, 0, len(f.columns))
	for _, name := range f.columns {
		values, err := ds.X.Column(name)
		if err != nil {
			return err
		}

		span := f.dispersion(values)
		score := 0.0
		if span != 0 {
			a, err := ds.X.AtLabel(f.refA, name)
			if err != nil {
				return err
			}
			b, err := ds.X.AtLabel(f.refB, name)
			if err != nil {
				return err
			}
			delta := a - b
			if delta < 0 {
				delta = -delta
			}
			if span < 0 {
				span = -span
			}
			score = delta / span
		}
		ranking = append(ranking, Ranked{Column: name, Score: score})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Score > ranking[j].Score
	})
	f.ranking = ranking
	return nil
}

func (f *FeatureSeparation) dispersion(values []float64) float64 {
	if f.fullRange {
		min, max := values[0], values[0]
		for _, v := range values[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		return max - min
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return stat.Quantile(f.hi, stat.LinInterp, sorted, nil) -
		stat.Quantile(f.lo, stat.LinInterp, sorted, nil)
}

// Transform drops every X column outside the selected feature set.
func (f *FeatureSeparation) Transform(ds *dataset.Dataset) (*dataset.Dataset, error) {
	if !f.isFitted() {
		return nil, errors.NewNotFittedError("FeatureSeparation", "Transform")
	}
	selected, err := f.selected()
	if err != nil {
		return nil, err
	}

	out := f.target(ds)
	var drop []string
	for _, name := range out.X.Columns() {
		if !selected[name] {
			drop = append(drop, name)
		}
	}
	if len(drop) > 0 {
		if _, err := out.Drop(nil, drop); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (f *FeatureSeparation) selected() (map[string]bool, error) {
	switch {
	case f.threshold != nil && f.nBest != nil:
		return nil, errors.NewInvalidSelectionCriterionError("threshold and best-n are mutually exclusive")
	case f.threshold != nil:
		out := make(map[string]bool)
		for _, r := range f.ranking {
			if r.Score >= *f.threshold {
				out[r.Column] = true
			}
		}
		return out, nil
	case f.nBest != nil:
		out := make(map[string]bool)
		for i, r := range f.ranking {
			if i >= *f.nBest {
				break
			}
			out[r.Column] = true
		}
		return out, nil
	default:
		return nil, errors.NewInvalidSelectionCriterionError("either a threshold or a best-n count must be set")
	}
}

// FitTransform fits on the dataset and then transforms it.
func (f *FeatureSeparation) FitTransform(ds *dataset.Dataset, columns ...string) (*dataset.Dataset, error) {
	if err := f.Fit(ds, columns...); err != nil {
		return nil, err
	}
	return f.Transform(ds)
}

// Ranking returns the fitted ranking, highest score first.
func (f *FeatureSeparation) Ranking() []Ranked {
	return append([]Ranked(nil), f.ranking...)
}
