package estimator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/tabgo-ml/tabgo/core/model"
	"github.com/tabgo-ml/tabgo/dataset"
	"github.com/tabgo-ml/tabgo/pkg/errors"
)

// meanEstimator predicts the mean of the fitted targets for every row.
type meanEstimator struct {
	model.BaseEstimator
	shift float64
	mean  float64
}

func (e *meanEstimator) Fit(X, y mat.Matrix) error {
	r, _ := y.Dims()
	sum := 0.0
	for i := 0; i < r; i++ {
		sum += y.At(i, 0)
	}
	e.mean = sum/float64(r) + e.shift
	e.SetFitted()
	return nil
}

func (e *meanEstimator) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("meanEstimator", "Predict")
	}
	r, _ := X.Dims()
	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		out.Set(i, 0, e.mean)
	}
	return out, nil
}

type meanSpec struct{}

func (meanSpec) Name() string { return "Mean" }

func (meanSpec) ParamNames() []string { return []string{"shift"} }

func (meanSpec) New(params map[string]interface{}) (model.Estimator, error) {
	shift, err := FloatParam(params, "shift", 0)
	if err != nil {
		return nil, err
	}
	return &meanEstimator{shift: shift}, nil
}

func TestNewFiltersParams(t *testing.T) {
	var warned []error
	errors.SetWarningHandler(func(w error) { warned = append(warned, w) })
	defer errors.SetWarningHandler(nil)

	m, err := New(meanSpec{}, map[string]interface{}{
		"shift":   1.5,
		"bogus":   42,
		"ignored": nil,
		"extra":   "x",
	})
	require.NoError(t, err)

	params := m.Params()
	assert.Equal(t, 1.5, params["shift"])
	assert.Equal(t, "Mean", params["model"])
	assert.NotContains(t, params, "bogus")
	assert.NotContains(t, params, "ignored", "nil parameters are dropped silently")

	require.Len(t, warned, 1)
	var dropped *errors.DroppedParamsWarning
	require.True(t, errors.As(warned[0], &dropped))
	assert.Equal(t, "Mean", dropped.Estimator)
	assert.Equal(t, []string{"bogus", "extra"}, dropped.Params, "dropped names are sorted and exclude nils")
}

func TestNewAcceptedParamsOnlyNoWarning(t *testing.T) {
	var warned []error
	errors.SetWarningHandler(func(w error) { warned = append(warned, w) })
	defer errors.SetWarningHandler(nil)

	_, err := New(meanSpec{}, map[string]interface{}{"shift": 0.5})
	require.NoError(t, err)
	assert.Empty(t, warned)
}

func TestModelFitPredict(t *testing.T) {
	m, err := New(meanSpec{}, map[string]interface{}{"shift": 1.0})
	require.NoError(t, err)

	ds := targetDataset(t)
	require.NoError(t, m.Fit(ds))

	pred, err := m.Predict(ds)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, pred.At(0, 0), 1e-12, "mean of 1..3 plus shift")
}

func TestParamHelpers(t *testing.T) {
	params := map[string]interface{}{
		"i":   3,
		"i64": int64(4),
		"f":   2.5,
	}

	i, err := IntParam(params, "i", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	i, err = IntParam(params, "i64", 0)
	require.NoError(t, err)
	assert.Equal(t, 4, i)

	i, err = IntParam(params, "missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, i, "absent key yields the default")

	f, err := FloatParam(params, "f", 0)
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	f, err = FloatParam(params, "i", 0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, f, "ints widen to float")

	i, err = IntParam(params, "f", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, i, "floats truncate to int")

	_, err = IntParam(map[string]interface{}{"s": "x"}, "s", 0)
	assert.Error(t, err)
}

func targetDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	f, err := dataset.NewFrame(
		[]string{"x", "y"}, []string{"r1", "r2", "r3"},
		[]float64{
			10, 1,
			20, 2,
			30, 3,
		},
	)
	require.NoError(t, err)
	ds, err := dataset.New(f, dataset.WithTarget("y"))
	require.NoError(t, err)
	return ds
}
