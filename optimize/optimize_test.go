package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabgo-ml/tabgo/dataset"
	"github.com/tabgo-ml/tabgo/pkg/errors"
)

// fakeTask scores a deterministic function of its parameters so that
// sequential and parallel sweeps can be compared exactly.
type fakeTask struct {
	params map[string]interface{}
	fitted bool
}

func (t *fakeTask) Fit(ds *dataset.Dataset) error {
	if t.params["a"].(int) < 0 {
		return errors.NewValueError("fakeTask.Fit", "negative a")
	}
	t.fitted = true
	return nil
}

func (t *fakeTask) Score(ds *dataset.Dataset) (map[string]float64, error) {
	a := float64(t.params["a"].(int))
	b := t.params["b"].(float64)
	return map[string]float64{
		"Sum":     a + b,
		"Product": a * b,
	}, nil
}

func (t *fakeTask) Params() map[string]interface{} {
	return t.params
}

func fakeFactory(params map[string]interface{}) (Task, error) {
	return &fakeTask{params: params}, nil
}

func sweepDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	f, err := dataset.NewFrame([]string{"x"}, []string{"r1", "r2"}, []float64{1, 2})
	require.NoError(t, err)
	ds, err := dataset.New(f)
	require.NoError(t, err)
	return ds
}

func TestGridEnumerationOrder(t *testing.T) {
	opt, err := New(fakeFactory,
		Axis{Name: "a", Values: []interface{}{1, 2}},
		Axis{Name: "b", Values: []interface{}{0.1, 0.2, 0.3}},
	)
	require.NoError(t, err)

	grid := opt.Grid()
	require.Len(t, grid, 6)

	want := []map[string]interface{}{
		{"a": 1, "b": 0.1},
		{"a": 1, "b": 0.2},
		{"a": 1, "b": 0.3},
		{"a": 2, "b": 0.1},
		{"a": 2, "b": 0.2},
		{"a": 2, "b": 0.3},
	}
	for i, task := range grid {
		assert.Equal(t, want[i], task.Params(), "grid point %d", i)
	}
}

func TestNewValidatesAxes(t *testing.T) {
	_, err := New(fakeFactory)
	assert.Error(t, err, "no axes")

	_, err = New(fakeFactory, Axis{Name: "a", Values: nil})
	assert.Error(t, err, "empty axis")
}

func TestRunSequential(t *testing.T) {
	opt, err := New(fakeFactory,
		Axis{Name: "a", Values: []interface{}{1, 2}},
		Axis{Name: "b", Values: []interface{}{0.5}},
	)
	require.NoError(t, err)

	results, err := opt.Run(sweepDataset(t))
	require.NoError(t, err)
	require.Equal(t, 2, results.Len())

	assert.Equal(t, []string{"a", "b", "Product", "Sum"}, results.Columns(),
		"axis columns first, score columns sorted")

	sum, ok := results.Float(1, "Sum")
	require.True(t, ok)
	assert.InDelta(t, 2.5, sum, 1e-12)

	for _, task := range opt.Grid() {
		assert.True(t, task.(*fakeTask).fitted, "sequential runs fit the grid tasks in place")
	}
}

func TestRunParallelMatchesSequential(t *testing.T) {
	ds := sweepDataset(t)
	axes := []Axis{
		{Name: "a", Values: []interface{}{1, 2, 3}},
		{Name: "b", Values: []interface{}{0.25, 0.5, 0.75, 1.0}},
	}

	seq, err := New(fakeFactory, axes...)
	require.NoError(t, err)
	seqResults, err := seq.Run(ds)
	require.NoError(t, err)

	par, err := New(fakeFactory, axes...)
	require.NoError(t, err)
	parResults, err := par.Run(ds, WithNJobs(4))
	require.NoError(t, err)

	require.Equal(t, seqResults.Len(), parResults.Len())
	assert.Equal(t, seqResults.Columns(), parResults.Columns())
	for i := 0; i < seqResults.Len(); i++ {
		assert.Equal(t, seqResults.Row(i), parResults.Row(i), "row %d", i)
	}
}

func TestRunParallelDoesNotFitGridTasks(t *testing.T) {
	opt, err := New(fakeFactory,
		Axis{Name: "a", Values: []interface{}{1, 2}},
		Axis{Name: "b", Values: []interface{}{0.5}},
	)
	require.NoError(t, err)

	_, err = opt.Run(sweepDataset(t), WithNJobs(2))
	require.NoError(t, err)

	for _, task := range opt.Grid() {
		assert.False(t, task.(*fakeTask).fitted, "parallel runs execute worker-local instances")
	}
}

func TestRunContinuesPastFailures(t *testing.T) {
	opt, err := New(fakeFactory,
		Axis{Name: "a", Values: []interface{}{-1, 1}},
		Axis{Name: "b", Values: []interface{}{0.5}},
	)
	require.NoError(t, err)

	results, err := opt.Run(sweepDataset(t))
	require.Error(t, err, "per-point failures are reported")
	require.NotNil(t, results, "the table still covers every point")
	require.Equal(t, 2, results.Len())

	_, ok := results.Float(0, "Sum")
	assert.False(t, ok, "failed point carries no scores")
	a, ok := results.Value(0, "a")
	require.True(t, ok, "failed point keeps its parameter columns")
	assert.Equal(t, -1, a)

	sum, ok := results.Float(1, "Sum")
	require.True(t, ok)
	assert.InDelta(t, 1.5, sum, 1e-12)

	var valErr *errors.ValueError
	assert.True(t, errors.As(err, &valErr), "the joined error preserves the cause")
}

func TestRunRecoversPanics(t *testing.T) {
	factory := func(params map[string]interface{}) (Task, error) {
		return &panickyTask{params: params}, nil
	}
	opt, err := New(factory, Axis{Name: "a", Values: []interface{}{1}})
	require.NoError(t, err)

	results, err := opt.Run(sweepDataset(t))
	require.Error(t, err)
	require.Equal(t, 1, results.Len())

	var panicErr *errors.PanicError
	assert.True(t, errors.As(err, &panicErr))
}

type panickyTask struct {
	params map[string]interface{}
}

func (t *panickyTask) Fit(ds *dataset.Dataset) error { panic("backend blew up") }

func (t *panickyTask) Score(ds *dataset.Dataset) (map[string]float64, error) {
	return nil, nil
}

func (t *panickyTask) Params() map[string]interface{} { return t.params }
