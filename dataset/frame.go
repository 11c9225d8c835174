package dataset

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/tabgo-ml/tabgo/pkg/errors"
)

// Frame is an ordered float64 table with named columns and labeled rows,
// backed by a gonum dense matrix. Missing values are represented as NaN.
//
// A Frame owns its storage: mutating methods rebuild or overwrite the
// backing matrix and never share it with other frames.
type Frame struct {
	columns []string
	index   []string
	data    *mat.Dense

	colPos map[string]int
	rowPos map[string]int
}

// NewFrame creates a Frame from row-major values of shape
// len(index) × len(columns). A nil values slice allocates zeros.
// Column and row labels must be unique.
func NewFrame(columns, index []string, values []float64) (*Frame, error) {
	r, c := len(index), len(columns)
	if r == 0 || c == 0 {
		return nil, errors.NewValueError("NewFrame", "frame must have at least one row and one column")
	}
	if values != nil && len(values) != r*c {
		return nil, errors.NewDimensionError("NewFrame", r*c, len(values), 0)
	}

	f := &Frame{
		columns: append([]string(nil), columns...),
		index:   append([]string(nil), index...),
		data:    mat.NewDense(r, c, values),
	}
	if err := f.reindex(); err != nil {
		return nil, err
	}
	return f, nil
}

// FrameFromMatrix copies a matrix into a new Frame. Nil columns or index
// default to ordinal labels ("0", "1", ...). Explicit labels must match
// the matrix dimensions.
func FrameFromMatrix(m mat.Matrix, columns, index []string) (*Frame, error) {
	r, c := m.Dims()
	if columns == nil {
		columns = ordinalLabels(c)
	} else if len(columns) != c {
		return nil, errors.NewDimensionError("FrameFromMatrix", c, len(columns), 1)
	}
	if index == nil {
		index = ordinalLabels(r)
	} else if len(index) != r {
		return nil, errors.NewDimensionError("FrameFromMatrix", r, len(index), 0)
	}

	f := &Frame{
		columns: append([]string(nil), columns...),
		index:   append([]string(nil), index...),
		data:    mat.DenseCopyOf(m),
	}
	if err := f.reindex(); err != nil {
		return nil, err
	}
	return f, nil
}

func ordinalLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}
	return labels
}

// reindex rebuilds the label lookup maps, rejecting duplicates.
func (f *Frame) reindex() error {
	f.colPos = make(map[string]int, len(f.columns))
	for i, c := range f.columns {
		if _, dup := f.colPos[c]; dup {
			return errors.NewValueError("Frame", "duplicate column label "+c)
		}
		f.colPos[c] = i
	}
	f.rowPos = make(map[string]int, len(f.index))
	for i, r := range f.index {
		if _, dup := f.rowPos[r]; dup {
			return errors.NewValueError("Frame", "duplicate row label "+r)
		}
		f.rowPos[r] = i
	}
	return nil
}

// Rows returns the number of rows.
func (f *Frame) Rows() int { return len(f.index) }

// Cols returns the number of columns.
func (f *Frame) Cols() int { return len(f.columns) }

// Columns returns a copy of the ordered column labels.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// Index returns a copy of the ordered row labels.
func (f *Frame) Index() []string {
	return append([]string(nil), f.index...)
}

// HasColumn reports whether the column label exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.colPos[name]
	return ok
}

// HasRow reports whether the row label exists.
func (f *Frame) HasRow(label string) bool {
	_, ok := f.rowPos[label]
	return ok
}

// At returns the value at positional indices (i, j).
func (f *Frame) At(i, j int) float64 {
	return f.data.At(i, j)
}

// AtLabel returns the value addressed by row and column label.
func (f *Frame) AtLabel(row, column string) (float64, error) {
	i, ok := f.rowPos[row]
	if !ok {
		return 0, errors.NewKeyNotFoundError("row", row)
	}
	j, ok := f.colPos[column]
	if !ok {
		return 0, errors.NewKeyNotFoundError("column", column)
	}
	return f.data.At(i, j), nil
}

// Column returns a copy of the named column's values.
func (f *Frame) Column(name string) ([]float64, error) {
	j, ok := f.colPos[name]
	if !ok {
		return nil, errors.NewKeyNotFoundError("column", name)
	}
	out := make([]float64, len(f.index))
	for i := range out {
		out[i] = f.data.At(i, j)
	}
	return out, nil
}

// SetColumn overwrites the named column's values in place.
func (f *Frame) SetColumn(name string, values []float64) error {
	j, ok := f.colPos[name]
	if !ok {
		return errors.NewKeyNotFoundError("column", name)
	}
	if len(values) != len(f.index) {
		return errors.NewDimensionError("Frame.SetColumn", len(f.index), len(values), 0)
	}
	for i, v := range values {
		f.data.Set(i, j, v)
	}
	return nil
}

// Row returns a copy of the labeled row's values in column order.
func (f *Frame) Row(label string) ([]float64, error) {
	i, ok := f.rowPos[label]
	if !ok {
		return nil, errors.NewKeyNotFoundError("row", label)
	}
	out := make([]float64, len(f.columns))
	for j := range out {
		out[j] = f.data.At(i, j)
	}
	return out, nil
}

// Select returns a new Frame holding copies of the named columns, in the
// given order, over the same row index.
func (f *Frame) Select(columns ...string) (*Frame, error) {
	cols := make([]int, len(columns))
	for k, name := range columns {
		j, ok := f.colPos[name]
		if !ok {
			return nil, errors.NewKeyNotFoundError("column", name)
		}
		cols[k] = j
	}

	out := mat.NewDense(len(f.index), len(columns), nil)
	for i := 0; i < len(f.index); i++ {
		for k, j := range cols {
			out.Set(i, k, f.data.At(i, j))
		}
	}
	return &Frame{
		columns: append([]string(nil), columns...),
		index:   append([]string(nil), f.index...),
		data:    out,
		colPos:  positions(columns),
		rowPos:  positions(f.index),
	}, nil
}

// DropColumns removes the named columns in place.
func (f *Frame) DropColumns(names ...string) error {
	drop := make(map[int]bool, len(names))
	for _, name := range names {
		j, ok := f.colPos[name]
		if !ok {
			return errors.NewKeyNotFoundError("column", name)
		}
		drop[j] = true
	}
	if len(drop) == len(f.columns) {
		return errors.NewValueError("Frame.DropColumns", "cannot drop every column")
	}

	keep := make([]int, 0, len(f.columns)-len(drop))
	columns := make([]string, 0, cap(keep))
	for j, name := range f.columns {
		if !drop[j] {
			keep = append(keep, j)
			columns = append(columns, name)
		}
	}

	out := mat.NewDense(len(f.index), len(keep), nil)
	for i := 0; i < len(f.index); i++ {
		for k, j := range keep {
			out.Set(i, k, f.data.At(i, j))
		}
	}
	f.columns = columns
	f.data = out
	return f.reindex()
}

// DropRows removes the labeled rows in place.
func (f *Frame) DropRows(labels ...string) error {
	drop := make(map[int]bool, len(labels))
	for _, label := range labels {
		i, ok := f.rowPos[label]
		if !ok {
			return errors.NewKeyNotFoundError("row", label)
		}
		drop[i] = true
	}

	keep := make([]int, 0, len(f.index)-len(drop))
	index := make([]string, 0, cap(keep))
	for i, label := range f.index {
		if !drop[i] {
			keep = append(keep, i)
			index = append(index, label)
		}
	}

	out := mat.NewDense(len(keep), len(f.columns), nil)
	for k, i := range keep {
		for j := range f.columns {
			out.Set(k, j, f.data.At(i, j))
		}
	}
	f.index = index
	f.data = out
	return f.reindex()
}

// Clone returns a deep copy sharing no storage with the receiver.
func (f *Frame) Clone() *Frame {
	return &Frame{
		columns: append([]string(nil), f.columns...),
		index:   append([]string(nil), f.index...),
		data:    mat.DenseCopyOf(f.data),
		colPos:  positions(f.columns),
		rowPos:  positions(f.index),
	}
}

// Matrix exposes the backing matrix as a read-only view. Callers must not
// type-assert and mutate it; use SetColumn or the Drop methods instead.
func (f *Frame) Matrix() mat.Matrix {
	return f.data
}

// rowHasNaN reports whether the row at position i contains a NaN.
func (f *Frame) rowHasNaN(i int) bool {
	for j := range f.columns {
		if math.IsNaN(f.data.At(i, j)) {
			return true
		}
	}
	return false
}

// columnHasNaN reports whether the column at position j contains a NaN.
func (f *Frame) columnHasNaN(j int) bool {
	for i := range f.index {
		if math.IsNaN(f.data.At(i, j)) {
			return true
		}
	}
	return false
}

func positions(labels []string) map[string]int {
	m := make(map[string]int, len(labels))
	for i, l := range labels {
		m[l] = i
	}
	return m
}
