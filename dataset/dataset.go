// Package dataset provides the labeled feature/target container that
// flows through every pipeline stage. A Dataset couples a feature frame
// X with an optional target frame Y sharing the same row index, and
// optionally an immutable snapshot of the data as ingested.
package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tabgo-ml/tabgo/pkg/errors"
)

// Dataset is the unit of state transformations and models operate on.
//
// X and Y always share an identical row index: row removal applies to
// both atomically, column removal only to X. Raw, when retained, is
// never touched by later operations.
type Dataset struct {
	X   *Frame
	Y   *Frame // nil when no target is attached
	Raw *Frame // nil unless requested at construction
}

type config struct {
	targetCols  []string
	targetFrame *Frame
	storeRaw    bool

	// CSV ingestion settings.
	separator   rune
	indexColumn string
}

// Option configures Dataset construction.
type Option func(*config)

// WithTarget excises the named columns from the feature table into the
// target table, in the given order.
func WithTarget(names ...string) Option {
	return func(c *config) { c.targetCols = names }
}

// WithTargetFrame attaches a row-aligned frame as the target without
// excising anything from the feature table. No overlap check between the
// frame's columns and X is performed; alignment is the caller's
// responsibility.
func WithTargetFrame(f *Frame) Option {
	return func(c *config) { c.targetFrame = f }
}

// WithRaw stores an immutable snapshot of the ingested data in Raw.
func WithRaw() Option {
	return func(c *config) { c.storeRaw = true }
}

// WithSeparator sets the field separator for delimited-file ingestion.
// The default is ','.
func WithSeparator(r rune) Option {
	return func(c *config) { c.separator = r }
}

// WithIndexColumn names the column holding row labels for delimited-file
// ingestion. Without it rows get ordinal labels.
func WithIndexColumn(name string) Option {
	return func(c *config) { c.indexColumn = name }
}

// New constructs a Dataset from an in-memory frame. The frame is copied;
// later mutation of the argument does not affect the Dataset.
func New(frame *Frame, opts ...Option) (*Dataset, error) {
	cfg := applyOptions(opts)
	return assemble(frame.Clone(), cfg)
}

// FromMatrix constructs a Dataset from a numeric matrix. Nil columns or
// index default to ordinal labels; explicit labels must match the matrix
// shape.
func FromMatrix(m mat.Matrix, columns, index []string, opts ...Option) (*Dataset, error) {
	cfg := applyOptions(opts)
	frame, err := FrameFromMatrix(m, columns, index)
	if err != nil {
		return nil, err
	}
	return assemble(frame, cfg)
}

func applyOptions(opts []Option) *config {
	cfg := &config{separator: ','}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// assemble wires target excision and the raw snapshot around an already
// ingested feature frame. The frame is owned by the new Dataset.
func assemble(frame *Frame, cfg *config) (*Dataset, error) {
	ds := &Dataset{X: frame}

	if cfg.storeRaw {
		ds.Raw = frame.Clone()
	}

	switch {
	case cfg.targetCols != nil && cfg.targetFrame != nil:
		return nil, errors.NewUnsupportedTargetError("", "WithTarget and WithTargetFrame are mutually exclusive")
	case cfg.targetCols != nil:
		y, err := frame.Select(cfg.targetCols...)
		if err != nil {
			var notFound *errors.KeyNotFoundError
			if errors.As(err, &notFound) {
				return nil, errors.NewUnsupportedTargetError(notFound.Label, "target column not present in the data")
			}
			return nil, err
		}
		if err := frame.DropColumns(cfg.targetCols...); err != nil {
			return nil, err
		}
		ds.Y = y
	case cfg.targetFrame != nil:
		ds.Y = cfg.targetFrame.Clone()
	}

	return ds, nil
}

// Drop removes the given row labels from both X and Y, and the given
// column labels from X only. It mutates in place and returns the same
// Dataset for chaining. An unknown label fails the call before anything
// is removed from the other table.
func (d *Dataset) Drop(rows, columns []string) (*Dataset, error) {
	if len(rows) > 0 {
		if err := d.X.DropRows(rows...); err != nil {
			return nil, err
		}
		if d.Y != nil {
			if err := d.Y.DropRows(rows...); err != nil {
				return nil, err
			}
		}
	}
	if len(columns) > 0 {
		if err := d.X.DropColumns(columns...); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// DropNA removes missing values. Axis 0 drops every row that contains a
// NaN anywhere in X or, when a target is attached, in Y, keeping the two
// row indices identical. Axis 1 drops the X columns containing a NaN and
// leaves Y alone.
func (d *Dataset) DropNA(axis int) (*Dataset, error) {
	switch axis {
	case 0:
		var bad []string
		for i, label := range d.X.index {
			if d.X.rowHasNaN(i) {
				bad = append(bad, label)
				continue
			}
			if d.Y != nil && d.Y.rowHasNaN(i) {
				bad = append(bad, label)
			}
		}
		if len(bad) > 0 {
			return d.Drop(bad, nil)
		}
	case 1:
		var bad []string
		for j, name := range d.X.columns {
			if d.X.columnHasNaN(j) {
				bad = append(bad, name)
			}
		}
		if len(bad) > 0 {
			return d.Drop(nil, bad)
		}
	default:
		return nil, errors.NewInvalidAxisError(axis)
	}
	return d, nil
}

// Copy returns a deep copy. Mutating the copy's X, Y or Raw never
// affects the original.
func (d *Dataset) Copy() *Dataset {
	out := &Dataset{X: d.X.Clone()}
	if d.Y != nil {
		out.Y = d.Y.Clone()
	}
	if d.Raw != nil {
		out.Raw = d.Raw.Clone()
	}
	return out
}

// YMatrix returns the target matrix, or nil when no target is attached.
// Estimator fitting passes this straight through as the y argument.
func (d *Dataset) YMatrix() mat.Matrix {
	if d.Y == nil {
		return nil
	}
	return d.Y.Matrix()
}
