// Package errors provides the error taxonomy and warning system shared by
// every tabgo package. Errors are structured types carrying the context a
// caller needs to react programmatically, wrapped with stack traces via
// cockroachdb/errors and marshalable into zerolog events.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("tabgo-warning: %v\n", w)
	}
	// handlerSet records an explicit SetWarningHandler call; such a
	// handler outranks the zerolog sink.
	handlerSet bool
	// zerolog sink, injected lazily to avoid an import cycle with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler replaces the process-wide warning handler. Warnings
// are non-fatal: dropped estimator parameters, silent data conversions
// and similar conditions are routed here instead of failing the call.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {}) // ignore all warnings
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
	handlerSet = handler != nil
}

// SetZerologWarnFunc installs the zerolog-backed warning sink (set by
// pkg/log to avoid a circular import).
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a non-fatal warning. An explicitly set handler wins;
// otherwise the zerolog sink runs when installed, falling back to the
// default handler.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if handlerSet {
		warningHandler(w)
		return
	}
	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// DroppedParamsWarning reports constructor parameters that the wrapped
// estimator does not accept. The parameters are excluded, not rejected:
// parameter-grid sweeps may legitimately mix keys that only apply to some
// configurations.
type DroppedParamsWarning struct {
	Estimator string
	Params    []string
}

func (w *DroppedParamsWarning) Error() string {
	return fmt.Sprintf("the following parameters are not valid for %s and were dropped: %v", w.Estimator, w.Params)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *DroppedParamsWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("estimator", w.Estimator).
		Strs("params", w.Params).
		Str("type", "DroppedParamsWarning")
}

// NewDroppedParamsWarning creates a new DroppedParamsWarning.
func NewDroppedParamsWarning(estimator string, params []string) *DroppedParamsWarning {
	return &DroppedParamsWarning{Estimator: estimator, Params: params}
}

// ConvergenceWarning is raised when an iterative algorithm stops on its
// iteration budget rather than its tolerance.
type ConvergenceWarning struct {
	Algorithm  string
	Iterations int
	Message    string
}

func (w *ConvergenceWarning) Error() string {
	if w.Message != "" {
		return fmt.Sprintf("%s failed to converge after %d iterations: %s", w.Algorithm, w.Iterations, w.Message)
	}
	return fmt.Sprintf("%s failed to converge after %d iterations. Consider increasing max_iter or adjusting parameters.", w.Algorithm, w.Iterations)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *ConvergenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("algorithm", w.Algorithm).
		Int("iterations", w.Iterations).
		Str("message", w.Message).
		Str("type", "ConvergenceWarning")
}

// NewConvergenceWarning creates a new ConvergenceWarning.
func NewConvergenceWarning(algorithm string, iterations int, message string) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Iterations: iterations, Message: message}
}

// DataConversionWarning is raised when input data is coerced implicitly,
// e.g. a non-numeric CSV cell parsed as NaN.
type DataConversionWarning struct {
	FromType string
	ToType   string
	Reason   string
}

func (w *DataConversionWarning) Error() string {
	return fmt.Sprintf("data converted from %s to %s. Reason: %s", w.FromType, w.ToType, w.Reason)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *DataConversionWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("from_type", w.FromType).
		Str("to_type", w.ToType).
		Str("reason", w.Reason).
		Str("type", "DataConversionWarning")
}

// NewDataConversionWarning creates a new DataConversionWarning.
func NewDataConversionWarning(from, to, reason string) *DataConversionWarning {
	return &DataConversionWarning{FromType: from, ToType: to, Reason: reason}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// NotFittedError is returned when Transform, Predict or Score is invoked
// before Fit.
type NotFittedError struct {
	Name   string
	Method string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("tabgo: %s: not fitted yet. Call Fit() before using %s()", e.Name, e.Method)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("name", e.Name).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a new NotFittedError with a stack trace.
func NewNotFittedError(name, method string) error {
	err := &NotFittedError{Name: name, Method: method}
	return errors.WithStack(err)
}

// UnsupportedFormatError is returned when a file path does not point to a
// supported tabular format.
type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("tabgo: unsupported data format: %q (expected a delimited text file such as .csv)", e.Path)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *UnsupportedFormatError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Str("type", "UnsupportedFormatError")
}

// NewUnsupportedFormatError creates a new UnsupportedFormatError with a stack trace.
func NewUnsupportedFormatError(path string) error {
	err := &UnsupportedFormatError{Path: path}
	return errors.WithStack(err)
}

// UnsupportedTargetError is returned when a target specification cannot be
// interpreted, e.g. a named target column absent from the feature table.
type UnsupportedTargetError struct {
	Target string
	Reason string
}

func (e *UnsupportedTargetError) Error() string {
	return fmt.Sprintf("tabgo: unsupported target %q: %s", e.Target, e.Reason)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *UnsupportedTargetError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("target", e.Target).
		Str("reason", e.Reason).
		Str("type", "UnsupportedTargetError")
}

// NewUnsupportedTargetError creates a new UnsupportedTargetError with a stack trace.
func NewUnsupportedTargetError(target, reason string) error {
	err := &UnsupportedTargetError{Target: target, Reason: reason}
	return errors.WithStack(err)
}

// UnsupportedTransformerError is returned when a wrapped value satisfies
// neither the Transformer nor the FitTransformer capability.
type UnsupportedTransformerError struct {
	TypeName string
}

func (e *UnsupportedTransformerError) Error() string {
	return fmt.Sprintf("tabgo: %s has neither Transform nor FitTransform", e.TypeName)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *UnsupportedTransformerError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type_name", e.TypeName).
		Str("type", "UnsupportedTransformerError")
}

// NewUnsupportedTransformerError creates a new UnsupportedTransformerError with a stack trace.
func NewUnsupportedTransformerError(typeName string) error {
	err := &UnsupportedTransformerError{TypeName: typeName}
	return errors.WithStack(err)
}

// InvalidColumnSpecError is returned when a column selection names a
// column that does not exist in the feature table.
type InvalidColumnSpecError struct {
	Column string
}

func (e *InvalidColumnSpecError) Error() string {
	return fmt.Sprintf("tabgo: invalid column spec: column %q not present in the feature table", e.Column)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *InvalidColumnSpecError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("column", e.Column).
		Str("type", "InvalidColumnSpecError")
}

// NewInvalidColumnSpecError creates a new InvalidColumnSpecError with a stack trace.
func NewInvalidColumnSpecError(column string) error {
	err := &InvalidColumnSpecError{Column: column}
	return errors.WithStack(err)
}

// InvalidAxisError is returned for axis values outside {0, 1}.
type InvalidAxisError struct {
	Axis int
}

func (e *InvalidAxisError) Error() string {
	return fmt.Sprintf("tabgo: axis must be 0 (rows) or 1 (columns), got %d", e.Axis)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *InvalidAxisError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("axis", e.Axis).
		Str("type", "InvalidAxisError")
}

// NewInvalidAxisError creates a new InvalidAxisError with a stack trace.
func NewInvalidAxisError(axis int) error {
	err := &InvalidAxisError{Axis: axis}
	return errors.WithStack(err)
}

// InvalidSelectionCriterionError is returned when a feature selector is
// given neither or both of its mutually exclusive selection criteria.
type InvalidSelectionCriterionError struct {
	Reason string
}

func (e *InvalidSelectionCriterionError) Error() string {
	return fmt.Sprintf("tabgo: invalid selection criterion: %s", e.Reason)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *InvalidSelectionCriterionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("reason", e.Reason).
		Str("type", "InvalidSelectionCriterionError")
}

// NewInvalidSelectionCriterionError creates a new InvalidSelectionCriterionError with a stack trace.
func NewInvalidSelectionCriterionError(reason string) error {
	err := &InvalidSelectionCriterionError{Reason: reason}
	return errors.WithStack(err)
}

// KeyNotFoundError is returned when a row or column label requested for
// removal or lookup does not exist.
type KeyNotFoundError struct {
	Kind  string // "row" or "column"
	Label string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("tabgo: %s label %q not found", e.Kind, e.Label)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *KeyNotFoundError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("kind", e.Kind).
		Str("label", e.Label).
		Str("type", "KeyNotFoundError")
}

// NewKeyNotFoundError creates a new KeyNotFoundError with a stack trace.
func NewKeyNotFoundError(kind, label string) error {
	err := &KeyNotFoundError{Kind: kind, Label: label}
	return errors.WithStack(err)
}

// DimensionError reports an input whose shape does not match expectations.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("tabgo: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a new DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError reports an argument whose value is invalid for the operation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("tabgo: %s: %s", e.Op, e.Message)
}

// NewValueError creates a new ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError is a general error raised by an estimator or transformer.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tabgo: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("tabgo: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError creates a new ModelError with a stack trace.
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// Join combines multiple errors into one.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// ===========================================================================
//
//	Common error variables
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an operation receives no data.
	ErrEmptyData = New("empty data")
)
