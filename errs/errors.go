// Package errs defines sentinel errors shared across wfpipe packages.
//
// Callers wrap these with fmt.Errorf("%w: ...") to attach context (path,
// identifier, fold) and test against them with errors.Is.
package errs

import "errors"

var (
	// ErrNoLayout indicates the dataset root contains neither the samples
	// nor the subpages sentinel file under class 0.
	ErrNoLayout = errors.New("dataset root contains neither samples nor subpages")

	// ErrAmbiguousLayout indicates the dataset root contains both sentinel
	// files; the two directory layouts must never be mixed.
	ErrAmbiguousLayout = errors.New("dataset root contains both samples and subpages")

	// ErrInvalidConfig indicates an invalid component configuration, such as
	// a non-positive feature length or an out-of-range dimension.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownEncoder indicates an encoder kind that no constructor maps to.
	ErrUnknownEncoder = errors.New("unknown encoder kind")

	// ErrNoTimestamp indicates a trace with no parseable timestamp on any
	// line, so no look-back window can be anchored.
	ErrNoTimestamp = errors.New("no parseable timestamp in trace")

	// ErrMissingTable indicates a missing cross-validation table file.
	ErrMissingTable = errors.New("cross-validation table not found")

	// ErrEmptySweep indicates an evaluation over zero predictions; the
	// accuracy denominator would be zero.
	ErrEmptySweep = errors.New("no predictions to evaluate")

	// ErrEmptyPrediction indicates a prediction with an empty probability
	// vector; no class can be selected from it.
	ErrEmptyPrediction = errors.New("prediction has no probabilities")
)
