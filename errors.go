package triage

import (
	"errors"
	"fmt"
)

// Sentinel errors for common engine failure conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrNoInputs indicates the input directories contained no finding
	// documents to process.
	ErrNoInputs = errors.New("no input documents")

	// ErrBatchValidation indicates one or more documents failed to parse.
	// The batch halts before any write; nothing is partially produced.
	ErrBatchValidation = errors.New("batch validation failed")

	// ErrStrictConsistency indicates a declared severity disagreed with the
	// band derived from the score while strict mode was enabled.
	ErrStrictConsistency = errors.New("severity inconsistent with score")

	// ErrArtifactWrite indicates the output artifact could not be written.
	// The previous artifact remains untouched.
	ErrArtifactWrite = errors.New("artifact write failed")

	// ErrRowCountMismatch indicates the written artifact's body row count
	// did not equal the record count. This signals a logic bug.
	ErrRowCountMismatch = errors.New("artifact row count mismatch")
)

// Error kinds categorize errors by their type.
const (
	// KindValidation represents errors related to run configuration.
	KindValidation = "validation"

	// KindParse represents per-document intake failures.
	KindParse = "parse"

	// KindConsistency represents severity/score consistency failures.
	KindConsistency = "consistency"

	// KindIO represents errors reading inputs or writing the artifact.
	KindIO = "io"

	// KindInternal represents internal engine errors.
	KindInternal = "internal"
)

// Error is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of
// error.
//
// Error implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
type Error struct {
	// Op is the operation that failed (e.g., "Engine.Run").
	Op string

	// Kind categorizes the error (e.g., KindParse, KindIO).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional),
	// such as the documents that failed and why.
	Context map[string]any
}

// Error implements the error interface, returning a formatted message that
// includes the operation, kind, and underlying error.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("triage: %s: %s", e.Op, e.Kind)
	}
	if len(e.Context) > 0 {
		return fmt.Sprintf("triage: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}
	return fmt.Sprintf("triage: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Error, allowing comparison against
// another *Error by Kind (and Op when the target sets one) or against the
// underlying error chain.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			return t.Op == "" || e.Op == t.Op
		}
		return false
	}
	return errors.Is(e.Err, target)
}

// newError builds a structured engine error.
func newError(op, kind string, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// withContext attaches a context map to the error and returns it.
func (e *Error) withContext(ctx map[string]any) *Error {
	e.Context = ctx
	return e
}
