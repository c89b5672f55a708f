package intake

import (
	"errors"
	"fmt"
)

// Sentinel errors for the typed parse failures a finding document can
// produce. These can be matched with errors.Is() through a ParseError.
var (
	// ErrEmptyDocument indicates the document contains no non-empty lines.
	ErrEmptyDocument = errors.New("empty document")

	// ErrMissingTitle indicates no usable title survived markup stripping.
	ErrMissingTitle = errors.New("missing title")

	// ErrMissingScore indicates no score declaration line was found.
	ErrMissingScore = errors.New("missing score declaration")

	// ErrScoreOutOfRange indicates a score declaration outside the 1-10 range.
	ErrScoreOutOfRange = errors.New("score out of range")

	// ErrMalformedSeverityLine indicates a severity declaration that could
	// not be parsed into a known severity band.
	ErrMalformedSeverityLine = errors.New("malformed severity line")

	// ErrMissingImpact indicates no business-impact statement could be
	// extracted, even after all fallbacks.
	ErrMissingImpact = errors.New("missing business impact")
)

// ParseError is a hard, per-document intake failure. It wraps one of the
// sentinel errors above with the path of the offending document, making it
// compatible with errors.Is() and errors.As().
type ParseError struct {
	// Path is the source document that failed to parse.
	Path string

	// Err is the underlying sentinel error.
	Err error

	// Detail carries extra context such as the offending value (optional).
	Detail string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("intake: %s: %v: %s", e.Path, e.Err, e.Detail)
	}
	return fmt.Sprintf("intake: %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// newParseError builds a ParseError for the given document and sentinel.
func newParseError(path string, sentinel error, detail string) *ParseError {
	return &ParseError{Path: path, Err: sentinel, Detail: detail}
}
