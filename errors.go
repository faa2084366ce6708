package webform

import "fmt"

// FormatError describes a violation of the urlencoded or multipart wire
// format: a boundary line that does not match, a part without a
// Content-Disposition header, unexpected bytes after a part body, a
// malformed Content-Length, or an invalid filename.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "webform: malformed body: " + e.Reason
}

func formatErrf(format string, args ...interface{}) error {
	return &FormatError{Reason: fmt.Sprintf(format, args...)}
}

// LimitError is returned when a boundary or header line exceeds the
// configured maximum line length. It indicates the input was abandoned
// rather than buffered without bound.
type LimitError struct {
	Limit int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("webform: line exceeds %d byte limit", e.Limit)
}

// readErr wraps a failure of the underlying body stream so that callers can
// reach the original error with errors.Is and errors.As.
func readErr(err error) error {
	return fmt.Errorf("webform: read body: %w", err)
}
