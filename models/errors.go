package models

import "fmt"

// Error codes for run-fatal failures. Per-field and per-record failures are
// absorbed inside the extractor and never surface as errors.
const (
	CodeSessionStart = "SESSION_START_FAILED"
	CodeBlocked      = "BLOCKED"
	CodeNetwork      = "NETWORK_FAILED"
	CodeNavTimeout   = "NAV_TIMEOUT"
)

// RunError is the internal error type carrying an error code. It implements
// the error interface and supports error wrapping via Unwrap.
type RunError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *RunError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// NewRunError creates a new RunError.
func NewRunError(code, message string, err error) *RunError {
	return &RunError{Code: code, Message: message, Err: err}
}
