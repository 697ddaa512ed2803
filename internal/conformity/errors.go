package conformity

import (
	"errors"
	"fmt"
)

// Sentinel causes for scan failures. Callers match with errors.Is.
var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrTemplateRejected     = errors.New("template rejected")
	ErrServiceUnavailable   = errors.New("service unavailable")
	ErrTimeout              = errors.New("request timed out")
)

// ScanError describes a failed scan request. Status is the HTTP status
// code when one was received, zero for transport-level failures.
type ScanError struct {
	Status int
	Detail string
	cause  error
}

func (e *ScanError) Error() string {
	msg := e.cause.Error()
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	return msg
}

func (e *ScanError) Unwrap() error {
	return e.cause
}
