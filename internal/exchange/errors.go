package exchange

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoResume matches domain failures reporting that the user has no resume
// on file. Use errors.Is.
var ErrNoResume = errors.New("no resume on file")

// ErrorKind classifies an exchange failure.
type ErrorKind string

// Failure kinds.
const (
	KindTransport ErrorKind = "transport"
	KindDomain    ErrorKind = "domain"
	KindMalformed ErrorKind = "malformed"
)

// Error is the single failure type returned by every Client operation.
type Error struct {
	Op     string
	Kind   ErrorKind
	Status int
	Reason string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Op, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNoResume) see through decoded domain reasons.
func (e *Error) Is(target error) bool {
	return target == ErrNoResume && e.Kind == KindDomain && isNoResumeReason(e.Reason)
}

func isNoResumeReason(reason string) bool {
	return strings.Contains(strings.ToLower(reason), "no resume")
}

// Reason returns the human-readable reason carried by err.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var xe *Error
	if errors.As(err, &xe) && xe.Reason != "" {
		return xe.Reason
	}
	return err.Error()
}
