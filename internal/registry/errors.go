package registry

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateName    = errors.New("already exists")
	ErrNotFound         = errors.New("not found")
	ErrUnknownEventType = errors.New("unknown event type")
)

// ValidationError reports a field value that failed its threshold rule (or
// the universal non-empty rule).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func validationErrorf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
