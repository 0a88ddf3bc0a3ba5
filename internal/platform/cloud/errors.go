package cloud

import (
	"errors"
	"fmt"
)

// Provider error kinds. All of them are fatal for the call that returned them.
var (
	ErrAuth           = errors.New("cloud credentials rejected")
	ErrQuotaExceeded  = errors.New("cloud quota exceeded")
	ErrInvalidRequest = errors.New("cloud request invalid")
	ErrConflict       = errors.New("cloud resource already exists")
)

// APIError carries the kind of a provider failure next to the SDK error.
// errors.Is matches the kind, errors.As still reaches the SDK type.
type APIError struct {
	Op   string
	Kind error
	Err  error
}

func (e *APIError) Error() string {
	if e.Kind == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the underlying error.
func (e *APIError) Unwrap() []error {
	if e.Kind == nil {
		return []error{e.Err}
	}
	return []error{e.Kind, e.Err}
}

// Wrap returns an APIError for op, or nil when err is nil. kind may be nil for
// unclassified failures.
func Wrap(op string, kind, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{Op: op, Kind: kind, Err: err}
}

// IsFatal reports whether err is a classified provider failure that retrying
// cannot fix.
func IsFatal(err error) bool {
	return errors.Is(err, ErrAuth) ||
		errors.Is(err, ErrQuotaExceeded) ||
		errors.Is(err, ErrInvalidRequest)
}
