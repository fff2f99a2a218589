package scope

import (
	"errors"
	"fmt"
)

// Category errors. Every error returned by Scope and Registry matches one
// of these with errors.Is.
var (
	ErrScopeDisposed  = errors.New("scope disposed")
	ErrNilTarget      = errors.New("nil target")
	ErrNilFactory     = errors.New("nil handler factory")
	ErrRegistration   = errors.New("registration failed")
	ErrDeregistration = errors.New("deregistration failed")
	ErrFactory        = errors.New("handler factory failed")
)

// Error describes a failed scope operation. It wraps the collaborator's
// error so callers can inspect both the category and the cause.
type Error struct {
	// Kind is one of the category errors above.
	Kind error

	// Owner is the owning context, empty for a standalone Scope.
	Owner OwnerID

	// EventName is the event the binding was for.
	EventName string

	// Err is the underlying error reported by the target or factory.
	Err error
}

func (e *Error) Error() string {
	prefix := e.Kind.Error()
	if e.Owner != "" {
		prefix = fmt.Sprintf("%s (owner %s)", prefix, e.Owner)
	}
	if e.EventName != "" {
		prefix = fmt.Sprintf("%s: event %q", prefix, e.EventName)
	}
	if e.Err != nil {
		return prefix + ": " + e.Err.Error()
	}
	return prefix
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the category.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}
