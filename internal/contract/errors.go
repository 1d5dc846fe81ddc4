package contract

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the engine reports.
type ErrorKind string

const (
	ErrInvalidInput        ErrorKind = "invalid_input"
	ErrInsufficientContext ErrorKind = "insufficient_description"
	ErrDecompositionFailed ErrorKind = "decomposition_failed"
	ErrEstimationFailed    ErrorKind = "estimation_failed"
	ErrPersistenceFailed   ErrorKind = "persistence_failed"
	ErrNotFound            ErrorKind = "not_found"
	ErrProviderUnavailable ErrorKind = "provider_unavailable"
	ErrInternal            ErrorKind = "internal"
)

// EngineError is the error type returned across the service boundary.
type EngineError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// Is matches another *EngineError of the same kind, so callers can write
// errors.Is(err, &EngineError{Kind: ErrNotFound}).
func (e *EngineError) Is(target error) bool {
	t, ok := target.(*EngineError)
	return ok && t.Kind == e.Kind
}

// NewError builds an EngineError. cause may be nil.
func NewError(kind ErrorKind, message string, cause error) *EngineError {
	return &EngineError{Kind: kind, Message: message, Err: cause}
}

// KindOf returns the kind of the first EngineError in err's chain, or
// ErrInternal.
func KindOf(err error) ErrorKind {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return ErrInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ee *EngineError
	return errors.As(err, &ee) && ee.Kind == kind
}
