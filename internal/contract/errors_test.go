package contract

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngineError_Message(t *testing.T) {
	err := NewError(ErrInvalidInput, "title must be at least 5 characters", nil)
	assert.Equal(t, "invalid_input: title must be at least 5 characters", err.Error())

	wrapped := NewError(ErrPersistenceFailed, "saving estimate", errors.New("disk full"))
	assert.Equal(t, "persistence_failed: saving estimate: disk full", wrapped.Error())
}

func TestEngineError_UnwrapAndKind(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("outer: %w", NewError(ErrNotFound, "issue 9", cause))

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, &EngineError{Kind: ErrNotFound})
	assert.NotErrorIs(t, err, &EngineError{Kind: ErrInvalidInput})
	assert.Equal(t, ErrNotFound, KindOf(err))
	assert.True(t, IsKind(err, ErrNotFound))
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, ErrInternal, KindOf(errors.New("plain")))
	assert.False(t, IsKind(nil, ErrNotFound))
}

func TestErrorKinds_AreDistinct(t *testing.T) {
	kinds := []ErrorKind{
		ErrInvalidInput, ErrInsufficientContext, ErrDecompositionFailed,
		ErrEstimationFailed, ErrPersistenceFailed, ErrNotFound, ErrInternal,
	}
	seen := make(map[ErrorKind]bool)
	for _, k := range kinds {
		assert.False(t, seen[k], "duplicate kind %s", k)
		seen[k] = true
	}
}

func TestFailure(t *testing.T) {
	r := Failure(ErrEstimationFailed, "model returned no estimates")
	assert.False(t, r.Success)
	assert.Equal(t, ErrEstimationFailed, r.Error)
	assert.Equal(t, "model returned no estimates", r.Message)
}
