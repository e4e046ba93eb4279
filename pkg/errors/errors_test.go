package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(cause, "INTERNAL_ERROR", http.StatusInternalServerError, "failed to save")

	assert.Equal(t, "failed to save: disk full", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestFromErrorUnwrapsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", Clone(ErrScoreOutOfRange, ""))

	typed := FromError(wrapped)
	require.NotNil(t, typed)
	assert.Equal(t, "SCORE_OUT_OF_RANGE", typed.Code)
	assert.Equal(t, http.StatusBadRequest, typed.Status)
}

func TestFromErrorDefaultsToInternal(t *testing.T) {
	typed := FromError(errors.New("something broke"))
	require.NotNil(t, typed)
	assert.Equal(t, ErrInternal.Code, typed.Code)
	assert.Equal(t, http.StatusInternalServerError, typed.Status)

	assert.Nil(t, FromError(nil))
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrNotFound, "subject not found")

	assert.Equal(t, "subject not found", clone.Message)
	assert.Equal(t, "resource not found", ErrNotFound.Message)
	assert.Equal(t, ErrNotFound.Code, clone.Code)
}
