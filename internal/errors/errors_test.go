package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnavailableError_HidesCause(t *testing.T) {
	cause := stderrors.New("pq: relation quiz_results does not exist")
	err := NewUnavailableError("stats", cause)

	assert.Equal(t, "stats unavailable", err.Message)
	assert.Equal(t, http.StatusServiceUnavailable, err.Status)
	assert.NotContains(t, err.Message, "quiz_results")
	assert.ErrorIs(t, err, cause)
}

func TestAs_FindsWrappedAppError(t *testing.T) {
	wrapped := fmt.Errorf("submit: %w", NewValidationError("user_id", "required"))

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeValidation, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)

	_, ok = As(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestAppError_ErrorString(t *testing.T) {
	assert.Equal(t, "UNAUTHORIZED: unauthorized", NewUnauthorizedError().Error())
	assert.Contains(t, NewInternalError(stderrors.New("disk")).Error(), "(disk)")
}
