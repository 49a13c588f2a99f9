package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"sparknest-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadRequestDetails(t *testing.T) {
	cause := errors.New("validation failed")
	err := apperror.BadRequestDetails("Invalid form data", []string{"email"}, cause)

	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, "Invalid form data", err.Error())
	assert.Equal(t, []string{"email"}, err.Details)
	assert.ErrorIs(t, err, cause)
}

func TestAsUnwrapsChain(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", apperror.NotFound("missing"))

	appErr, ok := apperror.As(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Code)

	_, ok = apperror.As(errors.New("plain"))
	assert.False(t, ok)
}

func TestInternalMessage(t *testing.T) {
	err := apperror.InternalMessage("Failed to send message. Please try again.", errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, err.Code)
	assert.Equal(t, "Failed to send message. Please try again.", err.Message)
}
