package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError(t *testing.T) {
	wrapped := fmt.Errorf("settle due: %w", NewNotFoundError("Due"))
	appErr := GetAppError(wrapped)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "Due not found", appErr.Message)
	assert.True(t, IsNotFound(wrapped))

	plain := GetAppError(errors.New("database is locked"))
	assert.Equal(t, http.StatusInternalServerError, plain.Code)
	assert.Equal(t, "database is locked", plain.Message)
	assert.False(t, IsAppError(errors.New("x")))
}
