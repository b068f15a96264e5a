// AngelaMos | 2026
// errors_test.go

package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorUnwrap(t *testing.T) {
	appErr := NotActiveError()

	assert.True(t, errors.Is(appErr, ErrNotActive))
	assert.Equal(t, http.StatusForbidden, appErr.Status)
	assert.Equal(t, "This account is not yet active.", appErr.Message)
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", BadCredentialsError())

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "BAD_CREDENTIALS", appErr.Code)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestErrorHelperStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
	}{
		{"unauthorized", UnauthorizedError("Access denied"), http.StatusUnauthorized},
		{"token invalid", TokenInvalidError(), http.StatusUnauthorized},
		{"forbidden", ForbiddenError("nope"), http.StatusForbidden},
		{"not found", NotFoundError("User not found."), http.StatusNotFound},
		{"duplicate email", DuplicateEmailError(), http.StatusConflict},
		{"invalid code", InvalidCodeError(), http.StatusNotFound},
		{"bad request", BadRequestError("bad"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
		})
	}
}
