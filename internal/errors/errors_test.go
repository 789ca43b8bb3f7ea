package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/leitnerbox/internal/errors"
	"github.com/vytor/leitnerbox/internal/leitner"
	"github.com/vytor/leitnerbox/internal/quiz"
)

func TestAppError_Error(t *testing.T) {
	err := errors.NewNotFoundError("card", "abc")
	assert.Equal(t, "NOT_FOUND: card not found: abc", err.Error())

	wrapped := errors.NewInternalError(fmt.Errorf("disk full"))
	assert.Contains(t, wrapped.Error(), "disk full")
	assert.Equal(t, "disk full", stderrors.Unwrap(wrapped).Error())
}

func TestFromDomain(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{
			name:   "invalid session size",
			err:    fmt.Errorf("start: %w", leitner.ErrInvalidSessionSize),
			code:   errors.ErrCodeValidation,
			status: http.StatusBadRequest,
		},
		{
			name:   "invalid record",
			err:    leitner.ErrInvalidRecord,
			code:   errors.ErrCodeValidation,
			status: http.StatusBadRequest,
		},
		{
			name:   "malformed choice",
			err:    quiz.ErrMalformedChoice,
			code:   errors.ErrCodeValidation,
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "desync is internal",
			err:    fmt.Errorf("rebalance: %w", leitner.ErrCardBoxDesync),
			code:   errors.ErrCodeInternal,
			status: http.StatusInternalServerError,
		},
		{
			name:   "app error passes through",
			err:    errors.NewConflictError("busy"),
			code:   errors.ErrCodeConflict,
			status: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := errors.FromDomain(tt.err)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.status, appErr.Status)
		})
	}

	assert.Nil(t, errors.FromDomain(nil))
}
