package errors_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	appErrors "Tenure/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsComparesByCode(t *testing.T) {
	cause := errors.New("saldo 10 < 20")
	wrapped := appErrors.ErrInsufficientFunds.
		WithError(cause).
		WithDetails(map[string]interface{}{"required": "20"})

	assert.ErrorIs(t, wrapped, appErrors.ErrInsufficientFunds)
	assert.ErrorIs(t, wrapped, cause)
	assert.NotErrorIs(t, wrapped, appErrors.ErrWalletNotFound)
	assert.ErrorIs(t, fmt.Errorf("apply: %w", wrapped), appErrors.ErrInsufficientFunds)
}

func TestWithDetailsDoesNotMutateSentinel(t *testing.T) {
	clone := appErrors.ErrGoalNotAvailable.WithDetails(map[string]interface{}{"reason": "completed"})

	assert.Equal(t, "completed", clone.Details["reason"])
	assert.Empty(t, appErrors.ErrGoalNotAvailable.Details)
	assert.Nil(t, appErrors.ErrGoalNotAvailable.Err)
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"app error", appErrors.ErrUserNotFound, "USER_NOT_FOUND", http.StatusNotFound},
		{"wrapped app error", fmt.Errorf("x: %w", appErrors.ErrApplyFailed), "APPLY_FAILED", http.StatusInternalServerError},
		{"canceled", context.Canceled, "REQUEST_CANCELED", http.StatusRequestTimeout},
		{"unknown", errors.New("boom"), "UNKNOWN_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := appErrors.FromError(tt.err)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.status, got.StatusCode)
		})
	}
}

func TestParseValidationErrors(t *testing.T) {
	type giftBody struct {
		EmployeeId string `validate:"required"`
		Email      string `validate:"email"`
	}

	err := validator.New().Struct(giftBody{Email: "nope"})
	require.Error(t, err)

	appErr := appErrors.ParseValidationErrors(err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)

	fields, ok := appErr.Details["fields"].([]map[string]string)
	require.True(t, ok)
	require.Len(t, fields, 2)
	assert.Equal(t, "colaborador", fields[0]["field"])
	assert.Equal(t, "colaborador é obrigatório", fields[0]["message"])
	assert.Equal(t, "Email inválido", fields[1]["message"])
}

func TestParseValidationErrorsFallsBackToBadRequest(t *testing.T) {
	appErr := appErrors.ParseValidationErrors(errors.New("unexpected EOF"))

	assert.Equal(t, appErrors.ErrBadRequest.Code, appErr.Code)
	assert.Error(t, appErr.Unwrap())
}
