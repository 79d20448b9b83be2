package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{"not found", ErrCodeNotFound, http.StatusNotFound},
		{"unauthorized", ErrCodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", ErrCodeForbidden, http.StatusForbidden},
		{"role mismatch", ErrCodeRoleMismatch, http.StatusUnauthorized},
		{"validation", ErrCodeValidation, http.StatusBadRequest},
		{"fetch failed", ErrCodeFetchFailed, http.StatusServiceUnavailable},
		{"save aborted", ErrCodeSaveAborted, http.StatusUnprocessableEntity},
		{"invalid amount", ErrCodeInvalidAmount, http.StatusBadRequest},
		{"internal", ErrCodeInternal, http.StatusInternalServerError},
		{"unknown code falls back to 500", "ERR_SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{"bare not found", "NOT_FOUND", ErrCodeNotFound},
		{"bare save aborted", "SAVE_ABORTED", ErrCodeSaveAborted},
		{"bare invalid amount", "INVALID_AMOUNT", ErrCodeInvalidAmount},
		{"bare fetch failed", "FETCH_FAILED", ErrCodeFetchFailed},
		{"already normalized", ErrCodeForbidden, ErrCodeForbidden},
		{"unknown passes through", "SOMETHING_ODD", "SOMETHING_ODD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.code))
		})
	}
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]string{"key": "value"})

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(ErrCodeNotFound, "Resource not found")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Resource not found", resp.Error.Message)
	assert.Empty(t, resp.Error.RequestID)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	requestID := "req-test-123"
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Resource not found", requestID)

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, requestID, resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "lec_fee", Message: "lec_fee must be a valid number"},
		{Field: "program_tagging_id", Message: "program_tagging_id is required"},
	}
	resp := NewValidationErrorResponse("Validation failed", "req-test-456", details)

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-test-456", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "lec_fee", resp.Error.Details[0].Field)
}
