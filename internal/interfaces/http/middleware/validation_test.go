package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feeSaveRequest struct {
	YearLevel string `json:"year_level" binding:"required"`
	Semester  string `json:"semester" binding:"required"`
}

func TestHandleValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	r := gin.New()
	r.Use(RequestID())
	r.PUT("/save", func(c *gin.Context) {
		var req feeSaveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPut, "/save", strings.NewReader(`{"year_level":"First Year"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "req-val-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "ERR_VALIDATION")
	assert.Contains(t, body, `"field":"semester"`)
	assert.Contains(t, body, "This field is required")
	assert.Contains(t, body, "req-val-1")
}

func TestFormatValidationErrorsNonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(assert.AnError, "req-val-2")

	assert.False(t, resp.Success)
	assert.Empty(t, resp.Error.Details)
	assert.Equal(t, "req-val-2", resp.Error.RequestID)
}
