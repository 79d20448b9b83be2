package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("request_id", "req-test")
		c.Next()
	})
	r.Use(GinMiddleware(logger))
	return r
}

func TestGinMiddlewareLogsRequest(t *testing.T) {
	logger, logs := observedLogger()
	r := newTestRouter(logger)
	r.GET("/curricula", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/curricula?active=1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zap.InfoLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "req-test", fields["request_id"])
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/curricula", fields["path"])
	assert.Equal(t, "active=1", fields["query"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
}

func TestGinMiddlewareLogLevelByStatus(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{status: http.StatusBadRequest, want: "warn"},
		{status: http.StatusInternalServerError, want: "error"},
	}

	for _, tt := range tests {
		logger, logs := observedLogger()
		r := newTestRouter(logger)
		status := tt.status
		r.GET("/x", func(c *gin.Context) {
			c.Status(status)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, tt.want, logs.All()[0].Level.String())
	}
}

func TestGinMiddlewarePropagatesRequestContext(t *testing.T) {
	logger, _ := observedLogger()
	r := newTestRouter(logger)

	var seen string
	r.GET("/ctx", func(c *gin.Context) {
		seen = GetRequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ctx", nil))

	assert.Equal(t, "req-test", seen)
}

func TestRecoveryMiddleware(t *testing.T) {
	logger, logs := observedLogger()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(logger))
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Panic recovered", logs.All()[0].Message)
}

func TestGetGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	// Falls back to a no-op logger when none was stored.
	assert.NotNil(t, GetGinLogger(c))

	logger, _ := observedLogger()
	c.Set("logger", logger)
	assert.Same(t, logger, GetGinLogger(c))
}
