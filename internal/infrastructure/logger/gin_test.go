package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedRouter(t *testing.T) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	router := gin.New()
	router.Use(GinMiddleware(zapLogger))
	return router, recorded
}

func findEntry(logs []observer.LoggedEntry, message string) *observer.LoggedEntry {
	for i := range logs {
		if logs[i].Message == message {
			return &logs[i]
		}
	}
	return nil
}

func TestGinMiddleware(t *testing.T) {
	router, recorded := newObservedRouter(t)
	router.GET("/bookings", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/bookings?page=2", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	entry := findEntry(recorded.All(), "HTTP request")
	require.NotNil(t, entry)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)

	fields := entry.ContextMap()
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/bookings", fields["path"])
	assert.Equal(t, "page=2", fields["query"])
}

func TestGinMiddleware_IncludesRequestID(t *testing.T) {
	router, recorded := newObservedRouter(t)
	router.GET("/receipts", func(c *gin.Context) {
		ctx, _ := WithRequestID(c.Request.Context(), FromContext(c.Request.Context()), "req-123")
		c.Request = c.Request.WithContext(ctx)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/receipts", nil)
	router.ServeHTTP(w, req)

	entry := findEntry(recorded.All(), "HTTP request")
	require.NotNil(t, entry)
	assert.Equal(t, "req-123", entry.ContextMap()["request_id"])
}

func TestGinMiddleware_LevelsByStatus(t *testing.T) {
	cases := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{"success", http.StatusOK, zapcore.InfoLevel},
		{"client error", http.StatusNotFound, zapcore.WarnLevel},
		{"server error", http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, recorded := newObservedRouter(t)
			router.GET("/status", func(c *gin.Context) {
				c.Status(tc.status)
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/status", nil)
			router.ServeHTTP(w, req)

			entry := findEntry(recorded.All(), "HTTP request")
			require.NotNil(t, entry)
			assert.Equal(t, tc.level, entry.Level)
		})
	}
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	router := gin.New()
	router.Use(Recovery(zapLogger))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/panic", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entry := findEntry(recorded.All(), "Panic recovered")
	require.NotNil(t, entry)
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "/panic", entry.ContextMap()["path"])
}
