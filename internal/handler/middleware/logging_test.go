//go:build unit

package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"slotbook/internal/domain/user"
	"slotbook/internal/pkg/config"
	"slotbook/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(level string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := newLogger(config.LogConfig{Level: level, TimeZone: "UTC", TimeFormat: "2006-01-02 15:04:05"}, &buf)
	return l, &buf
}

func TestLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	businessID := uuid.New()

	newRouter := func(l *Logger) *gin.Engine {
		r := gin.New()
		r.Use(l.LoggingMiddleware())
		r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
		r.GET("/api/bookings/:id", func(c *gin.Context) {
			c.Set(ctxPrincipalKey, &usecase.Principal{UserID: businessID, Role: user.RoleBusinessOwner})
			c.JSON(http.StatusNotFound, gin.H{"error": "missing"})
		})
		return r
	}

	t.Run("logs route template, business and warn level for 4xx", func(t *testing.T) {
		l, buf := newTestLogger("info")
		rec := httptest.NewRecorder()
		newRouter(l).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bookings/abc", nil))

		line := buf.String()
		assert.Contains(t, line, "level=WARN")
		assert.Contains(t, line, "route=/api/bookings/:id")
		assert.Contains(t, line, "business_id="+businessID.String())
		assert.Contains(t, line, "status_code=404")
		assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
	})

	t.Run("health checks only show at debug", func(t *testing.T) {
		l, buf := newTestLogger("info")
		newRouter(l).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Empty(t, buf.String())

		l, buf = newTestLogger("debug")
		newRouter(l).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Contains(t, buf.String(), "route=/health")
	})

	t.Run("unknown routes are grouped", func(t *testing.T) {
		l, buf := newTestLogger("info")
		newRouter(l).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Contains(t, buf.String(), "route=unmatched")
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l, _ := newTestLogger("error")

	var seen string
	r := gin.New()
	r.Use(l.LoggingMiddleware())
	r.GET("/", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusNoContent)
	})

	serve := func(inbound string) string {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if inbound != "" {
			req.Header.Set(requestIDHeader, inbound)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, seen, rec.Header().Get(requestIDHeader))
		return seen
	}

	assert.Equal(t, "edge-42.a_b", serve("edge-42.a_b"), "a proxy id is kept")

	generated := serve("")
	assert.Regexp(t, `^\d{14}-[0-9a-f]{8}$`, generated)
	assert.NotEqual(t, generated, serve(""))

	for _, bad := range []string{"has space", "semi;colon", strings.Repeat("x", maxInboundRequestID+1)} {
		assert.NotEqual(t, bad, serve(bad), "rejected inbound id %q", bad)
	}
}

func TestRequestLogLevel(t *testing.T) {
	cases := []struct {
		route  string
		status int
		want   slog.Level
	}{
		{"/api/bookings", http.StatusOK, slog.LevelInfo},
		{"/health", http.StatusOK, slog.LevelDebug},
		{"/health", http.StatusServiceUnavailable, slog.LevelError},
		{"/api/services", http.StatusConflict, slog.LevelWarn},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, requestLogLevel(tc.route, tc.status), "%s %d", tc.route, tc.status)
	}
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	l, buf := newTestLogger("shouty")
	l.GetSlogLogger().Debug("hidden")
	l.GetSlogLogger().Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
