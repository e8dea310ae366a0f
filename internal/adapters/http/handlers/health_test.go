package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/console-client/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string                { return s.name }
func (s stubChecker) Check(context.Context) error { return s.err }

func newRegistry(t *testing.T, checkers ...ports.HealthChecker) ports.HealthRegistry {
	t.Helper()

	registry := ports.NewHealthRegistry()
	for _, c := range checkers {
		require.NoError(t, registry.Register(c))
	}

	return registry
}

func serve(handler gin.HandlerFunc, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)

	handler(c)

	return w
}

func TestNewBuildInfo(t *testing.T) {
	bi := NewBuildInfo("1.0.0", "abc123", "2026-01-15T10:00:00Z")

	assert.Equal(t, "1.0.0", bi.Version)
	assert.Equal(t, "abc123", bi.Commit)
	assert.Equal(t, "2026-01-15T10:00:00Z", bi.BuildTime)
	assert.Equal(t, runtime.Version(), bi.GoVersion)
}

func TestHealthHandler_Liveness(t *testing.T) {
	handler := NewHealthHandler(newRegistry(t), BuildInfo{Version: "1.0.0"})

	w := serve(handler.Liveness, "/-/live")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp livenessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Equal(t, "0s", resp.Uptime)
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name           string
		checkers       []ports.HealthChecker
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "all checks healthy",
			checkers: []ports.HealthChecker{
				stubChecker{name: "memory"},
				stubChecker{name: "console"},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"healthy"`,
		},
		{
			name: "one check unhealthy",
			checkers: []ports.HealthChecker{
				stubChecker{name: "memory"},
				stubChecker{name: "console", err: errors.New("connection refused")},
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "connection refused",
		},
		{
			name:           "no checks registered",
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"healthy"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(newRegistry(t, tt.checkers...), BuildInfo{})

			w := serve(handler.Readiness, "/-/ready")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			var result ports.HealthResult
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
			assert.Len(t, result.Checks, len(tt.checkers))
		})
	}
}

func TestHealthHandler_Build(t *testing.T) {
	buildInfo := BuildInfo{
		Version:   "1.2.3",
		Commit:    "def456",
		BuildTime: "2026-02-01T12:00:00Z",
		GoVersion: "go1.25.7",
	}

	handler := NewHealthHandler(newRegistry(t), buildInfo)

	w := serve(handler.Build, "/-/build")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp BuildInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, buildInfo, resp)
}

func TestMetricsHandler(t *testing.T) {
	w := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestHealthHandler_RegisterRoutes(t *testing.T) {
	handler := NewHealthHandler(newRegistry(t), BuildInfo{Version: "test"})

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api"))

	routeMap := make(map[string]bool)
	for _, r := range router.Routes() {
		routeMap[r.Method+" "+r.Path] = true
	}

	for _, expected := range []string{"GET /api/-/live", "GET /api/-/ready", "GET /api/-/build"} {
		assert.True(t, routeMap[expected], "missing route: %s", expected)
	}
}
