// Package handlers serves the mock console API on gin.
package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jsamuelsen/console-client/internal/ports"
)

// BuildInfo describes the running binary. Version, Commit and BuildTime are
// injected with -ldflags.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

// NewBuildInfo fills GoVersion from the runtime.
func NewBuildInfo(version, commit, buildTime string) BuildInfo {
	return BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// HealthHandler serves the /-/ probes. They are plain JSON, not envelopes,
// and need no token, so a console client can probe them before signing in.
type HealthHandler struct {
	registry  ports.HealthRegistry
	buildInfo BuildInfo
	started   time.Time
}

// NewHealthHandler creates a HealthHandler. Uptime counts from this call.
func NewHealthHandler(registry ports.HealthRegistry, buildInfo BuildInfo) *HealthHandler {
	return &HealthHandler{registry: registry, buildInfo: buildInfo, started: time.Now()}
}

type livenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime"`
}

// Liveness answers 200 while the process runs.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, livenessResponse{
		Status:  "ok",
		Version: h.buildInfo.Version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
	})
}

// Readiness runs the registered checks and answers 503 unless all pass.
// The body is the registry's HealthResult, the same document consolectl
// ping prints.
func (h *HealthHandler) Readiness(c *gin.Context) {
	result := h.registry.CheckAll(c.Request.Context())

	status := http.StatusOK
	if !result.Healthy() {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, result)
}

// Build returns the build information.
func (h *HealthHandler) Build(c *gin.Context) {
	c.JSON(http.StatusOK, h.buildInfo)
}

// MetricsHandler serves the default Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RegisterRoutes mounts the probes under rg/-.
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	probes := rg.Group("/-")
	for path, handler := range map[string]gin.HandlerFunc{
		"/live":  h.Liveness,
		"/ready": h.Readiness,
		"/build": h.Build,
	} {
		probes.GET(path, handler)
	}
}
