package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/console-client/internal/adapters/http/handlers"
	"github.com/jsamuelsen/console-client/internal/adapters/http/middleware"
	"github.com/jsamuelsen/console-client/internal/platform/telemetry"
	"github.com/jsamuelsen/console-client/internal/ports"
)

// Router defaults.
const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultFaultHold      = time.Minute
	DefaultAdminRole      = "R_SUPER"
	DefaultAPIPrefix      = "/api"
)

// Stores are the backends behind the console API.
type Stores struct {
	Sessions    ports.SessionStore
	Users       ports.UserStore
	Roles       ports.RoleStore
	Departments ports.DepartmentStore
}

// RouterConfig configures SetupRouter.
type RouterConfig struct {
	Logger      *slog.Logger
	ServiceName string
	Stores      Stores

	// Health serves the /-/ probes at the root and under the API prefix.
	Health *handlers.HealthHandler

	// Metrics counts envelopes and injected faults. May be nil.
	Metrics *telemetry.EnvelopeMetrics

	// Faults enables the X-Mock-Fault header on API routes.
	Faults    bool
	FaultHold time.Duration

	Timeout   time.Duration
	AdminRole string
}

// NewDefaultRouterConfig fills in the defaults around stores.
func NewDefaultRouterConfig(logger *slog.Logger, serviceName string, stores Stores) RouterConfig {
	return RouterConfig{
		Logger:      logger,
		ServiceName: serviceName,
		Stores:      stores,
		Timeout:     DefaultRequestTimeout,
		FaultHold:   DefaultFaultHold,
		AdminRole:   DefaultAdminRole,
	}
}

// SetupRouter registers the middleware chain and every console route.
//
// Global middleware, outermost first: recovery, request logger, request and
// correlation IDs, tracing, OTel metrics, access log, envelope metrics.
//
// Routes:
//   - /-/live, /-/ready, /-/build and the same under /api/-/
//   - /metrics (Prometheus)
//   - POST /api/auth/login
//   - /api/user, /api/role, /api/department behind a bearer token
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(),
		middleware.Logger(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.ServerMiddleware(cfg.ServiceName, middleware.HeaderMockFault)...)
	engine.Use(
		middleware.Logging("/metrics"),
		middleware.Envelopes(cfg.Metrics),
	)

	engine.GET("/metrics", gin.WrapH(handlers.MetricsHandler()))

	if cfg.Health != nil {
		cfg.Health.RegisterRoutes(&engine.RouterGroup)
	}

	api := engine.Group(DefaultAPIPrefix, middleware.RequestDeadline(cfg.Timeout))

	if cfg.Faults {
		api.Use(middleware.Faults(cfg.Metrics, cfg.FaultHold))
	}

	if cfg.Health != nil {
		cfg.Health.RegisterRoutes(api)
	}

	handlers.NewAuthHandler(cfg.Stores.Sessions).RegisterRoutes(api)

	secured := api.Group("", middleware.RequireBearer(cfg.Stores.Sessions))

	adminRole := cfg.AdminRole
	if adminRole == "" {
		adminRole = DefaultAdminRole
	}

	handlers.NewUserHandler(cfg.Stores.Users).RegisterRoutes(secured, adminRole)
	handlers.NewRoleHandler(cfg.Stores.Roles).RegisterRoutes(secured)
	handlers.NewDepartmentHandler(cfg.Stores.Departments).RegisterRoutes(secured)
}
