//go:build integration

package integration

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/console-client/internal/adapters/clients"
	"github.com/jsamuelsen/console-client/internal/adapters/clients/acl"
	consolehttp "github.com/jsamuelsen/console-client/internal/adapters/http"
	"github.com/jsamuelsen/console-client/internal/adapters/http/handlers"
	"github.com/jsamuelsen/console-client/internal/adapters/http/middleware"
	"github.com/jsamuelsen/console-client/internal/adapters/memory"
	"github.com/jsamuelsen/console-client/internal/domain"
	"github.com/jsamuelsen/console-client/internal/platform/config"
	"github.com/jsamuelsen/console-client/internal/ports"
)

const (
	adminUser     = "admin"
	adminPassword = "123456"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// startConsole serves a freshly seeded mock console with fault injection on.
// Injected timeouts are held for faultHold.
func startConsole(faultHold time.Duration) *httptest.Server {
	backend := memory.NewBackend(adminUser, adminPassword)

	registry := ports.NewHealthRegistry()
	_ = registry.Register(backend)

	cfg := consolehttp.NewDefaultRouterConfig(discard, "console-integration", consolehttp.Stores{
		Sessions:    backend.Sessions,
		Users:       backend.Users,
		Roles:       backend.Roles,
		Departments: backend.Departments,
	})
	cfg.Health = handlers.NewHealthHandler(registry, handlers.NewBuildInfo("it", "it", "it"))
	cfg.Faults = true
	cfg.FaultHold = faultHold

	engine := gin.New()
	consolehttp.SetupRouter(engine, cfg)

	return httptest.NewServer(engine)
}

// session holds the per-caller state injected into every request.
type session struct {
	token string
	fault string
}

func (s *session) inject(req *http.Request) {
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	if s.fault != "" {
		req.Header.Set(middleware.HeaderMockFault, s.fault)
	}
}

// facades are the console API as seen by an application.
type facades struct {
	transport   *clients.Client
	auth        *acl.AuthClient
	identity    *acl.AuthClient
	users       *acl.UserClient
	roles       *acl.RoleClient
	departments *acl.DepartmentClient
}

type facadeOptions struct {
	timeout time.Duration
	retry   config.RetryConfig
	circuit config.CircuitBreakerConfig
}

func defaultFacadeOptions() facadeOptions {
	return facadeOptions{
		timeout: 2 * time.Second,
		retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     50 * time.Millisecond,
			Multiplier:      2,
		},
		circuit: config.CircuitBreakerConfig{
			MaxFailures:   100,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
	}
}

func newTransport(name, baseURL string, s *session, opts facadeOptions) (*clients.Client, error) {
	return clients.New(&clients.Config{
		BaseURL:     baseURL,
		ServiceName: name,
		Timeout:     opts.timeout,
		Retry:       opts.retry,
		Circuit:     opts.circuit,
		AuthFunc:    s.inject,
		Logger:      discard,
	})
}

// newFacades wires every façade to baseURL. Login is also available through
// a dedicated identity transport pointed at the same console.
func newFacades(baseURL string, s *session, opts facadeOptions) (*facades, error) {
	transport, err := newTransport("console", baseURL, s, opts)
	if err != nil {
		return nil, err
	}

	identityTransport, err := newTransport("identity", baseURL, s, opts)
	if err != nil {
		return nil, err
	}

	normalizer, err := acl.NewNormalizer(acl.NormalizerConfig{Transport: transport, Logger: discard})
	if err != nil {
		return nil, err
	}

	base := acl.NewBaseAdapter(normalizer, domain.DefaultPagination())

	return &facades{
		transport:   transport,
		auth:        acl.NewAuthClient(base, acl.WithAuthLogger(discard)),
		identity:    acl.NewAuthClient(base, acl.WithAuthLogger(discard), acl.WithIdentityTransport(identityTransport)),
		users:       acl.NewUserClient(base),
		roles:       acl.NewRoleClient(base),
		departments: acl.NewDepartmentClient(base),
	}, nil
}
