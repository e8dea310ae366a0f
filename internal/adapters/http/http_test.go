package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/console-client/internal/adapters/http/dto"
	"github.com/jsamuelsen/console-client/internal/adapters/http/handlers"
	"github.com/jsamuelsen/console-client/internal/adapters/memory"
	"github.com/jsamuelsen/console-client/internal/platform/config"
	"github.com/jsamuelsen/console-client/internal/platform/telemetry"
	"github.com/jsamuelsen/console-client/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type console struct {
	t        *testing.T
	engine   *gin.Engine
	registry *prometheus.Registry
	token    string
}

func newConsole(t *testing.T) *console {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend := memory.NewBackend("admin", "123456")

	reg := prometheus.NewRegistry()
	metrics, err := telemetry.NewEnvelopeMetrics(reg)
	require.NoError(t, err)

	cfg := NewDefaultRouterConfig(logger, "console-test", Stores{
		Sessions:    backend.Sessions,
		Users:       backend.Users,
		Roles:       backend.Roles,
		Departments: backend.Departments,
	})
	cfg.Health = handlers.NewHealthHandler(ports.NewHealthRegistry(), handlers.NewBuildInfo("1.0.0", "abc", "now"))
	cfg.Metrics = metrics
	cfg.Faults = true
	cfg.FaultHold = 20 * time.Millisecond

	engine := gin.New()
	SetupRouter(engine, cfg)

	return &console{t: t, engine: engine, registry: reg}
}

func (c *console) do(method, path, body string, headers ...string) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env))
	}

	return w, env
}

func (c *console) login() {
	c.t.Helper()

	w, env := c.do(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"123456"}`)
	require.Equal(c.t, http.StatusOK, w.Code)
	require.Equal(c.t, dto.CodeOK, env.Code)

	var tokens struct {
		Token string `json:"token"`
	}
	require.NoError(c.t, json.Unmarshal(env.Data, &tokens))
	require.NotEmpty(c.t, tokens.Token)

	c.token = tokens.Token
}

func TestLogin(t *testing.T) {
	c := newConsole(t)

	w, env := c.do(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.CodeUnauthorized, env.Code)
	assert.Equal(t, dto.MessageBadCredentials, env.Message)

	w, env = c.do(http.MethodPost, "/api/auth/login", `{"username":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.CodeBadRequest, env.Code)

	c.login()
}

func TestSecuredRoutesNeedToken(t *testing.T) {
	c := newConsole(t)

	for _, path := range []string{"/api/user/info", "/api/role/list", "/api/department/list"} {
		w, env := c.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, dto.CodeUnauthorized, env.Code, path)
	}
}

func TestUserRoutes(t *testing.T) {
	c := newConsole(t)
	c.login()

	_, env := c.do(http.MethodGet, "/api/user/info", "")
	assert.Equal(t, dto.CodeOK, env.Code)
	assert.Contains(t, string(env.Data), `"userName":"admin"`)

	_, env = c.do(http.MethodPost, "/api/user/add", `{"userName":"carol","roles":["R_AUDIT"]}`)
	assert.Equal(t, dto.CodeOK, env.Code)

	_, env = c.do(http.MethodPost, "/api/user/add", `{"userName":"CAROL"}`)
	assert.Equal(t, dto.CodeConflict, env.Code)

	_, env = c.do(http.MethodGet, "/api/user/list?pageSize=2&page=2", "")
	require.Equal(t, dto.CodeOK, env.Code)

	var page struct {
		Records []map[string]any `json:"records"`
		Current int              `json:"current"`
		Size    int              `json:"size"`
		Total   int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.Current)
	assert.Equal(t, 2, page.Size)
	assert.Len(t, page.Records, 1)
}

func TestRoleRoutes_BusinessFailuresAreHTTP200(t *testing.T) {
	c := newConsole(t)
	c.login()

	w, env := c.do(http.MethodPost, "/api/role/add", `{"roleName":"dup","roleCode":"R_SUPER","status":1}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.CodeConflict, env.Code)

	w, env = c.do(http.MethodPut, "/api/role/update", `{"id":99,"roleName":"x","roleCode":"X","status":1}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.CodeNotFound, env.Code)

	w, env = c.do(http.MethodDelete, "/api/role/delete?ids=2", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.CodeOK, env.Code)
	assert.JSONEq(t, "true", string(env.Data))

	w, env = c.do(http.MethodDelete, "/api/role/delete", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.CodeBadRequest, env.Code)
}

func TestDepartmentRoutes(t *testing.T) {
	c := newConsole(t)
	c.login()

	_, env := c.do(http.MethodGet, "/api/department/list", "")
	require.Equal(t, dto.CodeOK, env.Code)
	assert.Contains(t, string(env.Data), `"children"`)

	_, env = c.do(http.MethodPost, "/api/department/top", `{"id":1}`)
	require.Equal(t, dto.CodeOK, env.Code)

	var top []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &top))
	require.Len(t, top, 1)
	assert.Equal(t, "华东分部", top[0]["name"])

	_, env = c.do(http.MethodPost, "/api/department/top", "")
	require.NoError(t, json.Unmarshal(env.Data, &top))
	assert.Len(t, top, 4)

	w, env := c.do(http.MethodPut, "/api/department/update", `{"id":2,"name":"研发部","parentId":2,"status":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "parentId")

	w, env = c.do(http.MethodDelete, "/api/department/delete?id=1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.CodeConflict, env.Code)
}

func TestHealthRoutes(t *testing.T) {
	c := newConsole(t)

	for _, path := range []string{"/-/live", "/api/-/live", "/-/ready", "/api/-/build"} {
		w, _ := c.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w, _ := c.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFaultHeader(t *testing.T) {
	c := newConsole(t)
	c.login()

	w, _ := c.do(http.MethodGet, "/api/role/list", "", "X-Mock-Fault", "status-502")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Bad Gateway", w.Body.String())

	w, _ = c.do(http.MethodGet, "/api/role/list", "", "X-Mock-Fault", "timeout")
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestEnvelopeMetrics(t *testing.T) {
	c := newConsole(t)
	c.login()

	c.do(http.MethodGet, "/api/role/list", "")
	c.do(http.MethodPost, "/api/role/add", `{"roleName":"dup","roleCode":"R_SUPER","status":1}`)

	n, err := testutil.GatherAndCount(c.registry, "console_mock_envelopes_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n, "login, list and conflict series")
}

func TestServerStartShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := &config.ServerConfig{
		Host:           "127.0.0.1",
		Port:           ln.Addr().(*net.TCPAddr).Port,
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
		IdleTimeout:    time.Second,
		MaxRequestSize: 1 << 10,
	}

	srv := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv.Engine().GET("/-/live", func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, ln.Addr().String(), srv.Addr())

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/-/live") //nolint:noctx // test
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(ctx))
	require.NoError(t, <-done)
}

func TestServerStart_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	cfg := &config.ServerConfig{Host: "127.0.0.1", Port: ln.Addr().(*net.TCPAddr).Port, MaxRequestSize: 1}
	srv := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err, ok := <-srv.Start()
	require.True(t, ok)
	require.Error(t, err)
}

func TestMaxBodySize(t *testing.T) {
	cfg := &config.ServerConfig{Host: "127.0.0.1", Port: 1, MaxRequestSize: 8}
	srv := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv.Engine().POST("/echo", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}

		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("0123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("0123")))
	assert.Equal(t, http.StatusOK, w.Code)
}
