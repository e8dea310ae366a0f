package acl

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jsamuelsen/console-client/internal/adapters/clients"
	"github.com/jsamuelsen/console-client/internal/domain"
	"github.com/jsamuelsen/console-client/internal/platform/config"
	"github.com/jsamuelsen/console-client/internal/platform/telemetry"
	"github.com/jsamuelsen/console-client/internal/ports"
)

// recorded captures the last request a test server received.
type recorded struct {
	mu     sync.Mutex
	method string
	path   string
	query  url.Values
	body   []byte
}

func (r *recorded) capture(req *http.Request) {
	body, _ := io.ReadAll(req.Body)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.method = req.Method
	r.path = req.URL.Path
	r.query = req.URL.Query()
	r.body = body
}

func newConsoleServer(t *testing.T, status int, body string) (*httptest.Server, *recorded) {
	t.Helper()

	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.capture(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv, rec
}

func newTransport(t *testing.T, baseURL string, statusAsError bool) *clients.Client {
	t.Helper()

	c, err := clients.New(&clients.Config{
		BaseURL:       baseURL,
		ServiceName:   "console",
		Timeout:       2 * time.Second,
		Retry:         config.RetryConfig{MaxAttempts: 1},
		StatusAsError: statusAsError,
		Logger:        discardLogger(),
	})
	require.NoError(t, err)

	return c
}

func newBase(t *testing.T, baseURL string) BaseAdapter {
	t.Helper()

	n, err := NewNormalizer(NormalizerConfig{Transport: newTransport(t, baseURL, false), Logger: discardLogger()})
	require.NoError(t, err)

	return NewBaseAdapter(n, domain.DefaultPagination())
}

func TestLogin_VariantsAgreeOnBadCredentials(t *testing.T) {
	srv, _ := newConsoleServer(t, http.StatusUnauthorized, `{"code":401,"message":"bad credentials"}`)

	shared := NewAuthClient(newBase(t, srv.URL))
	direct := NewAuthClient(newBase(t, srv.URL),
		WithIdentityTransport(newTransport(t, srv.URL, true)),
		WithAuthLogger(discardLogger()),
	)

	params := domain.LoginParams{Username: "admin", Password: "wrong"}
	want := domain.Result[domain.LoginResponse]{Code: 401, Message: "bad credentials", Domain: domain.DomainHTTPStatus}

	assert.Equal(t, want, shared.Login(context.Background(), params))
	assert.Equal(t, want, direct.Login(context.Background(), params))
}

func TestLogin_VariantsAgreeOnSuccess(t *testing.T) {
	srv, rec := newConsoleServer(t, http.StatusOK, `{"code":0,"message":"","data":{"token":"tok","refreshToken":"ref"}}`)

	shared := NewAuthClient(newBase(t, srv.URL))
	direct := NewAuthClient(newBase(t, srv.URL), WithIdentityTransport(newTransport(t, srv.URL, true)))

	params := domain.LoginParams{Username: "admin", Password: "123456"}

	a := shared.Login(context.Background(), params)
	b := direct.Login(context.Background(), params)

	require.True(t, a.OK())
	assert.Equal(t, a, b)
	assert.Equal(t, "tok", a.Data.Token)
	assert.Equal(t, "/auth/login", rec.path)
	assert.JSONEq(t, `{"username":"admin","password":"123456"}`, string(rec.body))
}

func TestLogin_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	shared := NewAuthClient(newBase(t, addr))
	direct := NewAuthClient(newBase(t, addr), WithIdentityTransport(newTransport(t, addr, true)))

	want := domain.Result[domain.LoginResponse]{Code: 500, Message: "登录失败，请稍后重试", Domain: domain.DomainTransport}
	params := domain.LoginParams{Username: "admin", Password: "123456"}

	assert.Equal(t, want, shared.Login(context.Background(), params))
	assert.Equal(t, want, direct.Login(context.Background(), params))
}

func TestDepartmentList_MergesPagination(t *testing.T) {
	srv, rec := newConsoleServer(t, http.StatusOK,
		`{"code":0,"message":"","data":{"records":[{"id":1,"name":"HQ","parentId":0,"sort":1,"status":1}],"current":1,"size":20,"total":1}}`)

	res := NewDepartmentClient(newBase(t, srv.URL)).List(context.Background(), map[string]any{"pageSize": 20})

	require.True(t, res.OK())
	assert.Equal(t, "/department/list", rec.path)
	assert.Equal(t, "1", rec.query.Get("page"))
	assert.Equal(t, "20", rec.query.Get("pageSize"))
	require.Len(t, res.Data.Records, 1)
	assert.True(t, res.Data.Records[0].IsTopLevel())
}

func TestList_UsesConfiguredPagination(t *testing.T) {
	srv, rec := newConsoleServer(t, http.StatusOK, `{"code":0,"message":"","data":{"records":[],"current":2,"size":50,"total":0}}`)

	n, err := NewNormalizer(NormalizerConfig{Transport: newTransport(t, srv.URL, false), Logger: discardLogger()})
	require.NoError(t, err)

	base := NewBaseAdapter(n, domain.PaginationParams{Page: 2, PageSize: 50})

	res := NewRoleClient(base).List(context.Background(), nil)

	require.True(t, res.OK())
	assert.Equal(t, url.Values{"page": {"2"}, "pageSize": {"50"}}, rec.query)
}

func TestNewBaseAdapter_InvalidPaginationFallsBack(t *testing.T) {
	base := NewBaseAdapter(nil, domain.PaginationParams{})
	assert.Equal(t, domain.DefaultPagination(), base.Pagination())
}

func TestUserList_Filters(t *testing.T) {
	srv, rec := newConsoleServer(t, http.StatusOK,
		`{"code":0,"message":"","data":{"records":[{"userId":2,"userName":"ops","roles":[],"buttons":[]}],"current":1,"size":10,"total":1}}`)

	res := NewUserClient(newBase(t, srv.URL)).List(context.Background(), map[string]any{"name": "ops"})

	require.True(t, res.OK())
	assert.Equal(t, "/user/list", rec.path)
	assert.Equal(t, url.Values{"page": {"1"}, "pageSize": {"10"}, "name": {"ops"}}, rec.query)
	assert.Equal(t, 1, res.Data.Total)
}

func TestUserInfo_HTTPStatusWithoutEnvelope(t *testing.T) {
	srv, _ := newConsoleServer(t, http.StatusForbidden, ``)

	res := NewUserClient(newBase(t, srv.URL)).Info(context.Background())

	assert.Equal(t, domain.Result[domain.UserInfo]{Code: 403, Message: "HTTP 错误: 403", Domain: domain.DomainHTTPStatus}, res)
}

func TestUserAdd_BusinessFailurePassesThrough(t *testing.T) {
	srv, rec := newConsoleServer(t, http.StatusOK, `{"code":409,"message":"user exists","data":{"userId":3}}`)

	res := NewUserClient(newBase(t, srv.URL)).Add(context.Background(), `{"userName":"ops"}`)

	assert.Equal(t, domain.Result[domain.UserInfo]{Code: 409, Message: "user exists", Domain: domain.DomainBusinessStatus}, res)
	assert.Equal(t, http.MethodPost, rec.method)
}

func TestRoleMutations(t *testing.T) {
	srv, rec := newConsoleServer(t, http.StatusOK, `{"code":0,"message":"","data":{"id":4,"roleName":"ops","roleCode":"R_OPS","status":1}}`)
	roles := NewRoleClient(newBase(t, srv.URL))

	added := roles.Add(context.Background(), map[string]any{"roleName": "ops", "roleCode": "R_OPS"})
	require.True(t, added.OK())
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/role/add", rec.path)

	updated := roles.Update(context.Background(), `{"id":4,"roleName":"ops"}`)
	require.True(t, updated.OK())
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/role/update", rec.path)

	bad := roles.Update(context.Background(), `{"id":`)
	assert.Equal(t, domain.Result[domain.Role]{Code: 500, Message: "修改角色失败，请稍后重试", Domain: domain.DomainLocalInput}, bad)
}

func TestDeleteOperations(t *testing.T) {
	srv, rec := newConsoleServer(t, http.StatusOK, `{"code":0,"message":"deleted","data":true}`)
	base := newBase(t, srv.URL)

	res := NewRoleClient(base).Delete(context.Background(), map[string]any{"ids": []int64{3, 4}})
	require.True(t, res.OK())
	assert.True(t, res.Value())
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/role/delete", rec.path)
	assert.Equal(t, []string{"3", "4"}, rec.query["ids"])
	assert.Empty(t, rec.body)

	res = NewDepartmentClient(base).Delete(context.Background(), map[string]any{"id": 9})
	require.True(t, res.OK())
	assert.Equal(t, "/department/delete", rec.path)
	assert.Equal(t, "9", rec.query.Get("id"))
}

func TestDelete_NullDataResolvesToZeroValue(t *testing.T) {
	srv, _ := newConsoleServer(t, http.StatusOK, `{"code":0,"message":"ok","data":null}`)

	res := NewDepartmentClient(newBase(t, srv.URL)).Delete(context.Background(), map[string]any{"id": 3})

	require.True(t, res.OK())
	require.NotNil(t, res.Data)
	assert.False(t, *res.Data)
	assert.Equal(t, "ok", res.Message)
}

func TestLogin_BothVariantsRecordResults(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	previous := otel.GetMeterProvider()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	t.Cleanup(func() { otel.SetMeterProvider(previous) })

	srv, _ := newConsoleServer(t, http.StatusUnauthorized, `{"code":401,"message":"bad credentials"}`)

	n, err := NewNormalizer(NormalizerConfig{
		Transport: newTransport(t, srv.URL, false),
		Logger:    discardLogger(),
		Results:   telemetry.NewResultCounter(),
	})
	require.NoError(t, err)

	base := NewBaseAdapter(n, domain.DefaultPagination())
	params := domain.LoginParams{Username: "admin", Password: "wrong"}

	NewAuthClient(base).Login(context.Background(), params)
	NewAuthClient(base, WithIdentityTransport(newTransport(t, srv.URL, true)), WithAuthLogger(discardLogger())).
		Login(context.Background(), params)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var logins int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "console.result.total" {
				continue
			}

			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)

			for _, dp := range sum.DataPoints {
				if op, _ := dp.Attributes.Value(attribute.Key("operation")); op.AsString() == OpLogin.Name {
					code, _ := dp.Attributes.Value(attribute.Key("code"))
					assert.Equal(t, int64(401), code.AsInt64())
					logins += dp.Value
				}
			}
		}
	}

	assert.Equal(t, int64(2), logins)
}

func TestDepartmentTopAndUpdate(t *testing.T) {
	srv, rec := newConsoleServer(t, http.StatusOK,
		`{"code":0,"message":"","data":[{"id":1,"name":"HQ","parentId":0,"sort":1,"status":1}]}`)
	depts := NewDepartmentClient(newBase(t, srv.URL))

	top := depts.Top(context.Background(), map[string]any{"id": 7})
	require.True(t, top.OK())
	require.Len(t, top.Value(), 1)
	assert.Equal(t, http.MethodPost, rec.method)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	assert.InDelta(t, 7, sent["id"], 0)

	// The update endpoint answers with a list here, which does not fit Department.
	upd := depts.Update(context.Background(), `{"id":1,"name":"HQ"}`)
	assert.Equal(t, domain.Result[domain.Department]{Code: 500, Message: "修改部门失败，请稍后重试", Domain: domain.DomainTransport}, upd)
	assert.Equal(t, http.MethodPut, rec.method)

	add := depts.Add(context.Background(), "")
	assert.Equal(t, domain.DomainLocalInput, add.Domain)
}

func TestConsoleHealth(t *testing.T) {
	ok, _ := newConsoleServer(t, http.StatusOK, `{"status":"ok"}`)
	down, _ := newConsoleServer(t, http.StatusServiceUnavailable, ``)

	healthy := NewConsoleHealth("console", "/-/live", newTransport(t, ok.URL, false))
	assert.Equal(t, "console", healthy.Name())
	require.NoError(t, healthy.Check(context.Background()))

	unhealthy := NewConsoleHealth("console", "/-/live", newTransport(t, down.URL, false))
	err := unhealthy.Check(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrHTTPStatus)
}

func TestConsoleHealth_NoResponse(t *testing.T) {
	empty := ports.TransportFunc(func(context.Context, domain.RequestSpec) (*domain.RawResponse, error) {
		return nil, nil
	})

	err := NewConsoleHealth("console", "/-/live", empty).Check(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errNoResponse)
}
