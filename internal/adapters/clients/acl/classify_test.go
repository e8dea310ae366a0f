package acl

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/console-client/internal/adapters/clients"
	"github.com/jsamuelsen/console-client/internal/domain"
)

func raw(status int, body string) *domain.RawResponse {
	return &domain.RawResponse{Status: status, Header: http.Header{}, Body: []byte(body)}
}

func TestClassify(t *testing.T) {
	op := OpDepartmentList
	def := "获取部门列表失败，请稍后重试"

	tests := []struct {
		name    string
		resp    *domain.RawResponse
		err     error
		domain  domain.FailureDomain
		code    int
		message string
	}{
		{
			name:    "network error",
			err:     errors.New("connection reset by peer"),
			domain:  domain.DomainTransport,
			code:    500,
			message: def,
		},
		{
			name:    "circuit open",
			err:     clients.ErrCircuitOpen,
			domain:  domain.DomainTransport,
			code:    500,
			message: def,
		},
		{
			name:    "no response and no error",
			domain:  domain.DomainTransport,
			code:    500,
			message: def,
		},
		{
			name:    "status error carries embedded envelope",
			err:     domain.NewStatusError(raw(401, `{"code":401,"message":"bad credentials"}`)),
			domain:  domain.DomainHTTPStatus,
			code:    401,
			message: "bad credentials",
		},
		{
			name:    "status error without response is transport",
			err:     domain.NewStatusError(nil),
			domain:  domain.DomainTransport,
			code:    500,
			message: def,
		},
		{
			name:    "local input error",
			err:     domain.NewLocalInputError("departmentAdd", errors.New("bad json")),
			domain:  domain.DomainLocalInput,
			code:    500,
			message: def,
		},
		{
			name:    "non-2xx without body",
			resp:    raw(404, ""),
			domain:  domain.DomainHTTPStatus,
			code:    404,
			message: "HTTP 错误: 404",
		},
		{
			name:    "non-2xx with zero embedded code falls back to status",
			resp:    raw(503, `{"code":0,"message":""}`),
			domain:  domain.DomainHTTPStatus,
			code:    503,
			message: "HTTP 错误: 503",
		},
		{
			name:    "non-2xx with embedded message only",
			resp:    raw(502, `{"message":"upstream down"}`),
			domain:  domain.DomainHTTPStatus,
			code:    502,
			message: "upstream down",
		},
		{
			name:    "non-2xx with nested error form",
			resp:    raw(400, `{"error":{"code":4001,"message":"name is required"}}`),
			domain:  domain.DomainHTTPStatus,
			code:    4001,
			message: "name is required",
		},
		{
			name:    "non-2xx with html body",
			resp:    raw(500, `<html>oops</html>`),
			domain:  domain.DomainHTTPStatus,
			code:    500,
			message: "HTTP 错误: 500",
		},
		{
			name:    "business failure",
			resp:    raw(200, `{"code":409,"message":"role code taken","data":{"id":1}}`),
			domain:  domain.DomainBusinessStatus,
			code:    409,
			message: "role code taken",
		},
		{
			name:    "2xx body is not json",
			resp:    raw(200, `ok`),
			domain:  domain.DomainTransport,
			code:    500,
			message: def,
		},
		{
			name:    "2xx envelope without code",
			resp:    raw(200, `{"message":"ok","data":[]}`),
			domain:  domain.DomainTransport,
			code:    500,
			message: def,
		},
		{
			name:    "success",
			resp:    raw(200, `{"code":0,"message":"ok","data":{"records":[]}}`),
			domain:  domain.DomainNone,
			code:    0,
			message: "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Classify(op, tt.resp, tt.err)

			assert.Equal(t, tt.domain, out.Domain)
			assert.Equal(t, tt.code, out.Code)
			assert.Equal(t, tt.message, out.Message)

			if !out.OK() {
				assert.Nil(t, out.Data)
			}
		})
	}
}

func TestResolve_Success(t *testing.T) {
	out := Classify(OpUserInfo, raw(200, `{"code":0,"message":"","data":{"userId":7,"userName":"Super","roles":["R_SUPER"],"buttons":["B_CODE1"]}}`), nil)

	res := Resolve[domain.UserInfo](out)

	require.True(t, res.OK())
	require.NotNil(t, res.Data)
	assert.Equal(t, int64(7), res.Data.UserID)
	assert.Equal(t, []string{"R_SUPER"}, res.Data.Roles)
	assert.Empty(t, res.Message)
	assert.Equal(t, domain.DomainNone, res.Domain)
}

func TestResolve_SuccessWithoutDataCarriesZeroValue(t *testing.T) {
	for _, body := range []string{
		`{"code":0,"message":"created","data":null}`,
		`{"code":0,"message":"created"}`,
	} {
		res := Resolve[domain.Role](Classify(OpRoleAdd, raw(200, body), nil))

		assert.True(t, res.OK(), body)
		require.NotNil(t, res.Data, body)
		assert.Equal(t, domain.Role{}, *res.Data, body)
		assert.Equal(t, "created", res.Message, body)
	}
}

func TestResolve_DataShapeMismatch(t *testing.T) {
	res := Resolve[domain.Page[domain.Role]](Classify(OpRoleList, raw(200, `{"code":0,"message":"ok","data":"nope"}`), nil))

	assert.False(t, res.OK())
	assert.Equal(t, 500, res.Code)
	assert.Equal(t, "获取角色列表失败，请稍后重试", res.Message)
	assert.Nil(t, res.Data)
	assert.Equal(t, domain.DomainTransport, res.Domain)
}

func TestResolve_FailureNeverCarriesData(t *testing.T) {
	res := Resolve[domain.Role](Classify(OpRoleAdd, raw(200, `{"code":1,"message":"nope","data":{"id":3}}`), nil))

	assert.Equal(t, 1, res.Code)
	assert.Nil(t, res.Data)
	require.Error(t, res.Err())
	assert.ErrorIs(t, res.Err(), domain.ErrBusinessStatus)
}

func TestParseEnvelope(t *testing.T) {
	_, err := ParseEnvelope(nil)
	require.Error(t, err)

	_, err = ParseEnvelope([]byte(`[1,2]`))
	require.Error(t, err)

	_, err = ParseEnvelope([]byte(`{"code":"zero"}`))
	require.Error(t, err)

	env, err := ParseEnvelope([]byte(` {"code":0,"message":"ok","data":null} `))
	require.NoError(t, err)

	code, ok := env.GetCode()
	assert.True(t, ok)
	assert.Equal(t, 0, code)
	assert.Equal(t, "ok", env.GetMessage())
	assert.False(t, env.hasData())
}

func TestOperations_DefaultMessages(t *testing.T) {
	want := map[string]string{
		"login":            "登录失败，请稍后重试",
		"getUserInfo":      "获取用户信息失败，请稍后重试",
		"userAdd":          "新增用户失败，请稍后重试",
		"userList":         "获取用户列表失败，请稍后重试",
		"departmentList":   "获取部门列表失败，请稍后重试",
		"departmentAdd":    "新增部门失败，请稍后重试",
		"departmentUpdate": "修改部门失败，请稍后重试",
		"departmentTop":    "获取上级部门失败，请稍后重试",
		"departmentDelete": "删除部门失败，请稍后重试",
		"roleList":         "获取角色列表失败，请稍后重试",
		"roleAdd":          "新增角色失败，请稍后重试",
		"roleUpdate":       "修改角色失败，请稍后重试",
		"roleDelete":       "删除角色失败，请稍后重试",
	}

	ops := Operations()
	require.Len(t, ops, len(want))

	for _, op := range ops {
		assert.Equal(t, want[op.Name], op.DefaultMessage(), op.Name)
	}
}
