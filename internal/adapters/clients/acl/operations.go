package acl

import (
	"fmt"
	"net/http"
)

// defaultFailureSuffix completes an operation label into its default failure message.
const defaultFailureSuffix = "失败，请稍后重试"

// Operation names a console call for logs and metrics and carries the label
// used in its default failure message.
type Operation struct {
	Name   string
	Method string
	Path   string
	Label  string
}

// DefaultMessage returns the message used when a failure has no better description.
func (o Operation) DefaultMessage() string {
	return o.Label + defaultFailureSuffix
}

// HTTPStatusMessage is the message used for a non-2xx response without an embedded message.
func HTTPStatusMessage(status int) string {
	return fmt.Sprintf("HTTP 错误: %d", status)
}

// Console operations.
var (
	OpLogin = Operation{Name: "login", Method: http.MethodPost, Path: "/auth/login", Label: "登录"}

	OpUserInfo = Operation{Name: "getUserInfo", Method: http.MethodGet, Path: "/user/info", Label: "获取用户信息"}
	OpUserAdd  = Operation{Name: "userAdd", Method: http.MethodPost, Path: "/user/add", Label: "新增用户"}
	OpUserList = Operation{Name: "userList", Method: http.MethodGet, Path: "/user/list", Label: "获取用户列表"}

	OpDepartmentList   = Operation{Name: "departmentList", Method: http.MethodGet, Path: "/department/list", Label: "获取部门列表"}
	OpDepartmentAdd    = Operation{Name: "departmentAdd", Method: http.MethodPost, Path: "/department/add", Label: "新增部门"}
	OpDepartmentUpdate = Operation{Name: "departmentUpdate", Method: http.MethodPut, Path: "/department/update", Label: "修改部门"}
	OpDepartmentTop    = Operation{Name: "departmentTop", Method: http.MethodPost, Path: "/department/top", Label: "获取上级部门"}
	OpDepartmentDelete = Operation{Name: "departmentDelete", Method: http.MethodDelete, Path: "/department/delete", Label: "删除部门"}

	OpRoleList   = Operation{Name: "roleList", Method: http.MethodGet, Path: "/role/list", Label: "获取角色列表"}
	OpRoleAdd    = Operation{Name: "roleAdd", Method: http.MethodPost, Path: "/role/add", Label: "新增角色"}
	OpRoleUpdate = Operation{Name: "roleUpdate", Method: http.MethodPut, Path: "/role/update", Label: "修改角色"}
	OpRoleDelete = Operation{Name: "roleDelete", Method: http.MethodDelete, Path: "/role/delete", Label: "删除角色"}
)

// Operations lists every console operation.
func Operations() []Operation {
	return []Operation{
		OpLogin,
		OpUserInfo, OpUserAdd, OpUserList,
		OpDepartmentList, OpDepartmentAdd, OpDepartmentUpdate, OpDepartmentTop, OpDepartmentDelete,
		OpRoleList, OpRoleAdd, OpRoleUpdate, OpRoleDelete,
	}
}
