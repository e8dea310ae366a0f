package dto

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/console-client/internal/domain"
	"github.com/jsamuelsen/console-client/internal/ports"
)

// ListQuery is the query of every list endpoint.
type ListQuery struct {
	Page     int    `json:"page"     form:"page"     validate:"omitempty,min=1"`
	PageSize int    `json:"pageSize" form:"pageSize" validate:"omitempty,min=1,max=100"`
	Name     string `json:"name"     form:"name"`
}

// ToPort converts the query, applying page 1 and size 10 when absent.
func (q ListQuery) ToPort() ports.ListQuery {
	defaults := domain.DefaultPagination()

	out := ports.ListQuery{Page: q.Page, PageSize: q.PageSize, Name: strings.TrimSpace(q.Name)}
	if out.Page == 0 {
		out.Page = defaults.Page
	}

	if out.PageSize == 0 {
		out.PageSize = defaults.PageSize
	}

	return out
}

// BindIDs reads the target IDs of a delete request. Both ?id=3 and
// ?ids=3&ids=4 (or ids=3,4) are accepted.
func BindIDs(c *gin.Context) ([]int64, error) {
	var raw []string

	if id := c.Query("id"); id != "" {
		raw = append(raw, id)
	}

	for _, v := range c.QueryArray("ids") {
		raw = append(raw, strings.Split(v, ",")...)
	}

	ids := make([]int64, 0, len(raw))

	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}

		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id < 1 {
			return nil, domain.NewValidationError("id", "must be a positive integer")
		}

		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, domain.NewValidationError("id", "is required")
	}

	return ids, nil
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

// ToDomain converts the request.
func (r LoginRequest) ToDomain() domain.LoginParams {
	return domain.LoginParams{Username: strings.TrimSpace(r.Username), Password: r.Password}
}

// UserAddRequest is the body of POST /user/add.
type UserAddRequest struct {
	UserName string   `json:"userName" validate:"required,notblank,max=64"`
	Roles    []string `json:"roles"`
	Buttons  []string `json:"buttons"`
	Avatar   string   `json:"avatar"   validate:"omitempty,url"`
	Email    string   `json:"email"    validate:"omitempty,email"`
	Phone    string   `json:"phone"    validate:"omitempty,max=32"`
}

// ToDomain converts the request.
func (r UserAddRequest) ToDomain() *domain.UserInfo {
	return &domain.UserInfo{
		UserName: r.UserName,
		Roles:    r.Roles,
		Buttons:  r.Buttons,
		Avatar:   r.Avatar,
		Email:    r.Email,
		Phone:    r.Phone,
	}
}

// RoleRequest is the body of POST /role/add.
type RoleRequest struct {
	RoleName    string `json:"roleName"    validate:"required,notblank,max=64"`
	RoleCode    string `json:"roleCode"    validate:"required,notblank,max=64"`
	Description string `json:"description" validate:"max=255"`
	Status      int    `json:"status"      validate:"oneof=0 1"`
}

// ToDomain converts the request.
func (r RoleRequest) ToDomain() *domain.Role {
	return &domain.Role{
		RoleName:    strings.TrimSpace(r.RoleName),
		RoleCode:    strings.TrimSpace(r.RoleCode),
		Description: r.Description,
		Status:      r.Status,
	}
}

// RoleUpdateRequest is the body of PUT /role/update.
type RoleUpdateRequest struct {
	ID int64 `json:"id" validate:"required,min=1"`
	RoleRequest
}

// ToDomain converts the request.
func (r RoleUpdateRequest) ToDomain() *domain.Role {
	role := r.RoleRequest.ToDomain()
	role.ID = r.ID

	return role
}

// DepartmentRequest is the body of POST /department/add.
type DepartmentRequest struct {
	Name     string `json:"name"     validate:"required,notblank,max=64"`
	ParentID int64  `json:"parentId" validate:"min=0"`
	Sort     int    `json:"sort"     validate:"min=0"`
	Status   int    `json:"status"   validate:"oneof=0 1"`
	Leader   string `json:"leader"   validate:"max=64"`
	Phone    string `json:"phone"    validate:"max=32"`
	Email    string `json:"email"    validate:"omitempty,email"`
}

// ToDomain converts the request.
func (r DepartmentRequest) ToDomain() *domain.Department {
	return &domain.Department{
		Name:     strings.TrimSpace(r.Name),
		ParentID: r.ParentID,
		Sort:     r.Sort,
		Status:   r.Status,
		Leader:   r.Leader,
		Phone:    r.Phone,
		Email:    r.Email,
	}
}

// DepartmentUpdateRequest is the body of PUT /department/update.
type DepartmentUpdateRequest struct {
	ID int64 `json:"id" validate:"required,min=1"`
	DepartmentRequest
}

// Validate rejects a department that names itself as parent.
func (r DepartmentUpdateRequest) Validate() error {
	if r.ParentID == r.ID {
		return domain.NewValidationError("parentId", "must differ from id")
	}

	return nil
}

// ToDomain converts the request.
func (r DepartmentUpdateRequest) ToDomain() *domain.Department {
	dept := r.DepartmentRequest.ToDomain()
	dept.ID = r.ID

	return dept
}

// TopRequest is the body of POST /department/top. ID, when set, is excluded
// from the candidates together with its subtree.
type TopRequest struct {
	ID int64 `json:"id" validate:"min=0"`
}
