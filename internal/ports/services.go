// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Two families live here:
//   - console APIs, implemented by the client façades. They never return errors;
//     every outcome is a domain.Result.
//   - console stores, implemented by the in-memory backend that serves the
//     mock console. They return domain errors (ErrNotFound, ErrConflict, ...).
package ports

import (
	"context"

	"github.com/jsamuelsen/console-client/internal/domain"
)

// AuthAPI covers authentication.
type AuthAPI interface {
	Login(ctx context.Context, params domain.LoginParams) domain.Result[domain.LoginResponse]
}

// UserAPI covers the user resource.
type UserAPI interface {
	Info(ctx context.Context) domain.Result[domain.UserInfo]
	Add(ctx context.Context, body any) domain.Result[domain.UserInfo]
	List(ctx context.Context, params map[string]any) domain.Result[domain.UserListData]
}

// RoleAPI covers the role resource.
type RoleAPI interface {
	List(ctx context.Context, params map[string]any) domain.Result[domain.Page[domain.Role]]
	Add(ctx context.Context, body any) domain.Result[domain.Role]
	Update(ctx context.Context, body any) domain.Result[domain.Role]
	Delete(ctx context.Context, params map[string]any) domain.Result[bool]
}

// DepartmentAPI covers the department resource.
type DepartmentAPI interface {
	List(ctx context.Context, params map[string]any) domain.Result[domain.Page[domain.Department]]
	Add(ctx context.Context, body any) domain.Result[domain.Department]
	Update(ctx context.Context, body any) domain.Result[domain.Department]
	Top(ctx context.Context, body any) domain.Result[[]domain.Department]
	Delete(ctx context.Context, params map[string]any) domain.Result[bool]
}

// SessionStore issues and resolves bearer tokens.
type SessionStore interface {
	// Login returns tokens for valid credentials, or domain.ErrUnauthorized.
	Login(ctx context.Context, params domain.LoginParams) (*domain.LoginResponse, error)

	// Resolve returns the user owning the token, or domain.ErrUnauthorized.
	Resolve(ctx context.Context, token string) (*domain.UserInfo, error)
}

// UserStore persists console users.
type UserStore interface {
	Add(ctx context.Context, user *domain.UserInfo) (*domain.UserInfo, error)
	List(ctx context.Context, q ListQuery) (*domain.UserListData, error)
}

// RoleStore persists roles.
// Add returns domain.ErrConflict when the role code is taken.
type RoleStore interface {
	List(ctx context.Context, q ListQuery) (*domain.Page[domain.Role], error)
	Add(ctx context.Context, role *domain.Role) (*domain.Role, error)
	Update(ctx context.Context, role *domain.Role) (*domain.Role, error)
	Delete(ctx context.Context, ids []int64) error
}

// DepartmentStore persists the department tree.
type DepartmentStore interface {
	List(ctx context.Context, q ListQuery) (*domain.Page[domain.Department], error)
	Add(ctx context.Context, dept *domain.Department) (*domain.Department, error)
	Update(ctx context.Context, dept *domain.Department) (*domain.Department, error)

	// Top returns the departments that may act as a parent, excluding excludeID
	// and its descendants.
	Top(ctx context.Context, excludeID int64) ([]domain.Department, error)
	Delete(ctx context.Context, ids []int64) error
}

// ListQuery selects one page of a store, optionally filtered by name.
type ListQuery struct {
	Page     int
	PageSize int
	Name     string
}
