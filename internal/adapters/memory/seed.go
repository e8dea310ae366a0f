package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jsamuelsen/console-client/internal/domain"
	"github.com/jsamuelsen/console-client/internal/ports"
)

// Backend groups the stores of one mock console.
type Backend struct {
	Users       *Users
	Sessions    *Sessions
	Roles       *Roles
	Departments *Departments
}

// NewBackend creates a seeded backend. The administrator account is named
// username and signs in with password.
func NewBackend(username, password string) *Backend {
	users := NewUsers(
		domain.UserInfo{
			UserName: username,
			Roles:    []string{"R_SUPER"},
			Buttons:  []string{"B_CODE1", "B_CODE2", "B_CODE3"},
			Email:    "admin@console.local",
		},
		domain.UserInfo{
			UserName: "auditor",
			Roles:    []string{"R_AUDIT"},
			Buttons:  []string{"B_CODE1"},
		},
	)

	roles := NewRoles(
		domain.Role{RoleName: "超级管理员", RoleCode: "R_SUPER", Description: "all permissions", Status: 1},
		domain.Role{RoleName: "审计员", RoleCode: "R_AUDIT", Description: "read only", Status: 1},
	)

	departments := NewDepartments(
		domain.Department{Name: "总部", Sort: 1, Status: 1, Leader: username},
		domain.Department{Name: "研发部", ParentID: 1, Sort: 1, Status: 1},
		domain.Department{Name: "运维部", ParentID: 1, Sort: 2, Status: 1},
		domain.Department{Name: "华东分部", Sort: 2, Status: 1},
	)

	return &Backend{
		Users:       users,
		Sessions:    NewSessions(users, map[string]string{username: password}),
		Roles:       roles,
		Departments: departments,
	}
}

// Name implements ports.HealthChecker.
func (b *Backend) Name() string {
	return "memory"
}

// Check reports the backend ready once the stores answer and an
// administrator exists.
func (b *Backend) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	users, err := b.Users.List(ctx, ports.ListQuery{Page: 1, PageSize: 1})
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}

	if users.Total == 0 {
		return errors.New("no users seeded")
	}

	return nil
}

var _ ports.HealthChecker = (*Backend)(nil)
