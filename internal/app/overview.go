// Package app composes the console façades into multi-call workflows.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jsamuelsen/console-client/internal/domain"
	"github.com/jsamuelsen/console-client/internal/platform/logging"
	"github.com/jsamuelsen/console-client/internal/ports"
)

// Overview is the console landing page: who is signed in, the department
// tree and the roles, each with its own outcome.
type Overview struct {
	User        domain.Result[domain.UserInfo]               `json:"user"`
	Departments domain.Result[domain.Page[domain.Department]] `json:"departments"`
	Roles       domain.Result[domain.Page[domain.Role]]       `json:"roles"`
}

// Err joins the errors of the failed parts, or returns nil.
func (o *Overview) Err() error {
	return errors.Join(o.User.Err(), o.Departments.Err(), o.Roles.Err())
}

// OverviewService fetches an Overview.
type OverviewService struct {
	users       ports.UserAPI
	departments ports.DepartmentAPI
	roles       ports.RoleAPI
	logger      *slog.Logger
}

// OverviewServiceConfig holds the OverviewService dependencies.
type OverviewServiceConfig struct {
	Users       ports.UserAPI
	Departments ports.DepartmentAPI
	Roles       ports.RoleAPI
	Logger      *slog.Logger
}

// NewOverviewService creates an OverviewService. A nil logger falls back to
// the context logger at call time.
func NewOverviewService(cfg OverviewServiceConfig) *OverviewService {
	return &OverviewService{
		users:       cfg.Users,
		departments: cfg.Departments,
		roles:       cfg.Roles,
		logger:      cfg.Logger,
	}
}

// Fetch issues getUserInfo, departmentList and roleList concurrently with
// default pagination. One part failing does not affect the others; the
// overview is always complete and its Err reports what failed.
func (s *OverviewService) Fetch(ctx context.Context) *Overview {
	logger := s.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	start := time.Now()

	user, depts, roles, err := Parallel3(ctx,
		func(ctx context.Context) (domain.Result[domain.UserInfo], error) {
			return s.users.Info(ctx), nil
		},
		func(ctx context.Context) (domain.Result[domain.Page[domain.Department]], error) {
			return s.departments.List(ctx, nil), nil
		},
		func(ctx context.Context) (domain.Result[domain.Page[domain.Role]], error) {
			return s.roles.List(ctx, nil), nil
		},
	)

	overview := &Overview{User: user, Departments: depts, Roles: roles}
	if err != nil {
		logger.Error("overview fan-out failed", slog.Any("error", err))
		overview = failedOverview(err)
	}

	logger.Debug("overview fetched",
		slog.Duration("elapsed", time.Since(start)),
		slog.Int("user_code", user.Code),
		slog.Int("departments_code", depts.Code),
		slog.Int("roles_code", roles.Code),
	)

	return overview
}

// failedOverview marks every part as a transport failure. Parallel3 drops all
// results on error, and zero Results would read as successes.
func failedOverview(err error) *Overview {
	msg := err.Error()

	return &Overview{
		User:        domain.Failure[domain.UserInfo](domain.DomainTransport, domain.CodeFailure, msg),
		Departments: domain.Failure[domain.Page[domain.Department]](domain.DomainTransport, domain.CodeFailure, msg),
		Roles:       domain.Failure[domain.Page[domain.Role]](domain.DomainTransport, domain.CodeFailure, msg),
	}
}
