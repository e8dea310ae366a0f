package acl

import (
	"context"

	"github.com/jsamuelsen/console-client/internal/domain"
	"github.com/jsamuelsen/console-client/internal/ports"
)

// RoleClient implements ports.RoleAPI.
type RoleClient struct {
	BaseAdapter
}

// NewRoleClient creates the role façade.
func NewRoleClient(base BaseAdapter) *RoleClient {
	return &RoleClient{BaseAdapter: base}
}

// List returns one page of roles.
func (c *RoleClient) List(ctx context.Context, params map[string]any) domain.Result[domain.Page[domain.Role]] {
	return Call[domain.Page[domain.Role]](ctx, c.normalizer, OpRoleList, c.listSpec(OpRoleList, params))
}

// Add creates a role.
func (c *RoleClient) Add(ctx context.Context, body any) domain.Result[domain.Role] {
	return Call[domain.Role](ctx, c.normalizer, OpRoleAdd, bodySpec(OpRoleAdd, body))
}

// Update modifies a role.
func (c *RoleClient) Update(ctx context.Context, body any) domain.Result[domain.Role] {
	return Call[domain.Role](ctx, c.normalizer, OpRoleUpdate, bodySpec(OpRoleUpdate, body))
}

// Delete removes the roles named by params, e.g. {"id": 3} or {"ids": []int64{3, 4}}.
func (c *RoleClient) Delete(ctx context.Context, params map[string]any) domain.Result[bool] {
	return Call[bool](ctx, c.normalizer, OpRoleDelete, querySpec(OpRoleDelete, params))
}

var _ ports.RoleAPI = (*RoleClient)(nil)
