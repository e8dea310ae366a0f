package acl

import (
	"context"

	"github.com/jsamuelsen/console-client/internal/domain"
	"github.com/jsamuelsen/console-client/internal/ports"
)

// DepartmentClient implements ports.DepartmentAPI.
type DepartmentClient struct {
	BaseAdapter
}

// NewDepartmentClient creates the department façade.
func NewDepartmentClient(base BaseAdapter) *DepartmentClient {
	return &DepartmentClient{BaseAdapter: base}
}

// List returns one page of departments.
func (c *DepartmentClient) List(
	ctx context.Context,
	params map[string]any,
) domain.Result[domain.Page[domain.Department]] {
	return Call[domain.Page[domain.Department]](ctx, c.normalizer, OpDepartmentList, c.listSpec(OpDepartmentList, params))
}

// Add creates a department.
func (c *DepartmentClient) Add(ctx context.Context, body any) domain.Result[domain.Department] {
	return Call[domain.Department](ctx, c.normalizer, OpDepartmentAdd, bodySpec(OpDepartmentAdd, body))
}

// Update modifies a department.
func (c *DepartmentClient) Update(ctx context.Context, body any) domain.Result[domain.Department] {
	return Call[domain.Department](ctx, c.normalizer, OpDepartmentUpdate, bodySpec(OpDepartmentUpdate, body))
}

// Top returns the departments eligible as a parent. body filters the
// candidates, e.g. {"id": 7} excludes department 7 and its subtree.
func (c *DepartmentClient) Top(ctx context.Context, body any) domain.Result[[]domain.Department] {
	return Call[[]domain.Department](ctx, c.normalizer, OpDepartmentTop, bodySpec(OpDepartmentTop, body))
}

// Delete removes the departments named by params.
func (c *DepartmentClient) Delete(ctx context.Context, params map[string]any) domain.Result[bool] {
	return Call[bool](ctx, c.normalizer, OpDepartmentDelete, querySpec(OpDepartmentDelete, params))
}

var _ ports.DepartmentAPI = (*DepartmentClient)(nil)
