package acl

import (
	"context"

	"github.com/jsamuelsen/console-client/internal/domain"
	"github.com/jsamuelsen/console-client/internal/ports"
)

// UserClient implements ports.UserAPI.
type UserClient struct {
	BaseAdapter
}

// NewUserClient creates the user façade.
func NewUserClient(base BaseAdapter) *UserClient {
	return &UserClient{BaseAdapter: base}
}

// Info returns the signed-in user.
func (c *UserClient) Info(ctx context.Context) domain.Result[domain.UserInfo] {
	return Call[domain.UserInfo](ctx, c.normalizer, OpUserInfo, querySpec(OpUserInfo, nil))
}

// Add creates a user. body may be serialized JSON or any marshalable value.
func (c *UserClient) Add(ctx context.Context, body any) domain.Result[domain.UserInfo] {
	return Call[domain.UserInfo](ctx, c.normalizer, OpUserAdd, bodySpec(OpUserAdd, body))
}

// List returns one page of users.
func (c *UserClient) List(ctx context.Context, params map[string]any) domain.Result[domain.UserListData] {
	return Call[domain.UserListData](ctx, c.normalizer, OpUserList, c.listSpec(OpUserList, params))
}

var _ ports.UserAPI = (*UserClient)(nil)
