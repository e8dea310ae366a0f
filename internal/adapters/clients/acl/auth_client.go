package acl

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/console-client/internal/domain"
	"github.com/jsamuelsen/console-client/internal/ports"
)

// AuthClient implements ports.AuthAPI.
//
// Login goes through the shared normalizer unless an identity transport is
// configured, in which case it is sent there directly and classified inline.
// Both paths use Classify, so they resolve identical server behavior to
// identical Results.
type AuthClient struct {
	BaseAdapter

	identity ports.Transport
	logger   *slog.Logger
}

// AuthClientOption configures an AuthClient.
type AuthClientOption func(*AuthClient)

// WithIdentityTransport sends login to a dedicated identity endpoint.
func WithIdentityTransport(t ports.Transport) AuthClientOption {
	return func(c *AuthClient) {
		c.identity = t
	}
}

// WithAuthLogger sets the logger used by the identity path.
func WithAuthLogger(logger *slog.Logger) AuthClientOption {
	return func(c *AuthClient) {
		c.logger = logger
	}
}

// NewAuthClient creates the auth façade.
func NewAuthClient(base BaseAdapter, opts ...AuthClientOption) *AuthClient {
	c := &AuthClient{BaseAdapter: base, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Login exchanges credentials for tokens.
func (c *AuthClient) Login(ctx context.Context, params domain.LoginParams) domain.Result[domain.LoginResponse] {
	if c.identity == nil {
		return Call[domain.LoginResponse](ctx, c.normalizer, OpLogin, bodySpec(OpLogin, params))
	}

	return c.loginViaIdentity(ctx, params)
}

func (c *AuthClient) loginViaIdentity(
	ctx context.Context,
	params domain.LoginParams,
) (result domain.Result[domain.LoginResponse]) {
	ctx = context.WithoutCancel(ctx)

	defer func() {
		if r := recover(); r != nil {
			c.logger.ErrorContext(ctx, "recovered from panic during login", slog.Any("panic", r))
			result = domain.Failure[domain.LoginResponse](domain.DomainTransport, domain.CodeFailure, OpLogin.DefaultMessage())
		}

		c.normalizer.record(ctx, OpLogin, result.Domain, result.Code)
	}()

	return Resolve[domain.LoginResponse](c.sendIdentity(ctx, params))
}

// sendIdentity applies the request-body policy, then sends login to the
// identity transport and classifies the reply.
func (c *AuthClient) sendIdentity(ctx context.Context, params domain.LoginParams) Outcome {
	body, err := PrepareBody(OpLogin, params)
	if err != nil {
		return Classify(OpLogin, nil, err)
	}

	spec := bodySpec(OpLogin, body).WithDefaultHeaders()

	resp, err := c.identity.Send(ctx, spec)
	if err != nil {
		c.logger.DebugContext(ctx, "identity login failed", slog.Any("error", err))
	}

	return Classify(OpLogin, resp, err)
}

var _ ports.AuthAPI = (*AuthClient)(nil)
