package ports

import (
	"context"

	"github.com/jsamuelsen/console-client/internal/domain"
)

// Transport performs one network exchange for a request spec.
//
// A nil error means a response was obtained, whatever its status. Transports
// configured to reject non-2xx statuses return a *domain.StatusError that
// still carries the response.
type Transport interface {
	Send(ctx context.Context, spec domain.RequestSpec) (*domain.RawResponse, error)
}

// TransportFunc adapts a plain function to the Transport interface.
type TransportFunc func(ctx context.Context, spec domain.RequestSpec) (*domain.RawResponse, error)

// Send calls f.
func (f TransportFunc) Send(ctx context.Context, spec domain.RequestSpec) (*domain.RawResponse, error) {
	return f(ctx, spec)
}
