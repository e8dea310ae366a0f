package acl

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jsamuelsen/console-client/internal/domain"
	"github.com/jsamuelsen/console-client/internal/ports"
)

var errNoResponse = errors.New("no response")

// ConsoleHealth checks that the console answers its liveness endpoint.
// It implements ports.HealthChecker.
type ConsoleHealth struct {
	name      string
	path      string
	transport ports.Transport
}

// NewConsoleHealth creates a checker that sends GET path through t.
func NewConsoleHealth(name, path string, t ports.Transport) *ConsoleHealth {
	return &ConsoleHealth{name: name, path: path, transport: t}
}

// Name returns the checker name.
func (h *ConsoleHealth) Name() string {
	return h.name
}

// Check returns nil when the console answers with a 2xx status.
func (h *ConsoleHealth) Check(ctx context.Context) error {
	resp, err := h.transport.Send(ctx, domain.RequestSpec{Method: http.MethodGet, Path: h.path})
	if err != nil {
		return fmt.Errorf("%s: %w", h.name, err)
	}

	if resp == nil {
		return fmt.Errorf("%s: %w", h.name, errNoResponse)
	}

	if !resp.IsSuccess() {
		return fmt.Errorf("%s: %w", h.name, domain.NewStatusError(resp))
	}

	return nil
}

var _ ports.HealthChecker = (*ConsoleHealth)(nil)
