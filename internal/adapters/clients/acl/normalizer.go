package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/console-client/internal/domain"
	"github.com/jsamuelsen/console-client/internal/platform/logging"
	"github.com/jsamuelsen/console-client/internal/platform/telemetry"
	"github.com/jsamuelsen/console-client/internal/ports"
)

var errEmptyBody = errors.New("empty body")

// NormalizerConfig configures a Normalizer.
type NormalizerConfig struct {
	// Transport performs the exchange. Required.
	Transport ports.Transport

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Results counts outcomes. Defaults to a counter on the global meter.
	Results *telemetry.ResultCounter
}

// Normalizer wraps a transport so that every call resolves to a domain.Result.
// It holds no per-call state and is safe for concurrent use.
type Normalizer struct {
	transport ports.Transport
	logger    *slog.Logger
	results   *telemetry.ResultCounter
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(cfg NormalizerConfig) (*Normalizer, error) {
	if cfg.Transport == nil {
		return nil, errors.New("normalizer: transport is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	results := cfg.Results
	if results == nil {
		results = telemetry.NewResultCounter()
	}

	return &Normalizer{
		transport: cfg.Transport,
		logger:    logger.With(slog.String("component", "acl.Normalizer")),
		results:   results,
	}, nil
}

// Call performs spec and resolves the outcome to a Result. It never panics
// and never returns an error.
//
// Caller cancellation is detached: the exchange runs to completion bounded by
// the transport's own timeout. Context values such as the logger, trace and
// request IDs are kept.
func Call[T any](ctx context.Context, n *Normalizer, op Operation, spec domain.RequestSpec) (result domain.Result[T]) {
	ctx = context.WithoutCancel(ctx)

	defer func() {
		if r := recover(); r != nil {
			n.logger.ErrorContext(ctx, "recovered from panic during console call",
				slog.String(logging.KeyOperation, op.Name),
				slog.Any("panic", r),
			)

			result = domain.Failure[T](domain.DomainTransport, domain.CodeFailure, op.DefaultMessage())
			n.record(ctx, op, result.Domain, result.Code)
		}
	}()

	out := n.exchange(ctx, op, spec)
	result = Resolve[T](out)
	n.record(ctx, op, result.Domain, result.Code)

	return result
}

// exchange prepares the body, sends spec and classifies what came back.
func (n *Normalizer) exchange(ctx context.Context, op Operation, spec domain.RequestSpec) Outcome {
	body, err := PrepareBody(op, spec.Body)
	if err != nil {
		n.logger.WarnContext(ctx, "rejected request body",
			slog.String(logging.KeyOperation, op.Name),
			slog.Any("error", err),
		)

		return Classify(op, nil, err)
	}

	spec.Body = body
	spec = spec.WithDefaultHeaders()

	n.logger.Log(ctx, logging.LevelTrace, "sending console request",
		slog.String(logging.KeyOperation, op.Name),
		slog.String("method", spec.Method),
		slog.String("path", spec.Path),
	)

	resp, err := n.transport.Send(ctx, spec)
	n.logResponse(ctx, op, resp, err)

	return Classify(op, resp, err)
}

func (n *Normalizer) logResponse(ctx context.Context, op Operation, resp *domain.RawResponse, err error) {
	if err != nil {
		n.logger.DebugContext(ctx, "console request failed",
			slog.String(logging.KeyOperation, op.Name),
			slog.Any("error", err),
		)

		return
	}

	if resp == nil {
		return
	}

	n.logger.DebugContext(ctx, "console response",
		slog.String(logging.KeyOperation, op.Name),
		slog.Int("status", resp.Status),
		slog.Int("bytes", len(resp.Body)),
	)

	if !n.logger.Enabled(ctx, logging.LevelTrace) {
		return
	}

	// Decoded so that redaction sees token and password fields by name.
	var decoded any
	if json.Unmarshal(resp.Body, &decoded) != nil {
		decoded = string(resp.Body)
	}

	n.logger.Log(ctx, logging.LevelTrace, "console response body",
		slog.String(logging.KeyOperation, op.Name),
		slog.Any("body", decoded),
	)
}

func (n *Normalizer) record(ctx context.Context, op Operation, d domain.FailureDomain, code int) {
	n.results.Add(ctx, op.Name, d.String(), code)
}

// PrepareBody applies the request-body policy. Strings, byte slices and
// json.RawMessage values are already-serialized JSON and must parse; any other
// non-nil value is marshaled. Failures are *domain.LocalInputError.
func PrepareBody(op Operation, body any) (json.RawMessage, error) {
	var raw []byte

	switch b := body.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		raw = b
	case []byte:
		raw = b
	case string:
		raw = []byte(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, domain.NewLocalInputError(op.Name, err)
		}

		return data, nil
	}

	if len(raw) == 0 {
		return nil, domain.NewLocalInputError(op.Name, errEmptyBody)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, domain.NewLocalInputError(op.Name, fmt.Errorf("invalid JSON: %w", err))
	}

	return json.RawMessage(raw), nil
}
