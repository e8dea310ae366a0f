// Package clients is the HTTP transport to the console backend. Its errors
// are classified into failure domains by the acl normalizer.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/console-client/internal/adapters/http/middleware"
	"github.com/jsamuelsen/console-client/internal/domain"
	"github.com/jsamuelsen/console-client/internal/platform/config"
	"github.com/jsamuelsen/console-client/internal/platform/logging"
	"github.com/jsamuelsen/console-client/internal/platform/telemetry"
)

// ErrMaxRetriesExceeded wraps the last error once every attempt has failed.
var ErrMaxRetriesExceeded = errors.New("max retries exceeded")

const (
	defaultTimeout          = 15 * time.Second
	defaultMaxResponseBytes = 4 << 20

	// jitterRangeMultiplier converts rand [0,1) to [-1,1) for symmetric jitter.
	jitterRangeMultiplier = 2
)

// Config configures a transport instance.
type Config struct {
	// BaseURL prefixes every RequestSpec path, e.g. "http://127.0.0.1:8080/api".
	BaseURL string

	// ServiceName identifies the endpoint in logs, spans and metrics.
	ServiceName string

	// Timeout bounds a single attempt.
	Timeout time.Duration

	Retry     config.RetryConfig
	Circuit   config.CircuitBreakerConfig
	Transport config.TransportConfig

	// StatusAsError turns non-2xx responses into *domain.StatusError.
	StatusAsError bool

	// MaxResponseBytes caps how much of a body is read. Defaults to 4MB.
	MaxResponseBytes int64

	// AuthFunc is called for each attempt to inject credentials.
	AuthFunc func(*http.Request)

	// HTTPClient replaces the pooled client built from Transport. Used by tests.
	HTTPClient *http.Client

	Logger *slog.Logger
}

// Client is the console transport. It implements ports.Transport with:
//   - retry with exponential backoff and jitter
//   - circuit breaker protection
//   - OpenTelemetry tracing and metrics
//   - request/correlation ID propagation
type Client struct {
	http    *http.Client
	baseURL string
	cfg     Config
	logger  *slog.Logger
	cb      *CircuitBreaker
	tracer  trace.Tracer
	metrics *telemetry.ClientMetrics
}

// New creates a console transport.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}

	c := *cfg
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}

	if c.Retry.MaxAttempts < 1 {
		c.Retry.MaxAttempts = 1
	}

	if c.MaxResponseBytes <= 0 {
		c.MaxResponseBytes = defaultMaxResponseBytes
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(
		slog.String("component", "clients.Client"),
		slog.String("downstream", c.ServiceName),
	)

	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   c.Circuit.MaxFailures,
		Timeout:       c.Circuit.Timeout,
		HalfOpenLimit: c.Circuit.HalfOpenLimit,
	})
	cb.OnStateChange(func(from, to State) {
		logger.Warn("circuit breaker state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	metrics, err := telemetry.NewClientMetrics()
	if err != nil {
		return nil, fmt.Errorf("creating client metrics: %w", err)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   c.Timeout,
			Transport: newPooledTransport(c.Transport),
		}
	}

	return &Client{
		http:    httpClient,
		baseURL: strings.TrimSuffix(c.BaseURL, "/"),
		cfg:     c,
		logger:  logger,
		cb:      cb,
		tracer:  telemetry.Tracer(),
		metrics: metrics,
	}, nil
}

func newPooledTransport(cfg config.TransportConfig) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.MaxIdleConns > 0 {
		t.MaxIdleConns = cfg.MaxIdleConns
	}

	if cfg.MaxIdleConnsPerHost > 0 {
		t.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost
	}

	if cfg.IdleConnTimeout > 0 {
		t.IdleConnTimeout = cfg.IdleConnTimeout
	}

	return t
}

// Send performs one logical exchange for spec, retrying per the retry config.
//
// A nil error means a response was obtained. Errors wrap ErrCircuitOpen,
// ErrMaxRetriesExceeded or the underlying network error. With StatusAsError,
// non-2xx responses come back as a *domain.StatusError.
func (c *Client) Send(ctx context.Context, spec domain.RequestSpec) (*domain.RawResponse, error) {
	start := time.Now()

	target, err := c.buildURL(spec.Path, spec.Query)
	if err != nil {
		return nil, err
	}

	body, err := encodeBody(spec.Body)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx).With(
		slog.String("downstream", c.cfg.ServiceName),
		slog.String("method", spec.Method),
		slog.String("path", spec.Path),
	)

	if !c.cb.Allow() {
		c.metrics.Record(ctx, c.cfg.ServiceName, spec.Method, 0, time.Since(start))
		logger.Warn("request blocked by circuit breaker")

		return nil, ErrCircuitOpen
	}

	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("HTTP %s %s", spec.Method, spec.Path),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", spec.Method),
			attribute.String("http.url", target),
			attribute.String("peer.service", c.cfg.ServiceName),
		),
	)
	defer span.End()

	newRequest := func() (*http.Request, error) {
		var reader io.Reader = http.NoBody
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, spec.Method, target, reader)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}

		c.injectHeaders(ctx, req, spec.Headers)

		return req, nil
	}

	resp, attempts, err := c.executeWithRetry(ctx, newRequest, logger)

	return c.recordResult(ctx, spec.Method, resp, attempts, err, span, logger, start)
}

func (c *Client) executeWithRetry(
	ctx context.Context,
	newRequest func() (*http.Request, error),
	logger *slog.Logger,
) (*domain.RawResponse, int, error) {
	var (
		resp    *domain.RawResponse
		lastErr error
	)

	maxAttempts := c.cfg.Retry.MaxAttempts

	for attempt := range maxAttempts {
		if attempt > 0 {
			if err := c.waitForRetry(ctx, attempt, logger); err != nil {
				return nil, attempt, err
			}
		}

		req, err := newRequest()
		if err != nil {
			return nil, attempt + 1, err
		}

		resp, lastErr = c.attempt(req)

		if !c.shouldRetry(req.Method, resp, lastErr) || attempt == maxAttempts-1 {
			return resp, attempt + 1, lastErr
		}

		logger.Debug("attempt failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.Any("error", lastErr),
		)
	}

	return resp, maxAttempts, lastErr
}

// attempt performs one HTTP round trip and reads the whole body.
func (c *Client) attempt(req *http.Request) (*domain.RawResponse, error) {
	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, c.cfg.MaxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &domain.RawResponse{
		Status: httpResp.StatusCode,
		Header: httpResp.Header,
		Body:   data,
	}, nil
}

// shouldRetry reports whether a failed attempt may be repeated. Non-idempotent
// methods never are: the console may have committed the write before failing.
func (c *Client) shouldRetry(method string, resp *domain.RawResponse, err error) bool {
	if !isIdempotent(method) {
		return false
	}

	if err != nil {
		return isRetryableError(err)
	}

	return resp.Status >= http.StatusInternalServerError
}

// isIdempotent follows RFC 9110 section 9.2.2.
func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

func (c *Client) waitForRetry(ctx context.Context, attempt int, logger *slog.Logger) error {
	backoff := c.calculateBackoff(attempt)
	logger.Debug("retrying request",
		slog.Int("attempt", attempt+1),
		slog.Duration("backoff", backoff),
	)

	timer := time.NewTimer(backoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) recordResult(
	ctx context.Context,
	method string,
	resp *domain.RawResponse,
	attempts int,
	err error,
	span trace.Span,
	logger *slog.Logger,
	start time.Time,
) (*domain.RawResponse, error) {
	elapsed := time.Since(start)

	if err != nil {
		c.cb.RecordFailure()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.metrics.Record(ctx, c.cfg.ServiceName, method, 0, elapsed)
		logger.Warn("request failed",
			slog.Int("attempts", attempts),
			slog.Duration("duration", elapsed),
			slog.Any("error", err),
		)

		if attempts > 1 {
			return nil, fmt.Errorf("%w after %d attempts: %w", ErrMaxRetriesExceeded, attempts, err)
		}

		return nil, fmt.Errorf("%s: %w", c.cfg.ServiceName, err)
	}

	if resp.Status >= http.StatusInternalServerError {
		c.cb.RecordFailure()
	} else {
		c.cb.RecordSuccess()
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.Status))

	if resp.Status >= http.StatusBadRequest {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.Status))
	}

	c.metrics.Record(ctx, c.cfg.ServiceName, method, resp.Status, elapsed)
	logger.Debug("request completed",
		slog.Int("status", resp.Status),
		slog.Int("attempts", attempts),
		slog.Duration("duration", elapsed),
	)

	if c.cfg.StatusAsError && !resp.IsSuccess() {
		return nil, domain.NewStatusError(resp)
	}

	return resp, nil
}

// CircuitState returns the current state of the circuit breaker.
func (c *Client) CircuitState() State {
	return c.cb.State()
}

// ServiceName returns the configured endpoint name.
func (c *Client) ServiceName() string {
	return c.cfg.ServiceName
}

func (c *Client) injectHeaders(ctx context.Context, req *http.Request, headers map[string]string) {
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.HeaderRequestID, requestID)
	}

	if correlationID := middleware.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set(middleware.HeaderCorrelationID, correlationID)
	}

	if c.cfg.AuthFunc != nil {
		c.cfg.AuthFunc(req)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

func (c *Client) buildURL(path string, query map[string]any) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	target := c.baseURL + path

	encoded, err := EncodeQuery(query)
	if err != nil {
		return "", err
	}

	if encoded != "" {
		target += "?" + encoded
	}

	return target, nil
}

// encodeBody serializes a request body. Already-serialized bodies are sent as is.
func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return b, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		return data, nil
	}
}

// calculateBackoff returns an exponential backoff with jitter for the given attempt.
func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := float64(c.cfg.Retry.InitialInterval) * math.Pow(c.cfg.Retry.Multiplier, float64(attempt))

	if maxInterval := float64(c.cfg.Retry.MaxInterval); maxInterval > 0 && backoff > maxInterval {
		backoff = maxInterval
	}

	jitter := rand.Float64()*jitterRangeMultiplier - 1 //nolint:gosec // No need for crypto-grade randomness
	backoff += backoff * c.cfg.Retry.JitterFactor * jitter

	return time.Duration(backoff)
}

// isRetryableError reports whether a network error is worth another attempt.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)
}
