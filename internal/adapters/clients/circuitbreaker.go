package clients

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned while the breaker blocks requests.
var ErrCircuitOpen = errors.New("circuit breaker open")

// State is the circuit breaker state.
type State int

const (
	// StateClosed lets every request through.
	StateClosed State = iota

	// StateOpen blocks requests until the open timeout elapses.
	StateOpen

	// StateHalfOpen lets a limited number of probes through.
	StateHalfOpen
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures the circuit breaker.
// A non-positive MaxFailures disables tripping.
type CircuitBreakerConfig struct {
	MaxFailures   int
	Timeout       time.Duration
	HalfOpenLimit int
}

// CircuitBreaker guards the console transport. It is the only state shared
// between concurrent console calls.
//
// Transitions:
//   - closed to open after MaxFailures consecutive failures
//   - open to half-open once Timeout has passed since the last failure
//   - half-open to closed after HalfOpenLimit consecutive successes
//   - half-open to open on any failure
type CircuitBreaker struct {
	mu        sync.Mutex
	cfg       CircuitBreakerConfig
	state     State
	failures  int
	successes int
	inFlight  int
	openedAt  time.Time

	onStateChange func(from, to State)
	now           func() time.Time
}

// NewCircuitBreaker creates a closed circuit breaker.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.HalfOpenLimit < 1 {
		cfg.HalfOpenLimit = 1
	}

	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// OnStateChange registers a callback invoked after every transition,
// outside the breaker's lock.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.onStateChange = fn
}

// Allow reports whether a request may proceed.
// An allowed request must be followed by RecordSuccess or RecordFailure.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()

	var notify func()

	allowed := false

	switch cb.state {
	case StateClosed:
		allowed = true
	case StateOpen:
		if cb.now().Sub(cb.openedAt) >= cb.cfg.Timeout {
			notify = cb.transitionLocked(StateHalfOpen)
			cb.inFlight = 1
			allowed = true
		}
	case StateHalfOpen:
		if cb.inFlight < cb.cfg.HalfOpenLimit {
			cb.inFlight++
			allowed = true
		}
	}

	cb.mu.Unlock()
	run(notify)

	return allowed
}

// RecordSuccess records a successful exchange.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()

	var notify func()

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.inFlight = max(cb.inFlight-1, 0)
		cb.successes++

		if cb.successes >= cb.cfg.HalfOpenLimit {
			notify = cb.transitionLocked(StateClosed)
		}
	}

	cb.mu.Unlock()
	run(notify)
}

// RecordFailure records a failed exchange.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()

	var notify func()

	switch cb.state {
	case StateClosed:
		cb.failures++

		if cb.cfg.MaxFailures > 0 && cb.failures >= cb.cfg.MaxFailures {
			notify = cb.transitionLocked(StateOpen)
		}
	case StateHalfOpen:
		cb.inFlight = max(cb.inFlight-1, 0)
		notify = cb.transitionLocked(StateOpen)
	}

	cb.mu.Unlock()
	run(notify)
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// transitionLocked changes state and returns the pending notification, if any.
func (cb *CircuitBreaker) transitionLocked(to State) func() {
	from := cb.state
	if from == to {
		return nil
	}

	cb.state = to
	cb.failures = 0
	cb.successes = 0

	if to == StateOpen {
		cb.openedAt = cb.now()
		cb.inFlight = 0
	}

	if cb.onStateChange == nil {
		return nil
	}

	fn := cb.onStateChange

	return func() { fn(from, to) }
}

func run(fn func()) {
	if fn != nil {
		fn()
	}
}
