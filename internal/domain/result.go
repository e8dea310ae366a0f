package domain

// Business codes carried by every envelope.
const (
	// CodeSuccess marks a successful operation.
	CodeSuccess = 0

	// CodeFailure is the code used when no more specific code is available.
	CodeFailure = 500
)

// Result is the envelope every console operation resolves to.
// Data is non-nil if and only if the Result is a success.
type Result[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    *T     `json:"data"`

	// Domain records where a failure originated. It is not part of the wire envelope.
	Domain FailureDomain `json:"-"`
}

// Success creates a successful Result. A nil data is replaced by a pointer
// to the zero T.
func Success[T any](data *T, message string) Result[T] {
	if data == nil {
		data = new(T)
	}

	return Result[T]{Code: CodeSuccess, Message: message, Data: data}
}

// Failure creates a failed Result in the given domain.
// A success code is replaced by CodeFailure so the Result stays a failure.
func Failure[T any](d FailureDomain, code int, message string) Result[T] {
	if code == CodeSuccess {
		code = CodeFailure
	}

	return Result[T]{Code: code, Message: message, Domain: d}
}

// OK reports whether the Result is a success.
func (r Result[T]) OK() bool {
	return r.Code == CodeSuccess
}

// Err returns nil for a success, or a *ResultError describing the failure.
func (r Result[T]) Err() error {
	if r.OK() {
		return nil
	}

	return &ResultError{Code: r.Code, Message: r.Message, Domain: r.Domain}
}

// Value returns the data, or the zero value when there is none.
func (r Result[T]) Value() T {
	var zero T
	if r.Data == nil {
		return zero
	}

	return *r.Data
}
