package acl

import (
	"encoding/json"
	"errors"

	"github.com/jsamuelsen/console-client/internal/domain"
)

// Outcome is the classification of one console exchange.
// Data is only set for successes.
type Outcome struct {
	Domain  domain.FailureDomain
	Code    int
	Message string
	Data    json.RawMessage

	fallback string
}

// OK reports whether the exchange succeeded.
func (o Outcome) OK() bool {
	return o.Domain == domain.DomainNone
}

// Classify maps a transport outcome to exactly one failure domain.
//
// An error carrying a non-2xx response (a *domain.StatusError) is classified
// like the response itself, so its embedded code and message win over the
// operation's default.
func Classify(op Operation, resp *domain.RawResponse, err error) Outcome {
	if err != nil {
		return classifyError(op, err)
	}

	if resp == nil {
		return defaultFailure(op, domain.DomainTransport)
	}

	if !resp.IsSuccess() {
		return classifyStatus(op, resp)
	}

	return classifyBody(op, resp.Body)
}

func classifyError(op Operation, err error) Outcome {
	var statusErr *domain.StatusError
	if errors.As(err, &statusErr) && statusErr.Response != nil && !statusErr.Response.IsSuccess() {
		return classifyStatus(op, statusErr.Response)
	}

	if domain.IsLocalInput(err) {
		return defaultFailure(op, domain.DomainLocalInput)
	}

	return defaultFailure(op, domain.DomainTransport)
}

// classifyStatus handles a response whose status is outside 2xx.
func classifyStatus(op Operation, resp *domain.RawResponse) Outcome {
	out := Outcome{
		Domain:   domain.DomainHTTPStatus,
		Code:     resp.Status,
		Message:  HTTPStatusMessage(resp.Status),
		fallback: op.DefaultMessage(),
	}

	env, err := ParseEnvelope(resp.Body)
	if err != nil {
		return out
	}

	if code, ok := env.GetCode(); ok && code != domain.CodeSuccess {
		out.Code = code
	}

	if msg := env.GetMessage(); msg != "" {
		out.Message = msg
	}

	return out
}

// classifyBody handles a 2xx response.
func classifyBody(op Operation, body []byte) Outcome {
	env, err := ParseEnvelope(body)
	if err != nil {
		return defaultFailure(op, domain.DomainTransport)
	}

	code, ok := env.GetCode()
	if !ok {
		return defaultFailure(op, domain.DomainTransport)
	}

	var message string
	if env.Message != nil {
		message = *env.Message
	}

	if code != domain.CodeSuccess {
		return Outcome{
			Domain:   domain.DomainBusinessStatus,
			Code:     code,
			Message:  env.GetMessage(),
			fallback: op.DefaultMessage(),
		}
	}

	out := Outcome{Code: domain.CodeSuccess, Message: message, fallback: op.DefaultMessage()}
	if env.hasData() {
		out.Data = env.Data
	}

	return out
}

func defaultFailure(op Operation, d domain.FailureDomain) Outcome {
	return Outcome{
		Domain:   d,
		Code:     domain.CodeFailure,
		Message:  op.DefaultMessage(),
		fallback: op.DefaultMessage(),
	}
}

// Resolve decodes an Outcome into a Result. Success data that does not fit T
// becomes a transport-equivalent failure with the default message.
func Resolve[T any](o Outcome) domain.Result[T] {
	if !o.OK() {
		return domain.Failure[T](o.Domain, o.Code, o.Message)
	}

	if len(o.Data) == 0 {
		return domain.Success(new(T), o.Message)
	}

	var data T
	if err := json.Unmarshal(o.Data, &data); err != nil {
		return domain.Failure[T](domain.DomainTransport, domain.CodeFailure, o.fallback)
	}

	return domain.Success(&data, o.Message)
}
