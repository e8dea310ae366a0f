package acl

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errNotEnvelope = errors.New("body is not a JSON object")

// Envelope is the console's response shape. It also accepts the nested
// {"error": {"code", "message"}} form some gateways emit on errors.
type Envelope struct {
	Code    *int            `json:"code"`
	Message *string         `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *EnvelopeError  `json:"error,omitempty"`
}

// EnvelopeError is the nested error form.
type EnvelopeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ParseEnvelope decodes a response body. It fails for empty bodies, invalid
// JSON and JSON that is not an object.
func ParseEnvelope(body []byte) (*Envelope, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errNotEnvelope
	}

	var env Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}

	return &env, nil
}

// GetCode returns the top-level code, falling back to the nested one.
// The boolean is false when neither is present.
func (e *Envelope) GetCode() (int, bool) {
	if e.Code != nil {
		return *e.Code, true
	}

	if e.Error != nil && e.Error.Code != 0 {
		return e.Error.Code, true
	}

	return 0, false
}

// GetMessage returns the top-level message, falling back to the nested one.
func (e *Envelope) GetMessage() string {
	if e.Message != nil && *e.Message != "" {
		return *e.Message
	}

	if e.Error != nil {
		return e.Error.Message
	}

	return ""
}

// hasData reports whether the envelope carries a non-null data field.
func (e *Envelope) hasData() bool {
	return len(e.Data) > 0 && !bytes.Equal(bytes.TrimSpace(e.Data), []byte("null"))
}
