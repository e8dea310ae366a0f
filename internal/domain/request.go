package domain

import "net/http"

// Header names and values applied to every console request.
const (
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// RequestSpec describes a single outbound console call.
type RequestSpec struct {
	// Method is one of GET, POST, PUT or DELETE.
	Method string

	// Path is appended to the transport's base URL.
	Path string

	// Query is encoded into the URL query string. Optional.
	Query map[string]any

	// Body is opaque to the façades. A string, []byte or json.RawMessage
	// is treated as already-serialized JSON.
	Body any

	// Headers are sent in addition to the defaults.
	Headers map[string]string
}

// WithDefaultHeaders returns a copy of the spec whose headers include
// Content-Type: application/json unless the caller set one.
func (s RequestSpec) WithDefaultHeaders() RequestSpec {
	headers := make(map[string]string, len(s.Headers)+1)
	for k, v := range s.Headers {
		headers[k] = v
	}

	if _, ok := lookupHeader(headers, HeaderContentType); !ok {
		headers[HeaderContentType] = ContentTypeJSON
	}

	s.Headers = headers

	return s
}

func lookupHeader(headers map[string]string, name string) (string, bool) {
	canonical := http.CanonicalHeaderKey(name)
	for k, v := range headers {
		if http.CanonicalHeaderKey(k) == canonical {
			return v, true
		}
	}

	return "", false
}

// RawResponse is what a transport obtained from the server.
type RawResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

// IsSuccess reports whether the status is in the 2xx range.
func (r *RawResponse) IsSuccess() bool {
	return r.Status >= http.StatusOK && r.Status < http.StatusMultipleChoices
}
