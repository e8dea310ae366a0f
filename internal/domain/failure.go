package domain

// FailureDomain classifies where a single call attempt failed.
// The zero value means the call did not fail.
type FailureDomain int

const (
	// DomainNone marks a successful call.
	DomainNone FailureDomain = iota

	// DomainTransport means no HTTP response was obtained.
	DomainTransport

	// DomainHTTPStatus means a response was obtained with a non-2xx status.
	DomainHTTPStatus

	// DomainBusinessStatus means a 2xx response carried a failing business code.
	DomainBusinessStatus

	// DomainLocalInput means the request body was rejected before any network call.
	DomainLocalInput
)

// String returns a stable name for logs and metric attributes.
func (d FailureDomain) String() string {
	switch d {
	case DomainNone:
		return "none"
	case DomainTransport:
		return "transport"
	case DomainHTTPStatus:
		return "http_status"
	case DomainBusinessStatus:
		return "business_status"
	case DomainLocalInput:
		return "local_input"
	default:
		return "unknown"
	}
}

// Sentinel returns the sentinel error for the domain, or nil for DomainNone.
func (d FailureDomain) Sentinel() error {
	switch d {
	case DomainTransport:
		return ErrTransport
	case DomainHTTPStatus:
		return ErrHTTPStatus
	case DomainBusinessStatus:
		return ErrBusinessStatus
	case DomainLocalInput:
		return ErrLocalInput
	default:
		return nil
	}
}
