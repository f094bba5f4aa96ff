package gateway

import (
	"context"
	"fmt"
)

// Request is the payload handed to the wire collaborator. Authorization is
// the opaque value a Credentials implementation produced.
type Request struct {
	Method        string
	Path          string
	Authorization string
	Body          []byte
}

// Response is a structured success payload.
type Response struct {
	Body []byte
}

// StatusError is the failure pair a transport reports: a numeric status code
// plus the gateway-supplied error body, if any.
type StatusError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gateway returned status %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error { return e.Err }

// Transport performs one request against a real gateway. Failures carrying a
// status code are reported as *StatusError.
type Transport interface {
	RoundTrip(ctx context.Context, req Request) (*Response, error)
}
