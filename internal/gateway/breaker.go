package gateway

import (
	"context"
	"errors"

	"github.com/sony/gobreaker"

	"github.com/paybridge/paybridge/internal/domain/pay"
)

// BreakerTransport guards a Transport with a circuit breaker. While the
// circuit is open, calls fail fast as server-unavailable without touching
// the wire. Retries stay with the caller.
type BreakerTransport struct {
	inner   Transport
	breaker *gobreaker.CircuitBreaker
}

func NewBreakerTransport(name string, inner Transport) *BreakerTransport {
	return &BreakerTransport{
		inner: inner,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: name,
		}),
	}
}

func (t *BreakerTransport) RoundTrip(ctx context.Context, req Request) (*Response, error) {
	result, err := t.breaker.Execute(func() (any, error) {
		return t.inner.RoundTrip(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &pay.Error{
				Kind:    pay.KindServerUnavailable,
				Op:      "gateway.RoundTrip",
				Message: "circuit open",
				Err:     err,
			}
		}
		return nil, err
	}
	return result.(*Response), nil
}
