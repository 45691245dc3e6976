package shared

import (
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/ratelimit"
	"golang.org/x/time/rate"
)

// RequestsPerSecond is the sustained rate allowed through one endpoint. Bursts
// of the same size pass immediately.
const RequestsPerSecond = 100

// NewLimiter returns a middleware that holds callers over RequestsPerSecond
// until a token frees up. It fails only when the caller's context ends
// first, so valid requests are slowed rather than rejected.
//
// It belongs outside the circuit breaker: throttling is not a backend fault.
func NewLimiter() endpoint.Middleware {
	return ratelimit.NewDelayingLimiter(rate.NewLimiter(rate.Limit(RequestsPerSecond), RequestsPerSecond))
}
