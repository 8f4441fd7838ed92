package ownhttp

import (
	"net/http"

	"golang.org/x/time/rate"
)

// ThrottleTransport waits for the limiter before every request.
// Waiting is aborted when the request context is done.
type ThrottleTransport struct {
	T       http.RoundTripper
	limiter *rate.Limiter
}

// RoundTrip waits for a token and delegates to the wrapped transport
func (tt *ThrottleTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := tt.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return tt.T.RoundTrip(req)
}

// NewThrottleTransport wraps T (or a default transport if nil) with limiter
func NewThrottleTransport(T http.RoundTripper, limiter *rate.Limiter) *ThrottleTransport {
	if T == nil {
		T = defaultTransport()
	}
	return &ThrottleTransport{T: T, limiter: limiter}
}
