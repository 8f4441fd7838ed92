package ownhttp

import (
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// UserAgent is sent with every request made by clients of this package
var UserAgent = "mclaunch/dev"

// AddHeaderTransport sets the User-Agent header on every request
type AddHeaderTransport struct {
	T http.RoundTripper
}

// RoundTrip sets the header and delegates to the wrapped transport
func (adt *AddHeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the passed request
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", UserAgent)
	return adt.T.RoundTrip(req)
}

// NewAddHeaderTransport wraps T (or a default transport if nil)
func NewAddHeaderTransport(T http.RoundTripper) *AddHeaderTransport {
	if T == nil {
		T = defaultTransport()
	}
	return &AddHeaderTransport{T}
}

// defaultTransport only limits connection setup. There is no overall request
// timeout, big downloads may take as long as they need.
func defaultTransport() http.RoundTripper {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConnsPerHost:   16,
		TLSHandshakeTimeout:   20 * time.Second,
		ResponseHeaderTimeout: 60 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// New returns a new http.Client with the AddHeaderTransport (setting the User-Agent header)
func New() *http.Client {
	return &http.Client{Transport: NewAddHeaderTransport(nil)}
}

// NewThrottled returns a client like [New] that sends at most rps requests per second.
// rps <= 0 returns an unthrottled client.
func NewThrottled(rps float64) *http.Client {
	if rps <= 0 {
		return New()
	}
	limiter := rate.NewLimiter(rate.Limit(rps), 1)
	return &http.Client{Transport: NewThrottleTransport(NewAddHeaderTransport(nil), limiter)}
}
