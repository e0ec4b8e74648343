package xhttp

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds every request made through NewHTTPClient.
const DefaultTimeout = 10 * time.Second

type ClientOption func(*http.Client)

func WithTimeout(d time.Duration) ClientOption {
	return func(c *http.Client) { c.Timeout = d }
}

// WithTransport replaces the base round tripper. Requests still carry the
// pulse User-Agent.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *http.Client) { c.Transport = &pulseTransport{base: rt} }
}

// NewHTTPClient returns a client that identifies pulse and gives up after
// DefaultTimeout unless told otherwise.
func NewHTTPClient(opts ...ClientOption) *http.Client {
	c := &http.Client{
		Transport: NewTransport(),
		Timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
