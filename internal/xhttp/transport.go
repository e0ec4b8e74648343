package xhttp

import (
	"fmt"
	"net/http"

	"github.com/garrettladley/pulse/internal/version"
)

const HeaderUserAgent = "User-Agent"

type pulseTransport struct {
	base http.RoundTripper
}

var _ http.RoundTripper = (*pulseTransport)(nil)

func (t *pulseTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set(HeaderUserAgent, version.UserAgent())
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform round trip: %w", err)
	}
	return resp, nil
}

// NewTransport returns an http.RoundTripper that identifies pulse.
func NewTransport() http.RoundTripper {
	return &pulseTransport{base: http.DefaultTransport}
}
