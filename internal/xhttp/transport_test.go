package xhttp

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/garrettladley/pulse/internal/version"
)

func TestNewHTTPClient_SetsUserAgent(t *testing.T) {
	t.Parallel()

	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(HeaderUserAgent)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewHTTPClient(WithTimeout(time.Second), WithTransport(srv.Client().Transport))
	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	_ = resp.Body.Close()

	if want := version.UserAgent(); got != want {
		t.Errorf("User-Agent = %q, want %q", got, want)
	}
	if client.Timeout != time.Second {
		t.Errorf("Timeout = %v, want %v", client.Timeout, time.Second)
	}
}

func TestNewHTTPClient_Timeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []ClientOption
		want time.Duration
	}{
		{name: "default", want: DefaultTimeout},
		{name: "override", opts: []ClientOption{WithTimeout(2 * time.Second)}, want: 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NewHTTPClient(tt.opts...).Timeout; got != tt.want {
				t.Errorf("Timeout = %v, want %v", got, tt.want)
			}
		})
	}
}
