package version

import "testing"

func TestIsDevelopment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    string
		want bool
	}{
		{name: "devel", v: "devel", want: true},
		{name: "unknown", v: "unknown", want: true},
		{name: "empty", v: "", want: true},
		{name: "dirty", v: "v1.2.0-dirty", want: true},
		{name: "pseudo version", v: "v0.0.0-0.20250101000000-abcdef123456", want: true},
		{name: "release", v: "v1.2.0", want: false},
		{name: "release without prefix", v: "1.0.3", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsDevelopment(tt.v); got != tt.want {
				t.Errorf("IsDevelopment(%q) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestIsNewer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
	}{
		{name: "same version", current: "1.0.0", latest: "1.0.0", want: false},
		{name: "v prefix on one side", current: "v1.0.0", latest: "1.0.0", want: false},
		{name: "minor bump", current: "v1.0.0", latest: "v1.1.0", want: true},
		{name: "major bump", current: "1.9.9", latest: "2.0.0", want: true},
		{name: "patch bump", current: "1.0.0", latest: "1.0.1", want: true},
		{name: "numeric not lexical", current: "1.9.0", latest: "1.10.0", want: true},
		{name: "older release", current: "1.2.0", latest: "1.1.9", want: false},
		{name: "devel never outdated", current: "devel", latest: "1.0.0", want: false},
		{name: "dirty never outdated", current: "1.0.0-dirty", latest: "1.1.0", want: false},
		{name: "pseudo version never outdated", current: "1.0.0-0.abc123", latest: "1.1.0", want: false},
		{name: "unparseable latest", current: "1.0.0", latest: "nightly", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsNewer(tt.current, tt.latest); got != tt.want {
				t.Errorf("IsNewer(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
			}
		})
	}
}
