package rawurl

import (
	"testing"

	"github.com/minireq/minireq/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    URL
		wantErr bool
	}{
		{
			name:  "http with defaults",
			input: "http://example.com",
			want:  URL{Scheme: "http", Host: "example.com", Port: 80, Path: "/"},
		},
		{
			name:  "https with defaults",
			input: "https://example.com",
			want:  URL{Scheme: "https", Host: "example.com", Port: 443, Path: "/"},
		},
		{
			name:  "explicit port",
			input: "http://example.com:8080",
			want:  URL{Scheme: "http", Host: "example.com", Port: 8080, Path: "/"},
		},
		{
			name:  "port and path",
			input: "https://example.com:8443/api/v1",
			want:  URL{Scheme: "https", Host: "example.com", Port: 8443, Path: "/api/v1"},
		},
		{
			name:  "path with query kept verbatim",
			input: "http://example.com/search?q=a%20b&x=%2F",
			want:  URL{Scheme: "http", Host: "example.com", Port: 80, Path: "/search?q=a%20b&x=%2F"},
		},
		{
			name:  "unencoded query kept verbatim",
			input: "http://example.com/p a t h?q=1 2",
			want:  URL{Scheme: "http", Host: "example.com", Port: 80, Path: "/p a t h?q=1 2"},
		},
		{
			name:    "missing scheme",
			input:   "example.com/index",
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			input:   "ftp://example.com",
			wantErr: true,
		},
		{
			name:    "empty host",
			input:   "http:///index",
			wantErr: true,
		},
		{
			name:    "empty host with port",
			input:   "http://:8080",
			wantErr: true,
		},
		{
			name:    "non-numeric port",
			input:   "http://example.com:abc/",
			wantErr: true,
		},
		{
			name:    "port out of range",
			input:   "http://example.com:70000/",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %+v", tt.input, got)
				}
				if errors.KindOf(err) != errors.KindURL {
					t.Errorf("expected kind %q, got %q", errors.KindURL, errors.KindOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if *got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, *got, tt.want)
			}
		})
	}
}

func TestAddrAndIsTLS(t *testing.T) {
	u, err := Parse("https://example.com/x")
	if err != nil {
		t.Fatal(err)
	}
	if got := u.Addr(); got != "example.com:443" {
		t.Errorf("Addr() = %q, want %q", got, "example.com:443")
	}
	if !u.IsTLS() {
		t.Error("IsTLS() = false for https URL")
	}

	u, err = Parse("http://example.com:8080")
	if err != nil {
		t.Fatal(err)
	}
	if got := u.Addr(); got != "example.com:8080" {
		t.Errorf("Addr() = %q, want %q", got, "example.com:8080")
	}
	if u.IsTLS() {
		t.Error("IsTLS() = true for http URL")
	}
}

func TestStringRoundTrip(t *testing.T) {
	inputs := []string{
		"http://example.com/",
		"https://example.com/a/b?c=d",
		"http://example.com:8080/x?y=%2F",
	}
	for _, input := range inputs {
		u, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", input, err)
		}
		if got := u.String(); got != input {
			t.Errorf("String() = %q, want %q", got, input)
		}
	}
}
