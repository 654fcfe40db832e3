package errors

import (
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected Kind
	}{
		{
			name:     "URL error",
			err:      NewURLError("missing scheme"),
			expected: KindURL,
		},
		{
			name:     "DNS error",
			err:      NewDNSError("example.com", fmt.Errorf("lookup failed")),
			expected: KindDNS,
		},
		{
			name:     "connection error",
			err:      NewConnectionError("example.com", 443, fmt.Errorf("connection refused")),
			expected: KindConnection,
		},
		{
			name:     "TLS error",
			err:      NewTLSError("example.com", 443, fmt.Errorf("handshake failed")),
			expected: KindTLS,
		},
		{
			name:     "proxy connect error",
			err:      NewProxyConnectError("HTTP/1.1 403 Forbidden"),
			expected: KindProxyConnect,
		},
		{
			name:     "transport error",
			err:      NewTransportError("writing request", fmt.Errorf("broken pipe")),
			expected: KindTransport,
		},
		{
			name:     "status line error",
			err:      NewStatusLineError("garbage"),
			expected: KindStatusLine,
		},
		{
			name:     "header error",
			err:      NewHeaderError("no-colon-here"),
			expected: KindHeader,
		},
		{
			name:     "chunk error",
			err:      NewChunkError("bad chunk size", nil),
			expected: KindChunk,
		},
		{
			name:     "unexpected EOF error",
			err:      NewUnexpectedEOFError("short body", nil),
			expected: KindUnexpectedEOF,
		},
		{
			name:     "UTF-8 error",
			err:      NewUTF8Error(),
			expected: KindUTF8,
		},
		{
			name:     "validation error",
			err:      NewValidationError("host cannot be empty"),
			expected: KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.expected {
				t.Errorf("expected kind %v, got %v", tt.expected, tt.err.Kind)
			}
			if tt.err.Error() == "" {
				t.Error("error message should not be empty")
			}
			if tt.err.Timestamp.IsZero() {
				t.Error("timestamp should be set")
			}
			if KindOf(tt.err) != tt.expected {
				t.Errorf("KindOf = %v, want %v", KindOf(tt.err), tt.expected)
			}
		})
	}
}

func TestProxyConnectErrorCarriesStatusLine(t *testing.T) {
	const line = "HTTP/1.1 403 Forbidden"
	err := NewProxyConnectError(line)
	if err.Detail != line {
		t.Errorf("Detail = %q, want %q", err.Detail, line)
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying error")
	err := NewDNSError("example.com", cause)

	if err.Unwrap() != cause {
		t.Errorf("expected unwrapped error to be %v, got %v", cause, err.Unwrap())
	}
}

func TestErrorIs(t *testing.T) {
	err := NewConnectionError("example.com", 80, fmt.Errorf("refused"))
	if !err.Is(&Error{Kind: KindConnection}) {
		t.Error("Is should match errors of the same kind")
	}
	if err.Is(&Error{Kind: KindTLS}) {
		t.Error("Is should not match errors of a different kind")
	}
}

func TestIsKind(t *testing.T) {
	err := NewHeaderError("bad")
	if !IsKind(err, KindHeader) {
		t.Error("IsKind(KindHeader) = false")
	}
	if IsKind(err, KindChunk) {
		t.Error("IsKind(KindChunk) = true")
	}
	if IsKind(fmt.Errorf("plain"), KindHeader) {
		t.Error("IsKind should be false for plain errors")
	}
}

func TestKindOfWrapped(t *testing.T) {
	inner := NewTransportError("reading", fmt.Errorf("reset"))
	wrapped := fmt.Errorf("send failed: %w", inner)
	if KindOf(wrapped) != KindTransport {
		t.Errorf("KindOf(wrapped) = %v, want %v", KindOf(wrapped), KindTransport)
	}
}
