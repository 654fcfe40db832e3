// Package errors provides structured error types for the minireq library.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// Kind represents the category of error that occurred.
type Kind string

const (
	// KindURL represents URL parsing and validation errors
	KindURL Kind = "url"
	// KindDNS represents DNS resolution errors
	KindDNS Kind = "dns"
	// KindConnection represents TCP connection errors
	KindConnection Kind = "connection"
	// KindTLS represents TLS handshake errors
	KindTLS Kind = "tls"
	// KindProxyConnect represents proxy CONNECT handshake errors
	KindProxyConnect Kind = "proxy-connect"
	// KindTransport represents read/write I/O errors mid-operation
	KindTransport Kind = "transport"
	// KindStatusLine represents malformed response status lines
	KindStatusLine Kind = "status-line"
	// KindHeader represents malformed response header lines
	KindHeader Kind = "header"
	// KindChunk represents malformed chunked transfer framing
	KindChunk Kind = "chunk"
	// KindUnexpectedEOF represents a stream that ended before the declared body
	KindUnexpectedEOF Kind = "unexpected-eof"
	// KindUTF8 represents body text that is not valid UTF-8
	KindUTF8 Kind = "utf8"
	// KindValidation represents request validation errors
	KindValidation Kind = "validation"
)

// Error represents a structured error with context information.
type Error struct {
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	Cause     error     `json:"cause,omitempty"`
	Host      string    `json:"host,omitempty"`
	Port      int       `json:"port,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// NewURLError creates a URL parsing error.
func NewURLError(message string) *Error {
	return &Error{
		Kind:      KindURL,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewDNSError creates a DNS resolution error.
func NewDNSError(host string, cause error) *Error {
	return &Error{
		Kind:      KindDNS,
		Message:   fmt.Sprintf("DNS lookup failed for host %s", host),
		Cause:     cause,
		Host:      host,
		Timestamp: time.Now(),
	}
}

// NewConnectionError creates a connection error.
func NewConnectionError(host string, port int, cause error) *Error {
	return &Error{
		Kind:      KindConnection,
		Message:   fmt.Sprintf("failed to connect to %s:%d", host, port),
		Cause:     cause,
		Host:      host,
		Port:      port,
		Timestamp: time.Now(),
	}
}

// NewTLSError creates a TLS handshake error.
func NewTLSError(host string, port int, cause error) *Error {
	return &Error{
		Kind:      KindTLS,
		Message:   fmt.Sprintf("TLS handshake failed for %s:%d", host, port),
		Cause:     cause,
		Host:      host,
		Port:      port,
		Timestamp: time.Now(),
	}
}

// NewProxyConnectError creates a proxy CONNECT error.
// The Detail field carries the offending status line returned by the proxy.
func NewProxyConnectError(statusLine string) *Error {
	return &Error{
		Kind:      KindProxyConnect,
		Message:   fmt.Sprintf("proxy refused CONNECT: %s", statusLine),
		Detail:    statusLine,
		Timestamp: time.Now(),
	}
}

// NewTransportError creates a transport I/O error.
func NewTransportError(operation string, cause error) *Error {
	return &Error{
		Kind:      KindTransport,
		Message:   fmt.Sprintf("I/O error during %s", operation),
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// NewStatusLineError creates a malformed status line error.
// The Detail field carries the offending line as read from the wire.
func NewStatusLineError(line string) *Error {
	return &Error{
		Kind:      KindStatusLine,
		Message:   fmt.Sprintf("malformed status line %q", line),
		Detail:    line,
		Timestamp: time.Now(),
	}
}

// NewHeaderError creates a malformed header error.
// The Detail field carries the offending line as read from the wire.
func NewHeaderError(line string) *Error {
	return &Error{
		Kind:      KindHeader,
		Message:   fmt.Sprintf("malformed header line %q", line),
		Detail:    line,
		Timestamp: time.Now(),
	}
}

// NewChunkError creates a malformed chunk error.
func NewChunkError(message string, cause error) *Error {
	return &Error{
		Kind:      KindChunk,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// NewUnexpectedEOFError creates an error for a body cut short by stream EOF.
func NewUnexpectedEOFError(message string, cause error) *Error {
	return &Error{
		Kind:      KindUnexpectedEOF,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// NewUTF8Error creates an invalid UTF-8 decoding error.
func NewUTF8Error() *Error {
	return &Error{
		Kind:      KindUTF8,
		Message:   "response body is not valid UTF-8",
		Timestamp: time.Now(),
	}
}

// NewValidationError creates a validation error.
func NewValidationError(message string) *Error {
	return &Error{
		Kind:      KindValidation,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// KindOf returns the error kind if it's a structured error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is a structured error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	if errors.As(err, &e) && e.Cause != nil {
		err = e.Cause
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// IsContextCanceled checks if an error is due to context cancellation.
func IsContextCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
