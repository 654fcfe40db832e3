// Package minireq is a minimal raw HTTP/1.1 client library. Given a URL,
// optional headers, an optional proxy and a method, it opens a fresh TCP
// (optionally TLS, optionally proxy-tunneled) connection, writes a
// well-formed HTTP/1.1 request and parses the returned byte stream into a
// structured response.
package minireq

import (
	"github.com/minireq/minireq/pkg/client"
	"github.com/minireq/minireq/pkg/errors"
	"github.com/minireq/minireq/pkg/rawurl"
	"github.com/minireq/minireq/pkg/timing"
	"github.com/minireq/minireq/pkg/transport"
)

// Version is the current version of the minireq library
const Version = "1.0.0"

// Re-export key types for easier usage
type (
	// Client is the fluent request builder.
	Client = client.Client

	// Pair is a single header name/value pair.
	Pair = client.Pair

	// Response represents a parsed HTTP response.
	Response = client.Response

	// URL is a parsed target resource locator.
	URL = rawurl.URL

	// ProxyConfig describes an upstream proxy.
	ProxyConfig = transport.ProxyConfig

	// Metrics captures detailed timing information for a request.
	Metrics = timing.Metrics

	// Error represents a structured error with context information.
	Error = errors.Error
)

// Re-export error kinds for convenience
const (
	KindURL           = errors.KindURL
	KindDNS           = errors.KindDNS
	KindConnection    = errors.KindConnection
	KindTLS           = errors.KindTLS
	KindProxyConnect  = errors.KindProxyConnect
	KindTransport     = errors.KindTransport
	KindStatusLine    = errors.KindStatusLine
	KindHeader        = errors.KindHeader
	KindChunk         = errors.KindChunk
	KindUnexpectedEOF = errors.KindUnexpectedEOF
	KindUTF8          = errors.KindUTF8
	KindValidation    = errors.KindValidation
)

// New creates a request builder targeting rawURL.
func New(rawURL string) (*Client, error) {
	return client.New(rawURL)
}

// Get issues a GET request to rawURL with default settings.
func Get(rawURL string) (*Response, error) {
	c, err := client.New(rawURL)
	if err != nil {
		return nil, err
	}
	return c.Get().Send()
}

// Post issues a POST request to rawURL with default settings.
func Post(rawURL string) (*Response, error) {
	c, err := client.New(rawURL)
	if err != nil {
		return nil, err
	}
	return c.Post().Send()
}

// Head issues a HEAD request to rawURL with default settings.
func Head(rawURL string) (*Response, error) {
	c, err := client.New(rawURL)
	if err != nil {
		return nil, err
	}
	return c.Head().Send()
}

// Delete issues a DELETE request to rawURL with default settings.
func Delete(rawURL string) (*Response, error) {
	c, err := client.New(rawURL)
	if err != nil {
		return nil, err
	}
	return c.Delete().Send()
}

// Put issues a PUT request to rawURL with default settings.
func Put(rawURL string) (*Response, error) {
	c, err := client.New(rawURL)
	if err != nil {
		return nil, err
	}
	return c.Put().Send()
}

// Options issues an OPTIONS request to rawURL with default settings.
func Options(rawURL string) (*Response, error) {
	c, err := client.New(rawURL)
	if err != nil {
		return nil, err
	}
	return c.Options().Send()
}

// KindOf returns the error kind if err is a structured error.
func KindOf(err error) errors.Kind {
	return errors.KindOf(err)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	return errors.IsTimeout(err)
}
