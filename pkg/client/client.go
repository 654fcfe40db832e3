// Package client provides the fluent request builder and drives the
// connect/write/read cycle of a single HTTP exchange.
package client

import (
	"bufio"
	"context"
	"fmt"
	"time"

	"github.com/minireq/minireq/pkg/constants"
	"github.com/minireq/minireq/pkg/errors"
	"github.com/minireq/minireq/pkg/rawurl"
	"github.com/minireq/minireq/pkg/timing"
	"github.com/minireq/minireq/pkg/transport"
)

// Pair is a single header name/value pair.
type Pair struct {
	Name  string
	Value string
}

// Client accumulates a request description and executes it with Send. A
// Client is uniquely owned by its caller and must not be shared between
// goroutines; each request execution owns its connection exclusively.
type Client struct {
	method      string
	url         *rawurl.URL
	headers     *headerMap
	body        []byte
	proxy       *transport.ProxyConfig
	timeout     time.Duration
	insecureTLS bool

	transport *transport.Transport
}

// New creates a Client targeting rawURL.
func New(rawURL string) (*Client, error) {
	u, err := rawurl.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		method:    "GET",
		url:       u,
		headers:   newHeaderMap(),
		timeout:   constants.DefaultTimeout,
		transport: transport.New(),
	}, nil
}

// Get selects the GET method.
func (c *Client) Get() *Client { return c.Method("GET") }

// Post selects the POST method.
func (c *Client) Post() *Client { return c.Method("POST") }

// Head selects the HEAD method.
func (c *Client) Head() *Client { return c.Method("HEAD") }

// Put selects the PUT method.
func (c *Client) Put() *Client { return c.Method("PUT") }

// Delete selects the DELETE method.
func (c *Client) Delete() *Client { return c.Method("DELETE") }

// Options selects the OPTIONS method.
func (c *Client) Options() *Client { return c.Method("OPTIONS") }

// Method selects an arbitrary request method.
func (c *Client) Method(method string) *Client {
	c.method = method
	return c
}

// Headers merges pairs into the header mapping. Names are matched
// case-insensitively and a later pair replaces an earlier value for the
// same name.
func (c *Client) Headers(pairs []Pair) *Client {
	for _, p := range pairs {
		c.headers.Set(p.Name, p.Value)
	}
	return c
}

// Header sets a single header field.
func (c *Client) Header(name, value string) *Client {
	c.headers.Set(name, value)
	return c
}

// Body sets the request body. The bytes are copied so later mutation of b
// does not affect the request.
func (c *Client) Body(b []byte) *Client {
	c.body = append([]byte(nil), b...)
	return c
}

// BodyString sets the request body from a string.
func (c *Client) BodyString(s string) *Client {
	c.body = []byte(s)
	return c
}

// Timeout sets the connect/read/write deadline for the exchange.
// The default is 30 seconds.
func (c *Client) Timeout(d time.Duration) *Client {
	c.timeout = d
	return c
}

// Verify toggles TLS certificate verification. Only valid for https targets.
func (c *Client) Verify(verify bool) (*Client, error) {
	if !c.url.IsTLS() {
		return nil, errors.NewValidationError("verify setting only applies to https")
	}
	c.insecureTLS = !verify
	return c, nil
}

// Proxy routes the request through the proxy at proxyURL
// (http://, https:// or socks5://).
func (c *Client) Proxy(proxyURL string) (*Client, error) {
	p, err := transport.ParseProxyURL(proxyURL)
	if err != nil {
		return nil, err
	}
	c.proxy = p
	return c, nil
}

// Send executes the request and returns the parsed response.
func (c *Client) Send() (*Response, error) {
	return c.SendContext(context.Background())
}

// SendContext executes the request end-to-end on the calling goroutine:
// connect, write the request, read the response. The connection is opened
// fresh and closed before returning; a failed connection is never reused.
func (c *Client) SendContext(ctx context.Context) (*Response, error) {
	spec, err := c.finalize()
	if err != nil {
		return nil, err
	}

	timer := timing.NewTimer()

	conn, err := c.transport.Connect(ctx, transport.Config{
		Scheme:      spec.url.Scheme,
		Host:        spec.url.Host,
		Port:        spec.url.Port,
		InsecureTLS: spec.insecureTLS,
		ConnTimeout: spec.timeout,
		Proxy:       spec.proxy,
	}, timer)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if spec.timeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(spec.timeout)); err != nil {
			return nil, errors.NewTransportError("setting deadline", err)
		}
	}

	if err := writeRequest(conn, spec); err != nil {
		return nil, err
	}

	response, err := readResponse(bufio.NewReader(conn), timer)
	if err != nil {
		return nil, err
	}
	response.Metrics = timer.GetMetrics()

	return response, nil
}

// finalize validates the accumulated state and freezes it into the spec
// consumed by the writer.
func (c *Client) finalize() (*requestSpec, error) {
	if c.method == "" {
		return nil, errors.NewValidationError("request method cannot be empty")
	}
	if c.body != nil && (c.method == "GET" || c.method == "HEAD") {
		return nil, errors.NewValidationError(
			fmt.Sprintf("%s request cannot carry a body", c.method))
	}
	return &requestSpec{
		method:      c.method,
		url:         c.url,
		headers:     c.headers.clone(),
		body:        c.body,
		proxy:       c.proxy,
		timeout:     c.timeout,
		insecureTLS: c.insecureTLS,
	}, nil
}
