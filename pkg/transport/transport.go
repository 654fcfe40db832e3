// Package transport establishes the byte stream a request travels over:
// a direct TCP connection, optionally wrapped in TLS, optionally tunneled
// through an HTTP CONNECT or SOCKS5 proxy.
package transport

import (
	"context"
	"crypto/tls"
	"net"
	"strconv"
	"time"

	"github.com/minireq/minireq/pkg/constants"
	"github.com/minireq/minireq/pkg/errors"
	"github.com/minireq/minireq/pkg/timing"
	"github.com/minireq/minireq/pkg/tlsconfig"
)

// Config holds transport configuration for a single connection.
type Config struct {
	Scheme      string
	Host        string
	Port        int
	SNI         string
	InsecureTLS bool
	ConnTimeout time.Duration
	DNSTimeout  time.Duration

	// Proxy, when non-nil, routes the connection through a proxy.
	Proxy *ProxyConfig

	// CustomCACerts holds additional root CA certificates in PEM format.
	CustomCACerts [][]byte

	// TLSConfig allows direct passthrough of a crypto/tls.Config.
	// When nil, a configuration is built from the other options.
	TLSConfig *tls.Config
}

// Transport opens connections. A connection is owned by exactly one request
// execution and is never reused.
type Transport struct {
	resolver *net.Resolver
}

// New creates a new Transport instance.
func New() *Transport {
	return &Transport{
		resolver: net.DefaultResolver,
	}
}

// NewWithResolver creates a new Transport with a custom resolver.
func NewWithResolver(resolver *net.Resolver) *Transport {
	return &Transport{
		resolver: resolver,
	}
}

// Connect establishes a connection based on the configuration. The returned
// net.Conn is ready for the HTTP exchange: any proxy tunnel and TLS
// handshake have already completed.
func (t *Transport) Connect(ctx context.Context, config Config, timer *timing.Timer) (net.Conn, error) {
	if err := t.validateConfig(config); err != nil {
		return nil, err
	}
	if timer == nil {
		timer = timing.NewTimer()
	}

	connTimeout := config.ConnTimeout
	if connTimeout <= 0 {
		connTimeout = constants.DefaultConnTimeout
	}

	var conn net.Conn
	var err error
	if config.Proxy != nil {
		conn, err = t.connectViaProxy(ctx, config, connTimeout, timer)
	} else {
		conn, err = t.connectDirect(ctx, config, connTimeout, timer)
	}
	if err != nil {
		return nil, err
	}

	if config.Scheme == "https" {
		tlsConn, err := t.upgradeTLS(ctx, conn, config, connTimeout, timer)
		if err != nil {
			conn.Close()
			return nil, errors.NewTLSError(config.Host, config.Port, err)
		}
		conn = tlsConn
	}

	return conn, nil
}

func (t *Transport) validateConfig(config Config) error {
	if config.Host == "" {
		return errors.NewValidationError("host cannot be empty")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return errors.NewValidationError("port must be between 1 and 65535")
	}
	if config.Scheme != "http" && config.Scheme != "https" {
		return errors.NewValidationError("scheme must be http or https")
	}
	return nil
}

func (t *Transport) connectDirect(ctx context.Context, config Config, timeout time.Duration, timer *timing.Timer) (net.Conn, error) {
	dialAddr, err := t.resolveAddress(ctx, config, timer)
	if err != nil {
		return nil, err
	}

	conn, err := t.connectTCP(ctx, dialAddr, timeout, timer)
	if err != nil {
		return nil, errors.NewConnectionError(config.Host, config.Port, err)
	}
	return conn, nil
}

func (t *Transport) resolveAddress(ctx context.Context, config Config, timer *timing.Timer) (string, error) {
	timer.StartDNS()
	defer timer.EndDNS()

	dnsTimeout := config.DNSTimeout
	if dnsTimeout <= 0 {
		dnsTimeout = constants.DefaultDNSTimeout
	}

	ctxLookup, cancel := context.WithTimeout(ctx, dnsTimeout)
	defer cancel()

	addrs, err := t.resolver.LookupIPAddr(ctxLookup, config.Host)
	if err != nil {
		return "", errors.NewDNSError(config.Host, err)
	}
	if len(addrs) == 0 {
		return "", errors.NewDNSError(config.Host, errors.NewValidationError("no IP addresses found"))
	}

	// Use the first address
	ip := addrs[0].IP.String()
	return net.JoinHostPort(ip, strconv.Itoa(config.Port)), nil
}

func (t *Transport) connectTCP(ctx context.Context, dialAddr string, timeout time.Duration, timer *timing.Timer) (net.Conn, error) {
	timer.StartTCP()
	defer timer.EndTCP()

	dialer := &net.Dialer{Timeout: timeout}
	return dialer.DialContext(ctx, "tcp", dialAddr)
}

func (t *Transport) upgradeTLS(ctx context.Context, conn net.Conn, config Config, timeout time.Duration, timer *timing.Timer) (net.Conn, error) {
	timer.StartTLS()
	defer timer.EndTLS()

	tlsCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cfg := config.TLSConfig
	if cfg == nil {
		serverName := config.SNI
		if serverName == "" {
			serverName = config.Host
		}
		built, err := tlsconfig.Build(tlsconfig.Options{
			ServerName:         serverName,
			InsecureSkipVerify: config.InsecureTLS,
			RootCAs:            config.CustomCACerts,
		})
		if err != nil {
			return nil, err
		}
		cfg = built
	}

	tlsConn := tls.Client(conn, cfg)
	if err := tlsConn.HandshakeContext(tlsCtx); err != nil {
		return nil, err
	}

	return tlsConn, nil
}
