// Package tlsconfig builds the crypto/tls client configuration used by the transport.
package tlsconfig

import (
	"crypto/tls"
	"crypto/x509"

	"github.com/minireq/minireq/pkg/errors"
)

// Options controls the generated tls.Config.
type Options struct {
	// ServerName is the SNI / verification name. Empty disables SNI.
	ServerName string

	// InsecureSkipVerify disables certificate chain and hostname verification.
	InsecureSkipVerify bool

	// RootCAs holds additional trusted root certificates in PEM format.
	// When empty the system trust store is used.
	RootCAs [][]byte

	// MinVersion overrides the minimum TLS version. Zero means TLS 1.2.
	MinVersion uint16
}

// Build creates a *tls.Config from Options.
func Build(opts Options) (*tls.Config, error) {
	cfg := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: opts.InsecureSkipVerify,
		ServerName:         opts.ServerName,
		NextProtos:         []string{"http/1.1"},
	}
	if opts.MinVersion != 0 {
		cfg.MinVersion = opts.MinVersion
	}

	if len(opts.RootCAs) > 0 {
		pool, err := x509.SystemCertPool()
		if err != nil {
			pool = x509.NewCertPool()
		}
		for _, pem := range opts.RootCAs {
			if !pool.AppendCertsFromPEM(pem) {
				return nil, errors.NewValidationError("invalid PEM data in custom root CA")
			}
		}
		cfg.RootCAs = pool
	}

	return cfg, nil
}

// VersionName returns a human-readable name for a TLS version.
func VersionName(version uint16) string {
	switch version {
	case tls.VersionTLS10:
		return "TLS 1.0"
	case tls.VersionTLS11:
		return "TLS 1.1"
	case tls.VersionTLS12:
		return "TLS 1.2"
	case tls.VersionTLS13:
		return "TLS 1.3"
	default:
		return "Unknown"
	}
}
