// Package rawurl parses target URLs without re-encoding them.
//
// The standard net/url package canonicalizes the path and query during
// parsing; a raw HTTP client must place the caller's path+query on the
// request line byte-for-byte, so the decomposition is done by hand.
package rawurl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/minireq/minireq/pkg/constants"
	"github.com/minireq/minireq/pkg/errors"
)

// URL represents a parsed target resource locator. Immutable after Parse.
type URL struct {
	Scheme string // "http" or "https"
	Host   string
	Port   int
	Path   string // path+query, verbatim; "/" when the input has none
}

// Parse decomposes raw into scheme, host, port and verbatim path+query.
//
// The input must begin with "http://" or "https://". The host runs to the
// first '/', ':' or end of string. A ':' after the host introduces an
// explicit decimal port overriding the scheme default (80/443). Everything
// from the first '/' onward is the path+query, kept as-is.
func Parse(raw string) (*URL, error) {
	var scheme string
	var rest string
	switch {
	case strings.HasPrefix(raw, "http://"):
		scheme, rest = "http", raw[len("http://"):]
	case strings.HasPrefix(raw, "https://"):
		scheme, rest = "https", raw[len("https://"):]
	default:
		return nil, errors.NewURLError(fmt.Sprintf("unsupported or missing scheme in %q", raw))
	}

	u := &URL{Scheme: scheme, Port: defaultPort(scheme), Path: "/"}

	hostEnd := strings.IndexAny(rest, "/:")
	if hostEnd == -1 {
		u.Host = rest
		if u.Host == "" {
			return nil, errors.NewURLError(fmt.Sprintf("empty host in %q", raw))
		}
		return u, nil
	}

	u.Host = rest[:hostEnd]
	if u.Host == "" {
		return nil, errors.NewURLError(fmt.Sprintf("empty host in %q", raw))
	}

	rest = rest[hostEnd:]
	if rest[0] == ':' {
		rest = rest[1:]
		portEnd := strings.IndexByte(rest, '/')
		if portEnd == -1 {
			portEnd = len(rest)
		}
		port, err := strconv.Atoi(rest[:portEnd])
		if err != nil || port <= 0 || port > 65535 {
			return nil, errors.NewURLError(fmt.Sprintf("invalid port %q in %q", rest[:portEnd], raw))
		}
		u.Port = port
		rest = rest[portEnd:]
	}

	if rest != "" {
		u.Path = rest
	}
	return u, nil
}

func defaultPort(scheme string) int {
	if scheme == "https" {
		return constants.DefaultHTTPSPort
	}
	return constants.DefaultHTTPPort
}

// IsTLS reports whether the URL requires a TLS connection.
func (u *URL) IsTLS() bool {
	return u.Scheme == "https"
}

// Addr returns the host:port dial address.
func (u *URL) Addr() string {
	return u.Host + ":" + strconv.Itoa(u.Port)
}

// String reassembles the URL. The port is included only when it differs
// from the scheme default.
func (u *URL) String() string {
	if u.Port != defaultPort(u.Scheme) {
		return fmt.Sprintf("%s://%s:%d%s", u.Scheme, u.Host, u.Port, u.Path)
	}
	return fmt.Sprintf("%s://%s%s", u.Scheme, u.Host, u.Path)
}
