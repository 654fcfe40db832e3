package client

import (
	"bufio"
	"io"
	"strconv"
	"time"

	"github.com/minireq/minireq/pkg/errors"
	"github.com/minireq/minireq/pkg/rawurl"
	"github.com/minireq/minireq/pkg/transport"
)

// requestSpec is the finalized, immutable description of one outgoing
// request. It is built by the Client and consumed exactly once by
// writeRequest.
type requestSpec struct {
	method      string
	url         *rawurl.URL
	headers     *headerMap
	body        []byte
	proxy       *transport.ProxyConfig
	timeout     time.Duration
	insecureTLS bool
}

// writeRequest serializes spec as an HTTP/1.1 request and writes it to w.
//
// Layout: request line, synthesized Host (unless the caller supplied one),
// synthesized Connection: close (unless overridden), the caller's headers in
// insertion order, synthesized Content-Length when a body is present and
// none was supplied, blank line, body bytes verbatim.
func writeRequest(w io.Writer, spec *requestSpec) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(spec.method)
	bw.WriteByte(' ')
	bw.WriteString(spec.url.Path)
	bw.WriteString(" HTTP/1.1\r\n")

	if !spec.headers.Has("Host") {
		bw.WriteString("Host: ")
		bw.WriteString(spec.url.Host)
		bw.WriteString("\r\n")
	}
	if !spec.headers.Has("Connection") {
		bw.WriteString("Connection: close\r\n")
	}

	for _, name := range spec.headers.Names() {
		value, _ := spec.headers.Get(name)
		bw.WriteString(name)
		bw.WriteString(": ")
		bw.WriteString(value)
		bw.WriteString("\r\n")
	}

	if spec.body != nil && !spec.headers.Has("Content-Length") {
		bw.WriteString("Content-Length: ")
		bw.WriteString(strconv.Itoa(len(spec.body)))
		bw.WriteString("\r\n")
	}

	bw.WriteString("\r\n")
	if len(spec.body) > 0 {
		bw.Write(spec.body)
	}

	if err := bw.Flush(); err != nil {
		return errors.NewTransportError("writing request", err)
	}
	return nil
}
