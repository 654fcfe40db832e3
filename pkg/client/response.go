package client

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/minireq/minireq/pkg/constants"
	"github.com/minireq/minireq/pkg/errors"
	"github.com/minireq/minireq/pkg/timing"
)

// Response represents a fully parsed HTTP response. It is populated before
// being returned to the caller and immutable afterward.
type Response struct {
	StatusCode int
	Reason     string
	Proto      string // e.g. "HTTP/1.1"

	// Metrics captures per-phase timing for the request that produced
	// this response.
	Metrics timing.Metrics

	headers *headerMap
	body    []byte
}

// Header returns the value of the named header, matching case-insensitively.
func (r *Response) Header(name string) (string, bool) {
	return r.headers.Get(name)
}

// Headers returns a copy of the header mapping keyed by canonical name.
func (r *Response) Headers() map[string]string {
	return r.headers.Map()
}

// Body returns the raw body bytes.
func (r *Response) Body() []byte {
	return r.body
}

// Text decodes the body as UTF-8 text.
func (r *Response) Text() (string, error) {
	if !utf8.Valid(r.body) {
		return "", errors.NewUTF8Error()
	}
	return string(r.body), nil
}

// readResponse parses one HTTP response from reader: status line, header
// block, then the body framed by Transfer-Encoding: chunked, Content-Length,
// or connection close, in that precedence order.
func readResponse(reader *bufio.Reader, timer *timing.Timer) (*Response, error) {
	timer.StartTTFB()
	statusLine, err := readLine(reader)
	timer.EndTTFB()
	if err != nil {
		return nil, errors.NewTransportError("reading status line", err)
	}

	response := &Response{headers: newHeaderMap()}
	if err := parseStatusLine(statusLine, response); err != nil {
		return nil, err
	}

	if err := readHeaders(reader, response.headers); err != nil {
		return nil, err
	}

	body, err := readBody(reader, response.headers)
	if err != nil {
		return nil, err
	}
	response.body = body

	return response, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	if strings.HasSuffix(line, "\r\n") {
		return line[:len(line)-2], nil
	}
	return strings.TrimSuffix(line, "\n"), nil
}

func parseStatusLine(statusLine string, response *Response) error {
	parts := strings.SplitN(statusLine, " ", 3)
	if len(parts) < 2 || !strings.HasPrefix(parts[0], "HTTP/") {
		return errors.NewStatusLineError(statusLine)
	}

	// Exactly three digits; Atoi alone would let signed forms like "-99"
	// through.
	if len(parts[1]) != 3 || !isDigits(parts[1]) {
		return errors.NewStatusLineError(statusLine)
	}
	code, err := strconv.Atoi(parts[1])
	if err != nil {
		return errors.NewStatusLineError(statusLine)
	}

	response.Proto = parts[0]
	response.StatusCode = code
	if len(parts) == 3 {
		response.Reason = parts[2]
	}
	return nil
}

func readHeaders(reader *bufio.Reader, headers *headerMap) error {
	total := 0
	for {
		line, err := readLine(reader)
		if err != nil {
			return errors.NewTransportError("reading headers", err)
		}
		if line == "" {
			return nil
		}

		total += len(line)
		if total > constants.MaxHeaderBytes {
			return errors.NewHeaderError("headers exceed maximum size")
		}

		idx := strings.IndexByte(line, ':')
		if idx <= 0 {
			return errors.NewHeaderError(line)
		}
		name := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if name == "" {
			return errors.NewHeaderError(line)
		}
		headers.Set(name, value)
	}
}

func readBody(reader *bufio.Reader, headers *headerMap) ([]byte, error) {
	if te, ok := headers.Get("Transfer-Encoding"); ok && strings.Contains(strings.ToLower(te), "chunked") {
		return readChunkedBody(reader)
	}

	if cl, ok := headers.Get("Content-Length"); ok {
		length, err := strconv.ParseInt(strings.TrimSpace(cl), 10, 64)
		if err != nil || length < 0 {
			return nil, errors.NewHeaderError("Content-Length: " + cl)
		}
		if length > constants.MaxContentLength {
			return nil, errors.NewHeaderError("Content-Length too large: " + cl)
		}
		return readFixedBody(reader, length)
	}

	return readUntilClose(reader)
}

func readChunkedBody(r *bufio.Reader) ([]byte, error) {
	var body bytes.Buffer
	for {
		line, err := readLine(r)
		if err != nil {
			return nil, errors.NewTransportError("reading chunk size", err)
		}

		// Chunk extensions after ';' are ignored. The size token must be
		// bare hex digits; ParseInt alone would let signed forms through.
		sizeStr := strings.TrimSpace(strings.Split(line, ";")[0])
		if !isHexDigits(sizeStr) {
			return nil, errors.NewChunkError(fmt.Sprintf("invalid chunk size %q", line), nil)
		}
		size, err := strconv.ParseInt(sizeStr, 16, 64)
		if err != nil {
			return nil, errors.NewChunkError(fmt.Sprintf("invalid chunk size %q", line), err)
		}

		if size == 0 {
			break
		}
		if size > constants.MaxContentLength-int64(body.Len()) {
			return nil, errors.NewChunkError(
				fmt.Sprintf("chunked body exceeds %d bytes", int64(constants.MaxContentLength)), nil)
		}

		// The declared size is untrusted: copy incrementally rather than
		// allocating size bytes up front.
		if _, err := io.CopyN(&body, r, size); err != nil {
			return nil, errors.NewUnexpectedEOFError("chunk data cut short", err)
		}

		crlf := make([]byte, 2)
		if _, err := io.ReadFull(r, crlf); err != nil {
			return nil, errors.NewUnexpectedEOFError("chunk boundary cut short", err)
		}
		if crlf[0] != '\r' || crlf[1] != '\n' {
			return nil, errors.NewChunkError(fmt.Sprintf("chunk not terminated by CRLF, got %q", crlf), nil)
		}
	}

	// Trailer headers after the zero-size chunk are read and discarded.
	for {
		line, err := readLine(r)
		if err != nil {
			return nil, errors.NewTransportError("reading chunk trailer", err)
		}
		if line == "" {
			return body.Bytes(), nil
		}
	}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

func isHexDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return len(s) > 0
}

func readFixedBody(r *bufio.Reader, length int64) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errors.NewUnexpectedEOFError(
				fmt.Sprintf("stream ended before %d declared body bytes", length), err)
		}
		return nil, errors.NewTransportError("reading fixed-length body", err)
	}
	return body, nil
}

func readUntilClose(r *bufio.Reader) ([]byte, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewTransportError("reading until close", err)
	}
	return body, nil
}
