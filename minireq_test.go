package minireq_test

import (
	"bufio"
	"io"
	"net"
	"strings"
	"testing"

	"github.com/minireq/minireq"
)

func startServer(t *testing.T, response string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		br := bufio.NewReader(conn)
		for {
			line, err := br.ReadString('\n')
			if err != nil || line == "\r\n" {
				break
			}
		}
		io.WriteString(conn, response)
	}()
	return ln.Addr().String()
}

func TestGetShortcut(t *testing.T) {
	addr := startServer(t, "HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nok")

	resp, err := minireq.Get("http://" + addr + "/")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	text, err := resp.Text()
	if err != nil || text != "ok" {
		t.Errorf("Text() = %q, %v", text, err)
	}
}

func TestBuilderThroughFacade(t *testing.T) {
	addr := startServer(t, "HTTP/1.1 204 No Content\r\nContent-Length: 0\r\n\r\n")

	c, err := minireq.New("http://" + addr + "/things")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	resp, err := c.Delete().
		Headers([]minireq.Pair{{Name: "X-Token", Value: "abc"}}).
		Send()
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if resp.StatusCode != 204 {
		t.Errorf("StatusCode = %d, want 204", resp.StatusCode)
	}
}

func TestShortcutInvalidURL(t *testing.T) {
	_, err := minireq.Get("not-a-url")
	if minireq.KindOf(err) != minireq.KindURL {
		t.Errorf("KindOf = %q, want %q (err=%v)", minireq.KindOf(err), minireq.KindURL, err)
	}
}

func TestResponseHeaderLookup(t *testing.T) {
	addr := startServer(t, "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 0\r\n\r\n")

	resp, err := minireq.Get("http://" + addr + "/")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v, ok := resp.Header("CONTENT-TYPE"); !ok || v != "text/plain" {
		t.Errorf("Header lookup = %q, %v", v, ok)
	}
	if !strings.HasPrefix(resp.Proto, "HTTP/") {
		t.Errorf("Proto = %q", resp.Proto)
	}
}
