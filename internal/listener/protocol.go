// Package listener accepts TCP connections and appends a random person to
// the store for each one. The connection carries no real protocol: any
// request triggers one append and gets a fixed HTTP status line back.
package listener

import (
	"bufio"
	"fmt"
	"strings"
)

// DefaultAddr is the loopback address the listener binds unless configured.
const DefaultAddr = "127.0.0.1:7878"

// ReadBufferSize bounds how much of a request is read (and discarded).
const ReadBufferSize = 1024

const (
	okResponse    = "HTTP/1.1 200 OK\r\n\r\n"
	errorResponse = "HTTP/1.1 500 Internal Server Error\r\n\r\n"
	pokeRequest   = "GET / HTTP/1.1\r\nHost: %s\r\nConnection: close\r\n\r\n"
)

// Status is the parsed first line of a listener reply.
type Status struct {
	Proto string
	Code  int
	Text  string
}

// OK reports whether the listener appended a person.
func (s Status) OK() bool { return s.Code == 200 }

func (s Status) String() string {
	return fmt.Sprintf("%s %d %s", s.Proto, s.Code, s.Text)
}

// readStatus parses "HTTP/1.1 200 OK" from the start of r.
func readStatus(r *bufio.Reader) (Status, error) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return Status{}, fmt.Errorf("read status line: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")

	proto, rest, ok := strings.Cut(line, " ")
	if !ok || !strings.HasPrefix(proto, "HTTP/") {
		return Status{}, fmt.Errorf("malformed status line %q", line)
	}
	code, text, _ := strings.Cut(rest, " ")

	var s Status
	s.Proto = proto
	s.Text = text
	if _, err := fmt.Sscanf(code, "%d", &s.Code); err != nil {
		return Status{}, fmt.Errorf("malformed status code %q: %w", code, err)
	}
	return s, nil
}
