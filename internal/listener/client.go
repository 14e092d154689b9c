package listener

import (
	"bufio"
	"context"
	"fmt"
	"net"
)

// Poke dials the listener at addr, sends a minimal request and returns the
// status line of the reply. Each successful poke appends one person.
func Poke(ctx context.Context, addr string) (Status, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return Status{}, fmt.Errorf("connect to listener: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	if _, err := fmt.Fprintf(conn, pokeRequest, addr); err != nil {
		return Status{}, fmt.Errorf("write request: %w", err)
	}

	status, err := readStatus(bufio.NewReader(conn))
	if err != nil {
		return Status{}, err
	}
	return status, nil
}
