package listener

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"
)

// TestLiveListener pokes a running roster instance on the default address.
// Skipped if nothing is listening there.
func TestLiveListener(t *testing.T) {
	conn, err := net.DialTimeout("tcp", DefaultAddr, 200*time.Millisecond)
	if err != nil {
		t.Skip("listener not running on", DefaultAddr)
	}
	conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	status, err := Poke(ctx, DefaultAddr)
	if err != nil {
		t.Fatalf("poke: %v", err)
	}
	fmt.Printf("Poke: %s\n", status)
	if !status.OK() {
		t.Errorf("status = %s, want 200", status)
	}
}
