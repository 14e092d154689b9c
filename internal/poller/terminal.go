package poller

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/muesli/cancelreader"
)

// ErrClosed is returned by ReadKey after Close.
var ErrClosed = errors.New("key reader closed")

// TerminalKeys reads key presses from a byte stream, normally the terminal
// in raw mode. Reads happen on a background goroutine so ReadKey can time out.
type TerminalKeys struct {
	reader cancelreader.CancelReader
	fd     uintptr
	state  *term.State

	chunks chan []byte
	errc   chan error
	done   chan struct{}
	buf    []byte

	closeOnce sync.Once
	closeErr  error
}

// OpenTerminal puts f into raw mode and starts reading keys from it. Close
// restores the previous terminal mode.
func OpenTerminal(f *os.File) (*TerminalKeys, error) {
	fd := f.Fd()
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%s is not a terminal", f.Name())
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enable raw mode: %w", err)
	}

	k, err := NewKeys(f)
	if err != nil {
		term.Restore(fd, state)
		return nil, err
	}
	k.fd = fd
	k.state = state
	return k, nil
}

// NewKeys reads keys from r without touching terminal modes.
func NewKeys(r io.Reader) (*TerminalKeys, error) {
	cr, err := cancelreader.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create input reader: %w", err)
	}

	k := &TerminalKeys{
		reader: cr,
		chunks: make(chan []byte),
		errc:   make(chan error, 1),
		done:   make(chan struct{}),
	}
	go k.readLoop()
	return k, nil
}

func (k *TerminalKeys) readLoop() {
	for {
		buf := make([]byte, 256)
		n, err := k.reader.Read(buf)
		if n > 0 {
			select {
			case k.chunks <- buf[:n]:
			case <-k.done:
				return
			}
		}
		if err != nil {
			k.errc <- err
			return
		}
	}
}

// ReadKey implements KeyReader. Bytes that do not form a known key are
// dropped.
func (k *TerminalKeys) ReadKey(timeout time.Duration) (tea.Key, bool, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		for len(k.buf) > 0 {
			key, n, ok := DecodeKey(k.buf)
			if n == 0 {
				break
			}
			k.buf = k.buf[n:]
			if ok {
				return key, true, nil
			}
		}

		select {
		case chunk := <-k.chunks:
			k.buf = append(k.buf, chunk...)
		case err := <-k.errc:
			return tea.Key{}, false, err
		case <-k.done:
			return tea.Key{}, false, ErrClosed
		case <-timer.C:
			return tea.Key{}, false, nil
		}
	}
}

// Close stops reading and restores the terminal mode. It is safe to call
// more than once.
func (k *TerminalKeys) Close() error {
	k.closeOnce.Do(func() {
		close(k.done)
		k.reader.Cancel()
		if k.state != nil {
			if err := term.Restore(k.fd, k.state); err != nil {
				k.closeErr = fmt.Errorf("restore terminal: %w", err)
			}
		}
	})
	return k.closeErr
}
