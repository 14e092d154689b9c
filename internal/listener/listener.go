package listener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/jwulff/roster/internal/store"
	"github.com/rs/zerolog"
)

// Appender is the part of the store the listener needs.
type Appender interface {
	Append(gen store.Generator) ([]store.Person, error)
}

// Listener appends one generated person per accepted connection. Connections
// are handled one at a time on the accept goroutine.
type Listener struct {
	addr        string
	readTimeout time.Duration
	store       Appender
	gen         store.Generator
	log         zerolog.Logger

	mu sync.Mutex
	ln net.Listener
}

// New creates a Listener for addr. A zero readTimeout waits indefinitely for
// the request bytes.
func New(addr string, readTimeout time.Duration, st Appender, gen store.Generator, log zerolog.Logger) *Listener {
	return &Listener{
		addr:        addr,
		readTimeout: readTimeout,
		store:       st,
		gen:         gen,
		log:         log.With().Str("component", "listener").Logger(),
	}
}

// Listen binds the TCP address. Serve calls it if needed; calling it first
// surfaces bind errors before the UI starts.
func (l *Listener) Listen() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ln != nil {
		return nil
	}
	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", l.addr, err)
	}
	l.ln = ln
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (l *Listener) Addr() net.Addr {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ln == nil {
		return nil
	}
	return l.ln.Addr()
}

// Close stops accepting connections.
func (l *Listener) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ln == nil {
		return nil
	}
	return l.ln.Close()
}

// Serve accepts connections until ctx is cancelled or the listener is
// closed, in which case it returns nil. Failures of a single connection are
// logged and do not stop the loop.
func (l *Listener) Serve(ctx context.Context) error {
	if err := l.Listen(); err != nil {
		return err
	}
	l.log.Info().Str("addr", l.Addr().String()).Msg("listening")

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			l.Close()
		case <-done:
		}
	}()

	for {
		conn, err := l.ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		l.handle(conn)
	}
}

// handle appends a person, drains up to ReadBufferSize bytes of the request,
// replies with a status line and closes the connection.
func (l *Listener) handle(conn net.Conn) {
	defer conn.Close()
	log := l.log.With().Str("remote", conn.RemoteAddr().String()).Logger()
	log.Debug().Msg("accepted connection")

	response := okResponse
	people, err := l.store.Append(l.gen)
	if err != nil {
		log.Error().Err(err).Msg("append person")
		response = errorResponse
	} else {
		p := people[len(people)-1]
		log.Info().Uint64("id", p.ID).Str("name", p.Name).Int("total", len(people)).Msg("appended person")
	}

	if l.readTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(l.readTimeout))
	}
	buf := make([]byte, ReadBufferSize)
	if _, err := conn.Read(buf); err != nil && !errors.Is(err, io.EOF) {
		log.Debug().Err(err).Msg("read request")
	}

	if _, err := io.WriteString(conn, response); err != nil {
		log.Warn().Err(err).Msg("write response")
	}
}
