// Package poller turns terminal input and a fixed tick cadence into one
// ordered stream of events for the UI loop.
package poller

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTickRate is the render cadence when none is configured.
const DefaultTickRate = 200 * time.Millisecond

// Kind identifies an event.
type Kind int

const (
	Tick Kind = iota
	Input
	// Closed is the last event: the key source failed and polling stopped.
	Closed
)

func (k Kind) String() string {
	switch k {
	case Tick:
		return "tick"
	case Input:
		return "input"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Event is one item of the stream.
type Event struct {
	Kind Kind
	Key  tea.Key // Input only
	Err  error   // Closed only
}

// KeyReader is a source of key presses.
type KeyReader interface {
	// ReadKey waits up to timeout for a key. ok is false on timeout.
	ReadKey(timeout time.Duration) (key tea.Key, ok bool, err error)
}

// Poller reads keys and emits ticks onto a Queue.
type Poller struct {
	keys     KeyReader
	queue    *Queue
	tickRate time.Duration
	now      func() time.Time
}

// New creates a Poller. A non-positive tickRate uses DefaultTickRate.
func New(keys KeyReader, queue *Queue, tickRate time.Duration) *Poller {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return &Poller{keys: keys, queue: queue, tickRate: tickRate, now: time.Now}
}

// Run polls until ctx is done or the key reader fails. Each read waits at
// most until the next tick is due, so key traffic never delays a tick.
// On a read failure Run pushes a Closed event and returns the error.
func (p *Poller) Run(ctx context.Context) error {
	lastTick := p.now()
	for {
		if ctx.Err() != nil {
			return nil
		}

		timeout := p.tickRate - p.now().Sub(lastTick)
		if timeout < 0 {
			timeout = 0
		}

		key, ok, err := p.keys.ReadKey(timeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			err = fmt.Errorf("read key: %w", err)
			p.queue.Push(Event{Kind: Closed, Err: err})
			return err
		}
		if ok {
			p.queue.Push(Event{Kind: Input, Key: key})
		}

		if p.now().Sub(lastTick) >= p.tickRate {
			p.queue.Push(Event{Kind: Tick})
			lastTick = p.now()
		}
	}
}
