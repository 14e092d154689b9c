package poller

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedKeys returns its keys one per ReadKey call, then times out.
type scriptedKeys struct {
	mu   sync.Mutex
	keys []tea.Key
	err  error
}

func (s *scriptedKeys) ReadKey(timeout time.Duration) (tea.Key, bool, error) {
	s.mu.Lock()
	if len(s.keys) > 0 {
		k := s.keys[0]
		s.keys = s.keys[1:]
		s.mu.Unlock()
		return k, true, nil
	}
	err := s.err
	s.mu.Unlock()

	if err != nil {
		return tea.Key{}, false, err
	}
	time.Sleep(timeout)
	return tea.Key{}, false, nil
}

func runes(s string) []tea.Key {
	var keys []tea.Key
	for _, r := range s {
		keys = append(keys, tea.Key{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return keys
}

func collect(t *testing.T, q *Queue, n int) []Event {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var events []Event
	for len(events) < n {
		ev, err := q.Next(ctx)
		require.NoError(t, err, "after %d events", len(events))
		events = append(events, ev)
	}
	return events
}

func TestPollerKeysInOrderAndTicks(t *testing.T) {
	q := NewQueue()
	p := New(&scriptedKeys{keys: runes("hpa")}, q, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	var keys []string
	ticks := 0
	for _, ev := range collect(t, q, 6) {
		switch ev.Kind {
		case Input:
			keys = append(keys, ev.Key.String())
		case Tick:
			ticks++
		}
	}
	assert.Equal(t, []string{"h", "p", "a"}, keys)
	assert.GreaterOrEqual(t, ticks, 3)
}

func TestPollerTicksWhileKeysArrive(t *testing.T) {
	q := NewQueue()
	// A steady stream of keys must not starve ticks.
	p := New(&scriptedKeys{keys: runes(strings.Repeat("j", 200))}, q, time.Millisecond)

	var now time.Time
	var mu sync.Mutex
	p.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(500 * time.Microsecond)
		return now
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	ticks := 0
	for _, ev := range collect(t, q, 150) {
		if ev.Kind == Tick {
			ticks++
		}
	}
	assert.Greater(t, ticks, 10)
}

func TestPollerReadFailurePushesClosed(t *testing.T) {
	q := NewQueue()
	boom := errors.New("stdin gone")
	p := New(&scriptedKeys{err: boom}, q, time.Hour)

	err := p.Run(context.Background())
	require.ErrorIs(t, err, boom)

	events := collect(t, q, 1)
	assert.Equal(t, Closed, events[0].Kind)
	assert.ErrorIs(t, events[0].Err, boom)
}

func TestPollerStopsOnCancel(t *testing.T) {
	q := NewQueue()
	p := New(&scriptedKeys{}, q, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestTerminalKeysFromReader(t *testing.T) {
	k, err := NewKeys(strings.NewReader("q\x1b[Bd"))
	require.NoError(t, err)
	defer k.Close()

	var got []string
	for range 3 {
		key, ok, err := k.ReadKey(time.Second)
		require.NoError(t, err)
		require.True(t, ok)
		got = append(got, key.String())
	}
	assert.Equal(t, []string{"q", "down", "d"}, got)

	_, ok, err := k.ReadKey(time.Second)
	assert.False(t, ok)
	assert.Error(t, err, "EOF should surface as an error")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "tick", Tick.String())
	assert.Equal(t, "input", Input.String())
	assert.Equal(t, "closed", Closed.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
