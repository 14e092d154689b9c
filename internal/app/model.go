// Package app is the interactive UI loop: a bubbletea model fed by the
// input poller's event queue.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/jwulff/roster/internal/cursor"
	"github.com/jwulff/roster/internal/poller"
	"github.com/jwulff/roster/internal/store"
	"github.com/rs/zerolog"

	tea "github.com/charmbracelet/bubbletea"
)

// MenuItem is the active view.
type MenuItem int

const (
	MenuHome MenuItem = iota
	MenuPeople
)

func (m MenuItem) String() string {
	if m == MenuPeople {
		return "People"
	}
	return "Home"
}

// Store is the part of the record store the UI drives.
type Store interface {
	Load() ([]store.Person, error)
	Append(gen store.Generator) ([]store.Person, error)
	RemoveAt(index int) ([]store.Person, error)
}

// Model is the root bubbletea model.
type Model struct {
	// Collaborators
	ctx    context.Context
	store  Store
	gen    store.Generator
	events *poller.Queue
	log    zerolog.Logger

	// State
	active MenuItem
	cursor cursor.Cursor
	people []store.Person

	// Errors
	loadErr        error  // last failed load; cleared by the next good one
	errorMessage   string // failed add/delete
	errorTransient bool
	exitErr        error

	// UI state
	keys     keyMap
	help     help.Model
	width    int
	height   int
	quitting bool
}

// New creates a Model over st and performs the first load, so a missing or
// corrupt store is reported on the first render. events may be nil when the
// caller delivers tea.KeyMsg directly.
func New(ctx context.Context, st Store, gen store.Generator, events *poller.Queue, log zerolog.Logger) Model {
	m := Model{
		ctx:    ctx,
		store:  st,
		gen:    gen,
		events: events,
		log:    log.With().Str("component", "ui").Logger(),
		active: MenuHome,
		cursor: cursor.At(0),
		keys:   defaultKeys,
		help:   help.New(),
	}
	m.refresh()
	return m
}

// Init starts waiting for poller events.
func (m Model) Init() tea.Cmd {
	if m.events == nil {
		return nil
	}
	return waitForEvent(m.ctx, m.events)
}

// Err returns the error that ended the loop, if any.
func (m Model) Err() error {
	return m.exitErr
}

// waitForEvent blocks on the poller queue. It is the loop's only
// suspension point and is re-armed after every event.
func waitForEvent(ctx context.Context, q *poller.Queue) tea.Cmd {
	return func() tea.Msg {
		ev, err := q.Next(ctx)
		if err != nil {
			return PollStoppedMsg{Err: err}
		}
		return PollEventMsg{Event: ev}
	}
}

// clearTransientErrorCmd fires after a delay to clear transient errors.
func clearTransientErrorCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearTransientErrorMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case PollEventMsg:
		model, cmd := m.handlePollEvent(msg.Event)
		if model.quitting {
			return model, cmd
		}
		return model, tea.Batch(cmd, waitForEvent(model.ctx, model.events))

	case PollStoppedMsg:
		// No more events will arrive.
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		model, cmd := m.handleKey(msg)
		if !model.quitting {
			model.refresh()
		}
		return model, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ClearTransientErrorMsg:
		if m.errorTransient {
			m.errorMessage = ""
			m.errorTransient = false
		}
		return m, nil
	}

	return m, nil
}

// handlePollEvent applies one poller event. Every tick and key ends with a
// fresh load, so the next render sees one consistent snapshot.
func (m Model) handlePollEvent(ev poller.Event) (Model, tea.Cmd) {
	switch ev.Kind {
	case poller.Tick:
		m.refresh()
		return m, nil

	case poller.Input:
		model, cmd := m.handleKey(tea.KeyMsg(ev.Key))
		if !model.quitting {
			model.refresh()
		}
		return model, cmd

	case poller.Closed:
		m.log.Error().Err(ev.Err).Msg("input poller stopped")
		m.exitErr = ev.Err
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Home):
		m.active = MenuHome

	case key.Matches(msg, m.keys.People):
		m.active = MenuPeople

	case key.Matches(msg, m.keys.Add):
		people, err := m.store.Append(m.gen)
		if err != nil {
			return m, m.fail("add person", err)
		}
		p := people[len(people)-1]
		m.log.Info().Uint64("id", p.ID).Str("name", p.Name).Msg("added person")

	case key.Matches(msg, m.keys.Delete):
		return m, m.deleteSelected()

	case key.Matches(msg, m.keys.Down):
		return m, m.navigate(1)

	case key.Matches(msg, m.keys.Up):
		return m, m.navigate(-1)
	}

	return m, nil
}

func (m *Model) deleteSelected() tea.Cmd {
	idx, ok := m.cursor.Selected()
	if !ok {
		return nil
	}
	people, err := m.store.RemoveAt(idx)
	if err != nil {
		return m.fail("delete person", err)
	}
	m.cursor.Removed(idx, len(people))
	m.log.Info().Int("index", idx).Int("remaining", len(people)).Msg("deleted person")
	return nil
}

// navigate moves the cursor against the length read now, never a length
// observed earlier.
func (m *Model) navigate(step int) tea.Cmd {
	people, err := m.store.Load()
	if err != nil {
		return m.fail("load people", err)
	}
	m.cursor.Rebase(len(people))
	if step > 0 {
		m.cursor.MoveNext(len(people))
	} else {
		m.cursor.MovePrev(len(people))
	}
	return nil
}

// refresh reloads the collection and rebases the cursor onto it.
func (m *Model) refresh() {
	people, err := m.store.Load()
	if err != nil {
		if m.loadErr == nil || m.loadErr.Error() != err.Error() {
			m.log.Warn().Err(err).Msg("load people")
		}
		m.loadErr = err
		return
	}
	m.loadErr = nil
	m.people = people
	m.cursor.Rebase(len(people))
}

// fail records a failed mutation as a transient error.
func (m *Model) fail(op string, err error) tea.Cmd {
	m.log.Warn().Err(err).Str("op", op).Msg("store operation failed")
	m.errorMessage = fmt.Sprintf("%s: %v", op, err)
	m.errorTransient = true
	return clearTransientErrorCmd()
}

// storeHint suggests a fix for a load error.
func storeHint(err error) string {
	switch {
	case errors.Is(err, store.ErrCorrupt):
		return "The data file is not a valid people list. Fix or remove it; retrying every tick."
	case errors.Is(err, store.ErrUnavailable):
		return "Run 'roster init' to create an empty store; retrying every tick."
	}
	return "Retrying every tick."
}
