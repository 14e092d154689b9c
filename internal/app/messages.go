package app

import "github.com/jwulff/roster/internal/poller"

// PollEventMsg wraps the next event from the input poller.
type PollEventMsg struct {
	Event poller.Event
}

// PollStoppedMsg is sent when waiting for poller events was cancelled.
// The loop quits on it.
type PollStoppedMsg struct {
	Err error
}

// ClearTransientErrorMsg clears a transient error after a timeout.
type ClearTransientErrorMsg struct{}
