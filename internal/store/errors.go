package store

import "errors"

var (
	// ErrUnavailable means the medium could not be read or written.
	ErrUnavailable = errors.New("store unavailable")

	// ErrCorrupt means the medium holds data that does not decode into a collection.
	ErrCorrupt = errors.New("store corrupt")

	// ErrIndexOutOfRange is returned by At. RemoveAt treats a bad index as a
	// no-op instead.
	ErrIndexOutOfRange = errors.New("index out of range")
)
