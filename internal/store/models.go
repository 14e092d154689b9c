// Package store persists the people collection and serializes access to it.
package store

import "time"

// Categories a person can belong to.
var Categories = []string{"cats", "dogs"}

// Person is a single stored record. Records are never edited in place;
// they are only appended or removed.
type Person struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Age       uint      `json:"age"`
	CreatedAt time.Time `json:"created_at"`
}

// Generator produces a new person for Append.
type Generator func() Person
