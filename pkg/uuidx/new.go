// Package uuidx generates time-ordered identifiers for responses and
// messages. Version 7 UUIDs sort by creation time, which keeps identifier
// order aligned with message order.
package uuidx

import "github.com/google/uuid"

// New returns a fresh version 7 UUID. It panics if the underlying source
// fails, which only happens when the system entropy source is broken.
func New() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// NewString returns a fresh version 7 UUID in string form, ready to use as a
// message or response identifier.
func NewString() string {
	return New().String()
}
