package ui

import "github.com/bamsammich/fixity/internal/event"

// Event is the event type presenters consume.
type Event = event.Event

// Re-export event types for convenience.
const (
	HashStarted    = event.HashStarted
	HashCompleted  = event.HashCompleted
	HashFailed     = event.HashFailed
	RecordSaved    = event.RecordSaved
	RecordLoaded   = event.RecordLoaded
	RecordFailed   = event.RecordFailed
	VerifyMatch    = event.VerifyMatch
	VerifyMismatch = event.VerifyMismatch
)
