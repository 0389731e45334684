package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	HashStarted Type = iota + 1
	HashCompleted
	HashFailed
	RecordSaved
	RecordLoaded
	RecordFailed
	VerifyMatch
	VerifyMismatch
)

var typeNames = [...]string{
	HashStarted:    "HashStarted",
	HashCompleted:  "HashCompleted",
	HashFailed:     "HashFailed",
	RecordSaved:    "RecordSaved",
	RecordLoaded:   "RecordLoaded",
	RecordFailed:   "RecordFailed",
	VerifyMatch:    "VerifyMatch",
	VerifyMismatch: "VerifyMismatch",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single progress event from the checker.
type Event struct {
	Timestamp  time.Time
	Error      error
	Path       string // file being hashed or verified
	RecordPath string // its checksum sidecar
	Digest     string // current digest (HashCompleted, RecordSaved, Verify*)
	Saved      string // stored digest (RecordLoaded, Verify*)
	Size       int64  // bytes hashed (HashCompleted, RecordSaved, Verify*)
	Type       Type
}

// Emit sends e on ch without blocking. A nil channel or a full buffer drops
// the event.
func Emit(ch chan<- Event, e Event) {
	if ch == nil {
		return
	}
	e.Timestamp = time.Now()
	select {
	case ch <- e:
	default:
	}
}
