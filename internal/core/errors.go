package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for each failure kind. Match with errors.Is.
var (
	ErrIO                   = errors.New("i/o error")
	ErrNotFound             = errors.New("not found")
	ErrEmptyRecord          = errors.New("empty checksum record")
	ErrAlgorithmUnavailable = errors.New("hash algorithm unavailable")
)

// Kind classifies a failure.
type Kind int

const (
	KindIO Kind = iota + 1
	KindNotFound
	KindEmptyRecord
	KindAlgorithmUnavailable
)

var kindNames = [...]string{
	KindIO:                   "IoError",
	KindNotFound:             "NotFound",
	KindEmptyRecord:          "EmptyRecord",
	KindAlgorithmUnavailable: "AlgorithmUnavailable",
}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

func (k Kind) sentinel() error {
	switch k {
	case KindIO:
		return ErrIO
	case KindNotFound:
		return ErrNotFound
	case KindEmptyRecord:
		return ErrEmptyRecord
	case KindAlgorithmUnavailable:
		return ErrAlgorithmUnavailable
	default:
		return nil
	}
}

// Phase records whether a failure happened while hashing the file or while
// touching its checksum record.
type Phase int

const (
	PhaseHash Phase = iota + 1
	PhaseRecord
)

func (p Phase) String() string {
	switch p {
	case PhaseHash:
		return "hash"
	case PhaseRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Error is the error type returned across package boundaries.
type Error struct {
	Err   error
	Op    string
	Path  string
	Kind  Kind
	Phase Phase
}

// New builds an *Error. err may be nil when the kind says everything.
func New(kind Kind, phase Phase, op, path string, err error) *Error {
	return &Error{Kind: kind, Phase: phase, Op: op, Path: path, Err: err}
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s %s", e.Phase, e.Op, e.Path)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	if s := e.Kind.sentinel(); s != nil {
		return msg + ": " + s.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// PhaseOf returns the Phase of the first *Error in err's chain, or 0.
func PhaseOf(err error) Phase {
	var e *Error
	if errors.As(err, &e) {
		return e.Phase
	}
	return 0
}
