package integrity

import (
	"fmt"
	"strings"
)

// Intent selects what the checker does with a file.
type Intent int

const (
	Save Intent = iota + 1
	Verify
)

func (i Intent) String() string {
	switch i {
	case Save:
		return "save"
	case Verify:
		return "verify"
	default:
		return "unknown"
	}
}

// ParseIntent accepts "save"/"verify" or the menu numbers "1"/"2".
func ParseIntent(s string) (Intent, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "save", "1":
		return Save, nil
	case "verify", "2":
		return Verify, nil
	default:
		return 0, fmt.Errorf("unknown intent %q (use save or verify)", s)
	}
}

// Outcome is the result of comparing a fresh digest with a saved one.
type Outcome int

const (
	Match Outcome = iota + 1
	Mismatch
)

func (o Outcome) String() string {
	switch o {
	case Match:
		return "MATCH"
	case Mismatch:
		return "MISMATCH"
	default:
		return ""
	}
}
