package ui

import (
	"time"

	"github.com/bamsammich/fixity/internal/stats"
)

// FormatBytes renders a byte count with binary units.
func FormatBytes(b int64) string {
	return stats.FormatBytes(b)
}

// FormatDuration renders how long a run took. Most runs finish in well under
// a second, so short durations keep millisecond precision.
func FormatDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "0s"
	case d < time.Millisecond:
		return "<1ms"
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	case d < time.Minute:
		return d.Round(100 * time.Millisecond).String()
	default:
		return d.Round(time.Second).String()
	}
}
