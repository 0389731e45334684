package ui

import (
	"fmt"

	"github.com/bamsammich/fixity/internal/stats"
)

// completionSummary builds the --verbose closing line.
// Format: done ✓  files 1  size 5 B  time 12ms  matches 1  mismatches 0  errors 0
func completionSummary(snap stats.Snapshot) string {
	icon := "✓"
	if snap.Failures > 0 || snap.Mismatches > 0 {
		icon = "✗"
	}

	return fmt.Sprintf("done %s  files %d  size %s  time %s  matches %d  mismatches %d  errors %d",
		icon,
		snap.FilesHashed,
		FormatBytes(snap.BytesHashed),
		FormatDuration(snap.Elapsed),
		snap.Matches,
		snap.Mismatches,
		snap.Failures,
	)
}
