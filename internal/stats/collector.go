package stats

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Collector tracks checker statistics using lock-free atomic counters.
type Collector struct {
	startTime     time.Time
	filesHashed   atomic.Int64
	bytesHashed   atomic.Int64
	recordsSaved  atomic.Int64
	recordsLoaded atomic.Int64
	matches       atomic.Int64
	mismatches    atomic.Int64
	failures      atomic.Int64
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	FilesHashed   int64
	BytesHashed   int64
	RecordsSaved  int64
	RecordsLoaded int64
	Matches       int64
	Mismatches    int64
	Failures      int64
	Elapsed       time.Duration
}

func (c *Collector) AddFilesHashed(n int64)   { c.filesHashed.Add(n) }
func (c *Collector) AddBytesHashed(n int64)   { c.bytesHashed.Add(n) }
func (c *Collector) AddRecordsSaved(n int64)  { c.recordsSaved.Add(n) }
func (c *Collector) AddRecordsLoaded(n int64) { c.recordsLoaded.Add(n) }
func (c *Collector) AddMatches(n int64)       { c.matches.Add(n) }
func (c *Collector) AddMismatches(n int64)    { c.mismatches.Add(n) }
func (c *Collector) AddFailures(n int64)      { c.failures.Add(n) }

// Snapshot returns a point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		FilesHashed:   c.filesHashed.Load(),
		BytesHashed:   c.bytesHashed.Load(),
		RecordsSaved:  c.recordsSaved.Load(),
		RecordsLoaded: c.recordsLoaded.Load(),
		Matches:       c.matches.Load(),
		Mismatches:    c.mismatches.Load(),
		Failures:      c.failures.Load(),
		Elapsed:       c.Elapsed(),
	}
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"hashed=%d bytes=%d saved=%d loaded=%d match=%d mismatch=%d failed=%d",
		s.FilesHashed, s.BytesHashed, s.RecordsSaved, s.RecordsLoaded,
		s.Matches, s.Mismatches, s.Failures,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
