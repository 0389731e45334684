// Package integrity saves and verifies file digests against their sidecar
// records.
package integrity

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/bamsammich/fixity/internal/core"
	"github.com/bamsammich/fixity/internal/digest"
	"github.com/bamsammich/fixity/internal/event"
	"github.com/bamsammich/fixity/internal/record"
	"github.com/bamsammich/fixity/internal/stats"
)

// Config configures a Checker.
type Config struct {
	FS        afero.Fs // defaults to the OS filesystem
	Events    chan<- event.Event
	Stats     *stats.Collector
	ChunkSize int
	InPlace   bool // write sidecars in place instead of write-then-rename
}

// Result describes a completed save or verify.
type Result struct {
	Path       string
	RecordPath string
	Current    string // digest computed now
	Saved      string // digest in the record
	Size       int64  // bytes hashed
	Intent     Intent
	Outcome    Outcome // verify only
}

// Checker runs save and verify requests one at a time.
type Checker struct {
	fs     afero.Fs
	engine *digest.Engine
	store  *record.Store
	events chan<- event.Event
	stats  *stats.Collector
}

// New creates a Checker.
func New(cfg Config) *Checker {
	fsys := cfg.FS
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Checker{
		fs: fsys,
		engine: digest.NewEngine(fsys,
			digest.WithChunkSize(cfg.ChunkSize),
			digest.WithStats(cfg.Stats),
		),
		store:  record.NewStore(fsys, record.WithAtomic(!cfg.InPlace)),
		events: cfg.Events,
		stats:  cfg.Stats,
	}
}

// Run dispatches to Save or Verify.
func (c *Checker) Run(intent Intent, file string) (Result, error) {
	switch intent {
	case Save:
		return c.Save(file)
	case Verify:
		return c.Verify(file)
	default:
		return Result{}, fmt.Errorf("unknown intent %d", intent)
	}
}

// Save computes file's digest and writes it to the sidecar record.
func (c *Checker) Save(file string) (Result, error) {
	res := Result{Intent: Save, Path: file, RecordPath: record.Path(file)}

	if err := c.requireFile(file); err != nil {
		return res, c.fail(event.HashFailed, res, err)
	}

	sum, n, err := c.hash(res)
	if err != nil {
		return res, err
	}
	res.Current, res.Size = sum, n

	if err := c.store.Save(file, sum); err != nil {
		return res, c.fail(event.RecordFailed, res, err)
	}
	res.Saved = sum

	if c.stats != nil {
		c.stats.AddRecordsSaved(1)
	}
	event.Emit(c.events, event.Event{
		Type:       event.RecordSaved,
		Path:       file,
		RecordPath: res.RecordPath,
		Digest:     sum,
		Size:       n,
	})
	return res, nil
}

// Verify recomputes file's digest and compares it with the saved record.
// Both the file and its record must exist before any hashing starts. A
// mismatch is reported through Result.Outcome, not as an error.
func (c *Checker) Verify(file string) (Result, error) {
	res := Result{Intent: Verify, Path: file, RecordPath: record.Path(file)}

	if err := c.requireFile(file); err != nil {
		return res, c.fail(event.HashFailed, res, err)
	}
	ok, err := c.store.Exists(file)
	if err != nil {
		return res, c.fail(event.RecordFailed, res, err)
	}
	if !ok {
		err := core.New(core.KindNotFound, core.PhaseRecord, "stat", res.RecordPath, fs.ErrNotExist)
		return res, c.fail(event.RecordFailed, res, err)
	}

	current, n, err := c.hash(res)
	if err != nil {
		return res, err
	}
	res.Current, res.Size = current, n

	saved, err := c.store.Load(file)
	if err != nil {
		return res, c.fail(event.RecordFailed, res, err)
	}
	res.Saved = saved

	if c.stats != nil {
		c.stats.AddRecordsLoaded(1)
	}
	event.Emit(c.events, event.Event{
		Type:       event.RecordLoaded,
		Path:       file,
		RecordPath: res.RecordPath,
		Saved:      saved,
	})

	if !digest.Valid(saved) {
		slog.Warn("checksum record is not a canonical SHA-256 digest",
			"record", res.RecordPath, "saved", saved)
	}

	typ := event.VerifyMatch
	if current == saved {
		res.Outcome = Match
		if c.stats != nil {
			c.stats.AddMatches(1)
		}
	} else {
		res.Outcome = Mismatch
		typ = event.VerifyMismatch
		if c.stats != nil {
			c.stats.AddMismatches(1)
		}
	}

	slog.Debug("verified file",
		"path", file,
		"outcome", res.Outcome.String(),
		"current", digest.OCI(current).String(),
		"saved", saved,
	)
	event.Emit(c.events, event.Event{
		Type:       typ,
		Path:       file,
		RecordPath: res.RecordPath,
		Digest:     current,
		Saved:      saved,
		Size:       n,
	})
	return res, nil
}

func (c *Checker) hash(res Result) (string, int64, error) {
	event.Emit(c.events, event.Event{Type: event.HashStarted, Path: res.Path})

	sum, n, err := c.engine.Compute(res.Path)
	if err != nil {
		return "", 0, c.fail(event.HashFailed, res, err)
	}

	event.Emit(c.events, event.Event{
		Type:   event.HashCompleted,
		Path:   res.Path,
		Digest: sum,
		Size:   n,
	})
	return sum, n, nil
}

// requireFile checks that file exists and is not a directory, without
// opening it.
func (c *Checker) requireFile(file string) error {
	info, err := c.fs.Stat(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return core.New(core.KindNotFound, core.PhaseHash, "stat", file, err)
		}
		return core.New(core.KindIO, core.PhaseHash, "stat", file, err)
	}
	if info.IsDir() {
		return core.New(core.KindIO, core.PhaseHash, "stat", file, errors.New("is a directory"))
	}
	return nil
}

func (c *Checker) fail(typ event.Type, res Result, err error) error {
	if c.stats != nil {
		c.stats.AddFailures(1)
	}
	event.Emit(c.events, event.Event{
		Type:       typ,
		Path:       res.Path,
		RecordPath: res.RecordPath,
		Error:      err,
	})
	return err
}
