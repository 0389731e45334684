// Package record persists digest strings in sidecar files next to the files
// they describe.
package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/bamsammich/fixity/internal/core"
)

// Suffix is appended to a file's path to name its sidecar.
const Suffix = ".checksum"

const recordPerm = 0o644

// Path returns the sidecar path for file.
func Path(file string) string {
	return file + Suffix
}

// Store reads and writes sidecar records.
type Store struct {
	fs     afero.Fs
	atomic bool
}

// Option configures a Store.
type Option func(*Store)

// WithAtomic selects write-then-rename (true, the default) or in-place
// truncate-and-write (false) for Save.
func WithAtomic(atomic bool) Option {
	return func(s *Store) { s.atomic = atomic }
}

// NewStore creates a Store on fs.
func NewStore(fs afero.Fs, opts ...Option) *Store {
	s := &Store{fs: fs, atomic: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Exists reports whether file has a sidecar. The sidecar is not opened.
func (s *Store) Exists(file string) (bool, error) {
	ok, err := afero.Exists(s.fs, Path(file))
	if err != nil {
		return false, core.New(core.KindIO, core.PhaseRecord, "stat", Path(file), err)
	}
	return ok, nil
}

// Save writes digest as the full content of file's sidecar, followed by a
// newline. Prior content is replaced, never appended to. file itself is not
// touched.
func (s *Store) Save(file, digest string) error {
	dst := Path(file)
	data := []byte(digest + "\n")

	var err error
	if s.atomic {
		err = s.writeAtomic(dst, data)
	} else {
		err = s.writeInPlace(dst, data)
	}
	if err != nil {
		return core.New(core.KindIO, core.PhaseRecord, "save", dst, err)
	}
	slog.Debug("saved checksum record", "record", dst, "atomic", s.atomic)
	return nil
}

func (s *Store) writeAtomic(dst string, data []byte) error {
	dir := filepath.Dir(dst)
	base := filepath.Base(dst)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.fixity-tmp", base, uuid.New().String()[:8]))

	RegisterTmp(s.fs, tmpPath)
	defer func() {
		DeregisterTmp(tmpPath)
		_ = s.fs.Remove(tmpPath) // no-op if rename succeeded
	}()

	f, err := s.fs.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, recordPerm)
	if err != nil {
		return fmt.Errorf("create tmp %s: %w", tmpPath, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write tmp %s: %w", tmpPath, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync tmp %s: %w", tmpPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close tmp %s: %w", tmpPath, err)
	}

	if err := s.fs.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("rename %s -> %s: %w", tmpPath, dst, err)
	}
	return nil
}

func (s *Store) writeInPlace(dst string, data []byte) error {
	f, err := s.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, recordPerm)
	if err != nil {
		return fmt.Errorf("open %s: %w", dst, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", dst, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}
	return nil
}

// Load returns the first line of file's sidecar with its line terminator
// removed.
func (s *Store) Load(file string) (string, error) {
	src := Path(file)

	f, err := s.fs.Open(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", core.New(core.KindNotFound, core.PhaseRecord, "load", src, err)
		}
		return "", core.New(core.KindIO, core.PhaseRecord, "load", src, err)
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", core.New(core.KindIO, core.PhaseRecord, "read", src, err)
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if line == "" {
		return "", core.New(core.KindEmptyRecord, core.PhaseRecord, "load", src, nil)
	}
	return line, nil
}
