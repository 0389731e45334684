package digest

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/bamsammich/fixity/internal/core"
	"github.com/bamsammich/fixity/internal/platform"
	"github.com/bamsammich/fixity/internal/stats"
)

const (
	// DefaultChunkSize is the read size used when none is configured.
	DefaultChunkSize = 1024
	// MaxChunkSize caps the read buffer so memory stays bounded.
	MaxChunkSize = 16 << 20
)

// Engine hashes files from a filesystem.
type Engine struct {
	fs        afero.Fs
	stats     *stats.Collector
	chunkSize int
}

// Option configures an Engine.
type Option func(*Engine)

// WithChunkSize sets the read size. Values <= 0 select DefaultChunkSize and
// values above MaxChunkSize are clamped to it.
func WithChunkSize(n int) Option {
	return func(e *Engine) {
		switch {
		case n <= 0:
		case n > MaxChunkSize:
			e.chunkSize = MaxChunkSize
		default:
			e.chunkSize = n
		}
	}
}

// ValidChunkSize reports whether n can be used as a read size as given.
func ValidChunkSize(n int) bool {
	return n > 0 && n <= MaxChunkSize
}

// WithStats records hashed files and bytes on c.
func WithStats(c *stats.Collector) Option {
	return func(e *Engine) { e.stats = c }
}

// NewEngine creates an Engine reading from fs.
func NewEngine(fs afero.Fs, opts ...Option) *Engine {
	e := &Engine{fs: fs, chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ChunkSize returns the configured read size.
func (e *Engine) ChunkSize() int { return e.chunkSize }

// Compute streams the file at path through SHA-256 and returns its digest
// string and the number of bytes hashed. No digest is returned if the open or
// any read fails.
func (e *Engine) Compute(path string) (string, int64, error) {
	if err := available(path); err != nil {
		return "", 0, err
	}

	f, err := e.fs.Open(path)
	if err != nil {
		return "", 0, core.New(core.KindIO, core.PhaseHash, "open", path, err)
	}
	defer f.Close()

	platform.AdviseSequential(f)

	sum, n, err := e.sum(f)
	if err != nil {
		return "", n, core.New(core.KindIO, core.PhaseHash, "read", path, err)
	}

	if e.stats != nil {
		e.stats.AddFilesHashed(1)
		e.stats.AddBytesHashed(n)
	}
	slog.Debug("hashed file", "path", path, "bytes", n, "digest", OCI(sum).String())
	return sum, n, nil
}

// ComputeReader hashes everything r yields and returns the digest string and
// the number of bytes read.
func (e *Engine) ComputeReader(r io.Reader) (string, int64, error) {
	if err := available("-"); err != nil {
		return "", 0, err
	}
	sum, n, err := e.sum(r)
	if err != nil {
		return "", n, core.New(core.KindIO, core.PhaseHash, "read", "-", err)
	}
	return sum, n, nil
}

func (e *Engine) sum(r io.Reader) (string, int64, error) {
	h := Algorithm.Hash()
	buf := make([]byte, e.chunkSize)

	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n]) //nolint:errcheck // hash.Hash writes never fail
			total += int64(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", total, err
		}
	}
	return Encode(h.Sum(nil)), total, nil
}

func available(path string) error {
	if Algorithm.Available() {
		return nil
	}
	return core.New(core.KindAlgorithmUnavailable, core.PhaseHash, "hash", path,
		fmt.Errorf("%s is not registered", Algorithm))
}
