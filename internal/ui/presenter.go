package ui

import (
	"io"

	"github.com/bamsammich/fixity/internal/config"
	"github.com/bamsammich/fixity/internal/stats"
)

// Presenter consumes events and displays results.
type Presenter interface {
	// Run consumes events until the channel closes. Blocks until done.
	Run(events <-chan Event) error
	// Summary returns the final summary line.
	Summary() string
}

// Config configures a Presenter.
type Config struct {
	Writer    io.Writer
	ErrWriter io.Writer
	Stats     *stats.Collector
	Theme     config.ThemeConfig
	IsTTY     bool
	Quiet     bool
	Verbose   bool
}

// NewPresenter creates the appropriate presenter based on configuration.
//
//nolint:ireturn // factory function returns interface by design
func NewPresenter(cfg Config) Presenter {
	if cfg.Quiet {
		return &quietPresenter{}
	}
	return &plainPresenter{
		w:       cfg.Writer,
		errW:    cfg.ErrWriter,
		stats:   cfg.Stats,
		theme:   NewTheme(cfg.Writer, cfg.Theme),
		isTTY:   cfg.IsTTY,
		verbose: cfg.Verbose,
	}
}
