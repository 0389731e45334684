package ui

import (
	"fmt"
	"io"

	"github.com/bamsammich/fixity/internal/digest"
	"github.com/bamsammich/fixity/internal/stats"
)

// plainPresenter prints one block per saved or verified file to stdout.
type plainPresenter struct {
	w       io.Writer
	errW    io.Writer
	stats   *stats.Collector
	theme   Theme
	isTTY   bool
	verbose bool
}

func (p *plainPresenter) Run(events <-chan Event) error {
	for ev := range events {
		p.handleEvent(ev)
	}
	return nil
}

func (p *plainPresenter) handleEvent(ev Event) {
	switch ev.Type {
	case HashStarted:
		if p.verbose {
			fmt.Fprintf(p.errW, "hashing %s\n", ev.Path)
		}
	case HashCompleted:
		if p.verbose {
			fmt.Fprintf(p.errW, "hashed %s (%s)\n", ev.Path, FormatBytes(ev.Size))
		}
	case RecordSaved:
		p.line("checksum", p.theme.Digest.Render(ev.Digest))
		p.line("saved to", ev.RecordPath)
	case VerifyMatch:
		p.digests(ev)
		fmt.Fprintf(p.w, "%s %s  file is intact, checksums match\n",
			p.theme.OK.Render(p.icon("✓", "MATCH")), ev.Path)
	case VerifyMismatch:
		p.digests(ev)
		fmt.Fprintf(p.w, "%s %s  file has been modified, checksums differ\n",
			p.theme.Failed.Render(p.icon("✗", "MISMATCH")), ev.Path)
	case HashFailed, RecordFailed, RecordLoaded:
		// Failures are reported once by the caller from the returned error.
	}
}

func (p *plainPresenter) digests(ev Event) {
	p.line("current", p.theme.Digest.Render(ev.Digest))
	if !digest.Valid(ev.Saved) {
		p.line("saved", p.theme.Warning.Render(ev.Saved+"  (not a sha256 digest)"))
		return
	}
	p.line("saved", p.theme.Digest.Render(ev.Saved))
}

func (p *plainPresenter) line(label, value string) {
	fmt.Fprintf(p.w, "%s %s\n", p.theme.Label.Render(fmt.Sprintf("%-8s", label)), value)
}

func (p *plainPresenter) icon(icon, word string) string {
	if p.isTTY {
		return icon + " " + word
	}
	return word
}

func (p *plainPresenter) Summary() string {
	if p.stats == nil {
		return ""
	}
	return completionSummary(p.stats.Snapshot())
}
