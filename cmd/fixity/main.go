package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bamsammich/fixity/internal/config"
	"github.com/bamsammich/fixity/internal/digest"
	"github.com/bamsammich/fixity/internal/event"
	"github.com/bamsammich/fixity/internal/integrity"
	"github.com/bamsammich/fixity/internal/record"
	"github.com/bamsammich/fixity/internal/stats"
	"github.com/bamsammich/fixity/internal/ui"
)

var version = "dev"

// Exit codes.
const (
	exitOK       = 0
	exitMismatch = 1 // MISMATCH under --mismatch=fail
	exitFailure  = 2 // any error
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// exitError carries a process exit code through cobra without a message.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// mismatchFlag is a pflag.Value that only accepts known mismatch policies.
type mismatchFlag struct {
	policy config.MismatchPolicy
}

func (f *mismatchFlag) String() string { return string(f.policy) }
func (*mismatchFlag) Type() string     { return "policy" }

func (f *mismatchFlag) Set(val string) error {
	p, err := config.ParseMismatchPolicy(val)
	if err != nil {
		return err
	}
	f.policy = p
	return nil
}

type options struct {
	logFile     string
	configFile  string
	mismatch    mismatchFlag
	chunkSize   int
	verbose     bool
	quiet       bool
	noAtomic    bool
	showVersion bool
}

func run(args []string, stdout, stderr io.Writer) int {
	opts := &options{
		mismatch:  mismatchFlag{policy: config.MismatchWarn},
		chunkSize: digest.DefaultChunkSize,
	}

	rootCmd := &cobra.Command{
		Use:   "fixity",
		Short: "Save and verify SHA-256 checksums of files in .checksum sidecars",
		Long: `fixity detects unauthorized or accidental modification of a file.

"fixity save FILE" hashes FILE with SHA-256 and writes the digest to
FILE.checksum. "fixity verify FILE" hashes FILE again and compares the
result with the saved digest, reporting MATCH or MISMATCH.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.showVersion {
				fmt.Fprintf(stdout, "fixity %s\n", version)
				return nil
			}
			return cmd.Help()
		},
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.Flags().BoolVar(&opts.showVersion, "version", false, "print version and exit")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&opts.quiet, "quiet", "q", false, "suppress all output except warnings and errors")
	rootCmd.PersistentFlags().
		StringVar(&opts.logFile, "log", "", "write structured JSON log to FILE")
	rootCmd.PersistentFlags().
		StringVar(&opts.configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/fixity/config.toml)")

	saveCmd := &cobra.Command{
		Use:   "save <file>",
		Short: "Compute a file's SHA-256 digest and save it to <file>.checksum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIntent(cmd, opts, integrity.Save, args[0], stdout, stderr)
		},
	}
	saveCmd.Flags().IntVar(&opts.chunkSize, "chunk-size", opts.chunkSize, "read size in bytes")
	saveCmd.Flags().
		BoolVar(&opts.noAtomic, "no-atomic", false, "write the record in place instead of via a temp file and rename")

	verifyCmd := &cobra.Command{
		Use:   "verify <file>",
		Short: "Recompute a file's digest and compare it with <file>.checksum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIntent(cmd, opts, integrity.Verify, args[0], stdout, stderr)
		},
	}
	verifyCmd.Flags().IntVar(&opts.chunkSize, "chunk-size", opts.chunkSize, "read size in bytes")
	verifyCmd.Flags().
		Var(&opts.mismatch, "mismatch", "on MISMATCH: warn (exit 0) or fail (exit 1)")

	rootCmd.AddCommand(saveCmd, verifyCmd, newDocsCmd())

	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		fmt.Fprintf(stderr, "Error: %s\n", ui.ErrorMessage(err))
		return exitFailure
	}
	return exitOK
}

//nolint:revive // cognitive-complexity: wires config, logging, presenter and checker
func runIntent(
	cmd *cobra.Command,
	opts *options,
	intent integrity.Intent,
	path string,
	stdout, stderr io.Writer,
) error {
	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyConfigDefaults(cmd, cfg.Defaults, opts)
	if !digest.ValidChunkSize(opts.chunkSize) {
		return fmt.Errorf("--chunk-size must be between 1 and %d, got %d",
			digest.MaxChunkSize, opts.chunkSize)
	}

	closeLog, err := setupLogging(opts, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	stopSignals := cleanupOnSignal()
	defer stopSignals()

	collector := stats.NewCollector()
	events := make(chan event.Event, 64)

	// When --log is set, tee events through a logging goroutine
	// that writes structured records before forwarding to the presenter.
	presenterEvents := (<-chan event.Event)(events)
	if opts.logFile != "" {
		presenterEvents = teeEvents(events)
	}

	presenter := ui.NewPresenter(ui.Config{
		Writer:    stdout,
		ErrWriter: stderr,
		Stats:     collector,
		Theme:     cfg.Theme,
		IsTTY:     isTTY(stdout),
		Quiet:     opts.quiet,
		Verbose:   opts.verbose,
	})

	checker := integrity.New(integrity.Config{
		FS:        afero.NewOsFs(),
		Events:    events,
		Stats:     collector,
		ChunkSize: opts.chunkSize,
		InPlace:   opts.noAtomic,
	})

	slog.Debug("starting",
		"intent", intent.String(),
		"path", path,
		"chunk_size", opts.chunkSize,
		"atomic", !opts.noAtomic,
		"mismatch", opts.mismatch.String(),
	)

	var presenterErr error
	var presenterWg sync.WaitGroup
	presenterWg.Add(1)
	go func() {
		defer presenterWg.Done()
		presenterErr = presenter.Run(presenterEvents)
	}()

	res, runErr := checker.Run(intent, path)
	close(events)
	presenterWg.Wait()
	if presenterErr != nil {
		fmt.Fprintf(stderr, "presenter: %v\n", presenterErr)
	}

	if opts.verbose {
		if summary := presenter.Summary(); summary != "" {
			fmt.Fprintln(stderr, summary)
		}
	}

	if runErr != nil {
		slog.Debug(intent.String()+" failed", "path", path, "error", runErr)
		return runErr
	}

	if res.Outcome == integrity.Mismatch {
		slog.Warn("checksum mismatch: file has been modified",
			"path", path,
			"current", res.Current,
			"saved", res.Saved,
		)
		if opts.mismatch.policy == config.MismatchFail {
			return &exitError{code: exitMismatch}
		}
	}
	return nil
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// applyConfigDefaults applies config file defaults for flags not explicitly set on the CLI.
func applyConfigDefaults(cmd *cobra.Command, defaults config.DefaultsConfig, opts *options) {
	if !cmd.Flags().Changed("mismatch") && defaults.Mismatch != nil {
		// Already validated by config.LoadFile.
		_ = opts.mismatch.Set(*defaults.Mismatch) //nolint:errcheck // validated on load
	}
	if !cmd.Flags().Changed("chunk-size") && defaults.ChunkSize != nil {
		opts.chunkSize = *defaults.ChunkSize
	}
	if !cmd.Flags().Changed("no-atomic") && defaults.Atomic != nil {
		opts.noAtomic = !*defaults.Atomic
	}
	if !cmd.Flags().Changed("quiet") && defaults.Quiet != nil {
		opts.quiet = *defaults.Quiet
	}
}

// setupLogging installs the default slog logger and returns a func that
// closes the log file, if any.
func setupLogging(opts *options, stderr io.Writer) (func(), error) {
	logLevel := slog.LevelWarn
	if opts.verbose {
		logLevel = slog.LevelDebug
	} else if !opts.quiet {
		logLevel = slog.LevelInfo
	}
	textHandler := slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel,
	})

	var logHandler slog.Handler = textHandler
	closeFn := func() {}
	if opts.logFile != "" {
		lf, err := os.Create(opts.logFile)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		closeFn = func() { lf.Close() }
		jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
	}
	slog.SetDefault(slog.New(logHandler))
	return closeFn, nil
}

// teeEvents logs every event and forwards it. The returned channel closes
// when events does.
func teeEvents(events <-chan event.Event) <-chan event.Event {
	teed := make(chan event.Event, cap(events))
	go func() {
		for ev := range events {
			attrs := []slog.Attr{
				slog.String("type", ev.Type.String()),
				slog.String("path", ev.Path),
			}
			if ev.RecordPath != "" {
				attrs = append(attrs, slog.String("record", ev.RecordPath))
			}
			if ev.Digest != "" {
				attrs = append(attrs, slog.String("digest", digest.OCI(ev.Digest).String()))
			}
			if ev.Saved != "" {
				attrs = append(attrs, slog.String("saved", ev.Saved))
			}
			if ev.Size > 0 {
				attrs = append(attrs, slog.Int64("size", ev.Size))
			}
			if ev.Error != nil {
				attrs = append(attrs, slog.String("error", ev.Error.Error()))
			}
			slog.LogAttrs(context.Background(), slog.LevelDebug, "fixity.event", attrs...)
			teed <- ev
		}
		close(teed)
	}()
	return teed
}

// cleanupOnSignal removes half-written temp records if the process is
// interrupted, then exits. The returned func stops listening.
func cleanupOnSignal() func() {
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			record.CleanupTmpFiles()
			slog.Warn("interrupted", "signal", sig.String())
			os.Exit(128 + int(sig.(syscall.Signal))) //nolint:forcetypeassert // only syscall signals are registered
		case <-done:
		}
	}()
	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && ui.IsTTY(f.Fd())
}
