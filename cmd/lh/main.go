package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/line-history/internal/config"
	"github.com/Zuo-Peng/line-history/internal/errors"
	"github.com/Zuo-Peng/line-history/internal/history"
)

var version = "dev"

// app holds the global flags and the state PersistentPreRunE builds from them.
type app struct {
	cfgPath     string
	file        string
	marker      bool
	markerGlyph string
	strict      bool
	noColor     bool
	verbose     bool

	cfg *config.Config
	log *slog.Logger
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "lh",
		Short:         "LINE History - browse and search exported LINE chat transcripts",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.file, "file", "f", "", "Transcript file (default from config)")
	pf.StringVar(&a.cfgPath, "config", "", "Config file (default ~/.config/lh/config.toml)")
	pf.BoolVar(&a.marker, "marker", false, "Prefix every output line with the marker glyph")
	pf.StringVar(&a.markerGlyph, "marker-glyph", "", "Marker glyph (default \"*\")")
	pf.BoolVar(&a.strict, "strict", false, "Reject files without any date header")
	pf.BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Debug logging on stderr")

	rootCmd.AddCommand(dateCmd(a))
	rootCmd.AddCommand(keywordCmd(a))
	rootCmd.AddCommand(randomCmd(a))
	rootCmd.AddCommand(searchCmd(a))
	rootCmd.AddCommand(calendarCmd(a))
	rootCmd.AddCommand(afterCmd(a))
	rootCmd.AddCommand(browseCmd(a))
	rootCmd.AddCommand(openCmd(a))
	rootCmd.AddCommand(listCmd(a))
	rootCmd.AddCommand(doctorCmd(a))
	rootCmd.AddCommand(serveCmd(a))

	return rootCmd
}

// setup loads the config, applies flag overrides and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.Transcript = a.file
	}
	if flags.Changed("marker") {
		cfg.Marker = a.marker
	}
	if flags.Changed("marker-glyph") && a.markerGlyph != "" {
		cfg.MarkerGlyph = a.markerGlyph
	}
	if flags.Changed("strict") {
		cfg.Strict = a.strict
	}
	a.cfg = cfg

	level := cfg.Level()
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.log)
	return nil
}

func (a *app) historyOptions() history.Options {
	return a.cfg.HistoryOptions(a.log)
}

// loadTranscript reads the configured transcript.
func (a *app) loadTranscript() (*history.Transcript, error) {
	return history.LoadFile(a.cfg.Transcript, a.historyOptions())
}

// useColor reports whether w is a terminal and color is not disabled.
func (a *app) useColor(w io.Writer) bool {
	if a.noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal(w)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// formatError prints typed errors as "[CODE] message".
func formatError(err error) string {
	if hErr, ok := errors.As(err); ok {
		return fmt.Sprintf("[%s] %s", hErr.Code, hErr.Message)
	}
	return err.Error()
}
