package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/line-history/internal/config"
	"github.com/Zuo-Peng/line-history/internal/history"
	"github.com/Zuo-Peng/line-history/internal/scan"
)

func doctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config, transcript and export directory, and show stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "=== Config ===")
			cfgPath := a.cfgPath
			if cfgPath == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return fmt.Errorf("config: %w", err)
				}
				cfgPath = p
			}
			checkFile(out, "Config", cfgPath)
			fmt.Fprintf(out, "  Marker: %v (%q)\n", a.cfg.Marker, a.cfg.MarkerGlyph)
			fmt.Fprintf(out, "  Strict: %v\n", a.cfg.Strict)

			fmt.Fprintln(out, "\n=== Exports ===")
			checkDir(out, "Export dir", a.cfg.ExportDir)
			files, err := scan.ScanDir(a.cfg.ExportDir)
			if err != nil {
				fmt.Fprintf(out, "  scan error: %v\n", err)
			} else {
				fmt.Fprintf(out, "  Text files: %d\n", len(files))
			}

			fmt.Fprintln(out, "\n=== Transcript ===")
			if !checkFile(out, "Path", a.cfg.Transcript) {
				return nil
			}
			tr, err := a.loadTranscript()
			if err != nil {
				fmt.Fprintf(out, "  Status: ERROR (%s)\n", formatError(err))
				return nil
			}
			for _, line := range transcriptStats(tr) {
				fmt.Fprintln(out, "  "+line)
			}
			return nil
		},
	}
}

// transcriptStats summarises a transcript for doctor.
func transcriptStats(tr *history.Transcript) []string {
	dates := tr.Dates()
	days := make(map[time.Time]bool, len(dates))
	outOfOrder := 0
	for i, d := range dates {
		days[d] = true
		if i > 0 && d.Before(dates[i-1]) {
			outOfOrder++
		}
	}

	stats := []string{
		fmt.Sprintf("Banner: %v", tr.BannerStripped()),
		fmt.Sprintf("Lines: %d", tr.Len()),
		fmt.Sprintf("Headers: %d", len(dates)),
		fmt.Sprintf("Days with history: %d", len(days)),
	}
	if len(dates) == 0 {
		return append(stats, "Status: NO DATE HEADERS (not a chat export?)")
	}

	first, last := dates[0], dates[len(dates)-1]
	for _, d := range dates {
		if d.After(last) {
			last = d
		}
	}
	stats = append(stats,
		fmt.Sprintf("First date: %s", first.Format("2006-01-02")),
		fmt.Sprintf("Last date: %s", last.Format("2006-01-02")),
	)
	if outOfOrder > 0 {
		stats = append(stats, fmt.Sprintf("Status: WARNING (%d headers out of date order)", outOfOrder))
	} else {
		stats = append(stats, "Status: OK")
	}
	return stats
}

func checkFile(out io.Writer, name, path string) bool {
	info, err := os.Stat(path)
	switch {
	case err != nil:
		fmt.Fprintf(out, "  %s: %s (NOT FOUND)\n", name, path)
		return false
	case info.IsDir():
		fmt.Fprintf(out, "  %s: %s (IS A DIRECTORY)\n", name, path)
		return false
	default:
		fmt.Fprintf(out, "  %s: %s (OK, %s)\n", name, path, formatSize(info.Size()))
		return true
	}
}

func checkDir(out io.Writer, name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Fprintf(out, "  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Fprintf(out, "  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Fprintf(out, "  %s: %s (OK)\n", name, path)
	}
}
