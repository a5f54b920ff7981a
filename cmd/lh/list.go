package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/line-history/internal/scan"
)

func listCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List chat exports in the export directory, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := a.cfg.ExportDir
			if dir != "" {
				root = dir
			}

			files, err := scan.ScanDir(root)
			if err != nil {
				return fmt.Errorf("scan %s: %w", root, err)
			}

			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "No exports found in %s.\n", root)
				return nil
			}

			current := filepath.Clean(a.cfg.Transcript)
			for _, f := range files {
				mark := " "
				if filepath.Clean(f.Path) == current {
					mark = "*"
				}
				fmt.Fprintf(out, "%s %s  %8s  %s\n",
					mark,
					time.Unix(f.Mtime, 0).Format("2006-01-02 15:04"),
					formatSize(f.Size),
					f.Path,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory to scan (default export_dir from config)")

	return cmd
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
