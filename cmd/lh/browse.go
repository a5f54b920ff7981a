package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/line-history/internal/tui"
)

func browseCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the transcript in a calendar TUI",
		Long:  `Opens a TUI with a month calendar on the left and the selected day's chat log on the right. Use / for keyword search, r for a random day, y to copy the preview.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return fmt.Errorf("browse needs a terminal; use date, keyword or search when piping")
			}
			tr, err := a.loadTranscript()
			if err != nil {
				return err
			}
			return tui.Run(tr, tui.Options{
				Path:    a.cfg.Transcript,
				Watch:   watch,
				History: a.historyOptions(),
				Logger:  a.log,
			})
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload when the transcript file changes")

	return cmd
}
