package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/line-history/internal/history"
	"github.com/Zuo-Peng/line-history/internal/open"
)

func openCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open <YYYY-MM-DD>",
		Short: "Open the transcript in $EDITOR at the header of a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := history.ParseDate(args[0])
			if err != nil {
				return err
			}
			tr, err := a.loadTranscript()
			if err != nil {
				return err
			}
			return open.OpenDay(tr, a.cfg.Transcript, day)
		},
	}
}
