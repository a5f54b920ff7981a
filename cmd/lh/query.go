package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/line-history/internal/history"
	"github.com/Zuo-Peng/line-history/internal/render"
)

// printResult writes a query result to w, colored when w is a terminal.
func (a *app) printResult(w io.Writer, out string, kind render.Kind, keyword string) error {
	if out == "" {
		return nil
	}
	glyph := ""
	if a.cfg.Marker {
		glyph = a.cfg.MarkerGlyph
	}
	out = render.Render(out, kind, render.Options{
		Color:       a.useColor(w),
		Keyword:     keyword,
		MarkerGlyph: glyph,
	})
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err := io.WriteString(w, out)
	return err
}

func dateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "date <YYYY-MM-DD>",
		Short: "Show the chat log of one day",
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
			return a.printResult(cmd.OutOrStdout(), tr.SearchByDate(day), render.KindBlock, "")
		},
	}
}

func keywordCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keyword <text>",
		Short: "List every line containing text, with its date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := a.loadTranscript()
			if err != nil {
				return err
			}
			return a.printResult(cmd.OutOrStdout(), tr.SearchByKeyword(args[0]), render.KindKeyword, args[0])
		},
	}
}

func randomCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Show the chat log of a random day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := a.loadTranscript()
			if err != nil {
				return err
			}
			out, err := tr.SearchByRandom()
			if err != nil {
				return err
			}
			return a.printResult(cmd.OutOrStdout(), out, render.KindBlock, "")
		},
	}
}

func searchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search [date|keyword]",
		Short: "Search by date or keyword; a random day when no argument is given",
		Long: `Search dispatches on its argument:
  lh search 2023-04-01   the chat log of that day
  lh search lunch        every line containing "lunch"
  lh search              a random day`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			q := history.ParseQuery(arg)

			tr, err := a.loadTranscript()
			if err != nil {
				return err
			}
			out, err := tr.SearchBy(q)
			if err != nil {
				return err
			}

			kind := render.KindBlock
			if q.Kind == history.QueryKeyword {
				kind = render.KindKeyword
			}
			return a.printResult(cmd.OutOrStdout(), out, kind, q.Keyword)
		},
	}
}

func calendarCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar [YYYY-MM]",
		Short: "Show a month calendar; days with history are marked with _",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month := time.Now()
			if len(args) == 1 {
				m, err := history.ParseMonth(args[0])
				if err != nil {
					return err
				}
				month = m
			}
			tr, err := a.loadTranscript()
			if err != nil {
				return err
			}
			out, err := tr.CreateCalendar(month)
			if err != nil {
				return err
			}
			return a.printResult(cmd.OutOrStdout(), out, render.KindCalendar, "")
		},
	}
}

func afterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "after <YYYY-MM-DD>",
		Short: "Show everything from the first day on or after a date",
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
			out := tr.RangeAfter(day)
			if out == "" {
				a.log.Debug("no history on or after date", "date", day.Format("2006-01-02"))
				fmt.Fprintln(cmd.ErrOrStderr(), "No history on or after "+day.Format("2006-01-02")+".")
				return nil
			}
			return a.printResult(cmd.OutOrStdout(), out, render.KindBlock, "")
		},
	}
}
