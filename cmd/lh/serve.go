package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/line-history/internal/mcp"
)

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve history queries as MCP tools over stdio",
		Long:  `Runs an MCP server on stdin/stdout. The transcript is re-read on every tool call, so new exports are picked up without a restart.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.log.Debug("starting mcp server", "transcript", a.cfg.Transcript)
			h := mcp.NewHandlers(mcp.FromFile(a.cfg.Transcript, a.historyOptions()), a.log)
			return mcp.Run(h, version)
		},
	}
}
