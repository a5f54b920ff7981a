package mcp

import (
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"history_search_date": {
		def:     searchDateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSearchDate },
	},
	"history_search_keyword": {
		def:     searchKeywordToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSearchKeyword },
	},
	"history_random": {
		def:     randomToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRandom },
	},
	"history_calendar": {
		def:     calendarToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCalendar },
	},
	"history_range_after": {
		def:     rangeAfterToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRangeAfter },
	},
	"history_search": {
		def:     searchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSearch },
	},
}

// AllToolNames returns the registered tool names, sorted.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewServer creates an MCP server with the history tools registered.
func NewServer(h *Handlers, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"line-history",
		version,
		server.WithToolCapabilities(true),
	)

	for _, name := range AllToolNames() {
		entry := toolRegistry[name]
		s.AddTool(entry.def, entry.handler(h))
	}
	return s
}

// Run starts the MCP server using stdio transport.
func Run(h *Handlers, version string) error {
	return server.ServeStdio(NewServer(h, version))
}
