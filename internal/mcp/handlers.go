package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Zuo-Peng/line-history/internal/errors"
	"github.com/Zuo-Peng/line-history/internal/history"
)

// Loader returns the transcript a tool call runs against.
type Loader func() (*history.Transcript, error)

// Static returns a Loader that always yields tr.
func Static(tr *history.Transcript) Loader {
	return func() (*history.Transcript, error) { return tr, nil }
}

// FromFile returns a Loader that re-reads path on every call, so edits to
// the export are picked up without restarting the server.
func FromFile(path string, opts history.Options) Loader {
	return func() (*history.Transcript, error) {
		return history.LoadFile(path, opts)
	}
}

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	load Loader
	log  *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(load Loader, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{load: load, log: logger}
}

// Request types for each tool

// DateRequest represents the arguments for search_date and range_after.
type DateRequest struct {
	Date string `json:"date"`
}

// KeywordRequest represents the arguments for search_keyword.
type KeywordRequest struct {
	Keyword string `json:"keyword"`
}

// CalendarRequest represents the arguments for calendar.
type CalendarRequest struct {
	Month string `json:"month"`
}

// SearchRequest represents the arguments for search.
type SearchRequest struct {
	Query string `json:"query,omitempty"`
}

// Handler implementations

// HandleSearchDate handles the search_date tool call.
func (h *Handlers) HandleSearchDate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidArgument(err.Error())), nil
	}
	day, err := history.ParseDate(input.Date)
	if err != nil {
		return errorResult(err), nil
	}
	return h.run("history_search_date", func(tr *history.Transcript) (string, error) {
		return tr.SearchByDate(day), nil
	})
}

// HandleSearchKeyword handles the search_keyword tool call.
func (h *Handlers) HandleSearchKeyword(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[KeywordRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidArgument(err.Error())), nil
	}
	return h.run("history_search_keyword", func(tr *history.Transcript) (string, error) {
		return tr.SearchByKeyword(input.Keyword), nil
	})
}

// HandleRandom handles the random tool call.
func (h *Handlers) HandleRandom(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.run("history_random", func(tr *history.Transcript) (string, error) {
		return tr.SearchByRandom()
	})
}

// HandleCalendar handles the calendar tool call.
func (h *Handlers) HandleCalendar(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CalendarRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidArgument(err.Error())), nil
	}
	month, err := history.ParseMonth(input.Month)
	if err != nil {
		return errorResult(err), nil
	}
	return h.run("history_calendar", func(tr *history.Transcript) (string, error) {
		return tr.CreateCalendar(month)
	})
}

// HandleRangeAfter handles the range_after tool call.
func (h *Handlers) HandleRangeAfter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidArgument(err.Error())), nil
	}
	day, err := history.ParseDate(input.Date)
	if err != nil {
		return errorResult(err), nil
	}
	return h.run("history_range_after", func(tr *history.Transcript) (string, error) {
		return tr.RangeAfter(day), nil
	})
}

// HandleSearch handles the search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidArgument(err.Error())), nil
	}
	q := history.ParseQuery(input.Query)
	return h.run("history_search", func(tr *history.Transcript) (string, error) {
		return tr.SearchBy(q)
	})
}

// run loads the transcript and applies query, turning failures into error results.
func (h *Handlers) run(tool string, query func(*history.Transcript) (string, error)) (*mcp.CallToolResult, error) {
	tr, err := h.load()
	if err != nil {
		h.log.Warn("transcript load failed", slog.String("tool", tool), slog.String("error", err.Error()))
		if _, ok := errors.As(err); !ok {
			err = errors.NewInternal(err)
		}
		return errorResult(err), nil
	}

	out, err := query(tr)
	if err != nil {
		h.log.Debug("tool call failed", slog.String("tool", tool), slog.String("error", err.Error()))
		return errorResult(err), nil
	}
	h.log.Debug("tool call", slog.String("tool", tool), slog.Int("bytes", len(out)))
	return mcp.NewToolResultText(out), nil
}

// errorResult renders err as an MCP error result carrying
// {"error": {"code", "message", "status"}} JSON.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if hErr, ok := errors.As(err); ok {
		errorObj := map[string]any{
			"code":    hErr.Code,
			"message": hErr.Message,
			"status":  hErr.Status,
		}
		// internal details may carry file paths
		if hErr.Code != errors.ErrInternal && len(hErr.Details) > 0 {
			errorObj["details"] = hErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    errors.ErrInternal,
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}
