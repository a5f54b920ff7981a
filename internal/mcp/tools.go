package mcp

import "github.com/mark3labs/mcp-go/mcp"

var searchDateToolDef = mcp.NewTool("history_search_date",
	mcp.WithDescription("Return the chat log of one day, followed by its line count."),
	mcp.WithString("date",
		mcp.Required(),
		mcp.Description("Day to show, YYYY-MM-DD or YYYY/MM/DD"),
	),
)

var searchKeywordToolDef = mcp.NewTool("history_search_keyword",
	mcp.WithDescription("Find every chat line containing a keyword, each prefixed with its date."),
	mcp.WithString("keyword",
		mcp.Required(),
		mcp.Description("Literal, case-sensitive text to look for"),
	),
)

var randomToolDef = mcp.NewTool("history_random",
	mcp.WithDescription("Return the chat log of a random day between the first day and today."),
)

var calendarToolDef = mcp.NewTool("history_calendar",
	mcp.WithDescription("Render a month calendar; days with history are prefixed with an underscore."),
	mcp.WithString("month",
		mcp.Required(),
		mcp.Description("Month to render, YYYY-MM"),
	),
)

var rangeAfterToolDef = mcp.NewTool("history_range_after",
	mcp.WithDescription("Return every line from the first day on or after a date to the end of the log."),
	mcp.WithString("date",
		mcp.Required(),
		mcp.Description("Start day, YYYY-MM-DD or YYYY/MM/DD"),
	),
)

var searchToolDef = mcp.NewTool("history_search",
	mcp.WithDescription("Search by date when the query is a date, by keyword otherwise, or pick a random day when it is empty."),
	mcp.WithString("query",
		mcp.Description("Date, keyword, or empty for a random day"),
	),
)
