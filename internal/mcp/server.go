package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"capsicum/internal/store"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func journalHandler(s store.Store) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		username, err := request.RequireString("username")
		if err != nil {
			return mcp.NewToolResultError("username is required"), nil
		}
		startDateStr, err := request.RequireString("start_date")
		if err != nil {
			return mcp.NewToolResultError("start_date is required"), nil
		}
		endDateStr, err := request.RequireString("end_date")
		if err != nil {
			return mcp.NewToolResultError("end_date is required"), nil
		}

		start, err := time.Parse(time.RFC3339, startDateStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid start_date: %v", err)), nil
		}
		end, err := time.Parse(time.RFC3339, endDateStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid end_date: %v", err)), nil
		}

		user, err := s.GetUserByUsername(username)
		if err == store.ErrNotFound {
			return mcp.NewToolResultError("user not found"), nil
		} else if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("database error: %v", err)), nil
		}

		entries, err := s.GetEntriesByTimeRange(user.ID, start, end)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("database error: %v", err)), nil
		}

		if len(entries) == 0 {
			return mcp.NewToolResultText("No journal entries found for this time range."), nil
		}

		var lines []string
		for _, e := range entries {
			lines = append(lines, fmt.Sprintf("[%s] %s: %s", e.Date.Format(time.RFC3339), e.Type, e.Notes))
		}

		return mcp.NewToolResultText(fmt.Sprintf("Found %d journal entries:\n%s", len(entries), strings.Join(lines, "\n"))), nil
	}
}

// NewServer exposes read-only garden journal access to MCP clients.
func NewServer(s store.Store) *server.StreamableHTTPServer {
	mcpServer := server.NewMCPServer("Capsicum", "1.0.0")

	tool := mcp.NewTool("get_garden_journal",
		mcp.WithDescription("Retrieve a user's plant journal entries within a specific time range."),
		mcp.WithString("username", mcp.Required(), mcp.Description("The username whose journal to fetch")),
		mcp.WithString("start_date", mcp.Required(), mcp.Description("Start of the time range (RFC3339), e.g. 2023-01-01T00:00:00Z")),
		mcp.WithString("end_date", mcp.Required(), mcp.Description("End of the time range (RFC3339), e.g. 2023-12-31T23:59:59Z")),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	mcpServer.AddTool(tool, journalHandler(s))

	return server.NewStreamableHTTPServer(mcpServer, server.WithStateLess(true))
}
