package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/org-mcp/internal/agenda"
)

// AddAgendaTools registers the agenda tools with an MCP server. Each tool
// reports its source: engine output when the external outline engine
// succeeded, structured items from manual parsing otherwise.
func AddAgendaTools(s *server.MCPServer, planner *agenda.Planner) {
	agendaTool := mcp.NewTool(
		"org_agenda",
		mcp.WithDescription("Get the org agenda: scheduled items, deadlines, and open TODO items across all org files."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.AddTool(agendaTool, createAgendaHandler(planner.Agenda))

	todosTool := mcp.NewTool(
		"org_todos",
		mcp.WithDescription("Get all TODO and IN-PROGRESS items from org files."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.AddTool(todosTool, createAgendaHandler(planner.Todos))

	scheduleTool := mcp.NewTool(
		"org_schedule",
		mcp.WithDescription("Get scheduled items and deadlines from org files, sorted ascending by date."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.AddTool(scheduleTool, createAgendaHandler(planner.Schedule))
}

func createAgendaHandler(query func(context.Context) (*agenda.Report, error)) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		report, err := query(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return marshalToolResponse(report)
	}
}
