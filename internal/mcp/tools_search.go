package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/org-mcp/internal/search"
)

// AddSearchTool registers the org_search tool with an MCP server.
func AddSearchTool(s *server.MCPServer, searcher *search.Searcher) {
	tool := mcp.NewTool(
		"org_search",
		mcp.WithDescription("Search for text across all org files. Returns matching files with the headings that matched (title, level, todo state)."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Text to search for in heading titles and content")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of matching headings to return (1-100)")),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	s.AddTool(tool, createSearchHandler(searcher))
}

func createSearchHandler(searcher *search.Searcher) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		query, err := parseStringArg(argsMap, "query", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		// 0 means "not provided": the searcher applies its configured default.
		limit := parseIntArg(argsMap, "limit", 0)
		if limit != 0 {
			limit = parseClampedInt(argsMap, "limit", 0, 1, 100)
		}

		matches, err := searcher.Query(ctx, query, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return marshalToolResponse(&SearchResponse{Matches: matches, Total: len(matches)})
	}
}
