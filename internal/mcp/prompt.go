package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const orgHelpText = `I can help you access and work with your org-mode files. Here are some things you can ask me:

- List all your org files
- Read a specific org file or heading
- Search for content in your org files
- View your agenda with scheduled items and deadlines
- See all your TODO items
- Add new files or headings
- Modify existing headings

Examples:
- "What does my day look like today?"
- "What are the most important things for me to work on right now?"
- "Show me all my TODO items related to 'project X'"
- "Create a new heading in my notes.org file"
- "Show me my schedule for this week"
- "What deadlines do I have coming up?"
`

// AddHelpPrompt registers the org_help prompt with an MCP server.
func AddHelpPrompt(s *server.MCPServer) {
	prompt := mcp.NewPrompt(
		"org_help",
		mcp.WithPromptDescription("Help prompt for org-mode interactions"),
	)

	s.AddPrompt(prompt, func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return mcp.NewGetPromptResult(
			"Working with org-mode files",
			[]mcp.PromptMessage{
				mcp.NewPromptMessage(mcp.RoleAssistant, mcp.NewTextContent(orgHelpText)),
			},
		), nil
	})
}
