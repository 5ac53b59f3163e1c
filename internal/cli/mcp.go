package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/org-mcp/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for org-mode files",
	Long: `Start the Model Context Protocol (MCP) server that lets LLM-powered
assistants read, search, and edit your org-mode files.

The MCP server:
- Parses org files into their heading outlines on demand
- Provides read, edit, search, and agenda tools
- Watches the org directory and keeps its search index fresh
- Communicates via stdio (standard MCP transport)

Example:
  org-mcp mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "org-mcp MCP Server\n")
	fmt.Fprintf(os.Stderr, "Org Directory: %s\n\n", cfg.Dir)

	server, err := mcp.NewOrgServer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	// Serve (blocks until shutdown)
	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
