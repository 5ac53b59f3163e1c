package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/org-mcp/internal/corpus"
)

// filesCmd represents the files command
var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List the org files in the configured directory",
	Long: `List every org file discovered under the configured org directory,
honoring the include and ignore patterns from configuration.

Example:
  org-mcp files`,
	RunE: runFiles,
}

func init() {
	rootCmd.AddCommand(filesCmd)
}

func runFiles(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := corpus.NewStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open org directory: %w", err)
	}
	defer store.Close()

	files, err := store.ListFiles()
	if err != nil {
		return fmt.Errorf("failed to list org files: %w", err)
	}

	for _, relPath := range files {
		fmt.Println(relPath)
	}
	if verbose {
		fmt.Printf("\n%d file(s) in %s\n", len(files), store.Root())
	}
	return nil
}
