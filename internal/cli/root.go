package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/org-mcp/internal/config"
)

var (
	configDir string
	orgDir    string
	verbose   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "org-mcp",
	Short: "org-mcp - MCP server for org-mode files",
	Long: `org-mcp exposes a directory of org-mode outline files to LLM clients
over the Model Context Protocol: reading and editing headings, searching
across the corpus, and computing agendas.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default is $HOME/.org-mcp)")
	rootCmd.PersistentFlags().StringVar(&orgDir, "dir", "", "org directory (overrides config and ORG_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads configuration honoring the --config and --dir flags.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configDir != "" {
		cfg, err = config.NewLoader(configDir).Load()
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if orgDir != "" {
		cfg.Dir = orgDir
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Org directory: %s\n", cfg.Dir)
	}
	return cfg, nil
}
