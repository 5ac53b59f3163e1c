package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/org-mcp/internal/agenda"
	"github.com/mvp-joe/org-mcp/internal/corpus"
)

// agendaCmd represents the agenda command
var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Print the org agenda: open todos, scheduled items, and deadlines",
	Long: `Scan the org directory and print every open TODO item plus all
scheduled items and deadlines, sorted by date.

When the external outline engine (emacs) is available and enabled it is used
for the agenda; otherwise the files are parsed directly.

Example:
  org-mcp agenda`,
	RunE: runAgenda,
}

var agendaNoEngine bool

func init() {
	agendaCmd.Flags().BoolVar(&agendaNoEngine, "no-engine", false, "skip the external outline engine and parse files directly")
	rootCmd.AddCommand(agendaCmd)
}

func runAgenda(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

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

	// Warm the parse cache with a visible scan; the planner reuses it.
	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Scanning org files"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	for _, relPath := range files {
		if _, err := store.Headings(relPath); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", relPath, err)
		}
		bar.Add(1)
	}

	var engine agenda.Engine
	if cfg.Agenda.EngineEnabled && !agendaNoEngine {
		engine = agenda.NewEmacsEngine(cfg.Agenda.Engine, time.Duration(cfg.Agenda.TimeoutSeconds)*time.Second)
	}

	report, err := agenda.NewPlanner(store, engine).Agenda(ctx)
	if err != nil {
		return fmt.Errorf("failed to build agenda: %w", err)
	}

	printReport(report)
	return nil
}

func printReport(report *agenda.Report) {
	if report.Source == agenda.SourceEngine {
		fmt.Print(report.EngineAgenda)
		if report.EngineTodos != "" {
			fmt.Println()
			fmt.Print(report.EngineTodos)
		}
		return
	}

	if len(report.Todos) > 0 {
		fmt.Println("Open tasks:")
		for _, todo := range report.Todos {
			fmt.Printf("  [%s] %s (%s)\n", todo.State, todo.Heading, todo.File)
		}
	}
	if len(report.Scheduled) > 0 {
		if len(report.Todos) > 0 {
			fmt.Println()
		}
		fmt.Println("Schedule:")
		for _, entry := range report.Scheduled {
			fmt.Printf("  %s  %-9s  %s (%s)\n", entry.Date, entry.Kind, entry.Title, entry.File)
		}
	}
	if len(report.Todos) == 0 && len(report.Scheduled) == 0 {
		fmt.Println("Nothing scheduled and no open tasks.")
	}
}
