package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/org-mcp/internal/agenda"
	"github.com/mvp-joe/org-mcp/internal/config"
	"github.com/mvp-joe/org-mcp/internal/corpus"
	"github.com/mvp-joe/org-mcp/internal/search"
)

// OrgServer manages the MCP server lifecycle: the corpus store, the search
// index, the corpus watcher that keeps both fresh, and the stdio transport.
type OrgServer struct {
	cfg      *config.Config
	store    *corpus.Store
	searcher *search.Searcher
	watcher  *corpus.Watcher
	planner  *agenda.Planner
	mcp      *server.MCPServer
}

// NewOrgServer creates a server over the configured org directory and
// registers the full tool surface.
func NewOrgServer(ctx context.Context, cfg *config.Config) (*OrgServer, error) {
	store, err := corpus.NewStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create corpus store: %w", err)
	}

	searcher, err := search.NewSearcher(store, cfg.Search.Limit)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create searcher: %w", err)
	}

	var engine agenda.Engine
	if cfg.Agenda.EngineEnabled {
		engine = agenda.NewEmacsEngine(cfg.Agenda.Engine, time.Duration(cfg.Agenda.TimeoutSeconds)*time.Second)
	}
	planner := agenda.NewPlanner(store, engine)

	watcher, err := corpus.NewWatcher(store)
	if err != nil {
		searcher.Close()
		store.Close()
		return nil, fmt.Errorf("failed to create corpus watcher: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"org-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
	)

	AddFileTools(mcpServer, store)
	AddHeadingTools(mcpServer, store)
	AddSearchTool(mcpServer, searcher)
	AddAgendaTools(mcpServer, planner)
	AddHelpPrompt(mcpServer)

	return &OrgServer{
		cfg:      cfg,
		store:    store,
		searcher: searcher,
		watcher:  watcher,
		planner:  planner,
		mcp:      mcpServer,
	}, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *OrgServer) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// External edits invalidate parses and reindex search in one pass.
	if err := s.watcher.Start(ctx, func(relPaths []string) {
		if err := s.searcher.Reindex(relPaths); err != nil {
			log.Printf("Reindex after corpus change failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to start corpus watcher: %w", err)
	}
	defer s.watcher.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio (org dir: %s)...", s.store.Root())
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		cancel()
		return nil
	case err := <-errCh:
		cancel()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases all resources.
func (s *OrgServer) Close() error {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	var err error
	if s.searcher != nil {
		err = s.searcher.Close()
	}
	if s.store != nil {
		s.store.Close()
	}
	return err
}
