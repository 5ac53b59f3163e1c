package mcp

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/org-mcp/internal/corpus"
)

// AddFileTools registers the corpus file tools and the org://files resource
// with an MCP server.
func AddFileTools(s *server.MCPServer, store *corpus.Store) {
	listTool := mcp.NewTool(
		"org_list_files",
		mcp.WithDescription("List all org files in the configured org directory, with paths relative to it."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.AddTool(listTool, createListFilesHandler(store))

	readTool := mcp.NewTool(
		"org_read_file",
		mcp.WithDescription("Read the raw content of one org file."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Relative path to the org file (e.g. 'projects/work.org')")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.AddTool(readTool, createReadFileHandler(store))

	createTool := mcp.NewTool(
		"org_create_file",
		mcp.WithDescription("Create a new org file. Fails if the file already exists. Parent directories are created as needed."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Relative path for the new org file")),
		mcp.WithString("content",
			mcp.Description("Initial content for the file (default: empty)")),
		mcp.WithDestructiveHintAnnotation(false),
	)
	s.AddTool(createTool, createCreateFileHandler(store))

	resource := mcp.NewResource(
		"org://files",
		"Org files",
		mcp.WithResourceDescription("Listing of all org files in the configured directory"),
		mcp.WithMIMEType("text/plain"),
	)
	s.AddResource(resource, createFilesResourceHandler(store))
}

func createListFilesHandler(store *corpus.Store) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		files, err := store.ListFiles()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		entries := make([]FileEntry, 0, len(files))
		for _, relPath := range files {
			entries = append(entries, FileEntry{
				Path:     relPath,
				FullPath: filepath.Join(store.Root(), filepath.FromSlash(relPath)),
			})
		}

		return marshalToolResponse(&ListFilesResponse{Files: entries, Total: len(entries)})
	}
}

func createReadFileHandler(store *corpus.Store) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		relPath, err := parseStringArg(argsMap, "file_path", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		content, err := store.ReadFile(relPath)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(content), nil
	}
}

func createCreateFileHandler(store *corpus.Store) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		relPath, err := parseStringArg(argsMap, "file_path", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		content, err := parseStringArg(argsMap, "content", false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := store.CreateFile(relPath, content); err != nil {
			if errors.Is(err, corpus.ErrFileExists) {
				return mcp.NewToolResultError(fmt.Sprintf("file %s already exists", relPath)), nil
			}
			return mcp.NewToolResultError(err.Error()), nil
		}

		return marshalToolResponse(&StatusResponse{
			Status:  "success",
			Message: fmt.Sprintf("Created new file: %s", relPath),
		})
	}
}

func createFilesResourceHandler(store *corpus.Store) func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		files, err := store.ListFiles()
		if err != nil {
			return nil, fmt.Errorf("list org files: %w", err)
		}

		var b strings.Builder
		if len(files) == 0 {
			fmt.Fprintf(&b, "No org files found in %s", store.Root())
		} else {
			fmt.Fprintf(&b, "Org files in %s:\n\n", store.Root())
			for _, relPath := range files {
				fmt.Fprintf(&b, "- %s\n", relPath)
			}
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "text/plain",
				Text:     b.String(),
			},
		}, nil
	}
}
