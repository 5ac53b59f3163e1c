package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/org-mcp/internal/corpus"
	"github.com/mvp-joe/org-mcp/internal/org"
)

// AddHeadingTools registers the heading read and write tools with an MCP
// server. These tools are where the document model gets exercised: parsing,
// locating, and in-place block mutation.
func AddHeadingTools(s *server.MCPServer, store *corpus.Store) {
	readAllTool := mcp.NewTool(
		"org_read_headings",
		mcp.WithDescription("Parse an org file into its heading outline: level, optional todo state, title, and the content lines under each heading."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Relative path to the org file")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.AddTool(readAllTool, createReadHeadingsHandler(store))

	readOneTool := mcp.NewTool(
		"org_read_heading",
		mcp.WithDescription("Read one heading and its content from an org file, found by exact title match (first occurrence wins)."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Relative path to the org file")),
		mcp.WithString("heading_title",
			mcp.Required(),
			mcp.Description("Title of the heading to find (without stars or todo state)")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.AddTool(readOneTool, createReadHeadingHandler(store))

	outlineTool := mcp.NewTool(
		"org_outline",
		mcp.WithDescription("Return the nested outline tree of an org file, with headings grouped under their parent headings by level."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Relative path to the org file")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.AddTool(outlineTool, createOutlineHandler(store))

	addTool := mcp.NewTool(
		"org_add_heading",
		mcp.WithDescription("Append a new heading to an existing org file."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Relative path to the org file")),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Heading title")),
		mcp.WithNumber("level",
			mcp.Description("Heading level: 1 = *, 2 = **, and so on (default: 1)")),
		mcp.WithString("content",
			mcp.Description("Content lines under the heading")),
		mcp.WithString("todo_state",
			mcp.Description("Optional todo state: TODO, DONE, or IN-PROGRESS")),
		mcp.WithDestructiveHintAnnotation(false),
	)
	s.AddTool(addTool, createAddHeadingHandler(store))

	modifyTool := mcp.NewTool(
		"org_modify_heading",
		mcp.WithDescription("Modify an existing heading in place: title, content, and/or todo state. Every line outside the heading's block is preserved byte-for-byte."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Relative path to the org file")),
		mcp.WithString("heading_title",
			mcp.Required(),
			mcp.Description("Title of the heading to modify")),
		mcp.WithString("new_title",
			mcp.Description("New title (omit to keep the current one)")),
		mcp.WithString("new_content",
			mcp.Description("New content block (omit to keep the current one; empty string clears it)")),
		mcp.WithString("new_todo_state",
			mcp.Description("New todo state (omit to keep; empty string removes it)")),
	)
	s.AddTool(modifyTool, createModifyHeadingHandler(store))
}

func createReadHeadingsHandler(store *corpus.Store) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		relPath, err := parseStringArg(argsMap, "file_path", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		headings, err := store.Headings(relPath)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return marshalToolResponse(&HeadingsResponse{
			FilePath: relPath,
			Headings: headings,
			Total:    len(headings),
		})
	}
}

func createReadHeadingHandler(store *corpus.Store) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		relPath, err := parseStringArg(argsMap, "file_path", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		title, err := parseStringArg(argsMap, "heading_title", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		headings, err := store.Headings(relPath)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		heading, ok := org.FindHeading(headings, title)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("heading %q not found in %s", title, relPath)), nil
		}

		return marshalToolResponse(&HeadingResponse{FilePath: relPath, Heading: heading})
	}
}

func createOutlineHandler(store *corpus.Store) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		relPath, err := parseStringArg(argsMap, "file_path", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		headings, err := store.Headings(relPath)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		outline, err := org.BuildOutline(headings)
		if err != nil {
			return nil, fmt.Errorf("build outline for %s: %w", relPath, err)
		}

		return marshalToolResponse(&OutlineResponse{FilePath: relPath, Outline: outline})
	}
}

func createAddHeadingHandler(store *corpus.Store) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		relPath, err := parseStringArg(argsMap, "file_path", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		title, err := parseStringArg(argsMap, "title", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		content, err := parseStringArg(argsMap, "content", false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		todoState, err := parseStringArg(argsMap, "todo_state", false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		level := parseClampedInt(argsMap, "level", 1, 1, 10)

		if err := store.AppendHeading(relPath, level, org.TodoState(todoState), title, content); err != nil {
			if errors.Is(err, corpus.ErrFileNotFound) {
				return mcp.NewToolResultError(fmt.Sprintf("file %s does not exist", relPath)), nil
			}
			return mcp.NewToolResultError(err.Error()), nil
		}

		return marshalToolResponse(&StatusResponse{
			Status:  "success",
			Message: fmt.Sprintf("Added new heading %q to %s", title, relPath),
		})
	}
}

func createModifyHeadingHandler(store *corpus.Store) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		relPath, err := parseStringArg(argsMap, "file_path", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		title, err := parseStringArg(argsMap, "heading_title", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		newTitle, err := parseStringArgPtr(argsMap, "new_title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		newContent, err := parseStringArgPtr(argsMap, "new_content")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		newTodo, err := parseStringArgPtr(argsMap, "new_todo_state")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		ov := org.Overrides{Title: newTitle, Content: newContent}
		if newTodo != nil {
			state := org.TodoState(*newTodo)
			ov.TodoState = &state
		}

		if err := store.ModifyHeading(relPath, title, ov); err != nil {
			switch {
			case errors.Is(err, org.ErrHeadingNotFound):
				return mcp.NewToolResultError(fmt.Sprintf("heading %q not found in %s", title, relPath)), nil
			case errors.Is(err, corpus.ErrFileNotFound):
				return mcp.NewToolResultError(fmt.Sprintf("file %s does not exist", relPath)), nil
			default:
				return mcp.NewToolResultError(err.Error()), nil
			}
		}

		return marshalToolResponse(&StatusResponse{
			Status:  "success",
			Message: fmt.Sprintf("Modified heading %q in %s", title, relPath),
		})
	}
}
