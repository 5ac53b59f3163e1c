package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/org-mcp/internal/config"
	"github.com/mvp-joe/org-mcp/internal/corpus"
)

func newTestStore(t *testing.T, files map[string]string) *corpus.Store {
	t.Helper()

	cfg := config.Default()
	cfg.Dir = t.TempDir()
	for relPath, content := range files {
		fullPath := filepath.Join(cfg.Dir, filepath.FromSlash(relPath))
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0o644))
	}

	store, err := corpus.NewStore(cfg)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
	result, err := handler(context.Background(), request)
	require.NoError(t, err, "should not return system error")
	require.NotNil(t, result)
	return result
}

func decodeResult(t *testing.T, result *mcp.CallToolResult, v interface{}) {
	t.Helper()

	require.False(t, result.IsError, "should not be error result")
	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "should be text content")
	require.NoError(t, json.Unmarshal([]byte(textContent.Text), v))
}

func errorText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.True(t, result.IsError, "should be error result")
	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "should be text content")
	return textContent.Text
}

func TestListFilesHandler(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, map[string]string{
		"inbox.org":         "* One",
		"projects/work.org": "* Two",
	})
	handler := createListFilesHandler(store)

	result := callTool(t, handler, map[string]interface{}{})

	var response ListFilesResponse
	decodeResult(t, result, &response)
	assert.Equal(t, 2, response.Total)
	assert.Equal(t, "inbox.org", response.Files[0].Path)
	assert.Equal(t, filepath.Join(store.Root(), "inbox.org"), response.Files[0].FullPath)
	assert.Equal(t, "projects/work.org", response.Files[1].Path)
}

func TestReadFileHandler(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, map[string]string{"inbox.org": "* TODO Task\nbody"})
	handler := createReadFileHandler(store)

	t.Run("returns raw content", func(t *testing.T) {
		result := callTool(t, handler, map[string]interface{}{"file_path": "inbox.org"})
		require.False(t, result.IsError)
		textContent, ok := mcp.AsTextContent(result.Content[0])
		require.True(t, ok)
		assert.Equal(t, "* TODO Task\nbody", textContent.Text)
	})

	t.Run("missing file is a tool error", func(t *testing.T) {
		result := callTool(t, handler, map[string]interface{}{"file_path": "missing.org"})
		assert.Contains(t, errorText(t, result), "file not found")
	})

	t.Run("missing argument", func(t *testing.T) {
		result := callTool(t, handler, map[string]interface{}{})
		assert.Contains(t, errorText(t, result), "file_path")
	})
}

func TestCreateFileHandler(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, map[string]string{"taken.org": ""})
	handler := createCreateFileHandler(store)

	t.Run("creates file", func(t *testing.T) {
		result := callTool(t, handler, map[string]interface{}{
			"file_path": "new.org",
			"content":   "* Hello",
		})

		var response StatusResponse
		decodeResult(t, result, &response)
		assert.Equal(t, "success", response.Status)

		text, err := store.ReadFile("new.org")
		require.NoError(t, err)
		assert.Equal(t, "* Hello", text)
	})

	t.Run("existing file is a tool error", func(t *testing.T) {
		result := callTool(t, handler, map[string]interface{}{"file_path": "taken.org"})
		assert.Contains(t, errorText(t, result), "already exists")
	})
}

func TestFilesResourceHandler(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, map[string]string{"inbox.org": "* One"})
	handler := createFilesResourceHandler(store)

	request := mcp.ReadResourceRequest{}
	request.Params.URI = "org://files"

	contents, err := handler(context.Background(), request)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "org://files", text.URI)
	assert.Contains(t, text.Text, "- inbox.org")
}
