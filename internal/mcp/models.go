package mcp

import (
	"github.com/mvp-joe/org-mcp/internal/org"
	"github.com/mvp-joe/org-mcp/internal/search"
)

// FileEntry is one corpus file in a listing.
type FileEntry struct {
	Path     string `json:"path"`      // relative to the org directory
	FullPath string `json:"full_path"` // absolute path on disk
}

// ListFilesResponse is the org_list_files tool response.
type ListFilesResponse struct {
	Files []FileEntry `json:"files"`
	Total int         `json:"total"`
}

// HeadingsResponse is the org_read_headings tool response.
type HeadingsResponse struct {
	FilePath string        `json:"file_path"`
	Headings []org.Heading `json:"headings"`
	Total    int           `json:"total"`
}

// HeadingResponse is the org_read_heading tool response.
type HeadingResponse struct {
	FilePath string      `json:"file_path"`
	Heading  org.Heading `json:"heading"`
}

// OutlineResponse is the org_outline tool response.
type OutlineResponse struct {
	FilePath string            `json:"file_path"`
	Outline  []org.OutlineNode `json:"outline"`
}

// SearchResponse is the org_search tool response.
type SearchResponse struct {
	Matches []search.FileMatch `json:"matches"`
	Total   int                `json:"total"`
}

// StatusResponse reports the outcome of a mutating tool call.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
