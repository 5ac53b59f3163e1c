package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/mvp-joe/org-mcp/internal/corpus"
	"github.com/mvp-joe/org-mcp/internal/org"
)

// HeadingMatch is one matching heading inside a file, in the shape the
// search tool reports.
type HeadingMatch struct {
	Title     string        `json:"title"`
	Level     int           `json:"level"`
	TodoState org.TodoState `json:"todo_state,omitempty"`
}

// FileMatch groups the matching headings of one corpus file.
type FileMatch struct {
	FilePath string         `json:"file_path"`
	Headings []HeadingMatch `json:"matches_in_headings"`
}

// Searcher maintains an in-memory full-text index of every heading in the
// corpus. Document IDs are "relpath#ordinal", which lets a file's documents
// be dropped and rebuilt when the watcher reports a change.
type Searcher struct {
	store *corpus.Store
	limit int

	mu     sync.RWMutex // protects index and docIDs during updates
	index  bleve.Index
	docIDs map[string][]string // relPath -> indexed document IDs
}

// NewSearcher builds the index from the current corpus contents.
func NewSearcher(store *corpus.Store, limit int) (*Searcher, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create search index: %w", err)
	}

	s := &Searcher{
		store:  store,
		limit:  limit,
		index:  index,
		docIDs: make(map[string][]string),
	}

	files, err := store.ListFiles()
	if err != nil {
		index.Close()
		return nil, err
	}
	for _, relPath := range files {
		if err := s.indexFile(relPath); err != nil {
			index.Close()
			return nil, fmt.Errorf("index %s: %w", relPath, err)
		}
	}

	return s, nil
}

// buildIndexMapping creates the index mapping for heading documents.
// Title and content use the standard analyzer; path and todo are keywords
// kept for exact retrieval, not scoring.
func buildIndexMapping() *mapping.IndexMappingImpl {
	titleMapping := bleve.NewTextFieldMapping()
	titleMapping.Analyzer = "standard"
	titleMapping.Store = true

	contentMapping := bleve.NewTextFieldMapping()
	contentMapping.Analyzer = "standard"
	contentMapping.Store = false

	pathMapping := bleve.NewTextFieldMapping()
	pathMapping.Analyzer = "keyword"
	pathMapping.Store = true
	pathMapping.Index = false

	todoMapping := bleve.NewTextFieldMapping()
	todoMapping.Analyzer = "keyword"
	todoMapping.Store = true
	todoMapping.Index = false

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("title", titleMapping)
	docMapping.AddFieldMappingsAt("content", contentMapping)
	docMapping.AddFieldMappingsAt("path", pathMapping)
	docMapping.AddFieldMappingsAt("todo", todoMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// Query searches heading titles and content and returns matches grouped per
// file, files ordered by their best-scoring heading. limit <= 0 falls back to
// the searcher's configured default.
func (s *Searcher) Query(ctx context.Context, query string, limit int) ([]FileMatch, error) {
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	if limit <= 0 {
		limit = s.limit
	}

	matchQuery := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequest(matchQuery)
	req.Size = limit
	req.Fields = []string{"path", "title", "todo", "level"}

	s.mu.RLock()
	defer s.mu.RUnlock()

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	var matches []FileMatch
	byPath := make(map[string]int)
	for _, hit := range res.Hits {
		path, _ := hit.Fields["path"].(string)
		title, _ := hit.Fields["title"].(string)
		todo, _ := hit.Fields["todo"].(string)
		level := 0
		if f, ok := hit.Fields["level"].(float64); ok {
			level = int(f)
		}

		hm := HeadingMatch{Title: title, Level: level, TodoState: org.TodoState(todo)}
		if i, ok := byPath[path]; ok {
			matches[i].Headings = append(matches[i].Headings, hm)
			continue
		}
		byPath[path] = len(matches)
		matches = append(matches, FileMatch{FilePath: path, Headings: []HeadingMatch{hm}})
	}

	return matches, nil
}

// Reindex drops and rebuilds the documents of the given files. Files that no
// longer exist are simply removed from the index.
func (s *Searcher) Reindex(relPaths []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, relPath := range relPaths {
		if err := s.removeFile(relPath); err != nil {
			return err
		}

		s.store.Invalidate(relPath)
		if err := s.indexFile(relPath); err != nil {
			if errors.Is(err, corpus.ErrFileNotFound) {
				continue
			}
			return fmt.Errorf("reindex %s: %w", relPath, err)
		}
	}
	return nil
}

// Close releases the index.
func (s *Searcher) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// indexFile adds every heading of one file to the index. Callers hold the
// write lock (or are still single-threaded during construction).
func (s *Searcher) indexFile(relPath string) error {
	headings, err := s.store.Headings(relPath)
	if err != nil {
		return err
	}

	batch := s.index.NewBatch()
	ids := make([]string, 0, len(headings))
	for i, h := range headings {
		id := relPath + "#" + strconv.Itoa(i)
		doc := map[string]interface{}{
			"path":    relPath,
			"title":   h.Title,
			"content": h.Content,
			"todo":    string(h.TodoState),
			"level":   h.Level,
		}
		if err := batch.Index(id, doc); err != nil {
			return err
		}
		ids = append(ids, id)
	}

	if err := s.index.Batch(batch); err != nil {
		return err
	}
	s.docIDs[relPath] = ids
	return nil
}

// removeFile drops a file's documents from the index.
func (s *Searcher) removeFile(relPath string) error {
	ids, ok := s.docIDs[relPath]
	if !ok {
		return nil
	}

	batch := s.index.NewBatch()
	for _, id := range ids {
		batch.Delete(id)
	}
	if err := s.index.Batch(batch); err != nil {
		return err
	}
	delete(s.docIDs, relPath)
	return nil
}
