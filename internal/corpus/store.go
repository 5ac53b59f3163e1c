package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/maypok86/otter"

	"github.com/mvp-joe/org-mcp/internal/config"
	"github.com/mvp-joe/org-mcp/internal/org"
)

var (
	// ErrFileExists is returned when creating a file that already exists.
	ErrFileExists = errors.New("file already exists")

	// ErrFileNotFound is returned when a requested file is not in the corpus.
	ErrFileNotFound = errors.New("file not found")
)

// Store is the file corpus: a root directory of org files addressed by
// relative slash paths. Parsed heading sequences are cached; any write or
// external change invalidates the affected entry, because headings are
// snapshots that do not survive edits.
//
// Store does not coordinate concurrent read-modify-write cycles on the same
// file; callers that share a corpus must serialize their edits.
type Store struct {
	root      string
	discovery *Discovery
	cache     otter.Cache[string, []org.Heading]
}

// NewStore creates a store rooted at cfg.Dir.
func NewStore(cfg *config.Config) (*Store, error) {
	discovery, err := NewDiscovery(cfg.Dir, cfg.Patterns.Include, cfg.Patterns.Ignore)
	if err != nil {
		return nil, fmt.Errorf("compile corpus patterns: %w", err)
	}

	cache, err := otter.MustBuilder[string, []org.Heading](cfg.Cache.Capacity).
		WithTTL(time.Duration(cfg.Cache.TTLMinutes) * time.Minute).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build parse cache: %w", err)
	}

	return &Store{
		root:      cfg.Dir,
		discovery: discovery,
		cache:     cache,
	}, nil
}

// Root returns the corpus root directory.
func (s *Store) Root() string {
	return s.root
}

// ListFiles returns the relative paths of every corpus file.
func (s *Store) ListFiles() ([]string, error) {
	files, err := s.discovery.Discover()
	if err != nil {
		return nil, fmt.Errorf("discover corpus files: %w", err)
	}
	return files, nil
}

// ReadFile returns the raw text of one corpus file.
func (s *Store) ReadFile(relPath string) (string, error) {
	fullPath, err := s.resolve(relPath)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, relPath)
		}
		return "", fmt.Errorf("read %s: %w", relPath, err)
	}
	return string(data), nil
}

// Headings returns the parsed heading sequence for one file, from cache when
// the file has not changed since the last parse.
func (s *Store) Headings(relPath string) ([]org.Heading, error) {
	if headings, ok := s.cache.Get(relPath); ok {
		return headings, nil
	}

	text, err := s.ReadFile(relPath)
	if err != nil {
		return nil, err
	}

	headings := org.ParseDocument(text)
	s.cache.Set(relPath, headings)
	return headings, nil
}

// CreateFile creates a new corpus file with the given initial content,
// creating parent directories as needed. Fails with ErrFileExists when the
// path is already taken.
func (s *Store) CreateFile(relPath, content string) error {
	fullPath, err := s.resolve(relPath)
	if err != nil {
		return err
	}

	if _, err := os.Stat(fullPath); err == nil {
		return fmt.Errorf("%w: %s", ErrFileExists, relPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", relPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create parent directories for %s: %w", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("create %s: %w", relPath, err)
	}
	return nil
}

// AppendHeading appends a new heading block to an existing file, separated
// from the previous content by a blank line.
func (s *Store) AppendHeading(relPath string, level int, todo org.TodoState, title, content string) error {
	existing, err := s.ReadFile(relPath)
	if err != nil {
		return err
	}

	block := strings.Repeat("*", level) + " "
	if todo != org.TodoNone {
		block += string(todo) + " "
	}
	block += title

	text := existing + "\n\n" + block + "\n" + content
	return s.writeFile(relPath, text)
}

// ModifyHeading rewrites one heading block in place, leaving the rest of the
// file byte-for-byte untouched.
func (s *Store) ModifyHeading(relPath, title string, ov org.Overrides) error {
	text, err := s.ReadFile(relPath)
	if err != nil {
		return err
	}

	lines, err := org.RewriteHeading(org.SplitLines(text), title, ov)
	if err != nil {
		return fmt.Errorf("%s: %w", relPath, err)
	}
	return s.writeFile(relPath, org.JoinLines(lines))
}

// Invalidate drops the cached parse for the given files. The watcher calls
// this for externally changed paths.
func (s *Store) Invalidate(relPaths ...string) {
	for _, relPath := range relPaths {
		s.cache.Delete(filepath.ToSlash(relPath))
	}
}

// Close releases the parse cache.
func (s *Store) Close() {
	s.cache.Close()
}

func (s *Store) writeFile(relPath, text string) error {
	fullPath, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(fullPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", relPath, err)
	}
	s.cache.Delete(relPath)
	return nil
}

// resolve joins a relative path with the corpus root and rejects anything
// that would escape it.
func (s *Store) resolve(relPath string) (string, error) {
	if filepath.IsAbs(relPath) {
		return "", fmt.Errorf("path outside corpus root: %s (absolute paths not allowed)", relPath)
	}

	fullPath := filepath.Clean(filepath.Join(s.root, filepath.FromSlash(relPath)))
	if fullPath != s.root && !strings.HasPrefix(fullPath, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("path outside corpus root: %s", relPath)
	}
	return fullPath, nil
}
