package agenda

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/org-mcp/internal/config"
	"github.com/mvp-joe/org-mcp/internal/corpus"
	"github.com/mvp-joe/org-mcp/internal/org"
)

// stubEngine returns canned output or a canned error for every command.
type stubEngine struct {
	output string
	err    error
	calls  int
}

func (e *stubEngine) Run(ctx context.Context, command string) (string, error) {
	e.calls++
	if e.err != nil {
		return "", e.err
	}
	return e.output, nil
}

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

var agendaFixture = map[string]string{
	"inbox.org": "* TODO Buy milk\nSCHEDULED: <2024-01-10>\n* DONE Old task",
	"work.org":  "* IN-PROGRESS Write report\nDEADLINE: <2024-01-05>\n* Notes",
}

func TestPlannerManualPath(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, agendaFixture)
	planner := NewPlanner(store, nil)
	ctx := context.Background()

	t.Run("todos", func(t *testing.T) {
		report, err := planner.Todos(ctx)
		require.NoError(t, err)
		assert.Equal(t, SourceManual, report.Source)
		require.Len(t, report.Todos, 2)
		assert.Equal(t, TodoItem{File: "inbox.org", Heading: "Buy milk", State: org.TodoTodo}, report.Todos[0])
		assert.Equal(t, TodoItem{File: "work.org", Heading: "Write report", State: org.TodoInProgress}, report.Todos[1])
	})

	t.Run("schedule is sorted by date", func(t *testing.T) {
		report, err := planner.Schedule(ctx)
		require.NoError(t, err)
		assert.Equal(t, SourceManual, report.Source)
		require.Len(t, report.Scheduled, 2)
		assert.Equal(t, "2024-01-05", report.Scheduled[0].Date)
		assert.Equal(t, org.KindDeadline, report.Scheduled[0].Kind)
		assert.Equal(t, "work.org", report.Scheduled[0].File)
		assert.Equal(t, "2024-01-10", report.Scheduled[1].Date)
	})

	t.Run("agenda combines both", func(t *testing.T) {
		report, err := planner.Agenda(ctx)
		require.NoError(t, err)
		assert.Equal(t, SourceManual, report.Source)
		assert.Len(t, report.Todos, 2)
		assert.Len(t, report.Scheduled, 2)
	})

	t.Run("empty corpus", func(t *testing.T) {
		empty := newTestStore(t, nil)
		report, err := NewPlanner(empty, nil).Agenda(ctx)
		require.NoError(t, err)
		assert.Empty(t, report.Todos)
		assert.Empty(t, report.Scheduled)
	})
}

func TestPlannerEnginePath(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, agendaFixture)
	ctx := context.Background()

	t.Run("engine output is passed through", func(t *testing.T) {
		engine := &stubEngine{output: "Day-agenda (W02):"}
		report, err := NewPlanner(store, engine).Agenda(ctx)
		require.NoError(t, err)
		assert.Equal(t, SourceEngine, report.Source)
		assert.Equal(t, "Day-agenda (W02):", report.EngineAgenda)
		assert.Empty(t, report.Todos)
	})

	t.Run("engine failure falls back to manual", func(t *testing.T) {
		engine := &stubEngine{err: ErrEngineUnavailable}
		report, err := NewPlanner(store, engine).Todos(ctx)
		require.NoError(t, err)
		assert.Equal(t, SourceManual, report.Source)
		assert.Len(t, report.Todos, 2)
		assert.Equal(t, 1, engine.calls)
	})

	t.Run("engine timeout falls back to manual", func(t *testing.T) {
		engine := &stubEngine{err: ErrEngineTimeout}
		report, err := NewPlanner(store, engine).Schedule(ctx)
		require.NoError(t, err)
		assert.Equal(t, SourceManual, report.Source)
		assert.Len(t, report.Scheduled, 2)
	})
}

func TestEmacsEngineErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing binary is unavailable", func(t *testing.T) {
		engine := NewEmacsEngine("definitely-not-a-real-binary-42", 5*time.Second)
		_, err := engine.Run(context.Background(), "(org-agenda-list)")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEngineUnavailable)
	})

	t.Run("errors never leak into output", func(t *testing.T) {
		engine := NewEmacsEngine("definitely-not-a-real-binary-42", 5*time.Second)
		out, err := engine.Run(context.Background(), "(org-agenda-list)")
		require.Error(t, err)
		assert.Empty(t, out)
	})
}
