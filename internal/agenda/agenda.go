package agenda

import (
	"context"
	"log"
	"sort"

	"github.com/mvp-joe/org-mcp/internal/corpus"
	"github.com/mvp-joe/org-mcp/internal/org"
)

// Report sources. Engine reports carry raw engine output; manual reports
// carry structured items parsed out of the corpus.
const (
	SourceEngine = "engine"
	SourceManual = "manual"
)

// TodoItem is one open task found in the corpus.
type TodoItem struct {
	File    string        `json:"file"`
	Heading string        `json:"heading"`
	State   org.TodoState `json:"state"`
}

// ScheduledEntry is a scheduled item tagged with its source file.
type ScheduledEntry struct {
	org.ScheduledItem
	File string `json:"file"`
}

// Report is the result of an agenda, todo, or schedule query.
type Report struct {
	Source       string           `json:"source"`
	EngineAgenda string           `json:"agenda,omitempty"`
	EngineTodos  string           `json:"todo_output,omitempty"`
	Todos        []TodoItem       `json:"todos,omitempty"`
	Scheduled    []ScheduledEntry `json:"scheduled,omitempty"`
}

// Planner answers agenda queries with an explicit two-stage strategy: run the
// external engine first, and on any structured failure fall back to parsing
// the corpus manually. The choice is deterministic; no failure escapes as a
// fault.
type Planner struct {
	store  *corpus.Store
	engine Engine // nil disables the engine stage
}

// NewPlanner creates a planner over the given corpus. engine may be nil,
// which pins every query to the manual path.
func NewPlanner(store *corpus.Store, engine Engine) *Planner {
	return &Planner{store: store, engine: engine}
}

// Agenda returns today's agenda: scheduled items and open todos.
func (p *Planner) Agenda(ctx context.Context) (*Report, error) {
	if p.engine != nil {
		agendaOut, agendaErr := p.engine.Run(ctx, "(org-agenda-list)")
		todoOut, todoErr := p.engine.Run(ctx, "(org-todo-list)")
		if agendaErr == nil && todoErr == nil {
			return &Report{
				Source:       SourceEngine,
				EngineAgenda: agendaOut,
				EngineTodos:  todoOut,
			}, nil
		}
		logEngineFallback(agendaErr, todoErr)
	}

	todos, err := p.collectTodos()
	if err != nil {
		return nil, err
	}
	scheduled, err := p.collectScheduled()
	if err != nil {
		return nil, err
	}
	return &Report{Source: SourceManual, Todos: todos, Scheduled: scheduled}, nil
}

// Todos returns every open task in the corpus.
func (p *Planner) Todos(ctx context.Context) (*Report, error) {
	if p.engine != nil {
		out, err := p.engine.Run(ctx, "(org-todo-list)")
		if err == nil {
			return &Report{Source: SourceEngine, EngineTodos: out}, nil
		}
		logEngineFallback(err)
	}

	todos, err := p.collectTodos()
	if err != nil {
		return nil, err
	}
	return &Report{Source: SourceManual, Todos: todos}, nil
}

// Schedule returns all scheduled items and deadlines, ascending by date.
func (p *Planner) Schedule(ctx context.Context) (*Report, error) {
	if p.engine != nil {
		out, err := p.engine.Run(ctx, "(org-agenda-list)")
		if err == nil {
			return &Report{Source: SourceEngine, EngineAgenda: out}, nil
		}
		logEngineFallback(err)
	}

	scheduled, err := p.collectScheduled()
	if err != nil {
		return nil, err
	}
	return &Report{Source: SourceManual, Scheduled: scheduled}, nil
}

// collectTodos walks the corpus and gathers TODO and IN-PROGRESS headings.
// Files that fail to read are skipped, matching the forgiving aggregation the
// tool surface promises.
func (p *Planner) collectTodos() ([]TodoItem, error) {
	files, err := p.store.ListFiles()
	if err != nil {
		return nil, err
	}

	todos := []TodoItem{}
	for _, relPath := range files {
		headings, err := p.store.Headings(relPath)
		if err != nil {
			log.Printf("Skipping %s: %v", relPath, err)
			continue
		}
		for _, h := range headings {
			if h.TodoState.Open() {
				todos = append(todos, TodoItem{
					File:    relPath,
					Heading: h.Title,
					State:   h.TodoState,
				})
			}
		}
	}
	return todos, nil
}

// collectScheduled gathers scheduled items across the corpus and sorts them
// ascending by date string (lexicographic equals chronological for ISO
// dates). The sort is stable so ties keep corpus order.
func (p *Planner) collectScheduled() ([]ScheduledEntry, error) {
	files, err := p.store.ListFiles()
	if err != nil {
		return nil, err
	}

	entries := []ScheduledEntry{}
	for _, relPath := range files {
		headings, err := p.store.Headings(relPath)
		if err != nil {
			log.Printf("Skipping %s: %v", relPath, err)
			continue
		}
		for _, item := range org.ExtractScheduledItems(headings) {
			entries = append(entries, ScheduledEntry{ScheduledItem: item, File: relPath})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
	return entries, nil
}

func logEngineFallback(errs ...error) {
	for _, err := range errs {
		if err != nil {
			log.Printf("Outline engine unavailable, falling back to manual parsing: %v", err)
			return
		}
	}
	log.Print("Outline engine unavailable, falling back to manual parsing")
}
