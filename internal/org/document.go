package org

// TodoState is the workflow marker attached to a heading, e.g. "TODO".
type TodoState string

const (
	TodoNone       TodoState = ""
	TodoTodo       TodoState = "TODO"
	TodoDone       TodoState = "DONE"
	TodoInProgress TodoState = "IN-PROGRESS"
)

// Open reports whether the state marks work that is not finished yet.
func (s TodoState) Open() bool {
	return s == TodoTodo || s == TodoInProgress
}

// Heading is one outline node: the heading line plus every content line up to
// (excluding) the next heading line of any level. Headings are immutable
// snapshots of the document at parse time; any edit to the underlying text
// invalidates them and requires a re-parse.
type Heading struct {
	// Level equals the length of the leading star run on Raw.
	Level int `json:"level"`

	// Title is the heading line's free text with the todo token stripped.
	Title string `json:"title"`

	// TodoState is TodoNone when the heading carries no token.
	TodoState TodoState `json:"todo_state,omitempty"`

	// Raw is the original heading line, unmodified.
	Raw string `json:"raw"`

	// Content is the lines strictly between this heading line and the next
	// heading line (or end of document), joined with "\n". It never contains
	// another heading's line.
	Content string `json:"content"`
}

// ItemKind distinguishes the two date marker flavors.
type ItemKind string

const (
	KindScheduled ItemKind = "scheduled"
	KindDeadline  ItemKind = "deadline"
)

// ScheduledItem is a date-bearing marker lifted out of a heading's content.
// Date is an opaque ISO calendar string (YYYY-MM-DD); lexicographic order on
// it equals chronological order, which is all aggregating callers rely on.
type ScheduledItem struct {
	Kind      ItemKind  `json:"type"`
	Date      string    `json:"date"`
	Title     string    `json:"title"`
	TodoState TodoState `json:"todo_state,omitempty"`
	Level     int       `json:"level"`
}
