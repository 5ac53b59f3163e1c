package org

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `* TODO Buy milk
SCHEDULED: <2024-01-10>
** DONE Sub task
notes
* Write report
DEADLINE: <2024-01-15>`

func TestParseDocument(t *testing.T) {
	t.Parallel()

	t.Run("sample document", func(t *testing.T) {
		headings := ParseDocument(sampleDoc)
		require.Len(t, headings, 3)

		assert.Equal(t, 1, headings[0].Level)
		assert.Equal(t, TodoTodo, headings[0].TodoState)
		assert.Equal(t, "Buy milk", headings[0].Title)
		assert.Equal(t, "SCHEDULED: <2024-01-10>", headings[0].Content)
		assert.Equal(t, "* TODO Buy milk", headings[0].Raw)

		assert.Equal(t, 2, headings[1].Level)
		assert.Equal(t, TodoDone, headings[1].TodoState)
		assert.Equal(t, "Sub task", headings[1].Title)
		assert.Equal(t, "notes", headings[1].Content)

		assert.Equal(t, 1, headings[2].Level)
		assert.Equal(t, TodoNone, headings[2].TodoState)
		assert.Equal(t, "Write report", headings[2].Title)
		assert.Equal(t, "DEADLINE: <2024-01-15>", headings[2].Content)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, ParseDocument(""))
	})

	t.Run("no headings", func(t *testing.T) {
		assert.Empty(t, ParseDocument("just some prose\nand another line"))
	})

	t.Run("preamble before first heading is dropped", func(t *testing.T) {
		headings := ParseDocument("preamble\n* First\nbody")
		require.Len(t, headings, 1)
		assert.Equal(t, "First", headings[0].Title)
		assert.Equal(t, "body", headings[0].Content)
	})

	t.Run("consecutive headings have empty content", func(t *testing.T) {
		headings := ParseDocument("* One\n** Two\n* Three")
		require.Len(t, headings, 3)
		for _, h := range headings {
			assert.Empty(t, h.Content)
		}
	})

	t.Run("level equals star run length", func(t *testing.T) {
		headings := ParseDocument("* a\n** b\n*** c\n***** e")
		require.Len(t, headings, 4)
		assert.Equal(t, []int{1, 2, 3, 5}, []int{
			headings[0].Level, headings[1].Level, headings[2].Level, headings[3].Level,
		})
		for _, h := range headings {
			assert.Equal(t, h.Level, strings.Count(strings.Fields(h.Raw)[0], "*"))
		}
	})

	t.Run("stars without separating whitespace are content", func(t *testing.T) {
		headings := ParseDocument("* Real\n*not-a-heading\nmore")
		require.Len(t, headings, 1)
		assert.Equal(t, "*not-a-heading\nmore", headings[0].Content)
	})

	t.Run("multi line content keeps blank lines", func(t *testing.T) {
		headings := ParseDocument("* H\nfirst\n\nthird")
		require.Len(t, headings, 1)
		assert.Equal(t, "first\n\nthird", headings[0].Content)
	})

	t.Run("bare todo token yields empty title", func(t *testing.T) {
		headings := ParseDocument("* TODO")
		require.Len(t, headings, 1)
		assert.Equal(t, TodoTodo, headings[0].TodoState)
		assert.Empty(t, headings[0].Title)
	})

	t.Run("in-progress token", func(t *testing.T) {
		headings := ParseDocument("* IN-PROGRESS Ship it")
		require.Len(t, headings, 1)
		assert.Equal(t, TodoInProgress, headings[0].TodoState)
		assert.Equal(t, "Ship it", headings[0].Title)
	})

	t.Run("unknown token stays in title", func(t *testing.T) {
		headings := ParseDocument("* WAITING Review")
		require.Len(t, headings, 1)
		assert.Equal(t, TodoNone, headings[0].TodoState)
		assert.Equal(t, "WAITING Review", headings[0].Title)
	})

	t.Run("trailing newline does not add content", func(t *testing.T) {
		headings := ParseDocument("* H\nbody\n")
		require.Len(t, headings, 1)
		assert.Equal(t, "body", headings[0].Content)
	})
}

// Reconstructing raw line + content for every heading must reproduce the
// original document when nothing precedes the first heading.
func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	docs := []string{
		sampleDoc,
		"* One\n** Two\n* Three",
		"* TODO Only\nline one\nline two",
	}
	for _, doc := range docs {
		headings := ParseDocument(doc)
		require.NotEmpty(t, headings)

		var parts []string
		for _, h := range headings {
			block := h.Raw
			if h.Content != "" {
				block += "\n" + h.Content
			}
			parts = append(parts, block)
		}
		assert.Equal(t, doc, strings.Join(parts, "\n"))
	}
}

// A heading line with a todo state must reassemble from its parsed parts.
func TestTodoStateRoundTrip(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"* TODO Buy milk", "** DONE Sub task", "*** IN-PROGRESS Thing"} {
		headings := ParseDocument(raw)
		require.Len(t, headings, 1)
		h := headings[0]
		rebuilt := strings.Repeat("*", h.Level) + " " + string(h.TodoState) + " " + h.Title
		assert.Equal(t, raw, rebuilt)
	}
}

func TestFindHeading(t *testing.T) {
	t.Parallel()

	headings := ParseDocument(sampleDoc)

	t.Run("finds by exact title", func(t *testing.T) {
		h, ok := FindHeading(headings, "Sub task")
		require.True(t, ok)
		assert.Equal(t, 2, h.Level)
		assert.Equal(t, TodoDone, h.TodoState)
	})

	t.Run("comparison is case sensitive", func(t *testing.T) {
		_, ok := FindHeading(headings, "sub task")
		assert.False(t, ok)
	})

	t.Run("todo token is not part of the title", func(t *testing.T) {
		_, ok := FindHeading(headings, "TODO Buy milk")
		assert.False(t, ok)
	})

	t.Run("missing title", func(t *testing.T) {
		_, ok := FindHeading(headings, "Nope")
		assert.False(t, ok)
	})

	t.Run("duplicate titles resolve to the first", func(t *testing.T) {
		dup := ParseDocument("* Task\nfirst\n* Task\nsecond")
		h, ok := FindHeading(dup, "Task")
		require.True(t, ok)
		assert.Equal(t, "first", h.Content)
	})
}
