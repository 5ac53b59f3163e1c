package org

import (
	"errors"
	"fmt"
)

// ErrHeadingNotFound is returned when no heading line matches the requested
// title. Callers check it with errors.Is.
var ErrHeadingNotFound = errors.New("heading not found")

// Overrides selects which parts of a heading block to replace. A nil field
// keeps the existing value; a pointer to the empty string sets it to empty
// (for TodoState that removes the token).
type Overrides struct {
	Title     *string
	Content   *string
	TodoState *TodoState
}

// RewriteHeading replaces one heading's block inside lines and returns the
// new line sequence. Every line outside the block is carried over verbatim.
//
// A single location pass finds the block and supplies the defaults for any
// override left nil, so the block that is rewritten is always the block the
// defaults came from, even when the document contains duplicate titles.
func RewriteHeading(lines []string, title string, ov Overrides) ([]string, error) {
	start, hl, found := locateBlockStart(lines, title)
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrHeadingNotFound, title)
	}

	// Block ends at the next heading line of any level, or end of input.
	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if _, ok := parseHeadingLine(lines[i]); ok {
			end = i
			break
		}
	}

	todo := hl.todo
	if ov.TodoState != nil {
		todo = *ov.TodoState
	}
	newTitle := hl.title
	if ov.Title != nil {
		newTitle = *ov.Title
	}

	var body []string
	if ov.Content != nil {
		body = SplitLines(*ov.Content)
	} else {
		body = lines[start+1 : end]
	}

	out := make([]string, 0, start+1+len(body)+len(lines)-end)
	out = append(out, lines[:start]...)
	out = append(out, formatHeadingLine(hl.level, todo, newTitle))
	out = append(out, body...)
	out = append(out, lines[end:]...)
	return out, nil
}

// locateBlockStart scans lines with the shared grammar and returns the index
// and parsed form of the first heading line addressing title, either by its
// stripped title or by its full free text.
func locateBlockStart(lines []string, title string) (int, headingLine, bool) {
	for i, line := range lines {
		hl, ok := parseHeadingLine(line)
		if !ok {
			continue
		}
		if hl.title == title || hl.free == title {
			return i, hl, true
		}
	}
	return 0, headingLine{}, false
}
