package org

import (
	"regexp"
	"strings"
)

// The line grammar lives here and nowhere else. Both the parser and the
// mutator classify lines through headingLine so they can never disagree
// about where a block starts or ends.
var (
	headingPattern = regexp.MustCompile(`^(\*+)\s+(.*)$`)
	todoPattern    = regexp.MustCompile(`^(TODO|DONE|IN-PROGRESS)(?:\s+(.*))?$`)
)

// headingLine is the parsed form of a single heading line.
type headingLine struct {
	level int       // number of leading stars
	free  string    // everything after the stars and separating whitespace
	title string    // free text with any todo token stripped
	todo  TodoState // TodoNone when no token is present
}

// parseHeadingLine classifies one raw line. ok is false for non-heading lines.
func parseHeadingLine(raw string) (headingLine, bool) {
	m := headingPattern.FindStringSubmatch(raw)
	if m == nil {
		return headingLine{}, false
	}

	hl := headingLine{
		level: len(m[1]),
		free:  m[2],
		title: m[2],
		todo:  TodoNone,
	}

	// A free text of exactly "TODO" (or another token) is still treated as a
	// state with an empty title.
	if tm := todoPattern.FindStringSubmatch(hl.free); tm != nil {
		hl.todo = TodoState(tm[1])
		hl.title = tm[2]
	}

	return hl, true
}

// formatHeadingLine renders a heading line from its parts: the star run, an
// optional todo token, and the title.
func formatHeadingLine(level int, todo TodoState, title string) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("*", level))
	b.WriteString(" ")
	if todo != TodoNone {
		b.WriteString(string(todo))
		b.WriteString(" ")
	}
	b.WriteString(title)
	return b.String()
}

// SplitLines splits document text into lines the same way the parser sees
// them: "\n" separated, with a trailing newline not producing a final empty
// line. The mutator operates on this representation and JoinLines inverts it.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinLines reassembles a line sequence into document text.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
