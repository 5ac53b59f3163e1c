package org

import "strings"

// ParseDocument turns raw document text into the ordered heading sequence.
// It is a single pass with one piece of state: the currently open heading and
// its accumulating content buffer. Parsing cannot fail; any input yields a
// valid (possibly empty) sequence.
//
// Lines before the first heading belong to no heading and are dropped. That
// is a known information loss inherited from the format, not a bug to fix
// here.
func ParseDocument(text string) []Heading {
	var (
		headings []Heading
		open     *Heading
		buf      strings.Builder
		buffered bool
	)

	closeOpen := func() {
		if open == nil {
			return
		}
		open.Content = buf.String()
		headings = append(headings, *open)
		open = nil
		buf.Reset()
		buffered = false
	}

	for _, line := range SplitLines(text) {
		hl, ok := parseHeadingLine(line)
		if !ok {
			if open != nil {
				if buffered {
					buf.WriteString("\n")
				}
				buf.WriteString(line)
				buffered = true
			}
			continue
		}

		closeOpen()
		open = &Heading{
			Level:     hl.level,
			Title:     hl.title,
			TodoState: hl.todo,
			Raw:       line,
		}
	}
	closeOpen()

	return headings
}
