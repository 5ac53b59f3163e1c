package org

import "regexp"

// Date markers live inside a heading's content as angle-bracket timestamps.
// Only the calendar date matters; day names and times inside the brackets are
// discarded.
var (
	scheduledPattern = regexp.MustCompile(`SCHEDULED:\s*<(\d{4}-\d{2}-\d{2})(?: [^>]*)?>`)
	deadlinePattern  = regexp.MustCompile(`DEADLINE:\s*<(\d{4}-\d{2}-\d{2})(?: [^>]*)?>`)
)

// ExtractScheduledItems scans each heading's content for the first SCHEDULED
// and DEADLINE marker and emits an item per marker found. Output follows
// heading order; within one heading the scheduled item precedes the deadline.
// A heading contributes zero, one, or two items.
func ExtractScheduledItems(headings []Heading) []ScheduledItem {
	var items []ScheduledItem

	for _, h := range headings {
		if m := scheduledPattern.FindStringSubmatch(h.Content); m != nil {
			items = append(items, ScheduledItem{
				Kind:      KindScheduled,
				Date:      m[1],
				Title:     h.Title,
				TodoState: h.TodoState,
				Level:     h.Level,
			})
		}
		if m := deadlinePattern.FindStringSubmatch(h.Content); m != nil {
			items = append(items, ScheduledItem{
				Kind:      KindDeadline,
				Date:      m[1],
				Title:     h.Title,
				TodoState: h.TodoState,
				Level:     h.Level,
			})
		}
	}

	return items
}
