package org

// FindHeading returns the first heading in document order whose title is
// byte-for-byte equal to title. Duplicate titles resolve to the earliest
// occurrence.
func FindHeading(headings []Heading, title string) (Heading, bool) {
	for _, h := range headings {
		if h.Title == title {
			return h, true
		}
	}
	return Heading{}, false
}
