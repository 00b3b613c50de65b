package search

import "strings"

// CleanQuery normalizes raw search input: surrounding space is trimmed, inner
// runs of whitespace collapse to one space and accents are folded.
func CleanQuery(q string) string {
	return foldAccents(strings.Join(strings.Fields(q), " "))
}
