package util

import "strings"

// SnippetLines returns lines [start,end] (1-based, inclusive) of content,
// capped at maxLines.
func SnippetLines(content []byte, start, end, maxLines int) string {
	if maxLines <= 0 {
		maxLines = 8
	}
	lines := strings.Split(string(content), "\n")
	if start < 1 {
		start = 1
	}
	if end < start {
		end = start
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start > len(lines) {
		return ""
	}
	if end-start+1 > maxLines {
		end = start + maxLines - 1
	}
	return strings.Join(lines[start-1:end], "\n")
}

// Normalize collapses every whitespace run to a single space so that
// formatting-only edits do not change a snippet's identity.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
