package search

import (
	"html"
	"strings"
	"unicode"
)

const (
	snippetRadius = 10
	previewRadius = 25
	ellipsis      = "..."
)

// span is a match as rune offsets [start, end).
type span struct {
	start, end int
}

// findMatches returns up to limit non-overlapping case-insensitive
// occurrences of keyword in text, scanning left to right.
func findMatches(text, keyword []rune, limit int) []span {
	if len(keyword) == 0 || len(keyword) > len(text) {
		return nil
	}

	var spans []span
	for i := 0; i+len(keyword) <= len(text) && len(spans) < limit; {
		if equalFoldAt(text, keyword, i) {
			spans = append(spans, span{start: i, end: i + len(keyword)})
			i += len(keyword)
			continue
		}
		i++
	}
	return spans
}

func equalFoldAt(text, keyword []rune, at int) bool {
	for j, k := range keyword {
		if unicode.ToLower(text[at+j]) != unicode.ToLower(k) {
			return false
		}
	}
	return true
}

// snippet renders the match with radius runes of context on each side as
// HTML, wrapping the matched span in <mark>.
func snippet(text []rune, m span, radius int) string {
	from, to := window(len(text), m, radius)

	var b strings.Builder
	if from > 0 {
		b.WriteString(ellipsis)
	}
	b.WriteString(html.EscapeString(string(text[from:m.start])))
	b.WriteString("<mark>")
	b.WriteString(html.EscapeString(string(text[m.start:m.end])))
	b.WriteString("</mark>")
	b.WriteString(html.EscapeString(string(text[m.end:to])))
	if to < len(text) {
		b.WriteString(ellipsis)
	}
	return b.String()
}

// preview is the plain-text counterpart of snippet.
func preview(text []rune, m span, radius int) string {
	from, to := window(len(text), m, radius)

	out := string(text[from:to])
	if from > 0 {
		out = ellipsis + out
	}
	if to < len(text) {
		out += ellipsis
	}
	return out
}

// head returns the first n runes of text, with an ellipsis when cut.
func head(text string, n int) string {
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n]) + ellipsis
}

func window(n int, m span, radius int) (int, int) {
	return max(0, m.start-radius), min(n, m.end+radius)
}

// escapeLike escapes the LIKE wildcards in s using backslash.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
