package validation

import (
	"index/suffixarray"
	"slices"
	"sort"
	"strings"
)

// LineLocator maps a token found in text to a 1-based line number.
type LineLocator interface {
	Locate(text, token string) int
}

// LineLocatorFunc adapts a function to LineLocator.
type LineLocatorFunc func(text, token string) int

// Locate calls f.
func (f LineLocatorFunc) Locate(text, token string) int {
	return f(text, token)
}

// FirstLineContaining returns the first line containing the token, or 1 when
// the token does not fit on any single line. Repeated tokens all resolve to
// their first occurrence.
type FirstLineContaining struct{}

// Locate implements LineLocator.
func (FirstLineContaining) Locate(text, token string) int {
	if strings.Contains(token, "\n") {
		return 1
	}
	i := strings.Index(text, token)
	if i < 0 {
		return 1
	}
	return strings.Count(text[:i], "\n") + 1
}

// lineIndex answers FirstLineContaining lookups against one text. A suffix
// array finds the earliest occurrence of a token and the sorted newline
// offsets turn it into a line number, so a lookup never rescans the text.
type lineIndex struct {
	sa       *suffixarray.Index
	newlines []int
}

func newLineIndex(text string) *lineIndex {
	var newlines []int
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			newlines = append(newlines, i)
		}
	}
	return &lineIndex{
		sa:       suffixarray.New([]byte(text)),
		newlines: newlines,
	}
}

func (ix *lineIndex) line(token string) int {
	if token == "" || strings.Contains(token, "\n") {
		return 1
	}
	offsets := ix.sa.Lookup([]byte(token), -1)
	if len(offsets) == 0 {
		return 1
	}
	return sort.SearchInts(ix.newlines, slices.Min(offsets)) + 1
}
