// Package formatting re-indents markup one tag per line.
package formatting

import (
	"regexp"
	"strings"

	"github.com/jonathan/markup-validator/internal/validation"
)

// DefaultIndentSize is the number of spaces per nesting level.
const DefaultIndentSize = 2

var (
	adjacentTags   = regexp.MustCompile(`>\s*<`)
	leadingTagName = regexp.MustCompile(`^<([a-zA-Z][a-zA-Z0-9]*)`)
)

// Format breaks markup so every tag starts its own line and indents each line
// by its nesting depth. Depth is inferred line by line: a closing tag dedents
// itself, and an opening tag that is not a declaration, self-closing, void,
// or closed on the same line indents what follows. Content is never
// reordered, so malformed input is re-indented rather than repaired.
// A non-positive indentSize selects DefaultIndentSize.
func Format(markup string, indentSize int) string {
	if indentSize <= 0 {
		indentSize = DefaultIndentSize
	}

	formatted := strings.TrimSpace(adjacentTags.ReplaceAllString(markup, ">\n<"))
	if formatted == "" {
		return ""
	}

	lines := strings.Split(formatted, "\n")
	out := make([]string, len(lines))
	depth := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "</") {
			depth = max(0, depth-1)
		}

		out[i] = strings.Repeat(" ", depth*indentSize) + trimmed

		if opensBlock(trimmed) {
			depth++
		}
	}

	return strings.Join(out, "\n")
}

func opensBlock(line string) bool {
	if !strings.HasPrefix(line, "<") || strings.HasPrefix(line, "</") {
		return false
	}
	if strings.HasSuffix(line, "/>") || strings.Contains(line, "<!") || strings.Contains(line, "</") {
		return false
	}
	m := leadingTagName.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	return !validation.IsVoidElement(m[1])
}
