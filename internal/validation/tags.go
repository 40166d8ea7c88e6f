package validation

import (
	"regexp"
	"strings"

	"github.com/jonathan/markup-validator/internal/types"
)

// tagPattern matches an opening, closing or self-closing tag. Group 1 is the
// optional "/" and group 2 the tag name.
var tagPattern = regexp.MustCompile(`<(/?)([a-zA-Z][a-zA-Z0-9]*)\b[^<>]*>`)

// voidElementNames lists the elements that never take a closing tag, in the
// order the self-closing check reports them.
var voidElementNames = []string{
	"area", "base", "br", "col", "embed", "hr", "img",
	"input", "link", "meta", "param", "source", "track", "wbr",
}

var voidElements = func() map[string]bool {
	m := make(map[string]bool, len(voidElementNames))
	for _, name := range voidElementNames {
		m[name] = true
	}
	return m
}()

// IsVoidElement reports whether name (any case) is a void element.
func IsVoidElement(name string) bool {
	return voidElements[strings.ToLower(name)]
}

type openTag struct {
	key  string // lower-cased, used for matching
	name string // as written, used for reporting
}

// checkTagBalance pairs closing tags with the most recent open tag.
// A mismatch pops without recovery; anything left open is reported in
// declaration order.
func (p *pass) checkTagBalance() {
	var stack []openTag

	for _, m := range tagPattern.FindAllStringSubmatch(p.text, -1) {
		full, name := m[0], m[2]
		key := strings.ToLower(name)

		switch {
		case m[1] == "/":
			if len(stack) == 0 {
				p.report.Errorf(types.CategoryUnexpectedClosing, p.line(full),
					"Unexpected closing tag: </%s>", name)
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.key != key {
				p.report.Errorf(types.CategoryMismatchedTags, p.line(full),
					"Mismatched tags: <%s> and </%s>", top.name, name)
			}
		case strings.HasSuffix(full, "/>") || voidElements[key]:
		default:
			stack = append(stack, openTag{key: key, name: name})
		}
	}

	for _, open := range stack {
		p.report.Errorf(types.CategoryUnclosedTag, p.line("<"+open.name),
			"Unclosed tag: <%s>", open.name)
	}
}

// openingTagPattern matches an opening tag named exactly name, any case.
func openingTagPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)<` + regexp.QuoteMeta(name) + `\b[^>]*>`)
}
