package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/markup-validator/internal/types"
)

var (
	// unquotedAttrPattern matches name=value where the value has no quotes.
	unquotedAttrPattern = regexp.MustCompile(`\s([a-zA-Z-]+)=([^"'\s>]+)`)
	imgPattern          = openingTagPattern("img")
)

func (p *pass) checkAttributes() {
	for _, m := range unquotedAttrPattern.FindAllStringSubmatch(p.text, -1) {
		token := strings.TrimLeftFunc(m[0], unicode.IsSpace)
		p.report.Warnf(types.CategoryUnquotedAttribute, p.line(token),
			"Unquoted attribute value: %s=\"%s\"", m[1], m[2])
	}

	for _, img := range imgPattern.FindAllString(p.text, -1) {
		if !strings.Contains(strings.ToLower(img), "alt=") {
			p.report.Warnf(types.CategoryMissingAlt, p.line(img), "Image missing alt attribute")
		}
	}
}
