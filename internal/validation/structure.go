package validation

import (
	"regexp"

	"github.com/jonathan/markup-validator/internal/types"
)

var (
	doctypeOpenPattern = regexp.MustCompile(`(?i)<!doctype`)
	doctypeHTMLPattern = regexp.MustCompile(`(?i)<!doctype\s+html\s*>`)
)

type documentTag struct {
	name     string
	category types.Category
	pattern  *regexp.Regexp
}

// documentTags are the skeleton elements every page is expected to carry.
var documentTags = []documentTag{
	{name: "html", category: types.CategoryHTMLTag, pattern: regexp.MustCompile(`(?i)<html\b`)},
	{name: "head", category: types.CategoryHeadTag, pattern: regexp.MustCompile(`(?i)<head\b`)},
	{name: "body", category: types.CategoryBodyTag, pattern: regexp.MustCompile(`(?i)<body\b`)},
}

// checkBasicStructure warns about a missing doctype or skeleton element.
func (p *pass) checkBasicStructure() {
	if !doctypeOpenPattern.MatchString(p.text) {
		p.report.Warnf(types.CategoryDoctype, p.line("<!doctype"), "Missing DOCTYPE declaration")
	}
	for _, tag := range documentTags {
		if !tag.pattern.MatchString(p.text) {
			p.report.Warnf(tag.category, p.line("<"+tag.name), "Missing <%s> tag", tag.name)
		}
	}
}

func (p *pass) checkDoctype() {
	if m := doctypeHTMLPattern.FindString(p.text); m != "" {
		p.report.Succeedf(types.CategoryDoctype, p.line(m), "Valid DOCTYPE declaration found")
	}
}

func (p *pass) checkRequiredTags() {
	for _, tag := range documentTags {
		if m := tag.pattern.FindString(p.text); m != "" {
			p.report.Succeedf(types.CategoryRequiredTag, p.line(m), "Required <%s> tag found", tag.name)
		}
	}
}
