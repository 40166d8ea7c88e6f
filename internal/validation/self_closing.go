package validation

import (
	"regexp"
	"strings"

	"github.com/jonathan/markup-validator/internal/types"
)

type voidRule struct {
	name         string
	open         *regexp.Regexp
	closedByPair *regexp.Regexp
}

var voidRules = func() []voidRule {
	rules := make([]voidRule, 0, len(voidElementNames))
	for _, name := range voidElementNames {
		rules = append(rules, voidRule{
			name:         name,
			open:         openingTagPattern(name),
			closedByPair: regexp.MustCompile(`(?i)^\s*</` + regexp.QuoteMeta(name) + `>`),
		})
	}
	return rules
}()

// checkSelfClosing warns about void elements not written in "<tag />" form.
// An element immediately followed by its own closing tag is left to the
// balance check.
func (p *pass) checkSelfClosing() {
	for _, rule := range voidRules {
		for _, loc := range rule.open.FindAllStringIndex(p.text, -1) {
			if rule.closedByPair.MatchString(p.text[loc[1]:]) {
				continue
			}
			full := p.text[loc[0]:loc[1]]
			if !strings.HasSuffix(full, "/>") {
				p.report.Warnf(types.CategorySelfClosing, p.line(full),
					"<%s> should be self-closing: <%s />", rule.name, rule.name)
			}
		}
	}
}
