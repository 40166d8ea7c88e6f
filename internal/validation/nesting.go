package validation

import (
	"regexp"
	"sort"

	"github.com/jonathan/markup-validator/internal/types"
)

type containmentRule struct {
	parent, child string
	openParent    *regexp.Regexp
	closeParent   *regexp.Regexp
	openChild     *regexp.Regexp
}

func newContainmentRule(parent, child string) containmentRule {
	return containmentRule{
		parent:      parent,
		child:       child,
		openParent:  openingTagPattern(parent),
		closeParent: regexp.MustCompile(`(?i)</` + regexp.QuoteMeta(parent) + `\s*>`),
		openChild:   openingTagPattern(child),
	}
}

// containmentRules lists parent/child pairs browsers re-parent or reject.
var containmentRules = []containmentRule{
	newContainmentRule("p", "div"),
	newContainmentRule("p", "p"),
	newContainmentRule("a", "a"),
	newContainmentRule("button", "button"),
}

// checkNesting looks for a forbidden child between each opening parent and
// the first closing tag of the same name after it. Same-named parents nested
// inside each other are not paired correctly; this is a textual heuristic,
// not a tree check.
//
// Closers and child openers are collected once per rule so each parent costs
// two binary searches instead of a rescan of the rest of the text.
func (p *pass) checkNesting() {
	for _, rule := range containmentRules {
		closers := rule.closeParent.FindAllStringIndex(p.text, -1)
		children := rule.openChild.FindAllStringIndex(p.text, -1)

		for _, loc := range rule.openParent.FindAllStringIndex(p.text, -1) {
			ci := sort.Search(len(closers), func(i int) bool { return closers[i][0] >= loc[1] })
			if ci == len(closers) {
				continue
			}
			ki := sort.Search(len(children), func(i int) bool { return children[i][0] >= loc[1] })
			if ki < len(children) && children[ki][1] <= closers[ci][0] {
				p.report.Warnf(types.CategoryInvalidNesting, p.line(p.text[loc[0]:loc[1]]),
					"<%s> should not contain <%s>", rule.parent, rule.child)
			}
		}
	}
}
