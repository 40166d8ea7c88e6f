package validation

import (
	"strings"

	"github.com/jonathan/markup-validator/internal/types"
)

// checkIncompleteTags flags every line that opens a tag without closing it.
// Tags spanning several lines are flagged too.
func (p *pass) checkIncompleteTags() {
	for i, line := range strings.Split(p.text, "\n") {
		if strings.Contains(line, "<") && !strings.Contains(line, ">") {
			p.report.Errorf(types.CategoryIncompleteTag, i+1, "Incomplete tag (missing closing >)")
		}
	}
}
