package validation

import (
	"testing"

	"github.com/jonathan/markup-validator/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestCheckIncompleteTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		lines []int
	}{
		{name: "complete tags", input: "<div>\n<span>x</span>\n</div>"},
		{name: "missing bracket", input: "<div>\n<span\n</div>", lines: []int{2}},
		{name: "multi-line tag", input: "<a\nhref='x'>\n<b", lines: []int{1, 3}},
		{name: "text less-than", input: "<p>ok</p>\na < b", lines: []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			for _, f := range Validate(tt.input).ByCategory(types.CategoryIncompleteTag) {
				assert.Equal(t, types.KindError, f.Kind)
				assert.Equal(t, "Incomplete tag (missing closing >)", f.Message)
				got = append(got, f.Line)
			}
			assert.Equal(t, tt.lines, got)
		})
	}
}
