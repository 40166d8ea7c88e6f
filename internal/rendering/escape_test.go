package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain", input: "no special characters", want: "no special characters"},
		{name: "tags", input: "Mismatched tags: <div> and </span>", want: "Mismatched tags: &lt;div&gt; and &lt;/span&gt;"},
		{name: "ampersand first", input: "&lt;", want: "&amp;lt;"},
		{name: "quotes", input: `class="a" 'b'`, want: "class=&#34;a&#34; &#39;b&#39;"},
		{name: "unicode untouched", input: "✓ café", want: "✓ café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeHTML(tt.input))
		})
	}
}
