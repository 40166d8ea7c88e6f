package rendering

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jonathan/markup-validator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *types.Report {
	r := types.NewReport()
	r.Errorf(types.CategoryUnclosedTag, 3, "Unclosed tag: <%s>", "div")
	r.Warnf(types.CategoryDoctype, 1, "Missing DOCTYPE declaration")
	r.Succeedf(types.CategoryRequiredTag, 1, "Required <%s> tag found", "html")
	return r
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "", want: FormatText},
		{input: "json", want: FormatJSON},
		{input: "Markdown", want: FormatMarkdown},
		{input: "HTML", want: FormatHTML},
		{input: "pretty", want: FormatPretty},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				var formatErr *FormatError
				require.ErrorAs(t, err, &formatErr)
				assert.Contains(t, err.Error(), "text, json, markdown, html, pretty")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestText(t *testing.T) {
	out := Text(sampleReport())

	assert.Contains(t, out, "Found 2 issue(s): 1 error(s), 1 warning(s)")
	assert.Contains(t, out, "Errors:")
	assert.Contains(t, out, "Unclosed tag: <div>")
	assert.Contains(t, out, "(Line 3)")
	assert.Contains(t, out, "Warnings:")
	assert.Contains(t, out, "Passed:")
	assert.Less(t, bytes.Index([]byte(out), []byte("Errors:")), bytes.Index([]byte(out), []byte("Warnings:")))
}

func TestText_Valid(t *testing.T) {
	r := types.NewReport()
	r.Succeedf(types.CategoryDoctype, 1, "Valid DOCTYPE declaration found")

	out := Text(r)
	assert.Contains(t, out, "HTML is valid! No errors found.")
	assert.NotContains(t, out, "Errors:")
}

func TestMarkdown(t *testing.T) {
	out := Markdown(sampleReport())

	assert.Contains(t, out, "# Validation report")
	assert.Contains(t, out, "**✗ Found 2 issue(s): 1 error(s), 1 warning(s)**")
	assert.Contains(t, out, "## Errors (1)")
	assert.Contains(t, out, "- ✗ Unclosed tag: &lt;div&gt; (line 3)")
	assert.Contains(t, out, "- ⚠ Missing DOCTYPE declaration (line 1)")
	assert.Contains(t, out, "- ✓ Required &lt;html&gt; tag found (line 1)")
}

func TestHTML(t *testing.T) {
	out, err := HTML(sampleReport())
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>Validation report</h1>")
	assert.Contains(t, out, "<li>✗ Unclosed tag: &lt;div&gt; (line 3)</li>")
	assert.NotContains(t, out, "<div>")
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), FormatJSON))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, false, decoded["is_valid"])
	assert.Equal(t, float64(2), decoded["total_issues"])
	assert.Len(t, decoded["errors"], 1)
}

func TestRender_Pretty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), FormatPretty))
	assert.Contains(t, buf.String(), "Validation report")
}

func TestRender_NilReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil, FormatText))
	assert.Contains(t, buf.String(), "No findings")
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, sampleReport(), Format("yaml"))

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "yaml", formatErr.Format)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRender_WriteError(t *testing.T) {
	err := Render(failingWriter{}, sampleReport(), FormatMarkdown)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Contains(t, err.Error(), "disk full")
}
