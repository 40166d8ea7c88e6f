package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{name: "plain UTF-8", input: []byte("<p>héllo</p>"), want: "<p>héllo</p>"},
		{name: "UTF-8 BOM stripped", input: append([]byte{0xEF, 0xBB, 0xBF}, "<p>x</p>"...), want: "<p>x</p>"},
		{name: "UTF-16LE with BOM", input: []byte{0xFF, 0xFE, '<', 0, 'b', 0, '>', 0}, want: "<b>"},
		{name: "UTF-16BE with BOM", input: []byte{0xFE, 0xFF, 0, '<', 0, 'i', 0, '>'}, want: "<i>"},
		{name: "CRLF normalized", input: []byte("<div>\r\n</div>\r\n"), want: "<div>\n</div>\n"},
		{name: "lone CR normalized", input: []byte("a\rb"), want: "a\nb"},
		{name: "empty", input: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<html>\r\n<body></body>\r\n</html>"), 0644))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html>\n<body></body>\n</html>", got)
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.html"))
	require.Error(t, err)

	var ingestErr *Error
	require.ErrorAs(t, err, &ingestErr)
	assert.Equal(t, "file not found", ingestErr.Message)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadReader(t *testing.T) {
	got, err := LoadReader(strings.NewReader("<p>one</p>\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "<p>one</p>\n", got)
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "a.html: file not found", (&Error{Source: "a.html", Message: "file not found"}).Error())
	err := &Error{Source: "a.html", Message: "failed", Cause: assert.AnError}
	assert.Equal(t, "a.html: failed: "+assert.AnError.Error(), err.Error())
	assert.ErrorIs(t, err, assert.AnError)
}
