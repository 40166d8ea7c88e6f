package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCommand_Stdout(t *testing.T) {
	binaryPath := getBinaryPath(t)
	path := writeTemp(t, "page.html", "<div><p>x</p></div>")

	cmd := exec.Command(binaryPath, "format", "--in", path, "--indent", "4")
	output, err := cmd.Output()

	require.NoError(t, err)
	assert.Equal(t, "<div>\n    <p>x</p>\n</div>\n", string(output))
}

func TestFormatCommand_Out(t *testing.T) {
	binaryPath := getBinaryPath(t)
	path := writeTemp(t, "page.html", "<ul><li>a</li></ul>")
	outPath := filepath.Join(t.TempDir(), "formatted.html")

	cmd := exec.Command(binaryPath, "format", "--in", path, "--out", outPath)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "command should succeed: %s", output)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "<ul>\n  <li>a</li>\n</ul>\n", string(data))
}

func TestFormatCommand_MissingInFlag(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "format")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err, "command should fail")
	assert.Contains(t, string(output), "required")
}

func TestPreviewCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)
	path := writeTemp(t, "page.html", validDocument)
	outPath := filepath.Join(t.TempDir(), "preview.json")

	cmd := exec.Command(binaryPath, "preview", "--in", path, "--out", outPath)
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "command should succeed: %s", output)
	assert.Contains(t, string(output), "Sample")
	assert.FileExists(t, outPath)
}
