package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validDocument = `<!DOCTYPE html>
<html>
<head><title>Sample</title></head>
<body>
<h1>Heading</h1>
<p>Hello</p>
</body>
</html>
`

const invalidDocument = `<div>
<p>unclosed
<span>x</div>
`

// getBinaryPath returns the path to the markup_agent binary for testing
func getBinaryPath(t *testing.T) string {
	t.Helper()
	binaryName := "markup_agent"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/markup_agent ./cmd/markup_agent'", binaryPath)
	}

	return binaryPath
}

// writeTemp writes content to name inside a fresh temp directory.
func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
