// Package ingestion loads markup from files, readers and URLs and decodes it
// into normalized UTF-8 text ready for validation.
package ingestion

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// StdinPath is the conventional path meaning "read from standard input".
const StdinPath = "-"

// LoadFile reads the file at path and decodes it. Files starting with a
// UTF-8 or UTF-16 byte order mark are decoded accordingly; anything else is
// treated as UTF-8.
func LoadFile(path string) (string, error) {
	if path == StdinPath {
		return LoadReader(os.Stdin)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &Error{Source: path, Message: "file not found", Cause: err}
		}
		return "", &Error{Source: path, Message: "failed to read file", Cause: err}
	}

	text, err := Decode(data)
	if err != nil {
		return "", &Error{Source: path, Message: "failed to decode file", Cause: err}
	}
	return text, nil
}

// LoadReader reads r to EOF and decodes the result like LoadFile.
func LoadReader(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", &Error{Source: StdinPath, Message: "failed to read input", Cause: err}
	}

	text, err := Decode(data)
	if err != nil {
		return "", &Error{Source: StdinPath, Message: "failed to decode input", Cause: err}
	}
	return text, nil
}

// Decode converts raw bytes to a string, honoring a leading byte order mark
// and normalizing CRLF and lone CR line endings to LF.
func Decode(data []byte) (string, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return "", err
	}
	decoded = bytes.ReplaceAll(decoded, []byte("\r\n"), []byte("\n"))
	return strings.ReplaceAll(string(decoded), "\r", "\n"), nil
}
