// Package schemas validates JSON artifacts such as saved reports against the
// JSON Schemas under schemas/.
package schemas

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Bundled schema locations, relative to the repository root.
const (
	ReportSchemaPath  = "schemas/report.schema.json"
	PreviewSchemaPath = "schemas/preview.schema.json"
)

// searchRoots are tried in order by ResolveSchemaPath. They cover running
// from the repository root, from cmd/markup_agent and from internal/schemas.
var searchRoots = []string{".", "..", filepath.Join("..", "..")}

// ResolveSchemaPath returns the absolute path of relativePath under the first
// search root that has it, or "" when none does.
func ResolveSchemaPath(relativePath string) string {
	for _, root := range searchRoots {
		abs, err := filepath.Abs(filepath.Join(root, relativePath))
		if err != nil {
			continue
		}
		if _, err := os.Stat(abs); err == nil {
			return abs
		}
	}
	return ""
}

// FieldError is one schema violation.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a document.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, fe := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, fe.Field, fe.Message)
	}
	return sb.String()
}

// SchemaLoadError is returned when the schema or the document cannot be
// parsed, as opposed to parsing but failing validation.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateJSON validates the JSON file at jsonPath against the schema file at
// schemaPath.
func ValidateJSON(schemaPath, jsonPath string) error {
	data, err := os.ReadFile(jsonPath)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("JSON file not found: %s", jsonPath)
	}
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	return ValidateJSONBytes(schemaPath, data)
}

// ValidateJSONBytes validates an in-memory JSON document against the schema
// file at schemaPath. Relative $refs in the schema resolve against its
// directory.
func ValidateJSONBytes(schemaPath string, data []byte) error {
	abs, err := filepath.Abs(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to resolve schema path: %w", err)
	}
	if _, err := os.Stat(abs); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("schema file not found: %s", abs)
	}

	return validate(abs,
		gojsonschema.NewReferenceLoader("file://"+filepath.ToSlash(abs)),
		gojsonschema.NewBytesLoader(data))
}

// ValidateJSONString validates jsonContent against an inline schema.
func ValidateJSONString(schemaContent, jsonContent string) error {
	return validate("(string schema)",
		gojsonschema.NewStringLoader(schemaContent),
		gojsonschema.NewStringLoader(jsonContent))
}

func validate(schemaName string, schema, document gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schema, document)
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaName,
			Message: "schema or document could not be parsed",
			Cause:   err,
		}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}
