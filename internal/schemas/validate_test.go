package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer"}
	}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSON_ValidJSON(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"name": "a", "age": 3}`)

	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_InvalidJSON_MissingField(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"age": 3}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	require.Len(t, validationErr.Errors, 1)
	assert.Contains(t, validationErr.Errors[0].Message, "name")
}

func TestValidateJSON_InvalidJSON_WrongType(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"name": "a", "age": "three"}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Equal(t, "age", validationErr.Errors[0].Field)
}

func TestValidateJSON_NonExistentSchema(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "doc.json", `{"name": "a"}`)

	err := ValidateJSON(filepath.Join(dir, "nonexistent_schema.json"), jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_NonExistentJSON(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)

	err := ValidateJSON(schemaPath, filepath.Join(dir, "nonexistent_json.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	malformed := writeFile(t, dir, "malformed.json", "{ invalid json }")

	err := ValidateJSON(schemaPath, malformed)
	require.Error(t, err)
	// The error comes from gojsonschema parsing the document.
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateJSONBytes(t *testing.T) {
	schemaPath := writeFile(t, t.TempDir(), "schema.json", personSchema)

	assert.NoError(t, ValidateJSONBytes(schemaPath, []byte(`{"name": "x"}`)))

	err := ValidateJSONBytes(schemaPath, []byte(`{"name": 1}`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	err = ValidateJSONBytes(filepath.Join(t.TempDir(), "missing.json"), []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString_Valid(t *testing.T) {
	assert.NoError(t, ValidateJSONString(personSchema, `{"name": "test"}`))
}

func TestValidateJSONString_Invalid(t *testing.T) {
	err := ValidateJSONString(personSchema, `{"age": 30}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "1. name: is required")
	assert.Contains(t, errorMsg, "2. age: must be a number")
}

func TestSchemaLoadError_Unwrap(t *testing.T) {
	err := &SchemaLoadError{Path: "s.json", Message: "bad", Cause: assert.AnError}
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "failed to load schema s.json: bad")
}

func TestValidateJSON_AgreesWithValidateJSONBytes(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)

	tests := []struct {
		name    string
		doc     string
		wantErr any
	}{
		{name: "valid", doc: `{"name": "a"}`},
		{name: "missing field", doc: `{"age": 1}`, wantErr: &ValidationError{}},
		{name: "malformed", doc: `{ nope`, wantErr: &SchemaLoadError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonPath := writeFile(t, dir, tt.name+".json", tt.doc)

			fromFile := ValidateJSON(schemaPath, jsonPath)
			fromBytes := ValidateJSONBytes(schemaPath, []byte(tt.doc))

			if tt.wantErr == nil {
				assert.NoError(t, fromFile)
				assert.NoError(t, fromBytes)
				return
			}
			assert.IsType(t, tt.wantErr, fromFile)
			assert.IsType(t, tt.wantErr, fromBytes)
			assert.Equal(t, fromBytes.Error(), fromFile.Error())
		})
	}
}

func TestResolveSchemaPath(t *testing.T) {
	// Tests run from internal/schemas, so the bundled schemas resolve through
	// the two-levels-up root.
	tests := []struct {
		name     string
		path     string
		wantFile string
	}{
		{name: "report", path: ReportSchemaPath, wantFile: "report.schema.json"},
		{name: "preview", path: PreviewSchemaPath, wantFile: "preview.schema.json"},
		{name: "missing", path: "schemas/does-not-exist.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveSchemaPath(tt.path)
			if tt.wantFile == "" {
				assert.Empty(t, got)
				return
			}
			require.NotEmpty(t, got)
			assert.True(t, filepath.IsAbs(got))
			assert.Equal(t, tt.wantFile, filepath.Base(got))
		})
	}
}
