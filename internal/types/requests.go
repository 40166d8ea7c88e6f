package types

import (
	"github.com/go-playground/validator/v10"
)

// MaxMarkupBytes caps the markup accepted by a single request.
const MaxMarkupBytes = 1 << 20

// ValidateRequest is the body of POST /validate.
// Markup may be empty: empty input is reported as a finding, not rejected.
type ValidateRequest struct {
	Markup string `json:"markup" validate:"max=1048576"`
	Source string `json:"source,omitempty" validate:"omitempty,max=256"`
}

// FormatRequest is the body of POST /format.
type FormatRequest struct {
	Markup     string `json:"markup" validate:"required,max=1048576"`
	IndentSize int    `json:"indent_size,omitempty" validate:"omitempty,min=1,max=8"`
}

// FormatResponse is returned by POST /format.
type FormatResponse struct {
	Formatted string `json:"formatted"`
}

// PreviewRequest is the body of POST /preview.
type PreviewRequest struct {
	Markup string `json:"markup" validate:"required,max=1048576"`
}

// Validate validates the ValidateRequest using the validator.
func (r *ValidateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the FormatRequest using the validator.
func (r *FormatRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the PreviewRequest using the validator.
func (r *PreviewRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
