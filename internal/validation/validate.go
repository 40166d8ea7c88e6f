// Package validation checks markup for tag-structure problems and common HTML authoring mistakes.
package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/markup-validator/internal/ingestion"
	"github.com/jonathan/markup-validator/internal/types"
)

// Validator runs the tag-structure checks. The zero value is not usable; call New.
type Validator struct {
	locator LineLocator
}

// Option configures a Validator.
type Option func(*Validator)

// WithLineLocator replaces the default first-line-containing locator.
func WithLineLocator(l LineLocator) Option {
	return func(v *Validator) {
		if l != nil {
			v.locator = l
		}
	}
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{locator: FirstLineContaining{}}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs every check over markup with the default options.
func Validate(markup string) *types.Report {
	return New().Validate(markup)
}

// Validate returns a fresh report for markup. It never fails: every anomaly,
// including empty input, is expressed as a finding.
func (v *Validator) Validate(markup string) *types.Report {
	report := types.NewReport()

	if strings.TrimSpace(markup) == "" {
		report.Errorf(types.CategoryEmpty, 0, "HTML code is empty")
		return report
	}

	p := &pass{text: markup, report: report, locator: v.locator, lines: make(map[string]int)}
	p.checkBasicStructure()
	p.checkTagBalance()
	p.checkNesting()
	p.checkSelfClosing()
	p.checkAttributes()
	p.checkDoctype()
	p.checkRequiredTags()
	p.checkIncompleteTags()

	return report
}

// ValidateFile loads path and validates its contents.
func (v *Validator) ValidateFile(path string) (*types.Report, error) {
	content, err := ingestion.LoadFile(path)
	if err != nil {
		return nil, &FileReadError{
			Message: "failed to load markup file: " + path,
			Cause:   err,
		}
	}
	return v.Validate(content), nil
}

// AsError returns an *Error describing the report's errors, or nil when the
// report is valid.
func AsError(source string, report *types.Report) error {
	if report == nil || report.IsValid() {
		return nil
	}
	return &Error{
		Message: fmt.Sprintf("%s: %d error(s), %d warning(s)", source, len(report.Errors), len(report.Warnings)),
	}
}

// pass holds the state of a single validation run.
type pass struct {
	text    string
	report  *types.Report
	locator LineLocator

	lines map[string]int // token -> line, filled on first lookup
	index *lineIndex     // built lazily for the default locator
}

// line locates token once per pass. The default locator is served from an
// index over the text; custom locators are called directly.
func (p *pass) line(token string) int {
	if n, ok := p.lines[token]; ok {
		return n
	}

	var n int
	if _, ok := p.locator.(FirstLineContaining); ok {
		if p.index == nil {
			p.index = newLineIndex(p.text)
		}
		n = p.index.line(token)
	} else {
		n = p.locator.Locate(p.text, token)
	}
	p.lines[token] = n
	return n
}
