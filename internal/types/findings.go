// Package types provides type definitions for structured data used throughout the markup validator.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
)

// Kind classifies a finding.
type Kind string

// Finding kinds.
const (
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindSuccess Kind = "success"
)

// Category is the fixed vocabulary of finding categories.
type Category string

// Finding categories.
const (
	CategoryUnclosedTag       Category = "unclosed-tag"
	CategoryMismatchedTags    Category = "mismatched-tags"
	CategoryUnexpectedClosing Category = "unexpected-closing"
	CategoryInvalidNesting    Category = "invalid-nesting"
	CategorySelfClosing       Category = "self-closing"
	CategoryUnquotedAttribute Category = "unquoted-attribute"
	CategoryMissingAlt        Category = "missing-alt"
	CategoryDoctype           Category = "doctype"
	CategoryHTMLTag           Category = "html-tag"
	CategoryHeadTag           Category = "head-tag"
	CategoryBodyTag           Category = "body-tag"
	CategoryRequiredTag       Category = "required-tag"
	CategoryIncompleteTag     Category = "incomplete-tag"
	CategoryEmpty             Category = "empty"
)

// Finding is one reported issue or confirmation from a validation pass.
// Line is best-effort: 0 for whole-document findings, otherwise 1-based.
type Finding struct {
	Kind     Kind     `json:"kind"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s [%s] line %d: %s", f.Kind, f.Category, f.Line, f.Message)
}

// Report aggregates the findings of one validation pass.
type Report struct {
	Errors    []Finding `json:"errors"`
	Warnings  []Finding `json:"warnings"`
	Successes []Finding `json:"successes"`
}

// NewReport returns an empty report whose buckets marshal as [] rather than null.
func NewReport() *Report {
	return &Report{
		Errors:    []Finding{},
		Warnings:  []Finding{},
		Successes: []Finding{},
	}
}

// Add appends f to the bucket matching its kind.
func (r *Report) Add(f Finding) {
	switch f.Kind {
	case KindError:
		r.Errors = append(r.Errors, f)
	case KindWarning:
		r.Warnings = append(r.Warnings, f)
	case KindSuccess:
		r.Successes = append(r.Successes, f)
	}
}

// Errorf records an error finding.
func (r *Report) Errorf(category Category, line int, format string, args ...any) {
	r.Add(Finding{Kind: KindError, Category: category, Line: line, Message: fmt.Sprintf(format, args...)})
}

// Warnf records a warning finding.
func (r *Report) Warnf(category Category, line int, format string, args ...any) {
	r.Add(Finding{Kind: KindWarning, Category: category, Line: line, Message: fmt.Sprintf(format, args...)})
}

// Succeedf records a success finding.
func (r *Report) Succeedf(category Category, line int, format string, args ...any) {
	r.Add(Finding{Kind: KindSuccess, Category: category, Line: line, Message: fmt.Sprintf(format, args...)})
}

// IsValid reports whether the pass produced no errors.
func (r *Report) IsValid() bool {
	return len(r.Errors) == 0
}

// TotalIssues counts errors and warnings.
func (r *Report) TotalIssues() int {
	return len(r.Errors) + len(r.Warnings)
}

// ByCategory returns every finding of the given category, errors first.
func (r *Report) ByCategory(category Category) []Finding {
	var out []Finding
	for _, bucket := range [][]Finding{r.Errors, r.Warnings, r.Successes} {
		for _, f := range bucket {
			if f.Category == category {
				out = append(out, f)
			}
		}
	}
	return out
}

// SummaryStatus is the headline state shown above a findings list.
type SummaryStatus string

// Summary states.
const (
	SummaryValid    SummaryStatus = "valid"
	SummaryInvalid  SummaryStatus = "invalid"
	SummaryWarnings SummaryStatus = "warnings"
	SummaryNone     SummaryStatus = "none"
)

// Summary is a one-line description of a report.
type Summary struct {
	Status  SummaryStatus `json:"status"`
	Message string        `json:"message"`
}

// Summary describes the report the way the results panel headlines it.
func (r *Report) Summary() Summary {
	switch {
	case r.TotalIssues() == 0 && len(r.Successes) > 0:
		return Summary{Status: SummaryValid, Message: "HTML is valid! No errors found."}
	case len(r.Errors) > 0:
		return Summary{
			Status:  SummaryInvalid,
			Message: fmt.Sprintf("Found %d issue(s): %d error(s), %d warning(s)", r.TotalIssues(), len(r.Errors), len(r.Warnings)),
		}
	case len(r.Warnings) > 0:
		return Summary{Status: SummaryWarnings, Message: fmt.Sprintf("Found %d warning(s)", len(r.Warnings))}
	default:
		return Summary{Status: SummaryNone, Message: "No findings"}
	}
}

type reportJSON struct {
	Errors      []Finding `json:"errors"`
	Warnings    []Finding `json:"warnings"`
	Successes   []Finding `json:"successes"`
	IsValid     bool      `json:"is_valid"`
	TotalIssues int       `json:"total_issues"`
	Summary     Summary   `json:"summary"`
}

// MarshalJSON includes the derived fields alongside the buckets.
func (r *Report) MarshalJSON() ([]byte, error) {
	out := reportJSON{
		Errors:      nonNil(r.Errors),
		Warnings:    nonNil(r.Warnings),
		Successes:   nonNil(r.Successes),
		IsValid:     r.IsValid(),
		TotalIssues: r.TotalIssues(),
		Summary:     r.Summary(),
	}
	return json.Marshal(out)
}

func nonNil(f []Finding) []Finding {
	if f == nil {
		return []Finding{}
	}
	return f
}
