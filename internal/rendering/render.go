// Package rendering writes validation reports as terminal text, JSON,
// Markdown or HTML.
package rendering

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonathan/markup-validator/internal/types"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Format names an output representation of a report.
type Format string

// Supported formats.
const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatPretty   Format = "pretty"
)

var formats = []Format{FormatText, FormatJSON, FormatMarkdown, FormatHTML, FormatPretty}

// ParseFormat resolves a user-supplied format name. The empty string selects
// FormatText.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	for _, f := range formats {
		if strings.EqualFold(name, string(f)) {
			return f, nil
		}
	}
	return "", &FormatError{Format: name}
}

func formatNames() string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Icons shown next to findings and the summary line.
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "⚠"
	IconNone    = "•"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

// Render writes report to w in the given format.
func Render(w io.Writer, report *types.Report, format Format) error {
	if report == nil {
		report = types.NewReport()
	}

	switch format {
	case FormatText, "":
		return writeString(w, Text(report))
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return &RenderError{Message: "failed to encode report", Cause: err}
		}
		return nil
	case FormatMarkdown:
		return writeString(w, Markdown(report))
	case FormatHTML:
		out, err := HTML(report)
		if err != nil {
			return err
		}
		return writeString(w, out)
	case FormatPretty:
		out, err := Pretty(report)
		if err != nil {
			return err
		}
		return writeString(w, out)
	default:
		return &FormatError{Format: string(format)}
	}
}

// Text renders report for a terminal: a summary line followed by the
// errors, warnings and passed checks, each with its line number.
func Text(report *types.Report) string {
	var sb strings.Builder

	summary := report.Summary()
	sb.WriteString(summaryIcon(summary.Status) + " " + summary.Message + "\n")

	section := func(title, icon string, style lipgloss.Style, findings []types.Finding) {
		if len(findings) == 0 {
			return
		}
		sb.WriteString("\n" + title + ":\n")
		for _, f := range findings {
			fmt.Fprintf(&sb, "  %s %s %s\n", style.Render(icon), f.Message, mutedStyle.Render(fmt.Sprintf("(Line %d)", f.Line)))
		}
	}
	section("Errors", IconError, errorStyle, report.Errors)
	section("Warnings", IconWarning, warningStyle, report.Warnings)
	section("Passed", IconSuccess, successStyle, report.Successes)

	return sb.String()
}

func summaryIcon(status types.SummaryStatus) string {
	switch status {
	case types.SummaryValid:
		return successStyle.Render(IconSuccess)
	case types.SummaryInvalid:
		return errorStyle.Render(IconError)
	case types.SummaryWarnings:
		return warningStyle.Render(IconWarning)
	default:
		return mutedStyle.Render(IconNone)
	}
}

// Markdown renders report as a Markdown document. Finding messages are
// HTML-escaped so tag names survive Markdown processors.
func Markdown(report *types.Report) string {
	var sb strings.Builder

	summary := report.Summary()
	sb.WriteString("# Validation report\n\n")
	fmt.Fprintf(&sb, "**%s %s**\n", plainIcon(summary.Status), summary.Message)

	section := func(title, icon string, findings []types.Finding) {
		if len(findings) == 0 {
			return
		}
		fmt.Fprintf(&sb, "\n## %s (%d)\n\n", title, len(findings))
		for _, f := range findings {
			fmt.Fprintf(&sb, "- %s %s (line %d)\n", icon, EscapeHTML(f.Message), f.Line)
		}
	}
	section("Errors", IconError, report.Errors)
	section("Warnings", IconWarning, report.Warnings)
	section("Passed", IconSuccess, report.Successes)

	return sb.String()
}

func plainIcon(status types.SummaryStatus) string {
	switch status {
	case types.SummaryValid:
		return IconSuccess
	case types.SummaryInvalid:
		return IconError
	case types.SummaryWarnings:
		return IconWarning
	default:
		return IconNone
	}
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML renders report as an HTML fragment.
func HTML(report *types.Report) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(Markdown(report)), &buf); err != nil {
		return "", &RenderError{Message: "failed to convert markdown", Cause: err}
	}
	return buf.String(), nil
}

// Pretty renders report as styled Markdown for a terminal.
func Pretty(report *types.Report) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", &RenderError{Message: "failed to create terminal renderer", Cause: err}
	}
	out, err := renderer.Render(Markdown(report))
	if err != nil {
		return "", &RenderError{Message: "failed to render markdown", Cause: err}
	}
	return out, nil
}

func writeString(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return &RenderError{Message: "failed to write output", Cause: err}
	}
	return nil
}
