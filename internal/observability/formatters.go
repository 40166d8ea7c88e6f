// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/markup-validator/internal/preview"
	"github.com/jonathan/markup-validator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to at most n runes, marking the cut with "...".
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

// PrintReport outputs a compact summary of a validation report.
func (p *Printer) PrintReport(source string, report *types.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	summary := report.Summary()
	if source != "" {
		sb.WriteString(fmt.Sprintf("Source:   %s\n", source))
	}
	sb.WriteString(fmt.Sprintf("Status:   %s\n", summary.Status))
	sb.WriteString(fmt.Sprintf("Errors:   %d\n", len(report.Errors)))
	sb.WriteString(fmt.Sprintf("Warnings: %d\n", len(report.Warnings)))
	sb.WriteString(fmt.Sprintf("Passed:   %d\n", len(report.Successes)))

	list := func(icon string, findings []types.Finding) {
		if len(findings) == 0 {
			return
		}
		sb.WriteString("\n")
		count := min(len(findings), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("%s L%-4d %s\n", icon, findings[i].Line, findings[i].Message))
		}
		if len(findings) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(findings)-maxItemsToShow))
		}
	}
	list("✗", report.Errors)
	list("⚠", report.Warnings)

	p.printBox("VALIDATION REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPreview outputs the document title, outline and element counts.
func (p *Printer) PrintPreview(pv *preview.Preview) {
	if pv == nil {
		return
	}

	var sb strings.Builder
	title := pv.Title
	if title == "" {
		title = "(untitled)"
	}
	sb.WriteString(fmt.Sprintf("Title:    %s\n", title))

	if len(pv.Headings) > 0 {
		sb.WriteString("\nOutline:\n")
		count := min(len(pv.Headings), maxItemsToShow)
		for i := 0; i < count; i++ {
			h := pv.Headings[i]
			sb.WriteString(fmt.Sprintf("%s• %s\n", strings.Repeat("  ", h.Level), h.Text))
		}
		if len(pv.Headings) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(pv.Headings)-maxItemsToShow))
		}
	}

	if len(pv.Elements) > 0 {
		names := make([]string, 0, len(pv.Elements))
		for name := range pv.Elements {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if pv.Elements[names[i]] != pv.Elements[names[j]] {
				return pv.Elements[names[i]] > pv.Elements[names[j]]
			}
			return names[i] < names[j]
		})

		sb.WriteString("\nElements:\n")
		count := min(len(names), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  %-10s %d\n", names[i], pv.Elements[names[i]]))
		}
		if len(names) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(names)-maxItemsToShow))
		}
	}

	if pv.Excerpt != "" {
		sb.WriteString("\n" + pv.Excerpt + "\n")
	}

	p.printBox("PREVIEW", strings.TrimSuffix(sb.String(), "\n"))
}
