// Package preview builds a safe, summarized view of markup for display next
// to its validation report.
package preview

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// ExcerptLength is the maximum number of runes kept in Preview.Excerpt.
const ExcerptLength = 200

// Heading is one entry of the document outline.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Preview summarizes how a browser would see a piece of markup.
type Preview struct {
	Title string `json:"title"`
	// HTML is the markup with scripts, event handlers and other unsafe
	// constructs removed. It is safe to embed in a page.
	HTML     string         `json:"html"`
	Elements map[string]int `json:"elements"`
	Headings []Heading      `json:"headings"`
	Excerpt  string         `json:"excerpt"`
}

var policy = bluemonday.UGCPolicy()

// Build parses markup the way a browser would, repairing it as needed, and
// summarizes the result. Element counts include the html, head and body
// elements the parser inserts when they are missing.
func Build(markup string) (*Preview, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, &Error{Message: "failed to parse markup", Cause: err}
	}

	p := &Preview{
		Title:    strings.TrimSpace(doc.Find("title").First().Text()),
		HTML:     policy.Sanitize(markup),
		Elements: make(map[string]int),
		Headings: []Heading{},
	}

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		p.Elements[goquery.NodeName(s)]++
	})

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		p.Headings = append(p.Headings, Heading{
			Level: int(name[1] - '0'),
			Text:  collapse(s.Text()),
		})
	})

	body := doc.Find("body")
	body.Find("script, style, template").Remove()
	p.Excerpt = truncate(collapse(body.Text()), ExcerptLength)

	return p, nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "…"
}
