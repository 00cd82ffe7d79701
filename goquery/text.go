// Package goquery reduces HTML pages to paragraph text using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/kwrank"
)

// ignoredSelector matches nodes whose content never counts as page text.
const ignoredSelector = "script, style, noscript"

// Ensure TextExtractor implements kwrank.TextExtractor at compile time.
var _ kwrank.TextExtractor = (*TextExtractor)(nil)

// TextExtractor extracts paragraph text from HTML.
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// ExtractText returns the trimmed text of every <p> element in document
// order, joined by newlines.
func (x *TextExtractor) ExtractText(html string) (string, error) {
	return ParagraphText(html)
}

// ParagraphText parses html, drops script, style, and noscript nodes, and
// joins the trimmed text of each paragraph with "\n".
func ParagraphText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", kwrank.Errorf(kwrank.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(ignoredSelector).Remove()

	var paragraphs []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		paragraphs = append(paragraphs, strings.TrimSpace(sel.Text()))
	})

	return strings.Join(paragraphs, "\n"), nil
}
