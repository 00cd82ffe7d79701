// Package readability narrows article pages to their main content with
// go-readability before paragraph text is collected.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/kwrank"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements kwrank.Extractor at compile time.
var _ kwrank.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the main content of rawHTML fetched from pageURL.
func (e *Extractor) Extract(pageURL, rawHTML string) (*kwrank.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, kwrank.Errorf(kwrank.EEMPTY, "empty HTML input")
	}

	var base *url.URL
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, kwrank.Errorf(kwrank.EINVALID, "invalid page URL: %v", err)
		}
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, err
	}

	return &kwrank.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
