// Package trafilatura narrows article pages to their main content with
// go-trafilatura before paragraph text is collected.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/kwrank"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements kwrank.Extractor at compile time.
var _ kwrank.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	comments bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithComments keeps reader comments in the extracted content.
// Comments are dropped by default since they dilute article keywords.
func WithComments(enabled bool) Option {
	return func(e *Extractor) {
		e.comments = enabled
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the main content of rawHTML fetched from pageURL.
func (e *Extractor) Extract(pageURL, rawHTML string) (*kwrank.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, kwrank.Errorf(kwrank.EEMPTY, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: !e.comments,
	}
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, kwrank.Errorf(kwrank.EINVALID, "invalid page URL: %v", err)
		}
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &kwrank.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
