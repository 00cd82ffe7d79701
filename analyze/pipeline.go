// Package analyze runs the keyword pipeline: fetch a page, reduce it to
// paragraph text, rank its terms, and fold every failure into a sentinel
// result.
package analyze

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/kwrank"
)

var _ kwrank.Analyzer = (*Pipeline)(nil)

// Pipeline analyzes one URL at a time.
// A Pipeline holds no per-request state and is safe for concurrent use as
// long as its components are.
type Pipeline struct {
	Fetcher   kwrank.Fetcher
	Extractor kwrank.TextExtractor
	Ranker    kwrank.Ranker

	// Content optionally narrows pages to their main content before
	// paragraphs are extracted. The full page is used if it fails.
	Content kwrank.Extractor

	// TopN caps the keyword list. Defaults to kwrank.AnalyzeTopN.
	TopN int

	// Now returns the analysis timestamp. Defaults to time.Now.
	Now func() time.Time
}

// ExtractText fetches url and returns its paragraph text.
func (p *Pipeline) ExtractText(ctx context.Context, url string) (string, error) {
	html, err := p.Fetcher.Fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}

	if p.Content != nil {
		if result, err := p.Content.Extract(url, html); err == nil && result != nil && strings.TrimSpace(result.ContentHTML) != "" {
			html = result.ContentHTML
		}
	}

	text, err := p.Extractor.ExtractText(html)
	if err != nil {
		return "", fmt.Errorf("extract: %w", err)
	}
	return text, nil
}

// Analyze runs the pipeline for url. It never fails: a page without text
// yields StatusNoText and the error_no_text sentinel, and text without
// rankable terms yields StatusNoKeywords and the no_keywords_found sentinel.
func (p *Pipeline) Analyze(ctx context.Context, url string) *kwrank.Analysis {
	a := &kwrank.Analysis{
		SourceURL:  url,
		AnalyzedAt: p.now().UTC(),
	}

	text, err := p.ExtractText(ctx, url)
	a.TextBytes = len(text)
	if text != "" {
		a.TextHash = ComputeHash(text)
	}
	if err == nil && strings.TrimSpace(text) == "" {
		err = kwrank.Errorf(kwrank.EEMPTY, "no paragraph text at %s", url)
	}
	if err != nil {
		return p.fail(a, kwrank.StatusNoText, err)
	}

	topN := p.topN()
	keywords, err := p.Ranker.Rank(text, topN)
	if err == nil && len(keywords) == 0 {
		err = kwrank.Errorf(kwrank.EEMPTY, "ranker returned no keywords")
	}
	if err != nil {
		return p.fail(a, kwrank.StatusNoKeywords, fmt.Errorf("rank: %w", err))
	}

	if len(keywords) > topN {
		keywords = keywords[:topN]
	}
	a.Status = kwrank.StatusOK
	a.Keywords = keywords
	return a
}

// Keywords returns the caller-facing keyword list for url: between 1 and
// TopN items, never empty.
func (p *Pipeline) Keywords(ctx context.Context, url string) []kwrank.Keyword {
	return p.Analyze(ctx, url).Keywords
}

func (p *Pipeline) fail(a *kwrank.Analysis, status kwrank.Status, err error) *kwrank.Analysis {
	a.Status = status
	a.Keywords = kwrank.SentinelKeywords(status)
	a.Err = err
	a.Error = err.Error()
	return a
}

func (p *Pipeline) topN() int {
	if p.TopN > 0 {
		return p.TopN
	}
	return kwrank.AnalyzeTopN
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// ComputeHash returns the xxhash of text as lowercase hex.
func ComputeHash(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}
