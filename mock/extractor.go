package mock

import "github.com/fwojciec/kwrank"

var (
	_ kwrank.Extractor     = (*Extractor)(nil)
	_ kwrank.TextExtractor = (*TextExtractor)(nil)
)

// Extractor is a mock implementation of kwrank.Extractor.
type Extractor struct {
	ExtractFn func(pageURL, html string) (*kwrank.ExtractResult, error)
}

func (e *Extractor) Extract(pageURL, html string) (*kwrank.ExtractResult, error) {
	return e.ExtractFn(pageURL, html)
}

// TextExtractor is a mock implementation of kwrank.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *TextExtractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}
