package kwrank

import "context"

// Fetcher retrieves the raw HTML body of a page.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation. Network failures,
	// timeouts, and non-success statuses are returned as EFETCH errors.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
