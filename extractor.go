package kwrank

// TextExtractor reduces a page to the plain text used for keyword ranking.
type TextExtractor interface {
	// ExtractText returns the trimmed text of every paragraph in document
	// order, joined by newlines. Script, style, and noscript content never
	// appears in the result. A page without paragraphs yields "" and no error.
	ExtractText(html string) (string, error)
}

// ExtractResult holds the main content found in an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor narrows an HTML page to its main article content.
type Extractor interface {
	// Extract processes raw HTML fetched from pageURL and returns the main
	// content. pageURL is used to resolve relative references and may be empty.
	Extract(pageURL, html string) (*ExtractResult, error)
}
