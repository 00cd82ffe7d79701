package goquery_test

import (
	"testing"

	"github.com/fwojciec/kwrank"
	"github.com/fwojciec/kwrank/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure TextExtractor implements kwrank.TextExtractor at compile time.
var _ kwrank.TextExtractor = (*goquery.TextExtractor)(nil)

func TestTextExtractor_ExtractText(t *testing.T) {
	t.Parallel()

	t.Run("joins trimmed paragraphs in document order", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<h1>Title is not a paragraph</h1>
<p>  Quantum computing uses qubits.  </p>
<div><p>
	Qubits enable quantum speedup.
</p></div>
</body>
</html>`

		text, err := goquery.NewTextExtractor().ExtractText(html)

		require.NoError(t, err)
		assert.Equal(t, "Quantum computing uses qubits.\nQubits enable quantum speedup.", text)
	})

	t.Run("drops script, style, and noscript content", func(t *testing.T) {
		t.Parallel()

		html := `<html>
<head>
<style>p { color: red; } stylesecret</style>
<script>var scriptsecret = 1;</script>
</head>
<body>
<p>Visible text<script>document.write("inlinesecret")</script></p>
<noscript><p>noscriptsecret paragraph</p></noscript>
<p><style>.x{}</style>More visible</p>
</body>
</html>`

		text, err := goquery.NewTextExtractor().ExtractText(html)

		require.NoError(t, err)
		assert.Equal(t, "Visible text\nMore visible", text)
		assert.NotContains(t, text, "secret")
	})

	t.Run("includes text of nested inline elements", func(t *testing.T) {
		t.Parallel()

		html := `<p>Read the <a href="/x">linked</a> <b>article</b></p>`

		text, err := goquery.NewTextExtractor().ExtractText(html)

		require.NoError(t, err)
		assert.Equal(t, "Read the linked article", text)
	})

	t.Run("returns empty string without paragraphs", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div>Only divs</div><span>and spans</span></body></html>`

		text, err := goquery.NewTextExtractor().ExtractText(html)

		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("whitespace-only paragraphs join to blank text", func(t *testing.T) {
		t.Parallel()

		html := `<p>   </p><p>
</p>`

		text, err := goquery.NewTextExtractor().ExtractText(html)

		require.NoError(t, err)
		assert.Equal(t, "\n", text)
	})

	t.Run("tolerates malformed markup", func(t *testing.T) {
		t.Parallel()

		html := `<p>unclosed paragraph<p>second <b>bold</p><div></span>`

		text, err := goquery.NewTextExtractor().ExtractText(html)

		require.NoError(t, err)
		assert.Equal(t, "unclosed paragraph\nsecond bold", text)
	})
}
