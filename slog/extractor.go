package slog

import (
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/kwrank"
)

// Ensure LoggingTextExtractor implements kwrank.TextExtractor.
var _ kwrank.TextExtractor = (*LoggingTextExtractor)(nil)

// LoggingTextExtractor wraps a TextExtractor with debug logging.
type LoggingTextExtractor struct {
	next   kwrank.TextExtractor
	logger *slog.Logger
}

// NewLoggingTextExtractor creates a new LoggingTextExtractor.
func NewLoggingTextExtractor(next kwrank.TextExtractor, logger *slog.Logger) *LoggingTextExtractor {
	return &LoggingTextExtractor{next: next, logger: logger}
}

// ExtractText logs input and output sizes and delegates to the wrapped extractor.
func (e *LoggingTextExtractor) ExtractText(html string) (text string, err error) {
	defer func(begin time.Time) {
		paragraphs := 0
		if text != "" {
			paragraphs = strings.Count(text, "\n") + 1
		}
		e.logger.Debug("extract text",
			"html_bytes", len(html),
			"text_bytes", len(text),
			"paragraphs", paragraphs,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractText(html)
}
