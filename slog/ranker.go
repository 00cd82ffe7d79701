package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/kwrank"
)

// Ensure LoggingRanker implements kwrank.Ranker.
var _ kwrank.Ranker = (*LoggingRanker)(nil)

// LoggingRanker wraps a Ranker with debug logging.
type LoggingRanker struct {
	next   kwrank.Ranker
	logger *slog.Logger
}

// NewLoggingRanker creates a new LoggingRanker.
func NewLoggingRanker(next kwrank.Ranker, logger *slog.Logger) *LoggingRanker {
	return &LoggingRanker{next: next, logger: logger}
}

// Rank delegates to the wrapped ranker and logs the result size.
func (r *LoggingRanker) Rank(text string, topN int) (keywords []kwrank.Keyword, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"text_bytes", len(text),
			"top_n", topN,
			"count", len(keywords),
			"duration", time.Since(begin),
			"err", err,
		}
		if len(keywords) > 0 {
			attrs = append(attrs, "top", keywords[0].Word)
		}
		r.logger.Debug("rank", attrs...)
	}(time.Now())
	return r.next.Rank(text, topN)
}
