package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/kwrank"
)

// Ensure LoggingAnalyzer implements kwrank.Analyzer.
var _ kwrank.Analyzer = (*LoggingAnalyzer)(nil)

// LoggingAnalyzer wraps an Analyzer and logs the outcome of each analysis.
// Failed analyses are logged at warn level with their internal cause,
// which the caller-facing sentinel result does not carry.
type LoggingAnalyzer struct {
	next   kwrank.Analyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer creates a new LoggingAnalyzer.
func NewLoggingAnalyzer(next kwrank.Analyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze delegates to the wrapped analyzer and logs the result.
func (a *LoggingAnalyzer) Analyze(ctx context.Context, url string) *kwrank.Analysis {
	begin := time.Now()
	result := a.next.Analyze(ctx, url)

	level := slog.LevelInfo
	if result.Status != kwrank.StatusOK {
		level = slog.LevelWarn
	}
	a.logger.Log(ctx, level, "analyze",
		"url", url,
		"status", string(result.Status),
		"keywords", len(result.Keywords),
		"text_bytes", result.TextBytes,
		"duration", time.Since(begin),
		"err", result.Err,
	)
	return result
}
