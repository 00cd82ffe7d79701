package kwrank

import (
	"context"
	"time"
)

// Status classifies the outcome of analyzing a page.
type Status string

// Status constants for Analysis.
const (
	StatusOK         Status = "ok"
	StatusNoText     Status = "no_text"
	StatusNoKeywords Status = "no_keywords"
)

// Analysis is the outcome of running the keyword pipeline on one URL.
//
// Keywords always holds the caller-facing result: the ranked keywords on
// success, or a single sentinel item otherwise. Err keeps the internal cause
// of a failed analysis for logging and is never part of the serialized form.
type Analysis struct {
	ID         string    `json:"id,omitempty"`
	SourceURL  string    `json:"sourceUrl"`
	Status     Status    `json:"status"`
	Keywords   []Keyword `json:"keywords"`
	TextHash   string    `json:"textHash,omitempty"`
	TextBytes  int       `json:"textBytes"`
	Error      string    `json:"error,omitempty"`
	AnalyzedAt time.Time `json:"analyzedAt"`

	Err error `json:"-"`
}

// Validate returns an error if the analysis contains invalid fields.
func (a *Analysis) Validate() error {
	if a.SourceURL == "" {
		return Errorf(EINVALID, "analysis source URL required")
	}
	switch a.Status {
	case StatusOK, StatusNoText, StatusNoKeywords:
	default:
		return Errorf(EINVALID, "invalid analysis status %q", a.Status)
	}
	if len(a.Keywords) == 0 {
		return Errorf(EINVALID, "analysis keywords required")
	}
	return nil
}

// Analyzer runs the full fetch, clean, and rank pipeline for a URL.
type Analyzer interface {
	// Analyze never fails: fetch and ranking failures are reported through
	// the returned Analysis status and sentinel keywords.
	Analyze(ctx context.Context, url string) *Analysis
}

// AnalysisService represents a service for managing stored analyses.
type AnalysisService interface {
	// CreateAnalysis stores an analysis, assigning an ID if it has none.
	// Returns ECONFLICT if an analysis with the same ID is already stored.
	CreateAnalysis(ctx context.Context, a *Analysis) error

	// FindAnalysisByID retrieves an analysis by ID.
	// Returns ENOTFOUND if the analysis does not exist.
	FindAnalysisByID(ctx context.Context, id string) (*Analysis, error)

	// FindAnalyses retrieves analyses matching the filter, newest first.
	FindAnalyses(ctx context.Context, filter AnalysisFilter) ([]*Analysis, error)

	// DeleteAnalysis permanently removes an analysis and its keywords.
	// Returns ENOTFOUND if the analysis does not exist.
	DeleteAnalysis(ctx context.Context, id string) error
}

// AnalysisFilter represents a filter for FindAnalyses.
type AnalysisFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`
	Status    *Status `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// AnalysisWriter persists analyses outside the history database.
// Save writes to a pending location; Commit makes the batch permanent;
// Abort discards pending changes.
type AnalysisWriter interface {
	Save(ctx context.Context, a *Analysis) error
	Commit() error
	Abort() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
