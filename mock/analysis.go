package mock

import (
	"context"

	"github.com/fwojciec/kwrank"
)

// Compile-time interface verification.
var (
	_ kwrank.Analyzer        = (*Analyzer)(nil)
	_ kwrank.AnalysisService = (*AnalysisService)(nil)
	_ kwrank.AnalysisWriter  = (*AnalysisWriter)(nil)
	_ kwrank.DomainLimiter   = (*DomainLimiter)(nil)
)

// Analyzer is a mock implementation of kwrank.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, url string) *kwrank.Analysis
}

func (a *Analyzer) Analyze(ctx context.Context, url string) *kwrank.Analysis {
	return a.AnalyzeFn(ctx, url)
}

// AnalysisService is a mock implementation of kwrank.AnalysisService.
type AnalysisService struct {
	CreateAnalysisFn   func(ctx context.Context, a *kwrank.Analysis) error
	FindAnalysisByIDFn func(ctx context.Context, id string) (*kwrank.Analysis, error)
	FindAnalysesFn     func(ctx context.Context, filter kwrank.AnalysisFilter) ([]*kwrank.Analysis, error)
	DeleteAnalysisFn   func(ctx context.Context, id string) error
}

func (s *AnalysisService) CreateAnalysis(ctx context.Context, a *kwrank.Analysis) error {
	return s.CreateAnalysisFn(ctx, a)
}

func (s *AnalysisService) FindAnalysisByID(ctx context.Context, id string) (*kwrank.Analysis, error) {
	return s.FindAnalysisByIDFn(ctx, id)
}

func (s *AnalysisService) FindAnalyses(ctx context.Context, filter kwrank.AnalysisFilter) ([]*kwrank.Analysis, error) {
	return s.FindAnalysesFn(ctx, filter)
}

func (s *AnalysisService) DeleteAnalysis(ctx context.Context, id string) error {
	return s.DeleteAnalysisFn(ctx, id)
}

// AnalysisWriter is a mock implementation of kwrank.AnalysisWriter.
type AnalysisWriter struct {
	SaveFn   func(ctx context.Context, a *kwrank.Analysis) error
	CommitFn func() error
	AbortFn  func() error
}

func (w *AnalysisWriter) Save(ctx context.Context, a *kwrank.Analysis) error {
	return w.SaveFn(ctx, a)
}

func (w *AnalysisWriter) Commit() error {
	return w.CommitFn()
}

func (w *AnalysisWriter) Abort() error {
	return w.AbortFn()
}

// DomainLimiter is a mock implementation of kwrank.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
