package analyze

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/kwrank"
	"github.com/fwojciec/kwrank/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of URLs analyzed in parallel by a Batch.
const DefaultConcurrency = 4

// dedupeFalsePositiveRate bounds how often a new URL needs an exact set
// lookup to be told apart from a repeat.
const dedupeFalsePositiveRate = 1e-6

// Progress reports one finished URL during a batch run.
type Progress struct {
	URL       string
	Status    kwrank.Status
	Err       error
	Completed int
	Total     int
}

// ProgressFunc is called as URLs finish. Calls may come from several
// goroutines but never concurrently.
type ProgressFunc func(Progress)

// Batch analyzes many URLs with bounded parallelism.
type Batch struct {
	Analyzer    kwrank.Analyzer
	Limiter     kwrank.DomainLimiter
	Concurrency int
}

// AnalyzeAll analyzes each distinct URL once and returns the analyses in
// the order the URLs first appear. Repeated URLs are skipped. Failures are
// reported through each analysis status; AnalyzeAll itself does not fail.
func (b *Batch) AnalyzeAll(ctx context.Context, urls []string, progress ProgressFunc) []*kwrank.Analysis {
	unique := dedupe(urls, dedupeFalsePositiveRate)

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]*kwrank.Analysis, len(unique))
	progressCh := make(chan Progress)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for p := range progressCh {
			if progress != nil {
				progress(p)
			}
		}
	}()

	var completed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, u := range unique {
		g.Go(func() error {
			a := b.analyze(gctx, u)
			results[i] = a
			progressCh <- Progress{
				URL:       u,
				Status:    a.Status,
				Err:       a.Err,
				Completed: int(completed.Add(1)),
				Total:     len(unique),
			}
			return nil
		})
	}
	_ = g.Wait()
	close(progressCh)
	<-done

	return results
}

func (b *Batch) analyze(ctx context.Context, u string) *kwrank.Analysis {
	if b.Limiter != nil {
		if err := b.Limiter.Wait(ctx, hostOf(u)); err != nil {
			return &kwrank.Analysis{
				SourceURL:  u,
				Status:     kwrank.StatusNoText,
				Keywords:   kwrank.SentinelKeywords(kwrank.StatusNoText),
				Err:        err,
				Error:      err.Error(),
				AnalyzedAt: time.Now().UTC(),
			}
		}
	}
	return b.Analyzer.Analyze(ctx, u)
}

// dedupe drops repeated URLs, keeping first occurrences in order. The Bloom
// filter answers for URLs it has never seen; its hits are confirmed against
// the exact set so a false positive never drops a distinct URL.
func dedupe(urls []string, fpRate float64) []string {
	if len(urls) == 0 {
		return nil
	}
	seen := bloom.NewFilter(uint(len(urls)), fpRate)
	exact := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if seen.Test(u) {
			if _, ok := exact[u]; ok {
				continue
			}
		}
		seen.Add(u)
		exact[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
