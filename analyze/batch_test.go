package analyze_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/kwrank"
	"github.com/fwojciec/kwrank/analyze"
	"github.com/fwojciec/kwrank/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okAnalyzer() *mock.Analyzer {
	return &mock.Analyzer{AnalyzeFn: func(ctx context.Context, url string) *kwrank.Analysis {
		return &kwrank.Analysis{
			SourceURL: url,
			Status:    kwrank.StatusOK,
			Keywords:  []kwrank.Keyword{{Word: "word", Weight: 1}},
		}
	}}
}

func TestBatch_AnalyzeAll(t *testing.T) {
	t.Parallel()

	t.Run("keeps input order", func(t *testing.T) {
		t.Parallel()

		urls := []string{"https://a.example/1", "https://b.example/2", "https://c.example/3"}
		b := &analyze.Batch{
			Analyzer: &mock.Analyzer{AnalyzeFn: func(ctx context.Context, url string) *kwrank.Analysis {
				// Later URLs finish first.
				if url == urls[0] {
					time.Sleep(30 * time.Millisecond)
				}
				return &kwrank.Analysis{SourceURL: url, Status: kwrank.StatusOK}
			}},
			Concurrency: 3,
		}

		results := b.AnalyzeAll(context.Background(), urls, nil)

		require.Len(t, results, 3)
		for i, u := range urls {
			assert.Equal(t, u, results[i].SourceURL)
		}
	})

	t.Run("skips repeated URLs", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		b := &analyze.Batch{
			Analyzer: &mock.Analyzer{AnalyzeFn: func(ctx context.Context, url string) *kwrank.Analysis {
				calls.Add(1)
				return &kwrank.Analysis{SourceURL: url}
			}},
		}

		results := b.AnalyzeAll(context.Background(), []string{
			"https://a.example/1",
			"https://a.example/2",
			"https://a.example/1",
		}, nil)

		require.Len(t, results, 2)
		assert.Equal(t, "https://a.example/1", results[0].SourceURL)
		assert.Equal(t, "https://a.example/2", results[1].SourceURL)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("returns nil for no URLs", func(t *testing.T) {
		t.Parallel()

		b := &analyze.Batch{Analyzer: okAnalyzer()}

		assert.Empty(t, b.AnalyzeAll(context.Background(), nil, nil))
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()

		var current, peak atomic.Int32
		b := &analyze.Batch{
			Analyzer: &mock.Analyzer{AnalyzeFn: func(ctx context.Context, url string) *kwrank.Analysis {
				n := current.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				current.Add(-1)
				return &kwrank.Analysis{SourceURL: url}
			}},
			Concurrency: 2,
		}

		urls := make([]string, 10)
		for i := range urls {
			urls[i] = "https://example.com/" + string(rune('a'+i))
		}
		b.AnalyzeAll(context.Background(), urls, nil)

		assert.LessOrEqual(t, peak.Load(), int32(2))
	})

	t.Run("waits on limiter with URL host", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var domains []string
		b := &analyze.Batch{
			Analyzer: okAnalyzer(),
			Limiter: &mock.DomainLimiter{WaitFn: func(ctx context.Context, domain string) error {
				mu.Lock()
				defer mu.Unlock()
				domains = append(domains, domain)
				return nil
			}},
			Concurrency: 1,
		}

		b.AnalyzeAll(context.Background(), []string{"https://news.example.com:8443/a", "http://blog.example.org/b"}, nil)

		assert.Equal(t, []string{"news.example.com", "blog.example.org"}, domains)
	})

	t.Run("limiter failure degrades to error_no_text", func(t *testing.T) {
		t.Parallel()

		b := &analyze.Batch{
			Analyzer: &mock.Analyzer{AnalyzeFn: func(ctx context.Context, url string) *kwrank.Analysis {
				t.Fatal("analyzer must not run when the limiter fails")
				return nil
			}},
			Limiter: &mock.DomainLimiter{WaitFn: func(ctx context.Context, domain string) error {
				return context.DeadlineExceeded
			}},
		}

		results := b.AnalyzeAll(context.Background(), []string{"https://example.com"}, nil)

		require.Len(t, results, 1)
		assert.Equal(t, kwrank.StatusNoText, results[0].Status)
		assert.Equal(t, kwrank.SentinelKeywords(kwrank.StatusNoText), results[0].Keywords)
		assert.True(t, errors.Is(results[0].Err, context.DeadlineExceeded))
	})

	t.Run("reports progress for every URL", func(t *testing.T) {
		t.Parallel()

		b := &analyze.Batch{Analyzer: okAnalyzer(), Concurrency: 3}

		var events []analyze.Progress
		b.AnalyzeAll(context.Background(), []string{"https://a.example", "https://b.example", "https://c.example"}, func(p analyze.Progress) {
			events = append(events, p)
		})

		require.Len(t, events, 3)
		completed := make([]int, 0, 3)
		for _, e := range events {
			assert.Equal(t, 3, e.Total)
			assert.Equal(t, kwrank.StatusOK, e.Status)
			completed = append(completed, e.Completed)
		}
		assert.ElementsMatch(t, []int{1, 2, 3}, completed)
	})
}
