package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/fwojciec/kwrank"
	main "github.com/fwojciec/kwrank/cmd/kwrank"
	"github.com/fwojciec/kwrank/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func stubAnalyzer() *mock.Analyzer {
	return &mock.Analyzer{AnalyzeFn: func(ctx context.Context, url string) *kwrank.Analysis {
		if url == "https://example.com/empty" {
			return &kwrank.Analysis{
				SourceURL: url,
				Status:    kwrank.StatusNoText,
				Keywords:  kwrank.SentinelKeywords(kwrank.StatusNoText),
			}
		}
		return &kwrank.Analysis{
			SourceURL: url,
			Status:    kwrank.StatusOK,
			Keywords: []kwrank.Keyword{
				{Word: "glacier", Weight: 0.8},
				{Word: "ice", Weight: 0.6},
			},
		}
	}}
}

func TestAnalyzeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints keywords for a single URL", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Logger:   discardLogger(),
			Analyzer: stubAnalyzer(),
		}

		cmd := &main.AnalyzeCmd{URLs: []string{"https://example.com/a"}, Concurrency: 1}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "https://example.com/a")
		assert.Contains(t, stdout.String(), "glacier")
		assert.Contains(t, stdout.String(), "0.8000")
		assert.Empty(t, stderr.String(), "no progress for a single URL")
	})

	t.Run("marks sentinel results without failing", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Logger:   discardLogger(),
			Analyzer: stubAnalyzer(),
		}

		cmd := &main.AnalyzeCmd{URLs: []string{"https://example.com/empty"}}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "[no_text]")
		assert.Contains(t, stdout.String(), kwrank.SentinelNoText)
	})

	t.Run("prints JSON and progress for several URLs", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Logger:   discardLogger(),
			Analyzer: stubAnalyzer(),
		}

		cmd := &main.AnalyzeCmd{
			URLs: []string{"https://example.com/a", "https://example.com/empty"},
			JSON: true,
		}
		require.NoError(t, cmd.Run(deps))

		var got []kwrank.Analysis
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, kwrank.StatusOK, got[0].Status)
		assert.Equal(t, kwrank.StatusNoText, got[1].Status)
		assert.Contains(t, stderr.String(), "/2]")
	})

	t.Run("requires a non-blank URL", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Logger:   discardLogger(),
			Analyzer: stubAnalyzer(),
		}

		err := (&main.AnalyzeCmd{URLs: []string{"  "}}).Run(deps)

		assert.Equal(t, kwrank.EINVALID, kwrank.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("saves every analysis with --save", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var saved []string
		analyses := &mock.AnalysisService{
			CreateAnalysisFn: func(ctx context.Context, a *kwrank.Analysis) error {
				mu.Lock()
				defer mu.Unlock()
				a.ID = "id-" + a.SourceURL[len(a.SourceURL)-1:]
				saved = append(saved, a.SourceURL)
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Logger:   discardLogger(),
			Analyzer: stubAnalyzer(),
			Analyses: analyses,
		}

		cmd := &main.AnalyzeCmd{URLs: []string{"https://example.com/a", "https://example.com/b"}, Save: true}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, saved)
		assert.Contains(t, stdout.String(), "(id-a)")
	})

	t.Run("returns error when saving fails", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Logger:   discardLogger(),
			Analyzer: stubAnalyzer(),
			Analyses: &mock.AnalysisService{
				CreateAnalysisFn: func(ctx context.Context, a *kwrank.Analysis) error {
					return errors.New("disk full")
				},
			},
		}

		err := (&main.AnalyzeCmd{URLs: []string{"https://example.com/a"}, Save: true}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "disk full")
	})

	t.Run("prints application error message when saving fails", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Logger:   discardLogger(),
			Analyzer: stubAnalyzer(),
			Analyses: &mock.AnalysisService{
				CreateAnalysisFn: func(ctx context.Context, a *kwrank.Analysis) error {
					return kwrank.Errorf(kwrank.EINVALID, "analysis keywords required")
				},
			},
		}

		err := (&main.AnalyzeCmd{URLs: []string{"https://example.com/a"}, Save: true}).Run(deps)

		assert.Equal(t, kwrank.EINVALID, kwrank.ErrorCode(err))
		assert.Equal(t, "error: saving https://example.com/a: analysis keywords required\n", stderr.String())
	})

	t.Run("exports and commits with a writer", func(t *testing.T) {
		t.Parallel()

		var saved int
		committed := false
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
			Logger:   discardLogger(),
			Analyzer: stubAnalyzer(),
			Writer: &mock.AnalysisWriter{
				SaveFn:   func(ctx context.Context, a *kwrank.Analysis) error { saved++; return nil },
				CommitFn: func() error { committed = true; return nil },
				AbortFn:  func() error { t.Fatal("abort must not be called"); return nil },
			},
		}

		cmd := &main.AnalyzeCmd{URLs: []string{"https://example.com/a", "https://example.com/b"}}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, 2, saved)
		assert.True(t, committed)
	})

	t.Run("aborts export when a save fails", func(t *testing.T) {
		t.Parallel()

		aborted := false
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Logger:   discardLogger(),
			Analyzer: stubAnalyzer(),
			Writer: &mock.AnalysisWriter{
				SaveFn:   func(ctx context.Context, a *kwrank.Analysis) error { return errors.New("read-only") },
				CommitFn: func() error { t.Fatal("commit must not be called"); return nil },
				AbortFn:  func() error { aborted = true; return nil },
			},
		}

		err := (&main.AnalyzeCmd{URLs: []string{"https://example.com/a"}}).Run(deps)

		require.Error(t, err)
		assert.True(t, aborted)
		assert.Contains(t, stderr.String(), "read-only")
	})
}
