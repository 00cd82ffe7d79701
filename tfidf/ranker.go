// Package tfidf provides a single-document implementation of kwrank.Ranker.
//
// Terms are weighted by count times smoothed inverse document frequency and
// the resulting vector is L2-normalized. With exactly one document the
// smoothed IDF, ln((1+n)/(1+df))+1, is 1 for every term, so weights reduce
// to count/‖counts‖ and never collapse to zero.
package tfidf

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/fwojciec/kwrank"
)

// DefaultMaxFeatures is the number of distinct terms kept for scoring.
const DefaultMaxFeatures = 2000

// Ensure Ranker implements kwrank.Ranker at compile time.
var _ kwrank.Ranker = (*Ranker)(nil)

// Ranker ranks the terms of a single text.
// Ranker is safe for concurrent use; it holds no per-call state.
type Ranker struct {
	stopWords   map[string]struct{}
	maxFeatures int
	sublinearTF bool
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithStopWords replaces the default English stop-word list.
// Words are matched after case folding.
func WithStopWords(words []string) Option {
	return func(r *Ranker) {
		lowered := make([]string, 0, len(words))
		for _, w := range words {
			lowered = append(lowered, strings.ToLower(w))
		}
		r.stopWords = newStopSet(lowered)
	}
}

// WithMaxFeatures caps the vocabulary at the n most frequent terms.
// Defaults to DefaultMaxFeatures. Values below 1 disable the cap.
func WithMaxFeatures(n int) Option {
	return func(r *Ranker) {
		r.maxFeatures = n
	}
}

// WithSublinearTF scores counts as 1+ln(count) instead of the raw count.
func WithSublinearTF(enabled bool) Option {
	return func(r *Ranker) {
		r.sublinearTF = enabled
	}
}

// NewRanker creates a new Ranker.
func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{
		stopWords:   newStopSet(englishStopWords),
		maxFeatures: DefaultMaxFeatures,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// term is a vocabulary entry with its raw count.
type term struct {
	word  string
	count int
}

// Rank returns up to topN keywords ordered by weight descending.
// Equal weights are ordered alphabetically. A zero topN means
// kwrank.DefaultTopN.
func (r *Ranker) Rank(text string, topN int) ([]kwrank.Keyword, error) {
	if topN < 0 {
		return nil, kwrank.Errorf(kwrank.EINVALID, "topN must not be negative, got %d", topN)
	}
	if topN == 0 {
		topN = kwrank.DefaultTopN
	}
	if strings.TrimSpace(text) == "" {
		return nil, kwrank.Errorf(kwrank.EEMPTY, "empty text")
	}

	vocab := r.vocabulary(text)
	if len(vocab) == 0 {
		return nil, kwrank.Errorf(kwrank.EEMPTY, "no terms left after stop-word removal")
	}

	weights := make([]float64, len(vocab))
	var sumSquares float64
	for i, t := range vocab {
		w := r.termWeight(t.count) * smoothIDF(1, 1)
		weights[i] = w
		sumSquares += w * w
	}
	norm := math.Sqrt(sumSquares)
	if norm == 0 {
		return nil, kwrank.Errorf(kwrank.EINTERNAL, "zero norm for %d terms", len(vocab))
	}

	keywords := make([]kwrank.Keyword, len(vocab))
	for i, t := range vocab {
		keywords[i] = kwrank.Keyword{Word: t.word, Weight: weights[i] / norm}
	}
	slices.SortFunc(keywords, func(a, b kwrank.Keyword) int {
		if c := cmp.Compare(b.Weight, a.Weight); c != 0 {
			return c
		}
		return strings.Compare(a.Word, b.Word)
	})

	if len(keywords) > topN {
		keywords = keywords[:topN]
	}
	return keywords, nil
}

// vocabulary counts non-stop-word tokens and keeps the maxFeatures most
// frequent, breaking count ties alphabetically.
func (r *Ranker) vocabulary(text string) []term {
	counts := make(map[string]int)
	for _, tok := range Tokenize(text) {
		if _, stop := r.stopWords[tok]; stop {
			continue
		}
		counts[tok]++
	}

	vocab := make([]term, 0, len(counts))
	for w, c := range counts {
		vocab = append(vocab, term{word: w, count: c})
	}
	slices.SortFunc(vocab, func(a, b term) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return strings.Compare(a.word, b.word)
	})

	if r.maxFeatures > 0 && len(vocab) > r.maxFeatures {
		vocab = vocab[:r.maxFeatures]
	}
	return vocab
}

func (r *Ranker) termWeight(count int) float64 {
	if r.sublinearTF {
		return 1 + math.Log(float64(count))
	}
	return float64(count)
}

// smoothIDF is ln((1+n)/(1+df))+1 for a collection of n documents in which
// the term occurs in df of them.
func smoothIDF(n, df int) float64 {
	return math.Log(float64(1+n)/float64(1+df)) + 1
}
