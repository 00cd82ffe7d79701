package mock

import "github.com/fwojciec/kwrank"

var _ kwrank.Ranker = (*Ranker)(nil)

// Ranker is a mock implementation of kwrank.Ranker.
type Ranker struct {
	RankFn func(text string, topN int) ([]kwrank.Keyword, error)
}

func (r *Ranker) Rank(text string, topN int) ([]kwrank.Keyword, error) {
	return r.RankFn(text, topN)
}
