package kwrank

// Result size limits.
const (
	// DefaultTopN is the number of keywords a Ranker returns when the
	// caller has no preference.
	DefaultTopN = 20

	// AnalyzeTopN is the number of keywords returned for an analyzed page.
	AnalyzeTopN = 25
)

// Sentinel words returned in place of a keyword list when analysis fails.
const (
	// SentinelNoText marks a page that could not be fetched or had no text.
	SentinelNoText = "error_no_text"

	// SentinelNoKeywords marks text in which no keyword survived ranking.
	SentinelNoKeywords = "no_keywords_found"
)

// Keyword is a ranked term and its importance weight.
// Weight is non-negative and only meaningful relative to other weights
// in the same result.
type Keyword struct {
	Word   string  `json:"word"`
	Weight float64 `json:"weight"`
}

// Ranker scores the terms of a single text and returns the strongest ones.
type Ranker interface {
	// Rank returns up to topN keywords ordered by weight descending.
	// A zero topN means DefaultTopN. Returns EEMPTY if the text holds no
	// rankable terms and EINVALID if topN is negative.
	Rank(text string, topN int) ([]Keyword, error)
}

// SentinelKeywords returns the single-item result used for status.
// It returns nil for StatusOK.
func SentinelKeywords(status Status) []Keyword {
	switch status {
	case StatusNoText:
		return []Keyword{{Word: SentinelNoText, Weight: 1.0}}
	case StatusNoKeywords:
		return []Keyword{{Word: SentinelNoKeywords, Weight: 1.0}}
	}
	return nil
}
