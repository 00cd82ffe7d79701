// Package bloom detects repeated URLs in a batch of pages to analyze.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a probabilistic set of URLs.
// Test may report a URL that was never added; it never misses one that
// was. Filter is not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate. n is raised to at least 1.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a URL to the filter.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test returns true if the URL might be in the filter.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}
