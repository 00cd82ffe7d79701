package analyze

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/fwojciec/kwrank"
	"golang.org/x/time/rate"
)

var _ kwrank.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests to the same host during batch analysis.
// Each host gets its own token bucket with a burst of 1, so pages on
// different hosts are fetched in parallel while a single host sees at most
// rps requests per second. A non-positive rps disables limiting.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a new DomainLimiter allowing rps requests per
// second to each host.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the rate limit allows a request to domain.
// Domains are compared case-insensitively.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	domain = strings.ToLower(domain)

	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// hostOf returns the host name of rawURL, or "" if it cannot be parsed.
// Unparseable URLs share one bucket and fail later at fetch time.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
