package crawl

import (
	"context"
	"sync"
	"time"

	"siteask"

	"golang.org/x/time/rate"
)

var _ siteask.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-domain rate limiting using token buckets.
// Each domain gets its own limiter, so requests to different hosts never
// wait on each other, while requests within one host are held to a
// steady minimum interval.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	interval time.Duration
}

// NewDomainLimiter creates a DomainLimiter that allows requestsPerMinute
// requests to each domain. The burst is 1, so requests within a domain
// are spaced evenly rather than clustered.
func NewDomainLimiter(requestsPerMinute int) *DomainLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 10
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		interval: time.Minute / time.Duration(requestsPerMinute),
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(d.interval), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
