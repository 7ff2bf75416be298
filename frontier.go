package siteask

import "context"

// Target is a URL queued for crawling together with its distance from
// the seed page. Depth 0 is the seed itself.
type Target struct {
	URL   string
	Depth int
}

// URLFrontier manages a crawl queue with deduplication.
type URLFrontier interface {
	// Push adds a target to the frontier.
	// Returns false if the URL has already been seen.
	Push(target Target) bool

	// Pop returns the next target in FIFO order.
	// Returns false if the frontier is empty.
	Pop() (Target, bool)

	// Len returns the number of targets in the queue.
	Len() int

	// Seen returns true if the URL has been processed or queued.
	Seen(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
