package crawl

import (
	"strings"
	"sync"

	"siteask"
	"siteask/bloom"
)

// Compile-time interface verification.
var _ siteask.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO crawl queue with Bloom filter
// deduplication. FIFO order makes the crawl breadth-first: all targets
// at depth n are visited before any at depth n+1, so a bounded budget is
// spent close to the seed. It is safe for concurrent use by multiple
// goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue []siteask.Target
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		seen: bloom.NewFilter(n, fpRate),
	}
}

// Push adds a target to the frontier.
// Returns false if the URL has already been seen.
// URL fragments are stripped before deduplication - URLs differing only
// by fragment are considered duplicates.
func (f *Frontier) Push(target siteask.Target) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(target.URL)
	if f.seen.Test(url) {
		return false
	}
	f.seen.Add(url)

	target.URL = url
	f.queue = append(f.queue, target)
	return true
}

// Pop returns the oldest queued target.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (siteask.Target, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return siteask.Target{}, false
	}
	target := f.queue[0]
	f.queue = f.queue[1:]
	return target, true
}

// Len returns the number of targets in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has been processed or queued.
// URL fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(stripFragment(rawURL))
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}
