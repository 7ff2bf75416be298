package siteask

import "context"

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch navigates to the URL and returns the page HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher (e.g. a browser).
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
