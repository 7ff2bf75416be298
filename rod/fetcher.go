// Package rod provides a browser-based implementation of siteask.Fetcher
// using Chrome automation. It renders JavaScript before returning HTML,
// which plain HTTP fetching cannot do.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"siteask"
)

// DefaultFetchTimeout is the suggested per-page timeout for browser fetches.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements siteask.Fetcher at compile time.
var _ siteask.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser     *rod.Browser
	launcher    *launcher.Launcher
	settleDelay time.Duration
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithSettleDelay adds a fixed pause after the page load event before
// the HTML is captured. Single-page apps often finish loading before
// async content lands; the pause gives them time to settle.
func WithSettleDelay(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.settleDelay = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	f := &Fetcher{}
	for _, opt := range opts {
		opt(f)
	}

	// Launch browser using rod's launcher (finds or downloads Chrome)
	l := launcher.New().
		Headless(true).
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-gpu")
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// Fetch navigates to the URL, waits for the page to render, and returns
// the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}

	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if f.settleDelay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.settleDelay):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	return html, nil
}

// Close releases browser resources and kills the launched Chrome process.
func (f *Fetcher) Close() error {
	err := f.browser.Close()
	if f.launcher != nil {
		f.launcher.Kill()
	}
	return err
}
