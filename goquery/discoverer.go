// Package goquery provides a CSS-selector based implementation of
// siteask.LinkDiscoverer for finding in-scope links in crawled pages.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"siteask"
)

// Ensure Discoverer implements siteask.LinkDiscoverer at compile time.
var _ siteask.LinkDiscoverer = (*Discoverer)(nil)

// Discoverer extracts anchor links from HTML, resolves them against the
// page they were found on, and keeps only those inside the crawl scope.
type Discoverer struct {
	base       *url.URL
	scope      siteask.ScopeMode
	stripQuery bool
}

// Option configures a Discoverer.
type Option func(*Discoverer)

// WithScope sets the scope mode. The default is ScopePath.
func WithScope(mode siteask.ScopeMode) Option {
	return func(d *Discoverer) {
		d.scope = mode
	}
}

// WithKeepQuery preserves query strings on discovered URLs. By default
// queries are stripped, collapsing tracking-parameter variants of the
// same page into one crawl target.
func WithKeepQuery() Option {
	return func(d *Discoverer) {
		d.stripQuery = false
	}
}

// NewDiscoverer creates a Discoverer scoped to the given base URL.
func NewDiscoverer(baseURL string, opts ...Option) (*Discoverer, error) {
	normalized, err := siteask.NormalizeURL(baseURL, false)
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(normalized)
	if err != nil {
		return nil, siteask.Errorf(siteask.EINVALID, "invalid base URL %q", baseURL)
	}

	d := &Discoverer{
		base:       base,
		scope:      siteask.ScopePath,
		stripQuery: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Discover parses html and returns the normalized, in-scope URLs it
// links to, in document order without duplicates. Relative references
// are resolved against currentURL.
func (d *Discoverer) Discover(html string, currentURL string) ([]string, error) {
	current, err := url.Parse(currentURL)
	if err != nil || current.Host == "" {
		current = d.base
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, siteask.Errorf(siteask.EINVALID, "parsing HTML: %s", err)
	}

	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" || strings.HasPrefix(href, "#") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := current.ResolveReference(ref)

		// NormalizeURL rejects mailto:, javascript:, and friends.
		normalized, err := siteask.NormalizeURL(resolved.String(), d.stripQuery)
		if err != nil {
			return
		}

		parsed, err := url.Parse(normalized)
		if err != nil {
			return
		}
		if !siteask.InScope(parsed, d.base, d.scope) {
			return
		}

		if seen[normalized] {
			return
		}
		seen[normalized] = true
		links = append(links, normalized)
	})

	return links, nil
}
