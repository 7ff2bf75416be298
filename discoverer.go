package siteask

// LinkDiscoverer extracts in-scope links from HTML.
type LinkDiscoverer interface {
	// Discover parses html and returns the normalized, in-scope URLs it
	// links to. currentURL is the address the HTML was fetched from and
	// is used to resolve relative references. The result preserves
	// document order and contains no duplicates.
	Discover(html string, currentURL string) ([]string, error)
}
