package mock

import "siteask"

var _ siteask.LinkDiscoverer = (*LinkDiscoverer)(nil)

// LinkDiscoverer is a mock implementation of siteask.LinkDiscoverer.
type LinkDiscoverer struct {
	DiscoverFn func(html string, currentURL string) ([]string, error)
}

func (d *LinkDiscoverer) Discover(html string, currentURL string) ([]string, error) {
	return d.DiscoverFn(html, currentURL)
}
