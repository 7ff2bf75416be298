package siteask

import "context"

// Scraper collects documents from a source. The web crawler and the
// local file ingester both satisfy this interface, so commands can treat
// a project's source uniformly regardless of its kind.
type Scraper interface {
	Scrape(ctx context.Context) ([]*Document, error)
}
