package mock

import (
	"context"

	"siteask"
)

var _ siteask.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of siteask.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context) ([]*siteask.Document, error)
}

func (s *Scraper) Scrape(ctx context.Context) ([]*siteask.Document, error) {
	return s.ScrapeFn(ctx)
}
