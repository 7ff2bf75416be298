package mock

import "siteask"

var _ siteask.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of siteask.Extractor.
type Extractor struct {
	ExtractFn func(html string) *siteask.ExtractResult
}

func (e *Extractor) Extract(html string) *siteask.ExtractResult {
	return e.ExtractFn(html)
}
