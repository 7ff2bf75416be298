package siteask

// ExtractResult holds the readable content pulled out of an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// Text is the main content as plain text with boilerplate
	// (nav, footer, sidebar, ads) removed.
	Text string

	// ContentHTML is the main content as clean HTML, kept so callers
	// can render Markdown from it.
	ContentHTML string
}

// Extractor extracts readable content from HTML pages.
//
// Extract never fails: pages the extractor cannot make sense of yield a
// zero-valued result, which the caller discards by length checks. This
// keeps one malformed page from aborting a whole crawl.
type Extractor interface {
	Extract(html string) *ExtractResult
}
