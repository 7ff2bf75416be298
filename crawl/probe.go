package crawl

import (
	"context"

	"siteask"
)

// ContentDiffers compares content extracted from HTTP-fetched HTML vs
// browser-fetched HTML. Returns true if the browser content is
// significantly longer (>50%), suggesting JavaScript rendering adds
// meaningful content.
func ContentDiffers(httpHTML, browserHTML string, extractor siteask.Extractor) bool {
	httpLen := len(extractor.Extract(httpHTML).Text)
	browserLen := len(extractor.Extract(browserHTML).Text)

	if httpLen == 0 {
		return browserLen > 0
	}

	threshold := float64(httpLen) * 1.5
	return float64(browserLen) > threshold
}

// NeedsBrowser probes the seed URL with both fetchers and reports
// whether the site needs a real browser to render its content. A plain
// HTTP failure counts as needing a browser; sites that block non-browser
// clients look the same as JavaScript-only sites from here.
func NeedsBrowser(ctx context.Context, seed string, httpFetcher, browserFetcher siteask.Fetcher, extractor siteask.Extractor) (bool, error) {
	httpHTML, err := httpFetcher.Fetch(ctx, seed)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return true, nil
	}

	browserHTML, err := browserFetcher.Fetch(ctx, seed)
	if err != nil {
		// The browser failing while plain HTTP works means the plain
		// content is the best available.
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, nil
	}

	return ContentDiffers(httpHTML, browserHTML, extractor), nil
}
