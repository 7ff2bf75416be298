package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"

	"siteask"
)

// Ensure SitemapService implements siteask.SitemapService.
var _ siteask.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from website sitemaps via HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs finds all URLs from a site's sitemap.
// Returns an empty slice (not nil) if no sitemaps are found.
//
// When baseURL has a non-root path (e.g., https://example.com/docs/),
// only URLs with paths under that prefix are returned.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *siteask.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, siteask.Errorf(siteask.EINVALID, "invalid base URL %q", baseURL)
	}
	pathPrefix := base.Path
	if pathPrefix == "/" {
		pathPrefix = ""
	}

	// Sitemaps live at the domain root regardless of the seed path.
	root := *base
	root.Path = ""

	sitemapURLs, err := s.findSitemapURLs(ctx, &root)
	if err != nil {
		return nil, err
	}
	if len(sitemapURLs) == 0 {
		return []string{}, nil
	}

	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	var all []string
	for _, sitemapURL := range sitemapURLs {
		urls, err := s.readSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range urls {
			if seenURLs[u] {
				continue
			}
			seenURLs[u] = true
			if pathPrefix != "" && !underPathPrefix(u, pathPrefix) {
				continue
			}
			if !filter.Match(u) {
				continue
			}
			all = append(all, u)
		}
	}
	if all == nil {
		all = []string{}
	}
	return all, nil
}

// underPathPrefix checks if a URL's path starts with prefix at a path
// boundary: /docs matches /docs/intro but not /documentation.
func underPathPrefix(rawURL, prefix string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(parsed.Path, prefix) || parsed.Path+"/" == prefix
}

// findSitemapURLs discovers sitemap URLs from robots.txt Sitemap
// directives, falling back to /sitemap.xml when none are declared.
func (s *SitemapService) findSitemapURLs(ctx context.Context, root *url.URL) ([]string, error) {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"})
	sitemaps, err := s.sitemapsFromRobots(ctx, robotsURL.String())
	if err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"})
	exists, err := s.urlExists(ctx, fallback.String())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if exists {
		return []string{fallback.String()}, nil
	}
	return nil, nil
}

// sitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (s *SitemapService) sitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			continue
		}
		if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
			sitemaps = append(sitemaps, u)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return sitemaps, nil
}

// readSitemap fetches and parses one sitemap, recursing into sitemap
// indexes. The seen map guards against index cycles.
func (s *SitemapService) readSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}

	if root.Tag == "sitemapindex" {
		var all []string
		for _, child := range locTexts(root, "sitemap") {
			urls, err := s.readSitemap(ctx, child, seen)
			if err != nil {
				return nil, err
			}
			all = append(all, urls...)
		}
		return all, nil
	}

	return locTexts(root, "url"), nil
}

// locTexts collects the <loc> values of the named child elements.
func locTexts(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func (s *SitemapService) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}

func (s *SitemapService) urlExists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
