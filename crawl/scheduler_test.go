package crawl_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"siteask"
	"siteask/crawl"
	"siteask/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSite records fetches against a canned set of pages. Each page has
// body text and outgoing links.
type fakeSite struct {
	mu      sync.Mutex
	fetched []string
	pages   map[string]fakePage
}

type fakePage struct {
	text  string
	links []string
}

func (s *fakeSite) fetchCount(url string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, u := range s.fetched {
		if u == url {
			n++
		}
	}
	return n
}

func (s *fakeSite) totalFetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fetched)
}

func (s *fakeSite) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			s.mu.Lock()
			s.fetched = append(s.fetched, url)
			s.mu.Unlock()
			if _, ok := s.pages[url]; !ok {
				return "", siteask.Errorf(siteask.ENOTFOUND, "no such page %q", url)
			}
			// The URL doubles as the HTML payload so the extractor and
			// discoverer stubs can look the page back up.
			return url, nil
		},
	}
}

func (s *fakeSite) scheduler(cfg crawl.Config) *crawl.Scheduler {
	cfg.RetryDelays = []time.Duration{} // single attempt
	return &crawl.Scheduler{
		Fetcher: s.fetcher(),
		Extractor: &mock.Extractor{
			ExtractFn: func(html string) *siteask.ExtractResult {
				page := s.pages[html]
				return &siteask.ExtractResult{
					Title:       "Title of " + html,
					Text:        page.text,
					ContentHTML: "<p>" + page.text + "</p>",
				}
			},
		},
		Links: &mock.LinkDiscoverer{
			DiscoverFn: func(html, _ string) ([]string, error) {
				return s.pages[html].links, nil
			},
		},
		Robots:  &mock.RobotsGate{},
		Limiter: &mock.DomainLimiter{},
		Config:  cfg,
	}
}

// longText is comfortably above the default minimum document length.
var longText = strings.Repeat("useful words about the product ", 10)

func TestScheduler_Crawl_collects_seed_and_children(t *testing.T) {
	t.Parallel()

	site := &fakeSite{pages: map[string]fakePage{
		"https://example.com/docs/": {
			text:  longText,
			links: []string{"https://example.com/docs/a", "https://example.com/docs/b"},
		},
		"https://example.com/docs/a": {text: longText},
		"https://example.com/docs/b": {text: longText},
	}}

	docs, err := site.scheduler(crawl.Config{}).Crawl(context.Background(), "https://example.com/docs/")
	require.NoError(t, err)

	require.Len(t, docs, 3)
	urls := make([]string, len(docs))
	for i, d := range docs {
		urls[i] = d.SourceURL
		assert.NotEmpty(t, d.Title)
		assert.NotEmpty(t, d.TextHash)
		assert.Equal(t, i, d.Position)
	}
	assert.ElementsMatch(t, []string{
		"https://example.com/docs/",
		"https://example.com/docs/a",
		"https://example.com/docs/b",
	}, urls)
}

func TestScheduler_Crawl_respects_link_budget(t *testing.T) {
	t.Parallel()

	site := &fakeSite{pages: map[string]fakePage{
		"https://example.com/": {
			text: longText,
			links: []string{
				"https://example.com/a",
				"https://example.com/b",
				"https://example.com/c",
				"https://example.com/d",
			},
		},
		"https://example.com/a": {text: longText},
		"https://example.com/b": {text: longText},
		"https://example.com/c": {text: longText},
		"https://example.com/d": {text: longText},
	}}

	docs, err := site.scheduler(crawl.Config{MaxLinks: 3}).Crawl(context.Background(), "https://example.com/")
	require.NoError(t, err)

	assert.Equal(t, 3, site.totalFetches(), "budget bounds fetches, seed included")
	assert.Len(t, docs, 3)
}

func TestScheduler_Crawl_respects_depth_limit(t *testing.T) {
	t.Parallel()

	site := &fakeSite{pages: map[string]fakePage{
		"https://example.com/": {
			text:  longText,
			links: []string{"https://example.com/child"},
		},
		"https://example.com/child": {
			text:  longText,
			links: []string{"https://example.com/grandchild"},
		},
		"https://example.com/grandchild": {text: longText},
	}}

	docs, err := site.scheduler(crawl.Config{MaxLinks: 10, MaxDepth: 1}).Crawl(context.Background(), "https://example.com/")
	require.NoError(t, err)

	assert.Len(t, docs, 2)
	assert.Zero(t, site.fetchCount("https://example.com/grandchild"), "depth 2 should not be fetched")
}

func TestScheduler_Crawl_never_fetches_a_URL_twice(t *testing.T) {
	t.Parallel()

	// Every page links back to every other page.
	site := &fakeSite{pages: map[string]fakePage{
		"https://example.com/": {
			text:  longText,
			links: []string{"https://example.com/a", "https://example.com/"},
		},
		"https://example.com/a": {
			text:  longText,
			links: []string{"https://example.com/", "https://example.com/a"},
		},
	}}

	_, err := site.scheduler(crawl.Config{MaxLinks: 10, MaxDepth: 5}).Crawl(context.Background(), "https://example.com/")
	require.NoError(t, err)

	assert.Equal(t, 1, site.fetchCount("https://example.com/"))
	assert.Equal(t, 1, site.fetchCount("https://example.com/a"))
}

func TestScheduler_Crawl_invalid_seed(t *testing.T) {
	t.Parallel()

	site := &fakeSite{pages: map[string]fakePage{}}

	_, err := site.scheduler(crawl.Config{}).Crawl(context.Background(), "not a url")
	assert.Equal(t, siteask.EINVALID, siteask.ErrorCode(err))
	assert.Zero(t, site.totalFetches(), "invalid seed should fail before any fetch")
}

func TestScheduler_Crawl_unreadable_robots_abandons_crawl(t *testing.T) {
	t.Parallel()

	site := &fakeSite{pages: map[string]fakePage{
		"https://example.com/": {text: longText},
	}}

	sched := site.scheduler(crawl.Config{})
	sched.Robots = &mock.RobotsGate{
		FetchFn: func(context.Context, string) error {
			return siteask.Errorf(siteask.EUNAVAILABLE, "robots.txt returned 500")
		},
	}

	docs, err := sched.Crawl(context.Background(), "https://example.com/")
	require.NoError(t, err, "unreadable robots.txt is not an error")
	assert.Empty(t, docs)
	assert.Zero(t, site.totalFetches(), "no page may be fetched without a robots verdict")
}

func TestScheduler_Crawl_robots_disallowed_pages_are_skipped(t *testing.T) {
	t.Parallel()

	site := &fakeSite{pages: map[string]fakePage{
		"https://example.com/": {
			text:  longText,
			links: []string{"https://example.com/private/secret", "https://example.com/public"},
		},
		"https://example.com/private/secret": {text: longText},
		"https://example.com/public":         {text: longText},
	}}

	sched := site.scheduler(crawl.Config{MaxLinks: 10})
	sched.Robots = &mock.RobotsGate{
		AllowedFn: func(path, _ string) bool {
			return !strings.HasPrefix(path, "/private/")
		},
	}

	docs, err := sched.Crawl(context.Background(), "https://example.com/")
	require.NoError(t, err)

	assert.Len(t, docs, 2)
	assert.Zero(t, site.fetchCount("https://example.com/private/secret"))
}

func TestScheduler_Crawl_disallowed_seed_yields_empty_result(t *testing.T) {
	t.Parallel()

	site := &fakeSite{pages: map[string]fakePage{
		"https://example.com/": {text: longText},
	}}

	sched := site.scheduler(crawl.Config{})
	sched.Robots = &mock.RobotsGate{
		AllowedFn: func(string, string) bool { return false },
	}

	docs, err := sched.Crawl(context.Background(), "https://example.com/")
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.Zero(t, site.totalFetches())
}

func TestScheduler_Crawl_discards_short_pages_but_follows_their_links(t *testing.T) {
	t.Parallel()

	site := &fakeSite{pages: map[string]fakePage{
		"https://example.com/": {
			text:  "hub", // below minimum length
			links: []string{"https://example.com/content"},
		},
		"https://example.com/content": {text: longText},
	}}

	docs, err := site.scheduler(crawl.Config{}).Crawl(context.Background(), "https://example.com/")
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, "https://example.com/content", docs[0].SourceURL)
}

func TestScheduler_Crawl_failed_pages_do_not_abort_crawl(t *testing.T) {
	t.Parallel()

	site := &fakeSite{pages: map[string]fakePage{
		"https://example.com/": {
			text:  longText,
			links: []string{"https://example.com/missing", "https://example.com/ok"},
		},
		// /missing is absent: the fetcher errors on it.
		"https://example.com/ok": {text: longText},
	}}

	docs, err := site.scheduler(crawl.Config{MaxLinks: 10}).Crawl(context.Background(), "https://example.com/")
	require.NoError(t, err)

	assert.Len(t, docs, 2)
}

func TestScheduler_Crawl_applies_URL_filter(t *testing.T) {
	t.Parallel()

	site := &fakeSite{pages: map[string]fakePage{
		"https://example.com/docs/": {
			text:  longText,
			links: []string{"https://example.com/docs/guide", "https://example.com/docs/changelog"},
		},
		"https://example.com/docs/guide":     {text: longText},
		"https://example.com/docs/changelog": {text: longText},
	}}

	filter, err := crawl.ParseFilter("/guide")
	require.NoError(t, err)

	sched := site.scheduler(crawl.Config{MaxLinks: 10})
	sched.Filter = filter

	docs, err := sched.Crawl(context.Background(), "https://example.com/docs/")
	require.NoError(t, err)

	assert.Len(t, docs, 2, "seed and matching link")
	assert.Zero(t, site.fetchCount("https://example.com/docs/changelog"))
}

func TestScheduler_Crawl_converts_content_to_markdown(t *testing.T) {
	t.Parallel()

	site := &fakeSite{pages: map[string]fakePage{
		"https://example.com/": {text: longText},
	}}

	sched := site.scheduler(crawl.Config{})
	sched.Converter = &mock.Converter{
		ConvertFn: func(html string) (string, error) {
			return "converted: " + html, nil
		},
	}

	docs, err := sched.Crawl(context.Background(), "https://example.com/")
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.True(t, strings.HasPrefix(docs[0].Markdown, "converted: "))
}

func TestScheduler_Crawl_seeds_from_sitemap(t *testing.T) {
	t.Parallel()

	site := &fakeSite{pages: map[string]fakePage{
		"https://example.com/docs/":       {text: longText},
		"https://example.com/docs/hidden": {text: longText},
	}}

	sched := site.scheduler(crawl.Config{MaxLinks: 10})
	sched.Sitemaps = &mock.SitemapService{
		DiscoverURLsFn: func(context.Context, string, *siteask.URLFilter) ([]string, error) {
			return []string{
				"https://example.com/docs/hidden",
				"https://example.com/blog/off-scope",
				"https://other.com/docs/elsewhere",
			}, nil
		},
	}

	docs, err := sched.Crawl(context.Background(), "https://example.com/docs/")
	require.NoError(t, err)

	assert.Len(t, docs, 2)
	assert.Equal(t, 1, site.fetchCount("https://example.com/docs/hidden"))
	assert.Zero(t, site.fetchCount("https://example.com/blog/off-scope"), "sitemap URL outside path scope")
	assert.Zero(t, site.fetchCount("https://other.com/docs/elsewhere"), "sitemap URL on other host")
}

func TestScheduler_Crawl_waits_on_limiter_per_fetch(t *testing.T) {
	t.Parallel()

	site := &fakeSite{pages: map[string]fakePage{
		"https://example.com/": {
			text:  longText,
			links: []string{"https://example.com/a"},
		},
		"https://example.com/a": {text: longText},
	}}

	var mu sync.Mutex
	var waits []string
	sched := site.scheduler(crawl.Config{MaxLinks: 10})
	sched.Limiter = &mock.DomainLimiter{
		WaitFn: func(_ context.Context, domain string) error {
			mu.Lock()
			waits = append(waits, domain)
			mu.Unlock()
			return nil
		},
	}

	_, err := sched.Crawl(context.Background(), "https://example.com/")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"example.com", "example.com"}, waits)
}

func TestScheduler_CrawlProject_persists_documents(t *testing.T) {
	t.Parallel()

	site := &fakeSite{pages: map[string]fakePage{
		"https://example.com/docs/": {
			text:  longText,
			links: []string{"https://example.com/docs/a"},
		},
		"https://example.com/docs/a": {text: longText},
	}}

	var mu sync.Mutex
	var saved []*siteask.Document
	sched := site.scheduler(crawl.Config{MaxLinks: 10})
	sched.Documents = &mock.DocumentService{
		CreateDocumentFn: func(_ context.Context, doc *siteask.Document) error {
			mu.Lock()
			saved = append(saved, doc)
			mu.Unlock()
			return nil
		},
	}
	sched.TokenCounter = &mock.TokenCounter{
		CountTokensFn: func(_ context.Context, text string) (int, error) {
			return len(text) / 4, nil
		},
	}

	project := &siteask.Project{ID: "proj1", SourceURL: "https://example.com/docs/", Kind: siteask.KindURL}

	var events []crawl.ProgressEvent
	result, err := sched.CrawlProject(context.Background(), project, func(e crawl.ProgressEvent) {
		events = append(events, e)
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Saved)
	assert.Zero(t, result.Failed)
	assert.Positive(t, result.Bytes)
	assert.Positive(t, result.Tokens)

	require.Len(t, saved, 2)
	for _, doc := range saved {
		assert.Equal(t, "proj1", doc.ProjectID)
	}

	require.NotEmpty(t, events)
	assert.Equal(t, crawl.ProgressStarted, events[0].Type)
	assert.Equal(t, crawl.ProgressFinished, events[len(events)-1].Type)
}

func TestScheduler_CrawlProject_invalid_filter(t *testing.T) {
	t.Parallel()

	site := &fakeSite{pages: map[string]fakePage{}}
	sched := site.scheduler(crawl.Config{})

	project := &siteask.Project{ID: "proj1", SourceURL: "https://example.com/", Filter: "(["}
	_, err := sched.CrawlProject(context.Background(), project, nil)
	assert.Equal(t, siteask.EINVALID, siteask.ErrorCode(err))
}

func TestScheduler_Crawl_concurrent_workers(t *testing.T) {
	t.Parallel()

	pages := map[string]fakePage{}
	links := []string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		url := "https://example.com/" + name
		pages[url] = fakePage{text: longText}
		links = append(links, url)
	}
	pages["https://example.com/"] = fakePage{text: longText, links: links}
	site := &fakeSite{pages: pages}

	docs, err := site.scheduler(crawl.Config{MaxLinks: 10, Concurrency: 4}).Crawl(context.Background(), "https://example.com/")
	require.NoError(t, err)

	assert.Len(t, docs, 7)
	assert.Equal(t, 7, site.totalFetches())
}
