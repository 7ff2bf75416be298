// Package crawl provides bounded website crawling orchestration.
// It coordinates robots.txt policy, rate limiting, fetching, link
// discovery, and content extraction into a breadth-first crawl that
// stops after a configured number of pages.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"siteask"

	"golang.org/x/sync/errgroup"
)

// Frontier configuration.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
)

// Default crawl bounds. A crawl with zero configuration visits at most
// ten pages, one hop from the seed, at ten requests per minute.
const (
	DefaultMaxLinks          = 10
	DefaultMaxDepth          = 1
	DefaultPageLoadTimeout   = 10 * time.Second
	DefaultMinDocumentLength = 100
	DefaultUserAgent         = "siteask"
)

// Config bounds a crawl.
type Config struct {
	// MaxLinks is the maximum number of pages fetched, seed included.
	MaxLinks int

	// MaxDepth is the maximum link distance from the seed. Depth 0 is
	// the seed itself.
	MaxDepth int

	// PageLoadTimeout bounds each individual fetch attempt.
	PageLoadTimeout time.Duration

	// MinDocumentLength is the minimum extracted text length for a page
	// to be kept as a document. Shorter pages still have their links
	// followed.
	MinDocumentLength int

	// UserAgent is the token matched against robots.txt groups.
	UserAgent string

	// Concurrency is the number of fetch workers. The per-domain rate
	// limit still serializes requests to a single host.
	Concurrency int

	// RetryDelays overrides the backoff schedule for failed fetches.
	// nil means DefaultRetryDelays; an empty slice disables retries.
	RetryDelays []time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxLinks <= 0 {
		c.MaxLinks = DefaultMaxLinks
	}
	if c.MaxDepth < 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.PageLoadTimeout <= 0 {
		c.PageLoadTimeout = DefaultPageLoadTimeout
	}
	if c.MinDocumentLength <= 0 {
		c.MinDocumentLength = DefaultMinDocumentLength
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 1
	}
	return c
}

// Scheduler orchestrates a bounded crawl of a single site.
type Scheduler struct {
	Fetcher   siteask.Fetcher
	Extractor siteask.Extractor
	Links     siteask.LinkDiscoverer
	Robots    siteask.RobotsGate
	Limiter   siteask.DomainLimiter

	// Optional collaborators.
	Sitemaps     siteask.SitemapService
	Converter    siteask.Converter
	Documents    siteask.DocumentService
	TokenCounter siteask.TokenCounter
	Filter       *siteask.URLFilter
	Logger       *slog.Logger

	// Seed is the crawl starting point used by Scrape.
	Seed string

	Config Config
}

// Compile-time interface verification.
var _ siteask.Scraper = (*Scheduler)(nil)

// Result holds the outcome of a crawl-and-persist operation.
type Result struct {
	Saved  int
	Failed int
	Bytes  int
	Tokens int
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single target.
type pageResult struct {
	target      siteask.Target
	title       string
	text        string
	contentHTML string
	links       []string
	err         error
}

// Scrape crawls from the configured Seed. It satisfies siteask.Scraper
// so commands can treat a site crawl and a file ingestion uniformly.
func (s *Scheduler) Scrape(ctx context.Context) ([]*siteask.Document, error) {
	return s.Crawl(ctx, s.Seed)
}

// Crawl performs a bounded breadth-first crawl starting at seed and
// returns the documents collected, in completion order.
//
// The robots.txt policy is strict: if the file exists but cannot be
// read, the crawl is abandoned and an empty slice is returned. A seed
// that robots.txt disallows likewise yields an empty result. Neither is
// an error; only invalid input is.
func (s *Scheduler) Crawl(ctx context.Context, seed string) ([]*siteask.Document, error) {
	return s.crawl(ctx, seed, s.Filter, nil)
}

func (s *Scheduler) crawl(ctx context.Context, seed string, filter *siteask.URLFilter, progress ProgressFunc) ([]*siteask.Document, error) {
	cfg := s.Config.withDefaults()
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	normalized, err := siteask.NormalizeURL(seed, false)
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(normalized)
	if err != nil {
		return nil, siteask.Errorf(siteask.EINVALID, "invalid seed URL %q", seed)
	}

	if s.Robots != nil {
		if err := s.Robots.Fetch(ctx, normalized); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("robots.txt unavailable, abandoning crawl", "url", normalized, "error", err)
			return []*siteask.Document{}, nil
		}
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(siteask.Target{URL: normalized, Depth: 0})
	s.seedFromSitemap(ctx, frontier, base, normalized, filter, cfg, logger)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: cfg.MaxLinks})
	}

	workCh := make(chan siteask.Target, cfg.Concurrency)
	resultCh := make(chan pageResult)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.Concurrency; i++ {
		g.Go(func() error {
			for target := range workCh {
				result := s.processTarget(gctx, target, cfg)
				select {
				case resultCh <- result:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(resultCh)
	}()

	var docs []*siteask.Document
	dispatched := 0
	pending := 0
	completed := 0

	nextTarget := func() (siteask.Target, bool) {
		for {
			target, ok := frontier.Pop()
			if !ok {
				return siteask.Target{}, false
			}
			if target.Depth > cfg.MaxDepth {
				continue
			}
			if s.Robots != nil && !s.Robots.Allowed(pathOf(target.URL), cfg.UserAgent) {
				logger.Debug("robots.txt disallows", "url", target.URL)
				continue
			}
			return target, true
		}
	}

	handle := func(res pageResult) {
		completed++

		// Queue discovered links even when the page itself is too short
		// to keep; short hub pages still lead somewhere.
		if res.err == nil && res.target.Depth < cfg.MaxDepth {
			for _, link := range res.links {
				if !filter.Match(link) {
					continue
				}
				frontier.Push(siteask.Target{URL: link, Depth: res.target.Depth + 1})
			}
		}

		if res.err != nil {
			logger.Warn("page failed", "url", res.target.URL, "error", res.err)
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: completed,
					Total:     cfg.MaxLinks,
					URL:       res.target.URL,
					Error:     res.err,
				})
			}
			return
		}

		if len(res.text) < cfg.MinDocumentLength {
			logger.Debug("page below minimum length, skipping",
				"url", res.target.URL, "length", len(res.text))
			return
		}

		doc := &siteask.Document{
			SourceURL: res.target.URL,
			Title:     res.title,
			Text:      res.text,
			TextHash:  ComputeHash(res.text),
			Position:  len(docs),
			FetchedAt: time.Now().UTC(),
		}
		if s.Converter != nil && res.contentHTML != "" {
			if md, err := s.Converter.Convert(res.contentHTML); err == nil {
				doc.Markdown = md
			}
		}
		docs = append(docs, doc)

		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: completed,
				Total:     cfg.MaxLinks,
				URL:       res.target.URL,
			})
		}
	}

	var next *siteask.Target
	if target, ok := nextTarget(); ok {
		next = &target
	}

coordinatorLoop:
	for {
		if next == nil && pending == 0 {
			break coordinatorLoop
		}
		if ctx.Err() != nil {
			break coordinatorLoop
		}

		if next != nil && dispatched < cfg.MaxLinks {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case workCh <- *next:
				dispatched++
				pending++
				next = nil
			case res := <-resultCh:
				pending--
				handle(res)
			}
		} else if pending > 0 {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case res, ok := <-resultCh:
				if !ok {
					break coordinatorLoop
				}
				pending--
				handle(res)
			}
		} else {
			// Budget exhausted with nothing in flight.
			break coordinatorLoop
		}

		if next == nil && dispatched < cfg.MaxLinks {
			if target, ok := nextTarget(); ok {
				next = &target
			}
		}
	}

	close(workCh)
	for res := range resultCh {
		pending--
		handle(res)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: cfg.MaxLinks})
	}

	if ctx.Err() != nil {
		return docs, ctx.Err()
	}
	return docs, nil
}

// seedFromSitemap adds in-scope sitemap URLs to the frontier at depth 1.
// Sitemap failures are logged and ignored; recursive discovery covers
// for them.
func (s *Scheduler) seedFromSitemap(ctx context.Context, frontier *Frontier, base *url.URL, seed string, filter *siteask.URLFilter, cfg Config, logger *slog.Logger) {
	if s.Sitemaps == nil {
		return
	}
	urls, err := s.Sitemaps.DiscoverURLs(ctx, seed, filter)
	if err != nil {
		logger.Debug("sitemap discovery failed", "url", seed, "error", err)
		return
	}
	for _, u := range urls {
		parsed, err := url.Parse(u)
		if err != nil {
			continue
		}
		if !siteask.InScope(parsed, base, siteask.ScopePath) {
			continue
		}
		frontier.Push(siteask.Target{URL: u, Depth: 1})
	}
}

// processTarget fetches one page and extracts its links and content.
// The rate limiter is consulted inside the fetch function so every
// retry attempt waits its turn.
func (s *Scheduler) processTarget(ctx context.Context, target siteask.Target, cfg Config) pageResult {
	result := pageResult{target: target}

	targetURL, err := url.Parse(target.URL)
	if err != nil {
		result.err = err
		return result
	}

	delays := cfg.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	fetchFn := func(ctx context.Context, u string) (string, error) {
		if s.Limiter != nil {
			if err := s.Limiter.Wait(ctx, targetURL.Host); err != nil {
				return "", err
			}
		}
		fetchCtx, cancel := context.WithTimeout(ctx, cfg.PageLoadTimeout)
		defer cancel()
		return s.Fetcher.Fetch(fetchCtx, u)
	}

	html, err := FetchWithRetryDelays(ctx, target.URL, fetchFn, nil, delays)
	if err != nil {
		result.err = err
		return result
	}

	if s.Links != nil {
		if links, err := s.Links.Discover(html, target.URL); err == nil {
			result.links = links
		}
	}

	extracted := s.Extractor.Extract(html)
	result.title = extracted.Title
	result.text = extracted.Text
	result.contentHTML = extracted.ContentHTML

	return result
}

// CrawlProject crawls a project's source and saves the collected pages
// as documents. The progress callback, if provided, receives events as
// crawling proceeds.
func (s *Scheduler) CrawlProject(ctx context.Context, project *siteask.Project, progress ProgressFunc) (*Result, error) {
	urlFilter, err := ParseFilter(project.Filter)
	if err != nil {
		return nil, err
	}

	var result Result
	docs, err := s.crawl(ctx, project.SourceURL, urlFilter, progress)
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		doc.ProjectID = project.ID
		if err := s.Documents.CreateDocument(ctx, doc); err != nil {
			result.Failed++
			continue
		}
		result.Saved++
		result.Bytes += len(doc.Text)
		if s.TokenCounter != nil {
			if tokens, err := s.TokenCounter.CountTokens(ctx, doc.Text); err == nil {
				result.Tokens += tokens
			}
		}
	}

	return &result, nil
}

// ParseFilter compiles newline-separated include patterns into a
// URLFilter. Returns nil for empty input and EINVALID for patterns that
// do not compile.
func ParseFilter(patterns string) (*siteask.URLFilter, error) {
	if strings.TrimSpace(patterns) == "" {
		return nil, nil
	}
	filter := &siteask.URLFilter{}
	for _, pattern := range strings.Split(patterns, "\n") {
		if pattern == "" {
			continue
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, siteask.Errorf(siteask.EINVALID, "invalid filter pattern %q: %s", pattern, err)
		}
		filter.Include = append(filter.Include, re)
	}
	return filter, nil
}

func pathOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if u.Path == "" {
		return "/"
	}
	return u.Path
}
