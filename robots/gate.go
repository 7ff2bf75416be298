// Package robots fetches and enforces robots.txt crawl policies.
package robots

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"siteask"
)

// DefaultFetchTimeout bounds the robots.txt request.
const DefaultFetchTimeout = 10 * time.Second

// maxRobotsSize caps how much of robots.txt is read.
const maxRobotsSize = 1 << 20

// Ensure Gate implements siteask.RobotsGate at compile time.
var _ siteask.RobotsGate = (*Gate)(nil)

// Gate retrieves a site's robots.txt over HTTP and answers per-path
// questions about it. A Gate is loaded once per crawl via Fetch and is
// then safe for concurrent Allowed calls.
type Gate struct {
	client *http.Client

	mu    sync.RWMutex
	rules siteask.RuleSet
}

// Option configures a Gate.
type Option func(*Gate)

// WithClient sets the HTTP client used to retrieve robots.txt.
func WithClient(client *http.Client) Option {
	return func(g *Gate) {
		g.client = client
	}
}

// NewGate creates a Gate. Without options it uses a client with
// DefaultFetchTimeout.
func NewGate(opts ...Option) *Gate {
	g := &Gate{}
	for _, opt := range opts {
		opt(g)
	}
	if g.client == nil {
		g.client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	return g
}

// Fetch retrieves and parses robots.txt for the site hosting baseURL.
//
// A 404 means the site publishes no policy and everything is allowed.
// Any other failure, transport errors included, returns EUNAVAILABLE:
// a policy might exist that we cannot read, so the caller must not
// crawl on the strength of a guess.
func (g *Gate) Fetch(ctx context.Context, baseURL string) error {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return siteask.Errorf(siteask.EINVALID, "invalid base URL %q", baseURL)
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", base.Scheme, base.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return siteask.Errorf(siteask.EINVALID, "building robots.txt request: %s", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return siteask.Errorf(siteask.EUNAVAILABLE, "fetching %s: %s", robotsURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		g.setRules(nil)
		return nil
	case resp.StatusCode != http.StatusOK:
		return siteask.Errorf(siteask.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, robotsURL)
	}

	rules, err := ParseRules(io.LimitReader(resp.Body, maxRobotsSize))
	if err != nil {
		return siteask.Errorf(siteask.EUNAVAILABLE, "reading %s: %s", robotsURL, err)
	}
	g.setRules(rules)
	return nil
}

// Allowed reports whether the user agent may fetch path under the rules
// loaded by the last Fetch. Before any Fetch everything is allowed.
func (g *Gate) Allowed(path string, userAgent string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rules.Allowed(path, userAgent)
}

func (g *Gate) setRules(rules siteask.RuleSet) {
	g.mu.Lock()
	g.rules = rules
	g.mu.Unlock()
}

// ParseRules parses robots.txt into a RuleSet. Consecutive User-agent
// lines share the Disallow lines that follow them. Directives the
// crawler does not act on (Allow, Crawl-delay, Sitemap) are skipped.
func ParseRules(r io.Reader) (siteask.RuleSet, error) {
	rules := make(siteask.RuleSet)

	var agents []string
	inGroup := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx != -1 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		field, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		field = strings.ToLower(strings.TrimSpace(field))
		value = strings.TrimSpace(value)

		switch field {
		case "user-agent":
			if value == "" {
				continue
			}
			if inGroup {
				// A User-agent after Disallow lines starts a new group.
				agents = agents[:0]
				inGroup = false
			}
			agents = append(agents, value)
			for _, agent := range agents {
				if _, ok := rules[agent]; !ok {
					rules[agent] = nil
				}
			}
		case "disallow":
			inGroup = true
			if value == "" {
				continue
			}
			for _, agent := range agents {
				rules[agent] = append(rules[agent], value)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return rules, nil
}
