package siteask

import "context"

// RuleSet maps a user agent token to the path prefixes it is disallowed
// from fetching. The "*" key holds the wildcard group.
type RuleSet map[string][]string

// Allowed reports whether the user agent may fetch path. The most
// specific matching group wins: an exact user agent entry takes
// precedence over the "*" group. A path is disallowed if it starts with
// any disallow prefix in the selected group. A nil RuleSet allows
// everything.
func (r RuleSet) Allowed(path string, userAgent string) bool {
	if r == nil {
		return true
	}

	prefixes, ok := r[userAgent]
	if !ok {
		prefixes = r["*"]
	}
	for _, prefix := range prefixes {
		if len(prefix) > 0 && len(path) >= len(prefix) && path[:len(prefix)] == prefix {
			return false
		}
	}
	return true
}

// RobotsGate enforces a site's robots.txt policy for a crawl.
//
// The policy is strict: if robots.txt exists but cannot be retrieved or
// read, Fetch returns an error and the crawl must not proceed. A missing
// robots.txt (404) is not an error and permits everything.
type RobotsGate interface {
	// Fetch retrieves and parses robots.txt for the site hosting baseURL.
	// Returns EUNAVAILABLE if the file exists but cannot be read.
	Fetch(ctx context.Context, baseURL string) error

	// Allowed reports whether the user agent may fetch path according to
	// the rules loaded by Fetch. Before a successful Fetch everything is
	// allowed.
	Allowed(path string, userAgent string) bool
}
