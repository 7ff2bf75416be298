package siteask

import (
	"net/url"
	"strings"
)

// ScopeMode controls which discovered links belong to a crawl.
type ScopeMode int

// Scope modes for link discovery.
const (
	// ScopePath restricts the crawl to URLs on the seed's host whose path
	// starts with the seed's path. This is the default.
	ScopePath ScopeMode = iota

	// ScopeDomain restricts the crawl to URLs on the seed's host,
	// regardless of path.
	ScopeDomain
)

// NormalizeURL canonicalizes a URL for deduplication. The fragment is
// always dropped; two URLs differing only in fragment address the same
// resource. When stripQuery is true the query string is dropped too,
// which collapses tracking-parameter variants of the same page.
// Returns EINVALID if the URL cannot be parsed or is not absolute
// http(s).
func NormalizeURL(raw string, stripQuery bool) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", Errorf(EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "URL %q has no host", raw)
	}

	u.Fragment = ""
	if stripQuery {
		u.RawQuery = ""
	}
	return u.String(), nil
}

// InScope reports whether candidate belongs to the crawl rooted at base.
// In ScopePath mode the candidate must share base's host and its path
// must extend base's path; in ScopeDomain mode host equality suffices.
// Scheme differences (http vs https) do not affect scoping.
func InScope(candidate, base *url.URL, mode ScopeMode) bool {
	if candidate.Host != base.Host {
		return false
	}
	if mode == ScopeDomain {
		return true
	}
	return strings.HasPrefix(candidate.Path, basePath(base))
}

// basePath returns the directory portion of the base URL's path, so a
// seed like /docs/intro.html scopes to /docs/ rather than to the file
// itself.
func basePath(base *url.URL) string {
	p := base.Path
	if p == "" {
		return ""
	}
	if strings.HasSuffix(p, "/") {
		return p
	}
	if i := strings.LastIndex(p, "/"); i >= 0 && strings.Contains(p[i:], ".") {
		return p[:i+1]
	}
	return p
}
