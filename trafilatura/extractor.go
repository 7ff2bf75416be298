// Package trafilatura extracts readable content from HTML using a
// two-stage pipeline: go-readability first simplifies the page, then
// go-trafilatura pulls the main text out of the simplified markup.
// Running readability first strips aggressive chrome (cookie banners,
// nav overlays) that trafilatura alone sometimes keeps.
package trafilatura

import (
	"bytes"
	"log/slog"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	"siteask"
)

// Ensure Extractor implements siteask.Extractor at compile time.
var _ siteask.Extractor = (*Extractor)(nil)

// Extractor extracts the readable content of an HTML page.
//
// Extract never fails: any page the pipeline cannot make sense of
// yields a zero-valued result. Callers discard empty and too-short
// results, so one unparseable page cannot abort a crawl.
type Extractor struct {
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used to report extraction failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e
}

// Extract processes raw HTML and returns the main content as plain text
// plus clean HTML. The title comes from readability metadata when
// available, falling back to trafilatura's.
func (e *Extractor) Extract(rawHTML string) *siteask.ExtractResult {
	if strings.TrimSpace(rawHTML) == "" {
		return &siteask.ExtractResult{}
	}

	source := rawHTML
	var title string
	if article, err := readability.FromReader(strings.NewReader(rawHTML), nil); err == nil {
		if article.Content != "" {
			source = article.Content
		}
		title = article.Title
	} else {
		e.logger.Debug("readability pass failed, using raw HTML", "error", err)
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	result, err := trafilatura.Extract(strings.NewReader(source), opts)
	if err != nil && source != rawHTML {
		// The simplified markup can confuse trafilatura; the raw page
		// is a second chance.
		result, err = trafilatura.Extract(strings.NewReader(rawHTML), opts)
	}
	if err != nil {
		e.logger.Debug("extraction failed", "error", err)
		return &siteask.ExtractResult{Title: title}
	}

	if title == "" {
		title = result.Metadata.Title
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML = renderNode(result.ContentNode)
	}

	return &siteask.ExtractResult{
		Title:       title,
		Text:        strings.TrimSpace(result.ContentText),
		ContentHTML: contentHTML,
	}
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}
