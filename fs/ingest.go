package fs

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"siteask"
)

// DefaultMinDocumentLength matches the crawl threshold for discarding
// pages that carry no readable content.
const DefaultMinDocumentLength = 100

// Ensure Ingester implements siteask.Scraper at compile time.
var _ siteask.Scraper = (*Ingester)(nil)

// Ingester collects documents from a local directory or file. HTML files
// go through the extractor; markdown and plain text files are taken as-is.
type Ingester struct {
	Path              string
	Extractor         siteask.Extractor
	MinDocumentLength int
	Logger            *slog.Logger
}

// NewIngester creates an Ingester rooted at path.
func NewIngester(path string, extractor siteask.Extractor) *Ingester {
	return &Ingester{
		Path:              path,
		Extractor:         extractor,
		MinDocumentLength: DefaultMinDocumentLength,
		Logger:            slog.New(slog.DiscardHandler),
	}
}

// Scrape walks the path and converts each supported file into a document.
// Files shorter than MinDocumentLength after extraction are skipped.
func (in *Ingester) Scrape(ctx context.Context) ([]*siteask.Document, error) {
	if in.Path == "" {
		return nil, siteask.Errorf(siteask.EINVALID, "path required")
	}

	root, err := filepath.Abs(in.Path)
	if err != nil {
		return nil, siteask.Errorf(siteask.EINVALID, "invalid path %q", in.Path)
	}
	if _, err := os.Stat(root); err != nil {
		return nil, siteask.Errorf(siteask.EINVALID, "path %q does not exist", in.Path)
	}

	docs := []*siteask.Document{}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}

		doc, err := in.readFile(path)
		if err != nil {
			in.Logger.Warn("failed to read file", "path", path, "error", err)
			return nil
		}
		if doc == nil {
			return nil
		}

		minLen := in.MinDocumentLength
		if minLen <= 0 {
			minLen = DefaultMinDocumentLength
		}
		if len(doc.Text) < minLen {
			in.Logger.Debug("skipping short file", "path", path, "length", len(doc.Text))
			return nil
		}

		doc.Position = len(docs)
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return docs, nil
}

// readFile turns a single file into a document, or nil for unsupported types.
func (in *Ingester) readFile(path string) (*siteask.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var title, text string
	switch ext {
	case ".html", ".htm":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		result := in.Extractor.Extract(string(data))
		title, text = result.Title, result.Text
	case ".md", ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		text = strings.TrimSpace(string(data))
	default:
		return nil, nil
	}

	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), ext)
	}

	return &siteask.Document{
		SourceURL: "file://" + path,
		Title:     title,
		Text:      text,
		FetchedAt: time.Now().UTC(),
	}, nil
}
