package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"siteask"
	"siteask/fs"
	"siteask/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

var longText = strings.Repeat("useful words about the product ", 10)

func TestIngester_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("collects markdown and text files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTestFile(t, dir, "a.md", longText)
		writeTestFile(t, dir, "b.txt", longText)

		ingester := fs.NewIngester(dir, &mock.Extractor{})

		docs, err := ingester.Scrape(context.Background())
		require.NoError(t, err)

		require.Len(t, docs, 2)
		assert.Equal(t, "a", docs[0].Title)
		assert.Equal(t, "b", docs[1].Title)
		assert.Equal(t, 0, docs[0].Position)
		assert.Equal(t, 1, docs[1].Position)
		assert.True(t, strings.HasPrefix(docs[0].SourceURL, "file://"))
	})

	t.Run("extracts readable text from HTML files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTestFile(t, dir, "page.html", "<html><body>ignored</body></html>")

		extractor := &mock.Extractor{
			ExtractFn: func(html string) *siteask.ExtractResult {
				return &siteask.ExtractResult{Title: "Extracted Title", Text: longText}
			},
		}
		ingester := fs.NewIngester(dir, extractor)

		docs, err := ingester.Scrape(context.Background())
		require.NoError(t, err)

		require.Len(t, docs, 1)
		assert.Equal(t, "Extracted Title", docs[0].Title)
		assert.Equal(t, longText, docs[0].Text)
	})

	t.Run("skips unsupported file types", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTestFile(t, dir, "image.png", longText)
		writeTestFile(t, dir, "notes.md", longText)

		ingester := fs.NewIngester(dir, &mock.Extractor{})

		docs, err := ingester.Scrape(context.Background())
		require.NoError(t, err)

		require.Len(t, docs, 1)
		assert.Equal(t, "notes", docs[0].Title)
	})

	t.Run("skips files below the minimum length", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTestFile(t, dir, "short.md", "too short")
		writeTestFile(t, dir, "long.md", longText)

		ingester := fs.NewIngester(dir, &mock.Extractor{})

		docs, err := ingester.Scrape(context.Background())
		require.NoError(t, err)

		require.Len(t, docs, 1)
		assert.Equal(t, "long", docs[0].Title)
	})

	t.Run("walks nested directories", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTestFile(t, dir, "guide/intro.md", longText)
		writeTestFile(t, dir, "guide/advanced/tips.md", longText)

		ingester := fs.NewIngester(dir, &mock.Extractor{})

		docs, err := ingester.Scrape(context.Background())
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("returns EINVALID for missing path", func(t *testing.T) {
		t.Parallel()

		ingester := fs.NewIngester(filepath.Join(t.TempDir(), "nope"), &mock.Extractor{})

		_, err := ingester.Scrape(context.Background())
		assert.Equal(t, siteask.EINVALID, siteask.ErrorCode(err))
	})

	t.Run("returns EINVALID for empty path", func(t *testing.T) {
		t.Parallel()

		ingester := fs.NewIngester("", &mock.Extractor{})

		_, err := ingester.Scrape(context.Background())
		assert.Equal(t, siteask.EINVALID, siteask.ErrorCode(err))
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTestFile(t, dir, "a.md", longText)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		ingester := fs.NewIngester(dir, &mock.Extractor{})

		_, err := ingester.Scrape(ctx)
		require.Error(t, err)
	})
}
