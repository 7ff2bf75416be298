package crawl_test

import (
	"testing"

	"siteask/crawl"

	"github.com/stretchr/testify/assert"
)

func TestComputeHash(t *testing.T) {
	t.Parallel()

	a := crawl.ComputeHash("content one")
	b := crawl.ComputeHash("content two")

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, crawl.ComputeHash("content one"), "hash should be deterministic")
}

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		url    string
		maxLen int
		want   string
	}{
		{name: "fits", url: "https://a.com/x", maxLen: 50, want: "https://a.com/x"},
		{name: "truncates from front", url: "https://example.com/docs/getting-started", maxLen: 20, want: "...s/getting-started"},
		{name: "zero length", url: "https://a.com", maxLen: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := crawl.TruncateURL(tt.url, tt.maxLen)
			assert.LessOrEqual(t, len(got), tt.maxLen)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", crawl.FormatBytes(512))
	assert.Equal(t, "1.0 KB", crawl.FormatBytes(1024))
	assert.Equal(t, "1.5 MB", crawl.FormatBytes(1024*1024*3/2))
}

func TestFormatTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "~500 tokens", crawl.FormatTokens(500))
	assert.Equal(t, "~2k tokens", crawl.FormatTokens(1700))
}
