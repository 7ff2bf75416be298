package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"siteask"
	main "siteask/cmd/siteask"
	"siteask/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docsTestDeps(stdout, stderr *bytes.Buffer) *main.Dependencies {
	projects := &mock.ProjectService{
		FindProjectsFn: func(_ context.Context, filter siteask.ProjectFilter) ([]*siteask.Project, error) {
			return []*siteask.Project{{ID: "proj-1", Name: *filter.Name}}, nil
		},
	}
	documents := &mock.DocumentService{
		FindDocumentsFn: func(_ context.Context, _ siteask.DocumentFilter) ([]*siteask.Document, error) {
			return []*siteask.Document{
				{
					ID:        "doc-1",
					SourceURL: "https://example.com/docs/intro",
					Title:     "Introduction",
					Text:      "Welcome to the product.",
					Markdown:  "# Introduction\n\nWelcome to the product.",
					Position:  0,
					FetchedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
				},
				{
					ID:        "doc-2",
					SourceURL: "https://example.com/docs/setup",
					Title:     "Setup",
					Text:      "Install the thing.",
					Position:  1,
					FetchedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
				},
			}, nil
		},
	}
	return &main.Dependencies{
		Ctx:       context.Background(),
		Stdout:    stdout,
		Stderr:    stderr,
		Projects:  projects,
		Documents: documents,
	}
}

func TestDocsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists document titles and URLs", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := docsTestDeps(stdout, stderr)

		cmd := &main.DocsCmd{Name: "docs"}

		err := cmd.Run(deps)

		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "2 total")
		assert.Contains(t, output, "Introduction")
		assert.Contains(t, output, "https://example.com/docs/setup")
		assert.NotContains(t, output, "Welcome to the product.")
	})

	t.Run("full flag prints document content", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := docsTestDeps(stdout, stderr)

		cmd := &main.DocsCmd{Name: "docs", Full: true}

		err := cmd.Run(deps)

		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "# Introduction")
		assert.Contains(t, output, "Install the thing.")
	})

	t.Run("returns ENOTFOUND when project has no documents", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := docsTestDeps(stdout, stderr)
		deps.Documents = &mock.DocumentService{
			FindDocumentsFn: func(_ context.Context, _ siteask.DocumentFilter) ([]*siteask.Document, error) {
				return []*siteask.Document{}, nil
			},
		}

		cmd := &main.DocsCmd{Name: "docs"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, siteask.ENOTFOUND, siteask.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for unknown project", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := docsTestDeps(stdout, stderr)
		deps.Projects = &mock.ProjectService{
			FindProjectsFn: func(_ context.Context, _ siteask.ProjectFilter) ([]*siteask.Project, error) {
				return []*siteask.Project{}, nil
			},
		}

		cmd := &main.DocsCmd{Name: "missing"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, siteask.ENOTFOUND, siteask.ErrorCode(err))
	})
}
