package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"siteask"
	main "siteask/cmd/siteask"
	"siteask/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestCmd_Run(t *testing.T) {
	t.Parallel()

	longText := strings.Repeat("useful words about the product ", 10)

	t.Run("creates file project and saves documents", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte(longText), 0644))

		var created *siteask.Project
		projects := &mock.ProjectService{
			CreateProjectFn: func(_ context.Context, project *siteask.Project) error {
				project.ID = "proj-1"
				created = project
				return nil
			},
		}

		var saved []*siteask.Document
		documents := &mock.DocumentService{
			CreateDocumentFn: func(_ context.Context, doc *siteask.Document) error {
				saved = append(saved, doc)
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Projects:  projects,
			Documents: documents,
			Extractor: &mock.Extractor{},
		}

		cmd := &main.IngestCmd{Name: "notes", Path: dir}

		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, siteask.KindFile, created.Kind)
		assert.True(t, strings.HasPrefix(created.SourceURL, "file://"))

		require.Len(t, saved, 1)
		assert.Equal(t, "proj-1", saved[0].ProjectID)
		assert.Equal(t, longText, saved[0].Text)
		assert.Contains(t, stdout.String(), "Ingested 1 files")
	})

	t.Run("returns ENOTFOUND when no readable files exist", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Extractor: &mock.Extractor{},
		}

		cmd := &main.IngestCmd{Name: "notes", Path: dir}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, siteask.ENOTFOUND, siteask.ErrorCode(err))
	})

	t.Run("returns EINVALID for missing path", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Extractor: &mock.Extractor{},
		}

		cmd := &main.IngestCmd{Name: "notes", Path: filepath.Join(t.TempDir(), "nope")}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, siteask.EINVALID, siteask.ErrorCode(err))
	})
}
