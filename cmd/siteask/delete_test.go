package main_test

import (
	"bytes"
	"context"
	"testing"

	"siteask"
	main "siteask/cmd/siteask"
	"siteask/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes project by name with force", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		projects := &mock.ProjectService{
			FindProjectsFn: func(_ context.Context, filter siteask.ProjectFilter) ([]*siteask.Project, error) {
				return []*siteask.Project{{ID: "proj-1", Name: *filter.Name}}, nil
			},
			DeleteProjectFn: func(_ context.Context, id string) error {
				deletedID = id
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Projects: projects,
		}

		cmd := &main.DeleteCmd{Name: "docs", Force: true}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "proj-1", deletedID)
		assert.Contains(t, stdout.String(), "Deleted project")
	})

	t.Run("requires force flag", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
		}

		cmd := &main.DeleteCmd{Name: "docs"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, siteask.EINVALID, siteask.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("returns ENOTFOUND for unknown project", func(t *testing.T) {
		t.Parallel()

		projects := &mock.ProjectService{
			FindProjectsFn: func(_ context.Context, _ siteask.ProjectFilter) ([]*siteask.Project, error) {
				return []*siteask.Project{}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Projects: projects,
		}

		cmd := &main.DeleteCmd{Name: "missing", Force: true}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, siteask.ENOTFOUND, siteask.ErrorCode(err))
	})
}
