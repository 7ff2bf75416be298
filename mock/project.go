package mock

import (
	"context"

	"siteask"
)

var _ siteask.ProjectService = (*ProjectService)(nil)

// ProjectService is a mock implementation of siteask.ProjectService.
type ProjectService struct {
	CreateProjectFn   func(ctx context.Context, project *siteask.Project) error
	FindProjectByIDFn func(ctx context.Context, id string) (*siteask.Project, error)
	FindProjectsFn    func(ctx context.Context, filter siteask.ProjectFilter) ([]*siteask.Project, error)
	UpdateProjectFn   func(ctx context.Context, id string, upd siteask.ProjectUpdate) (*siteask.Project, error)
	DeleteProjectFn   func(ctx context.Context, id string) error
}

func (s *ProjectService) CreateProject(ctx context.Context, project *siteask.Project) error {
	return s.CreateProjectFn(ctx, project)
}

func (s *ProjectService) FindProjectByID(ctx context.Context, id string) (*siteask.Project, error) {
	return s.FindProjectByIDFn(ctx, id)
}

func (s *ProjectService) FindProjects(ctx context.Context, filter siteask.ProjectFilter) ([]*siteask.Project, error) {
	return s.FindProjectsFn(ctx, filter)
}

func (s *ProjectService) UpdateProject(ctx context.Context, id string, upd siteask.ProjectUpdate) (*siteask.Project, error) {
	return s.UpdateProjectFn(ctx, id, upd)
}

func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	return s.DeleteProjectFn(ctx, id)
}
