package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"siteask"
)

// Compile-time interface verification.
var _ siteask.ProjectService = (*ProjectService)(nil)

// ProjectService implements siteask.ProjectService using SQLite.
type ProjectService struct {
	db *DB
}

// NewProjectService creates a new ProjectService.
func NewProjectService(db *DB) *ProjectService {
	return &ProjectService{db: db}
}

// CreateProject creates a new project.
func (s *ProjectService) CreateProject(ctx context.Context, project *siteask.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}
	if project.Kind == "" {
		project.Kind = siteask.KindURL
	}

	project.ID = uuid.New().String()
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, source_url, kind, filter, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, project.ID, project.Name, project.SourceURL, string(project.Kind), project.Filter,
		project.CreatedAt.Format(time.RFC3339), project.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindProjectByID retrieves a project by ID.
func (s *ProjectService) FindProjectByID(ctx context.Context, id string) (*siteask.Project, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, source_url, kind, filter, created_at, updated_at
		FROM projects
		WHERE id = ?
	`, id)

	project, err := scanProject(row.Scan)
	if err == sql.ErrNoRows {
		return nil, siteask.Errorf(siteask.ENOTFOUND, "project not found")
	}
	if err != nil {
		return nil, err
	}
	return project, nil
}

// FindProjects retrieves projects matching the filter.
func (s *ProjectService) FindProjects(ctx context.Context, filter siteask.ProjectFilter) ([]*siteask.Project, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, source_url, kind, filter, created_at, updated_at FROM projects WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*siteask.Project
	for rows.Next() {
		project, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

// UpdateProject updates an existing project.
func (s *ProjectService) UpdateProject(ctx context.Context, id string, upd siteask.ProjectUpdate) (*siteask.Project, error) {
	project, err := s.FindProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		project.Name = *upd.Name
	}
	if upd.SourceURL != nil {
		project.SourceURL = *upd.SourceURL
	}
	if upd.Filter != nil {
		project.Filter = *upd.Filter
	}

	// Validate before persisting
	if err := project.Validate(); err != nil {
		return nil, err
	}

	project.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE projects
		SET name = ?, source_url = ?, filter = ?, updated_at = ?
		WHERE id = ?
	`, project.Name, project.SourceURL, project.Filter,
		project.UpdatedAt.Format(time.RFC3339), id)

	if err != nil {
		return nil, err
	}

	return project, nil
}

// DeleteProject permanently removes a project. Associated documents are
// removed by the foreign key cascade.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return siteask.Errorf(siteask.ENOTFOUND, "project not found")
	}

	return nil
}

// scanProject scans one project row using the given Scan function.
func scanProject(scan func(dest ...any) error) (*siteask.Project, error) {
	var project siteask.Project
	var kind, createdAt, updatedAt string

	if err := scan(&project.ID, &project.Name, &project.SourceURL, &kind, &project.Filter,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	project.Kind = siteask.SourceKind(kind)

	var err error
	if project.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if project.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &project, nil
}
