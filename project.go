package siteask

import (
	"context"
	"time"
)

// SourceKind tags the kind of source a project collects from. The kind is
// decided once when the project is created and selects the scraping
// pipeline (bounded web crawl vs. local file ingestion).
type SourceKind string

// Supported source kinds.
const (
	KindURL  SourceKind = "url"
	KindFile SourceKind = "file"
)

// Valid reports whether k is a known source kind.
func (k SourceKind) Valid() bool {
	return k == KindURL || k == KindFile
}

// Project represents one content source to be collected and questioned.
type Project struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	SourceURL string     `json:"sourceUrl"`
	Kind      SourceKind `json:"kind"`
	Filter    string     `json:"filter"` // newline-separated include regexes
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Validate returns an error if the project contains invalid fields.
func (p *Project) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "project name required")
	}
	if p.SourceURL == "" {
		return Errorf(EINVALID, "project source required")
	}
	if p.Kind != "" && !p.Kind.Valid() {
		return Errorf(EINVALID, "unknown source kind %q", p.Kind)
	}
	return nil
}

// ProjectService represents a service for managing projects.
type ProjectService interface {
	// CreateProject creates a new project.
	CreateProject(ctx context.Context, project *Project) error

	// FindProjectByID retrieves a project by ID.
	// Returns ENOTFOUND if project does not exist.
	FindProjectByID(ctx context.Context, id string) (*Project, error)

	// FindProjects retrieves projects matching the filter.
	FindProjects(ctx context.Context, filter ProjectFilter) ([]*Project, error)

	// UpdateProject updates an existing project.
	// Returns ENOTFOUND if project does not exist.
	UpdateProject(ctx context.Context, id string, upd ProjectUpdate) (*Project, error)

	// DeleteProject permanently removes a project and all associated documents.
	// Returns ENOTFOUND if project does not exist.
	DeleteProject(ctx context.Context, id string) error
}

// ProjectFilter represents a filter for FindProjects.
type ProjectFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ProjectUpdate represents fields that can be updated on a project.
type ProjectUpdate struct {
	Name      *string `json:"name"`
	SourceURL *string `json:"sourceUrl"`
	Filter    *string `json:"filter"`
}
