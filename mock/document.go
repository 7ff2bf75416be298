package mock

import (
	"context"

	"siteask"
)

var _ siteask.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of siteask.DocumentService.
type DocumentService struct {
	CreateDocumentFn           func(ctx context.Context, doc *siteask.Document) error
	FindDocumentByIDFn         func(ctx context.Context, id string) (*siteask.Document, error)
	FindDocumentsFn            func(ctx context.Context, filter siteask.DocumentFilter) ([]*siteask.Document, error)
	DeleteDocumentFn           func(ctx context.Context, id string) error
	DeleteDocumentsByProjectFn func(ctx context.Context, projectID string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *siteask.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*siteask.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter siteask.DocumentFilter) ([]*siteask.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}

func (s *DocumentService) DeleteDocumentsByProject(ctx context.Context, projectID string) error {
	return s.DeleteDocumentsByProjectFn(ctx, projectID)
}
