package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"siteask"
)

// Compile-time interface verification.
var _ siteask.DocumentService = (*DocumentService)(nil)

// DocumentService implements siteask.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashText computes xxHash of text and returns a hex string.
func hashText(text string) string {
	h := xxhash.Sum64String(text)
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// CreateDocument creates a new document. The ID and text hash are
// assigned here; the fetch time is kept if the caller set one.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *siteask.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	if doc.FetchedAt.IsZero() {
		doc.FetchedAt = time.Now().UTC()
	}
	doc.TextHash = hashText(doc.Text)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, project_id, source_url, title, text, markdown, text_hash, position, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.ProjectID, doc.SourceURL, doc.Title, doc.Text, doc.Markdown, doc.TextHash,
		doc.Position, doc.FetchedAt.Format(time.RFC3339))

	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*siteask.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, project_id, source_url, title, text, markdown, text_hash, position, fetched_at
		FROM documents
		WHERE id = ?
	`, id)

	doc, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, siteask.Errorf(siteask.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindDocuments retrieves documents matching the filter.
func (s *DocumentService) FindDocuments(ctx context.Context, filter siteask.DocumentFilter) ([]*siteask.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, project_id, source_url, title, text, markdown, text_hash, position, fetched_at FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.ProjectID != nil {
		query.WriteString(" AND project_id = ?")
		args = append(args, *filter.ProjectID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	switch filter.SortBy {
	case siteask.SortByPosition:
		query.WriteString(" ORDER BY position ASC")
	default:
		query.WriteString(" ORDER BY fetched_at DESC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*siteask.Document
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// DeleteDocument permanently removes a document.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return siteask.Errorf(siteask.ENOTFOUND, "document not found")
	}

	return nil
}

// DeleteDocumentsByProject removes all documents for a project.
func (s *DocumentService) DeleteDocumentsByProject(ctx context.Context, projectID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE project_id = ?", projectID)
	return err
}

// scanDocument scans one document row using the given Scan function.
func scanDocument(scan func(dest ...any) error) (*siteask.Document, error) {
	var doc siteask.Document
	var fetchedAt string

	if err := scan(&doc.ID, &doc.ProjectID, &doc.SourceURL, &doc.Title,
		&doc.Text, &doc.Markdown, &doc.TextHash, &doc.Position, &fetchedAt); err != nil {
		return nil, err
	}

	var err error
	if doc.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}

	return &doc, nil
}
