package siteask

import "context"

// Asker provides natural language question answering over a project's
// collected documents.
type Asker interface {
	// Ask answers a natural language question about a project's content.
	// Returns ENOTFOUND if the project does not exist.
	Ask(ctx context.Context, projectID string, question string) (string, error)
}
