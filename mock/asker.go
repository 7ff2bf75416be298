package mock

import (
	"context"

	"siteask"
)

var _ siteask.Asker = (*Asker)(nil)

// Asker is a mock implementation of siteask.Asker.
type Asker struct {
	AskFn func(ctx context.Context, projectID, question string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, projectID, question string) (string, error) {
	return a.AskFn(ctx, projectID, question)
}
