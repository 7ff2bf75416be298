package mock

import (
	"context"

	"siteask"
)

var _ siteask.RobotsGate = (*RobotsGate)(nil)

// RobotsGate is a mock implementation of siteask.RobotsGate.
type RobotsGate struct {
	FetchFn   func(ctx context.Context, baseURL string) error
	AllowedFn func(path string, userAgent string) bool
}

func (g *RobotsGate) Fetch(ctx context.Context, baseURL string) error {
	if g.FetchFn == nil {
		return nil
	}
	return g.FetchFn(ctx, baseURL)
}

func (g *RobotsGate) Allowed(path string, userAgent string) bool {
	if g.AllowedFn == nil {
		return true
	}
	return g.AllowedFn(path, userAgent)
}
