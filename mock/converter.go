package mock

import "siteask"

var _ siteask.Converter = (*Converter)(nil)

// Converter is a mock implementation of siteask.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
