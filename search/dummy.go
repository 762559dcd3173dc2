package search

import "context"

// DummyClient returns canned results from a response function. Useful for testing.
type DummyClient struct {
	SearchFunc func(ctx context.Context, query string) ([]Result, error)
}

var _ Client = &DummyClient{}

// NewDummyClient creates a search client backed by searchFunc.
func NewDummyClient(searchFunc func(ctx context.Context, query string) ([]Result, error)) *DummyClient {
	return &DummyClient{SearchFunc: searchFunc}
}

func (c *DummyClient) Search(ctx context.Context, query string) ([]Result, error) {
	if c.SearchFunc == nil {
		return nil, nil
	}
	return c.SearchFunc(ctx, query)
}
