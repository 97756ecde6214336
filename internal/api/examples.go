package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jonathan/internship-generator/internal/types"
)

// ExamplesService wraps the /api/examples endpoints.
type ExamplesService struct {
	client *Client
}

// Create stores a new writing sample.
func (s *ExamplesService) Create(ctx context.Context, in *types.ExampleInput) (*types.Example, error) {
	var out types.Example
	if err := s.client.doJSON(ctx, http.MethodPost, "/api/examples", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns writing samples, optionally restricted to one generation type.
// An empty filter lists every type.
func (s *ExamplesService) List(ctx context.Context, filter types.GenerationType) ([]types.Example, error) {
	path := "/api/examples"
	if filter != "" {
		path += "?" + url.Values{"generation_type": {string(filter)}}.Encode()
	}

	var out []types.Example
	if err := s.client.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one writing sample.
func (s *ExamplesService) Get(ctx context.Context, id int64) (*types.Example, error) {
	var out types.Example
	if err := s.client.doJSON(ctx, http.MethodGet, examplePath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces the editable fields of a writing sample.
func (s *ExamplesService) Update(ctx context.Context, id int64, in *types.ExampleInput) (*types.Example, error) {
	var out types.Example
	if err := s.client.doJSON(ctx, http.MethodPut, examplePath(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a writing sample.
func (s *ExamplesService) Delete(ctx context.Context, id int64) error {
	return s.client.doJSON(ctx, http.MethodDelete, examplePath(id), nil, nil)
}

func examplePath(id int64) string {
	return fmt.Sprintf("/api/examples/%d", id)
}
