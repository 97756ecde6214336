package api

import (
	"context"
	"net/http"

	"github.com/jonathan/internship-generator/internal/types"
)

// GenerationService wraps the drafting endpoints.
type GenerationService struct {
	client *Client
}

// Generate drafts content for one company.
func (s *GenerationService) Generate(ctx context.Context, req *types.GenerationRequest) (*types.GenerationResult, error) {
	var out types.GenerationResult
	if err := s.client.doJSON(ctx, http.MethodPost, "/api/generate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateBulk drafts the same content type for several companies.
func (s *GenerationService) GenerateBulk(ctx context.Context, req *types.BulkGenerationRequest) (*types.BulkGenerationResponse, error) {
	var out types.BulkGenerationResponse
	if err := s.client.doJSON(ctx, http.MethodPost, "/api/generate/bulk", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refine rewrites one section of a draft according to the user's feedback.
func (s *GenerationService) Refine(ctx context.Context, req *types.RefinementRequest) (*types.RefinementResult, error) {
	var out types.RefinementResult
	if err := s.client.doJSON(ctx, http.MethodPost, "/api/refine", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
