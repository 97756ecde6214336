package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jonathan/internship-generator/internal/types"
)

// CompaniesService wraps the /api/companies endpoints.
type CompaniesService struct {
	client *Client
}

// Create stores a new company.
func (s *CompaniesService) Create(ctx context.Context, in *types.CompanyInput) (*types.Company, error) {
	var out types.Company
	if err := s.client.doJSON(ctx, http.MethodPost, "/api/companies", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns all companies in the order the service reports them.
func (s *CompaniesService) List(ctx context.Context) ([]types.Company, error) {
	var out []types.Company
	if err := s.client.doJSON(ctx, http.MethodGet, "/api/companies", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one company.
func (s *CompaniesService) Get(ctx context.Context, id int64) (*types.Company, error) {
	var out types.Company
	if err := s.client.doJSON(ctx, http.MethodGet, companyPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces the editable fields of a company.
func (s *CompaniesService) Update(ctx context.Context, id int64, in *types.CompanyInput) (*types.Company, error) {
	var out types.Company
	if err := s.client.doJSON(ctx, http.MethodPut, companyPath(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a company.
func (s *CompaniesService) Delete(ctx context.Context, id int64) error {
	return s.client.doJSON(ctx, http.MethodDelete, companyPath(id), nil, nil)
}

func companyPath(id int64) string {
	return fmt.Sprintf("/api/companies/%d", id)
}
