package server

import (
	"context"
	"log"
	"net/http"

	"github.com/jonathan/internship-generator/internal/types"
)

// handleGenerate drafts content for one company.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerationRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err, "")
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, validationError(err), "")
		return
	}

	profile, err := s.loadProfile(r.Context(), req.UserProfileID)
	if err != nil {
		s.writeError(w, err, "Database error: ")
		return
	}
	company, err := s.loadCompany(r.Context(), req.CompanyID)
	if err != nil {
		s.writeError(w, err, "Database error: ")
		return
	}

	result, err := s.generator.Generate(r.Context(), profile, company, req)
	if err != nil {
		log.Printf("[generate] %s for company %d failed: %v", req.GenerationType, company.ID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Error generating content: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleBulkGenerate drafts the same content type for several companies.
// A failing company is reported in "failed" and does not stop the batch.
func (s *Server) handleBulkGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.BulkGenerationRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err, "")
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, validationError(err), "")
		return
	}

	profile, err := s.loadProfile(r.Context(), req.UserProfileID)
	if err != nil {
		s.writeError(w, err, "Database error: ")
		return
	}

	resp := types.BulkGenerationResponse{
		Results: []types.GenerationResult{},
		Failed:  []types.BulkFailure{},
	}
	for _, companyID := range req.CompanyIDs {
		company, err := s.loadCompany(r.Context(), companyID)
		if err != nil {
			resp.Failed = append(resp.Failed, types.BulkFailure{CompanyID: companyID, Error: err.Error()})
			continue
		}

		result, err := s.generator.Generate(r.Context(), profile, company, req.ForCompany(companyID))
		if err != nil {
			resp.Failed = append(resp.Failed, types.BulkFailure{CompanyID: companyID, Error: err.Error()})
			continue
		}
		resp.Results = append(resp.Results, *result)
	}
	resp.TotalGenerated = len(resp.Results)

	if s.verbose {
		log.Printf("[generate] bulk %s: %d generated, %d failed", req.GenerationType, resp.TotalGenerated, len(resp.Failed))
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleRefine rewrites one section of a draft.
func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	var req types.RefinementRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err, "")
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, validationError(err), "")
		return
	}

	company, err := s.loadCompany(r.Context(), req.CompanyID)
	if err != nil {
		s.writeError(w, err, "Database error: ")
		return
	}

	result, err := s.generator.Refine(r.Context(), company, req)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Error refining content: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) loadProfile(ctx context.Context, id int64) (*types.UserProfile, error) {
	profile, err := s.store.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, &ErrNotFound{Resource: "User profile", ID: id}
	}
	return profile, nil
}

func (s *Server) loadCompany(ctx context.Context, id int64) (*types.Company, error) {
	company, err := s.store.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, &ErrNotFound{Resource: "Company", ID: id}
	}
	return company, nil
}
