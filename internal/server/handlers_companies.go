package server

import (
	"net/http"

	"github.com/jonathan/internship-generator/internal/types"
)

// handleCreateCompany stores a new target company.
func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var in types.CompanyInput
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, err, "")
		return
	}
	if err := in.Validate(); err != nil {
		s.writeError(w, validationError(err), "")
		return
	}

	company, err := s.store.CreateCompany(r.Context(), in)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, company)
}

// handleListCompanies lists companies in creation order.
func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		s.writeError(w, err, "")
		return
	}

	companies, err := s.store.ListCompanies(r.Context(), page)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if companies == nil {
		companies = []types.Company{}
	}

	s.jsonResponse(w, http.StatusOK, companies)
}

// handleGetCompany returns a company by id.
func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err, "")
		return
	}

	company, err := s.store.GetCompany(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if company == nil {
		s.writeError(w, &ErrNotFound{Resource: "Company", ID: id}, "")
		return
	}

	s.jsonResponse(w, http.StatusOK, company)
}

// handleUpdateCompany applies the provided fields to a company.
func (s *Server) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err, "")
		return
	}

	var update types.CompanyUpdate
	if err := decodeJSON(r, &update); err != nil {
		s.writeError(w, err, "")
		return
	}
	if err := update.Validate(); err != nil {
		s.writeError(w, validationError(err), "")
		return
	}

	existing, err := s.store.GetCompany(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if existing == nil {
		s.writeError(w, &ErrNotFound{Resource: "Company", ID: id}, "")
		return
	}

	in := existing.Input()
	update.Apply(&in)

	company, err := s.store.UpdateCompany(r.Context(), id, in)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if company == nil {
		s.writeError(w, &ErrNotFound{Resource: "Company", ID: id}, "")
		return
	}

	s.jsonResponse(w, http.StatusOK, company)
}

// handleDeleteCompany removes a company.
func (s *Server) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err, "")
		return
	}

	deleted, err := s.store.DeleteCompany(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !deleted {
		s.writeError(w, &ErrNotFound{Resource: "Company", ID: id}, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
