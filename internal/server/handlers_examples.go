package server

import (
	"net/http"

	"github.com/jonathan/internship-generator/internal/types"
)

// handleCreateExample stores a writing sample. quality_rating defaults to 5.
func (s *Server) handleCreateExample(w http.ResponseWriter, r *http.Request) {
	in := types.ExampleInput{QualityRating: types.DefaultQualityRating}
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, err, "")
		return
	}
	if err := in.Validate(); err != nil {
		s.writeError(w, validationError(err), "")
		return
	}

	example, err := s.store.CreateExample(r.Context(), in)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, example)
}

// handleListExamples lists examples, highest rated first, optionally filtered
// by generation_type.
func (s *Server) handleListExamples(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		s.writeError(w, err, "")
		return
	}

	filter := types.GenerationType(r.URL.Query().Get("generation_type"))
	if filter != "" && !filter.Valid() {
		s.errorResponse(w, http.StatusUnprocessableEntity, "generation_type must be one of cold_email, cold_dm, application")
		return
	}

	examples, err := s.store.ListExamples(r.Context(), filter, page)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if examples == nil {
		examples = []types.Example{}
	}

	s.jsonResponse(w, http.StatusOK, examples)
}

// handleGetExample returns an example by id.
func (s *Server) handleGetExample(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err, "")
		return
	}

	example, err := s.store.GetExample(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if example == nil {
		s.writeError(w, &ErrNotFound{Resource: "Example", ID: id}, "")
		return
	}

	s.jsonResponse(w, http.StatusOK, example)
}

// handleUpdateExample applies the provided fields to an example.
func (s *Server) handleUpdateExample(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err, "")
		return
	}

	var update types.ExampleUpdate
	if err := decodeJSON(r, &update); err != nil {
		s.writeError(w, err, "")
		return
	}
	if err := update.Validate(); err != nil {
		s.writeError(w, validationError(err), "")
		return
	}

	existing, err := s.store.GetExample(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if existing == nil {
		s.writeError(w, &ErrNotFound{Resource: "Example", ID: id}, "")
		return
	}

	in := existing.ExampleInput
	update.Apply(&in)

	example, err := s.store.UpdateExample(r.Context(), id, in)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if example == nil {
		s.writeError(w, &ErrNotFound{Resource: "Example", ID: id}, "")
		return
	}

	s.jsonResponse(w, http.StatusOK, example)
}

// handleDeleteExample removes an example.
func (s *Server) handleDeleteExample(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err, "")
		return
	}

	deleted, err := s.store.DeleteExample(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !deleted {
		s.writeError(w, &ErrNotFound{Resource: "Example", ID: id}, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
