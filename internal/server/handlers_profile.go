package server

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jonathan/internship-generator/internal/types"
)

// maxUploadSize bounds resume uploads.
const maxUploadSize = 10 << 20

// handleCreateProfile creates the user profile.
func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var in types.ProfileInput
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, err, "")
		return
	}
	if err := in.Validate(); err != nil {
		s.writeError(w, validationError(err), "")
		return
	}

	profile, err := s.store.CreateProfile(r.Context(), in)
	if err != nil {
		s.writeError(w, err, "Database error: ")
		return
	}

	s.jsonResponse(w, http.StatusCreated, profile)
}

// handleGetCurrentProfile returns the single user profile.
func (s *Server) handleGetCurrentProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.store.GetCurrentProfile(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "No user profile found. Please create one first.")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handleGetProfile returns a profile by id.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err, "")
		return
	}

	profile, err := s.store.GetProfile(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		s.writeError(w, &ErrNotFound{Resource: "Profile", ID: id}, "")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handleUpdateProfile applies the provided fields to a profile.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err, "")
		return
	}

	var update types.ProfileUpdate
	if err := decodeJSON(r, &update); err != nil {
		s.writeError(w, err, "")
		return
	}
	if err := update.Validate(); err != nil {
		s.writeError(w, validationError(err), "")
		return
	}

	existing, err := s.store.GetProfile(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if existing == nil {
		s.writeError(w, &ErrNotFound{Resource: "Profile", ID: id}, "")
		return
	}

	in := existing.Input()
	update.Apply(&in)

	profile, err := s.store.UpdateProfile(r.Context(), id, in)
	if err != nil {
		s.writeError(w, err, "Database error: ")
		return
	}
	if profile == nil {
		s.writeError(w, &ErrNotFound{Resource: "Profile", ID: id}, "")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handleDeleteProfile removes a profile.
func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err, "")
		return
	}

	deleted, err := s.store.DeleteProfile(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !deleted {
		s.writeError(w, &ErrNotFound{Resource: "Profile", ID: id}, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleParseResumeText extracts a profile from pasted resume text.
func (s *Server) handleParseResumeText(w http.ResponseWriter, r *http.Request) {
	var req types.ResumeParseRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err, "")
		return
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		s.errorResponse(w, http.StatusUnprocessableEntity, "resume_text is required")
		return
	}

	result, err := s.parser.ParseText(r.Context(), req.ResumeText)
	if err != nil {
		s.writeError(w, err, "Failed to parse resume: ")
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleParseResumePDF extracts a profile from an uploaded PDF sent as the
// multipart field "file".
func (s *Server) handleParseResumePDF(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, "file is required: "+err.Error())
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		s.errorResponse(w, http.StatusBadRequest, "Only PDF files are supported")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read uploaded file: "+err.Error())
		return
	}

	result, err := s.parser.ParsePDF(r.Context(), data)
	if err != nil {
		s.writeError(w, err, "Failed to parse PDF resume: ")
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}
