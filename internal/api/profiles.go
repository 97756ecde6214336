package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"

	"github.com/jonathan/internship-generator/internal/types"
)

// ProfilesService wraps the /api/profile endpoints.
type ProfilesService struct {
	client *Client
}

// Create stores a new profile.
func (s *ProfilesService) Create(ctx context.Context, in *types.ProfileInput) (*types.UserProfile, error) {
	var out types.UserProfile
	if err := s.client.doJSON(ctx, http.MethodPost, "/api/profile", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns the current profile. A 404 means no profile exists yet and is
// reported as (nil, nil).
func (s *ProfilesService) Get(ctx context.Context) (*types.UserProfile, error) {
	var out types.UserProfile
	if err := s.client.doJSON(ctx, http.MethodGet, "/api/profile", nil, &out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// Update replaces the profile with the given id.
func (s *ProfilesService) Update(ctx context.Context, id int64, in *types.ProfileInput) (*types.UserProfile, error) {
	var out types.UserProfile
	path := fmt.Sprintf("/api/profile/%d", id)
	if err := s.client.doJSON(ctx, http.MethodPut, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ParseResumeText extracts profile fields from pasted resume text.
func (s *ProfilesService) ParseResumeText(ctx context.Context, text string) (*types.ResumeParseResult, error) {
	var out types.ResumeParseResult
	in := types.ResumeParseRequest{ResumeText: text}
	if err := s.client.doJSON(ctx, http.MethodPost, "/api/profile/parse-resume-text", &in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ParseResumePDF uploads a PDF as the single multipart field "file" and
// extracts profile fields from it.
func (s *ProfilesService) ParseResumePDF(ctx context.Context, filename string, data []byte) (*types.ResumeParseResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(filename)))
	header.Set("Content-Type", "application/pdf")
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write multipart body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.client.baseURL+"/api/profile/parse-resume-pdf", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out types.ResumeParseResult
	if err := s.client.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
