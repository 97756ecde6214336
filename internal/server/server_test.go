package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/internship-generator/internal/db"
	"github.com/jonathan/internship-generator/internal/llm"
	"github.com/jonathan/internship-generator/internal/server/ratelimit"
	"github.com/jonathan/internship-generator/internal/types"
)

const adaResumeJSON = `{
	"name": "Ada Lovelace",
	"email": "ada@x.com",
	"skills": ["Mathematics", "Analytical Engine"],
	"experience": [],
	"projects": [],
	"education": [],
	"links": {"github": "https://github.com/ada"},
	"achievements": []
}`

func replyWith(text string) func(string, llm.ModelTier, bool) (string, error) {
	return func(string, llm.ModelTier, bool) (string, error) { return text, nil }
}

func newTestServer(t *testing.T, respond func(string, llm.ModelTier, bool) (string, error)) (*Server, *llm.StubClient) {
	t.Helper()
	stub := llm.NewStubClient(respond)
	s := New(Config{
		CORSOrigins: []string{"http://localhost:3000"},
		RateLimit:   &ratelimit.Config{Enabled: false},
	}, db.NewMemoryStore(), stub)
	t.Cleanup(s.Close)
	return s, stub
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func detail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[map[string]string](t, w)["detail"]
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer(t, replyWith(""))

	w := doRequest(t, s.Handler(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]string{"status": "healthy"}, decodeBody[map[string]string](t, w))
}

func TestRootEndpoint(t *testing.T) {
	s, _ := newTestServer(t, replyWith(""))

	w := doRequest(t, s.Handler(), http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[map[string]string](t, w)
	assert.Equal(t, AppName, body["message"])
	assert.Equal(t, AppVersion, body["version"])
	assert.Equal(t, "running", body["status"])

	w = doRequest(t, s.Handler(), http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileEndpoints(t *testing.T) {
	s, _ := newTestServer(t, replyWith(""))
	h := s.Handler()

	w := doRequest(t, h, http.MethodGet, "/api/profile", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No user profile found. Please create one first.", detail(t, w))

	w = doRequest(t, h, http.MethodPost, "/api/profile", types.ProfileInput{
		Name:   "Ada",
		Email:  "ada@x.com",
		Skills: []string{"Python", "C++"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody[types.UserProfile](t, w)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, []string{"Python", "C++"}, created.Skills)
	assert.NotNil(t, created.Experience)

	w = doRequest(t, h, http.MethodPost, "/api/profile", types.ProfileInput{Name: "Imposter", Email: "ada@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "A profile with this email already exists", detail(t, w))

	w = doRequest(t, h, http.MethodGet, "/api/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ada", decodeBody[types.UserProfile](t, w).Name)

	w = doRequest(t, h, http.MethodPut, "/api/profile/1", `{"bio": "First programmer"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeBody[types.UserProfile](t, w)
	assert.Equal(t, "First programmer", updated.Bio)
	assert.Equal(t, "ada@x.com", updated.Email)
	assert.Equal(t, []string{"Python", "C++"}, updated.Skills)

	w = doRequest(t, h, http.MethodPut, "/api/profile/1", `{"email": "not-an-email"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, detail(t, w), "email must be a valid email address")

	w = doRequest(t, h, http.MethodGet, "/api/profile/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Profile with ID 42 not found", detail(t, w))

	w = doRequest(t, h, http.MethodPut, "/api/profile/42", `{"bio": "x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, h, http.MethodDelete, "/api/profile/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, h, http.MethodDelete, "/api/profile/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProfile_Validation(t *testing.T) {
	s, _ := newTestServer(t, replyWith(""))

	tests := []struct {
		name     string
		body     any
		contains string
	}{
		{name: "malformed json", body: `{"name":`, contains: "Invalid request body"},
		{name: "missing name", body: types.ProfileInput{Email: "ada@x.com"}, contains: "name is required"},
		{name: "bad email", body: types.ProfileInput{Name: "Ada", Email: "nope"}, contains: "email must be a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, s.Handler(), http.MethodPost, "/api/profile", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Contains(t, detail(t, w), tt.contains)
		})
	}
}

func TestCompanyEndpoints(t *testing.T) {
	s, _ := newTestServer(t, replyWith(""))
	h := s.Handler()

	for _, name := range []string{"Acme", "Globex", "Initech"} {
		w := doRequest(t, h, http.MethodPost, "/api/companies", types.CompanyInput{Name: name, JobRole: "SWE Intern"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := doRequest(t, h, http.MethodGet, "/api/companies", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]types.Company](t, w), 3)

	w = doRequest(t, h, http.MethodGet, "/api/companies?skip=1&limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decodeBody[[]types.Company](t, w)
	require.Len(t, page, 1)
	assert.Equal(t, "Globex", page[0].Name)

	w = doRequest(t, h, http.MethodPut, "/api/companies/2", `{"description": "Makes everything"}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody[types.Company](t, w)
	assert.Equal(t, "Globex", updated.Name)
	assert.Equal(t, "SWE Intern", updated.JobRole)
	assert.Equal(t, "Makes everything", updated.Description)

	w = doRequest(t, h, http.MethodDelete, "/api/companies/2", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, h, http.MethodGet, "/api/companies/2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Company with ID 2 not found", detail(t, w))

	w = doRequest(t, h, http.MethodGet, "/api/companies", nil)
	for _, c := range decodeBody[[]types.Company](t, w) {
		assert.NotEqual(t, int64(2), c.ID)
	}

	w = doRequest(t, h, http.MethodPost, "/api/companies", types.CompanyInput{JobRole: "Nameless"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListCompanies_Pagination(t *testing.T) {
	s, _ := newTestServer(t, replyWith(""))

	tests := []struct {
		query  string
		status int
	}{
		{query: "", status: http.StatusOK},
		{query: "?limit=100", status: http.StatusOK},
		{query: "?limit=0", status: http.StatusUnprocessableEntity},
		{query: "?limit=101", status: http.StatusUnprocessableEntity},
		{query: "?skip=-1", status: http.StatusUnprocessableEntity},
		{query: "?skip=abc", status: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := doRequest(t, s.Handler(), http.MethodGet, "/api/companies"+tt.query, nil)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestExampleEndpoints(t *testing.T) {
	s, _ := newTestServer(t, replyWith(""))
	h := s.Handler()

	w := doRequest(t, h, http.MethodPost, "/api/examples", `{"generation_type": "cold_email", "content": "A great cold email body"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decodeBody[types.Example](t, w)
	assert.Equal(t, types.DefaultQualityRating, first.QualityRating)

	w = doRequest(t, h, http.MethodPost, "/api/examples", types.ExampleInput{
		GenerationType: types.GenerationColdDM,
		Content:        "A short and friendly DM",
		QualityRating:  3.5,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, h, http.MethodGet, "/api/examples?generation_type=cold_dm", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dms := decodeBody[[]types.Example](t, w)
	require.Len(t, dms, 1)
	assert.Equal(t, types.GenerationColdDM, dms[0].GenerationType)

	w = doRequest(t, h, http.MethodGet, "/api/examples?generation_type=tweet", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doRequest(t, h, http.MethodPut, "/api/examples/1", `{"quality_rating": 2.5}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2.5, decodeBody[types.Example](t, w).QualityRating)

	w = doRequest(t, h, http.MethodGet, "/api/examples", nil)
	all := decodeBody[[]types.Example](t, w)
	require.Len(t, all, 2)
	assert.Equal(t, 3.5, all[0].QualityRating)

	w = doRequest(t, h, http.MethodPut, "/api/examples/1", `{"quality_rating": 4.2}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, detail(t, w), "quality_rating must be a multiple of 0.5")

	w = doRequest(t, h, http.MethodDelete, "/api/examples/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, h, http.MethodGet, "/api/examples/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Example with ID 1 not found", detail(t, w))

	w = doRequest(t, h, http.MethodGet, "/api/examples/abc", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func seedProfileAndCompany(t *testing.T, h http.Handler) {
	t.Helper()
	w := doRequest(t, h, http.MethodPost, "/api/profile", types.ProfileInput{Name: "Ada", Email: "ada@x.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doRequest(t, h, http.MethodPost, "/api/companies", types.CompanyInput{Name: "Acme", JobRole: "SWE Intern"})
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestGenerateEndpoint(t *testing.T) {
	s, stub := newTestServer(t, replyWith("Subject: Hello Acme\n\nHi there"))
	h := s.Handler()
	seedProfileAndCompany(t, h)

	w := doRequest(t, h, http.MethodPost, "/api/generate", types.GenerationRequest{
		UserProfileID:  1,
		CompanyID:      1,
		GenerationType: types.GenerationColdEmail,
		Tone:           types.ToneFriendly,
		MaxLength:      300,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	result := decodeBody[types.GenerationResult](t, w)
	assert.Equal(t, "Subject: Hello Acme\n\nHi there", result.GeneratedContent)
	assert.Equal(t, "Acme", result.Metadata["company_name"])
	assert.Equal(t, "Ada", result.Metadata["user_name"])
	assert.Equal(t, "friendly", result.Metadata["tone"])
	assert.Equal(t, float64(300), result.Metadata["max_length"])
	assert.Len(t, stub.Prompts(), 1)
}

func TestGenerateEndpoint_Errors(t *testing.T) {
	t.Run("missing profile", func(t *testing.T) {
		s, _ := newTestServer(t, replyWith("draft"))
		w := doRequest(t, s.Handler(), http.MethodPost, "/api/generate", types.GenerationRequest{
			UserProfileID: 9, CompanyID: 1, GenerationType: types.GenerationColdDM,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User profile with ID 9 not found", detail(t, w))
	})

	t.Run("missing company", func(t *testing.T) {
		s, _ := newTestServer(t, replyWith("draft"))
		seedProfileAndCompany(t, s.Handler())
		w := doRequest(t, s.Handler(), http.MethodPost, "/api/generate", types.GenerationRequest{
			UserProfileID: 1, CompanyID: 5, GenerationType: types.GenerationColdDM,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Company with ID 5 not found", detail(t, w))
	})

	t.Run("invalid type", func(t *testing.T) {
		s, stub := newTestServer(t, replyWith("draft"))
		w := doRequest(t, s.Handler(), http.MethodPost, "/api/generate", `{"user_profile_id": 1, "company_id": 1, "generation_type": "tweet"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Empty(t, stub.Prompts())
	})

	t.Run("llm failure", func(t *testing.T) {
		s, _ := newTestServer(t, func(string, llm.ModelTier, bool) (string, error) {
			return "", errors.New("quota exceeded")
		})
		seedProfileAndCompany(t, s.Handler())
		w := doRequest(t, s.Handler(), http.MethodPost, "/api/generate", types.GenerationRequest{
			UserProfileID: 1, CompanyID: 1, GenerationType: types.GenerationApplication,
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Error generating content: write failed: quota exceeded", detail(t, w))
	})
}

func TestBulkGenerateEndpoint(t *testing.T) {
	s, _ := newTestServer(t, replyWith("Hello!"))
	h := s.Handler()
	seedProfileAndCompany(t, h)

	w := doRequest(t, h, http.MethodPost, "/api/generate/bulk", types.BulkGenerationRequest{
		UserProfileID:  1,
		CompanyIDs:     []int64{1, 99},
		GenerationType: types.GenerationColdDM,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeBody[types.BulkGenerationResponse](t, w)
	assert.Equal(t, 1, resp.TotalGenerated)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, int64(1), resp.Results[0].CompanyID)
	assert.Equal(t, []types.BulkFailure{{CompanyID: 99, Error: "Company with ID 99 not found"}}, resp.Failed)
}

func TestRefineEndpoint(t *testing.T) {
	s, stub := newTestServer(t, replyWith(`"I built a difference engine."`))
	h := s.Handler()
	seedProfileAndCompany(t, h)

	w := doRequest(t, h, http.MethodPost, "/api/refine", types.RefinementRequest{
		UserProfileID:    1,
		CompanyID:        1,
		GenerationType:   types.GenerationColdEmail,
		FullContent:      "Hi.\nI like computers.\nBye.",
		SectionToReplace: "I like computers.",
		UserFeedback:     "be concrete",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "I built a difference engine.", decodeBody[types.RefinementResult](t, w).RefinedSection)
	assert.Contains(t, stub.Prompts()[0], "be concrete")

	w = doRequest(t, h, http.MethodPost, "/api/refine", types.RefinementRequest{
		UserProfileID:  1,
		CompanyID:      1,
		GenerationType: types.GenerationColdEmail,
		FullContent:    "Hi.",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, detail(t, w), "section_to_replace is required")
}

func TestParseResumeTextEndpoint(t *testing.T) {
	s, _ := newTestServer(t, replyWith("```json\n"+adaResumeJSON+"\n```"))

	w := doRequest(t, s.Handler(), http.MethodPost, "/api/profile/parse-resume-text", types.ResumeParseRequest{
		ResumeText: "Ada Lovelace\nada@x.com\nMathematics",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	result := decodeBody[types.ResumeParseResult](t, w)
	assert.Equal(t, "Ada Lovelace", result.ParsedData.Name)
	assert.Equal(t, "https://github.com/ada", result.ParsedData.Links["github"])
	assert.Equal(t, "Resume parsed successfully", result.Message)
}

func TestParseResumeTextEndpoint_Errors(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		s, _ := newTestServer(t, replyWith(adaResumeJSON))
		w := doRequest(t, s.Handler(), http.MethodPost, "/api/profile/parse-resume-text", `{"resume_text": "   "}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("missing email", func(t *testing.T) {
		s, _ := newTestServer(t, replyWith(`{"name": "Ada"}`))
		w := doRequest(t, s.Handler(), http.MethodPost, "/api/profile/parse-resume-text", types.ResumeParseRequest{ResumeText: "Ada"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Resume must contain at least name and email", detail(t, w))
	})

	t.Run("llm failure", func(t *testing.T) {
		s, _ := newTestServer(t, func(string, llm.ModelTier, bool) (string, error) {
			return "", errors.New("boom")
		})
		w := doRequest(t, s.Handler(), http.MethodPost, "/api/profile/parse-resume-text", types.ResumeParseRequest{ResumeText: "Ada"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.True(t, strings.HasPrefix(detail(t, w), "Failed to parse resume: "))
	})
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/profile/parse-resume-pdf", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestParseResumePDFEndpoint(t *testing.T) {
	s, stub := newTestServer(t, replyWith(adaResumeJSON))

	t.Run("rejects non-pdf", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, uploadRequest(t, "resume.docx", []byte("hello")))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Only PDF files are supported", detail(t, w))
	})

	t.Run("unreadable pdf", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, uploadRequest(t, "resume.PDF", []byte("not really a pdf")))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, detail(t, w), "failed to open PDF")
	})

	t.Run("missing file", func(t *testing.T) {
		w := doRequest(t, s.Handler(), http.MethodPost, "/api/profile/parse-resume-pdf", `{}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	assert.Empty(t, stub.Prompts())
}

func TestCORS(t *testing.T) {
	s, _ := newTestServer(t, replyWith(""))

	req := httptest.NewRequest(http.MethodOptions, "/api/companies", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID(t *testing.T) {
	s, _ := newTestServer(t, replyWith(""))

	w := doRequest(t, s.Handler(), http.MethodGet, "/health", nil)
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "trace-123", w.Header().Get("X-Request-ID"))
}

func TestRateLimit(t *testing.T) {
	stub := llm.NewStubClient(replyWith("draft"))
	s := New(Config{RateLimit: &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/api/companies", Method: "POST", Limit: 2, Window: time.Hour, Burst: 2},
		},
	}}, db.NewMemoryStore(), stub)
	t.Cleanup(s.Close)

	for i := 0; i < 2; i++ {
		w := doRequest(t, s.Handler(), http.MethodPost, "/api/companies", types.CompanyInput{Name: "Acme"})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := doRequest(t, s.Handler(), http.MethodPost, "/api/companies", types.CompanyInput{Name: "Acme"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1800", w.Header().Get("Retry-After"))
	assert.Equal(t, "Rate limit exceeded. Please try again later.", detail(t, w))

	w = doRequest(t, s.Handler(), http.MethodGet, "/api/companies", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
