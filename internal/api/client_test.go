package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/internship-generator/internal/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func TestNew_Defaults(t *testing.T) {
	c := New("")
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.NotNil(t, c.Profiles)
	assert.NotNil(t, c.Companies)
	assert.NotNil(t, c.Examples)
	assert.NotNil(t, c.Generation)
}

func TestClient_UserAgentOption(t *testing.T) {
	var gotUA string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`[]`))
	})
	c = New(c.BaseURL(), WithUserAgent("tester/2.0"))

	_, err := c.Companies.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tester/2.0", gotUA)
}

func TestProfilesGet(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantNil  bool
		wantErr  string
		wantName string
	}{
		{
			name:     "found",
			status:   http.StatusOK,
			body:     `{"id":1,"name":"Ada","email":"ada@x.com","skills":["Python"]}`,
			wantName: "Ada",
		},
		{
			name:    "absent",
			status:  http.StatusNotFound,
			body:    `{"detail":"No user profile found. Please create one first."}`,
			wantNil: true,
		},
		{
			name:    "server error surfaces body",
			status:  http.StatusInternalServerError,
			body:    `{"detail":"database down"}`,
			wantErr: `{"detail":"database down"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/api/profile", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			profile, err := c.Profiles.Get(context.Background())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				var apiErr *Error
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.status, apiErr.StatusCode)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, profile)
				return
			}
			require.NotNil(t, profile)
			assert.Equal(t, tt.wantName, profile.Name)
		})
	}
}

func TestProfilesCreateAndUpdate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var in types.ProfileInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/profile":
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(types.UserProfile{ID: 1, ProfileInput: in})
		case r.Method == http.MethodPut && r.URL.Path == "/api/profile/1":
			_ = json.NewEncoder(w).Encode(types.UserProfile{ID: 1, ProfileInput: in})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})
	ctx := context.Background()

	created, err := c.Profiles.Create(ctx, &types.ProfileInput{Name: "Ada", Email: "ada@x.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	updated, err := c.Profiles.Update(ctx, 1, &types.ProfileInput{Name: "Ada L", Email: "ada@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ada L", updated.Name)
}

func TestProfilesParseResumeText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/profile/parse-resume-text", r.URL.Path)
		var in types.ResumeParseRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Ada Lovelace\nada@x.com", in.ResumeText)
		_, _ = w.Write([]byte(`{"parsed_data":{"name":"Ada Lovelace","email":"ada@x.com"},"message":"Resume parsed successfully"}`))
	})

	res, err := c.Profiles.ParseResumeText(context.Background(), "Ada Lovelace\nada@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", res.ParsedData.Name)
	assert.Equal(t, "Resume parsed successfully", res.Message)
}

func TestProfilesParseResumePDF(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/profile/parse-resume-pdf", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Len(t, r.MultipartForm.File, 1)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		assert.Equal(t, "resume.pdf", header.Filename)
		assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))

		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, pdf, data)

		_, _ = w.Write([]byte(`{"parsed_data":{"name":"Ada","email":"ada@x.com"},"message":"ok"}`))
	})

	res, err := c.Profiles.ParseResumePDF(context.Background(), "/tmp/docs/resume.pdf", pdf)
	require.NoError(t, err)
	assert.Equal(t, "Ada", res.ParsedData.Name)
}

func TestCompanies_CRUD(t *testing.T) {
	store := map[int64]types.Company{}
	var nextID int64
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/companies":
			var in types.CompanyInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			nextID++
			co := types.Company{ID: nextID, Name: in.Name, JobRole: in.JobRole, Description: in.Description}
			store[co.ID] = co
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(co)
		case r.Method == http.MethodGet && r.URL.Path == "/api/companies":
			list := []types.Company{}
			for id := int64(1); id <= nextID; id++ {
				if co, ok := store[id]; ok {
					list = append(list, co)
				}
			}
			_ = json.NewEncoder(w).Encode(list)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/companies/1":
			delete(store, 1)
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet && r.URL.Path == "/api/companies/1":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Company with ID 1 not found"}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})
	ctx := context.Background()

	acme, err := c.Companies.Create(ctx, &types.CompanyInput{Name: "Acme", JobRole: "SWE Intern"})
	require.NoError(t, err)
	_, err = c.Companies.Create(ctx, &types.CompanyInput{Name: "Globex"})
	require.NoError(t, err)

	list, err := c.Companies.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Acme", list[0].Name)

	require.NoError(t, c.Companies.Delete(ctx, acme.ID))

	list, err = c.Companies.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotEqual(t, acme.ID, list[0].ID)

	_, err = c.Companies.Get(ctx, acme.ID)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, `{"detail":"Company with ID 1 not found"}`, err.Error())
}

func TestExamplesList_Filter(t *testing.T) {
	tests := []struct {
		name      string
		filter    types.GenerationType
		wantQuery string
	}{
		{name: "no filter", filter: "", wantQuery: ""},
		{name: "cold dm", filter: types.GenerationColdDM, wantQuery: "generation_type=cold_dm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/examples", r.URL.Path)
				assert.Equal(t, tt.wantQuery, r.URL.RawQuery)
				_, _ = w.Write([]byte(`[{"id":3,"generation_type":"cold_dm","content":"Hey there, quick question","quality_rating":4.5}]`))
			})

			list, err := c.Examples.List(context.Background(), tt.filter)
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, 4.5, list[0].QualityRating)
		})
	}
}

func TestExamples_UpdateAndDelete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/api/examples/9":
			var in types.ExampleInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			_ = json.NewEncoder(w).Encode(types.Example{ID: 9, ExampleInput: in})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/examples/9":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})
	ctx := context.Background()

	ex, err := c.Examples.Update(ctx, 9, &types.ExampleInput{
		GenerationType: types.GenerationColdEmail,
		Content:        "Subject: Hello\n\nHi team",
		QualityRating:  3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), ex.ID)
	assert.Equal(t, 3.0, ex.QualityRating)

	assert.NoError(t, c.Examples.Delete(ctx, 9))
}

func TestGeneration_GenerateAndRefine(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/generate":
			var req types.GenerationRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, types.GenerationColdEmail, req.GenerationType)
			_ = json.NewEncoder(w).Encode(types.GenerationResult{
				GeneratedContent: "Subject: Hi\n\nHello Acme",
				ChainOfThought:   "plan",
				GenerationType:   req.GenerationType,
				UserProfileID:    req.UserProfileID,
				CompanyID:        req.CompanyID,
			})
		case "/api/refine":
			var req types.RefinementRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Hello Acme", req.SectionToReplace)
			_, _ = w.Write([]byte(`{"refined_section":"Hello Acme team"}`))
		case "/api/generate/bulk":
			_, _ = w.Write([]byte(`{"results":[],"total_generated":0,"failed":[{"company_id":5,"error":"Company with ID 5 not found"}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	ctx := context.Background()

	res, err := c.Generation.Generate(ctx, &types.GenerationRequest{
		UserProfileID: 1, CompanyID: 2, GenerationType: types.GenerationColdEmail,
	})
	require.NoError(t, err)
	assert.Equal(t, "plan", res.ChainOfThought)
	assert.Equal(t, int64(2), res.CompanyID)

	refined, err := c.Generation.Refine(ctx, &types.RefinementRequest{
		UserProfileID: 1, CompanyID: 2, GenerationType: types.GenerationColdEmail,
		FullContent: res.GeneratedContent, SectionToReplace: "Hello Acme", UserFeedback: "warmer",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello Acme team", refined.RefinedSection)

	bulk, err := c.Generation.GenerateBulk(ctx, &types.BulkGenerationRequest{
		UserProfileID: 1, CompanyIDs: []int64{5}, GenerationType: types.GenerationColdDM,
	})
	require.NoError(t, err)
	require.Len(t, bulk.Failed, 1)
	assert.Equal(t, int64(5), bulk.Failed[0].CompanyID)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url).Companies.List(context.Background())
	require.Error(t, err)
	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
}

func TestError_EmptyBody(t *testing.T) {
	err := &Error{StatusCode: http.StatusBadGateway}
	assert.Equal(t, "HTTP status 502", err.Error())
}
