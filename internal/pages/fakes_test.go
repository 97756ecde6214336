package pages

import (
	"context"
	"fmt"
	"sort"

	"github.com/jonathan/internship-generator/internal/api"
	"github.com/jonathan/internship-generator/internal/types"
)

type fakeProfiles struct {
	profile   *types.UserProfile
	getErr    error
	saveErr   error
	parsed    *types.ResumeParseResult
	parseErr  error
	creates   int
	updates   int
	parseText string
	parsePDF  string
}

func (f *fakeProfiles) Get(context.Context) (*types.UserProfile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.profile == nil {
		return nil, nil
	}
	cp := *f.profile
	return &cp, nil
}

func (f *fakeProfiles) Create(_ context.Context, in *types.ProfileInput) (*types.UserProfile, error) {
	f.creates++
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.profile = &types.UserProfile{ID: 1, ProfileInput: *in}
	return f.profile, nil
}

func (f *fakeProfiles) Update(_ context.Context, id int64, in *types.ProfileInput) (*types.UserProfile, error) {
	f.updates++
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.profile = &types.UserProfile{ID: id, ProfileInput: *in}
	return f.profile, nil
}

func (f *fakeProfiles) ParseResumeText(_ context.Context, text string) (*types.ResumeParseResult, error) {
	f.parseText = text
	return f.parsed, f.parseErr
}

func (f *fakeProfiles) ParseResumePDF(_ context.Context, filename string, _ []byte) (*types.ResumeParseResult, error) {
	f.parsePDF = filename
	return f.parsed, f.parseErr
}

type fakeCompanies struct {
	items   map[int64]types.Company
	nextID  int64
	listErr error
	calls   int
}

func newFakeCompanies(companies ...types.Company) *fakeCompanies {
	f := &fakeCompanies{items: map[int64]types.Company{}}
	for _, c := range companies {
		f.items[c.ID] = c
		if c.ID > f.nextID {
			f.nextID = c.ID
		}
	}
	return f
}

func (f *fakeCompanies) Create(_ context.Context, in *types.CompanyInput) (*types.Company, error) {
	f.calls++
	f.nextID++
	c := types.Company{ID: f.nextID, Name: in.Name, JobRole: in.JobRole, Description: in.Description}
	f.items[c.ID] = c
	return &c, nil
}

func (f *fakeCompanies) List(context.Context) ([]types.Company, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := make([]int64, 0, len(f.items))
	for id := range f.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]types.Company, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.items[id])
	}
	return out, nil
}

func (f *fakeCompanies) Get(_ context.Context, id int64) (*types.Company, error) {
	c, ok := f.items[id]
	if !ok {
		return nil, notFound("Company", id)
	}
	return &c, nil
}

func (f *fakeCompanies) Update(_ context.Context, id int64, in *types.CompanyInput) (*types.Company, error) {
	f.calls++
	c, ok := f.items[id]
	if !ok {
		return nil, notFound("Company", id)
	}
	c.Name, c.JobRole, c.Description = in.Name, in.JobRole, in.Description
	f.items[id] = c
	return &c, nil
}

func (f *fakeCompanies) Delete(_ context.Context, id int64) error {
	f.calls++
	if _, ok := f.items[id]; !ok {
		return notFound("Company", id)
	}
	delete(f.items, id)
	return nil
}

type fakeExamples struct {
	items   map[int64]types.Example
	nextID  int64
	filters []types.GenerationType
	listErr error
	calls   int
}

func newFakeExamples() *fakeExamples {
	return &fakeExamples{items: map[int64]types.Example{}}
}

func (f *fakeExamples) Create(_ context.Context, in *types.ExampleInput) (*types.Example, error) {
	f.calls++
	f.nextID++
	ex := types.Example{ID: f.nextID, ExampleInput: *in}
	f.items[ex.ID] = ex
	return &ex, nil
}

func (f *fakeExamples) List(_ context.Context, filter types.GenerationType) ([]types.Example, error) {
	f.filters = append(f.filters, filter)
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []types.Example{}
	for _, ex := range f.items {
		if filter == "" || ex.GenerationType == filter {
			out = append(out, ex)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeExamples) Get(_ context.Context, id int64) (*types.Example, error) {
	ex, ok := f.items[id]
	if !ok {
		return nil, notFound("Example", id)
	}
	return &ex, nil
}

func (f *fakeExamples) Update(_ context.Context, id int64, in *types.ExampleInput) (*types.Example, error) {
	f.calls++
	ex, ok := f.items[id]
	if !ok {
		return nil, notFound("Example", id)
	}
	ex.ExampleInput = *in
	f.items[id] = ex
	return &ex, nil
}

func (f *fakeExamples) Delete(_ context.Context, id int64) error {
	f.calls++
	if _, ok := f.items[id]; !ok {
		return notFound("Example", id)
	}
	delete(f.items, id)
	return nil
}

type fakeGeneration struct {
	result      *types.GenerationResult
	refined     string
	err         error
	generations []types.GenerationRequest
	refines     []types.RefinementRequest
}

func (f *fakeGeneration) Generate(_ context.Context, req *types.GenerationRequest) (*types.GenerationResult, error) {
	f.generations = append(f.generations, *req)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeGeneration) Refine(_ context.Context, req *types.RefinementRequest) (*types.RefinementResult, error) {
	f.refines = append(f.refines, *req)
	if f.err != nil {
		return nil, f.err
	}
	return &types.RefinementResult{RefinedSection: f.refined}, nil
}

func notFound(kind string, id int64) error {
	return &api.Error{StatusCode: 404, Body: fmt.Sprintf(`{"detail":"%s with ID %d not found"}`, kind, id)}
}
