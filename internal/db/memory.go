package db

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/internship-generator/internal/types"
)

// MemoryStore is a Store held in process memory. Ids are assigned
// sequentially per record kind, starting at 1.
type MemoryStore struct {
	mu  sync.RWMutex
	now func() time.Time

	profiles  map[int64]types.UserProfile
	companies map[int64]types.Company
	examples  map[int64]types.Example

	nextProfileID int64
	nextCompanyID int64
	nextExampleID int64
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:       time.Now,
		profiles:  make(map[int64]types.UserProfile),
		companies: make(map[int64]types.Company),
		examples:  make(map[int64]types.Example),
	}
}

// -----------------------------------------------------------------------------
// Profile Methods
// -----------------------------------------------------------------------------

// CreateProfile stores a new profile.
func (m *MemoryStore) CreateProfile(_ context.Context, in types.ProfileInput) (*types.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.profiles {
		if strings.EqualFold(p.Email, in.Email) {
			return nil, ErrDuplicateEmail
		}
	}

	in.Normalize()
	m.nextProfileID++
	p := types.UserProfile{ID: m.nextProfileID, ProfileInput: in, CreatedAt: m.now()}
	m.profiles[p.ID] = p
	return &p, nil
}

// GetCurrentProfile returns the profile with the lowest id.
func (m *MemoryStore) GetCurrentProfile(_ context.Context) (*types.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.profiles) == 0 {
		return nil, nil
	}
	ids := sortedKeys(m.profiles)
	p := m.profiles[ids[0]]
	return &p, nil
}

// GetProfile returns a profile by id.
func (m *MemoryStore) GetProfile(_ context.Context, id int64) (*types.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// UpdateProfile replaces the editable fields of a profile.
func (m *MemoryStore) UpdateProfile(_ context.Context, id int64, in types.ProfileInput) (*types.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[id]
	if !ok {
		return nil, nil
	}
	for otherID, other := range m.profiles {
		if otherID != id && strings.EqualFold(other.Email, in.Email) {
			return nil, ErrDuplicateEmail
		}
	}

	in.Normalize()
	now := m.now()
	p.ProfileInput = in
	p.UpdatedAt = &now
	m.profiles[id] = p
	return &p, nil
}

// DeleteProfile removes a profile and reports whether it existed.
func (m *MemoryStore) DeleteProfile(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[id]; !ok {
		return false, nil
	}
	delete(m.profiles, id)
	return true, nil
}

// -----------------------------------------------------------------------------
// Company Methods
// -----------------------------------------------------------------------------

// CreateCompany stores a new company.
func (m *MemoryStore) CreateCompany(_ context.Context, in types.CompanyInput) (*types.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextCompanyID++
	c := types.Company{
		ID:          m.nextCompanyID,
		Name:        in.Name,
		JobRole:     in.JobRole,
		Description: in.Description,
		CreatedAt:   m.now(),
	}
	m.companies[c.ID] = c
	return &c, nil
}

// GetCompany returns a company by id.
func (m *MemoryStore) GetCompany(_ context.Context, id int64) (*types.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// ListCompanies returns companies in creation order.
func (m *MemoryStore) ListCompanies(_ context.Context, page Page) ([]types.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := sortedKeys(m.companies)
	start, end := page.apply(len(ids))
	out := make([]types.Company, 0, end-start)
	for _, id := range ids[start:end] {
		out = append(out, m.companies[id])
	}
	return out, nil
}

// UpdateCompany replaces the editable fields of a company.
func (m *MemoryStore) UpdateCompany(_ context.Context, id int64, in types.CompanyInput) (*types.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.companies[id]
	if !ok {
		return nil, nil
	}
	now := m.now()
	c.Name = in.Name
	c.JobRole = in.JobRole
	c.Description = in.Description
	c.UpdatedAt = &now
	m.companies[id] = c
	return &c, nil
}

// DeleteCompany removes a company and reports whether it existed.
func (m *MemoryStore) DeleteCompany(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.companies[id]; !ok {
		return false, nil
	}
	delete(m.companies, id)
	return true, nil
}

// -----------------------------------------------------------------------------
// Example Methods
// -----------------------------------------------------------------------------

// CreateExample stores a new example.
func (m *MemoryStore) CreateExample(_ context.Context, in types.ExampleInput) (*types.Example, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextExampleID++
	e := types.Example{ID: m.nextExampleID, ExampleInput: in, CreatedAt: m.now()}
	m.examples[e.ID] = e
	return &e, nil
}

// GetExample returns an example by id.
func (m *MemoryStore) GetExample(_ context.Context, id int64) (*types.Example, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.examples[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// ListExamples returns examples of the given type, highest rated first.
func (m *MemoryStore) ListExamples(_ context.Context, filter types.GenerationType, page Page) ([]types.Example, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]types.Example, 0, len(m.examples))
	for _, e := range m.examples {
		if filter == "" || e.GenerationType == filter {
			matched = append(matched, e)
		}
	}
	slices.SortFunc(matched, func(a, b types.Example) int {
		if c := cmp.Compare(b.QualityRating, a.QualityRating); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	start, end := page.apply(len(matched))
	return matched[start:end], nil
}

// UpdateExample replaces the editable fields of an example.
func (m *MemoryStore) UpdateExample(_ context.Context, id int64, in types.ExampleInput) (*types.Example, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.examples[id]
	if !ok {
		return nil, nil
	}
	now := m.now()
	e.ExampleInput = in
	e.UpdatedAt = &now
	m.examples[id] = e
	return &e, nil
}

// DeleteExample removes an example and reports whether it existed.
func (m *MemoryStore) DeleteExample(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.examples[id]; !ok {
		return false, nil
	}
	delete(m.examples, id)
	return true, nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(context.Context) error { return nil }

// Close is a no-op.
func (m *MemoryStore) Close() {}

func sortedKeys[V any](records map[int64]V) []int64 {
	ids := make([]int64, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
