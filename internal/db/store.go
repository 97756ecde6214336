package db

import (
	"context"
	"errors"

	"github.com/jonathan/internship-generator/internal/types"
)

// MaxPageSize is the largest page a list call returns.
const MaxPageSize = 100

// ErrDuplicateEmail is returned when a profile is created with an email that
// already belongs to another profile.
var ErrDuplicateEmail = errors.New("a profile with this email already exists")

// Page selects a window of a list. A zero Limit means MaxPageSize.
type Page struct {
	Skip  int
	Limit int
}

// Normalize clamps the page to valid bounds.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 || p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

func (p Page) apply(n int) (int, int) {
	p = p.Normalize()
	start := min(p.Skip, n)
	end := min(start+p.Limit, n)
	return start, end
}

// Store persists profiles, companies and examples. Lookups return nil with a
// nil error when the record does not exist.
type Store interface {
	CreateProfile(ctx context.Context, in types.ProfileInput) (*types.UserProfile, error)
	// GetCurrentProfile returns the first stored profile.
	GetCurrentProfile(ctx context.Context) (*types.UserProfile, error)
	GetProfile(ctx context.Context, id int64) (*types.UserProfile, error)
	UpdateProfile(ctx context.Context, id int64, in types.ProfileInput) (*types.UserProfile, error)
	DeleteProfile(ctx context.Context, id int64) (bool, error)

	CreateCompany(ctx context.Context, in types.CompanyInput) (*types.Company, error)
	GetCompany(ctx context.Context, id int64) (*types.Company, error)
	ListCompanies(ctx context.Context, page Page) ([]types.Company, error)
	UpdateCompany(ctx context.Context, id int64, in types.CompanyInput) (*types.Company, error)
	DeleteCompany(ctx context.Context, id int64) (bool, error)

	CreateExample(ctx context.Context, in types.ExampleInput) (*types.Example, error)
	GetExample(ctx context.Context, id int64) (*types.Example, error)
	// ListExamples returns examples ordered by quality rating, highest first.
	// An empty filter matches every generation type.
	ListExamples(ctx context.Context, filter types.GenerationType, page Page) ([]types.Example, error)
	UpdateExample(ctx context.Context, id int64, in types.ExampleInput) (*types.Example, error)
	DeleteExample(ctx context.Context, id int64) (bool, error)

	Ping(ctx context.Context) error
	Close()
}

// Open returns a PostgreSQL store when databaseURL is set and an in-memory
// store otherwise.
func Open(ctx context.Context, databaseURL string) (Store, error) {
	if databaseURL == "" {
		return NewMemoryStore(), nil
	}
	database, err := Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return database, nil
}
