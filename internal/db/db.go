// Package db provides storage for profiles, companies and writing examples,
// backed by PostgreSQL or process memory.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/internship-generator/internal/types"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

var _ Store = (*DB)(nil)

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping verifies the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Pool exposes the underlying pool for migrations.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// -----------------------------------------------------------------------------
// Profile Methods
// -----------------------------------------------------------------------------

const profileColumns = `id, name, email, phone, location, bio, skills, experience, projects,
	education, links, resume_url, achievements, certifications, languages, interests,
	created_at, updated_at`

// CreateProfile inserts a new profile
func (db *DB) CreateProfile(ctx context.Context, in types.ProfileInput) (*types.UserProfile, error) {
	in.Normalize()
	args, err := profileArgs(&in)
	if err != nil {
		return nil, err
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO user_profiles (name, email, phone, location, bio, skills, experience, projects,
			education, links, resume_url, achievements, certifications, languages, interests)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING `+profileColumns,
		args...,
	)
	p, err := scanProfile(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return p, nil
}

// GetCurrentProfile returns the oldest profile
func (db *DB) GetCurrentProfile(ctx context.Context) (*types.UserProfile, error) {
	row := db.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM user_profiles ORDER BY id LIMIT 1`)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get current profile: %w", err)
	}
	return p, nil
}

// GetProfile retrieves a profile by ID
func (db *DB) GetProfile(ctx context.Context, id int64) (*types.UserProfile, error) {
	row := db.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE id = $1`, id)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile %d: %w", id, err)
	}
	return p, nil
}

// UpdateProfile replaces the editable fields of a profile
func (db *DB) UpdateProfile(ctx context.Context, id int64, in types.ProfileInput) (*types.UserProfile, error) {
	in.Normalize()
	args, err := profileArgs(&in)
	if err != nil {
		return nil, err
	}

	row := db.pool.QueryRow(ctx,
		`UPDATE user_profiles SET name = $2, email = $3, phone = $4, location = $5, bio = $6,
			skills = $7, experience = $8, projects = $9, education = $10, links = $11,
			resume_url = $12, achievements = $13, certifications = $14, languages = $15,
			interests = $16, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+profileColumns,
		append([]any{id}, args...)...,
	)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to update profile %d: %w", id, err)
	}
	return p, nil
}

// DeleteProfile deletes a profile
func (db *DB) DeleteProfile(ctx context.Context, id int64) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM user_profiles WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete profile %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func profileArgs(in *types.ProfileInput) ([]any, error) {
	jsonFields := []any{in.Skills, in.Experience, in.Projects, in.Education, in.Links,
		in.Achievements, in.Certifications, in.Languages}
	encoded := make([][]byte, len(jsonFields))
	for i, field := range jsonFields {
		b, err := json.Marshal(field)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal profile field: %w", err)
		}
		encoded[i] = b
	}

	return []any{
		in.Name, in.Email, in.Phone, in.Location, in.Bio,
		encoded[0], encoded[1], encoded[2], encoded[3], encoded[4],
		in.ResumeURL, encoded[5], encoded[6], encoded[7], in.Interests,
	}, nil
}

func scanProfile(row pgx.Row) (*types.UserProfile, error) {
	var p types.UserProfile
	var skills, experience, projects, education, links, achievements, certifications, languages []byte
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Location, &p.Bio,
		&skills, &experience, &projects, &education, &links, &p.ResumeURL,
		&achievements, &certifications, &languages, &p.Interests,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	fields := []struct {
		raw []byte
		dst any
	}{
		{skills, &p.Skills},
		{experience, &p.Experience},
		{projects, &p.Projects},
		{education, &p.Education},
		{links, &p.Links},
		{achievements, &p.Achievements},
		{certifications, &p.Certifications},
		{languages, &p.Languages},
	}
	for _, f := range fields {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile %d: %w", p.ID, err)
		}
	}
	p.Normalize()
	return &p, nil
}

// -----------------------------------------------------------------------------
// Company Methods
// -----------------------------------------------------------------------------

const companyColumns = `id, name, job_role, description, founder_name, industry, website,
	tech_stack, created_at, updated_at`

// CreateCompany inserts a new company
func (db *DB) CreateCompany(ctx context.Context, in types.CompanyInput) (*types.Company, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO companies (name, job_role, description)
		 VALUES ($1, $2, $3)
		 RETURNING `+companyColumns,
		in.Name, in.JobRole, in.Description,
	)
	c, err := scanCompany(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return c, nil
}

// GetCompany retrieves a company by ID
func (db *DB) GetCompany(ctx context.Context, id int64) (*types.Company, error) {
	row := db.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	c, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company %d: %w", id, err)
	}
	return c, nil
}

// ListCompanies lists companies in creation order
func (db *DB) ListCompanies(ctx context.Context, page Page) ([]types.Company, error) {
	page = page.Normalize()
	rows, err := db.pool.Query(ctx,
		`SELECT `+companyColumns+` FROM companies ORDER BY id OFFSET $1 LIMIT $2`,
		page.Skip, page.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	companies := []types.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

// UpdateCompany replaces the editable fields of a company
func (db *DB) UpdateCompany(ctx context.Context, id int64, in types.CompanyInput) (*types.Company, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE companies SET name = $2, job_role = $3, description = $4, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+companyColumns,
		id, in.Name, in.JobRole, in.Description,
	)
	c, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update company %d: %w", id, err)
	}
	return c, nil
}

// DeleteCompany deletes a company
func (db *DB) DeleteCompany(ctx context.Context, id int64) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete company %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanCompany(row pgx.Row) (*types.Company, error) {
	var c types.Company
	var techStack []byte
	err := row.Scan(&c.ID, &c.Name, &c.JobRole, &c.Description, &c.FounderName,
		&c.Industry, &c.Website, &techStack, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(techStack) > 0 {
		if err := json.Unmarshal(techStack, &c.TechStack); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tech stack: %w", err)
		}
	}
	return &c, nil
}

// -----------------------------------------------------------------------------
// Example Methods
// -----------------------------------------------------------------------------

const exampleColumns = `id, generation_type, content, quality_rating, title, notes, created_at, updated_at`

// CreateExample inserts a new example
func (db *DB) CreateExample(ctx context.Context, in types.ExampleInput) (*types.Example, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO examples (generation_type, content, quality_rating, title, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+exampleColumns,
		string(in.GenerationType), in.Content, in.QualityRating, in.Title, in.Notes,
	)
	e, err := scanExample(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create example: %w", err)
	}
	return e, nil
}

// GetExample retrieves an example by ID
func (db *DB) GetExample(ctx context.Context, id int64) (*types.Example, error) {
	row := db.pool.QueryRow(ctx, `SELECT `+exampleColumns+` FROM examples WHERE id = $1`, id)
	e, err := scanExample(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get example %d: %w", id, err)
	}
	return e, nil
}

// ListExamples lists examples, highest rated first
func (db *DB) ListExamples(ctx context.Context, filter types.GenerationType, page Page) ([]types.Example, error) {
	page = page.Normalize()
	rows, err := db.pool.Query(ctx,
		`SELECT `+exampleColumns+` FROM examples
		 WHERE $1 = '' OR generation_type = $1
		 ORDER BY quality_rating DESC, id
		 OFFSET $2 LIMIT $3`,
		string(filter), page.Skip, page.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list examples: %w", err)
	}
	defer rows.Close()

	examples := []types.Example{}
	for rows.Next() {
		e, err := scanExample(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan example: %w", err)
		}
		examples = append(examples, *e)
	}
	return examples, rows.Err()
}

// UpdateExample replaces the editable fields of an example
func (db *DB) UpdateExample(ctx context.Context, id int64, in types.ExampleInput) (*types.Example, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE examples SET generation_type = $2, content = $3, quality_rating = $4,
			title = $5, notes = $6, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+exampleColumns,
		id, string(in.GenerationType), in.Content, in.QualityRating, in.Title, in.Notes,
	)
	e, err := scanExample(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update example %d: %w", id, err)
	}
	return e, nil
}

// DeleteExample deletes an example
func (db *DB) DeleteExample(ctx context.Context, id int64) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM examples WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete example %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanExample(row pgx.Row) (*types.Example, error) {
	var e types.Example
	var genType string
	err := row.Scan(&e.ID, &genType, &e.Content, &e.QualityRating, &e.Title, &e.Notes,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.GenerationType = types.GenerationType(genType)
	return &e, nil
}
