package types

import (
	"strings"
	"time"
)

// CompanyInput is the payload for creating or replacing a target company.
// Description holds all unstructured information about the company in one
// free-text field.
type CompanyInput struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	JobRole     string `json:"job_role"`
	Description string `json:"description"`
}

// Validate validates the CompanyInput using the validator.
func (c *CompanyInput) Validate() error {
	return validate.Struct(c)
}

// Company is a stored target organization.
//
// FounderName, Industry, Website and TechStack belong to the older structured
// company shape. They are decoded when present so AllInfo can fold them into
// the free-text description, but they are never written.
type Company struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	JobRole     string     `json:"job_role"`
	Description string     `json:"description"`
	FounderName string     `json:"founder_name,omitempty"`
	Industry    string     `json:"industry,omitempty"`
	Website     string     `json:"website,omitempty"`
	TechStack   []string   `json:"tech_stack,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Input returns the editable fields of the company.
func (c *Company) Input() CompanyInput {
	return CompanyInput{Name: c.Name, JobRole: c.JobRole, Description: c.Description}
}

// AllInfo returns the free-text description. When the description is empty
// it is rebuilt from the legacy structured fields.
func (c *Company) AllInfo() string {
	if strings.TrimSpace(c.Description) != "" {
		return c.Description
	}

	var parts []string
	if c.FounderName != "" {
		parts = append(parts, "Founder: "+c.FounderName)
	}
	if c.Industry != "" {
		parts = append(parts, "Industry: "+c.Industry)
	}
	if c.Website != "" {
		parts = append(parts, "Website: "+c.Website)
	}
	if len(c.TechStack) > 0 {
		parts = append(parts, "Tech Stack: "+strings.Join(c.TechStack, ", "))
	}
	return strings.Join(parts, "\n")
}

// Label is the display name used in company pickers, e.g. "Acme (SWE Intern)".
func (c *Company) Label() string {
	if c.JobRole == "" {
		return c.Name
	}
	return c.Name + " (" + c.JobRole + ")"
}

// CompanyUpdate is a partial company update; nil fields are left unchanged.
type CompanyUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	JobRole     *string `json:"job_role,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Validate validates the CompanyUpdate using the validator.
func (u *CompanyUpdate) Validate() error {
	return validate.Struct(u)
}

// Apply copies every provided field of the update onto the input.
func (u *CompanyUpdate) Apply(c *CompanyInput) {
	setString(&c.Name, u.Name)
	setString(&c.JobRole, u.JobRole)
	setString(&c.Description, u.Description)
}
