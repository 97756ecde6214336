// Package types provides type definitions for the records exchanged between the
// internship generator API, its client and the page controllers.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// ExperienceItem is one work experience entry on a profile.
type ExperienceItem struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Duration    string `json:"duration"`
	Description string `json:"description,omitempty"`
}

// ProjectItem is one project entry on a profile.
type ProjectItem struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TechStack   []string `json:"tech_stack"`
	Link        string   `json:"link,omitempty"`
}

// EducationItem is one education entry on a profile.
type EducationItem struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
	GPA         string `json:"gpa,omitempty"`
}

// CertificationItem is one certification entry on a profile.
type CertificationItem struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

// ProfileInput is the payload for creating or replacing a user profile.
type ProfileInput struct {
	Name           string              `json:"name" validate:"required,min=1,max=255"`
	Email          string              `json:"email" validate:"required,email"`
	Phone          string              `json:"phone"`
	Location       string              `json:"location"`
	Bio            string              `json:"bio"`
	Skills         []string            `json:"skills"`
	Experience     []ExperienceItem    `json:"experience"`
	Projects       []ProjectItem       `json:"projects"`
	Education      []EducationItem     `json:"education"`
	Links          map[string]string   `json:"links"`
	ResumeURL      string              `json:"resume_url"`
	Achievements   []string            `json:"achievements"`
	Certifications []CertificationItem `json:"certifications"`
	Languages      []string            `json:"languages"`
	Interests      string              `json:"interests"`
}

// Validate validates the ProfileInput using the validator.
func (p *ProfileInput) Validate() error {
	return validate.Struct(p)
}

// Normalize replaces nil collections with empty ones so stored and encoded
// profiles never carry JSON nulls.
func (p *ProfileInput) Normalize() {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []ExperienceItem{}
	}
	if p.Projects == nil {
		p.Projects = []ProjectItem{}
	}
	if p.Education == nil {
		p.Education = []EducationItem{}
	}
	if p.Links == nil {
		p.Links = map[string]string{}
	}
	if p.Achievements == nil {
		p.Achievements = []string{}
	}
	if p.Certifications == nil {
		p.Certifications = []CertificationItem{}
	}
	if p.Languages == nil {
		p.Languages = []string{}
	}
}

// UserProfile is a stored profile. At most one exists per session.
type UserProfile struct {
	ID int64 `json:"id"`
	ProfileInput
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Input returns the editable fields of the profile.
func (p *UserProfile) Input() ProfileInput {
	return p.ProfileInput
}

// ProfileUpdate is a partial profile update; nil fields are left unchanged.
type ProfileUpdate struct {
	Name           *string              `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Email          *string              `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string              `json:"phone,omitempty"`
	Location       *string              `json:"location,omitempty"`
	Bio            *string              `json:"bio,omitempty"`
	Skills         *[]string            `json:"skills,omitempty"`
	Experience     *[]ExperienceItem    `json:"experience,omitempty"`
	Projects       *[]ProjectItem       `json:"projects,omitempty"`
	Education      *[]EducationItem     `json:"education,omitempty"`
	Links          *map[string]string   `json:"links,omitempty"`
	ResumeURL      *string              `json:"resume_url,omitempty"`
	Achievements   *[]string            `json:"achievements,omitempty"`
	Certifications *[]CertificationItem `json:"certifications,omitempty"`
	Languages      *[]string            `json:"languages,omitempty"`
	Interests      *string              `json:"interests,omitempty"`
}

// Validate validates the ProfileUpdate using the validator.
func (u *ProfileUpdate) Validate() error {
	return validate.Struct(u)
}

// Apply copies every provided field of the update onto the input.
func (u *ProfileUpdate) Apply(p *ProfileInput) {
	setString(&p.Name, u.Name)
	setString(&p.Email, u.Email)
	setString(&p.Phone, u.Phone)
	setString(&p.Location, u.Location)
	setString(&p.Bio, u.Bio)
	setString(&p.ResumeURL, u.ResumeURL)
	setString(&p.Interests, u.Interests)
	if u.Skills != nil {
		p.Skills = *u.Skills
	}
	if u.Experience != nil {
		p.Experience = *u.Experience
	}
	if u.Projects != nil {
		p.Projects = *u.Projects
	}
	if u.Education != nil {
		p.Education = *u.Education
	}
	if u.Links != nil {
		p.Links = *u.Links
	}
	if u.Achievements != nil {
		p.Achievements = *u.Achievements
	}
	if u.Certifications != nil {
		p.Certifications = *u.Certifications
	}
	if u.Languages != nil {
		p.Languages = *u.Languages
	}
	p.Normalize()
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
