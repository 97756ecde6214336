package types

import "time"

// ExampleInput is the payload for creating or replacing a writing sample.
type ExampleInput struct {
	GenerationType GenerationType `json:"generation_type" validate:"required,generation_type"`
	Content        string         `json:"content" validate:"required,min=10"`
	QualityRating  float64        `json:"quality_rating" validate:"gte=1,lte=5,half_step"`
	Title          string         `json:"title" validate:"max=255"`
	Notes          string         `json:"notes"`
}

// DefaultQualityRating is the rating assigned to new examples.
const DefaultQualityRating = 5.0

// Validate validates the ExampleInput using the validator.
func (e *ExampleInput) Validate() error {
	return validate.Struct(e)
}

// Example is a stored writing sample used to ground generation.
type Example struct {
	ID int64 `json:"id"`
	ExampleInput
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ExampleUpdate is a partial example update; nil fields are left unchanged.
type ExampleUpdate struct {
	GenerationType *GenerationType `json:"generation_type,omitempty" validate:"omitempty,generation_type"`
	Content        *string         `json:"content,omitempty" validate:"omitempty,min=10"`
	QualityRating  *float64        `json:"quality_rating,omitempty" validate:"omitempty,gte=1,lte=5,half_step"`
	Title          *string         `json:"title,omitempty" validate:"omitempty,max=255"`
	Notes          *string         `json:"notes,omitempty"`
}

// Validate validates the ExampleUpdate using the validator.
func (u *ExampleUpdate) Validate() error {
	return validate.Struct(u)
}

// Apply copies every provided field of the update onto the input.
func (u *ExampleUpdate) Apply(e *ExampleInput) {
	if u.GenerationType != nil {
		e.GenerationType = *u.GenerationType
	}
	if u.QualityRating != nil {
		e.QualityRating = *u.QualityRating
	}
	setString(&e.Content, u.Content)
	setString(&e.Title, u.Title)
	setString(&e.Notes, u.Notes)
}
