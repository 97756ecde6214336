package types

// GenerationType selects the target content format.
type GenerationType string

const (
	// GenerationColdEmail is a cold email with a subject line.
	GenerationColdEmail GenerationType = "cold_email"
	// GenerationColdDM is a short direct message (LinkedIn, Twitter, ...).
	GenerationColdDM GenerationType = "cold_dm"
	// GenerationApplication is a cover letter or application answer.
	GenerationApplication GenerationType = "application"
)

// GenerationTypes lists every generation type in display order.
var GenerationTypes = []GenerationType{GenerationColdEmail, GenerationColdDM, GenerationApplication}

// Valid reports whether t is a known generation type.
func (t GenerationType) Valid() bool {
	switch t {
	case GenerationColdEmail, GenerationColdDM, GenerationApplication:
		return true
	}
	return false
}

// Label returns a human readable name for the generation type.
func (t GenerationType) Label() string {
	switch t {
	case GenerationColdEmail:
		return "Cold Email"
	case GenerationColdDM:
		return "Cold DM"
	case GenerationApplication:
		return "Application/Cover Letter"
	}
	return string(t)
}

// Tone is passed through to the generation backend.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneFriendly     Tone = "friendly"
	ToneEnthusiastic Tone = "enthusiastic"
	ToneCasual       Tone = "casual"
)

// Tones lists every tone in display order.
var Tones = []Tone{ToneProfessional, ToneFriendly, ToneEnthusiastic, ToneCasual}

// Valid reports whether t is a known tone.
func (t Tone) Valid() bool {
	switch t {
	case ToneProfessional, ToneFriendly, ToneEnthusiastic, ToneCasual:
		return true
	}
	return false
}

// DefaultMaxLength is the backend word budget when a request leaves it unset.
const DefaultMaxLength = 500

// GenerationRequest asks the backend to draft content for one company.
type GenerationRequest struct {
	UserProfileID     int64          `json:"user_profile_id" validate:"required,gt=0"`
	CompanyID         int64          `json:"company_id" validate:"required,gt=0"`
	GenerationType    GenerationType `json:"generation_type" validate:"required,generation_type"`
	Tone              Tone           `json:"tone,omitempty" validate:"omitempty,tone"`
	MaxLength         int            `json:"max_length,omitempty" validate:"omitempty,gte=1,lte=2000"`
	AdditionalContext string         `json:"additional_context,omitempty"`
	UseChainOfThought bool           `json:"use_chain_of_thought,omitempty"`
	UseExamples       bool           `json:"use_examples,omitempty"`
}

// Validate validates the GenerationRequest using the validator.
func (r *GenerationRequest) Validate() error {
	return validate.Struct(r)
}

// ApplyDefaults fills the tone and word budget when unset.
func (r *GenerationRequest) ApplyDefaults() {
	if r.Tone == "" {
		r.Tone = ToneProfessional
	}
	if r.MaxLength == 0 {
		r.MaxLength = DefaultMaxLength
	}
}

// GenerationResult is the drafted content. ChainOfThought is only set for
// two-stage generation.
type GenerationResult struct {
	GeneratedContent string         `json:"generated_content"`
	ChainOfThought   string         `json:"chain_of_thought,omitempty"`
	GenerationType   GenerationType `json:"generation_type"`
	UserProfileID    int64          `json:"user_profile_id"`
	CompanyID        int64          `json:"company_id"`
	Metadata         map[string]any `json:"metadata"`
}

// RefinementRequest asks the backend to rewrite one section of a draft.
type RefinementRequest struct {
	UserProfileID    int64          `json:"user_profile_id" validate:"required,gt=0"`
	CompanyID        int64          `json:"company_id" validate:"required,gt=0"`
	GenerationType   GenerationType `json:"generation_type" validate:"required,generation_type"`
	FullContent      string         `json:"full_content" validate:"required"`
	SectionToReplace string         `json:"section_to_replace" validate:"required"`
	UserFeedback     string         `json:"user_feedback" validate:"required"`
	Tone             Tone           `json:"tone,omitempty" validate:"omitempty,tone"`
}

// Validate validates the RefinementRequest using the validator.
func (r *RefinementRequest) Validate() error {
	return validate.Struct(r)
}

// RefinementResult carries the replacement for the requested section.
type RefinementResult struct {
	RefinedSection string `json:"refined_section"`
}

// BulkGenerationRequest drafts the same content type for several companies.
type BulkGenerationRequest struct {
	UserProfileID     int64          `json:"user_profile_id" validate:"required,gt=0"`
	CompanyIDs        []int64        `json:"company_ids" validate:"required,min=1,dive,gt=0"`
	GenerationType    GenerationType `json:"generation_type" validate:"required,generation_type"`
	Tone              Tone           `json:"tone,omitempty" validate:"omitempty,tone"`
	MaxLength         int            `json:"max_length,omitempty" validate:"omitempty,gte=1,lte=2000"`
	AdditionalContext string         `json:"additional_context,omitempty"`
	UseChainOfThought bool           `json:"use_chain_of_thought,omitempty"`
	UseExamples       bool           `json:"use_examples,omitempty"`
}

// Validate validates the BulkGenerationRequest using the validator.
func (r *BulkGenerationRequest) Validate() error {
	return validate.Struct(r)
}

// ForCompany returns the single-company request for one entry of the batch.
func (r *BulkGenerationRequest) ForCompany(companyID int64) GenerationRequest {
	return GenerationRequest{
		UserProfileID:     r.UserProfileID,
		CompanyID:         companyID,
		GenerationType:    r.GenerationType,
		Tone:              r.Tone,
		MaxLength:         r.MaxLength,
		AdditionalContext: r.AdditionalContext,
		UseChainOfThought: r.UseChainOfThought,
		UseExamples:       r.UseExamples,
	}
}

// BulkFailure records one company that could not be drafted.
type BulkFailure struct {
	CompanyID int64  `json:"company_id"`
	Error     string `json:"error"`
}

// BulkGenerationResponse collects per-company results and failures.
type BulkGenerationResponse struct {
	Results        []GenerationResult `json:"results"`
	TotalGenerated int                `json:"total_generated"`
	Failed         []BulkFailure      `json:"failed"`
}
