package pages

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/internship-generator/internal/types"
)

// Word budget bounds offered by the generate screen.
const (
	DefaultLength = 400
	MinLength     = 150
	MaxLength     = 800
	LengthStep    = 50
)

// GenerateForm holds the generation options.
type GenerateForm struct {
	CompanyID         int64
	GenerationType    types.GenerationType
	Tone              types.Tone
	MaxLength         int
	AdditionalContext string
	UseChainOfThought bool
	UseExamples       bool
}

// NewGenerateForm returns the form defaults: a 400 word professional cold
// email with chain of thought and examples enabled.
func NewGenerateForm() GenerateForm {
	return GenerateForm{
		GenerationType:    types.GenerationColdEmail,
		Tone:              types.ToneProfessional,
		MaxLength:         DefaultLength,
		UseChainOfThought: true,
		UseExamples:       true,
	}
}

func (f *GenerateForm) validate() error {
	if !f.GenerationType.Valid() {
		return &ValidationError{Message: "Unknown generation type: " + string(f.GenerationType)}
	}
	if !f.Tone.Valid() {
		return &ValidationError{Message: "Unknown tone: " + string(f.Tone)}
	}
	if f.MaxLength < MinLength || f.MaxLength > MaxLength || f.MaxLength%LengthStep != 0 {
		return &ValidationError{Message: fmt.Sprintf("Length must be between %d and %d words in steps of %d", MinLength, MaxLength, LengthStep)}
	}
	return nil
}

// RefineForm holds the section-level refinement input.
type RefineForm struct {
	Section  string
	Feedback string
}

// ProfileGetter loads the session profile.
type ProfileGetter interface {
	Get(ctx context.Context) (*types.UserProfile, error)
}

// CompanyLister loads the company list.
type CompanyLister interface {
	List(ctx context.Context) ([]types.Company, error)
}

// GeneratePage controls the generate screen:
// idle -> loading -> (done | error), with an optional refinement step once
// content exists.
type GeneratePage struct {
	profiles  ProfileGetter
	companies CompanyLister
	gen       GenerationAPI

	Form       GenerateForm
	Refinement RefineForm

	profile      *types.UserProfile
	companyList  []types.Company
	result       *types.GenerationResult
	generated    string
	refined      string
	showThinking bool
	phase        Phase
	refinePhase  Phase
	status       Status
}

// NewGeneratePage creates a generate controller.
func NewGeneratePage(profiles ProfileGetter, companies CompanyLister, gen GenerationAPI) *GeneratePage {
	return &GeneratePage{
		profiles:  profiles,
		companies: companies,
		gen:       gen,
		Form:      NewGenerateForm(),
	}
}

// Profile returns the loaded profile, or nil when none exists.
func (p *GeneratePage) Profile() *types.UserProfile { return p.profile }

// Companies returns the loaded companies.
func (p *GeneratePage) Companies() []types.Company { return p.companyList }

// Phase returns the state of the generation.
func (p *GeneratePage) Phase() Phase { return p.phase }

// RefinePhase returns the state of the refinement.
func (p *GeneratePage) RefinePhase() Phase { return p.refinePhase }

// Status returns the last status message.
func (p *GeneratePage) Status() Status { return p.status }

// Result returns the full result of the last generation, or nil.
func (p *GeneratePage) Result() *types.GenerationResult { return p.result }

// Generated returns the current draft, including applied refinements.
func (p *GeneratePage) Generated() string { return p.generated }

// ChainOfThought returns the planning trace of the last generation, if any.
func (p *GeneratePage) ChainOfThought() string {
	if p.result == nil {
		return ""
	}
	return p.result.ChainOfThought
}

// ShowThinking reports whether the planning trace is visible.
func (p *GeneratePage) ShowThinking() bool { return p.showThinking }

// ToggleThinking flips trace visibility and returns the new value.
func (p *GeneratePage) ToggleThinking() bool {
	p.showThinking = !p.showThinking
	return p.showThinking
}

// RefinedSection returns the pending replacement from the last refinement.
func (p *GeneratePage) RefinedSection() string { return p.refined }

// WordCount counts the words of the current draft.
func (p *GeneratePage) WordCount() int { return WordCount(p.generated) }

// SelectedCompany returns the loaded company matching Form.CompanyID.
func (p *GeneratePage) SelectedCompany() *types.Company {
	for i := range p.companyList {
		if p.companyList[i].ID == p.Form.CompanyID {
			return &p.companyList[i]
		}
	}
	return nil
}

// CanGenerate reports whether the guards allow a generation right now.
func (p *GeneratePage) CanGenerate() bool {
	return p.phase != PhaseLoading && p.profile != nil && p.Form.CompanyID != 0
}

// Load fetches the profile and the company list concurrently. State is only
// replaced once both succeed.
func (p *GeneratePage) Load(ctx context.Context) error {
	var (
		profile   *types.UserProfile
		companies []types.Company
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = p.profiles.Get(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		companies, err = p.companies.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		p.status = errStatus("Error: ", err)
		return err
	}

	p.profile = profile
	p.companyList = companies
	return nil
}

// Generate drafts content for the selected company. It is refused without a
// network call when no profile exists or no company is selected. Previous
// output is cleared before the request is sent.
func (p *GeneratePage) Generate(ctx context.Context) error {
	if p.phase == PhaseLoading {
		return ErrBusy
	}
	if p.profile == nil {
		return p.reject("Please create your profile first!")
	}
	if p.Form.CompanyID == 0 {
		return p.reject("Please select a company!")
	}
	if err := p.Form.validate(); err != nil {
		p.status = Status{Text: err.Error(), IsError: true}
		return err
	}

	p.phase = PhaseLoading
	p.status = Status{}
	p.result = nil
	p.generated = ""
	p.showThinking = false
	p.clearRefinement()

	req := &types.GenerationRequest{
		UserProfileID:     p.profile.ID,
		CompanyID:         p.Form.CompanyID,
		GenerationType:    p.Form.GenerationType,
		Tone:              p.Form.Tone,
		MaxLength:         p.Form.MaxLength,
		AdditionalContext: strings.TrimSpace(p.Form.AdditionalContext),
		UseChainOfThought: p.Form.UseChainOfThought,
		UseExamples:       p.Form.UseExamples,
	}
	result, err := p.gen.Generate(ctx, req)
	if err != nil {
		p.phase = PhaseError
		p.status = errStatus("Error: ", err)
		return err
	}

	p.result = result
	p.generated = result.GeneratedContent
	p.phase = PhaseDone
	return nil
}

// Refine asks the service to rewrite Refinement.Section according to
// Refinement.Feedback. The replacement is held until ApplyRefinement.
func (p *GeneratePage) Refine(ctx context.Context) error {
	if p.refinePhase == PhaseLoading {
		return ErrBusy
	}
	if p.generated == "" || p.profile == nil {
		return p.reject("Generate content before refining it.")
	}
	if strings.TrimSpace(p.Refinement.Section) == "" || strings.TrimSpace(p.Refinement.Feedback) == "" {
		return p.reject("Please provide both the section to replace and your feedback.")
	}

	p.refinePhase = PhaseLoading
	p.status = Status{}
	p.refined = ""

	req := &types.RefinementRequest{
		UserProfileID:    p.profile.ID,
		CompanyID:        p.Form.CompanyID,
		GenerationType:   p.Form.GenerationType,
		FullContent:      p.generated,
		SectionToReplace: p.Refinement.Section,
		UserFeedback:     p.Refinement.Feedback,
		Tone:             p.Form.Tone,
	}
	result, err := p.gen.Refine(ctx, req)
	if err != nil {
		p.refinePhase = PhaseError
		p.status = errStatus("Error refining: ", err)
		return err
	}

	p.refined = result.RefinedSection
	p.refinePhase = PhaseDone
	return nil
}

// ApplyRefinement splices the pending replacement into the draft in place of
// the first exact occurrence of Refinement.Section. When the section no longer
// appears verbatim the draft is left unchanged. Either way the refinement
// input is cleared. It reports whether the draft changed.
func (p *GeneratePage) ApplyRefinement() bool {
	if p.refined == "" {
		return false
	}

	applied := p.Refinement.Section != "" && strings.Contains(p.generated, p.Refinement.Section)
	if applied {
		p.generated = strings.Replace(p.generated, p.Refinement.Section, p.refined, 1)
		p.status = okStatus("Section replaced in generated content!")
	}
	p.clearRefinement()
	return applied
}

func (p *GeneratePage) clearRefinement() {
	p.Refinement = RefineForm{}
	p.refined = ""
	p.refinePhase = PhaseIdle
}

func (p *GeneratePage) reject(msg string) error {
	p.status = Status{Text: msg, IsError: true}
	return &ValidationError{Message: msg}
}
