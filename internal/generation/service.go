// Package generation drafts cold emails, direct messages and application letters
// from a user profile and a company with an LLM.
package generation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/jonathan/internship-generator/internal/db"
	"github.com/jonathan/internship-generator/internal/llm"
	"github.com/jonathan/internship-generator/internal/prompts"
	"github.com/jonathan/internship-generator/internal/types"
	"github.com/jonathan/internship-generator/internal/validation"
)

const promptFile = "generation.json"

var errEmptyResponse = errors.New("model returned no content")

// MaxGroundingExamples is the number of top-rated examples added to a prompt.
const MaxGroundingExamples = 3

// ExampleSource lists stored writing samples of one type, highest rated first.
type ExampleSource interface {
	ListExamples(ctx context.Context, filter types.GenerationType, page db.Page) ([]types.Example, error)
}

// Service generates and refines application content.
type Service struct {
	client   llm.Client
	examples ExampleSource
	verbose  bool
}

// NewService returns a Service. examples may be nil, in which case example
// grounding is skipped.
func NewService(client llm.Client, examples ExampleSource, verbose bool) *Service {
	return &Service{client: client, examples: examples, verbose: verbose}
}

// Generate drafts content of req.GenerationType for the company.
func (s *Service) Generate(ctx context.Context, profile *types.UserProfile, company *types.Company, req types.GenerationRequest) (*types.GenerationResult, error) {
	req.ApplyDefaults()

	companyInfo := validation.Guard(FormatCompany(company), "company information")
	data := map[string]string{
		"Profile":           FormatProfile(&profile.ProfileInput),
		"Company":           validation.QuoteExternalContentWithLabel(companyInfo, "company information"),
		"CompanyName":       company.Name,
		"RoleClause":        roleClause(company),
		"Tone":              string(req.Tone),
		"MaxLength":         strconv.Itoa(req.MaxLength),
		"TypeLabel":         req.GenerationType.Label(),
		"AdditionalContext": "",
		"Examples":          "",
		"Plan":              "",
	}
	if extra := strings.TrimSpace(req.AdditionalContext); extra != "" {
		extra = validation.Guard(extra, "additional context")
		data["AdditionalContext"] = prompts.Format(prompts.MustGet(promptFile, "context-section"), map[string]string{"AdditionalContext": extra})
	}

	if req.UseExamples {
		section, err := s.examplesSection(ctx, req.GenerationType)
		if err != nil {
			return nil, err
		}
		data["Examples"] = section
	}

	var plan string
	if req.UseChainOfThought {
		planPrompt, err := prompts.Render(promptFile, "plan", data)
		if err != nil {
			return nil, &Error{Stage: "plan", Cause: err}
		}
		plan, err = s.client.GenerateContent(ctx, planPrompt, llm.TierAdvanced)
		if err != nil {
			return nil, &Error{Stage: "plan", Cause: err}
		}
		plan = strings.TrimSpace(plan)
		data["Plan"] = prompts.Format(prompts.MustGet(promptFile, "plan-section"), map[string]string{"Plan": plan})
		if s.verbose {
			log.Printf("[generate] plan for %s: %d characters", company.Name, len(plan))
		}
	}

	key, err := promptKey(req.GenerationType)
	if err != nil {
		return nil, err
	}
	prompt, err := prompts.Render(promptFile, key, data)
	if err != nil {
		return nil, &Error{Stage: "write", Cause: err}
	}

	content, err := s.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &Error{Stage: "write", Cause: err}
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &Error{Stage: "write", Cause: errEmptyResponse}
	}

	if s.verbose {
		log.Printf("[generate] %s for %s (%s, %d words max)", req.GenerationType, company.Name, req.Tone, req.MaxLength)
	}

	return &types.GenerationResult{
		GeneratedContent: content,
		ChainOfThought:   plan,
		GenerationType:   req.GenerationType,
		UserProfileID:    profile.ID,
		CompanyID:        company.ID,
		Metadata: map[string]any{
			"company_name": company.Name,
			"user_name":    profile.Name,
			"tone":         string(req.Tone),
			"max_length":   req.MaxLength,
		},
	}, nil
}

// Refine rewrites one section of a draft according to the user's feedback and
// returns only the replacement text.
func (s *Service) Refine(ctx context.Context, company *types.Company, req types.RefinementRequest) (*types.RefinementResult, error) {
	tone := req.Tone
	if tone == "" {
		tone = types.ToneProfessional
	}

	prompt, err := prompts.Render(promptFile, "refine", map[string]string{
		"TypeLabel":   req.GenerationType.Label(),
		"CompanyName": company.Name,
		"FullContent": req.FullContent,
		"Section":     req.SectionToReplace,
		"Feedback":    req.UserFeedback,
		"Tone":        string(tone),
	})
	if err != nil {
		return nil, &Error{Stage: "refine", Cause: err}
	}

	refined, err := s.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &Error{Stage: "refine", Cause: err}
	}
	refined = cleanSection(refined)
	if refined == "" {
		return nil, &Error{Stage: "refine", Cause: errEmptyResponse}
	}

	return &types.RefinementResult{RefinedSection: refined}, nil
}

func (s *Service) examplesSection(ctx context.Context, t types.GenerationType) (string, error) {
	if s.examples == nil {
		return "", nil
	}
	examples, err := s.examples.ListExamples(ctx, t, db.Page{Limit: MaxGroundingExamples})
	if err != nil {
		return "", fmt.Errorf("failed to load examples: %w", err)
	}
	if len(examples) == 0 {
		return "", nil
	}
	if len(examples) > MaxGroundingExamples {
		examples = examples[:MaxGroundingExamples]
	}
	return prompts.Format(prompts.MustGet(promptFile, "examples-section"), map[string]string{
		"Examples": FormatExamples(examples),
	}), nil
}

func promptKey(t types.GenerationType) (string, error) {
	switch t {
	case types.GenerationColdEmail:
		return "cold-email", nil
	case types.GenerationColdDM:
		return "cold-dm", nil
	case types.GenerationApplication:
		return "application", nil
	}
	return "", fmt.Errorf("unsupported generation type %q", t)
}

// cleanSection strips the quotes and labels models sometimes wrap around a
// rewritten section.
func cleanSection(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "REWRITTEN SECTION:")
	text = strings.TrimSpace(text)
	for _, q := range []string{`"""`, `"`} {
		if len(text) >= 2*len(q) && strings.HasPrefix(text, q) && strings.HasSuffix(text, q) {
			text = strings.TrimSpace(text[len(q) : len(text)-len(q)])
			break
		}
	}
	return text
}
