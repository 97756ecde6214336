package resume

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/jonathan/internship-generator/internal/llm"
	"github.com/jonathan/internship-generator/internal/schemas"
	"github.com/jonathan/internship-generator/internal/types"
)

// Messages returned alongside a parsed profile.
const (
	TextParsedMessage = "Resume parsed successfully"
	PDFParsedMessage  = "Resume parsed successfully from PDF"
)

// Parser extracts profiles from resumes with an LLM.
type Parser struct {
	client  llm.Client
	verbose bool
}

// NewParser returns a Parser using client.
func NewParser(client llm.Client, verbose bool) *Parser {
	return &Parser{client: client, verbose: verbose}
}

// ParseText extracts a profile from plain text or LaTeX resume source.
func (p *Parser) ParseText(ctx context.Context, text string) (*types.ResumeParseResult, error) {
	input, err := p.parse(ctx, text)
	if err != nil {
		return nil, err
	}
	return &types.ResumeParseResult{ParsedData: *input, Message: TextParsedMessage}, nil
}

// ParsePDF extracts the text of a PDF resume and parses it.
func (p *Parser) ParsePDF(ctx context.Context, data []byte) (*types.ResumeParseResult, error) {
	text, err := ExtractPDFText(data)
	if err != nil {
		return nil, err
	}
	if p.verbose {
		log.Printf("[resume] extracted %d characters from PDF", len(text))
	}

	input, err := p.parse(ctx, text)
	if err != nil {
		return nil, err
	}
	return &types.ResumeParseResult{ParsedData: *input, Message: PDFParsedMessage}, nil
}

func (p *Parser) parse(ctx context.Context, text string) (*types.ProfileInput, error) {
	text = CleanText(text)
	if text == "" {
		return nil, &ParseError{Message: "resume text is empty"}
	}

	prompt := llm.BuildExtractionPrompt(llm.ResumeProfileSchema(), text)
	resp, err := p.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("failed to extract resume: %w", err)
	}

	return Decode(resp)
}

// Decode converts the JSON produced by the extraction prompt into a profile.
// Model output is loosely typed: numbers where strings are expected, nulls,
// and nested link maps are all folded into the profile's string fields.
func Decode(resp string) (*types.ProfileInput, error) {
	resp = llm.CleanJSONBlock(resp)

	var raw map[string]any
	if err := json.Unmarshal([]byte(resp), &raw); err != nil {
		return nil, &ParseError{Message: "failed to parse AI response as JSON", Cause: err}
	}

	if str(raw["name"]) == "" || str(raw["email"]) == "" {
		return nil, &ParseError{Message: "Resume must contain at least name and email"}
	}
	if err := schemas.Validate(schemas.ResumeProfile, []byte(resp)); err != nil {
		return nil, &ParseError{Message: "extracted resume does not match the profile schema", Cause: err}
	}

	input := &types.ProfileInput{
		Name:         str(raw["name"]),
		Email:        str(raw["email"]),
		Phone:        str(raw["phone"]),
		Location:     str(raw["location"]),
		Bio:          str(raw["bio"]),
		Skills:       strs(raw["skills"]),
		Links:        links(raw["links"]),
		ResumeURL:    str(raw["resume_url"]),
		Achievements: strs(raw["achievements"]),
		Languages:    strs(raw["languages"]),
		Interests:    str(raw["interests"]),
	}

	for _, item := range objects(raw["experience"]) {
		input.Experience = append(input.Experience, types.ExperienceItem{
			Company:     str(item["company"]),
			Role:        str(item["role"]),
			Duration:    str(item["duration"]),
			Description: str(item["description"]),
		})
	}
	for _, item := range objects(raw["projects"]) {
		input.Projects = append(input.Projects, types.ProjectItem{
			Name:        str(item["name"]),
			Description: str(item["description"]),
			TechStack:   strs(item["tech_stack"]),
			Link:        str(item["link"]),
		})
	}
	for _, item := range objects(raw["education"]) {
		input.Education = append(input.Education, types.EducationItem{
			Institution: str(item["institution"]),
			Degree:      str(item["degree"]),
			Year:        str(item["year"]),
			GPA:         str(item["gpa"]),
		})
	}
	for _, item := range objects(raw["certifications"]) {
		input.Certifications = append(input.Certifications, types.CertificationItem{
			Name:   str(item["name"]),
			Issuer: str(item["issuer"]),
			Date:   str(item["date"]),
		})
	}

	input.Normalize()
	return input, nil
}

func str(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

func strs(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := str(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func objects(v any) []map[string]any {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

// links flattens the links object; nested maps (usually "other") contribute
// their entries directly and null values are dropped.
func links(v any) map[string]string {
	out := map[string]string{}
	obj, ok := v.(map[string]any)
	if !ok {
		return out
	}
	for key, val := range obj {
		if nested, ok := val.(map[string]any); ok {
			for nk, nv := range nested {
				if s := str(nv); s != "" {
					out[nk] = s
				}
			}
			continue
		}
		if s := str(val); s != "" {
			out[key] = s
		}
	}
	return out
}
