// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "ResumeProfile")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
	Rules       []string      // Extra extraction rules appended to the defaults
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	for _, rule := range schema.Rules {
		sb.WriteString("- " + rule + "\n")
	}
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// ResumeProfileSchema returns the extraction schema for resumes (plain text,
// PDF text or LaTeX source). Its fields mirror the profile payload.
func ResumeProfileSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "ResumeProfile",
		Description: `You are an expert at extracting structured information from resumes.
Given the resume text below, extract ALL relevant information about the candidate.
The text may be plain text extracted from a PDF or raw LaTeX source; ignore LaTeX markup.`,
		Fields: []SchemaField{
			{Name: "name", Type: `"string"`, Description: "Full name", Required: true},
			{Name: "email", Type: `"string"`, Description: "Email address", Required: true},
			{Name: "phone", Type: `"string"`, Description: "Phone number if available"},
			{Name: "location", Type: `"string"`, Description: "City, state/country"},
			{Name: "bio", Type: `"string"`, Description: "A brief 1-2 sentence summary of their background"},
			{Name: "skills", Type: `["string"]`, Description: "Programming languages, frameworks, tools, technologies"},
			{
				Name:        "experience",
				Type:        `[{"company": "string", "role": "string", "duration": "string", "description": "string"}]`,
				Description: "Work experience, most recent first",
			},
			{
				Name:        "projects",
				Type:        `[{"name": "string", "description": "string", "tech_stack": ["string"], "link": "string"}]`,
				Description: "Projects with every technology mentioned in tech_stack",
			},
			{
				Name:        "education",
				Type:        `[{"institution": "string", "degree": "string", "year": "string", "gpa": "string"}]`,
				Description: "Education entries",
			},
			{Name: "links", Type: `{"label": "url"}`, Description: "github, linkedin, portfolio, twitter and other URLs"},
			{Name: "resume_url", Type: `"string"`, Description: "Link to an online copy of the resume, if present"},
			{Name: "achievements", Type: `["string"]`, Description: "Notable achievements and awards"},
			{
				Name:        "certifications",
				Type:        `[{"name": "string", "issuer": "string", "date": "string"}]`,
				Description: "Certifications",
			},
			{Name: "languages", Type: `["string"]`, Description: "Spoken languages"},
			{Name: "interests", Type: `"string"`, Description: "Brief text about interests/hobbies"},
		},
		Rules: []string{
			"If a field is not found, use null or an empty array/object.",
			"Be comprehensive with skills and format all dates consistently.",
		},
	}
}
