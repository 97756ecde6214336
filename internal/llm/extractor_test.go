package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildExtractionPrompt(t *testing.T) {
	schema := ExtractionSchema{
		Name:        "Test",
		Description: "Extract the candidate.",
		Fields: []SchemaField{
			{Name: "name", Type: `"string"`, Required: true, Description: "Full name"},
			{Name: "skills", Type: `["string"]`},
		},
		Rules: []string{"Skip hobbies."},
	}

	prompt := BuildExtractionPrompt(schema, "Ada Lovelace")

	assert.Contains(t, prompt, "Extract the candidate.")
	assert.Contains(t, prompt, `"name": "string" (required) // Full name,`)
	assert.Contains(t, prompt, `"skills": ["string"]`)
	assert.Contains(t, prompt, "- Skip hobbies.")
	assert.Contains(t, prompt, "\"\"\"\nAda Lovelace\n\"\"\"")
}

func TestResumeProfileSchema_CoversProfileFields(t *testing.T) {
	schema := ResumeProfileSchema()

	names := map[string]bool{}
	required := []string{}
	for _, f := range schema.Fields {
		names[f.Name] = true
		if f.Required {
			required = append(required, f.Name)
		}
	}

	for _, field := range []string{"name", "email", "skills", "experience", "projects", "education", "links", "certifications", "languages", "interests"} {
		assert.True(t, names[field], field)
	}
	assert.Equal(t, []string{"name", "email"}, required)
}
