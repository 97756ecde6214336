package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("generation.json", "cold-email")
	require.NoError(t, err)
	assert.Contains(t, prompt, "USER PROFILE:\n{{.Profile}}")
	assert.Contains(t, prompt, "subject line")
}

func TestGet_StringValue(t *testing.T) {
	ClearCache()

	prompt, err := Get("generation.json", "context-section")
	require.NoError(t, err)
	assert.Equal(t, "ADDITIONAL CONTEXT: {{.AdditionalContext}}", prompt)
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("generation.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	data := map[string]string{
		"Name":    "Ada",
		"Company": "Acme",
	}

	assert.Equal(t, "Hello Ada, welcome to Acme!", Format(template, data))
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	assert.Equal(t, template, Format(template, map[string]string{}))
}

func TestFormat_KeepsPlaceholdersInsideValues(t *testing.T) {
	template := "COMPANY: {{.Company}}\nTONE: {{.Tone}}"
	data := map[string]string{
		"Company": "We love {{.Tone}} people",
		"Tone":    "casual",
	}

	for i := 0; i < 50; i++ {
		assert.Equal(t, "COMPANY: We love {{.Tone}} people\nTONE: casual", Format(template, data))
	}
}

func TestFormat_CollapsesEmptySections(t *testing.T) {
	template := "A\n\n{{.Optional}}\n\n{{.Other}}\n\nB"
	result := Format(template, map[string]string{"Optional": "", "Other": ""})
	assert.Equal(t, "A\n\nB", result)
}

func TestRender_AllGenerationPromptsFillCompletely(t *testing.T) {
	ClearCache()

	data := map[string]string{
		"Profile":           "Name: Ada",
		"Company":           "Company Name: Acme",
		"CompanyName":       "Acme",
		"RoleClause":        " for the role of SWE Intern",
		"AdditionalContext": "",
		"Examples":          "",
		"Plan":              "",
		"Tone":              "friendly",
		"MaxLength":         "400",
		"TypeLabel":         "Cold Email",
		"FullContent":       "Hi",
		"Section":           "Hi",
		"Feedback":          "warmer",
	}

	keys, err := List("generation.json")
	require.NoError(t, err)
	for _, key := range keys {
		out, err := Render("generation.json", key, data)
		require.NoError(t, err, key)
		assert.False(t, strings.Contains(out, "{{."), "unfilled placeholder in %s", key)
	}
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("generation.json")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"application", "cold-dm", "cold-email", "context-section",
		"examples-section", "plan", "plan-section", "refine",
	}, keys)
}
