package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "only whitespace", input: " \n\t\n ", expected: ""},
		{name: "line endings", input: "Ada\r\nLovelace\rLondon", expected: "Ada\nLovelace\nLondon"},
		{name: "collapse spaces", input: "Software    Engineer\t Intern", expected: "Software Engineer Intern"},
		{name: "non-breaking space", input: "Ada\u00a0Lovelace", expected: "Ada Lovelace"},
		{name: "blank lines", input: "Skills\n\n\n\n\nPython", expected: "Skills\n\nPython"},
		{name: "bullet glyphs", input: "• Built a compiler\n· Wrote notes\n* Gave talks", expected: "- Built a compiler\n- Wrote notes\n- Gave talks"},
		{name: "dash bullets kept", input: "  - Led a team", expected: "- Led a team"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestCleanText_Deterministic(t *testing.T) {
	input := "Experience\n\n\n•   Analytical Engine   notes"
	assert.Equal(t, CleanText(input), CleanText(CleanText(input)))
}
