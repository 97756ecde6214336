package validation

import (
	"fmt"
	"strings"
)

// OverusedPhrases are stock openers and closers that make outreach read as a
// template.
var OverusedPhrases = []string{
	"I hope this email finds you well",
	"I hope this message finds you well",
	"To whom it may concern",
	"I am writing to express my interest",
	"I am writing to apply",
	"Please find attached",
	"I believe I would be a great fit",
	"I am a hard worker",
	"team player",
	"fast-paced environment",
	"think outside the box",
	"passionate about technology",
	"Thank you for your time and consideration",
}

// PhraseMatch is one overused phrase found in a draft.
type PhraseMatch struct {
	Phrase string
	Line   int // 1-based
}

func (m PhraseMatch) String() string {
	return fmt.Sprintf("line %d: %q", m.Line, m.Phrase)
}

// CheckPhrases reports every phrase from phrases that appears in text,
// matching case-insensitively and ignoring runs of whitespace. Only the first
// match per line is reported.
func CheckPhrases(text string, phrases []string) []PhraseMatch {
	var matches []PhraseMatch
	for i, line := range strings.Split(text, "\n") {
		normalized := normalizeForMatching(line)
		for _, phrase := range phrases {
			p := normalizeForMatching(phrase)
			if p == "" {
				continue
			}
			if strings.Contains(normalized, p) {
				matches = append(matches, PhraseMatch{Phrase: phrase, Line: i + 1})
				break
			}
		}
	}
	return matches
}

// normalizeForMatching lowercases text, straightens curly apostrophes and
// collapses whitespace.
func normalizeForMatching(text string) string {
	text = strings.ReplaceAll(text, "’", "'")
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
