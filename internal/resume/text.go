package resume

import (
	"regexp"
	"strings"
)

var (
	multiSpace   = regexp.MustCompile(`[ \t\f\v]+`)
	excessBlanks = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes line endings and whitespace in extracted resume text
// while keeping its line structure.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := excessBlanks.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	// Bullets from PDF extraction come out as a bare glyph; normalize to "- ".
	for _, bullet := range []string{"• ", "· ", "▪ ", "* "} {
		if strings.HasPrefix(trimmed, bullet) {
			trimmed = "- " + strings.TrimSpace(strings.TrimPrefix(trimmed, bullet))
			break
		}
	}
	return multiSpace.ReplaceAllString(trimmed, " ")
}
