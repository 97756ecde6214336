// Package export renders generated drafts as HTML.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/jonathan/internship-generator/internal/types"
)

// Drafts are plain prose with single line breaks inside greetings and
// signatures, so soft breaks are kept as <br>. Raw HTML is escaped.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Linkify),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Fragment converts draft text to an HTML fragment.
func Fragment(text string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("failed to render draft: %w", err)
	}
	return buf.String(), nil
}

// SplitSubject separates a leading "Subject:" line from a cold email body.
func SplitSubject(text string) (subject, body string) {
	text = strings.TrimSpace(text)
	first, rest, _ := strings.Cut(text, "\n")
	label, value, ok := strings.Cut(first, ":")
	if !ok || !strings.EqualFold(strings.TrimSpace(label), "subject") {
		return "", text
	}
	return strings.TrimSpace(value), strings.TrimSpace(rest)
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Georgia, serif; max-width: 40rem; margin: 2rem auto; line-height: 1.5; }
.meta { color: #666; font-size: 0.9rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">{{.Meta}}</p>
{{if .Subject}}<p><strong>Subject:</strong> {{.Subject}}</p>
{{end}}{{.Body}}
</body>
</html>
`))

// Page renders a generation result as a standalone HTML document.
func Page(result *types.GenerationResult) (string, error) {
	subject, body := "", result.GeneratedContent
	if result.GenerationType == types.GenerationColdEmail {
		subject, body = SplitSubject(body)
	}

	fragment, err := Fragment(body)
	if err != nil {
		return "", err
	}

	title := result.GenerationType.Label()
	if company, _ := result.Metadata["company_name"].(string); company != "" {
		title += " for " + company
	}

	var meta []string
	if tone, _ := result.Metadata["tone"].(string); tone != "" {
		meta = append(meta, "Tone: "+tone)
	}
	meta = append(meta, fmt.Sprintf("%d words", len(strings.Fields(result.GeneratedContent))))

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, map[string]any{
		"Title":   title,
		"Meta":    strings.Join(meta, " · "),
		"Subject": subject,
		"Body":    template.HTML(fragment),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return buf.String(), nil
}
