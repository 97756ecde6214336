// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jonathan/internship-generator/internal/fetch"
	"github.com/jonathan/internship-generator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content. Long lines are
// wrapped at word boundaries.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, part := range wrap(line, boxWidth-4) {
			fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, part)
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// wrap splits line into pieces of at most width runes, breaking at spaces
// where possible. Indentation of the first piece is kept on the others.
func wrap(line string, width int) []string {
	if len([]rune(line)) <= width {
		return []string{line}
	}

	indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
	var (
		out     []string
		current = indent
	)
	for _, word := range strings.Fields(line) {
		for len([]rune(word)) > width-len(indent) {
			if strings.TrimSpace(current) != "" {
				out = append(out, current)
				current = indent
			}
			cut := width - len(indent)
			out = append(out, indent+string([]rune(word)[:cut]))
			word = string([]rune(word)[cut:])
		}
		switch {
		case strings.TrimSpace(current) == "":
			current = indent + word
		case len([]rune(current))+1+len([]rune(word)) <= width:
			current += " " + word
		default:
			out = append(out, current)
			current = indent + word
		}
	}
	if strings.TrimSpace(current) != "" {
		out = append(out, current)
	}
	return out
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func writeList(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	count := min(len(items), limit)
	for _, item := range items[:count] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintParsedResume outputs a summary of the profile extracted from a resume.
func (p *Printer) PrintParsedResume(profile *types.ProfileInput) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.Name))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", profile.Email))
	if profile.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", profile.Location))
	}
	sb.WriteString("\n")

	writeList(&sb, "Skills", profile.Skills, maxItemsToShow)

	experience := make([]string, 0, len(profile.Experience))
	for _, e := range profile.Experience {
		experience = append(experience, shorten(e.Role+" at "+e.Company, 50))
	}
	writeList(&sb, "Experience", experience, 3)

	projects := make([]string, 0, len(profile.Projects))
	for _, pr := range profile.Projects {
		projects = append(projects, shorten(pr.Name, 50))
	}
	writeList(&sb, "Projects", projects, 3)

	if len(profile.Education) > 0 {
		sb.WriteString(fmt.Sprintf("Education entries: %d\n", len(profile.Education)))
	}
	if len(profile.Links) > 0 {
		labels := make([]string, 0, len(profile.Links))
		for label := range profile.Links {
			labels = append(labels, label)
		}
		slices.Sort(labels)
		sb.WriteString(fmt.Sprintf("Links: %s\n", strings.Join(labels, ", ")))
	}

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintImportedCompany outputs what was extracted from a company web page.
func (p *Printer) PrintImportedCompany(info *fetch.CompanyInfo) {
	if info == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("URL:      %s\n", shorten(info.URL, 45)))
	sb.WriteString(fmt.Sprintf("Platform: %s\n", info.Platform))
	sb.WriteString(fmt.Sprintf("Name:     %s\n", info.Name))
	if info.JobRole != "" {
		sb.WriteString(fmt.Sprintf("Role:     %s\n", info.JobRole))
	}

	lines := strings.Split(info.Description, "\n")
	sb.WriteString(fmt.Sprintf("\nDescription (%d characters):\n", len([]rune(info.Description))))
	count := min(len(lines), maxItemsToShow)
	for _, line := range lines[:count] {
		sb.WriteString(fmt.Sprintf("  %s\n", shorten(line, 50)))
	}
	if len(lines) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more lines\n", len(lines)-maxItemsToShow))
	}

	p.printBox("IMPORTED COMPANY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGeneration outputs the parameters and size of a generated draft.
func (p *Printer) PrintGeneration(result *types.GenerationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if company, _ := result.Metadata["company_name"].(string); company != "" {
		sb.WriteString(fmt.Sprintf("Company:  %s\n", company))
	}
	sb.WriteString(fmt.Sprintf("Type:     %s\n", result.GenerationType.Label()))
	if tone, _ := result.Metadata["tone"].(string); tone != "" {
		sb.WriteString(fmt.Sprintf("Tone:     %s\n", tone))
	}
	switch maxLength := result.Metadata["max_length"].(type) {
	case int:
		sb.WriteString(fmt.Sprintf("Budget:   %d words\n", maxLength))
	case float64:
		sb.WriteString(fmt.Sprintf("Budget:   %d words\n", int(maxLength)))
	}
	sb.WriteString(fmt.Sprintf("Words:    %d\n", len(strings.Fields(result.GeneratedContent))))
	if result.ChainOfThought != "" {
		sb.WriteString("Planning: two-stage\n")
	} else {
		sb.WriteString("Planning: single pass\n")
	}

	p.printBox("GENERATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBulkResults outputs the outcome of a batch generation.
func (p *Printer) PrintBulkResults(resp *types.BulkGenerationResponse, names map[int64]string) {
	if resp == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generated: %d\n", resp.TotalGenerated))
	sb.WriteString(fmt.Sprintf("Failed:    %d\n", len(resp.Failed)))

	if len(resp.Results) > 0 {
		sb.WriteString("\n")
		count := min(len(resp.Results), maxItemsToShow)
		for _, r := range resp.Results[:count] {
			sb.WriteString(fmt.Sprintf("✓ %s (%d words)\n", shorten(companyName(names, r.CompanyID), 40), len(strings.Fields(r.GeneratedContent))))
		}
		if len(resp.Results) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(resp.Results)-maxItemsToShow))
		}
	}

	for _, f := range resp.Failed {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", shorten(companyName(names, f.CompanyID), 40)))
		sb.WriteString(fmt.Sprintf("  %s\n", shorten(f.Error, 50)))
	}

	p.printBox("BULK GENERATION", strings.TrimSuffix(sb.String(), "\n"))
}

func companyName(names map[int64]string, id int64) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("company %d", id)
}
