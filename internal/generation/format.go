package generation

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jonathan/internship-generator/internal/types"
)

// FormatProfile renders a profile as labelled prompt sections. Empty fields
// are skipped and sections are separated by a blank line.
func FormatProfile(p *types.ProfileInput) string {
	parts := []string{
		"Name: " + p.Name,
		"Email: " + p.Email,
	}

	if p.Location != "" {
		parts = append(parts, "Location: "+p.Location)
	}
	if p.Bio != "" {
		parts = append(parts, "Bio: "+p.Bio)
	}
	if len(p.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(p.Skills, ", "))
	}

	if len(p.Experience) > 0 {
		lines := make([]string, 0, len(p.Experience))
		for _, exp := range p.Experience {
			line := fmt.Sprintf("- %s at %s (%s)", exp.Role, exp.Company, exp.Duration)
			if exp.Description != "" {
				line += ": " + exp.Description
			}
			lines = append(lines, line)
		}
		parts = append(parts, "Experience:\n"+strings.Join(lines, "\n"))
	}

	if len(p.Projects) > 0 {
		lines := make([]string, 0, len(p.Projects))
		for _, proj := range p.Projects {
			line := fmt.Sprintf("- %s: %s", proj.Name, proj.Description)
			if len(proj.TechStack) > 0 {
				line += fmt.Sprintf(" (Tech: %s)", strings.Join(proj.TechStack, ", "))
			}
			lines = append(lines, line)
		}
		parts = append(parts, "Projects:\n"+strings.Join(lines, "\n"))
	}

	if len(p.Education) > 0 {
		lines := make([]string, 0, len(p.Education))
		for _, edu := range p.Education {
			lines = append(lines, fmt.Sprintf("- %s from %s (%s)", edu.Degree, edu.Institution, edu.Year))
		}
		parts = append(parts, "Education:\n"+strings.Join(lines, "\n"))
	}

	if len(p.Achievements) > 0 {
		parts = append(parts, "Achievements: "+strings.Join(p.Achievements, ", "))
	}

	var links []string
	for _, key := range slices.Sorted(maps.Keys(p.Links)) {
		if value := p.Links[key]; value != "" {
			links = append(links, fmt.Sprintf("- %s: %s", key, value))
		}
	}
	if len(links) > 0 {
		parts = append(parts, "Links:\n"+strings.Join(links, "\n"))
	}

	return strings.Join(parts, "\n\n")
}

// FormatCompany renders a company as labelled prompt sections.
func FormatCompany(c *types.Company) string {
	parts := []string{"Company Name: " + c.Name}
	if c.JobRole != "" {
		parts = append(parts, "Job Role: "+c.JobRole)
	}
	if info := strings.TrimSpace(c.AllInfo()); info != "" {
		parts = append(parts, "Description: "+info)
	}
	return strings.Join(parts, "\n\n")
}

// FormatExamples renders writing samples as numbered prompt entries.
func FormatExamples(examples []types.Example) string {
	entries := make([]string, 0, len(examples))
	for i, ex := range examples {
		header := fmt.Sprintf("Example %d (rating %.1f/5)", i+1, ex.QualityRating)
		if ex.Title != "" {
			header += ": " + ex.Title
		}
		entries = append(entries, header+"\n"+strings.TrimSpace(ex.Content))
	}
	return strings.Join(entries, "\n\n")
}

func roleClause(c *types.Company) string {
	if c.JobRole == "" {
		return ""
	}
	return " for the role of " + c.JobRole
}
