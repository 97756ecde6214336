package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/internship-generator/internal/export"
	"github.com/jonathan/internship-generator/internal/observability"
	"github.com/jonathan/internship-generator/internal/pages"
	"github.com/jonathan/internship-generator/internal/types"
	"github.com/jonathan/internship-generator/internal/validation"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft a cold email, DM or cover letter for one company",
	Long: `Draft content for one company from your profile.

The company is given by ID or by name. With --refine-section and --feedback the
draft is refined once more; --apply splices the rewrite into the draft.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

var (
	generateCompany      string
	generateType         string
	generateTone         string
	generateLength       int
	generateContext      string
	generateNoCoT        bool
	generateNoExamples   bool
	generateShowThinking bool
	generateSection      string
	generateFeedback     string
	generateApply        bool
	generateHTML         string
)

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&generateCompany, "company", "c", "", "Company ID or name (required)")
	f.StringVarP(&generateType, "type", "t", string(types.GenerationColdEmail), "Content type: cold_email, cold_dm or application")
	f.StringVar(&generateTone, "tone", string(types.ToneProfessional), "Tone: professional, friendly, enthusiastic or casual")
	f.IntVar(&generateLength, "length", pages.DefaultLength, fmt.Sprintf("Word budget, %d to %d in steps of %d", pages.MinLength, pages.MaxLength, pages.LengthStep))
	f.StringVar(&generateContext, "context", "", "Anything else the draft should mention")
	f.BoolVar(&generateNoCoT, "no-cot", false, "Skip the planning stage")
	f.BoolVar(&generateNoExamples, "no-examples", false, "Do not ground the draft in stored examples")
	f.BoolVar(&generateShowThinking, "show-thinking", false, "Print the planning trace")
	f.StringVar(&generateSection, "refine-section", "", "Exact text of the draft to rewrite")
	f.StringVar(&generateFeedback, "feedback", "", "How the section should change")
	f.BoolVar(&generateApply, "apply", false, "Replace the section in the draft with the rewrite")
	f.StringVar(&generateHTML, "html", "", "Also write the final draft as an HTML page to this file")

	_ = generateCmd.MarkFlagRequired("company")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	client := newClient()
	page := pages.NewGeneratePage(client.Profiles, client.Companies, client.Generation)
	if err := page.Load(ctx); err != nil {
		return err
	}

	companyID, err := resolveCompany(page.Companies(), generateCompany)
	if err != nil {
		return err
	}

	page.Form = pages.GenerateForm{
		CompanyID:         companyID,
		GenerationType:    types.GenerationType(generateType),
		Tone:              types.Tone(generateTone),
		MaxLength:         generateLength,
		AdditionalContext: generateContext,
		UseChainOfThought: !generateNoCoT,
		UseExamples:       !generateNoExamples,
	}
	if err := page.Generate(ctx); err != nil {
		return err
	}
	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintGeneration(page.Result())
	}

	w := cmd.OutOrStdout()
	if generateShowThinking && page.ToggleThinking() && page.ChainOfThought() != "" {
		fmt.Fprintf(w, "--- Thinking ---\n%s\n\n", page.ChainOfThought())
	}
	printDraft(w, page)

	if generateSection != "" || generateFeedback != "" {
		if err := refineDraft(cmd, page); err != nil {
			return err
		}
	}

	if generateHTML != "" {
		result := *page.Result()
		result.GeneratedContent = page.Generated()
		html, err := export.Page(&result)
		if err != nil {
			return err
		}
		if err := os.WriteFile(generateHTML, []byte(html), 0o644); err != nil {
			return fmt.Errorf("failed to write HTML: %w", err)
		}
		fmt.Fprintf(w, "HTML written to %s\n", generateHTML)
	}
	return nil
}

func refineDraft(cmd *cobra.Command, page *pages.GeneratePage) error {
	page.Refinement = pages.RefineForm{Section: generateSection, Feedback: generateFeedback}
	if err := page.Refine(cmd.Context()); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "\n--- Refined section ---\n%s\n", page.RefinedSection())
	if !generateApply {
		return nil
	}

	if !page.ApplyRefinement() {
		fmt.Fprintln(w, "The section no longer appears in the draft; nothing was replaced.")
		return nil
	}
	printStatus(cmd, page.Status())
	fmt.Fprintln(w)
	printDraft(w, page)
	return nil
}

func printDraft(w io.Writer, page *pages.GeneratePage) {
	fmt.Fprintf(w, "--- %s ---\n%s\n", page.Form.GenerationType.Label(), page.Generated())
	fmt.Fprintf(w, "(%d words)\n", page.WordCount())

	matches := validation.CheckPhrases(page.Generated(), validation.OverusedPhrases)
	if len(matches) == 0 {
		return
	}
	fmt.Fprintln(w, "Consider rewording:")
	for _, m := range matches {
		fmt.Fprintf(w, "  %s\n", m)
	}
}

// resolveCompany matches ref against company IDs first and then names,
// case-insensitively. A numeric ref that matches no ID is tried as a name.
func resolveCompany(companies []types.Company, ref string) (int64, error) {
	ref = strings.TrimSpace(ref)
	id, idErr := parseID(ref)
	if idErr == nil {
		for _, c := range companies {
			if c.ID == id {
				return id, nil
			}
		}
	}

	var match *types.Company
	for i := range companies {
		if !strings.EqualFold(companies[i].Name, ref) {
			continue
		}
		if match != nil {
			return 0, fmt.Errorf("more than one company is named %q; use its ID", ref)
		}
		match = &companies[i]
	}
	switch {
	case match != nil:
		return match.ID, nil
	case idErr == nil:
		return 0, fmt.Errorf("company with ID %d not found", id)
	}
	return 0, fmt.Errorf("no company named %q", ref)
}
