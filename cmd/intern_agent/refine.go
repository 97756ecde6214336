package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/internship-generator/internal/types"
)

var refineCmd = &cobra.Command{
	Use:   "refine",
	Short: "Rewrite one section of an existing draft",
	Long: `Rewrite one section of a saved draft according to your feedback.

The draft is read from --draft (or stdin when it is "-"). The rewrite is printed;
with --apply the whole draft is printed with the section replaced.`,
	Args: cobra.NoArgs,
	RunE: runRefine,
}

var (
	refineCompany   string
	refineType      string
	refineTone      string
	refineDraftPath string
	refineSection   string
	refineFeedback  string
	refineApply     bool
)

func init() {
	f := refineCmd.Flags()
	f.StringVarP(&refineCompany, "company", "c", "", "Company ID or name (required)")
	f.StringVarP(&refineType, "type", "t", string(types.GenerationColdEmail), "Content type of the draft")
	f.StringVar(&refineTone, "tone", string(types.ToneProfessional), "Tone of the rewrite")
	f.StringVar(&refineDraftPath, "draft", "", `File holding the full draft, or "-" for stdin (required)`)
	f.StringVar(&refineSection, "section", "", "Exact text of the draft to rewrite (required)")
	f.StringVar(&refineFeedback, "feedback", "", "How the section should change (required)")
	f.BoolVar(&refineApply, "apply", false, "Print the full draft with the section replaced")

	for _, name := range []string{"company", "draft", "section", "feedback"} {
		_ = refineCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(refineCmd)
}

func runRefine(cmd *cobra.Command, _ []string) error {
	draft, err := readDraft(cmd, refineDraftPath)
	if err != nil {
		return err
	}
	if !strings.Contains(draft, refineSection) {
		return fmt.Errorf("the section does not appear in the draft")
	}

	ctx := cmd.Context()
	client := newClient()
	profile, err := client.Profiles.Get(ctx)
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("no profile found; create one with 'intern_agent profile save'")
	}
	companies, err := client.Companies.List(ctx)
	if err != nil {
		return err
	}
	companyID, err := resolveCompany(companies, refineCompany)
	if err != nil {
		return err
	}

	req := &types.RefinementRequest{
		UserProfileID:    profile.ID,
		CompanyID:        companyID,
		GenerationType:   types.GenerationType(refineType),
		FullContent:      draft,
		SectionToReplace: refineSection,
		UserFeedback:     refineFeedback,
		Tone:             types.Tone(refineTone),
	}
	if err := req.Validate(); err != nil {
		return errors.New(types.ValidationMessage(err))
	}

	result, err := client.Generation.Refine(ctx, req)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if refineApply {
		fmt.Fprintln(w, strings.Replace(draft, refineSection, result.RefinedSection, 1))
		return nil
	}
	fmt.Fprintln(w, result.RefinedSection)
	return nil
}

func readDraft(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read draft: %w", err)
	}
	return string(data), nil
}
