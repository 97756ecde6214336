package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/internship-generator/internal/observability"
	"github.com/jonathan/internship-generator/internal/types"
)

var bulkCmd = &cobra.Command{
	Use:   "bulk",
	Short: "Draft the same content type for several companies",
	Long: `Draft one piece of content per company in a single request.
Companies are given as comma separated IDs or names; by default every company is used.
Failures for single companies are reported without stopping the batch.`,
	Args: cobra.NoArgs,
	RunE: runBulk,
}

var (
	bulkCompanies  string
	bulkType       string
	bulkTone       string
	bulkLength     int
	bulkContext    string
	bulkNoCoT      bool
	bulkNoExamples bool
)

func init() {
	f := bulkCmd.Flags()
	f.StringVarP(&bulkCompanies, "companies", "c", "", "Comma separated company IDs or names (default all)")
	f.StringVarP(&bulkType, "type", "t", string(types.GenerationColdEmail), "Content type: cold_email, cold_dm or application")
	f.StringVar(&bulkTone, "tone", string(types.ToneProfessional), "Tone: professional, friendly, enthusiastic or casual")
	f.IntVar(&bulkLength, "length", types.DefaultMaxLength, "Word budget per draft")
	f.StringVar(&bulkContext, "context", "", "Anything else every draft should mention")
	f.BoolVar(&bulkNoCoT, "no-cot", false, "Skip the planning stage")
	f.BoolVar(&bulkNoExamples, "no-examples", false, "Do not ground drafts in stored examples")

	rootCmd.AddCommand(bulkCmd)
}

func runBulk(cmd *cobra.Command, _ []string) error {
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

	var ids []int64
	if strings.TrimSpace(bulkCompanies) == "" {
		for _, c := range companies {
			ids = append(ids, c.ID)
		}
	} else {
		for _, ref := range strings.Split(bulkCompanies, ",") {
			id, err := resolveCompany(companies, ref)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return fmt.Errorf("no companies to draft for; add one with 'intern_agent companies add'")
	}

	req := &types.BulkGenerationRequest{
		UserProfileID:     profile.ID,
		CompanyIDs:        ids,
		GenerationType:    types.GenerationType(bulkType),
		Tone:              types.Tone(bulkTone),
		MaxLength:         bulkLength,
		AdditionalContext: strings.TrimSpace(bulkContext),
		UseChainOfThought: !bulkNoCoT,
		UseExamples:       !bulkNoExamples,
	}
	if err := req.Validate(); err != nil {
		return errors.New(types.ValidationMessage(err))
	}

	resp, err := client.Generation.GenerateBulk(ctx, req)
	if err != nil {
		return err
	}

	names := make(map[int64]string, len(companies))
	for _, c := range companies {
		names[c.ID] = c.Label()
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintBulkResults(resp, names)
	}

	w := cmd.OutOrStdout()
	for _, r := range resp.Results {
		fmt.Fprintf(w, "=== %s ===\n%s\n\n", names[r.CompanyID], r.GeneratedContent)
	}
	for _, f := range resp.Failed {
		fmt.Fprintf(w, "Failed for %s: %s\n", names[f.CompanyID], f.Error)
	}
	fmt.Fprintf(w, "Generated %d of %d\n", resp.TotalGenerated, len(ids))
	return nil
}
