package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/internship-generator/internal/pages"
	"github.com/jonathan/internship-generator/internal/types"
)

var examplesCmd = &cobra.Command{
	Use:     "examples",
	Aliases: []string{"example"},
	Short:   "Manage writing samples used to ground generation",
}

var examplesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List examples, best rated first",
	Args:  cobra.NoArgs,
	RunE:  runExamplesList,
}

var examplesShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print one example",
	Args:  cobra.ExactArgs(1),
	RunE:  runExamplesShow,
}

var examplesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an example",
	Args:  cobra.NoArgs,
	RunE:  runExamplesAdd,
}

var examplesEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change the fields given as flags",
	Args:  cobra.ExactArgs(1),
	RunE:  runExamplesEdit,
}

var examplesDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete an example",
	Args:  cobra.ExactArgs(1),
	RunE:  runExamplesDelete,
}

var (
	exampleFilter  string
	exampleType    string
	exampleTitle   string
	exampleContent string
	exampleRating  float64
	exampleNotes   string
	exampleYes     bool
)

func init() {
	examplesListCmd.Flags().StringVar(&exampleFilter, "type", "", "Only list examples of this type (cold_email, cold_dm, application)")

	for _, c := range []*cobra.Command{examplesAddCmd, examplesEditCmd} {
		c.Flags().StringVar(&exampleType, "type", string(types.GenerationColdEmail), "Generation type (cold_email, cold_dm, application)")
		c.Flags().StringVar(&exampleTitle, "title", "", "Short title")
		c.Flags().StringVar(&exampleContent, "content", "", "The sample text (at least 10 characters)")
		c.Flags().Float64Var(&exampleRating, "rating", types.DefaultQualityRating, "Quality rating from 1 to 5 in steps of 0.5")
		c.Flags().StringVar(&exampleNotes, "notes", "", "Why this sample works")
	}
	examplesDeleteCmd.Flags().BoolVarP(&exampleYes, "yes", "y", false, "Skip the confirmation prompt")

	examplesCmd.AddCommand(examplesListCmd, examplesShowCmd, examplesAddCmd, examplesEditCmd, examplesDeleteCmd)
	rootCmd.AddCommand(examplesCmd)
}

func runExamplesList(cmd *cobra.Command, _ []string) error {
	page := pages.NewExamplesPage(newClient().Examples, nil)
	if err := page.SetFilter(cmd.Context(), types.GenerationType(exampleFilter)); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	examples := page.Examples()
	if len(examples) == 0 {
		fmt.Fprintln(w, "No examples yet.")
		return nil
	}
	for _, ex := range examples {
		title := ex.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(w, "%4d  %-24s %.1f  %s\n", ex.ID, ex.GenerationType.Label(), ex.QualityRating, title)
	}
	return nil
}

func runExamplesShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	ex, err := newClient().Examples.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	field(w, "ID", fmt.Sprint(ex.ID))
	field(w, "Type", ex.GenerationType.Label())
	field(w, "Title", ex.Title)
	field(w, "Rating", fmt.Sprintf("%.1f", ex.QualityRating))
	field(w, "Notes", ex.Notes)
	fmt.Fprintf(w, "\n%s\n", ex.Content)
	return nil
}

func runExamplesAdd(cmd *cobra.Command, _ []string) error {
	page := pages.NewExamplesPage(newClient().Examples, nil)
	page.Form = pages.ExampleForm{
		GenerationType: types.GenerationType(exampleType),
		Title:          exampleTitle,
		Content:        exampleContent,
		QualityRating:  exampleRating,
		Notes:          exampleNotes,
	}

	if err := page.Create(cmd.Context()); err != nil {
		return err
	}
	printStatus(cmd, page.Status())
	return nil
}

func runExamplesEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	page := pages.NewExamplesPage(newClient().Examples, nil)
	if err := page.Edit(ctx, id); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("type") {
		page.Form.GenerationType = types.GenerationType(exampleType)
	}
	if flags.Changed("title") {
		page.Form.Title = exampleTitle
	}
	if flags.Changed("content") {
		page.Form.Content = exampleContent
	}
	if flags.Changed("rating") {
		page.Form.QualityRating = exampleRating
	}
	if flags.Changed("notes") {
		page.Form.Notes = exampleNotes
	}

	if err := page.Update(ctx); err != nil {
		return err
	}
	printStatus(cmd, page.Status())
	return nil
}

func runExamplesDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	page := pages.NewExamplesPage(newClient().Examples, confirmer(cmd, exampleYes))
	deleted, err := page.Delete(cmd.Context(), id)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}
	printStatus(cmd, page.Status())
	return nil
}
