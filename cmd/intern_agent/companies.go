package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/internship-generator/internal/fetch"
	"github.com/jonathan/internship-generator/internal/observability"
	"github.com/jonathan/internship-generator/internal/pages"
)

var companiesCmd = &cobra.Command{
	Use:     "companies",
	Aliases: []string{"company"},
	Short:   "Manage target companies",
}

var companiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every company",
	Args:  cobra.NoArgs,
	RunE:  runCompaniesList,
}

var companiesShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print one company",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompaniesShow,
}

var companiesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a company",
	Long: `Add a company from flags, or import it from its website or job posting with --from-url.
Explicit flags win over imported values.`,
	Args: cobra.NoArgs,
	RunE: runCompaniesAdd,
}

var companiesEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change the fields given as flags",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompaniesEdit,
}

var companiesDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a company",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompaniesDelete,
}

var (
	companyName        string
	companyRole        string
	companyDescription string
	companyFromURL     string
	companyYes         bool
)

func init() {
	for _, c := range []*cobra.Command{companiesAddCmd, companiesEditCmd} {
		c.Flags().StringVar(&companyName, "name", "", "Company name")
		c.Flags().StringVar(&companyRole, "role", "", "Job role you are applying for")
		c.Flags().StringVar(&companyDescription, "description", "", "Everything you know about the company")
	}
	companiesAddCmd.Flags().StringVar(&companyFromURL, "from-url", "", "Import name, role and description from a web page")
	companiesDeleteCmd.Flags().BoolVarP(&companyYes, "yes", "y", false, "Skip the confirmation prompt")

	companiesCmd.AddCommand(companiesListCmd, companiesShowCmd, companiesAddCmd, companiesEditCmd, companiesDeleteCmd)
	rootCmd.AddCommand(companiesCmd)
}

func runCompaniesList(cmd *cobra.Command, _ []string) error {
	page := pages.NewCompaniesPage(newClient().Companies, nil)
	if err := page.Load(cmd.Context()); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	companies := page.Companies()
	if len(companies) == 0 {
		fmt.Fprintln(w, "No companies added yet.")
		return nil
	}
	for _, c := range companies {
		fmt.Fprintf(w, "%4d  %s\n", c.ID, c.Label())
	}
	return nil
}

func runCompaniesShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	company, err := newClient().Companies.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	field(w, "ID", fmt.Sprint(company.ID))
	field(w, "Name", company.Name)
	field(w, "Role", company.JobRole)
	field(w, "Description", company.AllInfo())
	return nil
}

func runCompaniesAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	page := pages.NewCompaniesPage(newClient().Companies, nil)

	if companyFromURL != "" {
		info, err := fetch.Company(ctx, companyFromURL, nil)
		if err != nil {
			return err
		}
		if cfg.Verbose {
			observability.NewPrinter(cmd.ErrOrStderr()).PrintImportedCompany(info)
		}
		page.Form = pages.CompanyForm{Name: info.Name, JobRole: info.JobRole, Description: info.Description}
	}
	applyCompanyFlags(cmd, &page.Form)

	if err := page.Create(ctx); err != nil {
		return err
	}
	printStatus(cmd, page.Status())
	return nil
}

func runCompaniesEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	page := pages.NewCompaniesPage(newClient().Companies, nil)
	if err := page.Edit(ctx, id); err != nil {
		return err
	}
	applyCompanyFlags(cmd, &page.Form)

	if err := page.Update(ctx); err != nil {
		return err
	}
	printStatus(cmd, page.Status())
	return nil
}

func runCompaniesDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	page := pages.NewCompaniesPage(newClient().Companies, confirmer(cmd, companyYes))
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

func applyCompanyFlags(cmd *cobra.Command, form *pages.CompanyForm) {
	flags := cmd.Flags()
	if flags.Changed("name") {
		form.Name = companyName
	}
	if flags.Changed("role") {
		form.JobRole = companyRole
	}
	if flags.Changed("description") {
		form.Description = companyDescription
	}
}
