package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/internship-generator/internal/observability"
	"github.com/jonathan/internship-generator/internal/pages"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show, edit or import your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create the profile or update the fields given as flags",
	Long: `Create the profile when none exists, otherwise update it.
Only the flags you pass are changed; list fields are comma separated.`,
	Args: cobra.NoArgs,
	RunE: runProfileSave,
}

var profileImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Fill the profile from a resume (PDF or plain text)",
	Long: `Parse a resume and print the extracted profile.
Files ending in .pdf are uploaded as PDF; anything else is sent as text.
Pass --save to store the result.`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileImport,
}

var (
	profileName         string
	profileEmail        string
	profilePhone        string
	profileLocation     string
	profileBio          string
	profileSkills       string
	profileResumeURL    string
	profileAchievements string
	profileLanguages    string
	profileInterests    string

	profileImportSave bool
)

func init() {
	f := profileSaveCmd.Flags()
	f.StringVar(&profileName, "name", "", "Full name")
	f.StringVar(&profileEmail, "email", "", "Email address")
	f.StringVar(&profilePhone, "phone", "", "Phone number")
	f.StringVar(&profileLocation, "location", "", "City, country")
	f.StringVar(&profileBio, "bio", "", "Short bio")
	f.StringVar(&profileSkills, "skills", "", "Skills, comma separated")
	f.StringVar(&profileResumeURL, "resume-url", "", "Link to your resume")
	f.StringVar(&profileAchievements, "achievements", "", "Achievements, comma separated")
	f.StringVar(&profileLanguages, "languages", "", "Spoken languages, comma separated")
	f.StringVar(&profileInterests, "interests", "", "Interests")

	profileImportCmd.Flags().BoolVar(&profileImportSave, "save", false, "Save the parsed profile")

	profileCmd.AddCommand(profileShowCmd, profileSaveCmd, profileImportCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	page := pages.NewProfilePage(newClient().Profiles)
	if err := page.Load(cmd.Context()); err != nil {
		return err
	}
	if page.State() == pages.ProfileAbsent {
		fmt.Fprintln(cmd.OutOrStdout(), "No profile yet. Create one with 'intern_agent profile save' or 'intern_agent profile import'.")
		return nil
	}
	printProfile(cmd, page)
	return nil
}

func runProfileSave(cmd *cobra.Command, _ []string) error {
	page := pages.NewProfilePage(newClient().Profiles)
	if err := page.Load(cmd.Context()); err != nil {
		return err
	}

	flags := cmd.Flags()
	set := func(name string, dst *string, value string) {
		if flags.Changed(name) {
			*dst = value
		}
	}
	set("name", &page.Form.Name, profileName)
	set("email", &page.Form.Email, profileEmail)
	set("phone", &page.Form.Phone, profilePhone)
	set("location", &page.Form.Location, profileLocation)
	set("bio", &page.Form.Bio, profileBio)
	set("skills", &page.Form.Skills, profileSkills)
	set("resume-url", &page.Form.ResumeURL, profileResumeURL)
	set("achievements", &page.Form.Achievements, profileAchievements)
	set("languages", &page.Form.Languages, profileLanguages)
	set("interests", &page.Form.Interests, profileInterests)

	if err := page.Submit(cmd.Context()); err != nil {
		return err
	}
	printStatus(cmd, page.Status())
	return nil
}

func runProfileImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	ctx := cmd.Context()
	page := pages.NewProfilePage(newClient().Profiles)
	if err := page.Load(ctx); err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		err = page.ImportResumePDF(ctx, filepath.Base(path), data)
	} else {
		err = page.ImportResumeText(ctx, string(data))
	}
	if err != nil {
		return err
	}
	if cfg.Verbose {
		parsed := page.Form.Input()
		observability.NewPrinter(cmd.ErrOrStderr()).PrintParsedResume(&parsed)
	}
	printStatus(cmd, page.Status())
	printProfile(cmd, page)

	if !profileImportSave {
		return nil
	}
	if err := page.Submit(ctx); err != nil {
		return err
	}
	printStatus(cmd, page.Status())
	return nil
}

func printProfile(cmd *cobra.Command, page *pages.ProfilePage) {
	w := cmd.OutOrStdout()
	f := page.Form
	if p := page.Profile(); p != nil {
		field(w, "ID", fmt.Sprint(p.ID))
	}
	field(w, "Name", f.Name)
	field(w, "Email", f.Email)
	field(w, "Phone", f.Phone)
	field(w, "Location", f.Location)
	field(w, "Bio", f.Bio)
	field(w, "Skills", f.Skills)
	field(w, "Resume", f.ResumeURL)
	field(w, "Achievements", f.Achievements)
	field(w, "Languages", f.Languages)
	field(w, "Interests", f.Interests)
	if summary := page.Summary(); summary != "" {
		fmt.Fprintln(w, summary)
	}
}
