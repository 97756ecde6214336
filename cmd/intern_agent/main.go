// Package main provides the command line shell for the Internship Application Generator.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/internship-generator/internal/api"
	"github.com/jonathan/internship-generator/internal/config"
	"github.com/jonathan/internship-generator/internal/pages"
)

var (
	apiURL     string
	configPath string
	verbose    bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "intern_agent",
	Short: "Internship Application Generator",
	Long: "Internship Application Generator drafts cold emails, direct messages and cover letters " +
		"for internship applications from your profile, your target companies and your best writing samples.",
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Base URL of the generator API (default $API_URL or "+config.DefaultAPIURL+")")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if apiURL != "" {
		loaded.APIURL = apiURL
	}
	if verbose {
		loaded.Verbose = true
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func newClient() *api.Client {
	return api.New(cfg.APIURL)
}

// confirmer prompts on the command's input unless --yes was given.
func confirmer(cmd *cobra.Command, assumeYes bool) pages.Confirmer {
	if assumeYes {
		return pages.AlwaysConfirm
	}
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	return pages.ConfirmFunc(func(prompt string) (bool, error) {
		fmt.Fprintf(out, "%s [y/N]: ", prompt)
		line, err := in.ReadString('\n')
		if err != nil && err != io.EOF {
			return false, fmt.Errorf("failed to read confirmation: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	})
}

func printStatus(cmd *cobra.Command, status pages.Status) {
	if status.Text != "" {
		fmt.Fprintln(cmd.OutOrStdout(), status.Text)
	}
}

// field prints "label: value" and skips empty values.
func field(w io.Writer, label, value string) {
	if value = strings.TrimSpace(value); value != "" {
		fmt.Fprintf(w, "%-14s %s\n", label+":", value)
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID %q", arg)
	}
	return id, nil
}
