package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/internship-generator/internal/config"
	"github.com/jonathan/internship-generator/internal/db"
	"github.com/jonathan/internship-generator/internal/llm"
	"github.com/jonathan/internship-generator/internal/server"
)

var (
	servePort    int
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the HTTP server the other commands talk to.
Data is kept in PostgreSQL when DATABASE_URL is set and in memory otherwise.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on (default $PORT or 8000)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply database migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	apiKey := cfg.LLMAPIKey()
	if apiKey == "" {
		if cfg.LLMProvider == config.ProviderOpenAI {
			return fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	llmConfig := llm.ConfigFor(llm.Provider(cfg.LLMProvider), cfg.LLMModel())
	llmConfig.BaseURL = cfg.OpenAIBaseURL
	client, err := llm.NewClient(ctx, llmConfig, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	store, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	if cfg.DatabaseURL == "" {
		log.Println("[serve] DATABASE_URL not set, data is kept in memory")
	}
	if serveMigrate {
		if err := db.Migrate(ctx, store); err != nil {
			store.Close()
			return err
		}
	}

	port := cfg.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}

	srv := server.New(server.Config{
		Port:        port,
		CORSOrigins: cfg.CORSOrigins,
		Verbose:     cfg.Verbose,
	}, store, client)

	return srv.Start()
}
