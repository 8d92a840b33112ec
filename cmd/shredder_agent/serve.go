package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"github.com/jonathan/rfp-shredder/internal/config"
	"github.com/jonathan/rfp-shredder/internal/llm"
	"github.com/jonathan/rfp-shredder/internal/server"
	"github.com/jonathan/rfp-shredder/internal/shred"
	"github.com/jonathan/rfp-shredder/internal/storage"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for shredding document batches.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080, overrides config)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

// loadCommandConfig reads the optional config file and fills in defaults.
func loadCommandConfig(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		if err := loaded.Validate(); err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.Model == "" {
		cfg.Model = llm.DefaultModel
	}
	return cfg, nil
}

// newResolver wires the locator-scheme fetchers. GCS is optional: when no
// credentials are available, gs:// locators fail per file instead of
// preventing startup.
func newResolver(ctx context.Context, cfg *config.Config) *storage.Resolver {
	var gcsFetcher storage.Fetcher
	var gcsOpts []option.ClientOption
	if cfg.CredentialsFile != "" {
		gcsOpts = append(gcsOpts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if f, err := storage.NewGCSFetcher(ctx, gcsOpts...); err != nil {
		log.Printf("GCS fetcher unavailable, gs:// locators will fail: %v", err)
	} else {
		gcsFetcher = f
	}

	webTimeout := storage.DefaultWebTimeout
	if cfg.FetchTimeoutSeconds > 0 {
		webTimeout = time.Duration(cfg.FetchTimeoutSeconds) * time.Second
	}

	return storage.NewResolver(gcsFetcher, storage.NewWebFetcher(webTimeout), storage.NewLocalFetcher())
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadCommandConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	apiKey := cfg.ResolveAPIKey()
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or 'api_key' in the config file)")
	}

	ctx := context.Background()

	client, err := llm.NewGeminiClient(ctx, apiKey, cfg.Model)
	if err != nil {
		return fmt.Errorf("failed to create extraction client: %w", err)
	}
	defer client.Close()

	shredder := shred.New(newResolver(ctx, cfg), nil, client)

	srv := server.New(server.Config{
		Port:          cfg.Port,
		Runner:        shredder,
		DefaultSchema: cfg.DefaultSchema(),
		Model:         client.Model(),
	})

	return srv.Start()
}
