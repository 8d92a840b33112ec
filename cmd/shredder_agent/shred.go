package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/jonathan/rfp-shredder/internal/llm"
	"github.com/jonathan/rfp-shredder/internal/observability"
	"github.com/jonathan/rfp-shredder/internal/shred"
	"github.com/jonathan/rfp-shredder/internal/types"
)

var shredCmd = &cobra.Command{
	Use:   "shred [locator...]",
	Short: "Shred a batch of documents into structured extraction JSON",
	Long: `Shred one batch of related documents into structured JSON: project
metadata plus deduplicated submission requirements. Locators may be local
paths, file:// URLs, gs:// objects, or http(s) URLs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShred,
}

var (
	shredOrgID      string
	shredSchema     string
	shredOutputFile string
	shredAPIKey     string
	shredModel      string
	shredConfigPath string
	shredVerbose    bool
)

func init() {
	shredCmd.Flags().StringVar(&shredOrgID, "org", "cli", "Organization ID to tag the batch with")
	shredCmd.Flags().StringVar(&shredSchema, "schema", "", "Output schema version: basic or extended (default from config)")
	shredCmd.Flags().StringVarP(&shredOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	shredCmd.Flags().StringVar(&shredAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	shredCmd.Flags().StringVar(&shredModel, "model", "", "Gemini model name")
	shredCmd.Flags().StringVar(&shredConfigPath, "config", "", "Path to JSON config file")
	shredCmd.Flags().BoolVarP(&shredVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")

	rootCmd.AddCommand(shredCmd)
}

func runShred(_ *cobra.Command, args []string) error {
	cfg, err := loadCommandConfig(shredConfigPath)
	if err != nil {
		return err
	}
	if shredModel != "" {
		cfg.Model = shredModel
	}

	apiKey := shredAPIKey
	if apiKey == "" {
		apiKey = cfg.ResolveAPIKey()
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	schema, err := types.ParseSchemaVersion(shredSchema, cfg.DefaultSchema())
	if err != nil {
		return err
	}

	ctx := context.Background()

	client, err := llm.NewGeminiClient(ctx, apiKey, cfg.Model)
	if err != nil {
		return fmt.Errorf("failed to create extraction client: %w", err)
	}
	defer client.Close()

	files := make([]shred.FileDescriptor, len(args))
	for i, locator := range args {
		files[i] = shred.FileDescriptor{
			FileID:   fmt.Sprintf("cli-%d", i+1),
			Filename: path.Base(locator),
			Locator:  locator,
		}
	}

	shredder := shred.New(newResolver(ctx, cfg), nil, client)

	result, err := shredder.Run(ctx, shred.BatchRequest{
		Files:  files,
		OrgID:  shredOrgID,
		Schema: schema,
	})
	if err != nil {
		return fmt.Errorf("shredding failed: %w", err)
	}

	if shredVerbose {
		observability.NewPrinter(os.Stderr).PrintExtractionResult(result)
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if shredOutputFile != "" {
		if err := os.WriteFile(shredOutputFile, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote extraction result to %s\n", shredOutputFile)
		return nil
	}

	fmt.Println(string(jsonBytes))
	return nil
}
