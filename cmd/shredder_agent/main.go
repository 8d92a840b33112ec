// Package main provides the entry point for the RFP Shredder HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shredder_agent",
	Short: "RFP Document Shredder HTTP API Server",
	Long:  "RFP Document Shredder turns batches of RFP documents into structured project metadata and deduplicated submission requirements via a single multimodal extraction call.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
