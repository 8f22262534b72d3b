// Package main provides the screening CLI: the HTTP API server and one-shot
// analysis, matching and export commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	debugLogs  bool
	jsonLogs   bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "screening",
	Short: "Job screening assistant",
	Long: "Screening extracts structured records from job descriptions and résumés, scores candidates " +
		"against jobs and drafts interview invitations for the best matches.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ./screening.yaml when present)")
	rootCmd.PersistentFlags().BoolVarP(&debugLogs, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&jsonLogs, "json", "j", false, "Log as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print readable summaries to stderr")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
