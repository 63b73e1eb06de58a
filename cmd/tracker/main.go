// Package main provides the tracker CLI, which segments resumes and cover letters into chunks
// and matches stored chunks against job descriptions.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:               "tracker",
	Short:             "Job application tracker document engine",
	Long:              "Segments resumes and cover letters into typed, tagged chunks and selects the chunks most relevant to a job description.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	configPath  string
	verbose     bool
	databaseURL string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is tracker.yaml in the current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug logging")
	rootCmd.PersistentFlags().BoolP("json", "J", false, "JSON formatted logs")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print human-readable summaries to stderr")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or TRACKER_DATABASE_URL / DATABASE_URL)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
