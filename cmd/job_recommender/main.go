// Package main provides the entry point for the job recommender CLI and
// HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_recommender",
	Short: "Hybrid job recommendation and skill gap analysis",
	Long: "job_recommender ranks job postings for a candidate by fusing semantic\n" +
		"embedding similarity, lexical similarity and skill overlap under\n" +
		"persona-dependent weights, and explains the skill gap toward any job.",
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to JSON config file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
