package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-recommender/internal/ingestion"
	"github.com/jonathan/job-recommender/internal/skills"
	"github.com/jonathan/job-recommender/internal/store"
)

var (
	analyzeFile    string
	analyzePersona string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Extract skills from a résumé document and store the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if analyzeFile == "" {
			return fmt.Errorf("--file is required")
		}

		f, err := os.Open(analyzeFile)
		if err != nil {
			return err
		}
		defer f.Close()

		contentType := ""
		switch strings.ToLower(filepath.Ext(analyzeFile)) {
		case ".html", ".htm":
			contentType = "text/html"
		}
		text, err := ingestion.ExtractText(f, contentType)
		if err != nil {
			return err
		}

		a, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		extractor := skills.Extractor{Phrases: skills.CapitalizedPhrases{}}
		summary, extracted := extractor.AnalyzeProfileText(text)
		id, err := a.profiles.SaveProfile(cmd.Context(), store.Profile{
			Summary: summary,
			Skills:  extracted,
			Persona: analyzePersona,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"profile_id": id,
			"summary":    summary,
			"skills":     extracted,
			"persona":    analyzePersona,
		})
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "résumé document (plain text or HTML)")
	analyzeCmd.Flags().StringVar(&analyzePersona, "persona", "", "candidate persona")
	rootCmd.AddCommand(analyzeCmd)
}
