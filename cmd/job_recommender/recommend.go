package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-recommender/internal/recommend"
	"github.com/jonathan/job-recommender/internal/skills"
)

var (
	recResumeID string
	recText     string
	recSkills   string
	recPersona  string
	recK        int
	recMode     string
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank jobs for a résumé or free candidate text",
	RunE: func(cmd *cobra.Command, args []string) error {
		if recResumeID == "" && recText == "" {
			return fmt.Errorf("one of --resume-id or --text is required")
		}

		a, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		k := recK
		if k <= 0 {
			k = a.cfg.TopK
		}
		mode := recommend.ParseMode(recMode)

		var recs []recommend.Recommendation
		if recResumeID != "" {
			recs, err = a.engine.RecommendForResume(cmd.Context(), recResumeID, recPersona, k, mode)
		} else {
			var candidateSkills []string
			for _, s := range strings.Split(recSkills, ",") {
				if n := skills.Normalize(s); n != "" {
					candidateSkills = append(candidateSkills, n)
				}
			}
			recs, err = a.engine.Recommend(cmd.Context(), recText, candidateSkills, recPersona, k, mode)
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	},
}

func init() {
	recommendCmd.Flags().StringVar(&recResumeID, "resume-id", "", "catalog résumé id")
	recommendCmd.Flags().StringVar(&recText, "text", "", "free candidate text")
	recommendCmd.Flags().StringVar(&recSkills, "skills", "", "comma-separated candidate skills")
	recommendCmd.Flags().StringVar(&recPersona, "persona", "", "candidate persona")
	recommendCmd.Flags().IntVar(&recK, "k", 0, "result count")
	recommendCmd.Flags().StringVar(&recMode, "mode", "hybrid", "scoring mode: hybrid, baseline or embed")
	rootCmd.AddCommand(recommendCmd)
}
