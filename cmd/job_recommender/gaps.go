package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-recommender/internal/gaps"
)

var (
	gapProfileID string
	gapResumeID  string
	gapJobID     string
)

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "Analyze the skill gap between a candidate and a job",
	RunE: func(cmd *cobra.Command, args []string) error {
		if gapJobID == "" {
			return fmt.Errorf("--job-id is required")
		}
		if (gapProfileID == "") == (gapResumeID == "") {
			return fmt.Errorf("exactly one of --profile-id or --resume-id is required")
		}

		a, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		var result gaps.Result
		if gapProfileID != "" {
			result, err = a.engine.Gaps(cmd.Context(), gapProfileID, gapJobID)
			if err != nil {
				return err
			}
		} else {
			result = a.engine.GapsForResume(gapResumeID, gapJobID)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	gapsCmd.Flags().StringVar(&gapProfileID, "profile-id", "", "stored profile id")
	gapsCmd.Flags().StringVar(&gapResumeID, "resume-id", "", "catalog résumé id")
	gapsCmd.Flags().StringVar(&gapJobID, "job-id", "", "target job id")
	rootCmd.AddCommand(gapsCmd)
}
