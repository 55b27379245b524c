package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-recommender/internal/recommend"
)

var (
	evalMode string
	evalK    int
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Run the offline ranking evaluation over the résumé catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		k := evalK
		if k <= 0 {
			k = a.cfg.TopK
		}
		report, err := a.engine.OfflineEval(cmd.Context(), recommend.ParseMode(evalMode), k)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	evalCmd.Flags().StringVar(&evalMode, "mode", "hybrid", "scoring mode: hybrid, baseline or embed")
	evalCmd.Flags().IntVar(&evalK, "k", 0, "ranking depth")
	rootCmd.AddCommand(evalCmd)
}
