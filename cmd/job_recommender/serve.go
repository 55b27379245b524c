package main

import (
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-recommender/internal/server"
	"github.com/jonathan/job-recommender/internal/skills"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the recommendation HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		addr := a.cfg.ListenAddr
		if serveAddr != "" {
			addr = serveAddr
		}

		srv := server.New(server.Config{
			Engine:    a.engine,
			Profiles:  a.profiles,
			Extractor: skills.Extractor{Phrases: skills.CapitalizedPhrases{}},
			TopK:      a.cfg.TopK,
			Logger:    a.log,
		})

		err = srv.ListenAndServe(ctx, addr)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
