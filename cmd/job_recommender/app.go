package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/job-recommender/internal/catalog"
	"github.com/jonathan/job-recommender/internal/config"
	"github.com/jonathan/job-recommender/internal/embedding"
	"github.com/jonathan/job-recommender/internal/logger"
	"github.com/jonathan/job-recommender/internal/recommend"
	"github.com/jonathan/job-recommender/internal/skills"
	"github.com/jonathan/job-recommender/internal/store"
)

// app wires configuration, stores, the embedder and the engine together for
// one command invocation.
type app struct {
	cfg      config.Config
	log      *zap.Logger
	engine   *recommend.Engine
	profiles store.ProfileStore

	closers []func() error
}

// buildApp assembles the full stack from configuration and rebuilds the
// engine snapshot so commands can query immediately.
func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log}

	var vectors store.VectorStore
	var profiles store.ProfileStore
	switch cfg.StoreBackend {
	case "postgres":
		pg, err := store.OpenPostgres(ctx, cfg.DatabaseURL, embedderDimension(cfg))
		if err != nil {
			a.close()
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		a.closers = append(a.closers, pg.Close)
		vectors, profiles = pg, pg
	default:
		db, err := store.OpenSQLite(cfg.StorePath)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		vectors, profiles = db, db
	}
	a.profiles = profiles

	var embedder embedding.Embedder
	if cfg.EmbedderBackend == "gemini" {
		gem, err := embedding.NewGeminiEmbedder(ctx, cfg.APIKey, embedding.DefaultGeminiModel)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("init gemini embedder: %w", err)
		}
		a.closers = append(a.closers, gem.Close)
		embedder = gem
	} else {
		embedder = embedding.NewHashingEmbedder(cfg.EmbedDimension)
	}

	weights := recommend.DefaultWeightTable()
	if cfg.WeightsPath != "" {
		weights, err = recommend.LoadWeightTable(cfg.WeightsPath)
		if err != nil {
			a.close()
			return nil, err
		}
	}

	a.engine = recommend.New(recommend.Config{
		Source:         catalog.DirSource{Dir: cfg.DataDir},
		Cache:          embedding.NewCache(vectors, embedder, log),
		Profiles:       profiles,
		Weights:        &weights,
		Extractor:      skills.Extractor{Phrases: skills.CapitalizedPhrases{}},
		DefaultPersona: cfg.DefaultPersona,
		Logger:         log,
	})

	if err := a.engine.Rebuild(ctx); err != nil {
		a.close()
		return nil, fmt.Errorf("build indexes: %w", err)
	}
	return a, nil
}

func embedderDimension(cfg config.Config) int {
	if cfg.EmbedderBackend == "gemini" {
		return embedding.GeminiDimension
	}
	if cfg.EmbedDimension > 0 {
		return cfg.EmbedDimension
	}
	return embedding.DefaultHashingDimension
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}
