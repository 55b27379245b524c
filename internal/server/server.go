// Package server exposes the recommendation engine over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/job-recommender/internal/recommend"
	"github.com/jonathan/job-recommender/internal/skills"
	"github.com/jonathan/job-recommender/internal/store"
)

// Config assembles a Server.
type Config struct {
	Engine    *recommend.Engine
	Profiles  store.ProfileStore
	Extractor skills.Extractor
	// TopK is the default result count when a request omits k.
	TopK   int
	Logger *zap.Logger
}

// Server is the HTTP front end. All state lives in the engine and stores;
// handlers are stateless.
type Server struct {
	engine    *recommend.Engine
	profiles  store.ProfileStore
	extractor skills.Extractor
	topK      int
	log       *zap.Logger
}

// New creates a Server.
func New(cfg Config) *Server {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	topK := cfg.TopK
	if topK <= 0 {
		topK = 10
	}
	return &Server{
		engine:    cfg.Engine,
		profiles:  cfg.Profiles,
		extractor: cfg.Extractor,
		topK:      topK,
		log:       log,
	}
}

// Handler builds the routed handler with request-id and access-log
// middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /schema/jobs", s.handleJobSchema)
	mux.HandleFunc("POST /ingest/reload", s.handleReload)
	mux.HandleFunc("GET /candidates", s.handleCandidates)
	mux.HandleFunc("POST /profile/analyze", s.handleAnalyzeProfile)
	mux.HandleFunc("GET /recommend/by_profile", s.handleRecommendByProfile)
	mux.HandleFunc("GET /recommend/by_resume_id", s.handleRecommendByResume)
	mux.HandleFunc("GET /gaps", s.handleGaps)
	mux.HandleFunc("GET /eval/offline", s.handleEval)
	return s.withMiddleware(mux)
}

// ListenAndServe runs the server until ctx is canceled, then drains with a
// short shutdown grace period.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
