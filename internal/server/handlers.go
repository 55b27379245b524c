package server

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/job-recommender/internal/ingestion"
	"github.com/jonathan/job-recommender/internal/recommend"
	"github.com/jonathan/job-recommender/internal/store"
)

//go:embed job.schema.json
var jobSchema []byte

var validate = validator.New()

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jobs, resumes := 0, 0
	if c := s.engine.Catalog(); c != nil {
		jobs, resumes = len(c.Jobs), len(c.Resumes)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"jobs":    jobs,
		"resumes": resumes,
	})
}

func (s *Server) handleJobSchema(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(jobSchema)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Rebuild(r.Context()); err != nil {
		s.internalError(w, err)
		return
	}
	c := s.engine.Catalog()
	writeJSON(w, http.StatusOK, map[string]any{
		"reloaded": true,
		"jobs":     len(c.Jobs),
		"resumes":  len(c.Resumes),
	})
}

type candidateSummary struct {
	ResumeID string `json:"resume_id"`
	Summary  string `json:"summary"`
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r, "limit", 50)
	out := []candidateSummary{}
	if c := s.engine.Catalog(); c != nil {
		for _, res := range c.Resumes {
			if len(out) == limit {
				break
			}
			summary := res.Text()
			if runes := []rune(summary); len(runes) > 200 {
				summary = string(runes[:200])
			}
			out = append(out, candidateSummary{ResumeID: res.ResumeID, Summary: summary})
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"candidates": out, "count": len(out)})
}

type analyzeRequest struct {
	Text        string `json:"text" validate:"required,min=1"`
	ContentType string `json:"content_type"`
	Persona     string `json:"persona"`
}

type analyzeResponse struct {
	ProfileID string   `json:"profile_id"`
	Summary   string   `json:"summary"`
	Skills    []string `json:"skills"`
	Persona   string   `json:"persona"`
}

func (s *Server) handleAnalyzeProfile(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body: "+err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		badRequest(w, "text is required")
		return
	}

	text, err := ingestion.ExtractText(strings.NewReader(req.Text), req.ContentType)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	summary, extracted := s.extractor.AnalyzeProfileText(text)
	id, err := s.profiles.SaveProfile(r.Context(), store.Profile{
		Summary: summary,
		Skills:  extracted,
		Persona: req.Persona,
	})
	if err != nil {
		s.internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		ProfileID: id,
		Summary:   summary,
		Skills:    extracted,
		Persona:   req.Persona,
	})
}

func (s *Server) handleRecommendByProfile(w http.ResponseWriter, r *http.Request) {
	profileID := r.URL.Query().Get("profile_id")
	if profileID == "" {
		badRequest(w, "profile_id is required")
		return
	}
	k := intParam(r, "k", s.topK)
	mode := recommend.ParseMode(r.URL.Query().Get("mode"))

	recs, err := s.engine.RecommendForProfile(r.Context(), profileID, k, mode)
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"profile_id": profileID,
		"mode":       mode,
		"count":      len(recs),
		"results":    recs,
	})
}

func (s *Server) handleRecommendByResume(w http.ResponseWriter, r *http.Request) {
	resumeID := r.URL.Query().Get("resume_id")
	if resumeID == "" {
		badRequest(w, "resume_id is required")
		return
	}
	k := intParam(r, "k", s.topK)
	mode := recommend.ParseMode(r.URL.Query().Get("mode"))
	persona := r.URL.Query().Get("persona")

	recs, err := s.engine.RecommendForResume(r.Context(), resumeID, persona, k, mode)
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"resume_id": resumeID,
		"mode":      mode,
		"count":     len(recs),
		"results":   recs,
	})
}

func (s *Server) handleGaps(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	jobID := q.Get("job_id")
	if jobID == "" {
		badRequest(w, "job_id is required")
		return
	}
	profileID, resumeID := q.Get("profile_id"), q.Get("resume_id")
	if (profileID == "") == (resumeID == "") {
		badRequest(w, "exactly one of profile_id or resume_id is required")
		return
	}

	if c := s.engine.Catalog(); c != nil {
		if _, ok := c.JobByID(jobID); !ok {
			notFound(w, "unknown job_id")
			return
		}
	}

	if profileID != "" {
		result, err := s.engine.Gaps(r.Context(), profileID, jobID)
		if err != nil {
			s.internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.GapsForResume(resumeID, jobID))
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	mode := recommend.ParseMode(r.URL.Query().Get("mode"))
	k := intParam(r, "k", s.topK)

	report, err := s.engine.OfflineEval(r.Context(), mode, k)
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// intParam parses a positive integer query parameter, falling back to def.
func intParam(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
