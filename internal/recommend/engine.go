// Package recommend implements the hybrid scoring engine: it fuses semantic
// embedding similarity, tf-idf lexical similarity, skill-set overlap and
// fuzzy keyword overlap under persona-dependent weights, ranks jobs and
// answers gap-analysis queries.
package recommend

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/jonathan/job-recommender/internal/catalog"
	"github.com/jonathan/job-recommender/internal/embedding"
	"github.com/jonathan/job-recommender/internal/gaps"
	"github.com/jonathan/job-recommender/internal/index"
	"github.com/jonathan/job-recommender/internal/skills"
	"github.com/jonathan/job-recommender/internal/store"
)

// Config assembles an Engine. Source and Cache are required; everything else
// has a usable default.
type Config struct {
	Source   catalog.Source
	Cache    *embedding.Cache
	Profiles store.ProfileStore
	// Weights overrides the built-in persona weight table when non-nil.
	Weights        *WeightTable
	Extractor      skills.Extractor
	DefaultPersona string
	Logger         *zap.Logger
}

// snapshot is the immutable derived state for one loaded catalog: the fitted
// lexical index, precomputed job texts, parsed job skill sets and cached job
// embeddings, all aligned by job position.
type snapshot struct {
	catalog   *catalog.Catalog
	texts     []string
	jobSkills [][]string
	index     *index.Index
	jobVecs   [][]float32
}

// Engine answers recommendation and gap queries against the current catalog
// snapshot. Queries are read-only and safe to run concurrently; Rebuild swaps
// the snapshot atomically so in-flight queries keep a consistent view.
type Engine struct {
	source         catalog.Source
	cache          *embedding.Cache
	profiles       store.ProfileStore
	weights        WeightTable
	extractor      skills.Extractor
	defaultPersona string
	log            *zap.Logger

	mu   sync.RWMutex
	snap *snapshot
}

// New builds an Engine. Call Rebuild before serving queries; until then every
// query answers over an empty catalog.
func New(cfg Config) *Engine {
	w := DefaultWeightTable()
	if cfg.Weights != nil {
		w = *cfg.Weights
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		source:         cfg.Source,
		cache:          cfg.Cache,
		profiles:       cfg.Profiles,
		weights:        w,
		extractor:      cfg.Extractor,
		defaultPersona: cfg.DefaultPersona,
		log:            log,
	}
}

// Rebuild reloads the catalog, refits the lexical index, warms the embedding
// cache over all job texts and swaps the engine onto the new snapshot. On
// error the previous snapshot stays in place.
func (e *Engine) Rebuild(ctx context.Context) error {
	cat, err := e.source.Load()
	if err != nil {
		return err
	}

	texts := make([]string, len(cat.Jobs))
	jobSkills := make([][]string, len(cat.Jobs))
	for i, j := range cat.Jobs {
		texts[i] = j.Text()
		jobSkills[i] = skills.Parse(j.CleanSkills)
	}

	vecs, err := e.cache.Embed(ctx, texts)
	if err != nil {
		return err
	}

	snap := &snapshot{
		catalog:   cat,
		texts:     texts,
		jobSkills: jobSkills,
		index:     index.Fit(texts),
		jobVecs:   vecs,
	}

	e.mu.Lock()
	e.snap = snap
	e.mu.Unlock()

	e.log.Info("rebuilt recommendation indexes",
		zap.Int("jobs", len(cat.Jobs)),
		zap.Int("resumes", len(cat.Resumes)),
		zap.Int("course_skills", len(cat.Courses)),
	)
	return nil
}

// Catalog returns the currently served catalog, or nil before the first
// Rebuild.
func (e *Engine) Catalog() *catalog.Catalog {
	if snap := e.snapshot(); snap != nil {
		return snap.catalog
	}
	return nil
}

func (e *Engine) snapshot() *snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap
}

// Recommend ranks every job in the snapshot for the given candidate text and
// skill set. An empty catalog yields an empty ranking, not an error.
func (e *Engine) Recommend(ctx context.Context, text string, candidateSkills []string, persona string, k int, mode Mode) ([]Recommendation, error) {
	snap := e.snapshot()
	if snap == nil || len(snap.catalog.Jobs) == 0 {
		return []Recommendation{}, nil
	}
	if persona == "" {
		persona = e.defaultPersona
	}

	sig, err := e.computeSignals(ctx, snap, text, candidateSkills)
	if err != nil {
		return nil, err
	}

	w := e.weights.For(persona)
	scores := make([]float64, len(snap.catalog.Jobs))
	breakdowns := make([]Breakdown, len(snap.catalog.Jobs))
	for i, j := range snap.catalog.Jobs {
		exp := ExperienceAlignment(j.Title, persona)
		scores[i], breakdowns[i] = fuse(w, mode, sig.Embed[i], sig.Skill[i], sig.TFIDF[i], sig.KW[i], exp)
	}

	order := rank(scores, k)
	out := make([]Recommendation, len(order))
	for n, i := range order {
		j := snap.catalog.Jobs[i]
		out[n] = Recommendation{
			JobID:           j.JobID,
			Title:           j.Title,
			ExperienceLevel: j.ExperienceLevel,
			Score:           scores[i],
			Breakdown:       breakdowns[i],
		}
	}
	return out, nil
}

// RecommendForProfile ranks jobs for a stored profile. An unknown id yields
// an empty ranking.
func (e *Engine) RecommendForProfile(ctx context.Context, profileID string, k int, mode Mode) ([]Recommendation, error) {
	p, ok, err := e.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Recommendation{}, nil
	}
	return e.Recommend(ctx, profileText(p), p.Skills, p.Persona, k, mode)
}

// RecommendForResume ranks jobs for a catalog résumé. Unknown ids and
// résumés without text yield an empty ranking.
func (e *Engine) RecommendForResume(ctx context.Context, resumeID, persona string, k int, mode Mode) ([]Recommendation, error) {
	text, candidateSkills, ok := e.resolveResume(resumeID)
	if !ok {
		return []Recommendation{}, nil
	}
	return e.Recommend(ctx, text, candidateSkills, persona, k, mode)
}

// Gaps analyzes the skill gap between a stored profile and a catalog job.
// Unknown profile or job ids yield a zero Result.
func (e *Engine) Gaps(ctx context.Context, profileID, jobID string) (gaps.Result, error) {
	p, ok, err := e.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return gaps.Result{}, err
	}
	if !ok {
		return gaps.Result{}, nil
	}
	return e.gapsFor(p.Skills, jobID), nil
}

// GapsForResume analyzes the skill gap between a catalog résumé and a
// catalog job.
func (e *Engine) GapsForResume(resumeID, jobID string) gaps.Result {
	_, candidateSkills, ok := e.resolveResume(resumeID)
	if !ok {
		return gaps.Result{}
	}
	return e.gapsFor(candidateSkills, jobID)
}

func (e *Engine) gapsFor(candidateSkills []string, jobID string) gaps.Result {
	snap := e.snapshot()
	if snap == nil {
		return gaps.Result{}
	}
	job, ok := snap.catalog.JobByID(jobID)
	if !ok {
		return gaps.Result{}
	}
	normalized := make([]string, 0, len(candidateSkills))
	for _, s := range candidateSkills {
		if n := skills.Normalize(s); n != "" {
			normalized = append(normalized, n)
		}
	}
	return gaps.Analyze(normalized, skills.Parse(job.CleanSkills), snap.catalog.Courses)
}

// resolveResume turns a catalog résumé into candidate text and skills.
// Résumés without any structured skills fall back to heuristic extraction
// over the résumé text.
func (e *Engine) resolveResume(resumeID string) (string, []string, bool) {
	snap := e.snapshot()
	if snap == nil {
		return "", nil, false
	}
	r, ok := snap.catalog.ResumeByID(resumeID)
	if !ok {
		return "", nil, false
	}
	text := r.Text()
	if strings.TrimSpace(text) == "" {
		return "", nil, false
	}

	candidateSkills := skills.Parse(r.CleanSkills)
	candidateSkills = append(candidateSkills, skills.Parse(r.ParsedSkills)...)
	if len(candidateSkills) == 0 {
		candidateSkills = e.extractor.Extract(text)
	}
	return text, dedupe(candidateSkills), true
}

// profileText is the candidate text representation of a stored profile.
func profileText(p store.Profile) string {
	return p.Summary + " \n " + strings.Join(p.Skills, " ")
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
