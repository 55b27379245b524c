package recommend

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-recommender/internal/fuzzy"
)

// Signals holds the per-job raw signal vectors for one candidate, each
// indexed by job position and valued in [0,1].
type Signals struct {
	Embed []float64
	TFIDF []float64
	Skill []float64
	KW    []float64
}

// computeSignals evaluates all four similarity signals for the candidate
// against every job in the snapshot. The signals are independent and run
// concurrently; the first error cancels the rest.
func (e *Engine) computeSignals(ctx context.Context, snap *snapshot, text string, candidateSkills []string) (Signals, error) {
	n := len(snap.catalog.Jobs)
	sig := Signals{
		Embed: make([]float64, n),
		TFIDF: make([]float64, n),
		Skill: make([]float64, n),
		KW:    make([]float64, n),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if text == "" {
			return nil
		}
		vecs, err := e.cache.Embed(gctx, []string{text})
		if err != nil {
			return err
		}
		for i, jv := range snap.jobVecs {
			sig.Embed[i] = dot(vecs[0], jv)
		}
		return nil
	})

	g.Go(func() error {
		if sims := snap.index.Similarity(text); sims != nil {
			copy(sig.TFIDF, sims)
		}
		return nil
	})

	g.Go(func() error {
		cand := make(map[string]bool, len(candidateSkills))
		for _, s := range candidateSkills {
			if s != "" {
				cand[s] = true
			}
		}
		for i, js := range snap.jobSkills {
			sig.Skill[i] = jaccard(cand, js)
		}
		return nil
	})

	g.Go(func() error {
		for i, jt := range snap.texts {
			sig.KW[i] = fuzzy.TokenSetRatio(text, jt)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Signals{}, err
	}
	return sig, nil
}

// jaccard computes set overlap between the candidate skill set and a job's
// skill list. Either side empty scores zero, not undefined.
func jaccard(cand map[string]bool, jobSkills []string) float64 {
	if len(cand) == 0 || len(jobSkills) == 0 {
		return 0
	}
	job := make(map[string]bool, len(jobSkills))
	for _, s := range jobSkills {
		if s != "" {
			job[s] = true
		}
	}
	if len(job) == 0 {
		return 0
	}
	inter := 0
	for s := range job {
		if cand[s] {
			inter++
		}
	}
	union := len(cand) + len(job) - inter
	return float64(inter) / float64(union)
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	if sum < 0 {
		return 0
	}
	if sum > 1 {
		return 1
	}
	return sum
}
