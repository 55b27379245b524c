package recommend

import (
	"math"
	"sort"
)

// Mode selects which signal families contribute to the final score.
type Mode string

const (
	// ModeHybrid fuses all four signals. This is the default.
	ModeHybrid Mode = "hybrid"
	// ModeBaseline keeps only the lexical signals (tf-idf and fuzzy keyword).
	ModeBaseline Mode = "baseline"
	// ModeEmbed keeps only the semantic embedding signal.
	ModeEmbed Mode = "embed"
)

// ParseMode maps a request string onto a known mode, defaulting to hybrid.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeBaseline:
		return ModeBaseline
	case ModeEmbed:
		return ModeEmbed
	default:
		return ModeHybrid
	}
}

// defaultTopK is the result count when the caller does not specify one.
const defaultTopK = 10

// Breakdown echoes the per-signal contributions behind a score, after mode
// masking and the tf-idf/keyword max.
type Breakdown struct {
	Embed float64 `json:"embed_sim"`
	Skill float64 `json:"skill_overlap"`
	Exp   float64 `json:"exp"`
	KW    float64 `json:"kw"`
}

// Recommendation is one ranked job.
type Recommendation struct {
	JobID           string    `json:"job_id"`
	Title           string    `json:"title"`
	ExperienceLevel string    `json:"experience_level,omitempty"`
	Score           float64   `json:"score"`
	Breakdown       Breakdown `json:"breakdown"`
}

// fuse applies mode masking and the persona weight vector to raw signals,
// producing the final score and its breakdown for one job.
func fuse(w Weights, mode Mode, embed, skill, tfidf, kw, exp float64) (float64, Breakdown) {
	switch mode {
	case ModeBaseline:
		embed, skill, exp = 0, 0, 0
	case ModeEmbed:
		skill, tfidf, kw, exp = 0, 0, 0, 0
	}
	kwBest := math.Max(tfidf, kw)
	score := w.Embed*embed + w.Skill*skill + w.Exp*exp + w.KW*kwBest
	return score, Breakdown{Embed: embed, Skill: skill, Exp: exp, KW: kwBest}
}

// rank returns job indexes in descending score order, truncated to k. Ties
// keep catalog order, so rankings are stable across identical inputs.
func rank(scores []float64, k int) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	if k <= 0 {
		k = defaultTopK
	}
	if k < len(order) {
		order = order[:k]
	}
	return order
}
