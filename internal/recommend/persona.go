package recommend

import (
	"fmt"
	"strings"
)

// Weights is the signal weight vector for one persona. The four weights sum
// to 1.0.
type Weights struct {
	Embed float64 `json:"embed"`
	Skill float64 `json:"skill"`
	Exp   float64 `json:"exp"`
	KW    float64 `json:"kw"`
}

// Sum returns the total of all four weights.
func (w Weights) Sum() float64 {
	return w.Embed + w.Skill + w.Exp + w.KW
}

// WeightTable maps personas to weight vectors. Persona matching is a
// case-insensitive substring check; unmatched personas fall back to Base.
type WeightTable struct {
	Base    Weights `json:"base"`
	Fresh   Weights `json:"fresh"`
	Switch  Weights `json:"switch"`
	Retrain Weights `json:"retrain"`
}

// DefaultWeightTable returns the built-in persona weights.
func DefaultWeightTable() WeightTable {
	return WeightTable{
		Base:    Weights{Embed: 0.55, Skill: 0.25, Exp: 0.15, KW: 0.05},
		Fresh:   Weights{Embed: 0.50, Skill: 0.25, Exp: 0.20, KW: 0.05},
		Switch:  Weights{Embed: 0.50, Skill: 0.30, Exp: 0.15, KW: 0.05},
		Retrain: Weights{Embed: 0.50, Skill: 0.30, Exp: 0.10, KW: 0.10},
	}
}

// For resolves the weight vector for a persona label.
func (t WeightTable) For(persona string) Weights {
	p := strings.ToLower(persona)
	switch {
	case strings.Contains(p, "fresh"):
		return t.Fresh
	case strings.Contains(p, "switch"):
		return t.Switch
	case strings.Contains(p, "retrain"):
		return t.Retrain
	default:
		return t.Base
	}
}

// validate checks that every persona's weights sum to 1.0.
func (t WeightTable) validate() error {
	for name, w := range map[string]Weights{
		"base": t.Base, "fresh": t.Fresh, "switch": t.Switch, "retrain": t.Retrain,
	} {
		if s := w.Sum(); s < 0.999 || s > 1.001 {
			return fmt.Errorf("persona %q weights sum to %.3f, want 1.0", name, s)
		}
	}
	return nil
}

// neutralExperience is the alignment score for titles without seniority cues.
const neutralExperience = 0.7

// ExperienceAlignment scores how well a job title's seniority cues match the
// persona's career stage, in [0,1].
func ExperienceAlignment(jobTitle, persona string) float64 {
	title := strings.ToLower(jobTitle)
	p := strings.ToLower(persona)
	switch {
	case strings.Contains(title, "senior") || strings.Contains(title, "lead"):
		switch {
		case strings.Contains(p, "fresh"):
			return 0.2
		case strings.Contains(p, "switch"):
			return 0.5
		default:
			return 0.6
		}
	case strings.Contains(title, "junior") || strings.Contains(title, "associate") || strings.Contains(title, "entry"):
		if strings.Contains(p, "fresh") {
			return 1.0
		}
		return 0.8
	default:
		return neutralExperience
	}
}
