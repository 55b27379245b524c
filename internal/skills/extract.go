package skills

import (
	"regexp"
	"strings"
)

// maxExtracted bounds heuristic extraction output to keep downstream
// signal computation cheap.
const maxExtracted = 200

// maxProfileText caps analyzed profile text length in runes.
const maxProfileText = 10000

// summaryLen is the length of the naive profile summary in runes.
const summaryLen = 600

// tokenRe matches alphanumeric runs of length >= 2, keeping tech suffixes
// like c++, c# and node.js intact.
var tokenRe = regexp.MustCompile(`[A-Za-z][A-Za-z0-9+.#-]{1,}`)

var controlRe = regexp.MustCompile(`[\x00-\x1F]+`)

// PhraseExtractor is an optional linguistic-analysis capability that augments
// heuristic extraction with phrase candidates. Implementations are selected
// at configuration time; a nil extractor degrades to heuristic-only output.
type PhraseExtractor interface {
	Phrases(text string) []string
}

// Extractor extracts skill tokens from free text. The zero value is usable
// and runs the heuristic path only.
type Extractor struct {
	// Phrases augments the token heuristic when non-nil.
	Phrases PhraseExtractor
}

// Extract tokenizes free text into normalized skill candidates, capped at
// maxExtracted. It never fails; empty input yields an empty list.
func (e Extractor) Extract(text string) []string {
	raw := tokenRe.FindAllString(text, -1)
	candidates := make([]string, 0, len(raw))
	for _, t := range raw {
		candidates = append(candidates, Normalize(t))
	}
	if e.Phrases != nil {
		limited := text
		if runes := []rune(limited); len(runes) > maxProfileText {
			limited = string(runes[:maxProfileText])
		}
		for _, p := range e.Phrases.Phrases(limited) {
			candidates = append(candidates, Normalize(p))
		}
	}

	seen := make(map[string]bool, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, s := range candidates {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if len(out) == maxExtracted {
			break
		}
	}
	return out
}

// AnalyzeProfileText cleans raw profile text, extracts skill candidates and
// derives a naive summary (first 600 runes of the cleaned text).
func (e Extractor) AnalyzeProfileText(text string) (summary string, extracted []string) {
	cleaned := controlRe.ReplaceAllString(strings.TrimSpace(text), " ")
	if runes := []rune(cleaned); len(runes) > maxProfileText {
		cleaned = string(runes[:maxProfileText])
	}
	extracted = e.Extract(cleaned)
	summary = cleaned
	if runes := []rune(summary); len(runes) > summaryLen {
		summary = string(runes[:summaryLen])
	}
	return summary, extracted
}

// CapitalizedPhrases is a lightweight PhraseExtractor that proposes runs of
// consecutive capitalized words (for example "Apache Kafka") as skill
// candidates. It stands in for heavier noun-phrase chunking.
type CapitalizedPhrases struct{}

var capRunRe = regexp.MustCompile(`(?:[A-Z][A-Za-z0-9+.#-]+ ){1,3}[A-Z][A-Za-z0-9+.#-]+`)

// Phrases returns capitalized multi-word runs found in text.
func (CapitalizedPhrases) Phrases(text string) []string {
	return capRunRe.FindAllString(text, -1)
}
