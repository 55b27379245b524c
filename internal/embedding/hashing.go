package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// DefaultHashingDimension matches the width of common sentence-embedding
// models so cached vectors stay interchangeable in tests.
const DefaultHashingDimension = 384

// HashingEmbedder is a deterministic, non-neural embedder: token and bigram
// features are hashed into a fixed-width vector which is then unit-
// normalized. It captures lexical overlap rather than learned semantics and
// serves as the offline/test implementation.
type HashingEmbedder struct {
	dim int
}

// NewHashingEmbedder creates a hashing embedder of the given width.
// Non-positive dim falls back to DefaultHashingDimension.
func NewHashingEmbedder(dim int) *HashingEmbedder {
	if dim <= 0 {
		dim = DefaultHashingDimension
	}
	return &HashingEmbedder{dim: dim}
}

// Dimension returns the vector width.
func (e *HashingEmbedder) Dimension() int { return e.dim }

// Embed hashes each text into a unit-normalized feature vector.
func (e *HashingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = e.embedOne(text)
	}
	return out, nil
}

func (e *HashingEmbedder) embedOne(text string) []float32 {
	vec := make([]float32, e.dim)
	tokens := hashTokens(text)
	for i, tok := range tokens {
		e.accumulate(vec, tok, 1.0)
		if i+1 < len(tokens) {
			// Bigrams carry phrase-level signal at half weight.
			e.accumulate(vec, tokens[i]+" "+tokens[i+1], 0.5)
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= inv
		}
	}
	return vec
}

// accumulate adds a signed feature weight at the hashed slot for term.
// One hash bit supplies the sign so colliding features partially cancel
// instead of always inflating the slot.
func (e *HashingEmbedder) accumulate(vec []float32, term string, weight float32) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(term))
	sum := h.Sum64()
	slot := int(sum % uint64(e.dim))
	if sum&(1<<63) != 0 {
		weight = -weight
	}
	vec[slot] += weight
}

func hashTokens(text string) []string {
	var tokens []string
	var word strings.Builder
	flush := func() {
		w := word.String()
		word.Reset()
		if len(w) >= 2 {
			tokens = append(tokens, w)
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}
