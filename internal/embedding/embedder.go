// Package embedding computes dense semantic vectors for text and memoizes
// them in a persistent content-addressed cache.
package embedding

import "context"

// Embedder generates fixed-width vector embeddings from text. All vectors
// are unit-normalized so dot product equals cosine similarity.
//
// Implementations are selected at configuration time and constructed once at
// startup; there is no lazy first-call initialization.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	// Dimension returns the width of the output vectors.
	Dimension() int
}
