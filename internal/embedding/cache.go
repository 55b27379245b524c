package embedding

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/job-recommender/internal/store"
)

// Cache memoizes embeddings in a persistent VectorStore keyed by the
// SHA-256 of the source text. All misses within one call are embedded in a
// single model invocation. The cache is append-only; entries are never
// evicted.
type Cache struct {
	store    store.VectorStore
	embedder Embedder
	log      *zap.Logger
}

// NewCache creates an embedding cache over the given store and embedder.
func NewCache(s store.VectorStore, e Embedder, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{store: s, embedder: e, log: log}
}

// Dimension returns the embedder's output width.
func (c *Cache) Dimension() int { return c.embedder.Dimension() }

// Embed returns one unit-normalized vector per text, in input order. Cached
// vectors whose width differs from the current model's output (for example
// after a model upgrade) are treated as misses and overwritten.
func (c *Cache) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	keys := make([]string, len(texts))
	var missIdx []int

	dim := c.embedder.Dimension()
	for i, text := range texts {
		keys[i] = store.TextKey(text)
		vec, ok, err := c.store.GetVector(ctx, keys[i])
		if err != nil {
			return nil, fmt.Errorf("embedding cache lookup: %w", err)
		}
		if ok && len(vec) == dim {
			vecs[i] = vec
			continue
		}
		if ok {
			c.log.Warn("cached embedding has stale dimension, recomputing",
				zap.Int("cached", len(vec)), zap.Int("expected", dim))
		}
		missIdx = append(missIdx, i)
	}

	if len(missIdx) > 0 {
		missTexts := make([]string, len(missIdx))
		for j, i := range missIdx {
			missTexts[j] = texts[i]
		}
		// One model invocation for the whole miss batch, never per item.
		fresh, err := c.embedder.Embed(ctx, missTexts)
		if err != nil {
			return nil, fmt.Errorf("embed %d texts: %w", len(missTexts), err)
		}
		if len(fresh) != len(missIdx) {
			return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(fresh), len(missIdx))
		}
		for j, i := range missIdx {
			vecs[i] = fresh[j]
			if err := c.store.PutVector(ctx, keys[i], fresh[j]); err != nil {
				return nil, fmt.Errorf("embedding cache store: %w", err)
			}
		}
		c.log.Debug("embedding cache filled",
			zap.Int("hits", len(texts)-len(missIdx)), zap.Int("misses", len(missIdx)))
	}

	return vecs, nil
}
