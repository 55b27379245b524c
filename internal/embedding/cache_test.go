package embedding

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-recommender/internal/store"
)

// countingEmbedder wraps an Embedder and counts model invocations.
type countingEmbedder struct {
	inner Embedder
	calls int
	texts int
}

func (c *countingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	c.calls++
	c.texts += len(texts)
	return c.inner.Embed(ctx, texts)
}

func (c *countingEmbedder) Dimension() int { return c.inner.Dimension() }

func newTestCache(t *testing.T, e Embedder) *Cache {
	t.Helper()
	s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "embeddings.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return NewCache(s, e, nil)
}

func TestCache_SecondCallIsAllHits(t *testing.T) {
	counter := &countingEmbedder{inner: NewHashingEmbedder(16)}
	cache := newTestCache(t, counter)
	ctx := context.Background()

	texts := []string{"data scientist python", "frontend react", "devops kubernetes"}

	first, err := cache.Embed(ctx, texts)
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, 1, counter.calls, "all misses go in one batch invocation")
	assert.Equal(t, 3, counter.texts)

	second, err := cache.Embed(ctx, texts)
	require.NoError(t, err)
	assert.Equal(t, 1, counter.calls, "second call must be served entirely from cache")
	assert.Equal(t, first, second)
}

func TestCache_PartialMissBatchesOnce(t *testing.T) {
	counter := &countingEmbedder{inner: NewHashingEmbedder(16)}
	cache := newTestCache(t, counter)
	ctx := context.Background()

	_, err := cache.Embed(ctx, []string{"alpha", "beta"})
	require.NoError(t, err)
	require.Equal(t, 1, counter.calls)

	_, err = cache.Embed(ctx, []string{"alpha", "gamma", "delta"})
	require.NoError(t, err)
	assert.Equal(t, 2, counter.calls, "misses are batched, not embedded per item")
	assert.Equal(t, 4, counter.texts, "only the two new texts hit the model")
}

func TestCache_DimensionMismatchIsMiss(t *testing.T) {
	s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "embeddings.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	// Seed a stale vector with the wrong width under the text's key.
	require.NoError(t, s.PutVector(ctx, store.TextKey("hello"), []float32{1, 2, 3}))

	counter := &countingEmbedder{inner: NewHashingEmbedder(16)}
	cache := NewCache(s, counter, nil)

	vecs, err := cache.Embed(ctx, []string{"hello"})
	require.NoError(t, err)
	require.Len(t, vecs[0], 16, "stale-width entry must be recomputed, not returned ragged")
	assert.Equal(t, 1, counter.calls)

	// The recomputed vector replaces the stale entry.
	stored, ok, err := s.GetVector(ctx, store.TextKey("hello"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, stored, 16)
}

func TestCache_InputOrderPreserved(t *testing.T) {
	cache := newTestCache(t, NewHashingEmbedder(16))
	ctx := context.Background()

	direct := NewHashingEmbedder(16)
	want, err := direct.Embed(ctx, []string{"one", "two"})
	require.NoError(t, err)

	got, err := cache.Embed(ctx, []string{"one", "two"})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Reversed input returns reversed rows.
	gotRev, err := cache.Embed(ctx, []string{"two", "one"})
	require.NoError(t, err)
	assert.Equal(t, want[0], gotRev[1])
	assert.Equal(t, want[1], gotRev[0])
}

func TestHashingEmbedder_Deterministic(t *testing.T) {
	e := NewHashingEmbedder(64)
	ctx := context.Background()
	a, err := e.Embed(ctx, []string{"python machine learning"})
	require.NoError(t, err)
	b, err := e.Embed(ctx, []string{"python machine learning"})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestHashingEmbedder_UnitNorm(t *testing.T) {
	e := NewHashingEmbedder(64)
	vecs, err := e.Embed(context.Background(), []string{"python data science pipelines"})
	require.NoError(t, err)

	var norm float64
	for _, v := range vecs[0] {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, norm, 1e-5)
}

func TestHashingEmbedder_SimilarTextsCloser(t *testing.T) {
	e := NewHashingEmbedder(128)
	ctx := context.Background()
	vecs, err := e.Embed(ctx, []string{
		"python machine learning models",
		"python machine learning pipelines",
		"baroque violin performance",
	})
	require.NoError(t, err)

	dot := func(a, b []float32) float64 {
		var s float64
		for i := range a {
			s += float64(a[i]) * float64(b[i])
		}
		return s
	}
	assert.Greater(t, dot(vecs[0], vecs[1]), dot(vecs[0], vecs[2]))
}
