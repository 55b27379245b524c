package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "cache", "test.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLite_CreatesDirectory(t *testing.T) {
	// The store must create missing parent directories or fail fast.
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "a", "b", "cache.sqlite"))
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestSQLite_VectorRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	vec := []float32{0.25, -1.5, 3.0}
	key := TextKey("some job text")

	_, ok, err := s.GetVector(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.PutVector(ctx, key, vec))

	got, ok, err := s.GetVector(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, vec, got)
}

func TestSQLite_PutVectorIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	key := TextKey("text")

	require.NoError(t, s.PutVector(ctx, key, []float32{1, 2}))
	require.NoError(t, s.PutVector(ctx, key, []float32{1, 2}))

	got, ok, err := s.GetVector(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2}, got)
}

func TestSQLite_ProfileRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := Profile{Summary: "data scientist", Skills: []string{"python", "ml"}, Persona: "Fresh Grad"}
	id, err := s.SaveProfile(ctx, p)
	require.NoError(t, err)
	assert.Len(t, id, 64, "profile id is the full hex sha256 digest")

	got, ok, err := s.GetProfile(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, p, got)
}

func TestSQLite_GetProfileMissing(t *testing.T) {
	s := openTestStore(t)
	_, ok, err := s.GetProfile(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProfileID_Deterministic(t *testing.T) {
	p := Profile{Summary: "s", Skills: []string{"go"}, Persona: "Career Switcher"}
	assert.Equal(t, ProfileID(p), ProfileID(p))

	q := p
	q.Persona = "Fresh Grad"
	assert.NotEqual(t, ProfileID(p), ProfileID(q))
}

func TestTextKey_DistinctTexts(t *testing.T) {
	assert.NotEqual(t, TextKey("a"), TextKey("b"))
	assert.Equal(t, TextKey("same"), TextKey("same"))
}
