// Package store provides the persistent storage backends owned by the
// engine: the embedding vector cache and the profile store. Both sit behind
// small interfaces so the backing store is swappable without touching
// scoring logic.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// VectorStore persists fixed-width float vectors under content-addressed
// keys. Puts are idempotent insert-or-replace: concurrent writers for the
// same key may duplicate work but never corrupt state. Entries are never
// evicted.
type VectorStore interface {
	GetVector(ctx context.Context, key string) ([]float32, bool, error)
	PutVector(ctx context.Context, key string, vec []float32) error
	Close() error
}

// Profile is a persisted candidate profile. Profiles are created once and
// never mutated, only looked up by id.
type Profile struct {
	Summary string   `json:"summary"`
	Skills  []string `json:"skills"`
	Persona string   `json:"persona"`
}

// ProfileStore persists profiles under their content-addressed id.
type ProfileStore interface {
	// SaveProfile stores the profile and returns its id. Saving the same
	// payload twice yields the same id.
	SaveProfile(ctx context.Context, p Profile) (string, error)
	// GetProfile returns the profile for id, or ok=false when absent.
	GetProfile(ctx context.Context, id string) (Profile, bool, error)
	Close() error
}

// ProfileID derives the content-addressed profile identifier: the hex
// SHA-256 of the canonical JSON payload. The full digest is kept — truncated
// prefixes risk silent collisions across unrelated profiles.
func ProfileID(p Profile) string {
	payload, err := json.Marshal(p)
	if err != nil {
		// Profile contains only strings and slices; Marshal cannot fail.
		panic(fmt.Sprintf("store: marshal profile: %v", err))
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// TextKey derives the content-addressed cache key for a piece of text.
func TextKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
