package store

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLite backs both store interfaces with a single local database file.
// If the file or its directory cannot be created the constructor fails —
// silently skipping persistence would corrupt lookups on restart.
type SQLite struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS embeddings (hash TEXT PRIMARY KEY, vec BLOB);
CREATE TABLE IF NOT EXISTS profiles (id TEXT PRIMARY KEY, summary TEXT, skills TEXT, persona TEXT);
CREATE TABLE IF NOT EXISTS feedback (profile_id TEXT, job_id TEXT, label INTEGER, ts DATETIME DEFAULT CURRENT_TIMESTAMP);
`

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store %s: %w", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// GetVector returns the cached vector for key, if present.
func (s *SQLite) GetVector(ctx context.Context, key string) ([]float32, bool, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, `SELECT vec FROM embeddings WHERE hash = ?`, key).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get vector %s: %w", key, err)
	}
	return decodeVector(blob), true, nil
}

// PutVector stores vec under key with insert-or-replace semantics.
func (s *SQLite) PutVector(ctx context.Context, key string, vec []float32) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO embeddings(hash, vec) VALUES (?, ?)`,
		key, encodeVector(vec))
	if err != nil {
		return fmt.Errorf("put vector %s: %w", key, err)
	}
	return nil
}

// SaveProfile stores p under its content-addressed id.
func (s *SQLite) SaveProfile(ctx context.Context, p Profile) (string, error) {
	id := ProfileID(p)
	skillsJSON, err := json.Marshal(p.Skills)
	if err != nil {
		return "", fmt.Errorf("marshal skills: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO profiles(id, summary, skills, persona) VALUES (?, ?, ?, ?)`,
		id, p.Summary, string(skillsJSON), p.Persona)
	if err != nil {
		return "", fmt.Errorf("save profile %s: %w", id, err)
	}
	return id, nil
}

// GetProfile returns the profile stored under id.
func (s *SQLite) GetProfile(ctx context.Context, id string) (Profile, bool, error) {
	var p Profile
	var skillsJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT summary, skills, persona FROM profiles WHERE id = ?`, id).
		Scan(&p.Summary, &skillsJSON, &p.Persona)
	if err == sql.ErrNoRows {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, fmt.Errorf("get profile %s: %w", id, err)
	}
	if skillsJSON != "" {
		if err := json.Unmarshal([]byte(skillsJSON), &p.Skills); err != nil {
			return Profile{}, false, fmt.Errorf("decode profile skills %s: %w", id, err)
		}
	}
	return p, true, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// encodeVector serializes a vector as little-endian float32 raw bytes.
func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(blob []byte) []float32 {
	vec := make([]float32, len(blob)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[4*i:]))
	}
	return vec
}
