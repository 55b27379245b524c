package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
)

// Postgres backs the vector cache and profile store with PostgreSQL,
// storing embeddings in a pgvector column. Intended for deployments where
// several instances share one cache; SQLite remains the default backend.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to databaseURL and ensures the schema. The vector
// column width is fixed at dim; a dimension change requires a new table.
func OpenPostgres(ctx context.Context, databaseURL string, dim int) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	schema := fmt.Sprintf(`
		CREATE EXTENSION IF NOT EXISTS vector;
		CREATE TABLE IF NOT EXISTS embedding_cache (
			hash TEXT PRIMARY KEY,
			vec  vector(%d) NOT NULL
		);
		CREATE TABLE IF NOT EXISTS profiles (
			id      TEXT PRIMARY KEY,
			summary TEXT NOT NULL DEFAULT '',
			skills  JSONB NOT NULL DEFAULT '[]',
			persona TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS feedback (
			profile_id TEXT,
			job_id     TEXT,
			label      INTEGER,
			ts         TIMESTAMPTZ DEFAULT NOW()
		);`, dim)
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init postgres schema: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// GetVector returns the cached vector for key, if present.
func (p *Postgres) GetVector(ctx context.Context, key string) ([]float32, bool, error) {
	var vec pgvector.Vector
	err := p.pool.QueryRow(ctx, `SELECT vec FROM embedding_cache WHERE hash = $1`, key).Scan(&vec)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get vector %s: %w", key, err)
	}
	return vec.Slice(), true, nil
}

// PutVector stores vec under key, replacing any existing entry.
func (p *Postgres) PutVector(ctx context.Context, key string, vec []float32) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO embedding_cache(hash, vec) VALUES ($1, $2)
		 ON CONFLICT (hash) DO UPDATE SET vec = EXCLUDED.vec`,
		key, pgvector.NewVector(vec))
	if err != nil {
		return fmt.Errorf("put vector %s: %w", key, err)
	}
	return nil
}

// SaveProfile stores prof under its content-addressed id.
func (p *Postgres) SaveProfile(ctx context.Context, prof Profile) (string, error) {
	id := ProfileID(prof)
	skillsJSON, err := json.Marshal(prof.Skills)
	if err != nil {
		return "", fmt.Errorf("marshal skills: %w", err)
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO profiles(id, summary, skills, persona) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET summary = EXCLUDED.summary, skills = EXCLUDED.skills, persona = EXCLUDED.persona`,
		id, prof.Summary, skillsJSON, prof.Persona)
	if err != nil {
		return "", fmt.Errorf("save profile %s: %w", id, err)
	}
	return id, nil
}

// GetProfile returns the profile stored under id.
func (p *Postgres) GetProfile(ctx context.Context, id string) (Profile, bool, error) {
	var prof Profile
	err := p.pool.QueryRow(ctx,
		`SELECT summary, skills, persona FROM profiles WHERE id = $1`, id).
		Scan(&prof.Summary, &prof.Skills, &prof.Persona)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, fmt.Errorf("get profile %s: %w", id, err)
	}
	return prof, true, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
