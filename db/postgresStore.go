package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresStore keeps every collection as one JSONB row keyed by name.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS tutor_collections (
			name TEXT PRIMARY KEY,
			data JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create collections table: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Load(name string, v any) error {
	query := `SELECT data FROM tutor_collections WHERE name = $1`

	var data []byte
	err := s.db.QueryRow(query, name).Scan(&data)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load collection %q: %w", name, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode collection %q: %w", name, err)
	}

	return nil
}

func (s *PostgresStore) Save(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode collection %q: %w", name, err)
	}

	query := `
		INSERT INTO tutor_collections (name, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET data = $2, updated_at = NOW()`

	if _, err := s.db.Exec(query, name, data); err != nil {
		return fmt.Errorf("failed to save collection %q: %w", name, err)
	}

	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
