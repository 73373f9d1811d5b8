package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS models (
	name       TEXT    NOT NULL,
	version    INTEGER NOT NULL,
	created_at TEXT    NOT NULL,
	run_id     TEXT    NOT NULL DEFAULT '',
	signature  TEXT    NOT NULL,
	example    TEXT    NOT NULL,
	params     TEXT    NOT NULL,
	metrics    TEXT    NOT NULL,
	model      BLOB    NOT NULL,
	PRIMARY KEY (name, version)
)`

// SQLite keeps registered versions in a sqlite database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating when needed) the registry database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating registry directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening registry %s: %w", path, err)
	}
	// A single connection serializes writers on the file.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating registry schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// Register stores r as version max+1 of its name.
func (s *SQLite) Register(ctx context.Context, r Registration) (int, error) {
	if r.Name == "" {
		return 0, fmt.Errorf("model name is required")
	}

	signature, err := json.Marshal(r.Signature)
	if err != nil {
		return 0, fmt.Errorf("encoding signature: %w", err)
	}
	example, err := json.Marshal(r.Example)
	if err != nil {
		return 0, fmt.Errorf("encoding example: %w", err)
	}
	params, err := json.Marshal(r.Params)
	if err != nil {
		return 0, fmt.Errorf("encoding params: %w", err)
	}
	metrics, err := json.Marshal(r.Metrics)
	if err != nil {
		return 0, fmt.Errorf("encoding metrics: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting registration: %w", err)
	}
	defer tx.Rollback()

	var version int
	row := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) + 1 FROM models WHERE name = ?`, r.Name)
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("allocating version: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO models (name, version, created_at, run_id, signature, example, params, metrics, model)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.Name, version, time.Now().UTC().Format(time.RFC3339Nano), r.RunID,
		string(signature), string(example), string(params), string(metrics), r.Model)
	if err != nil {
		return 0, fmt.Errorf("inserting version %d: %w", version, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing registration: %w", err)
	}
	return version, nil
}

// Latest returns the highest version registered under name.
func (s *SQLite) Latest(ctx context.Context, name string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT version, created_at, run_id, signature, example, params, metrics, model
		FROM models
		WHERE name = ?
		ORDER BY version DESC
		LIMIT 1
	`, name)

	var entry Entry
	var created, signature, example, params, metrics string
	err := row.Scan(&entry.Version, &created, &entry.RunID, &signature, &example, &params, &metrics, &entry.Model)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading latest %s: %w", name, err)
	}

	entry.Name = name
	if entry.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("reading created_at of %s v%d: %w", name, entry.Version, err)
	}
	for _, field := range []struct {
		raw  string
		dest any
	}{
		{signature, &entry.Signature},
		{example, &entry.Example},
		{params, &entry.Params},
		{metrics, &entry.Metrics},
	} {
		if err := json.Unmarshal([]byte(field.raw), field.dest); err != nil {
			return nil, fmt.Errorf("decoding %s v%d: %w", name, entry.Version, err)
		}
	}

	return &entry, nil
}
