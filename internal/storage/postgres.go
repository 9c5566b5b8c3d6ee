package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresMedium keeps every snapshot as one row in a key/value table, so the
// whole-collection read-modify-write contract stays identical to the other
// media.
type PostgresMedium struct {
	db *sql.DB
}

func NewPostgresMedium(db *sql.DB) (*PostgresMedium, error) {
	m := &PostgresMedium{db: db}
	if err := m.ensureSchema(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *PostgresMedium) ensureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			key TEXT PRIMARY KEY,
			value JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := m.db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}

	return nil
}

func (m *PostgresMedium) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := m.db.QueryRowContext(ctx, "SELECT value FROM snapshots WHERE key = $1", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (m *PostgresMedium) Set(ctx context.Context, key string, value []byte) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value)
	return err
}

func (m *PostgresMedium) Delete(ctx context.Context, key string) error {
	_, err := m.db.ExecContext(ctx, "DELETE FROM snapshots WHERE key = $1", key)
	return err
}
