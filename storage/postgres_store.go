package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"ghana-rentals/models"
)

// Namespaces for the two snapshot kinds a run produces.
const (
	NamespaceRaw       = "raw_listings"
	NamespaceProcessed = "processed_listings"
)

// PostgresStore keeps each pipeline run's dataset as an independently-named
// JSON snapshot row, append-only per namespace. Reads only ever fetch the
// latest snapshot of a namespace, so no locking is needed.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, ensures the snapshot
// table exists, and returns a ready-to-use store.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 5; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	ps := &PostgresStore{db: db}
	if err := ps.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return ps, nil
}

func (ps *PostgresStore) migrate() error {
	_, err := ps.db.Exec(`
		CREATE TABLE IF NOT EXISTS dataset_snapshots (
			id           UUID        PRIMARY KEY,
			namespace    VARCHAR(64) NOT NULL,
			record_count INT         NOT NULL,
			payload      JSONB       NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_snapshots_ns_created
			ON dataset_snapshots(namespace, created_at DESC);
	`)
	return err
}

// StoreRaw writes one raw-record snapshot and returns its handle.
func (ps *PostgresStore) StoreRaw(ctx context.Context, records []*models.RawRecord, namespace string) (string, error) {
	payload, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("postgres: marshal raw snapshot: %w", err)
	}
	return ps.storeSnapshot(ctx, payload, len(records), namespace)
}

// StoreNormalized writes one normalized-record snapshot and returns its handle.
func (ps *PostgresStore) StoreNormalized(ctx context.Context, records []*models.NormalizedRecord, namespace string) (string, error) {
	payload, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("postgres: marshal normalized snapshot: %w", err)
	}
	return ps.storeSnapshot(ctx, payload, len(records), namespace)
}

func (ps *PostgresStore) storeSnapshot(ctx context.Context, payload []byte, count int, namespace string) (string, error) {
	id := uuid.NewString()
	_, err := ps.db.ExecContext(ctx, `
		INSERT INTO dataset_snapshots (id, namespace, record_count, payload)
		VALUES ($1, $2, $3, $4)
	`, id, namespace, count, payload)
	if err != nil {
		return "", fmt.Errorf("postgres: insert snapshot: %w", err)
	}
	return fmt.Sprintf("pg://dataset_snapshots/%s/%s", namespace, id), nil
}

// LoadLatestNormalized returns the most recent normalized snapshot for the
// namespace. A namespace with no snapshots yields (nil, nil).
func (ps *PostgresStore) LoadLatestNormalized(ctx context.Context, namespace string) ([]*models.NormalizedRecord, error) {
	var payload []byte
	err := ps.db.QueryRowContext(ctx, `
		SELECT payload FROM dataset_snapshots
		WHERE namespace = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, namespace).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: load latest snapshot: %w", err)
	}

	var records []*models.NormalizedRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("postgres: unmarshal snapshot: %w", err)
	}
	return records, nil
}

// Close closes the underlying connection pool.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
