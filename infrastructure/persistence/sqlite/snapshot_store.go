// Package sqlite implements local project persistence on an embedded
// database, the autosave target when no cloud store is configured.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"opencut-backend/application/ports"
	"opencut-backend/domain/core/aggregates"
	pkgerrors "opencut-backend/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	version    INTEGER NOT NULL,
	data       TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_updated_at ON snapshots(updated_at);
`

// SnapshotStore implements ports.SnapshotStore on modernc.org/sqlite.
// One row per timeline; saving overwrites the previous snapshot.
type SnapshotStore struct {
	conn   *sql.DB
	logger *zap.Logger
}

// NewSnapshotStore opens (or creates) the database at dbPath and
// bootstraps the schema
func NewSnapshotStore(dbPath string, logger *zap.Logger) (*SnapshotStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotStore{conn: conn, logger: logger}, nil
}

// Close closes the database
func (s *SnapshotStore) Close() error {
	return s.conn.Close()
}

// SaveSnapshot upserts a timeline snapshot
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, snap aggregates.TimelineSnapshot) error {
	if snap.ID == "" {
		return pkgerrors.NewValidation("snapshot is missing its timeline ID")
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to serialize snapshot")
	}

	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO snapshots (id, name, version, data, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			version = excluded.version,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		snap.ID, snap.Name, snap.Version, string(data), snap.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to save snapshot")
	}
	return nil
}

// LoadSnapshot retrieves a snapshot by timeline ID
func (s *SnapshotStore) LoadSnapshot(ctx context.Context, id string) (aggregates.TimelineSnapshot, error) {
	var data string
	err := s.conn.QueryRowContext(ctx,
		"SELECT data FROM snapshots WHERE id = ?", id,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return aggregates.TimelineSnapshot{}, pkgerrors.NewNotFound("snapshot " + id)
	}
	if err != nil {
		return aggregates.TimelineSnapshot{}, pkgerrors.Wrap(err, "failed to load snapshot")
	}

	var snap aggregates.TimelineSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return aggregates.TimelineSnapshot{}, pkgerrors.Wrap(err, "stored snapshot is malformed")
	}
	return snap, nil
}

// ListSnapshots returns snapshot metadata, most recently updated first
func (s *SnapshotStore) ListSnapshots(ctx context.Context) ([]ports.SnapshotInfo, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT id, name, version, updated_at FROM snapshots ORDER BY updated_at DESC")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to list snapshots")
	}
	defer rows.Close()

	var infos []ports.SnapshotInfo
	for rows.Next() {
		var info ports.SnapshotInfo
		var updatedAt string
		if err := rows.Scan(&info.ID, &info.Name, &info.Version, &updatedAt); err != nil {
			return nil, pkgerrors.Wrap(err, "failed to scan snapshot row")
		}
		if ts, parseErr := time.Parse(time.RFC3339Nano, updatedAt); parseErr == nil {
			info.UpdatedAt = ts
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// DeleteSnapshot removes a snapshot. Unknown IDs are not an error.
func (s *SnapshotStore) DeleteSnapshot(ctx context.Context, id string) error {
	if _, err := s.conn.ExecContext(ctx, "DELETE FROM snapshots WHERE id = ?", id); err != nil {
		return pkgerrors.Wrap(err, "failed to delete snapshot")
	}
	return nil
}

// Prune keeps the most recent keep snapshots and deletes the rest
func (s *SnapshotStore) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		return pkgerrors.NewValidation("keep cannot be negative")
	}
	_, err := s.conn.ExecContext(ctx, `
		DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY updated_at DESC LIMIT ?
		)`, keep)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to prune snapshots")
	}
	return nil
}
