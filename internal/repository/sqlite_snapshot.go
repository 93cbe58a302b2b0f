package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/syllabus/internal/db"
)

// SQLiteSnapshotStore implements SnapshotStore on the kv_snapshots table.
type SQLiteSnapshotStore struct {
	db db.DBTX
}

func NewSQLiteSnapshotStore(conn db.DBTX) *SQLiteSnapshotStore {
	return &SQLiteSnapshotStore{db: conn}
}

func (s *SQLiteSnapshotStore) Save(ctx context.Context, key string, value []byte, reason string) (*Snapshot, error) {
	createdAt := nowUTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO kv_snapshots (key, value, reason, created_at) VALUES (?, ?, ?, ?)`,
		key, string(value), reason, createdAt)
	if err != nil {
		return nil, fmt.Errorf("saving snapshot of %q: %w", key, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading snapshot id: %w", err)
	}
	return &Snapshot{
		ID:        id,
		Key:       key,
		Value:     value,
		Reason:    reason,
		CreatedAt: parseTime(createdAt),
	}, nil
}

func (s *SQLiteSnapshotStore) Latest(ctx context.Context, key string) (*Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, key, value, reason, created_at FROM kv_snapshots
		WHERE key = ? ORDER BY id DESC LIMIT 1`, key)
	snap, err := scanSnapshot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("snapshot of %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}
	return snap, nil
}

// List returns snapshots of key, newest first.
func (s *SQLiteSnapshotStore) List(ctx context.Context, key string) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, key, value, reason, created_at FROM kv_snapshots
		WHERE key = ? ORDER BY id DESC`, key)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots of %q: %w", key, err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		out = append(out, *snap)
	}
	return out, rows.Err()
}

func (s *SQLiteSnapshotStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM kv_snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting snapshot %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("snapshot %d: %w", id, ErrNotFound)
	}
	return nil
}

// Prune keeps the newest keep snapshots of key and returns how many were
// removed.
func (s *SQLiteSnapshotStore) Prune(ctx context.Context, key string, keep int) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM kv_snapshots WHERE key = ? AND id NOT IN (
			SELECT id FROM kv_snapshots WHERE key = ? ORDER BY id DESC LIMIT ?
		)`, key, key, max(keep, 0))
	if err != nil {
		return 0, fmt.Errorf("pruning snapshots of %q: %w", key, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*Snapshot, error) {
	var (
		snap      Snapshot
		value     string
		createdAt string
	)
	if err := row.Scan(&snap.ID, &snap.Key, &value, &snap.Reason, &createdAt); err != nil {
		return nil, err
	}
	snap.Value = []byte(value)
	snap.CreatedAt = parseTime(createdAt)
	return &snap, nil
}
