package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GlobalSyncStateID is the primary key of the singleton sync state row.
const GlobalSyncStateID = "global"

// SyncStateRepo reads and writes the singleton sync cursor.
type SyncStateRepo struct {
	db DBTX
}

// NewSyncStateRepo creates a new SyncStateRepo.
func NewSyncStateRepo(db DBTX) *SyncStateRepo {
	return &SyncStateRepo{db: db}
}

// GetCursor returns the stored cursor, or 0 when no sync has completed yet.
func (r *SyncStateRepo) GetCursor(ctx context.Context) (int64, error) {
	var cursor int64
	err := r.db.QueryRowContext(ctx, "SELECT cursor FROM sync_state WHERE id = ?", GlobalSyncStateID).Scan(&cursor)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query sync cursor: %w", err)
	}
	return cursor, nil
}

// SetCursor creates the singleton row on first use and stores cursor.
func (r *SyncStateRepo) SetCursor(ctx context.Context, cursor int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sync_state (id, cursor, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET cursor = excluded.cursor, updated_at = excluded.updated_at`,
		GlobalSyncStateID, cursor, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to store sync cursor: %w", err)
	}
	return nil
}
