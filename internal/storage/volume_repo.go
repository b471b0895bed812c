package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// VolumeStore defines the interface for volume storage operations.
type VolumeStore interface {
	// GetByID gets a volume by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*Volume, error)
	// ListByNovel returns the volumes of a novel in display order.
	ListByNovel(ctx context.Context, novelID string) ([]*Volume, error)
	// Upsert inserts a volume or overwrites every column of an existing one.
	Upsert(ctx context.Context, volume *Volume) error
	// Rename sets a new title and bumps updated_at.
	Rename(ctx context.Context, id, title string, updatedAtMillis int64) error
	// ListUpdatedSince returns volumes whose updated_at is strictly after sinceMillis.
	ListUpdatedSince(ctx context.Context, sinceMillis int64) ([]*Volume, error)
}

// VolumeRepo provides methods for volume operations.
// It implements the VolumeStore interface.
type VolumeRepo struct {
	db DBTX
}

// NewVolumeRepo creates a new VolumeRepo.
func NewVolumeRepo(db DBTX) *VolumeRepo {
	return &VolumeRepo{db: db}
}

// WithTx returns a copy of the repo bound to tx.
func (r *VolumeRepo) WithTx(tx *sql.Tx) *VolumeRepo {
	return &VolumeRepo{db: tx}
}

const volumeColumns = "id, novel_id, title, sort_order, created_at, updated_at"

// GetByID gets a volume by ID. Returns ErrNotFound if not found.
func (r *VolumeRepo) GetByID(ctx context.Context, id string) (*Volume, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+volumeColumns+" FROM volumes WHERE id = ?", id)
	volume, err := scanVolume(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query volume: %w", err)
	}
	return volume, nil
}

// ListByNovel returns the volumes of a novel in display order.
func (r *VolumeRepo) ListByNovel(ctx context.Context, novelID string) ([]*Volume, error) {
	return r.query(ctx,
		"SELECT "+volumeColumns+" FROM volumes WHERE novel_id = ? ORDER BY sort_order, id",
		novelID,
	)
}

// Upsert inserts a volume or overwrites every column of an existing one.
func (r *VolumeRepo) Upsert(ctx context.Context, volume *Volume) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO volumes (`+volumeColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 novel_id = excluded.novel_id, title = excluded.title, sort_order = excluded.sort_order,
		 created_at = excluded.created_at, updated_at = excluded.updated_at`,
		volume.ID, volume.NovelID, volume.Title, volume.Order,
		ToMillis(volume.CreatedAt), ToMillis(volume.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert volume: %w", err)
	}
	return nil
}

// Rename sets a new title and bumps updated_at.
func (r *VolumeRepo) Rename(ctx context.Context, id, title string, updatedAtMillis int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE volumes SET title = ?, updated_at = ? WHERE id = ?",
		title, updatedAtMillis, id,
	)
	if err != nil {
		return fmt.Errorf("failed to rename volume: %w", err)
	}
	return requireAffected(res)
}

// ListUpdatedSince returns volumes whose updated_at is strictly after sinceMillis.
func (r *VolumeRepo) ListUpdatedSince(ctx context.Context, sinceMillis int64) ([]*Volume, error) {
	return r.query(ctx,
		"SELECT "+volumeColumns+" FROM volumes WHERE updated_at > ? ORDER BY updated_at, id",
		sinceMillis,
	)
}

func (r *VolumeRepo) query(ctx context.Context, query string, args ...any) ([]*Volume, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query volumes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var volumes []*Volume
	for rows.Next() {
		volume, err := scanVolume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan volume: %w", err)
		}
		volumes = append(volumes, volume)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return volumes, nil
}

func scanVolume(s rowScanner) (*Volume, error) {
	var v Volume
	var createdAt, updatedAt int64
	if err := s.Scan(&v.ID, &v.NovelID, &v.Title, &v.Order, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	v.CreatedAt = FromMillis(createdAt)
	v.UpdatedAt = FromMillis(updatedAt)
	return &v, nil
}

// requireAffected turns an UPDATE/DELETE that touched no rows into ErrNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
