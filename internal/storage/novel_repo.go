package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// NovelStore defines the interface for novel storage operations.
type NovelStore interface {
	// GetByID gets a novel by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*Novel, error)
	// List returns all novels ordered by creation time.
	List(ctx context.Context) ([]*Novel, error)
	// Upsert inserts a novel or overwrites every column of an existing one.
	Upsert(ctx context.Context, novel *Novel) error
	// ListUpdatedSince returns novels whose updated_at is strictly after sinceMillis.
	ListUpdatedSince(ctx context.Context, sinceMillis int64) ([]*Novel, error)
}

// NovelRepo provides methods for novel operations.
// It implements the NovelStore interface.
type NovelRepo struct {
	db DBTX
}

// NewNovelRepo creates a new NovelRepo.
func NewNovelRepo(db DBTX) *NovelRepo {
	return &NovelRepo{db: db}
}

// WithTx returns a copy of the repo bound to tx.
func (r *NovelRepo) WithTx(tx *sql.Tx) *NovelRepo {
	return &NovelRepo{db: tx}
}

const novelColumns = "id, title, description, cover_url, word_count, created_at, updated_at"

// GetByID gets a novel by ID. Returns ErrNotFound if not found.
func (r *NovelRepo) GetByID(ctx context.Context, id string) (*Novel, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+novelColumns+" FROM novels WHERE id = ?", id)
	novel, err := scanNovel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query novel: %w", err)
	}
	return novel, nil
}

// List returns all novels ordered by creation time.
func (r *NovelRepo) List(ctx context.Context) ([]*Novel, error) {
	return r.query(ctx, "SELECT "+novelColumns+" FROM novels ORDER BY created_at, id")
}

// Upsert inserts a novel or overwrites every column of an existing one,
// timestamps included.
func (r *NovelRepo) Upsert(ctx context.Context, novel *Novel) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO novels (`+novelColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 title = excluded.title, description = excluded.description, cover_url = excluded.cover_url,
		 word_count = excluded.word_count, created_at = excluded.created_at, updated_at = excluded.updated_at`,
		novel.ID, novel.Title, novel.Description, novel.CoverURL, novel.WordCount,
		ToMillis(novel.CreatedAt), ToMillis(novel.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert novel: %w", err)
	}
	return nil
}

// ListUpdatedSince returns novels whose updated_at is strictly after sinceMillis.
func (r *NovelRepo) ListUpdatedSince(ctx context.Context, sinceMillis int64) ([]*Novel, error) {
	return r.query(ctx,
		"SELECT "+novelColumns+" FROM novels WHERE updated_at > ? ORDER BY updated_at, id",
		sinceMillis,
	)
}

func (r *NovelRepo) query(ctx context.Context, query string, args ...any) ([]*Novel, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query novels: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var novels []*Novel
	for rows.Next() {
		novel, err := scanNovel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan novel: %w", err)
		}
		novels = append(novels, novel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return novels, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNovel(s rowScanner) (*Novel, error) {
	var n Novel
	var createdAt, updatedAt int64
	if err := s.Scan(&n.ID, &n.Title, &n.Description, &n.CoverURL, &n.WordCount, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	n.CreatedAt = FromMillis(createdAt)
	n.UpdatedAt = FromMillis(updatedAt)
	return &n, nil
}
