package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ChapterStore defines the interface for chapter storage operations.
type ChapterStore interface {
	// GetByID gets a chapter by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*Chapter, error)
	// GetDetail gets a chapter joined with its volume. Returns ErrNotFound if
	// the chapter or its volume does not exist.
	GetDetail(ctx context.Context, id string) (*ChapterDetail, error)
	// Upsert inserts a chapter or overwrites every column of an existing one.
	Upsert(ctx context.Context, chapter *Chapter) error
	// UpdateContent saves title, content and word count and bumps updated_at.
	UpdateContent(ctx context.Context, id, title, content string, wordCount, updatedAtMillis int64) error
	// Delete removes a chapter. Returns ErrNotFound if it did not exist.
	Delete(ctx context.Context, id string) error
	// ListDetailsByNovel returns every chapter of a novel with volume data, in reading order.
	ListDetailsByNovel(ctx context.Context, novelID string) ([]*ChapterDetail, error)
	// ListDetailsByVolume returns the chapters of one volume with volume data.
	ListDetailsByVolume(ctx context.Context, volumeID string) ([]*ChapterDetail, error)
	// CountByNovel counts the chapters reachable from a novel through its volumes.
	CountByNovel(ctx context.Context, novelID string) (int, error)
	// ListUpdatedSince returns chapters whose updated_at is strictly after sinceMillis.
	ListUpdatedSince(ctx context.Context, sinceMillis int64) ([]*Chapter, error)
}

// ChapterRepo provides methods for chapter operations.
// It implements the ChapterStore interface.
type ChapterRepo struct {
	db DBTX
}

// NewChapterRepo creates a new ChapterRepo.
func NewChapterRepo(db DBTX) *ChapterRepo {
	return &ChapterRepo{db: db}
}

// WithTx returns a copy of the repo bound to tx.
func (r *ChapterRepo) WithTx(tx *sql.Tx) *ChapterRepo {
	return &ChapterRepo{db: tx}
}

const chapterColumns = "id, volume_id, title, content, sort_order, word_count, created_at, updated_at"

const chapterDetailSelect = `SELECT c.id, c.volume_id, c.title, c.content, c.sort_order, c.word_count,
	c.created_at, c.updated_at, v.novel_id, v.title, v.sort_order
	FROM chapters c JOIN volumes v ON v.id = c.volume_id`

// GetByID gets a chapter by ID. Returns ErrNotFound if not found.
func (r *ChapterRepo) GetByID(ctx context.Context, id string) (*Chapter, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+chapterColumns+" FROM chapters WHERE id = ?", id)
	chapter, err := scanChapter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query chapter: %w", err)
	}
	return chapter, nil
}

// GetDetail gets a chapter joined with its volume.
func (r *ChapterRepo) GetDetail(ctx context.Context, id string) (*ChapterDetail, error) {
	row := r.db.QueryRowContext(ctx, chapterDetailSelect+" WHERE c.id = ?", id)
	detail, err := scanChapterDetail(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query chapter detail: %w", err)
	}
	return detail, nil
}

// Upsert inserts a chapter or overwrites every column of an existing one.
func (r *ChapterRepo) Upsert(ctx context.Context, chapter *Chapter) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chapters (`+chapterColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 volume_id = excluded.volume_id, title = excluded.title, content = excluded.content,
		 sort_order = excluded.sort_order, word_count = excluded.word_count,
		 created_at = excluded.created_at, updated_at = excluded.updated_at`,
		chapter.ID, chapter.VolumeID, chapter.Title, chapter.Content, chapter.Order, chapter.WordCount,
		ToMillis(chapter.CreatedAt), ToMillis(chapter.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert chapter: %w", err)
	}
	return nil
}

// UpdateContent saves title, content and word count and bumps updated_at.
func (r *ChapterRepo) UpdateContent(ctx context.Context, id, title, content string, wordCount, updatedAtMillis int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE chapters SET title = ?, content = ?, word_count = ?, updated_at = ? WHERE id = ?",
		title, content, wordCount, updatedAtMillis, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update chapter: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a chapter. Returns ErrNotFound if it did not exist.
func (r *ChapterRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM chapters WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete chapter: %w", err)
	}
	return requireAffected(res)
}

// ListDetailsByNovel returns every chapter of a novel with volume data, in reading order.
func (r *ChapterRepo) ListDetailsByNovel(ctx context.Context, novelID string) ([]*ChapterDetail, error) {
	return r.queryDetails(ctx,
		chapterDetailSelect+" WHERE v.novel_id = ? ORDER BY v.sort_order, c.sort_order, c.id",
		novelID,
	)
}

// ListDetailsByVolume returns the chapters of one volume with volume data.
func (r *ChapterRepo) ListDetailsByVolume(ctx context.Context, volumeID string) ([]*ChapterDetail, error) {
	return r.queryDetails(ctx,
		chapterDetailSelect+" WHERE c.volume_id = ? ORDER BY c.sort_order, c.id",
		volumeID,
	)
}

// CountByNovel counts the chapters reachable from a novel through its volumes.
func (r *ChapterRepo) CountByNovel(ctx context.Context, novelID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM chapters c JOIN volumes v ON v.id = c.volume_id WHERE v.novel_id = ?",
		novelID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count chapters: %w", err)
	}
	return count, nil
}

// ListUpdatedSince returns chapters whose updated_at is strictly after sinceMillis.
func (r *ChapterRepo) ListUpdatedSince(ctx context.Context, sinceMillis int64) ([]*Chapter, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+chapterColumns+" FROM chapters WHERE updated_at > ? ORDER BY updated_at, id",
		sinceMillis,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chapters: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var chapters []*Chapter
	for rows.Next() {
		chapter, err := scanChapter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chapter: %w", err)
		}
		chapters = append(chapters, chapter)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return chapters, nil
}

func (r *ChapterRepo) queryDetails(ctx context.Context, query string, args ...any) ([]*ChapterDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chapter details: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var details []*ChapterDetail
	for rows.Next() {
		detail, err := scanChapterDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chapter detail: %w", err)
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return details, nil
}

func scanChapter(s rowScanner) (*Chapter, error) {
	var c Chapter
	var createdAt, updatedAt int64
	if err := s.Scan(&c.ID, &c.VolumeID, &c.Title, &c.Content, &c.Order, &c.WordCount, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	c.CreatedAt = FromMillis(createdAt)
	c.UpdatedAt = FromMillis(updatedAt)
	return &c, nil
}

func scanChapterDetail(s rowScanner) (*ChapterDetail, error) {
	var d ChapterDetail
	var createdAt, updatedAt int64
	if err := s.Scan(&d.ID, &d.VolumeID, &d.Title, &d.Content, &d.Order, &d.WordCount,
		&createdAt, &updatedAt, &d.NovelID, &d.VolumeTitle, &d.VolumeOrder); err != nil {
		return nil, err
	}
	d.CreatedAt = FromMillis(createdAt)
	d.UpdatedAt = FromMillis(updatedAt)
	return &d, nil
}
