package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// IdeaStore defines the interface for idea storage operations.
type IdeaStore interface {
	// GetByID gets an idea by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*Idea, error)
	// Upsert inserts an idea or overwrites every column of an existing one.
	Upsert(ctx context.Context, idea *Idea) error
	// Delete removes an idea. Returns ErrNotFound if it did not exist.
	Delete(ctx context.Context, id string) error
	// ListByNovel returns the ideas of a novel, oldest first.
	ListByNovel(ctx context.Context, novelID string) ([]*Idea, error)
	// CountByNovel counts the ideas of a novel.
	CountByNovel(ctx context.Context, novelID string) (int, error)
}

// IdeaRepo provides methods for idea operations.
// It implements the IdeaStore interface.
type IdeaRepo struct {
	db DBTX
}

// NewIdeaRepo creates a new IdeaRepo.
func NewIdeaRepo(db DBTX) *IdeaRepo {
	return &IdeaRepo{db: db}
}

const ideaColumns = "id, novel_id, chapter_id, content, quote, is_starred, created_at, updated_at"

// GetByID gets an idea by ID. Returns ErrNotFound if not found.
func (r *IdeaRepo) GetByID(ctx context.Context, id string) (*Idea, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+ideaColumns+" FROM ideas WHERE id = ?", id)
	idea, err := scanIdea(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query idea: %w", err)
	}
	return idea, nil
}

// Upsert inserts an idea or overwrites every column of an existing one.
func (r *IdeaRepo) Upsert(ctx context.Context, idea *Idea) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ideas (`+ideaColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 novel_id = excluded.novel_id, chapter_id = excluded.chapter_id, content = excluded.content,
		 quote = excluded.quote, is_starred = excluded.is_starred,
		 created_at = excluded.created_at, updated_at = excluded.updated_at`,
		idea.ID, idea.NovelID, nullString(idea.ChapterID), idea.Content, idea.Quote, boolToInt(idea.IsStarred),
		ToMillis(idea.CreatedAt), ToMillis(idea.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert idea: %w", err)
	}
	return nil
}

// Delete removes an idea. Returns ErrNotFound if it did not exist.
func (r *IdeaRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM ideas WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete idea: %w", err)
	}
	return requireAffected(res)
}

// ListByNovel returns the ideas of a novel, oldest first.
func (r *IdeaRepo) ListByNovel(ctx context.Context, novelID string) ([]*Idea, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+ideaColumns+" FROM ideas WHERE novel_id = ? ORDER BY created_at, id",
		novelID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query ideas: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ideas []*Idea
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan idea: %w", err)
		}
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return ideas, nil
}

// CountByNovel counts the ideas of a novel.
func (r *IdeaRepo) CountByNovel(ctx context.Context, novelID string) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ideas WHERE novel_id = ?", novelID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count ideas: %w", err)
	}
	return count, nil
}

func scanIdea(s rowScanner) (*Idea, error) {
	var i Idea
	var chapterID sql.NullString
	var starred int
	var createdAt, updatedAt int64
	if err := s.Scan(&i.ID, &i.NovelID, &chapterID, &i.Content, &i.Quote, &starred, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	i.ChapterID = chapterID.String
	i.IsStarred = starred != 0
	i.CreatedAt = FromMillis(createdAt)
	i.UpdatedAt = FromMillis(updatedAt)
	return &i, nil
}
