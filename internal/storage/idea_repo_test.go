package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIdeaRepo_UpsertAndGet(t *testing.T) {
	db := newTestDB(t)
	seedNovel(t, db, "n1", "v1", "c1")
	repo := NewIdeaRepo(db)
	ctx := context.Background()
	now := time.UnixMilli(1_700_000_000_000).UTC()

	tests := []struct {
		name string
		idea *Idea
	}{
		{
			name: "idea linked to chapter",
			idea: &Idea{ID: "i1", NovelID: "n1", ChapterID: "c1", Content: "a twist", Quote: "line", IsStarred: true, CreatedAt: now, UpdatedAt: now},
		},
		{
			name: "free idea",
			idea: &Idea{ID: "i2", NovelID: "n1", Content: "free", CreatedAt: now, UpdatedAt: now},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := repo.Upsert(ctx, tt.idea); err != nil {
				t.Fatalf("Upsert() error = %v", err)
			}
			got, err := repo.GetByID(ctx, tt.idea.ID)
			if err != nil {
				t.Fatalf("GetByID() error = %v", err)
			}
			if got.ChapterID != tt.idea.ChapterID || got.IsStarred != tt.idea.IsStarred || got.Quote != tt.idea.Quote {
				t.Errorf("GetByID() = %+v, want %+v", got, tt.idea)
			}
		})
	}

	count, err := repo.CountByNovel(ctx, "n1")
	if err != nil {
		t.Fatalf("CountByNovel() error = %v", err)
	}
	if count != 2 {
		t.Errorf("CountByNovel() = %d, want 2", count)
	}
}

func TestIdeaRepo_Delete(t *testing.T) {
	db := newTestDB(t)
	seedNovel(t, db, "n1", "v1", "c1")
	repo := NewIdeaRepo(db)
	ctx := context.Background()

	if err := repo.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}
