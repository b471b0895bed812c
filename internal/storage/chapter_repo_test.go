package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestChapterRepo_GetDetail(t *testing.T) {
	db := newTestDB(t)
	seedNovel(t, db, "n1", "v1", "c1")
	repo := NewChapterRepo(db)

	tests := []struct {
		name    string
		id      string
		wantErr error
		check   func(*ChapterDetail) bool
	}{
		{
			name: "existing chapter",
			id:   "c1",
			check: func(d *ChapterDetail) bool {
				return d.NovelID == "n1" && d.VolumeTitle == "Volume v1" && d.VolumeOrder == 1 && d.Title == "Chapter c1"
			},
		},
		{
			name:    "missing chapter",
			id:      "nope",
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail, err := repo.GetDetail(context.Background(), tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetDetail() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetDetail() unexpected error: %v", err)
			}
			if !tt.check(detail) {
				t.Errorf("GetDetail() result validation failed: %+v", detail)
			}
		})
	}
}

func TestChapterRepo_Upsert_OverwritesTimestamps(t *testing.T) {
	db := newTestDB(t)
	seedNovel(t, db, "n1", "v1", "c1")
	repo := NewChapterRepo(db)
	ctx := context.Background()

	created := time.UnixMilli(1_600_000_000_000).UTC()
	updated := time.UnixMilli(1_800_000_000_000).UTC()
	err := repo.Upsert(ctx, &Chapter{
		ID: "c1", VolumeID: "v1", Title: "Remote", Content: "remote body",
		Order: 7, WordCount: 1 << 40, CreatedAt: created, UpdatedAt: updated,
	})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "c1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Remote" || got.Order != 7 || got.WordCount != 1<<40 {
		t.Errorf("Upsert() did not overwrite fields: %+v", got)
	}
	if !got.CreatedAt.Equal(created) || !got.UpdatedAt.Equal(updated) {
		t.Errorf("Upsert() timestamps = %v/%v, want %v/%v", got.CreatedAt, got.UpdatedAt, created, updated)
	}
}

func TestChapterRepo_UpdateContent(t *testing.T) {
	db := newTestDB(t)
	seedNovel(t, db, "n1", "v1", "c1")
	repo := NewChapterRepo(db)
	ctx := context.Background()

	if err := repo.UpdateContent(ctx, "c1", "New", "body", 4, 1_900_000_000_000); err != nil {
		t.Fatalf("UpdateContent() error = %v", err)
	}
	got, err := repo.GetByID(ctx, "c1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "New" || got.Content != "body" || got.UpdatedAt.UnixMilli() != 1_900_000_000_000 {
		t.Errorf("UpdateContent() result = %+v", got)
	}

	if err := repo.UpdateContent(ctx, "missing", "x", "y", 0, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateContent() on missing chapter error = %v, want ErrNotFound", err)
	}
}

func TestChapterRepo_ListAndCount(t *testing.T) {
	db := newTestDB(t)
	seedNovel(t, db, "n1", "v1", "c1")
	ctx := context.Background()
	now := time.UnixMilli(1_700_000_000_500).UTC()

	repo := NewChapterRepo(db)
	if err := repo.Upsert(ctx, &Chapter{ID: "c2", VolumeID: "v1", Title: "Second", Order: 2, CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	details, err := repo.ListDetailsByNovel(ctx, "n1")
	if err != nil {
		t.Fatalf("ListDetailsByNovel() error = %v", err)
	}
	if len(details) != 2 || details[0].ID != "c1" || details[1].ID != "c2" {
		t.Errorf("ListDetailsByNovel() = %v, want [c1 c2]", details)
	}

	count, err := repo.CountByNovel(ctx, "n1")
	if err != nil {
		t.Fatalf("CountByNovel() error = %v", err)
	}
	if count != 2 {
		t.Errorf("CountByNovel() = %d, want 2", count)
	}

	changed, err := repo.ListUpdatedSince(ctx, 1_700_000_000_000)
	if err != nil {
		t.Fatalf("ListUpdatedSince() error = %v", err)
	}
	if len(changed) != 1 || changed[0].ID != "c2" {
		t.Errorf("ListUpdatedSince() = %v, want only c2 (strictly greater)", changed)
	}
}

func TestChapterRepo_Delete(t *testing.T) {
	db := newTestDB(t)
	seedNovel(t, db, "n1", "v1", "c1")
	repo := NewChapterRepo(db)
	ctx := context.Background()

	if err := repo.Delete(ctx, "c1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(ctx, "c1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}
}
