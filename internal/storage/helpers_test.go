package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(DriverModernc, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

// seedNovel inserts one novel with one volume holding one chapter.
func seedNovel(t *testing.T, db *sql.DB, novelID, volumeID, chapterID string) {
	t.Helper()
	ctx := context.Background()
	now := time.UnixMilli(1_700_000_000_000).UTC()

	if err := NewNovelRepo(db).Upsert(ctx, &Novel{ID: novelID, Title: "Novel " + novelID, CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("seed novel: %v", err)
	}
	if err := NewVolumeRepo(db).Upsert(ctx, &Volume{ID: volumeID, NovelID: novelID, Title: "Volume " + volumeID, Order: 1, CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("seed volume: %v", err)
	}
	if err := NewChapterRepo(db).Upsert(ctx, &Chapter{ID: chapterID, VolumeID: volumeID, Title: "Chapter " + chapterID, Content: "text", Order: 1, CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("seed chapter: %v", err)
	}
}
