package searchindex

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novelcore/internal/storage"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.New(storage.DriverModernc, filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func newStore(t *testing.T) *Store {
	t.Helper()
	s := New(openDB(t))
	s.Init(context.Background())
	require.True(t, s.Available())
	return s
}

func intPtr(v int) *int { return &v }

func chapterEntry(id, content string) Entry {
	return Entry{
		Content:      content,
		EntityType:   EntityChapter,
		EntityID:     id,
		NovelID:      "n1",
		Title:        "Chapter " + id,
		VolumeTitle:  "Book One",
		ChapterOrder: intPtr(1),
		VolumeOrder:  intPtr(1),
		VolumeID:     "v1",
	}
}

func TestStore_InitCreatesTable(t *testing.T) {
	s := newStore(t)
	assert.False(t, s.NeedsRebuild())

	exists, err := s.tableExists(context.Background())
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStore_InitIsIdempotent(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	first := New(db)
	first.Init(ctx)
	require.NoError(t, first.Replace(ctx, chapterEntry("c1", "kept across restarts")))

	second := New(db)
	second.Init(ctx)
	assert.True(t, second.Available())
	assert.False(t, second.NeedsRebuild())

	entries, err := second.Entries(ctx, EntityChapter, "c1")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_InitRecreatesOldSchema(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `CREATE VIRTUAL TABLE search_index USING fts5(
		content, entity_type, entity_id UNINDEXED, novel_id UNINDEXED, chapter_id UNINDEXED,
		tokenize='unicode61')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO search_index (content, entity_type, entity_id, novel_id) VALUES ('old', 'chapter', 'c1', 'n1')`)
	require.NoError(t, err)

	s := New(db)
	s.Init(ctx)

	assert.True(t, s.Available())
	assert.True(t, s.NeedsRebuild())
	assert.Empty(t, s.migrateColumns(ctx))

	counts, err := s.CountByType(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, 0, counts[EntityChapter])

	s.MarkRebuilt()
	assert.False(t, s.NeedsRebuild())
}

func TestStore_ReplaceKeepsOneEntry(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Replace(ctx, chapterEntry("c1", "first draft")))
	require.NoError(t, s.Replace(ctx, chapterEntry("c1", "second draft")))
	require.NoError(t, s.Replace(ctx, chapterEntry("c1", "second draft")))

	entries, err := s.Entries(ctx, EntityChapter, "c1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "second draft", entries[0].Content)
	assert.Equal(t, "Book One", entries[0].VolumeTitle)
	require.NotNil(t, entries[0].ChapterOrder)
	assert.Equal(t, 1, *entries[0].ChapterOrder)
}

func TestStore_IdeaEntryHasNoOrdering(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Replace(ctx, Entry{
		Content:    "a plot twist",
		EntityType: EntityIdea,
		EntityID:   "i1",
		NovelID:    "n1",
		ChapterID:  "c1",
	}))

	entries, err := s.Entries(ctx, EntityIdea, "i1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].ChapterOrder)
	assert.Nil(t, entries[0].VolumeOrder)
	assert.Equal(t, "c1", entries[0].ChapterID)
	assert.Empty(t, entries[0].VolumeTitle)
}

func TestStore_DeleteAndCount(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Replace(ctx, chapterEntry("c1", "one")))
	require.NoError(t, s.Replace(ctx, chapterEntry("c2", "two")))
	require.NoError(t, s.Replace(ctx, Entry{Content: "idea", EntityType: EntityIdea, EntityID: "i1", NovelID: "n1"}))
	require.NoError(t, s.Replace(ctx, Entry{Content: "other", EntityType: EntityIdea, EntityID: "i2", NovelID: "n2"}))

	counts, err := s.CountByType(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, map[EntityType]int{EntityChapter: 2, EntityIdea: 1}, counts)

	require.NoError(t, s.Delete(ctx, EntityChapter, "c1"))
	require.NoError(t, s.Delete(ctx, EntityChapter, "missing"))

	counts, err = s.CountByType(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, 1, counts[EntityChapter])

	require.NoError(t, s.DeleteNovel(ctx, "n1"))
	counts, err = s.CountByType(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, map[EntityType]int{EntityChapter: 0, EntityIdea: 0}, counts)

	counts, err = s.CountByType(ctx, "n2")
	require.NoError(t, err)
	assert.Equal(t, 1, counts[EntityIdea])
}

func TestStore_Query(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	second := chapterEntry("c2", "nothing here")
	second.ChapterOrder = intPtr(2)
	second.Title = "The Hidden Door"
	require.NoError(t, s.Replace(ctx, second))
	require.NoError(t, s.Replace(ctx, chapterEntry("c1", "a hidden path")))
	require.NoError(t, s.Replace(ctx, chapterEntry("c3", "unrelated")))
	other := chapterEntry("c4", "hidden elsewhere")
	other.NovelID = "n2"
	require.NoError(t, s.Replace(ctx, other))

	entries, err := s.Query(ctx, "n1", "%HIDDEN%", 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c1", entries[0].EntityID)
	assert.Equal(t, "c2", entries[1].EntityID)

	entries, err = s.Query(ctx, "n1", "%hidden%", 1, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "c2", entries[0].EntityID)

	entries, err = s.Query(ctx, "n1", "%book one%", 10, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestStore_QueryEscapedWildcard(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Replace(ctx, chapterEntry("c1", "100% sure")))
	require.NoError(t, s.Replace(ctx, chapterEntry("c2", "1000 sure")))

	entries, err := s.Query(ctx, "n1", `%100\%%`, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "c1", entries[0].EntityID)
}

func TestStore_Unavailable(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Replace(ctx, chapterEntry("c1", "x")), ErrUnavailable)
	assert.ErrorIs(t, s.Delete(ctx, EntityChapter, "c1"), ErrUnavailable)
	_, err := s.Query(ctx, "n1", "%x%", 10, 0)
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = s.CountByType(ctx, "n1")
	assert.ErrorIs(t, err, ErrUnavailable)
}
