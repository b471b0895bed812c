package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_maintainer.go -package=mocks novelcore/internal/indexer Maintainer

import (
	"context"
	"errors"
	"fmt"

	"novelcore/internal/contextutil"
	"novelcore/internal/metrics"
	"novelcore/internal/richtext"
	"novelcore/internal/searchindex"
	"novelcore/internal/storage"
)

// Maintainer keeps the search index in step with chapters and ideas.
// Mutation paths call it after their own transaction commits.
type Maintainer interface {
	// IndexChapter replaces the chapter's entry. Failures are logged, not returned.
	IndexChapter(ctx context.Context, chapter Chapter)
	// IndexIdea replaces the idea's entry. Failures are logged, not returned.
	IndexIdea(ctx context.Context, idea *storage.Idea)
	// RemoveFromIndex deletes the entity's entry. Failures are logged, not returned.
	RemoveFromIndex(ctx context.Context, entityType searchindex.EntityType, entityID string)
	// ReindexVolume refreshes every chapter of a volume after the volume changed.
	ReindexVolume(ctx context.Context, volumeID string)
	// RebuildIndex clears and re-indexes one novel from the source tables.
	RebuildIndex(ctx context.Context, novelID string) (Stats, error)
	// GetIndexStats counts the indexed chapters and ideas of a novel.
	GetIndexStats(ctx context.Context, novelID string) (Stats, error)
	// EnsureFresh rebuilds a novel when its index counts differ from the source counts.
	EnsureFresh(ctx context.Context, novelID string) (bool, error)
}

// entryStore is the subset of *searchindex.Store the indexer writes through.
type entryStore interface {
	Replace(ctx context.Context, e searchindex.Entry) error
	Delete(ctx context.Context, entityType searchindex.EntityType, entityID string) error
	DeleteNovel(ctx context.Context, novelID string) error
	CountByType(ctx context.Context, novelID string) (map[searchindex.EntityType]int, error)
}

// Chapter is the input to IndexChapter. NovelID, VolumeTitle and
// VolumeOrder are optional; any of them left empty is resolved from the
// containing volume. Supplied values are kept.
type Chapter struct {
	ID       string
	VolumeID string
	Title    string
	Content  string
	Order    *int

	NovelID     string
	VolumeTitle string
	VolumeOrder *int
}

// FromDetail builds a fully resolved Chapter from a joined chapter row.
func FromDetail(d *storage.ChapterDetail) Chapter {
	order := d.Order
	volumeOrder := d.VolumeOrder
	return Chapter{
		ID:          d.ID,
		VolumeID:    d.VolumeID,
		Title:       d.Title,
		Content:     d.Content,
		Order:       &order,
		NovelID:     d.NovelID,
		VolumeTitle: d.VolumeTitle,
		VolumeOrder: &volumeOrder,
	}
}

// Indexer implements Maintainer over the search index and the entity repos.
type Indexer struct {
	store    entryStore
	volumes  storage.VolumeStore
	chapters storage.ChapterStore
	ideas    storage.IdeaStore
	metrics  *metrics.Registry
}

// New creates a new Indexer. reg may be nil.
func New(
	store entryStore,
	volumes storage.VolumeStore,
	chapters storage.ChapterStore,
	ideas storage.IdeaStore,
	reg *metrics.Registry,
) *Indexer {
	return &Indexer{
		store:    store,
		volumes:  volumes,
		chapters: chapters,
		ideas:    ideas,
		metrics:  reg,
	}
}

// IndexChapter extracts the chapter's plain text and replaces its entry.
// A chapter whose novel cannot be resolved is skipped.
func (ix *Indexer) IndexChapter(ctx context.Context, chapter Chapter) {
	logger := contextutil.LoggerFromContext(ctx)

	indexed, err := ix.writeChapter(ctx, chapter)
	if err != nil {
		ix.metrics.RecordIndexWrite(string(searchindex.EntityChapter), "index", metrics.StatusError)
		logger.WarnContext(ctx, "failed to index chapter", "chapter_id", chapter.ID, "error", err)
		return
	}
	if !indexed {
		logger.DebugContext(ctx, "skipping orphaned chapter", "chapter_id", chapter.ID, "volume_id", chapter.VolumeID)
		return
	}
	ix.metrics.RecordIndexWrite(string(searchindex.EntityChapter), "index", metrics.StatusOK)
}

// IndexIdea indexes the idea's content and quote together.
func (ix *Indexer) IndexIdea(ctx context.Context, idea *storage.Idea) {
	logger := contextutil.LoggerFromContext(ctx)

	err := ix.writeIdea(ctx, idea)
	ix.metrics.RecordIndexWrite(string(searchindex.EntityIdea), "index", metrics.StatusOf(err))
	if err != nil {
		logger.WarnContext(ctx, "failed to index idea", "idea_id", idea.ID, "error", err)
	}
}

// RemoveFromIndex deletes the entry for one entity.
func (ix *Indexer) RemoveFromIndex(ctx context.Context, entityType searchindex.EntityType, entityID string) {
	logger := contextutil.LoggerFromContext(ctx)

	err := ix.store.Delete(ctx, entityType, entityID)
	ix.metrics.RecordIndexWrite(string(entityType), "remove", metrics.StatusOf(err))
	if err != nil {
		logger.WarnContext(ctx, "failed to remove index entry", "entity_type", entityType, "entity_id", entityID, "error", err)
	}
}

// ReindexVolume re-indexes every chapter of volumeID so the denormalized
// volume title and order follow a volume change.
func (ix *Indexer) ReindexVolume(ctx context.Context, volumeID string) {
	logger := contextutil.LoggerFromContext(ctx)

	details, err := ix.chapters.ListDetailsByVolume(ctx, volumeID)
	if err != nil {
		logger.WarnContext(ctx, "failed to list volume chapters for reindex", "volume_id", volumeID, "error", err)
		return
	}
	for _, d := range details {
		ix.IndexChapter(ctx, FromDetail(d))
	}
	logger.DebugContext(ctx, "reindexed volume", "volume_id", volumeID, "chapters", len(details))
}

// RebuildIndex deletes every entry of novelID and indexes all of its
// chapters and ideas again. The returned counts are the entities written.
func (ix *Indexer) RebuildIndex(ctx context.Context, novelID string) (Stats, error) {
	logger := contextutil.LoggerFromContext(ctx)

	stats, err := ix.rebuild(ctx, novelID)
	ix.metrics.RecordIndexRebuild(metrics.StatusOf(err))
	if err != nil {
		logger.ErrorContext(ctx, "index rebuild failed", "novel_id", novelID, "error", err)
		return Stats{}, err
	}

	logger.InfoContext(ctx, "index rebuilt", "novel_id", novelID, "chapters", stats.Chapters, "ideas", stats.Ideas)
	return stats, nil
}

func (ix *Indexer) rebuild(ctx context.Context, novelID string) (Stats, error) {
	if err := ix.store.DeleteNovel(ctx, novelID); err != nil {
		return Stats{}, err
	}

	details, err := ix.chapters.ListDetailsByNovel(ctx, novelID)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to list chapters: %w", err)
	}
	ideas, err := ix.ideas.ListByNovel(ctx, novelID)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to list ideas: %w", err)
	}

	var stats Stats
	for _, d := range details {
		if _, err := ix.writeChapter(ctx, FromDetail(d)); err != nil {
			return stats, fmt.Errorf("failed to index chapter %s: %w", d.ID, err)
		}
		stats.Chapters++
	}
	for _, idea := range ideas {
		if err := ix.writeIdea(ctx, idea); err != nil {
			return stats, fmt.Errorf("failed to index idea %s: %w", idea.ID, err)
		}
		stats.Ideas++
	}
	return stats, nil
}

// GetIndexStats counts distinct indexed chapters and ideas for novelID.
func (ix *Indexer) GetIndexStats(ctx context.Context, novelID string) (Stats, error) {
	counts, err := ix.store.CountByType(ctx, novelID)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count index entries: %w", err)
	}
	return Stats{
		Chapters: counts[searchindex.EntityChapter],
		Ideas:    counts[searchindex.EntityIdea],
	}, nil
}

// EnsureFresh compares the index counts of novelID with the source tables
// and rebuilds on any difference. It reports whether a rebuild ran.
func (ix *Indexer) EnsureFresh(ctx context.Context, novelID string) (bool, error) {
	logger := contextutil.LoggerFromContext(ctx)

	indexed, err := ix.GetIndexStats(ctx, novelID)
	if err != nil {
		return false, err
	}
	source, err := ix.sourceStats(ctx, novelID)
	if err != nil {
		return false, err
	}
	if indexed == source {
		return false, nil
	}

	logger.InfoContext(ctx, "search index is stale",
		"novel_id", novelID,
		"indexed_chapters", indexed.Chapters,
		"indexed_ideas", indexed.Ideas,
		"chapters", source.Chapters,
		"ideas", source.Ideas,
	)
	if _, err := ix.RebuildIndex(ctx, novelID); err != nil {
		return false, err
	}
	return true, nil
}

func (ix *Indexer) sourceStats(ctx context.Context, novelID string) (Stats, error) {
	chapters, err := ix.chapters.CountByNovel(ctx, novelID)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count chapters: %w", err)
	}
	ideas, err := ix.ideas.CountByNovel(ctx, novelID)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count ideas: %w", err)
	}
	return Stats{Chapters: chapters, Ideas: ideas}, nil
}

// writeChapter reports false without writing when the chapter's novel
// cannot be resolved.
func (ix *Indexer) writeChapter(ctx context.Context, chapter Chapter) (bool, error) {
	if chapter.NovelID == "" || chapter.VolumeTitle == "" || chapter.VolumeOrder == nil {
		if err := ix.resolveVolume(ctx, &chapter); err != nil {
			return false, err
		}
	}
	if chapter.NovelID == "" {
		return false, nil
	}

	err := ix.store.Replace(ctx, searchindex.Entry{
		Content:      richtext.ExtractPlainText(chapter.Content),
		EntityType:   searchindex.EntityChapter,
		EntityID:     chapter.ID,
		NovelID:      chapter.NovelID,
		Title:        chapter.Title,
		VolumeTitle:  chapter.VolumeTitle,
		ChapterOrder: chapter.Order,
		VolumeOrder:  chapter.VolumeOrder,
		VolumeID:     chapter.VolumeID,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// resolveVolume fills the missing denormalized fields from the chapter's
// volume. A missing volume leaves them empty.
func (ix *Indexer) resolveVolume(ctx context.Context, chapter *Chapter) error {
	if chapter.VolumeID == "" {
		return nil
	}
	volume, err := ix.volumes.GetByID(ctx, chapter.VolumeID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to resolve volume: %w", err)
	}

	if chapter.NovelID == "" {
		chapter.NovelID = volume.NovelID
	}
	if chapter.VolumeTitle == "" {
		chapter.VolumeTitle = volume.Title
	}
	if chapter.VolumeOrder == nil {
		order := volume.Order
		chapter.VolumeOrder = &order
	}
	return nil
}

func (ix *Indexer) writeIdea(ctx context.Context, idea *storage.Idea) error {
	content := idea.Content
	if idea.Quote != "" {
		content += " " + idea.Quote
	}
	return ix.store.Replace(ctx, searchindex.Entry{
		Content:    content,
		EntityType: searchindex.EntityIdea,
		EntityID:   idea.ID,
		NovelID:    idea.NovelID,
		ChapterID:  idea.ChapterID,
	})
}
