package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_library_service.go -package=mocks novelcore/internal/service LibraryService

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"novelcore/internal/contextutil"
	"novelcore/internal/indexer"
	"novelcore/internal/richtext"
	"novelcore/internal/searchindex"
	"novelcore/internal/storage"
)

// CreateNovelRequest creates a novel.
type CreateNovelRequest struct {
	Title       string `validate:"required,max=200"`
	Description string `validate:"max=2000"`
	CoverURL    string `validate:"omitempty,url"`
}

// CreateVolumeRequest appends a volume to a novel unless Order is set.
type CreateVolumeRequest struct {
	NovelID string `validate:"required"`
	Title   string `validate:"required,max=200"`
	Order   *int   `validate:"omitempty,min=0"`
}

// CreateChapterRequest appends a chapter to a volume unless Order is set.
type CreateChapterRequest struct {
	VolumeID string `validate:"required"`
	Title    string `validate:"required,max=200"`
	Content  string
	Order    *int `validate:"omitempty,min=0"`
}

// SaveChapterRequest replaces a chapter's title and content.
type SaveChapterRequest struct {
	ChapterID string `validate:"required"`
	Title     string `validate:"required,max=200"`
	Content   string
}

// CreateIdeaRequest creates an idea, optionally tied to a chapter.
type CreateIdeaRequest struct {
	NovelID   string `validate:"required"`
	ChapterID string
	Content   string `validate:"required"`
	Quote     string
	IsStarred bool
}

// UpdateIdeaRequest replaces an idea's editable fields.
type UpdateIdeaRequest struct {
	IdeaID    string `validate:"required"`
	Content   string `validate:"required"`
	Quote     string
	IsStarred bool
}

// LibraryService is the mutation surface for novels, volumes, chapters and
// ideas. Each call commits its change and then updates the search index.
type LibraryService interface {
	CreateNovel(ctx context.Context, req CreateNovelRequest) (*storage.Novel, error)
	CreateVolume(ctx context.Context, req CreateVolumeRequest) (*storage.Volume, error)
	RenameVolume(ctx context.Context, volumeID, title string) (*storage.Volume, error)
	CreateChapter(ctx context.Context, req CreateChapterRequest) (*storage.Chapter, error)
	SaveChapter(ctx context.Context, req SaveChapterRequest) (*storage.Chapter, error)
	DeleteChapter(ctx context.Context, chapterID string) error
	CreateIdea(ctx context.Context, req CreateIdeaRequest) (*storage.Idea, error)
	UpdateIdea(ctx context.Context, req UpdateIdeaRequest) (*storage.Idea, error)
	DeleteIdea(ctx context.Context, ideaID string) error
}

// libraryService implements LibraryService.
type libraryService struct {
	db    *sql.DB
	index indexer.Maintainer
	now   func() time.Time
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(db *sql.DB, index indexer.Maintainer) LibraryService {
	return &libraryService{
		db:    db,
		index: index,
		now:   time.Now,
	}
}

// timestamp is the current time at the millisecond precision stored on disk.
func (s *libraryService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *libraryService) CreateNovel(ctx context.Context, req CreateNovelRequest) (*storage.Novel, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := s.timestamp()
	novel := &storage.Novel{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := storage.NewNovelRepo(s.db).Upsert(ctx, novel); err != nil {
		return nil, WrapError(err, "failed to create novel")
	}

	logger.InfoContext(ctx, "novel created", "novel_id", novel.ID)
	return novel, nil
}

func (s *libraryService) CreateVolume(ctx context.Context, req CreateVolumeRequest) (*storage.Volume, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := s.timestamp()
	volume := &storage.Volume{
		ID:        uuid.NewString(),
		NovelID:   req.NovelID,
		Title:     req.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := storage.NewNovelRepo(tx).GetByID(ctx, req.NovelID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return notFound("novel", req.NovelID)
			}
			return err
		}

		volumes := storage.NewVolumeRepo(tx)
		if req.Order != nil {
			volume.Order = *req.Order
		} else {
			existing, err := volumes.ListByNovel(ctx, req.NovelID)
			if err != nil {
				return err
			}
			volume.Order = nextOrder(len(existing))
		}
		return volumes.Upsert(ctx, volume)
	})
	if err != nil {
		return nil, WrapError(err, "failed to create volume")
	}

	logger.InfoContext(ctx, "volume created", "volume_id", volume.ID, "novel_id", volume.NovelID)
	return volume, nil
}

// RenameVolume renames a volume and re-indexes its chapters, whose entries
// carry the volume title.
func (s *libraryService) RenameVolume(ctx context.Context, volumeID, title string) (*storage.Volume, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := validateRequest(struct {
		VolumeID string `validate:"required"`
		Title    string `validate:"required,max=200"`
	}{volumeID, title}); err != nil {
		return nil, err
	}

	volumes := storage.NewVolumeRepo(s.db)
	if err := volumes.Rename(ctx, volumeID, title, storage.ToMillis(s.timestamp())); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound("volume", volumeID)
		}
		return nil, WrapError(err, "failed to rename volume")
	}

	s.index.ReindexVolume(ctx, volumeID)

	volume, err := volumes.GetByID(ctx, volumeID)
	if err != nil {
		return nil, WrapError(err, "failed to reload volume")
	}
	logger.InfoContext(ctx, "volume renamed", "volume_id", volumeID)
	return volume, nil
}

func (s *libraryService) CreateChapter(ctx context.Context, req CreateChapterRequest) (*storage.Chapter, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := s.timestamp()
	chapter := &storage.Chapter{
		ID:        uuid.NewString(),
		VolumeID:  req.VolumeID,
		Title:     req.Title,
		Content:   req.Content,
		WordCount: CountWords(richtext.ExtractPlainText(req.Content)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	var volume *storage.Volume
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		volume, err = storage.NewVolumeRepo(tx).GetByID(ctx, req.VolumeID)
		if errors.Is(err, storage.ErrNotFound) {
			return notFound("volume", req.VolumeID)
		}
		if err != nil {
			return err
		}

		chapters := storage.NewChapterRepo(tx)
		if req.Order != nil {
			chapter.Order = *req.Order
		} else {
			existing, err := chapters.ListDetailsByVolume(ctx, req.VolumeID)
			if err != nil {
				return err
			}
			chapter.Order = nextOrder(len(existing))
		}
		return chapters.Upsert(ctx, chapter)
	})
	if err != nil {
		return nil, WrapError(err, "failed to create chapter")
	}

	s.index.IndexChapter(ctx, indexer.FromDetail(&storage.ChapterDetail{
		Chapter:     *chapter,
		NovelID:     volume.NovelID,
		VolumeTitle: volume.Title,
		VolumeOrder: volume.Order,
	}))

	logger.InfoContext(ctx, "chapter created", "chapter_id", chapter.ID, "volume_id", chapter.VolumeID)
	return chapter, nil
}

func (s *libraryService) SaveChapter(ctx context.Context, req SaveChapterRequest) (*storage.Chapter, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	chapters := storage.NewChapterRepo(s.db)
	wordCount := CountWords(richtext.ExtractPlainText(req.Content))
	err := chapters.UpdateContent(ctx, req.ChapterID, req.Title, req.Content, wordCount, storage.ToMillis(s.timestamp()))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, notFound("chapter", req.ChapterID)
	}
	if err != nil {
		return nil, WrapError(err, "failed to save chapter")
	}

	detail, err := chapters.GetDetail(ctx, req.ChapterID)
	if err != nil {
		return nil, WrapError(err, "failed to reload chapter")
	}
	s.index.IndexChapter(ctx, indexer.FromDetail(detail))

	logger.DebugContext(ctx, "chapter saved", "chapter_id", req.ChapterID, "word_count", wordCount)
	return &detail.Chapter, nil
}

func (s *libraryService) DeleteChapter(ctx context.Context, chapterID string) error {
	logger := contextutil.LoggerFromContext(ctx)

	err := storage.NewChapterRepo(s.db).Delete(ctx, chapterID)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound("chapter", chapterID)
	}
	if err != nil {
		return WrapError(err, "failed to delete chapter")
	}

	s.index.RemoveFromIndex(ctx, searchindex.EntityChapter, chapterID)
	logger.InfoContext(ctx, "chapter deleted", "chapter_id", chapterID)
	return nil
}

func (s *libraryService) CreateIdea(ctx context.Context, req CreateIdeaRequest) (*storage.Idea, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := s.timestamp()
	idea := &storage.Idea{
		ID:        uuid.NewString(),
		NovelID:   req.NovelID,
		ChapterID: req.ChapterID,
		Content:   req.Content,
		Quote:     req.Quote,
		IsStarred: req.IsStarred,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := storage.NewNovelRepo(tx).GetByID(ctx, req.NovelID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return notFound("novel", req.NovelID)
			}
			return err
		}
		if req.ChapterID != "" {
			if _, err := storage.NewChapterRepo(tx).GetByID(ctx, req.ChapterID); err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return notFound("chapter", req.ChapterID)
				}
				return err
			}
		}
		return storage.NewIdeaRepo(tx).Upsert(ctx, idea)
	})
	if err != nil {
		return nil, WrapError(err, "failed to create idea")
	}

	s.index.IndexIdea(ctx, idea)
	logger.InfoContext(ctx, "idea created", "idea_id", idea.ID, "novel_id", idea.NovelID)
	return idea, nil
}

func (s *libraryService) UpdateIdea(ctx context.Context, req UpdateIdeaRequest) (*storage.Idea, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var idea *storage.Idea
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		ideas := storage.NewIdeaRepo(tx)
		var err error
		idea, err = ideas.GetByID(ctx, req.IdeaID)
		if errors.Is(err, storage.ErrNotFound) {
			return notFound("idea", req.IdeaID)
		}
		if err != nil {
			return err
		}

		idea.Content = req.Content
		idea.Quote = req.Quote
		idea.IsStarred = req.IsStarred
		idea.UpdatedAt = s.timestamp()
		return ideas.Upsert(ctx, idea)
	})
	if err != nil {
		return nil, WrapError(err, "failed to update idea")
	}

	s.index.IndexIdea(ctx, idea)
	return idea, nil
}

func (s *libraryService) DeleteIdea(ctx context.Context, ideaID string) error {
	err := storage.NewIdeaRepo(s.db).Delete(ctx, ideaID)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound("idea", ideaID)
	}
	if err != nil {
		return WrapError(err, "failed to delete idea")
	}

	s.index.RemoveFromIndex(ctx, searchindex.EntityIdea, ideaID)
	return nil
}

// nextOrder is the 1-based position after n existing siblings.
func nextOrder(n int) int {
	return n + 1
}
