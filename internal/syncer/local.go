package syncer

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"novelcore/internal/storage"
)

// Store is the local side of sync.
type Store interface {
	GetCursor(ctx context.Context) (int64, error)
	SetCursor(ctx context.Context, cursor int64) error
	// ApplyPull upserts every pulled entity in one transaction.
	ApplyPull(ctx context.Context, data PullData) error
	// ChangesSince lists entities whose updatedAt is strictly after cursor.
	ChangesSince(ctx context.Context, cursor int64) (Changes, error)
}

// LocalStore implements Store on the application database.
type LocalStore struct {
	db        *sql.DB
	txTimeout time.Duration

	novels   *storage.NovelRepo
	volumes  *storage.VolumeRepo
	chapters *storage.ChapterRepo
	state    *storage.SyncStateRepo
}

// NewLocalStore creates a LocalStore. txTimeout bounds the apply transaction,
// including the wait for the database write lock; zero means no bound.
func NewLocalStore(db *sql.DB, txTimeout time.Duration) *LocalStore {
	return &LocalStore{
		db:        db,
		txTimeout: txTimeout,
		novels:    storage.NewNovelRepo(db),
		volumes:   storage.NewVolumeRepo(db),
		chapters:  storage.NewChapterRepo(db),
		state:     storage.NewSyncStateRepo(db),
	}
}

// GetCursor returns the stored cursor, or 0 before the first sync.
func (s *LocalStore) GetCursor(ctx context.Context) (int64, error) {
	return s.state.GetCursor(ctx)
}

// SetCursor stores cursor.
func (s *LocalStore) SetCursor(ctx context.Context, cursor int64) error {
	return s.state.SetCursor(ctx, cursor)
}

// ApplyPull upserts novels, then volumes, then chapters so foreign keys
// resolve within the batch. Any failure rolls back the whole batch.
func (s *LocalStore) ApplyPull(ctx context.Context, data PullData) error {
	if s.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}

	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		novels := s.novels.WithTx(tx)
		for _, n := range data.Novels {
			if err := novels.Upsert(ctx, novelFromWire(n)); err != nil {
				return fmt.Errorf("novel %s: %w", n.ID, err)
			}
		}

		volumes := s.volumes.WithTx(tx)
		for _, v := range data.Volumes {
			if err := volumes.Upsert(ctx, volumeFromWire(v)); err != nil {
				return fmt.Errorf("volume %s: %w", v.ID, err)
			}
		}

		chapters := s.chapters.WithTx(tx)
		for _, c := range data.Chapters {
			if err := chapters.Upsert(ctx, chapterFromWire(c)); err != nil {
				return fmt.Errorf("chapter %s: %w", c.ID, err)
			}
		}
		return nil
	})
}

// ChangesSince collects local novels, volumes and chapters updated after
// cursor.
func (s *LocalStore) ChangesSince(ctx context.Context, cursor int64) (Changes, error) {
	novels, err := s.novels.ListUpdatedSince(ctx, cursor)
	if err != nil {
		return Changes{}, fmt.Errorf("failed to list changed novels: %w", err)
	}
	volumes, err := s.volumes.ListUpdatedSince(ctx, cursor)
	if err != nil {
		return Changes{}, fmt.Errorf("failed to list changed volumes: %w", err)
	}
	chapters, err := s.chapters.ListUpdatedSince(ctx, cursor)
	if err != nil {
		return Changes{}, fmt.Errorf("failed to list changed chapters: %w", err)
	}

	changes := Changes{
		Novels:   make([]Novel, 0, len(novels)),
		Volumes:  make([]Volume, 0, len(volumes)),
		Chapters: make([]Chapter, 0, len(chapters)),
	}
	for _, n := range novels {
		changes.Novels = append(changes.Novels, novelToWire(n))
	}
	for _, v := range volumes {
		changes.Volumes = append(changes.Volumes, volumeToWire(v))
	}
	for _, c := range chapters {
		changes.Chapters = append(changes.Chapters, chapterToWire(c))
	}
	return changes, nil
}
