// Package searchindex owns the full-text table that backs search. The table is
// a derived artifact: every row can be rebuilt from chapters and ideas, so the
// store favours staying up over preserving rows.
package searchindex

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"novelcore/internal/contextutil"
)

const tableName = "search_index"

// EntityType is the kind of source entity an entry was built from.
type EntityType string

const (
	EntityChapter EntityType = "chapter"
	EntityIdea    EntityType = "idea"
)

// ErrUnavailable is returned by every operation when the table could not be
// created or migrated at Init, or after Close.
var ErrUnavailable = errors.New("search index unavailable")

// createSQL uses unicode61 so words are split on Unicode boundaries.
const createSQL = `CREATE VIRTUAL TABLE ` + tableName + ` USING fts5(
	content,
	entity_type,
	entity_id UNINDEXED,
	novel_id UNINDEXED,
	chapter_id UNINDEXED,
	title,
	volume_title,
	chapter_order UNINDEXED,
	volume_order UNINDEXED,
	volume_id UNINDEXED,
	tokenize='unicode61'
)`

// newerColumns were added after the first on-disk version of the table.
var newerColumns = []string{"title", "volume_title", "chapter_order", "volume_order", "volume_id"}

// Entry is one indexed unit. At most one entry exists per (EntityType, EntityID).
type Entry struct {
	Content      string
	EntityType   EntityType
	EntityID     string
	NovelID      string
	ChapterID    string // ideas only, optional
	Title        string
	VolumeTitle  string
	ChapterOrder *int
	VolumeOrder  *int
	VolumeID     string
}

// Store is the handle to the search_index table. Construct it with New and
// call Init once at startup.
type Store struct {
	db *sql.DB

	mu           sync.RWMutex
	available    bool
	needsRebuild bool
}

// New creates a Store over db. The store does not own db.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Init makes sure the table exists with every current column. It never
// returns an error: failures are logged and leave the store unavailable, so a
// broken index cannot block startup.
//
// When a column is missing and cannot be added in place, the table is
// recreated empty and NeedsRebuild reports true until MarkRebuilt.
func (s *Store) Init(ctx context.Context) {
	logger := contextutil.LoggerFromContext(ctx)

	exists, err := s.tableExists(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to probe search index table", "error", err)
		s.setState(false, false)
		return
	}

	if !exists {
		if _, err := s.db.ExecContext(ctx, createSQL); err != nil {
			logger.ErrorContext(ctx, "failed to create search index table", "error", err)
			s.setState(false, false)
			return
		}
		logger.InfoContext(ctx, "created search index table")
		s.setState(true, false)
		return
	}

	missing := s.migrateColumns(ctx)
	if len(missing) == 0 {
		s.setState(true, false)
		return
	}

	logger.WarnContext(ctx, "recreating search index table with current schema", "missing_columns", missing)
	if err := s.recreate(ctx); err != nil {
		logger.ErrorContext(ctx, "failed to recreate search index table", "error", err)
		s.setState(false, false)
		return
	}
	s.setState(true, true)
}

// Close marks the store unavailable. Later calls return ErrUnavailable.
func (s *Store) Close() error {
	s.setState(false, false)
	return nil
}

// Available reports whether the table is usable.
func (s *Store) Available() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.available
}

// NeedsRebuild reports whether Init had to recreate the table, leaving it
// empty.
func (s *Store) NeedsRebuild() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.needsRebuild
}

// MarkRebuilt clears the NeedsRebuild flag.
func (s *Store) MarkRebuilt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.needsRebuild = false
}

func (s *Store) setState(available, needsRebuild bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.available = available
	s.needsRebuild = needsRebuild
}

func (s *Store) tableExists(ctx context.Context) (bool, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", tableName,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// migrateColumns probes each newer column with a trial read and tries to add
// the ones that fail. It returns the columns that are still missing.
func (s *Store) migrateColumns(ctx context.Context) []string {
	logger := contextutil.LoggerFromContext(ctx)

	var missing []string
	for _, col := range newerColumns {
		rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT %s FROM %s LIMIT 1", col, tableName))
		if err == nil {
			_ = rows.Close()
			continue
		}

		logger.InfoContext(ctx, "adding search index column", "column", col)
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", tableName, col)); err != nil {
			logger.WarnContext(ctx, "failed to add search index column", "column", col, "error", err)
			missing = append(missing, col)
		}
	}
	return missing
}

func (s *Store) recreate(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+tableName); err != nil {
		return fmt.Errorf("failed to drop search index: %w", err)
	}
	if _, err := tx.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("failed to create search index: %w", err)
	}
	return tx.Commit()
}
