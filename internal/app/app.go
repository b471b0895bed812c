// Package app wires storage, the search index, search, sync and the library
// service into one value shared by the API server and the CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"novelcore/internal/config"
	"novelcore/internal/contextutil"
	"novelcore/internal/indexer"
	"novelcore/internal/metrics"
	"novelcore/internal/search"
	"novelcore/internal/searchindex"
	"novelcore/internal/service"
	"novelcore/internal/storage"
	"novelcore/internal/syncer"
)

// App holds the long-lived components. Syncer is nil when sync is disabled.
type App struct {
	DB       *sql.DB
	Index    *searchindex.Store
	Indexer  *indexer.Indexer
	Searcher *search.Engine
	Library  service.LibraryService
	Syncer   syncer.Syncer
	Novels   storage.NovelStore
	Metrics  *metrics.Registry
}

// Open opens and migrates the database, initializes the search index and
// builds every component. reg may be nil. The index is not checked for
// freshness; call PrepareIndex for that.
func Open(ctx context.Context, cfg *config.Config, reg *metrics.Registry) (*App, error) {
	logger := contextutil.LoggerFromContext(ctx)

	db, err := storage.New(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.InfoContext(ctx, "database initialized", "driver", cfg.DBDriver, "path", cfg.DBPath)

	index := searchindex.New(db)
	index.Init(ctx)
	if !index.Available() {
		logger.WarnContext(ctx, "search index unavailable, search will return no results")
	}

	volumes := storage.NewVolumeRepo(db)
	chapters := storage.NewChapterRepo(db)
	ideas := storage.NewIdeaRepo(db)

	ix := indexer.New(index, volumes, chapters, ideas, reg)

	a := &App{
		DB:       db,
		Index:    index,
		Indexer:  ix,
		Searcher: search.NewEngine(index, chapters, reg),
		Library:  service.NewLibraryService(db, ix),
		Novels:   storage.NewNovelRepo(db),
		Metrics:  reg,
	}

	if cfg.SyncEnabled() {
		remote := syncer.NewClient(cfg.SyncBaseURL, cfg.SyncAPIKey, cfg.SyncHTTPTimeout)
		a.Syncer = syncer.NewEngine(syncer.NewLocalStore(db, cfg.SyncTxTimeout), remote, ix, reg)
		logger.InfoContext(ctx, "sync enabled", "base_url", cfg.SyncBaseURL)
	}

	return a, nil
}

// PrepareIndex brings the index of every novel up to date. After a schema
// recreate every novel is rebuilt; otherwise only novels whose counts drifted
// are. Failures are logged per novel and do not stop the others.
func (a *App) PrepareIndex(ctx context.Context) error {
	logger := contextutil.LoggerFromContext(ctx)

	if !a.Index.Available() {
		return nil
	}

	novels, err := a.Novels.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list novels: %w", err)
	}

	rebuildAll := a.Index.NeedsRebuild()
	rebuilt := 0
	for _, n := range novels {
		if rebuildAll {
			if _, err := a.Indexer.RebuildIndex(ctx, n.ID); err != nil {
				logger.ErrorContext(ctx, "failed to rebuild novel index", "novel_id", n.ID, "error", err)
				continue
			}
			rebuilt++
			continue
		}
		stale, err := a.Indexer.EnsureFresh(ctx, n.ID)
		if err != nil {
			logger.ErrorContext(ctx, "failed to check novel index", "novel_id", n.ID, "error", err)
			continue
		}
		if stale {
			rebuilt++
		}
	}
	if rebuildAll {
		a.Index.MarkRebuilt()
	}

	logger.InfoContext(ctx, "search index ready", "novels", len(novels), "rebuilt", rebuilt)
	return nil
}

// Close releases the index and the database.
func (a *App) Close() error {
	_ = a.Index.Close()
	return a.DB.Close()
}
