// Package syncer replicates novels, volumes and chapters with a remote
// service under a single monotonic cursor. A pull applies remote changes in
// one local transaction and only then advances the cursor; a push sends
// local changes made after the cursor.
package syncer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_syncer.go -package=mocks novelcore/internal/syncer Syncer
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_remote.go -package=mocks novelcore/internal/syncer Remote

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"novelcore/internal/contextutil"
	"novelcore/internal/indexer"
	"novelcore/internal/metrics"
)

const (
	opPull = "pull"
	opPush = "push"
)

// Syncer runs sync cycles.
type Syncer interface {
	Pull(ctx context.Context) (*PullResult, error)
	Push(ctx context.Context) (*PushResult, error)
}

// Engine implements Syncer. Pull and push never overlap; concurrent calls
// of the same operation share one cycle.
type Engine struct {
	store   Store
	remote  Remote
	index   indexer.Maintainer
	metrics *metrics.Registry

	sem   *semaphore.Weighted
	group singleflight.Group
}

// NewEngine creates a new Engine. index and reg may be nil; when index is
// set, pulled chapters are re-indexed after the cursor advances.
func NewEngine(store Store, remote Remote, index indexer.Maintainer, reg *metrics.Registry) *Engine {
	return &Engine{
		store:   store,
		remote:  remote,
		index:   index,
		metrics: reg,
		sem:     semaphore.NewWeighted(1),
	}
}

// Pull fetches and applies remote changes. Once started, a cycle runs to
// completion even if ctx is cancelled; the caller just stops waiting.
func (e *Engine) Pull(ctx context.Context) (*PullResult, error) {
	v, err := e.do(ctx, opPull, func(ctx context.Context) (any, error) {
		return e.pull(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*PullResult), nil
}

// Push sends local changes made after the cursor. It makes no request when
// nothing changed.
func (e *Engine) Push(ctx context.Context) (*PushResult, error) {
	v, err := e.do(ctx, opPush, func(ctx context.Context) (any, error) {
		return e.push(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*PushResult), nil
}

func (e *Engine) do(ctx context.Context, op string, fn func(context.Context) (any, error)) (any, error) {
	runCtx := context.WithoutCancel(ctx)

	ch := e.group.DoChan(op, func() (any, error) {
		return e.exclusive(runCtx, op, fn)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (e *Engine) exclusive(ctx context.Context, op string, fn func(context.Context) (any, error)) (any, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := e.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("failed to acquire sync lock: %w", err)
	}
	defer e.sem.Release(1)

	start := time.Now()
	v, err := fn(ctx)
	duration := time.Since(start)
	e.metrics.RecordSync(op, metrics.StatusOf(err), duration)

	if err != nil {
		logger.ErrorContext(ctx, "sync cycle failed", "op", op, "duration", duration, "error", err)
		return nil, err
	}
	logger.InfoContext(ctx, "sync cycle completed", "op", op, "duration", duration)
	return v, nil
}

func (e *Engine) pull(ctx context.Context) (*PullResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	cursor, err := e.store.GetCursor(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read sync cursor: %w", err)
	}

	resp, err := e.remote.Pull(ctx, cursor)
	if err != nil {
		return nil, err
	}

	if err := e.store.ApplyPull(ctx, resp.Data); err != nil {
		return nil, fmt.Errorf("failed to apply pulled changes: %w", err)
	}

	next := int64(resp.NewSyncCursor)
	if next < cursor {
		logger.WarnContext(ctx, "remote returned an older cursor, keeping current", "cursor", cursor, "remote_cursor", next)
		next = cursor
	}
	if next != cursor {
		if err := e.store.SetCursor(ctx, next); err != nil {
			return nil, fmt.Errorf("failed to advance sync cursor: %w", err)
		}
	}
	e.metrics.SetSyncCursor(next)

	e.reindexPulled(ctx, resp.Data)

	return &PullResult{
		Count:    len(resp.Data.Novels) + len(resp.Data.Chapters),
		Novels:   len(resp.Data.Novels),
		Volumes:  len(resp.Data.Volumes),
		Chapters: len(resp.Data.Chapters),
		Cursor:   next,
	}, nil
}

// reindexPulled refreshes the index for pulled volumes and chapters.
func (e *Engine) reindexPulled(ctx context.Context, data PullData) {
	if e.index == nil {
		return
	}

	volumes := make(map[string]bool, len(data.Volumes))
	for _, v := range data.Volumes {
		volumes[v.ID] = true
		e.index.ReindexVolume(ctx, v.ID)
	}
	for _, c := range data.Chapters {
		if volumes[c.VolumeID] {
			continue
		}
		order := c.Order
		e.index.IndexChapter(ctx, indexer.Chapter{
			ID:       c.ID,
			VolumeID: c.VolumeID,
			Title:    c.Title,
			Content:  c.Content,
			Order:    &order,
		})
	}
}

func (e *Engine) push(ctx context.Context) (*PushResult, error) {
	cursor, err := e.store.GetCursor(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read sync cursor: %w", err)
	}

	changes, err := e.store.ChangesSince(ctx, cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to collect local changes: %w", err)
	}
	if changes.Len() == 0 {
		return &PushResult{Success: true, Count: 0}, nil
	}

	body, err := e.remote.Push(ctx, cursor, changes)
	if err != nil {
		return nil, err
	}
	return &PushResult{Success: true, Count: changes.Len(), Response: body}, nil
}
