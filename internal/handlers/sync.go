package handlers

import (
	"net/http"

	"novelcore/internal/contextutil"
	"novelcore/internal/syncer"
)

// SyncHandler handles HTTP requests that trigger a pull or push cycle.
type SyncHandler struct {
	syncer syncer.Syncer
}

// NewSyncHandler creates a new SyncHandler. s may be nil when no remote is
// configured; every request then answers 503.
func NewSyncHandler(s syncer.Syncer) *SyncHandler {
	return &SyncHandler{syncer: s}
}

func (h *SyncHandler) configured(w http.ResponseWriter, r *http.Request) bool {
	if h.syncer != nil {
		return true
	}
	ctx := r.Context()
	contextutil.LoggerFromContext(ctx).WarnContext(ctx, "sync requested but no remote is configured")
	writeError(w, http.StatusServiceUnavailable, "Sync is not configured")
	return false
}

// Pull handles POST /api/sync/pull.
func (h *SyncHandler) Pull(w http.ResponseWriter, r *http.Request) {
	if !h.configured(w, r) {
		return
	}
	ctx := r.Context()

	result, err := h.syncer.Pull(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to pull changes")
		return
	}
	writeJSON(ctx, w, http.StatusOK, result)
}

// Push handles POST /api/sync/push.
func (h *SyncHandler) Push(w http.ResponseWriter, r *http.Request) {
	if !h.configured(w, r) {
		return
	}
	ctx := r.Context()

	result, err := h.syncer.Push(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to push changes")
		return
	}
	writeJSON(ctx, w, http.StatusOK, result)
}
