package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"novelcore/internal/contextutil"
	"novelcore/internal/indexer"
)

// IndexHandler handles HTTP requests for index statistics and rebuilds.
type IndexHandler struct {
	index indexer.Maintainer
}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler(index indexer.Maintainer) *IndexHandler {
	return &IndexHandler{index: index}
}

// Stats handles GET /api/novels/{novelID}/index/stats.
func (h *IndexHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	novelID := chi.URLParam(r, "novelID")

	stats, err := h.index.GetIndexStats(ctx, novelID)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to read index stats")
		return
	}
	writeJSON(ctx, w, http.StatusOK, stats)
}

// Rebuild handles POST /api/novels/{novelID}/index/rebuild. The rebuild runs
// inside the request and the response carries the resulting counts.
func (h *IndexHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	novelID := chi.URLParam(r, "novelID")

	logger.InfoContext(ctx, "index rebuild triggered via API", "novel_id", novelID)

	stats, err := h.index.RebuildIndex(ctx, novelID)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to rebuild index")
		return
	}
	writeJSON(ctx, w, http.StatusOK, stats)
}
