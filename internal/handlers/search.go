package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"novelcore/internal/contextutil"
	"novelcore/internal/search"
	"novelcore/internal/service"
)

// SearchHandler handles HTTP requests for full-text and appearance search.
type SearchHandler struct {
	searcher     search.Searcher
	defaultLimit int
	maxLimit     int
}

// NewSearchHandler creates a new SearchHandler. Requested limits above
// maxLimit are clamped.
func NewSearchHandler(searcher search.Searcher, defaultLimit, maxLimit int) *SearchHandler {
	return &SearchHandler{
		searcher:     searcher,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// pageParams are the paging query parameters shared by search endpoints.
type pageParams struct {
	Limit  int `validate:"min=0"`
	Offset int `validate:"min=0"`
}

// parsePage reads limit and offset from the query string, writing a 400 on
// malformed or negative values.
func (h *SearchHandler) parsePage(w http.ResponseWriter, r *http.Request) (pageParams, bool) {
	ctx := r.Context()
	q := r.URL.Query()
	params := pageParams{Limit: h.defaultLimit}

	for name, dst := range map[string]*int{"limit": &params.Limit, "offset": &params.Offset} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid query parameter", "param", name, "value", raw)
			writeError(w, http.StatusBadRequest, "Invalid "+name)
			return params, false
		}
		*dst = n
	}

	if err := service.Validate(params); err != nil {
		handleServiceError(ctx, w, err, "Invalid paging parameters")
		return params, false
	}

	if params.Limit == 0 {
		params.Limit = h.defaultLimit
	}
	if h.maxLimit > 0 && params.Limit > h.maxLimit {
		params.Limit = h.maxLimit
	}
	return params, true
}

// Search handles GET /api/novels/{novelID}/search?q=&limit=&offset=.
//
// A blank q yields an empty list. Index failures also yield an empty list;
// search never fails the request once the parameters are valid.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	novelID := chi.URLParam(r, "novelID")
	page, ok := h.parsePage(w, r)
	if !ok {
		return
	}

	keyword := r.URL.Query().Get("q")
	results := h.searcher.Search(ctx, novelID, keyword, page.Limit, page.Offset)

	logger.DebugContext(ctx, "search served", "novel_id", novelID, "results", len(results))
	writeJSON(ctx, w, http.StatusOK, results)
}

// Appearances handles GET /api/novels/{novelID}/appearances?name=&limit=.
func (h *SearchHandler) Appearances(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	novelID := chi.URLParam(r, "novelID")
	page, ok := h.parsePage(w, r)
	if !ok {
		return
	}

	appearances, err := h.searcher.Appearances(ctx, novelID, r.URL.Query().Get("name"), page.Limit)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to scan chapters")
		return
	}
	writeJSON(ctx, w, http.StatusOK, appearances)
}
