package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"novelcore/internal/service"
)

// LibraryHandler handles HTTP requests that create and edit novels, volumes,
// chapters and ideas.
type LibraryHandler struct {
	library service.LibraryService
}

// NewLibraryHandler creates a new LibraryHandler.
func NewLibraryHandler(library service.LibraryService) *LibraryHandler {
	return &LibraryHandler{library: library}
}

// CreateNovelRequest represents the HTTP request payload for creating a novel.
type CreateNovelRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CoverURL    string `json:"coverUrl"`
}

// CreateVolumeRequest represents the HTTP request payload for creating a volume.
type CreateVolumeRequest struct {
	Title string `json:"title"`
	Order *int   `json:"order,omitempty"`
}

// RenameVolumeRequest represents the HTTP request payload for renaming a volume.
type RenameVolumeRequest struct {
	Title string `json:"title"`
}

// ChapterRequest represents the HTTP request payload for creating or saving a
// chapter. Content is the serialized rich-text document.
type ChapterRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Order   *int   `json:"order,omitempty"`
}

// IdeaRequest represents the HTTP request payload for creating or updating an idea.
type IdeaRequest struct {
	ChapterID string `json:"chapterId,omitempty"`
	Content   string `json:"content"`
	Quote     string `json:"quote"`
	IsStarred bool   `json:"isStarred"`
}

// CreateNovel handles POST /api/novels.
func (h *LibraryHandler) CreateNovel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateNovelRequest
	if !decodeBody(w, r, &req) {
		return
	}

	novel, err := h.library.CreateNovel(ctx, service.CreateNovelRequest{
		Title:       req.Title,
		Description: req.Description,
		CoverURL:    req.CoverURL,
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to create novel")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, novel)
}

// CreateVolume handles POST /api/novels/{novelID}/volumes.
func (h *LibraryHandler) CreateVolume(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateVolumeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	volume, err := h.library.CreateVolume(ctx, service.CreateVolumeRequest{
		NovelID: chi.URLParam(r, "novelID"),
		Title:   req.Title,
		Order:   req.Order,
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to create volume")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, volume)
}

// RenameVolume handles PUT /api/volumes/{volumeID}.
func (h *LibraryHandler) RenameVolume(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RenameVolumeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	volume, err := h.library.RenameVolume(ctx, chi.URLParam(r, "volumeID"), req.Title)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to rename volume")
		return
	}
	writeJSON(ctx, w, http.StatusOK, volume)
}

// CreateChapter handles POST /api/volumes/{volumeID}/chapters.
func (h *LibraryHandler) CreateChapter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ChapterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	chapter, err := h.library.CreateChapter(ctx, service.CreateChapterRequest{
		VolumeID: chi.URLParam(r, "volumeID"),
		Title:    req.Title,
		Content:  req.Content,
		Order:    req.Order,
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to create chapter")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, chapter)
}

// SaveChapter handles PUT /api/chapters/{chapterID}. Order is ignored.
func (h *LibraryHandler) SaveChapter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ChapterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	chapter, err := h.library.SaveChapter(ctx, service.SaveChapterRequest{
		ChapterID: chi.URLParam(r, "chapterID"),
		Title:     req.Title,
		Content:   req.Content,
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to save chapter")
		return
	}
	writeJSON(ctx, w, http.StatusOK, chapter)
}

// DeleteChapter handles DELETE /api/chapters/{chapterID}.
func (h *LibraryHandler) DeleteChapter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.library.DeleteChapter(ctx, chi.URLParam(r, "chapterID")); err != nil {
		handleServiceError(ctx, w, err, "Failed to delete chapter")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateIdea handles POST /api/novels/{novelID}/ideas.
func (h *LibraryHandler) CreateIdea(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req IdeaRequest
	if !decodeBody(w, r, &req) {
		return
	}

	idea, err := h.library.CreateIdea(ctx, service.CreateIdeaRequest{
		NovelID:   chi.URLParam(r, "novelID"),
		ChapterID: req.ChapterID,
		Content:   req.Content,
		Quote:     req.Quote,
		IsStarred: req.IsStarred,
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to create idea")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, idea)
}

// UpdateIdea handles PUT /api/ideas/{ideaID}. ChapterID is ignored.
func (h *LibraryHandler) UpdateIdea(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req IdeaRequest
	if !decodeBody(w, r, &req) {
		return
	}

	idea, err := h.library.UpdateIdea(ctx, service.UpdateIdeaRequest{
		IdeaID:    chi.URLParam(r, "ideaID"),
		Content:   req.Content,
		Quote:     req.Quote,
		IsStarred: req.IsStarred,
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to update idea")
		return
	}
	writeJSON(ctx, w, http.StatusOK, idea)
}

// DeleteIdea handles DELETE /api/ideas/{ideaID}.
func (h *LibraryHandler) DeleteIdea(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.library.DeleteIdea(ctx, chi.URLParam(r, "ideaID")); err != nil {
		handleServiceError(ctx, w, err, "Failed to delete idea")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
