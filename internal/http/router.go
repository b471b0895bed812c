package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"novelcore/internal/handlers"
	"novelcore/internal/indexer"
	"novelcore/internal/metrics"
	"novelcore/internal/search"
	"novelcore/internal/service"
	"novelcore/internal/syncer"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Searcher search.Searcher
	Index    indexer.Maintainer
	Library  service.LibraryService
	// Syncer is nil when no remote is configured.
	Syncer      syncer.Syncer
	DB          handlers.Pinger
	IndexStatus handlers.IndexStatus
	// Metrics may be nil; /metrics is then not mounted.
	Metrics *metrics.Registry

	DefaultLimit int
	MaxLimit     int
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger(deps.Metrics))

	// Add CORS middleware
	r.Use(CORS)

	searchHandler := handlers.NewSearchHandler(deps.Searcher, deps.DefaultLimit, deps.MaxLimit)
	indexHandler := handlers.NewIndexHandler(deps.Index)
	syncHandler := handlers.NewSyncHandler(deps.Syncer)
	libraryHandler := handlers.NewLibraryHandler(deps.Library)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.IndexStatus)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Post("/novels", libraryHandler.CreateNovel)
		r.Route("/novels/{novelID}", func(r chi.Router) {
			r.Get("/search", searchHandler.Search)
			r.Get("/appearances", searchHandler.Appearances)
			r.Get("/index/stats", indexHandler.Stats)
			r.Post("/index/rebuild", indexHandler.Rebuild)
			r.Post("/volumes", libraryHandler.CreateVolume)
			r.Post("/ideas", libraryHandler.CreateIdea)
		})

		r.Put("/volumes/{volumeID}", libraryHandler.RenameVolume)
		r.Post("/volumes/{volumeID}/chapters", libraryHandler.CreateChapter)
		r.Put("/chapters/{chapterID}", libraryHandler.SaveChapter)
		r.Delete("/chapters/{chapterID}", libraryHandler.DeleteChapter)
		r.Put("/ideas/{ideaID}", libraryHandler.UpdateIdea)
		r.Delete("/ideas/{ideaID}", libraryHandler.DeleteIdea)

		r.Post("/sync/pull", syncHandler.Pull)
		r.Post("/sync/push", syncHandler.Push)
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	return r
}
