package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yegors/soda-go/internal/storage/sqlite"
	"github.com/yegors/soda-go/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(transcriptStorage *sqlite.TranscriptStorage, logger *logger.Logger) *Router {
	return &Router{
		handler:    NewHandler(transcriptStorage, logger),
		middleware: NewMiddleware(logger),
		logger:     logger.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)

	// API routes
	router.Route("/api/v1", func(router chi.Router) {
		// Transcript routes
		router.Get("/transcripts", r.handler.GetRecentTranscripts)
		router.Get("/transcripts/time-range", r.handler.GetTranscriptsByTimeRange)
		router.Get("/transcripts/source", r.handler.GetTranscriptsBySource)

		// Health check
		router.Get("/health", r.handler.GetHealth)
	})

	return router
}
