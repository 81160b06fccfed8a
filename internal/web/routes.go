package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/contact-album/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	matchHandler := handlers.NewMatchHandler(s.config, s.jobManager)

	// Health check
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/match", matchHandler.Start)
		r.Get("/match/{jobID}", matchHandler.Status)
	})

	// Generated albums from completed photo-mode jobs
	s.router.Get("/album/{jobID}/*", matchHandler.Album)
}
