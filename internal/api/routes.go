package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/leitnerbox/internal/jobs"
	"github.com/vytor/leitnerbox/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	DB             Pinger
	ProfileService services.ProfileService
	StudyService   services.StudyService
	CardService    services.CardService
	StatsService   services.StatsService
	JobQueue       jobs.JobQueue
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Get("/profiles", s.handleProfiles)
	r.Post("/profiles", s.handleCreateProfile)
	r.Post("/profiles/{id}/select", s.handleSelectProfile)
	r.Delete("/profiles/{id}", s.handleDeleteProfile)

	r.Group(func(r chi.Router) {
		r.Use(s.profileMiddleware)

		r.Post("/api/deck/load", s.handleLoadDeck)
		r.Post("/api/deck/save", s.handleSaveDeck)

		r.Get("/api/cards", s.handleListCards)
		r.Post("/api/cards", s.handleAddCard)
		r.Post("/api/cards/import", s.handleImportCards)
		r.Delete("/api/cards/{id}", s.handleDeleteCard)

		r.Post("/api/sessions", s.handleStartSession)
		r.Post("/api/sessions/{id}/answers", s.handleAnswer)
		r.Post("/api/sessions/{id}/end", s.handleEndSession)

		r.Get("/api/stats", s.handleStats)
		r.Post("/api/focus", s.handleAddFocus)
	})

	return r
}
