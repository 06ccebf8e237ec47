package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(timeoutMiddleware(30 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/players", s.handleListPlayers)
		r.Post("/players", s.handleUpsertPlayer)
		r.Get("/players/{id}", s.handleGetPlayer)

		r.Post("/games", s.handleCreateGame)
		r.Get("/games/{id}", s.handleGetGame)
		r.Post("/games/{id}/turns", s.handleSetTurn)
		r.Post("/games/{id}/finish", s.handleFinishPlayer)
		r.Post("/games/{id}/jesus", s.handleSetJesus)
		r.Post("/games/{id}/submit", s.handleSubmitGame)

		r.Get("/history/{gameType}", s.handleHistory)
		r.Get("/summary/{gameType}", s.handleSummary)

		r.Get("/prefs/{store}/{key}", s.handleGetPref)
		r.Put("/prefs/{store}/{key}", s.handleSetPref)
		r.Delete("/prefs/{store}/{key}", s.handleClearPref)

		r.Post("/migrate/{gameType}", s.handleMigrate)
	})

	return r
}
