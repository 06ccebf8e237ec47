package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/calmacil/dartscore/internal/models"
)

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	includeDisabled := r.URL.Query().Get("include_disabled") == "true"

	players, err := s.Players.List(r.Context(), includeDisabled)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"players": players})
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := s.Players.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, player)
}

func (s *Server) handleUpsertPlayer(w http.ResponseWriter, r *http.Request) {
	var player models.Player
	if err := decodeJSON(r, &player); err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Players.Upsert(r.Context(), player); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, player)
}
