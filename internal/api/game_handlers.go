package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/calmacil/dartscore/internal/logger"
	"github.com/calmacil/dartscore/internal/models"
)

type createGameRequest struct {
	GameType string   `json:"game_type"`
	Players  []string `json:"players"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	id, snapshot, err := s.Games.Create(r.Context(), req.GameType, req.Players)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, map[string]any{"id": id, "game": snapshot})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.Games.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, snapshot)
}

type setTurnRequest struct {
	PlayerID string `json:"player_id"`
	RoundKey string `json:"round_key"`
	Hits     int    `json:"hits"`
}

func (s *Server) handleSetTurn(w http.ResponseWriter, r *http.Request) {
	var req setTurnRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	snapshot, err := s.Games.SetTurn(r.Context(), chi.URLParam(r, "id"), req.PlayerID, req.RoundKey, req.Hits)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, snapshot)
}

type finishPlayerRequest struct {
	PlayerID string `json:"player_id"`
}

func (s *Server) handleFinishPlayer(w http.ResponseWriter, r *http.Request) {
	var req finishPlayerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	snapshot, err := s.Games.FinishPlayer(r.Context(), chi.URLParam(r, "id"), req.PlayerID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, snapshot)
}

type setJesusRequest struct {
	PlayerID string `json:"player_id"`
	Jesus    bool   `json:"jesus"`
}

func (s *Server) handleSetJesus(w http.ResponseWriter, r *http.Request) {
	var req setJesusRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Games.SetJesus(r.Context(), chi.URLParam(r, "id"), req.PlayerID, req.Jesus); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}

type submitGameRequest struct {
	Tiebreak *models.Tiebreak `json:"tiebreak,omitempty"`
}

func (s *Server) handleSubmitGame(w http.ResponseWriter, r *http.Request) {
	var req submitGameRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.Games.Submit(r.Context(), chi.URLParam(r, "id"), req.Tiebreak)
	if err != nil {
		handleError(w, r, err)
		return
	}

	// Refresh the summary in the background so the next read is warm.
	if err := s.Queue.EnqueueSummaryRefresh(result.GameType); err != nil {
		logger.FromContext(r.Context()).Warn("failed to enqueue summary refresh: %v", err)
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	results, err := s.Games.History(r.Context(), chi.URLParam(r, "gameType"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"games": results})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	view, err := s.Summaries.Summary(r.Context(), chi.URLParam(r, "gameType"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleMigrate(w http.ResponseWriter, r *http.Request) {
	gameType := chi.URLParam(r, "gameType")
	if err := s.Queue.EnqueueMigration(gameType); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusAccepted, map[string]any{"queued": gameType})
}
