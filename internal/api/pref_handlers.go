package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/calmacil/dartscore/internal/prefs"
)

func (s *Server) handleGetPref(w http.ResponseWriter, r *http.Request) {
	store := chi.URLParam(r, "store")
	key := chi.URLParam(r, "key")

	value, err := s.Prefs.Get(r.Context(), store, key)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"key":   s.Prefs.FullKey(store, key),
		"value": value,
	})
}

type setPrefRequest struct {
	Tier  string          `json:"tier"`
	Value json.RawMessage `json:"value"`
}

func (s *Server) handleSetPref(w http.ResponseWriter, r *http.Request) {
	var req setPrefRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	tier := prefs.Tier(req.Tier)
	if tier == "" {
		tier = prefs.TierLocal
	}

	store := chi.URLParam(r, "store")
	key := chi.URLParam(r, "key")
	if err := s.Prefs.Set(r.Context(), tier, store, key, req.Value); err != nil {
		handleError(w, r, err)
		return
	}

	value, err := s.Prefs.Get(r.Context(), store, key)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"key":   s.Prefs.FullKey(store, key),
		"value": value,
	})
}

func (s *Server) handleClearPref(w http.ResponseWriter, r *http.Request) {
	tier := prefs.Tier(r.URL.Query().Get("tier"))
	if tier == "" {
		tier = prefs.TierLocal
	}

	store := chi.URLParam(r, "store")
	key := chi.URLParam(r, "key")
	if err := s.Prefs.Clear(r.Context(), tier, store, key); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"cleared": s.Prefs.FullKey(store, key)})
}
