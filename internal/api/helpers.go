package api

import (
	"encoding/json"
	"net/http"

	"github.com/calmacil/dartscore/internal/errors"
	"github.com/calmacil/dartscore/internal/logger"
)

// respondJSON writes a JSON response with the given status.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

// decodeJSON parses a request body, limited to 1 MiB.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid request body: " + err.Error())
	}
	return nil
}
