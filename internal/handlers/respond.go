// Package handlers maps the REST surface onto the store and the analytics
// service. Validation failures answer 400, unknown ids 404, anything
// unexpected a generic 500; nothing internal leaks to the client.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/waliags/tradermindset/internal/store"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// respondStoreError maps a store failure onto the error contract: 404 for
// unknown keys, 500 with a generic message for everything else.
func respondStoreError(w http.ResponseWriter, log *zap.SugaredLogger, err error, notFoundMsg, internalMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, notFoundMsg)
		return
	}
	log.Errorw("store operation failed", "error", err)
	respondMessage(w, http.StatusInternalServerError, internalMsg)
}
