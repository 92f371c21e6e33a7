package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"cart-pricing/repository"
)

// writeJSON encodes v with the given status
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("❌ failed to encode response", zap.Error(err))
	}
}

// writeError maps repository errors to HTTP status codes
func writeError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound), errors.Is(err, repository.ErrLineNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, repository.ErrInvalidQuantity):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repository.ErrInsufficientStock), errors.Is(err, repository.ErrStaleProduct):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		logger.Error("❌ request failed", zap.String("op", op), zap.Error(err))
		http.Error(w, fmt.Sprintf("Failed to %s", op), http.StatusInternalServerError)
	}
}

// parseAt parses an optional RFC3339 timestamp, falling back to now
func parseAt(value string, now func() time.Time) (time.Time, error) {
	if value == "" {
		return now(), nil
	}
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q, expected RFC3339", value)
	}
	return at, nil
}
