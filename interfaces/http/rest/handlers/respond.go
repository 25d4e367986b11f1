package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	pkgerrors "opencut-backend/pkg/errors"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// writeError maps the domain error taxonomy onto HTTP status codes.
// Placement failures are conflicts with existing clip positions, not
// malformed requests.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case pkgerrors.IsValidation(err):
		status = http.StatusBadRequest
	case pkgerrors.IsNotFound(err):
		status = http.StatusNotFound
	case pkgerrors.IsPlacement(err), pkgerrors.IsConflict(err):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError && logger != nil {
		logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
