package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

type contextKey string

const contextOwnerKey contextKey = "owner"

// ownerFromContext returns the authenticated username injected by the
// basic-auth middleware.
func ownerFromContext(ctx context.Context) (string, error) {
	owner, ok := ctx.Value(contextOwnerKey).(string)
	if !ok || strings.TrimSpace(owner) == "" {
		return "", errors.New("missing owner")
	}
	return owner, nil
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ErrorResponse is a simple error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
