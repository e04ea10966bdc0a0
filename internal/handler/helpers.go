package handler

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// messageResponse is the legacy mutation envelope: a single human-readable
// confirmation line.
type messageResponse struct {
	Message string `json:"message"`
}

// statusResponse is the envelope for account operations, which also carry an
// explicit success flag.
type statusResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}
