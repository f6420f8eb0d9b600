package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the uniform error payload for rejections; the reason string
// is always human-readable.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func RespondWithJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, Response{Success: false, Error: message})
}
