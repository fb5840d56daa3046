package utils

import (
	"encoding/json"
	"net/http"
)

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondWithError is the resource-error shape: { message } plus status.
func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"message": msg})
}

// RespondWithErrorCode is the auth/validation shape: { message, error: CODE }.
func RespondWithErrorCode(w http.ResponseWriter, code int, msg, errCode string) {
	RespondWithJSON(w, code, map[string]string{"message": msg, "error": errCode})
}

type M map[string]interface{}
