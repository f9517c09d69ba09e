package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"fanmon/internal/models"
)

// respondWithJSON sends a JSON response with the specified status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("Failed to encode JSON response: %v", err)
		}
	}
}

// respondWithError maps an error onto its HTTP status and answers with
// the {"error": message} body clients expect. Errors outside the
// taxonomy become plain 500s.
func respondWithError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	var apiErr models.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
		message = apiErr.Message
	}

	respondWithJSON(w, status, map[string]string{"error": message})
}
