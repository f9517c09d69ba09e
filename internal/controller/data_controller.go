// Package controller handles HTTP requests and responses.
package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"fanmon/internal/models"
	"fanmon/internal/service"
)

// DataController handles HTTP requests for probe readings.
type DataController struct {
	ingestion *service.IngestionService
	query     *service.QueryService
	errorLog  *log.Logger
}

// NewDataController creates a new DataController.
func NewDataController(ingestion *service.IngestionService, query *service.QueryService, errorLog *log.Logger) *DataController {
	return &DataController{
		ingestion: ingestion,
		query:     query,
		errorLog:  errorLog,
	}
}

// readingRequest uses pointer fields so an absent field is
// distinguishable from a zero value.
type readingRequest struct {
	Temperature *float64 `json:"temperature"`
	FanSpeed    *float64 `json:"fanSpeed"`
}

// HandleCreateReading accepts a reading posted by the probe.
func (c *DataController) HandleCreateReading(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req readingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, models.NewValidationError(fmt.Sprintf("Invalid JSON payload: %v", err)))
		return
	}

	reading, err := c.ingestion.RecordReading(r.Context(), req.Temperature, req.FanSpeed)
	if err != nil {
		c.errorLog.Printf("recording reading: %v", err)
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, reading)
}

// HandleRecentReadings returns the newest readings, newest first.
func (c *DataController) HandleRecentReadings(w http.ResponseWriter, r *http.Request) {
	readings, err := c.query.RecentReadings(r.Context())
	if err != nil {
		c.errorLog.Printf("listing readings: %v", err)
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, readings)
}
