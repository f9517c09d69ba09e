package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"fanmon/internal/models"
	"fanmon/internal/service"
)

// ConfigController handles HTTP requests for the shared configuration
// record.
type ConfigController struct {
	config   *service.ConfigService
	errorLog *log.Logger
}

// NewConfigController creates a new ConfigController.
func NewConfigController(config *service.ConfigService, errorLog *log.Logger) *ConfigController {
	return &ConfigController{config: config, errorLog: errorLog}
}

type thresholdRequest struct {
	Threshold *float64 `json:"threshold"`
}

// HandleGetConfig returns the configuration record, creating the
// default on first access.
func (c *ConfigController) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := c.config.GetConfig(r.Context())
	if err != nil {
		c.errorLog.Printf("fetching config: %v", err)
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, cfg)
}

// HandleUpdateConfig applies a threshold update.
func (c *ConfigController) HandleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req thresholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, models.NewValidationError(fmt.Sprintf("Invalid JSON payload: %v", err)))
		return
	}

	cfg, err := c.config.SetThreshold(r.Context(), req.Threshold)
	if err != nil {
		if apiErr, ok := err.(models.APIError); !ok || apiErr.Code != models.ErrorCodeMissingParameter {
			c.errorLog.Printf("updating threshold: %v", err)
		}
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, cfg)
}
