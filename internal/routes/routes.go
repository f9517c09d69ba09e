// Package routes wires the HTTP surface onto the controllers.
package routes

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"fanmon/internal/controller"
)

// SetupRouter defines all API routes. The events route only exists
// when the push channel is enabled.
func SetupRouter(data *controller.DataController, config *controller.ConfigController, events *controller.EventsController) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "Fan monitor backend is running")
	}).Methods("GET")

	router.HandleFunc("/api/data", data.HandleRecentReadings).Methods("GET")
	router.HandleFunc("/api/config", config.HandleGetConfig).Methods("GET")
	router.HandleFunc("/api/config", config.HandleUpdateConfig).Methods("POST")

	// The probe posts here and polls its threshold here.
	router.HandleFunc("/api/esp8266/data", data.HandleCreateReading).Methods("POST")
	router.HandleFunc("/api/esp8266/config", config.HandleGetConfig).Methods("GET")

	if events != nil {
		router.HandleFunc("/api/events", events.HandleEvents).Methods("GET")
	}

	return router
}
