package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"fanmon/internal/broadcast"
)

// EventsController streams live update events to connected clients
// over server-sent events.
type EventsController struct {
	hub      *broadcast.Hub
	infoLog  *log.Logger
	errorLog *log.Logger
}

// NewEventsController creates a new EventsController.
func NewEventsController(hub *broadcast.Hub, infoLog, errorLog *log.Logger) *EventsController {
	return &EventsController{hub: hub, infoLog: infoLog, errorLog: errorLog}
}

// HandleEvents holds the connection open and forwards data_update and
// config_update events as they happen. The client sends nothing beyond
// the initial request; disconnecting is the only way back.
func (c *EventsController) HandleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, cancel := c.hub.Subscribe()
	defer cancel()

	c.infoLog.Println("Live client connected")
	defer c.infoLog.Println("Live client disconnected")

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case event, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(event.Payload)
			if err != nil {
				c.errorLog.Printf("encoding %s event: %v", event.Type, err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
