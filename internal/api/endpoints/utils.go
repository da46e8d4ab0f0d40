package endpoints

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/events"
)

type HTTPError = api.HTTPError

type ApiMessageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) error {
	return api.WriteJSON(w, status, v)
}

func MethodHandler(
	w http.ResponseWriter,
	r *http.Request,
	allowed map[string]func(http.ResponseWriter, *http.Request) error,
) error {
	if handler, ok := allowed[r.Method]; ok {
		return handler(w, r)
	}
	return &HTTPError{
		StatusCode: http.StatusMethodNotAllowed,
		Message:    "Method not allowed.",
		ErrorLog:   fmt.Errorf("method not allowed"),
	}
}

// publishEvent is swapped out in tests so endpoint tests never need Redis.
var publishEvent = events.Publish

// notifyRooms fans one event envelope out to the given rooms. Publish
// failures are logged and otherwise ignored; realtime updates are advisory
// and never fail the request that triggered them.
func notifyRooms(event, ticketCode string, data interface{}, rooms ...string) {
	envelope := events.Envelope{
		Event:      event,
		TicketCode: ticketCode,
		Data:       data,
		Timestamp:  time.Now().Unix(),
	}
	for _, room := range rooms {
		if err := publishEvent(room, envelope); err != nil {
			log.Printf("publish %s to room %s: %v", event, room, err)
		}
	}
}
