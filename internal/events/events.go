package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/env"

	"github.com/go-redis/redis/v8"
)

// Event names carried in the envelope. The browser switches on these to
// decide which view to refresh.
const (
	EventNewTicket     = "new_ticket"
	EventNewReply      = "new_reply"
	EventTicketUpdated = "ticket_updated"
	EventReplySent     = "reply_sent"
)

// DashboardRoom is the shared room every signed-in staff dashboard joins.
const DashboardRoom = "dashboard"

// TicketRoom names the per-ticket room a detail view joins.
func TicketRoom(ticketCode string) string {
	return "ticket_" + ticketCode
}

type Envelope struct {
	Event      string      `json:"event"`
	TicketCode string      `json:"ticket_code,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Timestamp  int64       `json:"timestamp"`
}

var redisClient *redis.Client

func init() {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     env.Get(env.EventsRedisURL),
		Password: env.Get(env.EventsRedisPass),
		DB:       0,
	})
}

// Publish fans a payload out on the room's Redis channel. The ws-server
// subscribes to each room channel and relays messages to connected clients,
// so publishers here never talk to the hub directly.
func Publish(roomID string, payload interface{}) error {
	if roomID == "" {
		return fmt.Errorf("events publish: room required")
	}
	if redisClient == nil {
		return fmt.Errorf("events publish: redis client not initialised")
	}

	messageJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("events publish: marshal payload: %w", err)
	}

	if err := redisClient.Publish(context.Background(), roomID, string(messageJSON)).Err(); err != nil {
		return fmt.Errorf("events publish: redis publish: %w", err)
	}
	return nil
}
