package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/env"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
)

var (
	upgrader    websocket.Upgrader
	redisClient *redis.Client
)

func init() {
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	redisClient = redis.NewClient(&redis.Options{
		Addr:     env.Get(env.EventsRedisURL),
		Password: env.Get(env.EventsRedisPass),
		DB:       0,
	})
}

// Handler bridges the Redis event channels and the in-process hub. The
// portal and ingest servers publish through internal/events; this side
// subscribes per room and relays into the hub.
type Handler struct {
	hub         *Hub
	redisClient *redis.Client
}

func NewHandler(h *Hub) *Handler {
	return &Handler{
		hub:         h,
		redisClient: redisClient,
	}
}

func (h *Handler) subscribeToRoomChannel(roomID string) {
	if !h.hub.HasRoom(roomID) {
		log.Printf("room %s not found for subscription", roomID)
		return
	}

	log.Printf("subscribing to event channel: %s", roomID)
	subscriber := h.redisClient.Subscribe(context.Background(), roomID)
	defer subscriber.Close()

	ch := subscriber.Channel()
	for msg := range ch {
		h.hub.Broadcast <- &WSMessage{
			Content:   msg.Payload,
			RoomID:    roomID,
			Timestamp: time.Now().Unix(),
		}
	}
	log.Printf("unsubscribed from event channel: %s", roomID)
}

// CreateRoom registers a room and starts its Redis subscription exactly once.
// The dashboard room is created at server start; ticket rooms are created
// lazily when the first client joins, so concurrent first-joins race here and
// the hub decides which one actually created the room.
func (h *Handler) CreateRoom(id string) {
	if !h.hub.CreateRoom(id) {
		return
	}
	go h.subscribeToRoomChannel(id)
}

func (h *Handler) JoinRoom(w http.ResponseWriter, r *http.Request, roomId, memberId string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if conn == nil {
		http.Error(w, "Error conn", http.StatusBadRequest)
		return
	}

	cl := &WSClient{
		Conn:     conn,
		Message:  make(chan *WSMessage, 10),
		ID:       memberId,
		RoomID:   roomId,
		done:     make(chan struct{}),
		isClosed: false,
	}

	h.hub.Register <- cl

	go cl.keepAlive()
	go cl.writeMessage()
	go cl.readMessage(h.hub)
}

func (h *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	rooms := make([]RoomRes, 0)

	for _, id := range h.hub.RoomIDs() {
		rooms = append(rooms, RoomRes{
			ID: id,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(rooms)
}
