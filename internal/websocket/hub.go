package websocket

import "sync"

// Hub fans messages out to the browsers joined to each room. Room membership
// is guarded by mu because ticket rooms are created lazily on the request
// goroutine of the first join; each room's Clients map is still owned by the
// Run loop.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	Register   chan *WSClient
	Unregister chan *WSClient
	Broadcast  chan *WSMessage
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		Register:   make(chan *WSClient),
		Unregister: make(chan *WSClient),
		Broadcast:  make(chan *WSMessage),
	}
}

// CreateRoom adds the room if it does not exist yet and reports whether it
// did. Safe to call from request goroutines while Run is consuming the
// channels.
func (h *Hub) CreateRoom(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.rooms[id]; exists {
		return false
	}
	h.rooms[id] = &Room{
		Id:      id,
		Clients: make(map[string]*WSClient),
	}
	setRooms(len(h.rooms))
	return true
}

func (h *Hub) HasRoom(id string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.rooms[id]
	return ok
}

// RoomIDs returns a snapshot of the current room ids.
func (h *Hub) RoomIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.rooms))
	for id := range h.rooms {
		ids = append(ids, id)
	}
	return ids
}

func (h *Hub) room(id string) (*Room, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, ok := h.rooms[id]
	return room, ok
}

// Run is the hub loop. It owns every room's Clients map, so client adds,
// removes and deliveries all happen on this goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.addClient(client)
		case client := <-h.Unregister:
			h.removeClient(client)
		case message := <-h.Broadcast:
			h.deliver(message)
		}
	}
}

// addClient ignores joins for unknown rooms; rooms are created by the
// handler before clients are registered.
func (h *Hub) addClient(client *WSClient) {
	room, ok := h.room(client.RoomID)
	if !ok {
		return
	}
	room.Clients[client.ID] = client
	incConnections()
}

func (h *Hub) removeClient(client *WSClient) {
	room, ok := h.room(client.RoomID)
	if !ok {
		return
	}
	if _, ok := room.Clients[client.ID]; ok {
		delete(room.Clients, client.ID)
		close(client.Message)
		decConnections()
	}
}

// deliver fans a message out to every client in the room. A client whose
// send buffer is full is dropped on the spot so one stalled browser cannot
// hold up delivery to the rest of the room.
func (h *Hub) deliver(message *WSMessage) {
	room, ok := h.room(message.RoomID)
	if !ok {
		return
	}
	delivered := 0
	for _, client := range room.Clients {
		select {
		case client.Message <- message:
			delivered++
		default:
			close(client.Message)
			delete(room.Clients, client.ID)
			decConnections()
		}
	}
	if delivered > 0 {
		addDelivered(delivered)
	}
}
