package websocket

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestHubCreateRoomOnce(t *testing.T) {
	hub := NewHub()

	if !hub.CreateRoom("T-1") {
		t.Fatal("first CreateRoom should report creation")
	}
	if hub.CreateRoom("T-1") {
		t.Fatal("second CreateRoom for the same id should be a no-op")
	}
	if !hub.HasRoom("T-1") {
		t.Fatal("HasRoom should see the created room")
	}
	if got := len(hub.RoomIDs()); got != 1 {
		t.Fatalf("RoomIDs returned %d rooms, want 1", got)
	}
}

// Ticket rooms are created lazily on the first join, so room creation from
// request goroutines races against the hub loop touching the same room set.
func TestHubConcurrentJoinAndBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	const rooms = 5
	const clientsPerRoom = 4

	hub.CreateRoom("T-0")
	observer := &WSClient{
		Message: make(chan *WSMessage, 10),
		ID:      "observer",
		RoomID:  "T-0",
		done:    make(chan struct{}),
	}
	hub.Register <- observer

	var wg sync.WaitGroup
	for i := 0; i < rooms*clientsPerRoom; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			roomID := fmt.Sprintf("T-%d", n%rooms)
			hub.CreateRoom(roomID)

			cl := &WSClient{
				Message: make(chan *WSMessage, 10),
				ID:      fmt.Sprintf("member-%d", n),
				RoomID:  roomID,
				done:    make(chan struct{}),
			}
			hub.Register <- cl
			hub.Broadcast <- &WSMessage{Content: "update", RoomID: roomID}
		}(i)
	}
	wg.Wait()

	if got := len(hub.RoomIDs()); got != rooms {
		t.Fatalf("hub has %d rooms, want %d", got, rooms)
	}

	select {
	case msg := <-observer.Message:
		if msg.RoomID != "T-0" {
			t.Fatalf("observer received message for room %q, want T-0", msg.RoomID)
		}
	case <-time.After(time.Second):
		t.Fatal("observer never received a broadcast for its room")
	}
}
