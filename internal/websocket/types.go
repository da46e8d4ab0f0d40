package websocket

type Room struct {
	Id      string               `json:"id"`
	Clients map[string]*WSClient `json:"clients"`
}

// WSMessage is the frame written to browsers. Content carries the marshaled
// event envelope exactly as it was published to Redis.
type WSMessage struct {
	Content   string `json:"content"`
	RoomID    string `json:"roomId"`
	Timestamp int64  `json:"timestamp"`
}

type RoomRes struct {
	ID string `json:"id"`
}
