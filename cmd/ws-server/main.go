package main

import (
	"log"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api/router"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/env"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/events"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/jwt"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/queue"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/websocket"
)

func main() {
	env.CheckRequired()
	jwt.Init()

	queueManager := queue.NewRequestQueueManager(10, 10)
	db, err := database.NewDatabase()
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	hub := websocket.NewHub()
	go hub.Run()
	handler := websocket.NewHandler(hub)
	handler.CreateRoom(events.DashboardRoom)

	server := api.NewAPIServer(
		":83",
		queueManager,
		db,
		handler,
		router.UtilsRoutes("/api/ws/v1"),
		router.WSRoutes("/api/ws/v1"),
	)

	server.Run()
}
